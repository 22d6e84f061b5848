package bd

import (
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"asset-system/pkg/types"
)

// Psql is the statement builder for Postgres placeholders.
var Psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// ApplyListParams applies filter[...] equality (comma separated values
// become IN), sort[...] and pagination. Only keys present in allowedMap are
// honoured; the map translates API field names into SQL columns.
func ApplyListParams(builder sq.SelectBuilder, filter types.Filter, allowedMap map[string]string) sq.SelectBuilder {
	for jsonField, val := range filter.Filter {
		dbCol, ok := allowedMap[jsonField]
		if !ok {
			continue
		}

		if s, ok := val.(string); ok && strings.Contains(s, ",") {
			builder = builder.Where(sq.Eq{dbCol: strings.Split(s, ",")})
		} else {
			builder = builder.Where(sq.Eq{dbCol: val})
		}
	}

	for jsonField, dir := range filter.Sort {
		dbCol, ok := allowedMap[jsonField]
		if !ok {
			continue
		}
		sqlDir := "ASC"
		if strings.ToLower(dir) == "desc" {
			sqlDir = "DESC"
		}
		builder = builder.OrderBy(fmt.Sprintf("%s %s", dbCol, sqlDir))
	}

	if filter.WithPagination {
		if filter.Limit > 0 {
			builder = builder.Limit(uint64(filter.Limit))
		}
		if filter.Offset > 0 {
			builder = builder.Offset(uint64(filter.Offset))
		}
	}

	return builder
}

// ApplySearch adds an OR of ILIKE conditions over columns.
func ApplySearch(builder sq.SelectBuilder, search string, columns ...string) sq.SelectBuilder {
	if search == "" || len(columns) == 0 {
		return builder
	}
	pat := "%" + search + "%"
	or := make(sq.Or, 0, len(columns))
	for _, c := range columns {
		or = append(or, sq.ILike{c: pat})
	}
	return builder.Where(or)
}

// CountFilter strips sorting and pagination so the same filter can drive a
// COUNT query.
func CountFilter(filter types.Filter) types.Filter {
	filter.WithPagination = false
	filter.Sort = nil
	return filter
}
