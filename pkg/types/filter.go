package types

import (
	"strconv"
	"strings"
)

// Filter is the parsed form of list query parameters:
// ?search=dell&sort[received_date]=desc&filter[category]=COMP,LAPT&limit=20&page=2&withPagination=true
type Filter struct {
	Search         string                 `json:"search,omitempty"`
	Sort           map[string]string      `json:"sort,omitempty"`
	Filter         map[string]interface{} `json:"filter,omitempty"`
	Limit          int                    `json:"limit"`
	Offset         int                    `json:"offset"`
	Page           int                    `json:"page"`
	WithPagination bool                   `json:"with_pagination"`
}

type Pagination struct {
	TotalCount uint64 `json:"total_count"`
	Page       int    `json:"page"`
	Limit      int    `json:"limit"`
	TotalPages int    `json:"total_pages"`
}

// Has reports whether a filter[field] value was supplied.
func (f Filter) Has(field string) bool {
	_, ok := f.Filter[field]
	return ok
}

// Bool reads filter[field] as a boolean. ok is false when the field is absent
// or not a valid boolean.
func (f Filter) Bool(field string) (value bool, ok bool) {
	raw, exists := f.Filter[field]
	if !exists {
		return false, false
	}
	b, err := strconv.ParseBool(strings.TrimSpace(toString(raw)))
	if err != nil {
		return false, false
	}
	return b, true
}

// Set returns a copy of the filter with filter[field] replaced.
func (f Filter) Set(field string, value interface{}) Filter {
	next := make(map[string]interface{}, len(f.Filter)+1)
	for k, v := range f.Filter {
		next[k] = v
	}
	next[field] = value
	f.Filter = next
	return f
}

func toString(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}
