package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"asset-system/internal/entities"
	"asset-system/internal/repositories"
	"asset-system/pkg/constants"
	apperrors "asset-system/pkg/errors"
)

// DivisionCode abbreviates a division name: the initials of up to the first
// three words, or the first two characters of a single-word name.
func DivisionCode(name string) string {
	name = strings.TrimSpace(name)
	if strings.IndexFunc(name, unicode.IsSpace) >= 0 {
		words := strings.Fields(name)
		if len(words) > 3 {
			words = words[:3]
		}
		var b strings.Builder
		for _, w := range words {
			r, _ := utf8.DecodeRuneInString(w)
			b.WriteRune(unicode.ToUpper(r))
		}
		return b.String()
	}
	return strings.ToUpper(firstRunes(name, 2))
}

func CategoryCode(category string) string {
	return strings.ToUpper(firstRunes(category, 4))
}

// AssetNumberPrefix is the part of a number shared by one
// (category, division) partition, including the trailing slash.
func AssetNumberPrefix(categoryCode, divisionCode string) string {
	return fmt.Sprintf("%s/%s/%s/", constants.AssetNumberPrefix, categoryCode, divisionCode)
}

func FormatAssetNumber(categoryCode, divisionCode string, seq int) string {
	return AssetNumberPrefix(categoryCode, divisionCode) + strconv.Itoa(seq)
}

func firstRunes(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

// AssetNumberGenerator assigns numbers inside the caller's transaction. The
// advisory lock it takes is held until that transaction ends.
type AssetNumberGenerator struct {
	assetRepo    repositories.AssetRepositoryInterface
	divisionRepo repositories.DivisionRepositoryInterface
	logger       *zap.Logger
}

func NewAssetNumberGenerator(
	assetRepo repositories.AssetRepositoryInterface,
	divisionRepo repositories.DivisionRepositoryInterface,
	logger *zap.Logger,
) *AssetNumberGenerator {
	return &AssetNumberGenerator{assetRepo: assetRepo, divisionRepo: divisionRepo, logger: logger}
}

// Assign sets asset.AssetNumber when it is still empty. Without a named
// division the number is deferred and the asset keeps a NULL number.
func (g *AssetNumberGenerator) Assign(ctx context.Context, tx pgx.Tx, asset *entities.Asset) error {
	if asset.AssetNumber != nil && *asset.AssetNumber != "" {
		return nil
	}
	if asset.DivisionID == nil {
		g.logger.Warn("asset number deferred: no division", zap.String("asset", asset.Name))
		return nil
	}

	division, err := g.divisionRepo.FindDivision(ctx, tx, *asset.DivisionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.Validationf("division %d does not exist", *asset.DivisionID)
		}
		return err
	}
	divisionCode := DivisionCode(division.Name)
	if divisionCode == "" {
		g.logger.Warn("asset number deferred: division has no name", zap.Uint64("division_id", division.ID))
		return nil
	}

	// Divisions sharing a code share a sequence, so lock and scan by prefix.
	categoryCode := CategoryCode(asset.Category)
	prefix := AssetNumberPrefix(categoryCode, divisionCode)
	if err := g.assetRepo.LockNumberPrefix(ctx, tx, prefix); err != nil {
		return err
	}
	last, err := g.assetRepo.MaxAssetSequence(ctx, tx, prefix)
	if err != nil {
		return err
	}

	number := FormatAssetNumber(categoryCode, divisionCode, last+1)
	asset.AssetNumber = &number
	return nil
}

const maxNumberAttempts = 3

// runWithNumberRetry runs fn in a fresh transaction, repeating the whole
// transaction when a generated number collided with a concurrent writer.
func runWithNumberRetry(ctx context.Context, txManager repositories.TxManagerInterface, logger *zap.Logger, fn func(tx pgx.Tx) error) error {
	var err error
	for attempt := 1; attempt <= maxNumberAttempts; attempt++ {
		err = txManager.RunInTransaction(ctx, fn)
		if !errors.Is(err, repositories.ErrAssetNumberTaken) {
			return err
		}
		logger.Warn("asset number collision, retrying", zap.Int("attempt", attempt))
	}
	return apperrors.Conflictf("could not allocate a unique asset number after %d attempts", maxNumberAttempts)
}
