package validation

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "asset-system/pkg/errors"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

func TestValidateFile(t *testing.T) {
	t.Run("accepts png and rewinds", func(t *testing.T) {
		r := bytes.NewReader(pngHeader)
		require.NoError(t, ValidateFile(int64(len(pngHeader)), r, AssetImage))

		rest, err := io.ReadAll(r)
		require.NoError(t, err)
		assert.Equal(t, pngHeader, rest)
	})

	t.Run("rejects pdf", func(t *testing.T) {
		pdf := []byte("%PDF-1.7\n%\xe2\xe3\xcf\xd3\n")
		err := ValidateFile(int64(len(pdf)), bytes.NewReader(pdf), AssetImage)
		assert.ErrorIs(t, err, apperrors.ErrValidation)
		assert.Contains(t, err.Error(), "application/pdf")
	})

	t.Run("rejects oversized", func(t *testing.T) {
		err := ValidateFile(AssetImage.MaxSizeBytes+1, bytes.NewReader(pngHeader), AssetImage)
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("rejects empty", func(t *testing.T) {
		err := ValidateFile(0, bytes.NewReader(nil), AssetImage)
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})
}
