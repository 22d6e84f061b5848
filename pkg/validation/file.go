package validation

import (
	"fmt"
	"io"
	"slices"

	"github.com/gabriel-vasile/mimetype"

	apperrors "asset-system/pkg/errors"
)

type UploadRules struct {
	AllowedMimeTypes []string
	MaxSizeBytes     int64
	PathPrefix       string
}

var AssetImage = UploadRules{
	AllowedMimeTypes: []string{"image/jpeg", "image/png", "image/gif", "image/webp"},
	MaxSizeBytes:     10 << 20,
	PathPrefix:       "images",
}

// ValidateFile checks size and sniffed content type of an upload against
// rules and rewinds file to the start.
func ValidateFile(size int64, file io.ReadSeeker, rules UploadRules) error {
	if size == 0 {
		return apperrors.Validationf("file is empty")
	}
	if rules.MaxSizeBytes > 0 && size > rules.MaxSizeBytes {
		return apperrors.Validationf("file size %.2f MB exceeds the limit of %d MB",
			float64(size)/(1<<20), rules.MaxSizeBytes>>20)
	}

	mtype, err := mimetype.DetectReader(file)
	if err != nil {
		return fmt.Errorf("read upload: %w", err)
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("rewind upload: %w", err)
	}

	if !slices.ContainsFunc(rules.AllowedMimeTypes, mtype.Is) {
		return apperrors.Validationf("file type %s is not allowed", mtype.String())
	}
	return nil
}
