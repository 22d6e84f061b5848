package filestorage

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

type FileStorageInterface interface {
	// Save writes file under prefix and returns its public URL.
	Save(file io.Reader, originalFileName string, prefix string) (string, error)
	// Delete removes the file behind a URL returned by Save. Missing files are not an error.
	Delete(fileURL string) error
}

type LocalFileStorage struct {
	basePath  string
	urlPrefix string
	now       func() time.Time
}

// NewLocalFileStorage stores files below basePath and exposes them under
// urlPrefix, e.g. "uploads" served as "/uploads".
func NewLocalFileStorage(basePath, urlPrefix string) (*LocalFileStorage, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("create upload directory %s: %w", basePath, err)
	}
	return &LocalFileStorage{
		basePath:  basePath,
		urlPrefix: "/" + strings.Trim(urlPrefix, "/"),
		now:       time.Now,
	}, nil
}

func (s *LocalFileStorage) Save(file io.Reader, originalFileName string, prefix string) (string, error) {
	now := s.now()
	ext := strings.ToLower(filepath.Ext(originalFileName))
	name := fmt.Sprintf("%s-%s%s", now.Format("2006-01-02"), uuid.NewString(), ext)
	rel := path.Join(prefix, now.Format("2006/01/02"), name)

	full := filepath.Join(s.basePath, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("create directory: %w", err)
	}

	dst, err := os.Create(full)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	if _, err := io.Copy(dst, file); err != nil {
		dst.Close()
		os.Remove(full)
		return "", fmt.Errorf("write file: %w", err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(full)
		return "", fmt.Errorf("close file: %w", err)
	}
	return s.urlPrefix + "/" + rel, nil
}

func (s *LocalFileStorage) Delete(fileURL string) error {
	rel := strings.TrimPrefix(fileURL, s.urlPrefix+"/")
	if rel == fileURL || rel == "" || strings.Contains(rel, "..") {
		return fmt.Errorf("file %q is not managed by this storage", fileURL)
	}
	err := os.Remove(filepath.Join(s.basePath, filepath.FromSlash(rel)))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
