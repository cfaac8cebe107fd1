package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/inmovista/inmovista/modules/catalog/domain/entities/photo"
)

// DiskStorage keeps photo blobs on the local filesystem and serves them from
// a static route. File names are random; the sniffed content type picks the
// extension, the client-supplied name is ignored.
type DiskStorage struct {
	basePath string
	baseURL  string
}

func NewDiskStorage(basePath, baseURL string) photo.Storage {
	return &DiskStorage{
		basePath: basePath,
		baseURL:  strings.TrimRight(baseURL, "/"),
	}
}

func (s *DiskStorage) Store(_ context.Context, _ string, body []byte) (string, error) {
	if err := os.MkdirAll(s.basePath, 0o755); err != nil {
		return "", errors.Wrap(err, "failed to create uploads directory")
	}
	name := uuid.New().String() + mimetype.Detect(body).Extension()
	if err := os.WriteFile(filepath.Join(s.basePath, name), body, 0o644); err != nil {
		return "", errors.Wrap(err, "failed to write upload")
	}
	return s.baseURL + "/" + name, nil
}
