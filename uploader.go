package accounts

import (
	"context"
	"os"
	"path/filepath"

	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

// DirUploader is a filesystem-backed Uploader: it moves staged files into a
// publicly served directory and returns their URL. Production deployments
// swap in a CDN-backed implementation of the same interface.
type DirUploader struct {
	dir     string
	baseURL string
}

// NewDirUploader returns an uploader writing into the configured directory.
func NewDirUploader(cfg Config) *DirUploader {
	return &DirUploader{
		dir:     cfg.GetUploadDir(),
		baseURL: cfg.GetUploadBaseURL(),
	}
}

// Upload copies the staged file into the public directory under a fresh
// name. An empty path is a no-op returning an empty URL.
func (u *DirUploader) Upload(ctx context.Context, localPath string) (string, error) {
	if localPath == "" {
		return "", nil
	}

	select {
	case <-ctx.Done():
		return "", errors.Wrap(ctx.Err(), errors.CategoryOperation, "context cancelled during upload")
	default:
	}

	data, err := os.ReadFile(localPath)
	if err != nil {
		return "", errors.Wrap(err, errors.CategoryOperation, "failed to read staged upload").
			WithTextCode(TextCodeUploadFailed)
	}

	if err := os.MkdirAll(u.dir, 0o755); err != nil {
		return "", errors.Wrap(err, errors.CategoryOperation, "failed to create upload directory").
			WithTextCode(TextCodeUploadFailed)
	}

	name := uuid.New().String() + filepath.Ext(localPath)
	if err := os.WriteFile(filepath.Join(u.dir, name), data, 0o644); err != nil {
		return "", errors.Wrap(err, errors.CategoryOperation, "failed to store upload").
			WithTextCode(TextCodeUploadFailed)
	}

	return u.baseURL + "/" + name, nil
}

var _ Uploader = (*DirUploader)(nil)
