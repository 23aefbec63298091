package accounts_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	accounts "github.com/hashir-mohd/megaProject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirUploader(t *testing.T) {
	cfg := newTestConfig()
	cfg.UploadDir = filepath.Join(t.TempDir(), "public")
	cfg.UploadBaseURL = "/uploads"

	uploader := accounts.NewDirUploader(cfg)
	ctx := context.Background()

	t.Run("empty path is a no-op", func(t *testing.T) {
		url, err := uploader.Upload(ctx, "")
		require.NoError(t, err)
		assert.Empty(t, url)
	})

	t.Run("copies staged file and returns its URL", func(t *testing.T) {
		staged := filepath.Join(t.TempDir(), "avatar.png")
		require.NoError(t, os.WriteFile(staged, []byte("image-bytes"), 0o644))

		url, err := uploader.Upload(ctx, staged)
		require.NoError(t, err)
		require.True(t, strings.HasPrefix(url, "/uploads/"))
		assert.True(t, strings.HasSuffix(url, ".png"))

		name := strings.TrimPrefix(url, "/uploads/")
		data, err := os.ReadFile(filepath.Join(cfg.UploadDir, name))
		require.NoError(t, err)
		assert.Equal(t, []byte("image-bytes"), data)
	})

	t.Run("missing staged file", func(t *testing.T) {
		_, err := uploader.Upload(ctx, filepath.Join(t.TempDir(), "nope.png"))
		assert.Error(t, err)
	})

	t.Run("cancelled context", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := uploader.Upload(cancelled, "/tmp/whatever.png")
		assert.Error(t, err)
	})
}
