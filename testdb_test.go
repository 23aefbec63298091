package accounts_test

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	accounts "github.com/hashir-mohd/megaProject"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

var testDBSeq int

// setupTestDB opens a private in-memory SQLite database and applies the
// embedded schema migrations.
func setupTestDB(t *testing.T) *bun.DB {
	t.Helper()

	testDBSeq++
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", testDBSeq)

	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	require.NoError(t, err)
	sqldb.SetMaxIdleConns(1000)
	sqldb.SetConnMaxLifetime(0)

	db := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() { db.Close() })

	accounts.RegisterModels()
	applyMigrations(t, db)

	return db
}

func applyMigrations(t *testing.T, db *bun.DB) {
	t.Helper()

	migrations := accounts.GetMigrationsFS()
	err := fs.WalkDir(migrations, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}

		script, err := fs.ReadFile(migrations, path)
		if err != nil {
			return err
		}

		for _, stmt := range strings.Split(string(script), ";") {
			if strings.TrimSpace(stmt) == "" {
				continue
			}
			if _, err := db.Exec(stmt); err != nil {
				return fmt.Errorf("migration %s: %w", path, err)
			}
		}
		return nil
	})
	require.NoError(t, err)
}

func newTestConfig() accounts.Config {
	return accounts.Config{
		SigningKey:      "test-signing-key",
		Issuer:          "accounts-test",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 240 * time.Hour,
		HashCost:        4, // keep bcrypt fast in tests
		UploadDir:       "public/uploads",
		UploadBaseURL:   "/uploads",
	}
}

// uploaderFunc adapts a plain function into the Uploader interface.
type uploaderFunc func(ctx context.Context, localPath string) (string, error)

func (f uploaderFunc) Upload(ctx context.Context, localPath string) (string, error) {
	return f(ctx, localPath)
}

func staticUploader(url string) uploaderFunc {
	return func(ctx context.Context, localPath string) (string, error) {
		if localPath == "" {
			return "", nil
		}
		return url, nil
	}
}

func seedSubscription(t *testing.T, repo accounts.RepositoryManager, subscriber, channel uuid.UUID) {
	t.Helper()

	_, err := repo.Subscriptions().Create(context.Background(), &accounts.Subscription{
		ID:           uuid.New(),
		SubscriberID: subscriber,
		ChannelID:    channel,
	})
	require.NoError(t, err)
}
