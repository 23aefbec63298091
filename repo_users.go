package accounts

import (
	"context"
	"strings"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

var StoreRefreshTokenSQL = `UPDATE "users" AS "usr"
SET
	"refresh_token" = ?,
	"updated_at" = CURRENT_TIMESTAMP
WHERE
	"usr"."id" = ?
RETURNING *;`

// ClearRefreshTokenSQL unsets the field rather than blanking it so any
// previously issued token fails the equality check during refresh.
var ClearRefreshTokenSQL = `UPDATE "users" AS "usr"
SET
	"refresh_token" = NULL,
	"updated_at" = CURRENT_TIMESTAMP
WHERE
	"usr"."id" = ?
RETURNING *;`

var UpdatePasswordHashSQL = `UPDATE "users" AS "usr"
SET
	"password_hash" = ?,
	"updated_at" = CURRENT_TIMESTAMP
WHERE
	"usr"."id" = ?
RETURNING *;`

var UpdateAvatarSQL = `UPDATE "users" AS "usr"
SET
	"avatar" = ?,
	"updated_at" = CURRENT_TIMESTAMP
WHERE
	"usr"."id" = ?
RETURNING *;`

type Users interface {
	repository.Repository[*User]

	Register(ctx context.Context, user *User) (*User, error)
	RegisterTx(ctx context.Context, tx bun.IDB, user *User) (*User, error)
	Create(ctx context.Context, record *User, criteria ...repository.InsertCriteria) (*User, error)
	CreateTx(ctx context.Context, tx bun.IDB, record *User, criteria ...repository.InsertCriteria) (*User, error)

	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByUsernameTx(ctx context.Context, tx bun.IDB, username string) (*User, error)
	GetByUsernameOrEmail(ctx context.Context, username, email string) (*User, error)
	GetByUsernameOrEmailTx(ctx context.Context, tx bun.IDB, username, email string) (*User, error)
	ExistsWithUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
	ExistsWithUsernameOrEmailTx(ctx context.Context, tx bun.IDB, username, email string) (bool, error)

	StoreRefreshToken(ctx context.Context, id uuid.UUID, token string) error
	StoreRefreshTokenTx(ctx context.Context, tx bun.IDB, id uuid.UUID, token string) error
	ClearRefreshToken(ctx context.Context, id uuid.UUID) error
	ClearRefreshTokenTx(ctx context.Context, tx bun.IDB, id uuid.UUID) error

	UpdatePasswordHash(ctx context.Context, id uuid.UUID, passwordHash string) error
	UpdatePasswordHashTx(ctx context.Context, tx bun.IDB, id uuid.UUID, passwordHash string) error
	UpdateAvatar(ctx context.Context, id uuid.UUID, avatarURL string) (*User, error)
	UpdateAvatarTx(ctx context.Context, tx bun.IDB, id uuid.UUID, avatarURL string) (*User, error)
}

type users struct {
	repository.Repository[*User]
	db *bun.DB
}

var (
	_ Users                        = (*users)(nil)
	_ repository.Repository[*User] = (*users)(nil)
)

func NewUsersRepository(db *bun.DB) Users {
	repo := repository.NewRepository[*User](db, repository.ModelHandlers[*User]{
		NewRecord: func() *User { return &User{} },
		GetID: func(u *User) uuid.UUID {
			if u == nil {
				return uuid.Nil
			}
			return u.ID
		},
		SetID: func(u *User, id uuid.UUID) {
			if u != nil {
				u.ID = id
			}
		},
		GetIdentifier: func() string {
			return "username"
		},
	})

	return &users{
		Repository: repo,
		db:         db,
	}
}

func (a *users) Register(ctx context.Context, user *User) (*User, error) {
	return a.RegisterTx(ctx, a.db, user)
}

func (a *users) RegisterTx(ctx context.Context, tx bun.IDB, user *User) (*User, error) {
	return a.CreateTx(ctx, tx, user)
}

func (a *users) Create(ctx context.Context, record *User, criteria ...repository.InsertCriteria) (*User, error) {
	return a.CreateTx(ctx, a.db, record, criteria...)
}

func (a *users) CreateTx(ctx context.Context, tx bun.IDB, record *User, criteria ...repository.InsertCriteria) (*User, error) {
	prepareUserDefaults(record)
	return a.Repository.CreateTx(ctx, tx, record, criteria...)
}

func (a *users) GetByUsername(ctx context.Context, username string) (*User, error) {
	return a.GetByUsernameTx(ctx, a.db, username)
}

func (a *users) GetByUsernameTx(ctx context.Context, tx bun.IDB, username string) (*User, error) {
	handle := NormalizeUsername(username)

	record := &User{}
	err := tx.NewSelect().
		Model(record).
		Where("?TableAlias.username = ?", handle).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, repository.NewRecordNotFound().
				WithMetadata(map[string]any{
					"username": handle,
				})
		}
		return nil, err
	}

	return record, nil
}

func (a *users) GetByUsernameOrEmail(ctx context.Context, username, email string) (*User, error) {
	return a.GetByUsernameOrEmailTx(ctx, a.db, username, email)
}

// GetByUsernameOrEmailTx resolves the account by handle first, then by email,
// mirroring the store's lookup-by-unique-key contract.
func (a *users) GetByUsernameOrEmailTx(ctx context.Context, tx bun.IDB, username, email string) (*User, error) {
	options := []identifierOption{
		{column: "username", value: NormalizeUsername(username)},
		{column: "email", value: strings.TrimSpace(email)},
	}

	for _, opt := range options {
		if opt.value == "" {
			continue
		}

		record := &User{}
		err := tx.NewSelect().
			Model(record).
			Where("?TableAlias."+opt.column+" = ?", opt.value).
			Limit(1).
			Scan(ctx)

		if err != nil {
			if repository.IsRecordNotFound(err) {
				continue
			}
			return nil, err
		}

		return record, nil
	}

	return nil, repository.NewRecordNotFound().
		WithMetadata(map[string]any{
			"username": username,
			"email":    email,
		})
}

func (a *users) ExistsWithUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	return a.ExistsWithUsernameOrEmailTx(ctx, a.db, username, email)
}

func (a *users) ExistsWithUsernameOrEmailTx(ctx context.Context, tx bun.IDB, username, email string) (bool, error) {
	return tx.NewSelect().
		Model((*User)(nil)).
		Where("?TableAlias.username = ? OR ?TableAlias.email = ?", NormalizeUsername(username), strings.TrimSpace(email)).
		Exists(ctx)
}

func (a *users) StoreRefreshToken(ctx context.Context, id uuid.UUID, token string) error {
	return a.StoreRefreshTokenTx(ctx, a.db, id, token)
}

func (a *users) StoreRefreshTokenTx(ctx context.Context, tx bun.IDB, id uuid.UUID, token string) error {
	res, err := a.Repository.RawTx(ctx, tx, StoreRefreshTokenSQL, token, id.String())
	if err != nil {
		return err
	}

	if len(res) == 0 {
		return repository.NewRecordNotFound().
			WithMetadata(map[string]any{
				"id": id.String(),
			})
	}

	return nil
}

func (a *users) ClearRefreshToken(ctx context.Context, id uuid.UUID) error {
	return a.ClearRefreshTokenTx(ctx, a.db, id)
}

func (a *users) ClearRefreshTokenTx(ctx context.Context, tx bun.IDB, id uuid.UUID) error {
	res, err := a.Repository.RawTx(ctx, tx, ClearRefreshTokenSQL, id.String())
	if err != nil {
		return err
	}

	if len(res) == 0 {
		return repository.NewRecordNotFound().
			WithMetadata(map[string]any{
				"id": id.String(),
			})
	}

	return nil
}

func (a *users) UpdatePasswordHash(ctx context.Context, id uuid.UUID, passwordHash string) error {
	return a.UpdatePasswordHashTx(ctx, a.db, id, passwordHash)
}

func (a *users) UpdatePasswordHashTx(ctx context.Context, tx bun.IDB, id uuid.UUID, passwordHash string) error {
	res, err := a.Repository.RawTx(ctx, tx, UpdatePasswordHashSQL, passwordHash, id.String())
	if err != nil {
		return err
	}

	if len(res) == 0 {
		return repository.NewRecordNotFound().
			WithMetadata(map[string]any{
				"id": id.String(),
			})
	}

	return nil
}

func (a *users) UpdateAvatar(ctx context.Context, id uuid.UUID, avatarURL string) (*User, error) {
	return a.UpdateAvatarTx(ctx, a.db, id, avatarURL)
}

func (a *users) UpdateAvatarTx(ctx context.Context, tx bun.IDB, id uuid.UUID, avatarURL string) (*User, error) {
	res, err := a.Repository.RawTx(ctx, tx, UpdateAvatarSQL, avatarURL, id.String())
	if err != nil {
		return nil, err
	}

	if len(res) == 0 {
		return nil, repository.NewRecordNotFound().
			WithMetadata(map[string]any{
				"id": id.String(),
			})
	}

	return res[0], nil
}

// NormalizeUsername lowercases and trims a handle for storage and lookups.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

func prepareUserDefaults(record *User) {
	if record == nil {
		return
	}

	record.Username = NormalizeUsername(record.Username)
	record.Email = strings.TrimSpace(record.Email)

	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
}

type identifierOption struct {
	column string
	value  string
}
