package accounts

import (
	"context"
	"strings"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// LoginResult is the success payload for Login: the sanitized record plus
// the freshly issued token pair.
type LoginResult struct {
	User   *User     `json:"user"`
	Tokens TokenPair `json:"tokens"`
}

// SessionManager orchestrates the account lifecycle: registration, login,
// token rotation, logout, and the credential/avatar updates. The stored
// refresh token is written before any token pair is returned, so the store
// stays the source of truth for session validity.
type SessionManager struct {
	repo             RepositoryManager
	tokens           TokenService
	hasher           PasswordAuthenticator
	uploader         Uploader
	deterministicIDs bool
	logger           Logger
}

// NewSessionManager returns a new SessionManager
func NewSessionManager(repo RepositoryManager, tokens TokenService, hasher PasswordAuthenticator, uploader Uploader) *SessionManager {
	return &SessionManager{
		repo:     repo,
		tokens:   tokens,
		hasher:   hasher,
		uploader: uploader,
		logger:   defLogger{},
	}
}

func (s *SessionManager) WithLogger(logger Logger) *SessionManager {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// WithDeterministicIDs derives new account IDs from the email via hashid
// instead of generating random UUIDs.
func (s *SessionManager) WithDeterministicIDs() *SessionManager {
	s.deterministicIDs = true
	return s
}

// WithConfig applies the construction options carried on the Config.
func (s *SessionManager) WithConfig(cfg Config) *SessionManager {
	if cfg.DeterministicID {
		s.deterministicIDs = true
	}
	return s
}

// Register creates an account. The uniqueness check and the insert run in
// one transaction; nothing is persisted when any step fails, so there are
// never partial records. The avatar upload must succeed; the cover image is
// optional and defaults to empty on failure or absence.
func (s *SessionManager) Register(ctx context.Context, payload RegisterPayload) (*User, error) {
	payload = payload.Normalized()
	if err := payload.Validate(); err != nil {
		return nil, errors.Wrap(err, errors.CategoryValidation, "invalid registration payload")
	}

	// Check for conflicts before touching the media collaborator so a
	// duplicate registration never leaves an orphaned upload behind. The
	// authoritative recheck still runs inside the transaction below.
	exists, err := s.repo.Users().ExistsWithUsernameOrEmail(ctx, payload.Username, payload.Email)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to check for existing account")
	}
	if exists {
		return nil, ErrDuplicateAccount
	}

	hash, err := s.hasher.HashPassword(payload.Password)
	if err != nil {
		return nil, err
	}

	avatarURL, err := s.uploader.Upload(ctx, payload.AvatarPath)
	if err != nil {
		s.logger.Error("Register avatar upload failed: %v", err)
		return nil, errors.Wrap(err, ErrUploadFailed.Category, "avatar upload is required").
			WithTextCode(ErrUploadFailed.TextCode)
	}
	if avatarURL == "" {
		return nil, ErrUploadFailed
	}

	// Cover image failure degrades to an empty URL rather than failing the
	// registration.
	coverURL := ""
	if payload.CoverImagePath != "" {
		if coverURL, err = s.uploader.Upload(ctx, payload.CoverImagePath); err != nil {
			s.logger.Info("Register cover image upload failed, continuing without: %v", err)
			coverURL = ""
		}
	}

	user := &User{
		Username:     NormalizeUsername(payload.Username),
		Email:        payload.Email,
		FullName:     payload.FullName,
		Avatar:       avatarURL,
		CoverImage:   coverURL,
		PasswordHash: hash,
	}

	if s.deterministicIDs {
		if id, err := hashid.NewUUID(user.Email); err == nil {
			user.ID = id
		}
	}

	err = s.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		exists, err := s.repo.Users().ExistsWithUsernameOrEmailTx(ctx, tx, user.Username, user.Email)
		if err != nil {
			return errors.Wrap(err, errors.CategoryInternal, "failed to check for existing account")
		}

		if exists {
			return ErrDuplicateAccount
		}

		if user, err = s.repo.Users().RegisterTx(ctx, tx, user); err != nil {
			return errors.Wrap(err, errors.CategoryConflict, "could not create user")
		}

		return nil
	})

	if err != nil {
		var richErr *errors.Error
		if errors.As(err, &richErr) {
			return nil, richErr
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "user registration transaction failed")
	}

	return user.Sanitized(), nil
}

// Login verifies the credentials and issues a fresh token pair. The new
// refresh token is durable in the store before this returns, and it
// overwrites any previous one: a login implicitly ends the prior session.
func (s *SessionManager) Login(ctx context.Context, payload LoginPayload) (*LoginResult, error) {
	payload = payload.Normalized()
	if err := payload.Validate(); err != nil {
		return nil, errors.Wrap(err, errors.CategoryValidation, "invalid login payload")
	}

	user, err := s.repo.Users().GetByUsernameOrEmail(ctx, payload.Username, payload.Email)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, ErrIdentityNotFound
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to retrieve user during login")
	}

	if err := s.hasher.ComparePasswordAndHash(payload.Password, user.PasswordHash); err != nil {
		return nil, ErrMismatchedHashAndPassword
	}

	pair, err := s.issueTokenPair(ctx, user)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		User:   user.Sanitized(),
		Tokens: pair,
	}, nil
}

// Refresh rotates a session. The presented token must carry a valid
// signature AND equal the value stored on the user record; the equality
// check is what makes superseded or logged-out tokens dead on arrival.
func (s *SessionManager) Refresh(ctx context.Context, presented string) (TokenPair, error) {
	presented = strings.TrimSpace(presented)
	if presented == "" {
		return TokenPair{}, errors.New("refresh token is required", errors.CategoryValidation)
	}

	claims, err := s.tokens.ValidateRefreshToken(presented)
	if err != nil {
		return TokenPair{}, err
	}

	user, err := s.repo.Users().GetByID(ctx, claims.UserID())
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return TokenPair{}, ErrSessionRevoked
		}
		return TokenPair{}, errors.Wrap(err, errors.CategoryInternal, "failed to retrieve user during refresh")
	}

	if user.RefreshToken == nil || *user.RefreshToken != presented {
		s.logger.Info("Refresh rejected for user %s: presented token does not match stored session", user.ID)
		return TokenPair{}, ErrSessionRevoked
	}

	return s.issueTokenPair(ctx, user)
}

// Logout clears the stored refresh token. Idempotent: a second call finds
// the field already unset and leaves the same end state.
func (s *SessionManager) Logout(ctx context.Context, userID uuid.UUID) error {
	if err := s.repo.Users().ClearRefreshToken(ctx, userID); err != nil {
		if repository.IsRecordNotFound(err) {
			return ErrIdentityNotFound
		}
		return errors.Wrap(err, errors.CategoryInternal, "failed to clear refresh token")
	}

	return nil
}

// ChangePassword verifies the old credential and stores the hash of the new
// one. The active refresh token is left untouched: rotating the password
// does not end the current session.
func (s *SessionManager) ChangePassword(ctx context.Context, userID uuid.UUID, payload ChangePasswordPayload) error {
	if err := payload.Validate(); err != nil {
		return errors.Wrap(err, errors.CategoryValidation, "invalid change password payload")
	}

	user, err := s.repo.Users().GetByID(ctx, userID.String())
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return ErrIdentityNotFound
		}
		return errors.Wrap(err, errors.CategoryInternal, "failed to retrieve user during password change")
	}

	if err := s.hasher.ComparePasswordAndHash(payload.OldPassword, user.PasswordHash); err != nil {
		return ErrMismatchedHashAndPassword
	}

	hash, err := s.hasher.HashPassword(payload.NewPassword)
	if err != nil {
		return err
	}

	if err := s.repo.Users().UpdatePasswordHash(ctx, userID, hash); err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to store new password hash")
	}

	return nil
}

// UpdateAvatar replaces the account's avatar with freshly uploaded media.
func (s *SessionManager) UpdateAvatar(ctx context.Context, userID uuid.UUID, localPath string) (*User, error) {
	localPath = strings.TrimSpace(localPath)
	if localPath == "" {
		return nil, errors.New("avatar source is required", errors.CategoryValidation)
	}

	url, err := s.uploader.Upload(ctx, localPath)
	if err != nil {
		s.logger.Error("UpdateAvatar upload failed: %v", err)
		return nil, errors.Wrap(err, ErrUploadFailed.Category, "avatar upload failed").
			WithTextCode(ErrUploadFailed.TextCode)
	}
	if url == "" {
		return nil, ErrUploadFailed
	}

	user, err := s.repo.Users().UpdateAvatar(ctx, userID, url)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, ErrIdentityNotFound
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to persist avatar")
	}

	return user.Sanitized(), nil
}

// issueTokenPair signs a fresh access/refresh pair and persists the refresh
// token before returning it. The persist-then-respond order matters: a pair
// the store never saw could never pass the refresh equality check.
func (s *SessionManager) issueTokenPair(ctx context.Context, user *User) (TokenPair, error) {
	access, err := s.tokens.SignAccessToken(NewIdentityFromUser(user))
	if err != nil {
		return TokenPair{}, err
	}

	refresh, err := s.tokens.SignRefreshToken(user.ID)
	if err != nil {
		return TokenPair{}, err
	}

	if err := s.repo.Users().StoreRefreshToken(ctx, user.ID, refresh); err != nil {
		return TokenPair{}, errors.Wrap(err, errors.CategoryInternal, "failed to persist refresh token")
	}

	return TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}
