package accounts

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// User is the account model. Username is stored lower-cased; username and
// email are unique. RefreshToken is nil unless a session is active and is
// the single source of truth for refresh validity.
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Username      string     `bun:"username,notnull,unique" json:"username,omitempty"`
	Email         string     `bun:"email,notnull,unique" json:"email,omitempty"`
	FullName      string     `bun:"full_name,notnull" json:"full_name,omitempty"`
	Avatar        string     `bun:"avatar,notnull" json:"avatar,omitempty"`
	CoverImage    string     `bun:"cover_image" json:"cover_image,omitempty"`
	PasswordHash  string     `bun:"password_hash,notnull" json:"-"`
	RefreshToken  *string    `bun:"refresh_token" json:"-"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// Sanitized returns a copy safe to hand to the transport layer. The struct
// tags already hide the credential fields from JSON; this clears them too so
// the record cannot leak through any other encoder.
func (u *User) Sanitized() *User {
	if u == nil {
		return nil
	}
	out := *u
	out.PasswordHash = ""
	out.RefreshToken = nil
	return &out
}

// HasActiveSession reports whether a refresh token is currently stored.
func (u *User) HasActiveSession() bool {
	return u != nil && u.RefreshToken != nil && *u.RefreshToken != ""
}

// Subscription is one directed edge of the social graph: the subscriber
// follows the channel. This core only reads the relation in aggregate.
type Subscription struct {
	bun.BaseModel `bun:"table:subscriptions,alias:sub"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	SubscriberID  uuid.UUID  `bun:"subscriber_id,notnull,type:uuid" json:"subscriber_id,omitempty"`
	ChannelID     uuid.UUID  `bun:"channel_id,notnull,type:uuid" json:"channel_id,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
}
