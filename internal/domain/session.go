package domain

import (
	"context"
	"time"
)

// AuthSession is a server-side login session. Its ID doubles as the jti claim
// of the issued bearer token, so deleting the row revokes the token
// immediately. The middleware re-reads the row on every request.
type AuthSession struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SessionRepository defines the interface for auth session storage.
type SessionRepository interface {
	Create(ctx context.Context, session *AuthSession) error
	// Get returns ErrNotFound for missing or expired sessions.
	Get(ctx context.Context, id string) (*AuthSession, error)
	Delete(ctx context.Context, id string) error
	DeleteByUserID(ctx context.Context, userID string) error
}

// LoginResult carries the outcome of a successful credential check.
type LoginResult struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// AuthService defines credential and session business logic.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Logout(ctx context.Context, actor *Actor, sessionID string) error
	// Resolve maps a verified (userID, sessionID) pair onto an acting
	// identity, re-checking the session row. Called on every request.
	Resolve(ctx context.Context, userID, sessionID string) (*Actor, error)
	ChangePassword(ctx context.Context, actor *Actor, current, next string) error
	// VerifyKioskExit re-authenticates the kiosk identity itself to unlock
	// leaving the locked-down scanning screen. No state mutation.
	VerifyKioskExit(ctx context.Context, actor *Actor, password string) error
}
