package domain

import (
	"context"
	"time"
)

// Role classifies an account. Exactly one role per user; "member" is the
// implicit default for everyone without elevated access.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleHelper Role = "helper"
	RoleKiosk  Role = "kiosk"
	RoleMember Role = "member"
)

// Valid reports whether r is one of the closed set of roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleHelper, RoleKiosk, RoleMember:
		return true
	}
	return false
}

// IsStaff reports whether r may manage attendance, tickets and statistics.
func (r Role) IsStaff() bool { return r == RoleAdmin || r == RoleHelper }

// IsPrivileged reports whether r may use the check-in scanning API.
func (r Role) IsPrivileged() bool { return r.IsStaff() || r == RoleKiosk }

// User represents a registered community member, staff account or kiosk
// terminal account.
// swagger:model User
type User struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	LastName     string `json:"last_name"`
	RUT          string `json:"rut"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Salt         string `json:"-"`
	Phone        string `json:"phone,omitempty"`

	// Affiliation, Campus and Program are enumerated codes; when a code is
	// "otro" the matching *Other free-text field carries the real value.
	Affiliation      string `json:"affiliation,omitempty"`
	AffiliationOther string `json:"affiliation_other,omitempty"`
	Campus           string `json:"campus,omitempty"`
	CampusOther      string `json:"campus_other,omitempty"`
	Program          string `json:"program,omitempty"`
	ProgramOther     string `json:"program_other,omitempty"`
	Institution      string `json:"institution,omitempty"`

	PhotoPath string `json:"photo_path,omitempty"`
	QRPath    string `json:"qr_path,omitempty"`
	// EmojiTag is a short decorative label assigned once at registration.
	EmojiTag string `json:"emoji_tag"`

	Role            Role      `json:"role"`
	AttendanceCount int       `json:"attendance_count"`
	PublicProfile   bool      `json:"public_profile"`
	Featured        bool      `json:"featured"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// AffiliationDisplay resolves the "otro" override for the affiliation code.
func (u *User) AffiliationDisplay() string {
	if u.Affiliation == "otro" && u.AffiliationOther != "" {
		return u.AffiliationOther
	}
	return u.Affiliation
}

// CampusDisplay resolves the "otro" override for the campus code.
func (u *User) CampusDisplay() string {
	if u.Campus == "otro" && u.CampusOther != "" {
		return u.CampusOther
	}
	return u.Campus
}

// ProgramDisplay resolves the "otro" override for the program code.
func (u *User) ProgramDisplay() string {
	if u.Program == "otro" && u.ProgramOther != "" {
		return u.ProgramOther
	}
	return u.Program
}

// Actor is the identity acting on the current request, resolved once by the
// auth middleware and passed explicitly into every service call.
type Actor struct {
	User *User
}

// PublicProfileView is the subset of a user shown on the public profile page
// (the target of the printed QR code) and in the member directory.
// swagger:model PublicProfileView
type PublicProfileView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	LastName    string `json:"last_name"`
	Affiliation string `json:"affiliation,omitempty"`
	Campus      string `json:"campus,omitempty"`
	Program     string `json:"program,omitempty"`
	Institution string `json:"institution,omitempty"`
	PhotoPath   string `json:"photo_path,omitempty"`
	EmojiTag    string `json:"emoji_tag"`
	Featured    bool   `json:"featured"`
}

// PublicView projects u onto its public profile representation.
func (u *User) PublicView() *PublicProfileView {
	return &PublicProfileView{
		ID:          u.ID,
		Name:        u.Name,
		LastName:    u.LastName,
		Affiliation: u.AffiliationDisplay(),
		Campus:      u.CampusDisplay(),
		Program:     u.ProgramDisplay(),
		Institution: u.Institution,
		PhotoPath:   u.PhotoPath,
		EmojiTag:    u.EmojiTag,
		Featured:    u.Featured,
	}
}

// DirectoryFilter narrows directory and user-search listings.
type DirectoryFilter struct {
	Query       string
	Affiliation string
	Campus      string
	Program     string
}

// UserRepository defines the interface for user storage.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, user *User) error
	UpdatePassword(ctx context.Context, userID, passwordHash, salt string) error
	SetQRPath(ctx context.Context, userID, qrPath string) error
	SetPublicProfile(ctx context.Context, userID string, public bool) error
	SetFeatured(ctx context.Context, userID string, featured bool) error
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, filter DirectoryFilter) ([]*User, error)
	// IncrementAttendance adds one to the user's attendance counter as a
	// relative update and returns the committed value.
	IncrementAttendance(ctx context.Context, userID string) (int, error)
	// DecrementAttendance subtracts one, clamped at zero.
	DecrementAttendance(ctx context.Context, userID string) error
}

// PasswordHasher handles salt generation, hashing, and verification.
// Implementations may use bcrypt, argon2, etc.
type PasswordHasher interface {
	GenerateSalt() (string, error)
	Hash(salt, password string) (hash string, err error)
	Compare(hash, salt, password string) error
}

// TokenIssuer issues bearer tokens for an authenticated user. The session ID
// becomes the token's jti claim.
type TokenIssuer interface {
	Issue(userID, email, sessionID string, role Role, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a bearer token and returns the user and session IDs
// embedded in it.
type TokenVerifier interface {
	Verify(token string) (userID, sessionID string, err error)
}

// QRGenerator renders a scannable image encoding the public-profile URL of a
// user and returns a storage reference for it.
type QRGenerator interface {
	Generate(userID string) (path string, err error)
}

// RegisterInput carries the self-service registration form.
type RegisterInput struct {
	Name        string
	LastName    string
	RUT         string
	Email       string
	Origin      string // "inacap" or "externo"
	Affiliation string
	Institution string
}

// UserService defines profile and directory business logic.
type UserService interface {
	Register(ctx context.Context, in RegisterInput) (*User, error)
	GetByID(ctx context.Context, actor *Actor, id string) (*User, error)
	UpdateProfile(ctx context.Context, actor *Actor, user *User) error
	AdminUpdate(ctx context.Context, actor *Actor, user *User) error
	Delete(ctx context.Context, actor *Actor, userID string) error
	DeleteSelf(ctx context.Context, actor *Actor) error
	SetVisibility(ctx context.Context, actor *Actor, userID string, public bool) error
	ToggleFeatured(ctx context.Context, actor *Actor, userID string) (bool, error)
	Directory(ctx context.Context, actor *Actor, filter DirectoryFilter) ([]*PublicProfileView, error)
	SearchUsers(ctx context.Context, actor *Actor, filter DirectoryFilter) ([]*User, error)
	PublicProfile(ctx context.Context, id string) (*PublicProfileView, error)
}
