package services

import (
	"context"
	"fmt"
	"math/rand"
	"regexp"
	"strings"
	"time"

	"github.com/Litjoaco/inacap/internal/domain"
)

const (
	// Origin values accepted at registration.
	originInacap   = "inacap"
	originExternal = "externo"
)

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// emojiTags is the pool the decorative registration label is sampled from.
var emojiTags = []string{
	"💡", "🚀", "📈", "💼", "🤝", "🌐", "💻", "📱", "🎯",
	"🌟", "🌱", "🔗", "🛠️", "📊", "🧠", "⚡️", "🏆", "🔑",
}

type userService struct {
	userRepo    domain.UserRepository
	sessionRepo domain.SessionRepository
	hasher      domain.PasswordHasher
	qrGen       domain.QRGenerator
}

// NewUserService creates a UserService with the given repositories and ports.
func NewUserService(userRepo domain.UserRepository, sessionRepo domain.SessionRepository, hasher domain.PasswordHasher, qrGen domain.QRGenerator) domain.UserService {
	return &userService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		hasher:      hasher,
		qrGen:       qrGen,
	}
}

func (s *userService) Register(ctx context.Context, in domain.RegisterInput) (*domain.User, error) {
	name := strings.TrimSpace(in.Name)
	lastName := strings.TrimSpace(in.LastName)
	email := strings.TrimSpace(strings.ToLower(in.Email))
	if name == "" || lastName == "" {
		return nil, fmt.Errorf("%w: name and last name are required", domain.ErrInvalidInput)
	}
	if !emailRegexp.MatchString(email) {
		return nil, fmt.Errorf("%w: invalid email format", domain.ErrInvalidInput)
	}
	if !domain.ValidRUT(in.RUT) {
		return nil, fmt.Errorf("%w: invalid rut", domain.ErrInvalidInput)
	}
	rut := domain.NormalizeRUT(in.RUT)

	user := &domain.User{
		Name:     name,
		LastName: lastName,
		RUT:      rut,
		Email:    email,
		Role:     domain.RoleMember,
		EmojiTag: randomEmojiTag(),
	}
	switch in.Origin {
	case originInacap:
		if in.Affiliation == "" {
			return nil, fmt.Errorf("%w: affiliation is required", domain.ErrInvalidInput)
		}
		user.Affiliation = in.Affiliation
	case originExternal:
		if strings.TrimSpace(in.Institution) == "" {
			return nil, fmt.Errorf("%w: institution is required", domain.ErrInvalidInput)
		}
		user.Institution = strings.TrimSpace(in.Institution)
	default:
		return nil, fmt.Errorf("%w: unknown origin %q", domain.ErrInvalidInput, in.Origin)
	}

	// The initial password is the rut body without its check digit; members
	// are told to change it on first login.
	salt, err := s.hasher.GenerateSalt()
	if err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	hash, err := s.hasher.Hash(salt, rut[:len(rut)-1])
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user.Salt = salt
	user.PasswordHash = hash

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	qrPath, err := s.qrGen.Generate(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate qr code: %w", err)
	}
	if err := s.userRepo.SetQRPath(ctx, user.ID, qrPath); err != nil {
		return nil, fmt.Errorf("failed to store qr path: %w", err)
	}
	user.QRPath = qrPath
	return user, nil
}

func randomEmojiTag() string {
	idx := rand.Perm(len(emojiTags))[:3]
	return emojiTags[idx[0]] + emojiTags[idx[1]] + emojiTags[idx[2]]
}

func (s *userService) GetByID(ctx context.Context, actor *domain.Actor, id string) (*domain.User, error) {
	if actor == nil || actor.User == nil {
		return nil, domain.ErrUnauthorized
	}
	if actor.User.ID != id && !actor.User.Role.IsStaff() {
		return nil, domain.ErrForbidden
	}
	return s.userRepo.GetByID(ctx, id)
}

func (s *userService) UpdateProfile(ctx context.Context, actor *domain.Actor, user *domain.User) error {
	if actor == nil || actor.User == nil {
		return domain.ErrUnauthorized
	}
	if actor.User.ID != user.ID {
		return domain.ErrForbidden
	}
	existing, err := s.userRepo.GetByID(ctx, user.ID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}

	existing.Name = strings.TrimSpace(user.Name)
	existing.LastName = strings.TrimSpace(user.LastName)
	existing.Phone = strings.TrimSpace(user.Phone)
	existing.Affiliation = user.Affiliation
	existing.AffiliationOther = user.AffiliationOther
	existing.Campus = user.Campus
	existing.CampusOther = user.CampusOther
	existing.Program = user.Program
	existing.ProgramOther = user.ProgramOther
	existing.Institution = strings.TrimSpace(user.Institution)
	if user.PhotoPath != "" {
		existing.PhotoPath = user.PhotoPath
	}
	if existing.Name == "" || existing.LastName == "" {
		return fmt.Errorf("%w: name and last name are required", domain.ErrInvalidInput)
	}
	existing.UpdatedAt = time.Now()
	if err := s.userRepo.Update(ctx, existing); err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	*user = *existing
	return nil
}

func (s *userService) AdminUpdate(ctx context.Context, actor *domain.Actor, user *domain.User) error {
	if actor == nil || actor.User == nil {
		return domain.ErrUnauthorized
	}
	if !actor.User.Role.IsStaff() {
		return domain.ErrForbidden
	}
	existing, err := s.userRepo.GetByID(ctx, user.ID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}
	if user.Role != existing.Role {
		// Role assignment is the admin's alone.
		if actor.User.Role != domain.RoleAdmin {
			return domain.ErrForbidden
		}
		if !user.Role.Valid() {
			return fmt.Errorf("%w: unknown role %q", domain.ErrInvalidInput, user.Role)
		}
		existing.Role = user.Role
	}
	if user.RUT != existing.RUT {
		if !domain.ValidRUT(user.RUT) {
			return fmt.Errorf("%w: invalid rut", domain.ErrInvalidInput)
		}
		existing.RUT = domain.NormalizeRUT(user.RUT)
	}
	if email := strings.TrimSpace(strings.ToLower(user.Email)); email != existing.Email {
		if !emailRegexp.MatchString(email) {
			return fmt.Errorf("%w: invalid email format", domain.ErrInvalidInput)
		}
		existing.Email = email
	}

	existing.Name = strings.TrimSpace(user.Name)
	existing.LastName = strings.TrimSpace(user.LastName)
	existing.Phone = strings.TrimSpace(user.Phone)
	existing.Affiliation = user.Affiliation
	existing.AffiliationOther = user.AffiliationOther
	existing.Campus = user.Campus
	existing.CampusOther = user.CampusOther
	existing.Program = user.Program
	existing.ProgramOther = user.ProgramOther
	existing.Institution = strings.TrimSpace(user.Institution)
	if existing.Name == "" || existing.LastName == "" {
		return fmt.Errorf("%w: name and last name are required", domain.ErrInvalidInput)
	}
	existing.UpdatedAt = time.Now()
	if err := s.userRepo.Update(ctx, existing); err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	*user = *existing
	return nil
}

func (s *userService) Delete(ctx context.Context, actor *domain.Actor, userID string) error {
	if actor == nil || actor.User == nil {
		return domain.ErrUnauthorized
	}
	if actor.User.Role != domain.RoleAdmin {
		return domain.ErrForbidden
	}
	if actor.User.ID == userID {
		return fmt.Errorf("%w: use the account deletion endpoint to remove your own account", domain.ErrInvalidInput)
	}
	return s.deleteUser(ctx, userID)
}

func (s *userService) DeleteSelf(ctx context.Context, actor *domain.Actor) error {
	if actor == nil || actor.User == nil {
		return domain.ErrUnauthorized
	}
	return s.deleteUser(ctx, actor.User.ID)
}

// deleteUser removes the account and revokes its live sessions, so a deleted
// user's outstanding tokens stop resolving immediately.
func (s *userService) deleteUser(ctx context.Context, userID string) error {
	if err := s.userRepo.Delete(ctx, userID); err != nil {
		return err
	}
	if err := s.sessionRepo.DeleteByUserID(ctx, userID); err != nil {
		return fmt.Errorf("failed to revoke sessions: %w", err)
	}
	return nil
}

// SetVisibility lets owners publish or hide their own profile. Admins may
// hide any profile but never publish one on the member's behalf.
func (s *userService) SetVisibility(ctx context.Context, actor *domain.Actor, userID string, public bool) error {
	if actor == nil || actor.User == nil {
		return domain.ErrUnauthorized
	}
	if actor.User.ID != userID {
		if actor.User.Role != domain.RoleAdmin || public {
			return domain.ErrForbidden
		}
	}
	return s.userRepo.SetPublicProfile(ctx, userID, public)
}

func (s *userService) ToggleFeatured(ctx context.Context, actor *domain.Actor, userID string) (bool, error) {
	if actor == nil || actor.User == nil {
		return false, domain.ErrUnauthorized
	}
	if actor.User.Role != domain.RoleAdmin {
		return false, domain.ErrForbidden
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("failed to get user: %w", err)
	}
	featured := !user.Featured
	if err := s.userRepo.SetFeatured(ctx, userID, featured); err != nil {
		return false, fmt.Errorf("failed to set featured: %w", err)
	}
	return featured, nil
}

func (s *userService) Directory(ctx context.Context, actor *domain.Actor, filter domain.DirectoryFilter) ([]*domain.PublicProfileView, error) {
	if actor == nil || actor.User == nil {
		return nil, domain.ErrUnauthorized
	}
	users, err := s.userRepo.Search(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}
	views := make([]*domain.PublicProfileView, 0, len(users))
	for _, u := range users {
		// Administrator accounts never appear on the directory, for any viewer.
		if u.Role == domain.RoleAdmin {
			continue
		}
		// Hidden profiles stay visible to their owner and to admins.
		if !u.PublicProfile && u.ID != actor.User.ID && actor.User.Role != domain.RoleAdmin {
			continue
		}
		views = append(views, u.PublicView())
	}
	return views, nil
}

func (s *userService) SearchUsers(ctx context.Context, actor *domain.Actor, filter domain.DirectoryFilter) ([]*domain.User, error) {
	if actor == nil || actor.User == nil {
		return nil, domain.ErrUnauthorized
	}
	if !actor.User.Role.IsStaff() {
		return nil, domain.ErrForbidden
	}
	return s.userRepo.Search(ctx, filter)
}

// PublicProfile resolves the target of a printed QR badge. It works for
// hidden profiles too, otherwise hiding a member from the directory would
// also break their badge.
func (s *userService) PublicProfile(ctx context.Context, id string) (*domain.PublicProfileView, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return user.PublicView(), nil
}
