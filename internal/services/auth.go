package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Litjoaco/inacap/internal/domain"
	"github.com/Litjoaco/inacap/internal/metrics"
)

const minPasswordLength = 6

type authService struct {
	userRepo    domain.UserRepository
	sessionRepo domain.SessionRepository
	hasher      domain.PasswordHasher
	tokenIssuer domain.TokenIssuer
	tokenExpiry time.Duration
}

// NewAuthService creates an AuthService with the given repositories and auth ports.
func NewAuthService(userRepo domain.UserRepository, sessionRepo domain.SessionRepository, hasher domain.PasswordHasher, tokenIssuer domain.TokenIssuer, tokenExpiry time.Duration) domain.AuthService {
	return &authService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		hasher:      hasher,
		tokenIssuer: tokenIssuer,
		tokenExpiry: tokenExpiry,
	}
}

func (s *authService) Login(ctx context.Context, email, password string) (*domain.LoginResult, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// Same error as a wrong password so login probing can't
			// distinguish unknown accounts.
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if err := s.hasher.Compare(user.PasswordHash, user.Salt, password); err != nil {
		return nil, domain.ErrUnauthorized
	}

	now := time.Now()
	session := &domain.AuthSession{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.tokenExpiry),
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	token, err := s.tokenIssuer.Issue(user.ID, user.Email, session.ID, user.Role, s.tokenExpiry)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	metrics.Logins.Inc()
	return &domain.LoginResult{Token: token, User: user}, nil
}

func (s *authService) Logout(ctx context.Context, actor *domain.Actor, sessionID string) error {
	if actor == nil || actor.User == nil {
		return domain.ErrUnauthorized
	}
	if err := s.sessionRepo.Delete(ctx, sessionID); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func (s *authService) Resolve(ctx context.Context, userID, sessionID string) (*domain.Actor, error) {
	session, err := s.sessionRepo.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	if session.UserID != userID {
		return nil, domain.ErrUnauthorized
	}
	// Re-read the account on every request so role changes and deletions take
	// effect immediately instead of at token expiry.
	user, err := s.userRepo.GetByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &domain.Actor{User: user}, nil
}

func (s *authService) ChangePassword(ctx context.Context, actor *domain.Actor, current, next string) error {
	if actor == nil || actor.User == nil {
		return domain.ErrUnauthorized
	}
	if err := s.hasher.Compare(actor.User.PasswordHash, actor.User.Salt, current); err != nil {
		return fmt.Errorf("%w: current password does not match", domain.ErrUnauthorized)
	}
	if len(next) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidInput, minPasswordLength)
	}
	salt, err := s.hasher.GenerateSalt()
	if err != nil {
		return fmt.Errorf("failed to generate salt: %w", err)
	}
	hash, err := s.hasher.Hash(salt, next)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.userRepo.UpdatePassword(ctx, actor.User.ID, hash, salt); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

func (s *authService) VerifyKioskExit(ctx context.Context, actor *domain.Actor, password string) error {
	if actor == nil || actor.User == nil {
		return domain.ErrUnauthorized
	}
	if actor.User.Role != domain.RoleKiosk {
		return domain.ErrForbidden
	}
	if err := s.hasher.Compare(actor.User.PasswordHash, actor.User.Salt, password); err != nil {
		return domain.ErrUnauthorized
	}
	return nil
}
