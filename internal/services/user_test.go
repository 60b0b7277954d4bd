package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Litjoaco/inacap/internal/domain"
)

func TestUserService_Register(t *testing.T) {
	ctx := context.Background()
	userRepo := newMockUserRepo()
	svc := NewUserService(userRepo, newMockSessionRepo(), fakeHasher{}, fakeQRGenerator{})

	user, err := svc.Register(ctx, domain.RegisterInput{
		Name:        "Ana",
		LastName:    "Rojas",
		RUT:         "12.345.678-5",
		Email:       "Ana@Example.com",
		Origin:      "inacap",
		Affiliation: "alumno",
	})
	require.NoError(t, err)
	require.Equal(t, "123456785", user.RUT)
	require.Equal(t, "ana@example.com", user.Email)
	require.Equal(t, domain.RoleMember, user.Role)
	require.NotEmpty(t, user.EmojiTag)
	require.Equal(t, "media/qr_codes/qr_usuario_"+user.ID+".png", user.QRPath)
	// Initial password is the rut body without its check digit.
	require.Equal(t, "hash:salt:12345678", user.PasswordHash)
}

func TestUserService_Register_validation(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(newMockUserRepo(), newMockSessionRepo(), fakeHasher{}, fakeQRGenerator{})

	tests := []struct {
		name string
		in   domain.RegisterInput
	}{
		{
			name: "bad check digit",
			in:   domain.RegisterInput{Name: "Ana", LastName: "Rojas", RUT: "12345678-9", Email: "a@b.cl", Origin: "inacap", Affiliation: "alumno"},
		},
		{
			name: "bad email",
			in:   domain.RegisterInput{Name: "Ana", LastName: "Rojas", RUT: "12345678-5", Email: "not-an-email", Origin: "inacap", Affiliation: "alumno"},
		},
		{
			name: "inacap origin without affiliation",
			in:   domain.RegisterInput{Name: "Ana", LastName: "Rojas", RUT: "12345678-5", Email: "a@b.cl", Origin: "inacap"},
		},
		{
			name: "external origin without institution",
			in:   domain.RegisterInput{Name: "Ana", LastName: "Rojas", RUT: "12345678-5", Email: "a@b.cl", Origin: "externo"},
		},
		{
			name: "unknown origin",
			in:   domain.RegisterInput{Name: "Ana", LastName: "Rojas", RUT: "12345678-5", Email: "a@b.cl", Origin: "marte"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tt.in)
			require.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestUserService_Register_duplicates(t *testing.T) {
	ctx := context.Background()
	existing := &domain.User{ID: "user-1", RUT: "123456785", Email: "ana@example.com"}
	svc := NewUserService(newMockUserRepo(existing), newMockSessionRepo(), fakeHasher{}, fakeQRGenerator{})

	_, err := svc.Register(ctx, domain.RegisterInput{
		Name: "Otra", LastName: "Persona", RUT: "11111111-1",
		Email: "ana@example.com", Origin: "externo", Institution: "Acme",
	})
	require.ErrorIs(t, err, domain.ErrDuplicateEmail)

	_, err = svc.Register(ctx, domain.RegisterInput{
		Name: "Otra", LastName: "Persona", RUT: "12345678-5",
		Email: "otra@example.com", Origin: "externo", Institution: "Acme",
	})
	require.ErrorIs(t, err, domain.ErrDuplicateRUT)
}

func TestUserService_SetVisibility(t *testing.T) {
	ctx := context.Background()
	member := &domain.User{ID: "user-1", Role: domain.RoleMember, PublicProfile: true}
	userRepo := newMockUserRepo(member)
	svc := NewUserService(userRepo, newMockSessionRepo(), fakeHasher{}, fakeQRGenerator{})

	owner := &domain.Actor{User: member}
	admin := actorWithRole(domain.RoleAdmin)

	// The owner may hide and publish freely.
	require.NoError(t, svc.SetVisibility(ctx, owner, "user-1", false))
	require.NoError(t, svc.SetVisibility(ctx, owner, "user-1", true))

	// An admin may hide a profile but never publish one for the member.
	require.NoError(t, svc.SetVisibility(ctx, admin, "user-1", false))
	err := svc.SetVisibility(ctx, admin, "user-1", true)
	require.ErrorIs(t, err, domain.ErrForbidden)
	require.False(t, userRepo.users["user-1"].PublicProfile)

	// Helpers get no visibility control at all.
	err = svc.SetVisibility(ctx, actorWithRole(domain.RoleHelper), "user-1", false)
	require.ErrorIs(t, err, domain.ErrForbidden)
}

func TestUserService_Delete(t *testing.T) {
	ctx := context.Background()
	member := &domain.User{ID: "user-1", Role: domain.RoleMember}
	admin := &domain.User{ID: "admin-1", Role: domain.RoleAdmin}
	userRepo := newMockUserRepo(member, admin)
	sessionRepo := newMockSessionRepo()
	svc := NewUserService(userRepo, sessionRepo, fakeHasher{}, fakeQRGenerator{})

	require.NoError(t, sessionRepo.Create(ctx, &domain.AuthSession{ID: "sess-1", UserID: "user-1", ExpiresAt: time.Now().Add(time.Hour)}))

	err := svc.Delete(ctx, &domain.Actor{User: admin}, "admin-1")
	require.ErrorIs(t, err, domain.ErrInvalidInput, "admins must not delete themselves through the admin endpoint")

	err = svc.Delete(ctx, actorWithRole(domain.RoleHelper), "user-1")
	require.ErrorIs(t, err, domain.ErrForbidden)

	require.NoError(t, svc.Delete(ctx, &domain.Actor{User: admin}, "user-1"))
	_, err = svc.GetByID(ctx, &domain.Actor{User: admin}, "user-1")
	require.ErrorIs(t, err, domain.ErrUserNotFound)

	// Deleting the account also revokes its live sessions.
	_, err = sessionRepo.Get(ctx, "sess-1")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserService_DeleteSelf_revokes_sessions(t *testing.T) {
	ctx := context.Background()
	member := &domain.User{ID: "user-1", Role: domain.RoleMember}
	sessionRepo := newMockSessionRepo()
	svc := NewUserService(newMockUserRepo(member), sessionRepo, fakeHasher{}, fakeQRGenerator{})

	require.NoError(t, sessionRepo.Create(ctx, &domain.AuthSession{ID: "sess-1", UserID: "user-1", ExpiresAt: time.Now().Add(time.Hour)}))
	require.NoError(t, sessionRepo.Create(ctx, &domain.AuthSession{ID: "sess-2", UserID: "user-2", ExpiresAt: time.Now().Add(time.Hour)}))

	require.NoError(t, svc.DeleteSelf(ctx, &domain.Actor{User: member}))

	_, err := sessionRepo.Get(ctx, "sess-1")
	require.ErrorIs(t, err, domain.ErrNotFound)
	// Other accounts' sessions are untouched.
	_, err = sessionRepo.Get(ctx, "sess-2")
	require.NoError(t, err)
}

func TestUserService_Directory_hides_private_profiles(t *testing.T) {
	ctx := context.Background()
	public := &domain.User{ID: "user-1", Name: "Ana", LastName: "Rojas", PublicProfile: true, Role: domain.RoleMember}
	hidden := &domain.User{ID: "user-2", Name: "Beto", LastName: "Soto", PublicProfile: false, Role: domain.RoleMember}
	svc := NewUserService(newMockUserRepo(public, hidden), newMockSessionRepo(), fakeHasher{}, fakeQRGenerator{})

	views, err := svc.Directory(ctx, &domain.Actor{User: public}, domain.DirectoryFilter{})
	require.NoError(t, err)
	require.Len(t, views, 1)
	require.Equal(t, "user-1", views[0].ID)

	// The hidden member still sees their own card.
	views, err = svc.Directory(ctx, &domain.Actor{User: hidden}, domain.DirectoryFilter{})
	require.NoError(t, err)
	require.Len(t, views, 2)

	views, err = svc.Directory(ctx, actorWithRole(domain.RoleAdmin), domain.DirectoryFilter{})
	require.NoError(t, err)
	require.Len(t, views, 2)
}

func TestUserService_Directory_excludes_admin_accounts(t *testing.T) {
	ctx := context.Background()
	member := &domain.User{ID: "user-1", Name: "Ana", LastName: "Rojas", PublicProfile: true, Role: domain.RoleMember}
	admin := &domain.User{ID: "admin-1", Name: "Carla", LastName: "Muñoz", PublicProfile: true, Role: domain.RoleAdmin}
	svc := NewUserService(newMockUserRepo(member, admin), newMockSessionRepo(), fakeHasher{}, fakeQRGenerator{})

	// Admin accounts never appear, not even to another admin.
	for _, viewer := range []*domain.Actor{{User: member}, {User: admin}} {
		views, err := svc.Directory(ctx, viewer, domain.DirectoryFilter{})
		require.NoError(t, err)
		require.Len(t, views, 1)
		require.Equal(t, "user-1", views[0].ID)
	}
}

func TestUserService_AdminUpdate_role_changes(t *testing.T) {
	ctx := context.Background()
	member := &domain.User{ID: "user-1", Name: "Ana", LastName: "Rojas", RUT: "123456785", Email: "ana@example.com", Role: domain.RoleMember}
	userRepo := newMockUserRepo(member)
	svc := NewUserService(userRepo, newMockSessionRepo(), fakeHasher{}, fakeQRGenerator{})

	promoted := *member
	promoted.Role = domain.RoleHelper

	// Helpers edit profiles but cannot touch roles.
	err := svc.AdminUpdate(ctx, actorWithRole(domain.RoleHelper), &promoted)
	require.ErrorIs(t, err, domain.ErrForbidden)

	require.NoError(t, svc.AdminUpdate(ctx, actorWithRole(domain.RoleAdmin), &promoted))
	require.Equal(t, domain.RoleHelper, userRepo.users["user-1"].Role)

	invalid := promoted
	invalid.Role = "superuser"
	err = svc.AdminUpdate(ctx, actorWithRole(domain.RoleAdmin), &invalid)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}
