package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"

	"github.com/Litjoaco/inacap/internal/domain"
)

func TestUserRepository_Create(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		user    *domain.User
		mock    func(mock sqlmock.Sqlmock)
		wantErr bool
		errIs   error
	}{
		{
			name: "success",
			user: &domain.User{
				Name:     "Alice",
				LastName: "Rojas",
				RUT:      "123456785",
				Email:    "alice@example.com",
				Role:     domain.RoleMember,
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO users`).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("user-uuid-1"))
			},
		},
		{
			name: "duplicate rut",
			user: &domain.User{RUT: "123456785", Email: "b@example.com", Role: domain.RoleMember},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO users`).
					WillReturnError(&pq.Error{Code: "23505", Constraint: "users_rut_key"})
			},
			wantErr: true,
			errIs:   domain.ErrDuplicateRUT,
		},
		{
			name: "duplicate email",
			user: &domain.User{RUT: "111111111", Email: "taken@example.com", Role: domain.RoleMember},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO users`).
					WillReturnError(&pq.Error{Code: "23505", Constraint: "users_email_lower_key"})
			},
			wantErr: true,
			errIs:   domain.ErrDuplicateEmail,
		},
		{
			name: "db error",
			user: &domain.User{RUT: "111111111", Email: "a@b.com", Role: domain.RoleMember},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO users`).WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewUserRepository(db)
			err = repo.Create(ctx, tt.user)
			if tt.wantErr {
				require.Error(t, err)
				if tt.errIs != nil {
					require.ErrorIs(t, err, tt.errIs)
				}
			} else {
				require.NoError(t, err)
				require.Equal(t, "user-uuid-1", tt.user.ID)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_IncrementAttendance(t *testing.T) {
	ctx := context.Background()

	t.Run("returns committed value", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`UPDATE users`).
			WithArgs("user-1").
			WillReturnRows(sqlmock.NewRows([]string{"attendance_count"}).AddRow(4))

		repo := NewUserRepository(db)
		count, err := repo.IncrementAttendance(ctx, "user-1")
		require.NoError(t, err)
		require.Equal(t, 4, count)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown user", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`UPDATE users`).
			WithArgs("nope").
			WillReturnError(sql.ErrNoRows)

		repo := NewUserRepository(db)
		_, err = repo.IncrementAttendance(ctx, "nope")
		require.ErrorIs(t, err, domain.ErrUserNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_DecrementAttendance(t *testing.T) {
	ctx := context.Background()

	// The statement's WHERE attendance_count > 0 clamps at zero: a second
	// decrement simply affects no rows and is not an error.
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`UPDATE users`).
		WithArgs("user-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewUserRepository(db)
	require.NoError(t, repo.DecrementAttendance(ctx, "user-1"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByEmail(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	cols := []string{
		"id", "name", "last_name", "rut", "email", "password_hash", "salt", "phone",
		"affiliation", "affiliation_other", "campus", "campus_other", "program", "program_other", "institution",
		"photo_path", "qr_path", "emoji_tag", "role", "attendance_count", "public_profile", "featured",
		"created_at", "updated_at",
	}
	mock.ExpectQuery(`SELECT (.+) FROM users`).
		WithArgs("Alice@Example.com").
		WillReturnRows(sqlmock.NewRows(cols).AddRow(
			"user-1", "Alice", "Rojas", "123456785", "alice@example.com", "hash", "salt", "",
			"estudiante", "", "Valdivia", "", "ing_informatica", "", "",
			"", "qr/user-1.png", "🚀💡🌟", "member", 2, true, false,
			now, now,
		))

	repo := NewUserRepository(db)
	u, err := repo.GetByEmail(ctx, "Alice@Example.com")
	require.NoError(t, err)
	require.Equal(t, domain.RoleMember, u.Role)
	require.Equal(t, 2, u.AttendanceCount)
	require.NoError(t, mock.ExpectationsWereMet())
}
