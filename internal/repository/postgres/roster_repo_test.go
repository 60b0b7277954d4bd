package postgres

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestRosterRepository_AddAttendee(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		mock      func(mock sqlmock.Sqlmock)
		wantAdded bool
		wantErr   bool
	}{
		{
			name: "inserted",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO event_attendees`).
					WithArgs("event-1", "user-1").
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
			wantAdded: true,
		},
		{
			// ON CONFLICT DO NOTHING: the losing side of a duplicate scan
			// affects zero rows and must report added=false.
			name: "already on roster",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO event_attendees`).
					WithArgs("event-1", "user-1").
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			wantAdded: false,
		},
		{
			name: "db error",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO event_attendees`).
					WillReturnError(sql.ErrConnDone)
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
			repo := NewRosterRepository(db)
			added, err := repo.AddAttendee(ctx, "event-1", "user-1")
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				require.Equal(t, tt.wantAdded, added)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRosterRepository_RemoveAttendee(t *testing.T) {
	ctx := context.Background()

	t.Run("removed", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`DELETE FROM event_attendees`).
			WithArgs("event-1", "user-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo := NewRosterRepository(db)
		removed, err := repo.RemoveAttendee(ctx, "event-1", "user-1")
		require.NoError(t, err)
		require.True(t, removed)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("absent is a no-op", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`DELETE FROM event_attendees`).
			WithArgs("event-1", "user-1").
			WillReturnResult(sqlmock.NewResult(0, 0))

		repo := NewRosterRepository(db)
		removed, err := repo.RemoveAttendee(ctx, "event-1", "user-1")
		require.NoError(t, err)
		require.False(t, removed)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRosterRepository_IsAttendee(t *testing.T) {
	ctx := context.Background()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("event-1", "user-1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	repo := NewRosterRepository(db)
	ok, err := repo.IsAttendee(ctx, "event-1", "user-1")
	require.NoError(t, err)
	require.True(t, ok)
	require.NoError(t, mock.ExpectationsWereMet())
}
