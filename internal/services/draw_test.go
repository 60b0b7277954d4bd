package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Litjoaco/inacap/internal/domain"
)

type mockDrawRepo struct {
	records []*domain.DrawRecord
	pool    []*domain.User
}

func (m *mockDrawRepo) Create(ctx context.Context, record *domain.DrawRecord) error {
	m.records = append(m.records, record)
	return nil
}

func (m *mockDrawRepo) ListRecent(ctx context.Context, limit int) ([]*domain.DrawRecord, error) {
	if len(m.records) > limit {
		return m.records[:limit], nil
	}
	return m.records, nil
}

func (m *mockDrawRepo) DeleteAll(ctx context.Context) error {
	m.records = nil
	return nil
}

func (m *mockDrawRepo) ListMemberPool(ctx context.Context) ([]*domain.User, error) {
	return m.pool, nil
}

func TestDrawService_PoolEvents(t *testing.T) {
	ctx := context.Background()
	eventRepo := newMockEventRepo()
	eventRepo.withAttendees = []*domain.Event{
		{ID: "event-1", Title: "Feria de Innovación"},
		{ID: "event-2", Title: "Charla de Egresados"},
	}
	svc := NewDrawService(&mockDrawRepo{}, eventRepo, newMockRosterRepo(), newMockUserRepo())

	events, err := svc.PoolEvents(ctx, actorWithRole(domain.RoleHelper))
	require.NoError(t, err)
	require.Len(t, events, 2)
	require.Equal(t, "event-1", events[0].ID)

	_, err = svc.PoolEvents(ctx, actorWithRole(domain.RoleMember))
	require.ErrorIs(t, err, domain.ErrForbidden)
}

func TestDrawService_Participants(t *testing.T) {
	ctx := context.Background()
	drawRepo := &mockDrawRepo{pool: []*domain.User{
		{ID: "user-1", Name: "María José", LastName: "Pérez", Affiliation: "alumno"},
		{ID: "user-2", Name: "Maximiliano", LastName: "Soto"},
	}}
	svc := NewDrawService(drawRepo, newMockEventRepo(), newMockRosterRepo(), newMockUserRepo())

	participants, err := svc.Participants(ctx, actorWithRole(domain.RoleHelper), domain.PoolAll)
	require.NoError(t, err)
	require.Len(t, participants, 2)
	require.Equal(t, "María José Pérez", participants[0].FullName)
	require.Equal(t, "María", participants[0].ShortName)
	// Long first names are truncated for the wheel.
	require.Equal(t, "Maximilia.", participants[1].ShortName)

	_, err = svc.Participants(ctx, actorWithRole(domain.RoleHelper), "")
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.Participants(ctx, actorWithRole(domain.RoleMember), domain.PoolAll)
	require.ErrorIs(t, err, domain.ErrForbidden)
}

func TestDrawService_RecordWinner_pool_description(t *testing.T) {
	ctx := context.Background()
	winner := &domain.User{ID: "user-1", Name: "Ana", LastName: "Rojas"}
	event := &domain.Event{ID: "event-1", Title: "Feria de Innovación"}
	drawRepo := &mockDrawRepo{}
	svc := NewDrawService(drawRepo, newMockEventRepo(event), newMockRosterRepo(), newMockUserRepo(winner))
	admin := actorWithRole(domain.RoleAdmin)

	record, err := svc.RecordWinner(ctx, admin, "user-1", domain.PoolAll)
	require.NoError(t, err)
	require.Equal(t, "Todos los Usuarios", record.PoolDescription)

	record, err = svc.RecordWinner(ctx, admin, "user-1", "event-1")
	require.NoError(t, err)
	require.Equal(t, "Asistentes a Feria de Innovación", record.PoolDescription)

	// Recording is admin only; helpers run the wheel but can't write history.
	_, err = svc.RecordWinner(ctx, actorWithRole(domain.RoleHelper), "user-1", domain.PoolAll)
	require.ErrorIs(t, err, domain.ErrForbidden)
}

func TestDrawService_ClearHistory(t *testing.T) {
	ctx := context.Background()
	drawRepo := &mockDrawRepo{records: []*domain.DrawRecord{{ID: "draw-1"}}}
	svc := NewDrawService(drawRepo, newMockEventRepo(), newMockRosterRepo(), newMockUserRepo())

	err := svc.ClearHistory(ctx, actorWithRole(domain.RoleHelper))
	require.ErrorIs(t, err, domain.ErrForbidden)

	require.NoError(t, svc.ClearHistory(ctx, actorWithRole(domain.RoleAdmin)))
	require.Empty(t, drawRepo.records)
}
