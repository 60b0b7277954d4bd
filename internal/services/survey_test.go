package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Litjoaco/inacap/internal/domain"
)

func TestSurveyService_Respond(t *testing.T) {
	ctx := context.Background()
	member := &domain.User{ID: "user-1", Role: domain.RoleMember}
	actor := &domain.Actor{User: member}
	survey := &domain.Survey{ID: "survey-1", EventID: "event-1", Title: "Encuesta", Active: true}

	rosterRepo := newMockRosterRepo()
	rosterRepo.attendees["event-1:user-1"] = true
	surveyRepo := newMockSurveyRepo(survey)
	svc := NewSurveyService(surveyRepo, newMockEventRepo(testEvent("event-1", false)), rosterRepo)

	resp, err := svc.Respond(ctx, actor, "survey-1", 5, "  Excelente charla  ")
	require.NoError(t, err)
	require.Equal(t, 5, resp.Score)
	require.Equal(t, "Excelente charla", resp.Comment)

	// One answer per member per survey.
	_, err = svc.Respond(ctx, actor, "survey-1", 4, "")
	require.ErrorIs(t, err, domain.ErrAlreadyResponded)
}

func TestSurveyService_Respond_guards(t *testing.T) {
	ctx := context.Background()
	member := &domain.User{ID: "user-1", Role: domain.RoleMember}
	actor := &domain.Actor{User: member}

	active := &domain.Survey{ID: "survey-1", EventID: "event-1", Active: true}
	inactive := &domain.Survey{ID: "survey-2", EventID: "event-2", Active: false}
	rosterRepo := newMockRosterRepo()
	rosterRepo.attendees["event-2:user-1"] = true
	svc := NewSurveyService(newMockSurveyRepo(active, inactive), newMockEventRepo(), rosterRepo)

	// Did not attend the event.
	_, err := svc.Respond(ctx, actor, "survey-1", 5, "")
	require.ErrorIs(t, err, domain.ErrDidNotAttend)

	// Survey closed.
	_, err = svc.Respond(ctx, actor, "survey-2", 5, "")
	require.ErrorIs(t, err, domain.ErrSurveyInactive)

	// Score out of range.
	_, err = svc.Respond(ctx, actor, "survey-1", 0, "")
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = svc.Respond(ctx, actor, "survey-1", 6, "")
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSurveyService_Create_one_per_event(t *testing.T) {
	ctx := context.Background()
	svc := NewSurveyService(newMockSurveyRepo(), newMockEventRepo(testEvent("event-1", false)), newMockRosterRepo())
	admin := actorWithRole(domain.RoleAdmin)

	_, err := svc.Create(ctx, admin, "event-1", "Encuesta de Satisfacción")
	require.NoError(t, err)

	_, err = svc.Create(ctx, admin, "event-1", "Otra Encuesta")
	require.ErrorIs(t, err, domain.ErrConflict)
}

func TestSurveyService_Responses_average(t *testing.T) {
	ctx := context.Background()
	survey := &domain.Survey{ID: "survey-1", EventID: "event-1", Active: true}
	surveyRepo := newMockSurveyRepo(survey)
	surveyRepo.responses["r1"] = &domain.SurveyResponse{ID: "r1", SurveyID: "survey-1", UserID: "u1", Score: 5}
	surveyRepo.responses["r2"] = &domain.SurveyResponse{ID: "r2", SurveyID: "survey-1", UserID: "u2", Score: 4}
	svc := NewSurveyService(surveyRepo, newMockEventRepo(), newMockRosterRepo())

	result, err := svc.Responses(ctx, actorWithRole(domain.RoleAdmin), "survey-1")
	require.NoError(t, err)
	require.Len(t, result.Responses, 2)
	require.NotNil(t, result.Average)
	require.InDelta(t, 4.5, *result.Average, 0.001)
}

func TestSurveyService_Responses_no_answers_has_nil_average(t *testing.T) {
	ctx := context.Background()
	survey := &domain.Survey{ID: "survey-1", EventID: "event-1", Active: true}
	svc := NewSurveyService(newMockSurveyRepo(survey), newMockEventRepo(), newMockRosterRepo())

	result, err := svc.Responses(ctx, actorWithRole(domain.RoleAdmin), "survey-1")
	require.NoError(t, err)
	require.Nil(t, result.Average)
}

func TestSurveyService_PendingForUser(t *testing.T) {
	ctx := context.Background()
	member := &domain.User{ID: "user-1", Role: domain.RoleMember}
	actor := &domain.Actor{User: member}

	answered := &domain.Survey{ID: "survey-1", EventID: "event-1", Active: true}
	pending := &domain.Survey{ID: "survey-2", EventID: "event-2", Active: true}
	closed := &domain.Survey{ID: "survey-3", EventID: "event-3", Active: false}

	rosterRepo := newMockRosterRepo()
	rosterRepo.attendees["event-1:user-1"] = true
	rosterRepo.attendees["event-2:user-1"] = true
	rosterRepo.attendees["event-3:user-1"] = true

	surveyRepo := newMockSurveyRepo(answered, pending, closed)
	surveyRepo.responses["r1"] = &domain.SurveyResponse{ID: "r1", SurveyID: "survey-1", UserID: "user-1", Score: 5}

	eventRepo := newMockEventRepo(
		&domain.Event{ID: "event-1", Title: "Uno", StartsAt: time.Now()},
		&domain.Event{ID: "event-2", Title: "Dos", StartsAt: time.Now()},
		&domain.Event{ID: "event-3", Title: "Tres", StartsAt: time.Now()},
	)
	svc := NewSurveyService(surveyRepo, eventRepo, rosterRepo)

	result, err := svc.PendingForUser(ctx, actor)
	require.NoError(t, err)
	require.Len(t, result, 1)
	require.Equal(t, "survey-2", result[0].Survey.ID)
	require.Equal(t, "Dos", result[0].Event.Title)
}

func TestSurveyService_management_is_admin_only(t *testing.T) {
	ctx := context.Background()
	survey := &domain.Survey{ID: "survey-1", EventID: "event-1", Active: true}
	svc := NewSurveyService(newMockSurveyRepo(survey), newMockEventRepo(testEvent("event-2", false)), newMockRosterRepo())
	helper := actorWithRole(domain.RoleHelper)

	_, err := svc.Create(ctx, helper, "event-2", "Encuesta")
	require.ErrorIs(t, err, domain.ErrForbidden)

	_, err = svc.List(ctx, helper)
	require.ErrorIs(t, err, domain.ErrForbidden)

	_, err = svc.Responses(ctx, helper, "survey-1")
	require.ErrorIs(t, err, domain.ErrForbidden)

	_, err = svc.ToggleResponseFeatured(ctx, helper, "r1")
	require.ErrorIs(t, err, domain.ErrForbidden)
}

func TestSurveyService_Delete_admin_only(t *testing.T) {
	ctx := context.Background()
	survey := &domain.Survey{ID: "survey-1", EventID: "event-1"}
	svc := NewSurveyService(newMockSurveyRepo(survey), newMockEventRepo(), newMockRosterRepo())

	err := svc.Delete(ctx, actorWithRole(domain.RoleHelper), "survey-1")
	require.ErrorIs(t, err, domain.ErrForbidden)

	require.NoError(t, svc.Delete(ctx, actorWithRole(domain.RoleAdmin), "survey-1"))
}
