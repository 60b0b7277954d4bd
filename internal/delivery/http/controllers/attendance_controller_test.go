package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Litjoaco/inacap/internal/delivery/http/middleware"
	"github.com/Litjoaco/inacap/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAttendanceService implements domain.AttendanceService for handler tests.
type fakeAttendanceService struct {
	checkInErr  error
	manualAdded bool
	lastEventID string
	lastUserID  string
}

func (f *fakeAttendanceService) ManualAdd(_ context.Context, _ *domain.Actor, eventID, userID string) (*domain.CheckInResult, bool, error) {
	f.lastEventID, f.lastUserID = eventID, userID
	if f.checkInErr != nil {
		return nil, false, f.checkInErr
	}
	return checkInResult(userID), f.manualAdded, nil
}

func (f *fakeAttendanceService) CheckInQR(_ context.Context, _ *domain.Actor, eventID, userID string) (*domain.CheckInResult, error) {
	f.lastEventID, f.lastUserID = eventID, userID
	if f.checkInErr != nil {
		return nil, f.checkInErr
	}
	return checkInResult(userID), nil
}

func (f *fakeAttendanceService) Remove(_ context.Context, _ *domain.Actor, eventID, userID string) (bool, error) {
	f.lastEventID, f.lastUserID = eventID, userID
	return true, f.checkInErr
}

func (f *fakeAttendanceService) ToggleInterest(_ context.Context, _ *domain.Actor, eventID string) (domain.InterestToggle, error) {
	f.lastEventID = eventID
	if f.checkInErr != nil {
		return "", f.checkInErr
	}
	return domain.InterestAdded, nil
}

func (f *fakeAttendanceService) ListAttendees(context.Context, *domain.Actor, string) ([]*domain.User, error) {
	return nil, f.checkInErr
}

func checkInResult(userID string) *domain.CheckInResult {
	return &domain.CheckInResult{
		Attendee:        &domain.PublicProfileView{ID: userID, Name: "Camila"},
		AttendanceCount: 3,
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func requestWithActor(t *testing.T, method, path, body string, role domain.Role) *http.Request {
	t.Helper()
	var buf io.Reader
	if body != "" {
		buf = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, buf)
	req.Header.Set("Content-Type", "application/json")
	actor := &domain.Actor{User: &domain.User{ID: "staff-1", Role: role}}
	return req.WithContext(middleware.SetActor(req.Context(), actor))
}

func TestAttendanceController_CheckInQR(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		fakeErr        error
		wantStatus     int
		wantBodySubstr string
	}{
		{
			name:       "success",
			body:       `{"user_id":"user-7"}`,
			wantStatus: http.StatusCreated,
		},
		{
			name:           "duplicate scan",
			body:           `{"user_id":"user-7"}`,
			fakeErr:        domain.ErrAlreadyAttending,
			wantStatus:     http.StatusConflict,
			wantBodySubstr: "conflict",
		},
		{
			name:           "unknown user",
			body:           `{"user_id":"ghost"}`,
			fakeErr:        domain.ErrUserNotFound,
			wantStatus:     http.StatusNotFound,
			wantBodySubstr: "not_found",
		},
		{
			name:           "missing user_id",
			body:           `{"user_id":""}`,
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "user_id is required",
		},
		{
			name:           "invalid json",
			body:           `{invalid`,
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "bad_request",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeAttendanceService{checkInErr: tt.fakeErr}
			ctrl := NewAttendanceController(discardLogger(), fake)
			req := requestWithActor(t, http.MethodPost, "/events/ev-1/checkin", tt.body, domain.RoleKiosk)
			req.SetPathValue("eventID", "ev-1")
			rr := httptest.NewRecorder()

			ctrl.CheckInQR(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code, "status code")
			if tt.wantBodySubstr != "" {
				assert.Contains(t, rr.Body.String(), tt.wantBodySubstr, "response body")
			}
			if tt.wantStatus == http.StatusCreated {
				assert.Equal(t, "ev-1", fake.lastEventID)
				assert.Equal(t, "user-7", fake.lastUserID)
				var out struct {
					Data domain.CheckInResult `json:"data"`
				}
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&out))
				assert.Equal(t, 3, out.Data.AttendanceCount)
			}
		})
	}
}

func TestAttendanceController_ManualAdd(t *testing.T) {
	t.Run("new attendee returns 201", func(t *testing.T) {
		fake := &fakeAttendanceService{manualAdded: true}
		ctrl := NewAttendanceController(discardLogger(), fake)
		req := requestWithActor(t, http.MethodPost, "/events/ev-1/attendees", `{"user_id":"user-7"}`, domain.RoleHelper)
		req.SetPathValue("eventID", "ev-1")
		rr := httptest.NewRecorder()

		ctrl.ManualAdd(rr, req)

		require.Equal(t, http.StatusCreated, rr.Code)
		var out struct {
			Data manualAddResponse `json:"data"`
		}
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&out))
		assert.True(t, out.Data.Added)
	})

	t.Run("existing attendee returns 200 with added false", func(t *testing.T) {
		fake := &fakeAttendanceService{manualAdded: false}
		ctrl := NewAttendanceController(discardLogger(), fake)
		req := requestWithActor(t, http.MethodPost, "/events/ev-1/attendees", `{"user_id":"user-7"}`, domain.RoleHelper)
		req.SetPathValue("eventID", "ev-1")
		rr := httptest.NewRecorder()

		ctrl.ManualAdd(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var out struct {
			Data manualAddResponse `json:"data"`
		}
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&out))
		assert.False(t, out.Data.Added)
	})

	t.Run("without actor returns 401", func(t *testing.T) {
		ctrl := NewAttendanceController(discardLogger(), &fakeAttendanceService{})
		req := httptest.NewRequest(http.MethodPost, "/events/ev-1/attendees", bytes.NewBufferString(`{"user_id":"u"}`))
		rr := httptest.NewRecorder()

		ctrl.ManualAdd(rr, req)

		require.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestAttendanceController_ToggleInterest(t *testing.T) {
	t.Run("toggle reports transition", func(t *testing.T) {
		fake := &fakeAttendanceService{}
		ctrl := NewAttendanceController(discardLogger(), fake)
		req := requestWithActor(t, http.MethodPost, "/events/ev-1/interest", "", domain.RoleMember)
		req.SetPathValue("eventID", "ev-1")
		rr := httptest.NewRecorder()

		ctrl.ToggleInterest(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "added")
	})

	t.Run("confirmed attendance rejected", func(t *testing.T) {
		fake := &fakeAttendanceService{checkInErr: domain.ErrAttendanceConfirmed}
		ctrl := NewAttendanceController(discardLogger(), fake)
		req := requestWithActor(t, http.MethodPost, "/events/ev-1/interest", "", domain.RoleMember)
		req.SetPathValue("eventID", "ev-1")
		rr := httptest.NewRecorder()

		ctrl.ToggleInterest(rr, req)

		require.Equal(t, http.StatusConflict, rr.Code)
	})
}
