package services

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/Litjoaco/inacap/internal/domain"
)

// Map-backed in-memory doubles shared by the service tests.

type mockUserRepo struct {
	users     map[string]*domain.User
	createErr error
	nextID    int
}

func newMockUserRepo(users ...*domain.User) *mockUserRepo {
	m := &mockUserRepo{users: map[string]*domain.User{}}
	for _, u := range users {
		m.users[u.ID] = u
	}
	return m
}

func (m *mockUserRepo) Create(ctx context.Context, user *domain.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	for _, u := range m.users {
		if u.Email == user.Email {
			return domain.ErrDuplicateEmail
		}
		if u.RUT == user.RUT {
			return domain.ErrDuplicateRUT
		}
	}
	m.nextID++
	user.ID = "user-" + strconv.Itoa(m.nextID)
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (m *mockUserRepo) Update(ctx context.Context, user *domain.User) error {
	if _, ok := m.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) UpdatePassword(ctx context.Context, userID, passwordHash, salt string) error {
	u, ok := m.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	u.Salt = salt
	return nil
}

func (m *mockUserRepo) SetQRPath(ctx context.Context, userID, qrPath string) error {
	u, ok := m.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.QRPath = qrPath
	return nil
}

func (m *mockUserRepo) SetPublicProfile(ctx context.Context, userID string, public bool) error {
	u, ok := m.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PublicProfile = public
	return nil
}

func (m *mockUserRepo) SetFeatured(ctx context.Context, userID string, featured bool) error {
	u, ok := m.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Featured = featured
	return nil
}

func (m *mockUserRepo) Delete(ctx context.Context, id string) error {
	if _, ok := m.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(m.users, id)
	return nil
}

func (m *mockUserRepo) Search(ctx context.Context, filter domain.DirectoryFilter) ([]*domain.User, error) {
	ids := make([]string, 0, len(m.users))
	for id := range m.users {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	users := make([]*domain.User, 0, len(ids))
	for _, id := range ids {
		users = append(users, m.users[id])
	}
	return users, nil
}

func (m *mockUserRepo) IncrementAttendance(ctx context.Context, userID string) (int, error) {
	u, ok := m.users[userID]
	if !ok {
		return 0, domain.ErrUserNotFound
	}
	u.AttendanceCount++
	return u.AttendanceCount, nil
}

func (m *mockUserRepo) DecrementAttendance(ctx context.Context, userID string) error {
	u, ok := m.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	if u.AttendanceCount > 0 {
		u.AttendanceCount--
	}
	return nil
}

type mockRosterRepo struct {
	attendees  map[string]bool // "event:user"
	interested map[string]bool
}

func newMockRosterRepo() *mockRosterRepo {
	return &mockRosterRepo{attendees: map[string]bool{}, interested: map[string]bool{}}
}

func rosterKey(eventID, userID string) string { return eventID + ":" + userID }

func (m *mockRosterRepo) AddAttendee(ctx context.Context, eventID, userID string) (bool, error) {
	key := rosterKey(eventID, userID)
	if m.attendees[key] {
		return false, nil
	}
	m.attendees[key] = true
	return true, nil
}

func (m *mockRosterRepo) RemoveAttendee(ctx context.Context, eventID, userID string) (bool, error) {
	key := rosterKey(eventID, userID)
	if !m.attendees[key] {
		return false, nil
	}
	delete(m.attendees, key)
	return true, nil
}

func (m *mockRosterRepo) IsAttendee(ctx context.Context, eventID, userID string) (bool, error) {
	return m.attendees[rosterKey(eventID, userID)], nil
}

func (m *mockRosterRepo) ListAttendees(ctx context.Context, eventID string) ([]*domain.User, error) {
	return nil, nil
}

func (m *mockRosterRepo) AddInterest(ctx context.Context, eventID, userID string) (bool, error) {
	key := rosterKey(eventID, userID)
	if m.interested[key] {
		return false, nil
	}
	m.interested[key] = true
	return true, nil
}

func (m *mockRosterRepo) RemoveInterest(ctx context.Context, eventID, userID string) (bool, error) {
	key := rosterKey(eventID, userID)
	if !m.interested[key] {
		return false, nil
	}
	delete(m.interested, key)
	return true, nil
}

func (m *mockRosterRepo) ListInterested(ctx context.Context, eventID string) ([]*domain.User, error) {
	return nil, nil
}

func (m *mockRosterRepo) ListAttendedEventIDs(ctx context.Context, userID string) ([]string, error) {
	var ids []string
	for key := range m.attendees {
		eventID, uid, _ := strings.Cut(key, ":")
		if uid == userID {
			ids = append(ids, eventID)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

type mockEventRepo struct {
	events             map[string]*domain.Event
	withAttendees      []*domain.Event
	earliestUpcomingID string
}

func newMockEventRepo(events ...*domain.Event) *mockEventRepo {
	m := &mockEventRepo{events: map[string]*domain.Event{}}
	for _, e := range events {
		m.events[e.ID] = e
	}
	return m
}

func (m *mockEventRepo) Create(ctx context.Context, event *domain.Event) error {
	event.ID = "event-" + strconv.Itoa(len(m.events)+1)
	m.events[event.ID] = event
	return nil
}

func (m *mockEventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	e, ok := m.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return e, nil
}

func (m *mockEventRepo) Update(ctx context.Context, event *domain.Event) error {
	if _, ok := m.events[event.ID]; !ok {
		return domain.ErrNotFound
	}
	m.events[event.ID] = event
	return nil
}

func (m *mockEventRepo) Delete(ctx context.Context, id string) error {
	if _, ok := m.events[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.events, id)
	return nil
}

func (m *mockEventRepo) List(ctx context.Context) ([]*domain.Event, error) {
	ids := make([]string, 0, len(m.events))
	for id := range m.events {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	events := make([]*domain.Event, 0, len(ids))
	for _, id := range ids {
		events = append(events, m.events[id])
	}
	return events, nil
}

func (m *mockEventRepo) ListUpcoming(ctx context.Context, from time.Time) ([]*domain.Event, error) {
	var events []*domain.Event
	for _, e := range m.events {
		if !e.StartsAt.Before(from) {
			events = append(events, e)
		}
	}
	sort.Slice(events, func(i, j int) bool { return events[i].StartsAt.Before(events[j].StartsAt) })
	return events, nil
}

func (m *mockEventRepo) ListWithAttendees(ctx context.Context) ([]*domain.Event, error) {
	return m.withAttendees, nil
}

func (m *mockEventRepo) EarliestUpcomingID(ctx context.Context, from time.Time) (string, error) {
	if m.earliestUpcomingID == "" {
		return "", domain.ErrNotFound
	}
	return m.earliestUpcomingID, nil
}

type mockSessionRepo struct {
	sessions map[string]*domain.AuthSession
}

func newMockSessionRepo() *mockSessionRepo {
	return &mockSessionRepo{sessions: map[string]*domain.AuthSession{}}
}

func (m *mockSessionRepo) Create(ctx context.Context, session *domain.AuthSession) error {
	m.sessions[session.ID] = session
	return nil
}

func (m *mockSessionRepo) Get(ctx context.Context, id string) (*domain.AuthSession, error) {
	s, ok := m.sessions[id]
	if !ok || s.ExpiresAt.Before(time.Now()) {
		return nil, domain.ErrNotFound
	}
	return s, nil
}

func (m *mockSessionRepo) Delete(ctx context.Context, id string) error {
	if _, ok := m.sessions[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.sessions, id)
	return nil
}

func (m *mockSessionRepo) DeleteByUserID(ctx context.Context, userID string) error {
	for id, s := range m.sessions {
		if s.UserID == userID {
			delete(m.sessions, id)
		}
	}
	return nil
}

type mockSurveyRepo struct {
	surveys   map[string]*domain.Survey
	responses map[string]*domain.SurveyResponse
	nextID    int
}

func newMockSurveyRepo(surveys ...*domain.Survey) *mockSurveyRepo {
	m := &mockSurveyRepo{surveys: map[string]*domain.Survey{}, responses: map[string]*domain.SurveyResponse{}}
	for _, s := range surveys {
		m.surveys[s.ID] = s
	}
	return m
}

func (m *mockSurveyRepo) Create(ctx context.Context, survey *domain.Survey) error {
	for _, s := range m.surveys {
		if s.EventID == survey.EventID {
			return domain.ErrConflict
		}
	}
	m.nextID++
	survey.ID = "survey-" + strconv.Itoa(m.nextID)
	m.surveys[survey.ID] = survey
	return nil
}

func (m *mockSurveyRepo) GetByID(ctx context.Context, id string) (*domain.Survey, error) {
	s, ok := m.surveys[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return s, nil
}

func (m *mockSurveyRepo) GetByEventID(ctx context.Context, eventID string) (*domain.Survey, error) {
	for _, s := range m.surveys {
		if s.EventID == eventID {
			return s, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockSurveyRepo) Delete(ctx context.Context, id string) error {
	if _, ok := m.surveys[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.surveys, id)
	return nil
}

func (m *mockSurveyRepo) List(ctx context.Context) ([]*domain.Survey, error) {
	return nil, nil
}

func (m *mockSurveyRepo) CreateResponse(ctx context.Context, resp *domain.SurveyResponse) error {
	for _, r := range m.responses {
		if r.SurveyID == resp.SurveyID && r.UserID == resp.UserID {
			return domain.ErrAlreadyResponded
		}
	}
	m.nextID++
	resp.ID = "resp-" + strconv.Itoa(m.nextID)
	m.responses[resp.ID] = resp
	return nil
}

func (m *mockSurveyRepo) GetResponse(ctx context.Context, id string) (*domain.SurveyResponse, error) {
	r, ok := m.responses[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return r, nil
}

func (m *mockSurveyRepo) HasResponded(ctx context.Context, surveyID, userID string) (bool, error) {
	for _, r := range m.responses {
		if r.SurveyID == surveyID && r.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockSurveyRepo) ListResponses(ctx context.Context, surveyID string) ([]*domain.SurveyResponse, error) {
	var resps []*domain.SurveyResponse
	for _, r := range m.responses {
		if r.SurveyID == surveyID {
			resps = append(resps, r)
		}
	}
	return resps, nil
}

func (m *mockSurveyRepo) SetResponseFeatured(ctx context.Context, responseID string, featured bool) error {
	r, ok := m.responses[responseID]
	if !ok {
		return domain.ErrNotFound
	}
	r.Featured = featured
	return nil
}

func (m *mockSurveyRepo) ListTestimonials(ctx context.Context) ([]*domain.SurveyResponse, error) {
	var resps []*domain.SurveyResponse
	for _, r := range m.responses {
		if r.Featured && r.Comment != "" {
			resps = append(resps, r)
		}
	}
	return resps, nil
}

// fakeHasher is a deterministic PasswordHasher stand-in.
type fakeHasher struct{}

func (fakeHasher) GenerateSalt() (string, error) { return "salt", nil }

func (fakeHasher) Hash(salt, password string) (string, error) {
	return "hash:" + salt + ":" + password, nil
}

func (fakeHasher) Compare(hash, salt, password string) error {
	if hash != "hash:"+salt+":"+password {
		return fmt.Errorf("hash mismatch")
	}
	return nil
}

type fakeIssuer struct{}

func (fakeIssuer) Issue(userID, email, sessionID string, role domain.Role, expiry time.Duration) (string, error) {
	return "token:" + userID + ":" + sessionID, nil
}

type fakeQRGenerator struct{}

func (fakeQRGenerator) Generate(userID string) (string, error) {
	return "media/qr_codes/qr_usuario_" + userID + ".png", nil
}

func actorWithRole(role domain.Role) *domain.Actor {
	return &domain.Actor{User: &domain.User{ID: "actor-" + string(role), Role: role}}
}
