package handler_test

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pulseboard/pulseboard/internal/auth"
	"github.com/pulseboard/pulseboard/internal/feedback"
	"github.com/pulseboard/pulseboard/internal/profile"
)

// envelope mirrors the response wrapper for decoding in tests.
type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string          `json:"code"`
		Message string          `json:"message"`
		Details json.RawMessage `json:"details"`
	} `json:"error"`
	Meta struct {
		RequestID string `json:"requestId"`
		Total     int    `json:"total"`
	} `json:"meta"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func decodeData(t *testing.T, env envelope, dest any) {
	t.Helper()
	require.NotNil(t, env.Data)
	require.NoError(t, json.Unmarshal(env.Data, dest))
}

// stubResolver always resolves to a fixed identity; nil means anonymous.
type stubResolver struct {
	identity *auth.Identity
}

func (s stubResolver) Resolve(context.Context, string) *auth.Identity {
	return s.identity
}

func testIdentity() *auth.Identity {
	return &auth.Identity{ID: uuid.New(), Email: "ada@example.com"}
}

// --- auth fakes, backing a real auth.Service ---

type fakeAccountRepo struct {
	byEmail map[string]*auth.Account
	byID    map[uuid.UUID]*auth.Account
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{
		byEmail: make(map[string]*auth.Account),
		byID:    make(map[uuid.UUID]*auth.Account),
	}
}

func (f *fakeAccountRepo) Create(_ context.Context, a *auth.Account) error {
	if _, ok := f.byEmail[a.Email]; ok {
		return auth.ErrEmailTaken
	}
	a.ID = uuid.New()
	stored := *a
	f.byEmail[a.Email] = &stored
	f.byID[a.ID] = &stored
	return nil
}

func (f *fakeAccountRepo) GetByID(_ context.Context, id uuid.UUID) (*auth.Account, error) {
	a, ok := f.byID[id]
	if !ok {
		return nil, auth.ErrAccountNotFound
	}
	return a, nil
}

func (f *fakeAccountRepo) GetByEmail(_ context.Context, email string) (*auth.Account, error) {
	a, ok := f.byEmail[email]
	if !ok {
		return nil, auth.ErrAccountNotFound
	}
	return a, nil
}

type memorySessionStore struct {
	sessions map[string]uuid.UUID
}

func newMemorySessionStore() *memorySessionStore {
	return &memorySessionStore{sessions: make(map[string]uuid.UUID)}
}

func (m *memorySessionStore) Create(_ context.Context, accountID uuid.UUID) (string, error) {
	token := "tok-" + uuid.New().String()
	m.sessions[token] = accountID
	return token, nil
}

func (m *memorySessionStore) Get(_ context.Context, token string) (uuid.UUID, error) {
	id, ok := m.sessions[token]
	if !ok {
		return uuid.Nil, auth.ErrSessionNotFound
	}
	return id, nil
}

func (m *memorySessionStore) Delete(_ context.Context, token string) error {
	delete(m.sessions, token)
	return nil
}

func newAuthService() *auth.Service {
	return auth.NewService(newFakeAccountRepo(), newMemorySessionStore(), 4)
}

// --- feedback fake ---

type fakeFeedbackRepo struct {
	items []feedback.Item

	createErr error
	listErr   error
	countFn   func(status *feedback.Status) (int, error)
}

func (f *fakeFeedbackRepo) List(_ context.Context, filter feedback.Filter, limit int) ([]feedback.Item, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]feedback.Item, 0, len(f.items))
	for _, it := range f.items {
		if filter != feedback.FilterAll && string(it.Status) != string(filter) {
			continue
		}
		out = append(out, it)
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeFeedbackRepo) CountByStatus(_ context.Context, status *feedback.Status) (int, error) {
	if f.countFn != nil {
		return f.countFn(status)
	}
	n := 0
	for _, it := range f.items {
		if status == nil || it.Status == *status {
			n++
		}
	}
	return n, nil
}

func (f *fakeFeedbackRepo) Create(_ context.Context, item *feedback.Item) error {
	if f.createErr != nil {
		return f.createErr
	}
	item.ID = uuid.New()
	f.items = append(f.items, *item)
	return nil
}

// --- profile fake ---

type fakeProfileRepo struct {
	profiles map[uuid.UUID]*profile.UserProfile
	getErr   error
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[uuid.UUID]*profile.UserProfile)}
}

func (f *fakeProfileRepo) Create(_ context.Context, p *profile.UserProfile) error {
	if _, ok := f.profiles[p.ID]; ok {
		return profile.ErrProfileExists
	}
	stored := *p
	f.profiles[p.ID] = &stored
	return nil
}

func (f *fakeProfileRepo) GetByID(_ context.Context, id uuid.UUID) (*profile.UserProfile, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	p, ok := f.profiles[id]
	if !ok {
		return nil, profile.ErrProfileNotFound
	}
	return p, nil
}

func (f *fakeProfileRepo) CountAll(_ context.Context) (int, error) {
	return len(f.profiles), nil
}

func profileFor(id uuid.UUID) *profile.UserProfile {
	return &profile.UserProfile{
		ID:         id,
		FirstName:  "Ada",
		LastName:   "Lovelace",
		Email:      "ada@example.com",
		Department: "Engineering",
		Position:   "Analyst",
	}
}
