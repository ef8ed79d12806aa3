package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/fittrack-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/fittrack-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/fittrack-backend/internal/repository"
	"github.com/ahmetcoskunkizilkaya/fittrack-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/fittrack-backend/internal/session"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type stubGoalStore struct {
	mu    sync.Mutex
	goals map[uuid.UUID]models.Goal
	err   error
}

func (s *stubGoalStore) Create(_ context.Context, goal *models.Goal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.goals[goal.ID] = *goal
	return nil
}

func (s *stubGoalStore) ListByUserID(_ context.Context, userID uuid.UUID) ([]models.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	out := []models.Goal{}
	for _, g := range s.goals {
		if g.UserID == userID {
			out = append(out, g)
		}
	}
	return out, nil
}

func (s *stubGoalStore) GetByID(_ context.Context, id uuid.UUID) (*models.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.goals[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &g, nil
}

func (s *stubGoalStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.goals, id)
	return nil
}

type stubProfileStore struct {
	mu       sync.Mutex
	profiles map[uuid.UUID]models.UserProfile
}

func (s *stubProfileStore) GetByUserID(_ context.Context, userID uuid.UUID) (*models.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (s *stubProfileStore) Upsert(_ context.Context, profile *models.UserProfile) (*models.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.profiles[profile.UserID]; ok {
		profile.ID = existing.ID
	} else {
		profile.ID = uuid.New()
	}
	s.profiles[profile.UserID] = *profile
	stored := *profile
	return &stored, nil
}

type testEnv struct {
	app      *fiber.App
	goals    *stubGoalStore
	profiles *stubProfileStore
	userID   uuid.UUID
}

// newTestEnv mounts the goal and profile routes behind a fake session for userID.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		goals:    &stubGoalStore{goals: map[uuid.UUID]models.Goal{}},
		profiles: &stubProfileStore{profiles: map[uuid.UUID]models.UserProfile{}},
		userID:   uuid.New(),
	}
	now := time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	goalHandler := NewGoalHandler(services.NewGoalService(env.goals, time.UTC).WithClock(clock))
	profileHandler := NewProfileHandler(services.NewProfileService(env.profiles, time.UTC).WithClock(clock))

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if c.Get("X-Anonymous") == "" {
			c.Locals(session.LocalsKey, jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
				"sub": env.userID.String(),
			}))
		}
		return c.Next()
	})
	app.Get("/goals", goalHandler.List)
	app.Post("/goals-store", goalHandler.Store)
	app.Delete("/goals-delete/:id", goalHandler.Delete)
	app.Get("/information-board", profileHandler.Show)
	app.Post("/information-board-store", profileHandler.Store)

	env.app = app
	return env
}

func (e *testEnv) do(t *testing.T, method, path, contentType, body string) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	resp, err := e.app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	return resp
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode: %v", err)
	}
}

func (e *testEnv) seedGoal(owner uuid.UUID) uuid.UUID {
	id := uuid.New()
	e.goals.goals[id] = models.Goal{ID: id, UserID: owner}
	return id
}

func TestGoalStoreJSON(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodPost, "/goals-store", fiber.MIMEApplicationJSON,
		`{"start_date":"2025-01-01","end_date":"2025-01-11","actual_weight":82.5,"target_weight":75,"is_success":true}`)
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	var body struct {
		Goal dto.GoalResponse `json:"goal"`
	}
	decode(t, resp, &body)

	if body.Goal.IsSuccess != nil {
		t.Error("client-supplied is_success must be ignored")
	}
	if body.Goal.Status != "active" || body.Goal.ProgressPercent != 50 || body.Goal.DaysRemaining != 5 {
		t.Errorf("unexpected derived fields: %+v", body.Goal)
	}
	if body.Goal.StartDate != "2025-01-01" {
		t.Errorf("expected date-only start, got %q", body.Goal.StartDate)
	}
	if len(env.goals.goals) != 1 {
		t.Errorf("expected one stored goal, got %d", len(env.goals.goals))
	}
}

func TestGoalStoreFormRedirects(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodPost, "/goals-store", fiber.MIMEApplicationForm,
		"start_date=2025-01-01&end_date=2025-01-11&actual_weight=82.5&target_weight=75")
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusSeeOther {
		t.Fatalf("expected 303, got %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/goals" {
		t.Errorf("expected redirect to /goals, got %q", loc)
	}
}

func TestGoalStoreValidation(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodPost, "/goals-store", fiber.MIMEApplicationJSON,
		`{"start_date":"2025-01-11","end_date":"2025-01-01","actual_weight":82.5}`)
	if resp.StatusCode != fiber.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.StatusCode)
	}

	var body dto.ValidationErrorResponse
	decode(t, resp, &body)
	if _, ok := body.Fields["end_date"]; !ok {
		t.Errorf("expected end_date error, got %v", body.Fields)
	}
	if _, ok := body.Fields["target_weight"]; !ok {
		t.Errorf("expected target_weight error, got %v", body.Fields)
	}
	if len(env.goals.goals) != 0 {
		t.Error("nothing should be stored")
	}
}

func TestGoalStoreMalformedBody(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodPost, "/goals-store", fiber.MIMEApplicationJSON, `{"start_date":`)
	resp.Body.Close()
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestGoalListOnlyOwnGoals(t *testing.T) {
	env := newTestEnv(t)
	env.seedGoal(env.userID)
	env.seedGoal(uuid.New())

	resp := env.do(t, http.MethodGet, "/goals", "", "")
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body dto.GoalListResponse
	decode(t, resp, &body)
	if body.Count != 1 || len(body.Goals) != 1 {
		t.Errorf("expected exactly one goal, got %+v", body)
	}
	if body.Today != "2025-01-06" {
		t.Errorf("expected today 2025-01-06, got %q", body.Today)
	}
}

func TestGoalListStoreFailure(t *testing.T) {
	env := newTestEnv(t)
	env.goals.err = errors.New("connection refused")

	resp := env.do(t, http.MethodGet, "/goals", "", "")
	var body dto.ErrorResponse
	decode(t, resp, &body)

	if resp.StatusCode != fiber.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.StatusCode)
	}
	if strings.Contains(body.Message, "connection refused") {
		t.Error("internal error details must not leak")
	}
}

func TestGoalDelete(t *testing.T) {
	env := newTestEnv(t)
	own := env.seedGoal(env.userID)
	foreign := env.seedGoal(uuid.New())

	tests := []struct {
		name string
		path string
		want int
	}{
		{"bad id", "/goals-delete/not-a-uuid", fiber.StatusBadRequest},
		{"missing", "/goals-delete/" + uuid.NewString(), fiber.StatusNotFound},
		{"not owner", "/goals-delete/" + foreign.String(), fiber.StatusForbidden},
		{"owner", "/goals-delete/" + own.String(), fiber.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := env.do(t, http.MethodDelete, tt.path, "", "")
			resp.Body.Close()
			if resp.StatusCode != tt.want {
				t.Errorf("expected %d, got %d", tt.want, resp.StatusCode)
			}
		})
	}

	if _, ok := env.goals.goals[own]; ok {
		t.Error("own goal should be deleted")
	}
	if _, ok := env.goals.goals[foreign]; !ok {
		t.Error("foreign goal must survive")
	}
}

func TestRequiresSession(t *testing.T) {
	env := newTestEnv(t)

	for _, path := range []string{"/goals", "/information-board"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set("X-Anonymous", "1")
		resp, err := env.app.Test(req)
		if err != nil {
			t.Fatalf("app.Test: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != fiber.StatusUnauthorized {
			t.Errorf("%s: expected 401, got %d", path, resp.StatusCode)
		}
	}
}

func TestInformationBoardEmpty(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodGet, "/information-board", "", "")
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body dto.InformationBoardResponse
	decode(t, resp, &body)
	if body.Profile != nil {
		t.Errorf("expected null profile, got %+v", body.Profile)
	}
	if len(body.Options.Levels) != 5 {
		t.Errorf("expected level options, got %v", body.Options.Levels)
	}
}

func TestInformationBoardStoreJSONThenShow(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodPost, "/information-board-store", fiber.MIMEApplicationJSON,
		`{"birthdate":"1990-05-17","gender":"male","height":180,"weight":80,"level":"pro","sport":"Swimming","frequencies":"3-4"}`)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	resp = env.do(t, http.MethodGet, "/information-board", "", "")
	var body dto.InformationBoardResponse
	decode(t, resp, &body)

	if body.Profile == nil {
		t.Fatal("expected stored profile")
	}
	if body.Profile.Frequency != "3-4" {
		t.Errorf("expected frequencies alias to be honored, got %q", body.Profile.Frequency)
	}
	if body.Profile.Birthdate != "1990-05-17" || body.Profile.Sport != "Swimming" {
		t.Errorf("unexpected profile: %+v", body.Profile)
	}
}

func TestInformationBoardStoreFormRedirects(t *testing.T) {
	env := newTestEnv(t)

	form := "birthdate=1990-05-17&gender=other&height=170&weight=70&level=beginner&sport=Yoga&frequency=1-2"
	for i := 0; i < 2; i++ {
		resp := env.do(t, http.MethodPost, "/information-board-store", fiber.MIMEApplicationForm, form)
		resp.Body.Close()
		if resp.StatusCode != fiber.StatusSeeOther {
			t.Fatalf("expected 303, got %d", resp.StatusCode)
		}
		if loc := resp.Header.Get("Location"); loc != "/information-board" {
			t.Errorf("expected redirect to /information-board, got %q", loc)
		}
	}

	if len(env.profiles.profiles) != 1 {
		t.Errorf("expected a single profile after two submissions, got %d", len(env.profiles.profiles))
	}
}

func TestInformationBoardStoreValidation(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodPost, "/information-board-store", fiber.MIMEApplicationJSON,
		`{"birthdate":"2030-01-01","gender":"male","height":400,"weight":80,"level":"pro","sport":"","frequency":"3-4"}`)
	if resp.StatusCode != fiber.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.StatusCode)
	}

	var body dto.ValidationErrorResponse
	decode(t, resp, &body)
	for _, field := range []string{"birthdate", "height", "sport"} {
		if _, ok := body.Fields[field]; !ok {
			t.Errorf("expected %s error, got %v", field, body.Fields)
		}
	}
}

func TestHealthCheck(t *testing.T) {
	tests := []struct {
		name string
		ping func() error
		want int
	}{
		{"healthy", func() error { return nil }, fiber.StatusOK},
		{"db down", func() error { return errors.New("dial tcp: refused") }, fiber.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/health", NewHealthHandler(tt.ping).Check)

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
			if err != nil {
				t.Fatalf("app.Test: %v", err)
			}
			defer resp.Body.Close()
			if resp.StatusCode != tt.want {
				t.Errorf("expected %d, got %d", tt.want, resp.StatusCode)
			}
		})
	}
}

func TestLegalPages(t *testing.T) {
	app := fiber.New()
	h := NewLegalHandler("FitTrack", "support@example.com")
	app.Get("/legal/privacy", h.PrivacyPolicy)
	app.Get("/legal/terms", h.TermsOfService)

	for _, path := range []string{"/legal/privacy", "/legal/terms"} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil))
		if err != nil {
			t.Fatalf("app.Test: %v", err)
		}
		b, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		if !strings.Contains(string(b), "FitTrack") {
			t.Errorf("%s: expected app name in page", path)
		}
	}
}

func TestNonFiniteWeightsRejectedAndListStaysReadable(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodPost, "/goals-store", fiber.MIMEApplicationForm,
		"start_date=2025-01-01&end_date=2025-01-11&actual_weight=NaN&target_weight=75")
	resp.Body.Close()
	if resp.StatusCode != fiber.StatusUnprocessableEntity {
		t.Fatalf("goal with NaN weight: expected 422, got %d", resp.StatusCode)
	}

	resp = env.do(t, http.MethodPost, "/information-board-store", fiber.MIMEApplicationForm,
		"birthdate=1990-05-17&gender=male&height=NaN&weight=Inf&level=pro&sport=Rowing&frequency=3-4")
	resp.Body.Close()
	if resp.StatusCode != fiber.StatusUnprocessableEntity {
		t.Fatalf("profile with NaN height: expected 422, got %d", resp.StatusCode)
	}

	if len(env.goals.goals) != 0 || len(env.profiles.profiles) != 0 {
		t.Fatal("non-finite values must not be stored")
	}
	for _, path := range []string{"/goals", "/information-board"} {
		resp := env.do(t, http.MethodGet, path, "", "")
		resp.Body.Close()
		if resp.StatusCode != fiber.StatusOK {
			t.Errorf("%s: expected 200, got %d", path, resp.StatusCode)
		}
	}
}
