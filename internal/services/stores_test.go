package services

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/ahmetcoskunkizilkaya/fittrack-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/fittrack-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

type memoryGoalStore struct {
	mu    sync.Mutex
	goals map[uuid.UUID]models.Goal
	err   error
}

func newMemoryGoalStore() *memoryGoalStore {
	return &memoryGoalStore{goals: make(map[uuid.UUID]models.Goal)}
}

func (s *memoryGoalStore) Create(_ context.Context, goal *models.Goal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	goal.CreatedAt = time.Now()
	s.goals[goal.ID] = *goal
	return nil
}

func (s *memoryGoalStore) ListByUserID(_ context.Context, userID uuid.UUID) ([]models.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	var out []models.Goal
	for _, g := range s.goals {
		if g.UserID == userID {
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return time.Time(out[i].StartDate).After(time.Time(out[j].StartDate))
	})
	return out, nil
}

func (s *memoryGoalStore) GetByID(_ context.Context, id uuid.UUID) (*models.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.goals[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &g, nil
}

func (s *memoryGoalStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.goals[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.goals, id)
	return nil
}

type memoryProfileStore struct {
	mu       sync.Mutex
	profiles map[uuid.UUID]models.UserProfile
	err      error
}

func newMemoryProfileStore() *memoryProfileStore {
	return &memoryProfileStore{profiles: make(map[uuid.UUID]models.UserProfile)}
}

func (s *memoryProfileStore) GetByUserID(_ context.Context, userID uuid.UUID) (*models.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	p, ok := s.profiles[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (s *memoryProfileStore) Upsert(_ context.Context, profile *models.UserProfile) (*models.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	now := time.Now()
	if existing, ok := s.profiles[profile.UserID]; ok {
		profile.ID = existing.ID
		profile.CreatedAt = existing.CreatedAt
	} else {
		profile.ID = uuid.New()
		profile.CreatedAt = now
	}
	profile.UpdatedAt = now
	s.profiles[profile.UserID] = *profile
	stored := *profile
	return &stored, nil
}

var errStoreDown = errors.New("store unavailable")

type memoryUserStore struct {
	mu      sync.Mutex
	users   map[uuid.UUID]models.User
	tokens  map[string]models.RefreshToken
	deleted []uuid.UUID
}

func newMemoryUserStore() *memoryUserStore {
	return &memoryUserStore{
		users:  make(map[uuid.UUID]models.User),
		tokens: make(map[string]models.RefreshToken),
	}
}

func (s *memoryUserStore) CreateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == user.Email {
			return &pgconn.PgError{Code: "23505", ConstraintName: "idx_users_email"}
		}
	}
	s.users[user.ID] = *user
	return nil
}

func (s *memoryUserStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *memoryUserStore) GetUserByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (s *memoryUserStore) CreateRefreshToken(_ context.Context, token *models.RefreshToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token.TokenHash] = *token
	return nil
}

func (s *memoryUserStore) GetActiveRefreshToken(_ context.Context, tokenHash string) (*models.RefreshToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tokens[tokenHash]
	if !ok || t.Revoked {
		return nil, repository.ErrNotFound
	}
	return &t, nil
}

func (s *memoryUserStore) RevokeRefreshToken(_ context.Context, tokenHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.tokens[tokenHash]; ok {
		t.Revoked = true
		s.tokens[tokenHash] = t
	}
	return nil
}

func (s *memoryUserStore) DeleteUser(_ context.Context, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, userID)
	for hash, t := range s.tokens {
		if t.UserID == userID {
			delete(s.tokens, hash)
		}
	}
	s.deleted = append(s.deleted, userID)
	return nil
}
