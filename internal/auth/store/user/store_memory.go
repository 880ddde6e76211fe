package user

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"leetcoach/internal/auth/models"
	"leetcoach/internal/sentinel"
	id "leetcoach/pkg/domain"
)

// InMemoryUserStore is a process-local user store. Username and email are
// unique; email comparison is case-insensitive.
type InMemoryUserStore struct {
	mu         sync.RWMutex
	byID       map[id.UserID]*models.User
	byUsername map[string]id.UserID
	byEmail    map[string]id.UserID
}

func NewInMemoryUserStore() *InMemoryUserStore {
	return &InMemoryUserStore{
		byID:       make(map[id.UserID]*models.User),
		byUsername: make(map[string]id.UserID),
		byEmail:    make(map[string]id.UserID),
	}
}

func (s *InMemoryUserStore) Create(_ context.Context, user *models.User) error {
	if user == nil {
		return fmt.Errorf("user is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	email := strings.ToLower(user.Email)
	if _, taken := s.byUsername[user.Username]; taken {
		return fmt.Errorf("username taken: %w", sentinel.ErrAlreadyExists)
	}
	if _, taken := s.byEmail[email]; taken {
		return fmt.Errorf("email taken: %w", sentinel.ErrAlreadyExists)
	}

	stored := *user
	s.byID[user.ID] = &stored
	s.byUsername[user.Username] = user.ID
	s.byEmail[email] = user.ID
	return nil
}

func (s *InMemoryUserStore) FindByUsername(_ context.Context, username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	userID, ok := s.byUsername[username]
	if !ok {
		return nil, fmt.Errorf("user not found: %w", sentinel.ErrNotFound)
	}
	u := *s.byID[userID]
	return &u, nil
}

func (s *InMemoryUserStore) FindByID(_ context.Context, userID id.UserID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.byID[userID]
	if !ok {
		return nil, fmt.Errorf("user not found: %w", sentinel.ErrNotFound)
	}
	cp := *u
	return &cp, nil
}

func (s *InMemoryUserStore) ExistsByUsernameOrEmail(_ context.Context, username, email string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, byName := s.byUsername[username]
	_, byEmail := s.byEmail[strings.ToLower(email)]
	return byName || byEmail, nil
}
