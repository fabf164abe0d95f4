package accounts

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/mauv0809/pelada-pro/internal/kvstore"
	"github.com/mauv0809/pelada-pro/internal/pelada"
)

const usersKey = "pelada_users"

// ErrAdminProtected is returned when a delete targets an admin account.
var ErrAdminProtected = errors.New("admin accounts cannot be deleted")

// ErrUserNotFound is returned for operations against an unknown account id.
var ErrUserNotFound = errors.New("user not found")

type store struct {
	kv kvstore.Store

	mu    sync.RWMutex
	users []pelada.UserAccount
}

// New creates a UserStore. Call Load before anything else.
func New(kv kvstore.Store) UserStore {
	return &store{kv: kv}
}

// defaultAdmin is seeded on first run so the dashboard is never locked out.
func defaultAdmin() pelada.UserAccount {
	return pelada.UserAccount{
		ID:       "admin-001",
		Name:     "Administrador",
		Email:    "admin@peladapro.com",
		Password: "admin123",
		Plan:     pelada.TierProfissional,
		Role:     pelada.RoleAdmin,
	}
}

func (s *store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok, err := s.kv.Get(usersKey)
	if err != nil {
		return fmt.Errorf("failed to read users: %w", err)
	}
	if ok {
		var users []pelada.UserAccount
		if err := json.Unmarshal([]byte(raw), &users); err != nil {
			log.Warn("Discarding corrupt users record", "error", err)
		} else if len(users) > 0 {
			s.users = users
			return nil
		}
	}

	s.users = []pelada.UserAccount{defaultAdmin()}
	log.Info("Seeded default admin account", "email", s.users[0].Email)
	return s.flushLocked()
}

func (s *store) flushLocked() error {
	payload, err := json.Marshal(s.users)
	if err != nil {
		return fmt.Errorf("failed to marshal users: %w", err)
	}
	if err := s.kv.Set(usersKey, string(payload)); err != nil {
		return fmt.Errorf("failed to persist users: %w", err)
	}
	return nil
}

func (s *store) Users() []pelada.UserAccount {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]pelada.UserAccount, len(s.users))
	copy(out, s.users)
	return out
}

func (s *store) Get(id string) (pelada.UserAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return pelada.UserAccount{}, ErrUserNotFound
}

func (s *store) Add(user pelada.UserAccount) (pelada.UserAccount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.Role == "" {
		user.Role = pelada.RoleUser
	}
	if user.Plan == "" {
		user.Plan = pelada.TierPelada
	}
	s.users = append(s.users, user)
	if err := s.flushLocked(); err != nil {
		return pelada.UserAccount{}, err
	}
	return user, nil
}

func (s *store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, u := range s.users {
		if u.ID != id {
			continue
		}
		if u.Role == pelada.RoleAdmin {
			return ErrAdminProtected
		}
		s.users = append(s.users[:i], s.users[i+1:]...)
		return s.flushLocked()
	}
	return ErrUserNotFound
}

func (s *store) Authenticate(email, password string) (pelada.UserAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email && u.Password == password {
			return u, nil
		}
	}
	return pelada.UserAccount{}, pelada.ErrUnauthorized
}
