package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/mamadbah2/packhouse/internal/domain/models"
	"github.com/mamadbah2/packhouse/internal/repository/kv"
)

// Users returns every account, credentials stripped.
func (s *Store) Users() []models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.User, 0, len(s.data.Users))
	for _, u := range s.data.Users {
		out = append(out, u.Public())
	}
	return out
}

// User looks an account up by identity.
func (s *Store) User(id string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, err := findByID(s.data.Users, id, func(u models.User) string { return u.ID })
	if err != nil {
		return models.User{}, err
	}
	return u.Public(), nil
}

// HasUsers reports whether at least one account exists.
func (s *Store) HasUsers() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data.Users) > 0
}

// RegisterAdmin creates the first administrator. It fails once any user exists.
func (s *Store) RegisterAdmin(ctx context.Context, name, username, password string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.data.Users) > 0 {
		return models.User{}, fmt.Errorf("%w: an administrator is already registered", ErrForbidden)
	}
	return s.addUserLocked(ctx, name, username, password, models.RoleAdmin, append([]models.ViewID(nil), models.AllViews...))
}

// AddOperator creates an operator allowed on the production view only.
func (s *Store) AddOperator(ctx context.Context, name, username, password string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addUserLocked(ctx, name, username, password, models.RoleOperator, []models.ViewID{models.ViewProduction})
}

func (s *Store) addUserLocked(ctx context.Context, name, username, password string, role models.Role, tabs []models.ViewID) (models.User, error) {
	name = strings.TrimSpace(name)
	username = strings.ToLower(strings.TrimSpace(username))
	if name == "" || username == "" || password == "" {
		return models.User{}, fmt.Errorf("%w: name, username and password are required", ErrValidation)
	}
	for _, u := range s.data.Users {
		if strings.EqualFold(u.Username, username) {
			return models.User{}, fmt.Errorf("%w: username %q is taken", ErrDuplicate, username)
		}
	}

	user := models.User{
		ID:          s.newID(),
		Name:        name,
		Username:    username,
		Password:    password,
		Role:        role,
		AllowedTabs: tabs,
		CreatedAt:   s.stamp(),
	}
	next := append(append(make([]models.User, 0, len(s.data.Users)+1), s.data.Users...), user)
	if err := s.persist(ctx, kv.KeyUsers, next); err != nil {
		return models.User{}, err
	}
	s.data.Users = next
	return user.Public(), nil
}

// DeleteUser removes an operator. Administrators cannot be deleted.
func (s *Store) DeleteUser(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	target, err := findByID(s.data.Users, id, func(u models.User) string { return u.ID })
	if err != nil {
		return err
	}
	if target.Role == models.RoleAdmin {
		return fmt.Errorf("%w: administrators cannot be deleted", ErrForbidden)
	}
	next, err := removeByID(s.data.Users, id, func(u models.User) string { return u.ID })
	if err != nil {
		return err
	}
	if err := s.persist(ctx, kv.KeyUsers, next); err != nil {
		return err
	}
	s.data.Users = next
	if s.current != nil && s.current.ID == id {
		s.current = nil
		if err := s.kv.Remove(ctx, kv.KeyCurrentUser); err != nil {
			return fmt.Errorf("clear current user: %w", err)
		}
	}
	return nil
}

// UpdatePermissions replaces the allow-list of a user. This is the only path
// through which an allow-list changes.
func (s *Store) UpdatePermissions(ctx context.Context, id string, tabs []models.ViewID) (models.User, error) {
	clean := make([]models.ViewID, 0, len(tabs))
	seen := make(map[models.ViewID]struct{}, len(tabs))
	for _, t := range tabs {
		if !knownView(t) {
			return models.User{}, fmt.Errorf("%w: unknown view %q", ErrValidation, t)
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		clean = append(clean, t)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	next, updated, err := replaceByID(s.data.Users, id,
		func(u models.User) string { return u.ID },
		func(u models.User) models.User {
			u.AllowedTabs = clean
			return u
		})
	if err != nil {
		return models.User{}, err
	}
	if err := s.persist(ctx, kv.KeyUsers, next); err != nil {
		return models.User{}, err
	}
	s.data.Users = next
	return updated.Public(), nil
}

// Authenticate matches username case-insensitively and compares the password
// verbatim, then records the user as the current session.
func (s *Store) Authenticate(ctx context.Context, username, password string) (models.User, error) {
	username = strings.TrimSpace(username)

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.data.Users {
		if strings.EqualFold(u.Username, username) && u.Password == password {
			public := u.Public()
			if err := s.persist(ctx, kv.KeyCurrentUser, public); err != nil {
				return models.User{}, err
			}
			s.current = &public
			return public, nil
		}
	}
	return models.User{}, ErrInvalidCredentials
}

// CurrentUser returns the last authenticated user, if any.
func (s *Store) CurrentUser() (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return models.User{}, false
	}
	return s.current.Public(), true
}

// Logout clears the current session.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.kv.Remove(ctx, kv.KeyCurrentUser); err != nil {
		return fmt.Errorf("clear current user: %w", err)
	}
	s.current = nil
	return nil
}

func knownView(v models.ViewID) bool {
	for _, known := range models.AllViews {
		if known == v {
			return true
		}
	}
	return false
}
