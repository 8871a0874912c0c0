package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/mamadbah2/packhouse/internal/domain/models"
	"github.com/mamadbah2/packhouse/internal/repository/kv"
)

// MasterData returns a copy of the controlled vocabularies.
func (s *Store) MasterData() models.MasterData {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.MasterData.Clone()
}

// AddMasterValue appends value to category. Values are trimmed and unique.
func (s *Store) AddMasterValue(ctx context.Context, category models.MasterCategory, value string) (models.MasterData, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return models.MasterData{}, fmt.Errorf("%w: value is required", ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	current := s.data.MasterData.List(category)
	for _, v := range current {
		if v == value {
			return models.MasterData{}, fmt.Errorf("%w: %q already in %s", ErrDuplicate, value, category)
		}
	}

	values := append(append([]string(nil), current...), value)
	next := s.data.MasterData.WithList(category, values)
	if err := s.persist(ctx, kv.KeyMasterData, next); err != nil {
		return models.MasterData{}, err
	}
	s.data.MasterData = next
	return next.Clone(), nil
}

// RemoveMasterValue drops value from category. Historical records that still
// reference it are left untouched.
func (s *Store) RemoveMasterValue(ctx context.Context, category models.MasterCategory, value string) (models.MasterData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.data.MasterData.List(category)
	values := make([]string, 0, len(current))
	for _, v := range current {
		if v != value {
			values = append(values, v)
		}
	}
	if len(values) == len(current) {
		return models.MasterData{}, fmt.Errorf("%w: %q not in %s", ErrNotFound, value, category)
	}

	next := s.data.MasterData.WithList(category, values)
	if err := s.persist(ctx, kv.KeyMasterData, next); err != nil {
		return models.MasterData{}, err
	}
	s.data.MasterData = next
	return next.Clone(), nil
}
