// Package store holds the in-memory record collections and flushes them to a
// key-value persistence collaborator.
//
// Mutations never edit a slice in place: they build the next version of the
// collection, persist it, and only then publish it. Readers receive deep
// copies through Snapshot.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mamadbah2/packhouse/internal/domain/models"
	"github.com/mamadbah2/packhouse/internal/repository/kv"
)

var (
	// ErrNotFound indicates no record carries the requested identity.
	ErrNotFound = errors.New("record not found")
	// ErrValidation indicates a required field is missing or malformed.
	ErrValidation = errors.New("invalid record")
	// ErrDuplicate indicates a unique value is already taken.
	ErrDuplicate = errors.New("duplicate value")
	// ErrForbidden indicates the operation is not allowed in the current state.
	ErrForbidden = errors.New("operation not allowed")
	// ErrInvalidCredentials indicates a failed login.
	ErrInvalidCredentials = errors.New("invalid username or password")
)

const dateLayout = "2006-01-02"

// Store is the single source of truth for every collection.
type Store struct {
	kv     kv.Store
	logger *zap.Logger
	now    func() time.Time
	newID  func() string

	mu      sync.RWMutex
	data    models.Snapshot
	current *models.User
}

// New builds an empty store persisting through backend. Call Load before use.
func New(backend kv.Store, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		kv:     backend,
		logger: logger,
		now:    time.Now,
		newID:  func() string { return uuid.NewString() },
		data:   emptySnapshot(),
	}
}

func emptySnapshot() models.Snapshot {
	return models.Snapshot{
		Users:              []models.User{},
		Production:         []models.ProductionRecord{},
		Purchases:          []models.PurchaseRecord{},
		StockOuts:          []models.StockOutRecord{},
		PrestationsProd:    []models.PrestationProdRecord{},
		PrestationsEtuvage: []models.PrestationEtuvageRecord{},
		MasterData:         models.DefaultMasterData(),
	}
}

// Load reads every collection once. Missing or malformed values fall back to
// an empty collection (or the default master data); only backend failures are
// returned, so a transient outage never overwrites persisted data with blanks.
func (s *Store) Load(ctx context.Context) error {
	next := emptySnapshot()
	var current *models.User

	loaders := []func() error{
		func() error { return loadKey(ctx, s, kv.KeyUsers, &next.Users) },
		func() error { return loadKey(ctx, s, kv.KeyProduction, &next.Production) },
		func() error { return loadKey(ctx, s, kv.KeyPurchases, &next.Purchases) },
		func() error { return loadKey(ctx, s, kv.KeyStockOuts, &next.StockOuts) },
		func() error { return loadKey(ctx, s, kv.KeyPrestationProd, &next.PrestationsProd) },
		func() error { return loadKey(ctx, s, kv.KeyPrestationEtuvage, &next.PrestationsEtuvage) },
		func() error { return loadKey(ctx, s, kv.KeyMasterData, &next.MasterData) },
		func() error { return loadKey(ctx, s, kv.KeyCurrentUser, &current) },
	}
	for _, load := range loaders {
		if err := load(); err != nil {
			return err
		}
	}

	// json "null" leaves nil slices behind; normalise them.
	fallback := emptySnapshot()
	if next.Users == nil {
		next.Users = fallback.Users
	}
	if next.Production == nil {
		next.Production = fallback.Production
	}
	if next.Purchases == nil {
		next.Purchases = fallback.Purchases
	}
	if next.StockOuts == nil {
		next.StockOuts = fallback.StockOuts
	}
	if next.PrestationsProd == nil {
		next.PrestationsProd = fallback.PrestationsProd
	}
	if next.PrestationsEtuvage == nil {
		next.PrestationsEtuvage = fallback.PrestationsEtuvage
	}

	s.mu.Lock()
	s.data = next
	s.current = current
	s.mu.Unlock()

	s.logger.Info("store loaded",
		zap.Int("users", len(next.Users)),
		zap.Int("production", len(next.Production)),
		zap.Int("purchases", len(next.Purchases)),
		zap.Int("stock_outs", len(next.StockOuts)),
		zap.Int("prestations_prod", len(next.PrestationsProd)),
		zap.Int("prestations_etuvage", len(next.PrestationsEtuvage)))
	return nil
}

// loadKey decodes the value of key into target. A malformed value is logged
// and leaves target untouched.
func loadKey[T any](ctx context.Context, s *Store, key string, target *T) error {
	raw, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("load %s: %w", key, err)
	}
	if !ok || raw == "" {
		return nil
	}

	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		s.logger.Warn("ignoring malformed persisted value", zap.String("key", key), zap.Error(err))
		return nil
	}
	*target = v
	return nil
}

// Snapshot returns a deep copy of every collection.
func (s *Store) Snapshot() models.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSnapshot(s.data)
}

// Replace swaps the whole dataset, as done when restoring a backup. A dataset
// without any account is rejected. The current session survives only if its
// user is still present.
func (s *Store) Replace(ctx context.Context, snapshot models.Snapshot) error {
	if len(snapshot.Users) == 0 {
		return fmt.Errorf("%w: dataset holds no user account", ErrValidation)
	}
	next := cloneSnapshot(snapshot)
	fallback := emptySnapshot()
	if isEmptyMaster(next.MasterData) {
		next.MasterData = fallback.MasterData
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	writes := []struct {
		key   string
		value any
	}{
		{kv.KeyUsers, next.Users},
		{kv.KeyProduction, next.Production},
		{kv.KeyPurchases, next.Purchases},
		{kv.KeyStockOuts, next.StockOuts},
		{kv.KeyPrestationProd, next.PrestationsProd},
		{kv.KeyPrestationEtuvage, next.PrestationsEtuvage},
		{kv.KeyMasterData, next.MasterData},
	}
	for _, w := range writes {
		if err := s.persist(ctx, w.key, w.value); err != nil {
			return err
		}
	}
	s.data = next
	if s.current != nil {
		if _, err := findByID(next.Users, s.current.ID, func(u models.User) string { return u.ID }); err != nil {
			s.current = nil
			if err := s.kv.Remove(ctx, kv.KeyCurrentUser); err != nil {
				return fmt.Errorf("clear current user: %w", err)
			}
		}
	}
	s.logger.Info("store replaced", zap.Int("production", len(next.Production)))
	return nil
}

// persist flushes one collection. Callers hold s.mu.
func (s *Store) persist(ctx context.Context, key string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.kv.Set(ctx, key, string(payload)); err != nil {
		return fmt.Errorf("flush %s: %w", key, err)
	}
	return nil
}

func (s *Store) stamp() int64 {
	return s.now().UnixMilli()
}

func isEmptyMaster(m models.MasterData) bool {
	for _, c := range models.MasterCategories {
		if len(m.List(c)) > 0 {
			return false
		}
	}
	return true
}

func cloneSnapshot(in models.Snapshot) models.Snapshot {
	out := models.Snapshot{
		Users:              make([]models.User, 0, len(in.Users)),
		Production:         append(make([]models.ProductionRecord, 0, len(in.Production)), in.Production...),
		Purchases:          append(make([]models.PurchaseRecord, 0, len(in.Purchases)), in.Purchases...),
		StockOuts:          append(make([]models.StockOutRecord, 0, len(in.StockOuts)), in.StockOuts...),
		PrestationsProd:    append(make([]models.PrestationProdRecord, 0, len(in.PrestationsProd)), in.PrestationsProd...),
		PrestationsEtuvage: append(make([]models.PrestationEtuvageRecord, 0, len(in.PrestationsEtuvage)), in.PrestationsEtuvage...),
		MasterData:         in.MasterData.Clone(),
	}
	for _, u := range in.Users {
		u.AllowedTabs = append([]models.ViewID(nil), u.AllowedTabs...)
		out.Users = append(out.Users, u)
	}
	return out
}

func validDate(value string) bool {
	_, err := time.Parse(dateLayout, value)
	return err == nil
}
