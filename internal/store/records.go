package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/mamadbah2/packhouse/internal/domain/models"
	"github.com/mamadbah2/packhouse/internal/repository/kv"
)

// Production returns the production records, newest first.
func (s *Store) Production() []models.ProductionRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.ProductionRecord(nil), s.data.Production...)
}

// FindProduction looks a production record up by identity.
func (s *Store) FindProduction(id string) (models.ProductionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return findByID(s.data.Production, id, func(r models.ProductionRecord) string { return r.ID })
}

// CreateProduction stamps and prepends a production record. author may be nil.
func (s *Store) CreateProduction(ctx context.Context, rec models.ProductionRecord, author *models.User) (models.ProductionRecord, error) {
	rec = normalizeProduction(rec)
	if err := validateProduction(rec); err != nil {
		return models.ProductionRecord{}, err
	}
	rec.ID = s.newID()
	rec.Timestamp = s.stamp()
	if author != nil {
		rec.UserID = author.ID
		rec.UserName = author.Name
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	next := prepend(s.data.Production, rec)
	if err := s.persist(ctx, kv.KeyProduction, next); err != nil {
		return models.ProductionRecord{}, err
	}
	s.data.Production = next
	return rec, nil
}

// UpdateProduction replaces the record id with a merged copy keeping its
// identity, creation time and author.
func (s *Store) UpdateProduction(ctx context.Context, id string, rec models.ProductionRecord) (models.ProductionRecord, error) {
	rec = normalizeProduction(rec)
	if err := validateProduction(rec); err != nil {
		return models.ProductionRecord{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	next, merged, err := replaceByID(s.data.Production, id,
		func(r models.ProductionRecord) string { return r.ID },
		func(old models.ProductionRecord) models.ProductionRecord {
			rec.ID, rec.Timestamp = old.ID, old.Timestamp
			rec.UserID, rec.UserName = old.UserID, old.UserName
			return rec
		})
	if err != nil {
		return models.ProductionRecord{}, err
	}
	if err := s.persist(ctx, kv.KeyProduction, next); err != nil {
		return models.ProductionRecord{}, err
	}
	s.data.Production = next
	return merged, nil
}

// DeleteProduction removes the record id.
func (s *Store) DeleteProduction(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := removeByID(s.data.Production, id, func(r models.ProductionRecord) string { return r.ID })
	if err != nil {
		return err
	}
	if err := s.persist(ctx, kv.KeyProduction, next); err != nil {
		return err
	}
	s.data.Production = next
	return nil
}

// Purchases returns the purchases, newest first.
func (s *Store) Purchases() []models.PurchaseRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.PurchaseRecord(nil), s.data.Purchases...)
}

// CreatePurchase stamps and prepends a purchase.
func (s *Store) CreatePurchase(ctx context.Context, rec models.PurchaseRecord) (models.PurchaseRecord, error) {
	if err := validatePurchase(rec); err != nil {
		return models.PurchaseRecord{}, err
	}
	rec.ID = s.newID()
	rec.Timestamp = s.stamp()

	s.mu.Lock()
	defer s.mu.Unlock()
	next := prepend(s.data.Purchases, rec)
	if err := s.persist(ctx, kv.KeyPurchases, next); err != nil {
		return models.PurchaseRecord{}, err
	}
	s.data.Purchases = next
	return rec, nil
}

// UpdatePurchase replaces the purchase id, keeping identity and creation time.
func (s *Store) UpdatePurchase(ctx context.Context, id string, rec models.PurchaseRecord) (models.PurchaseRecord, error) {
	if err := validatePurchase(rec); err != nil {
		return models.PurchaseRecord{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	next, merged, err := replaceByID(s.data.Purchases, id,
		func(r models.PurchaseRecord) string { return r.ID },
		func(old models.PurchaseRecord) models.PurchaseRecord {
			rec.ID, rec.Timestamp = old.ID, old.Timestamp
			return rec
		})
	if err != nil {
		return models.PurchaseRecord{}, err
	}
	if err := s.persist(ctx, kv.KeyPurchases, next); err != nil {
		return models.PurchaseRecord{}, err
	}
	s.data.Purchases = next
	return merged, nil
}

// DeletePurchase removes the purchase id.
func (s *Store) DeletePurchase(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := removeByID(s.data.Purchases, id, func(r models.PurchaseRecord) string { return r.ID })
	if err != nil {
		return err
	}
	if err := s.persist(ctx, kv.KeyPurchases, next); err != nil {
		return err
	}
	s.data.Purchases = next
	return nil
}

// StockOuts returns the stock movements, newest first.
func (s *Store) StockOuts() []models.StockOutRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.StockOutRecord(nil), s.data.StockOuts...)
}

// CreateStockOut stamps and prepends a stock-out.
func (s *Store) CreateStockOut(ctx context.Context, rec models.StockOutRecord) (models.StockOutRecord, error) {
	if err := validateStockOut(rec); err != nil {
		return models.StockOutRecord{}, err
	}
	rec.ID = s.newID()
	rec.Timestamp = s.stamp()

	s.mu.Lock()
	defer s.mu.Unlock()
	next := prepend(s.data.StockOuts, rec)
	if err := s.persist(ctx, kv.KeyStockOuts, next); err != nil {
		return models.StockOutRecord{}, err
	}
	s.data.StockOuts = next
	return rec, nil
}

// UpdateStockOut replaces the stock-out id, keeping identity and creation time.
func (s *Store) UpdateStockOut(ctx context.Context, id string, rec models.StockOutRecord) (models.StockOutRecord, error) {
	if err := validateStockOut(rec); err != nil {
		return models.StockOutRecord{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	next, merged, err := replaceByID(s.data.StockOuts, id,
		func(r models.StockOutRecord) string { return r.ID },
		func(old models.StockOutRecord) models.StockOutRecord {
			rec.ID, rec.Timestamp = old.ID, old.Timestamp
			return rec
		})
	if err != nil {
		return models.StockOutRecord{}, err
	}
	if err := s.persist(ctx, kv.KeyStockOuts, next); err != nil {
		return models.StockOutRecord{}, err
	}
	s.data.StockOuts = next
	return merged, nil
}

// DeleteStockOut removes the stock-out id.
func (s *Store) DeleteStockOut(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := removeByID(s.data.StockOuts, id, func(r models.StockOutRecord) string { return r.ID })
	if err != nil {
		return err
	}
	if err := s.persist(ctx, kv.KeyStockOuts, next); err != nil {
		return err
	}
	s.data.StockOuts = next
	return nil
}

// PrestationsProd returns the processing-service entries, newest first.
func (s *Store) PrestationsProd() []models.PrestationProdRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.PrestationProdRecord(nil), s.data.PrestationsProd...)
}

// CreatePrestationProd stamps and prepends a processing-service entry.
func (s *Store) CreatePrestationProd(ctx context.Context, rec models.PrestationProdRecord) (models.PrestationProdRecord, error) {
	if err := validatePrestationProd(rec); err != nil {
		return models.PrestationProdRecord{}, err
	}
	rec.ID = s.newID()
	rec.Timestamp = s.stamp()
	if rec.Amount == 0 {
		rec.Amount = rec.QuantityKg * rec.UnitPrice
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	next := prepend(s.data.PrestationsProd, rec)
	if err := s.persist(ctx, kv.KeyPrestationProd, next); err != nil {
		return models.PrestationProdRecord{}, err
	}
	s.data.PrestationsProd = next
	return rec, nil
}

// UpdatePrestationProd replaces the entry id, keeping identity and creation time.
func (s *Store) UpdatePrestationProd(ctx context.Context, id string, rec models.PrestationProdRecord) (models.PrestationProdRecord, error) {
	if err := validatePrestationProd(rec); err != nil {
		return models.PrestationProdRecord{}, err
	}
	if rec.Amount == 0 {
		rec.Amount = rec.QuantityKg * rec.UnitPrice
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	next, merged, err := replaceByID(s.data.PrestationsProd, id,
		func(r models.PrestationProdRecord) string { return r.ID },
		func(old models.PrestationProdRecord) models.PrestationProdRecord {
			rec.ID, rec.Timestamp = old.ID, old.Timestamp
			return rec
		})
	if err != nil {
		return models.PrestationProdRecord{}, err
	}
	if err := s.persist(ctx, kv.KeyPrestationProd, next); err != nil {
		return models.PrestationProdRecord{}, err
	}
	s.data.PrestationsProd = next
	return merged, nil
}

// DeletePrestationProd removes the entry id.
func (s *Store) DeletePrestationProd(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := removeByID(s.data.PrestationsProd, id, func(r models.PrestationProdRecord) string { return r.ID })
	if err != nil {
		return err
	}
	if err := s.persist(ctx, kv.KeyPrestationProd, next); err != nil {
		return err
	}
	s.data.PrestationsProd = next
	return nil
}

// PrestationsEtuvage returns the steaming-service entries, newest first.
func (s *Store) PrestationsEtuvage() []models.PrestationEtuvageRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.PrestationEtuvageRecord(nil), s.data.PrestationsEtuvage...)
}

// CreatePrestationEtuvage stamps and prepends a steaming-service entry.
func (s *Store) CreatePrestationEtuvage(ctx context.Context, rec models.PrestationEtuvageRecord) (models.PrestationEtuvageRecord, error) {
	if err := validatePrestationEtuvage(rec); err != nil {
		return models.PrestationEtuvageRecord{}, err
	}
	rec.ID = s.newID()
	rec.Timestamp = s.stamp()
	if rec.Amount == 0 {
		rec.Amount = rec.QuantityKg * rec.UnitPrice
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	next := prepend(s.data.PrestationsEtuvage, rec)
	if err := s.persist(ctx, kv.KeyPrestationEtuvage, next); err != nil {
		return models.PrestationEtuvageRecord{}, err
	}
	s.data.PrestationsEtuvage = next
	return rec, nil
}

// UpdatePrestationEtuvage replaces the entry id, keeping identity and creation time.
func (s *Store) UpdatePrestationEtuvage(ctx context.Context, id string, rec models.PrestationEtuvageRecord) (models.PrestationEtuvageRecord, error) {
	if err := validatePrestationEtuvage(rec); err != nil {
		return models.PrestationEtuvageRecord{}, err
	}
	if rec.Amount == 0 {
		rec.Amount = rec.QuantityKg * rec.UnitPrice
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	next, merged, err := replaceByID(s.data.PrestationsEtuvage, id,
		func(r models.PrestationEtuvageRecord) string { return r.ID },
		func(old models.PrestationEtuvageRecord) models.PrestationEtuvageRecord {
			rec.ID, rec.Timestamp = old.ID, old.Timestamp
			return rec
		})
	if err != nil {
		return models.PrestationEtuvageRecord{}, err
	}
	if err := s.persist(ctx, kv.KeyPrestationEtuvage, next); err != nil {
		return models.PrestationEtuvageRecord{}, err
	}
	s.data.PrestationsEtuvage = next
	return merged, nil
}

// DeletePrestationEtuvage removes the entry id.
func (s *Store) DeletePrestationEtuvage(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := removeByID(s.data.PrestationsEtuvage, id, func(r models.PrestationEtuvageRecord) string { return r.ID })
	if err != nil {
		return err
	}
	if err := s.persist(ctx, kv.KeyPrestationEtuvage, next); err != nil {
		return err
	}
	s.data.PrestationsEtuvage = next
	return nil
}

func normalizeProduction(rec models.ProductionRecord) models.ProductionRecord {
	rec.LotNumber = strings.TrimSpace(rec.LotNumber)
	rec.Date = strings.TrimSpace(rec.Date)
	return rec
}

func validateProduction(rec models.ProductionRecord) error {
	switch {
	case rec.LotNumber == "":
		return fmt.Errorf("%w: lot number is required", ErrValidation)
	case !validDate(rec.Date):
		return fmt.Errorf("%w: date %q must be YYYY-MM-DD", ErrValidation, rec.Date)
	case rec.EmployeeCount < 0:
		return fmt.Errorf("%w: employee count must not be negative", ErrValidation)
	case rec.TotalWeightKg < 0 || rec.WasteKg < 0:
		return fmt.Errorf("%w: weights must not be negative", ErrValidation)
	}
	return nil
}

func validatePurchase(rec models.PurchaseRecord) error {
	switch {
	case !validDate(rec.Date):
		return fmt.Errorf("%w: date %q must be YYYY-MM-DD", ErrValidation, rec.Date)
	case strings.TrimSpace(rec.Designation) == "" && strings.TrimSpace(rec.Category) == "":
		return fmt.Errorf("%w: designation or category is required", ErrValidation)
	case rec.Quantity < 0:
		return fmt.Errorf("%w: quantity must not be negative", ErrValidation)
	}
	return nil
}

func validateStockOut(rec models.StockOutRecord) error {
	switch {
	case !validDate(rec.Date):
		return fmt.Errorf("%w: date %q must be YYYY-MM-DD", ErrValidation, rec.Date)
	case strings.TrimSpace(rec.Designation) == "":
		return fmt.Errorf("%w: designation is required", ErrValidation)
	case rec.Quantity < 0:
		return fmt.Errorf("%w: quantity must not be negative", ErrValidation)
	}
	return nil
}

func validatePrestationProd(rec models.PrestationProdRecord) error {
	switch {
	case !validDate(rec.Date):
		return fmt.Errorf("%w: date %q must be YYYY-MM-DD", ErrValidation, rec.Date)
	case strings.TrimSpace(rec.ClientName) == "":
		return fmt.Errorf("%w: client is required", ErrValidation)
	case rec.QuantityKg < 0:
		return fmt.Errorf("%w: quantity must not be negative", ErrValidation)
	}
	return nil
}

func validatePrestationEtuvage(rec models.PrestationEtuvageRecord) error {
	switch {
	case !validDate(rec.Date):
		return fmt.Errorf("%w: date %q must be YYYY-MM-DD", ErrValidation, rec.Date)
	case strings.TrimSpace(rec.ClientName) == "":
		return fmt.Errorf("%w: client is required", ErrValidation)
	case rec.QuantityKg < 0:
		return fmt.Errorf("%w: quantity must not be negative", ErrValidation)
	}
	return nil
}

func prepend[T any](items []T, item T) []T {
	out := make([]T, 0, len(items)+1)
	out = append(out, item)
	return append(out, items...)
}

func findByID[T any](items []T, id string, idOf func(T) string) (T, error) {
	for _, item := range items {
		if idOf(item) == id {
			return item, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("%w: %s", ErrNotFound, id)
}

func replaceByID[T any](items []T, id string, idOf func(T) string, merge func(T) T) ([]T, T, error) {
	out := make([]T, len(items))
	copy(out, items)
	for i, item := range out {
		if idOf(item) == id {
			out[i] = merge(item)
			return out, out[i], nil
		}
	}
	var zero T
	return nil, zero, fmt.Errorf("%w: %s", ErrNotFound, id)
}

func removeByID[T any](items []T, id string, idOf func(T) string) ([]T, error) {
	out := make([]T, 0, len(items))
	found := false
	for _, item := range items {
		if idOf(item) == id {
			found = true
			continue
		}
		out = append(out, item)
	}
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return out, nil
}
