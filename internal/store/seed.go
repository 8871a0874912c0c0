package store

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/mamadbah2/packhouse/internal/domain/models"
	"github.com/mamadbah2/packhouse/internal/repository/kv"
)

// SeedDemoData prepends one week of generated production lots, one to three per
// day, drawn from the current master data. It returns the number of records.
func (s *Store) SeedDemoData(ctx context.Context, now time.Time, rnd *rand.Rand) (int, error) {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(now.UnixNano()))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	products := s.data.MasterData.Products
	clients := s.data.MasterData.Clients
	if len(products) == 0 || len(clients) == 0 {
		return 0, fmt.Errorf("%w: products and clients are required to generate demo data", ErrValidation)
	}

	generated := make([]models.ProductionRecord, 0, 21)
	for i := 6; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		daily := rnd.Intn(3) + 1
		for j := 0; j < daily; j++ {
			employees := rnd.Intn(10) + 5
			perHead := 50 + rnd.Float64()*30
			weight := math.Floor(float64(employees) * perHead)
			generated = append(generated, models.ProductionRecord{
				ID:              s.newID(),
				Date:            day.Format(dateLayout),
				LotNumber:       fmt.Sprintf("LOT-%d%d-%d", int(day.Month()), day.Day(), j+1),
				ClientName:      clients[rnd.Intn(len(clients))],
				ProductName:     products[rnd.Intn(len(products))],
				EmployeeCount:   employees,
				TotalWeightKg:   weight,
				WasteKg:         math.Floor(weight * (0.02 + rnd.Float64()*0.05)),
				InfestationRate: float64(rnd.Intn(5)),
				Timestamp:       day.UnixMilli() + int64(j),
			})
		}
	}

	next := append(generated, s.data.Production...)
	if err := s.persist(ctx, kv.KeyProduction, next); err != nil {
		return 0, err
	}
	s.data.Production = next
	s.logger.Info("demo production data generated")
	return len(generated), nil
}
