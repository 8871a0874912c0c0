package backup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/packhouse/internal/domain/models"
	"github.com/mamadbah2/packhouse/internal/repository/drive"
)

const filePrefix = "packhouse-backup-"

// ErrNoBackup indicates the folder holds no backup to restore.
var ErrNoBackup = errors.New("no backup found")

// RecordStore is the part of the store the backup needs.
type RecordStore interface {
	Snapshot() models.Snapshot
	Replace(ctx context.Context, snapshot models.Snapshot) error
}

// Info describes an exported or restored backup.
type Info struct {
	FileID     string    `json:"fileId"`
	Name       string    `json:"name"`
	ExportedAt time.Time `json:"exportedAt"`
	Records    int       `json:"records"`
}

type envelope struct {
	ExportedAt time.Time       `json:"exportedAt"`
	Data       models.Snapshot `json:"data"`
}

// Service exports and restores the whole dataset as one opaque blob.
type Service struct {
	repo   drive.Repository
	store  RecordStore
	logger *zap.Logger
	now    func() time.Time
}

// NewService wires a backup service.
func NewService(repo drive.Repository, store RecordStore, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, store: store, logger: logger, now: time.Now}
}

// Export uploads the current snapshot.
func (s *Service) Export(ctx context.Context) (Info, error) {
	snapshot := s.store.Snapshot()
	exportedAt := s.now().UTC()

	payload, err := json.Marshal(envelope{ExportedAt: exportedAt, Data: snapshot})
	if err != nil {
		return Info{}, fmt.Errorf("encode backup: %w", err)
	}

	name := filePrefix + exportedAt.Format("20060102-150405") + ".json"
	file, err := s.repo.Upload(ctx, name, payload)
	if err != nil {
		return Info{}, err
	}

	info := Info{FileID: file.ID, Name: file.Name, ExportedAt: exportedAt, Records: countRecords(snapshot)}
	s.logger.Info("backup exported", zap.String("name", info.Name), zap.Int("records", info.Records))
	return info, nil
}

// Restore replaces the store content with the newest backup.
func (s *Service) Restore(ctx context.Context) (Info, error) {
	file, ok, err := s.repo.Latest(ctx, filePrefix)
	if err != nil {
		return Info{}, err
	}
	if !ok {
		return Info{}, ErrNoBackup
	}

	raw, err := s.repo.Download(ctx, file.ID)
	if err != nil {
		return Info{}, err
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return Info{}, fmt.Errorf("decode backup %s: %w", file.Name, err)
	}
	if err := s.store.Replace(ctx, env.Data); err != nil {
		return Info{}, fmt.Errorf("restore backup %s: %w", file.Name, err)
	}

	info := Info{FileID: file.ID, Name: file.Name, ExportedAt: env.ExportedAt, Records: countRecords(env.Data)}
	s.logger.Info("backup restored", zap.String("name", info.Name), zap.Int("records", info.Records))
	return info, nil
}

func countRecords(s models.Snapshot) int {
	return len(s.Production) + len(s.Purchases) + len(s.StockOuts) + len(s.PrestationsProd) + len(s.PrestationsEtuvage)
}
