package backup

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/mamadbah2/packhouse/internal/domain/models"
	"github.com/mamadbah2/packhouse/internal/repository/drive"
	"github.com/mamadbah2/packhouse/internal/repository/kv"
	"github.com/mamadbah2/packhouse/internal/store"
)

type memoryDrive struct {
	files   []drive.File
	content map[string][]byte
	failDL  bool
}

func newMemoryDrive() *memoryDrive {
	return &memoryDrive{content: make(map[string][]byte)}
}

func (m *memoryDrive) Upload(_ context.Context, name string, content []byte) (drive.File, error) {
	f := drive.File{ID: "file-" + name, Name: name}
	m.files = append(m.files, f)
	m.content[f.ID] = content
	return f, nil
}

func (m *memoryDrive) Latest(_ context.Context, prefix string) (drive.File, bool, error) {
	for i := len(m.files) - 1; i >= 0; i-- {
		if strings.HasPrefix(m.files[i].Name, prefix) {
			return m.files[i], true, nil
		}
	}
	return drive.File{}, false, nil
}

func (m *memoryDrive) Download(_ context.Context, id string) ([]byte, error) {
	if m.failDL {
		return nil, errors.New("network down")
	}
	return m.content[id], nil
}

func loadedStore(t *testing.T) *store.Store {
	t.Helper()
	s := store.New(kv.NewMemory(), nil)
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	return s
}

func TestExportRestoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	source := loadedStore(t)
	if _, err := source.CreateProduction(ctx, models.ProductionRecord{Date: "2024-01-01", LotNumber: "LOT-1", TotalWeightKg: 10}, nil); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := source.RegisterAdmin(ctx, "Admin", "admin", "pw"); err != nil {
		t.Fatalf("register: %v", err)
	}

	repo := newMemoryDrive()
	exporter := NewService(repo, source, nil)
	exporter.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }

	info, err := exporter.Export(ctx)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if info.Name != "packhouse-backup-20240102-030405.json" || info.Records != 1 {
		t.Fatalf("unexpected export info: %+v", info)
	}

	target := loadedStore(t)
	restored, err := NewService(repo, target, nil).Restore(ctx)
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if restored.Records != 1 || !restored.ExportedAt.Equal(info.ExportedAt) {
		t.Fatalf("unexpected restore info: %+v", restored)
	}
	if got := target.Production(); len(got) != 1 || got[0].LotNumber != "LOT-1" {
		t.Fatalf("expected production restored, got %+v", got)
	}
	if _, err := target.Authenticate(ctx, "admin", "pw"); err != nil {
		t.Fatalf("expected credentials to survive the round trip: %v", err)
	}
}

func TestRestoreErrors(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryDrive()
	svc := NewService(repo, loadedStore(t), nil)

	if _, err := svc.Restore(ctx); !errors.Is(err, ErrNoBackup) {
		t.Fatalf("expected no backup error, got %v", err)
	}

	_, _ = repo.Upload(ctx, filePrefix+"broken.json", []byte("{"))
	if _, err := svc.Restore(ctx); err == nil {
		t.Fatalf("expected decode error")
	}

	repo.failDL = true
	if _, err := svc.Restore(ctx); err == nil {
		t.Fatalf("expected download error")
	}
}

func TestRestoreRejectsBackupWithoutUsers(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryDrive()
	_, _ = repo.Upload(ctx, filePrefix+"empty.json", []byte(`{"exportedAt":"2024-01-02T03:04:05Z","data":{"records":[]}}`))

	target := loadedStore(t)
	if _, err := target.RegisterAdmin(ctx, "Admin", "admin", "pw"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := NewService(repo, target, nil).Restore(ctx); !errors.Is(err, store.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if !target.HasUsers() {
		t.Fatalf("expected accounts to be kept")
	}
}
