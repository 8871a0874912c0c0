package drive

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"
	drivev3 "google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// File describes a stored backup blob.
type File struct {
	ID          string
	Name        string
	CreatedTime string
}

// Repository defines the blob operations the backup service needs.
type Repository interface {
	Upload(ctx context.Context, name string, content []byte) (File, error)
	Latest(ctx context.Context, prefix string) (File, bool, error)
	Download(ctx context.Context, id string) ([]byte, error)
}

// GoogleDriveRepository stores blobs in one Drive folder.
type GoogleDriveRepository struct {
	service  *drivev3.Service
	folderID string
	logger   *zap.Logger
}

// NewGoogleDriveRepository builds a Drive backed repository instance.
func NewGoogleDriveRepository(ctx context.Context, credentialsPath, folderID string, logger *zap.Logger) (*GoogleDriveRepository, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if folderID == "" {
		return nil, fmt.Errorf("drive folder id must not be empty")
	}

	service, err := drivev3.NewService(ctx, option.WithCredentialsFile(credentialsPath), option.WithScopes(drivev3.DriveFileScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize drive client: %w", err)
	}

	return &GoogleDriveRepository{service: service, folderID: folderID, logger: logger}, nil
}

// Upload creates a new JSON file in the folder.
func (r *GoogleDriveRepository) Upload(ctx context.Context, name string, content []byte) (File, error) {
	meta := &drivev3.File{
		Name:     name,
		Parents:  []string{r.folderID},
		MimeType: "application/json",
	}

	created, err := r.service.Files.Create(meta).
		Media(bytes.NewReader(content)).
		Fields("id", "name", "createdTime").
		Context(ctx).
		Do()
	if err != nil {
		return File{}, fmt.Errorf("upload %s: %w", name, err)
	}

	r.logger.Debug("file uploaded to drive", zap.String("name", name), zap.String("id", created.Id))
	return File{ID: created.Id, Name: created.Name, CreatedTime: created.CreatedTime}, nil
}

// Latest returns the most recently created file whose name starts with prefix.
func (r *GoogleDriveRepository) Latest(ctx context.Context, prefix string) (File, bool, error) {
	q := fmt.Sprintf("'%s' in parents and name contains '%s' and trashed = false", r.folderID, prefix)
	list, err := r.service.Files.List().
		Q(q).
		OrderBy("createdTime desc").
		PageSize(1).
		Fields("files(id,name,createdTime)").
		Context(ctx).
		Do()
	if err != nil {
		return File{}, false, fmt.Errorf("list backups: %w", err)
	}
	if len(list.Files) == 0 {
		return File{}, false, nil
	}
	f := list.Files[0]
	return File{ID: f.Id, Name: f.Name, CreatedTime: f.CreatedTime}, true, nil
}

// Download reads the content of a file.
func (r *GoogleDriveRepository) Download(ctx context.Context, id string) ([]byte, error) {
	resp, err := r.service.Files.Get(id).Context(ctx).Download()
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", id, err)
	}
	defer resp.Body.Close()

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", id, err)
	}
	return content, nil
}
