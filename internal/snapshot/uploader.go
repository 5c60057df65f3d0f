// Package snapshot provides S3-compatible upload of database backups.
// When S3 is not configured (empty bucket), the NoopUploader is used and
// uploads are skipped, keeping the system in local-only mode.
package snapshot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/hyperengineering/lifegrid/internal/config"
)

// ErrNotConfigured is returned when S3 backup storage is not configured.
var ErrNotConfigured = errors.New("backup storage not configured")

// Uploader uploads database snapshot files to backup storage.
type Uploader interface {
	// Upload pushes the snapshot file to the backup bucket. Returns the
	// object key the snapshot was stored under.
	Upload(ctx context.Context, filePath string) (string, error)

	// Configured reports whether uploads actually go anywhere.
	Configured() bool
}

// s3Client defines the minimal minio.Client surface used by S3Uploader.
// This interface enables testing with mock implementations.
type s3Client interface {
	FPutObject(ctx context.Context, bucket, objectName, filePath string) error
}

// minioClientWrapper wraps *minio.Client to satisfy the s3Client interface.
type minioClientWrapper struct {
	client *minio.Client
}

func (w *minioClientWrapper) FPutObject(ctx context.Context, bucket, objectName, filePath string) error {
	opts := minio.PutObjectOptions{
		ContentType: "application/octet-stream",
	}
	_, err := w.client.FPutObject(ctx, bucket, objectName, filePath, opts)
	return err
}

// S3Uploader uploads snapshots to S3-compatible storage.
type S3Uploader struct {
	client s3Client
	bucket string
	now    func() time.Time
}

// Upload uploads the snapshot file under a timestamped object key.
func (u *S3Uploader) Upload(ctx context.Context, filePath string) (string, error) {
	key := objectKey(u.now())
	if err := u.client.FPutObject(ctx, u.bucket, key, filePath); err != nil {
		return "", fmt.Errorf("upload snapshot to S3: %w", err)
	}
	return key, nil
}

// Configured reports true; an S3Uploader always has a bucket.
func (u *S3Uploader) Configured() bool {
	return true
}

// NoopUploader is used when S3 storage is not configured.
type NoopUploader struct{}

// Upload is a no-op when S3 is not configured.
func (u *NoopUploader) Upload(ctx context.Context, filePath string) (string, error) {
	return "", nil
}

// Configured reports false.
func (u *NoopUploader) Configured() bool {
	return false
}

// NewUploader creates the appropriate Uploader based on configuration.
// Returns NoopUploader when bucket is empty, S3Uploader otherwise.
func NewUploader(cfg config.BackupConfig) (Uploader, error) {
	if cfg.Bucket == "" {
		return &NoopUploader{}, nil
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: true,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("create S3 client: %w", err)
	}

	return &S3Uploader{
		client: &minioClientWrapper{client: client},
		bucket: cfg.Bucket,
		now:    time.Now,
	}, nil
}

// objectKey returns the S3 object key for a backup taken at t.
// Convention: backups/lifegrid-{timestamp}.db
func objectKey(t time.Time) string {
	return "backups/lifegrid-" + t.UTC().Format("20060102T150405Z") + ".db"
}
