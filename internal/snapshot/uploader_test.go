package snapshot

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hyperengineering/lifegrid/internal/config"
)

// --- NoopUploader Tests ---

func TestNoopUploader_Upload_IsNoOp(t *testing.T) {
	u := &NoopUploader{}
	key, err := u.Upload(context.Background(), "/some/path")
	if err != nil {
		t.Errorf("NoopUploader.Upload() should not error, got %v", err)
	}
	if key != "" {
		t.Errorf("NoopUploader.Upload() key = %q, want empty", key)
	}
	if u.Configured() {
		t.Error("NoopUploader.Configured() = true, want false")
	}
}

// --- NewUploader factory tests ---

func TestNewUploader_EmptyBucket_ReturnsNoopUploader(t *testing.T) {
	cfg := config.BackupConfig{
		Bucket: "", // Empty = not configured
	}

	u, err := NewUploader(cfg)
	if err != nil {
		t.Fatalf("NewUploader() error = %v", err)
	}

	if _, ok := u.(*NoopUploader); !ok {
		t.Errorf("expected *NoopUploader, got %T", u)
	}
}

func TestNewUploader_WithBucket_ReturnsS3Uploader(t *testing.T) {
	cfg := config.BackupConfig{
		Bucket:    "test-bucket",
		Endpoint:  "localhost:9000",
		Region:    "us-east-1",
		AccessKey: "minioadmin",
		SecretKey: "minioadmin",
	}

	u, err := NewUploader(cfg)
	if err != nil {
		t.Fatalf("NewUploader() error = %v", err)
	}

	s3u, ok := u.(*S3Uploader)
	if !ok {
		t.Fatalf("expected *S3Uploader, got %T", u)
	}
	if s3u.bucket != "test-bucket" {
		t.Errorf("bucket = %q, want %q", s3u.bucket, "test-bucket")
	}
	if !s3u.Configured() {
		t.Error("S3Uploader.Configured() = false, want true")
	}
}

// --- S3Uploader with mock client tests ---

// mockS3Client implements s3Client for testing.
type mockS3Client struct {
	uploadCalled   bool
	uploadErr      error
	lastBucket     string
	lastObjectName string
	lastFilePath   string
}

func (m *mockS3Client) FPutObject(ctx context.Context, bucket, objectName, filePath string) error {
	m.uploadCalled = true
	m.lastBucket = bucket
	m.lastObjectName = objectName
	m.lastFilePath = filePath
	return m.uploadErr
}

func TestS3Uploader_Upload_Success(t *testing.T) {
	// Create a temp file to upload
	tmpDir := t.TempDir()
	filePath := filepath.Join(tmpDir, "lifegrid.db.snapshot")
	if err := os.WriteFile(filePath, []byte("test data"), 0644); err != nil {
		t.Fatalf("write test file: %v", err)
	}

	mock := &mockS3Client{}
	u := &S3Uploader{
		client: mock,
		bucket: "test-bucket",
		now:    func() time.Time { return time.Date(2026, 7, 15, 10, 30, 0, 0, time.UTC) },
	}

	key, err := u.Upload(context.Background(), filePath)
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}

	if !mock.uploadCalled {
		t.Error("expected FPutObject to be called")
	}
	if mock.lastBucket != "test-bucket" {
		t.Errorf("bucket = %q, want %q", mock.lastBucket, "test-bucket")
	}
	if key != "backups/lifegrid-20260715T103000Z.db" {
		t.Errorf("key = %q, want timestamped backup key", key)
	}
	if mock.lastObjectName != key {
		t.Errorf("objectName = %q, want %q", mock.lastObjectName, key)
	}
	if mock.lastFilePath != filePath {
		t.Errorf("filePath = %q, want %q", mock.lastFilePath, filePath)
	}
}

func TestS3Uploader_Upload_Error(t *testing.T) {
	mock := &mockS3Client{
		uploadErr: errors.New("network timeout"),
	}
	u := &S3Uploader{
		client: mock,
		bucket: "test-bucket",
		now:    time.Now,
	}

	_, err := u.Upload(context.Background(), "/path/to/file.db")
	if err == nil {
		t.Fatal("Upload() expected error, got nil")
	}
	if !errors.Is(err, mock.uploadErr) {
		t.Errorf("expected wrapped network timeout error, got %v", err)
	}
}

func TestObjectKey_Format(t *testing.T) {
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	got := objectKey(at)
	want := "backups/lifegrid-20260102T030405Z.db"
	if got != want {
		t.Errorf("objectKey(%v) = %q, want %q", at, got, want)
	}
}
