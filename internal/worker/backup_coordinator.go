// Package worker runs background maintenance loops alongside the HTTP
// server. Workers never touch the plan's mutation path; they only read
// store state and push artifacts out.
package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/hyperengineering/lifegrid/internal/snapshot"
)

// SnapshotCapableStore represents a store that can generate snapshots.
type SnapshotCapableStore interface {
	GenerateSnapshot(ctx context.Context) error
	GetSnapshotPath(ctx context.Context) (string, error)
}

// BackupCoordinator periodically generates a database snapshot and uploads
// it to backup storage when configured.
type BackupCoordinator struct {
	store    SnapshotCapableStore
	uploader snapshot.Uploader
	interval time.Duration
}

// NewBackupCoordinator creates a coordinator over the given store.
// The uploader parameter is optional; if nil, no upload is attempted.
func NewBackupCoordinator(
	store SnapshotCapableStore,
	interval time.Duration,
	uploader snapshot.Uploader,
) *BackupCoordinator {
	return &BackupCoordinator{
		store:    store,
		uploader: uploader,
		interval: interval,
	}
}

// Run starts the coordinator loop.
func (c *BackupCoordinator) Run(ctx context.Context) {
	slog.Info("worker started",
		"component", "worker",
		"worker", "backup-coordinator",
		"action", "worker_started",
	)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	// Generate a backup immediately on start
	c.runOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("worker stopped",
				"component", "worker",
				"worker", "backup-coordinator",
				"action", "worker_stopped",
				"reason", "context_cancelled",
			)
			return
		case <-ticker.C:
			c.runOnce(ctx)
		}
	}
}

// runOnce generates one snapshot and uploads it. Returns true on success.
func (c *BackupCoordinator) runOnce(ctx context.Context) bool {
	slog.Info("backup started",
		"component", "worker",
		"worker", "backup-coordinator",
		"action", "backup_start",
	)

	if err := c.store.GenerateSnapshot(ctx); err != nil {
		if ctx.Err() != nil {
			return false // Graceful shutdown, don't log as error
		}
		slog.Warn("snapshot generation failed",
			"component", "worker",
			"worker", "backup-coordinator",
			"action", "backup_failed",
			"error", err,
		)
		return false
	}

	// Upload to S3 if configured (non-fatal on failure)
	if c.uploader != nil && c.uploader.Configured() {
		c.uploadSnapshot(ctx)
	}

	return true
}

// uploadSnapshot uploads the generated snapshot to backup storage.
// Upload failures are logged as warnings but are NOT fatal; the local
// snapshot remains valid.
func (c *BackupCoordinator) uploadSnapshot(ctx context.Context) {
	path, err := c.store.GetSnapshotPath(ctx)
	if err != nil {
		slog.Warn("failed to get snapshot path for upload",
			"component", "worker",
			"worker", "backup-coordinator",
			"action", "backup_upload_failed",
			"error", err,
		)
		return
	}

	key, err := c.uploader.Upload(ctx, path)
	if err != nil {
		slog.Warn("snapshot upload failed",
			"component", "worker",
			"worker", "backup-coordinator",
			"action", "backup_upload_failed",
			"error", err,
		)
		return
	}

	slog.Info("snapshot uploaded",
		"component", "worker",
		"worker", "backup-coordinator",
		"action", "backup_uploaded",
		"object_key", key,
	)
}
