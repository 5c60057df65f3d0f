package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hyperengineering/lifegrid/internal/config"
	"github.com/hyperengineering/lifegrid/internal/snapshot"
	"github.com/hyperengineering/lifegrid/internal/store"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Generate a database snapshot and upload it if backup storage is configured",
	RunE:  runBackup,
}

func init() {
	rootCmd.AddCommand(backupCmd)
}

func runBackup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	db, err := store.NewSQLiteStore(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := cmd.Context()
	if err := db.GenerateSnapshot(ctx); err != nil {
		return fmt.Errorf("generate snapshot: %w", err)
	}

	path, err := db.GetSnapshotPath(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "snapshot written to %s\n", path)

	uploader, err := snapshot.NewUploader(cfg.Backup)
	if err != nil {
		return err
	}
	if !uploader.Configured() {
		return nil
	}

	key, err := uploader.Upload(ctx, path)
	if err != nil {
		return fmt.Errorf("upload snapshot: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "snapshot uploaded as %s\n", key)
	return nil
}
