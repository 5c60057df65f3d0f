package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hyperengineering/lifegrid/internal/config"
	"github.com/hyperengineering/lifegrid/internal/export"
	"github.com/hyperengineering/lifegrid/internal/store"
)

var (
	exportFormat string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the plan to CSV or JSON without running the server",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "json", "Output format: json or csv")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file path (required)")

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	if exportOutput == "" {
		return fmt.Errorf("--output is required")
	}

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
	periods, err := db.ListPeriods(ctx)
	if err != nil {
		return fmt.Errorf("load periods: %w", err)
	}

	switch strings.ToLower(exportFormat) {
	case "csv":
		if err := export.ToCSV(periods, exportOutput); err != nil {
			return err
		}
	case "json":
		events, err := db.ListEvents(ctx)
		if err != nil {
			return fmt.Errorf("load events: %w", err)
		}
		if err := export.ToJSON(periods, events, cfg.Plan.BaseYear, exportOutput); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format %q, want json or csv", exportFormat)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "exported %d periods to %s\n", len(periods), exportOutput)
	return nil
}
