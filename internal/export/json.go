package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/hyperengineering/lifegrid/internal/types"
)

type jsonExport struct {
	ExportedAt string              `json:"exported_at"`
	BaseYear   int                 `json:"base_year"`
	Count      int                 `json:"count"`
	Periods    []*types.Period     `json:"periods"`
	Events     []types.AnnualEvent `json:"events,omitempty"`
}

// ToJSON writes the full period documents plus annual events as a single
// indented JSON file, a complete logical backup of the plan.
func ToJSON(periods []*types.Period, events []types.AnnualEvent, baseYear int, path string) error {
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		BaseYear:   baseYear,
		Count:      len(periods),
		Periods:    sortedByID(periods),
		Events:     events,
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
