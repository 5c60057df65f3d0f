package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"

	"github.com/hyperengineering/lifegrid/internal/types"
)

// ToCSV writes one row per item across all period documents. Items from
// slot buckets carry the slot key so the row locates them exactly.
func ToCSV(periods []*types.Period, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	// Header
	if err := w.Write([]string{"Period", "Level", "List", "Slot", "Item ID", "Content", "Completed", "Category", "Todo Category", "Note"}); err != nil {
		return err
	}

	for _, p := range sortedByID(periods) {
		writeList := func(list []types.Item, listName, slotKey string) error {
			for _, item := range list {
				row := []string{
					p.ID,
					string(p.Level),
					listName,
					slotKey,
					item.ID,
					item.Content,
					fmt.Sprintf("%t", item.Completed),
					string(item.Category),
					string(item.TodoCategory),
					item.Note,
				}
				if err := w.Write(row); err != nil {
					return err
				}
			}
			return nil
		}

		if err := writeList(p.Todos, "todos", ""); err != nil {
			return err
		}
		if err := writeList(p.Routines, "routines", ""); err != nil {
			return err
		}
		for _, key := range sortedKeys(p.Slots) {
			if err := writeList(p.Slots[key], "slots", key); err != nil {
				return err
			}
		}
		for _, slot := range types.TimesOfDay() {
			if err := writeList(p.TimeSlots[slot], "time_slots", string(slot)); err != nil {
				return err
			}
		}
	}

	return w.Error()
}

// sortedByID orders periods deterministically without mutating the input.
func sortedByID(periods []*types.Period) []*types.Period {
	out := make([]*types.Period, len(periods))
	copy(out, periods)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func sortedKeys(m map[string][]types.Item) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
