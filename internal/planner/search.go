package planner

import (
	"context"
	"fmt"
	"strings"

	"github.com/hyperengineering/lifegrid/internal/types"
)

// SearchFilter narrows an item search. Level filters by the period's level;
// Completed filters by completion state when non-nil.
type SearchFilter struct {
	Level     types.Level
	Completed *bool
}

// SearchItems scans every period document for items whose content or note
// contains the query, case-insensitively. Matches carry the owning period
// and list so callers can act on them.
func (s *Service) SearchItems(ctx context.Context, query string, filter SearchFilter) ([]types.SearchMatch, error) {
	periods, err := s.store.ListPeriods(ctx)
	if err != nil {
		return nil, fmt.Errorf("load periods: %w", err)
	}

	needle := strings.ToLower(strings.TrimSpace(query))
	var matches []types.SearchMatch

	for _, p := range periods {
		if filter.Level != "" && p.Level != filter.Level {
			continue
		}

		collect := func(list []types.Item, listName, slotKey string) {
			for _, item := range list {
				if !itemMatches(item, needle, filter.Completed) {
					continue
				}
				matches = append(matches, types.SearchMatch{
					PeriodID: p.ID,
					Level:    p.Level,
					List:     listName,
					SlotKey:  slotKey,
					Item:     item,
				})
			}
		}

		collect(p.Todos, "todos", "")
		collect(p.Routines, "routines", "")
		for key, list := range p.Slots {
			collect(list, "slots", key)
		}
		for key, list := range p.TimeSlots {
			collect(list, "time_slots", string(key))
		}
	}
	return matches, nil
}

func itemMatches(item types.Item, needle string, completed *bool) bool {
	if completed != nil && item.Completed != *completed {
		return false
	}
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(item.Content), needle) ||
		strings.Contains(strings.ToLower(item.Note), needle)
}
