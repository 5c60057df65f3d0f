package planner

import (
	"context"
	"fmt"

	"github.com/hyperengineering/lifegrid/internal/period"
	"github.com/hyperengineering/lifegrid/internal/types"
	"github.com/oklog/ulid/v2"
)

// ErrInvalidTarget is returned when an assignment target is not a child
// period of the source period, or not a known time-of-day tag.
var ErrInvalidTarget = fmt.Errorf("invalid assignment target")

// AssignToSlot copies an item into the sub-period slot for one of the
// period's child periods. The copy is a new item linked to the source via
// ParentID/ChildIDs; completion cascades between the two only when either
// is later toggled. The slot bucket lives in the source document, keyed by
// the child period ID; the target child document is materialized so the
// child page exists once something points at it.
func (s *Service) AssignToSlot(ctx context.Context, periodID, itemID, targetPeriodID, subContent string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !isChildPeriod(periodID, targetPeriodID, s.baseYear) {
		return "", fmt.Errorf("assign %s -> %s: %w", periodID, targetPeriodID, ErrInvalidTarget)
	}

	p, err := s.store.GetPeriod(ctx, periodID)
	if err != nil {
		return "", err
	}

	copyID, err := s.linkCopy(p, itemID, subContent, func(copy types.Item) {
		if p.Slots == nil {
			p.Slots = make(map[string][]types.Item)
		}
		p.Slots[targetPeriodID] = append(p.Slots[targetPeriodID], copy)
	})
	if err != nil {
		return "", err
	}

	target, err := s.store.GetOrCreatePeriod(ctx, targetPeriodID, period.LevelOf(targetPeriodID))
	if err != nil {
		return "", err
	}
	if err := s.store.SavePeriods(ctx, []*types.Period{p, target}); err != nil {
		return "", err
	}
	return copyID, nil
}

// AssignToTimeSlot copies an item into one of the eight fixed time-of-day
// slots of a DAY period.
func (s *Service) AssignToTimeSlot(ctx context.Context, periodID, itemID string, slot types.TimeOfDay, subContent string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !slot.Valid() {
		return "", fmt.Errorf("assign %s to %q: %w", itemID, slot, ErrInvalidTarget)
	}
	if period.LevelOf(periodID) != types.LevelDay {
		return "", fmt.Errorf("assign to time slot on %s: %w", periodID, ErrInvalidTarget)
	}

	p, err := s.store.GetPeriod(ctx, periodID)
	if err != nil {
		return "", err
	}

	copyID, err := s.linkCopy(p, itemID, subContent, func(copy types.Item) {
		if p.TimeSlots == nil {
			p.TimeSlots = make(map[types.TimeOfDay][]types.Item)
		}
		p.TimeSlots[slot] = append(p.TimeSlots[slot], copy)
	})
	if err != nil {
		return "", err
	}

	if err := s.store.SavePeriods(ctx, []*types.Period{p}); err != nil {
		return "", err
	}
	return copyID, nil
}

// linkCopy creates the linked copy of the source item and wires the
// parent/child relationship: the copy's ParentID points at the source, and
// every occurrence of the source inside the document gains the copy's ID in
// its ChildIDs.
func (s *Service) linkCopy(p *types.Period, itemID, subContent string, place func(types.Item)) (string, error) {
	var source *types.Item
	forEachItem(p, func(item *types.Item) {
		if item.ID == itemID && source == nil {
			source = item
		}
	})
	if source == nil {
		return "", fmt.Errorf("assign %s in %s: %w", itemID, p.ID, ErrItemNotFound)
	}

	content := source.Content
	if subContent != "" {
		content = subContent
	}
	copy := types.Item{
		ID:             ulid.Make().String(),
		Content:        content,
		Color:          source.Color,
		Category:       source.Category,
		TodoCategory:   source.TodoCategory,
		ParentID:       source.ID,
		OriginPeriodID: p.ID,
		OriginType:     source.OriginType,
	}

	// Patch every by-value occurrence of the source, not just the first.
	forEachItem(p, func(item *types.Item) {
		if item.ID == itemID {
			item.ChildIDs = append(item.ChildIDs, copy.ID)
		}
	})

	place(copy)
	return copy.ID, nil
}

// isChildPeriod reports whether target is one of id's direct children.
func isChildPeriod(id, target string, baseYear int) bool {
	for _, child := range period.Children(id, baseYear) {
		if child == target {
			return true
		}
	}
	return false
}
