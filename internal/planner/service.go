// Package planner implements the plan operations over the document store:
// period reads, item mutation with completion/deletion cascades, slot
// assignment, summaries, search, daily records and annual events.
package planner

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/hyperengineering/lifegrid/internal/forest"
	"github.com/hyperengineering/lifegrid/internal/period"
	"github.com/hyperengineering/lifegrid/internal/store"
	"github.com/hyperengineering/lifegrid/internal/types"
	"github.com/oklog/ulid/v2"
)

// ErrItemNotFound mirrors the forest sentinel for callers that only import
// the planner.
var ErrItemNotFound = forest.ErrItemNotFound

// Service executes plan operations against a Store. Mutating operations are
// serialized by an in-process mutex; on top of that, every write is a
// compare-and-set on document revisions, so an external writer racing the
// load/mutate/write window surfaces as a revision conflict instead of a
// silent lost update. Cross-period mutations retry once after a conflict.
type Service struct {
	store    store.Store
	baseYear int
	now      func() time.Time

	mu sync.Mutex
}

// NewService creates a Service anchored at the given base year.
func NewService(s store.Store, baseYear int) *Service {
	return &Service{
		store:    s,
		baseYear: baseYear,
		now:      time.Now,
	}
}

// BaseYear returns the anchor year of the 30-year plan.
func (s *Service) BaseYear() int {
	return s.baseYear
}

// resolveBaseYear substitutes the configured anchor when a request does not
// carry one.
func (s *Service) resolveBaseYear(baseYear int) int {
	if baseYear == 0 {
		return s.baseYear
	}
	return baseYear
}

// GetPeriod returns the stored period document, or store.ErrNotFound.
func (s *Service) GetPeriod(ctx context.Context, id string) (*types.Period, error) {
	return s.store.GetPeriod(ctx, id)
}

// GetCurrentPeriod resolves the period containing today at the requested
// level. The document is materialized empty if it has never been written.
func (s *Service) GetCurrentPeriod(ctx context.Context, level types.Level, baseYear int) (string, *types.Period, error) {
	id := period.Current(level, s.resolveBaseYear(baseYear), s.now())
	p, err := s.store.GetOrCreatePeriod(ctx, id, level)
	if err != nil {
		return "", nil, err
	}
	return id, p, nil
}

// AddItem creates a new item in the period's todos or routines list and
// returns its ID. The period document is created lazily if absent.
func (s *Service) AddItem(ctx context.Context, periodID string, req types.AddItemRequest) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.store.GetOrCreatePeriod(ctx, periodID, period.LevelOf(periodID))
	if err != nil {
		return "", err
	}

	item := types.Item{
		ID:             ulid.Make().String(),
		Content:        req.Content,
		Category:       req.Category,
		TodoCategory:   req.TodoCategory,
		TargetCount:    req.TargetCount,
		Note:           req.Note,
		Color:          req.Color,
		OriginPeriodID: periodID,
		OriginType:     req.Type,
	}

	switch req.Type {
	case types.ItemTypeRoutine:
		p.Routines = append(p.Routines, item)
	default:
		item.OriginType = types.ItemTypeTodo
		p.Todos = append(p.Todos, item)
	}

	if err := s.store.SavePeriods(ctx, []*types.Period{p}); err != nil {
		return "", err
	}
	return item.ID, nil
}

// UpdateItem patches content, note and color of an item wherever it appears
// inside the given period document.
func (s *Service) UpdateItem(ctx context.Context, periodID, itemID string, req types.UpdateItemRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.store.GetPeriod(ctx, periodID)
	if err != nil {
		return err
	}

	patched := false
	patch := func(item *types.Item) {
		if req.Content != nil {
			item.Content = *req.Content
		}
		if req.Note != nil {
			item.Note = *req.Note
		}
		if req.Color != nil {
			item.Color = *req.Color
		}
		patched = true
	}
	forEachItem(p, func(item *types.Item) {
		if item.ID == itemID {
			patch(item)
		}
	})
	if !patched {
		return fmt.Errorf("update %s in %s: %w", itemID, periodID, ErrItemNotFound)
	}

	return s.store.SavePeriods(ctx, []*types.Period{p})
}

// ToggleComplete flips the item's completion state and settles the cascade
// across every affected period document. Returns the item's new state.
func (s *Service) ToggleComplete(ctx context.Context, periodID, itemID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var state bool
	err := s.retryOnConflict(func() error {
		periods, err := s.store.ListPeriods(ctx)
		if err != nil {
			return fmt.Errorf("load periods: %w", err)
		}
		f := forest.Build(periods)
		newState, dirty, err := f.Toggle(itemID)
		if err != nil {
			return err
		}
		state = newState
		return s.store.SavePeriods(ctx, f.Apply(dirty, nil))
	})
	return state, err
}

// DeleteItem removes the item and its full descendant closure from every
// period document, repairing the surviving parent's child links. Returns
// the number of items removed.
func (s *Service) DeleteItem(ctx context.Context, periodID, itemID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int
	err := s.retryOnConflict(func() error {
		periods, err := s.store.ListPeriods(ctx)
		if err != nil {
			return fmt.Errorf("load periods: %w", err)
		}
		f := forest.Build(periods)
		deleted, dirty, err := f.Delete(itemID)
		if err != nil {
			return err
		}
		count = len(deleted)
		return s.store.SavePeriods(ctx, f.Apply(dirty, deleted))
	})
	return count, err
}

// UpdateHeader patches the goal and motto of one period document, creating
// it on first write.
func (s *Service) UpdateHeader(ctx context.Context, periodID string, req types.UpdateHeaderRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.store.GetOrCreatePeriod(ctx, periodID, period.LevelOf(periodID))
	if err != nil {
		return err
	}
	if req.Goal != nil {
		p.Goal = *req.Goal
	}
	if req.Motto != nil {
		p.Motto = *req.Motto
	}
	return s.store.SavePeriods(ctx, []*types.Period{p})
}

// GetRecord returns the daily record of a DAY period. A missing record
// reads as an empty record, never as an error.
func (s *Service) GetRecord(ctx context.Context, periodID string) (*types.DailyRecord, error) {
	rec, err := s.store.GetRecord(ctx, periodID)
	if errors.Is(err, store.ErrRecordNotFound) {
		return &types.DailyRecord{PeriodID: periodID}, nil
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// UpdateRecord replaces the daily record of a DAY period.
func (s *Service) UpdateRecord(ctx context.Context, periodID string, req types.UpdateRecordRequest) (*types.DailyRecord, error) {
	rec := &types.DailyRecord{
		PeriodID:   periodID,
		Content:    req.Content,
		Mood:       req.Mood,
		Highlights: req.Highlights,
		Gratitude:  req.Gratitude,
	}
	if err := s.store.PutRecord(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// ListEvents returns all annual events.
func (s *Service) ListEvents(ctx context.Context) ([]types.AnnualEvent, error) {
	return s.store.ListEvents(ctx)
}

// AddEvent creates a recurring annual event.
func (s *Service) AddEvent(ctx context.Context, req types.AddEventRequest) (*types.AnnualEvent, error) {
	return s.store.AddEvent(ctx, types.AnnualEvent{
		Name:  req.Name,
		Month: req.Month,
		Day:   req.Day,
		Lunar: req.Lunar,
	})
}

// DeleteEvent removes an annual event.
func (s *Service) DeleteEvent(ctx context.Context, id string) error {
	return s.store.DeleteEvent(ctx, id)
}

// CountPeriods reports the number of stored period documents.
func (s *Service) CountPeriods(ctx context.Context) (int64, error) {
	return s.store.CountPeriods(ctx)
}

// retryOnConflict runs fn, retrying exactly once when a concurrent writer
// invalidated the revisions read during fn.
func (s *Service) retryOnConflict(fn func() error) error {
	err := fn()
	if errors.Is(err, store.ErrRevisionConflict) {
		return fn()
	}
	return err
}

// forEachItem visits every item stored in one period document, across all
// four list kinds.
func forEachItem(p *types.Period, visit func(*types.Item)) {
	for i := range p.Todos {
		visit(&p.Todos[i])
	}
	for i := range p.Routines {
		visit(&p.Routines[i])
	}
	for _, list := range p.Slots {
		for i := range list {
			visit(&list[i])
		}
	}
	for _, list := range p.TimeSlots {
		for i := range list {
			visit(&list[i])
		}
	}
}
