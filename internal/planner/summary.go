package planner

import (
	"context"
	"errors"
	"math"

	"github.com/hyperengineering/lifegrid/internal/period"
	"github.com/hyperengineering/lifegrid/internal/store"
	"github.com/hyperengineering/lifegrid/internal/types"
)

// Summarize computes the completion roll-up of one period document. Pure
// read-side arithmetic; the rate is a rounded percentage and defined as 0
// for an empty period.
func Summarize(p *types.Period) types.Summary {
	s := types.Summary{PeriodID: p.ID, Level: p.Level}

	count := func(list []types.Item) (total, completed int) {
		for _, item := range list {
			total++
			if item.Completed {
				completed++
			}
		}
		return total, completed
	}

	s.TodoCount, s.TodoCompleted = count(p.Todos)
	s.RoutineCount, s.RoutineCompleted = count(p.Routines)
	for _, list := range p.Slots {
		t, c := count(list)
		s.SlotItemCount += t
		s.SlotItemCompleted += c
	}
	for _, list := range p.TimeSlots {
		t, c := count(list)
		s.SlotItemCount += t
		s.SlotItemCompleted += c
	}

	s.TotalCount = s.TodoCount + s.RoutineCount + s.SlotItemCount
	s.TotalCompleted = s.TodoCompleted + s.RoutineCompleted + s.SlotItemCompleted
	if s.TotalCount > 0 {
		s.CompletionRate = int(math.Round(100 * float64(s.TotalCompleted) / float64(s.TotalCount)))
	}
	return s
}

// GetPeriodSummary returns the summary of one stored period, or
// store.ErrNotFound.
func (s *Service) GetPeriodSummary(ctx context.Context, periodID string) (types.Summary, error) {
	p, err := s.store.GetPeriod(ctx, periodID)
	if err != nil {
		return types.Summary{}, err
	}
	return Summarize(p), nil
}

// GetChildPeriods lists a period's child IDs with per-child summaries.
// A child with no stored document summarizes as an empty period of the
// inferred level, never as an error.
func (s *Service) GetChildPeriods(ctx context.Context, periodID string, baseYear int) ([]types.ChildSummary, error) {
	children := period.Children(periodID, s.resolveBaseYear(baseYear))

	out := make([]types.ChildSummary, 0, len(children))
	for _, childID := range children {
		p, err := s.store.GetPeriod(ctx, childID)
		if errors.Is(err, store.ErrNotFound) {
			p = types.NewPeriod(childID, period.LevelOf(childID))
		} else if err != nil {
			return nil, err
		}
		out = append(out, types.ChildSummary{PeriodID: childID, Summary: Summarize(p)})
	}
	return out, nil
}
