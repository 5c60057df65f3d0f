// Package forest maintains the cross-period item index and the completion
// and deletion cascades over it. A Forest is a snapshot built from every
// loaded period document; mutations happen on the in-memory index and are
// written back through Apply, which reports the subset of documents that
// actually changed.
package forest

import "github.com/hyperengineering/lifegrid/internal/types"

// Forest indexes every item across a set of period documents by ID and
// holds the parent/child adjacency as first-class state. Item values in the
// index are canonical: copies embedded in period lists are reconciled from
// the index during Apply.
type Forest struct {
	items   map[string]*types.Item
	periods []*types.Period
}

// Build scans every period's todos, routines, slot lists and time-slot
// lists, indexing items by ID. A duplicate ID is not an error: the later
// occurrence in scan order silently wins, matching the copy-by-value
// storage model where every copy is expected to carry the same state.
func Build(periods []*types.Period) *Forest {
	f := &Forest{
		items:   make(map[string]*types.Item),
		periods: periods,
	}
	for _, p := range periods {
		f.index(p.Todos)
		f.index(p.Routines)
		for _, list := range p.Slots {
			f.index(list)
		}
		for _, list := range p.TimeSlots {
			f.index(list)
		}
	}
	return f
}

func (f *Forest) index(list []types.Item) {
	for i := range list {
		item := list[i]
		f.items[item.ID] = &item
	}
}

// Get returns the canonical state of an item.
func (f *Forest) Get(id string) (*types.Item, bool) {
	item, ok := f.items[id]
	return item, ok
}

// Len returns the number of distinct item IDs in the forest.
func (f *Forest) Len() int {
	return len(f.items)
}

// Apply reconciles every scanned period document with the forest's
// canonical item state. Items whose IDs are in deleted are removed from
// every list; surviving items whose IDs are in dirty are replaced with
// their canonical value wherever they appear. Returns the periods whose
// contents changed.
func (f *Forest) Apply(dirty, deleted map[string]bool) []*types.Period {
	var changed []*types.Period
	for _, p := range f.periods {
		touched := false

		if list, ok := f.applyList(p.Todos, dirty, deleted); ok {
			p.Todos = list
			touched = true
		}
		if list, ok := f.applyList(p.Routines, dirty, deleted); ok {
			p.Routines = list
			touched = true
		}
		for key, slot := range p.Slots {
			if list, ok := f.applyList(slot, dirty, deleted); ok {
				p.Slots[key] = list
				touched = true
			}
		}
		for key, slot := range p.TimeSlots {
			if list, ok := f.applyList(slot, dirty, deleted); ok {
				p.TimeSlots[key] = list
				touched = true
			}
		}

		if touched {
			changed = append(changed, p)
		}
	}
	return changed
}

// applyList rebuilds one item list against the canonical index. The second
// return reports whether anything changed.
func (f *Forest) applyList(list []types.Item, dirty, deleted map[string]bool) ([]types.Item, bool) {
	out := make([]types.Item, 0, len(list))
	touched := false

	for _, item := range list {
		if deleted[item.ID] {
			touched = true
			continue
		}
		if dirty[item.ID] {
			if canonical, ok := f.items[item.ID]; ok {
				out = append(out, *canonical)
				touched = true
				continue
			}
		}
		out = append(out, item)
	}

	if !touched {
		return nil, false
	}
	return out, true
}

// removeID strips one ID from a slice, returning the filtered slice and
// whether anything was removed.
func removeID(ids []string, id string) ([]string, bool) {
	out := ids[:0]
	removed := false
	for _, v := range ids {
		if v == id {
			removed = true
			continue
		}
		out = append(out, v)
	}
	return out, removed
}
