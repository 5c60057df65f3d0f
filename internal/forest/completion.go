package forest

import (
	"errors"
	"fmt"
)

// ErrItemNotFound is returned when a cascade targets an ID absent from the
// forest.
var ErrItemNotFound = errors.New("item not found")

// Toggle flips the completion state of the item and settles the forest:
// every descendant is forced to the new state, then ancestors are
// re-evaluated bottom-up under the all-children-complete rule. Returns the
// toggled item's new state and the set of item IDs whose state changed.
//
// Both walks use explicit worklists with visited sets, so cyclic child
// links or deep hierarchies cannot blow the stack.
func (f *Forest) Toggle(itemID string) (bool, map[string]bool, error) {
	item, ok := f.items[itemID]
	if !ok {
		return false, nil, fmt.Errorf("toggle %s: %w", itemID, ErrItemNotFound)
	}

	newState := !item.Completed
	dirty := map[string]bool{itemID: true}
	item.Completed = newState

	f.cascadeDown(item.ChildIDs, newState, dirty)
	f.cascadeUp(item.ParentID, dirty)

	return newState, dirty, nil
}

// cascadeDown forces every reachable descendant to the given state.
// Child IDs pointing at missing items are skipped, not treated as errors.
func (f *Forest) cascadeDown(roots []string, state bool, dirty map[string]bool) {
	visited := make(map[string]bool)
	work := append([]string(nil), roots...)

	for len(work) > 0 {
		id := work[len(work)-1]
		work = work[:len(work)-1]
		if visited[id] {
			continue
		}
		visited[id] = true

		child, ok := f.items[id]
		if !ok {
			continue
		}
		if child.Completed != state {
			child.Completed = state
			dirty[id] = true
		}
		work = append(work, child.ChildIDs...)
	}
}

// cascadeUp walks the parent chain, recomputing each ancestor's completion
// as "all children completed". An ancestor with no resolvable children is
// never auto-toggled by its empty child set. The walk stops at the first
// ancestor whose state is already consistent.
func (f *Forest) cascadeUp(parentID string, dirty map[string]bool) {
	visited := make(map[string]bool)

	for id := parentID; id != "" && !visited[id]; {
		visited[id] = true

		parent, ok := f.items[id]
		if !ok {
			return
		}
		want, evaluable := f.allChildrenComplete(parent.ChildIDs)
		if !evaluable || parent.Completed == want {
			return
		}
		parent.Completed = want
		dirty[id] = true
		id = parent.ParentID
	}
}

// allChildrenComplete evaluates the completion rule over a child ID list.
// The second return is false when no children resolve, in which case the
// rule does not apply.
func (f *Forest) allChildrenComplete(childIDs []string) (bool, bool) {
	total := 0
	completed := 0
	for _, id := range childIDs {
		child, ok := f.items[id]
		if !ok {
			// Dangling reference: skip rather than fail the cascade.
			continue
		}
		total++
		if child.Completed {
			completed++
		}
	}
	if total == 0 {
		return false, false
	}
	return completed == total, true
}
