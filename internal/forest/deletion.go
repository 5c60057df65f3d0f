package forest

import "fmt"

// Delete computes the full descendant closure of the item (the item itself
// included), removes it from the index, and repairs the surviving parent's
// child link. Returns the delete-set and the dirty-set for Apply: the
// dirty-set carries the repaired parent so every copy of it gets patched,
// not just one. The closure walk is an explicit worklist guarded against
// cyclic child links.
func (f *Forest) Delete(itemID string) (deleted, dirty map[string]bool, err error) {
	item, ok := f.items[itemID]
	if !ok {
		return nil, nil, fmt.Errorf("delete %s: %w", itemID, ErrItemNotFound)
	}

	deleted = make(map[string]bool)
	work := []string{itemID}
	for len(work) > 0 {
		id := work[len(work)-1]
		work = work[:len(work)-1]
		if deleted[id] {
			continue
		}
		deleted[id] = true

		if node, ok := f.items[id]; ok {
			work = append(work, node.ChildIDs...)
		}
	}

	dirty = make(map[string]bool)
	if item.ParentID != "" {
		if parent, ok := f.items[item.ParentID]; ok && !deleted[parent.ID] {
			if ids, removed := removeID(parent.ChildIDs, itemID); removed {
				parent.ChildIDs = ids
				dirty[parent.ID] = true
			}
		}
	}

	for id := range deleted {
		delete(f.items, id)
	}
	return deleted, dirty, nil
}
