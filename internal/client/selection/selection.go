// Package selection tracks which table rows are checked.
//
// The selection is a plain set of ids. It is not pruned when the underlying
// collection changes, so ids of rows that disappeared may linger until the
// next Clear.
package selection

import "sort"

type Tracker struct {
	ids map[string]struct{}
}

func NewTracker() *Tracker {
	return &Tracker{ids: make(map[string]struct{})}
}

// SelectAll replaces the selection with exactly pageIDs. Ids selected on
// other pages are dropped.
func (t *Tracker) SelectAll(pageIDs []string) {
	t.ids = make(map[string]struct{}, len(pageIDs))
	for _, id := range pageIDs {
		t.ids[id] = struct{}{}
	}
}

// SelectNone empties the selection.
func (t *Tracker) SelectNone() {
	t.Clear()
}

// SelectOne adds id when included is true and removes it otherwise.
func (t *Tracker) SelectOne(id string, included bool) {
	if included {
		t.ids[id] = struct{}{}
		return
	}
	delete(t.ids, id)
}

// Clear is called after a successful bulk action.
func (t *Tracker) Clear() {
	t.ids = make(map[string]struct{})
}

func (t *Tracker) Has(id string) bool {
	_, ok := t.ids[id]
	return ok
}

func (t *Tracker) Len() int {
	return len(t.ids)
}

// IDs returns the selected ids in lexical order.
func (t *Tracker) IDs() []string {
	out := make([]string, 0, len(t.ids))
	for id := range t.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// State reports the header checkbox flags for the given page: all is true
// when the page is non-empty and every row on it is selected; some is true
// when at least one row on it is selected.
func (t *Tracker) State(pageIDs []string) (all, some bool) {
	if len(pageIDs) == 0 {
		return false, false
	}
	all = true
	for _, id := range pageIDs {
		if t.Has(id) {
			some = true
		} else {
			all = false
		}
	}
	return all, some
}
