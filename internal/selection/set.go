package selection

import "sort"

// Set is an immutable set of exam ids. The zero value is an empty set.
type Set struct {
	ids map[string]bool
}

// Of returns a set containing ids
func Of(ids ...string) Set {
	s := Set{ids: make(map[string]bool, len(ids))}
	for _, id := range ids {
		s.ids[id] = true
	}
	return s
}

// Has reports whether id is selected
func (s Set) Has(id string) bool {
	return s.ids[id]
}

// Len returns the number of selected ids
func (s Set) Len() int {
	return len(s.ids)
}

// IDs returns the selected ids in ascending order
func (s Set) IDs() []string {
	ids := make([]string, 0, len(s.ids))
	for id := range s.ids {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Equal reports whether both sets hold the same ids
func (s Set) Equal(other Set) bool {
	if len(s.ids) != len(other.ids) {
		return false
	}
	for id := range s.ids {
		if !other.ids[id] {
			return false
		}
	}
	return true
}

// Toggle returns a new set with id removed if present, else added.
// The input set is left untouched.
func Toggle(id string, current Set) Set {
	next := Set{ids: make(map[string]bool, len(current.ids)+1)}
	for k := range current.ids {
		next.ids[k] = true
	}
	if next.ids[id] {
		delete(next.ids, id)
	} else {
		next.ids[id] = true
	}
	return next
}

// Diff returns the ids added and removed going from prev to next
func Diff(prev, next Set) (added, removed []string) {
	for _, id := range next.IDs() {
		if !prev.Has(id) {
			added = append(added, id)
		}
	}
	for _, id := range prev.IDs() {
		if !next.Has(id) {
			removed = append(removed, id)
		}
	}
	return added, removed
}
