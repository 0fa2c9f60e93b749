package session

import (
	"examfinder/internal/location"
	"examfinder/internal/search"
	"examfinder/internal/selection"
)

// Outcome reports what a Sync call changed
type Outcome struct {
	ClassChanged     bool // the remembered class was replaced or forgotten
	SelectionReset   bool // selection was replaced wholesale
	LocationReplaced bool
}

// Synchronizer keeps the selected exam ids and the location consistent with
// the latest search result. It remembers a single class, the class whose
// exams were last auto-selected, and only resets the selection when a
// different class comes into view.
type Synchronizer struct {
	synced   string
	selected selection.Set
	history  location.History
}

// NewSynchronizer returns a synchronizer with no remembered class
func NewSynchronizer(history location.History) *Synchronizer {
	return &Synchronizer{history: history}
}

// Sync applies the transition rules for r
func (s *Synchronizer) Sync(r search.Result) Outcome {
	var out Outcome

	switch {
	case r.Mode == search.ModeDetail && r.Class() != "" && len(r.Exams) > 0:
		class := r.Class()
		if class != s.synced {
			s.synced = class
			s.selected = selection.Of(r.ExamIDs()...)
			out.ClassChanged = true
			out.SelectionReset = true
		}
		s.history.ReplaceState(location.WithClass(s.history.Location(), class))
		out.LocationReplaced = true

	case r.Mode == search.ModeEmpty:
		out.ClassChanged = s.synced != ""
		out.SelectionReset = s.selected.Len() > 0
		s.synced = ""
		s.selected = selection.Set{}
		s.history.ReplaceState(location.WithoutQuery(s.history.Location()))
		out.LocationReplaced = true

	default:
		// NOT_FOUND, LIST, or DETAIL without exams: forget the class but
		// keep the location as it is.
		out.ClassChanged = s.synced != ""
		s.synced = ""
	}

	return out
}

// Toggle flips one id in the selection
func (s *Synchronizer) Toggle(id string) {
	s.selected = selection.Toggle(id, s.selected)
}

// Selected returns the current selection
func (s *Synchronizer) Selected() selection.Set {
	return s.selected
}

// SyncedClass returns the remembered class, "" when unset
func (s *Synchronizer) SyncedClass() string {
	return s.synced
}
