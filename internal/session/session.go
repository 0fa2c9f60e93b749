// Package session owns the search state of one user: the dataset, the query,
// the classified result, the selection and the reminder offsets. Every input
// is classified first and synchronized second, inside the same call.
package session

import (
	"github.com/rs/zerolog"

	"examfinder/internal/domain"
	"examfinder/internal/eventbus"
	"examfinder/internal/location"
	"examfinder/internal/reminder"
	"examfinder/internal/search"
	"examfinder/internal/selection"
)

// Session is not safe for concurrent use; the UI update loop owns it.
type Session struct {
	history   location.History
	sync      *Synchronizer
	dataset   domain.Dataset
	query     search.Query
	result    search.Result
	reminders *reminder.Config
	bus       eventbus.EventBus
	logger    zerolog.Logger
}

// Option configures a Session
type Option func(*Session)

// WithBus publishes sync events on bus
func WithBus(bus eventbus.EventBus) Option {
	return func(s *Session) { s.bus = bus }
}

// WithLogger sets the session logger
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Session) { s.logger = logger }
}

// New creates a session positioned at the history's current location. A
// class parameter in the location seeds both the text and the lock.
func New(history location.History, reminders []int, opts ...Option) *Session {
	s := &Session{
		history:   history,
		sync:      NewSynchronizer(history),
		dataset:   domain.LoadingDataset(),
		query:     search.FreeText{},
		result:    search.Classify(nil, nil),
		reminders: reminder.New(reminders...),
		logger:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if class := location.Class(history.Location()); class != "" {
		s.query = search.Locked{Class: class}
		s.logger.Debug().Str("class", class).Msg("seeded query from location")
	}
	return s
}

// SetDataset installs a dataset. Only a ready dataset is searched; while
// loading or after a failure the result stays EMPTY and the location is
// left alone.
func (s *Session) SetDataset(ds domain.Dataset) {
	s.dataset = ds
	if !ds.Ready() {
		s.result = search.Classify(nil, nil)
		return
	}
	s.logger.Info().Int("exams", len(ds.Exams)).Msg("dataset installed")
	s.refresh()
}

// Input handles a keystroke in the search field
func (s *Session) Input(text string) {
	if locked, ok := s.query.(search.Locked); ok && locked.Class == text {
		s.refresh()
		return
	}
	s.query = search.FreeText{Value: text}
	s.refresh()
}

// ChooseClass locks the query to class, as when the user picks it from a list
func (s *Session) ChooseClass(class string) {
	s.query = search.Locked{Class: class}
	s.refresh()
}

// Toggle flips the selection of one displayed exam. Ids that are not part
// of the current DETAIL result are ignored.
func (s *Session) Toggle(id string) bool {
	if !s.dataset.Ready() || s.result.Mode != search.ModeDetail || !s.result.HasExam(id) {
		return false
	}
	prev := s.sync.Selected()
	s.sync.Toggle(id)
	s.publishSelection(prev, s.sync.Selected(), false)
	return true
}

// SetReminders replaces the reminder offsets
func (s *Session) SetReminders(offsets []int) {
	s.reminders.Set(offsets)
	s.publish(eventbus.RemindersChangedEvent{Offsets: s.reminders.Offsets()})
}

// Text is what the search field shows
func (s *Session) Text() string {
	return s.query.Text()
}

// LockedClass returns the manual lock, if any
func (s *Session) LockedClass() (string, bool) {
	if locked, ok := s.query.(search.Locked); ok {
		return locked.Class, true
	}
	return "", false
}

// Result returns the current classification
func (s *Session) Result() search.Result {
	return s.result
}

// Selected returns the selected exam ids
func (s *Session) Selected() selection.Set {
	return s.sync.Selected()
}

// SelectedExams returns the displayed exams that are selected, in display order
func (s *Session) SelectedExams() []domain.ExamRecord {
	selected := s.sync.Selected()
	var out []domain.ExamRecord
	for _, e := range s.result.Exams {
		if selected.Has(e.ID) {
			out = append(out, e)
		}
	}
	return out
}

// Reminders returns the reminder offsets
func (s *Session) Reminders() []int {
	return s.reminders.Offsets()
}

// Dataset returns the installed dataset
func (s *Session) Dataset() domain.Dataset {
	return s.dataset
}

// Link returns the current location as a string
func (s *Session) Link() string {
	u := s.history.Location()
	return u.String()
}

// refresh classifies, clears a stale lock, then synchronizes
func (s *Session) refresh() {
	if !s.dataset.Ready() {
		return
	}

	s.result = search.Classify(s.query, s.dataset.Exams)
	if locked, ok := s.query.(search.Locked); ok && s.result.Mode == search.ModeNotFound {
		s.logger.Info().Str("class", locked.Class).Msg("locked class no longer in dataset, clearing lock")
		s.query = search.FreeText{Value: locked.Class}
	}

	prev := s.sync.Selected()
	out := s.sync.Sync(s.result)

	if out.ClassChanged {
		s.publish(eventbus.ClassSyncedEvent{Class: s.sync.SyncedClass()})
	}
	if out.SelectionReset {
		s.publishSelection(prev, s.sync.Selected(), true)
	}
	if out.LocationReplaced {
		s.publish(eventbus.LocationReplacedEvent{URL: s.Link()})
	}
}

func (s *Session) publishSelection(prev, next selection.Set, reset bool) {
	added, removed := selection.Diff(prev, next)
	s.publish(eventbus.SelectionChangedEvent{
		Added:   added,
		Removed: removed,
		Total:   next.Len(),
		Reset:   reset,
	})
}

func (s *Session) publish(event eventbus.DomainEvent) {
	if s.bus != nil {
		s.bus.Publish(event)
	}
}
