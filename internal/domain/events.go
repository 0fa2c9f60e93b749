package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventDatasetLoading   EventType = "DatasetLoading"
	EventDatasetLoaded    EventType = "DatasetLoaded"
	EventDatasetFailed    EventType = "DatasetFailed"
	EventReloadRequested  EventType = "ReloadRequested"
	EventClassSynced      EventType = "ClassSynced"
	EventSelectionChanged EventType = "SelectionChanged"
	EventLocationReplaced EventType = "LocationReplaced"
	EventRemindersChanged EventType = "RemindersChanged"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// DatasetLoadingEvent is emitted when the provider starts a (re)load
type DatasetLoadingEvent struct {
	Source string
}

func (e DatasetLoadingEvent) Type() EventType { return EventDatasetLoading }

// DatasetLoadedEvent carries a freshly loaded dataset
type DatasetLoadedEvent struct {
	Dataset Dataset
}

func (e DatasetLoadedEvent) Type() EventType { return EventDatasetLoaded }

// DatasetFailedEvent is emitted when a load fails; no partial data is delivered
type DatasetFailedEvent struct {
	Source string
	Err    error
}

func (e DatasetFailedEvent) Type() EventType { return EventDatasetFailed }

// ReloadRequestedEvent asks the loader to fetch the dataset again
type ReloadRequestedEvent struct{}

func (e ReloadRequestedEvent) Type() EventType { return EventReloadRequested }

// ClassSyncedEvent is emitted when the synchronized class changes.
// Class is empty when the synchronizer forgot its class.
type ClassSyncedEvent struct {
	Class string
}

func (e ClassSyncedEvent) Type() EventType { return EventClassSynced }

// SelectionChangedEvent is emitted when the selected exam ids change
type SelectionChangedEvent struct {
	Added   []string
	Removed []string
	Total   int
	Reset   bool // true when the synchronizer replaced the whole set
}

func (e SelectionChangedEvent) Type() EventType { return EventSelectionChanged }

// LocationReplacedEvent is emitted after every replace-state write
type LocationReplacedEvent struct {
	URL string
}

func (e LocationReplacedEvent) Type() EventType { return EventLocationReplaced }

// RemindersChangedEvent is emitted when the user edits reminder offsets
type RemindersChangedEvent struct {
	Offsets []int
}

func (e RemindersChangedEvent) Type() EventType { return EventRemindersChanged }
