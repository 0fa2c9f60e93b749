package domain

import "time"

// ExamRecord is one scheduled exam belonging to exactly one class.
// Records are produced by the dataset provider and never mutated afterwards.
type ExamRecord struct {
	ID              string `json:"id"`
	ClassName       string `json:"class_name"`
	CourseName      string `json:"course_name"`
	StartTime       string `json:"start_time"` // e.g. "2025-01-08 14:00"
	EndTime         string `json:"end_time"`
	Location        string `json:"location"`
	StartTimestamp  string `json:"start_timestamp,omitempty"` // ISO, used for sorting
	EndTimestamp    string `json:"end_timestamp,omitempty"`
	DurationMinutes int    `json:"duration_minutes,omitempty"`
	Teacher         string `json:"teacher,omitempty"`
	Notes           string `json:"notes,omitempty"`
	Campus          string `json:"campus,omitempty"`
	CourseCode      string `json:"course_code,omitempty"`
	Count           int    `json:"count,omitempty"`
	RawTime         string `json:"raw_time,omitempty"`
}

// Manifest describes how the dataset was generated
type Manifest struct {
	GeneratedAt    string   `json:"generated_at"`
	TotalRecords   int      `json:"total_records,omitempty"`
	FilesProcessed []string `json:"files_processed,omitempty"`
}

// DatasetStatus is the provider's loading state
type DatasetStatus string

const (
	StatusLoading DatasetStatus = "loading"
	StatusError   DatasetStatus = "error"
	StatusReady   DatasetStatus = "ready"
)

// Dataset is what the provider hands to the rest of the application.
// Exams keep the provider's insertion order.
type Dataset struct {
	Status      DatasetStatus
	Exams       []ExamRecord
	Err         string // opaque message, shown verbatim
	SourceURL   string
	SourceTitle string
	Manifest    Manifest
	LoadedAt    time.Time
}

// Ready reports whether search may run against the dataset
func (d Dataset) Ready() bool {
	return d.Status == StatusReady
}

// LoadingDataset returns the placeholder used before the first load completes
func LoadingDataset() Dataset {
	return Dataset{Status: StatusLoading}
}

// FailedDataset returns a dataset carrying only an error message
func FailedDataset(err error) Dataset {
	return Dataset{Status: StatusError, Err: err.Error()}
}
