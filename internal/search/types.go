package search

import "examfinder/internal/domain"

// MinQueryLength is the shortest trimmed input that triggers a search
const MinQueryLength = 2

// Mode is the display mode a classification resolves to
type Mode string

const (
	ModeEmpty    Mode = "EMPTY"
	ModeNotFound Mode = "NOT_FOUND"
	ModeList     Mode = "LIST"
	ModeDetail   Mode = "DETAIL"
)

// Query is either free text typed by the user or a class the user picked
// explicitly. A locked query pins the result to exactly that class.
type Query interface {
	// Text is what the input field shows
	Text() string
	isQuery()
}

// FreeText is a query matched by substring against class names
type FreeText struct {
	Value string
}

func (q FreeText) Text() string { return q.Value }
func (FreeText) isQuery()        {}

// Locked is a manual class lock
type Locked struct {
	Class string
}

func (q Locked) Text() string { return q.Class }
func (Locked) isQuery()        {}

// Result is a classified search. Slices are never nil.
//
// LIST carries classes but no exams, DETAIL carries exactly one class,
// EMPTY and NOT_FOUND carry neither.
type Result struct {
	Mode    Mode                `json:"mode"`
	Classes []string            `json:"classes"`
	Exams   []domain.ExamRecord `json:"exams"`
}

// Class returns the class shown in DETAIL mode, or "" in any other mode
func (r Result) Class() string {
	if r.Mode == ModeDetail && len(r.Classes) == 1 {
		return r.Classes[0]
	}
	return ""
}

// ExamIDs returns the ids of the result's exams in order
func (r Result) ExamIDs() []string {
	ids := make([]string, 0, len(r.Exams))
	for _, e := range r.Exams {
		ids = append(ids, e.ID)
	}
	return ids
}

// HasExam reports whether id belongs to one of the result's exams
func (r Result) HasExam(id string) bool {
	for _, e := range r.Exams {
		if e.ID == id {
			return true
		}
	}
	return false
}
