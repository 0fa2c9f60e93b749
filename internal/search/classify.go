package search

import (
	"sort"
	"strings"
	"unicode/utf8"

	"examfinder/internal/domain"
)

// Classify turns a query and the full exam list into a display mode.
// It is pure: the same inputs always produce an equal result.
func Classify(q Query, exams []domain.ExamRecord) Result {
	if q == nil {
		return empty(ModeEmpty)
	}

	text := strings.TrimSpace(q.Text())
	if utf8.RuneCountInString(text) < MinQueryLength {
		return empty(ModeEmpty)
	}

	if locked, ok := q.(Locked); ok {
		return classifyLocked(locked.Class, exams)
	}

	term := strings.ToUpper(text)
	var matched []domain.ExamRecord
	seen := make(map[string]bool)
	var classes []string

	for _, exam := range exams {
		if exam.ClassName == "" {
			continue
		}
		if !strings.Contains(strings.ToUpper(exam.ClassName), term) {
			continue
		}
		matched = append(matched, exam)
		if !seen[exam.ClassName] {
			seen[exam.ClassName] = true
			classes = append(classes, exam.ClassName)
		}
	}

	switch len(classes) {
	case 0:
		return empty(ModeNotFound)
	case 1:
		return Result{Mode: ModeDetail, Classes: classes, Exams: matched}
	default:
		sort.Strings(classes)
		return Result{Mode: ModeList, Classes: classes, Exams: []domain.ExamRecord{}}
	}
}

// classifyLocked bypasses substring matching. A lock on a class the dataset
// no longer contains resolves to NOT_FOUND.
func classifyLocked(class string, exams []domain.ExamRecord) Result {
	matched := []domain.ExamRecord{}
	for _, exam := range exams {
		if exam.ClassName == class {
			matched = append(matched, exam)
		}
	}
	if len(matched) == 0 {
		return empty(ModeNotFound)
	}
	return Result{Mode: ModeDetail, Classes: []string{class}, Exams: matched}
}

func empty(mode Mode) Result {
	return Result{Mode: mode, Classes: []string{}, Exams: []domain.ExamRecord{}}
}
