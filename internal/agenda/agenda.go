// Package agenda turns the selected exams of a class into a dated list with
// reminder times, rendered for the pager and the lookup command.
package agenda

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"examfinder/internal/domain"
	"examfinder/internal/reminder"
)

// Entry is one selected exam on the agenda
type Entry struct {
	Exam   domain.ExamRecord
	Start  time.Time // zero when the start time could not be parsed
	Alerts []reminder.Alert
}

// Scheduled reports whether the entry has a usable start time
func (e Entry) Scheduled() bool {
	return !e.Start.IsZero()
}

// Build orders exams by start time. Exams without a parseable start time
// keep their relative order and go last.
func Build(exams []domain.ExamRecord, offsets []int, loc *time.Location) []Entry {
	entries := make([]Entry, 0, len(exams))
	for _, exam := range exams {
		entry := Entry{Exam: exam}
		if start, err := reminder.StartOf(exam, loc); err == nil {
			entry.Start = start
			entry.Alerts, _ = reminder.Times(exam, offsets, loc)
		}
		entries = append(entries, entry)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Scheduled() != b.Scheduled() {
			return a.Scheduled()
		}
		return a.Start.Before(b.Start)
	})
	return entries
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	dimStyle   = lipgloss.NewStyle().Faint(true)
)

// Render formats the agenda of class as plain lines
func Render(class string, entries []Entry) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Exam agenda: %s", class)))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("=", lipgloss.Width("Exam agenda: "+class)))
	b.WriteString("\n\n")

	if len(entries) == 0 {
		b.WriteString("No exams selected.\n")
		return b.String()
	}

	for i, e := range entries {
		b.WriteString(fmt.Sprintf("%d. %s\n", i+1, titleStyle.Render(e.Exam.CourseName)))
		b.WriteString(fmt.Sprintf("   When:  %s\n", when(e)))
		if e.Exam.Location != "" {
			b.WriteString(fmt.Sprintf("   Where: %s\n", where(e.Exam)))
		}
		if e.Exam.Teacher != "" {
			b.WriteString(fmt.Sprintf("   Proctor: %s\n", e.Exam.Teacher))
		}
		if e.Exam.Notes != "" {
			b.WriteString(fmt.Sprintf("   Notes: %s\n", e.Exam.Notes))
		}
		for _, a := range e.Alerts {
			b.WriteString(dimStyle.Render(fmt.Sprintf("   Remind %s before: %s", reminder.Label(a.Offset), a.At.Format("Mon 2006-01-02 15:04"))))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}

func when(e Entry) string {
	if !e.Scheduled() {
		if e.Exam.RawTime != "" {
			return e.Exam.RawTime
		}
		return e.Exam.StartTime
	}
	s := e.Start.Format("Mon 2006-01-02 15:04")
	if e.Exam.EndTime != "" {
		s += " - " + e.Exam.EndTime
	}
	return s
}

func where(e domain.ExamRecord) string {
	if e.Campus == "" {
		return e.Location
	}
	return e.Location + " (" + e.Campus + ")"
}
