package search

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"examfinder/internal/domain"
)

func exam(id, class string) domain.ExamRecord {
	return domain.ExamRecord{
		ID:         id,
		ClassName:  class,
		CourseName: "Course " + id,
		StartTime:  "2025-01-08 14:00",
		EndTime:    "2025-01-08 16:00",
		Location:   "Room 201",
	}
}

func scenarioDataset() []domain.ExamRecord {
	return []domain.ExamRecord{
		exam("e1", "B240402"),
		exam("e2", "B240403"),
		exam("e3", "B240402"),
	}
}

func TestShortInputIsEmpty(t *testing.T) {
	data := scenarioDataset()
	queries := []Query{
		FreeText{Value: ""},
		FreeText{Value: "B"},
		FreeText{Value: "  B  "},
		FreeText{Value: "   "},
		Locked{Class: "B"},
		nil,
	}
	for _, q := range queries {
		r := Classify(q, data)
		assert.Equal(t, ModeEmpty, r.Mode, "query %#v", q)
		assert.Empty(t, r.Classes)
		assert.Empty(t, r.Exams)
		assert.NotNil(t, r.Classes)
		assert.NotNil(t, r.Exams)
	}
}

func TestScenarioListThenDetail(t *testing.T) {
	data := scenarioDataset()

	list := Classify(FreeText{Value: "B2404"}, data)
	assert.Equal(t, ModeList, list.Mode)
	assert.Equal(t, []string{"B240402", "B240403"}, list.Classes)
	assert.Empty(t, list.Exams)

	detail := Classify(FreeText{Value: "B240402"}, data)
	require.Equal(t, ModeDetail, detail.Mode)
	assert.Equal(t, []string{"B240402"}, detail.Classes)
	assert.Equal(t, []string{"e1", "e3"}, detail.ExamIDs())
	assert.Equal(t, "B240402", detail.Class())

	locked := Classify(Locked{Class: "B240403"}, data)
	require.Equal(t, ModeDetail, locked.Mode)
	assert.Equal(t, []string{"B240403"}, locked.Classes)
	assert.Equal(t, []string{"e2"}, locked.ExamIDs())
}

func TestMatchingIsCaseInsensitiveSubstring(t *testing.T) {
	data := []domain.ExamRecord{exam("e1", "cs2024a"), exam("e2", "MATH-1")}

	r := Classify(FreeText{Value: " 2024 "}, data)
	require.Equal(t, ModeDetail, r.Mode)
	assert.Equal(t, []string{"cs2024a"}, r.Classes)

	r = Classify(FreeText{Value: "th-"}, data)
	require.Equal(t, ModeDetail, r.Mode)
	assert.Equal(t, []string{"MATH-1"}, r.Classes)
}

func TestNotFound(t *testing.T) {
	r := Classify(FreeText{Value: "ZZ"}, scenarioDataset())
	assert.Equal(t, ModeNotFound, r.Mode)
	assert.Empty(t, r.Classes)
	assert.Empty(t, r.Exams)

	r = Classify(FreeText{Value: "B2"}, nil)
	assert.Equal(t, ModeNotFound, r.Mode)
}

func TestEmptyClassNamesNeverMatch(t *testing.T) {
	data := []domain.ExamRecord{exam("e1", ""), exam("e2", "AB12")}
	r := Classify(FreeText{Value: "AB"}, data)
	require.Equal(t, ModeDetail, r.Mode)
	assert.Equal(t, []string{"e2"}, r.ExamIDs())
}

func TestLockOverridesAmbiguousText(t *testing.T) {
	data := []domain.ExamRecord{exam("e1", "B24"), exam("e2", "B240"), exam("e3", "B24")}

	// Free text "B24" matches both B24 and B240
	assert.Equal(t, ModeList, Classify(FreeText{Value: "B24"}, data).Mode)

	r := Classify(Locked{Class: "B24"}, data)
	require.Equal(t, ModeDetail, r.Mode)
	assert.Equal(t, []string{"B24"}, r.Classes)
	assert.Equal(t, []string{"e1", "e3"}, r.ExamIDs())
}

func TestLockIsExactMatch(t *testing.T) {
	data := []domain.ExamRecord{exam("e1", "b240402"), exam("e2", "B240402")}
	r := Classify(Locked{Class: "B240402"}, data)
	require.Equal(t, ModeDetail, r.Mode)
	assert.Equal(t, []string{"e2"}, r.ExamIDs())
}

func TestStaleLockIsNotFound(t *testing.T) {
	r := Classify(Locked{Class: "B999999"}, scenarioDataset())
	assert.Equal(t, ModeNotFound, r.Mode)
	assert.Empty(t, r.Classes)
	assert.Empty(t, r.Exams)
}

func TestClassifyIsIdempotent(t *testing.T) {
	data := scenarioDataset()
	for _, q := range []Query{FreeText{Value: "B2404"}, FreeText{Value: "B240402"}, Locked{Class: "B240403"}, FreeText{Value: "x"}} {
		assert.Equal(t, Classify(q, data), Classify(q, data))
	}
}

func TestClassifyDoesNotMutateDataset(t *testing.T) {
	data := scenarioDataset()
	before := make([]domain.ExamRecord, len(data))
	copy(before, data)

	_ = Classify(FreeText{Value: "B24"}, data)
	_ = Classify(Locked{Class: "B240402"}, data)

	assert.Equal(t, before, data)
}

// randomDataset builds a dataset over a small alphabet so that substring
// queries hit every mode.
func randomDataset(rng *rand.Rand, n int) []domain.ExamRecord {
	classes := []string{"A1", "A12", "B1", "B12", "AB1", "ba2", ""}
	out := make([]domain.ExamRecord, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, exam(fmt.Sprintf("e%d", i), classes[rng.Intn(len(classes))]))
	}
	return out
}

func TestClassifyProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	terms := []string{"A1", "a1", "B1", "12", "AB", "BA", "ZZ", "1", " b12 "}

	for i := 0; i < 200; i++ {
		data := randomDataset(rng, rng.Intn(12))
		term := terms[rng.Intn(len(terms))]

		r := Classify(FreeText{Value: term}, data)
		if len(strings.TrimSpace(term)) < MinQueryLength {
			assert.Equal(t, ModeEmpty, r.Mode)
			continue
		}

		assert.True(t, sort.StringsAreSorted(r.Classes), "classes sorted: %v", r.Classes)
		seen := map[string]bool{}
		for _, c := range r.Classes {
			assert.False(t, seen[c], "duplicate class %q", c)
			seen[c] = true
		}

		switch len(r.Classes) {
		case 0:
			assert.Equal(t, ModeNotFound, r.Mode)
			assert.Empty(t, r.Exams)
		case 1:
			assert.Equal(t, ModeDetail, r.Mode)
			var want []string
			for _, e := range data {
				if e.ClassName == r.Classes[0] {
					want = append(want, e.ID)
				}
			}
			assert.Equal(t, want, r.ExamIDs())
		default:
			assert.Equal(t, ModeList, r.Mode)
			assert.Empty(t, r.Exams)
		}
	}
}

func TestLockedProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 100; i++ {
		data := randomDataset(rng, 1+rng.Intn(12))
		class := data[rng.Intn(len(data))].ClassName
		if len(class) < MinQueryLength {
			continue
		}

		r := Classify(Locked{Class: class}, data)
		require.Equal(t, ModeDetail, r.Mode)
		assert.Equal(t, []string{class}, r.Classes)

		var want []domain.ExamRecord
		for _, e := range data {
			if e.ClassName == class {
				want = append(want, e)
			}
		}
		assert.Equal(t, want, r.Exams)
	}
}
