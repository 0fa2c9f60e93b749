// Package dataset loads the exam records the search runs against.
package dataset

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"examfinder/internal/domain"
)

// ErrUnsupportedSource is returned for sources no provider understands
var ErrUnsupportedSource = errors.New("unsupported data source")

// Provider loads a complete dataset. Implementations never return partial data.
type Provider interface {
	Load(ctx context.Context) (domain.Dataset, error)
	Source() string
}

// NewProvider picks a provider for source: an http(s) URL, a SQLite
// database (sqlite:// prefix or .db/.sqlite/.sqlite3 extension), or a
// JSON file path.
func NewProvider(source string) (Provider, error) {
	source = strings.TrimSpace(source)
	lower := strings.ToLower(source)

	switch {
	case source == "":
		return nil, fmt.Errorf("%w: empty source", ErrUnsupportedSource)
	case strings.HasPrefix(lower, "http://"), strings.HasPrefix(lower, "https://"):
		return newHTTPSource(source), nil
	case strings.HasPrefix(lower, "sqlite://"):
		return newSQLiteSource(source[len("sqlite://"):]), nil
	case strings.HasSuffix(lower, ".db"), strings.HasSuffix(lower, ".sqlite"), strings.HasSuffix(lower, ".sqlite3"):
		return newSQLiteSource(source), nil
	case strings.HasSuffix(lower, ".json"):
		return newJSONSource(source), nil
	case strings.Contains(lower, "://"):
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedSource, source)
	default:
		return newJSONSource(source), nil
	}
}

// document is the JSON wire format. A bare array of records is accepted too.
type document struct {
	SourceURL   string              `json:"source_url"`
	SourceTitle string              `json:"source_title"`
	Manifest    domain.Manifest     `json:"manifest"`
	Exams       []domain.ExamRecord `json:"exams"`
}

// decode reads either a document or a bare record array
func decode(r io.Reader) (domain.Dataset, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return domain.Dataset{}, fmt.Errorf("failed to read dataset: %w", err)
	}

	trimmed := strings.TrimSpace(string(data))
	var doc document
	switch {
	case strings.HasPrefix(trimmed, "["):
		if err := json.Unmarshal(data, &doc.Exams); err != nil {
			return domain.Dataset{}, fmt.Errorf("failed to parse dataset: %w", err)
		}
	case strings.HasPrefix(trimmed, "{"):
		if err := json.Unmarshal(data, &doc); err != nil {
			return domain.Dataset{}, fmt.Errorf("failed to parse dataset: %w", err)
		}
	default:
		return domain.Dataset{}, errors.New("failed to parse dataset: expected a JSON object or array")
	}

	return ready(doc.Exams, doc.SourceURL, doc.SourceTitle, doc.Manifest), nil
}

func ready(exams []domain.ExamRecord, sourceURL, sourceTitle string, manifest domain.Manifest) domain.Dataset {
	if exams == nil {
		exams = []domain.ExamRecord{}
	}
	assignIDs(exams)
	if manifest.TotalRecords == 0 {
		manifest.TotalRecords = len(exams)
	}
	return domain.Dataset{
		Status:      domain.StatusReady,
		Exams:       exams,
		SourceURL:   sourceURL,
		SourceTitle: sourceTitle,
		Manifest:    manifest,
		LoadedAt:    time.Now(),
	}
}

// assignIDs gives id-less records a deterministic id derived from their
// position and content, so reloads of the same file keep selections valid.
func assignIDs(exams []domain.ExamRecord) {
	for i := range exams {
		if exams[i].ID != "" {
			continue
		}
		name := fmt.Sprintf("%d|%s|%s|%s|%s", i, exams[i].ClassName, exams[i].CourseName, exams[i].StartTime, exams[i].Location)
		exams[i].ID = uuid.NewSHA1(uuid.NameSpaceOID, []byte(name)).String()
	}
}
