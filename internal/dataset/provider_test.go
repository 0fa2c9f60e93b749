package dataset

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"examfinder/internal/domain"
)

const document = `{
  "source_url": "https://jw.example.edu/notice/123",
  "source_title": "Final exam schedule",
  "manifest": {"generated_at": "2025-01-02T08:00:00Z", "files_processed": ["a.xlsx"]},
  "exams": [
    {"id": "e1", "class_name": "B240402", "course_name": "Calculus", "start_time": "2025-01-08 14:00", "end_time": "16:00", "location": "A101"},
    {"class_name": "B240403", "course_name": "Physics", "start_time": "2025-01-09 09:00", "end_time": "11:00", "location": "B202"}
  ]
}`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNewProviderPicksSource(t *testing.T) {
	tests := []struct {
		source string
		want   interface{}
	}{
		{"exams.json", &jsonSource{}},
		{"/data/exams", &jsonSource{}},
		{"https://example.edu/exams.json", &httpSource{}},
		{"http://localhost:8080/data", &httpSource{}},
		{"exams.db", &sqliteSource{}},
		{"exams.SQLITE3", &sqliteSource{}},
		{"sqlite:///tmp/exams", &sqliteSource{}},
	}
	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			p, err := NewProvider(tt.source)
			require.NoError(t, err)
			assert.IsType(t, tt.want, p)
		})
	}

	p, err := NewProvider("sqlite:///tmp/exams")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/exams", p.Source())
}

func TestNewProviderRejectsUnknown(t *testing.T) {
	for _, source := range []string{"", "  ", "ftp://example.edu/exams.json"} {
		_, err := NewProvider(source)
		assert.ErrorIs(t, err, ErrUnsupportedSource, "source %q", source)
	}
}

func TestJSONDocument(t *testing.T) {
	p, err := NewProvider(writeFile(t, "exams.json", document))
	require.NoError(t, err)

	ds, err := p.Load(context.Background())
	require.NoError(t, err)

	assert.True(t, ds.Ready())
	assert.Equal(t, "Final exam schedule", ds.SourceTitle)
	assert.Equal(t, "https://jw.example.edu/notice/123", ds.SourceURL)
	assert.Equal(t, "2025-01-02T08:00:00Z", ds.Manifest.GeneratedAt)
	assert.Equal(t, 2, ds.Manifest.TotalRecords)
	require.Len(t, ds.Exams, 2)
	assert.Equal(t, "e1", ds.Exams[0].ID)
	assert.Equal(t, "B240403", ds.Exams[1].ClassName)
	assert.NotEmpty(t, ds.Exams[1].ID)
	assert.False(t, ds.LoadedAt.IsZero())
}

func TestJSONBareArray(t *testing.T) {
	p, err := NewProvider(writeFile(t, "exams.json", `[{"id":"x","class_name":"C1","course_name":"Art","start_time":"2025-01-08 14:00"}]`))
	require.NoError(t, err)

	ds, err := p.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, ds.Exams, 1)
	assert.Equal(t, "Art", ds.Exams[0].CourseName)
	assert.Empty(t, ds.SourceTitle)
}

func TestJSONErrors(t *testing.T) {
	cases := map[string]string{
		"malformed": `{"exams": [`,
		"scalar":    `"hello"`,
		"empty":     ``,
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			p, err := NewProvider(writeFile(t, "exams.json", content))
			require.NoError(t, err)
			_, err = p.Load(context.Background())
			assert.Error(t, err)
		})
	}

	p, err := NewProvider(filepath.Join(t.TempDir(), "missing.json"))
	require.NoError(t, err)
	_, err = p.Load(context.Background())
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestGeneratedIDsAreStable(t *testing.T) {
	path := writeFile(t, "exams.json", document)
	p, err := NewProvider(path)
	require.NoError(t, err)

	first, err := p.Load(context.Background())
	require.NoError(t, err)
	second, err := p.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first.Exams[1].ID, second.Exams[1].ID)
}

func TestGeneratedIDsAreDistinctForDuplicateRows(t *testing.T) {
	exams := []domain.ExamRecord{
		{ClassName: "C1", CourseName: "Art", StartTime: "2025-01-08 14:00"},
		{ClassName: "C1", CourseName: "Art", StartTime: "2025-01-08 14:00"},
	}
	assignIDs(exams)
	assert.NotEqual(t, exams[0].ID, exams[1].ID)
}

func TestHTTPSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/exams.json" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"e1","class_name":"C1","course_name":"Art","start_time":"2025-01-08 14:00"}]`))
	}))
	defer srv.Close()

	p, err := NewProvider(srv.URL + "/exams.json")
	require.NoError(t, err)
	ds, err := p.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, ds.Exams, 1)
	assert.Equal(t, srv.URL+"/exams.json", ds.SourceURL, "falls back to the fetch url")

	p, err = NewProvider(srv.URL + "/missing")
	require.NoError(t, err)
	_, err = p.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestHTTPSourceHonorsContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p, err := NewProvider(srv.URL)
	require.NoError(t, err)
	_, err = p.Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func createDatabase(t *testing.T, withMeta bool) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "exams.db")

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE exams (
		id TEXT, class_name TEXT, course_name TEXT,
		start_time TEXT, end_time TEXT, location TEXT,
		start_timestamp TEXT, end_timestamp TEXT, duration_minutes INTEGER,
		teacher TEXT, notes TEXT, campus TEXT, course_code TEXT, count INTEGER, raw_time TEXT
	)`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO exams (id, class_name, course_name, start_time, end_time, location, duration_minutes, teacher)
		VALUES ('e1', 'B240402', 'Calculus', '2025-01-08 14:00', '16:00', 'A101', 120, 'Li'),
		       (NULL, 'B240403', 'Physics', '2025-01-09 09:00', NULL, NULL, NULL, NULL)`)
	require.NoError(t, err)

	if withMeta {
		_, err = db.Exec(`CREATE TABLE meta (key TEXT PRIMARY KEY, value TEXT NOT NULL)`)
		require.NoError(t, err)
		_, err = db.Exec(`INSERT INTO meta (key, value) VALUES
			('source_title', 'Final exam schedule'),
			('source_url', 'https://jw.example.edu/notice/123'),
			('generated_at', '2025-01-02T08:00:00Z')`)
		require.NoError(t, err)
	}
	return path
}

func TestSQLiteSource(t *testing.T) {
	p, err := NewProvider(createDatabase(t, true))
	require.NoError(t, err)

	ds, err := p.Load(context.Background())
	require.NoError(t, err)

	require.Len(t, ds.Exams, 2)
	assert.Equal(t, "e1", ds.Exams[0].ID)
	assert.Equal(t, 120, ds.Exams[0].DurationMinutes)
	assert.Equal(t, "Li", ds.Exams[0].Teacher)
	assert.Equal(t, "B240403", ds.Exams[1].ClassName)
	assert.NotEmpty(t, ds.Exams[1].ID)
	assert.Empty(t, ds.Exams[1].Location)
	assert.Equal(t, "Final exam schedule", ds.SourceTitle)
	assert.Equal(t, "2025-01-02T08:00:00Z", ds.Manifest.GeneratedAt)
}

func TestSQLiteSourceWithoutMeta(t *testing.T) {
	p, err := NewProvider("sqlite://" + createDatabase(t, false))
	require.NoError(t, err)

	ds, err := p.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, ds.Exams, 2)
	assert.Empty(t, ds.SourceTitle)
}

func TestSQLiteSourceToleratesNullCells(t *testing.T) {
	path := createDatabase(t, false)
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO exams (id, class_name, course_name, start_time) VALUES ('e9', NULL, NULL, NULL)`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	p, err := NewProvider(path)
	require.NoError(t, err)
	ds, err := p.Load(context.Background())
	require.NoError(t, err)

	require.Len(t, ds.Exams, 3)
	assert.Equal(t, "e9", ds.Exams[2].ID)
	assert.Empty(t, ds.Exams[2].ClassName)
	assert.Empty(t, ds.Exams[2].CourseName)
	assert.Empty(t, ds.Exams[2].StartTime)
}

func TestSQLiteSourceMissingTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.db")
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE other (x INTEGER)`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	p, err := NewProvider(path)
	require.NoError(t, err)
	_, err = p.Load(context.Background())
	assert.Error(t, err)
}
