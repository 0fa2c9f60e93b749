package dataset

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"examfinder/internal/domain"
)

const examsQuery = `
	SELECT id, class_name, course_name, start_time, end_time, location,
	       start_timestamp, end_timestamp, duration_minutes,
	       teacher, notes, campus, course_code, count, raw_time
	FROM exams
	ORDER BY rowid ASC
`

// sqliteSource reads an exams table from a database opened read-only
type sqliteSource struct {
	path string
}

func newSQLiteSource(path string) *sqliteSource {
	return &sqliteSource{path: path}
}

func (s *sqliteSource) Source() string { return s.path }

func (s *sqliteSource) Load(ctx context.Context) (domain.Dataset, error) {
	dsn := fmt.Sprintf("file:%s?mode=ro", s.path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return domain.Dataset{}, fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return domain.Dataset{}, fmt.Errorf("failed to open database: %w", err)
	}

	exams, err := queryExams(ctx, db)
	if err != nil {
		return domain.Dataset{}, err
	}

	meta, err := queryMeta(ctx, db)
	if err != nil {
		return domain.Dataset{}, err
	}

	manifest := domain.Manifest{GeneratedAt: meta["generated_at"]}
	return ready(exams, meta["source_url"], meta["source_title"], manifest), nil
}

func queryExams(ctx context.Context, db *sql.DB) ([]domain.ExamRecord, error) {
	rows, err := db.QueryContext(ctx, examsQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query exams: %w", err)
	}
	defer rows.Close()

	exams := []domain.ExamRecord{}
	for rows.Next() {
		var (
			e                                         domain.ExamRecord
			id, class, course, startTime              sql.NullString
			startTS, endTS, teacher, notes            sql.NullString
			campus, courseCode, rawTime, endTime, loc sql.NullString
			duration, count                           sql.NullInt64
		)
		if err := rows.Scan(&id, &class, &course, &startTime, &endTime, &loc,
			&startTS, &endTS, &duration, &teacher, &notes, &campus, &courseCode, &count, &rawTime); err != nil {
			return nil, fmt.Errorf("failed to scan exam: %w", err)
		}
		e.ID = id.String
		e.ClassName = class.String
		e.CourseName = course.String
		e.StartTime = startTime.String
		e.EndTime = endTime.String
		e.Location = loc.String
		e.StartTimestamp = startTS.String
		e.EndTimestamp = endTS.String
		e.DurationMinutes = int(duration.Int64)
		e.Teacher = teacher.String
		e.Notes = notes.String
		e.Campus = campus.String
		e.CourseCode = courseCode.String
		e.Count = int(count.Int64)
		e.RawTime = rawTime.String
		exams = append(exams, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read exams: %w", err)
	}
	return exams, nil
}

// queryMeta reads the optional meta table; a missing table yields no values
func queryMeta(ctx context.Context, db *sql.DB) (map[string]string, error) {
	meta := map[string]string{}

	var name string
	err := db.QueryRowContext(ctx,
		`SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'meta'`).Scan(&name)
	if err == sql.ErrNoRows {
		return meta, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to inspect schema: %w", err)
	}

	rows, err := db.QueryContext(ctx, `SELECT key, value FROM meta`)
	if err != nil {
		return nil, fmt.Errorf("failed to query meta: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan meta: %w", err)
		}
		meta[key] = value
	}
	return meta, rows.Err()
}
