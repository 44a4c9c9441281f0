package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/coursepilot/internal/db"
	"github.com/alexanderramin/coursepilot/internal/domain"
)

// SQLiteCourseRepo implements CourseRepo using a SQLite database.
type SQLiteCourseRepo struct {
	db db.DBTX
}

// NewSQLiteCourseRepo creates a new SQLiteCourseRepo.
func NewSQLiteCourseRepo(conn db.DBTX) *SQLiteCourseRepo {
	return &SQLiteCourseRepo{db: conn}
}

// Create inserts the course row and one row per video. Run it inside a
// UnitOfWork to make the insert atomic.
func (r *SQLiteCourseRepo) Create(ctx context.Context, c *domain.Course) error {
	structure, err := encodeStructure(c.Structure)
	if err != nil {
		return err
	}
	query := `INSERT INTO courses (id, name, source_path, structure_json, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		c.ID,
		c.Name,
		c.SourcePath,
		nullableString(structure),
		formatTime(c.CreatedAt),
		formatTime(c.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting course: %w", err)
	}

	for i, title := range c.RawTitles {
		var ms int64
		if i < len(c.Durations) {
			ms = c.Durations[i].Milliseconds()
		}
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO course_videos (course_id, idx, title, duration_ms) VALUES (?, ?, ?, ?)`,
			c.ID, i, title, ms)
		if err != nil {
			return fmt.Errorf("inserting course video %d: %w", i, err)
		}
	}
	return nil
}

func (r *SQLiteCourseRepo) GetByID(ctx context.Context, id string) (*domain.Course, error) {
	query := `SELECT id, name, source_path, structure_json, created_at, updated_at
		FROM courses WHERE id = ?`
	var c domain.Course
	var structure sql.NullString
	var createdAtStr, updatedAtStr string

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.Name, &c.SourcePath, &structure, &createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("course %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning course: %w", err)
	}

	if c.CreatedAt, err = parseTime("created_at", createdAtStr); err != nil {
		return nil, err
	}
	if c.UpdatedAt, err = parseTime("updated_at", updatedAtStr); err != nil {
		return nil, err
	}
	if structure.Valid {
		if c.Structure, err = decodeStructure(structure.String); err != nil {
			return nil, err
		}
	}

	if err := r.loadVideos(ctx, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *SQLiteCourseRepo) loadVideos(ctx context.Context, c *domain.Course) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT title, duration_ms FROM course_videos WHERE course_id = ? ORDER BY idx`, c.ID)
	if err != nil {
		return fmt.Errorf("listing course videos: %w", err)
	}
	defer rows.Close()

	var durations []time.Duration
	known := false
	for rows.Next() {
		var title string
		var ms int64
		if err := rows.Scan(&title, &ms); err != nil {
			return fmt.Errorf("scanning course video: %w", err)
		}
		c.RawTitles = append(c.RawTitles, title)
		durations = append(durations, time.Duration(ms)*time.Millisecond)
		if ms > 0 {
			known = true
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating course videos: %w", err)
	}
	if known {
		c.Durations = durations
	}
	return nil
}

func (r *SQLiteCourseRepo) List(ctx context.Context) ([]CourseSummary, error) {
	query := `SELECT c.id, c.name, c.structure_json IS NOT NULL, c.created_at,
		(SELECT COUNT(*) FROM course_videos v WHERE v.course_id = c.id),
		(SELECT COUNT(*) FROM plans p WHERE p.course_id = c.id)
		FROM courses c ORDER BY c.created_at, c.name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing courses: %w", err)
	}
	defer rows.Close()

	var out []CourseSummary
	for rows.Next() {
		var s CourseSummary
		var structured int
		var createdAtStr string
		if err := rows.Scan(&s.ID, &s.Name, &structured, &createdAtStr, &s.VideoCount, &s.PlanCount); err != nil {
			return nil, fmt.Errorf("scanning course row: %w", err)
		}
		s.Structured = intToBool(structured)
		if s.CreatedAt, err = parseTime("created_at", createdAtStr); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating courses: %w", err)
	}
	return out, nil
}

func (r *SQLiteCourseRepo) UpdateStructure(ctx context.Context, id string, cs *domain.CourseStructure, updatedAt time.Time) error {
	structure, err := encodeStructure(cs)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE courses SET structure_json = ?, updated_at = ? WHERE id = ?`,
		nullableString(structure), formatTime(updatedAt), id)
	if err != nil {
		return fmt.Errorf("updating course structure: %w", err)
	}
	return requireAffected(res, "course", id)
}

func (r *SQLiteCourseRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM courses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting course: %w", err)
	}
	return requireAffected(res, "course", id)
}

func requireAffected(res sql.Result, entity, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", entity, id, ErrNotFound)
	}
	return nil
}
