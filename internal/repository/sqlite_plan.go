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

// SQLitePlanRepo implements PlanRepo using a SQLite database.
type SQLitePlanRepo struct {
	db db.DBTX
}

// NewSQLitePlanRepo creates a new SQLitePlanRepo.
func NewSQLitePlanRepo(conn db.DBTX) *SQLitePlanRepo {
	return &SQLitePlanRepo{db: conn}
}

// Item dates keep their UTC offset so calendar days survive a round trip.
const itemDateLayout = time.RFC3339

func (r *SQLitePlanRepo) Create(ctx context.Context, p *domain.Plan) error {
	settings, err := encodeSettings(p.Settings)
	if err != nil {
		return err
	}
	applied, err := marshalList(p.Applied)
	if err != nil {
		return fmt.Errorf("encoding applied passes: %w", err)
	}
	query := `INSERT INTO plans (id, course_id, strategy, settings_json, applied_json, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		p.ID,
		p.CourseID,
		string(p.Strategy),
		settings,
		applied,
		formatTime(p.CreatedAt),
		formatTime(p.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting plan: %w", err)
	}
	return r.insertItems(ctx, p.ID, p.Items)
}

func (r *SQLitePlanRepo) insertItems(ctx context.Context, planID string, items []domain.PlanItem) error {
	query := `INSERT INTO plan_items (plan_id, position, date, module_title, section_title,
		video_indices_json, completed, total_ms, estimated_ms, warnings_json, kind, time_of_day)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	for i, it := range items {
		indices, err := marshalList(it.VideoIndices)
		if err != nil {
			return fmt.Errorf("encoding video indices: %w", err)
		}
		warnings, err := marshalList(it.OverflowWarnings)
		if err != nil {
			return fmt.Errorf("encoding warnings: %w", err)
		}
		kind := it.Kind
		if kind == "" {
			kind = domain.ItemStudy
		}
		_, err = r.db.ExecContext(ctx, query,
			planID,
			i,
			it.Date.Format(itemDateLayout),
			it.ModuleTitle,
			it.SectionTitle,
			indices,
			boolToInt(it.Completed),
			it.TotalDuration.Milliseconds(),
			it.EstimatedCompletionTime.Milliseconds(),
			warnings,
			string(kind),
			string(it.TimeOfDay),
		)
		if err != nil {
			return fmt.Errorf("inserting plan item %d: %w", i, err)
		}
	}
	return nil
}

func (r *SQLitePlanRepo) GetByID(ctx context.Context, id string) (*domain.Plan, error) {
	query := `SELECT id, course_id, strategy, settings_json, applied_json, created_at, updated_at
		FROM plans WHERE id = ?`
	var p domain.Plan
	var strategy, settings, applied, createdAtStr, updatedAtStr string

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.CourseID, &strategy, &settings, &applied, &createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("plan %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning plan: %w", err)
	}

	p.Strategy = domain.DistributionStrategy(strategy)
	if p.Settings, err = decodeSettings(settings); err != nil {
		return nil, err
	}
	if p.Applied, err = unmarshalList[domain.OptimizationPass]("applied_json", applied); err != nil {
		return nil, err
	}
	if p.CreatedAt, err = parseTime("created_at", createdAtStr); err != nil {
		return nil, err
	}
	if p.UpdatedAt, err = parseTime("updated_at", updatedAtStr); err != nil {
		return nil, err
	}

	if p.Items, err = r.listItems(ctx, p.ID); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *SQLitePlanRepo) listItems(ctx context.Context, planID string) ([]domain.PlanItem, error) {
	query := `SELECT date, module_title, section_title, video_indices_json, completed,
		total_ms, estimated_ms, warnings_json, kind, time_of_day
		FROM plan_items WHERE plan_id = ? ORDER BY position`
	rows, err := r.db.QueryContext(ctx, query, planID)
	if err != nil {
		return nil, fmt.Errorf("listing plan items: %w", err)
	}
	defer rows.Close()

	var items []domain.PlanItem
	for rows.Next() {
		var it domain.PlanItem
		var dateStr, indices, warnings, kind, tod string
		var completed int
		var totalMs, estimatedMs int64

		err := rows.Scan(&dateStr, &it.ModuleTitle, &it.SectionTitle, &indices, &completed,
			&totalMs, &estimatedMs, &warnings, &kind, &tod)
		if err != nil {
			return nil, fmt.Errorf("scanning plan item row: %w", err)
		}

		if it.Date, err = time.Parse(itemDateLayout, dateStr); err != nil {
			return nil, fmt.Errorf("parsing item date: %w", err)
		}
		if it.VideoIndices, err = unmarshalList[int]("video_indices_json", indices); err != nil {
			return nil, err
		}
		if it.OverflowWarnings, err = unmarshalList[string]("warnings_json", warnings); err != nil {
			return nil, err
		}
		it.Completed = intToBool(completed)
		it.TotalDuration = time.Duration(totalMs) * time.Millisecond
		it.EstimatedCompletionTime = time.Duration(estimatedMs) * time.Millisecond
		it.Kind = domain.ItemKind(kind)
		it.TimeOfDay = domain.TimeOfDay(tod)
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating plan items: %w", err)
	}
	return items, nil
}

func (r *SQLitePlanRepo) ListByCourse(ctx context.Context, courseID string) ([]PlanSummary, error) {
	query := `SELECT p.id, p.course_id, p.strategy, p.created_at,
		COUNT(i.position), COALESCE(SUM(i.completed), 0), MIN(i.date), MAX(i.date)
		FROM plans p LEFT JOIN plan_items i ON i.plan_id = p.id
		WHERE p.course_id = ?
		GROUP BY p.id
		ORDER BY p.created_at, p.id`
	rows, err := r.db.QueryContext(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("listing plans: %w", err)
	}
	defer rows.Close()

	var out []PlanSummary
	for rows.Next() {
		var s PlanSummary
		var strategy, createdAtStr string
		var first, last sql.NullString
		if err := rows.Scan(&s.ID, &s.CourseID, &strategy, &createdAtStr,
			&s.ItemCount, &s.CompletedCount, &first, &last); err != nil {
			return nil, fmt.Errorf("scanning plan row: %w", err)
		}
		s.Strategy = domain.DistributionStrategy(strategy)
		if s.CreatedAt, err = parseTime("created_at", createdAtStr); err != nil {
			return nil, err
		}
		s.FirstDate = parseNullableTime(first)
		s.LastDate = parseNullableTime(last)
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating plans: %w", err)
	}
	return out, nil
}

// Replace rewrites the plan row and all of its items. Run it inside a
// UnitOfWork.
func (r *SQLitePlanRepo) Replace(ctx context.Context, p *domain.Plan) error {
	settings, err := encodeSettings(p.Settings)
	if err != nil {
		return err
	}
	applied, err := marshalList(p.Applied)
	if err != nil {
		return fmt.Errorf("encoding applied passes: %w", err)
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE plans SET strategy = ?, settings_json = ?, applied_json = ?, updated_at = ? WHERE id = ?`,
		string(p.Strategy), settings, applied, formatTime(p.UpdatedAt), p.ID)
	if err != nil {
		return fmt.Errorf("updating plan: %w", err)
	}
	if err := requireAffected(res, "plan", p.ID); err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM plan_items WHERE plan_id = ?`, p.ID); err != nil {
		return fmt.Errorf("clearing plan items: %w", err)
	}
	return r.insertItems(ctx, p.ID, p.Items)
}

func (r *SQLitePlanRepo) SetItemCompleted(ctx context.Context, planID string, position int, completed bool, updatedAt time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE plan_items SET completed = ? WHERE plan_id = ? AND position = ?`,
		boolToInt(completed), planID, position)
	if err != nil {
		return fmt.Errorf("updating plan item: %w", err)
	}
	if err := requireAffected(res, "plan item", fmt.Sprintf("%s#%d", planID, position)); err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, `UPDATE plans SET updated_at = ? WHERE id = ?`, formatTime(updatedAt), planID); err != nil {
		return fmt.Errorf("touching plan: %w", err)
	}
	return nil
}

func (r *SQLitePlanRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM plans WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting plan: %w", err)
	}
	return requireAffected(res, "plan", id)
}
