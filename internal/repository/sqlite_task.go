package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/encore/internal/db"
	"github.com/alexanderramin/encore/internal/domain"
)

// SQLiteTaskRepo implements TaskRepo using a SQLite database.
type SQLiteTaskRepo struct {
	db db.DBTX
}

func NewSQLiteTaskRepo(db db.DBTX) *SQLiteTaskRepo {
	return &SQLiteTaskRepo{db: db}
}

const taskColumns = `id, project_id, title, work_type, hourly_rate, budget_item_id, created_at`

func (r *SQLiteTaskRepo) Create(ctx context.Context, t *domain.Task) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO tasks (`+taskColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.ProjectID, t.Title, string(t.WorkType), t.HourlyRate.String(), t.BudgetItemID,
		t.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("inserting task: %w", err)
	}
	return nil
}

func (r *SQLiteTaskRepo) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	t, err := scanTask(r.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id))
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *SQLiteTaskRepo) ListByProject(ctx context.Context, projectID string) ([]domain.Task, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE project_id = ? ORDER BY created_at, id`, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	defer rows.Close()

	var out []domain.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}
	return out, nil
}

func (r *SQLiteTaskRepo) Update(ctx context.Context, t *domain.Task) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET title = ?, work_type = ?, hourly_rate = ?, budget_item_id = ? WHERE id = ?`,
		t.Title, string(t.WorkType), t.HourlyRate.String(), t.BudgetItemID, t.ID)
	if err != nil {
		return fmt.Errorf("updating task: %w", err)
	}
	return expectOneRow(res, "task")
}

func (r *SQLiteTaskRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	return nil
}

func scanTask(row scanner) (domain.Task, error) {
	var t domain.Task
	var workType, rate, createdAt string
	if err := row.Scan(&t.ID, &t.ProjectID, &t.Title, &workType, &rate, &t.BudgetItemID, &createdAt); err != nil {
		if err = notFound(err, "task"); isNotFound(err) {
			return t, err
		}
		return t, fmt.Errorf("scanning task: %w", err)
	}
	t.WorkType = domain.WorkType(workType)
	t.HourlyRate = parseDecimal(rate)
	t.CreatedAt = parseTimestamp(createdAt)
	return t, nil
}

// SQLiteActivityRepo implements ActivityRepo using a SQLite database.
type SQLiteActivityRepo struct {
	db db.DBTX
}

func NewSQLiteActivityRepo(db db.DBTX) *SQLiteActivityRepo {
	return &SQLiteActivityRepo{db: db}
}

const activityColumns = `a.id, a.task_id, a.date, a.hours, a.status, a.note, a.created_at`

func (r *SQLiteActivityRepo) Create(ctx context.Context, a *domain.Activity) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO activities (id, task_id, date, hours, status, note, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.TaskID, a.Date.Format(dateLayout), a.Hours.String(), string(a.Status), a.Note,
		a.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("inserting activity: %w", err)
	}
	return nil
}

func (r *SQLiteActivityRepo) GetByID(ctx context.Context, id string) (*domain.Activity, error) {
	a, err := scanActivity(r.db.QueryRowContext(ctx, `SELECT `+activityColumns+` FROM activities a WHERE a.id = ?`, id))
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *SQLiteActivityRepo) ListByProject(ctx context.Context, projectID string) ([]domain.Activity, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+activityColumns+`
		FROM activities a
		JOIN tasks t ON t.id = a.task_id
		WHERE t.project_id = ?
		ORDER BY a.date, a.created_at, a.id`, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing activities: %w", err)
	}
	defer rows.Close()

	var out []domain.Activity
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating activities: %w", err)
	}
	return out, nil
}

func (r *SQLiteActivityRepo) UpdateStatus(ctx context.Context, id string, status domain.ActivityStatus) error {
	res, err := r.db.ExecContext(ctx, `UPDATE activities SET status = ? WHERE id = ?`, string(status), id)
	if err != nil {
		return fmt.Errorf("updating activity status: %w", err)
	}
	return expectOneRow(res, "activity")
}

func (r *SQLiteActivityRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM activities WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting activity: %w", err)
	}
	return nil
}

func scanActivity(row scanner) (domain.Activity, error) {
	var a domain.Activity
	var date, hours, status, createdAt string
	if err := row.Scan(&a.ID, &a.TaskID, &date, &hours, &status, &a.Note, &createdAt); err != nil {
		if err = notFound(err, "activity"); isNotFound(err) {
			return a, err
		}
		return a, fmt.Errorf("scanning activity: %w", err)
	}
	var parseErr error
	a.Date, parseErr = time.Parse(dateLayout, date)
	if parseErr != nil {
		return a, fmt.Errorf("parsing activity date: %w", parseErr)
	}
	a.Hours = parseDecimal(hours)
	a.Status = domain.ActivityStatus(status)
	a.CreatedAt = parseTimestamp(createdAt)
	return a, nil
}
