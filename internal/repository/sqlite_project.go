package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/alexanderramin/encore/internal/db"
	"github.com/alexanderramin/encore/internal/domain"
)

// SQLiteProjectRepo implements ProjectRepo using a SQLite database.
// The budget is stored as one JSON document per project.
type SQLiteProjectRepo struct {
	db db.DBTX
}

// NewSQLiteProjectRepo creates a new SQLiteProjectRepo.
func NewSQLiteProjectRepo(db db.DBTX) *SQLiteProjectRepo {
	return &SQLiteProjectRepo{db: db}
}

const projectColumns = `id, short_id, name, discipline, status, budget_json, estimated_sales, actual_sales, created_at, updated_at`

func (r *SQLiteProjectRepo) Create(ctx context.Context, p *domain.Project) error {
	budget, err := encodeBudget(p.Budget)
	if err != nil {
		return err
	}
	query := `INSERT INTO projects (` + projectColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		p.ID,
		p.ShortID,
		p.Name,
		p.Discipline,
		string(p.Status),
		budget,
		p.EstimatedSales.String(),
		p.ActualSales.String(),
		p.CreatedAt.Format(time.RFC3339),
		p.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting project: %w", err)
	}
	return nil
}

func (r *SQLiteProjectRepo) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = ?`
	return r.scanProject(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteProjectRepo) GetByShortID(ctx context.Context, shortID string) (*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE UPPER(short_id) = UPPER(?)`
	return r.scanProject(r.db.QueryRowContext(ctx, query, shortID))
}

func (r *SQLiteProjectRepo) List(ctx context.Context, includeArchived bool) ([]*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE status = 'active' ORDER BY created_at`
	if includeArchived {
		query = `SELECT ` + projectColumns + ` FROM projects ORDER BY created_at`
	}
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	var projects []*domain.Project
	for rows.Next() {
		p, err := r.scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating projects: %w", err)
	}
	return projects, nil
}

func (r *SQLiteProjectRepo) Update(ctx context.Context, p *domain.Project) error {
	query := `UPDATE projects SET short_id = ?, name = ?, discipline = ?, status = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		p.ShortID,
		p.Name,
		p.Discipline,
		string(p.Status),
		p.UpdatedAt.Format(time.RFC3339),
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating project: %w", err)
	}
	return expectOneRow(res, "project")
}

func (r *SQLiteProjectRepo) UpdateBudget(ctx context.Context, id string, b domain.DetailedBudget) error {
	budget, err := encodeBudget(b)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE projects SET budget_json = ?, updated_at = ? WHERE id = ?`,
		budget, nowUTC(), id)
	if err != nil {
		return fmt.Errorf("updating project budget: %w", err)
	}
	return expectOneRow(res, "project")
}

func (r *SQLiteProjectRepo) UpdateSalesFigures(ctx context.Context, id string, f domain.SalesFigures) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE projects SET estimated_sales = ?, actual_sales = ?, updated_at = ? WHERE id = ?`,
		f.Estimated.String(), f.Actual.String(), nowUTC(), id)
	if err != nil {
		return fmt.Errorf("updating project sales figures: %w", err)
	}
	return expectOneRow(res, "project")
}

func (r *SQLiteProjectRepo) Archive(ctx context.Context, id string) error {
	query := `UPDATE projects SET status = 'archived', updated_at = ? WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query, nowUTC(), id); err != nil {
		return fmt.Errorf("archiving project: %w", err)
	}
	return nil
}

func (r *SQLiteProjectRepo) Unarchive(ctx context.Context, id string) error {
	query := `UPDATE projects SET status = 'active', updated_at = ? WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query, nowUTC(), id); err != nil {
		return fmt.Errorf("unarchiving project: %w", err)
	}
	return nil
}

func (r *SQLiteProjectRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}
	return nil
}

func (r *SQLiteProjectRepo) scanProject(row scanner) (*domain.Project, error) {
	var p domain.Project
	var statusStr, budgetJSON, estimated, actual, createdAtStr, updatedAtStr string

	err := row.Scan(
		&p.ID, &p.ShortID, &p.Name, &p.Discipline, &statusStr,
		&budgetJSON, &estimated, &actual,
		&createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err = notFound(err, "project"); isNotFound(err) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning project: %w", err)
	}

	p.Status = domain.ProjectStatus(statusStr)
	p.EstimatedSales = parseDecimal(estimated)
	p.ActualSales = parseDecimal(actual)
	p.CreatedAt = parseTimestamp(createdAtStr)
	p.UpdatedAt = parseTimestamp(updatedAtStr)

	if budgetJSON != "" {
		if err := json.Unmarshal([]byte(budgetJSON), &p.Budget); err != nil {
			return nil, fmt.Errorf("decoding budget of project %s: %w", p.ID, err)
		}
	}
	return &p, nil
}

func encodeBudget(b domain.DetailedBudget) (string, error) {
	raw, err := json.Marshal(b)
	if err != nil {
		return "", fmt.Errorf("encoding budget: %w", err)
	}
	return string(raw), nil
}
