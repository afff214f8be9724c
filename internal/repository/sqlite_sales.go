package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/encore/internal/db"
	"github.com/alexanderramin/encore/internal/domain"
)

// SQLiteSaleSessionRepo implements SaleSessionRepo using a SQLite database.
type SQLiteSaleSessionRepo struct {
	db db.DBTX
}

func NewSQLiteSaleSessionRepo(db db.DBTX) *SQLiteSaleSessionRepo {
	return &SQLiteSaleSessionRepo{db: db}
}

const saleSessionColumns = `s.id, s.name, s.association_type, s.project_id, s.event_id, s.expected_revenue`

// projectSessionsWhere selects sessions owned by a project directly or via one
// of its occurrences. It takes the project id twice.
const projectSessionsWhere = `(s.association_type = 'project' AND s.project_id = ?)
	OR (s.association_type = 'event' AND s.event_id IN (SELECT id FROM occurrences WHERE project_id = ?))`

func (r *SQLiteSaleSessionRepo) Create(ctx context.Context, s *domain.SaleSession) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO sale_sessions (id, name, association_type, project_id, event_id, expected_revenue) VALUES (?, ?, ?, ?, ?, ?)`,
		s.ID, s.Name, string(s.AssociationType), s.ProjectID, s.EventID, s.ExpectedRevenue.String())
	if err != nil {
		return fmt.Errorf("inserting sale session: %w", err)
	}
	return nil
}

func (r *SQLiteSaleSessionRepo) GetByID(ctx context.Context, id string) (*domain.SaleSession, error) {
	s, err := scanSaleSession(r.db.QueryRowContext(ctx, `SELECT `+saleSessionColumns+` FROM sale_sessions s WHERE s.id = ?`, id))
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SQLiteSaleSessionRepo) ListByProject(ctx context.Context, projectID string) ([]domain.SaleSession, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+saleSessionColumns+` FROM sale_sessions s
		WHERE `+projectSessionsWhere+` ORDER BY s.name, s.id`, projectID, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing sale sessions: %w", err)
	}
	defer rows.Close()

	var out []domain.SaleSession
	for rows.Next() {
		s, err := scanSaleSession(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sale sessions: %w", err)
	}
	return out, nil
}

func (r *SQLiteSaleSessionRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM sale_sessions WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting sale session: %w", err)
	}
	return nil
}

func scanSaleSession(row scanner) (domain.SaleSession, error) {
	var s domain.SaleSession
	var assoc, expected string
	if err := row.Scan(&s.ID, &s.Name, &assoc, &s.ProjectID, &s.EventID, &expected); err != nil {
		if err = notFound(err, "sale session"); isNotFound(err) {
			return s, err
		}
		return s, fmt.Errorf("scanning sale session: %w", err)
	}
	s.AssociationType = domain.AssociationType(assoc)
	s.ExpectedRevenue = parseDecimal(expected)
	return s, nil
}

// SQLiteSalesTransactionRepo implements SalesTransactionRepo using a SQLite database.
type SQLiteSalesTransactionRepo struct {
	db db.DBTX
}

func NewSQLiteSalesTransactionRepo(db db.DBTX) *SQLiteSalesTransactionRepo {
	return &SQLiteSalesTransactionRepo{db: db}
}

func (r *SQLiteSalesTransactionRepo) Create(ctx context.Context, tx *domain.SalesTransaction) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO sales_transactions (id, sale_session_id, total, recorded_at) VALUES (?, ?, ?, ?)`,
		tx.ID, tx.SaleSessionID, tx.Total.String(), tx.RecordedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("inserting sales transaction: %w", err)
	}
	return nil
}

func (r *SQLiteSalesTransactionRepo) ListByProject(ctx context.Context, projectID string) ([]domain.SalesTransaction, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT x.id, x.sale_session_id, x.total, x.recorded_at
		FROM sales_transactions x
		JOIN sale_sessions s ON s.id = x.sale_session_id
		WHERE `+projectSessionsWhere+`
		ORDER BY x.recorded_at, x.id`, projectID, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing sales transactions: %w", err)
	}
	defer rows.Close()

	var out []domain.SalesTransaction
	for rows.Next() {
		var tx domain.SalesTransaction
		var total, recordedAt string
		if err := rows.Scan(&tx.ID, &tx.SaleSessionID, &total, &recordedAt); err != nil {
			return nil, fmt.Errorf("scanning sales transaction: %w", err)
		}
		tx.Total = parseDecimal(total)
		tx.RecordedAt = parseTimestamp(recordedAt)
		out = append(out, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sales transactions: %w", err)
	}
	return out, nil
}

func (r *SQLiteSalesTransactionRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM sales_transactions WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting sales transaction: %w", err)
	}
	return nil
}
