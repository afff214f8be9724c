package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/encore/internal/db"
	"github.com/alexanderramin/encore/internal/domain"
)

// SQLiteTicketOfferingRepo implements TicketOfferingRepo using a SQLite database.
type SQLiteTicketOfferingRepo struct {
	db db.DBTX
}

func NewSQLiteTicketOfferingRepo(db db.DBTX) *SQLiteTicketOfferingRepo {
	return &SQLiteTicketOfferingRepo{db: db}
}

const ticketColumns = `t.id, t.occurrence_id, t.name, t.price, t.capacity_override, t.sold_count`

func (r *SQLiteTicketOfferingRepo) Create(ctx context.Context, t *domain.TicketOffering) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO ticket_offerings (id, occurrence_id, name, price, capacity_override, sold_count) VALUES (?, ?, ?, ?, ?, ?)`,
		t.ID, t.OccurrenceID, t.Name, t.Price.String(), t.CapacityOverride, t.SoldCount)
	if err != nil {
		return fmt.Errorf("inserting ticket offering: %w", err)
	}
	return nil
}

func (r *SQLiteTicketOfferingRepo) GetByID(ctx context.Context, id string) (*domain.TicketOffering, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+ticketColumns+` FROM ticket_offerings t WHERE t.id = ?`, id)
	t, err := scanTicketOffering(row)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *SQLiteTicketOfferingRepo) ListByProject(ctx context.Context, projectID string) ([]domain.TicketOffering, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+ticketColumns+`
		FROM ticket_offerings t
		JOIN occurrences o ON o.id = t.occurrence_id
		WHERE o.project_id = ?
		ORDER BY o.start_date, t.name, t.id`, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing ticket offerings: %w", err)
	}
	defer rows.Close()

	var out []domain.TicketOffering
	for rows.Next() {
		t, err := scanTicketOffering(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating ticket offerings: %w", err)
	}
	return out, nil
}

func (r *SQLiteTicketOfferingRepo) Update(ctx context.Context, t *domain.TicketOffering) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE ticket_offerings SET name = ?, price = ?, capacity_override = ?, sold_count = ? WHERE id = ?`,
		t.Name, t.Price.String(), t.CapacityOverride, t.SoldCount, t.ID)
	if err != nil {
		return fmt.Errorf("updating ticket offering: %w", err)
	}
	return expectOneRow(res, "ticket offering")
}

func (r *SQLiteTicketOfferingRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM ticket_offerings WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting ticket offering: %w", err)
	}
	return nil
}

func scanTicketOffering(row scanner) (domain.TicketOffering, error) {
	var t domain.TicketOffering
	var price string
	if err := row.Scan(&t.ID, &t.OccurrenceID, &t.Name, &price, &t.CapacityOverride, &t.SoldCount); err != nil {
		if err = notFound(err, "ticket offering"); isNotFound(err) {
			return t, err
		}
		return t, fmt.Errorf("scanning ticket offering: %w", err)
	}
	t.Price = parseDecimal(price)
	return t, nil
}
