package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/encore/internal/db"
	"github.com/alexanderramin/encore/internal/domain"
)

// SQLiteVenueRepo implements VenueRepo using a SQLite database.
type SQLiteVenueRepo struct {
	db db.DBTX
}

func NewSQLiteVenueRepo(db db.DBTX) *SQLiteVenueRepo {
	return &SQLiteVenueRepo{db: db}
}

const venueColumns = `id, name, capacity, cost_type, cost_amount, cost_period`

func (r *SQLiteVenueRepo) Create(ctx context.Context, v *domain.Venue) error {
	query := `INSERT INTO venues (` + venueColumns + `, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		v.ID, v.Name, v.Capacity,
		string(v.Default.Type), v.Default.Amount.String(), string(v.Default.Period),
		nowUTC(),
	)
	if err != nil {
		return fmt.Errorf("inserting venue: %w", err)
	}
	return nil
}

func (r *SQLiteVenueRepo) GetByID(ctx context.Context, id string) (*domain.Venue, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+venueColumns+` FROM venues WHERE id = ?`, id)
	v, err := scanVenue(row)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *SQLiteVenueRepo) List(ctx context.Context) ([]domain.Venue, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+venueColumns+` FROM venues ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing venues: %w", err)
	}
	defer rows.Close()

	var venues []domain.Venue
	for rows.Next() {
		v, err := scanVenue(rows)
		if err != nil {
			return nil, err
		}
		venues = append(venues, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating venues: %w", err)
	}
	return venues, nil
}

func (r *SQLiteVenueRepo) Update(ctx context.Context, v *domain.Venue) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE venues SET name = ?, capacity = ?, cost_type = ?, cost_amount = ?, cost_period = ? WHERE id = ?`,
		v.Name, v.Capacity, string(v.Default.Type), v.Default.Amount.String(), string(v.Default.Period), v.ID)
	if err != nil {
		return fmt.Errorf("updating venue: %w", err)
	}
	return expectOneRow(res, "venue")
}

func (r *SQLiteVenueRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM venues WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting venue: %w", err)
	}
	return nil
}

func scanVenue(row scanner) (domain.Venue, error) {
	var v domain.Venue
	var costType, amount, period string
	if err := row.Scan(&v.ID, &v.Name, &v.Capacity, &costType, &amount, &period); err != nil {
		if err = notFound(err, "venue"); isNotFound(err) {
			return v, err
		}
		return v, fmt.Errorf("scanning venue: %w", err)
	}
	v.Default = domain.CostModel{
		Type:   domain.CostType(costType),
		Amount: parseDecimal(amount),
		Period: domain.CostPeriod(period),
	}
	return v, nil
}
