package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/encore/internal/db"
	"github.com/alexanderramin/encore/internal/domain"
)

// SQLiteOccurrenceRepo implements OccurrenceRepo using a SQLite database.
type SQLiteOccurrenceRepo struct {
	db db.DBTX
}

func NewSQLiteOccurrenceRepo(db db.DBTX) *SQLiteOccurrenceRepo {
	return &SQLiteOccurrenceRepo{db: db}
}

const occurrenceColumns = `id, project_id, venue_id, title, status, start_date, end_date, start_time, end_time,
	is_all_day, is_template, override_cost_type, override_cost_amount, override_cost_period`

func (r *SQLiteOccurrenceRepo) Create(ctx context.Context, o *domain.Occurrence) error {
	query := `INSERT INTO occurrences (` + occurrenceColumns + `, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	args := append(occurrenceArgs(o), nowUTC())
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("inserting occurrence: %w", err)
	}
	return nil
}

func (r *SQLiteOccurrenceRepo) GetByID(ctx context.Context, id string) (*domain.Occurrence, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+occurrenceColumns+` FROM occurrences WHERE id = ?`, id)
	o, err := scanOccurrence(row)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *SQLiteOccurrenceRepo) ListByProject(ctx context.Context, projectID string) ([]domain.Occurrence, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+occurrenceColumns+` FROM occurrences WHERE project_id = ? ORDER BY start_date, start_time, id`, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing occurrences: %w", err)
	}
	defer rows.Close()

	var out []domain.Occurrence
	for rows.Next() {
		o, err := scanOccurrence(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating occurrences: %w", err)
	}
	return out, nil
}

func (r *SQLiteOccurrenceRepo) Update(ctx context.Context, o *domain.Occurrence) error {
	query := `UPDATE occurrences SET project_id = ?, venue_id = ?, title = ?, status = ?, start_date = ?, end_date = ?,
		start_time = ?, end_time = ?, is_all_day = ?, is_template = ?,
		override_cost_type = ?, override_cost_amount = ?, override_cost_period = ?
		WHERE id = ?`
	args := append(occurrenceArgs(o)[1:], o.ID)
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("updating occurrence: %w", err)
	}
	return expectOneRow(res, "occurrence")
}

func (r *SQLiteOccurrenceRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM occurrences WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting occurrence: %w", err)
	}
	return nil
}

func occurrenceArgs(o *domain.Occurrence) []any {
	var venueID any
	if o.VenueID != "" {
		venueID = o.VenueID
	}
	var oType, oAmount, oPeriod any
	if o.VenueCostOverride != nil {
		oType = string(o.VenueCostOverride.Type)
		oAmount = o.VenueCostOverride.Amount.String()
		oPeriod = string(o.VenueCostOverride.Period)
	}
	return []any{
		o.ID, o.ProjectID, venueID, o.Title, string(o.Status),
		o.StartDate.Format(dateLayout), nullableDate(o.EndDate),
		o.StartTime, o.EndTime,
		boolToInt(o.IsAllDay), boolToInt(o.IsTemplate),
		oType, oAmount, oPeriod,
	}
}

func scanOccurrence(row scanner) (domain.Occurrence, error) {
	var o domain.Occurrence
	var venueID, endDate, oType, oAmount, oPeriod sql.NullString
	var status, startDate string
	var allDay, template int

	err := row.Scan(
		&o.ID, &o.ProjectID, &venueID, &o.Title, &status, &startDate, &endDate,
		&o.StartTime, &o.EndTime, &allDay, &template,
		&oType, &oAmount, &oPeriod,
	)
	if err != nil {
		if err = notFound(err, "occurrence"); isNotFound(err) {
			return o, err
		}
		return o, fmt.Errorf("scanning occurrence: %w", err)
	}

	o.VenueID = venueID.String
	o.Status = domain.OccurrenceStatus(status)
	o.IsAllDay = intToBool(allDay)
	o.IsTemplate = intToBool(template)
	o.EndDate = parseNullableTime(endDate, dateLayout)

	var parseErr error
	o.StartDate, parseErr = time.Parse(dateLayout, startDate)
	if parseErr != nil {
		return o, fmt.Errorf("parsing start_date: %w", parseErr)
	}

	if oType.Valid {
		o.VenueCostOverride = &domain.CostModel{
			Type:   domain.CostType(oType.String),
			Amount: parseDecimal(oAmount.String),
			Period: domain.CostPeriod(oPeriod.String),
		}
	}
	return o, nil
}
