package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/alexanderramin/cotador/internal/db"
	"github.com/alexanderramin/cotador/internal/domain"
)

// SQLOfferRepo implements OfferRepo on the offers table.
type SQLOfferRepo struct {
	db db.DBTX
}

func NewSQLOfferRepo(conn db.DBTX) *SQLOfferRepo {
	return &SQLOfferRepo{db: conn}
}

func (r *SQLOfferRepo) Create(ctx context.Context, rec *domain.OfferRecord) error {
	taskJSON, err := json.Marshal(rec.Task)
	if err != nil {
		return fmt.Errorf("encoding offer task snapshot: %w", err)
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO offers (id, run_id, supplier_id, supplier_name, task_json, price,
			available_date, lead_time_days, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.RunID, rec.SupplierID, rec.SupplierName, string(taskJSON), rec.Offer.Price,
		nullableDate(rec.Offer.AvailableDate), nullableInt(rec.Offer.LeadTimeDays), rec.Offer.Notes,
		formatTimestamp(rec.CreatedAt))
	if err != nil {
		return fmt.Errorf("inserting offer: %w", err)
	}
	return nil
}

func (r *SQLOfferRepo) ListByRun(ctx context.Context, runID string) ([]domain.OfferRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, run_id, supplier_id, supplier_name, task_json, price,
			available_date, lead_time_days, notes, created_at
		FROM offers WHERE run_id = ? ORDER BY created_at`, runID)
	if err != nil {
		return nil, fmt.Errorf("listing offers by run: %w", err)
	}
	defer rows.Close()

	var out []domain.OfferRecord
	for rows.Next() {
		var (
			rec       domain.OfferRecord
			taskJSON  string
			available sql.NullString
			lead      sql.NullInt64
			created   string
		)
		if err := rows.Scan(&rec.ID, &rec.RunID, &rec.SupplierID, &rec.SupplierName, &taskJSON,
			&rec.Offer.Price, &available, &lead, &rec.Offer.Notes, &created); err != nil {
			return nil, fmt.Errorf("scanning offer row: %w", err)
		}
		if err := json.Unmarshal([]byte(taskJSON), &rec.Task); err != nil {
			return nil, fmt.Errorf("decoding offer task snapshot: %w", err)
		}
		rec.Offer.SupplierID = rec.SupplierID
		rec.Offer.Name = rec.SupplierName
		rec.Offer.AvailableDate = parseNullableDate(available)
		rec.Offer.LeadTimeDays = parseNullableInt(lead)
		rec.CreatedAt = parseTimestamp(created)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating offers: %w", err)
	}
	return out, nil
}
