package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/cotador/internal/db"
	"github.com/alexanderramin/cotador/internal/domain"
)

// SQLSupplierRepo implements SupplierRepo on the suppliers table.
type SQLSupplierRepo struct {
	db db.DBTX
}

func NewSQLSupplierRepo(conn db.DBTX) *SQLSupplierRepo {
	return &SQLSupplierRepo{db: conn}
}

func (r *SQLSupplierRepo) ListByService(ctx context.Context, collection domain.Collection, serviceType domain.ServiceType) ([]domain.Supplier, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, service_type, location, notes FROM suppliers
		WHERE collection = ? AND service_type = ? ORDER BY seq`,
		string(collection), string(serviceType))
	if err != nil {
		return nil, fmt.Errorf("listing suppliers by service: %w", err)
	}
	defer rows.Close()
	return scanSuppliers(rows)
}

func (r *SQLSupplierRepo) ListCollection(ctx context.Context, collection domain.Collection) ([]domain.Supplier, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, service_type, location, notes FROM suppliers
		WHERE collection = ? ORDER BY seq`,
		string(collection))
	if err != nil {
		return nil, fmt.Errorf("listing supplier collection: %w", err)
	}
	defer rows.Close()
	return scanSuppliers(rows)
}

// ReplaceCollection deletes every supplier in collection and inserts
// suppliers in order. Run it inside a UnitOfWork to make the swap atomic.
func (r *SQLSupplierRepo) ReplaceCollection(ctx context.Context, collection domain.Collection, suppliers []domain.Supplier) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM suppliers WHERE collection = ?`, string(collection)); err != nil {
		return fmt.Errorf("clearing %s: %w", collection, err)
	}
	for i, s := range suppliers {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO suppliers (collection, id, name, service_type, location, notes, seq)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			string(collection), s.ID, s.Name, string(s.ServiceType), s.Location, s.Notes, i+1)
		if err != nil {
			return fmt.Errorf("inserting supplier %s into %s: %w", s.ID, collection, err)
		}
	}
	return nil
}

func (r *SQLSupplierRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM suppliers`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting suppliers: %w", err)
	}
	return n, nil
}

type rowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanSuppliers(rows rowScanner) ([]domain.Supplier, error) {
	var out []domain.Supplier
	for rows.Next() {
		var s domain.Supplier
		var st string
		if err := rows.Scan(&s.ID, &s.Name, &st, &s.Location, &s.Notes); err != nil {
			return nil, fmt.Errorf("scanning supplier row: %w", err)
		}
		s.ServiceType = domain.ServiceType(st)
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating suppliers: %w", err)
	}
	return out, nil
}
