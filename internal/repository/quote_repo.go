package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/alexanderramin/cotador/internal/db"
	"github.com/alexanderramin/cotador/internal/domain"
)

// SQLQuoteRepo implements QuoteRepo on the quotes table. Task and offers
// are stored as JSON documents.
type SQLQuoteRepo struct {
	db db.DBTX
}

func NewSQLQuoteRepo(conn db.DBTX) *SQLQuoteRepo {
	return &SQLQuoteRepo{db: conn}
}

func (r *SQLQuoteRepo) Create(ctx context.Context, q *domain.Quote) error {
	taskJSON, err := json.Marshal(q.Task)
	if err != nil {
		return fmt.Errorf("encoding quote task: %w", err)
	}
	offers := q.Offers
	if offers == nil {
		offers = []domain.Offer{}
	}
	offersJSON, err := json.Marshal(offers)
	if err != nil {
		return fmt.Errorf("encoding quote offers: %w", err)
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO quotes (id, run_id, task_json, offers_json, message, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		q.ID, q.RunID, string(taskJSON), string(offersJSON), q.Message, formatTimestamp(q.CreatedAt))
	if err != nil {
		return fmt.Errorf("inserting quote: %w", err)
	}
	return nil
}

func (r *SQLQuoteRepo) GetByRun(ctx context.Context, runID string) (*domain.Quote, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, run_id, task_json, offers_json, message, created_at
		FROM quotes WHERE run_id = ?`, runID)
	q, err := scanQuote(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("quote %s: %w", runID, ErrNotFound)
		}
		return nil, err
	}
	return q, nil
}

func (r *SQLQuoteRepo) ListRecent(ctx context.Context, limit int) ([]domain.Quote, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, run_id, task_json, offers_json, message, created_at
		FROM quotes ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing quotes: %w", err)
	}
	defer rows.Close()

	var out []domain.Quote
	for rows.Next() {
		q, err := scanQuote(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating quotes: %w", err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanQuote(s scanner) (*domain.Quote, error) {
	var (
		q                    domain.Quote
		taskJSON, offersJSON string
		created              string
	)
	if err := s.Scan(&q.ID, &q.RunID, &taskJSON, &offersJSON, &q.Message, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning quote: %w", err)
	}
	if err := json.Unmarshal([]byte(taskJSON), &q.Task); err != nil {
		return nil, fmt.Errorf("decoding quote task: %w", err)
	}
	if err := json.Unmarshal([]byte(offersJSON), &q.Offers); err != nil {
		return nil, fmt.Errorf("decoding quote offers: %w", err)
	}
	q.CreatedAt = parseTimestamp(created)
	return &q, nil
}
