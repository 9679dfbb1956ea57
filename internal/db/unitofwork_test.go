package db_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/cotador/internal/db"
)

func openTestUoW(t *testing.T) *db.SQLUnitOfWork {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return db.NewUnitOfWork(database, db.DialectSQLite)
}

func insertSupplier(ctx context.Context, tx db.DBTX, id string) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO suppliers (collection, id, name, service_type, seq) VALUES (?, ?, ?, ?, ?)`,
		"suppliers_faucet", id, "Hidráulica "+id, "faucet_repair", 1)
	return err
}

func supplierExists(t *testing.T, uow *db.SQLUnitOfWork, id string) bool {
	t.Helper()
	var found bool
	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		var n int
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM suppliers WHERE id = ?`, id).Scan(&n); err != nil {
			return err
		}
		found = n > 0
		return nil
	})
	require.NoError(t, err)
	return found
}

func TestWithinTx_CommitOnSuccess(t *testing.T) {
	uow := openTestUoW(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		return insertSupplier(ctx, tx, "f1")
	})
	require.NoError(t, err)

	assert.True(t, supplierExists(t, uow, "f1"), "row should exist after commit")
}

func TestWithinTx_RollbackOnError(t *testing.T) {
	uow := openTestUoW(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := insertSupplier(ctx, tx, "f2"); err != nil {
			return err
		}
		return fmt.Errorf("deliberate failure")
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "deliberate failure")

	assert.False(t, supplierExists(t, uow, "f2"), "row should not exist after rollback")
}

func TestWithinTx_RollbackOnPanic(t *testing.T) {
	uow := openTestUoW(t)

	assert.Panics(t, func() {
		_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
			_ = insertSupplier(ctx, tx, "f3")
			panic("boom")
		})
	})

	assert.False(t, supplierExists(t, uow, "f3"), "row should not exist after panic rollback")
}
