package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jask/smsledger/internal/database"
	"github.com/jask/smsledger/internal/model"
	"github.com/jask/smsledger/internal/store"
)

func newTestRepo(t *testing.T) *TransactionRepo {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := database.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.RunMigrations(db))
	return NewTransactionRepo(db)
}

func mustTx(t *testing.T, amount float64, category model.Category, date time.Time, desc string) model.Transaction {
	t.Helper()
	tx, err := model.NewTransaction(amount, category, date, desc, model.Expense)
	require.NoError(t, err)
	return tx
}

func TestRepoAppendAll(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := newTestRepo(t)

	a := mustTx(t, 12.30, model.Food, time.Date(2025, 11, 1, 13, 42, 20, 0, time.UTC), "KAFE")
	b := mustTx(t, 40.00, model.Transportation, time.Date(2025, 11, 3, 9, 0, 0, 0, time.UTC), "AZS")
	require.NoError(t, repo.Append(ctx, []model.Transaction{a, b}))

	all, err := repo.All(ctx)
	require.NoError(t, err)
	require.Equal(t, []model.Transaction{a, b}, all)
}

func TestRepoDelete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := newTestRepo(t)

	a := mustTx(t, 10, model.Food, time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC), "A")
	require.NoError(t, repo.Append(ctx, []model.Transaction{a}))

	require.NoError(t, repo.Delete(ctx, a.ID))
	require.ErrorIs(t, repo.Delete(ctx, a.ID), store.ErrNotFound)

	all, err := repo.All(ctx)
	require.NoError(t, err)
	require.Empty(t, all)
}

func TestRepoDeleteAll(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := newTestRepo(t)

	a := mustTx(t, 10, model.Food, time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC), "A")
	b := mustTx(t, 20, model.Bills, time.Date(2025, 11, 2, 0, 0, 0, 0, time.UTC), "B")
	require.NoError(t, repo.Append(ctx, []model.Transaction{a, b}))
	require.NoError(t, repo.DeleteAll(ctx))

	all, err := repo.All(ctx)
	require.NoError(t, err)
	require.Empty(t, all)
}

func TestRepoByMonth(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := newTestRepo(t)

	oct := mustTx(t, 10, model.Food, time.Date(2025, 10, 31, 23, 59, 59, 0, time.UTC), "OCT")
	nov := mustTx(t, 20, model.Food, time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC), "NOV")
	require.NoError(t, repo.Append(ctx, []model.Transaction{oct, nov}))

	got, err := repo.ByMonth(ctx, time.Date(2025, 11, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Equal(t, []model.Transaction{nov}, got)
}

func TestRepoByCategory(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := newTestRepo(t)

	food := mustTx(t, 10, model.Food, time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC), "F")
	bills := mustTx(t, 20, model.Bills, time.Date(2025, 11, 2, 0, 0, 0, 0, time.UTC), "B")
	require.NoError(t, repo.Append(ctx, []model.Transaction{food, bills}))

	got, err := repo.ByCategory(ctx, model.Bills)
	require.NoError(t, err)
	require.Equal(t, []model.Transaction{bills}, got)
}

func TestRepoAppendAtomic(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := newTestRepo(t)

	good := mustTx(t, 10, model.Food, time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC), "GOOD")
	dup := good // same id violates the primary key
	err := repo.Append(ctx, []model.Transaction{good, dup})
	require.Error(t, err)

	all, err := repo.All(ctx)
	require.NoError(t, err)
	require.Empty(t, all, "failed batch must not partially insert")
}
