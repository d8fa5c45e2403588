package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jask/smsledger/internal/model"
)

func mustTx(t *testing.T, amount float64, category model.Category, date time.Time) model.Transaction {
	t.Helper()
	tx, err := model.NewTransaction(amount, category, date, "test", model.Expense)
	require.NoError(t, err)
	return tx
}

func TestMemoryAppendAll(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	m := NewMemory()

	nov := time.Date(2025, 11, 5, 0, 0, 0, 0, time.UTC)
	a := mustTx(t, 10, model.Food, nov)
	b := mustTx(t, 20, model.Bills, nov)
	require.NoError(t, m.Append(ctx, []model.Transaction{a, b}))

	all, err := m.All(ctx)
	require.NoError(t, err)
	require.Equal(t, []model.Transaction{a, b}, all)
}

func TestMemoryAllReturnsCopy(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	m := NewMemory()

	nov := time.Date(2025, 11, 5, 0, 0, 0, 0, time.UTC)
	require.NoError(t, m.Append(ctx, []model.Transaction{mustTx(t, 10, model.Food, nov)}))

	all, err := m.All(ctx)
	require.NoError(t, err)
	all[0].Amount = 999

	again, err := m.All(ctx)
	require.NoError(t, err)
	require.Equal(t, 10.0, again[0].Amount)
}

func TestMemoryDelete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	m := NewMemory()

	nov := time.Date(2025, 11, 5, 0, 0, 0, 0, time.UTC)
	a := mustTx(t, 10, model.Food, nov)
	b := mustTx(t, 20, model.Bills, nov)
	require.NoError(t, m.Append(ctx, []model.Transaction{a, b}))

	require.NoError(t, m.Delete(ctx, a.ID))
	all, err := m.All(ctx)
	require.NoError(t, err)
	require.Equal(t, []model.Transaction{b}, all)

	require.ErrorIs(t, m.Delete(ctx, "missing"), ErrNotFound)
}

func TestMemoryDeleteAll(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	m := NewMemory()

	nov := time.Date(2025, 11, 5, 0, 0, 0, 0, time.UTC)
	require.NoError(t, m.Append(ctx, []model.Transaction{mustTx(t, 10, model.Food, nov)}))
	require.NoError(t, m.DeleteAll(ctx))

	all, err := m.All(ctx)
	require.NoError(t, err)
	require.Empty(t, all)
}

func TestMemoryByMonth(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	m := NewMemory()

	oct := mustTx(t, 10, model.Food, time.Date(2025, 10, 31, 23, 59, 0, 0, time.UTC))
	nov := mustTx(t, 20, model.Food, time.Date(2025, 11, 1, 0, 0, 1, 0, time.UTC))
	require.NoError(t, m.Append(ctx, []model.Transaction{oct, nov}))

	got, err := m.ByMonth(ctx, time.Date(2025, 11, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Equal(t, []model.Transaction{nov}, got)
}

func TestMemoryByCategory(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	m := NewMemory()

	nov := time.Date(2025, 11, 5, 0, 0, 0, 0, time.UTC)
	food := mustTx(t, 10, model.Food, nov)
	bills := mustTx(t, 20, model.Bills, nov)
	require.NoError(t, m.Append(ctx, []model.Transaction{food, bills}))

	got, err := m.ByCategory(ctx, model.Bills)
	require.NoError(t, err)
	require.Equal(t, []model.Transaction{bills}, got)
}

func TestMemoryConcurrentAppend(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	m := NewMemory()

	nov := time.Date(2025, 11, 5, 0, 0, 0, 0, time.UTC)
	done := make(chan struct{})
	for i := 0; i < 4; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 25; j++ {
				tx, _ := model.NewTransaction(1, model.Food, nov, "test", model.Expense)
				_ = m.Append(ctx, []model.Transaction{tx})
			}
		}()
	}
	for i := 0; i < 4; i++ {
		<-done
	}

	all, err := m.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 100)
}
