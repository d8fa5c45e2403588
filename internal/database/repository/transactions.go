// Package repository implements the transaction store on sqlite.
package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jask/smsledger/internal/database"
	"github.com/jask/smsledger/internal/model"
	"github.com/jask/smsledger/internal/store"
)

// TransactionRepo is the durable store.Store implementation.
type TransactionRepo struct {
	db *sql.DB
}

func NewTransactionRepo(db *sql.DB) *TransactionRepo { return &TransactionRepo{db: db} }

var _ store.Store = (*TransactionRepo)(nil)

// Append inserts the batch inside one transaction so it lands
// all-or-nothing.
func (r *TransactionRepo) Append(ctx context.Context, transactions []model.Transaction) error {
	return database.WithTx(r.db, func(tx *sql.Tx) error {
		for _, t := range transactions {
			_, err := tx.ExecContext(ctx, `
			INSERT INTO transactions(id, amount, category, date, description, type)
			VALUES(?, ?, ?, ?, ?, ?);
			`, t.ID, t.Amount, string(t.Category), t.Date.UTC(), t.Description, string(t.Type))
			if err != nil {
				return fmt.Errorf("insert transaction %s: %w", t.ID, err)
			}
		}
		return nil
	})
}

func (r *TransactionRepo) All(ctx context.Context) ([]model.Transaction, error) {
	return r.query(ctx, selectColumns+` FROM transactions ORDER BY date ASC, created_at ASC`)
}

func (r *TransactionRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *TransactionRepo) DeleteAll(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM transactions`)
	return err
}

func (r *TransactionRepo) ByMonth(ctx context.Context, month time.Time) ([]model.Transaction, error) {
	start := model.MonthOf(month)
	end := start.AddDate(0, 1, 0)
	return r.query(ctx, selectColumns+` FROM transactions WHERE date >= ? AND date < ? ORDER BY date ASC`, start, end)
}

func (r *TransactionRepo) ByCategory(ctx context.Context, category model.Category) ([]model.Transaction, error) {
	return r.query(ctx, selectColumns+` FROM transactions WHERE category = ? ORDER BY date ASC`, string(category))
}

const selectColumns = `SELECT id, amount, category, date, description, type`

func (r *TransactionRepo) query(ctx context.Context, q string, args ...interface{}) ([]model.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func scanTransaction(rows *sql.Rows) (model.Transaction, error) {
	var t model.Transaction
	var category, typ string
	var date time.Time
	if err := rows.Scan(&t.ID, &t.Amount, &category, &date, &t.Description, &typ); err != nil {
		return model.Transaction{}, err
	}
	t.Category, _ = model.ParseCategory(category)
	t.Date = date.UTC()
	t.Type = model.TransactionType(typ)
	return t, nil
}
