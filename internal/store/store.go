// Package store defines the transaction collection interface and an
// in-memory implementation. The durable sqlite implementation lives in
// internal/database/repository.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/jask/smsledger/internal/model"
)

// ErrUnavailable marks persistence failures the core cannot recover
// from. Callers match it with errors.Is and surface it to the user.
var ErrUnavailable = errors.New("transaction store unavailable")

// ErrNotFound is returned by Delete for an unknown id.
var ErrNotFound = errors.New("transaction not found")

// Store holds the transaction collection. Implementations must make
// Append a single atomic step so a batch lands all-or-nothing and
// concurrent importers cannot interleave inside it.
type Store interface {
	Append(ctx context.Context, transactions []model.Transaction) error
	All(ctx context.Context) ([]model.Transaction, error)
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) error
	ByMonth(ctx context.Context, month time.Time) ([]model.Transaction, error)
	ByCategory(ctx context.Context, category model.Category) ([]model.Transaction, error)
}
