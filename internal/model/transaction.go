package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// TransactionType splits movements into money in and money out. Direction
// is carried here, never by a negative amount.
type TransactionType string

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

// Category is the closed set of spending/income classifications.
type Category string

const (
	Food           Category = "food"
	Transportation Category = "transportation"
	Shopping       Category = "shopping"
	Entertainment  Category = "entertainment"
	Bills          Category = "bills"
	Salary         Category = "salary"
	Transfer       Category = "transfer"
	Cash           Category = "cash"
	Other          Category = "other"
)

// Categories is the canonical ordering. Keyword scans and tie-breaks rely
// on this order being stable.
func Categories() []Category {
	return []Category{Food, Transportation, Shopping, Entertainment, Bills, Salary, Transfer, Cash, Other}
}

// ParseCategory maps a stored/configured name back to a Category.
func ParseCategory(s string) (Category, bool) {
	for _, c := range Categories() {
		if string(c) == s {
			return c, true
		}
	}
	return Other, false
}

// ErrInvalidAmount rejects non-positive amounts at every entry point.
var ErrInvalidAmount = errors.New("transaction amount must be positive")

// Transaction is one financial movement. Immutable after construction.
type Transaction struct {
	ID          string
	Amount      float64
	Category    Category
	Date        time.Time
	Description string
	Type        TransactionType
}

// NewTransaction validates the amount invariant and assigns identity.
// Dates are normalized to UTC at second precision.
func NewTransaction(amount float64, category Category, date time.Time, description string, typ TransactionType) (Transaction, error) {
	if amount <= 0 {
		return Transaction{}, ErrInvalidAmount
	}
	return Transaction{
		ID:          uuid.NewString(),
		Amount:      amount,
		Category:    category,
		Date:        date.UTC().Truncate(time.Second),
		Description: description,
		Type:        typ,
	}, nil
}

// SameDay reports whether two instants fall on the same UTC calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

// MonthOf returns the first-of-month marker used as a trend period key.
func MonthOf(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), 1, 0, 0, 0, 0, time.UTC)
}
