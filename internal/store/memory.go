package store

import (
	"context"
	"sync"
	"time"

	"github.com/jask/smsledger/internal/model"
)

// Memory is a mutex-guarded in-process Store. Used by tests and by the
// CLI's -mem mode.
type Memory struct {
	mu           sync.RWMutex
	transactions []model.Transaction
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Append(_ context.Context, transactions []model.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transactions = append(m.transactions, transactions...)
	return nil
}

// All returns a copy; callers may not mutate stored state through it.
func (m *Memory) All(_ context.Context) ([]model.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]model.Transaction, len(m.transactions))
	copy(out, m.transactions)
	return out, nil
}

func (m *Memory) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, tx := range m.transactions {
		if tx.ID == id {
			m.transactions = append(m.transactions[:i], m.transactions[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (m *Memory) DeleteAll(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transactions = nil
	return nil
}

func (m *Memory) ByMonth(_ context.Context, month time.Time) ([]model.Transaction, error) {
	target := model.MonthOf(month)
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []model.Transaction
	for _, tx := range m.transactions {
		if model.MonthOf(tx.Date).Equal(target) {
			out = append(out, tx)
		}
	}
	return out, nil
}

func (m *Memory) ByCategory(_ context.Context, category model.Category) ([]model.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []model.Transaction
	for _, tx := range m.transactions {
		if tx.Category == category {
			out = append(out, tx)
		}
	}
	return out, nil
}
