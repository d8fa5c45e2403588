// Package service wires parsing, deduplication, and storage into the
// operations the CLI exposes.
package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/jask/smsledger/internal/model"
	"github.com/jask/smsledger/internal/parser"
	"github.com/jask/smsledger/internal/store"
)

// ImportService runs batch imports of raw notification messages.
type ImportService struct {
	store  store.Store
	parser *parser.Parser
	log    zerolog.Logger

	// mu serializes whole batches. The duplicate scan and the append
	// must be one phase: two concurrent batches that both read the
	// pre-batch state could otherwise each admit the same transaction.
	mu sync.Mutex
}

func NewImportService(st store.Store, p *parser.Parser, log zerolog.Logger) *ImportService {
	return &ImportService{store: st, parser: p, log: log}
}

// ImportBatch parses each message in order and appends the survivors in
// one store call. Duplicates are checked against the store state as it
// was before the batch, so two identical messages inside one batch both
// import. Each failure produces one entry in ImportResult.Errors, in
// input order.
func (s *ImportService) ImportBatch(ctx context.Context, messages []string) (model.ImportResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.store.All(ctx)
	if err != nil {
		return model.ImportResult{}, fmt.Errorf("%w: %v", store.ErrUnavailable, err)
	}

	var result model.ImportResult
	var staged []model.Transaction
	for _, msg := range messages {
		tx, ok := s.parser.Parse(msg)
		if !ok {
			result.FailedCount++
			result.Errors = append(result.Errors, "unparsed: "+preview(msg))
			continue
		}
		if isDuplicate(*tx, existing) {
			result.FailedCount++
			result.Errors = append(result.Errors, "duplicate: "+tx.Description)
			continue
		}
		result.ImportedCount++
		staged = append(staged, *tx)
	}

	if len(staged) > 0 {
		if err := s.store.Append(ctx, staged); err != nil {
			return model.ImportResult{}, fmt.Errorf("%w: %v", store.ErrUnavailable, err)
		}
	}

	s.log.Info().
		Int("messages", len(messages)).
		Int("imported", result.ImportedCount).
		Int("failed", result.FailedCount).
		Msg("batch import finished")
	return result, nil
}

// isDuplicate matches on amount, description, and UTC calendar day.
// Time-of-day is deliberately ignored.
func isDuplicate(candidate model.Transaction, existing []model.Transaction) bool {
	for _, tx := range existing {
		if tx.Amount == candidate.Amount &&
			tx.Description == candidate.Description &&
			model.SameDay(tx.Date, candidate.Date) {
			return true
		}
	}
	return false
}

// preview truncates a message for error reporting. Rune-based so a cut
// never splits a multibyte character.
func preview(msg string) string {
	runes := []rune(msg)
	if len(runes) > 30 {
		runes = runes[:30]
	}
	return string(runes) + "..."
}
