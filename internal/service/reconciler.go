package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/agnivade/levenshtein"

	"github.com/jask/smsledger/internal/model"
	"github.com/jask/smsledger/internal/store"
)

// ReviewPair flags two stored transactions that look like the same
// purchase reported twice with slightly different text. Pairs are only
// ever surfaced for review; nothing is merged or deleted automatically.
type ReviewPair struct {
	A          model.Transaction
	B          model.Transaction
	Similarity float64
}

// Reconciler finds near-duplicates that the strict import dedup (exact
// amount, exact description, same day) cannot catch.
type Reconciler struct {
	store store.Store
}

func NewReconciler(st store.Store) *Reconciler {
	return &Reconciler{store: st}
}

// Review scans the whole collection pairwise and returns candidates in
// stored order.
func (r *Reconciler) Review(ctx context.Context) ([]ReviewPair, error) {
	txs, err := r.store.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrUnavailable, err)
	}

	var pairs []ReviewPair
	for i := 0; i < len(txs); i++ {
		for j := i + 1; j < len(txs); j++ {
			a, b := txs[i], txs[j]
			if !matchFuzzyCandidate(a, b) {
				continue
			}
			pairs = append(pairs, ReviewPair{A: a, B: b, Similarity: similarity(a, b)})
		}
	}
	return pairs, nil
}

func matchFuzzyCandidate(a, b model.Transaction) bool {
	if a.Amount != b.Amount {
		return false
	}
	if daysApart(a.Date, b.Date) > 7 {
		return false
	}
	return normalizedDistance(a.Description, b.Description) < 0.4
}

func similarity(a, b model.Transaction) float64 {
	return 1 - normalizedDistance(a.Description, b.Description)
}

func normalizedDistance(a, b string) float64 {
	dist := levenshtein.ComputeDistance(strings.ToUpper(a), strings.ToUpper(b))
	maxlen := float64(len(a))
	if len(b) > len(a) {
		maxlen = float64(len(b))
	}
	if maxlen == 0 {
		return 0
	}
	return float64(dist) / maxlen
}

func daysApart(a, b time.Time) int {
	return int(math.Abs(a.Sub(b).Hours()) / 24)
}
