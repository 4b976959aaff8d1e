package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/riskibarqy/qw-league/internal/domain/gamerow"
)

// LedgerRepository keeps ledger rows and imported URLs in insertion order.
type LedgerRepository struct {
	mu       sync.RWMutex
	rows     []gamerow.GameRow
	urls     []string
	imported map[string]struct{}
}

func NewLedgerRepository(rows []gamerow.GameRow) *LedgerRepository {
	r := &LedgerRepository{imported: make(map[string]struct{})}
	for _, row := range rows {
		r.rows = append(r.rows, row)
		if _, ok := r.imported[row.URL]; !ok {
			r.imported[row.URL] = struct{}{}
			r.urls = append(r.urls, row.URL)
		}
	}
	return r
}

func (r *LedgerRepository) ListRows(_ context.Context) ([]gamerow.GameRow, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]gamerow.GameRow, 0, len(r.rows))
	return append(out, r.rows...), nil
}

func (r *LedgerRepository) ListImportedURLs(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.urls))
	return append(out, r.urls...), nil
}

func (r *LedgerRepository) AppendMap(_ context.Context, url string, rows []gamerow.GameRow) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.imported[url]; ok {
		return fmt.Errorf("url already imported: %s", url)
	}
	r.rows = append(r.rows, rows...)
	r.imported[url] = struct{}{}
	r.urls = append(r.urls, url)
	return nil
}
