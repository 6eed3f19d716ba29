package ports

import (
	"context"
	"errors"

	"github.com/aretw0/automata/pkg/domain"
)

// ErrCacheMiss is returned by ReportCache.Get when no report is stored for a key.
var ErrCacheMiss = errors.New("report not cached")

// ReportCache persists analysis reports. Automata are immutable per request and
// identified by their fingerprint, so entries never need invalidation; adapters
// may still expire them.
type ReportCache interface {
	// Get returns the report stored under fingerprint, or ErrCacheMiss.
	Get(ctx context.Context, fingerprint string) (*domain.AnalysisReport, error)

	// Put stores report under its fingerprint.
	Put(ctx context.Context, report *domain.AnalysisReport) error
}
