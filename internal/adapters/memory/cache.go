package memory

import (
	"context"
	"sync"
	"time"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/ports"
	"github.com/golang/groupcache/lru"
)

// DefaultCapacity is the number of reports kept when no capacity is configured.
const DefaultCapacity = 1024

// Cache is an in-process ports.ReportCache bounded by capacity, evicting the least
// recently used report first. Reports are copied on the way in and out so callers
// never share memory with the cache.
type Cache struct {
	mu       sync.Mutex
	reports  *lru.Cache
	capacity int
	ttl      time.Duration
	now      func() time.Time
}

type entry struct {
	report  *domain.AnalysisReport
	expires time.Time
}

var _ ports.ReportCache = (*Cache)(nil)

// Option configures the Cache.
type Option func(*Cache)

// WithCapacity bounds the number of cached reports. Non-positive values keep the default.
func WithCapacity(n int) Option {
	return func(c *Cache) {
		if n > 0 {
			c.capacity = n
		}
	}
}

// WithTTL sets the expiration for reports. Zero keeps them until evicted.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		c.ttl = ttl
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		c.now = now
	}
}

// New creates an empty cache.
func New(opts ...Option) *Cache {
	c := &Cache{capacity: DefaultCapacity, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	c.reports = lru.New(c.capacity)
	return c
}

func (c *Cache) Get(ctx context.Context, fingerprint string) (*domain.AnalysisReport, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	v, ok := c.reports.Get(fingerprint)
	if !ok {
		return nil, ports.ErrCacheMiss
	}
	e := v.(entry)
	if !e.expires.IsZero() && !c.now().Before(e.expires) {
		c.reports.Remove(fingerprint)
		return nil, ports.ErrCacheMiss
	}
	return e.report.Clone(), nil
}

func (c *Cache) Put(ctx context.Context, report *domain.AnalysisReport) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	e := entry{report: report.Clone()}
	if c.ttl > 0 {
		e.expires = c.now().Add(c.ttl)
	}
	c.reports.Add(report.Fingerprint, e)
	return nil
}

// Len returns the number of cached reports, expired ones included until they are touched.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reports.Len()
}
