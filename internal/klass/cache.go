// Package klass keeps an in-process snapshot of the classification code lists that coded
// definition fields are validated against and rendered with.
//
// Each tracked classification moves EMPTY → POPULATED on its first successful refresh.
// Later failures keep the previous snapshot and mark it stale; a classification never
// goes back to EMPTY. Reads are lock-free.
package klass

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"vardef/internal/klass/metrics"
	"vardef/internal/klass/models"
)

const defaultReferenceBase = "https://www.ssb.no/klass/klassifikasjoner/"

// Fetcher loads a full classification from upstream.
type Fetcher interface {
	FetchClassification(ctx context.Context, classificationID string) (*models.Classification, error)
}

// SnapshotStore mirrors snapshots outside the process so a new instance can start warm.
type SnapshotStore interface {
	Save(ctx context.Context, c *models.Classification) error
	Load(ctx context.Context, classificationID string) (*models.Classification, error)
}

type entry struct {
	snapshot atomic.Pointer[models.Classification]
	stale    atomic.Bool
}

// Cache serves classification membership and titles from the latest good snapshot.
type Cache struct {
	fetcher       Fetcher
	mirror        SnapshotStore
	entries       map[string]*entry
	ids           []string
	referenceBase string
	logger        *slog.Logger
	metrics       *metrics.Metrics
}

type Option func(*Cache)

func WithLogger(logger *slog.Logger) Option {
	return func(c *Cache) {
		c.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Cache) {
		c.metrics = m
	}
}

// WithMirror enables the snapshot mirror. A nil store leaves it disabled.
func WithMirror(store SnapshotStore) Option {
	return func(c *Cache) {
		c.mirror = store
	}
}

// WithReferenceBase sets the URI prefix used for rendered reference items.
func WithReferenceBase(base string) Option {
	return func(c *Cache) {
		c.referenceBase = base
	}
}

// New tracks the given classification ids. The set is fixed for the cache's lifetime.
func New(fetcher Fetcher, classificationIDs []string, opts ...Option) *Cache {
	c := &Cache{
		fetcher:       fetcher,
		entries:       make(map[string]*entry, len(classificationIDs)),
		referenceBase: defaultReferenceBase,
		logger:        slog.Default(),
	}
	for _, id := range classificationIDs {
		if _, dup := c.entries[id]; dup {
			continue
		}
		c.entries[id] = &entry{}
		c.ids = append(c.ids, id)
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// ClassificationIDs returns the tracked ids in configuration order.
func (c *Cache) ClassificationIDs() []string {
	return append([]string(nil), c.ids...)
}

// Refresh fetches every tracked classification concurrently. Failures leave the prior
// snapshot in place; the first failure is returned for the caller to log.
func (c *Cache) Refresh(ctx context.Context) error {
	var g errgroup.Group
	for _, id := range c.ids {
		g.Go(func() error {
			return c.RefreshOne(ctx, id)
		})
	}
	return g.Wait()
}

// RefreshOne fetches a single classification.
func (c *Cache) RefreshOne(ctx context.Context, classificationID string) error {
	e, ok := c.entries[classificationID]
	if !ok {
		return fmt.Errorf("classification %s is not tracked", classificationID)
	}

	start := time.Now()
	fresh, err := c.fetcher.FetchClassification(ctx, classificationID)
	c.metrics.ObserveRefresh(classificationID, err == nil, time.Since(start))
	if err != nil {
		if e.snapshot.Load() != nil {
			e.stale.Store(true)
			c.metrics.SetStale(classificationID, true)
		}
		c.logger.WarnContext(ctx, "classification refresh failed",
			"classification", classificationID,
			"state", c.State(classificationID),
			"error", err,
		)
		return fmt.Errorf("refresh classification %s: %w", classificationID, err)
	}

	c.swap(e, fresh)
	c.logger.InfoContext(ctx, "classification refreshed",
		"classification", classificationID,
		"codes", fresh.Size(),
	)

	if c.mirror != nil {
		if err := c.mirror.Save(ctx, fresh); err != nil {
			c.logger.WarnContext(ctx, "failed to mirror classification snapshot",
				"classification", classificationID,
				"error", err,
			)
		}
	}
	return nil
}

func (c *Cache) swap(e *entry, snapshot *models.Classification) {
	e.snapshot.Store(snapshot)
	e.stale.Store(false)
	c.metrics.SetCodes(snapshot.ID, snapshot.Size())
	c.metrics.SetStale(snapshot.ID, false)
}

// Warm populates still-empty classifications from the mirror. Missing or unreadable
// mirror entries are skipped.
func (c *Cache) Warm(ctx context.Context) int {
	if c.mirror == nil {
		return 0
	}
	warmed := 0
	for _, id := range c.ids {
		e := c.entries[id]
		if e.snapshot.Load() != nil {
			continue
		}
		snapshot, err := c.mirror.Load(ctx, id)
		if err != nil {
			c.logger.DebugContext(ctx, "no mirrored classification snapshot",
				"classification", id,
				"error", err,
			)
			continue
		}
		if !e.snapshot.CompareAndSwap(nil, snapshot) {
			continue
		}
		c.metrics.SetCodes(id, snapshot.Size())
		warmed++
	}
	if warmed > 0 {
		c.logger.InfoContext(ctx, "classification cache warmed from mirror", "classifications", warmed)
	}
	return warmed
}

// Validate reports whether code is in the classification's current snapshot. A
// classification that was never populated validates nothing.
func (c *Cache) Validate(classificationID, code string) bool {
	snapshot := c.snapshot(classificationID)
	return snapshot != nil && snapshot.Has(code)
}

// Lookup returns the reference for code titled in language. Nil when the code has no
// entry in that language.
func (c *Cache) Lookup(classificationID, code, language string) *models.ReferenceItem {
	snapshot := c.snapshot(classificationID)
	if snapshot == nil {
		return nil
	}
	item, ok := snapshot.Codes[language][code]
	if !ok {
		return nil
	}
	return &models.ReferenceItem{
		ReferenceURI: c.ClassificationURI(classificationID),
		Code:         item.Code,
		Title:        item.Name,
	}
}

// ClassificationURI is the public page of a classification.
func (c *Cache) ClassificationURI(classificationID string) string {
	return c.referenceBase + classificationID
}

// State reports the lifecycle state of one classification.
func (c *Cache) State(classificationID string) models.State {
	e, ok := c.entries[classificationID]
	if !ok || e.snapshot.Load() == nil {
		return models.StateEmpty
	}
	if e.stale.Load() {
		return models.StateStale
	}
	return models.StatePopulated
}

// States reports every tracked classification.
func (c *Cache) States() map[string]models.State {
	out := make(map[string]models.State, len(c.ids))
	for _, id := range c.ids {
		out[id] = c.State(id)
	}
	return out
}

func (c *Cache) snapshot(classificationID string) *models.Classification {
	e, ok := c.entries[classificationID]
	if !ok {
		return nil
	}
	return e.snapshot.Load()
}
