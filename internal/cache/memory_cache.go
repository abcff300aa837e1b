package cache

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/epeers/varstress/internal/models"
)

// MemoryCache keeps risk reports in memory for runTTL. It is the run store
// when no database is configured.
type MemoryCache struct {
	runs   map[string]runEntry
	mu     sync.RWMutex
	runTTL time.Duration
	now    func() time.Time
}

type runEntry struct {
	report   *models.RiskReport
	storedAt time.Time
}

// NewMemoryCache creates a new in-memory run cache. A non-positive TTL keeps
// runs until Clear is called.
func NewMemoryCache(runTTL time.Duration) *MemoryCache {
	return &MemoryCache{
		runs:   make(map[string]runEntry),
		runTTL: runTTL,
		now:    time.Now,
	}
}

// Save stores a report under its ID.
func (c *MemoryCache) Save(_ context.Context, report *models.RiskReport) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.runs[report.ID] = runEntry{
		report:   report,
		storedAt: c.now(),
	}
	return nil
}

// Get retrieves a report if present and fresh. Missing runs return nil, nil.
func (c *MemoryCache) Get(_ context.Context, id string) (*models.RiskReport, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.runs[id]
	if !exists || c.expired(entry) {
		return nil, nil
	}
	return entry.report, nil
}

// ListByOwner lists fresh reports of an owner, newest first.
func (c *MemoryCache) ListByOwner(_ context.Context, ownerID int64) ([]models.RunListItem, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	items := []models.RunListItem{}
	for _, entry := range c.runs {
		r := entry.report
		if r.OwnerID != ownerID || c.expired(entry) {
			continue
		}
		items = append(items, models.RunListItem{
			ID:             r.ID,
			NetAssetValue:  r.Context.NetAssetValue,
			HorizonDays:    r.Context.HorizonDays,
			Confidence:     r.Confidence.Level,
			TotalVaRAmount: r.TotalVaRAmount,
			CreatedAt:      r.CreatedAt,
		})
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

// Evict removes expired runs and returns how many were dropped.
func (c *MemoryCache) Evict() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for id, entry := range c.runs {
		if c.expired(entry) {
			delete(c.runs, id)
			n++
		}
	}
	return n
}

// Clear removes all cached runs
func (c *MemoryCache) Clear() {
	c.mu.Lock()
	c.runs = make(map[string]runEntry)
	c.mu.Unlock()
}

func (c *MemoryCache) expired(e runEntry) bool {
	return c.runTTL > 0 && c.now().Sub(e.storedAt) > c.runTTL
}
