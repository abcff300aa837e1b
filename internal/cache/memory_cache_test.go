package cache

import (
	"context"
	"testing"
	"time"

	"github.com/epeers/varstress/internal/models"
)

func TestMemoryCache_SaveGet(t *testing.T) {
	c := NewMemoryCache(time.Hour)
	ctx := context.Background()

	report := &models.RiskReport{ID: "run-1", OwnerID: 1, TotalVaRAmount: 42}
	if err := c.Save(ctx, report); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := c.Get(ctx, "run-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != report {
		t.Errorf("expected stored report, got %+v", got)
	}

	missing, err := c.Get(ctx, "run-2")
	if err != nil || missing != nil {
		t.Errorf("expected nil, nil for missing run, got %+v, %v", missing, err)
	}
}

func TestMemoryCache_Expiry(t *testing.T) {
	c := NewMemoryCache(time.Minute)
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	_ = c.Save(ctx, &models.RiskReport{ID: "old", OwnerID: 1})
	now = now.Add(2 * time.Minute)
	_ = c.Save(ctx, &models.RiskReport{ID: "new", OwnerID: 1})

	if got, _ := c.Get(ctx, "old"); got != nil {
		t.Error("expected expired run to be hidden")
	}
	if got, _ := c.Get(ctx, "new"); got == nil {
		t.Error("expected fresh run to be returned")
	}

	items, _ := c.ListByOwner(ctx, 1)
	if len(items) != 1 || items[0].ID != "new" {
		t.Errorf("expected only fresh run listed, got %+v", items)
	}

	if n := c.Evict(); n != 1 {
		t.Errorf("expected 1 eviction, got %d", n)
	}
}

func TestMemoryCache_ListByOwnerOrdering(t *testing.T) {
	c := NewMemoryCache(0)
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	_ = c.Save(ctx, &models.RiskReport{ID: "a", OwnerID: 1, CreatedAt: base})
	_ = c.Save(ctx, &models.RiskReport{ID: "b", OwnerID: 1, CreatedAt: base.Add(time.Hour)})
	_ = c.Save(ctx, &models.RiskReport{ID: "c", OwnerID: 2, CreatedAt: base.Add(2 * time.Hour)})

	items, err := c.ListByOwner(ctx, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 || items[0].ID != "b" || items[1].ID != "a" {
		t.Errorf("unexpected listing: %+v", items)
	}

	none, _ := c.ListByOwner(ctx, 3)
	if none == nil || len(none) != 0 {
		t.Errorf("expected empty non-nil listing, got %#v", none)
	}

	c.Clear()
	if got, _ := c.Get(ctx, "a"); got != nil {
		t.Error("expected cache to be empty after Clear")
	}
}
