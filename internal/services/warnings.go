package services

import (
	"context"
	"sync"

	"github.com/epeers/varstress/internal/models"
)

type warningContextKey struct{}

// WarningCollector accumulates warnings during a run.
type WarningCollector struct {
	mu       sync.Mutex
	warnings []models.Warning
}

// NewWarningContext returns a context carrying a fresh WarningCollector,
// plus a reference to the collector so the caller can retrieve warnings later.
func NewWarningContext(ctx context.Context) (context.Context, *WarningCollector) {
	wc := &WarningCollector{}
	return context.WithValue(ctx, warningContextKey{}, wc), wc
}

// warningCollector returns the collector in ctx, attaching a new one if absent.
func warningCollector(ctx context.Context) (context.Context, *WarningCollector) {
	if wc, ok := ctx.Value(warningContextKey{}).(*WarningCollector); ok && wc != nil {
		return ctx, wc
	}
	return NewWarningContext(ctx)
}

// AddWarning appends a warning to the collector in ctx.
// If ctx has no collector, the call is a no-op.
func AddWarning(ctx context.Context, w models.Warning) {
	wc, ok := ctx.Value(warningContextKey{}).(*WarningCollector)
	if !ok || wc == nil {
		return
	}
	wc.mu.Lock()
	defer wc.mu.Unlock()
	wc.warnings = append(wc.warnings, w)
}

// AddWarnings appends several warnings at once.
func AddWarnings(ctx context.Context, ws []models.Warning) {
	for _, w := range ws {
		AddWarning(ctx, w)
	}
}

// GetWarnings returns a copy of the collected warnings.
func (wc *WarningCollector) GetWarnings() []models.Warning {
	wc.mu.Lock()
	defer wc.mu.Unlock()
	if len(wc.warnings) == 0 {
		return nil
	}
	out := make([]models.Warning, len(wc.warnings))
	copy(out, wc.warnings)
	return out
}
