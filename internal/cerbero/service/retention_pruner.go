package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/dvillamarin/cerbero/internal/cerbero/store"
)

// RetentionPruner periodically deletes audit and access records older
// than a configurable retention period.  It runs as a background
// goroutine and is safe to stop via its context or the Stop method.
//
// A retention of 0 disables pruning entirely, which preserves the
// append-forever reference behavior.
type RetentionPruner struct {
	audits    store.AuditStore
	accesses  store.AccessStore
	retention time.Duration
	interval  time.Duration
	logger    *zap.Logger
	cancel    context.CancelFunc
	done      chan struct{}
}

// PrunerConfig holds the parameters for NewRetentionPruner.
type PrunerConfig struct {
	// RetentionDays is how many days of history to keep.
	// 0 means keep everything (pruner will not start).
	RetentionDays int

	// IntervalHours is how often the pruner runs.  Defaults to 6.
	IntervalHours int
}

// NewRetentionPruner creates a pruner but does not start it.
// Call Start to begin the background loop.
func NewRetentionPruner(audits store.AuditStore, accesses store.AccessStore, cfg PrunerConfig, logger *zap.Logger) *RetentionPruner {
	interval := time.Duration(cfg.IntervalHours) * time.Hour
	if interval <= 0 {
		interval = 6 * time.Hour
	}

	return &RetentionPruner{
		audits:    audits,
		accesses:  accesses,
		retention: time.Duration(cfg.RetentionDays) * 24 * time.Hour,
		interval:  interval,
		logger:    logger,
		done:      make(chan struct{}),
	}
}

// Start begins the background pruning loop.  It runs an immediate prune
// on startup, then repeats on the configured interval.  The loop exits
// when ctx is cancelled or Stop is called.
func (p *RetentionPruner) Start(ctx context.Context) {
	if p.retention <= 0 {
		p.logger.Info("retention pruner disabled (retention=0)")
		close(p.done)
		return
	}

	ctx, p.cancel = context.WithCancel(ctx)

	go p.loop(ctx)

	p.logger.Info("retention pruner started",
		zap.Int("retention_days", int(p.retention.Hours()/24)),
		zap.Int("interval_hours", int(p.interval.Hours())))
}

// Stop signals the pruner to exit and waits for it to finish.
func (p *RetentionPruner) Stop() {
	if p.cancel != nil {
		p.cancel()
	}
	<-p.done
}

func (p *RetentionPruner) loop(ctx context.Context) {
	defer close(p.done)

	// Run immediately on startup to clean up any backlog.
	p.prune(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.prune(ctx)
		}
	}
}

func (p *RetentionPruner) prune(ctx context.Context) {
	cutoff := time.Now().Add(-p.retention)

	audits, err := p.audits.PruneOlderThan(ctx, cutoff)
	if err != nil {
		p.logger.Error("audit prune failed", zap.Error(err))
		return
	}
	accesses, err := p.accesses.PruneOlderThan(ctx, cutoff)
	if err != nil {
		p.logger.Error("access prune failed", zap.Error(err))
		return
	}
	if audits > 0 || accesses > 0 {
		p.logger.Info("retention prune",
			zap.Int64("audit_rows", audits),
			zap.Int64("access_rows", accesses),
			zap.Time("cutoff", cutoff))
	}
}
