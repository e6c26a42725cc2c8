package presence

import (
	"context"
	"log/slog"
	"time"

	"github.com/uolchat/batepapo/internal/dependencies/clock"
	"github.com/uolchat/batepapo/internal/services/directory"
)

// Config holds sweep timing for the presence monitor
type Config struct {
	// SweepInterval is how often the eviction sweep runs
	SweepInterval time.Duration
	// IdleThreshold is how long a participant may go without a heartbeat
	// before being logged off
	IdleThreshold time.Duration
}

// DefaultConfig returns default presence timing
func DefaultConfig() Config {
	return Config{
		SweepInterval: 15 * time.Second,
		IdleThreshold: 10 * time.Second,
	}
}

// Monitor periodically evicts participants whose heartbeat has gone
// stale, cascading the departure status message through the directory.
type Monitor struct {
	directory *directory.Service
	clock     clock.Clock
	logger    *slog.Logger
	cfg       Config
}

// New creates a new presence monitor
func New(directory *directory.Service, clock clock.Clock, cfg Config, logger *slog.Logger) *Monitor {
	if cfg.SweepInterval == 0 {
		cfg.SweepInterval = DefaultConfig().SweepInterval
	}
	if cfg.IdleThreshold == 0 {
		cfg.IdleThreshold = DefaultConfig().IdleThreshold
	}
	return &Monitor{
		directory: directory,
		clock:     clock,
		logger:    logger,
		cfg:       cfg,
	}
}

// Run sweeps on a fixed interval until ctx is cancelled. Intended to be
// started as a background goroutine at process startup.
func (m *Monitor) Run(ctx context.Context) {
	m.logger.Info("presence monitor started",
		slog.Duration("sweep_interval", m.cfg.SweepInterval),
		slog.Duration("idle_threshold", m.cfg.IdleThreshold),
	)

	ticker := time.NewTicker(m.cfg.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.logger.Info("presence monitor stopped")
			return
		case <-ticker.C:
			if err := m.Sweep(ctx); err != nil {
				m.logger.Error("presence sweep failed", slog.String("error", err.Error()))
			}
		}
	}
}

// Sweep evicts every participant whose lastSeen is older than the idle
// threshold. Candidates are selected from a snapshot, then re-checked
// record by record at eviction time so a concurrent heartbeat is never
// lost.
func (m *Monitor) Sweep(ctx context.Context) error {
	participants, err := m.directory.List(ctx)
	if err != nil {
		return err
	}

	cutoff := m.clock.Now().Add(-m.cfg.IdleThreshold)

	for _, p := range participants {
		if p.LastSeen.After(cutoff) {
			continue
		}

		evicted, err := m.directory.LogoffIfIdleSince(ctx, p.Name, cutoff)
		if err != nil {
			m.logger.Error("failed to evict participant",
				slog.String("name", p.Name),
				slog.String("error", err.Error()),
			)
			continue
		}
		if evicted {
			m.logger.Info("evicted idle participant", slog.String("name", p.Name))
		}
	}

	return nil
}
