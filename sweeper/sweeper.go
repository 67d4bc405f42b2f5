// Package sweeper drives the engine's periodic TTL sweep and memory-
// pressure eviction on a fixed cadence, built on robfig/cron/v3. It is
// the concrete consumer of Config.TTLSweepIntervalMs.
package sweeper

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/Gagan2004bansal/KVMemo/engine"
	"github.com/Gagan2004bansal/KVMemo/logging"
)

// Sweeper periodically calls Engine.ProcessExpired then
// Engine.ProcessEvictions on a cron schedule derived from an interval.
type Sweeper struct {
	cron    *cron.Cron
	engine  *engine.Engine
	logger  *logging.Logger
	entryID cron.EntryID
}

// New builds a Sweeper that fires every interval. interval must be > 0.
// The schedule uses cron's "@every" syntax, which has one-second
// granularity: an interval below one second fires once a second, and a
// longer interval is truncated to whole seconds.
func New(e *engine.Engine, interval time.Duration, logger *logging.Logger) (*Sweeper, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("sweeper: interval must be > 0")
	}
	s := &Sweeper{cron: cron.New(), engine: e, logger: logger}
	id, err := s.cron.AddFunc(fmt.Sprintf("@every %s", interval), s.tick)
	if err != nil {
		return nil, fmt.Errorf("sweeper: schedule: %w", err)
	}
	s.entryID = id
	return s, nil
}

func (s *Sweeper) tick() {
	n, err := s.engine.ProcessExpired(context.Background())
	if err != nil {
		s.logger.Error("ttl sweep failed", "error", err)
	} else if n > 0 {
		s.logger.Debug("ttl sweep removed expired entries", "count", n)
	}

	if evicted := s.engine.ProcessEvictions(); evicted > 0 {
		s.logger.Debug("memory-pressure eviction removed entries", "count", evicted)
	}
}

// Start begins running the schedule in its own goroutine.
func (s *Sweeper) Start() { s.cron.Start() }

// Stop halts the schedule and waits for any in-flight tick to finish.
func (s *Sweeper) Stop() context.Context { return s.cron.Stop() }
