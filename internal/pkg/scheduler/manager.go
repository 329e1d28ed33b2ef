package scheduler

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2/log"

	"github.com/velorajewels/velora/internal/pkg/database"
	"github.com/velorajewels/velora/internal/pkg/env"
	"github.com/velorajewels/velora/internal/pkg/events"
	metrics "github.com/velorajewels/velora/internal/pkg/metrics/counter"
	"github.com/velorajewels/velora/internal/pkg/points"
)

// Manager runs the in-process background tasks: the point expiry sweep and
// the view counter flush. The sweep also has an external HTTP trigger; both
// paths share the same transactional sweeper, so overlap is harmless.
type Manager struct {
	sweepTicker        *time.Ticker
	counterFlushTicker *time.Ticker
	stopCh             chan struct{}
	wg                 sync.WaitGroup
	mu                 sync.Mutex
	running            bool
}

var (
	globalManager *Manager
	managerOnce   sync.Once
)

// GetManager returns the global scheduler manager (singleton)
func GetManager() *Manager {
	managerOnce.Do(func() {
		globalManager = &Manager{
			stopCh: make(chan struct{}),
		}
	})
	return globalManager
}

// Start starts the background tasks
func (m *Manager) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.running {
		return
	}

	// Recreate stop channel for each start cycle so manager can be restarted safely.
	m.stopCh = make(chan struct{})
	m.running = true
	log.Info("[Scheduler] Starting background tasks")

	sweepInterval := 60 * time.Minute
	if raw := env.GetEnv("POINTS_SWEEP_INTERVAL_MINUTES", ""); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			sweepInterval = time.Duration(v) * time.Minute
		}
	}
	m.sweepTicker = time.NewTicker(sweepInterval)
	m.wg.Add(1)
	go m.sweepWorker(sweepInterval)

	// Flush buffered view counters (Redis -> DB) every 30 seconds
	m.counterFlushTicker = time.NewTicker(30 * time.Second)
	m.wg.Add(1)
	go m.counterFlushWorker()

	log.Info("[Scheduler] Started successfully")
}

// Stop stops the background tasks
func (m *Manager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.running {
		return
	}

	log.Info("[Scheduler] Stopping background tasks...")

	if m.sweepTicker != nil {
		m.sweepTicker.Stop()
	}
	if m.counterFlushTicker != nil {
		m.counterFlushTicker.Stop()
	}

	// Signal workers to stop. The channel is recreated on the next Start.
	close(m.stopCh)
	m.running = false

	// Wait for background workers to finish
	m.wg.Wait()

	log.Info("[Scheduler] Stopped successfully")
}

// sweepWorker runs the point expiry sweep on a fixed interval
func (m *Manager) sweepWorker(interval time.Duration) {
	defer m.wg.Done()
	log.Infof("[Scheduler] Started expiry sweep worker (interval: %s)", interval)

	for {
		select {
		case <-m.stopCh:
			log.Info("[Scheduler] Expiry sweep worker stopping")
			return
		case <-m.sweepTicker.C:
			if err := m.runSweepOnce(); err != nil {
				log.Errorf("[Scheduler] Expiry sweep error: %v", err)
			}
		}
	}
}

// counterFlushWorker periodically flushes view counters from Redis to DB
func (m *Manager) counterFlushWorker() {
	defer m.wg.Done()
	for {
		select {
		case <-m.stopCh:
			log.Info("[Scheduler] Counter flush worker stopping")
			return
		case <-m.counterFlushTicker.C:
			if err := metrics.FlushAll(); err != nil {
				log.Errorf("[Scheduler] Counter flush error: %v", err)
			}
		}
	}
}

func (m *Manager) runSweepOnce() error {
	svc := points.NewServiceFromDB(database.GetDB()).WithEvents(events.NewRedisPublisher())
	result, err := svc.SweepExpired(context.Background())
	if err != nil {
		return err
	}
	if result.ExpiredCount > 0 {
		log.Infof("[Scheduler] Expired %d point entries across %d accounts", result.ExpiredCount, result.AffectedAccounts)
	}
	return nil
}
