package fetcher

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"shem.pro/energy-telemetry-service/pkg/buffer"
	"shem.pro/energy-telemetry-service/pkg/common"
	"shem.pro/energy-telemetry-service/pkg/models"
)

// liveFetcher polls the backend on three independent intervals under a
// single supervisor goroutine. A failed live poll flips the status to
// Disconnected; the next successful one flips it back. Last successful
// response wins, there is no in-flight fencing.
type liveFetcher struct {
	cfg    Config
	client *Client
	hooks  Hooks
	logger *zap.Logger

	mu          sync.RWMutex
	snapshot    models.LiveReading
	hasSnapshot bool
	status      Status
	online      bool
	history     *buffer.Window[Sample]
	sevenDay    []Sample

	startOnce sync.Once
	stopOnce  sync.Once
	cancel    context.CancelFunc
	done      chan struct{}
}

func newLiveFetcher(cfg Config, hooks Hooks) *liveFetcher {
	return &liveFetcher{
		cfg:     cfg,
		client:  NewClient(cfg),
		hooks:   hooks,
		logger:  common.GetLoggerWith(common.LoggerNameFetcher),
		status:  StatusConnecting,
		history: buffer.New[Sample](historyCapacity),
		done:    make(chan struct{}),
	}
}

func (f *liveFetcher) Start(ctx context.Context) {
	f.startOnce.Do(func() {
		runCtx, cancel := context.WithCancel(ctx)
		f.cancel = cancel
		go f.run(runCtx)
	})
}

// Stop tears down all tickers and waits for the supervisor to exit. This is
// the only cancellation path; in-flight requests run to their own timeout
// and their results are discarded.
func (f *liveFetcher) Stop() {
	f.stopOnce.Do(func() {
		// burn startOnce so a Start after Stop cannot spawn a supervisor
		f.startOnce.Do(func() {})
		if f.cancel == nil {
			return
		}
		f.cancel()
		<-f.done
	})
}

func (f *liveFetcher) run(ctx context.Context) {
	defer close(f.done)

	f.logger.Info("starting live data fetcher",
		zap.String("base_url", f.cfg.BaseURL),
		zap.Duration("live_interval", f.cfg.LiveInterval),
		zap.Duration("history_interval", f.cfg.HistoryInterval),
		zap.Duration("seven_day_interval", f.cfg.SevenDayInterval),
	)

	liveTicker := time.NewTicker(f.cfg.LiveInterval)
	defer liveTicker.Stop()
	historyTicker := time.NewTicker(f.cfg.HistoryInterval)
	defer historyTicker.Stop()
	sevenDayTicker := time.NewTicker(f.cfg.SevenDayInterval)
	defer sevenDayTicker.Stop()

	// fetch everything once on mount
	f.fetchLive(ctx)
	f.fetchHistory(ctx)
	f.fetchSevenDay(ctx)

	for {
		select {
		case <-ctx.Done():
			f.logger.Info("stopping live data fetcher")
			return
		case <-liveTicker.C:
			f.fetchLive(ctx)
		case <-historyTicker.C:
			f.fetchHistory(ctx)
		case <-sevenDayTicker.C:
			f.fetchSevenDay(ctx)
		}
	}
}

func (f *liveFetcher) fetchLive(ctx context.Context) {
	reading, err := f.client.Live(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		f.logger.Warn("live fetch failed", zap.Error(err))

		f.mu.Lock()
		f.status = StatusDisconnected
		f.online = false
		f.mu.Unlock()

		switch Classify(err) {
		case EventNetwork:
			// repeated network failures would flood transient popups
			emit(f.hooks.Center, EventNetwork, SeverityError, "Server connection lost. Retrying...")
		case EventAuthExpired:
			emit(f.hooks.Toast, EventAuthExpired, SeverityError, "Session expired. Please log in again.")
			if f.hooks.OnAuthExpired != nil {
				f.hooks.OnAuthExpired()
			}
		default:
			emit(f.hooks.Toast, EventGeneric, SeverityWarning, "Failed to fetch live data.")
		}
		return
	}

	f.mu.Lock()
	f.snapshot = reading
	f.hasSnapshot = true
	f.status = StatusLive
	f.online = true
	f.history.Add(Sample{
		Time:   reading.Timestamp,
		Power:  reading.Power,
		Energy: reading.EnergyKWh,
	})
	f.mu.Unlock()
}

func (f *liveFetcher) fetchHistory(ctx context.Context) {
	readings, err := f.client.History(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		f.logger.Warn("history fetch failed", zap.Error(err))
		// stale-but-present beats empty: keep the previous window
		emit(f.hooks.Toast, Classify(err), SeverityError, "Failed to fetch historical data.")
		return
	}

	window := buffer.New[Sample](historyCapacity)
	for _, r := range readings {
		window.Add(Sample{Time: r.Timestamp, Power: r.Power, Energy: r.EnergyKWh})
	}

	f.mu.Lock()
	f.history = window
	f.mu.Unlock()
}

func (f *liveFetcher) fetchSevenDay(ctx context.Context) {
	summaries, err := f.client.SevenDay(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		f.logger.Warn("7-day history fetch failed", zap.Error(err))
		emit(f.hooks.Toast, Classify(err), SeverityError, "Failed to fetch 7-day historical data.")
		return
	}

	samples := common.Mapper(summaries, func(s models.DailySummary) Sample {
		return Sample{Time: s.Date, Power: s.AvgPower, Energy: s.EnergyKWh}
	})

	f.mu.Lock()
	f.sevenDay = samples
	f.mu.Unlock()
}

func (f *liveFetcher) Snapshot() (models.LiveReading, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.snapshot, f.hasSnapshot
}

func (f *liveFetcher) History() []Sample {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.history.Items()
}

func (f *liveFetcher) SevenDayHistory() []Sample {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]Sample, len(f.sevenDay))
	copy(out, f.sevenDay)
	return out
}

func (f *liveFetcher) Status() Status {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.status
}

func (f *liveFetcher) IsOnline() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.online
}
