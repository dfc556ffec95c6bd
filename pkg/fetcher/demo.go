package fetcher

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"
	"shem.pro/energy-telemetry-service/pkg/buffer"
	"shem.pro/energy-telemetry-service/pkg/common"
	"shem.pro/energy-telemetry-service/pkg/models"
)

// demoFetcher fabricates readings locally so the dashboard works with no
// backend and no hardware. It never reports a disconnection.
type demoFetcher struct {
	cfg    Config
	rng    *rand.Rand
	logger *zap.Logger

	mu          sync.RWMutex
	snapshot    models.LiveReading
	hasSnapshot bool
	status      Status
	history     *buffer.Window[Sample]
	sevenDay    []Sample

	startOnce sync.Once
	stopOnce  sync.Once
	cancel    context.CancelFunc
	done      chan struct{}
}

func newDemoFetcher(cfg Config) *demoFetcher {
	return &demoFetcher{
		cfg:     cfg,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
		logger:  common.GetLoggerWith(common.LoggerNameFetcher, zap.Bool("demo", true)),
		status:  StatusConnecting,
		history: buffer.New[Sample](historyCapacity),
		done:    make(chan struct{}),
	}
}

func (f *demoFetcher) Start(ctx context.Context) {
	f.startOnce.Do(func() {
		runCtx, cancel := context.WithCancel(ctx)
		f.cancel = cancel
		go f.run(runCtx)
	})
}

func (f *demoFetcher) Stop() {
	f.stopOnce.Do(func() {
		// burn startOnce so a Start after Stop cannot spawn a generator
		f.startOnce.Do(func() {})
		if f.cancel == nil {
			return
		}
		f.cancel()
		<-f.done
	})
}

func (f *demoFetcher) run(ctx context.Context) {
	defer close(f.done)

	f.logger.Info("starting demo data generator",
		zap.Duration("interval", f.cfg.DemoInterval))

	ticker := time.NewTicker(f.cfg.DemoInterval)
	defer ticker.Stop()

	f.tick()

	for {
		select {
		case <-ctx.Done():
			f.logger.Info("stopping demo data generator")
			return
		case <-ticker.C:
			f.tick()
		}
	}
}

func (f *demoFetcher) tick() {
	now := time.Now()

	reading := models.LiveReading{
		Power:     common.Round(500+f.rng.Float64()*2000, 1), // 500W to 2500W
		Voltage:   common.Round(220+f.rng.Float64()*20, 1),   // 220V to 240V
		Current:   common.Round(2+f.rng.Float64()*8, 1),      // 2A to 10A
		EnergyKWh: common.Round(f.rng.Float64()*5, 2),        // 0 to 5 kWh
		Timestamp: now,
	}

	sevenDay := make([]Sample, 0, 7)
	for i := 6; i >= 0; i-- {
		sevenDay = append(sevenDay, Sample{
			Time:   now.AddDate(0, 0, -i),
			Power:  common.Round(1000+f.rng.Float64()*1000, 1),
			Energy: common.Round(f.rng.Float64()*20, 2),
		})
	}

	f.mu.Lock()
	f.snapshot = reading
	f.hasSnapshot = true
	f.status = StatusDemoLive
	f.history.Add(Sample{Time: now, Power: reading.Power, Energy: reading.EnergyKWh})
	f.sevenDay = sevenDay
	f.mu.Unlock()
}

func (f *demoFetcher) Snapshot() (models.LiveReading, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.snapshot, f.hasSnapshot
}

func (f *demoFetcher) History() []Sample {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.history.Items()
}

func (f *demoFetcher) SevenDayHistory() []Sample {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]Sample, len(f.sevenDay))
	copy(out, f.sevenDay)
	return out
}

func (f *demoFetcher) Status() Status {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.status
}

// IsOnline always reports true in demo mode.
func (f *demoFetcher) IsOnline() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.status == StatusDemoLive || f.status == StatusConnecting
}
