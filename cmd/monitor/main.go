package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"go.uber.org/zap"
	"shem.pro/energy-telemetry-service/pkg/common"
	"shem.pro/energy-telemetry-service/pkg/fetcher"
)

// zapSink routes fetcher events to the log. A real dashboard would render
// the center sink as a notification list and the toast sink as popups.
type zapSink struct {
	logger *zap.Logger
	target string
}

func (s *zapSink) Post(event fetcher.Event) {
	s.logger.Warn("notification",
		zap.String("target", s.target),
		zap.String("id", event.ID),
		zap.String("kind", string(event.Kind)),
		zap.String("severity", string(event.Severity)),
		zap.String("message", event.Message),
	)
}

func main() {
	var cfg fetcher.Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		log.Fatalf("failed to read monitor config: %v", err)
	}

	logger := common.GetLoggerWith(common.LoggerNameFetcher)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	f := fetcher.New(cfg, fetcher.Hooks{
		Center: &zapSink{logger: logger, target: "center"},
		Toast:  &zapSink{logger: logger, target: "toast"},
		OnAuthExpired: func() {
			logger.Error("session expired, re-login required")
			stop()
		},
	})

	f.Start(ctx)
	defer f.Stop()

	printTicker := time.NewTicker(cfg.LiveInterval)
	defer printTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("monitor stopped")
			return
		case <-printTicker.C:
			snapshot, ok := f.Snapshot()
			if !ok {
				logger.Info("waiting for first reading",
					zap.String("status", string(f.Status())))
				continue
			}
			logger.Info("live reading",
				zap.String("status", string(f.Status())),
				zap.Bool("online", f.IsOnline()),
				zap.Float64("power_w", snapshot.Power),
				zap.Float64("voltage_v", snapshot.Voltage),
				zap.Float64("current_a", snapshot.Current),
				zap.Float64("energy_kwh", snapshot.EnergyKWh),
				zap.Int("history_samples", len(f.History())),
			)
		}
	}
}
