package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/ilyakaznacheev/cleanenv"
	"go.uber.org/zap"
	"shem.pro/energy-telemetry-service/pkg/common"
	"shem.pro/energy-telemetry-service/pkg/simulator"
)

func main() {
	var cfg simulator.Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		log.Fatalf("failed to read simulator config: %v", err)
	}

	logger := common.GetLogger()
	logger.Info("device simulator starting",
		zap.String("target", cfg.TargetURL),
		zap.Duration("interval", cfg.Interval),
		zap.Float64("cost_per_kwh", cfg.CostPerKWh),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	simulator.NewRunner(cfg).Run(ctx)

	logger.Info("device simulator stopped")
}
