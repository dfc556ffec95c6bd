package simulator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"syscall"
	"time"

	"go.uber.org/zap"
	"shem.pro/energy-telemetry-service/pkg/common"
)

// Config is the simulator process configuration, read from the environment.
type Config struct {
	TargetURL      string        `env:"SIM_TARGET_URL" env-default:"http://localhost:1080/api/esp32data"`
	Interval       time.Duration `env:"SIM_INTERVAL" env-default:"5s"`
	CostPerKWh     float64       `env:"SIM_COST_PER_KWH" env-default:"6.0"`
	RequestTimeout time.Duration `env:"SIM_REQUEST_TIMEOUT" env-default:"4s"`
	Seed           int64         `env:"SIM_SEED" env-default:"0"`
}

// Runner ticks the simulation on a fixed interval and posts each payload to
// the ingestion endpoint. A failed post is dropped; the next tick supersedes
// it. There is no retry and no local queue.
type Runner struct {
	cfg    Config
	client *http.Client
	rng    *rand.Rand
	state  State
	logger *zap.Logger
}

func NewRunner(cfg Config) *Runner {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Runner{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.RequestTimeout},
		rng:    rand.New(rand.NewSource(seed)),
		state:  InitialState(time.Now()),
		logger: common.GetLoggerWith(common.LoggerNameSimulator),
	}
}

// Run ticks immediately, then on every interval, until ctx is cancelled.
func (r *Runner) Run(ctx context.Context) {
	r.logger.Info("starting device simulator",
		zap.String("target", r.cfg.TargetURL),
		zap.Duration("interval", r.cfg.Interval),
	)

	ticker := time.NewTicker(r.cfg.Interval)
	defer ticker.Stop()

	r.tick(ctx)

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("stopping device simulator")
			return
		case <-ticker.C:
			r.tick(ctx)
		}
	}
}

func (r *Runner) tick(ctx context.Context) {
	newState, payload := Tick(r.state, time.Now(), r.rng, r.cfg.CostPerKWh)
	r.state = newState

	if err := r.post(ctx, payload); err != nil {
		if errors.Is(err, syscall.ECONNREFUSED) {
			r.logger.Warn("backend not running, dropping reading",
				zap.String("target", r.cfg.TargetURL))
		} else {
			r.logger.Error("failed to post reading", zap.Error(err))
		}
		return
	}

	r.logger.Info("posted reading",
		zap.Float64("power", payload.Power),
		zap.Float64("energy_kWh", payload.EnergyKWh),
	)
}

func (r *Runner) post(ctx context.Context, payload Payload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.cfg.TargetURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ingestion endpoint returned status %d", resp.StatusCode)
	}
	return nil
}
