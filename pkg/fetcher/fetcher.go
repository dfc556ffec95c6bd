package fetcher

import (
	"context"
	"time"

	"github.com/google/uuid"
	"shem.pro/energy-telemetry-service/pkg/models"
)

// ConnectionStatus of the live view, driven exclusively by poll outcomes.
type Status string

const (
	StatusConnecting   Status = "Connecting"
	StatusLive         Status = "Live"
	StatusDisconnected Status = "Disconnected"
	StatusDemoLive     Status = "Demo Live"
)

// Sample is one point of the rolling short-term history chart.
type Sample struct {
	Time   time.Time `json:"time"`
	Power  float64   `json:"power"`
	Energy float64   `json:"energy"`
}

// historyCapacity bounds the short-term live chart window.
const historyCapacity = 30

type EventKind string

const (
	EventNetwork     EventKind = "network"
	EventAuthExpired EventKind = "auth_expired"
	EventGeneric     EventKind = "generic"
)

type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Event is a classified fetch-failure notice. The fetcher only emits; the
// consumer decides presentation.
type Event struct {
	ID       string    `json:"id"`
	Kind     EventKind `json:"kind"`
	Severity Severity  `json:"severity"`
	Message  string    `json:"message"`
	Time     time.Time `json:"time"`
}

// Sink receives fetcher events. Center and Toast are independent sinks:
// repeated network failures go to the persistent center so they do not flood
// transient popups.
type Sink interface {
	Post(event Event)
}

// Hooks are the consumer-supplied boundaries of the fetcher. All fields are
// optional; nil hooks are no-ops.
type Hooks struct {
	Center        Sink   // persistent notification center
	Toast         Sink   // transient popups
	OnAuthExpired func() // login boundary redirect
}

// Config for the data fetcher, read from the environment. The interval
// defaults keep the 1:20:1200 live/history/7-day ratio.
type Config struct {
	BaseURL          string        `env:"SHEM_API_BASE_URL" env-default:"http://localhost:1080/api"`
	AuthToken        string        `env:"SHEM_AUTH_TOKEN"`
	DemoMode         bool          `env:"SHEM_DEMO_MODE" env-default:"false"`
	LiveInterval     time.Duration `env:"SHEM_LIVE_INTERVAL" env-default:"3s"`
	HistoryInterval  time.Duration `env:"SHEM_HISTORY_INTERVAL" env-default:"60s"`
	SevenDayInterval time.Duration `env:"SHEM_SEVEN_DAY_INTERVAL" env-default:"1h"`
	DemoInterval     time.Duration `env:"SHEM_DEMO_INTERVAL" env-default:"1s"`
	RequestTimeout   time.Duration `env:"SHEM_REQUEST_TIMEOUT" env-default:"10s"`
}

// Fetcher keeps a live view of the energy data fresh. Implementations own
// their snapshot, history window and connection status; all accessors are
// safe for concurrent use while the fetcher polls.
type Fetcher interface {
	Start(ctx context.Context)
	Stop()
	Snapshot() (models.LiveReading, bool)
	History() []Sample
	SevenDayHistory() []Sample
	Status() Status
	IsOnline() bool
}

// New returns the polling strategy for the session. The demo flag is read
// once here: a demo session never switches to real polling and a real
// session never falls back to demo data.
func New(cfg Config, hooks Hooks) Fetcher {
	if cfg.DemoMode {
		return newDemoFetcher(cfg)
	}
	return newLiveFetcher(cfg, hooks)
}

func emit(sink Sink, kind EventKind, severity Severity, message string) {
	if sink == nil {
		return
	}
	sink.Post(Event{
		ID:       uuid.NewString(),
		Kind:     kind,
		Severity: severity,
		Message:  message,
		Time:     time.Now(),
	})
}
