package simulator

import (
	"math"
	"math/rand"
	"time"

	"shem.pro/energy-telemetry-service/pkg/common"
)

const (
	assumedPowerFactor    = 0.95 // fixed PF of the simulated load
	applianceSwitchChance = 0.10 // per-tick chance of an appliance toggling

	voltageMin, voltageMax = 220.0, 240.0
	voltageSpan            = 5.0
	currentMin, currentMax = 0.5, 5.0
	currentSpan            = 0.3
)

// State is the running condition of the simulated sensor node. It is passed
// in and returned explicitly; Tick never mutates shared state.
type State struct {
	Voltage    float64
	Current    float64
	Power      float64
	EnergyKWh  float64
	CostRs     float64
	LastUpdate time.Time
}

// Payload is one reading as the device firmware reports it over HTTP.
type Payload struct {
	Voltage   float64 `json:"voltage"`
	Current   float64 `json:"current"`
	Power     float64 `json:"power"`
	EnergyKWh float64 `json:"energy_kWh"`
	CostRs    float64 `json:"cost_rs"`
	PF        float64 `json:"pf"`
	Frequency float64 `json:"frequency"`
}

// InitialState returns a plausible idle-household starting point.
func InitialState(now time.Time) State {
	return State{
		Voltage:    230.0,
		Current:    2.5,
		Power:      575.0,
		EnergyKWh:  0.5,
		CostRs:     3.0,
		LastUpdate: now,
	}
}

func fluctuate(rng *rand.Rand, value, min, max, span float64) float64 {
	change := (rng.Float64() - 0.5) * span
	return math.Max(min, math.Min(max, value+change))
}

// Tick advances the simulation to `now` and returns the new state together
// with the payload to report. Voltage and current random-walk within their
// physical bands, with a small chance of a current jump simulating an
// appliance switching on or off. Energy accumulates by power/1000 times the
// elapsed hours since the previous tick. PF and frequency are resampled
// independently each tick; they are reported telemetry only and do not feed
// the power or energy derivation.
func Tick(s State, now time.Time, rng *rand.Rand, costPerKWh float64) (State, Payload) {
	elapsedHours := now.Sub(s.LastUpdate).Hours()

	s.Voltage = fluctuate(rng, s.Voltage, voltageMin, voltageMax, voltageSpan)

	if rng.Float64() < applianceSwitchChance {
		s.Current = 1 + rng.Float64()*4
	} else {
		s.Current = fluctuate(rng, s.Current, currentMin, currentMax, currentSpan)
	}

	s.Power = s.Voltage * s.Current * assumedPowerFactor
	s.EnergyKWh += (s.Power / 1000) * elapsedHours
	s.CostRs = s.EnergyKWh * costPerKWh
	s.LastUpdate = now

	payload := Payload{
		Voltage:   common.Round(s.Voltage, 2),
		Current:   common.Round(s.Current, 3),
		Power:     common.Round(s.Power, 1),
		EnergyKWh: common.Round(s.EnergyKWh, 4),
		CostRs:    common.Round(s.CostRs, 2),
		PF:        common.Round(0.90+rng.Float64()*0.09, 2),
		Frequency: common.Round(49.8+rng.Float64()*0.4, 2),
	}

	return s, payload
}
