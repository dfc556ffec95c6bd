package models

import "time"

const (
	DefaultPowerFactor = 0.95
	DefaultFrequency   = 50.0
)

// Reading is one persisted set of electrical measurements from the sensor
// node. CreatedAt is server-assigned and is the authoritative ordering key.
type Reading struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Voltage   float64   `json:"voltage"`
	Current   float64   `json:"current"`
	Power     float64   `json:"power"`
	EnergyKWh float64   `gorm:"column:energy_kwh" json:"energy_kwh"`
	CostRs    float64   `gorm:"column:cost_rs" json:"cost_rs"`
	PF        float64   `gorm:"column:pf" json:"pf"`
	Frequency float64   `json:"frequency"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

// LiveReading is the client-facing reshape of a Reading. Storage and client
// field naming are versioned independently; this struct is the single
// translation point between the two (energy_kwh -> energy_kWh, created_at ->
// timestamp). Keep it in sync with whichever side changes.
type LiveReading struct {
	Voltage   float64   `json:"voltage"`
	Current   float64   `json:"current"`
	Power     float64   `json:"power"`
	EnergyKWh float64   `json:"energy_kWh"`
	CostRs    float64   `json:"cost_rs"`
	PF        float64   `json:"pf"`
	Frequency float64   `json:"frequency"`
	Timestamp time.Time `json:"timestamp"`
}

// ToLive reshapes a stored Reading into the client view model.
func (r *Reading) ToLive() LiveReading {
	return LiveReading{
		Voltage:   r.Voltage,
		Current:   r.Current,
		Power:     r.Power,
		EnergyKWh: r.EnergyKWh,
		CostRs:    r.CostRs,
		PF:        r.PF,
		Frequency: r.Frequency,
		Timestamp: r.CreatedAt,
	}
}

// DailySummary is one aggregated point of the 7-day history view.
type DailySummary struct {
	Date      time.Time `json:"date"`
	AvgPower  float64   `json:"power"`
	EnergyKWh float64   `json:"energy_kWh"`
}
