package energy

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"shem.pro/energy-telemetry-service/pkg/common"
	"shem.pro/energy-telemetry-service/pkg/models"
	_ "shem.pro/energy-telemetry-service/pkg/testing"
)

func TestInsertAndLatestReading(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, energyObj, _ := GetMockEnergyWithMemorySqliteDialector(t, false)
	defer ctrl.Finish()
	clearReadings(t, energyObj)

	older := &models.Reading{
		Voltage:   228.4,
		Current:   2.1,
		Power:     455.6,
		EnergyKWh: 0.41,
		CostRs:    2.46,
		PF:        0.95,
		Frequency: 50.0,
		CreatedAt: time.Now().Add(-time.Minute),
	}
	newer := &models.Reading{
		Voltage:   230.0,
		Current:   2.5,
		Power:     575.0,
		EnergyKWh: 0.5,
		CostRs:    3.0,
		PF:        0.95,
		Frequency: 50.0,
		CreatedAt: time.Now(),
	}

	require.NoError(t, energyObj.Reading.InsertReading(older))
	require.NoError(t, energyObj.Reading.InsertReading(newer))

	latest, err := energyObj.Reading.LatestReading()
	require.NoError(t, err)
	assert.Equal(t, 230.0, latest.Voltage)
	assert.Equal(t, 0.5, latest.EnergyKWh)
}

func TestInsertReading_Logs(t *testing.T) {
	var buf bytes.Buffer
	common.SetTestCaptureLogger(&buf, zapcore.InfoLevel)

	ctrl, energyObj, _ := GetMockEnergyWithMemorySqliteDialector(t, false)
	defer ctrl.Finish()
	clearReadings(t, energyObj)

	reading := &models.Reading{Voltage: 230.0, Current: 2.0, Power: 437.0}
	require.NoError(t, energyObj.Reading.InsertReading(reading))

	logs := ParseLogs(&buf)
	require.NotEmpty(t, logs)

	var sawSaved bool
	for _, entry := range logs {
		m, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		if m["msg"] == "Saved reading" {
			sawSaved = true
		}
	}
	assert.True(t, sawSaved, "expected a 'Saved reading' log entry")
}

func TestLatestReading_Empty(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, energyObj, _ := GetMockEnergyWithMemorySqliteDialector(t, false)
	defer ctrl.Finish()
	clearReadings(t, energyObj)

	_, err := energyObj.Reading.LatestReading()
	require.ErrorIs(t, err, ErrNoReadings)
}

func TestReadingsSince(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, energyObj, _ := GetMockEnergyWithMemorySqliteDialector(t, false)
	defer ctrl.Finish()
	clearReadings(t, energyObj)

	now := time.Now()
	for i, age := range []time.Duration{2 * time.Hour, 30 * time.Minute, 5 * time.Minute} {
		reading := &models.Reading{
			Voltage:   230.0,
			Current:   2.0,
			Power:     float64(100 * (i + 1)),
			EnergyKWh: float64(i),
			CreatedAt: now.Add(-age),
		}
		require.NoError(t, energyObj.Reading.InsertReading(reading))
	}

	readings, err := energyObj.Reading.ReadingsSince(now.Add(-time.Hour))
	require.NoError(t, err)
	require.Len(t, readings, 2)

	// ascending created_at order
	assert.Equal(t, 200.0, readings[0].Power)
	assert.Equal(t, 300.0, readings[1].Power)
}

func TestDailySummaries(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, energyObj, _ := GetMockEnergyWithMemorySqliteDialector(t, false)
	defer ctrl.Finish()
	clearReadings(t, energyObj)

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 12, 0, 0, 0, now.Location())

	// two readings today: power mean 300, cumulative energy 1.0 -> 1.5
	for _, r := range []models.Reading{
		{Power: 200.0, EnergyKWh: 1.0, CreatedAt: today},
		{Power: 400.0, EnergyKWh: 1.5, CreatedAt: today.Add(time.Hour)},
	} {
		reading := r
		require.NoError(t, energyObj.Reading.InsertReading(&reading))
	}

	summaries, err := energyObj.Reading.DailySummaries(7)
	require.NoError(t, err)
	require.Len(t, summaries, 7)

	last := summaries[6]
	assert.InDelta(t, 300.0, last.AvgPower, 1e-9)
	assert.InDelta(t, 0.5, last.EnergyKWh, 1e-9)

	// days without data stay zeroed
	assert.Zero(t, summaries[0].AvgPower)
	assert.Zero(t, summaries[0].EnergyKWh)
}
