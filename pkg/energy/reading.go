package energy

import (
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"shem.pro/energy-telemetry-service/pkg/common"
	"shem.pro/energy-telemetry-service/pkg/models"
)

func (e *Energy) insertReading(input *models.Reading) error {
	logger := common.GetLoggerWith(
		common.LoggerNameEnergyCore,
		zap.String(common.LoggerFieldEnergyCategory, common.LoggerCategoryEnergyReading),
	)

	logger.Info("Received reading", zap.Reflect("reading", input))

	// CreatedAt is assigned by the store on create; it is the ordering key.
	if err := e.Db.Conn.Create(input).Error; err != nil {
		return err
	}

	logger.Info("Saved reading", zap.Reflect("reading", input))
	return nil
}

func (e *Energy) latestReading() (*models.Reading, error) {
	var reading models.Reading
	err := e.Db.Conn.
		Order("created_at desc").
		First(&reading).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoReadings
		}
		return nil, err
	}
	return &reading, nil
}

func (e *Energy) readingsSince(since time.Time) ([]models.Reading, error) {
	var readings []models.Reading
	err := e.Db.Conn.
		Where("created_at >= ?", since).
		Order("created_at asc").
		Find(&readings).Error
	return readings, err
}

// dailySummaries aggregates the last `days` days of readings into one point
// per day: mean power, and consumed energy as the spread of the cumulative
// energy counter within the day.
func (e *Energy) dailySummaries(days int) ([]models.DailySummary, error) {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, -(days - 1))

	readings, err := e.readingsSince(start)
	if err != nil {
		return nil, err
	}

	type bucket struct {
		powerSum  float64
		count     int
		minEnergy float64
		maxEnergy float64
	}

	buckets := common.Reducer(readings, func(acc map[string]*bucket, r models.Reading) map[string]*bucket {
		day := r.CreatedAt.Format("2006-01-02")
		b, ok := acc[day]
		if !ok {
			b = &bucket{minEnergy: r.EnergyKWh, maxEnergy: r.EnergyKWh}
			acc[day] = b
		}
		b.powerSum += r.Power
		b.count++
		if r.EnergyKWh < b.minEnergy {
			b.minEnergy = r.EnergyKWh
		}
		if r.EnergyKWh > b.maxEnergy {
			b.maxEnergy = r.EnergyKWh
		}
		return acc
	}, map[string]*bucket{})

	summaries := make([]models.DailySummary, 0, days)
	for i := 0; i < days; i++ {
		day := start.AddDate(0, 0, i)
		summary := models.DailySummary{Date: day}
		if b, ok := buckets[day.Format("2006-01-02")]; ok {
			summary.AvgPower = b.powerSum / float64(b.count)
			summary.EnergyKWh = b.maxEnergy - b.minEnergy
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

type IReadingImpl struct {
	energy *Energy
}

func (ir *IReadingImpl) InsertReading(input *models.Reading) error {
	return ir.energy.insertReading(input)
}

func (ir *IReadingImpl) LatestReading() (*models.Reading, error) {
	return ir.energy.latestReading()
}

func (ir *IReadingImpl) ReadingsSince(since time.Time) ([]models.Reading, error) {
	return ir.energy.readingsSince(since)
}

func (ir *IReadingImpl) DailySummaries(days int) ([]models.DailySummary, error) {
	return ir.energy.dailySummaries(days)
}

func (e *Energy) GetIReading() IReading {
	return &IReadingImpl{energy: e}
}
