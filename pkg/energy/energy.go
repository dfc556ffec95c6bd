package energy

import (
	"time"

	"shem.pro/energy-telemetry-service/pkg/db"
	"shem.pro/energy-telemetry-service/pkg/models"
)

type IReading interface {
	InsertReading(input *models.Reading) error
	LatestReading() (*models.Reading, error)
	ReadingsSince(since time.Time) ([]models.Reading, error)
	DailySummaries(days int) ([]models.DailySummary, error)
}

type Energy struct {
	Db      db.DB
	Reading IReading
}

type ServiceOpts struct {
	Reading IReading
}

func (e *Energy) WithServices(opts ServiceOpts) *Energy {
	if opts.Reading != nil {
		e.Reading = opts.Reading
	}
	return e
}
