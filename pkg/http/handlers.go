package http

import (
	"errors"
	"net/http"
	"time"

	"shem.pro/energy-telemetry-service/pkg/common"
	"shem.pro/energy-telemetry-service/pkg/energy"
	"shem.pro/energy-telemetry-service/pkg/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	z "github.com/Oudwins/zog"
)

const historyWindow = time.Hour

type ReadingRequest struct {
	Voltage   *float64 `json:"voltage"`
	Current   *float64 `json:"current"`
	Power     *float64 `json:"power"`
	EnergyKWh *float64 `json:"energy_kWh"`
	CostRs    *float64 `json:"cost_rs"`
	PF        *float64 `json:"pf"`
	Frequency *float64 `json:"frequency"`
}

// Required fields are pointer-not-nil so a legitimate zero passes while a
// missing key is rejected. pf and frequency are optional and defaulted.
var readingRequestSchema = z.Struct(z.Shape{
	"Voltage":   z.Ptr(z.Float64()).NotNil(z.Message("voltage is required")),
	"Current":   z.Ptr(z.Float64()).NotNil(z.Message("current is required")),
	"Power":     z.Ptr(z.Float64()).NotNil(z.Message("power is required")),
	"EnergyKWh": z.Ptr(z.Float64()).NotNil(z.Message("energy_kWh is required")),
	"CostRs":    z.Ptr(z.Float64()).NotNil(z.Message("cost_rs is required")),
	"PF":        z.Ptr(z.Float64()),
	"Frequency": z.Ptr(z.Float64()),
})

// defaultIfUnset keeps the device firmware's convention: a missing or zero
// value means "not measured" and takes the default. A genuine zero pf is
// therefore indistinguishable from an absent one.
func defaultIfUnset(v *float64, def float64) float64 {
	if v == nil || *v == 0 {
		return def
	}
	return *v
}

func (rs *RestfulServer) ReceiveData(c *gin.Context) {
	if !rs.CheckSourceLimiter(c.ClientIP()) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	var req ReadingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid JSON payload"})
		return
	}

	if err := readingRequestSchema.Validate(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "All primary sensor data fields are required",
			"errors":  err,
		})
		return
	}

	reading := models.Reading{
		Voltage:   *req.Voltage,
		Current:   *req.Current,
		Power:     *req.Power,
		EnergyKWh: *req.EnergyKWh,
		CostRs:    *req.CostRs,
		PF:        defaultIfUnset(req.PF, models.DefaultPowerFactor),
		Frequency: defaultIfUnset(req.Frequency, models.DefaultFrequency),
	}

	if err := rs.Energy.Reading.InsertReading(&reading); err != nil {
		common.GetLoggerWith(common.LoggerNameRestfulServer).
			Error("Failed to save reading", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error saving reading"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Data received and saved successfully"})
}

func (rs *RestfulServer) GetLatestData(c *gin.Context) {
	reading, err := rs.Energy.Reading.LatestReading()
	if err != nil {
		if errors.Is(err, energy.ErrNoReadings) {
			c.JSON(http.StatusNotFound, gin.H{"message": "No sensor data found"})
			return
		}
		common.GetLoggerWith(common.LoggerNameRestfulServer).
			Error("Failed to fetch latest reading", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching data"})
		return
	}

	c.JSON(http.StatusOK, reading.ToLive())
}

func (rs *RestfulServer) GetHistoryData(c *gin.Context) {
	readings, err := rs.Energy.Reading.ReadingsSince(time.Now().Add(-historyWindow))
	if err != nil {
		common.GetLoggerWith(common.LoggerNameRestfulServer).
			Error("Failed to fetch history", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching data"})
		return
	}

	c.JSON(http.StatusOK, common.Mapper(readings, func(r models.Reading) models.LiveReading {
		return r.ToLive()
	}))
}

func (rs *RestfulServer) GetSevenDayHistoryData(c *gin.Context) {
	summaries, err := rs.Energy.Reading.DailySummaries(7)
	if err != nil {
		common.GetLoggerWith(common.LoggerNameRestfulServer).
			Error("Failed to fetch 7-day history", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching data"})
		return
	}

	c.JSON(http.StatusOK, summaries)
}

func (rs *RestfulServer) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
