package http

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
	"shem.pro/energy-telemetry-service/pkg/energy"
)

type RestfulServer struct {
	Server           *gin.Engine
	Energy           *energy.Energy
	RateLimiterStore *energy.RateLimiterStore
}

func (rs *RestfulServer) GetLimiter(source string) *rate.Limiter {
	if rs.RateLimiterStore == nil {
		return nil
	} else {
		return rs.RateLimiterStore.GetLimiter(source)
	}
}

func (rs *RestfulServer) CheckSourceLimiter(source string) bool {
	limiter := rs.GetLimiter(source)
	if limiter == nil {
		return true
	}
	return limiter.Allow()
}

func (rs *RestfulServer) SetLimiter(source string, sourceRate float64, sourceBurst int) {
	if rs.RateLimiterStore == nil {
		return
	}
	rs.RateLimiterStore.SetLimiter(source, rate.Limit(sourceRate), sourceBurst)
}

func (rs *RestfulServer) Setup() {
	rs.Server.GET("/healthz", rs.HealthCheck)

	api := rs.Server.Group("/api")
	{
		api.POST("/esp32data", rs.ReceiveData)
		api.POST("/energy", rs.ReceiveData) // alias used by older device firmware
		api.GET("/esp32data", rs.GetLatestData)

		data := api.Group("/data")
		{
			data.GET("/live", rs.GetLatestData)
			data.GET("/history", rs.GetHistoryData)
			data.GET("/history/7day", rs.GetSevenDayHistoryData)
		}
	}
}
