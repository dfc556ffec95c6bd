package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"shem.pro/energy-telemetry-service/pkg/common"
	"shem.pro/energy-telemetry-service/pkg/db"
	"shem.pro/energy-telemetry-service/pkg/energy"
	shemHttp "shem.pro/energy-telemetry-service/pkg/http"
)

func main() {
	var err error

	err = godotenv.Load()
	if err != nil {
		log.Fatal("Error loading .env file, copy .env.example to .env first if in development")
	}

	var dbInstance *db.DB
	shemDbType := os.Getenv(common.EnvKeySHEMDBType)
	switch shemDbType {
	case "file":
		dbInstance = db.GetInstance(db.UseSqliteDialector())
	case "memory":
		dbInstance = db.GetInstance(db.UseMemorySqliteDialector())
	default:
		log.Fatal("Unknown SHEM_DB_TYPE: " + shemDbType)
	}

	httpHostPort := strings.TrimSpace(os.Getenv(common.EnvKeySHEMHttpHostPort))

	var defaultRate float64
	var defaultBurst int64

	if defaultRate, err = strconv.ParseFloat(os.Getenv(common.EnvKeySHEMDefaultRate), 64); err != nil {
		log.Fatal("Invalid SHEM_DEFAULT_RATE, or not set in .env, should be a float64 value")
	}

	if defaultBurst, err = strconv.ParseInt(os.Getenv(common.EnvKeySHEMDefaultBurst), 10, 64); err != nil {
		log.Fatal("Invalid SHEM_DEFAULT_BURST, or not set in .env, should be an int value")
	}

	logger := common.GetLogger()

	energyCore := energy.Energy{
		Db: *dbInstance,
	}
	energyCore.WithServices(energy.ServiceOpts{
		Reading: energyCore.GetIReading(),
	})

	if httpHostPort == "" {
		// fallback to default http port
		httpHostPort = ":1080"
	}

	logger.Info("Starting HTTP server on port " + httpHostPort)
	rs := &shemHttp.RestfulServer{
		Server:           gin.Default(),
		Energy:           &energyCore,
		RateLimiterStore: energy.NewRateLimiterStore(rate.Limit(defaultRate), int(defaultBurst)),
	}
	rs.Setup()

	logger.Info("http server created with:",
		zap.String("default_limiter",
			fmt.Sprintf("{\"default_rate\": %v, \"default_burst\": %v}", defaultRate, defaultBurst)))

	logger.Info("Starting HTTP server on: " + httpHostPort)
	if err := rs.Server.Run(httpHostPort); err != nil {
		log.Fatalf("http server failed to serve: %v", err)
	}
}
