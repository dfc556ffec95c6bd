package energy

import (
	"bufio"
	"encoding/json"
	"io"
	"testing"

	"go.uber.org/mock/gomock"
	"shem.pro/energy-telemetry-service/pkg/db"
	"shem.pro/energy-telemetry-service/pkg/energy/mocks"
)

func GetMockEnergyWithMemorySqliteDialector(t *testing.T, useMockIReading bool) (
	*gomock.Controller,
	*Energy,
	*mocks.MockIReading,
) {
	ctrl := gomock.NewController(t)

	mockIReading := mocks.NewMockIReading(ctrl)
	dialector := db.UseMemorySqliteDialector()
	dbInstance := db.GetInstance(dialector) // ensure migrations
	energyInstance := &Energy{Db: *dbInstance}

	readingService := energyInstance.GetIReading()
	if useMockIReading {
		readingService = mockIReading
	}

	energyInstance.WithServices(ServiceOpts{
		Reading: readingService,
	})

	return ctrl, energyInstance, mockIReading
}

func clearReadings(t *testing.T, e *Energy) {
	t.Helper()
	if err := e.Db.Conn.Exec("DELETE FROM readings").Error; err != nil {
		t.Fatalf("failed to clear readings table: %v", err)
	}
}

func ParseLogs(r io.Reader) []any {
	scanner := bufio.NewScanner(r)
	var logs []any

	for scanner.Scan() {
		line := scanner.Text()
		var j any
		if err := json.Unmarshal([]byte(line), &j); err == nil {
			logs = append(logs, j)
		}
	}
	return logs
}
