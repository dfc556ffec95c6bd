package common

const (
	EnvKeyGoEnv string = "GO_ENV"

	EnvKeyRunIntegrationTests string = "RUN_INTEGRATION_TESTS"

	EnvKeySHEMDBType string = "SHEM_DB_TYPE"
	EnvKeySHEMDbPath string = "SHEM_DB_PATH"

	EnvKeySHEMHttpHostPort string = "SHEM_HTTP_HOST_PORT"

	EnvKeySHEMDefaultRate  string = "SHEM_DEFAULT_RATE"
	EnvKeySHEMDefaultBurst string = "SHEM_DEFAULT_BURST"

	LoggerNameEnergyCore    string = "energy_core"
	LoggerNameRestfulServer string = "restful_server"
	LoggerNameSimulator     string = "simulator"
	LoggerNameFetcher       string = "fetcher"

	LoggerFieldEnergyCategory   string = "category"
	LoggerCategoryEnergyReading string = "reading"
	LoggerCategoryEnergyHistory string = "history"
)
