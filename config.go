package tcube

import (
	"os"
	"strconv"
	"time"
)

// Поддерживаемые драйверы.
const (
	DriverKinesis   = "kinesis"
	DriverSimulator = "sim"
)

// Config хранит модель конфигурации приложения
type Config struct {
	Driver      string
	SimScenario string
	TypeCode    int

	PollInterval time.Duration
	SettleDelay  time.Duration
	HomeTimeout  time.Duration
	MoveTimeout  time.Duration

	StopOnError bool
	PauseOnExit bool

	LogLevel      string
	LogsDir       string
	LogSavingDays uint
}

// Load загружает конфигурацию из переменных окружения
func Load() *Config {
	return &Config{
		Driver:      getEnv("TCUBE_DRIVER", DriverKinesis),
		SimScenario: getEnv("TCUBE_SIM_SCENARIO", ""),
		TypeCode:    getEnvAsInt("TCUBE_TYPE_CODE", 67),

		PollInterval: getEnvAsMillis("TCUBE_POLL_MS", 200*time.Millisecond),
		SettleDelay:  getEnvAsMillis("TCUBE_SETTLE_MS", 3000*time.Millisecond),
		HomeTimeout:  getEnvAsMillis("TCUBE_HOME_TIMEOUT_MS", 120*time.Second),
		MoveTimeout:  getEnvAsMillis("TCUBE_MOVE_TIMEOUT_MS", 120*time.Second),

		StopOnError: getEnvAsBool("TCUBE_STOP_ON_ERROR", false),
		PauseOnExit: getEnvAsBool("TCUBE_PAUSE_ON_EXIT", true),

		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogsDir:       getEnv("LOGGER_LOGS_DIR", ""),
		LogSavingDays: uint(max(getEnvAsInt("LOGGER_SAVING_DAYS", 7), 0)),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvAsInt(name string, defaultValue int) int {
	valueStr := getEnv(name, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsMillis читает длительность в миллисекундах; 0 допустим, отрицательные значения игнорируются.
func getEnvAsMillis(name string, defaultValue time.Duration) time.Duration {
	ms := getEnvAsInt(name, -1)
	if ms < 0 {
		return defaultValue
	}
	return time.Duration(ms) * time.Millisecond
}

func getEnvAsBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	val, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return val
}
