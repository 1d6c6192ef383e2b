package environments

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Gateway   GatewayConfig
	Broadcast BroadcastConfig
	Timezone  TimezoneConfig
	Alert     AlertConfig
	Auth      AuthConfig
	Log       LogConfig
}

type ServerConfig struct {
	Port string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	// ReportTTL is how long the last lock report of a sequence stays cached.
	ReportTTL time.Duration
}

type GatewayConfig struct {
	BaseURL    string
	Timeout    time.Duration
	RetryCount int
}

type BroadcastConfig struct {
	// StopOnDisconnect makes a lock run stop issuing gateway calls once the
	// client request is gone. Off by default: a run always finishes.
	StopOnDisconnect bool
	StepNameLength   int
}

// TimezoneConfig holds the two fixed offsets of the system. Storage is the
// operator's wall clock used in the database, Delivery is what the gateway
// expects in its schedule field.
type TimezoneConfig struct {
	StorageOffset  time.Duration
	DeliveryOffset time.Duration
}

type AlertConfig struct {
	WebhookURL string
	Timeout    time.Duration
}

type AuthConfig struct {
	BroadcastAPIKey string
}

type LogConfig struct {
	Level string
	File  string
}

// Load reads a .env file when present and then the process environment.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Port: GetEnv("SERVER_PORT", "8080"),
		},
		Database: DatabaseConfig{
			Host:     GetEnv("DB_HOST", "localhost"),
			Port:     GetEnv("DB_PORT", "3306"),
			User:     GetEnv("DB_USER", "broadcast"),
			Password: GetEnv("DB_PASSWORD", "broadcast123"),
			DBName:   GetEnv("DB_NAME", "broadcast_hub"),
		},
		Redis: RedisConfig{
			Host:      GetEnv("REDIS_HOST", "localhost"),
			Port:      GetEnv("REDIS_PORT", "6379"),
			Password:  GetEnv("REDIS_PASSWORD", ""),
			DB:        GetEnvAsInt("REDIS_DB", 0),
			ReportTTL: GetEnvAsDuration("REDIS_REPORT_TTL", 7*24*time.Hour),
		},
		Gateway: GatewayConfig{
			BaseURL:    GetEnv("WHACENTER_API_URL", "https://api.whacenter.com"),
			Timeout:    time.Duration(GetEnvAsInt("GATEWAY_TIMEOUT_SECONDS", 30)) * time.Second,
			RetryCount: GetEnvAsInt("GATEWAY_RETRY_COUNT", 0),
		},
		Broadcast: BroadcastConfig{
			StopOnDisconnect: GetEnvAsBool("BROADCAST_STOP_ON_DISCONNECT", false),
			StepNameLength:   GetEnvAsInt("SUMMARY_STEP_NAME_LENGTH", 100),
		},
		Timezone: TimezoneConfig{
			StorageOffset:  GetEnvAsDuration("STORAGE_TZ_OFFSET", 8*time.Hour),
			DeliveryOffset: GetEnvAsDuration("DELIVERY_TZ_OFFSET", 7*time.Hour),
		},
		Alert: AlertConfig{
			WebhookURL: GetEnv("ALERT_WEBHOOK_URL", ""),
			Timeout:    time.Duration(GetEnvAsInt("ALERT_TIMEOUT_SECONDS", 10)) * time.Second,
		},
		Auth: AuthConfig{
			BroadcastAPIKey: GetEnv("BROADCAST_API_KEY", ""),
		},
		Log: LogConfig{
			Level: GetEnv("LOG_LEVEL", "info"),
			File:  GetEnv("LOG_FILE", ""),
		},
	}
}

func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func GetEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func GetEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func GetEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
