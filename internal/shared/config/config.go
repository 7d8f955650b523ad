package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for our application
type Config struct {
	// Server configuration
	Port           string
	GinMode        string
	APIVersion     string
	APIPrefix      string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxHeaderBytes int

	// Database configuration
	Database DatabaseConfig

	// Redis configuration
	Redis RedisConfig

	// Kafka configuration
	Kafka KafkaConfig

	// Payment provider configuration
	Payment PaymentConfig

	// Operator channel configuration
	Operator OperatorConfig

	// Buyout offer configuration
	Offers OfferConfig

	// Sweeper configuration
	Sweeper SweeperConfig

	// Logging
	LogLevel string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	DSN      string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Addr     string

	// TTL for the public grid occupancy snapshot
	GridSnapshotTTL time.Duration
}

// KafkaConfig holds Kafka notification bus configuration
type KafkaConfig struct {
	Enabled           bool
	Brokers           []string
	NotificationTopic string
}

// PaymentConfig holds the external checkout provider configuration
type PaymentConfig struct {
	ProviderURL string
	APIKey      string
	SuccessURL  string
	CancelURL   string
	Timeout     time.Duration
}

// OperatorConfig holds the operator channel shared-secret configuration.
// SecretHash is a bcrypt hash of the shared secret, never the secret itself.
type OperatorConfig struct {
	SecretHash string
}

// OfferConfig holds buyout offer tuning
type OfferConfig struct {
	TTL            time.Duration
	MinAmountCents int64
	TokenSecret    string
}

// SweeperConfig holds expiration sweeper tuning
type SweeperConfig struct {
	SweepInterval    time.Duration
	ReminderInterval time.Duration
	ReminderWindow   time.Duration
}

// Load loads configuration from environment variables
func Load() *Config {
	cfg := &Config{
		// Server configuration
		Port:           getEnv("PORT", "8080"),
		GinMode:        getEnv("GIN_MODE", "debug"),
		APIVersion:     getEnv("API_VERSION", "v1"),
		APIPrefix:      getEnv("API_PREFIX", "/api"),
		ReadTimeout:    getDurationEnv("READ_TIMEOUT", 15*time.Second),
		WriteTimeout:   getDurationEnv("WRITE_TIMEOUT", 15*time.Second),
		IdleTimeout:    getDurationEnv("IDLE_TIMEOUT", 60*time.Second),
		MaxHeaderBytes: getIntEnv("MAX_HEADER_BYTES", 1<<20), // 1 MB

		// Database configuration
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     getEnv("DB_NAME", "gridspot_db"),
			User:     getEnv("DB_USER", "gridspot_user"),
			Password: getEnv("DB_PASSWORD", "gridspot_password"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},

		// Redis configuration
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),

			GridSnapshotTTL: getDurationEnv("REDIS_GRID_SNAPSHOT_TTL", 30*time.Second),
		},

		// Kafka configuration
		Kafka: KafkaConfig{
			Enabled:           getBoolEnv("KAFKA_ENABLED", false),
			Brokers:           getStringSliceEnv("KAFKA_BROKERS", []string{"localhost:9092"}),
			NotificationTopic: getEnv("KAFKA_NOTIFICATION_TOPIC", "notifications"),
		},

		// Payment provider configuration
		Payment: PaymentConfig{
			ProviderURL: getEnv("PAYMENT_PROVIDER_URL", "http://localhost:9090"),
			APIKey:      getEnv("PAYMENT_API_KEY", ""),
			SuccessURL:  getEnv("PAYMENT_SUCCESS_URL", "http://localhost:3000/checkout/success"),
			CancelURL:   getEnv("PAYMENT_CANCEL_URL", "http://localhost:3000/checkout/cancel"),
			Timeout:     getDurationEnv("PAYMENT_TIMEOUT", 10*time.Second),
		},

		// Operator channel configuration
		Operator: OperatorConfig{
			SecretHash: getEnv("OPERATOR_SECRET_HASH", ""),
		},

		// Buyout offer configuration
		Offers: OfferConfig{
			TTL:            getDurationEnv("OFFER_TTL", 72*time.Hour),
			MinAmountCents: getInt64Env("OFFER_MIN_AMOUNT_CENTS", 100),
			TokenSecret:    getEnv("OFFER_TOKEN_SECRET", "change-me-offer-token-secret"),
		},

		// Sweeper configuration
		Sweeper: SweeperConfig{
			SweepInterval:    getDurationEnv("SWEEP_INTERVAL", 2*time.Minute),
			ReminderInterval: getDurationEnv("REMINDER_INTERVAL", 15*time.Minute),
			ReminderWindow:   getDurationEnv("REMINDER_WINDOW", 72*time.Hour),
		},

		// Logging
		LogLevel: getEnv("LOG_LEVEL", "debug"),
	}

	// Build composite values
	cfg.Database.DSN = buildDatabaseDSN(cfg.Database)
	cfg.Redis.Addr = cfg.Redis.Host + ":" + cfg.Redis.Port

	return cfg
}

// buildDatabaseDSN builds the database connection string
func buildDatabaseDSN(db DatabaseConfig) string {
	return "host=" + db.Host +
		" port=" + db.Port +
		" user=" + db.User +
		" password=" + db.Password +
		" dbname=" + db.Name +
		" sslmode=" + db.SSLMode
}

// getEnv gets an environment variable with a fallback value
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getIntEnv gets an integer environment variable with a fallback value
func getIntEnv(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return fallback
}

// getInt64Env gets an int64 environment variable with a fallback value
func getInt64Env(key string, fallback int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return fallback
}

// getDurationEnv gets a duration environment variable with a fallback value
func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return fallback
}

// getBoolEnv gets a boolean environment variable with a fallback value
func getBoolEnv(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return fallback
}

// getStringSliceEnv gets a comma-separated string environment variable as a slice
func getStringSliceEnv(key string, fallback []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		var result []string
		for _, part := range parts {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.GinMode == "release"
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.GinMode == "debug"
}

// GetServerAddress returns the full server address
func (c *Config) GetServerAddress() string {
	return ":" + c.Port
}

// GetAPIBasePath returns the API base path
func (c *Config) GetAPIBasePath() string {
	return c.APIPrefix + "/" + c.APIVersion
}
