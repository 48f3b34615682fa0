package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort  string `mapstructure:"APP_PORT"`
	Env      string `mapstructure:"ENV"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	MaxRequestsPerMin int `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration (remote cache backend).
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`

	// Gemini cost oracle.
	GeminiAPIKey string `mapstructure:"GEMINI_API_KEY"`
	GeminiModel  string `mapstructure:"GEMINI_MODEL"`

	// Estimate cache.
	CacheTTLMinutes int `mapstructure:"CACHE_TTL_MINUTES"`
	CacheMaxSize    int `mapstructure:"CACHE_MAX_SIZE"`

	// Oracle rate limiter / circuit breaker.
	OracleMaxConcurrent     int `mapstructure:"ORACLE_MAX_CONCURRENT"`
	OracleMinDelayMs        int `mapstructure:"ORACLE_MIN_DELAY_MS"`
	OracleMaxRetries        int `mapstructure:"ORACLE_MAX_RETRIES"`
	OracleBreakerThreshold  int `mapstructure:"ORACLE_BREAKER_THRESHOLD"`
	OracleBreakerTimeoutSec int `mapstructure:"ORACLE_BREAKER_TIMEOUT_SEC"`

	// Progressive search.
	SearchWorkers       int `mapstructure:"SEARCH_WORKERS"`
	SearchDeadlineSec   int `mapstructure:"SEARCH_DEADLINE_SEC"`
	SearchMaxCandidates int `mapstructure:"SEARCH_MAX_CANDIDATES"`
	SessionTTLMinutes   int `mapstructure:"SESSION_TTL_MINUTES"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("GEMINI_API_KEY", "")
	viper.SetDefault("GEMINI_MODEL", "models/gemini-1.5-pro")
	viper.SetDefault("CACHE_TTL_MINUTES", 360)
	viper.SetDefault("CACHE_MAX_SIZE", 1000)
	viper.SetDefault("ORACLE_MAX_CONCURRENT", 2)
	viper.SetDefault("ORACLE_MIN_DELAY_MS", 500)
	viper.SetDefault("ORACLE_MAX_RETRIES", 3)
	viper.SetDefault("ORACLE_BREAKER_THRESHOLD", 5)
	viper.SetDefault("ORACLE_BREAKER_TIMEOUT_SEC", 60)
	viper.SetDefault("SEARCH_WORKERS", 3)
	viper.SetDefault("SEARCH_DEADLINE_SEC", 75)
	viper.SetDefault("SEARCH_MAX_CANDIDATES", 30)
	viper.SetDefault("SESSION_TTL_MINUTES", 10)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	sanitize(&AppConfig)
}

// sanitize clamps malformed or nonsensical values back to the defaults so a
// bad environment never leaves the service with a zero TTL or an empty pool.
func sanitize(c *Config) {
	if c.CacheTTLMinutes <= 0 {
		c.CacheTTLMinutes = 360
	}
	if c.CacheMaxSize <= 0 {
		c.CacheMaxSize = 1000
	}
	if c.OracleMaxConcurrent <= 0 {
		c.OracleMaxConcurrent = 2
	}
	if c.OracleMinDelayMs < 0 {
		c.OracleMinDelayMs = 500
	}
	if c.OracleMaxRetries < 0 {
		c.OracleMaxRetries = 3
	}
	if c.OracleBreakerThreshold <= 0 {
		c.OracleBreakerThreshold = 5
	}
	if c.OracleBreakerTimeoutSec <= 0 {
		c.OracleBreakerTimeoutSec = 60
	}
	if c.SearchWorkers <= 0 || c.SearchWorkers > 8 {
		c.SearchWorkers = 3
	}
	if c.SearchDeadlineSec <= 0 {
		c.SearchDeadlineSec = 75
	}
	if c.SearchMaxCandidates <= 0 {
		c.SearchMaxCandidates = 30
	}
	if c.SessionTTLMinutes <= 0 {
		c.SessionTTLMinutes = 10
	}
}

// CacheTTL returns the base estimate-cache TTL.
func (c Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLMinutes) * time.Minute
}

// SessionTTL returns the search-session idle TTL.
func (c Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLMinutes) * time.Minute
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
