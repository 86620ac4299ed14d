package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string        `mapstructure:"APP_PORT"`
	DatabaseURL       string        `mapstructure:"DATABASE_URL"`
	DatabaseName      string        `mapstructure:"DATABASE_NAME"`
	Env               string        `mapstructure:"ENV"`
	LogLevel          string        `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int           `mapstructure:"MAX_REQUESTS_PER_MIN"`
	CORSOrigins       []string      `mapstructure:"CORS_ORIGINS"`
	ShutdownTimeout   time.Duration `mapstructure:"SHUTDOWN_TIMEOUT"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`

	// Member report cache.
	ReportCacheEnabled bool          `mapstructure:"REPORT_CACHE_ENABLED"`
	ReportCacheTTL     time.Duration `mapstructure:"REPORT_CACHE_TTL"`

	// Monthly booking quota per plan name (Monthly, Quarterly, Annual).
	PlanQuotas map[string]int `mapstructure:"PLAN_QUOTAS"`
}

var AppConfig Config

// DefaultPlanQuotas is the quota table used when none is configured.
func DefaultPlanQuotas() map[string]int {
	return map[string]int{
		"Monthly":   12,
		"Quarterly": 20,
		"Annual":    30,
	}
}

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 60)
	viper.SetDefault("CORS_ORIGINS", []string{"*"})
	viper.SetDefault("SHUTDOWN_TIMEOUT", 5*time.Second)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "gymflow")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_QUEUE_DB", 1)
	viper.SetDefault("REPORT_CACHE_ENABLED", true)
	viper.SetDefault("REPORT_CACHE_TTL", 10*time.Minute)
	viper.SetDefault("PLAN_QUOTAS", DefaultPlanQuotas())

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if len(AppConfig.PlanQuotas) == 0 {
		AppConfig.PlanQuotas = DefaultPlanQuotas()
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
