package config

import (
	"fmt"

	"github.com/joho/godotenv"

	"github.com/steadyapp/steady-backend/pkg/configparser"
)

// Config contains all configuration variables of the application
type (
	Config struct {
		Server ServerConfig
		Engine EngineConfig
		Data   DataConfig
	}

	ServerConfig struct {
		Port     string `env:"SERVER_PORT" envDefault:"3000"`
		LogLevel string `env:"SERVER_LOGLEVEL" envDefault:"DEBUG"`
	}

	// EngineConfig carries the steadiness engine calibration. Defaults match
	// the production tuning for rideshare economics.
	EngineConfig struct {
		City                   string  `env:"ENGINE_CITY" envDefault:"Sydney"`
		CVScalingFactor        float64 `env:"ENGINE_CVSCALINGFACTOR" envDefault:"2.5"`
		MaxCVForScoring        float64 `env:"ENGINE_MAXCVFORSCORING" envDefault:"40"`
		MinSessionsForAnalysis int     `env:"ENGINE_MINSESSIONS" envDefault:"4"`
		RollingWindowWeeks     int     `env:"ENGINE_ROLLINGWINDOWWEEKS" envDefault:"4"`
		LookbackDays           int     `env:"ENGINE_LOOKBACKDAYS" envDefault:"90"`
		DefaultTrendWeeks      int     `env:"ENGINE_DEFAULTTRENDWEEKS" envDefault:"12"`
	}

	// DataConfig points at the session history file the ingestion adapter
	// loads at startup. An empty path starts the service with no history.
	DataConfig struct {
		SessionsFile string `env:"DATA_SESSIONSFILE" envDefault:""`
	}
)

func NewConfig(filepath string) (*Config, error) {
	cfg := &Config{}

	// Local overrides, if present. Missing .env is fine.
	_ = godotenv.Load()

	// Loading environment variables and parsing into the config struct.
	if err := configparser.LoadAndParseYaml(filepath, cfg); err != nil {
		return nil, fmt.Errorf("failed to load and parse config: %w", err)
	}

	return cfg, nil
}

// PrintConfig dumps the effective configuration to stdout.
func PrintConfig(cfg *Config) {
	fmt.Printf("server:  port=%s log=%s\n", cfg.Server.Port, cfg.Server.LogLevel)
	fmt.Printf("engine:  city=%s cv_max=%.1f scale=%.2f min_sessions=%d window=%dw lookback=%dd trend=%dw\n",
		cfg.Engine.City,
		cfg.Engine.MaxCVForScoring,
		cfg.Engine.CVScalingFactor,
		cfg.Engine.MinSessionsForAnalysis,
		cfg.Engine.RollingWindowWeeks,
		cfg.Engine.LookbackDays,
		cfg.Engine.DefaultTrendWeeks,
	)
	fmt.Printf("data:    sessions_file=%s\n", cfg.Data.SessionsFile)
}
