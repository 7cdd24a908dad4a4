package config

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/spf13/viper"
)

// Config holds all configuration for fixture-analyst-service
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Sportmonks SportmonksConfig `mapstructure:"sportmonks"`
	Gemini     GeminiConfig     `mapstructure:"gemini"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Kafka      KafkaConfig      `mapstructure:"kafka"`
	Ledger     LedgerConfig     `mapstructure:"ledger"`
	Ranking    RankingConfig    `mapstructure:"ranking"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	CORSOrigins     []string      `mapstructure:"cors_origins"`
}

// SportmonksConfig holds football data API configuration
type SportmonksConfig struct {
	BaseURL      string        `mapstructure:"base_url"`
	APIToken     string        `mapstructure:"api_token"` // from env only
	Timeout      time.Duration `mapstructure:"timeout"`
	Timezone     string        `mapstructure:"timezone"`
	RegionFilter bool          `mapstructure:"region_filter"`
}

// GeminiConfig holds generative model configuration
type GeminiConfig struct {
	BaseURL     string        `mapstructure:"base_url"`
	APIKey      string        `mapstructure:"api_key"` // from env only
	Model       string        `mapstructure:"model"`
	Timeout     time.Duration `mapstructure:"timeout"`
	Temperature float64       `mapstructure:"temperature"`
	SearchTool  bool          `mapstructure:"search_tool"`
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Addr        string        `mapstructure:"addr"`
	Password    string        `mapstructure:"password"`
	DB          int           `mapstructure:"db"`
	FixturesTTL time.Duration `mapstructure:"fixtures_ttl"`
	LiveTTL     time.Duration `mapstructure:"live_ttl"`
	StatsTTL    time.Duration `mapstructure:"stats_ttl"`
}

// KafkaConfig holds Kafka configuration
type KafkaConfig struct {
	Enabled          bool     `mapstructure:"enabled"`
	Brokers          []string `mapstructure:"brokers"`
	SettlementTopic  string   `mapstructure:"settlement_topic"` // consumed
	GroupID          string   `mapstructure:"group_id"`
	BetEventsTopic   string   `mapstructure:"bet_events_topic"` // produced
	PublishBetEvents bool     `mapstructure:"publish_bet_events"`
}

// LedgerConfig holds bet ledger configuration
type LedgerConfig struct {
	SaveDebounce time.Duration `mapstructure:"save_debounce"`
}

// RankingConfig holds fixture ranking configuration
type RankingConfig struct {
	TopN int `mapstructure:"top_n"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json, console
}

// LoadConfig loads configuration from file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 90*time.Second)
	v.SetDefault("server.request_timeout", 75*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.cors_origins", []string{"*"})

	v.SetDefault("sportmonks.base_url", "https://api.sportmonks.com/v3/football")
	v.SetDefault("sportmonks.api_token", "")
	v.SetDefault("sportmonks.timeout", 15*time.Second)
	v.SetDefault("sportmonks.timezone", "Europe/Rome")
	v.SetDefault("sportmonks.region_filter", true)

	v.SetDefault("gemini.base_url", "https://generativelanguage.googleapis.com/v1beta")
	v.SetDefault("gemini.api_key", "")
	v.SetDefault("gemini.model", "gemini-2.5-flash")
	v.SetDefault("gemini.timeout", 60*time.Second)
	v.SetDefault("gemini.temperature", 0.7)
	v.SetDefault("gemini.search_tool", true)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.fixtures_ttl", 10*time.Minute)
	v.SetDefault("redis.live_ttl", 30*time.Second)
	v.SetDefault("redis.stats_ttl", time.Minute)

	v.SetDefault("kafka.enabled", false)
	v.SetDefault("kafka.brokers", []string{"localhost:9092"})
	v.SetDefault("kafka.settlement_topic", "bet_settlements")
	v.SetDefault("kafka.group_id", "fixture-analyst")
	v.SetDefault("kafka.bet_events_topic", "bet_events")
	v.SetDefault("kafka.publish_bet_events", true)

	v.SetDefault("ledger.save_debounce", 800*time.Millisecond)

	v.SetDefault("ranking.top_n", 15)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	// Read config file if provided
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Override with environment variables
	v.SetEnvPrefix("FIXTURE_ANALYST")
	v.AutomaticEnv()
	// Replace . with _ for environment variables
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Unmarshal to struct
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate rejects values the service cannot start with
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d", c.Server.Port)
	}
	if _, err := time.LoadLocation(c.Sportmonks.Timezone); err != nil {
		return fmt.Errorf("invalid sportmonks.timezone %q: %w", c.Sportmonks.Timezone, err)
	}
	if c.Ranking.TopN <= 0 {
		return fmt.Errorf("ranking.top_n must be positive, got %d", c.Ranking.TopN)
	}
	if c.Ledger.SaveDebounce <= 0 {
		return fmt.Errorf("ledger.save_debounce must be positive, got %s", c.Ledger.SaveDebounce)
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka.brokers is required when kafka is enabled")
	}
	return nil
}
