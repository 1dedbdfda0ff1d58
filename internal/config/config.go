// Package config assembles the typed application configuration from
// defaults, an optional TOML file, a .env file and the environment.
package config

import (
	"time"

	"github.com/lillianfidler/churchill-falls-assistant/internal/core/domain"
)

// Config is the root configuration.
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Documents DocumentsConfig `toml:"documents"`
	LLM       LLMConfig       `toml:"llm"`
	Voice     VoiceConfig     `toml:"voice"`
	Cache     CacheConfig     `toml:"cache"`
	Logging   LoggingConfig   `toml:"logging"`

	// Path is the TOML file the configuration was read from.
	Path string `toml:"-"`
}

// ServerConfig configures the HTTP API and the MCP endpoint.
type ServerConfig struct {
	Port              int           `toml:"port" validate:"min=1,max=65535"`
	MCPPort           int           `toml:"mcp_port" validate:"min=0,max=65535"`
	AllowedOrigins    []string      `toml:"allowed_origins" validate:"dive,required"`
	RateLimitRPS      float64       `toml:"rate_limit_rps" validate:"gte=0"`
	RateLimitBurst    int           `toml:"rate_limit_burst" validate:"gte=0"`
	ReadHeaderTimeout time.Duration `toml:"read_header_timeout" validate:"gt=0"`
	ShutdownTimeout   time.Duration `toml:"shutdown_timeout" validate:"gt=0"`
}

// DocumentsConfig names the corpus and where it lives.
type DocumentsConfig struct {
	Dir        string   `toml:"dir" validate:"required"`
	Resident   []string `toml:"resident" validate:"min=1,dive,required"`
	Searchable []string `toml:"searchable" validate:"dive,required"`
	Watch      bool     `toml:"watch"`
}

// Catalog returns the configured partitions.
func (d DocumentsConfig) Catalog() domain.Catalog {
	return domain.Catalog{Resident: d.Resident, Searchable: d.Searchable}
}

// LLMConfig configures the model and the chat turn.
type LLMConfig struct {
	APIKey         string        `toml:"api_key"`
	Model          string        `toml:"model" validate:"required"`
	BaseURL        string        `toml:"base_url" validate:"required,url"`
	Timeout        time.Duration `toml:"timeout" validate:"gt=0"`
	MaxToolRounds  int           `toml:"max_tool_rounds" validate:"min=1,max=20"`
	FallbackMarker string        `toml:"fallback_marker"`
	DefaultMode    string        `toml:"default_mode" validate:"oneof=voice voice-research text research"`
	PromptDir      string        `toml:"prompt_dir"`
}

// VoiceConfig configures speech synthesis and its budget.
type VoiceConfig struct {
	APIKey          string        `toml:"api_key"`
	VoiceID         string        `toml:"voice_id"`
	BaseURL         string        `toml:"base_url" validate:"required,url"`
	ModelID         string        `toml:"model_id" validate:"required"`
	Stability       float64       `toml:"stability" validate:"gte=0,lte=1"`
	SimilarityBoost float64       `toml:"similarity_boost" validate:"gte=0,lte=1"`
	Timeout         time.Duration `toml:"timeout" validate:"gt=0"`
	MonthlyBudget   int           `toml:"monthly_budget" validate:"gt=0"`
	MaxChars        int           `toml:"max_chars" validate:"gt=3"`
	UsageDB         string        `toml:"usage_db"`
}

// Enabled reports whether speech credentials are present.
func (v VoiceConfig) Enabled() bool {
	return v.APIKey != "" && v.VoiceID != ""
}

// CacheConfig configures the first-turn response cache.
type CacheConfig struct {
	Enabled bool          `toml:"enabled"`
	TTL     time.Duration `toml:"ttl" validate:"gt=0"`
	Cleanup time.Duration `toml:"cleanup" validate:"gt=0"`
}

// LoggingConfig configures the logger.
type LoggingConfig struct {
	Verbose bool   `toml:"verbose"`
	JSON    bool   `toml:"json"`
	File    string `toml:"file"`
}
