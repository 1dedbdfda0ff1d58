package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/lillianfidler/churchill-falls-assistant/internal/adapters/driven/config/file"
	"github.com/lillianfidler/churchill-falls-assistant/internal/core/domain"
	"github.com/lillianfidler/churchill-falls-assistant/internal/core/ports/driven"
	"github.com/lillianfidler/churchill-falls-assistant/internal/logger"
)

// Environment variables that override the file.
const (
	EnvAnthropicKey    = "ANTHROPIC_API_KEY"
	EnvAnthropicModel  = "ANTHROPIC_MODEL"
	EnvElevenLabsKey   = "ELEVENLABS_API_KEY"
	EnvElevenLabsVoice = "ELEVENLABS_VOICE_ID"
	EnvPort            = "PORT"
	EnvContentDir      = "CONTENT_DIR"
)

// Load builds the configuration in order: defaults, the TOML file at path
// (./config.toml when empty, optional), variables from envFile (optional,
// never overriding the real environment), then the environment. The result
// is validated; failures wrap domain.ErrMisconfigured.
func Load(path, envFile string) (*Config, error) {
	if err := loadDotEnv(envFile); err != nil {
		return nil, err
	}

	store, err := file.NewConfigStore(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", domain.ErrMisconfigured, path, err)
	}

	cfg := Default()
	cfg.Path = store.Path()
	if err := cfg.Apply(store); err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadDotEnv(envFile string) error {
	if envFile == "" {
		envFile = ".env"
	}
	err := godotenv.Load(envFile)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("%w: loading %s: %v", domain.ErrMisconfigured, envFile, err)
}

// Apply copies every key present in store onto the configuration. Keys it
// does not recognise are logged and otherwise ignored.
func (c *Config) Apply(store driven.ConfigStore) error {
	var errs []error
	known := make(map[string]bool)
	has := func(key string) bool {
		known[key] = true
		_, ok := store.Get(key)
		return ok
	}
	str := func(key string, dst *string) {
		if has(key) {
			*dst = store.GetString(key)
		}
	}
	num := func(key string, dst *int) {
		if has(key) {
			*dst = store.GetInt(key)
		}
	}
	float := func(key string, dst *float64) {
		if has(key) {
			*dst = store.GetFloat(key)
		}
	}
	flag := func(key string, dst *bool) {
		if has(key) {
			*dst = store.GetBool(key)
		}
	}
	list := func(key string, dst *[]string) {
		if has(key) {
			*dst = store.GetStringSlice(key)
		}
	}
	duration := func(key string, dst *time.Duration) {
		if !has(key) {
			return
		}
		d, err := time.ParseDuration(store.GetString(key))
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
			return
		}
		*dst = d
	}

	num("server.port", &c.Server.Port)
	num("server.mcp_port", &c.Server.MCPPort)
	list("server.allowed_origins", &c.Server.AllowedOrigins)
	float("server.rate_limit_rps", &c.Server.RateLimitRPS)
	num("server.rate_limit_burst", &c.Server.RateLimitBurst)
	duration("server.read_header_timeout", &c.Server.ReadHeaderTimeout)
	duration("server.shutdown_timeout", &c.Server.ShutdownTimeout)

	str("documents.dir", &c.Documents.Dir)
	list("documents.resident", &c.Documents.Resident)
	list("documents.searchable", &c.Documents.Searchable)
	flag("documents.watch", &c.Documents.Watch)

	str("llm.api_key", &c.LLM.APIKey)
	str("llm.model", &c.LLM.Model)
	str("llm.base_url", &c.LLM.BaseURL)
	duration("llm.timeout", &c.LLM.Timeout)
	num("llm.max_tool_rounds", &c.LLM.MaxToolRounds)
	str("llm.fallback_marker", &c.LLM.FallbackMarker)
	str("llm.default_mode", &c.LLM.DefaultMode)
	str("llm.prompt_dir", &c.LLM.PromptDir)

	str("voice.api_key", &c.Voice.APIKey)
	str("voice.voice_id", &c.Voice.VoiceID)
	str("voice.base_url", &c.Voice.BaseURL)
	str("voice.model_id", &c.Voice.ModelID)
	float("voice.stability", &c.Voice.Stability)
	float("voice.similarity_boost", &c.Voice.SimilarityBoost)
	duration("voice.timeout", &c.Voice.Timeout)
	num("voice.monthly_budget", &c.Voice.MonthlyBudget)
	num("voice.max_chars", &c.Voice.MaxChars)
	str("voice.usage_db", &c.Voice.UsageDB)

	flag("cache.enabled", &c.Cache.Enabled)
	duration("cache.ttl", &c.Cache.TTL)
	duration("cache.cleanup", &c.Cache.Cleanup)

	flag("logging.verbose", &c.Logging.Verbose)
	flag("logging.json", &c.Logging.JSON)
	str("logging.file", &c.Logging.File)

	for _, key := range store.Keys() {
		if !known[key] {
			logger.Warn("Ignoring unknown config key %q in %s", key, store.Path())
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", domain.ErrMisconfigured, errors.Join(errs...))
	}
	return nil
}

// ApplyEnv applies the environment overrides. lookup is usually os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	set := func(key string, dst *string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	set(EnvAnthropicKey, &c.LLM.APIKey)
	set(EnvAnthropicModel, &c.LLM.Model)
	set(EnvElevenLabsKey, &c.Voice.APIKey)
	set(EnvElevenLabsVoice, &c.Voice.VoiceID)
	set(EnvContentDir, &c.Documents.Dir)

	if v, ok := lookup(EnvPort); ok && strings.TrimSpace(v) != "" {
		port, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not a number", domain.ErrMisconfigured, EnvPort, v)
		}
		c.Server.Port = port
	}
	return nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their TOML names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("toml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks the configuration against its constraints.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", domain.ErrMisconfigured, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		// Namespace is "Config.server.port"; drop the root.
		field := fe.Namespace()
		if i := strings.Index(field, "."); i >= 0 {
			field = field[i+1:]
		}
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s must satisfy %s=%s", field, fe.Tag(), fe.Param()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s must satisfy %s", field, fe.Tag()))
		}
	}
	return fmt.Errorf("%w: %s", domain.ErrMisconfigured, strings.Join(msgs, "; "))
}
