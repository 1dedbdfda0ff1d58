package config

import (
	"time"

	"github.com/lillianfidler/churchill-falls-assistant/internal/adapters/driven/cache"
	"github.com/lillianfidler/churchill-falls-assistant/internal/adapters/driven/llm/anthropic"
	"github.com/lillianfidler/churchill-falls-assistant/internal/adapters/driven/tts/elevenlabs"
	"github.com/lillianfidler/churchill-falls-assistant/internal/core/domain"
	"github.com/lillianfidler/churchill-falls-assistant/internal/core/services"
)

// Server defaults.
const (
	DefaultPort              = 3001
	DefaultMCPPort           = 3002
	DefaultRateLimitRPS      = 2.0
	DefaultRateLimitBurst    = 10
	DefaultReadHeaderTimeout = 10 * time.Second
	DefaultShutdownTimeout   = 15 * time.Second
	DefaultContentDir        = "content"
	DefaultPromptDir         = "prompts"
)

// ResidentDocuments are sent with every chat turn.
var ResidentDocuments = []string{
	"MOU_Churchill_Falls_Dec_12_2024_clean_text.txt",
	"Doug-video-series-video1.txt",
	"Doug-video-series-video2A.txt",
	"Doug-video-series-video2B.txt",
	"Doug-video-series-video3A.txt",
	"Doug-video-series-video3B.txt",
	"Doug-video-series-video4.txt",
	"LOCKE analysis of MOU CF.txt",
	"Churchill-falls-consolidated-financial-statements-2024.txt",
	"HYDRO-QUEBECS-EXPORTS.txt",
	"Churchill-Falls-2023-financial-statement.txt",
	"Reassessing-the-Churchill-Falls-MOU.txt",
	"Churchill_Falls_Annual_Report_2024.txt",
	"HQ-exports-electricity-price-escalation.txt",
	"Lower-Churchill-Project-Combined-Financial-Statements-2024.txt",
}

// SearchableDocuments are reachable only through the retrieval tools.
var SearchableDocuments = []string{
	"MOU_Churchill_Falls_Dec_12_2024_clean_text.txt",
	"LOCKE analysis of MOU CF.txt",
	"Reassessing-the-Churchill-Falls-MOU.txt",
	"Doug-video-series-video1.txt",
	"Doug-video-series-video2A.txt",
	"Doug-video-series-video2B.txt",
	"Doug-video-series-video3A.txt",
	"Doug-video-series-video3B.txt",
	"Doug-video-series-video4.txt",
	"Churchill-falls-consolidated-financial-statements-2024.txt",
	"Lower-Churchill-Project-Combined-Financial-Statements-2024.txt",
	"HYDRO-QUEBECS-EXPORTS.txt",
	"Churchill-Falls-2023-financial-statement.txt",
	"Analyis-James-P-Feehan.txt",
	"Assessment-of-Proposed-Prices.txt",
	"Churchill_Falls_Annual_Report_2024.txt",
	"Churchill-falls-consolidated-financial-statements-2022.txt",
	"Churchill-falls-financial-statements-2021.txt",
	"CHURCHILL-FALLS-POWER-CONTRACT.txt",
	"Feehan, James P., Smallwood, Churchill Falls, and the Power Corridor through Quebec.txt",
	"Gull_Island_Contract_2002.txt",
	"History_Churchill_River_Hydro_Development_1949-2007.txt",
	"history-of-churchill-falls-development.txt",
	"HQ_Action_Plan_2035_clean_text.txt",
	"HQ_Production_July_2025_text.txt",
	"HQ-exports-electricity-price-escalation.txt",
	"hq-quarterly-bulletin.txt",
	"HYDRO_MOU_GNL_Jan_2025.txt",
	"Hydro-quebec-annual-report-2024.txt",
	"HYDRO-QUEBECS-IMPORTS.txt",
	"MOU_s_Societal_Values.txt",
	"lower-churchill-projects.txt",
	"NL-Debt-Fiscal-Sustainability.txt",
	"Proposed-Prices-for-Existing-Power.txt",
	"quebecs-changing-import-picture.txt",
	"quebecs-electricity-supply-problem.txt",
	"The-Assessment-of-the-Proposed-Proj.txt",
	"Understanding-Some-Financial-Concep.txt",
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:              DefaultPort,
			MCPPort:           DefaultMCPPort,
			AllowedOrigins:    []string{"*"},
			RateLimitRPS:      DefaultRateLimitRPS,
			RateLimitBurst:    DefaultRateLimitBurst,
			ReadHeaderTimeout: DefaultReadHeaderTimeout,
			ShutdownTimeout:   DefaultShutdownTimeout,
		},
		Documents: DocumentsConfig{
			Dir:        DefaultContentDir,
			Resident:   append([]string(nil), ResidentDocuments...),
			Searchable: append([]string(nil), SearchableDocuments...),
		},
		LLM: LLMConfig{
			Model:          anthropic.DefaultModel,
			BaseURL:        anthropic.DefaultBaseURL,
			Timeout:        anthropic.DefaultTimeout,
			MaxToolRounds:  services.DefaultMaxToolRounds,
			FallbackMarker: services.DefaultFallbackMarker,
			DefaultMode:    string(domain.ModeText),
			PromptDir:      DefaultPromptDir,
		},
		Voice: VoiceConfig{
			BaseURL:         elevenlabs.DefaultBaseURL,
			ModelID:         elevenlabs.DefaultModelID,
			Stability:       elevenlabs.DefaultStability,
			SimilarityBoost: elevenlabs.DefaultSimilarityBoost,
			Timeout:         elevenlabs.DefaultTimeout,
			MonthlyBudget:   services.DefaultMonthlyVoiceBudget,
			MaxChars:        services.DefaultMaxSpeechChars,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     cache.DefaultTTL,
			Cleanup: cache.DefaultCleanup,
		},
	}
}
