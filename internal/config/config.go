package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Telegram TelegramConfig `mapstructure:"telegram"`
	Redis    RedisConfig    `mapstructure:"redis"`
	QuranAPI QuranAPIConfig `mapstructure:"quran_api"`
	STT      STTConfig      `mapstructure:"stt"`
	HTTP     HTTPConfig     `mapstructure:"http"`
	Engine   EngineConfig   `mapstructure:"engine"`
	App      AppConfig      `mapstructure:"app"`
}

type TelegramConfig struct {
	Token string `mapstructure:"token"`
}

type RedisConfig struct {
	URI string `mapstructure:"uri"`
}

type QuranAPIConfig struct {
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"api_key"`
}

type STTConfig struct {
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
}

type HTTPConfig struct {
	Addr string `mapstructure:"addr"`
}

// EngineConfig exposes the analysis tunables. All have defaults, so an
// empty section is valid.
type EngineConfig struct {
	MatchSimilarityThreshold  float64 `mapstructure:"match_similarity_threshold"`
	StrictHarakat             bool    `mapstructure:"strict_harakat"`
	MissingPenaltyWeight      int     `mapstructure:"missing_penalty_weight"`
	SubstitutionPenaltyWeight int     `mapstructure:"substitution_penalty_weight"`
	ExtraPenaltyWeight        int     `mapstructure:"extra_penalty_weight"`
	MinimumRuleScoreFloor     int     `mapstructure:"minimum_rule_score_floor"`
	RewardFloor               int     `mapstructure:"reward_floor"`
	RewardPerWordFactor       int     `mapstructure:"reward_per_word_factor"`
}

type AppConfig struct {
	LocalesDir      string `mapstructure:"locales_dir"`
	DefaultLanguage string `mapstructure:"default_language"`
}

// Load loads configuration from a YAML file with environment variable overrides
func Load(filename string) (*Config, error) {
	v := viper.New()

	// Set config file
	v.SetConfigFile(filename)

	// Set defaults
	v.SetDefault("app.locales_dir", "locales")
	v.SetDefault("app.default_language", "en")
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("stt.model", "whisper-1")
	v.SetDefault("engine.match_similarity_threshold", 0.75)
	v.SetDefault("engine.missing_penalty_weight", 10)
	v.SetDefault("engine.substitution_penalty_weight", 5)
	v.SetDefault("engine.extra_penalty_weight", 4)
	v.SetDefault("engine.minimum_rule_score_floor", 45)
	v.SetDefault("engine.reward_floor", 5)
	v.SetDefault("engine.reward_per_word_factor", 4)

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// Environment variable configuration
	v.SetEnvPrefix("")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Unmarshal into config struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	// Validate required fields
	if cfg.Telegram.Token == "" {
		return nil, fmt.Errorf("telegram token is required")
	}
	if cfg.Redis.URI == "" {
		return nil, fmt.Errorf("redis URI is required")
	}
	if cfg.QuranAPI.BaseURL == "" {
		return nil, fmt.Errorf("quran API base URL is required")
	}
	if cfg.STT.BaseURL == "" {
		return nil, fmt.Errorf("stt base URL is required")
	}
	if cfg.STT.APIKey == "" {
		return nil, fmt.Errorf("stt API key is required")
	}
	if cfg.Engine.MatchSimilarityThreshold <= 0 || cfg.Engine.MatchSimilarityThreshold > 1 {
		return nil, fmt.Errorf("match similarity threshold must be in (0,1]")
	}

	return &cfg, nil
}
