package game

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the settings of the real-time driver and persistence layer,
// loaded with the same env-override-config-file-then-default layering the
// pack's other daemon uses.
type Config struct {
	TickPeriodS     float64 `mapstructure:"tick_period_s" validate:"gt=0"`
	AutosavePeriodS float64 `mapstructure:"autosave_period_s" validate:"gt=0"`
	PushPeriodS     float64 `mapstructure:"push_period_s" validate:"gt=0"`
	CleanupPeriodS  float64 `mapstructure:"cleanup_period_s" validate:"gt=0"`
	SaveDir         string  `mapstructure:"save_dir" validate:"required"`
}

func defaultConfig() Config {
	return Config{
		TickPeriodS:     0.5,
		AutosavePeriodS: 60,
		PushPeriodS:     1,
		CleanupPeriodS:  300,
		SaveDir:         "./saves",
	}
}

// LoadConfig loads configuration with the priority environment variables
// (prefix COLONYSIM_) > config file > defaults, validating the result.
func LoadConfig(configPath string) (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	cfg := defaultConfig()
	v.SetDefault("tick_period_s", cfg.TickPeriodS)
	v.SetDefault("autosave_period_s", cfg.AutosavePeriodS)
	v.SetDefault("push_period_s", cfg.PushPeriodS)
	v.SetDefault("cleanup_period_s", cfg.CleanupPeriodS)
	v.SetDefault("save_dir", cfg.SaveDir)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
	}

	v.SetEnvPrefix("COLONYSIM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}
