package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/jask/smsledger/internal/analytics"
	"github.com/jask/smsledger/internal/model"
)

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig
	Budgets  map[string]float64
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string
}

// Load reads configuration from file and env. Env var overrides use
// prefix SMSLEDGER_, e.g. SMSLEDGER_DATABASE_PATH.
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("database.path", filepath.Join(os.Getenv("HOME"), ".local", "share", "smsledger", "smsledger.db"))
	for category, limit := range analytics.DefaultLimits() {
		v.SetDefault("budgets."+string(category), limit)
	}

	v.SetConfigType("toml")

	cfgPath := os.Getenv("SMSLEDGER_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "smsledger"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("SMSLEDGER")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// BudgetLimits converts the configured budget map to category keys.
// Unknown category names are ignored rather than rejected, so a stale
// config entry cannot block startup.
func (c Config) BudgetLimits() map[model.Category]float64 {
	limits := make(map[model.Category]float64, len(c.Budgets))
	for name, limit := range c.Budgets {
		category, ok := model.ParseCategory(name)
		if !ok {
			continue
		}
		limits[category] = limit
	}
	return limits
}
