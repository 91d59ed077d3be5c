package config

import (
	"fmt"
	"strings"

	"github.com/Veraticus/spendwise/internal/common"
	"github.com/spf13/viper"
)

// Viper keys.
const (
	KeyDatabasePath  = "database.path"
	KeyBackupDir     = "backup.dir"
	KeyLogLevel      = "logging.level"
	KeyLogFormat     = "logging.format"
	KeyChartDays     = "charts.days"
	KeyTopCategories = "charts.top_categories"
)

// Defaults.
const (
	DefaultChartDays     = 30
	DefaultTopCategories = 8
	maxChartDays         = 366
)

// Config is the resolved application configuration.
type Config struct {
	DatabasePath  string
	BackupDir     string
	LogLevel      string
	LogFormat     string
	ChartDays     int
	TopCategories int
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyDatabasePath, DefaultDatabasePath())
	v.SetDefault(KeyBackupDir, DefaultBackupDir())
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "console")
	v.SetDefault(KeyChartDays, DefaultChartDays)
	v.SetDefault(KeyTopCategories, DefaultTopCategories)
}

// Load reads the configuration from v, expanding paths.
func Load(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	cfg := &Config{
		DatabasePath:  ExpandPath(v.GetString(KeyDatabasePath)),
		BackupDir:     ExpandPath(v.GetString(KeyBackupDir)),
		LogLevel:      strings.ToLower(v.GetString(KeyLogLevel)),
		LogFormat:     strings.ToLower(v.GetString(KeyLogFormat)),
		ChartDays:     v.GetInt(KeyChartDays),
		TopCategories: v.GetInt(KeyTopCategories),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for unusable values.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.DatabasePath) == "" {
		return fmt.Errorf("%w: database path is required", common.ErrInvalidConfig)
	}
	if strings.TrimSpace(c.BackupDir) == "" {
		return fmt.Errorf("%w: backup directory is required", common.ErrInvalidConfig)
	}
	if _, err := common.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("%w: invalid log format: %s", common.ErrInvalidConfig, c.LogFormat)
	}
	if c.ChartDays < 1 || c.ChartDays > maxChartDays {
		return fmt.Errorf("%w: charts.days must be between 1 and %d", common.ErrInvalidConfig, maxChartDays)
	}
	if c.TopCategories < 0 {
		return fmt.Errorf("%w: charts.top_categories must not be negative", common.ErrInvalidConfig)
	}
	return nil
}
