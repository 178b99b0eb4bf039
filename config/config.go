package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/viper"

	"github.com/mdolezal/czspot-go/logging"
	"github.com/mdolezal/czspot-go/types"
)

type AppConfigApi struct {
	Address string
	Port    int16
}

type AppConfigDatabase struct {
	Path string
	// How many days data should be stored in database before it gets purged
	DataRetentionDays *int `mapstructure:"data_retention_days"`
	// How many days daily backup files should be stored before they gets deleted
	BackupRetentionDays *int `mapstructure:"backup_retention_days"`
}

func (d AppConfigDatabase) GetDataRetentionDays() int {
	if d.DataRetentionDays == nil {
		return 90
	}
	return *d.DataRetentionDays
}

func (d AppConfigDatabase) GetBackupRetentionDays() int {
	if d.BackupRetentionDays == nil {
		return 90
	}
	return *d.BackupRetentionDays
}

type AppConfigSpotPrice struct {
	// Currency for stored prices: "CZK" (default) or "EUR"
	Currency *string `mapstructure:"currency"`
	// Unit for stored prices: "kWh" (default) or "MWh"
	Unit  *string `mapstructure:"unit"`
	RunAt string  `mapstructure:"run_at"`
}

func (s AppConfigSpotPrice) InEur() bool {
	if s.Currency == nil {
		return false
	}
	return strings.EqualFold(*s.Currency, "EUR")
}

func (s AppConfigSpotPrice) GetUnit() types.EnergyUnit {
	if s.Unit == nil {
		return types.UnitKWh
	}
	unit, err := types.ParseEnergyUnit(*s.Unit)
	if err != nil {
		// Rejected in Load, can't happen for a loaded config.
		panic(err)
	}
	return unit
}

type AppConfigGui struct {
	// Timezone for displaying times in the GUI, default: UTC
	Timezone *string `mapstructure:"timezone"`
}

func (g AppConfigGui) GetTimezone() string {
	if g.Timezone == nil {
		return "UTC"
	}
	return *g.Timezone
}

type AppConfigLogging struct {
	// Min log level for database: "DEBUG", "INFO", "WARN", "ERROR", default: "INFO"
	DbLevel *string `mapstructure:"db_level"`
	// Log attributes format: "TEXT", "JSON", default: "JSON"
	DbAttrsFormat *string `mapstructure:"db_attrs_format"`
	// Maximum number of log entries in the database, default: 10000
	DbMaxEntries *int `mapstructure:"db_max_entries"`
	// Min log level for console: "DEBUG", "INFO", "WARN", "ERROR", default: "INFO"
	ConsoleLevel *string `mapstructure:"console_level"`
}

func (l AppConfigLogging) GetDbLevel() slog.Level {
	return logging.LevelFromString(l.DbLevel)
}

func (l AppConfigLogging) GetDbAttrsFormat() logging.LogAttrFormat {
	if l.DbAttrsFormat == nil {
		return logging.LogAttrFormatJSON
	}
	if strings.EqualFold(*l.DbAttrsFormat, "text") {
		return logging.LogAttrFormatText
	}
	return logging.LogAttrFormatJSON
}

func (l AppConfigLogging) GetDbMaxEntries() int {
	if l.DbMaxEntries == nil {
		return 10000
	}
	return *l.DbMaxEntries
}

func (l AppConfigLogging) GetConsoleLevel() slog.Level {
	return logging.LevelFromString(l.ConsoleLevel)
}

type AppConfig struct {
	Api       AppConfigApi
	Database  AppConfigDatabase
	SpotPrice AppConfigSpotPrice `mapstructure:"spot_price"`
	Gui       AppConfigGui       `mapstructure:"gui"`
	Logging   AppConfigLogging   `mapstructure:"logging"`
}

func Load(path string) (*AppConfig, error) {
	if path != "" {
		viper.SetConfigFile(path)
	} else {
		viper.AddConfigPath("config")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	var c AppConfig

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("unable to read config file: %w", err)
	}

	if err := viper.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unable to unmarshal config file: %w", err)
	}

	if c.SpotPrice.Unit != nil {
		if _, err := types.ParseEnergyUnit(*c.SpotPrice.Unit); err != nil {
			return nil, fmt.Errorf("invalid spot_price.unit: %w", err)
		}
	}
	if c.SpotPrice.Currency != nil {
		cur := *c.SpotPrice.Currency
		if !strings.EqualFold(cur, "CZK") && !strings.EqualFold(cur, "EUR") {
			return nil, fmt.Errorf("invalid spot_price.currency %q, must be CZK or EUR", cur)
		}
	}

	return &c, nil
}
