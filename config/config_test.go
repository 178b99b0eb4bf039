package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mdolezal/czspot-go/types"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing config file: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
api:
  address: "127.0.0.1"
  port: 8093
database:
  path: "data/czspot.db"
  data_retention_days: 30
spot_price:
  currency: "EUR"
  unit: "MWh"
  run_at: "5 * * * *"
gui:
  timezone: "Europe/Prague"
logging:
  console_level: "DEBUG"
`)

	config, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	t.Run("Api", func(t *testing.T) {
		if config.Api.Address != "127.0.0.1" {
			t.Errorf("expected address 127.0.0.1, got %q", config.Api.Address)
		}
		if config.Api.Port != 8093 {
			t.Errorf("expected port 8093, got %d", config.Api.Port)
		}
	})

	t.Run("Database", func(t *testing.T) {
		if config.Database.Path != "data/czspot.db" {
			t.Errorf("expected database path data/czspot.db, got %q", config.Database.Path)
		}
		if config.Database.GetDataRetentionDays() != 30 {
			t.Errorf("expected data retention 30, got %d", config.Database.GetDataRetentionDays())
		}
		// Not set, expect the default.
		if config.Database.GetBackupRetentionDays() != 90 {
			t.Errorf("expected backup retention 90, got %d", config.Database.GetBackupRetentionDays())
		}
	})

	t.Run("SpotPrice", func(t *testing.T) {
		if !config.SpotPrice.InEur() {
			t.Errorf("expected InEur() to be true for currency EUR")
		}
		if config.SpotPrice.GetUnit() != types.UnitMWh {
			t.Errorf("expected unit MWh, got %s", config.SpotPrice.GetUnit())
		}
		if config.SpotPrice.RunAt != "5 * * * *" {
			t.Errorf("expected run_at '5 * * * *', got %q", config.SpotPrice.RunAt)
		}
	})

	t.Run("Gui", func(t *testing.T) {
		if config.Gui.GetTimezone() != "Europe/Prague" {
			t.Errorf("expected timezone Europe/Prague, got %q", config.Gui.GetTimezone())
		}
	})
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, `
database:
  path: "data/czspot.db"
spot_price:
  run_at: "@hourly"
`)

	config, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if config.SpotPrice.InEur() {
		t.Errorf("expected CZK by default")
	}
	if config.SpotPrice.GetUnit() != types.UnitKWh {
		t.Errorf("expected kWh by default, got %s", config.SpotPrice.GetUnit())
	}
	if config.Gui.GetTimezone() != "UTC" {
		t.Errorf("expected UTC by default, got %q", config.Gui.GetTimezone())
	}
}

func TestLoadConfigRejectsUnknownUnit(t *testing.T) {
	path := writeConfig(t, `
database:
  path: "data/czspot.db"
spot_price:
  unit: "GWh"
`)

	if _, err := Load(path); err == nil {
		t.Fatalf("expected an error for unknown unit")
	}
}

func TestLoadConfigRejectsUnknownCurrency(t *testing.T) {
	path := writeConfig(t, `
database:
  path: "data/czspot.db"
spot_price:
  currency: "USD"
`)

	if _, err := Load(path); err == nil {
		t.Fatalf("expected an error for unknown currency")
	}
}
