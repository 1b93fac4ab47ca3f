package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/JonnyWalker81/nutrisense/backend/internal/pipeline"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadFileDefaults(t *testing.T) {
	cfg, err := LoadFile(writeConfig(t, "server:\n  env: development\n"))
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Server.Port)
	}
	if cfg.Storage.Driver != DriverSQLite {
		t.Errorf("Driver = %q, want sqlite", cfg.Storage.Driver)
	}
	if cfg.Server.RateWindow != time.Minute {
		t.Errorf("RateWindow = %v", cfg.Server.RateWindow)
	}

	def := pipeline.DefaultConfig()
	if cfg.Engine.Advice.MaxItems != def.Advice.MaxItems {
		t.Errorf("MaxItems = %d, want %d", cfg.Engine.Advice.MaxItems, def.Advice.MaxItems)
	}
	if cfg.Engine.Stats.HistoryWindow != def.Stats.HistoryWindow {
		t.Errorf("HistoryWindow = %d, want %d", cfg.Engine.Stats.HistoryWindow, def.Stats.HistoryWindow)
	}
}

func TestLoadFileEngineOverrides(t *testing.T) {
	body := `
engine:
  stats:
    history_window: 30
    short_sleep_hours: 6.5
  advice:
    max_items: 3
    empty_day_hour: 13
    reminder_cooldown: 90m
logging:
  backend: zap
`
	cfg, err := LoadFile(writeConfig(t, body))
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}

	def := pipeline.DefaultConfig()
	if cfg.Engine.Stats.HistoryWindow != 30 {
		t.Errorf("HistoryWindow = %d, want 30", cfg.Engine.Stats.HistoryWindow)
	}
	if cfg.Engine.Advice.MaxItems != 3 {
		t.Errorf("MaxItems = %d, want 3", cfg.Engine.Advice.MaxItems)
	}
	if cfg.Engine.Advice.ReminderCooldown != 90*time.Minute {
		t.Errorf("ReminderCooldown = %v", cfg.Engine.Advice.ReminderCooldown)
	}
	if cfg.Engine.Stats.ShortSleepHours != 6.5 || cfg.Engine.Advice.EmptyDayHour != 13 {
		t.Errorf("ShortSleepHours = %v, EmptyDayHour = %d", cfg.Engine.Stats.ShortSleepHours, cfg.Engine.Advice.EmptyDayHour)
	}
	if len(cfg.Engine.Advice.CircadianBands) != len(def.Advice.CircadianBands) {
		t.Errorf("CircadianBands = %v, want defaults", cfg.Engine.Advice.CircadianBands)
	}
	// untouched thresholds keep their defaults
	if cfg.Engine.Advice.KcalExcessCritical != def.Advice.KcalExcessCritical {
		t.Errorf("KcalExcessCritical = %v, want default", cfg.Engine.Advice.KcalExcessCritical)
	}
	if cfg.Logging.Logger().Backend != "zap" {
		t.Errorf("Backend = %q", cfg.Logging.Backend)
	}
}

func TestLoadFileEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("NUTRISENSE_STORAGE_DRIVER", "supabase")
	t.Setenv("SUPABASE_URL", "https://example.supabase.co")
	t.Setenv("SUPABASE_SERVICE_KEY", "secret")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg, err := LoadFile(writeConfig(t, "{}\n"))
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if cfg.Server.Port != "9090" {
		t.Errorf("Port = %q, want 9090", cfg.Server.Port)
	}
	if cfg.Storage.Driver != DriverSupabase {
		t.Errorf("Driver = %q", cfg.Storage.Driver)
	}
	if cfg.Supabase.URL != "https://example.supabase.co" {
		t.Errorf("URL = %q", cfg.Supabase.URL)
	}
	if cfg.Redis.Addr != "localhost:6379" {
		t.Errorf("Redis.Addr = %q", cfg.Redis.Addr)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"sqlite ok", func(c *Config) {}, false},
		{"supabase missing url", func(c *Config) { c.Storage.Driver = DriverSupabase }, true},
		{"supabase ok", func(c *Config) {
			c.Storage.Driver = DriverSupabase
			c.Supabase.URL = "https://x"
			c.Supabase.ServiceKey = "k"
		}, false},
		{"unknown driver", func(c *Config) { c.Storage.Driver = "mongo" }, true},
		{"zero max items", func(c *Config) { c.Engine.Advice.MaxItems = 0 }, true},
		{"negative rate limit", func(c *Config) { c.Server.RateLimit = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Storage: StorageConfig{Driver: DriverSQLite, SQLitePath: "x.db"},
				Engine:  pipeline.DefaultConfig(),
			}
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
