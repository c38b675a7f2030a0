package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config_test.yaml")
	configContent := `
app:
  environment: testing
  name: TestApp
  version: 2.0.0
server:
  host: 127.0.0.1
  port: 8181
  read_timeout: 5s
  write_timeout: 10s
storage:
  driver: sqlite
  path: /tmp/qr.db
generator:
  min_size: 150
  max_size: 800
platform:
  share_command: xdg-share
  task_timeout: 5s
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to create test config file: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.App.Environment != "testing" {
		t.Errorf("Expected Environment = %s, got %s", "testing", cfg.App.Environment)
	}
	if cfg.App.Name != "TestApp" {
		t.Errorf("Expected Name = %s, got %s", "TestApp", cfg.App.Name)
	}
	if cfg.Server.Port != 8181 {
		t.Errorf("Expected Port = %d, got %d", 8181, cfg.Server.Port)
	}
	if cfg.Storage.Driver != "sqlite" || cfg.Storage.Path != "/tmp/qr.db" {
		t.Errorf("Unexpected storage settings: %+v", cfg.Storage)
	}
	if cfg.Generator.MinSize != 150 || cfg.Generator.MaxSize != 800 {
		t.Errorf("Unexpected generator range: %+v", cfg.Generator)
	}
	if cfg.Platform.ShareCommand != "xdg-share" || cfg.Platform.TaskTimeout != 5*time.Second {
		t.Errorf("Unexpected platform settings: %+v", cfg.Platform)
	}
}

func TestLoadWithInvalidPath(t *testing.T) {
	// A missing file falls back to defaults
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load() with non-existent file should not error, got %v", err)
	}

	if cfg.App.Environment != "development" {
		t.Errorf("Expected default Environment = %s, got %s", "development", cfg.App.Environment)
	}
	if cfg.Storage.Driver != "file" {
		t.Errorf("Expected default storage driver file, got %s", cfg.Storage.Driver)
	}
	if cfg.Generator.MinSize != 100 || cfg.Generator.MaxSize != 1000 {
		t.Errorf("Expected default size range 100-1000, got %d-%d", cfg.Generator.MinSize, cfg.Generator.MaxSize)
	}
}

func TestLoadRejectsInvalidYAML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(configPath, []byte("app: [unclosed"), 0644); err != nil {
		t.Fatalf("Failed to create test config file: %v", err)
	}

	if _, err := Load(configPath); err == nil {
		t.Error("Load() expected error for malformed YAML")
	}
}

func TestGet(t *testing.T) {
	origCfg := cfg
	defer func() { cfg = origCfg }()

	testCfg := &AppConfig{App: AppSettings{Name: "TestApp"}}
	cfg = testCfg

	if result := Get(); result != testCfg {
		t.Errorf("Get() = %v, want %v", result, testCfg)
	}
}

func TestStorageSettings_ConnectionString(t *testing.T) {
	tests := []struct {
		name     string
		settings StorageSettings
		want     string
	}{
		{
			name: "MySQL with password",
			settings: StorageSettings{
				Driver: "mysql", Host: "localhost", Port: 3306, Name: "qrdb", User: "user", Password: "pass",
			},
			want: "user:pass@tcp(localhost:3306)/qrdb?parseTime=true&charset=utf8mb4&collation=utf8mb4_unicode_ci",
		},
		{
			name: "MySQL without password",
			settings: StorageSettings{
				Driver: "mysql", Host: "localhost", Port: 3306, Name: "qrdb", User: "user",
			},
			want: "user@tcp(localhost:3306)/qrdb?parseTime=true&charset=utf8mb4&collation=utf8mb4_unicode_ci",
		},
		{
			name: "Postgres",
			settings: StorageSettings{
				Driver: "postgres", Host: "db", Port: 5432, Name: "qrdb", User: "qr", Password: "pw",
			},
			want: "host=db port=5432 user=qr dbname=qrdb sslmode=disable connect_timeout=15 password=pw",
		},
		{
			name:     "SQLite",
			settings: StorageSettings{Driver: "sqlite", Path: "./data/qr.db"},
			want:     "file:./data/qr.db?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)",
		},
		{
			name:     "File",
			settings: StorageSettings{Driver: "file", Path: "./data/state.json"},
			want:     "./data/state.json",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.settings.ConnectionString(); got != tt.want {
				t.Errorf("ConnectionString() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStorageSettings_IsSQL(t *testing.T) {
	for driver, want := range map[string]bool{
		"mysql": true, "postgres": true, "sqlite": true, "file": false, "memory": false,
	} {
		s := StorageSettings{Driver: driver}
		if got := s.IsSQL(); got != want {
			t.Errorf("IsSQL(%s) = %v, want %v", driver, got, want)
		}
	}
}

func TestSetDefaults(t *testing.T) {
	config := &AppConfig{Storage: StorageSettings{Driver: "SQLite"}}
	setDefaults(config)

	if config.Storage.Driver != "sqlite" {
		t.Errorf("Expected driver to be lower-cased, got %s", config.Storage.Driver)
	}
	if config.Storage.Path != "./data/qrforge.db" {
		t.Errorf("Expected sqlite default path, got %s", config.Storage.Path)
	}
	if config.App.Name != "QRForge" {
		t.Errorf("Expected default app name, got %s", config.App.Name)
	}
	if config.RateLimit.Burst != 40 {
		t.Errorf("Expected default burst 40, got %d", config.RateLimit.Burst)
	}
	if config.Platform.TaskTimeout != 30*time.Second {
		t.Errorf("Expected default task timeout 30s, got %s", config.Platform.TaskTimeout)
	}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *AppConfig)
		wantErr bool
	}{
		{"Defaults are valid", func(c *AppConfig) {}, false},
		{"Unknown driver", func(c *AppConfig) { c.Storage.Driver = "redis" }, true},
		{"MySQL without user", func(c *AppConfig) { c.Storage.Driver = "mysql"; c.Storage.Host = "db" }, true},
		{"Postgres complete", func(c *AppConfig) {
			c.Storage.Driver = "postgres"
			c.Storage.Host = "db"
			c.Storage.User = "qr"
		}, false},
		{"Inverted size range", func(c *AppConfig) { c.Generator.MinSize = 900; c.Generator.MaxSize = 200 }, true},
		{"Range excludes default size", func(c *AppConfig) { c.Generator.MinSize = 400 }, true},
		{"Invalid log level", func(c *AppConfig) { c.Logging.Level = "chatty" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := &AppConfig{}
			setDefaults(config)
			tt.mutate(config)

			err := validateConfig(config)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateConfigResetsUnknownEnvironment(t *testing.T) {
	config := &AppConfig{}
	setDefaults(config)
	config.App.Environment = "staging"

	if err := validateConfig(config); err != nil {
		t.Fatalf("validateConfig() error = %v", err)
	}
	if config.App.Environment != "development" {
		t.Errorf("Expected environment to reset to development, got %s", config.App.Environment)
	}
}

func TestAppSettingsEnvironmentChecks(t *testing.T) {
	app := AppSettings{Environment: "Production"}
	if !app.IsProduction() || app.IsDevelopment() {
		t.Errorf("Unexpected environment checks for %s", app.Environment)
	}

	app = AppSettings{Environment: "development"}
	if app.IsProduction() || !app.IsDevelopment() {
		t.Errorf("Unexpected environment checks for %s", app.Environment)
	}
}
