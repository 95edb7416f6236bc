package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.Port != 0 {
		t.Errorf("Expected Port to be 0, got %d", config.Port)
	}

	if config.LogLevel != 0 {
		t.Errorf("Expected LogLevel to be 0, got %d", config.LogLevel)
	}

	if config.PegaProxBaseURL != "http://localhost:5000" {
		t.Errorf("Expected default PegaProx base URL, got '%s'", config.PegaProxBaseURL)
	}

	expectedToolsets := []string{"cluster", "vm", "storage", "monitor", "kubernetes"}
	if len(config.Toolsets) != len(expectedToolsets) {
		t.Fatalf("Expected %d default toolsets, got %d", len(expectedToolsets), len(config.Toolsets))
	}
	for i, toolset := range expectedToolsets {
		if config.Toolsets[i] != toolset {
			t.Errorf("Expected toolsets[%d] to be '%s', got '%s'", i, toolset, config.Toolsets[i])
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  *StaticConfig
		wantErr bool
	}{
		{
			name:    "valid default config",
			config:  DefaultConfig(),
			wantErr: false,
		},
		{
			name: "valid port",
			config: &StaticConfig{
				Port: 8080,
			},
			wantErr: false,
		},
		{
			name: "invalid port negative",
			config: &StaticConfig{
				Port: -1,
			},
			wantErr: true,
		},
		{
			name: "invalid port too high",
			config: &StaticConfig{
				Port: 65536,
			},
			wantErr: true,
		},
		{
			name: "valid log level",
			config: &StaticConfig{
				LogLevel: 5,
			},
			wantErr: false,
		},
		{
			name: "invalid log level too high",
			config: &StaticConfig{
				LogLevel: 10,
			},
			wantErr: true,
		},
		{
			name: "invalid pegaprox url",
			config: &StaticConfig{
				PegaProxBaseURL: "localhost:5000",
			},
			wantErr: true,
		},
		{
			name: "valid https pegaprox url",
			config: &StaticConfig{
				PegaProxBaseURL: "https://pegaprox.example.com",
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("no config file", func(t *testing.T) {
		config, err := LoadConfig("")
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if config.PegaProxBaseURL != "http://localhost:5000" {
			t.Errorf("Expected default base URL, got '%s'", config.PegaProxBaseURL)
		}
	})

	t.Run("missing config file", func(t *testing.T) {
		_, err := LoadConfig("/nonexistent/config.yaml")
		if err == nil {
			t.Error("Expected error for missing config file")
		}
	})

	t.Run("valid config file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "config.yaml")
		content := `port: 5010
log_level: 5
pegaprox_base_url: https://pegaprox.example.com
pegaprox_api_token: test-token
toolsets:
  - cluster
  - kubernetes
`
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}

		config, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if config.Port != 5010 {
			t.Errorf("Expected port 5010, got %d", config.Port)
		}
		if config.LogLevel != 5 {
			t.Errorf("Expected log level 5, got %d", config.LogLevel)
		}
		if config.PegaProxBaseURL != "https://pegaprox.example.com" {
			t.Errorf("Unexpected base URL '%s'", config.PegaProxBaseURL)
		}
		if len(config.Toolsets) != 2 {
			t.Errorf("Expected 2 toolsets, got %d", len(config.Toolsets))
		}
	})

	t.Run("environment override", func(t *testing.T) {
		t.Setenv("PEGAPROX_BASE_URL", "http://pegaprox.internal:5000")
		t.Setenv("PEGAPROX_API_TOKEN", "env-token")

		config, err := LoadConfig("")
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if config.PegaProxBaseURL != "http://pegaprox.internal:5000" {
			t.Errorf("Expected env base URL, got '%s'", config.PegaProxBaseURL)
		}
		if config.PegaProxAPIToken != "env-token" {
			t.Errorf("Expected env token, got '%s'", config.PegaProxAPIToken)
		}
	})

	t.Run("invalid config file rejected", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "config.yaml")
		if err := os.WriteFile(path, []byte("log_level: 42\n"), 0o600); err != nil {
			t.Fatal(err)
		}

		_, err := LoadConfig(path)
		if err == nil {
			t.Error("Expected validation error for log_level 42")
		}
	})
}
