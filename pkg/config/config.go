package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// StaticConfig represents the static configuration for the Proxasaurus MCP Server
type StaticConfig struct {
	// Server configuration
	Port       int    `yaml:"port" mapstructure:"port"`
	SSEBaseURL string `yaml:"sse_base_url" mapstructure:"sse_base_url"`

	// Logging configuration
	LogLevel int `yaml:"log_level" mapstructure:"log_level"`

	// PegaProx configuration
	PegaProxBaseURL  string `yaml:"pegaprox_base_url" mapstructure:"pegaprox_base_url"`
	PegaProxAPIToken string `yaml:"pegaprox_api_token" mapstructure:"pegaprox_api_token"`

	// Kubernetes configuration
	Kubeconfig string `yaml:"kubeconfig" mapstructure:"kubeconfig"`

	// Security configuration
	ReadOnly           bool `yaml:"read_only" mapstructure:"read_only"`
	DisableDestructive bool `yaml:"disable_destructive" mapstructure:"disable_destructive"`

	// Toolset configuration
	Toolsets      []string `yaml:"toolsets" mapstructure:"toolsets"`
	EnabledTools  []string `yaml:"enabled_tools" mapstructure:"enabled_tools"`
	DisabledTools []string `yaml:"disabled_tools" mapstructure:"disabled_tools"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *StaticConfig {
	return &StaticConfig{
		Port:            0, // 0 means stdio mode
		LogLevel:        0,
		PegaProxBaseURL: "http://localhost:5000",
		Toolsets:        []string{"cluster", "vm", "storage", "monitor", "kubernetes"},
	}
}

// Validate validates the configuration
func (c *StaticConfig) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("port must be between 0 and 65535, got %d", c.Port)
	}

	if c.LogLevel < 0 || c.LogLevel > 9 {
		return fmt.Errorf("log_level must be between 0 and 9, got %d", c.LogLevel)
	}

	if c.PegaProxBaseURL != "" {
		if !strings.HasPrefix(c.PegaProxBaseURL, "http://") && !strings.HasPrefix(c.PegaProxBaseURL, "https://") {
			return fmt.Errorf("pegaprox_base_url must start with http:// or https://, got %s", c.PegaProxBaseURL)
		}
	}

	return nil
}

// GetPortString returns the listen address for HTTP mode
func (c *StaticConfig) GetPortString() string {
	return fmt.Sprintf(":%d", c.Port)
}

// HasPegaProxConfig returns true if a PegaProx endpoint is configured
func (c *StaticConfig) HasPegaProxConfig() bool {
	return c.PegaProxBaseURL != ""
}

// LoadConfig loads configuration from an optional YAML file with environment
// overrides. Environment variables use the PROXASAURUS_ prefix
// (e.g. PROXASAURUS_PEGAPROX_BASE_URL); the bare PEGAPROX_BASE_URL,
// PEGAPROX_API_TOKEN, and KUBECONFIG names are also honored for compatibility
// with existing deployments.
func LoadConfig(configPath string) (*StaticConfig, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("port", defaults.Port)
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("pegaprox_base_url", defaults.PegaProxBaseURL)
	v.SetDefault("toolsets", defaults.Toolsets)

	v.SetEnvPrefix("PROXASAURUS")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	// Legacy environment names take effect when the prefixed ones are absent.
	_ = v.BindEnv("pegaprox_base_url", "PROXASAURUS_PEGAPROX_BASE_URL", "PEGAPROX_BASE_URL")
	_ = v.BindEnv("pegaprox_api_token", "PROXASAURUS_PEGAPROX_API_TOKEN", "PEGAPROX_API_TOKEN")
	_ = v.BindEnv("kubeconfig", "PROXASAURUS_KUBECONFIG", "KUBECONFIG")

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %v", configPath, err)
		}
	}

	config := &StaticConfig{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %v", configPath, err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}
