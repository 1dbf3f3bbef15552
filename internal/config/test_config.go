package config

import "time"

// TestConfig returns a config whose paths are left for the test to set.
func TestConfig() *Config {
	cfg := defaultConfig()
	cfg.Database = DatabaseConfig{Timeout: 1 * time.Second}
	cfg.Log = LogConfig{Level: "OFF"}
	return cfg
}
