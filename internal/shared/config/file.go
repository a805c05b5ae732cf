package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

type fileConfig struct {
	Env    string       `toml:"env"`
	Server serverConfig `toml:"server"`
	Remote remoteConfig `toml:"remote"`
	Form   formConfig   `toml:"form"`
	Log    logConfig    `toml:"log"`
}

type serverConfig struct {
	Port        int      `toml:"port"`
	CORSOrigins []string `toml:"cors_origins"`
}

type remoteConfig struct {
	BaseURL      string `toml:"base_url"`
	LocalBaseURL string `toml:"local_base_url"`
	UseLocal     *bool  `toml:"use_local"`
	AuthToken    string `toml:"auth_token"`
}

type formConfig struct {
	Reporting *bool `toml:"reporting"`
}

type logConfig struct {
	Level string `toml:"level"`
}

// loadFile overlays the TOML file at path onto cfg. Missing keys keep
// their current value.
func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	if fc.Env != "" {
		cfg.Env = fc.Env
	}
	if fc.Server.Port > 0 {
		cfg.Port = fmt.Sprintf("%d", fc.Server.Port)
	}
	if len(fc.Server.CORSOrigins) > 0 {
		cfg.CORSAllowOrigin = fc.Server.CORSOrigins
	}
	if fc.Remote.BaseURL != "" {
		cfg.BaseURL = fc.Remote.BaseURL
	}
	if fc.Remote.LocalBaseURL != "" {
		cfg.LocalBaseURL = fc.Remote.LocalBaseURL
	}
	if fc.Remote.UseLocal != nil {
		cfg.UseLocal = *fc.Remote.UseLocal
	}
	if fc.Remote.AuthToken != "" {
		cfg.AuthToken = fc.Remote.AuthToken
	}
	if fc.Form.Reporting != nil {
		cfg.Reporting = *fc.Form.Reporting
	}
	if fc.Log.Level != "" {
		cfg.LogLevel = fc.Log.Level
	}
	return nil
}
