package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/formloom/formloom/internal/utils"
)

// Config holds server settings. Values come from an optional YAML file,
// then FORMLOOM_* environment variables override field by field.
type Config struct {
	Addr           string `yaml:"addr"`
	SQLitePath     string `yaml:"sqlite_path"`
	StaticDir      string `yaml:"static_dir"`
	DevFrontendURL string `yaml:"dev_frontend_url"`
	AdminCode      string `yaml:"admin_code"`
}

// Load reads the YAML file at path (skipped when path is empty or the file
// does not exist) and applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{Addr: ":8080"}
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		} else if err := yaml.Unmarshal(b, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Addr = utils.SafeEnv("FORMLOOM_ADDR", c.Addr)
	c.SQLitePath = utils.SafeEnv("FORMLOOM_SQLITE_PATH", c.SQLitePath)
	c.StaticDir = utils.SafeEnv("FORMLOOM_STATIC_DIR", c.StaticDir)
	c.DevFrontendURL = utils.SafeEnv("FORMLOOM_DEV_FRONTEND_URL", c.DevFrontendURL)
	c.AdminCode = utils.SafeEnv("FORMLOOM_ADMIN_CODE", c.AdminCode)
}
