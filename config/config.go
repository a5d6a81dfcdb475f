package config

import (
	"io/ioutil"
	"os"

	"gopkg.in/yaml.v2"
)

// App is the loaded application configuration.
var App Config

type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
}

type DatabaseConfig struct {
	// Driver is "sqlite" (default, the simulation's local disk store) or
	// "postgres".
	Driver string `yaml:"driver"`
	// Path is the SQLite database file.
	Path string `yaml:"path"`
	Host string `yaml:"host"`
	Port string `yaml:"port"`
	User string `yaml:"user"`
	Pass string `yaml:"pass"`
	Name string `yaml:"name"`
}

func defaults() Config {
	var cfg Config
	cfg.Server.Port = "3000"
	cfg.Database.Driver = "sqlite"
	cfg.Database.Path = "mercato.db"
	return cfg
}

// LoadConfig reads the YAML config file, falling back to defaults when the
// file is absent. Environment variables override database settings so
// deployments can keep credentials out of the file.
func LoadConfig() error {
	App = defaults()

	path := os.Getenv("MERCATO_CONFIG")
	if path == "" {
		path = "mercato.yml"
	}

	raw, err := ioutil.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(raw, &App); err != nil {
			return err
		}
	} else if !os.IsNotExist(err) {
		return err
	}

	overrideFromEnv(&App.Database)
	return nil
}

func overrideFromEnv(db *DatabaseConfig) {
	if v := os.Getenv("DATABASE_DRIVER"); v != "" {
		db.Driver = v
	}
	if v := os.Getenv("DATABASE_PATH"); v != "" {
		db.Path = v
	}
	if v := os.Getenv("DATABASE_HOST"); v != "" {
		db.Host = v
	}
	if v := os.Getenv("DATABASE_PORT"); v != "" {
		db.Port = v
	}
	if v := os.Getenv("DATABASE_USER"); v != "" {
		db.User = v
	}
	if v := os.Getenv("DATABASE_PASS"); v != "" {
		db.Pass = v
	}
	if v := os.Getenv("DATABASE_NAME"); v != "" {
		db.Name = v
	}
}

func InitializeConfig() error {
	NewLoggerService()

	if err := LoadConfig(); err != nil {
		return err
	}

	if err := ConnectDatabase(); err != nil {
		return err
	}

	return nil
}
