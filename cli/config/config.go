package config

import (
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/pkg/errors"

	"github.com/lidofinance/lido-node-operator-key-checker-cli/storage/basedb"
)

// Config is the shared configuration for all key-checker commands, loaded
// from an optional YAML file and the environment. Command-line flags take
// precedence over both.
type Config struct {
	LogLevel       string `yaml:"LogLevel" env:"LOG_LEVEL" env-default:"info" env-description:"Defines logger's log level"`
	LogLevelFormat string `yaml:"LogLevelFormat" env:"LOG_LEVEL_FORMAT" env-default:"capital" env-description:"Defines logger's level format"`
	LogFilePath    string `yaml:"LogFilePath" env:"LOG_FILE_PATH" env-default:"" env-description:"Path to an additional JSON log file"`

	DataDir     string `yaml:"DataDir" env:"DATA_DIR" env-default:"" env-description:"Directory holding the per-network key cache (defaults to the user home)"`
	Concurrency int    `yaml:"Concurrency" env:"CONCURRENCY" env-default:"0" env-description:"Worker limit for key loading and validation (0 = number of CPUs)"`

	DB basedb.Options `yaml:"db"`
}

// Load reads the configuration from path when given, otherwise from the
// environment only.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		if err := cleanenv.ReadConfig(path, cfg); err != nil {
			return nil, errors.Wrap(err, "failed to read config file")
		}
		return cfg, nil
	}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, errors.Wrap(err, "failed to read config from environment")
	}
	return cfg, nil
}
