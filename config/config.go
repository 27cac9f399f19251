/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	streamerrors "github.com/suparena/kinesisctl/errors"
)

// Config is the top-level configuration loaded from file, .env and environment.
type Config struct {
	AWS     AWS     `yaml:"aws"`
	Stream  Stream  `yaml:"stream"`
	Ledger  Ledger  `yaml:"ledger"`
	Logging Logging `yaml:"logging"`
}

// AWS selects the account, region and endpoint.
type AWS struct {
	Region string `yaml:"region"`
	// Profile is the shared config profile. Empty lets the SDK pick
	// AWS_PROFILE or "default".
	Profile         string `yaml:"profile"`
	Endpoint        string `yaml:"endpoint"`
	AccessKeyID     string `yaml:"accessKeyId"`
	SecretAccessKey string `yaml:"secretAccessKey"`
}

// Stream configures the sample run.
type Stream struct {
	Name         string        `yaml:"name"`
	ShardCount   int           `yaml:"shardCount"`
	RecordCount  int           `yaml:"recordCount"`
	ListLimit    int32         `yaml:"listLimit"`
	ShardLimit   int32         `yaml:"shardLimit"`
	PollInterval time.Duration `yaml:"pollInterval"`
	MaxWait      time.Duration `yaml:"maxWait"`
	KeepStream   bool          `yaml:"keepStream"`
}

// Ledger enables the DynamoDB receipt ledger when Table is set.
type Ledger struct {
	Table    string `yaml:"table"`
	Endpoint string `yaml:"endpoint"`
}

// Logging configures the zap logger.
type Logging struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// Default returns built-in defaults.
func Default() Config {
	return Config{
		AWS: AWS{
			Region: "us-west-2",
		},
		Stream: Stream{
			Name:         "boundary-test-stream",
			ShardCount:   1,
			RecordCount:  100,
			ListLimit:    10,
			ShardLimit:   10,
			PollInterval: 20 * time.Second,
			MaxWait:      10 * time.Minute,
		},
		Logging: Logging{
			Level: "info",
		},
	}
}

// Load builds a Config from defaults, the YAML file at path (optional), the
// .env file at envFile (missing is fine), the environment and the flags
// named in FlagKeys that were set, in that order. flags may be nil.
func Load(path, envFile string, flags *pflag.FlagSet) (Config, error) {
	cfg := Default()

	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, streamerrors.NewConfigurationError("config file", err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, streamerrors.NewConfigurationError("config file", fmt.Errorf("%s: %w", path, err))
		}
	}

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, streamerrors.NewConfigurationError("env file", err)
		}
	}

	if err := overlay(&cfg, flags); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the settings a run depends on.
func (c Config) Validate() error {
	switch {
	case c.AWS.Region == "":
		return streamerrors.NewConfigurationError("aws.region", errors.New("must not be empty"))
	case c.Stream.Name == "":
		return streamerrors.NewConfigurationError("stream.name", errors.New("must not be empty"))
	case c.Stream.ShardCount <= 0:
		return streamerrors.NewConfigurationError("stream.shardCount", errors.New("must be positive"))
	case c.Stream.RecordCount < 0:
		return streamerrors.NewConfigurationError("stream.recordCount", errors.New("must not be negative"))
	case c.Stream.ListLimit <= 0 || c.Stream.ListLimit > 10000:
		return streamerrors.NewConfigurationError("stream.listLimit", errors.New("must be between 1 and 10000"))
	case c.Stream.PollInterval <= 0:
		return streamerrors.NewConfigurationError("stream.pollInterval", errors.New("must be positive"))
	case c.Stream.MaxWait <= 0:
		return streamerrors.NewConfigurationError("stream.maxWait", errors.New("must be positive"))
	case (c.AWS.AccessKeyID == "") != (c.AWS.SecretAccessKey == ""):
		return streamerrors.NewConfigurationError("aws credentials", errors.New("access key and secret key must be set together"))
	}
	return nil
}
