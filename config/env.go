/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package config

import (
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	streamerrors "github.com/suparena/kinesisctl/errors"
)

// binding ties a configuration key to its environment variable.
type binding struct {
	key string
	env string
}

var bindings = []binding{
	{"aws.region", "AWS_REGION"},
	{"aws.profile", "AWS_PROFILE"},
	{"aws.accessKeyId", "AWS_ACCESS_KEY"},
	{"aws.secretAccessKey", "AWS_SECRET_KEY"},
	{"aws.endpoint", "KINESIS_ENDPOINT"},
	{"stream.name", "KINESIS_STREAM_NAME"},
	{"stream.shardCount", "KINESIS_SHARD_COUNT"},
	{"stream.recordCount", "KINESIS_RECORD_COUNT"},
	{"stream.listLimit", "KINESIS_LIST_LIMIT"},
	{"stream.shardLimit", "KINESIS_SHARD_LIMIT"},
	{"stream.pollInterval", "KINESIS_POLL_INTERVAL"},
	{"stream.maxWait", "KINESIS_MAX_WAIT"},
	{"stream.keepStream", "KINESIS_KEEP_STREAM"},
	{"ledger.table", "KINESIS_LEDGER_TABLE"},
	{"ledger.endpoint", "KINESIS_LEDGER_ENDPOINT"},
	{"logging.level", "KINESIS_LOG_LEVEL"},
	{"logging.development", "KINESIS_LOG_DEVELOPMENT"},
}

// FlagKeys maps command-line flag names to the configuration key they set.
// A flag only takes effect when it was given on the command line.
var FlagKeys = map[string]string{
	"region":    "aws.region",
	"profile":   "aws.profile",
	"endpoint":  "aws.endpoint",
	"log-level": "logging.level",
	"shards":    "stream.shardCount",
	"records":   "stream.recordCount",
	"count":     "stream.recordCount",
	"keep":      "stream.keepStream",
	"limit":     "stream.listLimit",
	"interval":  "stream.pollInterval",
	"max-wait":  "stream.maxWait",
}

// overlay resolves every key as flag, then AWS_*/KINESIS_* environment
// variable, then the value already in cfg. A value that cannot be parsed is a
// ConfigurationError.
func overlay(cfg *Config, flags *pflag.FlagSet) error {
	v := viper.New()
	for key, value := range defaults(*cfg) {
		v.SetDefault(key, value)
	}
	for _, b := range bindings {
		if err := v.BindEnv(b.key, b.env); err != nil {
			return streamerrors.NewConfigurationError(b.env, err)
		}
	}
	if flags != nil {
		for name, key := range FlagKeys {
			flag := flags.Lookup(name)
			if flag == nil {
				continue
			}
			if err := v.BindPFlag(key, flag); err != nil {
				return streamerrors.NewConfigurationError("--"+name, err)
			}
		}
	}

	var out Config
	if err := v.Unmarshal(&out); err != nil {
		return streamerrors.NewConfigurationError("environment", err)
	}
	*cfg = out
	return nil
}

func defaults(cfg Config) map[string]any {
	return map[string]any{
		"aws.region":          cfg.AWS.Region,
		"aws.profile":         cfg.AWS.Profile,
		"aws.accessKeyId":     cfg.AWS.AccessKeyID,
		"aws.secretAccessKey": cfg.AWS.SecretAccessKey,
		"aws.endpoint":        cfg.AWS.Endpoint,
		"stream.name":         cfg.Stream.Name,
		"stream.shardCount":   cfg.Stream.ShardCount,
		"stream.recordCount":  cfg.Stream.RecordCount,
		"stream.listLimit":    cfg.Stream.ListLimit,
		"stream.shardLimit":   cfg.Stream.ShardLimit,
		"stream.pollInterval": cfg.Stream.PollInterval,
		"stream.maxWait":      cfg.Stream.MaxWait,
		"stream.keepStream":   cfg.Stream.KeepStream,
		"ledger.table":        cfg.Ledger.Table,
		"ledger.endpoint":     cfg.Ledger.Endpoint,
		"logging.level":       cfg.Logging.Level,
		"logging.development": cfg.Logging.Development,
	}
}
