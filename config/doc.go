/*
Package config loads kinesisctl settings.

Sources are applied in order, later ones winning:

 1. built-in defaults (Default)
 2. a YAML file
 3. a .env file, which only fills variables not already set
 4. AWS_* and KINESIS_* environment variables
 5. command-line flags listed in FlagKeys, when given

Environment and flags are resolved through a viper instance and unmarshalled
back into Config.

Example YAML:

	aws:
	  region: us-west-2
	  profile: default
	stream:
	  name: boundary-test-stream
	  shardCount: 1
	  pollInterval: 20s
	  maxWait: 10m
	ledger:
	  table: kinesis-receipts

AWSConfig turns the AWS section into an aws.Config and fails with an
errors.ConfigurationError when no credentials can be resolved.
*/
package config
