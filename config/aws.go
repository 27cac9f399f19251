/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package config

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"

	streamerrors "github.com/suparena/kinesisctl/errors"
)

// AWSConfig loads the AWS configuration for cfg and resolves credentials once,
// so that missing credentials fail at startup with a ConfigurationError.
func AWSConfig(ctx context.Context, cfg AWS) (aws.Config, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.Profile != "" {
		opts = append(opts, awsconfig.WithSharedConfigProfile(cfg.Profile))
	}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, streamerrors.NewConfigurationError("aws config", err)
	}

	if awsCfg.Credentials == nil {
		return aws.Config{}, streamerrors.NewConfigurationError("credentials", errors.New("no credential provider"))
	}
	if _, err := awsCfg.Credentials.Retrieve(ctx); err != nil {
		return aws.Config{}, streamerrors.NewConfigurationError("credentials", err)
	}
	return awsCfg, nil
}
