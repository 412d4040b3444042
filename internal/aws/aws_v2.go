// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package aws

import (
	"context"
	"fmt"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"
)

// DefaultRegion is where the USGS staged products bucket lives.
const DefaultRegion = "us-west-2"

// options holds optional overrides for AWS config loading.
type options struct {
	profile   string
	region    string
	anonymous bool
	retryer   func() awsv2.Retryer
}

// Option customizes how AWS config is loaded.
// Default behavior (no options) inherits the shell environment and shared
// config chain (AWS_PROFILE, ~/.aws/config, ~/.aws/credentials, IMDS, etc.).
type Option func(*options)

// WithProfile sets the shared config profile. Defaults to AWS_PROFILE/env chain.
func WithProfile(profile string) Option {
	return func(o *options) { o.profile = profile }
}

// WithRegion sets the region override. Defaults to env/profile/metadata chain.
func WithRegion(region string) Option {
	return func(o *options) { o.region = region }
}

// WithAnonymous skips request signing. Public buckets such as prd-tnm need
// no credentials, and a broken local profile must not get in the way.
func WithAnonymous() Option {
	return func(o *options) { o.anonymous = true }
}

// WithRetryer injects a custom retryer; if not set, SDK defaults are used.
func WithRetryer(newRetryer func() awsv2.Retryer) Option {
	return func(o *options) { o.retryer = newRetryer }
}

// LoadAWSConfig loads AWS SDK v2 config. By default it inherits the shell's
// AWS setup (AWS_PROFILE, shared config, env, IMDS). Options can override
// profile, region, credentials and retryer without changing callers.
func LoadAWSConfig(ctx context.Context, opts ...Option) (awsv2.Config, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	var loadOpts []func(*config.LoadOptions) error
	if o.profile != "" {
		loadOpts = append(loadOpts, config.WithSharedConfigProfile(o.profile))
	}
	if o.region != "" {
		loadOpts = append(loadOpts, config.WithRegion(o.region))
	}
	if o.anonymous {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(awsv2.AnonymousCredentials{}))
	}
	if o.retryer != nil {
		loadOpts = append(loadOpts, config.WithRetryer(o.retryer))
	}

	return config.LoadDefaultConfig(ctx, loadOpts...)
}

// NewS3 constructs a v2 S3 client from the provided config. Additional service
// options can be supplied via optFns.
func NewS3(cfg awsv2.Config, optFns ...func(*s3v2.Options)) *s3v2.Client {
	return s3v2.NewFromConfig(cfg, optFns...)
}

// WithS3Endpoint points the client at a custom base endpoint (a mirror or a
// local S3 emulator) using path-style addressing.
func WithS3Endpoint(endpoint string) func(*s3v2.Options) {
	return func(o *s3v2.Options) {
		o.BaseEndpoint = awsv2.String(endpoint)
		o.UsePathStyle = true
	}
}

// NewPublicS3 returns a client for the staged products bucket. Requests are
// unsigned unless profile names a shared config profile, and SDK retries are
// off so a failed download surfaces at once. endpoint, when set, replaces the
// AWS endpoint.
func NewPublicS3(ctx context.Context, endpoint, profile string) (*s3v2.Client, error) {
	opts := []Option{
		WithRegion(DefaultRegion),
		WithRetryer(func() awsv2.Retryer { return awsv2.NopRetryer{} }),
	}
	if profile != "" {
		opts = append(opts, WithProfile(profile))
	} else {
		opts = append(opts, WithAnonymous())
	}

	cfg, err := LoadAWSConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	var fns []func(*s3v2.Options)
	if endpoint != "" {
		fns = append(fns, WithS3Endpoint(endpoint))
	}
	return NewS3(cfg, fns...), nil
}
