/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package config loads adminstore settings and builds the clients they
// describe.
package config

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/joho/godotenv"
	"github.com/suparena/adminstore/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Environment variables read by Load.
const (
	EnvTable     = "ADMINSTORE_TABLE"
	EnvRegion    = "AWS_REGION"
	EnvEndpoint  = "ADMINSTORE_ENDPOINT"
	EnvAccessKey = "AWS_ACCESS_KEY_ID"
	EnvSecretKey = "AWS_SECRET_ACCESS_KEY"
	EnvPageSize  = "ADMINSTORE_PAGE_SIZE"
	EnvLogLevel  = "ADMINSTORE_LOG_LEVEL"
)

// DefaultPageSize is used when no page size is configured.
const DefaultPageSize = 100

// Config describes the table and how to reach it.
type Config struct {
	Table     string `yaml:"table"`
	Region    string `yaml:"region"`
	Endpoint  string `yaml:"endpoint,omitempty"`
	AccessKey string `yaml:"accessKey,omitempty"`
	SecretKey string `yaml:"secretKey,omitempty"`
	PageSize  int32  `yaml:"pageSize,omitempty"`
	LogLevel  string `yaml:"logLevel,omitempty"`
}

// Load reads the YAML file at path when path is not empty, then a .env file
// in the working directory when one exists, then the environment. Later
// sources override earlier ones.
func Load(path string) (*Config, error) {
	cfg := &Config{PageSize: DefaultPageSize, LogLevel: "info"}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	// .env values never override variables already set
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	override(&cfg.Table, EnvTable)
	override(&cfg.Region, EnvRegion)
	override(&cfg.Endpoint, EnvEndpoint)
	override(&cfg.AccessKey, EnvAccessKey)
	override(&cfg.SecretKey, EnvSecretKey)
	override(&cfg.LogLevel, EnvLogLevel)
	if v := os.Getenv(EnvPageSize); v != "" {
		n, err := strconv.ParseInt(v, 10, 32)
		if err != nil {
			return nil, errors.NewValidationError(EnvPageSize, fmt.Sprintf("not a number: %q", v))
		}
		cfg.PageSize = int32(n)
	}

	return cfg, nil
}

func override(dst *string, env string) {
	if v, ok := os.LookupEnv(env); ok && v != "" {
		*dst = v
	}
}

// Validate reports the first missing or out-of-range setting.
func (c *Config) Validate() error {
	if c.Table == "" {
		return errors.NewValidationError("table", "is required")
	}
	if c.Region == "" {
		return errors.NewValidationError("region", "is required")
	}
	if c.PageSize < 0 {
		return errors.NewValidationError("pageSize", "must not be negative")
	}
	if (c.AccessKey == "") != (c.SecretKey == "") {
		return errors.NewValidationError("accessKey", "access key and secret key must be set together")
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return errors.NewValidationError("logLevel", err.Error())
	}
	return nil
}

// NewDynamoDBClient builds a DynamoDB client for cfg. Static credentials are
// used when both keys are set; otherwise the default AWS credential chain
// applies. Endpoint points the client at a local DynamoDB.
func NewDynamoDBClient(ctx context.Context, cfg *Config) (*dynamodb.Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	return dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	}), nil
}

// NewLogger builds a production zap logger at the configured level.
func NewLogger(cfg *Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, errors.NewValidationError("logLevel", err.Error())
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}
