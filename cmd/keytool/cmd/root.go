/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/suparena/adminstore"
	"github.com/suparena/adminstore/config"
	"github.com/suparena/adminstore/datastore/ddb"
	"github.com/suparena/adminstore/keys"
	"gopkg.in/yaml.v3"
)

// Connection is an open table and the page size configured for it.
type Connection struct {
	Client   ddb.Client
	Table    string
	PageSize int32
}

// Opener connects to the table described by the config file at path.
type Opener func(ctx context.Context, path string) (*Connection, error)

// OpenFromConfig loads configuration from path and the environment and
// builds a DynamoDB client for it.
func OpenFromConfig(ctx context.Context, path string) (*Connection, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	client, err := config.NewDynamoDBClient(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &Connection{Client: client, Table: cfg.Table, PageSize: cfg.PageSize}, nil
}

// NewRootCommand builds the keytool command tree. Commands that read the
// table connect through open.
func NewRootCommand(open Opener) *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:   "keytool",
		Short: "Inspect adminstore keys, page tokens and rows",
		Long: `keytool encodes and decodes the keys of the adminstore table and
converts between sort keys and page tokens.

Example:
  keytool encode TestExecution bot-1 run-7
  keytool decode 'TestExecution#bot-1#run-7'
  keytool cursor 'TestExecution#bot-1#run-7'
  keytool resume TestExecution cnVuLTc bot-1
  keytool get Bot bot-1 --config adminstore.yaml`,
		Version:      adminstore.Version,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file (environment variables override it)")

	root.AddCommand(
		newEncodeCmd(),
		newDecodeCmd(),
		newCursorCmd(),
		newResumeCmd(),
		newVersionCmd(),
		newGetCmd(open, &configPath),
		newListCmd(open, &configPath),
	)
	return root
}

// Execute runs the CLI
func Execute() error {
	return NewRootCommand(OpenFromConfig).Execute()
}

func parseTag(name string) (keys.Tag, error) {
	tag, err := keys.ParseTag(name)
	if err != nil {
		names := make([]string, 0, len(keys.Tags()))
		for _, t := range keys.Tags() {
			names = append(names, t.String())
		}
		return keys.Tag{}, fmt.Errorf("%w (known: %v)", err, names)
	}
	return tag, nil
}

func writeYAML(cmd *cobra.Command, v any) error {
	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeYAML(cmd, adminstore.GetVersionInfo())
		},
	}
}
