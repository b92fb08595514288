/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/suparena/adminstore/datastore/ddb"
	"github.com/suparena/adminstore/storagemodels"
)

// row is an untyped table row.
type row = map[string]any

func rawRepository(open Opener, cmd *cobra.Command, configPath string, tagName string) (*ddb.Repository[row], error) {
	tag, err := parseTag(tagName)
	if err != nil {
		return nil, err
	}
	conn, err := open(cmd.Context(), configPath)
	if err != nil {
		return nil, err
	}
	return ddb.New(conn.Client, conn.Table, ddb.Schema[row]{
		Tag:      tag,
		Identify: func(row) []string { return nil },
		PageSize: conn.PageSize,
	})
}

func newGetCmd(open Opener, configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "get <tag> <ids...>",
		Short: "Print the row addressed by a tag and its identifiers",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := rawRepository(open, cmd, *configPath, args[0])
			if err != nil {
				return err
			}
			item, err := repo.Get(cmd.Context(), args[1:]...)
			if err != nil {
				return err
			}
			if item == nil {
				return fmt.Errorf("no %s row for %v", args[0], args[1:])
			}
			return writeYAML(cmd, *item)
		},
	}
}

func newListCmd(open Opener, configPath *string) *cobra.Command {
	var count int32
	var token string

	cmd := &cobra.Command{
		Use:   "list <tag> [parents...]",
		Short: "Print one page of the rows under a tag and parents",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := rawRepository(open, cmd, *configPath, args[0])
			if err != nil {
				return err
			}
			page, err := repo.List(cmd.Context(), storagemodels.ListOptions{Count: count, Token: token}, args[1:]...)
			if err != nil {
				return err
			}
			return writeYAML(cmd, struct {
				Items     []row  `yaml:"items"`
				NextToken string `yaml:"nextToken,omitempty"`
			}{page.Items, page.NextToken})
		},
	}
	cmd.Flags().Int32Var(&count, "count", 0, "page size (default: the configured page size)")
	cmd.Flags().StringVar(&token, "token", "", "token of the page to resume after")
	return cmd
}
