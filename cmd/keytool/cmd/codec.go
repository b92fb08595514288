/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package cmd

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/spf13/cobra"
	"github.com/suparena/adminstore/cursor"
	"github.com/suparena/adminstore/keys"
)

func newEncodeCmd() *cobra.Command {
	var prefix bool

	cmd := &cobra.Command{
		Use:   "encode <tag> [components...]",
		Short: "Encode a key from a tag and identifier components",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tag, err := parseTag(args[0])
			if err != nil {
				return err
			}
			components := make([]any, len(args)-1)
			for i, a := range args[1:] {
				components[i] = a
			}
			if prefix {
				fmt.Fprintln(cmd.OutOrStdout(), keys.EncodePrefix(tag, components...))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), keys.Encode(tag, components...))
			return nil
		},
	}
	cmd.Flags().BoolVar(&prefix, "prefix", false, "print the begins_with prefix instead of the key")
	return cmd
}

func newDecodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode <key>",
		Short: "Split a key into its tag and components",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parts, err := keys.Decode(args[0])
			if err != nil {
				return err
			}
			if len(parts) == 0 {
				return fmt.Errorf("empty key")
			}
			out := struct {
				Tag        string   `yaml:"tag"`
				Known      bool     `yaml:"known"`
				Components []string `yaml:"components"`
			}{Tag: parts[0], Components: parts[1:]}
			_, err = keys.ParseTag(parts[0])
			out.Known = err == nil
			return writeYAML(cmd, out)
		},
	}
}

func newCursorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cursor <sort-key>",
		Short: "Print the page token that resumes after the row with this sort key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := cursor.FromStorePosition(map[string]types.AttributeValue{
				keys.AttrSK: &types.AttributeValueMemberS{Value: args[0]},
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
}

func newResumeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resume <tag> <token> [parents...]",
		Short: "Print the start key a page token resumes from",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			tag, err := parseTag(args[0])
			if err != nil {
				return err
			}
			start, err := cursor.ToStorePosition(tag, args[2:], args[1])
			if err != nil {
				return err
			}
			out := map[string]string{}
			for name, av := range start {
				if s, ok := av.(*types.AttributeValueMemberS); ok {
					out[name] = s.Value
				}
			}
			return writeYAML(cmd, out)
		},
	}
}
