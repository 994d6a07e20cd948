package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/jpfielding/dicomval/pkg/dicomval/condition"
	"github.com/spf13/cobra"
)

// NewParseConditionCmd builds the "parse-condition" subcommand: parse one
// English attribute/module condition and print the resulting tree, useful
// when authoring or debugging a spec JSON's "cond" text.
func NewParseConditionCmd(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse-condition <text>",
		Short: "parse an English condition sentence and print the resulting tree",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dictFile, _ := cmd.Flags().GetString("dict-file")
			dict, err := loadDictionary(dictFile)
			if err != nil {
				return err
			}
			text := strings.Join(args, " ")
			parser := condition.NewParser(dict)
			c := parser.Parse(text)
			fmt.Println(c.Describe())
			return nil
		},
	}
	cmd.Flags().String("dict-file", "", "dict_info.json for attribute name resolution (defaults to an empty dictionary)")
	return cmd
}
