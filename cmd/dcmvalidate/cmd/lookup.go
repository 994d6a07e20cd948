package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/jpfielding/dicomval/pkg/dicomval/dictionary"
	"github.com/spf13/cobra"
)

// NewLookupCmd builds the "lookup" subcommand: resolve an attribute by name
// or by "(GGGG,EEEE)" tag literal and print its dictionary entry.
func NewLookupCmd(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lookup <name-or-tag>",
		Short: "look up a DICOM attribute by name or tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dictFile, _ := cmd.Flags().GetString("dict-file")
			dict, err := loadDictionary(dictFile)
			if err != nil {
				return err
			}

			query := strings.TrimSpace(args[0])
			if t, ok := dictionary.ParseTagString(query); ok {
				entry, ok := dict.LookupByTag(t)
				if !ok {
					return fmt.Errorf("no dictionary entry for %s", query)
				}
				fmt.Printf("%s\t%s\tVR=%s VM=%s\n", dictionary.TagString(t), entry.Name, entry.VR, entry.VM)
				return nil
			}

			t, ok := dict.LookupByName(query)
			if !ok {
				return fmt.Errorf("no dictionary entry named %q", query)
			}
			entry, _ := dict.LookupByTag(t)
			fmt.Printf("%s\t%s\tVR=%s VM=%s\n", dictionary.TagString(t), entry.Name, entry.VR, entry.VM)
			return nil
		},
	}
	cmd.Flags().String("dict-file", "", "dict_info.json to search (required for name/tag resolution)")
	return cmd
}
