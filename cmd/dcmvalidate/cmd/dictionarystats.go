package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewDictionaryStatsCmd builds the "dictionary-stats" subcommand: report how
// many attributes and UIDs a dictionary JSON pair defines, useful for
// sanity-checking a downloaded or hand-edited spec cache.
func NewDictionaryStatsCmd(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dictionary-stats",
		Short: "report attribute/UID counts for a dictionary JSON pair",
		RunE: func(cmd *cobra.Command, args []string) error {
			dictFile, _ := cmd.Flags().GetString("dict-file")
			uidFile, _ := cmd.Flags().GetString("uid-file")
			if dictFile == "" {
				return fmt.Errorf("--dict-file is required")
			}

			dictBytes, err := os.ReadFile(dictFile)
			if err != nil {
				return fmt.Errorf("reading %s: %w", dictFile, err)
			}
			var entries map[string]json.RawMessage
			if err := json.Unmarshal(dictBytes, &entries); err != nil {
				return fmt.Errorf("parsing %s: %w", dictFile, err)
			}
			fmt.Printf("attributes: %d\n", len(entries))

			if uidFile == "" {
				return nil
			}
			uidBytes, err := os.ReadFile(uidFile)
			if err != nil {
				return fmt.Errorf("reading %s: %w", uidFile, err)
			}
			var categories map[string]map[string]string
			if err := json.Unmarshal(uidBytes, &categories); err != nil {
				return fmt.Errorf("parsing %s: %w", uidFile, err)
			}
			total := 0
			for category, uids := range categories {
				fmt.Printf("  %s: %d\n", category, len(uids))
				total += len(uids)
			}
			fmt.Printf("UIDs: %d\n", total)
			return nil
		},
	}
	cmd.Flags().String("dict-file", "", "dict_info.json to report on (required)")
	cmd.Flags().String("uid-file", "", "uid_info.json to report on (optional)")
	return cmd
}
