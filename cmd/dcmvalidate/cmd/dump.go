package cmd

import (
	"context"
	"fmt"

	"github.com/jpfielding/dicomval/pkg/dicomval/dataset"
	"github.com/jpfielding/dicomval/pkg/dicomval/dictionary"
	"github.com/jpfielding/dicomval/pkg/dicomval/validator"
	"github.com/jpfielding/dicomval/pkg/dicos"
	"github.com/spf13/cobra"
)

// NewDumpCmd builds the "dump" subcommand: print every element in a
// DICOM/DICOS file as a flattened table, each annotated with its
// validation classification, grounded on cmd/ctl/cmd/analyze.go's
// runAnalyze dumping style and on original_source/dump_dcm_info.py.
func NewDumpCmd(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump <file>",
		Short: "print a flattened element table with validation classification",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			specDir, _ := cmd.Flags().GetString("spec-dir")
			dictFile, _ := cmd.Flags().GetString("dict-file")

			iod, modules, err := loadSpec(specDir)
			if err != nil {
				return err
			}
			dict, err := loadDictionary(dictFile)
			if err != nil {
				return err
			}

			ds, err := dicos.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}
			view := dataset.NewDicosView(ds)

			report, err := validator.Validate(ctx, view, iod, modules, dict)
			if err != nil {
				return fmt.Errorf("validating %s: %w", args[0], err)
			}
			classified := classify(report)

			fmt.Printf("Total elements: %d\n\n", len(ds.Elements))
			for t, elem := range ds.Elements {
				tagStr := dictionary.TagString(t)
				name := ""
				if entry, ok := dict.LookupByTag(t); ok {
					name = entry.Name
				}
				status := classified[tagStr]
				fmt.Printf("%s %-32s %-4s %v", tagStr, name, elem.VR, elem.Value)
				if status != "" {
					fmt.Printf(" [%s]", status)
				}
				fmt.Println()
			}
			return nil
		},
	}
	cmd.Flags().String("spec-dir", "", "directory holding iod_info.json/module_info.json (defaults to the builtin CT/Enhanced-XA table)")
	cmd.Flags().String("dict-file", "", "dict_info.json for attribute names (defaults to an empty dictionary)")
	return cmd
}

func classify(r validator.Report) map[string]string {
	out := make(map[string]string, len(r.Missing)+len(r.Empty)+len(r.NotAllowed))
	for _, t := range r.Missing {
		out[t] = "missing"
	}
	for _, t := range r.Empty {
		out[t] = "empty"
	}
	for _, t := range r.NotAllowed {
		out[t] = "not allowed"
	}
	return out
}
