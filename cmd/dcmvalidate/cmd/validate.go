package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/jpfielding/dicomval/pkg/dicomval/dataset"
	"github.com/jpfielding/dicomval/pkg/dicomval/dictionary"
	"github.com/jpfielding/dicomval/pkg/dicomval/specdata"
	"github.com/jpfielding/dicomval/pkg/dicomval/validator"
	"github.com/jpfielding/dicomval/pkg/dicos"
	"github.com/spf13/cobra"
)

// NewValidateCmd builds the "validate" subcommand: read one or more
// DICOM/DICOS files and report their IOD conformance.
func NewValidateCmd(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <file> [file...]",
		Short: "validate DICOM/DICOS files against their SOP Class's IOD",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			specDir, _ := cmd.Flags().GetString("spec-dir")
			dictFile, _ := cmd.Flags().GetString("dict-file")
			batch, _ := cmd.Flags().GetBool("batch")

			iod, modules, err := loadSpec(specDir)
			if err != nil {
				return err
			}
			dict, err := loadDictionary(dictFile)
			if err != nil {
				return err
			}

			runCtx := ctx
			if batch {
				runCtx = context.WithValue(ctx, correlationIDKey{}, uuid.New().String())
			}

			exitCode := 0
			for _, path := range args {
				if err := validateOne(runCtx, path, iod, modules, dict); err != nil {
					slog.Error("validation failed", "file", path, "error", err)
					exitCode = 1
				}
			}
			if exitCode != 0 {
				return fmt.Errorf("one or more files failed validation")
			}
			return nil
		},
	}
	pf := cmd.PersistentFlags()
	pf.String("spec-dir", "", "directory holding iod_info.json/module_info.json (defaults to the builtin CT/Enhanced-XA table)")
	pf.String("dict-file", "", "dict_info.json for attribute name resolution (defaults to an empty dictionary)")
	pf.Bool("batch", false, "tag each file's \"validating\" log line with a correlation ID shared by this run")
	return cmd
}

type correlationIDKey struct{}

func validateOne(ctx context.Context, path string, iod *specdata.IODSpecs, modules *specdata.ModuleSpecs, dict *dictionary.Index) error {
	corrID, _ := ctx.Value(correlationIDKey{}).(string)
	logArgs := []any{"file", path}
	if corrID != "" {
		logArgs = append(logArgs, "correlation_id", corrID)
	}
	slog.Info("validating", logArgs...)

	ds, err := dicos.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	view := dataset.NewDicosView(ds)

	report, err := validator.Validate(ctx, view, iod, modules, dict)
	if err != nil {
		return fmt.Errorf("validating %s: %w", path, err)
	}

	printReport(path, report)
	if report.IsFatal() || !report.IsClean() {
		return fmt.Errorf("%s: not conformant", path)
	}
	return nil
}

func printReport(path string, r validator.Report) {
	fmt.Printf("%s:\n", path)
	if r.IsFatal() {
		fmt.Printf("  FATAL: %s\n", r.Fatal)
		return
	}
	if r.IsClean() {
		fmt.Println("  conformant")
		return
	}
	printCategory("missing", r.Missing)
	printCategory("empty", r.Empty)
	printCategory("not allowed", r.NotAllowed)
}

func printCategory(label string, tags []string) {
	if len(tags) == 0 {
		return
	}
	fmt.Printf("  %s:\n", label)
	for _, t := range tags {
		fmt.Printf("    %s\n", t)
	}
}

func loadSpec(dir string) (*specdata.IODSpecs, *specdata.ModuleSpecs, error) {
	if dir == "" {
		iod, modules := specdata.Builtin()
		return iod, modules, nil
	}
	return specdata.LoadDir(dir)
}

func loadDictionary(path string) (*dictionary.Index, error) {
	if path == "" {
		return dictionary.New([]byte("{}"), nil)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return dictionary.New(data, nil)
}
