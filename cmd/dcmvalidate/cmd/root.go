package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/jpfielding/dicomval/pkg/logging"
	"github.com/spf13/cobra"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

// NewRoot builds the dcmvalidate command tree: validate, parse-condition,
// lookup, dictionary-stats, and dump.
func NewRoot(ctx context.Context, gitsha string) *cobra.Command {
	root := &cobra.Command{
		Use:   "dcmvalidate",
		Short: "validate DICOM/DICOS datasets against IOD module requirements",
		Long:  "dcmvalidate checks a dataset's conformance to its SOP Class's IOD: which modules it must carry and which attributes each of those modules requires.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logLevel, _ := cmd.Flags().GetString("log-level")
			logFile, _ := cmd.Flags().GetString("log-file")
			logJSON, _ := cmd.Flags().GetBool("log-json")

			var level slog.Level
			if err := level.UnmarshalText([]byte(strings.ToUpper(logLevel))); err != nil {
				level = slog.LevelInfo
			}

			var w io.Writer = os.Stdout
			if logFile != "" {
				w = &lumberjack.Logger{
					Filename:   logFile,
					MaxSize:    50, // MB
					MaxBackups: 5,
					MaxAge:     28, // days
				}
			}
			slog.SetDefault(logging.Logger(w, logJSON, level))
		},
		Run: func(cmd *cobra.Command, args []string) {
			printCommandTree(cmd, 0)
		},
	}
	root.AddCommand(
		NewVersionCmd(gitsha),
		NewValidateCmd(ctx),
		NewParseConditionCmd(ctx),
		NewLookupCmd(ctx),
		NewDictionaryStatsCmd(ctx),
		NewDumpCmd(ctx),
	)
	pf := root.PersistentFlags()
	pf.String("log-level", "INFO", "log level (DEBUG, INFO, WARN, ERROR)")
	pf.String("log-file", "", "write logs to this file (rotated via lumberjack) instead of stdout")
	pf.Bool("log-json", false, "emit logs as JSON instead of text")
	return root
}

func printCommandTree(cmd *cobra.Command, indent int) {
	fmt.Println(strings.Repeat("\t", indent), cmd.Use+":", cmd.Short)
	for _, sub := range cmd.Commands() {
		printCommandTree(sub, indent+1)
	}
}

// NewVersionCmd reports the build's git SHA.
func NewVersionCmd(gitsha string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "print the build's git SHA",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(gitsha)
		},
	}
}
