// Command formkit validates records against form field descriptors, exports
// their JSON Schema and prints month grids for calendar views.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	json "github.com/goccy/go-json"
	"github.com/reoring/formkit/i18n"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Global flags
	verbose bool
	lang    string

	logger = zap.NewNop()
)

// errInvalidRecords makes the process exit non-zero without printing usage.
var errInvalidRecords = errors.New("one or more records are invalid")

var rootCmd = &cobra.Command{
	Use:   "formkit",
	Short: "Validate form records and render month grids",
	Long: `formkit compiles form field descriptors (YAML or JSON) into a record
validator. Records are validated concurrently and every failed check is
reported with its field, JSON Pointer path and stable code.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		switch lang {
		case "en", "ja":
			i18n.SetLanguage(lang)
		default:
			return fmt.Errorf("unsupported language %q (want en or ja)", lang)
		}

		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		l, err := config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging, including the compiled rule set")
	rootCmd.PersistentFlags().StringVar(&lang, "lang", "en", "Message language (en or ja)")

	validateCmd.Flags().StringVarP(&formPath, "form", "f", "", "Form descriptor file (.yaml, .yml or .json)")
	validateCmd.Flags().BoolVar(&failFast, "fail-fast", false, "Stop each record at its first failed check")
	validateCmd.Flags().Int64Var(&maxBytes, "max-bytes", 0, "Reject records larger than this many bytes (0 disables)")
	validateCmd.Flags().BoolVar(&strictKeys, "strict", false, "Reject record keys that have no field")
	_ = validateCmd.MarkFlagRequired("form")

	schemaCmd.Flags().StringVarP(&formPath, "form", "f", "", "Form descriptor file (.yaml, .yml or .json)")
	_ = schemaCmd.MarkFlagRequired("form")

	calendarCmd.Flags().IntVar(&calYear, "year", 0, "Year (default: current year)")
	calendarCmd.Flags().IntVar(&calMonth, "month", 0, "Month 1-12 (default: current month)")
	calendarCmd.Flags().BoolVar(&calWeeks, "weeks", false, "Group cells into rows of seven")
	calendarCmd.Flags().BoolVar(&calChronological, "chronological", false, "Mark every past date completed")
	calendarCmd.Flags().StringVar(&calContent, "content", "", "Content of every day cell")

	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(schemaCmd)
	rootCmd.AddCommand(calendarCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
