package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	formkit "github.com/reoring/formkit"
	"github.com/reoring/formkit/field"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	formPath   string
	failFast   bool
	maxBytes   int64
	strictKeys bool
)

// validateCmd checks record files against a form
var validateCmd = &cobra.Command{
	Use:   "validate --form FILE RECORD...",
	Short: "Validate record files against a form",
	Long: `Validates each record file (JSON, or YAML by .yaml/.yml extension) and
prints one result per record. Exits non-zero when any record is invalid.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

// schemaCmd prints the JSON Schema of a form
var schemaCmd = &cobra.Command{
	Use:   "schema --form FILE",
	Short: "Print the JSON Schema of a form",
	Args:  cobra.NoArgs,
	RunE:  runSchema,
}

type recordResult struct {
	Record string                 `json:"record"`
	Valid  bool                   `json:"valid"`
	Errors field.ValidationErrors `json:"errors,omitempty"`
}

func loadValidator() (*field.Validator, field.Form, error) {
	form, err := field.LoadFile(formPath)
	if err != nil {
		return nil, form, err
	}
	opts := []field.Option{field.WithLogger(logger.Named("field"))}
	if strictKeys {
		opts = append(opts, field.WithUnknownKeys(formkit.UnknownStrict))
	}
	v, err := field.Build(form.Fields, opts...)
	if err != nil {
		return nil, form, fmt.Errorf("compile %s: %w", formPath, err)
	}
	return v, form, nil
}

func runValidate(cmd *cobra.Command, args []string) error {
	v, _, err := loadValidator()
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	opt := formkit.ParseOpt{FailFast: failFast, MaxBytes: maxBytes}

	results := make([]recordResult, len(args))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range args {
		i, path := i, path
		g.Go(func() error {
			res, err := validateRecord(gctx, v, path, opt)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	invalid := 0
	for _, r := range results {
		if !r.Valid {
			invalid++
		}
	}
	logger.Info("validation finished", zap.Int("records", len(results)), zap.Int("invalid", invalid))
	if err := writeJSON(cmd.OutOrStdout(), results); err != nil {
		return err
	}
	if invalid > 0 {
		return errInvalidRecords
	}
	return nil
}

func validateRecord(ctx context.Context, v *field.Validator, path string, opt formkit.ParseOpt) (recordResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return recordResult{}, err
	}
	defer f.Close()

	var src formkit.Source
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		src = formkit.YAMLReader(f)
	default:
		src = formkit.JSONReader(f)
	}

	res := recordResult{Record: path, Valid: true}
	if _, err := v.ValidateSource(ctx, src, opt); err != nil {
		ve, ok := field.AsValidationErrors(err)
		if !ok {
			return recordResult{}, fmt.Errorf("%s: %w", path, err)
		}
		res.Valid = false
		res.Errors = ve
	}
	logger.Debug("record checked", zap.String("record", path), zap.Int("errors", len(res.Errors)))
	return res, nil
}

func runSchema(cmd *cobra.Command, args []string) error {
	v, form, err := loadValidator()
	if err != nil {
		return err
	}
	s, err := v.JSONSchema()
	if err != nil {
		return err
	}
	if s.Title == "" {
		s.Title = form.Title
	}
	return writeJSON(cmd.OutOrStdout(), s)
}
