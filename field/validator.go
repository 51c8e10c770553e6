package field

import (
	"context"
	"errors"
	"fmt"
	"strings"

	formkit "github.com/reoring/formkit"
	js "github.com/reoring/formkit/jsonschema"
)

// Validator is a compiled record validator: one rule per supported field.
// It is immutable and safe for concurrent use.
type Validator struct {
	schema  formkit.Schema[map[string]any]
	rules   rules
	index   map[string]int
	descs   map[string]Descriptor
	skipped []string
}

// Validate checks record and returns nil or ValidationErrors holding every
// failed check of every field.
func (v *Validator) Validate(ctx context.Context, record map[string]any) error {
	_, err := v.Parse(ctx, record)
	return err
}

// Parse validates record and returns a copy holding only the fields with a
// rule (plus unknown keys under the passthrough policy).
func (v *Validator) Parse(ctx context.Context, record map[string]any) (map[string]any, error) {
	if record == nil {
		record = map[string]any{}
	}
	out, err := v.schema.Parse(ctx, record)
	if err != nil {
		return nil, toValidationErrors(err)
	}
	return out, nil
}

// ValidateSource decodes a JSON or YAML record from src and validates it.
func (v *Validator) ValidateSource(ctx context.Context, src formkit.Source, opts ...formkit.ParseOpt) (map[string]any, error) {
	out, err := formkit.ParseFrom(ctx, v.schema, src, opts...)
	if err != nil {
		return nil, toValidationErrors(err)
	}
	return out, nil
}

// Schema exposes the underlying record schema.
func (v *Validator) Schema() formkit.Schema[map[string]any] { return v.schema }

// Fields returns the names of fields with a rule, in descriptor order.
func (v *Validator) Fields() []string {
	out := make([]string, len(v.rules))
	for i, r := range v.rules {
		out[i] = r.Name
	}
	return out
}

// Rules returns a summary of each compiled rule, in descriptor order.
func (v *Validator) Rules() []Rule { return append([]Rule(nil), v.rules...) }

// Has reports whether name has a rule.
func (v *Validator) Has(name string) bool {
	_, ok := v.index[name]
	return ok
}

// Len returns the number of rules.
func (v *Validator) Len() int { return len(v.rules) }

// Skipped returns the names of descriptors whose type has no rule.
func (v *Validator) Skipped() []string { return append([]string(nil), v.skipped...) }

// JSONSchema projects the validator into a JSON Schema document. Choice
// labels and field labels become titles.
func (v *Validator) JSONSchema() (*js.Schema, error) {
	s, err := v.schema.JSONSchema()
	if err != nil {
		return nil, err
	}
	s.Schema = js.Draft
	for name, prop := range s.Properties {
		d, ok := v.descs[name]
		if !ok {
			continue
		}
		prop.Title = d.Label
		if d.Type.Enumerated() {
			for _, o := range d.Options {
				prop.OneOf = append(prop.OneOf, &js.Schema{Const: o.Value, Title: o.Label})
			}
		}
	}
	return s, nil
}

// ValidationError is one failed check of one field.
type ValidationError struct {
	Field   string `json:"field"`
	Path    string `json:"path"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// ValidationErrors accumulates failures across fields.
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return ""
	}
	const maxShown = 3
	msgs := make([]string, 0, maxShown)
	for i := 0; i < len(ve) && i < maxShown; i++ {
		msgs = append(msgs, ve[i].Error())
	}
	s := strings.Join(msgs, "; ")
	if len(ve) > maxShown {
		s += fmt.Sprintf("; ... (total %d)", len(ve))
	}
	return s
}

// ByField groups messages by field name, keeping check order.
func (ve ValidationErrors) ByField() map[string][]string {
	out := make(map[string][]string)
	for _, e := range ve {
		out[e.Field] = append(out[e.Field], e.Message)
	}
	return out
}

// AsValidationErrors extracts ValidationErrors from err.
func AsValidationErrors(err error) (ValidationErrors, bool) {
	var ve ValidationErrors
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

func toValidationErrors(err error) error {
	iss, ok := formkit.AsIssues(err)
	if !ok {
		return err
	}
	out := make(ValidationErrors, 0, len(iss))
	for _, it := range iss {
		out = append(out, ValidationError{
			Field:   fieldOf(it.Path),
			Path:    it.Path,
			Code:    it.Code,
			Message: it.Message,
		})
	}
	return out
}

// fieldOf returns the record key addressed by the first pointer segment.
func fieldOf(pointer string) string {
	p := strings.TrimPrefix(pointer, "/")
	if i := strings.IndexByte(p, '/'); i >= 0 {
		p = p[:i]
	}
	return formkit.UnescapePointerSegment(p)
}
