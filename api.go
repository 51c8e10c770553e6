package formkit

import (
	"context"

	js "github.com/reoring/formkit/jsonschema"
)

// Schema surfaces the pillars of type checking, value validation and
// parsing for a single value.
type Schema[T any] interface {
	// Parse transforms an unknown input into T (TypeCheck -> RuleCheck ->
	// Refine). It returns Issues when validation fails.
	Parse(ctx context.Context, v any) (T, error)

	// TypeCheck verifies the dynamic type of v.
	TypeCheck(ctx context.Context, v any) error

	// RuleCheck runs length/pattern/enum/literal validations assuming
	// TypeCheck already succeeded.
	RuleCheck(ctx context.Context, v any) error

	// Validate composes TypeCheck followed by RuleCheck.
	Validate(ctx context.Context, v any) error

	// JSONSchema projects the schema into a JSON Schema representation.
	JSONSchema() (*js.Schema, error)
}

// Refiner provides an optional hook at the end of parsing to perform
// cross-field validation. If it is not implemented, the phase is skipped.
type Refiner[T any] interface {
	Refine(ctx context.Context, v T) error
}

type contextKey int

const (
	_ctxKeyFailFast contextKey = iota
)

// WithFailFast returns a child context that marks fail-fast parsing behavior.
// ParseFrom sets it from ParseOpt; schema implementations consume it.
func WithFailFast(ctx context.Context, enabled bool) context.Context {
	return context.WithValue(ctx, _ctxKeyFailFast, enabled)
}

// IsFailFast reports whether the current parse should stop on the first issue.
func IsFailFast(ctx context.Context) bool {
	v := ctx.Value(_ctxKeyFailFast)
	b, _ := v.(bool)
	return b
}
