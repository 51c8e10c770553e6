package dsl

import (
	"context"
	"fmt"

	formkit "github.com/reoring/formkit"
	js "github.com/reoring/formkit/jsonschema"
)

// AnyAdapter adapts Schema[T] to an any-typed DSL wrapper.
// It keeps the original schema for JSON Schema export and diagnostics.
type AnyAdapter struct {
	parse      func(context.Context, any) (any, error)
	jsonSchema func() (*js.Schema, error)
	orig       any
}

// Of wraps a strongly typed Schema[T] as AnyAdapter for Field builders.
func Of[T any](s formkit.Schema[T]) AnyAdapter {
	return AnyAdapter{
		parse:      func(ctx context.Context, v any) (any, error) { return s.Parse(ctx, v) },
		jsonSchema: s.JSONSchema,
		orig:       s,
	}
}

// Orig returns the original underlying Schema[T] used to create this adapter.
func (ad AnyAdapter) Orig() any { return ad.orig }

// Parse runs the wrapped schema against v.
func (ad AnyAdapter) Parse(ctx context.Context, v any) (any, error) {
	if ad.parse == nil {
		return v, nil
	}
	return ad.parse(ctx, v)
}

// JSONSchema projects the wrapped schema.
func (ad AnyAdapter) JSONSchema() (*js.Schema, error) {
	if ad.jsonSchema == nil {
		return &js.Schema{}, nil
	}
	return ad.jsonSchema()
}

// String renders a short rule summary such as "string(min=3,max=5)".
func (ad AnyAdapter) String() string {
	if s, ok := ad.orig.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%T", ad.orig)
}
