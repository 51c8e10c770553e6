package dsl

import (
	"context"

	formkit "github.com/reoring/formkit"
	"github.com/reoring/formkit/i18n"
)

type objectBuilder struct {
	keys          []string
	fields        map[string]AnyAdapter
	required      map[string]struct{}
	unknownPolicy formkit.UnknownPolicy
	refines       []objRefine
	dupKeys       []string
}

type fieldStep struct {
	b    *objectBuilder
	name string
}

// Object creates a new object builder with safe defaults (UnknownStrict).
func Object() *objectBuilder {
	return &objectBuilder{
		fields:        map[string]AnyAdapter{},
		required:      map[string]struct{}{},
		unknownPolicy: formkit.UnknownStrict,
	}
}

// Field registers a field with its adapter. Fields keep registration order
// for parsing and issue reporting.
func (b *objectBuilder) Field(name string, ad AnyAdapter) *fieldStep {
	if _, exists := b.fields[name]; exists {
		b.dupKeys = append(b.dupKeys, name)
	} else {
		b.keys = append(b.keys, name)
	}
	b.fields[name] = ad
	return &fieldStep{b: b, name: name}
}

// Required marks the field as required and returns the builder.
func (f *fieldStep) Required() *objectBuilder {
	f.b.required[f.name] = struct{}{}
	return f.b
}

func (f *fieldStep) Field(name string, ad AnyAdapter) *fieldStep    { return f.b.Field(name, ad) }
func (f *fieldStep) Build() (formkit.Schema[map[string]any], error) { return f.b.Build() }
func (f *fieldStep) MustBuild() formkit.Schema[map[string]any]      { return f.b.MustBuild() }

// Unknown sets the unknown-key policy.
func (b *objectBuilder) Unknown(p formkit.UnknownPolicy) *objectBuilder {
	b.unknownPolicy = p
	return b
}

// Refine adds an object-level refine function. It runs after every field
// parsed successfully.
func (b *objectBuilder) Refine(name string, fn func(context.Context, map[string]any) error) *objectBuilder {
	if fn == nil {
		return b
	}
	b.refines = append(b.refines, objRefine{name: name, fn: fn})
	return b
}

// Build validates the builder and returns a Schema. Registering the same
// field twice is a configuration error.
func (b *objectBuilder) Build() (formkit.Schema[map[string]any], error) {
	var iss formkit.Issues
	for _, k := range b.dupKeys {
		iss = formkit.AppendIssues(iss, formkit.Root().Field(k).Issue(formkit.CodeInvalidConfig, i18n.T(formkit.CodeInvalidConfig, nil), "reason", "duplicate field"))
	}
	if len(iss) > 0 {
		return nil, &formkit.ConfigError{Issues: iss}
	}
	fields := make(map[string]AnyAdapter, len(b.fields))
	for k, v := range b.fields {
		fields[k] = v
	}
	required := make(map[string]struct{}, len(b.required))
	for k := range b.required {
		required[k] = struct{}{}
	}
	return &objectSchema{
		keys:          append([]string(nil), b.keys...),
		fields:        fields,
		required:      required,
		unknownPolicy: b.unknownPolicy,
		refines:       append([]objRefine(nil), b.refines...),
	}, nil
}

// MustBuild is like Build but panics on error.
func (b *objectBuilder) MustBuild() formkit.Schema[map[string]any] {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}
