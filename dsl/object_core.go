package dsl

import (
	"context"
	"sort"

	formkit "github.com/reoring/formkit"
	"github.com/reoring/formkit/i18n"
	js "github.com/reoring/formkit/jsonschema"
)

type objectSchema struct {
	keys          []string
	fields        map[string]AnyAdapter
	required      map[string]struct{}
	unknownPolicy formkit.UnknownPolicy
	refines       []objRefine
}

// Ensure objectSchema implements formkit.Schema[map[string]any]
var _ formkit.Schema[map[string]any] = (*objectSchema)(nil)

type objRefine struct {
	name string
	fn   func(context.Context, map[string]any) error
}

func expectedObject() formkit.Issues {
	return formkit.Issues{formkit.Issue{Path: "/", Code: formkit.CodeInvalidType, Message: i18n.T(formkit.CodeInvalidType, nil), Hint: "expected object"}}
}

func requiredIssue(k string) formkit.Issue {
	return formkit.Issue{Path: formkit.Root().Field(k).Pointer(), Code: formkit.CodeRequired, Message: i18n.T(formkit.CodeRequired, nil), Hint: "required property missing"}
}

// collectKnown parses known fields in registration order. Issues from one
// field never suppress the others unless fail-fast is requested.
func (o *objectSchema) collectKnown(ctx context.Context, src map[string]any) (map[string]any, formkit.Issues) {
	out := make(map[string]any, len(src))
	var iss formkit.Issues
	for _, k := range o.keys {
		ad := o.fields[k]
		val, exists := src[k]
		if !exists {
			if _, req := o.required[k]; req {
				iss = formkit.AppendIssues(iss, requiredIssue(k))
				if formkit.IsFailFast(ctx) {
					return out, iss
				}
			}
			continue
		}
		parsed, err := ad.Parse(ctx, val)
		if err != nil {
			iss = formkit.AppendIssues(iss, formkit.RebaseIssues(formkit.Root().Field(k).Pointer(), err)...)
			if formkit.IsFailFast(ctx) {
				return out, iss
			}
			continue
		}
		out[k] = parsed
	}
	return out, iss
}

// collectUnknown processes unknown keys according to unknownPolicy and may write into out for passthrough.
func (o *objectSchema) collectUnknown(src map[string]any, out map[string]any) formkit.Issues {
	var iss formkit.Issues
	// unknown keys in key-sorted order
	uks := make([]string, 0, len(src))
	for k := range src {
		if _, known := o.fields[k]; !known {
			uks = append(uks, k)
		}
	}
	sort.Strings(uks)
	for _, k := range uks {
		switch o.unknownPolicy {
		case formkit.UnknownStrict:
			iss = formkit.AppendIssues(iss, formkit.Issue{Path: formkit.Root().Field(k).Pointer(), Code: formkit.CodeUnknownKey, Message: i18n.T(formkit.CodeUnknownKey, nil)})
		case formkit.UnknownPassthrough:
			out[k] = src[k]
		case formkit.UnknownStrip:
			// drop
		}
	}
	return iss
}

func (o *objectSchema) Parse(ctx context.Context, v any) (map[string]any, error) {
	src, ok := v.(map[string]any)
	if !ok {
		return nil, expectedObject()
	}
	out, iss := o.collectKnown(ctx, src)
	if formkit.IsFailFast(ctx) && len(iss) > 0 {
		return nil, iss
	}
	if issUnknown := o.collectUnknown(src, out); len(issUnknown) > 0 {
		iss = formkit.AppendIssues(iss, issUnknown...)
	}
	if len(iss) > 0 {
		return nil, iss
	}
	if err := formkit.ApplyRefine[map[string]any](ctx, out, o); err != nil {
		return nil, err
	}
	return out, nil
}

func (o *objectSchema) TypeCheck(ctx context.Context, v any) error {
	if _, ok := v.(map[string]any); !ok {
		return expectedObject()
	}
	return nil
}

// RuleCheck validates required keys, field values and unknown keys without
// building an output record.
func (o *objectSchema) RuleCheck(ctx context.Context, v any) error {
	m, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	scratch := make(map[string]any)
	_, iss := o.collectKnown(ctx, m)
	if formkit.IsFailFast(ctx) && len(iss) > 0 {
		return iss
	}
	iss = formkit.AppendIssues(iss, o.collectUnknown(m, scratch)...)
	if len(iss) > 0 {
		return iss
	}
	return nil
}

func (o *objectSchema) Validate(ctx context.Context, v any) error {
	if err := o.TypeCheck(ctx, v); err != nil {
		return err
	}
	return o.RuleCheck(ctx, v)
}

func (o *objectSchema) JSONSchema() (*js.Schema, error) {
	props := make(map[string]*js.Schema, len(o.fields))
	for k, ad := range o.fields {
		ps, err := ad.JSONSchema()
		if err != nil {
			return nil, err
		}
		if ps == nil {
			ps = &js.Schema{}
		}
		props[k] = ps
	}
	// Required list in registration order
	var req []string
	for _, k := range o.keys {
		if _, ok := o.required[k]; ok {
			req = append(req, k)
		}
	}
	// Unknown policy mapping: strip accepts then discards, so it is true too.
	var additional any = true
	if o.unknownPolicy == formkit.UnknownStrict {
		additional = false
	}
	return &js.Schema{Type: "object", Properties: props, Required: req, AdditionalProperties: additional}, nil
}

// Refine implements formkit.Refiner[map[string]any] using builder-registered hooks.
func (o *objectSchema) Refine(ctx context.Context, v map[string]any) error {
	if len(o.refines) == 0 {
		return nil
	}
	var iss formkit.Issues
	for _, r := range o.refines {
		if err := r.fn(ctx, v); err != nil {
			if i2, ok := formkit.AsIssues(err); ok {
				iss = formkit.AppendIssues(iss, i2...)
			} else {
				iss = formkit.AppendIssues(iss, formkit.Issue{Path: "/", Code: "custom", Message: err.Error(), Cause: err, Rule: r.name})
			}
			if formkit.IsFailFast(ctx) {
				return iss
			}
		}
	}
	if len(iss) > 0 {
		return iss
	}
	return nil
}
