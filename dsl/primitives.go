package dsl

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	formkit "github.com/reoring/formkit"
	"github.com/reoring/formkit/i18n"
	js "github.com/reoring/formkit/jsonschema"
)

// StringBuilder exposes chaining options for string schemas while
// implementing Schema[string]. Each modifier returns a new schema.
type StringBuilder interface {
	formkit.Schema[string]
	// Min requires at least n code points.
	Min(n int) StringBuilder
	// Max requires at most n code points. A negative n removes the bound.
	Max(n int) StringBuilder
	// Pattern requires re to match somewhere in the value. A nil re removes
	// the check.
	Pattern(re *regexp.Regexp) StringBuilder
	// Message replaces the generic message of every failed check.
	Message(msg string) StringBuilder
}

// BoolBuilder exposes chaining options for bool schemas.
type BoolBuilder interface {
	formkit.Schema[bool]
	// True accepts only the literal true.
	True() BoolBuilder
	// Message replaces the generic message of the literal check.
	Message(msg string) BoolBuilder
}

// String returns a string schema with no length bounds and no pattern.
func String() StringBuilder { return stringSchema{max: -1} }

// Bool returns a bool schema accepting both values.
func Bool() BoolBuilder { return boolSchema{} }

// Any returns a schema that accepts every value, including nil.
func Any() formkit.Schema[any] { return anySchema{} }

func invalidType(expected string) formkit.Issues {
	return formkit.Issues{{
		Path:    "/",
		Code:    formkit.CodeInvalidType,
		Message: i18n.T(formkit.CodeInvalidType, map[string]string{"expected": expected}),
		Params:  map[string]any{"expected": expected},
	}}
}

// ---------------- string ----------------

type stringSchema struct {
	min     int
	max     int // -1 means unbounded
	pattern *regexp.Regexp
	message string
}

func (s stringSchema) Min(n int) StringBuilder {
	if n < 0 {
		n = 0
	}
	s.min = n
	return s
}

func (s stringSchema) Max(n int) StringBuilder {
	if n < 0 {
		n = -1
	}
	s.max = n
	return s
}

func (s stringSchema) Pattern(re *regexp.Regexp) StringBuilder {
	s.pattern = re
	return s
}

func (s stringSchema) Message(msg string) StringBuilder {
	s.message = msg
	return s
}

func (s stringSchema) msg(code string, data map[string]string) string {
	if s.message != "" {
		return s.message
	}
	return i18n.T(code, data)
}

func (s stringSchema) Parse(ctx context.Context, v any) (string, error) {
	if err := s.TypeCheck(ctx, v); err != nil {
		return "", err
	}
	str := v.(string)
	if err := s.RuleCheck(ctx, str); err != nil {
		return "", err
	}
	if err := formkit.ApplyRefine[string](ctx, str, s); err != nil {
		return "", err
	}
	return str, nil
}

func (stringSchema) TypeCheck(ctx context.Context, v any) error {
	if _, ok := v.(string); !ok {
		return invalidType("string")
	}
	return nil
}

// RuleCheck reports every violated check: min, max, then pattern.
func (s stringSchema) RuleCheck(ctx context.Context, v any) error {
	str, ok := v.(string)
	if !ok {
		return nil
	}
	var iss formkit.Issues
	n := utf8.RuneCountInString(str)
	if n < s.min {
		iss = formkit.AppendIssues(iss, formkit.Root().Issue(formkit.CodeTooShort,
			s.msg(formkit.CodeTooShort, map[string]string{"min": strconv.Itoa(s.min)}),
			"min", s.min, "got", n))
		if formkit.IsFailFast(ctx) {
			return iss
		}
	}
	if s.max >= 0 && n > s.max {
		iss = formkit.AppendIssues(iss, formkit.Root().Issue(formkit.CodeTooLong,
			s.msg(formkit.CodeTooLong, map[string]string{"max": strconv.Itoa(s.max)}),
			"max", s.max, "got", n))
		if formkit.IsFailFast(ctx) {
			return iss
		}
	}
	if s.pattern != nil && !s.pattern.MatchString(str) {
		iss = formkit.AppendIssues(iss, formkit.Root().Issue(formkit.CodePattern,
			s.msg(formkit.CodePattern, map[string]string{"pattern": s.pattern.String()}),
			"pattern", s.pattern.String()))
	}
	if len(iss) > 0 {
		return iss
	}
	return nil
}

func (s stringSchema) Validate(ctx context.Context, v any) error {
	if err := s.TypeCheck(ctx, v); err != nil {
		return err
	}
	return s.RuleCheck(ctx, v)
}

func (s stringSchema) JSONSchema() (*js.Schema, error) {
	out := &js.Schema{Type: "string"}
	if s.min > 0 {
		out.MinLength = js.IntPtr(s.min)
	}
	if s.max >= 0 {
		out.MaxLength = js.IntPtr(s.max)
	}
	if s.pattern != nil {
		out.Pattern = s.pattern.String()
	}
	return out, nil
}

func (s stringSchema) String() string {
	var parts []string
	if s.min > 0 {
		parts = append(parts, "min="+strconv.Itoa(s.min))
	}
	if s.max >= 0 {
		parts = append(parts, "max="+strconv.Itoa(s.max))
	}
	if s.pattern != nil {
		parts = append(parts, "pattern="+s.pattern.String())
	}
	return "string(" + strings.Join(parts, ",") + ")"
}

// ---------------- bool ----------------

type boolSchema struct {
	mustBeTrue bool
	message    string
}

func (b boolSchema) True() BoolBuilder {
	b.mustBeTrue = true
	return b
}

func (b boolSchema) Message(msg string) BoolBuilder {
	b.message = msg
	return b
}

func (b boolSchema) Parse(ctx context.Context, v any) (bool, error) {
	if err := b.TypeCheck(ctx, v); err != nil {
		return false, err
	}
	val := v.(bool)
	if err := b.RuleCheck(ctx, val); err != nil {
		return false, err
	}
	if err := formkit.ApplyRefine[bool](ctx, val, b); err != nil {
		return false, err
	}
	return val, nil
}

func (boolSchema) TypeCheck(ctx context.Context, v any) error {
	if _, ok := v.(bool); !ok {
		return invalidType("boolean")
	}
	return nil
}

func (b boolSchema) RuleCheck(ctx context.Context, v any) error {
	val, ok := v.(bool)
	if !ok || !b.mustBeTrue || val {
		return nil
	}
	msg := b.message
	if msg == "" {
		msg = i18n.T(formkit.CodeInvalidLiteral, nil)
	}
	return formkit.Issues{formkit.Root().Issue(formkit.CodeInvalidLiteral, msg, "expected", true, "got", val)}
}

func (b boolSchema) Validate(ctx context.Context, v any) error {
	if err := b.TypeCheck(ctx, v); err != nil {
		return err
	}
	return b.RuleCheck(ctx, v)
}

func (b boolSchema) JSONSchema() (*js.Schema, error) {
	out := &js.Schema{Type: "boolean"}
	if b.mustBeTrue {
		out.Const = true
	}
	return out, nil
}

func (b boolSchema) String() string {
	if b.mustBeTrue {
		return "literal(true)"
	}
	return "bool"
}

// ---------------- any ----------------

type anySchema struct{}

func (anySchema) Parse(ctx context.Context, v any) (any, error) { return v, nil }
func (anySchema) TypeCheck(ctx context.Context, v any) error    { return nil }
func (anySchema) RuleCheck(ctx context.Context, v any) error    { return nil }
func (anySchema) Validate(ctx context.Context, v any) error     { return nil }
func (anySchema) JSONSchema() (*js.Schema, error)               { return &js.Schema{}, nil }
func (anySchema) String() string                                { return "any" }
