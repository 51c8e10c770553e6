package dsl

import (
	"context"
	"strings"

	formkit "github.com/reoring/formkit"
	"github.com/reoring/formkit/i18n"
	js "github.com/reoring/formkit/jsonschema"
)

// EnumBuilder is a string schema accepting exactly a fixed set of values.
type EnumBuilder interface {
	formkit.Schema[string]
	// Values returns the accepted values in declaration order.
	Values() []string
	// Message replaces the generic membership message.
	Message(msg string) EnumBuilder
}

// Enum returns a schema accepting exactly the given values, compared
// verbatim. Duplicates collapse onto their first occurrence. An empty set
// accepts nothing.
func Enum(values ...string) EnumBuilder {
	e := enumSchema{set: make(map[string]struct{}, len(values))}
	for _, v := range values {
		if _, dup := e.set[v]; dup {
			continue
		}
		e.set[v] = struct{}{}
		e.values = append(e.values, v)
	}
	return e
}

type enumSchema struct {
	values  []string
	set     map[string]struct{}
	message string
}

func (e enumSchema) Values() []string { return append([]string(nil), e.values...) }

func (e enumSchema) Message(msg string) EnumBuilder {
	e.message = msg
	return e
}

func (e enumSchema) Parse(ctx context.Context, v any) (string, error) {
	if err := e.Validate(ctx, v); err != nil {
		return "", err
	}
	s := v.(string)
	if err := formkit.ApplyRefine[string](ctx, s, e); err != nil {
		return "", err
	}
	return s, nil
}

func (enumSchema) TypeCheck(ctx context.Context, v any) error {
	if _, ok := v.(string); !ok {
		return invalidType("string")
	}
	return nil
}

func (e enumSchema) RuleCheck(ctx context.Context, v any) error {
	s, ok := v.(string)
	if !ok {
		return nil
	}
	if _, ok := e.set[s]; ok {
		return nil
	}
	msg := e.message
	if msg == "" {
		msg = i18n.T(formkit.CodeInvalidEnum, map[string]string{"options": strings.Join(e.values, ", ")})
	}
	return formkit.Issues{formkit.Root().Issue(formkit.CodeInvalidEnum, msg, "options", e.Values(), "got", s)}
}

func (e enumSchema) Validate(ctx context.Context, v any) error {
	if err := e.TypeCheck(ctx, v); err != nil {
		return err
	}
	return e.RuleCheck(ctx, v)
}

func (e enumSchema) JSONSchema() (*js.Schema, error) {
	vals := make([]any, len(e.values))
	for i, v := range e.values {
		vals[i] = v
	}
	return &js.Schema{Type: "string", Enum: vals}, nil
}

func (e enumSchema) String() string { return "enum(" + strings.Join(e.values, "|") + ")" }
