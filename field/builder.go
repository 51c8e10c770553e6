package field

import (
	"context"

	formkit "github.com/reoring/formkit"
	"github.com/reoring/formkit/dsl"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Option configures Build.
type Option func(*config)

type config struct {
	logger  *zap.Logger
	unknown formkit.UnknownPolicy
	refines []refine
}

type refine struct {
	name string
	fn   func(context.Context, map[string]any) error
}

// WithLogger receives the constructed rule set at debug level, along with
// every skipped descriptor.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithUnknownKeys sets how record keys without a rule are treated. The
// default strips them from parsed records.
func WithUnknownKeys(p formkit.UnknownPolicy) Option {
	return func(c *config) { c.unknown = p }
}

// WithRefine adds a record-level check that runs once every field passed,
// such as comparing a password with its confirmation. Plain errors are
// reported with code "custom" and the given name as Rule; Issues returned by
// fn keep their own paths.
func WithRefine(name string, fn func(ctx context.Context, record map[string]any) error) Option {
	return func(c *config) {
		if fn != nil {
			c.refines = append(c.refines, refine{name: name, fn: fn})
		}
	}
}

// Rule summarizes the compiled rule of one field.
type Rule struct {
	Name     string
	Type     Type
	Required bool
	Summary  string
}

// MarshalLogObject implements zapcore.ObjectMarshaler.
func (r Rule) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("name", r.Name)
	enc.AddString("type", string(r.Type))
	enc.AddBool("required", r.Required)
	enc.AddString("rule", r.Summary)
	return nil
}

type rules []Rule

func (rs rules) MarshalLogArray(enc zapcore.ArrayEncoder) error {
	for _, r := range rs {
		if err := enc.AppendObject(r); err != nil {
			return err
		}
	}
	return nil
}

// Build compiles descriptors into a Validator. Each descriptor with a
// supported type contributes exactly one rule; descriptors of any other type
// are skipped and reported by Validator.Skipped. Malformed descriptors fail
// the whole build with a *formkit.ConfigError listing every problem.
func Build(fields []Descriptor, opts ...Option) (*Validator, error) {
	cfg := config{logger: zap.NewNop(), unknown: formkit.UnknownStrip}
	for _, o := range opts {
		o(&cfg)
	}

	root := formkit.Root().Field("fields")
	obj := dsl.Object().Unknown(cfg.unknown)
	var iss formkit.Issues
	var compiled rules
	var skipped []string
	descs := make(map[string]Descriptor, len(fields))
	names := make(map[string]int, len(fields))
	for i, d := range fields {
		at := root.Index(i)
		if !d.Type.Supported() {
			skipped = append(skipped, d.Name)
			cfg.logger.Debug("field skipped",
				zap.String("name", d.Name),
				zap.String("type", string(d.Type)),
				zap.Int("index", i))
			continue
		}
		v := variants[d.Type]
		if d.Name == "" {
			iss = append(iss, configIssue(at.Field("name"), "field name required"))
			continue
		}
		if first, dup := names[d.Name]; dup {
			iss = append(iss, configIssue(at.Field("name"), "duplicate field name", "name", d.Name, "first", first))
			continue
		}
		names[d.Name] = i
		ad, errs := v.compile(d, at)
		if len(errs) > 0 {
			iss = append(iss, errs...)
			continue
		}
		descs[d.Name] = d
		step := obj.Field(d.Name, ad)
		if !v.optional {
			step.Required()
		}
		compiled = append(compiled, Rule{Name: d.Name, Type: d.Type, Required: !v.optional, Summary: ad.String()})
	}
	if len(iss) > 0 {
		return nil, &formkit.ConfigError{Issues: iss}
	}
	for _, r := range cfg.refines {
		obj.Refine(r.name, r.fn)
	}
	schema, err := obj.Build()
	if err != nil {
		return nil, err
	}

	cfg.logger.Debug("record validator built",
		zap.Int("rules", len(compiled)),
		zap.Int("skipped", len(skipped)),
		zap.Int("refines", len(cfg.refines)),
		zap.Stringer("unknownKeys", cfg.unknown),
		zap.Array("fields", compiled))

	index := make(map[string]int, len(compiled))
	for i, r := range compiled {
		index[r.Name] = i
	}
	return &Validator{
		schema:  schema,
		rules:   compiled,
		index:   index,
		descs:   descs,
		skipped: skipped,
	}, nil
}

// MustBuild is like Build but panics on error.
func MustBuild(fields []Descriptor, opts ...Option) *Validator {
	v, err := Build(fields, opts...)
	if err != nil {
		panic(err)
	}
	return v
}
