package field

import (
	"regexp"

	formkit "github.com/reoring/formkit"
	"github.com/reoring/formkit/dsl"
	"github.com/reoring/formkit/i18n"
)

// variant compiles descriptors of one field type into a rule. Types without
// a variant are skipped by Build.
type variant struct {
	// optional fields may be absent from a record.
	optional bool
	compile  func(d Descriptor, at formkit.PathRef) (dsl.AnyAdapter, formkit.Issues)
}

var variants = map[Type]variant{
	TypeText:     {compile: compileString},
	TypeEmail:    {compile: compileString},
	TypePassword: {compile: compileString},
	TypeSelect:   {compile: compileEnum},
	TypeRadio:    {compile: compileEnum},
	TypeCheckbox: {compile: compileCheckbox},
	TypeFile:     {optional: true, compile: compileFile},
}

func configIssue(at formkit.PathRef, reason string, kv ...any) formkit.Issue {
	it := at.Issue(formkit.CodeInvalidConfig, i18n.T(formkit.CodeInvalidConfig, nil), kv...)
	it.Hint = reason
	return it
}

// compileString builds the text/email/password rule: min defaults to 0,
// max to unbounded and pattern to match-anything.
func compileString(d Descriptor, at formkit.PathRef) (dsl.AnyAdapter, formkit.Issues) {
	s := dsl.String()
	v := d.Validation
	if v == nil {
		return dsl.Of[string](s), nil
	}
	var iss formkit.Issues
	vat := at.Field("validation")
	if v.MinLength != nil {
		if *v.MinLength < 0 {
			iss = append(iss, configIssue(vat.Field("minLength"), "minLength must be >= 0", "got", *v.MinLength))
		} else {
			s = s.Min(*v.MinLength)
		}
	}
	if v.MaxLength != nil {
		if *v.MaxLength < 0 {
			iss = append(iss, configIssue(vat.Field("maxLength"), "maxLength must be >= 0", "got", *v.MaxLength))
		} else {
			s = s.Max(*v.MaxLength)
		}
	}
	if v.MinLength != nil && v.MaxLength != nil && *v.MinLength >= 0 && *v.MaxLength >= 0 && *v.MinLength > *v.MaxLength {
		iss = append(iss, configIssue(vat, "minLength exceeds maxLength", "min", *v.MinLength, "max", *v.MaxLength))
	}
	if v.Pattern != "" {
		re, err := regexp.Compile(v.Pattern)
		if err != nil {
			it := configIssue(vat.Field("pattern"), "pattern does not compile", "pattern", v.Pattern)
			it.Cause = err
			iss = append(iss, it)
		} else {
			s = s.Pattern(re)
		}
	}
	if v.ErrorMessage != "" {
		s = s.Message(v.ErrorMessage)
	}
	return dsl.Of[string](s), iss
}

// compileEnum builds the select/radio rule from option values taken verbatim.
func compileEnum(d Descriptor, at formkit.PathRef) (dsl.AnyAdapter, formkit.Issues) {
	if len(d.Options) == 0 {
		return dsl.AnyAdapter{}, formkit.Issues{configIssue(at.Field("options"), "options required for "+string(d.Type)+" fields")}
	}
	var iss formkit.Issues
	seen := make(map[string]int, len(d.Options))
	values := make([]string, 0, len(d.Options))
	for i, o := range d.Options {
		if j, dup := seen[o.Value]; dup {
			iss = append(iss, configIssue(at.Field("options").Index(i).Field("value"), "duplicate option value", "value", o.Value, "first", j))
			continue
		}
		seen[o.Value] = i
		values = append(values, o.Value)
	}
	return dsl.Of[string](dsl.Enum(values...)), iss
}

// compileCheckbox builds the checkbox rule: the value must be literally true.
func compileCheckbox(d Descriptor, _ formkit.PathRef) (dsl.AnyAdapter, formkit.Issues) {
	b := dsl.Bool().True()
	if msg := d.Validation.errorMessage(); msg != "" {
		b = b.Message(msg)
	}
	return dsl.Of[bool](b), nil
}

func compileFile(Descriptor, formkit.PathRef) (dsl.AnyAdapter, formkit.Issues) {
	return dsl.Of[any](dsl.Any()), nil
}
