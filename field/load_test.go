package field_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"
	formkit "github.com/reoring/formkit"
	"github.com/reoring/formkit/field"
)

const signupYAML = `
title: Signup
fields:
  - name: username
    type: text
    label: Username
    validation:
      minLength: 3
      maxLength: 5
      pattern: "^[a-z]+$"
      errorMessage: 3-5 lowercase letters
  - name: plan
    type: select
    options:
      - {value: free, label: Free}
      - {value: pro, label: Pro}
  - name: terms
    type: checkbox
  - name: avatar
    type: file
  - name: birthday
    type: date
`

func TestLoadYAML_Form(t *testing.T) {
	form, err := field.LoadYAML(strings.NewReader(signupYAML))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if form.Title != "Signup" || len(form.Fields) != 5 {
		t.Fatalf("unexpected form: %+v", form)
	}
	want := field.Descriptor{
		Name:  "username",
		Type:  field.TypeText,
		Label: "Username",
		Validation: &field.Validation{
			MinLength:    intp(3),
			MaxLength:    intp(5),
			Pattern:      "^[a-z]+$",
			ErrorMessage: "3-5 lowercase letters",
		},
	}
	if diff := cmp.Diff(want, form.Fields[0]); diff != "" {
		t.Fatalf("descriptor mismatch (-want +got):\n%s", diff)
	}

	v, err := field.Build(form.Fields)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if diff := cmp.Diff([]string{"birthday"}, v.Skipped()); diff != "" {
		t.Fatalf("skipped mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadYAML_BareList(t *testing.T) {
	form, err := field.LoadYAML(strings.NewReader("- {name: a, type: text}\n- {name: b, type: checkbox}\n"))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(form.Fields) != 2 || form.Fields[1].Type != field.TypeCheckbox {
		t.Fatalf("unexpected fields: %+v", form.Fields)
	}
}

func TestLoadYAML_Errors(t *testing.T) {
	for _, in := range []string{"", "just a string", "fields: [\n"} {
		if _, err := field.LoadYAML(strings.NewReader(in)); err == nil {
			t.Fatalf("%q: expected error", in)
		}
	}
}

func TestLoadJSON_RoundTripsWithYAML(t *testing.T) {
	fromYAML, err := field.LoadYAML(strings.NewReader(signupYAML))
	if err != nil {
		t.Fatalf("yaml: %v", err)
	}
	data, err := json.Marshal(fromYAML)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	fromJSON, err := field.LoadJSON(strings.NewReader(string(data)))
	if err != nil {
		t.Fatalf("json: %v", err)
	}
	if diff := cmp.Diff(fromYAML, fromJSON); diff != "" {
		t.Fatalf("json/yaml mismatch (-yaml +json):\n%s", diff)
	}
}

func TestLoadJSON_Shapes(t *testing.T) {
	form, err := field.LoadJSON(strings.NewReader(`  [{"name":"a","type":"radio","options":[{"value":"1","label":"One"}]}]`))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(form.Fields) != 1 || form.Fields[0].Options[0].Value != "1" {
		t.Fatalf("unexpected fields: %+v", form.Fields)
	}
	if _, err := field.LoadJSON(strings.NewReader(`{"fields":[{"name":"a","type":"text","colour":"red"}]}`)); err == nil {
		t.Fatalf("expected unknown key to be rejected")
	}
	if _, err := field.LoadJSON(strings.NewReader(`"nope"`)); err == nil {
		t.Fatalf("expected shape error")
	}
	if _, err := field.LoadJSON(strings.NewReader(``)); err == nil {
		t.Fatalf("expected error for empty input")
	}
}

func TestLoadFile_PicksDecoder(t *testing.T) {
	dir := t.TempDir()
	yml := filepath.Join(dir, "form.yaml")
	jsn := filepath.Join(dir, "form.json")
	if err := os.WriteFile(yml, []byte(signupYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(jsn, []byte(`{"fields":[{"name":"a","type":"text"}]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if f, err := field.LoadFile(yml); err != nil || len(f.Fields) != 5 {
		t.Fatalf("yaml file: %v %+v", err, f)
	}
	if f, err := field.LoadFile(jsn); err != nil || len(f.Fields) != 1 {
		t.Fatalf("json file: %v %+v", err, f)
	}
	if _, err := field.LoadFile(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestValidateSource(t *testing.T) {
	ctx := context.Background()
	form, _ := field.LoadYAML(strings.NewReader(signupYAML))
	v := field.MustBuild(form.Fields)

	out, err := v.ValidateSource(ctx, formkit.JSONBytes([]byte(`{"username":"abc","plan":"pro","terms":true,"avatar":null,"birthday":"2000-01-01"}`)))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, ok := out["birthday"]; ok {
		t.Fatalf("skipped field must be stripped from output")
	}

	_, err = v.ValidateSource(ctx, formkit.YAMLBytes([]byte("username: ABCDEF\nplan: gold\nterms: false\n")))
	ve, ok := field.AsValidationErrors(err)
	if !ok {
		t.Fatalf("expected ValidationErrors, got %v", err)
	}
	if got := ve.ByField(); len(got["username"]) != 2 || len(got["plan"]) != 1 || len(got["terms"]) != 1 {
		t.Fatalf("unexpected errors: %v", got)
	}

	_, err = v.ValidateSource(ctx, formkit.JSONBytes([]byte(`{"username":`)))
	ve, ok = field.AsValidationErrors(err)
	if !ok || len(ve) != 1 || ve[0].Code != formkit.CodeParseError || ve[0].Field != "" {
		t.Fatalf("expected a record-level parse error, got %v", err)
	}
}

func TestValidator_JSONSchema(t *testing.T) {
	form, _ := field.LoadYAML(strings.NewReader(signupYAML))
	v := field.MustBuild(form.Fields)
	s, err := v.JSONSchema()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if s.Type != "object" || s.AdditionalProperties != true {
		t.Fatalf("unexpected root: %+v", s)
	}
	if diff := cmp.Diff([]string{"username", "plan", "terms"}, s.Required); diff != "" {
		t.Fatalf("required mismatch (-want +got):\n%s", diff)
	}
	user := s.Properties["username"]
	if user.Title != "Username" || *user.MinLength != 3 || *user.MaxLength != 5 || user.Pattern != "^[a-z]+$" {
		t.Fatalf("unexpected username schema: %+v", user)
	}
	plan := s.Properties["plan"]
	if len(plan.Enum) != 2 || len(plan.OneOf) != 2 || plan.OneOf[1].Title != "Pro" {
		t.Fatalf("unexpected plan schema: %+v", plan)
	}
	if s.Properties["terms"].Const != true {
		t.Fatalf("expected checkbox const true")
	}
	if _, ok := s.Properties["birthday"]; ok {
		t.Fatalf("skipped field must not be exported")
	}
	if _, err := json.Marshal(s); err != nil {
		t.Fatalf("marshal: %v", err)
	}
}
