// Package formkit provides:
//
// - Record validation compiled from declarative form field descriptors (see field/)
// - A stable error model via Issues (JSON Pointer, code, message)
// - Source decoding for JSON (goccy/go-json) and YAML inputs
// - Month grid generation for calendar views (see calendar/)
//
// Design policy:
// - Keep only public APIs in the root package.
// - Place schema constructors under dsl/, descriptor compilation under field/, and the CLI under cmd/formkit.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	form, err := field.LoadYAML(r)
//	v, err := field.Build(form.Fields)
//	err = v.Validate(ctx, record)
//
//	cells, err := calendar.Month(2024, 1)
package formkit
