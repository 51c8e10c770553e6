// Package dsl provides a zod-like schema DSL for formkit.
//
// Overview
//   - Primitives: String() with Min/Max/Pattern/Message, Bool() with True(), Enum(values...), Any().
//   - Builder API: declare record semantics (unknown/required/refine) with Object()/Unknown()/Field()/Required()/Refine()/Build().
//   - AnyAdapter: adapt an existing Schema[T] via Of[T](s) to embed it into Object builders.
//
// Entry points
//   - Object(): create an object builder; chain Unknown/Field/Required/Refine then Build()/MustBuild().
//   - Of[T](s): adapter from Schema[T] to AnyAdapter (to pass into Field).
//
// File layout (roles)
//   - adapter.go: AnyAdapter and Of.
//   - primitives.go: string/bool/any schemas.
//   - enum.go: string enumeration schema.
//   - object_builder.go: objectBuilder/fieldStep and Build/MustBuild.
//   - object_core.go: objectSchema (Parse/Validate/JSONSchema/Refine).
//
// Design guidelines
//   - Schemas are immutable once built: chained modifiers return copies, so
//     a built schema may be shared between goroutines.
//   - Every failed check produces its own Issue; the object schema collects
//     issues across fields unless fail-fast is requested.
//   - Align semantics of unknown/required/refine between runtime and JSON Schema output.
//
// Example
//
//	signup := g.Object().
//	    Unknown(formkit.UnknownStrip).
//	    Field("name", g.Of[string](g.String().Min(3).Max(20))).Required().
//	    Field("plan", g.Of[string](g.Enum("free", "pro"))).Required().
//	    Field("terms", g.Of[bool](g.Bool().True().Message("accept the terms"))).Required().
//	    MustBuild()
//
//	_, err := signup.Parse(ctx, map[string]any{"name": "ab", "plan": "gold", "terms": false})
//	iss, _ := formkit.AsIssues(err) // three issues: /name, /plan, /terms
package dsl
