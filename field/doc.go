// Package field compiles declarative form field descriptors into a record
// validator.
//
// Each descriptor type maps to one rule:
//
//	text, email, password  string with optional minLength, maxLength and pattern
//	select, radio          enumeration of the option values
//	checkbox               literal true
//	file                   anything, key may be absent
//
// Descriptors of any other type are skipped: they get no rule and their key
// is treated like any other unknown record key.
//
// Descriptors load from YAML or JSON:
//
//	title: Signup
//	fields:
//	  - name: username
//	    type: text
//	    validation: {minLength: 3, maxLength: 20, pattern: "^[a-z0-9_]+$", errorMessage: "3-20 lowercase letters"}
//	  - name: plan
//	    type: select
//	    options: [{value: free, label: Free}, {value: pro, label: Pro}]
//	  - name: terms
//	    type: checkbox
package field
