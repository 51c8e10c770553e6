package formkit

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Source abstracts over polymorphic input documents. Decode returns the
// document as a tree of map[string]any, []any, string, bool, json.Number
// (JSON) or int/float64 (YAML), and nil.
type Source interface {
	Decode(opt ParseOpt) (any, error)
	Format() string
}

// JSONReader wraps an io.Reader as a JSON Source.
func JSONReader(r io.Reader) Source { return &jsonSource{r: r} }

// JSONBytes wraps a byte slice as a JSON Source.
func JSONBytes(b []byte) Source { return &jsonSource{r: bytes.NewReader(b)} }

// YAMLReader wraps an io.Reader as a single-document YAML Source.
func YAMLReader(r io.Reader) Source { return &yamlSource{r: r} }

// YAMLBytes wraps a byte slice as a single-document YAML Source.
func YAMLBytes(b []byte) Source { return &yamlSource{r: bytes.NewReader(b)} }

type jsonSource struct{ r io.Reader }

func (s *jsonSource) Format() string { return "json" }

func (s *jsonSource) Decode(opt ParseOpt) (any, error) {
	data, err := readLimited(s.r, opt.MaxBytes)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, singleIssue(CodeParseError, err.Error(), err)
	}
	// reject trailing documents
	var extra any
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		if err == nil {
			err = errors.New("unexpected trailing data after JSON value")
		}
		return nil, singleIssue(CodeParseError, err.Error(), err)
	}
	return v, nil
}

type yamlSource struct{ r io.Reader }

func (s *yamlSource) Format() string { return "yaml" }

func (s *yamlSource) Decode(opt ParseOpt) (any, error) {
	data, err := readLimited(s.r, opt.MaxBytes)
	if err != nil {
		return nil, err
	}
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, singleIssue(CodeParseError, err.Error(), err)
	}
	return NormalizeYAML(v), nil
}

// NormalizeYAML converts map[any]any nodes produced by YAML decoders into
// map[string]any, dropping non-string keys.
func NormalizeYAML(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[k] = NormalizeYAML(vv)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			ks, ok := k.(string)
			if !ok {
				continue
			}
			out[ks] = NormalizeYAML(vv)
		}
		return out
	case []any:
		arr := make([]any, len(t))
		for i := range t {
			arr[i] = NormalizeYAML(t[i])
		}
		return arr
	default:
		return v
	}
}

func readLimited(r io.Reader, maxBytes int64) ([]byte, error) {
	if maxBytes <= 0 {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, singleIssue(CodeParseError, err.Error(), err)
		}
		return data, nil
	}
	data, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return nil, singleIssue(CodeParseError, err.Error(), err)
	}
	if int64(len(data)) > maxBytes {
		return nil, Issues{{
			Path:    "/",
			Code:    CodeTruncated,
			Message: fmt.Sprintf("input exceeds %d bytes", maxBytes),
			Params:  map[string]any{"maxBytes": maxBytes},
		}}
	}
	return data, nil
}

func singleIssue(code, msg string, cause error) Issues {
	return Issues{{Path: "/", Code: code, Message: msg, Cause: cause}}
}
