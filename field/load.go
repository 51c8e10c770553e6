package field

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// LoadYAML decodes descriptors from a YAML document holding either a Form
// mapping ("fields:") or a bare sequence of descriptors.
func LoadYAML(r io.Reader) (Form, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return Form{}, errors.New("field: empty YAML document")
		}
		return Form{}, fmt.Errorf("field: decode YAML: %w", err)
	}
	node := &doc
	if node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		node = node.Content[0]
	}
	var form Form
	switch node.Kind {
	case yaml.SequenceNode:
		if err := node.Decode(&form.Fields); err != nil {
			return Form{}, fmt.Errorf("field: decode YAML: %w", err)
		}
	case yaml.MappingNode:
		if err := node.Decode(&form); err != nil {
			return Form{}, fmt.Errorf("field: decode YAML: %w", err)
		}
	default:
		return Form{}, fmt.Errorf("field: YAML document must be a mapping or a sequence (line %d)", node.Line)
	}
	return form, nil
}

// LoadJSON decodes descriptors from a JSON document holding either a Form
// object or a bare array of descriptors. Unknown keys are rejected.
func LoadJSON(r io.Reader) (Form, error) {
	br := bufio.NewReader(r)
	first, err := peekNonSpace(br)
	if err != nil {
		return Form{}, fmt.Errorf("field: decode JSON: %w", err)
	}
	dec := json.NewDecoder(br)
	dec.DisallowUnknownFields()
	var form Form
	switch first {
	case '[':
		err = dec.Decode(&form.Fields)
	case '{':
		err = dec.Decode(&form)
	default:
		return Form{}, fmt.Errorf("field: JSON document must be an object or an array, got %q", first)
	}
	if err != nil {
		return Form{}, fmt.Errorf("field: decode JSON: %w", err)
	}
	return form, nil
}

// LoadFile picks the decoder from the file extension (.json, otherwise YAML).
func LoadFile(path string) (Form, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Form{}, err
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return LoadJSON(bytes.NewReader(data))
	}
	return LoadYAML(bytes.NewReader(data))
}

func peekNonSpace(br *bufio.Reader) (byte, error) {
	for {
		b, err := br.ReadByte()
		if err != nil {
			return 0, err
		}
		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		}
		return b, br.UnreadByte()
	}
}
