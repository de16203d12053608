package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"
)

// SpecRow is one line of a specification table. Older entries use Feature
// instead of Parameter.
type SpecRow struct {
	Parameter string `json:"parameter,omitempty" yaml:"parameter,omitempty"`
	Feature   string `json:"feature,omitempty" yaml:"feature,omitempty"`
	Value     string `json:"value" yaml:"value"`
}

// Label returns the row's display name.
func (r SpecRow) Label() string {
	if r.Parameter != "" {
		return r.Parameter
	}
	return r.Feature
}

// UnmarshalJSON accepts non-string scalars for Value.
func (r *SpecRow) UnmarshalJSON(data []byte) error {
	var aux struct {
		Parameter string          `json:"parameter"`
		Feature   string          `json:"feature"`
		Value     json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	r.Parameter = aux.Parameter
	r.Feature = aux.Feature
	r.Value = scalarText(aux.Value)
	return nil
}

func scalarText(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	if raw[0] == '"' {
		var s string
		if json.Unmarshal(raw, &s) == nil {
			return s
		}
	}
	return string(raw)
}

// SpecSection is a named group of specification rows.
type SpecSection struct {
	Key  string
	Rows []SpecRow
}

// Title renders the section key for display.
func (s SpecSection) Title() string {
	return SectionTitle(s.Key)
}

// SectionTitle turns "battery_pack" into "Battery Pack".
func SectionTitle(key string) string {
	words := strings.Fields(strings.ReplaceAll(key, "_", " "))
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

// Specifications maps section names to ordered rows. It is a slice so that
// section order survives a JSON or YAML round trip.
type Specifications []SpecSection

// Get returns the rows of a section.
func (s Specifications) Get(key string) ([]SpecRow, bool) {
	for _, sec := range s {
		if sec.Key == key {
			return sec.Rows, true
		}
	}
	return nil, false
}

// Set replaces or appends a section.
func (s *Specifications) Set(key string, rows []SpecRow) {
	for i := range *s {
		if (*s)[i].Key == key {
			(*s)[i].Rows = rows
			return
		}
	}
	*s = append(*s, SpecSection{Key: key, Rows: rows})
}

// MarshalJSON writes the sections as a JSON object in order.
func (s Specifications) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, sec := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(sec.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		rows := sec.Rows
		if rows == nil {
			rows = []SpecRow{}
		}
		val, err := json.Marshal(rows)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object of section -> rows, keeping key order.
func (s *Specifications) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*s = nil
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("specifications: expected object, got %v", tok)
	}
	out := Specifications{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("specifications: expected section name, got %v", tok)
		}
		var rows []SpecRow
		if err := dec.Decode(&rows); err != nil {
			return fmt.Errorf("specifications: section %s: %w", strconv.Quote(key), err)
		}
		out = append(out, SpecSection{Key: key, Rows: rows})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*s = out
	return nil
}

// UnmarshalYAML reads a YAML mapping of section -> rows, keeping key order.
func (s *Specifications) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("specifications: line %d: expected mapping", node.Line)
	}
	out := Specifications{}
	for i := 0; i+1 < len(node.Content); i += 2 {
		var rows []SpecRow
		if err := node.Content[i+1].Decode(&rows); err != nil {
			return fmt.Errorf("specifications: section %s: %w", node.Content[i].Value, err)
		}
		out = append(out, SpecSection{Key: node.Content[i].Value, Rows: rows})
	}
	*s = out
	return nil
}

// MarshalYAML writes the sections as an ordered YAML mapping.
func (s Specifications) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, sec := range s {
		var val yaml.Node
		if err := val.Encode(sec.Rows); err != nil {
			return nil, err
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: sec.Key},
			&val,
		)
	}
	return node, nil
}
