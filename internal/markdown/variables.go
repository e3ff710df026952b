package markdown

import (
	"bytes"
	"strings"

	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"
)

// Default indentation in front matter
const Indent int = 2

// Value is a variable value: either a scalar string or an ordered list of strings.
type Value struct {
	scalar string
	items  []string
	list   bool
}

// Scalar creates a scalar value.
func Scalar(s string) Value {
	return Value{scalar: s}
}

// List creates a list value.
func List(items ...string) Value {
	return Value{items: append([]string{}, items...), list: true}
}

func (v Value) IsList() bool {
	return v.list
}

// Items returns the list elements, or a single-element slice for a scalar.
func (v Value) Items() []string {
	if v.list {
		return append([]string{}, v.items...)
	}
	return []string{v.scalar}
}

// String returns the scalar, or the list elements joined by commas.
func (v Value) String() string {
	if v.list {
		return strings.Join(v.items, ",")
	}
	return v.scalar
}

// Matches reports whether the value equals expected (scalar) or contains it (list).
func (v Value) Matches(expected string) bool {
	if v.list {
		return slices.Contains(v.items, expected)
	}
	return v.scalar == expected
}

// Variables maps case-sensitive names to values.
type Variables map[string]Value

// Keys returns the variable names in lexicographic order.
func (v Variables) Keys() []string {
	keys := make([]string, 0, len(v))
	for key := range v {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}

// Lookup returns the value of a variable.
func (v Variables) Lookup(name string) (Value, bool) {
	if v == nil {
		return Value{}, false
	}
	value, ok := v[name]
	return value, ok
}

// Clone returns a shallow copy.
func (v Variables) Clone() Variables {
	result := make(Variables, len(v))
	for key, value := range v {
		result[key] = value
	}
	return result
}

// AsFrontMatter serializes the variables as a front matter block.
// Keys are sorted. The newline style and the byte order mark are copied from the original block.
// When there is no variable, the original block is returned unchanged.
func (v Variables) AsFrontMatter(original FrontMatter) FrontMatter {
	if len(v) == 0 {
		return original
	}

	newline := original.Newline()
	var lines []string
	for _, key := range v.Keys() {
		value := v[key]
		if value.IsList() {
			lines = append(lines, key+":")
			for _, item := range value.items {
				lines = append(lines, strings.Repeat(" ", Indent)+"- "+item)
			}
			continue
		}
		lines = append(lines, key+": "+value.scalar)
	}

	var sb strings.Builder
	if original.HasBOM() {
		sb.WriteString(bom)
	}
	sb.WriteString(frontMatterDelimiter)
	sb.WriteString(newline)
	sb.WriteString(strings.Join(lines, newline))
	sb.WriteString(newline)
	sb.WriteString(frontMatterDelimiter)
	sb.WriteString(newline)
	sb.WriteString(newline)
	return FrontMatter(sb.String())
}

// AsMap converts the variables to a map usable by encoders.
func (v Variables) AsMap() map[string]any {
	result := make(map[string]any, len(v))
	for key, value := range v {
		if value.IsList() {
			result[key] = value.Items()
		} else {
			result[key] = value.String()
		}
	}
	return result
}

// AsYAML formats the variables as a YAML document.
func (v Variables) AsYAML() (string, error) {
	var buf bytes.Buffer
	bufEncoder := yaml.NewEncoder(&buf)
	bufEncoder.SetIndent(Indent)
	if err := bufEncoder.Encode(v.AsMap()); err != nil {
		return "", err
	}
	if err := bufEncoder.Close(); err != nil {
		return "", err
	}
	return buf.String(), nil
}
