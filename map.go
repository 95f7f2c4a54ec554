package resultfmt

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// Map is a string-keyed mapping that remembers insertion order. It is the
// payload and metadata type for every formatter.
//
// The zero value is an empty map ready to use. A nil *Map behaves as an empty
// map for all read methods.
type Map struct {
	keys   []string
	values map[string]any
}

// NewMap returns an empty Map.
func NewMap() *Map {
	return &Map{}
}

// Set stores value under key and returns m so calls can be chained.
// Overwriting an existing key keeps its original position.
func (m *Map) Set(key string, value any) *Map {
	if m.values == nil {
		m.values = make(map[string]any)
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
	return m
}

// Get returns the value stored under key.
func (m *Map) Get(key string) (any, bool) {
	if m == nil {
		return nil, false
	}
	v, ok := m.values[key]
	return v, ok
}

// Has reports whether key is present.
func (m *Map) Has(key string) bool {
	_, ok := m.Get(key)
	return ok
}

// Delete removes key. It is a no-op when key is absent.
func (m *Map) Delete(key string) {
	if !m.Has(key) {
		return
	}
	delete(m.values, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			return
		}
	}
}

// Len returns the number of keys.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys returns a copy of the keys in insertion order.
func (m *Map) Keys() []string {
	if m.Len() == 0 {
		return nil
	}
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Range calls fn for each entry in insertion order until fn returns false.
func (m *Map) Range(fn func(key string, value any) bool) {
	if m == nil {
		return
	}
	for _, k := range m.keys {
		if !fn(k, m.values[k]) {
			return
		}
	}
}

// Clone returns a deep copy of m. Nested *Map, map[string]any and []any
// values are copied; other values are copied by assignment. m must not
// contain itself.
func (m *Map) Clone() *Map {
	out := NewMap()
	m.Range(func(k string, v any) bool {
		out.Set(k, cloneValue(v))
		return true
	})
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case *Map:
		if t == nil {
			return t
		}
		return t.Clone()
	case map[string]any:
		if t == nil {
			return t
		}
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = cloneValue(e)
		}
		return out
	case []any:
		if t == nil {
			return t
		}
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}

// Std converts m into plain Go maps and slices, recursively. Key order is
// lost. Useful for comparing against values decoded with encoding/json.
// m must not contain itself.
func (m *Map) Std() map[string]any {
	out := make(map[string]any, m.Len())
	m.Range(func(k string, v any) bool {
		out[k] = stdValue(v)
		return true
	})
	return out
}

func stdValue(v any) any {
	switch t := v.(type) {
	case *Map:
		if t == nil {
			return nil
		}
		return t.Std()
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = stdValue(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = stdValue(e)
		}
		return out
	default:
		return v
	}
}

// String returns m as compact JSON.
func (m *Map) String() string {
	b, err := m.MarshalJSON()
	if err != nil {
		return fmt.Sprintf("%%!(%v)", err)
	}
	return string(b)
}

// MarshalJSON encodes m as a JSON object with keys in insertion order.
// HTML characters are not escaped. A map that contains itself, directly or
// through nested maps and slices, fails with [ErrCyclicValue].
func (m *Map) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	w := jsonWriter{buf: &buf, path: make(map[*Map]bool)}
	if err := w.object(m); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// maxNesting bounds container depth while encoding. Plain maps and slices
// have no identity to track, so a cycle through them shows up as depth.
const maxNesting = 1000

// ErrCyclicValue is returned when a payload contains itself or nests deeper
// than the encoder allows.
var ErrCyclicValue = errors.New("cyclic or too deeply nested value")

// jsonWriter encodes containers itself so one path and depth are tracked
// across all levels; leaf values go through encoding/json.
type jsonWriter struct {
	buf   *bytes.Buffer
	path  map[*Map]bool
	depth int
}

func (w *jsonWriter) enter() error {
	w.depth++
	if w.depth > maxNesting {
		return fmt.Errorf("resultfmt: depth %d: %w", w.depth, ErrCyclicValue)
	}
	return nil
}

func (w *jsonWriter) value(v any) error {
	switch t := v.(type) {
	case *Map:
		if t == nil {
			w.buf.WriteString("null")
			return nil
		}
		return w.object(t)
	case map[string]any:
		if t == nil {
			w.buf.WriteString("null")
			return nil
		}
		return w.plainObject(t)
	case []any:
		if t == nil {
			w.buf.WriteString("null")
			return nil
		}
		return w.array(t)
	default:
		return encodeCompact(w.buf, v)
	}
}

// object writes m; a nil m is written as an empty object.
func (w *jsonWriter) object(m *Map) error {
	if m != nil && w.path[m] {
		return fmt.Errorf("resultfmt: map contains itself: %w", ErrCyclicValue)
	}
	if err := w.enter(); err != nil {
		return err
	}
	w.path[m] = true
	defer func() {
		delete(w.path, m)
		w.depth--
	}()

	w.buf.WriteByte('{')
	var err error
	first := true
	m.Range(func(k string, v any) bool {
		err = w.member(first, k, v)
		first = false
		return err == nil
	})
	if err != nil {
		return err
	}
	w.buf.WriteByte('}')
	return nil
}

func (w *jsonWriter) plainObject(m map[string]any) error {
	if err := w.enter(); err != nil {
		return err
	}
	defer func() { w.depth-- }()

	w.buf.WriteByte('{')
	for i, k := range sortedKeys(m) {
		if err := w.member(i == 0, k, m[k]); err != nil {
			return err
		}
	}
	w.buf.WriteByte('}')
	return nil
}

func (w *jsonWriter) member(first bool, key string, v any) error {
	if !first {
		w.buf.WriteByte(',')
	}
	if err := encodeCompact(w.buf, key); err != nil {
		return err
	}
	w.buf.WriteByte(':')
	if err := w.value(v); err != nil {
		return fmt.Errorf("key %q: %w", key, err)
	}
	return nil
}

func (w *jsonWriter) array(a []any) error {
	if err := w.enter(); err != nil {
		return err
	}
	defer func() { w.depth-- }()

	w.buf.WriteByte('[')
	for i, e := range a {
		if i > 0 {
			w.buf.WriteByte(',')
		}
		if err := w.value(e); err != nil {
			return fmt.Errorf("index %d: %w", i, err)
		}
	}
	w.buf.WriteByte(']')
	return nil
}

func encodeCompact(buf *bytes.Buffer, v any) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	// Encode always appends a newline.
	buf.Truncate(buf.Len() - 1)
	return nil
}

var errNotObject = errors.New("not a JSON object")

// UnmarshalJSON decodes a JSON object into m, keeping the source key order.
// Nested objects become *Map, arrays []any and numbers [json.Number], so
// numeric text is kept exactly. Existing entries are discarded.
func (m *Map) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("resultfmt: %w", errNotObject)
	}
	decoded, err := decodeObject(dec)
	if err != nil {
		return err
	}
	*m = *decoded
	return nil
}

// decodeObject reads object members after the opening brace has been consumed.
func decodeObject(dec *json.Decoder) (*Map, error) {
	out := NewMap()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("resultfmt: unexpected object key %v", tok)
		}
		v, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		out.Set(key, v)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return out, nil
}

func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	d, ok := tok.(json.Delim)
	if !ok {
		return tok, nil
	}
	switch d {
	case '{':
		return decodeObject(dec)
	case '[':
		arr := []any{}
		for dec.More() {
			v, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			arr = append(arr, v)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return arr, nil
	default:
		return nil, fmt.Errorf("resultfmt: unexpected delimiter %v", d)
	}
}

// MarshalYAML encodes m as a YAML mapping with keys in insertion order.
func (m *Map) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	var err error
	m.Range(func(k string, v any) bool {
		var keyNode, valNode yaml.Node
		if err = keyNode.Encode(k); err != nil {
			return false
		}
		if err = valNode.Encode(v); err != nil {
			err = fmt.Errorf("key %q: %w", k, err)
			return false
		}
		node.Content = append(node.Content, &keyNode, &valNode)
		return true
	})
	if err != nil {
		return nil, err
	}
	return node, nil
}

// UnmarshalYAML decodes a YAML mapping into m, keeping the source key order.
// Nested mappings become *Map and sequences []any. Existing entries are
// discarded.
func (m *Map) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.DocumentNode && len(node.Content) == 1 {
		node = node.Content[0]
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("resultfmt: line %d: expected a mapping", node.Line)
	}
	decoded, err := mapFromNode(node)
	if err != nil {
		return err
	}
	*m = *decoded
	return nil
}

func mapFromNode(node *yaml.Node) (*Map, error) {
	out := NewMap()
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valNode := node.Content[i], node.Content[i+1]
		if keyNode.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("resultfmt: line %d: mapping keys must be scalars", keyNode.Line)
		}
		v, err := valueFromNode(valNode)
		if err != nil {
			return nil, err
		}
		out.Set(keyNode.Value, v)
	}
	return out, nil
}

func valueFromNode(node *yaml.Node) (any, error) {
	switch node.Kind {
	case yaml.MappingNode:
		return mapFromNode(node)
	case yaml.SequenceNode:
		arr := make([]any, 0, len(node.Content))
		for _, n := range node.Content {
			v, err := valueFromNode(n)
			if err != nil {
				return nil, err
			}
			arr = append(arr, v)
		}
		return arr, nil
	case yaml.AliasNode:
		return valueFromNode(node.Alias)
	default:
		var v any
		if err := node.Decode(&v); err != nil {
			return nil, err
		}
		return v, nil
	}
}

// sortedKeys returns the keys of a plain map in lexical order.
func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// displayValue renders v the way the terminal formatter shows bullet values.
func displayValue(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return t
	case *Map:
		return t.String()
	case map[string]any, []any:
		var buf bytes.Buffer
		w := jsonWriter{buf: &buf, path: make(map[*Map]bool)}
		if err := w.value(t); err != nil {
			return fmt.Sprintf("%%!(%v)", err)
		}
		return buf.String()
	default:
		return fmt.Sprint(t)
	}
}
