// properties.go keeps a record's property map in the order the API sent it.
// Title extraction scans properties in order, and get_page echoes them back,
// so a plain Go map would lose information.

package notion

import (
	"bytes"
	"encoding/json"
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Properties is an ordered mapping of property name to its raw JSON value.
// The zero value is an empty mapping and reports Present() == false.
type Properties struct {
	m *orderedmap.OrderedMap[string, json.RawMessage]
}

// NewProperties builds Properties from name/value pairs in order. Values are
// marshalled to JSON; a value that fails to marshal is stored as null.
func NewProperties(pairs ...Property) Properties {
	m := orderedmap.New[string, json.RawMessage]()
	for _, p := range pairs {
		raw, err := encodeRaw(p.Value)
		if err != nil {
			raw = json.RawMessage("null")
		}
		m.Set(p.Name, raw)
	}
	return Properties{m: m}
}

// encodeRaw marshals v without escaping HTML characters.
func encodeRaw(v any) (json.RawMessage, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return json.RawMessage(bytes.TrimRight(buf.Bytes(), "\n")), nil
}

// Property is one name/value pair for NewProperties.
type Property struct {
	Name  string
	Value any
}

// Present reports whether the record carried a properties object at all.
func (p Properties) Present() bool { return p.m != nil }

// Len returns the number of properties.
func (p Properties) Len() int {
	if p.m == nil {
		return 0
	}
	return p.m.Len()
}

// Get returns the raw value of the named property.
func (p Properties) Get(name string) (json.RawMessage, bool) {
	if p.m == nil {
		return nil, false
	}
	return p.m.Get(name)
}

// Each calls fn for every property in order until fn returns false.
func (p Properties) Each(fn func(name string, raw json.RawMessage) bool) {
	if p.m == nil {
		return
	}
	for pair := p.m.Oldest(); pair != nil; pair = pair.Next() {
		if !fn(pair.Key, pair.Value) {
			return
		}
	}
}

// TitleSpans returns the spans of the first title-typed property. The
// boolean is false when no property has type "title". A title property whose
// value is not a span list (database schemas use an empty object) yields no
// spans.
func (p Properties) TitleSpans() (Spans, bool) {
	var (
		spans Spans
		found bool
	)
	p.Each(func(_ string, raw json.RawMessage) bool {
		var prop struct {
			Type  string `json:"type"`
			Title Spans  `json:"title"`
		}
		if err := json.Unmarshal(raw, &prop); err != nil || prop.Type != "title" {
			return true
		}
		spans, found = prop.Title, true
		return false
	})
	return spans, found
}

// MarshalJSON writes the properties in their original order; absent
// properties encode as an empty object. Values are copied as the API sent
// them, so "&", "<" and ">" stay literal.
func (p Properties) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for pair := p.oldest(); pair != nil; pair = pair.Next() {
		if buf.Len() > 1 {
			buf.WriteByte(',')
		}
		key, err := encodeRaw(pair.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		if len(pair.Value) == 0 {
			buf.WriteString("null")
			continue
		}
		if err := json.Compact(&buf, pair.Value); err != nil {
			return nil, fmt.Errorf("property %q: %w", pair.Key, err)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (p Properties) oldest() *orderedmap.Pair[string, json.RawMessage] {
	if p.m == nil {
		return nil
	}
	return p.m.Oldest()
}

// UnmarshalJSON implements json.Unmarshaler. A JSON null leaves the
// properties absent.
func (p *Properties) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		p.m = nil
		return nil
	}
	m := orderedmap.New[string, json.RawMessage]()
	if err := m.UnmarshalJSON(data); err != nil {
		return err
	}
	p.m = m
	return nil
}
