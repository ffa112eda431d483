package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrInvalidColor indicates a color-valued style property could not be parsed.
var ErrInvalidColor = errors.New("invalid color value")

// colorProperties are style names whose values are normalized hex colors.
var colorProperties = map[string]bool{
	"fillColor":   true,
	"strokeColor": true,
	"fontColor":   true,
}

// Style is an insertion-ordered mapping of property names to values.
// The zero value is not usable; create styles with NewStyle or ParseStyle.
type Style struct {
	names  []string
	values map[string]string
}

// NewStyle creates an empty style.
func NewStyle() *Style {
	return &Style{values: make(map[string]string)}
}

// ParseStyle parses a "name=value;name=value" string into a style.
func ParseStyle(s string) (*Style, error) {
	st := NewStyle()
	for _, pair := range strings.Split(s, ";") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		name, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("style entry %q: missing '='", pair)
		}
		if err := st.Set(strings.TrimSpace(name), strings.TrimSpace(value)); err != nil {
			return nil, err
		}
	}
	return st, nil
}

// Set stores a property value, preserving first-insertion order.
// Color-valued properties are normalized to #rrggbb form; unparseable
// colors are rejected and the style is left unchanged.
func (s *Style) Set(name, value string) error {
	if colorProperties[name] && value != "" && value != "none" {
		normalized, err := NormalizeColor(value)
		if err != nil {
			return err
		}
		value = normalized
	}
	if _, exists := s.values[name]; !exists {
		s.names = append(s.names, name)
	}
	s.values[name] = value
	return nil
}

// Get returns a property value and whether it is present.
func (s *Style) Get(name string) (string, bool) {
	v, ok := s.values[name]
	return v, ok
}

// Delete removes a property. Removing an absent property is a no-op.
func (s *Style) Delete(name string) {
	if _, ok := s.values[name]; !ok {
		return
	}
	delete(s.values, name)
	for i, n := range s.names {
		if n == name {
			s.names = append(s.names[:i], s.names[i+1:]...)
			break
		}
	}
}

// Names returns the property names in insertion order.
func (s *Style) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Len returns the number of properties.
func (s *Style) Len() int {
	return len(s.names)
}

// Clone creates a deep copy of the style. Clone of nil is nil.
func (s *Style) Clone() *Style {
	if s == nil {
		return nil
	}
	c := &Style{
		names:  make([]string, len(s.names)),
		values: make(map[string]string, len(s.values)),
	}
	copy(c.names, s.names)
	for k, v := range s.values {
		c.values[k] = v
	}
	return c
}

// Equal reports whether two styles hold the same properties in the same
// order. Both nil compares true.
func (s *Style) Equal(other *Style) bool {
	if s == nil || other == nil {
		return s == other
	}
	if len(s.names) != len(other.names) {
		return false
	}
	for i, name := range s.names {
		if other.names[i] != name || s.values[name] != other.values[name] {
			return false
		}
	}
	return true
}

// String renders the style as "name=value;name=value" in insertion order.
func (s *Style) String() string {
	if s == nil || len(s.names) == 0 {
		return ""
	}
	var b strings.Builder
	for i, name := range s.names {
		if i > 0 {
			b.WriteByte(';')
		}
		b.WriteString(name)
		b.WriteByte('=')
		b.WriteString(s.values[name])
	}
	return b.String()
}

// NormalizeColor parses a hex color ("#f00" or "#ff0000") and returns its
// canonical lowercase #rrggbb form.
func NormalizeColor(value string) (string, error) {
	c, err := colorful.Hex(value)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidColor, value)
	}
	return c.Hex(), nil
}
