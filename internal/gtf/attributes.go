// Package gtf parses GTF annotation lines and rebuilds gene/transcript trees
// from them.
package gtf

import (
	"fmt"
	"iter"
	"slices"
	"strings"
)

// Attributes is the ordered key/value block of a GTF line (column 9).
// Iteration order is insertion order and is the serialization order.
type Attributes struct {
	keys   []string
	values map[string]string
}

// NewAttributes creates an empty attribute block.
func NewAttributes() *Attributes {
	return &Attributes{values: make(map[string]string)}
}

// ParseAttributes parses an attribute column.
// Format: key "value"; key "value"; ...
//
// Trailing separators are dropped. Values may be left unquoted (level 2;).
func ParseAttributes(text string) (*Attributes, error) {
	attrs := NewAttributes()

	// Drop trailing separators so only interior empty segments remain.
	text = strings.TrimRight(text, " \t;")
	if strings.TrimSpace(text) == "" {
		return attrs, nil
	}

	for _, part := range strings.Split(text, ";") {
		part = strings.TrimLeft(part, " \t")
		if part == "" {
			return nil, &FormatError{Message: "empty attribute segment"}
		}

		i := strings.IndexAny(part, " \t")
		if i <= 0 {
			return nil, &FormatError{Message: fmt.Sprintf("attribute %q has no value", part)}
		}

		key := part[:i]
		value, err := unquote(strings.TrimSpace(part[i+1:]))
		if err != nil {
			return nil, &FormatError{Message: fmt.Sprintf("attribute %q: %v", key, err)}
		}

		attrs.Set(key, value)
	}

	return attrs, nil
}

// unquote strips the surrounding quotes of an attribute value. Unquoted
// values must be a single bare token.
func unquote(v string) (string, error) {
	if strings.HasPrefix(v, `"`) {
		if len(v) < 2 || !strings.HasSuffix(v, `"`) {
			return "", fmt.Errorf("mismatched quotes in %s", v)
		}
		inner := v[1 : len(v)-1]
		if strings.Contains(inner, `"`) {
			return "", fmt.Errorf("more than one value in %s", v)
		}
		return inner, nil
	}
	if v == "" {
		return "", fmt.Errorf("empty value")
	}
	if strings.ContainsAny(v, "\" \t") {
		return "", fmt.Errorf("more than one value in %s", v)
	}
	return v, nil
}

// String serializes the block as `key "value";` entries joined by a space.
func (a *Attributes) String() string {
	var b strings.Builder
	for i, k := range a.keys {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(k)
		b.WriteString(` "`)
		b.WriteString(a.values[k])
		b.WriteString(`";`)
	}
	return b.String()
}

// Len returns the number of attributes.
func (a *Attributes) Len() int {
	return len(a.keys)
}

// Get returns the value stored for key.
func (a *Attributes) Get(key string) (string, bool) {
	v, ok := a.values[key]
	return v, ok
}

// Has reports whether key is present.
func (a *Attributes) Has(key string) bool {
	_, ok := a.values[key]
	return ok
}

// Set assigns value to key. An existing key keeps its position.
func (a *Attributes) Set(key, value string) {
	if _, ok := a.values[key]; !ok {
		a.keys = append(a.keys, key)
	}
	a.values[key] = value
}

// Delete removes key and reports whether it was present.
func (a *Attributes) Delete(key string) bool {
	if _, ok := a.values[key]; !ok {
		return false
	}
	delete(a.values, key)
	a.keys = slices.DeleteFunc(a.keys, func(k string) bool { return k == key })
	return true
}

// Remove deletes every named key that is present.
func (a *Attributes) Remove(keys ...string) {
	for _, k := range keys {
		a.Delete(k)
	}
}

// Filter keeps only the named keys, in their original relative order.
func (a *Attributes) Filter(keys ...string) {
	a.retain(func(k string) bool { return slices.Contains(keys, k) })
}

// RemoveMatching deletes every key containing one of the substrings.
//
// This is a name heuristic, not a schema: a gene-level key such as
// transcript_support_level is removed along with transcript_id.
func (a *Attributes) RemoveMatching(substrings ...string) {
	a.retain(func(k string) bool {
		for _, s := range substrings {
			if strings.Contains(k, s) {
				return false
			}
		}
		return true
	})
}

func (a *Attributes) retain(keep func(string) bool) {
	kept := a.keys[:0]
	for _, k := range a.keys {
		if keep(k) {
			kept = append(kept, k)
		} else {
			delete(a.values, k)
		}
	}
	a.keys = kept
}

// Keys returns the keys in order.
func (a *Attributes) Keys() []string {
	return slices.Clone(a.keys)
}

// All iterates over the key/value pairs in order.
func (a *Attributes) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, k := range a.keys {
			if !yield(k, a.values[k]) {
				return
			}
		}
	}
}

// Clone returns a deep copy.
func (a *Attributes) Clone() *Attributes {
	c := &Attributes{
		keys:   slices.Clone(a.keys),
		values: make(map[string]string, len(a.values)),
	}
	for k, v := range a.values {
		c.values[k] = v
	}
	return c
}

// Equal reports whether both blocks hold the same pairs in the same order.
func (a *Attributes) Equal(b *Attributes) bool {
	if !slices.Equal(a.keys, b.keys) {
		return false
	}
	for _, k := range a.keys {
		if a.values[k] != b.values[k] {
			return false
		}
	}
	return true
}
