package ledger

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Note is the content of a transaction's note column: either free text or a
// parsed key/value object in the shared settings mini-format
// ("key: value; key2: value2").
type Note struct {
	text   string
	keys   []string
	fields map[string]string
	parsed bool
}

var keyPat = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_-]*$`)

// TextNote creates a free-text note.
func TextNote(s string) Note {
	return Note{text: s}
}

// ParseNote parses a note cell. Cells shaped like the settings mini-format
// are parsed strictly and yield an error on malformed input; anything else is
// kept as free text.
func ParseNote(s string) (Note, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Note{}, nil
	}
	if !looksLikeFields(s) {
		return TextNote(s), nil
	}
	keys, fields, err := parseFields(s)
	if err != nil {
		return Note{}, err
	}
	return Note{text: s, keys: keys, fields: fields, parsed: true}, nil
}

// ParseSettings parses a settings cell strictly: the cell must be a
// well-formed key/value object.
func ParseSettings(s string) (map[string]string, error) {
	_, fields, err := parseFields(s)
	return fields, err
}

func looksLikeFields(s string) bool {
	head, _, ok := strings.Cut(s, ":")
	if !ok {
		return false
	}
	return keyPat.MatchString(strings.TrimSpace(head))
}

func parseFields(s string) ([]string, map[string]string, error) {
	var keys []string
	fields := make(map[string]string)
	for _, part := range strings.Split(s, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		k, v, ok := strings.Cut(part, ":")
		if !ok {
			return nil, nil, fmt.Errorf("invalid settings entry %q", part)
		}
		k = strings.TrimSpace(k)
		if !keyPat.MatchString(k) {
			return nil, nil, fmt.Errorf("invalid settings key %q", k)
		}
		if _, dup := fields[k]; !dup {
			keys = append(keys, k)
		}
		fields[k] = strings.TrimSpace(v)
	}
	if len(fields) == 0 {
		return nil, nil, fmt.Errorf("empty settings cell")
	}
	return keys, fields, nil
}

// IsZero reports whether the note is empty.
func (n Note) IsZero() bool {
	return !n.parsed && n.text == ""
}

// Text returns the note's raw text.
func (n Note) Text() string {
	return n.text
}

// Get returns a field of a parsed note.
func (n Note) Get(key string) (string, bool) {
	if !n.parsed {
		return "", false
	}
	v, ok := n.fields[key]
	return v, ok
}

// Decimal returns a numeric field of a parsed note.
func (n Note) Decimal(key string) (decimal.Decimal, bool) {
	v, ok := n.Get(key)
	if !ok {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// With returns a copy of the note with the field set.
func (n Note) With(key, value string) Note {
	fields := make(map[string]string, len(n.fields)+1)
	for k, v := range n.fields {
		fields[k] = v
	}
	keys := n.keys
	if _, dup := fields[key]; !dup {
		keys = append(append([]string(nil), n.keys...), key)
	}
	fields[key] = value
	return Note{keys: keys, fields: fields, parsed: true}
}

// String serializes the note back to cell form.
func (n Note) String() string {
	if !n.parsed {
		return n.text
	}
	parts := make([]string, 0, len(n.keys))
	for _, k := range n.keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, n.fields[k]))
	}
	return strings.Join(parts, "; ")
}
