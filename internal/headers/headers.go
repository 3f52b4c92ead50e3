package headers

import (
	"sort"
	"strings"

	"qrport/internal/httperr"
)

// Headers maps a field name, exactly as received, to its value. Each name
// holds one value; a repeated name keeps the last one seen.
type Headers map[string]string

func NewHeaders() Headers {
	return make(Headers)
}

// Get looks key up verbatim first and falls back to a case-insensitive match.
func (h Headers) Get(key string) (string, bool) {
	if value, ok := h[key]; ok {
		return value, true
	}
	for k, v := range h {
		if strings.EqualFold(k, key) {
			return v, true
		}
	}
	return "", false
}

// ParseLine splits a single field line at its first colon and stores it.
// Neither side is trimmed: "Host: a" stores the value " a".
func (h Headers) ParseLine(fieldLine string) error {
	key, value, found := strings.Cut(fieldLine, ":")
	if !found {
		return httperr.New(httperr.InvalidHeader, fieldLine)
	}
	h[key] = value
	return nil
}

// Parse consumes every field line in lines, stopping at the first bad one.
func (h Headers) Parse(lines []string) error {
	for _, line := range lines {
		if err := h.ParseLine(line); err != nil {
			return err
		}
	}
	return nil
}

// Keys returns the field names in sorted order.
func (h Headers) Keys() []string {
	keys := make([]string, 0, len(h))
	for k := range h {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
