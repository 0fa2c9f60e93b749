// Package location models the address bar: a URL whose query string carries
// the displayed class, written only through replace-state.
package location

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ClassParam is the query parameter holding the displayed class
const ClassParam = "class"

// ErrInvalidLink is returned when a deep link cannot be parsed
var ErrInvalidLink = errors.New("invalid link")

// History is the address bar as seen by the synchronizer
type History interface {
	Location() url.URL
	ReplaceState(u url.URL)
}

// Memory is an in-process History. Replace-state never adds entries, so
// Length stays at 1 for the lifetime of the session.
type Memory struct {
	current  url.URL
	entries  int
	replaced int
}

// NewMemory returns a history positioned at u
func NewMemory(u url.URL) *Memory {
	return &Memory{current: u, entries: 1}
}

// Location returns a copy of the current URL
func (m *Memory) Location() url.URL {
	return m.current
}

// ReplaceState overwrites the current entry
func (m *Memory) ReplaceState(u url.URL) {
	m.current = u
	m.replaced++
}

// Length is the number of history entries
func (m *Memory) Length() int {
	return m.entries
}

// Replacements counts ReplaceState calls
func (m *Memory) Replacements() int {
	return m.replaced
}

// String returns the current URL
func (m *Memory) String() string {
	return m.current.String()
}

// Parse accepts either a full URL or a bare query such as "?class=B240402".
// A bare query is resolved against base, which may be empty.
func Parse(raw, base string) (url.URL, error) {
	raw = strings.TrimSpace(raw)

	b, err := url.Parse(base)
	if err != nil {
		return url.URL{}, fmt.Errorf("%w: base %q: %v", ErrInvalidLink, base, err)
	}
	if raw == "" {
		return *b, nil
	}

	ref, err := url.Parse(raw)
	if err != nil {
		return url.URL{}, fmt.Errorf("%w: %q: %v", ErrInvalidLink, raw, err)
	}
	if ref.Scheme != "" || ref.Host != "" {
		return *ref, nil
	}
	return *b.ResolveReference(ref), nil
}

// Class returns the class parameter, or "" when absent
func Class(u url.URL) string {
	return u.Query().Get(ClassParam)
}

// WithClass returns u with its query replaced by exactly class=<class>
// and its fragment dropped.
func WithClass(u url.URL, class string) url.URL {
	u.RawQuery = url.Values{ClassParam: []string{class}}.Encode()
	u.Fragment = ""
	u.RawFragment = ""
	u.ForceQuery = false
	return u
}

// WithoutQuery returns u reduced to its path
func WithoutQuery(u url.URL) url.URL {
	u.RawQuery = ""
	u.Fragment = ""
	u.RawFragment = ""
	u.ForceQuery = false
	return u
}
