package skills

import "strings"

// Set is an ordered, deduplicated collection of skill labels. Labels are
// compared case-insensitively on their normalized form; the display label
// keeps the casing of the first occurrence. Iteration order is first-seen
// order, which is the stable order used everywhere downstream.
type Set struct {
	keys   []string
	labels map[string]string
}

// NewSet builds a Set from raw labels, applying normalization and dropping
// entries that are blank after it.
func NewSet(raw ...string) *Set {
	s := &Set{labels: make(map[string]string, len(raw))}
	for _, label := range raw {
		s.Add(label)
	}
	return s
}

// Add inserts a label into the set. It reports whether the label was new.
// Blank labels are ignored.
func (s *Set) Add(label string) bool {
	key, display := Normalize(label)
	if key == "" {
		return false
	}
	if _, ok := s.labels[key]; ok {
		return false
	}
	if s.labels == nil {
		s.labels = make(map[string]string)
	}
	s.keys = append(s.keys, key)
	s.labels[key] = display
	return true
}

func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.keys)
}

// Labels returns the display labels in first-seen order.
func (s *Set) Labels() []string {
	labels := make([]string, 0, s.Len())
	if s == nil {
		return labels
	}
	for _, key := range s.keys {
		labels = append(labels, s.labels[key])
	}
	return labels
}

// Keys returns the normalized comparison keys in first-seen order.
func (s *Set) Keys() []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s.keys...)
}

// Label returns the display label stored for the given normalized key.
func (s *Set) Label(key string) string {
	if s == nil {
		return ""
	}
	return s.labels[key]
}

// Contains reports whether the label (after normalization) is in the set.
func (s *Set) Contains(label string) bool {
	if s == nil {
		return false
	}
	key, _ := Normalize(label)
	_, ok := s.labels[key]
	return ok
}

// Normalize trims the label, collapses internal whitespace runs to a single
// space and returns the lower-cased comparison key alongside the cleaned
// display form. Both are empty for blank input.
func Normalize(label string) (key, display string) {
	display = strings.Join(strings.Fields(label), " ")
	return strings.ToLower(display), display
}
