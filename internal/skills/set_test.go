package skills

import (
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		name    string
		input   string
		key     string
		display string
	}{
		{"plain", "Python", "python", "Python"},
		{"surrounding whitespace", "  SQL \t", "sql", "SQL"},
		{"internal runs", "project   management", "project management", "project management"},
		{"mixed", " Machine \n Learning ", "machine learning", "Machine Learning"},
		{"blank", "   \t\n", "", ""},
		{"empty", "", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			key, display := Normalize(tc.input)
			if key != tc.key {
				t.Fatalf("expected key %q, got %q", tc.key, key)
			}
			if display != tc.display {
				t.Fatalf("expected display %q, got %q", tc.display, display)
			}
		})
	}
}

func TestSetDeduplicatesCaseInsensitively(t *testing.T) {
	set := NewSet("Python", "python", "PYTHON", "SQL", "sql")

	if set.Len() != 2 {
		t.Fatalf("expected 2 skills, got %d", set.Len())
	}

	labels := set.Labels()
	expected := []string{"Python", "SQL"}
	if !reflect.DeepEqual(labels, expected) {
		t.Fatalf("expected first-seen display labels %v, got %v", expected, labels)
	}
}

func TestSetKeepsFirstSeenOrder(t *testing.T) {
	set := NewSet("Rust", "Go", "Python", "go", "Rust")

	expected := []string{"rust", "go", "python"}
	if !reflect.DeepEqual(set.Keys(), expected) {
		t.Fatalf("expected keys %v, got %v", expected, set.Keys())
	}
}

func TestSetDiscardsBlankEntries(t *testing.T) {
	set := NewSet("", "  ", "Python", "\t\n")

	if set.Len() != 1 {
		t.Fatalf("expected 1 skill, got %d", set.Len())
	}
	if !set.Contains("python") {
		t.Fatalf("expected set to contain python")
	}
}

func TestSetContainsNormalizesLookup(t *testing.T) {
	set := NewSet("Project Management")

	if !set.Contains("  project   MANAGEMENT ") {
		t.Fatalf("expected normalized lookup to match")
	}
	if set.Contains("management") {
		t.Fatalf("did not expect partial label to match")
	}
}

func TestEmptySet(t *testing.T) {
	set := NewSet()

	if set.Len() != 0 {
		t.Fatalf("expected empty set, got %d entries", set.Len())
	}
	if labels := set.Labels(); len(labels) != 0 {
		t.Fatalf("expected no labels, got %v", labels)
	}
}
