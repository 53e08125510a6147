package triple

import "fmt"

// Triple is one directed, labeled edge: subject --predicate--> object.
type Triple struct {
	Subject   string `json:"subject"`
	Predicate string `json:"predicate"`
	Object    string `json:"object"`
}

// Validate checks that all three fields are non-empty.
func (t Triple) Validate() error {
	if t.Subject == "" {
		return fmt.Errorf("triple has empty subject")
	}
	if t.Predicate == "" {
		return fmt.Errorf("triple has empty predicate")
	}
	if t.Object == "" {
		return fmt.Errorf("triple has empty object")
	}
	return nil
}

func (t Triple) String() string {
	return fmt.Sprintf("(%s, %s, %s)", t.Subject, t.Predicate, t.Object)
}

// Seed returns the fixed demo dataset: people, an organization and a city.
func Seed() []Triple {
	return []Triple{
		{"Alice", "knows", "Bob"},
		{"Bob", "knows", "Charlie"},
		{"Alice", "knows", "Charlie"},
		{"Alice", "works_at", "Acme"},
		{"Bob", "works_at", "Acme"},
		{"Acme", "located_in", "Springfield"},
	}
}

// Equal reports whether two triple sequences match element-wise.
func Equal(a, b []Triple) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
