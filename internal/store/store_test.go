package store

import (
	"testing"

	"github.com/google/mangle/ast"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open()
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestAssert_RejectsEmptyAtoms(t *testing.T) {
	s := openStore(t)
	if err := s.Assert("", "", ""); err == nil {
		t.Error("expected error for empty atoms")
	}
	if err := s.Assert("Alice", "", "Bob"); err == nil {
		t.Error("expected error for empty relation")
	}
	if got, err := s.QueryOrdered(); err != nil || len(got) != 0 {
		t.Errorf("rejected asserts must leave the store empty, got %d rows (err=%v)", len(got), err)
	}
}

func TestQueryOrdered_PreservesAssertionOrder(t *testing.T) {
	s := openStore(t)
	in := [][3]string{
		{"Alice", "knows", "Bob"},
		{"Bob", "knows", "Charlie"},
		{"Alice", "works_at", "Acme"},
	}
	for _, r := range in {
		if err := s.Assert(r[0], r[1], r[2]); err != nil {
			t.Fatalf("Assert(%v): %v", r, err)
		}
	}

	got, err := s.QueryOrdered()
	if err != nil {
		t.Fatalf("QueryOrdered: %v", err)
	}
	if len(got) != len(in) {
		t.Fatalf("expected %d rows, got %d", len(in), len(got))
	}
	for i := range in {
		if got[i] != in[i] {
			t.Errorf("row %d: expected %v, got %v", i, in[i], got[i])
		}
	}
}

func TestAssert_AbsorbsDuplicates(t *testing.T) {
	s := openStore(t)
	for i := 0; i < 3; i++ {
		if err := s.Assert("Alice", "knows", "Bob"); err != nil {
			t.Fatalf("Assert: %v", err)
		}
	}
	got, err := s.QueryOrdered()
	if err != nil {
		t.Fatalf("QueryOrdered: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("expected 1 row after duplicate asserts, got %d", len(got))
	}
}

func TestQueryText_ReturnsStoredFacts(t *testing.T) {
	s := openStore(t)
	if err := s.Assert("Alice", "knows", "Bob"); err != nil {
		t.Fatalf("Assert: %v", err)
	}
	if err := s.Assert("Bob", "works_at", "Acme"); err != nil {
		t.Fatalf("Assert: %v", err)
	}

	lines, err := s.QueryText("triple(S, P, O)")
	if err != nil {
		t.Fatalf("QueryText: %v", err)
	}
	if len(lines) != 2 {
		t.Errorf("expected 2 result lines, got %d: %v", len(lines), lines)
	}
}

func TestQueryText_UnknownPredicateIsEmpty(t *testing.T) {
	s := openStore(t)
	if err := s.Assert("Alice", "knows", "Bob"); err != nil {
		t.Fatalf("Assert: %v", err)
	}
	lines, err := s.QueryText("nosuch(X, Y)")
	if err != nil {
		t.Fatalf("QueryText: %v", err)
	}
	if len(lines) != 0 {
		t.Errorf("expected no results for unknown predicate, got %v", lines)
	}
}

func TestQueryText_EmptyQuery(t *testing.T) {
	s := openStore(t)
	if _, err := s.QueryText("   "); err == nil {
		t.Error("expected error for empty query")
	}
}

func TestAllFacts_ContainsOrderedRelations(t *testing.T) {
	s := openStore(t)
	if err := s.Assert("Alice", "knows", "Bob"); err != nil {
		t.Fatalf("Assert: %v", err)
	}
	if err := s.Assert("Bob", "works_at", "Acme"); err != nil {
		t.Fatalf("Assert: %v", err)
	}

	count := 0
	for _, f := range s.AllFacts() {
		if f.Predicate == "triple" && len(f.Args) == 3 {
			count++
		}
	}
	if count != 2 {
		t.Errorf("expected 2 triple facts in raw enumeration, got %d", count)
	}
}

func TestTermString_DecodesBaseTerms(t *testing.T) {
	cases := []struct {
		term ast.BaseTerm
		want string
	}{
		{ast.String("Alice"), "Alice"},
		{ast.Number(42), "42"},
		{ast.Float64(2.5), "2.5"},
		{ast.Variable{Symbol: "X"}, "?X"},
	}
	for _, c := range cases {
		if got := termString(c.term); got != c.want {
			t.Errorf("termString(%v) = %q, want %q", c.term, got, c.want)
		}
	}
}

func TestEval_DerivesLinkedFacts(t *testing.T) {
	s := openStore(t)
	if err := s.Assert("Alice", "knows", "Bob"); err != nil {
		t.Fatalf("Assert: %v", err)
	}
	before := s.Len()
	if err := s.Eval(); err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if s.Len() <= before {
		t.Errorf("expected derived facts after Eval, fact count stayed at %d", s.Len())
	}

	linked := 0
	for _, f := range s.AllFacts() {
		if f.Predicate == "linked" {
			linked++
		}
	}
	if linked != 1 {
		t.Errorf("expected 1 linked/2 fact, got %d", linked)
	}
}
