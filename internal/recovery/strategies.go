package recovery

import (
	"fmt"
	"regexp"
	"strconv"

	"knowviz/internal/store"
	"knowviz/internal/triple"
)

// The three read capabilities a store handle may expose. Which of them
// exist depends on the store release; strategies assert for them at
// runtime instead of assuming any particular one.
type (
	patternQuerier interface {
		QueryOrdered() ([][3]string, error)
	}
	textQuerier interface {
		QueryText(query string) ([]string, error)
	}
	factScanner interface {
		AllFacts() []store.Fact
	}
)

// PatternQuery recovers triples through the store's structured
// wildcard pattern query. Preferred when available.
type PatternQuery struct{}

func (PatternQuery) Name() string { return "pattern-query" }

func (PatternQuery) Recover(src any) ([]triple.Triple, error) {
	q, ok := src.(patternQuerier)
	if !ok {
		return nil, fmt.Errorf("store does not support pattern queries")
	}
	rows, err := q.QueryOrdered()
	if err != nil {
		return nil, err
	}
	out := make([]triple.Triple, 0, len(rows))
	for _, r := range rows {
		out = append(out, triple.Triple{Subject: r[0], Predicate: r[1], Object: r[2]})
	}
	return out, nil
}

// rawTripleQuery is the query issued in the store's surface syntax.
const rawTripleQuery = "triple(S, P, O)"

// rawAtom matches the store's text form of an ordered-relation fact,
// e.g. triple("Alice", "knows", "Bob"). String inspection of another
// system's output is inherently brittle; anything that does not match
// is skipped rather than guessed at.
var rawAtom = regexp.MustCompile(`^triple\(\s*("(?:[^"\\]|\\.)*")\s*,\s*("(?:[^"\\]|\\.)*")\s*,\s*("(?:[^"\\]|\\.)*")\s*\)$`)

// RawTextQuery issues a textual query and parses the result atoms by
// string inspection.
type RawTextQuery struct{}

func (RawTextQuery) Name() string { return "raw-text-query" }

func (RawTextQuery) Recover(src any) ([]triple.Triple, error) {
	q, ok := src.(textQuerier)
	if !ok {
		return nil, fmt.Errorf("store does not support textual queries")
	}
	lines, err := q.QueryText(rawTripleQuery)
	if err != nil {
		return nil, err
	}
	var out []triple.Triple
	for _, line := range lines {
		t, ok := parseRawAtom(line)
		if !ok {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func parseRawAtom(line string) (triple.Triple, bool) {
	m := rawAtom.FindStringSubmatch(line)
	if m == nil {
		return triple.Triple{}, false
	}
	var parts [3]string
	for i := 0; i < 3; i++ {
		s, err := strconv.Unquote(m[i+1])
		if err != nil {
			return triple.Triple{}, false
		}
		parts[i] = s
	}
	return triple.Triple{Subject: parts[0], Predicate: parts[1], Object: parts[2]}, true
}

// FactScan walks the store's raw atom collection and keeps the
// ordered-relation atoms. Last resort before the authored fallback.
type FactScan struct{}

func (FactScan) Name() string { return "fact-scan" }

func (FactScan) Recover(src any) ([]triple.Triple, error) {
	sc, ok := src.(factScanner)
	if !ok {
		return nil, fmt.Errorf("store does not expose its atom collection")
	}
	var out []triple.Triple
	for _, f := range sc.AllFacts() {
		if f.Predicate != "triple" || len(f.Args) != 3 {
			continue
		}
		out = append(out, triple.Triple{Subject: f.Args[0], Predicate: f.Args[1], Object: f.Args[2]})
	}
	return out, nil
}
