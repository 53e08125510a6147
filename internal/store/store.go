// Package store wraps the google/mangle engine as an in-memory symbolic
// knowledge store for ordered relations.
package store

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/google/mangle/analysis"
	"github.com/google/mangle/ast"
	_ "github.com/google/mangle/builtin"
	"github.com/google/mangle/engine"
	"github.com/google/mangle/factstore"
	"github.com/google/mangle/parse"
)

// schema declares the ordered-relation predicate plus one derived
// relation so evaluation has actual work to do.
const schema = `
Decl triple(Subject, Relation, Object).

linked(S, O) :- triple(S, R, O).
`

var triplePred = ast.PredicateSym{Symbol: "triple", Arity: 3}

// Fact is one stored atom in decoded form, for raw enumeration.
type Fact struct {
	Predicate string
	Args      []string
}

// Store holds a parsed program and its fact store. The underlying fact
// store is unordered, so asserted atoms are also tracked in an EDB
// slice to keep reads in assertion order. Not safe for concurrent use;
// the pipeline is single-threaded.
type Store struct {
	program *analysis.ProgramInfo
	facts   factstore.FactStore
	edb     []ast.Atom
}

// Open parses and analyzes the embedded schema and creates a fresh
// in-memory fact store. This is the only fatal failure point of the
// pipeline.
func Open() (*Store, error) {
	unit, err := parse.Unit(strings.NewReader(schema))
	if err != nil {
		return nil, fmt.Errorf("parsing store schema: %w", err)
	}
	program, err := analysis.AnalyzeOneUnit(unit, nil)
	if err != nil {
		return nil, fmt.Errorf("analyzing store schema: %w", err)
	}
	return &Store{
		program: program,
		facts:   factstore.NewSimpleInMemoryStore(),
	}, nil
}

// Close releases the fact store. The store must not be used afterwards.
func (s *Store) Close() error {
	s.facts = nil
	s.program = nil
	s.edb = nil
	return nil
}

// Assert adds one ordered-relation fact. A rejected triple leaves the
// store unchanged; duplicates are absorbed.
func (s *Store) Assert(sub, rel, obj string) error {
	if sub == "" || rel == "" || obj == "" {
		return fmt.Errorf("ordered relation needs three non-empty atoms, got (%q, %q, %q)", sub, rel, obj)
	}
	atom := ast.Atom{
		Predicate: triplePred,
		Args:      []ast.BaseTerm{ast.String(sub), ast.String(rel), ast.String(obj)},
	}
	if s.facts.Add(atom) {
		s.edb = append(s.edb, atom)
	}
	return nil
}

// Eval runs the Datalog engine to fixpoint, populating derived
// relations such as linked/2.
func (s *Store) Eval() error {
	if err := engine.EvalProgram(s.program, s.facts); err != nil {
		return fmt.Errorf("evaluating program: %w", err)
	}
	return nil
}

// Len returns the store's fact count estimate.
func (s *Store) Len() int {
	return s.facts.EstimateFactCount()
}

// QueryOrdered runs a structured wildcard pattern query over triple/3
// and decodes the matches, in assertion order.
func (s *Store) QueryOrdered() ([][3]string, error) {
	matched := make(map[string]bool)
	err := s.facts.GetFacts(ast.NewQuery(triplePred), func(a ast.Atom) error {
		matched[a.String()] = true
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("pattern query on %s: %w", triplePred.Symbol, err)
	}
	var out [][3]string
	for _, atom := range s.edb {
		if !matched[atom.String()] || len(atom.Args) != 3 {
			continue
		}
		out = append(out, [3]string{
			termString(atom.Args[0]),
			termString(atom.Args[1]),
			termString(atom.Args[2]),
		})
	}
	return out, nil
}

// QueryText evaluates a raw query written in the store's surface
// syntax, e.g. `triple(S, P, O)`, and returns matching facts in the
// store's text form, sorted for stable output.
func (s *Store) QueryText(query string) ([]string, error) {
	name := strings.TrimSpace(query)
	arity := 0
	if i := strings.Index(name, "("); i >= 0 {
		inner := strings.TrimSuffix(strings.TrimSpace(name[i+1:]), ")")
		name = strings.TrimSpace(name[:i])
		if strings.TrimSpace(inner) != "" {
			arity = strings.Count(inner, ",") + 1
		}
	}
	if name == "" {
		return nil, fmt.Errorf("empty query %q", query)
	}
	pred := ast.PredicateSym{Symbol: name, Arity: arity}
	var out []string
	err := s.facts.GetFacts(ast.NewQuery(pred), func(a ast.Atom) error {
		out = append(out, a.String())
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("text query %q: %w", query, err)
	}
	sort.Strings(out)
	return out, nil
}

// AllFacts enumerates every atom currently in the store, decoded into
// predicate name and argument strings, sorted for stable output.
func (s *Store) AllFacts() []Fact {
	var out []Fact
	for _, pred := range s.facts.ListPredicates() {
		s.facts.GetFacts(ast.NewQuery(pred), func(a ast.Atom) error {
			f := Fact{Predicate: a.Predicate.Symbol, Args: make([]string, len(a.Args))}
			for i, arg := range a.Args {
				f.Args[i] = termString(arg)
			}
			out = append(out, f)
			return nil
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Predicate != out[j].Predicate {
			return out[i].Predicate < out[j].Predicate
		}
		return strings.Join(out[i].Args, "\x00") < strings.Join(out[j].Args, "\x00")
	})
	return out
}

// termString extracts the plain string form of a base term.
func termString(term ast.BaseTerm) string {
	switch t := term.(type) {
	case ast.Constant:
		switch t.Type {
		case ast.NameType, ast.StringType:
			return t.Symbol
		case ast.NumberType:
			return strconv.FormatInt(t.NumValue, 10)
		case ast.Float64Type:
			f, err := t.Float64Value()
			if err != nil {
				return t.Symbol
			}
			return strconv.FormatFloat(f, 'g', -1, 64)
		default:
			return t.Symbol
		}
	case ast.Variable:
		return "?" + t.Symbol
	default:
		return fmt.Sprintf("%v", term)
	}
}
