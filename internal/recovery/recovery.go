// Package recovery reads ordered relations back out of the knowledge
// store. The store's read surface varies between releases, so each
// query strategy probes the handle for one optional capability and the
// chain stops at the first strategy that yields data. The authored
// triples are the guaranteed last resort: recovery never produces an
// empty sequence from a non-empty input.
package recovery

import (
	"knowviz/internal/triple"
)

// Strategy is one alternative way of recovering triples from a store
// handle. Recover probes src for the capability it needs; a handle
// without that capability is a per-strategy failure.
type Strategy interface {
	Name() string
	Recover(src any) ([]triple.Triple, error)
}

// Attempt records one strategy that did not produce data.
type Attempt struct {
	Strategy string
	Err      error // nil when the strategy ran but matched nothing
}

// Result is the outcome of a recovery pass.
type Result struct {
	Triples  []triple.Triple
	Source   string // winning strategy name, or "authored"
	Attempts []Attempt
}

// Fallback is the Source value used when every strategy was exhausted.
const Fallback = "authored"

// Default returns the built-in strategies in probe order.
func Default() []Strategy {
	return []Strategy{PatternQuery{}, RawTextQuery{}, FactScan{}}
}

// Recover tries each strategy in order against src and returns the
// first non-empty result. Exhaustion falls back to a copy of authored,
// so the pipeline always has triples to render as long as authoring
// had any.
func Recover(src any, authored []triple.Triple, strategies ...Strategy) Result {
	if len(strategies) == 0 {
		strategies = Default()
	}
	res := Result{}
	for _, s := range strategies {
		got, err := s.Recover(src)
		if err != nil {
			res.Attempts = append(res.Attempts, Attempt{Strategy: s.Name(), Err: err})
			continue
		}
		if len(got) == 0 {
			res.Attempts = append(res.Attempts, Attempt{Strategy: s.Name()})
			continue
		}
		res.Triples = got
		res.Source = s.Name()
		return res
	}
	res.Triples = make([]triple.Triple, len(authored))
	copy(res.Triples, authored)
	res.Source = Fallback
	return res
}
