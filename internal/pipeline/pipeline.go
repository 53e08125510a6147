// Package pipeline runs the one-shot Authoring → Recovery →
// Rendering & Export flow.
package pipeline

import (
	"fmt"
	"io"
	"os"

	"knowviz/internal/archive"
	"knowviz/internal/recovery"
	"knowviz/internal/render"
	"knowviz/internal/store"
	"knowviz/internal/triple"
)

// Config controls one pipeline run.
type Config struct {
	Triples     []triple.Triple // nil means the built-in seed dataset
	PNGPath     string          // default graph.png
	ExportPath  string          // default triples.json
	ArchivePath string          // empty disables archiving
	Out         io.Writer       // progress output, default os.Stdout
	Warn        io.Writer       // degraded-path warnings, default os.Stderr
}

// Outcome reports what one run actually produced.
type Outcome struct {
	Triples  []triple.Triple
	Source   string // recovery strategy that won, or "authored"
	Asserted int
	Rejected int
	Rendered bool
	Stats    render.Stats
	RunID    int64 // archive run id, 0 when archiving was off or failed
}

// Run executes the pipeline once. Only a store that cannot be opened
// aborts the run; every other fault degrades to a warning or a partial
// result. A failed JSON export is returned as the run error after all
// effects were attempted, so it never suppresses the other artifact.
func Run(cfg Config) (*Outcome, error) {
	if cfg.Triples == nil {
		cfg.Triples = triple.Seed()
	}
	if cfg.PNGPath == "" {
		cfg.PNGPath = "graph.png"
	}
	if cfg.ExportPath == "" {
		cfg.ExportPath = "triples.json"
	}
	if cfg.Out == nil {
		cfg.Out = os.Stdout
	}
	if cfg.Warn == nil {
		cfg.Warn = os.Stderr
	}

	st, err := store.Open()
	if err != nil {
		return nil, fmt.Errorf("opening knowledge store: %w", err)
	}
	defer st.Close()

	out := &Outcome{}

	// Authoring: one bad triple must not abort the rest.
	for _, t := range cfg.Triples {
		if err := st.Assert(t.Subject, t.Predicate, t.Object); err != nil {
			out.Rejected++
			fmt.Fprintf(cfg.Warn, "warning: skipping triple %s: %v\n", t, err)
			continue
		}
		out.Asserted++
	}
	fmt.Fprintf(cfg.Out, "asserted %d of %d triples into the knowledge store\n", out.Asserted, len(cfg.Triples))

	if err := st.Eval(); err != nil {
		fmt.Fprintf(cfg.Warn, "warning: store evaluation failed: %v\n", err)
	}

	// Recovery: keep only the triples that actually made it into the
	// store as the fallback, so a degraded store and a degraded read
	// path report the same data.
	authored := valid(cfg.Triples)
	res := recovery.Recover(st, authored)
	for _, a := range res.Attempts {
		if a.Err != nil {
			fmt.Fprintf(cfg.Warn, "warning: recovery strategy %s failed: %v\n", a.Strategy, a.Err)
		} else {
			fmt.Fprintf(cfg.Warn, "warning: recovery strategy %s matched nothing\n", a.Strategy)
		}
	}
	if res.Source == recovery.Fallback {
		fmt.Fprintf(cfg.Warn, "warning: store recovery failed; using authored triples\n")
	} else {
		fmt.Fprintf(cfg.Out, "recovered %d triples via %s\n", len(res.Triples), res.Source)
	}
	out.Triples = res.Triples
	out.Source = res.Source

	// Rendering and export are independent effects over the same data:
	// both are attempted no matter what the other does.
	g := render.FromTriples("knowledge", out.Triples)
	out.Stats = g.Stats()
	if err := g.PNG(cfg.PNGPath); err != nil {
		fmt.Fprintf(cfg.Warn, "warning: rendering failed: %v\n", err)
		fmt.Fprintf(cfg.Out, "DOT source:\n%s", g.DOT())
	} else {
		out.Rendered = true
		fmt.Fprintf(cfg.Out, "wrote %s\n", cfg.PNGPath)
	}

	var exportErr error
	if err := triple.WriteJSON(cfg.ExportPath, out.Triples); err != nil {
		exportErr = fmt.Errorf("exporting triples: %w", err)
		fmt.Fprintf(cfg.Warn, "warning: %v\n", exportErr)
	} else {
		fmt.Fprintf(cfg.Out, "wrote %s\n", cfg.ExportPath)
	}

	if cfg.ArchivePath != "" {
		if id, err := archiveRun(cfg.ArchivePath, res.Source, out.Triples); err != nil {
			fmt.Fprintf(cfg.Warn, "warning: archiving run failed: %v\n", err)
		} else {
			out.RunID = id
			fmt.Fprintf(cfg.Out, "archived run %d in %s\n", id, cfg.ArchivePath)
		}
	}

	fmt.Fprintf(cfg.Out, "graph: %d nodes, %d edges, %d predicates, %d components\n",
		out.Stats.Nodes, out.Stats.Edges, out.Stats.Predicates, out.Stats.Components)

	return out, exportErr
}

func archiveRun(path, source string, triples []triple.Triple) (int64, error) {
	db, err := archive.Open(path)
	if err != nil {
		return 0, err
	}
	defer db.Close()
	return db.SaveRun(source, triples)
}

func valid(triples []triple.Triple) []triple.Triple {
	out := make([]triple.Triple, 0, len(triples))
	for _, t := range triples {
		if t.Validate() == nil {
			out = append(out, t)
		}
	}
	return out
}
