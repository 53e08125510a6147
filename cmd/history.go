package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"knowviz/internal/archive"
	"knowviz/internal/triple"
)

var historyJSON bool

var historyCmd = &cobra.Command{
	Use:   "history [run-id]",
	Short: "List archived runs, or show the triples of one run",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := DiscoverArchive()
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("no archive at %s (run with --archive first, or set KNOWVIZ_DB)", path)
		}

		db, err := archive.Open(path)
		if err != nil {
			return err
		}
		defer db.Close()

		if len(args) == 1 {
			runID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid run id %q: %w", args[0], err)
			}
			triples, err := db.TriplesForRun(runID)
			if err != nil {
				return fmt.Errorf("loading run %d: %w", runID, err)
			}
			if len(triples) == 0 {
				return fmt.Errorf("run %d not found in %s", runID, path)
			}
			return printTriples(triples)
		}

		runs, err := db.Runs()
		if err != nil {
			return fmt.Errorf("listing runs: %w", err)
		}
		return printRuns(runs)
	},
}

func init() {
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "JSON output")
	rootCmd.AddCommand(historyCmd)
}

func printTriples(triples []triple.Triple) error {
	if historyJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(triples)
	}
	for _, t := range triples {
		fmt.Printf("  %s --[%s]--> %s\n", t.Subject, t.Predicate, t.Object)
	}
	return nil
}

func printRuns(runs []archive.Run) error {
	if historyJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(runs)
	}
	if len(runs) == 0 {
		fmt.Println("no archived runs")
		return nil
	}
	for _, r := range runs {
		when := time.UnixMilli(r.CreatedAt).Format("2006-01-02 15:04:05")
		fmt.Printf("  run %d  %s  %d triples  source=%s\n", r.ID, when, r.TripleCount, r.Source)
	}
	return nil
}
