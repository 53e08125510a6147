package cmd

import (
	"encoding/json"
	"io"
	"os"

	"github.com/spf13/cobra"
	"knowviz/internal/pipeline"
)

var (
	runPNG     string
	runExport  string
	runArchive bool
	runQuiet   bool
	runJSON    bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Author the demo triples, recover them from the store, render PNG and export JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := pipeline.Config{
			PNGPath:    runPNG,
			ExportPath: runExport,
		}
		if runArchive {
			cfg.ArchivePath = DiscoverArchive()
		}
		if runQuiet || runJSON {
			cfg.Out = io.Discard
		}

		outcome, err := pipeline.Run(cfg)
		if err != nil {
			return err
		}

		if runJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(struct {
				Source   string `json:"source"`
				Asserted int    `json:"asserted"`
				Rejected int    `json:"rejected"`
				Rendered bool   `json:"rendered"`
				Count    int    `json:"count"`
				Stats    any    `json:"stats"`
			}{outcome.Source, outcome.Asserted, outcome.Rejected, outcome.Rendered, len(outcome.Triples), outcome.Stats})
		}
		return nil
	},
}

func init() {
	runCmd.Flags().StringVar(&runPNG, "png", "graph.png", "Output path for the rendered graph image")
	runCmd.Flags().StringVar(&runExport, "out", "triples.json", "Output path for the triple export")
	runCmd.Flags().BoolVar(&runArchive, "archive", false, "Archive the run in the triple database")
	runCmd.Flags().BoolVar(&runQuiet, "quiet", false, "Suppress progress output")
	runCmd.Flags().BoolVar(&runJSON, "json", false, "Print the run summary as JSON")
	rootCmd.AddCommand(runCmd)
}
