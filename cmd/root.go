package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var archiveDBPath string

var rootCmd = &cobra.Command{
	Use:   "knowviz",
	Short: "Build, recover and visualize a small symbolic knowledge graph",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&archiveDBPath, "db", "", "Path to the run archive database")
}

// DiscoverArchive resolves the archive path using priority: env > flag > default
func DiscoverArchive() string {
	if envPath := os.Getenv("KNOWVIZ_DB"); envPath != "" {
		return envPath
	}
	if archiveDBPath != "" {
		return archiveDBPath
	}
	return "triples.db"
}
