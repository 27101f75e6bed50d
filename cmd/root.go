package cmd

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "bibliosort",
	Short: "Semantic document classification and filing",
	Long: `Bibliosort reads a document, ranks it against your topical catalog by
embedding similarity, accepts an optional human correction, records the
outcome in an append-only feedback ledger, and files the document into
the matching folder of your remote store.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".bibliosort.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
