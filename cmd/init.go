package cmd

import (
	"github.com/spf13/cobra"

	"github.com/akhelifi/bibliosort/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize bibliosort configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure bibliosort and generates a .bibliosort.yml file plus a starter catalog.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard(cfgFile)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
