package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Count documents filed under each catalog label",
	Long: `Queries the remote store and prints how many documents live under each
catalog label's folder. Labels without a folder show a zero count; no
folder is ever created by this command.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		ctx := context.Background()
		svc, _, cleanup, err := buildService(ctx, cfg)
		if err != nil {
			return err
		}
		defer cleanup()

		report, err := svc.Report(ctx)
		if err != nil {
			return err
		}

		fmt.Print(report.Markdown())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
}
