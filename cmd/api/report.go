package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newReportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Daily stage report operations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(newReportSendCommand())
	return cmd
}

func newReportSendCommand() *cobra.Command {
	var to string

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send the stage report once",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.close(context.Background())

			if to == "" {
				to = a.cfg.ReportRecipient
			}
			if to == "" {
				return fmt.Errorf("no recipient: pass --to or set REPORT_RECIPIENT")
			}

			if err := a.dailyReport().Send(ctx, to); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "report sent to %s\n", to)
			return nil
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "Recipient address (defaults to REPORT_RECIPIENT)")
	return cmd
}
