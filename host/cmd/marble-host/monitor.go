package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"marblesort/protocol"
)

func newMonitorCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "monitor",
		Short: "Print marble detection events until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := opts.openBoard()
			if err != nil {
				return err
			}
			defer b.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			out := cmd.OutOrStdout()
			err = b.Monitor(ctx, func(t protocol.Telemetry) {
				fmt.Fprintf(out, "%-3s entered=%d exited=%d present=%d\n",
					t.Kind, t.Entered, t.Exited, t.Present)
			})
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
}
