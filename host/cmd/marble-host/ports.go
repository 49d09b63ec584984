package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"marblesort/host/serial"
)

func newPortsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ports",
		Short: "List serial ports; the auto-detected one is starred",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ports, err := serial.ListPorts()
			if err != nil {
				return err
			}
			detected, _ := serial.Detect()

			out := cmd.OutOrStdout()
			if len(ports) == 0 {
				fmt.Fprintln(out, "no serial ports found")
				return nil
			}
			for _, p := range ports {
				mark := " "
				if p == detected {
					mark = "*"
				}
				fmt.Fprintf(out, "%s %s\n", mark, p)
			}
			return nil
		},
	}
}
