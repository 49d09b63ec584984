package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"marblesort/host/route"
	"marblesort/protocol"
)

var errBadCommand = errors.New("commands look like H2048, V-512, L10, R-10 or S65")

// parseCommand parses one command word. Unlike the firmware, the host
// rejects anything that is not exactly a code and a decimal number.
func parseCommand(word string) (route.Move, error) {
	word = strings.TrimSpace(word)
	if len(word) < 2 {
		return route.Move{}, fmt.Errorf("%q: %w", word, errBadCommand)
	}
	code := protocol.NormalizeCode(word[0])
	switch code {
	case protocol.CodeHorizontal, protocol.CodeVertical, protocol.CodeLeft,
		protocol.CodeRight, protocol.CodeServo:
	default:
		return route.Move{}, fmt.Errorf("%q: %w", word, errBadCommand)
	}
	arg, err := strconv.ParseInt(word[1:], 10, 32)
	if err != nil {
		return route.Move{}, fmt.Errorf("%q: %w", word, errBadCommand)
	}
	if code == protocol.CodeServo && (arg < 0 || arg > 270) {
		return route.Move{}, fmt.Errorf("%q: servo angle must be 0..270", word)
	}
	if len(word) > protocol.MaxCommandLine {
		return route.Move{}, fmt.Errorf("%q: longer than %d bytes", word, protocol.MaxCommandLine)
	}
	return route.Move{Code: code, Arg: int32(arg)}, nil
}

func parseCommands(words []string) ([]route.Move, error) {
	moves := make([]route.Move, 0, len(words))
	for _, w := range words {
		m, err := parseCommand(w)
		if err != nil {
			return nil, err
		}
		moves = append(moves, m)
	}
	return moves, nil
}

func newSendCmd(opts *options) *cobra.Command {
	var wait bool

	cmd := &cobra.Command{
		Use:   "send COMMAND...",
		Short: "Send raw command lines, e.g. send H2048 V-2048 S25",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			moves, err := parseCommands(args)
			if err != nil {
				return err
			}

			b, err := opts.openBoard()
			if err != nil {
				return err
			}
			defer b.Close()

			for _, m := range moves {
				if err := b.Send(m.Code, m.Arg); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), m)
				if wait {
					time.Sleep(m.Duration())
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&wait, "wait", "w", false, "wait for each move to finish before sending the next")
	return cmd
}
