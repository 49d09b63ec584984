package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/google/shlex"
	"github.com/spf13/cobra"

	"marblesort/host/board"
	"marblesort/host/route"
)

const replHelp = `commands:
  H2048 V-2048 L10 R-10 S65   raw command lines (several per line are fine)
  open | close                gate to 25 / 65 degrees
  stop                        H0 V0 S65
  at CELL                     declare the carriage position (after calibration)
  route START CELL... D       plan and run a delivery
  home START                  return to a start cell
  where                       show the planned position
  help | quit`

// session is one interactive REPL over a board
type session struct {
	b       *board.Board
	planner *route.Planner
	out     io.Writer
	run     func(moves []route.Move) error
}

func newReplCmd(opts *options) *cobra.Command {
	ropts := &routeOptions{}

	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Interactive console",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := ropts.planner()
			if err != nil {
				return err
			}
			b, err := opts.openBoard()
			if err != nil {
				return err
			}
			defer b.Close()

			s := &session{b: b, planner: p, out: cmd.OutOrStdout()}
			s.run = func(moves []route.Move) error {
				printPlan(s.out, moves)
				return execute(b, moves, opts.log, sleepFor)
			}
			return s.loop(cmd.InOrStdin())
		},
	}
	ropts.register(cmd)
	return cmd
}

func (s *session) loop(in io.Reader) error {
	scanner := bufio.NewScanner(in)
	fmt.Fprintln(s.out, "type 'help' for commands")
	for {
		fmt.Fprint(s.out, "> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		quit, err := s.exec(scanner.Text())
		if err != nil {
			fmt.Fprintln(s.out, "error:", err)
		}
		if quit {
			return nil
		}
	}
}

// exec runs one input line. It reports whether the session should end.
func (s *session) exec(line string) (bool, error) {
	words, err := shlex.Split(line)
	if err != nil {
		return false, err
	}
	if len(words) == 0 {
		return false, nil
	}

	switch strings.ToLower(words[0]) {
	case "quit", "exit", "q":
		return true, nil

	case "help", "?":
		fmt.Fprintln(s.out, replHelp)
		return false, nil

	case "open":
		return false, s.b.OpenGate()

	case "close":
		return false, s.b.CloseGate()

	case "stop":
		return false, s.b.Stop()

	case "where":
		fmt.Fprintf(s.out, "at %s (column %d)\n", s.planner.Position(), s.planner.Column()+1)
		return false, nil

	case "at":
		if len(words) != 2 {
			return false, fmt.Errorf("usage: at CELL")
		}
		cell, err := route.ParseCell(words[1])
		if err != nil {
			return false, err
		}
		s.planner.Reset(cell)
		return false, nil

	case "home":
		if len(words) != 2 {
			return false, fmt.Errorf("usage: home START")
		}
		start, err := route.ParseCell(words[1])
		if err != nil {
			return false, err
		}
		moves, err := s.planner.ReturnTo(start)
		if err != nil {
			return false, err
		}
		return false, s.run(moves)

	case "route":
		cells, err := route.ParseCells(words[1:])
		if err != nil {
			return false, err
		}
		if len(cells) < 2 {
			return false, fmt.Errorf("usage: route START CELL... D")
		}
		moves, err := s.planner.Route(cells[0], cells[1:])
		if err != nil {
			return false, err
		}
		return false, s.run(moves)
	}

	moves, err := parseCommands(words)
	if err != nil {
		return false, err
	}
	for _, m := range moves {
		if err := s.b.Send(m.Code, m.Arg); err != nil {
			return false, err
		}
	}
	return false, nil
}
