package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"marblesort/host/board"
	"marblesort/host/route"
)

// sleepFor waits out a move; tests replace it
var sleepFor = time.Sleep

// routeOptions are the flags shared by route and repl
type routeOptions struct {
	stepsH  int32
	stepsV  int32
	from    string
	execute bool
}

func (r *routeOptions) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.Int32Var(&r.stepsH, "steps-h", route.DefaultGeometry.StepsH, "motor steps between columns")
	flags.Int32Var(&r.stepsV, "steps-v", route.DefaultGeometry.StepsV, "motor steps between rows")
	flags.StringVar(&r.from, "from", "S1", "cell the carriage is in now")
}

func (r *routeOptions) planner() (*route.Planner, error) {
	from, err := route.ParseCell(r.from)
	if err != nil {
		return nil, err
	}
	geo := route.Geometry{StepsH: r.stepsH, StepsV: r.stepsV}
	return route.NewPlanner(geo, from), nil
}

func newRouteCmd(opts *options) *cobra.Command {
	ropts := &routeOptions{}

	cmd := &cobra.Command{
		Use:   "route START CELL... D",
		Short: "Plan a delivery from a start cell to the drop zone",
		Long: `Plan a delivery from a start cell (S1..S3) through bins 1..9 down to the
drop zone (D). While loaded the carriage only moves sideways or down, and the
drop zone is entered from 7, 8 or 9. The plan is printed; pass --execute to
send it to the board.`,
		Example: "  marble-host route S1 1 4 5 8 D\n  marble-host route --from D --execute S3 3 6 9 D",
		Args:    cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cells, err := route.ParseCells(args)
			if err != nil {
				return err
			}
			p, err := ropts.planner()
			if err != nil {
				return err
			}
			moves, err := p.Route(cells[0], cells[1:])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printPlan(out, moves)
			if !ropts.execute {
				return nil
			}

			b, err := opts.openBoard()
			if err != nil {
				return err
			}
			defer b.Close()
			return execute(b, moves, opts.log, sleepFor)
		},
	}
	ropts.register(cmd)
	cmd.Flags().BoolVarP(&ropts.execute, "execute", "x", false, "send the plan to the board")
	return cmd
}

func printPlan(out io.Writer, moves []route.Move) {
	var total time.Duration
	for i, m := range moves {
		total += m.Duration()
		fmt.Fprintf(out, "%2d  %s\n", i+1, m)
	}
	fmt.Fprintf(out, "%d commands, about %s\n", len(moves), total.Round(100*time.Millisecond))
}

// execute sends moves one at a time, waiting for each to finish
func execute(b *board.Board, moves []route.Move, log *zap.Logger, sleep func(time.Duration)) error {
	for i, m := range moves {
		if err := b.Send(m.Code, m.Arg); err != nil {
			return fmt.Errorf("move %d (%s): %w", i+1, m, err)
		}
		log.Info("move sent", zap.Int("index", i+1), zap.Stringer("move", m))
		sleep(m.Duration())
	}
	return nil
}
