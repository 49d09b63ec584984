package route

import (
	"errors"
	"fmt"
	"time"

	"marblesort/protocol"
)

var (
	ErrNotAdjacent   = errors.New("route: cells are not adjacent")
	ErrClimbing      = errors.New("route: cannot climb while loaded")
	ErrDestination   = errors.New("route: destination is only reachable from 7, 8 or 9")
	ErrInvalidMove   = errors.New("route: no single command covers this move")
	ErrBadStart      = errors.New("route: routes start at S1, S2 or S3")
	ErrNoDestination = errors.New("route: routes end at the destination")
)

// Mode selects the movement rules
type Mode uint8

const (
	// Descend applies while a marble is carried: moves go sideways or
	// down, never up.
	Descend Mode = iota

	// Free allows climbing, for returning empty to a start cell.
	Free
)

func (m Mode) String() string {
	if m == Free {
		return "free"
	}
	return "descend"
}

// Geometry is the number of motor steps between neighbouring cells
type Geometry struct {
	StepsH int32
	StepsV int32
}

// DefaultGeometry is one full output revolution of a 28BYJ-48 per cell
var DefaultGeometry = Geometry{StepsH: 2048, StepsV: 2048}

// Fine returns the calibration jog, one eighth of a cell
func (g Geometry) Fine() Geometry {
	return Geometry{StepsH: g.StepsH / 8, StepsV: g.StepsV / 8}
}

// Move is one command line for the board
type Move struct {
	Code byte
	Arg  int32
}

func (m Move) String() string {
	line := protocol.FormatCommand(m.Code, m.Arg)
	return line[:len(line)-1]
}

// Duration estimates how long the board needs to finish m. Axes advance
// one half-step per millisecond; the gate gets a fixed half second.
func (m Move) Duration() time.Duration {
	if m.Code == protocol.CodeServo {
		return 500 * time.Millisecond
	}
	steps := m.Arg
	if steps < 0 {
		steps = -steps
	}
	return time.Duration(steps)*time.Millisecond + settleTime
}

// settleTime is added to every axis move
const settleTime = 200 * time.Millisecond

// Gate moves
var (
	OpenGate  = Move{Code: protocol.CodeServo, Arg: 25}
	CloseGate = Move{Code: protocol.CodeServo, Arg: 65}
)

// Validate checks a single move under mode. Moves into the destination
// are only legal from the bottom row; moves out of it are only legal in
// Free mode and go straight up.
func Validate(from, to Cell, mode Mode) error {
	if !from.Valid() || !to.Valid() {
		return ErrUnknownCell
	}
	if to == Destination {
		if feedsDestination(from) {
			return nil
		}
		return ErrDestination
	}
	if from == Destination {
		if mode != Free {
			return ErrClimbing
		}
		if !feedsDestination(to) {
			return ErrNotAdjacent
		}
		return nil
	}

	r1, c1 := from.Coord()
	r2, c2 := to.Coord()
	if abs(r1-r2)+abs(c1-c2) != 1 {
		return ErrNotAdjacent
	}
	if mode == Descend && r2 < r1 {
		return ErrClimbing
	}
	return nil
}

// Command returns the single command that moves the carriage from one
// cell to another, assuming the drop zone column is that of from (or
// the middle one when from is not on the bottom row). A straight drop
// over several rows is one command.
func Command(from, to Cell, geo Geometry) (Move, error) {
	if !from.Valid() || !to.Valid() {
		return Move{}, ErrUnknownCell
	}
	r1, c1 := from.Coord()
	r2, c2 := to.Coord()
	if to == Destination && from != Destination {
		c2 = c1
	}
	if from == Destination && to != Destination {
		c1 = c2
	}
	return command(r1, c1, r2, c2, geo)
}

func command(r1, c1, r2, c2 int, geo Geometry) (Move, error) {
	dr := r2 - r1
	dc := c2 - c1
	switch {
	case dc == 0 && dr > 0:
		return Move{Code: protocol.CodeVertical, Arg: -int32(dr) * geo.StepsV}, nil
	case dc == 0 && dr == -1:
		return Move{Code: protocol.CodeVertical, Arg: geo.StepsV}, nil
	case dr == 0 && dc == 1:
		return Move{Code: protocol.CodeHorizontal, Arg: geo.StepsH}, nil
	case dr == 0 && dc == -1:
		return Move{Code: protocol.CodeHorizontal, Arg: -geo.StepsH}, nil
	}
	return Move{}, fmt.Errorf("%w: (%d,%d) to (%d,%d)", ErrInvalidMove, r1, c1, r2, c2)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
