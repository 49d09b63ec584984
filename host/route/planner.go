package route

import "fmt"

// Planner tracks the carriage position and turns cell sequences into
// board commands. It only plans; nothing is sent.
type Planner struct {
	geo Geometry
	pos Cell
	col int // current column, also inside the drop zone
}

// NewPlanner starts a planner with the carriage at start
func NewPlanner(geo Geometry, start Cell) *Planner {
	_, col := start.Coord()
	return &Planner{geo: geo, pos: start, col: col}
}

// Position returns the cell the carriage is planned to be in
func (p *Planner) Position() Cell {
	return p.pos
}

// Column returns the carriage column
func (p *Planner) Column() int {
	return p.col
}

// Reset declares the carriage to be at cell without moving it, as after
// a manual calibration.
func (p *Planner) Reset(cell Cell) {
	_, p.col = cell.Coord()
	p.pos = cell
}

// Step plans a single move to an adjacent cell
func (p *Planner) Step(to Cell, mode Mode) (Move, error) {
	if err := Validate(p.pos, to, mode); err != nil {
		return Move{}, fmt.Errorf("%s -> %s: %w", p.pos, to, err)
	}

	r1, _ := p.pos.Coord()
	r2, c2 := to.Coord()
	if to == Destination {
		c2 = p.col
	} else if p.pos == Destination && c2 != p.col {
		return Move{}, fmt.Errorf("%s -> %s: %w", p.pos, to, ErrNotAdjacent)
	}

	m, err := command(r1, p.col, r2, c2, p.geo)
	if err != nil {
		return Move{}, err
	}
	p.pos = to
	p.col = c2
	return m, nil
}

// ReturnTo plans the empty trip back to a start cell: up out of the drop
// zone, across to the start column, then straight up.
func (p *Planner) ReturnTo(start Cell) ([]Move, error) {
	if !start.IsStart() {
		return nil, ErrBadStart
	}
	_, target := start.Coord()

	var moves []Move
	step := func(to Cell) error {
		m, err := p.Step(to, Free)
		if err != nil {
			return err
		}
		moves = append(moves, m)
		return nil
	}

	if p.pos == Destination {
		up, _ := cellAt(DestinationRow-1, p.col)
		if err := step(up); err != nil {
			return nil, err
		}
	}

	row, _ := p.pos.Coord()
	for p.col != target {
		next := p.col + 1
		if target < p.col {
			next = p.col - 1
		}
		cell, _ := cellAt(row, next)
		if err := step(cell); err != nil {
			return nil, err
		}
	}

	for row > 0 {
		row--
		cell, _ := cellAt(row, p.col)
		if err := step(cell); err != nil {
			return nil, err
		}
	}
	return moves, nil
}

// Route plans a full delivery: back to start if needed, down path while
// loaded, then open and close the gate over the drop zone. The planner
// is left untouched when the route is rejected.
func (p *Planner) Route(start Cell, path []Cell) ([]Move, error) {
	if !start.IsStart() {
		return nil, ErrBadStart
	}
	if len(path) == 0 || path[len(path)-1] != Destination {
		return nil, ErrNoDestination
	}

	work := *p
	var moves []Move
	if work.pos != start {
		back, err := work.ReturnTo(start)
		if err != nil {
			return nil, err
		}
		moves = append(moves, back...)
	}
	for _, cell := range path {
		m, err := work.Step(cell, Descend)
		if err != nil {
			return nil, err
		}
		moves = append(moves, m)
	}
	moves = append(moves, OpenGate, CloseGate)

	*p = work
	return moves, nil
}

// Plan converts a loaded path starting at path[0] into commands
func Plan(path []Cell, geo Geometry) ([]Move, error) {
	if len(path) == 0 {
		return nil, nil
	}
	p := NewPlanner(geo, path[0])
	moves := make([]Move, 0, len(path)-1)
	for _, cell := range path[1:] {
		m, err := p.Step(cell, Descend)
		if err != nil {
			return nil, err
		}
		moves = append(moves, m)
	}
	return moves, nil
}
