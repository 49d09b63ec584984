package route

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCell(t *testing.T) {
	tests := []struct {
		in   string
		want Cell
	}{
		{"S1", S1},
		{"s3", S3},
		{"1", Bin1},
		{" 9 ", Bin9},
		{"D", Destination},
		{"destino", Destination},
		{"Destination", Destination},
	}
	for _, tt := range tests {
		got, err := ParseCell(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	for _, bad := range []string{"", "0", "10", "S4", "x"} {
		_, err := ParseCell(bad)
		assert.ErrorIs(t, err, ErrUnknownCell, bad)
	}
}

func TestCellStringAndCoord(t *testing.T) {
	assert.Equal(t, "S2", S2.String())
	assert.Equal(t, "5", Bin5.String())
	assert.Equal(t, "Destino", Destination.String())

	row, col := Bin6.Coord()
	assert.Equal(t, 2, row)
	assert.Equal(t, 2, col)
	row, col = S1.Coord()
	assert.Zero(t, row)
	assert.Zero(t, col)

	for c := S1; c < Destination; c++ {
		r, k := c.Coord()
		back, ok := cellAt(r, k)
		require.True(t, ok)
		assert.Equal(t, c, back)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		from, to Cell
		mode     Mode
		err      error
	}{
		{S1, Bin1, Descend, nil},
		{S1, S2, Descend, nil},
		{Bin1, Bin2, Descend, nil},
		{Bin4, Bin1, Descend, ErrClimbing},
		{Bin4, Bin1, Free, nil},
		{S1, Bin5, Descend, ErrNotAdjacent},
		{Bin1, Bin7, Descend, ErrNotAdjacent},
		{Bin3, Bin4, Descend, ErrNotAdjacent},
		{Bin8, Destination, Descend, nil},
		{Bin9, Destination, Descend, nil},
		{Bin5, Destination, Descend, ErrDestination},
		{Destination, Bin8, Descend, ErrClimbing},
		{Destination, Bin7, Free, nil},
		{Destination, Bin4, Free, ErrNotAdjacent},
		{Cell(42), Bin1, Free, ErrUnknownCell},
	}
	for _, tt := range tests {
		err := Validate(tt.from, tt.to, tt.mode)
		if tt.err == nil {
			assert.NoError(t, err, "%s -> %s %s", tt.from, tt.to, tt.mode)
		} else {
			assert.ErrorIs(t, err, tt.err, "%s -> %s %s", tt.from, tt.to, tt.mode)
		}
	}
}

func TestCommand(t *testing.T) {
	geo := DefaultGeometry
	tests := []struct {
		from, to Cell
		want     string
	}{
		{S1, Bin1, "V-2048"},
		{Bin1, S1, "V2048"},
		{Bin1, Bin2, "H2048"},
		{Bin2, Bin1, "H-2048"},
		{Bin7, Destination, "V-2048"},
		{Bin9, Destination, "V-2048"},
		{Destination, Bin9, "V2048"},
		{S2, Bin8, "V-6144"},
	}
	for _, tt := range tests {
		m, err := Command(tt.from, tt.to, geo)
		require.NoError(t, err, "%s -> %s", tt.from, tt.to)
		assert.Equal(t, tt.want, m.String(), "%s -> %s", tt.from, tt.to)
	}

	_, err := Command(Bin1, Bin5, geo)
	assert.ErrorIs(t, err, ErrInvalidMove)
	_, err = Command(Bin7, S1, geo)
	assert.ErrorIs(t, err, ErrInvalidMove, "climbing several rows is not one command")
}

func TestGeometry(t *testing.T) {
	geo := Geometry{StepsH: 1520, StepsV: 1328}
	m, err := Command(Bin4, Bin7, geo)
	require.NoError(t, err)
	assert.Equal(t, Move{Code: 'V', Arg: -1328}, m)

	assert.Equal(t, Geometry{StepsH: 190, StepsV: 166}, geo.Fine())
}

func TestPlan(t *testing.T) {
	moves, err := Plan([]Cell{S1, Bin1, Bin4, Bin5, Bin8, Destination}, DefaultGeometry)
	require.NoError(t, err)
	assert.Equal(t, []string{"V-2048", "V-2048", "H2048", "V-2048", "V-2048"}, lines(moves))

	_, err = Plan([]Cell{S1, Bin1, S1}, DefaultGeometry)
	assert.ErrorIs(t, err, ErrClimbing)

	moves, err = Plan(nil, DefaultGeometry)
	assert.NoError(t, err)
	assert.Empty(t, moves)
}

func TestPlannerDestinationKeepsColumn(t *testing.T) {
	p := NewPlanner(DefaultGeometry, Bin9)

	_, err := p.Step(Destination, Descend)
	require.NoError(t, err)
	assert.Equal(t, Destination, p.Position())
	assert.Equal(t, 2, p.Column())

	_, err = p.Step(Bin8, Free)
	assert.ErrorIs(t, err, ErrNotAdjacent, "must leave the drop zone straight up")

	m, err := p.Step(Bin9, Free)
	require.NoError(t, err)
	assert.Equal(t, "V2048", m.String())
}

func TestReturnTo(t *testing.T) {
	p := NewPlanner(DefaultGeometry, Bin7)
	_, err := p.Step(Destination, Descend)
	require.NoError(t, err)

	moves, err := p.ReturnTo(S3)
	require.NoError(t, err)
	assert.Equal(t, []string{"V2048", "H2048", "H2048", "V2048", "V2048", "V2048"}, lines(moves))
	assert.Equal(t, S3, p.Position())

	moves, err = p.ReturnTo(S3)
	require.NoError(t, err)
	assert.Empty(t, moves)

	_, err = p.ReturnTo(Bin1)
	assert.ErrorIs(t, err, ErrBadStart)
}

func TestRoute(t *testing.T) {
	p := NewPlanner(DefaultGeometry, S1)

	moves, err := p.Route(S2, []Cell{Bin2, Bin5, Bin8, Destination})
	require.NoError(t, err)
	assert.Equal(t, []string{"H2048", "V-2048", "V-2048", "V-2048", "V-2048", "S25", "S65"}, lines(moves))
	assert.Equal(t, Destination, p.Position())
	assert.Equal(t, 1, p.Column())

	// Second delivery returns to its start first
	moves, err = p.Route(S1, []Cell{Bin1, Bin4, Bin7, Destination})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"V2048", "H-2048", "V2048", "V2048", "V2048",
		"V-2048", "V-2048", "V-2048", "V-2048", "S25", "S65",
	}, lines(moves))
}

func TestRouteRejected(t *testing.T) {
	p := NewPlanner(DefaultGeometry, S1)

	_, err := p.Route(Bin1, []Cell{Destination})
	assert.ErrorIs(t, err, ErrBadStart)

	_, err = p.Route(S1, []Cell{Bin1, Bin4})
	assert.ErrorIs(t, err, ErrNoDestination)

	_, err = p.Route(S3, []Cell{Bin3, Bin2, Bin1, Bin4, Destination})
	assert.ErrorIs(t, err, ErrDestination)
	assert.Equal(t, S1, p.Position(), "rejected route leaves the planner alone")
}

func TestReset(t *testing.T) {
	p := NewPlanner(DefaultGeometry, Bin5)
	p.Reset(S1)
	assert.Equal(t, S1, p.Position())
	assert.Zero(t, p.Column())
}

func lines(moves []Move) []string {
	out := make([]string, len(moves))
	for i, m := range moves {
		out[i] = m.String()
	}
	return out
}

func TestMoveDuration(t *testing.T) {
	assert.Equal(t, 2248*time.Millisecond, Move{Code: 'H', Arg: -2048}.Duration())
	assert.Equal(t, 200*time.Millisecond, Move{Code: 'V', Arg: 0}.Duration())
	assert.Equal(t, 500*time.Millisecond, OpenGate.Duration())
}
