package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"marblesort/host/board"
	"marblesort/host/route"
)

// memPort is an in-memory serial port
type memPort struct {
	bytes.Buffer
}

func (p *memPort) Close() error { return nil }

func TestParseCommand(t *testing.T) {
	tests := []struct {
		in   string
		want route.Move
	}{
		{"H2048", route.Move{Code: 'H', Arg: 2048}},
		{"v-2048", route.Move{Code: 'V', Arg: -2048}},
		{"L+10", route.Move{Code: 'L', Arg: 10}},
		{"R0", route.Move{Code: 'R', Arg: 0}},
		{"S65", route.Move{Code: 'S', Arg: 65}},
	}
	for _, tt := range tests {
		got, err := parseCommand(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	for _, bad := range []string{"", "H", "X10", "Habc", "H1.5", "S-1", "S271", "H99999999999"} {
		_, err := parseCommand(bad)
		assert.Error(t, err, bad)
	}
}

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("MARBLE_DEVICE=/dev/ttyACM7\nMARBLE_BAUD=9600\n"), 0o600))

	// Variables present in the environment beat the file
	t.Setenv(envDevice, "")
	t.Setenv(envBaud, "57600")
	os.Unsetenv(envDevice)

	d := loadDefaults(path)
	assert.Equal(t, "/dev/ttyACM7", d.device)
	assert.Equal(t, 57600, d.baud)
}

func TestLoadDefaultsMissingFile(t *testing.T) {
	t.Setenv(envDevice, "")
	t.Setenv(envBaud, "not-a-number")

	d := loadDefaults(filepath.Join(t.TempDir(), "missing.env"))
	assert.Empty(t, d.device)
	assert.Equal(t, 115200, d.baud)
}

func TestExecute(t *testing.T) {
	port := &memPort{}
	b := board.New(port, nil)

	var waited time.Duration
	moves := []route.Move{{Code: 'H', Arg: 100}, route.OpenGate}
	require.NoError(t, execute(b, moves, zap.NewNop(), func(d time.Duration) { waited += d }))

	assert.Equal(t, "H100\nS25\n", port.String())
	assert.Equal(t, 300*time.Millisecond+500*time.Millisecond, waited)
}

func TestPrintPlan(t *testing.T) {
	var out bytes.Buffer
	printPlan(&out, []route.Move{{Code: 'V', Arg: -2048}, route.OpenGate})

	assert.Equal(t, " 1  V-2048\n 2  S25\n2 commands, about 2.7s\n", out.String())
}

func newTestSession() (*session, *memPort, *[][]route.Move) {
	port := &memPort{}
	var runs [][]route.Move
	s := &session{
		b:       board.New(port, nil),
		planner: route.NewPlanner(route.DefaultGeometry, route.S1),
		out:     &bytes.Buffer{},
	}
	s.run = func(moves []route.Move) error {
		runs = append(runs, moves)
		return nil
	}
	return s, port, &runs
}

func TestSessionRawAndGate(t *testing.T) {
	s, port, _ := newTestSession()

	for _, line := range []string{"H2048 v-10", "open", "close", "", "stop"} {
		quit, err := s.exec(line)
		require.NoError(t, err, line)
		assert.False(t, quit)
	}
	assert.Equal(t, "H2048\nV-10\nS25\nS65\nH0\nV0\nS65\n", port.String())

	_, err := s.exec("Z1")
	assert.Error(t, err)

	_, err = s.exec(`"unterminated`)
	assert.Error(t, err)
}

func TestSessionRoute(t *testing.T) {
	s, _, runs := newTestSession()

	_, err := s.exec("route S1 1 4 7 D")
	require.NoError(t, err)
	require.Len(t, *runs, 1)
	assert.Len(t, (*runs)[0], 6)
	assert.Equal(t, route.Destination, s.planner.Position())

	_, err = s.exec("home S2")
	require.NoError(t, err)
	assert.Equal(t, route.S2, s.planner.Position())

	_, err = s.exec("route S1 2")
	assert.ErrorIs(t, err, route.ErrNoDestination)

	_, err = s.exec("at 5")
	require.NoError(t, err)
	_, err = s.exec("where")
	require.NoError(t, err)
	assert.Contains(t, s.out.(*bytes.Buffer).String(), "at 5 (column 2)")
}

func TestSessionLoop(t *testing.T) {
	s, port, _ := newTestSession()

	require.NoError(t, s.loop(strings.NewReader("H1\nbogus\nquit\nH2\n")))
	assert.Equal(t, "H1\n", port.String(), "nothing runs after quit")
	assert.Contains(t, s.out.(*bytes.Buffer).String(), "error:")
}

func TestRootCommandTree(t *testing.T) {
	root := newRootCmd()

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"ports", "send", "monitor", "repl", "route"})

	for _, flag := range []string{"device", "baud", "verbose"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(flag), flag)
	}
}

func TestRouteDryRun(t *testing.T) {
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"route", "--steps-h", "1520", "--steps-v", "1328", "S1", "1", "4", "7", "D"})

	require.NoError(t, root.Execute())
	assert.True(t, strings.HasPrefix(out.String(), " 1  V-1328\n"))
	assert.Contains(t, out.String(), "6 commands")
}
