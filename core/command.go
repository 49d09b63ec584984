package core

import (
	"errors"
	"sync"

	"marblesort/protocol"
)

// ErrUnknownCommand is returned by Dispatch for an unregistered code
var ErrUnknownCommand = errors.New("unknown command code")

// CommandHandler handles one decoded command argument
type CommandHandler func(arg int32) error

// Command represents one single-letter serial command
type Command struct {
	Code    byte // upper-case letter; lower case is accepted on the wire
	Name    string
	Handler CommandHandler
}

// CommandRegistry holds all registered commands
type CommandRegistry struct {
	mu       sync.RWMutex
	commands map[byte]*Command
	order    []byte
	help     string // one "<code> <name>" line per command
}

// NewCommandRegistry creates a new command registry
func NewCommandRegistry() *CommandRegistry {
	return &CommandRegistry{
		commands: make(map[byte]*Command),
	}
}

// Register adds a command to the registry. Registering a code twice
// replaces the handler.
func (r *CommandRegistry) Register(code byte, name string, handler CommandHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()

	code = protocol.NormalizeCode(code)
	if _, exists := r.commands[code]; !exists {
		r.order = append(r.order, code)
	}

	r.commands[code] = &Command{
		Code:    code,
		Name:    name,
		Handler: handler,
	}

	// Rebuild help text
	r.rebuildHelp()
}

// GetCommand retrieves a command by code, case-insensitively
func (r *CommandRegistry) GetCommand(code byte) (*Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cmd, ok := r.commands[protocol.NormalizeCode(code)]
	return cmd, ok
}

// Count returns the number of registered commands
func (r *CommandRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.commands)
}

// Dispatch calls the appropriate command handler
func (r *CommandRegistry) Dispatch(code byte, arg int32) error {
	cmd, ok := r.GetCommand(code)
	if !ok {
		return ErrUnknownCommand
	}

	return cmd.Handler(arg)
}

// GetHelp returns the command list, one per line, in registration order
func (r *CommandRegistry) GetHelp() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.help
}

// rebuildHelp rebuilds the help string
// Must be called with lock held
func (r *CommandRegistry) rebuildHelp() {
	help := ""
	for _, code := range r.order {
		help += string(rune(code)) + " " + r.commands[code].Name + "\n"
	}
	r.help = help
}

// RegisterMotionCommands binds the sorter's command set to motion and
// servo. L and R only exist when the lifts are synchronized.
func RegisterMotionCommands(r *CommandRegistry, motion *Motion, servo *Servo) {
	r.Register(protocol.CodeHorizontal, "horizontal steps=%i", func(arg int32) error {
		motion.MoveHorizontal(arg)
		return nil
	})
	r.Register(protocol.CodeVertical, "vertical steps=%i", func(arg int32) error {
		motion.MoveVertical(arg)
		return nil
	})
	if motion.Mode == VerticalSynchronized {
		r.Register(protocol.CodeLeft, "left steps=%i", func(arg int32) error {
			motion.MoveLeft(arg)
			return nil
		})
		r.Register(protocol.CodeRight, "right steps=%i", func(arg int32) error {
			motion.MoveRight(arg)
			return nil
		})
	}
	r.Register(protocol.CodeServo, "servo angle=%u", func(arg int32) error {
		// The wire value is taken as a 16-bit unsigned angle and clamped
		// by the servo.
		servo.SetAngle(uint16(arg))
		return nil
	})
}
