package terminal

import (
	"unicode"

	"github.com/gdamore/tcell/v2"

	"wolfcast/internal/camera"
)

// Action is what a key event asks the frontend to do.
type Action int

const (
	ActionNone Action = iota
	ActionMove
	ActionPause
	ActionReload
	ActionStats
	ActionQuit
)

var runeCommands = map[rune]camera.Command{
	'w': camera.Forward,
	'z': camera.Forward,
	's': camera.Backward,
	'a': camera.StrafeLeft,
	'q': camera.StrafeLeft,
	'd': camera.StrafeRight,
}

var keyCommands = map[tcell.Key]camera.Command{
	tcell.KeyUp:    camera.Forward,
	tcell.KeyDown:  camera.Backward,
	tcell.KeyLeft:  camera.RotateLeft,
	tcell.KeyRight: camera.RotateRight,
}

// Translate maps a key event to an action; for ActionMove the command is
// also returned. Terminals send repeated events for a held key, so every
// event is one command.
func Translate(ev *tcell.EventKey) (Action, camera.Command) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return ActionQuit, camera.CommandNone
	case tcell.KeyTab:
		return ActionStats, camera.CommandNone
	case tcell.KeyRune:
		r := unicode.ToLower(ev.Rune())
		if cmd, ok := runeCommands[r]; ok {
			return ActionMove, cmd
		}
		switch r {
		case 'p':
			return ActionPause, camera.CommandNone
		case 'r':
			return ActionReload, camera.CommandNone
		}
		return ActionNone, camera.CommandNone
	}
	if cmd, ok := keyCommands[ev.Key()]; ok {
		return ActionMove, cmd
	}
	return ActionNone, camera.CommandNone
}
