package input

import (
	"sort"
	"time"

	"mcrogueface/pkg/engine/geom"
)

// Device represents a physical input source.
type Device int

const (
	DeviceUnknown Device = iota
	DeviceKeyboard
	DeviceTerminal
)

// Action represents a high-level intent.
type Action int

const (
	ActionNone Action = iota

	// Movement
	ActionMoveNorth
	ActionMoveEast
	ActionMoveSouth
	ActionMoveWest
	ActionMoveNorthEast
	ActionMoveSouthEast
	ActionMoveSouthWest
	ActionMoveNorthWest

	ActionWait
	ActionGotoExit    // Walk the A* route to the exit
	ActionCycleFOV    // Switch to the next FOV algorithm
	ActionForget      // Clear the player's memory of the map
	ActionToggleLayer // Show or hide the decoration layer
	ActionZoomIn
	ActionZoomOut
	ActionHelp // Show or hide the key bindings
	ActionQuit
)

// Intent is the top layer: what the player wants to do.
type Intent struct {
	Action Action
}

// RawInput is an event straight from a device. Code is a device specific
// identifier such as "arrow_up" or "k".
type RawInput struct {
	Device    Device
	Code      string
	Timestamp time.Time
}

// DebouncedInput is a RawInput after deduplication. Both ebiten and the
// terminal reader already report discrete presses, so this is a thin copy.
type DebouncedInput struct {
	Device Device
	Code   string
}

// NewDebouncedInput converts a raw event to a debounced event.
func NewDebouncedInput(raw RawInput) DebouncedInput {
	return DebouncedInput{
		Device: raw.Device,
		Code:   raw.Code,
	}
}

// bindings maps codes to actions. Several codes may share an action.
var bindings = map[string]Action{
	// Arrows and vi keys
	"arrow_up":    ActionMoveNorth,
	"k":           ActionMoveNorth,
	"arrow_right": ActionMoveEast,
	"l":           ActionMoveEast,
	"arrow_down":  ActionMoveSouth,
	"j":           ActionMoveSouth,
	"arrow_left":  ActionMoveWest,
	"h":           ActionMoveWest,
	"u":           ActionMoveNorthEast,
	"n":           ActionMoveSouthEast,
	"b":           ActionMoveSouthWest,
	"y":           ActionMoveNorthWest,

	// Numpad
	"8": ActionMoveNorth,
	"6": ActionMoveEast,
	"2": ActionMoveSouth,
	"4": ActionMoveWest,
	"9": ActionMoveNorthEast,
	"3": ActionMoveSouthEast,
	"1": ActionMoveSouthWest,
	"7": ActionMoveNorthWest,
	"5": ActionWait,
	".": ActionWait,

	"g":      ActionGotoExit,
	"f":      ActionCycleFOV,
	"r":      ActionForget,
	"t":      ActionToggleLayer,
	"=":      ActionZoomIn,
	"+":      ActionZoomIn,
	"-":      ActionZoomOut,
	"?":      ActionHelp,
	"f1":     ActionHelp,
	"q":      ActionQuit,
	"escape": ActionQuit,
	"ctrl_c": ActionQuit,
}

// MapToIntent applies the bindings to a debounced input.
func MapToIntent(ev DebouncedInput) Intent {
	if act, ok := bindings[ev.Code]; ok {
		return Intent{Action: act}
	}
	return Intent{Action: ActionNone}
}

// Direction returns the movement direction of a move action.
func (a Action) Direction() (geom.Direction, bool) {
	switch a {
	case ActionMoveNorth:
		return geom.North, true
	case ActionMoveEast:
		return geom.East, true
	case ActionMoveSouth:
		return geom.South, true
	case ActionMoveWest:
		return geom.West, true
	case ActionMoveNorthEast:
		return geom.NorthEast, true
	case ActionMoveSouthEast:
		return geom.SouthEast, true
	case ActionMoveSouthWest:
		return geom.SouthWest, true
	case ActionMoveNorthWest:
		return geom.NorthWest, true
	default:
		return 0, false
	}
}

// ActionName returns a human-friendly name for an action.
func ActionName(a Action) string {
	if d, ok := a.Direction(); ok {
		return "Move " + d.String()
	}
	switch a {
	case ActionWait:
		return "Wait"
	case ActionGotoExit:
		return "Go To Exit"
	case ActionCycleFOV:
		return "Cycle FOV"
	case ActionForget:
		return "Forget Map"
	case ActionToggleLayer:
		return "Toggle Decorations"
	case ActionZoomIn:
		return "Zoom In"
	case ActionZoomOut:
		return "Zoom Out"
	case ActionHelp:
		return "Help"
	case ActionQuit:
		return "Quit"
	default:
		return "None"
	}
}

// GetBindingsByAction returns the bindings grouped by action, codes sorted.
func GetBindingsByAction() map[Action][]string {
	result := make(map[Action][]string)
	for code, act := range bindings {
		result[act] = append(result[act], code)
	}
	for act, codes := range result {
		sort.Strings(codes)
		result[act] = codes
	}
	return result
}

// SetSingleBinding replaces all bindings for action with code. Arrow keys
// and quit keys are reserved and survive rebinding.
func SetSingleBinding(action Action, code string) {
	for c, a := range bindings {
		if reserved(c) {
			continue
		}
		if a == action {
			delete(bindings, c)
		}
	}
	if code != "" && !reserved(code) {
		bindings[code] = action
	}
}

func reserved(code string) bool {
	switch code {
	case "arrow_up", "arrow_down", "arrow_left", "arrow_right", "escape", "ctrl_c":
		return true
	}
	return false
}
