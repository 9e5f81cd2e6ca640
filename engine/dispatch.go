package engine

import "github.com/nathoo/emberwood/types"

// Action is the control signal a dispatched command produces. The outer loop
// interprets it; Dispatch itself never mutates state.
type Action int

const (
	ActStay Action = iota
	ActLeave
	ActExplore
	ActEnterForest
	ActCamp
	ActQuit
)

// Dispatch maps (stage, parsed command) to a control signal. Pure function:
// informational verbs and unrecognized input both come back as ActStay; the
// loop decides what to print.
func Dispatch(stage string, cmd types.Command) Action {
	switch cmd.Verb {
	case "quit":
		return ActQuit
	case "camp", "wait":
		if stage == "glade" {
			return ActStay
		}
		return ActCamp
	case "leave":
		return ActLeave
	case "move":
		if stage == "glade" {
			return ActEnterForest
		}
		return ActExplore
	default:
		return ActStay
	}
}

// noResponseText is the zone-specific reply to a verb the dispatcher has no
// handler for.
func noResponseText(stage string) string {
	switch stage {
	case "glade":
		return "The glade is quiet. Nothing comes of that here.\n"
	default:
		return "The forest swallows the thought. Nothing happens.\n"
	}
}
