package engine

import "github.com/vovakirdan/blockdrop/internal/core"

// Apply runs the operation bound to a player action. Actions the engine
// does not handle return s unchanged.
func (e *Engine) Apply(s State, a core.Action) State {
	switch a {
	case core.ActionLeft:
		return e.MoveLeft(s)
	case core.ActionRight:
		return e.MoveRight(s)
	case core.ActionSoftDrop:
		return e.SoftDrop(s)
	case core.ActionRotate:
		return e.Rotate(s)
	case core.ActionHardDrop:
		return e.HardDrop(s)
	case core.ActionPause:
		return e.TogglePause(s)
	default:
		return s
	}
}
