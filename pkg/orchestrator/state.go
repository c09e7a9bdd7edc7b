package orchestrator

import "github.com/pkg/errors"

var (
	ErrPreconditionUnmet = errors.New("both an import and export path must be selected")
	ErrInvalidTransition = errors.New("invalid state transition")
	ErrNoRun             = errors.New("no run has occurred")
)

// State is the lifecycle state of an Orchestrator.
type State int

const (
	// Idle means nothing was built yet.
	Idle State = iota
	// Built means the last run succeeded and its networks exist.
	Built
	// Cleared means the networks were destroyed. The last Run Record is kept but its paths are stale.
	Cleared
	// Closed is terminal: the session ended.
	Closed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Built:
		return "built"
	case Cleared:
		return "cleared"
	case Closed:
		return "closed"
	default:
		return "unknown"
	}
}

func transition(from, to State) error {
	return errors.Wrapf(ErrInvalidTransition, "%s to %s", from, to)
}
