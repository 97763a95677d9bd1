package va

import "fmt"

// BuildError reports a malformed builder call: an out-of-range state ID, a
// patch applied to a state kind that doesn't support it, or an unset start
// state at Build time.
type BuildError struct {
	Message string
	StateID StateID
}

func (e *BuildError) Error() string {
	if e.StateID != InvalidState {
		return fmt.Sprintf("va: build error at state %d: %s", e.StateID, e.Message)
	}
	return fmt.Sprintf("va: build error: %s", e.Message)
}
