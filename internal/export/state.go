package export

import "fmt"

// State is a phase of an export run.
type State int

const (
	StateDisconnected State = iota
	StateConnected
	StateProbing
	StateFetching
	StateMerging
	StateWriting
	StateClosed
	StateFailed
)

var stateNames = [...]string{
	StateDisconnected: "Disconnected",
	StateConnected:    "Connected",
	StateProbing:      "Probing",
	StateFetching:     "Fetching",
	StateMerging:      "Merging",
	StateWriting:      "Writing",
	StateClosed:       "Closed",
	StateFailed:       "Failed",
}

func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Terminal reports whether no further transition is possible.
func (s State) Terminal() bool {
	return s == StateClosed || s == StateFailed
}

// next lists the allowed forward transitions. Failed is reachable from any
// non-terminal state and is not listed. Probing and Fetching alternate per dataset.
var next = map[State][]State{
	StateDisconnected: {StateConnected},
	StateConnected:    {StateProbing, StateClosed},
	StateProbing:      {StateFetching, StateProbing, StateMerging, StateClosed},
	StateFetching:     {StateProbing, StateMerging},
	StateMerging:      {StateWriting, StateClosed},
	StateWriting:      {StateClosed},
}

func canTransition(from, to State) bool {
	if from.Terminal() {
		return false
	}
	if to == StateFailed {
		return true
	}
	for _, s := range next[from] {
		if s == to {
			return true
		}
	}
	return false
}
