// Package candidacy defines the state machine for a candidate's progress
// through one job's review pipeline.
//
// Valid transition graph:
//
//	Applied ──interview──► Interviewed ──approve──► Approved
//	                            │
//	                            └──────reject─────► Rejected
//
// Approved and Rejected are terminal. Any event not in the graph leaves the
// state unchanged; Advance reports whether the event applied so callers can
// distinguish progress from a no-op.
package candidacy

import "fmt"

// State is a candidacy phase. Wire values mirror the applications.state
// column: 0=Applied, 1=Interviewed, 2=Rejected, 3=Approved.
type State uint8

const (
	StateApplied     State = 0
	StateInterviewed State = 1
	StateRejected    State = 2
	StateApproved    State = 3
)

// Event is an actor decision that may advance a candidacy.
type Event string

const (
	EventInterview Event = "interview"
	EventApprove   Event = "approve"
	EventReject    Event = "reject"
)

// Advance applies event to state. The second return value reports whether
// the event was legal from that state; on false the input state is returned
// unchanged.
func Advance(state State, event Event) (State, bool) {
	switch {
	case state == StateApplied && event == EventInterview:
		return StateInterviewed, true
	case state == StateInterviewed && event == EventApprove:
		return StateApproved, true
	case state == StateInterviewed && event == EventReject:
		return StateRejected, true
	default:
		return state, false
	}
}

// Terminal reports whether no further events can apply.
func (s State) Terminal() bool {
	return s == StateApproved || s == StateRejected
}

func (s State) String() string {
	switch s {
	case StateApplied:
		return "applied"
	case StateInterviewed:
		return "interviewed"
	case StateRejected:
		return "rejected"
	case StateApproved:
		return "approved"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(s))
	}
}

// ParseState converts a wire value back into a State.
func ParseState(v uint8) (State, error) {
	s := State(v)
	switch s {
	case StateApplied, StateInterviewed, StateRejected, StateApproved:
		return s, nil
	}
	return 0, fmt.Errorf("unknown candidacy state %d", v)
}
