// Package lifecycle owns the task state machine. It is pure and stateless:
// callers persist the state returned by Transition.
package lifecycle

import (
	"sort"

	types "github.com/inference-gateway/a2a-conformance/types"
	validation "github.com/inference-gateway/a2a-conformance/validation"
)

// Event is a request to move a task to another state
type Event string

// Event enum values
const (
	EventStartWorking Event = "start-working"
	EventRequireInput Event = "require-input"
	EventComplete     Event = "complete"
	EventCancel       Event = "cancel"
	EventFail         Event = "fail"
	EventReject       Event = "reject"
	EventRequireAuth  Event = "require-auth"
	EventResume       Event = "resume"
)

// Events lists every event in declaration order
var Events = []Event{
	EventStartWorking,
	EventRequireInput,
	EventComplete,
	EventCancel,
	EventFail,
	EventReject,
	EventRequireAuth,
	EventResume,
}

// String returns the wire form of the event
func (e Event) String() string {
	return string(e)
}

// IsValid reports whether e is a known event
func (e Event) IsValid() bool {
	switch e {
	case EventStartWorking, EventRequireInput, EventComplete, EventCancel,
		EventFail, EventReject, EventRequireAuth, EventResume:
		return true
	default:
		return false
	}
}

// transitions is the closed transition table. Cancel from any non-terminal
// state is handled in Transition rather than repeated per row.
var transitions = map[types.TaskState]map[Event]types.TaskState{
	types.TaskStateSubmitted: {
		EventStartWorking: types.TaskStateWorking,
		EventReject:       types.TaskStateRejected,
	},
	types.TaskStateWorking: {
		EventRequireInput: types.TaskStateInputRequired,
		EventRequireAuth:  types.TaskStateAuthRequired,
		EventComplete:     types.TaskStateCompleted,
		EventFail:         types.TaskStateFailed,
	},
	types.TaskStateInputRequired: {
		EventResume: types.TaskStateWorking,
	},
	types.TaskStateAuthRequired: {
		EventResume: types.TaskStateWorking,
	},
}

// Transition returns the state reached from state by event, or an
// IllegalTransitionError naming the pair. Terminal states reject every event.
func Transition(state types.TaskState, event Event) (types.TaskState, error) {
	if !state.IsValid() {
		return "", validation.NewInvalidFieldError("state", validation.ClassUnsupported, "unknown task state "+string(state))
	}
	if !event.IsValid() {
		return "", validation.NewInvalidFieldError("event", validation.ClassUnsupported, "unknown task event "+string(event))
	}
	if state.IsTerminal() {
		return "", validation.NewIllegalTransitionError(state, string(event))
	}
	if event == EventCancel {
		return types.TaskStateCanceled, nil
	}
	if next, ok := transitions[state][event]; ok {
		return next, nil
	}
	return "", validation.NewIllegalTransitionError(state, string(event))
}

// Allowed returns the events accepted in state, sorted by name
func Allowed(state types.TaskState) []Event {
	if !state.IsValid() || state.IsTerminal() {
		return nil
	}

	allowed := []Event{EventCancel}
	for event := range transitions[state] {
		allowed = append(allowed, event)
	}
	sort.Slice(allowed, func(i, j int) bool { return allowed[i] < allowed[j] })
	return allowed
}

// EventFor returns the event that moves a task from one state to another.
// It is used to check an observed status change against the table.
func EventFor(from, to types.TaskState) (Event, error) {
	for _, event := range Allowed(from) {
		if next, _ := Transition(from, event); next == to {
			return event, nil
		}
	}
	if !from.IsValid() {
		return "", validation.NewInvalidFieldError("state", validation.ClassUnsupported, "unknown task state "+string(from))
	}
	return "", validation.NewIllegalStateChangeError(from, to)
}

// Replay folds events over start, returning the final state or the first
// failure. The state reached before the failure is returned alongside it.
func Replay(start types.TaskState, events ...Event) (types.TaskState, error) {
	state := start
	for _, event := range events {
		next, err := Transition(state, event)
		if err != nil {
			return state, err
		}
		state = next
	}
	return state, nil
}
