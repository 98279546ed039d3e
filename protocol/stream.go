package protocol

import (
	"fmt"
	"iter"

	types "github.com/inference-gateway/a2a-conformance/types"
	validation "github.com/inference-gateway/a2a-conformance/validation"
)

// ValidateStream validates a stream with the default rules
func ValidateStream(seq iter.Seq[types.StreamEvent]) iter.Seq2[types.StreamEvent, error] {
	return defaultValidator.ValidateStream(seq)
}

// ValidateStream pairs every event of seq with its validation error, or nil.
// Events are validated one at a time as they are pulled, without buffering or
// reordering. Any event after a final event is reported as forbidden.
func (v *Validator) ValidateStream(seq iter.Seq[types.StreamEvent]) iter.Seq2[types.StreamEvent, error] {
	return func(yield func(types.StreamEvent, error) bool) {
		closedAt := -1
		i := 0
		for event := range seq {
			var err error
			if closedAt >= 0 {
				err = validation.NewInvalidFieldError("final", validation.ClassForbidden,
					fmt.Sprintf("event %d arrived after the final event %d", i, closedAt))
			} else {
				err = v.ValidateStreamEvent(event)
				if err == nil && types.IsFinal(event) {
					closedAt = i
				}
			}
			if !yield(event, err) {
				return
			}
			i++
		}
	}
}

// Events adapts a slice of events to a sequence
func Events(events ...types.StreamEvent) iter.Seq[types.StreamEvent] {
	return func(yield func(types.StreamEvent) bool) {
		for _, event := range events {
			if !yield(event) {
				return
			}
		}
	}
}
