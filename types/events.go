package types

import (
	"encoding/json"
	"fmt"
)

// StreamEvent is one element of a `message/stream` or `tasks/resubscribe`
// response stream: a Message, a Task, a TaskStatusUpdateEvent or a
// TaskArtifactUpdateEvent.
type StreamEvent interface {
	EventKind() string
	isStreamEvent()
}

func (Message) EventKind() string                 { return KindMessage }
func (Task) EventKind() string                    { return KindTask }
func (TaskStatusUpdateEvent) EventKind() string   { return KindStatusUpdate }
func (TaskArtifactUpdateEvent) EventKind() string { return KindArtifactUpdate }

func (Message) isStreamEvent()                 {}
func (Task) isStreamEvent()                    {}
func (TaskStatusUpdateEvent) isStreamEvent()   {}
func (TaskArtifactUpdateEvent) isStreamEvent() {}

// UnmarshalStreamEvent decodes a stream event by its kind discriminator
func UnmarshalStreamEvent(data []byte) (StreamEvent, error) {
	var probe struct {
		Kind string `json:"kind"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("failed to unmarshal stream event: %w", err)
	}

	switch probe.Kind {
	case KindMessage:
		var m Message
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("failed to unmarshal message event: %w", err)
		}
		return m, nil
	case KindTask:
		var t Task
		if err := json.Unmarshal(data, &t); err != nil {
			return nil, fmt.Errorf("failed to unmarshal task event: %w", err)
		}
		return t, nil
	case KindStatusUpdate:
		var e TaskStatusUpdateEvent
		if err := json.Unmarshal(data, &e); err != nil {
			return nil, fmt.Errorf("failed to unmarshal status-update event: %w", err)
		}
		return e, nil
	case KindArtifactUpdate:
		var e TaskArtifactUpdateEvent
		if err := json.Unmarshal(data, &e); err != nil {
			return nil, fmt.Errorf("failed to unmarshal artifact-update event: %w", err)
		}
		return e, nil
	case "":
		return nil, fmt.Errorf("stream event is missing the kind discriminator")
	default:
		return nil, fmt.Errorf("unsupported stream event kind %q", probe.Kind)
	}
}

// IsFinal reports whether the event closes its stream. A status update closes
// the stream when its final flag is set; a Message response is always the
// only element of its stream.
func IsFinal(event StreamEvent) bool {
	switch e := event.(type) {
	case TaskStatusUpdateEvent:
		return e.Final
	case Message:
		return true
	default:
		return false
	}
}
