package types

import (
	"fmt"
	"time"

	cloudevents "github.com/cloudevents/sdk-go/v2"
	uuid "github.com/google/uuid"
)

// CloudEvents extension attributes set on converted stream events
const (
	EventExtensionTaskID    = "taskid"
	EventExtensionContextID = "contextid"
	EventExtensionFinal     = "final"
)

// NewStreamCloudEvent wraps a stream event into a CloudEvent whose data is the
// event's wire form
func NewStreamCloudEvent(event StreamEvent) (cloudevents.Event, error) {
	ce := cloudevents.NewEvent()
	ce.SetSource(EventSource)
	ce.SetTime(time.Now())

	var taskID, contextID string
	switch e := event.(type) {
	case Message:
		ce.SetID(e.MessageID)
		ce.SetType(EventMessage)
		if e.TaskID != nil {
			taskID = *e.TaskID
		}
		if e.ContextID != nil {
			contextID = *e.ContextID
		}
	case Task:
		ce.SetID(uuid.NewString())
		ce.SetType(EventTask)
		taskID, contextID = e.ID, e.ContextID
	case TaskStatusUpdateEvent:
		ce.SetID(uuid.NewString())
		ce.SetType(EventTaskStatusUpdate)
		ce.SetExtension(EventExtensionFinal, e.Final)
		taskID, contextID = e.TaskID, e.ContextID
	case TaskArtifactUpdateEvent:
		ce.SetID(uuid.NewString())
		ce.SetType(EventTaskArtifactUpdate)
		taskID, contextID = e.TaskID, e.ContextID
	default:
		return ce, fmt.Errorf("unsupported stream event %T", event)
	}

	if taskID != "" {
		ce.SetExtension(EventExtensionTaskID, taskID)
	}
	if contextID != "" {
		ce.SetExtension(EventExtensionContextID, contextID)
	}

	if err := ce.SetData(cloudevents.ApplicationJSON, event); err != nil {
		return ce, fmt.Errorf("failed to set cloudevent data: %w", err)
	}

	return ce, nil
}

// StreamEventFromCloudEvent reverses NewStreamCloudEvent
func StreamEventFromCloudEvent(ce cloudevents.Event) (StreamEvent, error) {
	switch ce.Type() {
	case EventMessage, EventTask, EventTaskStatusUpdate, EventTaskArtifactUpdate:
		return UnmarshalStreamEvent(ce.Data())
	default:
		return nil, fmt.Errorf("unsupported cloudevent type %q", ce.Type())
	}
}
