package protocol

import (
	"fmt"

	lifecycle "github.com/inference-gateway/a2a-conformance/lifecycle"
	types "github.com/inference-gateway/a2a-conformance/types"
	validation "github.com/inference-gateway/a2a-conformance/validation"
)

// NewStatusUpdateEvent builds a status update with the default rules
func NewStatusUpdateEvent(taskID, contextID string, status types.TaskStatus, final bool) (types.TaskStatusUpdateEvent, error) {
	return defaultValidator.NewStatusUpdateEvent(taskID, contextID, status, final)
}

// NewStatusUpdateEvent builds a status update. A final event must carry a
// terminal or interrupted state.
func (v *Validator) NewStatusUpdateEvent(taskID, contextID string, status types.TaskStatus, final bool) (types.TaskStatusUpdateEvent, error) {
	event := types.TaskStatusUpdateEvent{
		ContextID: contextID,
		Final:     final,
		Status:    status,
		TaskID:    taskID,
	}
	if err := v.ValidateStatusUpdateEvent(event); err != nil {
		return types.TaskStatusUpdateEvent{}, err
	}
	return event, nil
}

// NewArtifactUpdateEvent builds an artifact update with the default rules
func NewArtifactUpdateEvent(taskID, contextID string, artifact types.Artifact, appendChunk, lastChunk bool) (types.TaskArtifactUpdateEvent, error) {
	return defaultValidator.NewArtifactUpdateEvent(taskID, contextID, artifact, appendChunk, lastChunk)
}

// NewArtifactUpdateEvent builds an artifact update. An appended chunk cannot
// also be the last chunk.
func (v *Validator) NewArtifactUpdateEvent(taskID, contextID string, artifact types.Artifact, appendChunk, lastChunk bool) (types.TaskArtifactUpdateEvent, error) {
	event := types.TaskArtifactUpdateEvent{
		Artifact:  artifact,
		ContextID: contextID,
		TaskID:    taskID,
	}
	if appendChunk {
		event.Append = &appendChunk
	}
	if lastChunk {
		event.LastChunk = &lastChunk
	}
	if err := v.ValidateArtifactUpdateEvent(event); err != nil {
		return types.TaskArtifactUpdateEvent{}, err
	}
	return event, nil
}

// ValidateStatusUpdateEvent checks the ids and status of a status update
func (v *Validator) ValidateStatusUpdateEvent(event types.TaskStatusUpdateEvent) error {
	if err := v.rules.ValidateIdentifier("taskId", event.TaskID); err != nil {
		return err
	}
	if err := v.rules.ValidateIdentifier("contextId", event.ContextID); err != nil {
		return err
	}
	if err := v.ValidateStatus(event.Status); err != nil {
		return validation.Nest("status", err)
	}

	state := event.Status.State
	if event.Final && !state.IsTerminal() && !state.IsInterrupted() {
		return validation.NewInvalidFieldError("final", validation.ClassForbidden,
			fmt.Sprintf("state %q cannot end a stream", state))
	}
	return nil
}

// ValidateArtifactUpdateEvent checks the ids, artifact and chunk flags of an
// artifact update
func (v *Validator) ValidateArtifactUpdateEvent(event types.TaskArtifactUpdateEvent) error {
	if err := v.rules.ValidateIdentifier("taskId", event.TaskID); err != nil {
		return err
	}
	if err := v.rules.ValidateIdentifier("contextId", event.ContextID); err != nil {
		return err
	}
	if err := v.ValidateArtifact(event.Artifact); err != nil {
		return validation.Nest("artifact", err)
	}
	if event.IsAppend() && event.IsLastChunk() {
		return validation.NewInvalidFieldError("lastChunk", validation.ClassForbidden,
			"an appended chunk cannot be the last chunk")
	}
	return nil
}

// ValidateStreamEvent checks a single stream event with the default rules
func ValidateStreamEvent(event types.StreamEvent) error {
	return defaultValidator.ValidateStreamEvent(event)
}

// ValidateStreamEvent checks a single stream event of any kind
func (v *Validator) ValidateStreamEvent(event types.StreamEvent) error {
	switch e := event.(type) {
	case types.Message:
		return v.ValidateMessage(e)
	case types.Task:
		return v.ValidateTask(e)
	case types.TaskStatusUpdateEvent:
		return v.ValidateStatusUpdateEvent(e)
	case types.TaskArtifactUpdateEvent:
		return v.ValidateArtifactUpdateEvent(e)
	case nil:
		return validation.NewInvalidFieldError("kind", validation.ClassEmpty, "event is required")
	default:
		return validation.NewInvalidFieldError("kind", validation.ClassUnsupported, fmt.Sprintf("unsupported event %T", event))
	}
}

// ApplyStatusUpdate applies a status update with the default rules
func ApplyStatusUpdate(task types.Task, event types.TaskStatusUpdateEvent) (types.Task, error) {
	return defaultValidator.ApplyStatusUpdate(task, event)
}

// ApplyStatusUpdate returns a copy of task carrying the status of event. A
// change of state must be a legal transition; an update repeating the
// current state is a progress note. A task in a terminal state accepts no
// update at all.
func (v *Validator) ApplyStatusUpdate(task types.Task, event types.TaskStatusUpdateEvent) (types.Task, error) {
	if err := v.ValidateStatusUpdateEvent(event); err != nil {
		return types.Task{}, err
	}
	if err := matchOpenTask(task, event.TaskID, event.ContextID); err != nil {
		return types.Task{}, err
	}

	from, to := task.Status.State, event.Status.State
	if from != to {
		if _, err := lifecycle.EventFor(from, to); err != nil {
			return types.Task{}, err
		}
	}

	next := cloneTask(task)
	next.Status = event.Status
	return next, nil
}

// ApplyArtifactUpdate applies an artifact update with the default rules
func ApplyArtifactUpdate(task types.Task, event types.TaskArtifactUpdateEvent) (types.Task, error) {
	return defaultValidator.ApplyArtifactUpdate(task, event)
}

// ApplyArtifactUpdate returns a copy of task with the artifact of event
// merged in. An append adds the parts to the artifact with the same id, or
// creates it; otherwise the artifact is replaced or added.
func (v *Validator) ApplyArtifactUpdate(task types.Task, event types.TaskArtifactUpdateEvent) (types.Task, error) {
	if err := v.ValidateArtifactUpdateEvent(event); err != nil {
		return types.Task{}, err
	}
	if err := matchOpenTask(task, event.TaskID, event.ContextID); err != nil {
		return types.Task{}, err
	}

	index, err := v.artifactIndex(task.Artifacts)
	if err != nil {
		return types.Task{}, err
	}

	next := cloneTask(task)
	incoming := event.Artifact
	i, exists := index[incoming.ArtifactID]
	switch {
	case !exists:
		incoming.Parts = append(types.Parts(nil), incoming.Parts...)
		next.Artifacts = append(next.Artifacts, incoming)
	case event.IsAppend():
		existing := next.Artifacts[i]
		existing.Parts = append(existing.Parts, incoming.Parts...)
		if incoming.Metadata != nil {
			existing.Metadata = incoming.Metadata
		}
		next.Artifacts[i] = existing
	default:
		incoming.Parts = append(types.Parts(nil), incoming.Parts...)
		next.Artifacts[i] = incoming
	}
	return next, nil
}

// matchOpenTask checks that an event targets task and that task is not closed
func matchOpenTask(task types.Task, taskID, contextID string) error {
	if err := matchTask(task, taskID, contextID); err != nil {
		return err
	}
	if task.Status.State.IsTerminal() {
		return validation.NewInvalidFieldError("taskId", validation.ClassForbidden,
			fmt.Sprintf("task is already %s", task.Status.State))
	}
	return nil
}

func matchTask(task types.Task, taskID, contextID string) error {
	if task.ID != taskID {
		return validation.NewInvalidFieldError("taskId", validation.ClassForbidden,
			fmt.Sprintf("event targets task %q, not %q", taskID, task.ID))
	}
	if task.ContextID != contextID {
		return validation.NewInvalidFieldError("contextId", validation.ClassForbidden,
			fmt.Sprintf("event targets context %q, not %q", contextID, task.ContextID))
	}
	return nil
}
