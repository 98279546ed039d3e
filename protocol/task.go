package protocol

import (
	"fmt"
	"time"

	uuid "github.com/google/uuid"
	types "github.com/inference-gateway/a2a-conformance/types"
	validation "github.com/inference-gateway/a2a-conformance/validation"
)

// TaskOption customizes a task built by NewTask
type TaskOption func(*types.Task)

// WithID sets the task id instead of generating one
func WithID(id string) TaskOption {
	return func(t *types.Task) { t.ID = id }
}

// WithInitialMessage records the message that created the task in its history
func WithInitialMessage(msg types.Message) TaskOption {
	return func(t *types.Task) { t.History = append(t.History, msg) }
}

// WithTaskMetadata attaches metadata to the task
func WithTaskMetadata(metadata types.Struct) TaskOption {
	return func(t *types.Task) { t.Metadata = metadata }
}

// WithStatusTimestamp stamps the initial status
func WithStatusTimestamp(at time.Time) TaskOption {
	return func(t *types.Task) {
		ts := at.UTC().Format(time.RFC3339Nano)
		t.Status.Timestamp = &ts
	}
}

// NewTask builds a submitted task with the default rules
func NewTask(contextID string, opts ...TaskOption) (types.Task, error) {
	return defaultValidator.NewTask(contextID, opts...)
}

// NewTask builds a task in the submitted state, generating a task id unless
// one is given, and returns it only if it is valid
func (v *Validator) NewTask(contextID string, opts ...TaskOption) (types.Task, error) {
	task := types.Task{
		ID:        uuid.New().String(),
		ContextID: contextID,
		Status:    types.TaskStatus{State: types.TaskStateSubmitted},
	}
	for _, opt := range opts {
		opt(&task)
	}

	if err := v.ValidateTask(task); err != nil {
		return types.Task{}, err
	}
	return task, nil
}

// AppendHistory returns a copy of task with msg appended to its history. The
// input task is left untouched.
func AppendHistory(task types.Task, msg types.Message) (types.Task, error) {
	return defaultValidator.AppendHistory(task, msg)
}

// AppendHistory returns a copy of task with msg appended to its history. A
// message that names a task or context must name this one.
func (v *Validator) AppendHistory(task types.Task, msg types.Message) (types.Task, error) {
	if err := v.ValidateMessage(msg); err != nil {
		return types.Task{}, err
	}
	if err := belongsTo(task, msg); err != nil {
		return types.Task{}, err
	}

	next := cloneTask(task)
	next.History = append(next.History, msg)
	return next, nil
}

// belongsTo rejects a message linked to another task or context
func belongsTo(task types.Task, msg types.Message) error {
	if msg.TaskID != nil && *msg.TaskID != "" && *msg.TaskID != task.ID {
		return validation.NewInvalidFieldError("taskId", validation.ClassForbidden,
			fmt.Sprintf("message belongs to task %q, not %q", *msg.TaskID, task.ID))
	}
	if msg.ContextID != nil && *msg.ContextID != "" && *msg.ContextID != task.ContextID {
		return validation.NewInvalidFieldError("contextId", validation.ClassForbidden,
			fmt.Sprintf("message belongs to context %q, not %q", *msg.ContextID, task.ContextID))
	}
	return nil
}

// cloneTask copies the slices of task so appends never alias the input
func cloneTask(task types.Task) types.Task {
	next := task
	if task.History != nil {
		next.History = append(make([]types.Message, 0, len(task.History)+1), task.History...)
	}
	if task.Artifacts != nil {
		next.Artifacts = make([]types.Artifact, len(task.Artifacts))
		for i, artifact := range task.Artifacts {
			artifact.Parts = append(types.Parts(nil), artifact.Parts...)
			next.Artifacts[i] = artifact
		}
	}
	return next
}
