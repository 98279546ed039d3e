package protocol_test

import (
	"testing"

	protocol "github.com/inference-gateway/a2a-conformance/protocol"
	types "github.com/inference-gateway/a2a-conformance/types"
	validation "github.com/inference-gateway/a2a-conformance/validation"
	assert "github.com/stretchr/testify/assert"
	require "github.com/stretchr/testify/require"
)

func statusEvent(state types.TaskState, final bool) types.TaskStatusUpdateEvent {
	return types.TaskStatusUpdateEvent{TaskID: "task-1", ContextID: "ctx-1", Status: status(state), Final: final}
}

func artifactEvent(id string) types.TaskArtifactUpdateEvent {
	return types.TaskArtifactUpdateEvent{
		TaskID:    "task-1",
		ContextID: "ctx-1",
		Artifact:  types.Artifact{ArtifactID: id, Parts: []types.Part{types.CreateTextPart("chunk")}},
	}
}

func collect(seq func(func(types.StreamEvent, error) bool)) ([]types.StreamEvent, []error) {
	var events []types.StreamEvent
	var errs []error
	for event, err := range seq {
		events = append(events, event)
		errs = append(errs, err)
	}
	return events, errs
}

func TestValidateStream(t *testing.T) {
	task := types.Task{ID: "task-1", ContextID: "ctx-1", Status: status(types.TaskStateSubmitted)}

	events, errs := collect(protocol.ValidateStream(protocol.Events(
		task,
		statusEvent(types.TaskStateWorking, false),
		artifactEvent("report"),
		statusEvent(types.TaskStateCompleted, true),
	)))

	require.Len(t, events, 4)
	for i, err := range errs {
		assert.NoError(t, err, "event %d", i)
	}
	assert.Equal(t, types.KindTask, events[0].EventKind())
	assert.Equal(t, types.KindStatusUpdate, events[3].EventKind())
}

func TestValidateStream_EventsAfterFinal(t *testing.T) {
	_, errs := collect(protocol.ValidateStream(protocol.Events(
		statusEvent(types.TaskStateWorking, false),
		statusEvent(types.TaskStateCompleted, true),
		artifactEvent("late"),
		statusEvent(types.TaskStateWorking, false),
	)))

	require.Len(t, errs, 4)
	assert.NoError(t, errs[0])
	assert.NoError(t, errs[1])
	requireField(t, errs[2], "final", validation.ClassForbidden)
	requireField(t, errs[3], "final", validation.ClassForbidden)
}

func TestValidateStream_MessageClosesStream(t *testing.T) {
	msg, err := protocol.NewTextMessage(types.RoleAgent, "done")
	require.NoError(t, err)

	_, errs := collect(protocol.ValidateStream(protocol.Events(msg, msg)))

	require.Len(t, errs, 2)
	assert.NoError(t, errs[0])
	requireField(t, errs[1], "final", validation.ClassForbidden)
}

func TestValidateStream_InvalidEventsDoNotStopTheStream(t *testing.T) {
	_, errs := collect(protocol.ValidateStream(protocol.Events(
		statusEvent(types.TaskStateWorking, true),
		artifactEvent(""),
		statusEvent(types.TaskStateCompleted, true),
	)))

	require.Len(t, errs, 3)
	requireField(t, errs[0], "final", validation.ClassForbidden)
	requireField(t, errs[1], "artifact.artifactId", validation.ClassEmpty)
	assert.NoError(t, errs[2])
}

func TestValidateStream_IsLazy(t *testing.T) {
	pulled := 0
	source := func(yield func(types.StreamEvent) bool) {
		for _, event := range []types.StreamEvent{
			statusEvent(types.TaskStateWorking, false),
			statusEvent(types.TaskStateWorking, false),
			statusEvent(types.TaskStateCompleted, true),
		} {
			pulled++
			if !yield(event) {
				return
			}
		}
	}

	for _, err := range protocol.ValidateStream(source) {
		require.NoError(t, err)
		break
	}

	assert.Equal(t, 1, pulled)
}
