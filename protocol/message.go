package protocol

import (
	uuid "github.com/google/uuid"
	types "github.com/inference-gateway/a2a-conformance/types"
)

// MessageOption customizes a message built by NewMessage
type MessageOption func(*types.Message)

// WithMessageID sets the message id instead of generating one
func WithMessageID(id string) MessageOption {
	return func(m *types.Message) { m.MessageID = id }
}

// WithTaskID associates the message with a task
func WithTaskID(taskID string) MessageOption {
	return func(m *types.Message) { m.TaskID = &taskID }
}

// WithContextID associates the message with a context
func WithContextID(contextID string) MessageOption {
	return func(m *types.Message) { m.ContextID = &contextID }
}

// WithReferenceTaskIDs lists tasks the message refers to
func WithReferenceTaskIDs(ids ...string) MessageOption {
	return func(m *types.Message) { m.ReferenceTaskIDs = append(m.ReferenceTaskIDs, ids...) }
}

// WithExtensions lists extension URIs that apply to the message
func WithExtensions(uris ...string) MessageOption {
	return func(m *types.Message) { m.Extensions = append(m.Extensions, uris...) }
}

// WithMessageMetadata attaches metadata to the message
func WithMessageMetadata(metadata types.Struct) MessageOption {
	return func(m *types.Message) { m.Metadata = metadata }
}

// NewMessage builds a message with the default rules
func NewMessage(role types.Role, parts []types.Part, opts ...MessageOption) (types.Message, error) {
	return defaultValidator.NewMessage(role, parts, opts...)
}

// NewMessage builds a message, generating a message id unless one is given,
// and returns it only if it is valid
func (v *Validator) NewMessage(role types.Role, parts []types.Part, opts ...MessageOption) (types.Message, error) {
	msg := types.Message{
		MessageID: uuid.New().String(),
		Role:      role,
		Parts:     append(types.Parts(nil), parts...),
	}
	for _, opt := range opts {
		opt(&msg)
	}

	if err := v.ValidateMessage(msg); err != nil {
		return types.Message{}, err
	}
	return msg, nil
}

// NewTextMessage builds a single text part message with the default rules
func NewTextMessage(role types.Role, text string, opts ...MessageOption) (types.Message, error) {
	return NewMessage(role, []types.Part{types.CreateTextPart(text)}, opts...)
}
