package types

import (
	"encoding/json"
	"fmt"
)

// Defines optional capabilities supported by an agent.
type AgentCapabilities struct {
	Extensions             []AgentExtension `json:"extensions,omitempty"`
	PushNotifications      *bool            `json:"pushNotifications,omitempty"`
	StateTransitionHistory *bool            `json:"stateTransitionHistory,omitempty"`
	Streaming              *bool            `json:"streaming,omitempty"`
}

// AgentCard is a self-describing manifest for an agent. It provides essential
// metadata including the agent's identity, capabilities, skills, supported
// communication methods, and security requirements.
type AgentCard struct {
	AdditionalInterfaces              []AgentInterface      `json:"additionalInterfaces,omitempty"`
	Capabilities                      AgentCapabilities     `json:"capabilities"`
	DefaultInputModes                 []string              `json:"defaultInputModes"`
	DefaultOutputModes                []string              `json:"defaultOutputModes"`
	Description                       string                `json:"description"`
	DocumentationURL                  *string               `json:"documentationUrl,omitempty"`
	IconURL                           *string               `json:"iconUrl,omitempty"`
	Name                              string                `json:"name"`
	PreferredTransport                *TransportProtocol    `json:"preferredTransport,omitempty"`
	ProtocolVersion                   string                `json:"protocolVersion"`
	Provider                          *AgentProvider        `json:"provider,omitempty"`
	Security                          []map[string][]string `json:"security,omitempty"`
	SecuritySchemes                   SecuritySchemes       `json:"securitySchemes,omitempty"`
	Skills                            []AgentSkill          `json:"skills"`
	SupportsAuthenticatedExtendedCard *bool                 `json:"supportsAuthenticatedExtendedCard,omitempty"`
	URL                               string                `json:"url"`
	Version                           string                `json:"version"`
}

// A declaration of a protocol extension supported by an Agent.
type AgentExtension struct {
	Description *string `json:"description,omitempty"`
	Params      Struct  `json:"params,omitempty"`
	Required    *bool   `json:"required,omitempty"`
	URI         string  `json:"uri"`
}

// IsRequired reports whether clients must understand the extension.
func (e AgentExtension) IsRequired() bool {
	return e.Required != nil && *e.Required
}

// Declares a combination of a target URL and a transport protocol for interacting with the agent.
type AgentInterface struct {
	Transport TransportProtocol `json:"transport"`
	URL       string            `json:"url"`
}

// Represents the service provider of an agent.
type AgentProvider struct {
	Organization string `json:"organization"`
	URL          string `json:"url"`
}

// Represents a distinct capability or function that an agent can perform.
type AgentSkill struct {
	Description string   `json:"description"`
	Examples    []string `json:"examples,omitempty"`
	ID          string   `json:"id"`
	InputModes  []string `json:"inputModes,omitempty"`
	Name        string   `json:"name"`
	OutputModes []string `json:"outputModes,omitempty"`
	Tags        []string `json:"tags"`
}

// Artifacts represent task outputs.
type Artifact struct {
	ArtifactID  string   `json:"artifactId"`
	Description *string  `json:"description,omitempty"`
	Extensions  []string `json:"extensions,omitempty"`
	Metadata    Struct   `json:"metadata,omitempty"`
	Name        *string  `json:"name,omitempty"`
	Parts       Parts    `json:"parts"`
}

// Defines authentication details, used for push notifications.
type PushNotificationAuthenticationInfo struct {
	Credentials *string  `json:"credentials,omitempty"`
	Schemes     []string `json:"schemes"`
}

// Message is one unit of communication between client and server. It is
// associated with a context and optionally a task.
type Message struct {
	ContextID        *string  `json:"contextId,omitempty"`
	Extensions       []string `json:"extensions,omitempty"`
	MessageID        string   `json:"messageId"`
	Metadata         Struct   `json:"metadata,omitempty"`
	Parts            Parts    `json:"parts"`
	ReferenceTaskIDs []string `json:"referenceTaskIds,omitempty"`
	Role             Role     `json:"role"`
	TaskID           *string  `json:"taskId,omitempty"`
}

// MarshalJSON writes the message with its kind discriminator
func (m Message) MarshalJSON() ([]byte, error) {
	type message Message
	return json.Marshal(struct {
		Kind string `json:"kind"`
		message
	}{Kind: KindMessage, message: message(m)})
}

// UnmarshalJSON decodes the message. A kind other than "message" is rejected.
func (m *Message) UnmarshalJSON(data []byte) error {
	type message Message
	var decoded message
	if err := decodeKinded(data, KindMessage, &decoded); err != nil {
		return err
	}
	*m = Message(decoded)
	return nil
}

// Configuration for setting up push notifications for task updates.
type PushNotificationConfig struct {
	Authentication *PushNotificationAuthenticationInfo `json:"authentication,omitempty"`
	ID             *string                             `json:"id,omitempty"`
	Token          *string                             `json:"token,omitempty"`
	URL            string                              `json:"url"`
}

// Task is the core unit of action for A2A. It has a current status
// and when results are created for the task they are stored in the
// artifact. If there are multiple turns for a task, these are stored in
// history.
type Task struct {
	Artifacts []Artifact `json:"artifacts,omitempty"`
	ContextID string     `json:"contextId"`
	History   []Message  `json:"history,omitempty"`
	ID        string     `json:"id"`
	Metadata  Struct     `json:"metadata,omitempty"`
	Status    TaskStatus `json:"status"`
}

// MarshalJSON writes the task with its kind discriminator
func (t Task) MarshalJSON() ([]byte, error) {
	type task Task
	return json.Marshal(struct {
		Kind string `json:"kind"`
		task
	}{Kind: KindTask, task: task(t)})
}

// UnmarshalJSON decodes the task. A kind other than "task" is rejected.
func (t *Task) UnmarshalJSON(data []byte) error {
	type task Task
	var decoded task
	if err := decodeKinded(data, KindTask, &decoded); err != nil {
		return err
	}
	*t = Task(decoded)
	return nil
}

// TaskArtifactUpdateEvent represents a task delta where an artifact has
// been generated.
type TaskArtifactUpdateEvent struct {
	Append    *bool    `json:"append,omitempty"`
	Artifact  Artifact `json:"artifact"`
	ContextID string   `json:"contextId"`
	LastChunk *bool    `json:"lastChunk,omitempty"`
	Metadata  Struct   `json:"metadata,omitempty"`
	TaskID    string   `json:"taskId"`
}

// IsAppend reports whether the artifact parts extend an existing artifact.
func (e TaskArtifactUpdateEvent) IsAppend() bool {
	return e.Append != nil && *e.Append
}

// IsLastChunk reports whether this is the final chunk of the artifact.
func (e TaskArtifactUpdateEvent) IsLastChunk() bool {
	return e.LastChunk != nil && *e.LastChunk
}

// MarshalJSON writes the event with its kind discriminator
func (e TaskArtifactUpdateEvent) MarshalJSON() ([]byte, error) {
	type event TaskArtifactUpdateEvent
	return json.Marshal(struct {
		Kind string `json:"kind"`
		event
	}{Kind: KindArtifactUpdate, event: event(e)})
}

// UnmarshalJSON decodes the event. A kind other than "artifact-update" is rejected.
func (e *TaskArtifactUpdateEvent) UnmarshalJSON(data []byte) error {
	type event TaskArtifactUpdateEvent
	var decoded event
	if err := decodeKinded(data, KindArtifactUpdate, &decoded); err != nil {
		return err
	}
	*e = TaskArtifactUpdateEvent(decoded)
	return nil
}

// A container associating a push notification configuration with a specific
// task.
type TaskPushNotificationConfig struct {
	PushNotificationConfig PushNotificationConfig `json:"pushNotificationConfig"`
	TaskID                 string                 `json:"taskId"`
}

// A container for the status of a task
type TaskStatus struct {
	Message   *Message  `json:"message,omitempty"`
	State     TaskState `json:"state"`
	Timestamp *string   `json:"timestamp,omitempty"`
}

// An event sent by the agent to notify the client of a change in a task's
// status.
type TaskStatusUpdateEvent struct {
	ContextID string     `json:"contextId"`
	Final     bool       `json:"final"`
	Metadata  Struct     `json:"metadata,omitempty"`
	Status    TaskStatus `json:"status"`
	TaskID    string     `json:"taskId"`
}

// MarshalJSON writes the event with its kind discriminator
func (e TaskStatusUpdateEvent) MarshalJSON() ([]byte, error) {
	type event TaskStatusUpdateEvent
	return json.Marshal(struct {
		Kind string `json:"kind"`
		event
	}{Kind: KindStatusUpdate, event: event(e)})
}

// UnmarshalJSON decodes the event. A kind other than "status-update" is rejected.
func (e *TaskStatusUpdateEvent) UnmarshalJSON(data []byte) error {
	type event TaskStatusUpdateEvent
	var decoded event
	if err := decodeKinded(data, KindStatusUpdate, &decoded); err != nil {
		return err
	}
	*e = TaskStatusUpdateEvent(decoded)
	return nil
}

// Configuration of a send message request.
type MessageSendConfiguration struct {
	AcceptedOutputModes    []string                `json:"acceptedOutputModes,omitempty"`
	Blocking               *bool                   `json:"blocking,omitempty"`
	HistoryLength          *int                    `json:"historyLength,omitempty"`
	PushNotificationConfig *PushNotificationConfig `json:"pushNotificationConfig,omitempty"`
}

// Parameters of the `message/send` and `message/stream` methods.
type MessageSendParams struct {
	Configuration *MessageSendConfiguration `json:"configuration,omitempty"`
	Message       Message                   `json:"message"`
	Metadata      Struct                    `json:"metadata,omitempty"`
}

// Parameters of the `tasks/get` method.
type TaskQueryParams struct {
	HistoryLength *int   `json:"historyLength,omitempty"`
	ID            string `json:"id"`
	Metadata      Struct `json:"metadata,omitempty"`
}

// Parameters carrying only a task id, used by `tasks/cancel` and `tasks/resubscribe`.
type TaskIDParams struct {
	ID       string `json:"id"`
	Metadata Struct `json:"metadata,omitempty"`
}

// Parameters of the `tasks/pushNotificationConfig/get` method.
type GetTaskPushNotificationConfigParams struct {
	ID                       string  `json:"id"`
	Metadata                 Struct  `json:"metadata,omitempty"`
	PushNotificationConfigID *string `json:"pushNotificationConfigId,omitempty"`
}

// Parameters of the `tasks/pushNotificationConfig/list` method.
type ListTaskPushNotificationConfigParams struct {
	ID       string `json:"id"`
	Metadata Struct `json:"metadata,omitempty"`
}

// Parameters of the `tasks/pushNotificationConfig/delete` method.
type DeleteTaskPushNotificationConfigParams struct {
	ID                       string `json:"id"`
	Metadata                 Struct `json:"metadata,omitempty"`
	PushNotificationConfigID string `json:"pushNotificationConfigId"`
}

// Parameters of the `agent/getAuthenticatedExtendedCard` method.
type GetAuthenticatedExtendedCardParams struct {
	Metadata Struct `json:"metadata,omitempty"`
}

// KindMismatchError reports a JSON object whose kind discriminator names a
// different type than the one being decoded
type KindMismatchError struct {
	Kind     string
	Expected string
}

func (e *KindMismatchError) Error() string {
	return fmt.Sprintf("kind %q cannot be decoded as %q", e.Kind, e.Expected)
}

// decodeKinded decodes data into out. A missing kind is accepted.
func decodeKinded(data []byte, expected string, out any) error {
	var probe struct {
		Kind *string `json:"kind"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}
	if probe.Kind != nil && *probe.Kind != expected {
		return &KindMismatchError{Kind: *probe.Kind, Expected: expected}
	}
	return json.Unmarshal(data, out)
}
