package types

// ProtocolVersion is the A2A protocol revision these types model.
const ProtocolVersion = "0.2.5"

// JSONRPCVersion is the only JSON-RPC version accepted on the wire.
const JSONRPCVersion = "2.0"

// Struct is an open JSON object used for metadata and structured data.
type Struct = map[string]any

// MessagePartKind represents the different types of message parts supported by A2A protocol.
type MessagePartKind string

// MessagePartKind enum values for the three official message part types
const (
	// MessagePartKindText represents a text segment within message parts
	MessagePartKindText MessagePartKind = "text"

	// MessagePartKindFile represents a file segment within message parts
	MessagePartKindFile MessagePartKind = "file"

	// MessagePartKindData represents a structured data segment within message parts
	MessagePartKindData MessagePartKind = "data"
)

// String returns the string representation of the MessagePartKind
func (k MessagePartKind) String() string {
	return string(k)
}

// IsValid checks if the MessagePartKind is one of the supported values
func (k MessagePartKind) IsValid() bool {
	switch k {
	case MessagePartKindText, MessagePartKindFile, MessagePartKindData:
		return true
	default:
		return false
	}
}

// Role identifies the sender of a message.
type Role string

// Role enum values
const (
	RoleUser  Role = "user"
	RoleAgent Role = "agent"
)

// IsValid reports whether r is a protocol role.
func (r Role) IsValid() bool {
	return r == RoleUser || r == RoleAgent
}

// TaskState is the lifecycle state of a task.
type TaskState string

// TaskState enum values
const (
	TaskStateSubmitted     TaskState = "submitted"
	TaskStateWorking       TaskState = "working"
	TaskStateInputRequired TaskState = "input-required"
	TaskStateCompleted     TaskState = "completed"
	TaskStateCanceled      TaskState = "canceled"
	TaskStateFailed        TaskState = "failed"
	TaskStateRejected      TaskState = "rejected"
	TaskStateAuthRequired  TaskState = "auth-required"
	TaskStateUnknown       TaskState = "unknown"
)

// TaskStates lists every state in declaration order.
var TaskStates = []TaskState{
	TaskStateSubmitted,
	TaskStateWorking,
	TaskStateInputRequired,
	TaskStateCompleted,
	TaskStateCanceled,
	TaskStateFailed,
	TaskStateRejected,
	TaskStateAuthRequired,
	TaskStateUnknown,
}

// String returns the wire form of the state
func (s TaskState) String() string {
	return string(s)
}

// IsValid checks if the state is one of the defined variants
func (s TaskState) IsValid() bool {
	switch s {
	case TaskStateSubmitted, TaskStateWorking, TaskStateInputRequired,
		TaskStateCompleted, TaskStateCanceled, TaskStateFailed,
		TaskStateRejected, TaskStateAuthRequired, TaskStateUnknown:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no transition leaves the state.
func (s TaskState) IsTerminal() bool {
	switch s {
	case TaskStateCompleted, TaskStateCanceled, TaskStateFailed, TaskStateRejected:
		return true
	default:
		return false
	}
}

// IsInterrupted reports whether the task is paused waiting on the client.
func (s TaskState) IsInterrupted() bool {
	return s == TaskStateInputRequired || s == TaskStateAuthRequired
}

// Kind discriminators carried by top-level protocol objects
const (
	KindMessage        = "message"
	KindTask           = "task"
	KindStatusUpdate   = "status-update"
	KindArtifactUpdate = "artifact-update"
)

// TransportProtocol names a transport an agent interface is served over.
type TransportProtocol string

// TransportProtocol enum values
const (
	TransportJSONRPC  TransportProtocol = "JSONRPC"
	TransportGRPC     TransportProtocol = "GRPC"
	TransportHTTPJSON TransportProtocol = "HTTP+JSON"
)

// IsValid reports whether t is a known transport.
func (t TransportProtocol) IsValid() bool {
	switch t {
	case TransportJSONRPC, TransportGRPC, TransportHTTPJSON:
		return true
	default:
		return false
	}
}

// CloudEvent type constants for protocol stream events
const (
	EventMessage            = "a2a.message"
	EventTask               = "a2a.task"
	EventTaskStatusUpdate   = "a2a.task.status.update"
	EventTaskArtifactUpdate = "a2a.task.artifact.update"
)

// EventSource is the CloudEvents source attribute for converted stream events.
const EventSource = "a2a/conformance"
