package types

import "encoding/json"

// Standard JSON-RPC and A2A specific error codes
const (
	ErrorCodeParseError                   = -32700
	ErrorCodeInvalidRequest               = -32600
	ErrorCodeMethodNotFound               = -32601
	ErrorCodeInvalidParams                = -32602
	ErrorCodeInternalError                = -32603
	ErrorCodeTaskNotFound                 = -32001
	ErrorCodeTaskNotCancelable            = -32002
	ErrorCodePushNotificationNotSupported = -32003
	ErrorCodeUnsupportedOperation         = -32004
	ErrorCodeContentTypeNotSupported      = -32005
	ErrorCodeInvalidAgentResponse         = -32006
)

// ErrorMessages holds the default message for every known error code
var ErrorMessages = map[int]string{
	ErrorCodeParseError:                   "Invalid JSON payload",
	ErrorCodeInvalidRequest:               "Request payload validation error",
	ErrorCodeMethodNotFound:               "Method not found",
	ErrorCodeInvalidParams:                "Invalid parameters",
	ErrorCodeInternalError:                "Internal error",
	ErrorCodeTaskNotFound:                 "Task not found",
	ErrorCodeTaskNotCancelable:            "Task cannot be canceled",
	ErrorCodePushNotificationNotSupported: "Push Notification is not supported",
	ErrorCodeUnsupportedOperation:         "This operation is not supported",
	ErrorCodeContentTypeNotSupported:      "Incompatible content types",
	ErrorCodeInvalidAgentResponse:         "Invalid agent response",
}

// JSONRPCRequest is a JSON-RPC 2.0 request envelope. Params stays raw until the
// method is known.
type JSONRPCRequest struct {
	ID      any             `json:"id,omitempty"`
	JSONRPC string          `json:"jsonrpc"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// JSONRPCError is the error member of a JSON-RPC error response
type JSONRPCError struct {
	Code    int    `json:"code"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message"`
}

// JSONRPCSuccessResponse carries the result of a successful call
type JSONRPCSuccessResponse struct {
	ID      any    `json:"id"`
	JSONRPC string `json:"jsonrpc"`
	Result  any    `json:"result"`
}

// JSONRPCErrorResponse carries the error of a failed call
type JSONRPCErrorResponse struct {
	Error   JSONRPCError `json:"error"`
	ID      any          `json:"id"`
	JSONRPC string       `json:"jsonrpc"`
}
