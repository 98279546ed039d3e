package protocol

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"reflect"

	uuid "github.com/google/uuid"
	types "github.com/inference-gateway/a2a-conformance/types"
	validation "github.com/inference-gateway/a2a-conformance/validation"
)

// InvalidRequestError reports a JSON-RPC envelope that is not a valid request
// object
type InvalidRequestError struct {
	Field  string
	Reason string
}

func (e *InvalidRequestError) Error() string {
	return fmt.Sprintf("invalid request: %s %s", e.Field, e.Reason)
}

// NewInvalidRequestError creates a new InvalidRequestError
func NewInvalidRequestError(field, reason string) *InvalidRequestError {
	return &InvalidRequestError{Field: field, Reason: reason}
}

// ParsedRequest is a decoded request whose method is canonical and whose
// params are typed and validated
type ParsedRequest struct {
	ID     any
	Method Method
	Params any
	// Legacy is set when the request used a legacy method name
	Legacy bool
}

// Envelope re-encodes the request with its canonical method name
func (r ParsedRequest) Envelope() (types.JSONRPCRequest, error) {
	return envelope(r.Method, r.ID, r.Params)
}

// ParseRequest decodes a JSON-RPC request with the default rules
func ParseRequest(raw []byte) (*ParsedRequest, error) {
	return defaultValidator.ParseRequest(raw)
}

// ParseRequest decodes a JSON-RPC request, normalizes its method and decodes
// and validates the params of that method. The method is normalized before
// anything else is checked.
func (v *Validator) ParseRequest(raw []byte) (*ParsedRequest, error) {
	var req types.JSONRPCRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return nil, fmt.Errorf("failed to decode request: %w", err)
	}

	method, err := NormalizeMethod(req.Method)
	if err != nil {
		return nil, err
	}
	if req.JSONRPC != types.JSONRPCVersion {
		return nil, NewInvalidRequestError("jsonrpc", fmt.Sprintf("must be %q", types.JSONRPCVersion))
	}
	if err := validateID(req.ID); err != nil {
		return nil, err
	}

	params, err := v.decodeParams(method, req.Params)
	if err != nil {
		return nil, err
	}

	return &ParsedRequest{
		ID:     req.ID,
		Method: method,
		Params: params,
		Legacy: IsLegacy(req.Method),
	}, nil
}

// NewRequest builds a request with the default rules
func NewRequest(method string, id any, params any) (types.JSONRPCRequest, error) {
	return defaultValidator.NewRequest(method, id, params)
}

// NewRequest builds a request for a canonical or legacy method name. The
// params are validated as the method's typed params and the request always
// carries the canonical name.
func (v *Validator) NewRequest(method string, id any, params any) (types.JSONRPCRequest, error) {
	canonical, err := NormalizeMethod(method)
	if err != nil {
		return types.JSONRPCRequest{}, err
	}
	if err := validateID(id); err != nil {
		return types.JSONRPCRequest{}, err
	}

	raw, err := json.Marshal(params)
	if err != nil {
		return types.JSONRPCRequest{}, fmt.Errorf("failed to encode params: %w", err)
	}
	if params == nil {
		raw = nil
	}
	typed, err := v.decodeParams(canonical, raw)
	if err != nil {
		return types.JSONRPCRequest{}, err
	}

	return envelope(canonical, id, typed)
}

// NewSendMessageRequest builds a message/send request with a generated id
func NewSendMessageRequest(params types.MessageSendParams) (types.JSONRPCRequest, error) {
	return NewRequest(string(MethodMessageSend), uuid.New().String(), params)
}

// NewStreamMessageRequest builds a message/stream request with a generated id
func NewStreamMessageRequest(params types.MessageSendParams) (types.JSONRPCRequest, error) {
	return NewRequest(string(MethodMessageStream), uuid.New().String(), params)
}

// NewGetTaskRequest builds a tasks/get request with a generated id
func NewGetTaskRequest(params types.TaskQueryParams) (types.JSONRPCRequest, error) {
	return NewRequest(string(MethodTasksGet), uuid.New().String(), params)
}

// NewCancelTaskRequest builds a tasks/cancel request with a generated id
func NewCancelTaskRequest(params types.TaskIDParams) (types.JSONRPCRequest, error) {
	return NewRequest(string(MethodTasksCancel), uuid.New().String(), params)
}

// NewResubscribeRequest builds a tasks/resubscribe request with a generated id
func NewResubscribeRequest(params types.TaskIDParams) (types.JSONRPCRequest, error) {
	return NewRequest(string(MethodTasksResubscribe), uuid.New().String(), params)
}

// NewSetPushNotificationConfigRequest builds a
// tasks/pushNotificationConfig/set request with a generated id
func NewSetPushNotificationConfigRequest(params types.TaskPushNotificationConfig) (types.JSONRPCRequest, error) {
	return NewRequest(string(MethodTasksPushNotificationSet), uuid.New().String(), params)
}

func envelope(method Method, id any, params any) (types.JSONRPCRequest, error) {
	req := types.JSONRPCRequest{
		ID:      id,
		JSONRPC: types.JSONRPCVersion,
		Method:  string(method),
	}
	if params != nil {
		raw, err := json.Marshal(params)
		if err != nil {
			return types.JSONRPCRequest{}, fmt.Errorf("failed to encode params: %w", err)
		}
		req.Params = raw
	}
	return req, nil
}

// validateID accepts a non-empty string, an integral number or null
func validateID(id any) error {
	switch v := id.(type) {
	case nil:
		return nil
	case string:
		if v == "" {
			return NewInvalidRequestError("id", "must not be an empty string")
		}
		return nil
	case json.Number:
		if _, err := v.Int64(); err != nil {
			return NewInvalidRequestError("id", "must be an integer")
		}
		return nil
	}

	value := reflect.ValueOf(id)
	switch value.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return nil
	case reflect.Float32, reflect.Float64:
		if f := value.Float(); math.IsInf(f, 0) || math.Trunc(f) != f {
			return NewInvalidRequestError("id", "must be an integer")
		}
		return nil
	default:
		return NewInvalidRequestError("id", "must be a string, a number or null")
	}
}

// decodeParams decodes raw into the typed params of method and validates them
func (v *Validator) decodeParams(method Method, raw json.RawMessage) (any, error) {
	switch method {
	case MethodMessageSend, MethodMessageStream:
		var params types.MessageSendParams
		if err := decodeInto(raw, &params, false); err != nil {
			return nil, err
		}
		return params, v.ValidateMessageSendParams(params)
	case MethodTasksGet:
		var params types.TaskQueryParams
		if err := decodeInto(raw, &params, false); err != nil {
			return nil, err
		}
		if err := v.rules.ValidateIdentifier("params.id", params.ID); err != nil {
			return nil, err
		}
		return params, validateHistoryLength("params.historyLength", params.HistoryLength)
	case MethodTasksCancel, MethodTasksResubscribe:
		var params types.TaskIDParams
		if err := decodeInto(raw, &params, false); err != nil {
			return nil, err
		}
		return params, v.rules.ValidateIdentifier("params.id", params.ID)
	case MethodTasksPushNotificationSet:
		var params types.TaskPushNotificationConfig
		if err := decodeInto(raw, &params, false); err != nil {
			return nil, err
		}
		if err := v.rules.ValidateIdentifier("params.taskId", params.TaskID); err != nil {
			return nil, err
		}
		return params, validation.Nest("params.pushNotificationConfig", v.ValidatePushNotificationConfig(params.PushNotificationConfig))
	case MethodTasksPushNotificationGet:
		var params types.GetTaskPushNotificationConfigParams
		if err := decodeInto(raw, &params, false); err != nil {
			return nil, err
		}
		if err := v.rules.ValidateIdentifier("params.id", params.ID); err != nil {
			return nil, err
		}
		if params.PushNotificationConfigID != nil {
			return params, v.rules.ValidateIdentifier("params.pushNotificationConfigId", *params.PushNotificationConfigID)
		}
		return params, nil
	case MethodTasksPushNotificationList:
		var params types.ListTaskPushNotificationConfigParams
		if err := decodeInto(raw, &params, false); err != nil {
			return nil, err
		}
		return params, v.rules.ValidateIdentifier("params.id", params.ID)
	case MethodTasksPushNotificationDelete:
		var params types.DeleteTaskPushNotificationConfigParams
		if err := decodeInto(raw, &params, false); err != nil {
			return nil, err
		}
		if err := v.rules.ValidateIdentifier("params.id", params.ID); err != nil {
			return nil, err
		}
		return params, v.rules.ValidateIdentifier("params.pushNotificationConfigId", params.PushNotificationConfigID)
	case MethodAgentGetAuthenticatedExtCard:
		var params types.GetAuthenticatedExtendedCardParams
		if err := decodeInto(raw, &params, true); err != nil {
			return nil, err
		}
		return params, nil
	default:
		return nil, validation.NewMalformedRequestError(string(method))
	}
}

// ValidateMessageSendParams checks the message and configuration of a
// message/send or message/stream call
func (v *Validator) ValidateMessageSendParams(params types.MessageSendParams) error {
	if err := v.ValidateMessage(params.Message); err != nil {
		return validation.Nest("params.message", err)
	}

	config := params.Configuration
	if config == nil {
		return nil
	}
	for i, mode := range config.AcceptedOutputModes {
		if err := v.rules.ValidateMediaType(fmt.Sprintf("params.configuration.acceptedOutputModes[%d]", i), mode); err != nil {
			return err
		}
	}
	if err := validateHistoryLength("params.configuration.historyLength", config.HistoryLength); err != nil {
		return err
	}
	if config.PushNotificationConfig != nil {
		if err := v.ValidatePushNotificationConfig(*config.PushNotificationConfig); err != nil {
			return validation.Nest("params.configuration.pushNotificationConfig", err)
		}
	}
	return nil
}

func validateHistoryLength(field string, length *int) error {
	if length != nil && *length < 0 {
		return validation.NewInvalidFieldError(field, validation.ClassMalformed, "history length must not be negative")
	}
	return nil
}

// decodeInto strictly decodes params into out. Absent params are accepted
// only when optional is set.
func decodeInto(raw json.RawMessage, out any, optional bool) error {
	if len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		if optional {
			return nil
		}
		return validation.NewInvalidFieldError("params", validation.ClassEmpty, "params are required")
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return validation.NewInvalidFieldError("params", validation.ClassMalformed, err.Error())
	}
	return nil
}
