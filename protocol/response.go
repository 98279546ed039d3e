package protocol

import (
	"encoding/json"
	"errors"

	lifecycle "github.com/inference-gateway/a2a-conformance/lifecycle"
	types "github.com/inference-gateway/a2a-conformance/types"
	validation "github.com/inference-gateway/a2a-conformance/validation"
)

// NewSuccessResponse wraps result into a JSON-RPC success response
func NewSuccessResponse(id any, result any) types.JSONRPCSuccessResponse {
	return types.JSONRPCSuccessResponse{
		ID:      id,
		JSONRPC: types.JSONRPCVersion,
		Result:  result,
	}
}

// NewErrorResponse maps err onto a JSON-RPC error response whose data
// describes the violation
func NewErrorResponse(id any, err error) types.JSONRPCErrorResponse {
	code := ErrorCode(err)
	message, ok := types.ErrorMessages[code]
	if !ok {
		message = types.ErrorMessages[types.ErrorCodeInternalError]
	}

	return types.JSONRPCErrorResponse{
		ID:      id,
		JSONRPC: types.JSONRPCVersion,
		Error: types.JSONRPCError{
			Code:    code,
			Message: message,
			Data:    errorData(err),
		},
	}
}

// ErrorCode returns the JSON-RPC error code for err
func ErrorCode(err error) int {
	var (
		syntaxErr     *json.SyntaxError
		typeErr       *json.UnmarshalTypeError
		requestErr    *InvalidRequestError
		transitionErr *validation.IllegalTransitionError
	)

	switch {
	case err == nil:
		return types.ErrorCodeInternalError
	case errors.As(err, &syntaxErr):
		return types.ErrorCodeParseError
	case errors.As(err, &requestErr), errors.As(err, &typeErr):
		return types.ErrorCodeInvalidRequest
	case errors.As(err, &transitionErr):
		if transitionErr.Event == lifecycle.EventCancel.String() {
			return types.ErrorCodeTaskNotCancelable
		}
		return types.ErrorCodeInvalidParams
	}

	switch validation.KindOf(err) {
	case validation.KindMalformedRequest:
		return types.ErrorCodeMethodNotFound
	case validation.KindInvalidField, validation.KindIncompleteSecurityScheme, validation.KindMissingRequiredExtension:
		return types.ErrorCodeInvalidParams
	default:
		return types.ErrorCodeInternalError
	}
}

func errorData(err error) map[string]any {
	if err == nil {
		return nil
	}
	data := map[string]any{"detail": err.Error()}
	if kind := validation.KindOf(err); kind != "" {
		data["kind"] = string(kind)
	}

	var (
		fieldErr      *validation.InvalidFieldError
		transitionErr *validation.IllegalTransitionError
		schemeErr     *validation.IncompleteSecuritySchemeError
		extensionErr  *validation.MissingRequiredExtensionError
		methodErr     *validation.MalformedRequestError
		requestErr    *InvalidRequestError
	)
	switch {
	case errors.As(err, &schemeErr):
		data["scheme"] = string(schemeErr.Scheme)
		data["field"] = schemeErr.Field
		if schemeErr.Flow != "" {
			data["flow"] = schemeErr.Flow
		}
	case errors.As(err, &fieldErr):
		data["field"] = fieldErr.Field
		data["class"] = string(fieldErr.Class)
		data["constraint"] = fieldErr.Constraint
	case errors.As(err, &transitionErr):
		data["state"] = string(transitionErr.State)
		if transitionErr.Event != "" {
			data["event"] = transitionErr.Event
		}
		if transitionErr.Target != "" {
			data["target"] = string(transitionErr.Target)
		}
	case errors.As(err, &extensionErr):
		data["uri"] = extensionErr.URI
	case errors.As(err, &methodErr):
		data["method"] = methodErr.Method
	case errors.As(err, &requestErr):
		data["field"] = requestErr.Field
	}
	return data
}
