// Package protocol builds and validates A2A protocol values: messages, tasks,
// JSON-RPC requests and responses, streaming events and agent cards. Every
// constructor returns the value only if every sub-validation passes.
package protocol

import (
	"encoding/base64"
	"fmt"

	extension "github.com/inference-gateway/a2a-conformance/extension"
	security "github.com/inference-gateway/a2a-conformance/security"
	types "github.com/inference-gateway/a2a-conformance/types"
	validation "github.com/inference-gateway/a2a-conformance/validation"
)

// Validator validates protocol values against a set of field rules
type Validator struct {
	rules      validation.Rules
	extensions *extension.Validator
	security   *security.Validator
}

// NewValidator creates a Validator from rules. Extension params are checked
// against the constraints registered on extensions; a nil extensions uses the
// built-in constraints only.
func NewValidator(rules validation.Rules, extensions *extension.Validator) *Validator {
	if extensions == nil {
		extensions = extension.NewValidator(rules)
	}
	return &Validator{
		rules:      rules,
		extensions: extensions,
		security:   security.NewValidator(rules),
	}
}

var defaultValidator = NewValidator(validation.DefaultRules(), nil)

// Rules returns the field rules of the validator
func (v *Validator) Rules() validation.Rules {
	return v.rules
}

// ValidateMessage checks msg with the default rules
func ValidateMessage(msg types.Message) error { return defaultValidator.ValidateMessage(msg) }

// ValidateArtifact checks artifact with the default rules
func ValidateArtifact(artifact types.Artifact) error {
	return defaultValidator.ValidateArtifact(artifact)
}

// ValidateTask checks task with the default rules
func ValidateTask(task types.Task) error { return defaultValidator.ValidateTask(task) }

// ValidateMessage checks the role, ids, parts and extension URIs of msg
func (v *Validator) ValidateMessage(msg types.Message) error {
	if err := v.rules.ValidateIdentifier("messageId", msg.MessageID); err != nil {
		return err
	}
	if msg.Role == "" {
		return validation.NewInvalidFieldError("role", validation.ClassEmpty, "role is required")
	}
	if !msg.Role.IsValid() {
		return validation.NewInvalidFieldError("role", validation.ClassUnsupported, "role must be user or agent")
	}
	if err := v.ValidateParts(msg.Parts); err != nil {
		return validation.Nest("parts", err)
	}
	if msg.TaskID != nil {
		if err := v.rules.ValidateIdentifier("taskId", *msg.TaskID); err != nil {
			return err
		}
	}
	if msg.ContextID != nil {
		if err := v.rules.ValidateIdentifier("contextId", *msg.ContextID); err != nil {
			return err
		}
	}
	for i, id := range msg.ReferenceTaskIDs {
		if err := v.rules.ValidateIdentifier(fmt.Sprintf("referenceTaskIds[%d]", i), id); err != nil {
			return err
		}
	}
	return v.extensions.CheckURIs("extensions", msg.Extensions)
}

// ValidateParts checks that parts is non-empty and every part is well formed.
// Field paths are relative, e.g. "[1].file.uri".
func (v *Validator) ValidateParts(parts types.Parts) error {
	if len(parts) == 0 {
		return validation.NewInvalidFieldError("", validation.ClassEmpty, "at least one part is required")
	}
	for i, part := range parts {
		if err := v.ValidatePart(part); err != nil {
			return validation.Nest(fmt.Sprintf("[%d]", i), err)
		}
	}
	return nil
}

// ValidatePart checks a single part
func (v *Validator) ValidatePart(part types.Part) error {
	switch p := part.(type) {
	case types.TextPart:
		return nil
	case types.FilePart:
		return validation.Nest("file", v.validateFile(p.File))
	case types.DataPart:
		if p.Data == nil {
			return validation.NewInvalidFieldError("data", validation.ClassEmpty, "data part must carry an object")
		}
		return nil
	case nil:
		return validation.NewInvalidFieldError("kind", validation.ClassEmpty, "part is required")
	default:
		return validation.NewInvalidFieldError("kind", validation.ClassUnsupported, fmt.Sprintf("unsupported part %T", part))
	}
}

func (v *Validator) validateFile(file types.FileContent) error {
	switch {
	case file.Bytes != nil && file.URI != nil:
		return validation.NewInvalidFieldError("", validation.ClassForbidden, "file must carry exactly one of bytes or uri")
	case file.Bytes == nil && file.URI == nil:
		return validation.NewInvalidFieldError("", validation.ClassEmpty, "file must carry exactly one of bytes or uri")
	case file.Bytes != nil:
		if _, err := base64.StdEncoding.DecodeString(*file.Bytes); err != nil {
			return validation.NewInvalidFieldError("bytes", validation.ClassMalformed, "bytes must be standard base64")
		}
	default:
		if err := v.rules.ValidateURL("uri", *file.URI); err != nil {
			return err
		}
	}

	if file.MimeType != nil {
		return v.rules.ValidateMediaType("mimeType", *file.MimeType)
	}
	return nil
}

// ValidateArtifact checks the id, parts and extension URIs of an artifact
func (v *Validator) ValidateArtifact(artifact types.Artifact) error {
	if err := v.rules.ValidateIdentifier("artifactId", artifact.ArtifactID); err != nil {
		return err
	}
	if err := v.ValidateParts(artifact.Parts); err != nil {
		return validation.Nest("parts", err)
	}
	return v.extensions.CheckURIs("extensions", artifact.Extensions)
}

// ValidateStatus checks the state, timestamp and message of a task status
func (v *Validator) ValidateStatus(status types.TaskStatus) error {
	if status.State == "" {
		return validation.NewInvalidFieldError("state", validation.ClassEmpty, "state is required")
	}
	if !status.State.IsValid() {
		return validation.NewInvalidFieldError("state", validation.ClassUnsupported,
			fmt.Sprintf("unknown task state %q", status.State))
	}
	if status.Timestamp != nil {
		if err := validation.ValidateTimestamp("timestamp", *status.Timestamp); err != nil {
			return err
		}
	}
	if status.Message != nil {
		if err := v.ValidateMessage(*status.Message); err != nil {
			return validation.Nest("message", err)
		}
	}
	return nil
}

// ValidateTask checks the ids, status, history and artifacts of task.
// Artifact ids must be unique and history messages must not name another
// task or context.
func (v *Validator) ValidateTask(task types.Task) error {
	if err := v.rules.ValidateIdentifier("id", task.ID); err != nil {
		return err
	}
	if err := v.rules.ValidateIdentifier("contextId", task.ContextID); err != nil {
		return err
	}
	if err := v.ValidateStatus(task.Status); err != nil {
		return validation.Nest("status", err)
	}
	for i, msg := range task.History {
		if err := v.ValidateMessage(msg); err != nil {
			return validation.Nest(fmt.Sprintf("history[%d]", i), err)
		}
		if err := belongsTo(task, msg); err != nil {
			return validation.Nest(fmt.Sprintf("history[%d]", i), err)
		}
	}
	if _, err := v.artifactIndex(task.Artifacts); err != nil {
		return err
	}
	return nil
}

// artifactIndex validates artifacts and maps each artifact id to its position
func (v *Validator) artifactIndex(artifacts []types.Artifact) (map[string]int, error) {
	index := make(map[string]int, len(artifacts))
	for i, artifact := range artifacts {
		field := fmt.Sprintf("artifacts[%d]", i)
		if err := v.ValidateArtifact(artifact); err != nil {
			return nil, validation.Nest(field, err)
		}
		if first, ok := index[artifact.ArtifactID]; ok {
			return nil, validation.NewInvalidFieldError(field+".artifactId", validation.ClassForbidden,
				fmt.Sprintf("artifact id %q duplicates artifacts[%d]", artifact.ArtifactID, first))
		}
		index[artifact.ArtifactID] = i
	}
	return index, nil
}
