package types

import (
	"encoding/json"
	"fmt"
)

// Part is a closed union over TextPart, FilePart and DataPart, discriminated
// on the wire by the "kind" field.
type Part interface {
	PartKind() MessagePartKind
	isPart()
}

// TextPart carries plain text content
type TextPart struct {
	Metadata Struct `json:"metadata,omitempty"`
	Text     string `json:"text"`
}

// FilePart carries a file either inline as base64 bytes or by URI
type FilePart struct {
	File     FileContent `json:"file"`
	Metadata Struct      `json:"metadata,omitempty"`
}

// DataPart carries a structured JSON object
type DataPart struct {
	Data     Struct `json:"data"`
	Metadata Struct `json:"metadata,omitempty"`
}

// FileContent is a file with exactly one of Bytes or URI set.
type FileContent struct {
	Bytes    *string `json:"bytes,omitempty"`
	MimeType *string `json:"mimeType,omitempty"`
	Name     *string `json:"name,omitempty"`
	URI      *string `json:"uri,omitempty"`
}

func (TextPart) PartKind() MessagePartKind { return MessagePartKindText }
func (FilePart) PartKind() MessagePartKind { return MessagePartKindFile }
func (DataPart) PartKind() MessagePartKind { return MessagePartKindData }

func (TextPart) isPart() {}
func (FilePart) isPart() {}
func (DataPart) isPart() {}

// MarshalJSON writes the part with its kind discriminator
func (p TextPart) MarshalJSON() ([]byte, error) {
	type part TextPart
	return json.Marshal(struct {
		Kind MessagePartKind `json:"kind"`
		part
	}{Kind: MessagePartKindText, part: part(p)})
}

// MarshalJSON writes the part with its kind discriminator
func (p FilePart) MarshalJSON() ([]byte, error) {
	type part FilePart
	return json.Marshal(struct {
		Kind MessagePartKind `json:"kind"`
		part
	}{Kind: MessagePartKindFile, part: part(p)})
}

// MarshalJSON writes the part with its kind discriminator
func (p DataPart) MarshalJSON() ([]byte, error) {
	type part DataPart
	return json.Marshal(struct {
		Kind MessagePartKind `json:"kind"`
		part
	}{Kind: MessagePartKindData, part: part(p)})
}

// Parts is an ordered sequence of parts that decodes each element by its kind
type Parts []Part

// UnmarshalJSON decodes every element through UnmarshalPart
func (p *Parts) UnmarshalJSON(data []byte) error {
	parts, err := UnmarshalParts(data)
	if err != nil {
		return err
	}
	*p = parts
	return nil
}

// UnmarshalPart unmarshals a single Part from JSON with proper type handling
func UnmarshalPart(data []byte) (Part, error) {
	var probe struct {
		Kind MessagePartKind `json:"kind"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("failed to unmarshal Part: %w", err)
	}

	switch probe.Kind {
	case MessagePartKindText:
		var part TextPart
		if err := json.Unmarshal(data, &part); err != nil {
			return nil, fmt.Errorf("failed to unmarshal text part: %w", err)
		}
		return part, nil
	case MessagePartKindFile:
		var part FilePart
		if err := json.Unmarshal(data, &part); err != nil {
			return nil, fmt.Errorf("failed to unmarshal file part: %w", err)
		}
		return part, nil
	case MessagePartKindData:
		var part DataPart
		if err := json.Unmarshal(data, &part); err != nil {
			return nil, fmt.Errorf("failed to unmarshal data part: %w", err)
		}
		return part, nil
	case "":
		return nil, fmt.Errorf("part is missing the kind discriminator")
	default:
		return nil, fmt.Errorf("unsupported part kind %q", probe.Kind)
	}
}

// UnmarshalParts is a utility function to unmarshal a slice of Parts with proper type handling
func UnmarshalParts(data []byte) ([]Part, error) {
	var rawParts []json.RawMessage
	if err := json.Unmarshal(data, &rawParts); err != nil {
		return nil, fmt.Errorf("failed to unmarshal raw parts: %w", err)
	}
	if rawParts == nil {
		return nil, nil
	}

	parts := make([]Part, len(rawParts))
	for i, rawPart := range rawParts {
		part, err := UnmarshalPart(rawPart)
		if err != nil {
			return nil, fmt.Errorf("failed to unmarshal part at index %d: %w", i, err)
		}
		parts[i] = part
	}

	return parts, nil
}

// MarshalParts is a utility function to marshal a slice of Parts
func MarshalParts(parts []Part) ([]byte, error) {
	return json.Marshal(parts)
}

// CreateTextPart creates a Part with text content
func CreateTextPart(text string, metadata ...Struct) TextPart {
	part := TextPart{Text: text}
	if len(metadata) > 0 {
		part.Metadata = metadata[0]
	}
	return part
}

// CreateDataPart creates a Part with data content
func CreateDataPart(data Struct, metadata ...Struct) DataPart {
	part := DataPart{Data: data}
	if len(metadata) > 0 {
		part.Metadata = metadata[0]
	}
	return part
}

// CreateFilePart creates a Part with file content
func CreateFilePart(file FileContent, metadata ...Struct) FilePart {
	part := FilePart{File: file}
	if len(metadata) > 0 {
		part.Metadata = metadata[0]
	}
	return part
}

// FileWithBytes builds inline file content from base64 encoded bytes.
func FileWithBytes(name, mimeType, base64Bytes string) FileContent {
	return FileContent{Bytes: &base64Bytes, Name: optional(name), MimeType: optional(mimeType)}
}

// FileWithURI builds file content that references the file by URI.
func FileWithURI(name, mimeType, uri string) FileContent {
	return FileContent{URI: &uri, Name: optional(name), MimeType: optional(mimeType)}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
