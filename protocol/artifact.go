package protocol

import (
	"encoding/base64"
	"path/filepath"

	uuid "github.com/google/uuid"
	types "github.com/inference-gateway/a2a-conformance/types"
)

// ArtifactHelper provides utility functions for building and inspecting
// artifacts. Every artifact it builds is validated before it is returned.
type ArtifactHelper struct {
	validator *Validator
}

// NewArtifactHelper creates an artifact helper using the default rules
func NewArtifactHelper() *ArtifactHelper {
	return defaultValidator.NewArtifactHelper()
}

// NewArtifactHelper creates an artifact helper using the rules of v
func (v *Validator) NewArtifactHelper() *ArtifactHelper {
	return &ArtifactHelper{validator: v}
}

// CreateTextArtifact creates a text artifact with the given content
func (ah *ArtifactHelper) CreateTextArtifact(name, description, text string) (types.Artifact, error) {
	return ah.CreateMultiPartArtifact(name, description, []types.Part{types.CreateTextPart(text)})
}

// CreateFileArtifactFromBytes creates a file artifact carrying data inline as
// base64. The media type is derived from filename when mimeType is empty.
func (ah *ArtifactHelper) CreateFileArtifactFromBytes(name, description, filename string, data []byte, mimeType string) (types.Artifact, error) {
	if mimeType == "" {
		mimeType = ah.GetMimeTypeFromExtension(filename)
	}
	file := types.FileWithBytes(filename, mimeType, base64.StdEncoding.EncodeToString(data))
	return ah.CreateMultiPartArtifact(name, description, []types.Part{types.CreateFilePart(file)})
}

// CreateFileArtifactFromURI creates a file artifact referencing uri
func (ah *ArtifactHelper) CreateFileArtifactFromURI(name, description, filename, uri, mimeType string) (types.Artifact, error) {
	if mimeType == "" {
		mimeType = ah.GetMimeTypeFromExtension(filename)
	}
	file := types.FileWithURI(filename, mimeType, uri)
	return ah.CreateMultiPartArtifact(name, description, []types.Part{types.CreateFilePart(file)})
}

// CreateDataArtifact creates a structured data artifact
func (ah *ArtifactHelper) CreateDataArtifact(name, description string, data types.Struct) (types.Artifact, error) {
	return ah.CreateMultiPartArtifact(name, description, []types.Part{types.CreateDataPart(data)})
}

// CreateMultiPartArtifact creates an artifact with multiple parts
func (ah *ArtifactHelper) CreateMultiPartArtifact(name, description string, parts []types.Part) (types.Artifact, error) {
	artifact := types.Artifact{
		ArtifactID: uuid.New().String(),
		Parts:      append(types.Parts(nil), parts...),
	}
	if name != "" {
		artifact.Name = &name
	}
	if description != "" {
		artifact.Description = &description
	}

	if err := ah.validator.ValidateArtifact(artifact); err != nil {
		return types.Artifact{}, err
	}
	return artifact, nil
}

// GetArtifactByID retrieves an artifact from a task by its ID
func (ah *ArtifactHelper) GetArtifactByID(task types.Task, artifactID string) (types.Artifact, bool) {
	for _, artifact := range task.Artifacts {
		if artifact.ArtifactID == artifactID {
			return artifact, true
		}
	}
	return types.Artifact{}, false
}

// GetArtifactsByKind retrieves the artifacts of a task holding at least one
// part of the given kind
func (ah *ArtifactHelper) GetArtifactsByKind(task types.Task, kind types.MessagePartKind) []types.Artifact {
	var matching []types.Artifact
	for _, artifact := range task.Artifacts {
		for _, part := range artifact.Parts {
			if part != nil && part.PartKind() == kind {
				matching = append(matching, artifact)
				break
			}
		}
	}
	return matching
}

// GetMimeTypeFromExtension returns a media type based on file extension
func (ah *ArtifactHelper) GetMimeTypeFromExtension(filename string) string {
	switch filepath.Ext(filename) {
	case ".txt":
		return "text/plain"
	case ".md":
		return "text/markdown"
	case ".json":
		return "application/json"
	case ".xml":
		return "application/xml"
	case ".pdf":
		return "application/pdf"
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".gif":
		return "image/gif"
	case ".svg":
		return "image/svg+xml"
	case ".html":
		return "text/html"
	case ".csv":
		return "text/csv"
	case ".yaml", ".yml":
		return "application/yaml"
	case ".zip":
		return "application/zip"
	default:
		return "application/octet-stream"
	}
}
