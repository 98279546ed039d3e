package protocol_test

import (
	"encoding/base64"
	"testing"

	protocol "github.com/inference-gateway/a2a-conformance/protocol"
	types "github.com/inference-gateway/a2a-conformance/types"
	validation "github.com/inference-gateway/a2a-conformance/validation"
	assert "github.com/stretchr/testify/assert"
	require "github.com/stretchr/testify/require"
)

func TestArtifactHelper_CreateTextArtifact(t *testing.T) {
	helper := protocol.NewArtifactHelper()

	artifact, err := helper.CreateTextArtifact("Test Document", "A test text artifact", "Hello, World!")
	require.NoError(t, err)

	assert.NotEmpty(t, artifact.ArtifactID)
	assert.Equal(t, "Test Document", *artifact.Name)
	assert.Equal(t, "A test text artifact", *artifact.Description)
	require.Len(t, artifact.Parts, 1)

	textPart, ok := artifact.Parts[0].(types.TextPart)
	require.True(t, ok)
	assert.Equal(t, "Hello, World!", textPart.Text)
	assert.NoError(t, protocol.ValidateArtifact(artifact))
}

func TestArtifactHelper_CreateFileArtifactFromBytes(t *testing.T) {
	helper := protocol.NewArtifactHelper()
	data := []byte("Hello, World!")

	artifact, err := helper.CreateFileArtifactFromBytes("Test File", "", "test.txt", data, "")
	require.NoError(t, err)

	assert.Nil(t, artifact.Description)
	require.Len(t, artifact.Parts, 1)
	filePart, ok := artifact.Parts[0].(types.FilePart)
	require.True(t, ok)
	require.NotNil(t, filePart.File.Bytes)
	assert.Nil(t, filePart.File.URI)
	assert.Equal(t, "test.txt", *filePart.File.Name)
	assert.Equal(t, "text/plain", *filePart.File.MimeType)

	decoded, err := base64.StdEncoding.DecodeString(*filePart.File.Bytes)
	require.NoError(t, err)
	assert.Equal(t, data, decoded)
	assert.NoError(t, protocol.ValidateArtifact(artifact))
}

func TestArtifactHelper_CreateFileArtifactFromURI(t *testing.T) {
	helper := protocol.NewArtifactHelper()

	artifact, err := helper.CreateFileArtifactFromURI("Remote File", "A remote file artifact", "remote.pdf",
		"https://example.com/file.pdf", "application/pdf")
	require.NoError(t, err)

	require.Len(t, artifact.Parts, 1)
	filePart, ok := artifact.Parts[0].(types.FilePart)
	require.True(t, ok)
	assert.Nil(t, filePart.File.Bytes)
	assert.Equal(t, "https://example.com/file.pdf", *filePart.File.URI)
	assert.Equal(t, "application/pdf", *filePart.File.MimeType)
	assert.NoError(t, protocol.ValidateArtifact(artifact))
}

func TestArtifactHelper_CreateDataArtifact(t *testing.T) {
	helper := protocol.NewArtifactHelper()
	data := map[string]any{"result": "success", "count": float64(3)}

	artifact, err := helper.CreateDataArtifact("Analysis", "Structured result", data)
	require.NoError(t, err)

	require.Len(t, artifact.Parts, 1)
	dataPart, ok := artifact.Parts[0].(types.DataPart)
	require.True(t, ok)
	assert.Equal(t, data, dataPart.Data)
	assert.NoError(t, protocol.ValidateArtifact(artifact))
}

func TestArtifactHelper_Lookups(t *testing.T) {
	helper := protocol.NewArtifactHelper()
	text, err := helper.CreateTextArtifact("notes", "", "hello")
	require.NoError(t, err)
	data, err := helper.CreateDataArtifact("result", "", map[string]any{"ok": true})
	require.NoError(t, err)
	mixed, err := helper.CreateMultiPartArtifact("mixed", "", []types.Part{
		types.CreateTextPart("summary"),
		types.CreateDataPart(map[string]any{"k": "v"}),
	})
	require.NoError(t, err)
	task := types.Task{ID: "task-1", ContextID: "ctx-1", Artifacts: []types.Artifact{text, data, mixed}}

	found, ok := helper.GetArtifactByID(task, data.ArtifactID)
	require.True(t, ok)
	assert.Equal(t, data.ArtifactID, found.ArtifactID)

	_, ok = helper.GetArtifactByID(task, "missing")
	assert.False(t, ok)

	textArtifacts := helper.GetArtifactsByKind(task, types.MessagePartKindText)
	require.Len(t, textArtifacts, 2)
	assert.Equal(t, text.ArtifactID, textArtifacts[0].ArtifactID)
	assert.Equal(t, mixed.ArtifactID, textArtifacts[1].ArtifactID)

	assert.Empty(t, helper.GetArtifactsByKind(task, types.MessagePartKindFile))
}

func TestArtifactHelper_RejectsInvalidArtifacts(t *testing.T) {
	helper := protocol.NewArtifactHelper()

	tests := []struct {
		name   string
		create func() (types.Artifact, error)
		field  string
		class  validation.ValueClass
	}{
		{
			name: "file uri is not a url",
			create: func() (types.Artifact, error) {
				return helper.CreateFileArtifactFromURI("remote", "", "remote.txt", "not a url", "text/plain")
			},
			field: "parts[0].file.uri",
			class: validation.ClassMalformed,
		},
		{
			name: "malformed media type",
			create: func() (types.Artifact, error) {
				return helper.CreateFileArtifactFromURI("remote", "", "remote.txt", "https://example.com/remote.txt", "text//plain")
			},
			field: "parts[0].file.mimeType",
			class: validation.ClassMalformed,
		},
		{
			name: "no parts",
			create: func() (types.Artifact, error) {
				return helper.CreateMultiPartArtifact("empty", "", nil)
			},
			field: "parts",
			class: validation.ClassEmpty,
		},
		{
			name: "nil part",
			create: func() (types.Artifact, error) {
				return helper.CreateMultiPartArtifact("holes", "", []types.Part{types.CreateTextPart("a"), nil})
			},
			field: "parts[1].kind",
			class: validation.ClassEmpty,
		},
		{
			name: "data part without data",
			create: func() (types.Artifact, error) {
				return helper.CreateDataArtifact("result", "", nil)
			},
			field: "parts[0].data",
			class: validation.ClassEmpty,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			artifact, err := tt.create()
			requireField(t, err, tt.field, tt.class)
			assert.Empty(t, artifact.ArtifactID)
		})
	}
}

func TestArtifactHelper_UsesValidatorRules(t *testing.T) {
	rules := validation.DefaultRules()
	rules.URLSchemes = []string{"https"}
	helper := protocol.NewValidator(rules, nil).NewArtifactHelper()

	_, err := helper.CreateFileArtifactFromURI("remote", "", "remote.pdf", "http://example.com/remote.pdf", "")
	requireField(t, err, "parts[0].file.uri", validation.ClassUnsupported)

	_, err = helper.CreateFileArtifactFromURI("remote", "", "remote.pdf", "https://example.com/remote.pdf", "")
	assert.NoError(t, err)
}

func TestArtifactHelper_GetArtifactsByKind_SkipsNilParts(t *testing.T) {
	helper := protocol.NewArtifactHelper()
	task := types.Task{ID: "task-1", ContextID: "ctx-1", Artifacts: []types.Artifact{
		{ArtifactID: "a-1", Parts: types.Parts{nil}},
		{ArtifactID: "a-2", Parts: types.Parts{nil, types.CreateTextPart("late")}},
	}}

	matching := helper.GetArtifactsByKind(task, types.MessagePartKindText)
	require.Len(t, matching, 1)
	assert.Equal(t, "a-2", matching[0].ArtifactID)
}

func TestArtifactHelper_GetMimeTypeFromExtension(t *testing.T) {
	helper := protocol.NewArtifactHelper()

	tests := []struct {
		filename string
		expected string
	}{
		{"test.txt", "text/plain"},
		{"README.md", "text/markdown"},
		{"data.json", "application/json"},
		{"document.pdf", "application/pdf"},
		{"image.png", "image/png"},
		{"photo.jpeg", "image/jpeg"},
		{"config.yml", "application/yaml"},
		{"archive.zip", "application/zip"},
		{"unknown.xyz", "application/octet-stream"},
		{"noextension", "application/octet-stream"},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			assert.Equal(t, tt.expected, helper.GetMimeTypeFromExtension(tt.filename))
		})
	}
}
