package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnmarshalPart(t *testing.T) {
	bytes := "dGVzdA=="
	name := "test.txt"
	mime := "text/plain"

	tests := []struct {
		name     string
		jsonData string
		expected Part
	}{
		{
			name:     "unmarshal TextPart",
			jsonData: `{"kind": "text", "text": "Hello, world!", "metadata": {"key": "value"}}`,
			expected: TextPart{
				Text:     "Hello, world!",
				Metadata: map[string]any{"key": "value"},
			},
		},
		{
			name:     "unmarshal DataPart",
			jsonData: `{"kind": "data", "data": {"result": "success"}, "metadata": {"source": "test"}}`,
			expected: DataPart{
				Data:     map[string]any{"result": "success"},
				Metadata: map[string]any{"source": "test"},
			},
		},
		{
			name:     "unmarshal FilePart with bytes",
			jsonData: `{"kind": "file", "file": {"name": "test.txt", "mimeType": "text/plain", "bytes": "dGVzdA=="}}`,
			expected: FilePart{
				File: FileContent{Name: &name, MimeType: &mime, Bytes: &bytes},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			part, err := UnmarshalPart([]byte(tt.jsonData))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, part)
		})
	}
}

func TestUnmarshalPart_Rejected(t *testing.T) {
	tests := []struct {
		name     string
		jsonData string
		errMsg   string
	}{
		{
			name:     "unknown kind",
			jsonData: `{"kind": "unknown", "customField": "value"}`,
			errMsg:   `unsupported part kind "unknown"`,
		},
		{
			name:     "missing kind",
			jsonData: `{"text": "hello"}`,
			errMsg:   "missing the kind discriminator",
		},
		{
			name:     "not an object",
			jsonData: `"text"`,
			errMsg:   "failed to unmarshal Part",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			part, err := UnmarshalPart([]byte(tt.jsonData))
			require.Error(t, err)
			assert.Nil(t, part)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestMarshalPart(t *testing.T) {
	uri := "https://example.com/test.txt"

	tests := []struct {
		name     string
		part     Part
		expected string
	}{
		{
			name:     "marshal TextPart",
			part:     TextPart{Text: "Hello, world!"},
			expected: `{"kind":"text","text":"Hello, world!"}`,
		},
		{
			name:     "marshal DataPart",
			part:     DataPart{Data: map[string]any{"result": "success"}},
			expected: `{"kind":"data","data":{"result":"success"}}`,
		},
		{
			name:     "marshal FilePart",
			part:     FilePart{File: FileContent{URI: &uri}},
			expected: `{"kind":"file","file":{"uri":"https://example.com/test.txt"}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := json.Marshal(tt.part)
			require.NoError(t, err)
			assert.JSONEq(t, tt.expected, string(result))
		})
	}
}

func TestUnmarshalParts(t *testing.T) {
	jsonData := `[
		{"kind": "text", "text": "Hello"},
		{"kind": "data", "data": {"key": "value"}},
		{"kind": "file", "file": {"name": "test.txt", "uri": "https://example.com/test.txt"}}
	]`

	parts, err := UnmarshalParts([]byte(jsonData))
	require.NoError(t, err)
	require.Len(t, parts, 3)

	textPart, ok := parts[0].(TextPart)
	require.True(t, ok)
	assert.Equal(t, MessagePartKindText, textPart.PartKind())
	assert.Equal(t, "Hello", textPart.Text)

	dataPart, ok := parts[1].(DataPart)
	require.True(t, ok)
	assert.Equal(t, MessagePartKindData, dataPart.PartKind())
	assert.Equal(t, map[string]any{"key": "value"}, dataPart.Data)

	filePart, ok := parts[2].(FilePart)
	require.True(t, ok)
	assert.Equal(t, MessagePartKindFile, filePart.PartKind())
	require.NotNil(t, filePart.File.Name)
	assert.Equal(t, "test.txt", *filePart.File.Name)
	assert.Nil(t, filePart.File.Bytes)
}

func TestUnmarshalParts_ReportsIndex(t *testing.T) {
	_, err := UnmarshalParts([]byte(`[{"kind":"text","text":"ok"},{"kind":"video"}]`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "index 1")
}

func TestMarshalParts(t *testing.T) {
	parts := []Part{
		TextPart{Text: "Hello"},
		DataPart{Data: map[string]any{"key": "value"}},
		CreateFilePart(FileWithBytes("test.txt", "", "dGVzdA==")),
	}

	result, err := MarshalParts(parts)
	require.NoError(t, err)

	expected := `[
		{"kind":"text","text":"Hello"},
		{"kind":"data","data":{"key":"value"}},
		{"kind":"file","file":{"name":"test.txt","bytes":"dGVzdA=="}}
	]`

	assert.JSONEq(t, expected, string(result))
}

func TestCreateTextPart(t *testing.T) {
	part := CreateTextPart("Hello, world!")
	assert.Equal(t, "Hello, world!", part.Text)
	assert.Nil(t, part.Metadata)

	// Test with metadata
	metadata := map[string]any{"key": "value"}
	partWithMeta := CreateTextPart("Hello", metadata)
	assert.Equal(t, "Hello", partWithMeta.Text)
	assert.Equal(t, Struct(metadata), partWithMeta.Metadata)
}

func TestCreateDataPart(t *testing.T) {
	data := map[string]any{"result": "success"}
	part := CreateDataPart(data)
	assert.Equal(t, Struct(data), part.Data)
	assert.Nil(t, part.Metadata)

	metadata := map[string]any{"source": "test"}
	partWithMeta := CreateDataPart(data, metadata)
	assert.Equal(t, Struct(metadata), partWithMeta.Metadata)
}

func TestCreateFilePart(t *testing.T) {
	file := FileWithURI("report.pdf", "application/pdf", "https://example.com/report.pdf")
	part := CreateFilePart(file)
	require.NotNil(t, part.File.URI)
	assert.Equal(t, "https://example.com/report.pdf", *part.File.URI)
	require.NotNil(t, part.File.MimeType)
	assert.Equal(t, "application/pdf", *part.File.MimeType)
	assert.Nil(t, part.File.Bytes)
	assert.Nil(t, part.Metadata)

	noName := FileWithBytes("", "", "dGVzdA==")
	assert.Nil(t, noName.Name)
	assert.Nil(t, noName.MimeType)
}

func TestPartMarshalingRoundTrip(t *testing.T) {
	original := []Part{
		TextPart{Text: "Hello, world!", Metadata: map[string]any{"lang": "en"}},
		DataPart{Data: map[string]any{"result": "success"}, Metadata: map[string]any{"source": "api"}},
		FilePart{File: FileWithBytes("test.txt", "text/plain", "dGVzdA=="), Metadata: map[string]any{"size": 4}},
	}

	marshaled, err := MarshalParts(original)
	require.NoError(t, err)

	unmarshaled, err := UnmarshalParts(marshaled)
	require.NoError(t, err)
	require.Len(t, unmarshaled, 3)

	assert.Equal(t, original[0], unmarshaled[0])
	assert.Equal(t, original[1], unmarshaled[1])

	filePart, ok := unmarshaled[2].(FilePart)
	require.True(t, ok)
	assert.Equal(t, original[2].(FilePart).File, filePart.File)
	assert.Equal(t, Struct{"size": float64(4)}, filePart.Metadata) // JSON numbers are float64
}

func TestMessage_UnmarshalJSON(t *testing.T) {
	data := `{
		"kind": "message",
		"messageId": "msg-1",
		"role": "user",
		"parts": [{"kind": "text", "text": "hi"}, {"kind": "data", "data": {"n": 1}}],
		"contextId": "ctx-1"
	}`

	var msg Message
	require.NoError(t, json.Unmarshal([]byte(data), &msg))
	assert.Equal(t, "msg-1", msg.MessageID)
	assert.Equal(t, RoleUser, msg.Role)
	require.Len(t, msg.Parts, 2)
	assert.Equal(t, TextPart{Text: "hi"}, msg.Parts[0])
	require.NotNil(t, msg.ContextID)
	assert.Equal(t, "ctx-1", *msg.ContextID)

	out, err := json.Marshal(msg)
	require.NoError(t, err)
	assert.JSONEq(t, data, string(out))
}
