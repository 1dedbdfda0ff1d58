package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lillianfidler/churchill-falls-assistant/internal/core/domain"
)

func TestExtractFilename(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		expected string
	}{
		{
			name:     "valid document URI",
			uri:      "churchill://documents/spillway.txt",
			expected: "spillway.txt",
		},
		{
			name:     "invalid prefix",
			uri:      "file://documents/spillway.txt",
			expected: "",
		},
		{
			name:     "listing URI",
			uri:      "churchill://documents",
			expected: "",
		},
		{
			name:     "empty URI",
			uri:      "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := extractFilename(tt.uri)
			assert.Equal(t, tt.expected, result)
		})
	}
}

// Helper to create a ReadResourceRequest with the given URI.
func makeReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

func TestServer_handleDocumentsResource(t *testing.T) {
	ctx := context.Background()

	t.Run("empty list", func(t *testing.T) {
		server := newTestServer(t, &mockToolGateway{})

		result, err := server.handleDocumentsResource(ctx, makeReadResourceRequest("churchill://documents"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "[]", result.Contents[0].Text)
	})

	t.Run("lists documents", func(t *testing.T) {
		server := newTestServer(t, &mockToolGateway{
			list: []domain.DocumentInfo{{Name: "spillway.txt", SizeBytes: 512}},
		})

		result, err := server.handleDocumentsResource(ctx, makeReadResourceRequest("churchill://documents"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "application/json", result.Contents[0].MIMEType)
		assert.Contains(t, result.Contents[0].Text, `"filename": "spillway.txt"`)
		assert.Contains(t, result.Contents[0].Text, `"size": 512`)
	})
}

func TestServer_handleDocumentContentResource(t *testing.T) {
	ctx := context.Background()

	t.Run("returns content", func(t *testing.T) {
		server := newTestServer(t, &mockToolGateway{
			docs: map[string]string{"spillway.txt": "The spillway opened in 1971."},
		})

		uri := "churchill://documents/spillway.txt"
		result, err := server.handleDocumentContentResource(ctx, makeReadResourceRequest(uri))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, uri, result.Contents[0].URI)
		assert.Equal(t, "text/plain", result.Contents[0].MIMEType)
		assert.Equal(t, "The spillway opened in 1971.", result.Contents[0].Text)
	})

	t.Run("invalid URI returns not found", func(t *testing.T) {
		server := newTestServer(t, &mockToolGateway{})

		_, err := server.handleDocumentContentResource(ctx, makeReadResourceRequest("churchill://invalid"))

		require.Error(t, err)
	})

	t.Run("unknown document returns not found", func(t *testing.T) {
		server := newTestServer(t, &mockToolGateway{docs: map[string]string{}})

		_, err := server.handleDocumentContentResource(ctx, makeReadResourceRequest("churchill://documents/x.txt"))

		require.Error(t, err)
		assert.NotContains(t, err.Error(), "getting document")
	})

	t.Run("gateway failure is wrapped", func(t *testing.T) {
		server := newTestServer(t, &mockToolGateway{err: errors.New("disk gone")})

		_, err := server.handleDocumentContentResource(ctx, makeReadResourceRequest("churchill://documents/x.txt"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "getting document")
	})
}
