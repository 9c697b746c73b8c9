package eino

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metadata-ai/metadata-ai-go/internal/transport"
	"github.com/metadata-ai/metadata-ai-go/mcp"
)

type testAuth struct{}

func (testAuth) Headers() map[string]string {
	return map[string]string{"Authorization": "Bearer test-token"}
}

func newMCPClient(t *testing.T, handler http.Handler) *mcp.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	tc := transport.New(transport.Options{
		BaseURL:    server.URL,
		Auth:       testAuth{},
		MaxRetries: 0,
	})
	t.Cleanup(tc.Close)
	return mcp.NewClient(tc)
}

func TestToolInfoConversion(t *testing.T) {
	tool := NewTool(mcp.ToolInfo{
		Name:        mcp.ToolSearchMetadata,
		Description: "Search metadata entities",
		Parameters: []mcp.ToolParameter{
			{Name: "query", Type: "string", Description: "Search query", Required: true},
			{Name: "limit", Type: "integer"},
			{Name: "deep", Type: "boolean"},
		},
	}, nil)

	info, err := tool.Info(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "search_metadata", info.Name)
	assert.Equal(t, "Search metadata entities", info.Desc)
	require.NotNil(t, info.ParamsOneOf)
}

func TestToolInvokableRun(t *testing.T) {
	client := newMCPClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewEncoder(w).Encode(map[string]any{
			"jsonrpc": "2.0",
			"result": map[string]any{
				"content": []map[string]any{
					{"type": "text", "text": `{"entities": []}`},
				},
			},
		}))
	}))

	tool := NewTool(mcp.ToolInfo{Name: mcp.ToolSearchMetadata}, client)
	out, err := tool.InvokableRun(context.Background(), `{"query": "customers"}`)
	require.NoError(t, err)
	assert.JSONEq(t, `{"entities": []}`, out)
}

func TestToolInvokableRunRejectsBadArguments(t *testing.T) {
	tool := NewTool(mcp.ToolInfo{Name: mcp.ToolSearchMetadata}, nil)
	_, err := tool.InvokableRun(context.Background(), `{broken`)
	assert.Error(t, err)
}

func TestToolsListsAndFilters(t *testing.T) {
	client := newMCPClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewEncoder(w).Encode(map[string]any{
			"jsonrpc": "2.0",
			"result": map[string]any{
				"tools": []map[string]any{
					{"name": "search_metadata"},
					{"name": "patch_entity"},
				},
			},
		}))
	}))

	tools, err := Tools(context.Background(), client, nil, []string{"patch_entity"})
	require.NoError(t, err)
	require.Len(t, tools, 1)

	info, err := tools[0].Info(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "search_metadata", info.Name)
}
