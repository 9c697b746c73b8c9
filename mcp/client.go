package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/oklog/ulid/v2"
	"github.com/tidwall/gjson"

	"github.com/metadata-ai/metadata-ai-go/internal/transport"
	"github.com/metadata-ai/metadata-ai-go/pkg/apierr"
)

const mcpPath = "/mcp"

// Client speaks JSON-RPC 2.0 to the service's MCP endpoint. It rides on
// the SDK's transport, so authentication, retries, and error mapping match
// the rest of the API surface.
type Client struct {
	http *transport.Client
}

// NewClient wraps a transport client whose base URL is the server root.
func NewClient(tc *transport.Client) *Client {
	return &Client{http: tc}
}

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      string `json:"id"`
	Method  string `json:"method"`
	Params  any    `json:"params,omitempty"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *rpcError       `json:"error"`
}

// call performs one JSON-RPC round trip and returns the raw result.
func (c *Client) call(ctx context.Context, method string, params any) (json.RawMessage, error) {
	req := rpcRequest{
		JSONRPC: "2.0",
		ID:      ulid.Make().String(),
		Method:  method,
		Params:  params,
	}
	var resp rpcResponse
	if err := c.http.Post(ctx, mcpPath, req, &resp); err != nil {
		return nil, err
	}
	if resp.Error != nil {
		return nil, &apierr.MCPError{
			Message:    fmt.Sprintf("%s failed: %s", method, resp.Error.Message),
			StatusCode: resp.Error.Code,
		}
	}
	return resp.Result, nil
}

// ListTools returns the tools the service exposes.
func (c *Client) ListTools(ctx context.Context) ([]ToolInfo, error) {
	result, err := c.call(ctx, "tools/list", nil)
	if err != nil {
		return nil, err
	}

	var tools []ToolInfo
	gjson.GetBytes(result, "tools").ForEach(func(_, tool gjson.Result) bool {
		info := ToolInfo{
			Name:        tool.Get("name").String(),
			Description: tool.Get("description").String(),
		}

		schema := tool.Get("inputSchema")
		required := map[string]bool{}
		schema.Get("required").ForEach(func(_, r gjson.Result) bool {
			required[r.String()] = true
			return true
		})
		schema.Get("properties").ForEach(func(name, prop gjson.Result) bool {
			info.Parameters = append(info.Parameters, ToolParameter{
				Name:        name.String(),
				Type:        prop.Get("type").String(),
				Description: prop.Get("description").String(),
				Required:    required[name.String()],
			})
			return true
		})

		tools = append(tools, info)
		return true
	})
	return tools, nil
}

// CallTool invokes a tool by name. Tool-level failures are returned as
// *apierr.MCPToolExecutionError; transport and protocol failures keep their
// usual error kinds.
func (c *Client) CallTool(ctx context.Context, name string, arguments map[string]any) (*ToolCallResult, error) {
	params := map[string]any{"name": name}
	if len(arguments) > 0 {
		params["arguments"] = arguments
	}
	result, err := c.call(ctx, "tools/call", params)
	if err != nil {
		return nil, err
	}

	parsed := gjson.ParseBytes(result)
	if parsed.Get("isError").Bool() {
		return nil, &apierr.MCPToolExecutionError{
			Tool:    name,
			Message: firstText(parsed),
		}
	}

	text := firstText(parsed)
	out := &ToolCallResult{Success: true}
	if strings.HasPrefix(strings.TrimSpace(text), "{") {
		if err := json.Unmarshal([]byte(text), &out.Data); err == nil {
			return out, nil
		}
	}
	out.Data = map[string]any{"text": text}
	return out, nil
}

// firstText extracts the first text block of a tool result.
func firstText(result gjson.Result) string {
	var text string
	result.Get("content").ForEach(func(_, block gjson.Result) bool {
		if block.Get("type").String() == "text" {
			text = block.Get("text").String()
			return false
		}
		return true
	})
	return text
}

// FilterTools narrows a tool list by name. An empty include list keeps
// everything; exclude wins over include.
func FilterTools(tools []ToolInfo, include, exclude []string) []ToolInfo {
	included := map[string]bool{}
	for _, name := range include {
		included[name] = true
	}
	excluded := map[string]bool{}
	for _, name := range exclude {
		excluded[name] = true
	}

	var out []ToolInfo
	for _, tool := range tools {
		if excluded[tool.Name] {
			continue
		}
		if len(included) > 0 && !included[tool.Name] {
			continue
		}
		out = append(out, tool)
	}
	return out
}
