package mcp

import (
	"context"
	"encoding/json"
)

// BuildOpenAITools converts tool descriptions to OpenAI function-calling
// schemas, ready to pass as the tools parameter of a chat completion.
func BuildOpenAITools(tools []ToolInfo) []map[string]any {
	out := make([]map[string]any, 0, len(tools))
	for _, tool := range tools {
		properties := map[string]any{}
		var required []string
		for _, p := range tool.Parameters {
			prop := map[string]any{"type": p.Type}
			if p.Description != "" {
				prop["description"] = p.Description
			}
			properties[p.Name] = prop
			if p.Required {
				required = append(required, p.Name)
			}
		}

		parameters := map[string]any{
			"type":       "object",
			"properties": properties,
		}
		if len(required) > 0 {
			parameters["required"] = required
		}

		out = append(out, map[string]any{
			"type": "function",
			"function": map[string]any{
				"name":        tool.Name,
				"description": tool.Description,
				"parameters":  parameters,
			},
		})
	}
	return out
}

// ToolExecutor dispatches OpenAI tool calls back to the MCP endpoint. The
// returned map is suitable for serializing into a tool-result message.
type ToolExecutor func(ctx context.Context, name string, argumentsJSON string) map[string]any

// NewToolExecutor builds an executor over the given client. Execution
// errors are reported in-band as {"error": ...} so a model loop can show
// the failure to the model instead of aborting.
func NewToolExecutor(client *Client) ToolExecutor {
	return func(ctx context.Context, name string, argumentsJSON string) map[string]any {
		var args map[string]any
		if argumentsJSON != "" {
			if err := json.Unmarshal([]byte(argumentsJSON), &args); err != nil {
				return map[string]any{"error": "invalid tool arguments: " + err.Error()}
			}
		}
		// Nil-valued arguments come from models filling optional fields; the
		// service rejects explicit nulls.
		for k, v := range args {
			if v == nil {
				delete(args, k)
			}
		}

		result, err := client.CallTool(ctx, name, args)
		if err != nil {
			return map[string]any{"error": err.Error()}
		}
		return result.Data
	}
}
