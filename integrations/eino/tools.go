// Package eino adapts the service's MCP tools to the Eino framework so
// they can be handed to an Eino agent or graph directly.
package eino

import (
	"context"
	"encoding/json"
	"fmt"

	einotool "github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/schema"

	"github.com/metadata-ai/metadata-ai-go/mcp"
)

// Tool implements Eino's InvokableTool over one MCP tool.
type Tool struct {
	info   mcp.ToolInfo
	client *mcp.Client
}

// NewTool wraps an MCP tool description for use as an Eino tool.
func NewTool(info mcp.ToolInfo, client *mcp.Client) *Tool {
	return &Tool{info: info, client: client}
}

// Info returns the tool information in Eino's schema.
func (t *Tool) Info(ctx context.Context) (*schema.ToolInfo, error) {
	params := make(map[string]*schema.ParameterInfo, len(t.info.Parameters))
	for _, p := range t.info.Parameters {
		paramType := schema.String
		switch p.Type {
		case "integer":
			paramType = schema.Integer
		case "number":
			paramType = schema.Number
		case "boolean":
			paramType = schema.Boolean
		case "array":
			paramType = schema.Array
		case "object":
			paramType = schema.Object
		}
		params[p.Name] = &schema.ParameterInfo{
			Type:     paramType,
			Desc:     p.Description,
			Required: p.Required,
		}
	}

	return &schema.ToolInfo{
		Name:        t.info.Name,
		Desc:        t.info.Description,
		ParamsOneOf: schema.NewParamsOneOfByParams(params),
	}, nil
}

// InvokableRun executes the tool and returns the result as JSON.
func (t *Tool) InvokableRun(ctx context.Context, argsJSON string, opts ...einotool.Option) (string, error) {
	var args map[string]any
	if argsJSON != "" {
		if err := json.Unmarshal([]byte(argsJSON), &args); err != nil {
			return "", fmt.Errorf("decode arguments for %s: %w", t.info.Name, err)
		}
	}

	result, err := t.client.CallTool(ctx, t.info.Name, args)
	if err != nil {
		return "", err
	}

	out, err := json.Marshal(result.Data)
	if err != nil {
		return "", fmt.Errorf("encode result of %s: %w", t.info.Name, err)
	}
	return string(out), nil
}

// Tools lists the service's MCP tools, filters them by name, and wraps
// each as an Eino tool. An empty include list keeps everything.
func Tools(ctx context.Context, client *mcp.Client, include, exclude []string) ([]einotool.InvokableTool, error) {
	infos, err := client.ListTools(ctx)
	if err != nil {
		return nil, err
	}

	filtered := mcp.FilterTools(infos, include, exclude)
	out := make([]einotool.InvokableTool, 0, len(filtered))
	for _, info := range filtered {
		out = append(out, NewTool(info, client))
	}
	return out, nil
}
