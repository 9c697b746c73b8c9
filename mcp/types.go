// Package mcp is a client for the metadata service's MCP tool endpoint.
// Tools are listed and called over JSON-RPC 2.0 on a single HTTP endpoint;
// the service owns the session, so there is no connection handshake.
package mcp

// Tool names the service exposes over MCP.
const (
	ToolSearchMetadata     = "search_metadata"
	ToolGetEntityDetails   = "get_entity_details"
	ToolGetEntityLineage   = "get_entity_lineage"
	ToolCreateGlossary     = "create_glossary"
	ToolCreateGlossaryTerm = "create_glossary_term"
	ToolPatchEntity        = "patch_entity"
)

// ToolParameter describes one input parameter of a tool.
type ToolParameter struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
	Required    bool   `json:"required"`
}

// ToolInfo describes a tool: its name, purpose, and input schema.
type ToolInfo struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Parameters  []ToolParameter `json:"parameters,omitempty"`
}

// ToolCallResult is the outcome of a tool invocation. Data holds the
// decoded JSON result on success; plain-text results are wrapped as
// {"text": ...}.
type ToolCallResult struct {
	Success bool           `json:"success"`
	Data    map[string]any `json:"data,omitempty"`
	Error   string         `json:"error,omitempty"`
}
