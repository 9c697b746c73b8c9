// Package types defines the wire types shared across the SDK.
//
// Field names follow the service's camelCase JSON convention. Optional
// fields are tagged omitempty (or use pointers) so absent values are
// omitted from request bodies entirely rather than sent as null.
package types

import "encoding/json"

// InvokeRequest is the body of an agent invocation.
type InvokeRequest struct {
	// Message is the query or instruction for the agent. Optional when the
	// agent has a default prompt configured.
	Message string `json:"message,omitempty"`
	// ConversationID threads multi-turn conversations.
	ConversationID string `json:"conversationId,omitempty"`
	// Parameters are passed through to the agent unchanged.
	Parameters map[string]any `json:"parameters,omitempty"`
}

// Usage reports token usage for an invocation.
type Usage struct {
	PromptTokens     int `json:"promptTokens"`
	CompletionTokens int `json:"completionTokens"`
	TotalTokens      int `json:"totalTokens"`
}

// InvokeResponse is the complete (non-streamed) response of an invocation.
type InvokeResponse struct {
	ConversationID string   `json:"conversationId"`
	Response       string   `json:"response"`
	ToolsUsed      []string `json:"toolsUsed,omitempty"`
	Usage          *Usage   `json:"usage,omitempty"`
}

// EntityReference points at another entity by id and type.
type EntityReference struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Name        string `json:"name,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
}

// AgentInfo describes an agent as returned by the discovery endpoints.
type AgentInfo struct {
	Name        string   `json:"name"`
	DisplayName string   `json:"displayName,omitempty"`
	Description string   `json:"description,omitempty"`
	Abilities   []string `json:"abilities,omitempty"`
	APIEnabled  bool     `json:"apiEnabled"`
}

// UnmarshalJSON accepts abilities either as plain strings or as
// EntityReference objects, keeping only the names.
func (a *AgentInfo) UnmarshalJSON(data []byte) error {
	type alias AgentInfo
	aux := struct {
		*alias
		Abilities []json.RawMessage `json:"abilities,omitempty"`
	}{alias: (*alias)(a)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	a.Abilities = nil
	for _, raw := range aux.Abilities {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			a.Abilities = append(a.Abilities, s)
			continue
		}
		var ref EntityReference
		if err := json.Unmarshal(raw, &ref); err != nil {
			return err
		}
		name := ref.Name
		if name == "" {
			name = ref.ID
		}
		a.Abilities = append(a.Abilities, name)
	}
	return nil
}

// BotInfo describes a bot entity.
type BotInfo struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	DisplayName string           `json:"displayName,omitempty"`
	Description string           `json:"description,omitempty"`
	BotUser     *EntityReference `json:"botUser,omitempty"`
}

// PersonaInfo describes an AI persona.
type PersonaInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"displayName,omitempty"`
	Description string `json:"description,omitempty"`
	Prompt      string `json:"prompt,omitempty"`
	Provider    string `json:"provider,omitempty"`
}

// AbilityInfo describes an ability and the tools it provides.
type AbilityInfo struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	DisplayName        string   `json:"displayName,omitempty"`
	Description        string   `json:"description,omitempty"`
	Provider           string   `json:"provider,omitempty"`
	FullyQualifiedName string   `json:"fullyQualifiedName,omitempty"`
	Tools              []string `json:"tools,omitempty"`
}

// KnowledgeScope restricts what data an agent can access.
type KnowledgeScope struct {
	EntityTypes []string          `json:"entityTypes,omitempty"`
	Services    []EntityReference `json:"services,omitempty"`
}

// CreateAgentRequest describes a dynamic agent to create. Persona and
// Abilities are names; the client resolves them to entity references.
type CreateAgentRequest struct {
	Name        string
	Description string
	Persona     string
	Mode        string // "chat", "agent", or "both"
	DisplayName string
	Icon        string
	BotName     string
	Abilities   []string
	Knowledge   *KnowledgeScope
	Prompt      string
	Schedule    string
	APIEnabled  bool
	Provider    string
}

// CreatePersonaRequest describes a persona to create.
type CreatePersonaRequest struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Prompt      string            `json:"prompt"`
	DisplayName string            `json:"displayName,omitempty"`
	Provider    string            `json:"provider,omitempty"`
	Owners      []EntityReference `json:"owners,omitempty"`
}

// Paging is the cursor envelope returned by list endpoints.
type Paging struct {
	After  string `json:"after,omitempty"`
	Before string `json:"before,omitempty"`
	Total  int    `json:"total,omitempty"`
}
