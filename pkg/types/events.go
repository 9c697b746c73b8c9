package types

// EventType classifies a streaming event.
type EventType string

const (
	// EventStart marks the beginning of a streamed response.
	EventStart EventType = "start"
	// EventContent carries a text fragment of the response.
	EventContent EventType = "content"
	// EventToolUse reports a tool invocation by the agent.
	EventToolUse EventType = "tool_use"
	// EventEnd marks the end of a streamed response.
	EventEnd EventType = "end"
	// EventError carries a server-reported failure.
	EventError EventType = "error"
)

// StreamEvent is one decoded unit of a streaming agent response.
//
// Only the fields relevant to Type are populated: Content for content
// events, ToolName for tool_use events, Err for error events.
// ConversationID may appear on any event that carries one.
type StreamEvent struct {
	Type           EventType `json:"type"`
	Content        string    `json:"content,omitempty"`
	ToolName       string    `json:"toolName,omitempty"`
	ConversationID string    `json:"conversationId,omitempty"`
	Err            string    `json:"error,omitempty"`
}
