package metadataai

import (
	"context"
	"sort"

	"github.com/metadata-ai/metadata-ai-go/pkg/types"
	"github.com/metadata-ai/metadata-ai-go/streaming"
)

// Turn is one request/response exchange in a conversation.
type Turn struct {
	User      string
	Assistant *types.InvokeResponse
}

// ChatMessage is a role-tagged message in conversation history.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Conversation threads a multi-turn exchange with a single agent by
// carrying the conversation id across calls. Not safe for concurrent use.
type Conversation struct {
	agent *AgentHandle
	id    string
	turns []Turn
}

// Conversation starts a multi-turn conversation with the agent.
func (a *AgentHandle) Conversation() *Conversation {
	return &Conversation{agent: a}
}

// Send sends a message in the conversation and records the exchange.
func (c *Conversation) Send(ctx context.Context, message string, opts ...InvokeOption) (*types.InvokeResponse, error) {
	if c.id != "" {
		opts = append(opts, WithConversationID(c.id))
	}
	resp, err := c.agent.Call(ctx, message, opts...)
	if err != nil {
		return nil, err
	}
	if resp.ConversationID != "" {
		c.id = resp.ConversationID
	}
	if message != "" {
		c.turns = append(c.turns, Turn{User: message, Assistant: resp})
	}
	return resp, nil
}

// Stream sends a message and returns the response as a stream of events.
// Streamed turns thread the conversation id but are not recorded in
// history, since the response text is consumed by the caller.
func (c *Conversation) Stream(ctx context.Context, message string, opts ...InvokeOption) (*streaming.Stream, error) {
	if c.id != "" {
		opts = append(opts, WithConversationID(c.id))
	}
	return c.agent.Stream(ctx, message, opts...)
}

// ID returns the server-assigned conversation id, empty before the first
// response.
func (c *Conversation) ID() string { return c.id }

// Agent returns the handle this conversation talks to.
func (c *Conversation) Agent() *AgentHandle { return c.agent }

// Len returns the number of recorded turns.
func (c *Conversation) Len() int { return len(c.turns) }

// History returns the recorded turns in order.
func (c *Conversation) History() []Turn {
	out := make([]Turn, len(c.turns))
	copy(out, c.turns)
	return out
}

// Messages returns the conversation as alternating user/assistant messages.
func (c *Conversation) Messages() []ChatMessage {
	var out []ChatMessage
	for _, t := range c.turns {
		out = append(out, ChatMessage{Role: "user", Content: t.User})
		if t.Assistant != nil {
			out = append(out, ChatMessage{Role: "assistant", Content: t.Assistant.Response})
		}
	}
	return out
}

// Responses returns the assistant responses in order.
func (c *Conversation) Responses() []*types.InvokeResponse {
	var out []*types.InvokeResponse
	for _, t := range c.turns {
		if t.Assistant != nil {
			out = append(out, t.Assistant)
		}
	}
	return out
}

// ToolsUsed returns the distinct tool names used across all turns, sorted.
func (c *Conversation) ToolsUsed() []string {
	seen := map[string]struct{}{}
	for _, t := range c.turns {
		if t.Assistant == nil {
			continue
		}
		for _, tool := range t.Assistant.ToolsUsed {
			seen[tool] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for tool := range seen {
		out = append(out, tool)
	}
	sort.Strings(out)
	return out
}

// Reset clears the history and conversation id, starting a fresh thread
// with the same agent.
func (c *Conversation) Reset() {
	c.id = ""
	c.turns = nil
}
