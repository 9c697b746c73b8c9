package metadataai

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/metadata-ai/metadata-ai-go/internal/transport"
	"github.com/metadata-ai/metadata-ai-go/pkg/types"
	"github.com/metadata-ai/metadata-ai-go/streaming"
)

// AgentHandle invokes a single named agent. Handles are cheap; create one
// per agent with Client.Agent.
type AgentHandle struct {
	name   string
	http   *transport.Client
	logger zerolog.Logger
}

// Name returns the agent name.
func (a *AgentHandle) Name() string { return a.name }

// InvokeOption customizes a single invocation.
type InvokeOption func(*types.InvokeRequest)

// WithConversationID continues an existing conversation.
func WithConversationID(id string) InvokeOption {
	return func(r *types.InvokeRequest) { r.ConversationID = id }
}

// WithParameters passes extra parameters through to the agent.
func WithParameters(params map[string]any) InvokeOption {
	return func(r *types.InvokeRequest) { r.Parameters = params }
}

// Call invokes the agent and waits for the complete response.
func (a *AgentHandle) Call(ctx context.Context, message string, opts ...InvokeOption) (*types.InvokeResponse, error) {
	req := types.InvokeRequest{Message: message}
	for _, opt := range opts {
		opt(&req)
	}

	a.logger.Debug().Str("agent", a.name).Msg("invoking agent")

	var out types.InvokeResponse
	err := a.http.Post(ctx, "/"+a.name+"/invoke", req, &out,
		transport.WithEntity(transport.EntityAgent, a.name))
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Stream invokes the agent and returns the response as a stream of events.
// The caller must Close the stream. Streaming requests are never retried.
func (a *AgentHandle) Stream(ctx context.Context, message string, opts ...InvokeOption) (*streaming.Stream, error) {
	req := types.InvokeRequest{Message: message}
	for _, opt := range opts {
		opt(&req)
	}

	a.logger.Debug().Str("agent", a.name).Msg("streaming from agent")

	body, err := a.http.PostStream(ctx, "/"+a.name+"/stream", req,
		transport.WithEntity(transport.EntityAgent, a.name))
	if err != nil {
		return nil, err
	}
	return streaming.NewWithLogger(body, &a.logger), nil
}
