package apierr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "invalid or expired authentication token", (&AuthenticationError{}).Error())
	assert.Equal(t, "custom", (&AuthenticationError{Message: "custom"}).Error())
	assert.Equal(t, "agent not found: planner", (&AgentNotFoundError{AgentName: "planner"}).Error())
	assert.Contains(t, (&AgentNotEnabledError{AgentName: "planner"}).Error(), "apiEnabled=true")
	assert.Equal(t, "rate limit exceeded", (&RateLimitError{}).Error())
	assert.Equal(t, `tool "patch_entity" failed: boom`, (&MCPToolExecutionError{Tool: "patch_entity", Message: "boom"}).Error())
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  APIError
		want int
	}{
		{&AuthenticationError{}, 401},
		{&AgentNotFoundError{}, 404},
		{&AgentNotEnabledError{}, 403},
		{&BotNotFoundError{}, 404},
		{&PersonaNotFoundError{}, 404},
		{&AbilityNotFoundError{}, 404},
		{&RateLimitError{}, 429},
		{&AgentExecutionError{}, 500},
		{&AgentExecutionError{StatusCode: 502}, 502},
		{&Error{StatusCode: 418}, 418},
		{&MCPToolExecutionError{}, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.err.HTTPStatus(), "%T", tt.err)
	}
}

func TestErrorsAsThroughWrapping(t *testing.T) {
	wrapped := errors.Join(errors.New("context"), &AgentNotFoundError{AgentName: "planner"})

	var notFound *AgentNotFoundError
	require.ErrorAs(t, wrapped, &notFound)
	assert.Equal(t, "planner", notFound.AgentName)

	var api APIError
	require.ErrorAs(t, wrapped, &api)
	assert.Equal(t, 404, api.HTTPStatus())
}
