// Package apierr defines the error taxonomy returned by the SDK.
//
// Every non-2xx response is translated into one of the types below so
// callers can branch with errors.As instead of string matching. All types
// are constructible directly, without an HTTP response in hand.
package apierr

import "fmt"

// APIError is implemented by every error kind in this package.
type APIError interface {
	error
	// HTTPStatus returns the HTTP status code associated with the error,
	// or 0 when the error did not originate from an HTTP response.
	HTTPStatus() int
}

// Error is the generic API error. It is the fallback for status codes that
// have no more specific kind.
type Error struct {
	Message    string
	StatusCode int
}

func (e *Error) Error() string { return e.Message }

// HTTPStatus returns the HTTP status code carried by the error.
func (e *Error) HTTPStatus() int { return e.StatusCode }

// AuthenticationError indicates an invalid or expired token.
type AuthenticationError struct {
	Message string
}

func (e *AuthenticationError) Error() string {
	if e.Message == "" {
		return "invalid or expired authentication token"
	}
	return e.Message
}

func (e *AuthenticationError) HTTPStatus() int { return 401 }

// AgentNotFoundError indicates the named agent does not exist.
type AgentNotFoundError struct {
	AgentName string
}

func (e *AgentNotFoundError) Error() string {
	return fmt.Sprintf("agent not found: %s", e.AgentName)
}

func (e *AgentNotFoundError) HTTPStatus() int { return 404 }

// AgentNotEnabledError indicates the agent exists but is not API-enabled.
type AgentNotEnabledError struct {
	AgentName string
}

func (e *AgentNotEnabledError) Error() string {
	return fmt.Sprintf(
		"agent %q is not enabled for API access: set apiEnabled=true on the agent to enable SDK access",
		e.AgentName,
	)
}

func (e *AgentNotEnabledError) HTTPStatus() int { return 403 }

// BotNotFoundError indicates the named bot does not exist.
type BotNotFoundError struct {
	BotName string
}

func (e *BotNotFoundError) Error() string {
	return fmt.Sprintf("bot not found: %s", e.BotName)
}

func (e *BotNotFoundError) HTTPStatus() int { return 404 }

// PersonaNotFoundError indicates the named persona does not exist.
type PersonaNotFoundError struct {
	PersonaName string
}

func (e *PersonaNotFoundError) Error() string {
	return fmt.Sprintf("persona not found: %s", e.PersonaName)
}

func (e *PersonaNotFoundError) HTTPStatus() int { return 404 }

// AbilityNotFoundError indicates the named ability does not exist.
type AbilityNotFoundError struct {
	AbilityName string
}

func (e *AbilityNotFoundError) Error() string {
	return fmt.Sprintf("ability not found: %s", e.AbilityName)
}

func (e *AbilityNotFoundError) HTTPStatus() int { return 404 }

// RateLimitError indicates the server rejected the request with 429 after
// the client exhausted its retries. RetryAfter carries the server's hint in
// seconds; 0 means the server sent none.
type RateLimitError struct {
	Message    string
	RetryAfter int
}

func (e *RateLimitError) Error() string {
	if e.Message == "" {
		return "rate limit exceeded"
	}
	return e.Message
}

func (e *RateLimitError) HTTPStatus() int { return 429 }

// AgentExecutionError indicates the remote service failed while executing a
// request. AgentName is set when the failing call had agent context.
type AgentExecutionError struct {
	Message    string
	AgentName  string
	StatusCode int
}

func (e *AgentExecutionError) Error() string { return e.Message }

func (e *AgentExecutionError) HTTPStatus() int {
	if e.StatusCode == 0 {
		return 500
	}
	return e.StatusCode
}

// MCPError indicates a failed MCP request (transport- or protocol-level).
type MCPError struct {
	Message    string
	StatusCode int
}

func (e *MCPError) Error() string { return e.Message }

func (e *MCPError) HTTPStatus() int { return e.StatusCode }

// MCPToolExecutionError indicates a single MCP tool call failed.
type MCPToolExecutionError struct {
	Tool    string
	Message string
}

func (e *MCPToolExecutionError) Error() string {
	return fmt.Sprintf("tool %q failed: %s", e.Tool, e.Message)
}

func (e *MCPToolExecutionError) HTTPStatus() int { return 0 }
