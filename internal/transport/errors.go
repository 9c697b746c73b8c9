package transport

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"

	"github.com/metadata-ai/metadata-ai-go/pkg/apierr"
)

// mapError translates a terminal error response into the apierr taxonomy.
// Entity context, when present, selects the entity-specific kinds on
// 403/404 responses.
func mapError(status int, header http.Header, body []byte, ro requestOptions, logger zerolog.Logger) error {
	switch {
	case status == http.StatusUnauthorized:
		logger.Warn().Msg("authentication failed")
		return &apierr.AuthenticationError{}

	case status == http.StatusForbidden:
		if ro.entityKind == EntityAgent && ro.entityName != "" {
			logger.Warn().Str("agent", ro.entityName).Msg("agent not enabled")
			return &apierr.AgentNotEnabledError{AgentName: ro.entityName}
		}
		return &apierr.Error{Message: "access forbidden", StatusCode: status}

	case status == http.StatusNotFound:
		if ro.entityName != "" {
			logger.Warn().Str(string(ro.entityKind), ro.entityName).Msg("entity not found")
			switch ro.entityKind {
			case EntityAgent:
				return &apierr.AgentNotFoundError{AgentName: ro.entityName}
			case EntityBot:
				return &apierr.BotNotFoundError{BotName: ro.entityName}
			case EntityPersona:
				return &apierr.PersonaNotFoundError{PersonaName: ro.entityName}
			case EntityAbility:
				return &apierr.AbilityNotFoundError{AbilityName: ro.entityName}
			}
		}
		return &apierr.Error{Message: "resource not found", StatusCode: status}

	case status == http.StatusTooManyRequests:
		retryAfter := 0
		if ra := header.Get("Retry-After"); ra != "" {
			if secs, err := strconv.Atoi(ra); err == nil {
				retryAfter = secs
			}
		}
		logger.Warn().Int("retryAfter", retryAfter).Msg("rate limit exceeded")
		return &apierr.RateLimitError{Message: "rate limit exceeded", RetryAfter: retryAfter}

	default:
		message := string(body)
		if strings.Contains(header.Get("Content-Type"), "application/json") {
			if m := gjson.GetBytes(body, "message"); m.Exists() {
				message = m.String()
			}
		}
		logger.Error().Int("status", status).Str("message", truncate(message, 200)).Msg("api error")
		agentName := ""
		if ro.entityKind == EntityAgent {
			agentName = ro.entityName
		}
		return &apierr.AgentExecutionError{
			Message:    fmt.Sprintf("API error (%d): %s", status, message),
			AgentName:  agentName,
			StatusCode: status,
		}
	}
}
