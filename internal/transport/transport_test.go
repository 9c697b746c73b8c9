package transport

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metadata-ai/metadata-ai-go/pkg/apierr"
)

type staticAuth struct{}

func (staticAuth) Headers() map[string]string {
	return map[string]string{"Authorization": "Bearer test-token"}
}

// noSleep records requested delays without waiting.
func noSleep(delays *[]time.Duration) SleepFunc {
	return func(ctx context.Context, d time.Duration) error {
		*delays = append(*delays, d)
		return nil
	}
}

func newTestClient(t *testing.T, serverURL string, maxRetries int, delays *[]time.Duration) *Client {
	t.Helper()
	c := New(Options{
		BaseURL:    serverURL,
		Auth:       staticAuth{},
		MaxRetries: maxRetries,
		RetryDelay: time.Second,
		Sleep:      noSleep(delays),
	})
	t.Cleanup(c.Close)
	return c
}

func TestGetDecodesResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		w.Write([]byte(`{"name": "planner"}`))
	}))
	defer server.Close()

	var delays []time.Duration
	c := newTestClient(t, server.URL, 0, &delays)

	var out struct {
		Name string `json:"name"`
	}
	require.NoError(t, c.Get(context.Background(), "/agents", nil, &out))
	assert.Equal(t, "planner", out.Name)
}

func TestRetryTransientThenSucceed(t *testing.T) {
	var requestIDs []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestIDs = append(requestIDs, r.Header.Get("X-Request-ID"))
		if len(requestIDs) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"ok": true}`))
	}))
	defer server.Close()

	var delays []time.Duration
	c := newTestClient(t, server.URL, 3, &delays)

	var out map[string]bool
	require.NoError(t, c.Get(context.Background(), "/", nil, &out))

	// Two attempts, one correlation ID.
	require.Len(t, requestIDs, 2)
	assert.Equal(t, requestIDs[0], requestIDs[1])
	assert.Len(t, requestIDs[0], 8)
	assert.Equal(t, []time.Duration{time.Second}, delays)
}

func TestRetryExhaustionReturnsServerMessage(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message": "database unavailable"}`))
	}))
	defer server.Close()

	var delays []time.Duration
	c := newTestClient(t, server.URL, 2, &delays)

	err := c.Get(context.Background(), "/", nil, nil)
	require.Error(t, err)

	var execErr *apierr.AgentExecutionError
	require.ErrorAs(t, err, &execErr)
	assert.Equal(t, "API error (500): database unavailable", execErr.Message)
	assert.Equal(t, 500, execErr.HTTPStatus())

	// maxRetries=2 means 3 attempts total with an exponential schedule.
	assert.Equal(t, 3, attempts)
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second}, delays)
}

func TestNoRetryOnTerminalStatus(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	var delays []time.Duration
	c := newTestClient(t, server.URL, 3, &delays)

	err := c.Get(context.Background(), "/", nil, nil)
	var authErr *apierr.AuthenticationError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, 1, attempts)
	assert.Empty(t, delays)
}

func TestRetryAfterHeaderHonored(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.Header().Set("Retry-After", "5")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	var delays []time.Duration
	c := newTestClient(t, server.URL, 3, &delays)

	require.NoError(t, c.Get(context.Background(), "/", nil, nil))
	assert.Equal(t, []time.Duration{5 * time.Second}, delays)
}

func TestRateLimitExhaustion(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "7")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	var delays []time.Duration
	c := newTestClient(t, server.URL, 1, &delays)

	err := c.Get(context.Background(), "/", nil, nil)
	var rlErr *apierr.RateLimitError
	require.ErrorAs(t, err, &rlErr)
	assert.Equal(t, 7, rlErr.RetryAfter)
}

func TestEntityContextSelectsErrorKind(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	var delays []time.Duration
	c := newTestClient(t, server.URL, 0, &delays)
	ctx := context.Background()

	var agentErr *apierr.AgentNotFoundError
	require.ErrorAs(t, c.Get(ctx, "/", nil, nil, WithEntity(EntityAgent, "planner")), &agentErr)
	assert.Equal(t, "planner", agentErr.AgentName)

	var botErr *apierr.BotNotFoundError
	require.ErrorAs(t, c.Get(ctx, "/", nil, nil, WithEntity(EntityBot, "ingest-bot")), &botErr)

	var personaErr *apierr.PersonaNotFoundError
	require.ErrorAs(t, c.Get(ctx, "/", nil, nil, WithEntity(EntityPersona, "analyst")), &personaErr)

	var abilityErr *apierr.AbilityNotFoundError
	require.ErrorAs(t, c.Get(ctx, "/", nil, nil, WithEntity(EntityAbility, "lineage")), &abilityErr)

	// Without entity context the generic kind applies.
	var genErr *apierr.Error
	require.ErrorAs(t, c.Get(ctx, "/", nil, nil), &genErr)
	assert.Equal(t, 404, genErr.HTTPStatus())
}

func TestForbiddenAgentMapsToNotEnabled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	var delays []time.Duration
	c := newTestClient(t, server.URL, 0, &delays)

	var notEnabled *apierr.AgentNotEnabledError
	require.ErrorAs(t, c.Get(context.Background(), "/", nil, nil, WithEntity(EntityAgent, "planner")), &notEnabled)
	assert.Equal(t, "planner", notEnabled.AgentName)

	var genErr *apierr.Error
	require.ErrorAs(t, c.Get(context.Background(), "/", nil, nil), &genErr)
	assert.Equal(t, 403, genErr.HTTPStatus())
}

func TestPostSendsBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"message": "hello"}`, string(body))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.Write([]byte(`{"response": "hi"}`))
	}))
	defer server.Close()

	var delays []time.Duration
	c := newTestClient(t, server.URL, 0, &delays)

	var out struct {
		Response string `json:"response"`
	}
	require.NoError(t, c.Post(context.Background(), "/invoke", map[string]string{"message": "hello"}, &out))
	assert.Equal(t, "hi", out.Response)
}

func TestPostStreamNeverRetries(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		assert.Equal(t, "text/event-stream", r.Header.Get("Accept"))
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("boom"))
	}))
	defer server.Close()

	var delays []time.Duration
	c := newTestClient(t, server.URL, 3, &delays)

	_, err := c.PostStream(context.Background(), "/stream", map[string]string{"message": "hi"})
	var execErr *apierr.AgentExecutionError
	require.ErrorAs(t, err, &execErr)
	assert.Equal(t, 1, attempts)
	assert.Empty(t, delays)
}

func TestPostStreamReturnsBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		w.Write([]byte("event: message\ndata: hi\n\n"))
	}))
	defer server.Close()

	var delays []time.Duration
	c := newTestClient(t, server.URL, 0, &delays)

	body, err := c.PostStream(context.Background(), "/stream", nil)
	require.NoError(t, err)
	defer body.Close()

	data, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Equal(t, "event: message\ndata: hi\n\n", string(data))
}

func TestSleepContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := sleepContext(ctx, time.Minute)
	assert.ErrorIs(t, err, context.Canceled)
}
