package metadataai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/metadata-ai/metadata-ai-go/pkg/apierr"
	"github.com/metadata-ai/metadata-ai-go/pkg/types"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := New(server.URL, "test-token", WithMaxRetries(0))
	require.NoError(t, err)
	t.Cleanup(client.Close)
	return client
}

func TestNewValidatesInput(t *testing.T) {
	_, err := New("", "token")
	assert.Error(t, err)

	_, err = New("https://metadata.example.com", "")
	assert.Error(t, err)

	client, err := New("https://metadata.example.com/", "token")
	require.NoError(t, err)
	defer client.Close()
	assert.Equal(t, "https://metadata.example.com", client.Host())
}

func TestListAgentsPaginates(t *testing.T) {
	var queries []string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/agents/dynamic/", r.URL.Path)
		queries = append(queries, r.URL.RawQuery)
		assert.Equal(t, "true", r.URL.Query().Get("apiEnabled"))
		assert.Equal(t, "100", r.URL.Query().Get("limit"))

		if r.URL.Query().Get("after") == "" {
			json.NewEncoder(w).Encode(map[string]any{
				"data":   []map[string]any{{"name": "planner"}, {"name": "profiler"}},
				"paging": map[string]any{"after": "cursor-1"},
			})
			return
		}
		assert.Equal(t, "cursor-1", r.URL.Query().Get("after"))
		json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{{"name": "steward"}},
		})
	}))

	agents, err := client.ListAgents(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, agents, 3)
	assert.Equal(t, "planner", agents[0].Name)
	assert.Equal(t, "steward", agents[2].Name)
	assert.Len(t, queries, 2)
}

func TestListAgentsLimitTruncates(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"data":   []map[string]any{{"name": "a"}, {"name": "b"}, {"name": "c"}},
			"paging": map[string]any{"after": "more"},
		})
	}))

	agents, err := client.ListAgents(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, agents, 2)
	assert.Equal(t, "b", agents[1].Name)
}

func TestGetPersonaNotFound(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/agents/personas/name/analyst", r.URL.Path)
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := client.GetPersona(context.Background(), "analyst")
	var notFound *apierr.PersonaNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "analyst", notFound.PersonaName)
}

func TestGetBotEscapesName(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/bots/name/ingest%20bot", r.URL.EscapedPath())
		json.NewEncoder(w).Encode(map[string]any{"id": "b1", "name": "ingest bot"})
	}))

	bot, err := client.GetBot(context.Background(), "ingest bot")
	require.NoError(t, err)
	assert.Equal(t, "b1", bot.ID)
}

func TestCreateAgentResolvesReferences(t *testing.T) {
	var created []byte
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/agents/personas/name/analyst":
			json.NewEncoder(w).Encode(map[string]any{"id": "p1", "name": "analyst"})
		case "/api/v1/agents/abilities/name/lineage":
			json.NewEncoder(w).Encode(map[string]any{"id": "ab1", "name": "lineage"})
		case "/api/v1/agents/dynamic/":
			require.Equal(t, http.MethodPost, r.Method)
			created, _ = io.ReadAll(r.Body)
			json.NewEncoder(w).Encode(map[string]any{"name": "planner", "apiEnabled": true})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))

	agent, err := client.CreateAgent(context.Background(), types.CreateAgentRequest{
		Name:        "planner",
		Description: "plans data quality checks",
		Persona:     "analyst",
		Mode:        "chat",
		Abilities:   []string{"lineage"},
		APIEnabled:  true,
	})
	require.NoError(t, err)
	assert.Equal(t, "planner", agent.Name)

	payload := gjson.ParseBytes(created)
	assert.Equal(t, "p1", payload.Get("persona.id").String())
	assert.Equal(t, "persona", payload.Get("persona.type").String())
	assert.Equal(t, "ab1", payload.Get("abilities.0.id").String())
	assert.Equal(t, "user", payload.Get("provider").String())
	assert.True(t, payload.Get("apiEnabled").Bool())
}

func TestCreateAgentUnknownPersonaFailsFast(t *testing.T) {
	requests := 0
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := client.CreateAgent(context.Background(), types.CreateAgentRequest{
		Name:    "planner",
		Persona: "missing",
	})
	var notFound *apierr.PersonaNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, 1, requests)
}

func TestCreatePersonaDefaultsProvider(t *testing.T) {
	var created []byte
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/agents/personas/", r.URL.Path)
		created, _ = io.ReadAll(r.Body)
		json.NewEncoder(w).Encode(map[string]any{"id": "p1", "name": "analyst"})
	}))

	persona, err := client.CreatePersona(context.Background(), types.CreatePersonaRequest{
		Name:   "analyst",
		Prompt: "You analyze data quality.",
	})
	require.NoError(t, err)
	assert.Equal(t, "p1", persona.ID)
	assert.Equal(t, "user", gjson.ParseBytes(created).Get("provider").String())
}

func TestListAbilities(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/agents/abilities/", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{
				{"id": "ab1", "name": "lineage", "tools": []string{"get_entity_lineage"}},
			},
		})
	}))

	abilities, err := client.ListAbilities(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, abilities, 1)
	assert.Equal(t, []string{"get_entity_lineage"}, abilities[0].Tools)
}
