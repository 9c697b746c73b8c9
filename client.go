// Package metadataai is a client SDK for invoking AI agents hosted on a
// metadata service over HTTP and Server-Sent Events.
//
// Typical usage:
//
//	client, err := metadataai.New("https://metadata.example.com", token)
//	if err != nil { ... }
//	defer client.Close()
//
//	agent := client.Agent("DataQualityPlannerAgent")
//	resp, err := agent.Call(ctx, "Analyze the customers table")
//
//	stream, err := agent.Stream(ctx, "Analyze the customers table")
//	defer stream.Close()
//	for stream.Next() {
//		if ev := stream.Event(); ev.Type == types.EventContent {
//			fmt.Print(ev.Content)
//		}
//	}
package metadataai

import (
	"context"
	"crypto/tls"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/metadata-ai/metadata-ai-go/internal/logging"
	"github.com/metadata-ai/metadata-ai-go/internal/transport"
	"github.com/metadata-ai/metadata-ai-go/mcp"
	"github.com/metadata-ai/metadata-ai-go/pkg/types"
)

// API base paths for the resource families the client talks to.
const (
	agentsPath    = "/api/v1/agents/dynamic"
	personasPath  = "/api/v1/agents/personas"
	botsPath      = "/api/v1/bots"
	abilitiesPath = "/api/v1/agents/abilities"
)

const defaultPageSize = 100

// Client is the main entry point of the SDK. It is safe for concurrent use.
type Client struct {
	host   string
	auth   *TokenAuth
	logger zerolog.Logger

	agents    *transport.Client
	personas  *transport.Client
	bots      *transport.Client
	abilities *transport.Client
	root      *transport.Client

	mcpOnce   sync.Once
	mcpClient *mcp.Client
}

// Option customizes a Client.
type Option func(*clientOptions)

type clientOptions struct {
	timeout            time.Duration
	maxRetries         int
	retryDelay         time.Duration
	userAgent          string
	logger             *zerolog.Logger
	httpClient         *http.Client
	insecureSkipVerify bool
}

// WithTimeout sets the per-attempt request timeout (default 120s). The
// timeout applies per attempt, not across retries.
func WithTimeout(d time.Duration) Option {
	return func(o *clientOptions) { o.timeout = d }
}

// WithMaxRetries sets the number of retries for transient errors
// (default 3). Zero disables retrying.
func WithMaxRetries(n int) Option {
	return func(o *clientOptions) { o.maxRetries = n }
}

// WithRetryDelay sets the base delay for exponential backoff (default 1s).
func WithRetryDelay(d time.Duration) Option {
	return func(o *clientOptions) { o.retryDelay = d }
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(o *clientOptions) { o.userAgent = ua }
}

// WithLogger attaches a logger for debug output. The SDK logs nothing
// without one.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *clientOptions) { o.logger = &logger }
}

// WithHTTPClient replaces the underlying HTTP client, e.g. for custom
// transports or proxies.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *clientOptions) { o.httpClient = hc }
}

// WithInsecureSkipVerify disables TLS certificate verification. For
// development environments only.
func WithInsecureSkipVerify() Option {
	return func(o *clientOptions) { o.insecureSkipVerify = true }
}

// New creates a Client for the given server URL and bot token.
func New(host, token string, opts ...Option) (*Client, error) {
	if host == "" {
		return nil, errors.New("host cannot be empty")
	}
	auth, err := NewTokenAuth(token)
	if err != nil {
		return nil, err
	}

	o := clientOptions{maxRetries: -1}
	for _, opt := range opts {
		opt(&o)
	}

	host = strings.TrimSuffix(host, "/")

	logger := zerolog.Nop()
	if o.logger != nil {
		logger = *o.logger
	}

	httpClient := o.httpClient
	if httpClient == nil {
		timeout := o.timeout
		if timeout <= 0 {
			timeout = transport.DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
		if o.insecureSkipVerify {
			httpClient.Transport = &http.Transport{
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
			}
		}
	}

	// All resource clients share one pooled HTTP client.
	newTransport := func(base string) *transport.Client {
		return transport.New(transport.Options{
			BaseURL:    host + base,
			Auth:       auth,
			Timeout:    o.timeout,
			MaxRetries: o.maxRetries,
			RetryDelay: o.retryDelay,
			UserAgent:  o.userAgent,
			Logger:     &logger,
			HTTPClient: httpClient,
		})
	}

	return &Client{
		host:      host,
		auth:      auth,
		logger:    logger,
		agents:    newTransport(agentsPath),
		personas:  newTransport(personasPath),
		bots:      newTransport(botsPath),
		abilities: newTransport(abilitiesPath),
		root:      newTransport(""),
	}, nil
}

// FromConfig creates a Client from a Config, typically loaded with FromEnv.
func FromConfig(cfg *Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	opts := []Option{
		WithTimeout(cfg.Timeout),
		WithMaxRetries(cfg.MaxRetries),
		WithRetryDelay(cfg.RetryDelay),
	}
	if cfg.UserAgent != "" {
		opts = append(opts, WithUserAgent(cfg.UserAgent))
	}
	if !cfg.VerifySSL {
		opts = append(opts, WithInsecureSkipVerify())
	}
	if cfg.LogLevel != "" {
		opts = append(opts, WithLogger(logging.New(logging.Config{
			Level: logging.ParseLevel(cfg.LogLevel),
		})))
	}
	return New(cfg.Host, cfg.Token, opts...)
}

// Host returns the configured server URL.
func (c *Client) Host() string { return c.host }

// Agent returns a handle for invoking the named agent.
func (c *Client) Agent(name string) *AgentHandle {
	return &AgentHandle{name: name, http: c.agents, logger: c.logger}
}

// MCP returns the client for the service's MCP tool endpoint.
func (c *Client) MCP() *mcp.Client {
	c.mcpOnce.Do(func() {
		c.mcpClient = mcp.NewClient(c.root)
	})
	return c.mcpClient
}

// Close releases pooled connections. Idempotent.
func (c *Client) Close() {
	c.agents.Close()
	c.personas.Close()
	c.bots.Close()
	c.abilities.Close()
	c.root.Close()
}

// listEnvelope is the paging envelope returned by list endpoints.
type listEnvelope[T any] struct {
	Data   []T          `json:"data"`
	Paging types.Paging `json:"paging"`
}

// paginate walks a list endpoint's cursor until exhaustion or limit.
// limit <= 0 means all results.
func paginate[T any](ctx context.Context, tc *transport.Client, path string, limit int, extra url.Values) ([]T, error) {
	var results []T
	after := ""
	for {
		params := url.Values{}
		for k, vs := range extra {
			for _, v := range vs {
				params.Add(k, v)
			}
		}
		params.Set("limit", strconv.Itoa(defaultPageSize))
		if after != "" {
			params.Set("after", after)
		}

		var page listEnvelope[T]
		if err := tc.Get(ctx, path, params, &page); err != nil {
			return nil, err
		}
		results = append(results, page.Data...)

		if limit > 0 && len(results) >= limit {
			return results[:limit], nil
		}
		after = page.Paging.After
		if after == "" {
			return results, nil
		}
	}
}

// ListAgents lists all API-enabled agents, paginating automatically.
// limit <= 0 returns all agents.
func (c *Client) ListAgents(ctx context.Context, limit int) ([]types.AgentInfo, error) {
	extra := url.Values{"apiEnabled": {"true"}}
	return paginate[types.AgentInfo](ctx, c.agents, "/", limit, extra)
}

// GetAgent fetches an agent by name.
func (c *Client) GetAgent(ctx context.Context, name string) (*types.AgentInfo, error) {
	var out types.AgentInfo
	err := c.agents.Get(ctx, "/name/"+url.PathEscape(name), nil, &out, transport.WithEntity(transport.EntityAgent, name))
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// createAgentPayload is the wire form of CreateAgentRequest with persona
// and ability names resolved to entity references.
type createAgentPayload struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Persona     types.EntityReference  `json:"persona"`
	Mode        string                 `json:"mode"`
	DisplayName string                 `json:"displayName,omitempty"`
	Icon        string                 `json:"icon,omitempty"`
	BotName     string                 `json:"botName,omitempty"`
	Abilities   []types.EntityReference `json:"abilities,omitempty"`
	Knowledge   *types.KnowledgeScope  `json:"knowledge,omitempty"`
	Prompt      string                 `json:"prompt,omitempty"`
	Schedule    string                 `json:"schedule,omitempty"`
	APIEnabled  bool                   `json:"apiEnabled"`
	Provider    string                 `json:"provider"`
}

// CreateAgent creates a dynamic agent. The request's persona and ability
// names are resolved to entity references first.
func (c *Client) CreateAgent(ctx context.Context, req types.CreateAgentRequest) (*types.AgentInfo, error) {
	persona, err := c.GetPersona(ctx, req.Persona)
	if err != nil {
		return nil, err
	}

	provider := req.Provider
	if provider == "" {
		provider = "user"
	}
	payload := createAgentPayload{
		Name:        req.Name,
		Description: req.Description,
		Persona:     types.EntityReference{ID: persona.ID, Type: "persona"},
		Mode:        req.Mode,
		DisplayName: req.DisplayName,
		Icon:        req.Icon,
		BotName:     req.BotName,
		Knowledge:   req.Knowledge,
		Prompt:      req.Prompt,
		Schedule:    req.Schedule,
		APIEnabled:  req.APIEnabled,
		Provider:    provider,
	}
	for _, name := range req.Abilities {
		ability, err := c.GetAbility(ctx, name)
		if err != nil {
			return nil, err
		}
		payload.Abilities = append(payload.Abilities, types.EntityReference{ID: ability.ID, Type: "ability"})
	}

	var out types.AgentInfo
	if err := c.agents.Post(ctx, "/", payload, &out, transport.WithEntity(transport.EntityAgent, req.Name)); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListBots lists all bots, paginating automatically. limit <= 0 returns
// all bots.
func (c *Client) ListBots(ctx context.Context, limit int) ([]types.BotInfo, error) {
	return paginate[types.BotInfo](ctx, c.bots, "/", limit, nil)
}

// GetBot fetches a bot by name.
func (c *Client) GetBot(ctx context.Context, name string) (*types.BotInfo, error) {
	var out types.BotInfo
	err := c.bots.Get(ctx, "/name/"+url.PathEscape(name), nil, &out, transport.WithEntity(transport.EntityBot, name))
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ListPersonas lists all personas, paginating automatically. limit <= 0
// returns all personas.
func (c *Client) ListPersonas(ctx context.Context, limit int) ([]types.PersonaInfo, error) {
	return paginate[types.PersonaInfo](ctx, c.personas, "/", limit, nil)
}

// GetPersona fetches a persona by name.
func (c *Client) GetPersona(ctx context.Context, name string) (*types.PersonaInfo, error) {
	var out types.PersonaInfo
	err := c.personas.Get(ctx, "/name/"+url.PathEscape(name), nil, &out, transport.WithEntity(transport.EntityPersona, name))
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// CreatePersona creates a persona.
func (c *Client) CreatePersona(ctx context.Context, req types.CreatePersonaRequest) (*types.PersonaInfo, error) {
	if req.Provider == "" {
		req.Provider = "user"
	}
	var out types.PersonaInfo
	if err := c.personas.Post(ctx, "/", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListAbilities lists all abilities, paginating automatically. limit <= 0
// returns all abilities.
func (c *Client) ListAbilities(ctx context.Context, limit int) ([]types.AbilityInfo, error) {
	return paginate[types.AbilityInfo](ctx, c.abilities, "/", limit, nil)
}

// GetAbility fetches an ability by name.
func (c *Client) GetAbility(ctx context.Context, name string) (*types.AbilityInfo, error) {
	var out types.AbilityInfo
	err := c.abilities.Get(ctx, "/name/"+url.PathEscape(name), nil, &out, transport.WithEntity(transport.EntityAbility, name))
	if err != nil {
		return nil, err
	}
	return &out, nil
}
