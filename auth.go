package metadataai

import "errors"

// TokenAuth holds a bearer token and produces the Authorization header for
// every request.
type TokenAuth struct {
	token string
}

// NewTokenAuth creates a TokenAuth. The token must be non-empty.
func NewTokenAuth(token string) (*TokenAuth, error) {
	if token == "" {
		return nil, errors.New("token cannot be empty")
	}
	return &TokenAuth{token: token}, nil
}

// Token returns the raw token.
func (a *TokenAuth) Token() string { return a.token }

// Headers returns the authentication headers for API requests.
func (a *TokenAuth) Headers() map[string]string {
	return map[string]string{
		"Authorization": "Bearer " + a.token,
	}
}
