// Package auth obtains bearer tokens for the care API with an OAuth2
// resource-owner password grant.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2"

	ai "github.com/m-rashid-2024/careagent"
)

// TokenSource yields a bearer token for one API call.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// PasswordSource exchanges username and password for an access token.
//
// By default every call performs a fresh grant. WithReuse keeps the last
// token until it expires.
type PasswordSource struct {
	config   oauth2.Config
	username string
	password string
	client   *http.Client
	reuse    bool
	log      zerolog.Logger

	mu     sync.Mutex
	cached *oauth2.Token
}

// Option configures a PasswordSource.
type Option func(*PasswordSource)

// WithHTTPClient sets the client used for the token request.
func WithHTTPClient(c *http.Client) Option {
	return func(s *PasswordSource) {
		s.client = c
	}
}

// WithReuse keeps a token until it expires instead of fetching one per call.
func WithReuse(reuse bool) Option {
	return func(s *PasswordSource) {
		s.reuse = reuse
	}
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *PasswordSource) {
		s.log = l
	}
}

// NewPasswordSource creates a token source for the given token endpoint.
func NewPasswordSource(tokenURL, clientID, username, password string, opts ...Option) *PasswordSource {
	s := &PasswordSource{
		config: oauth2.Config{
			ClientID: clientID,
			Endpoint: oauth2.Endpoint{
				TokenURL:  tokenURL,
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		username: username,
		password: password,
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Token returns an access token.
func (s *PasswordSource) Token(ctx context.Context) (string, error) {
	if !s.reuse {
		tok, err := s.fetch(ctx)
		if err != nil {
			return "", err
		}
		return tok.AccessToken, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cached.Valid() {
		return s.cached.AccessToken, nil
	}
	tok, err := s.fetch(ctx)
	if err != nil {
		return "", err
	}
	s.cached = tok
	return tok.AccessToken, nil
}

func (s *PasswordSource) fetch(ctx context.Context) (*oauth2.Token, error) {
	if s.client != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, s.client)
	}

	s.log.Debug().Str("endpoint", s.config.Endpoint.TokenURL).Msg("requesting access token")

	tok, err := s.config.PasswordCredentialsToken(ctx, s.username, s.password)
	if err != nil {
		s.log.Error().Err(err).Msg("token request failed")
		return nil, wrapError(err)
	}
	if tok.AccessToken == "" {
		return nil, ai.NewPermanentError("auth: token response without access_token", 0, nil)
	}
	return tok, nil
}

// wrapError categorizes token endpoint failures by status code.
func wrapError(err error) error {
	var re *oauth2.RetrieveError
	if errors.As(err, &re) && re.Response != nil {
		code := re.Response.StatusCode
		return ai.NewStatusError(fmt.Sprintf("auth: token request rejected (%d)", code), code, ai.ParseRetryAfter(re.Response), err)
	}
	return fmt.Errorf("auth: token request: %w", err)
}
