package facturation

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
)

// authContext routes the oauth2 package's token calls through the client's
// transport without the rate-limit tracker.
func (c *Client) authContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, c.authClient)
}

// AuthCodeURL returns the URL to send the user to for consent. A random
// state is generated when none is given.
func (c *Client) AuthCodeURL(state string) string {
	if state == "" {
		state = uuid.NewString()
	}
	return c.oauth.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

// Exchange trades an authorization code for a token and installs it.
func (c *Client) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	if code == "" {
		return nil, fmt.Errorf("authorization code is required")
	}

	token, err := c.oauth.Exchange(c.authContext(ctx), code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
	}

	c.SetToken(token)
	c.logger.Debug().Time("expiry", token.Expiry).Bool("has_refresh_token", token.RefreshToken != "").
		Msg("Exchanged authorization code")
	return token, nil
}

// RefreshToken obtains a new token from a bare refresh token and installs it.
func (c *Client) RefreshToken(ctx context.Context, refreshToken string) (*oauth2.Token, error) {
	if refreshToken == "" {
		return nil, fmt.Errorf("refresh token is required")
	}

	// An empty access token is never valid, so the source refreshes immediately
	source := c.oauth.TokenSource(c.authContext(ctx), &oauth2.Token{RefreshToken: refreshToken})
	token, err := source.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to refresh token: %w", err)
	}

	c.SetToken(token)
	c.logger.Debug().Time("expiry", token.Expiry).Msg("Refreshed access token")
	return token, nil
}

// SetToken installs a token. It is renewed with its refresh token once it expires.
func (c *Client) SetToken(token *oauth2.Token) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if token == nil {
		c.tokenSource = nil
		return
	}
	c.tokenSource = c.oauth.TokenSource(c.authContext(context.Background()), token)
}

// Token returns the current token, refreshing it first if it has expired.
// Callers that persist tokens should save the result.
func (c *Client) Token() (*oauth2.Token, error) {
	c.mu.RLock()
	source := c.tokenSource
	c.mu.RUnlock()

	if source == nil {
		return nil, ErrNoToken
	}

	token, err := source.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to obtain access token: %w", err)
	}
	return token, nil
}

// accessToken returns the bearer value sent with each API call
func (c *Client) accessToken() (string, error) {
	token, err := c.Token()
	if err != nil {
		return "", err
	}
	if token.AccessToken == "" {
		return "", ErrNoToken
	}
	return token.AccessToken, nil
}
