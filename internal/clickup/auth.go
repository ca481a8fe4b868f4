package clickup

import (
	"context"
	"fmt"
	"net/url"

	"golang.org/x/oauth2"
)

// authorizeBaseURL is where users grant an OAuth app access to a workspace.
const authorizeBaseURL = "https://app.clickup.com/api"

// oauthConfig builds the oauth2 configuration for the provider's
// authorization-code flow. apiBaseURL hosts the token endpoint.
func oauthConfig(clientID, clientSecret, apiBaseURL string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint: oauth2.Endpoint{
			AuthURL:   authorizeBaseURL,
			TokenURL:  apiBaseURL + "/oauth/token",
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}
}

// AuthorizeURL returns the browser URL at which the user grants the OAuth
// app access and receives the authorization code.
func AuthorizeURL(clientID, redirectURI string) string {
	q := url.Values{"client_id": {clientID}}
	if redirectURI != "" {
		q.Set("redirect_uri", redirectURI)
	}
	return authorizeBaseURL + "?" + q.Encode()
}

// ExchangeCode swaps an authorization code for an access token. The returned
// token is used verbatim as the Authorization header value, same as a
// personal API token.
func ExchangeCode(ctx context.Context, clientID, clientSecret, code, apiBaseURL string) (string, error) {
	if apiBaseURL == "" {
		apiBaseURL = DefaultBaseURL
	}
	cfg := oauthConfig(clientID, clientSecret, apiBaseURL)
	tok, err := cfg.Exchange(ctx, code)
	if err != nil {
		return "", fmt.Errorf("exchanging authorization code: %w", err)
	}
	if tok.AccessToken == "" {
		return "", fmt.Errorf("token endpoint returned an empty access token")
	}
	return tok.AccessToken, nil
}
