// Package auth fetches OAuth2 access tokens and stores them as environment
// variables, so built commands can reference {{token}} or {{token_header}}
// instead of pasting credentials.
package auth

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/blackcoderx/kurl/pkg/command"
)

// TokenRequest describes one token fetch.
// Supported flows:
//   - client_credentials: server-to-server authentication with client id and secret
//   - password: Resource Owner Password Credentials
type TokenRequest struct {
	Flow         string
	TokenURL     string
	ClientID     string
	ClientSecret string
	Scopes       []string
	Username     string
	Password     string
	// SaveAs names the environment variable the access token is stored
	// under; "<SaveAs>_header" receives the ready-made Bearer value.
	SaveAs string
}

func (r TokenRequest) validate() error {
	if r.TokenURL == "" {
		return fmt.Errorf("token URL is required")
	}
	if r.ClientID == "" {
		return fmt.Errorf("client id is required")
	}
	if r.ClientSecret == "" {
		return fmt.Errorf("client secret is required")
	}
	if r.Flow == "password" {
		if r.Username == "" {
			return fmt.Errorf("username is required for password flow")
		}
		if r.Password == "" {
			return fmt.Errorf("password is required for password flow")
		}
	}
	return nil
}

// FetchToken runs the requested flow against the token endpoint.
func FetchToken(ctx context.Context, req TokenRequest) (*oauth2.Token, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	switch req.Flow {
	case "client_credentials":
		cfg := clientcredentials.Config{
			ClientID:     req.ClientID,
			ClientSecret: req.ClientSecret,
			TokenURL:     req.TokenURL,
			Scopes:       req.Scopes,
		}
		token, err := cfg.Token(ctx)
		if err != nil {
			return nil, fmt.Errorf("OAuth2 client_credentials flow failed: %w", err)
		}
		return token, nil
	case "password":
		cfg := oauth2.Config{
			ClientID:     req.ClientID,
			ClientSecret: req.ClientSecret,
			Endpoint:     oauth2.Endpoint{TokenURL: req.TokenURL},
			Scopes:       req.Scopes,
		}
		token, err := cfg.PasswordCredentialsToken(ctx, req.Username, req.Password)
		if err != nil {
			return nil, fmt.Errorf("OAuth2 password flow failed: %w", err)
		}
		return token, nil
	case "authorization_code":
		return nil, fmt.Errorf("authorization_code flow requires a browser and is not supported; use client_credentials or password")
	default:
		return nil, fmt.Errorf("unknown flow %q (supported: client_credentials, password)", req.Flow)
	}
}

// StoreToken writes the access token into env under name, plus a companion
// "<name>_header" variable holding the Bearer form. Both are marked secret.
func StoreToken(env *command.Environment, name string, token *oauth2.Token) {
	env.SetVariable(name, token.AccessToken, true)
	env.SetVariable(name+"_header", "Bearer "+token.AccessToken, true)
}
