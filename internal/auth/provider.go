package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/oauth2"
)

// ProviderConfig contains the OAuth2 client credentials.
type ProviderConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

// Profile is the identity reported by the provider's profile endpoint.
type Profile struct {
	Username string `json:"username"`
	Blocked  bool   `json:"blocked"`
}

// Provider drives the authorization-code handshake against the external
// identity provider: authorize redirect, code exchange, profile fetch.
// There is no retry logic anywhere; a failed exchange is surfaced as-is.
type Provider struct {
	config     *oauth2.Config
	profileURL string
}

// NewProvider creates a provider whose endpoints are derived from the
// provider base URL.
func NewProvider(cfg ProviderConfig, baseURL string) *Provider {
	return &Provider{
		profileURL: fmt.Sprintf("%s/oauth2/resource/profile", baseURL),
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Endpoint: oauth2.Endpoint{
				AuthURL:  fmt.Sprintf("%s/oauth2/authorize", baseURL),
				TokenURL: fmt.Sprintf("%s/oauth2/access_token", baseURL),
				// the provider expects client credentials in the form body
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
	}
}

// AuthCodeURL returns the provider's authorize URL carrying the anti-forgery
// state parameter.
func (p *Provider) AuthCodeURL(state string) string {
	return p.config.AuthCodeURL(state)
}

// Exchange trades the authorization code for access and refresh tokens via a
// form-encoded server-to-server POST.
func (p *Provider) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	return p.config.Exchange(ctx, code)
}

// Profile fetches the identity behind the access token, using it as a bearer
// credential.
func (p *Provider) Profile(ctx context.Context, token *oauth2.Token) (*Profile, error) {
	client := p.config.Client(ctx, token)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.profileURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("profile endpoint error: %s - %s", resp.Status, string(body))
	}

	var profile Profile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("failed to decode profile: %w", err)
	}
	return &profile, nil
}
