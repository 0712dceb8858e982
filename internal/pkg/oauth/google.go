package oauth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const userInfoEndpoint = "https://www.googleapis.com/oauth2/v2/userinfo"

// GoogleService wraps the Google OAuth2 login flow: state generation,
// the consent redirect, and the code-for-profile exchange.
type GoogleService interface {
	// GenerateState builds an opaque state value bound to the caller's
	// user agent.
	GenerateState(userAgent string) string
	// RedirectURL is the Google consent URL carrying the state.
	RedirectURL(state string) string
	// VerifyToken exchanges an authorization code for a token.
	VerifyToken(ctx context.Context, code string) (*oauth2.Token, error)
	// VerifyUser fetches the authenticated user's Google profile.
	VerifyUser(ctx context.Context, token *oauth2.Token) (GoogleInformation, error)
}

// GoogleInformation is the subset of the Google userinfo payload the
// login flow needs.
type GoogleInformation struct {
	GoogleID      string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
}

type googleService struct {
	config *oauth2.Config
}

func NewGoogleService(clientID string, clientSecret string, redirectURL string, scopes []string) GoogleService {
	return &googleService{config: &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURL,
		Scopes:       scopes,
		Endpoint:     google.Endpoint,
	}}
}

func (g *googleService) GenerateState(userAgent string) string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return ""
	}
	state := fmt.Sprintf("%s.%s", base64.URLEncoding.EncodeToString(b), userAgent)
	return base64.URLEncoding.EncodeToString([]byte(state))
}

func (g *googleService) RedirectURL(state string) string {
	return g.config.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

func (g *googleService) VerifyToken(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := g.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
	}
	return token, nil
}

func (g *googleService) VerifyUser(ctx context.Context, token *oauth2.Token) (GoogleInformation, error) {
	client := g.config.Client(ctx, token)

	resp, err := client.Get(userInfoEndpoint)
	if err != nil {
		return GoogleInformation{}, fmt.Errorf("failed to fetch user info: %w", err)
	}
	defer resp.Body.Close()

	var info GoogleInformation
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return GoogleInformation{}, fmt.Errorf("failed to decode user info: %w", err)
	}
	return info, nil
}
