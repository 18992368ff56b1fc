package social

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	googleAuthURL     = "https://accounts.google.com/o/oauth2/v2/auth"
	googleTokenURL    = "https://accounts.google.com/o/oauth2/token"
	googleUserInfoURL = "https://www.googleapis.com/oauth2/v1/userinfo"
)

// Google implements IdentityProvider against Google OAuth2.
type Google struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	HTTP         *http.Client
}

func NewGoogle(clientID, clientSecret, redirectURL string) *Google {
	return &Google{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURL,
		HTTP:         &http.Client{Timeout: 10 * time.Second},
	}
}

func (g *Google) Name() string { return "google" }

// AuthorizeURL builds the consent-screen redirect for the email and
// profile scopes.
func (g *Google) AuthorizeURL(state string) string {
	q := url.Values{}
	q.Set("client_id", g.ClientID)
	q.Set("redirect_uri", g.RedirectURL)
	q.Set("response_type", "code")
	q.Set("scope", strings.Join([]string{
		"https://www.googleapis.com/auth/userinfo.email",
		"https://www.googleapis.com/auth/userinfo.profile",
	}, " "))
	q.Set("state", state)
	return googleAuthURL + "?" + q.Encode()
}

// Fetch exchanges the callback code for tokens and loads the user info.
func (g *Google) Fetch(ctx context.Context, code string) (ExternalIdentity, error) {
	form := url.Values{}
	form.Set("client_id", g.ClientID)
	form.Set("client_secret", g.ClientSecret)
	form.Set("redirect_uri", g.RedirectURL)
	form.Set("grant_type", "authorization_code")
	form.Set("code", code)

	var tokens struct {
		AccessToken string `json:"access_token"`
	}
	if err := postForm(ctx, g.HTTP, googleTokenURL, form, &tokens); err != nil {
		return ExternalIdentity{}, fmt.Errorf("google token exchange: %w", err)
	}

	var info struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := getJSON(ctx, g.HTTP, googleUserInfoURL+"?access_token="+url.QueryEscape(tokens.AccessToken), &info); err != nil {
		return ExternalIdentity{}, fmt.Errorf("google userinfo: %w", err)
	}
	return ExternalIdentity{
		Provider: g.Name(),
		SocialID: info.ID,
		Username: info.Name,
		Email:    info.Email,
	}, nil
}

// postForm posts a urlencoded form and decodes the JSON response.
func postForm(ctx context.Context, client *http.Client, target string, form url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// getJSON fetches a URL and decodes the JSON response.
func getJSON(ctx context.Context, client *http.Client, target string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
