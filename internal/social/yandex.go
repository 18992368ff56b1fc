package social

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const (
	yandexAuthURL     = "https://oauth.yandex.ru/authorize"
	yandexTokenURL    = "https://oauth.yandex.ru/token"
	yandexUserInfoURL = "https://login.yandex.ru/info"
)

// Yandex implements IdentityProvider against Yandex OAuth.
type Yandex struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	HTTP         *http.Client
}

func NewYandex(clientID, clientSecret, redirectURL string) *Yandex {
	return &Yandex{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURL,
		HTTP:         &http.Client{Timeout: 10 * time.Second},
	}
}

func (y *Yandex) Name() string { return "yandex" }

func (y *Yandex) AuthorizeURL(state string) string {
	q := url.Values{}
	q.Set("client_id", y.ClientID)
	q.Set("redirect_uri", y.RedirectURL)
	q.Set("response_type", "code")
	q.Set("scope", "login:email login:info")
	q.Set("state", state)
	return yandexAuthURL + "?" + q.Encode()
}

func (y *Yandex) Fetch(ctx context.Context, code string) (ExternalIdentity, error) {
	form := url.Values{}
	form.Set("client_id", y.ClientID)
	form.Set("client_secret", y.ClientSecret)
	form.Set("grant_type", "authorization_code")
	form.Set("code", code)

	var tokens struct {
		AccessToken string `json:"access_token"`
	}
	if err := postForm(ctx, y.HTTP, yandexTokenURL, form, &tokens); err != nil {
		return ExternalIdentity{}, fmt.Errorf("yandex token exchange: %w", err)
	}

	var info struct {
		ID    string `json:"id"`
		Login string `json:"login"`
		Email string `json:"default_email"`
	}
	if err := getJSON(ctx, y.HTTP, yandexUserInfoURL+"?format=json&oauth_token="+url.QueryEscape(tokens.AccessToken), &info); err != nil {
		return ExternalIdentity{}, fmt.Errorf("yandex userinfo: %w", err)
	}
	return ExternalIdentity{
		Provider: y.Name(),
		SocialID: info.ID,
		Username: info.Login,
		Email:    info.Email,
	}, nil
}
