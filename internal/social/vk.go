package social

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const (
	vkAuthURL  = "https://oauth.vk.com/authorize"
	vkTokenURL = "https://oauth.vk.com/access_token"
	vkUsersURL = "https://api.vk.com/method/users.get"
	vkAPIVer   = "5.131"
)

// VK implements IdentityProvider against VK OAuth.  VK returns the
// account email together with the access token rather than from the
// users endpoint.
type VK struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	HTTP         *http.Client
}

func NewVK(clientID, clientSecret, redirectURL string) *VK {
	return &VK{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURL,
		HTTP:         &http.Client{Timeout: 10 * time.Second},
	}
}

func (v *VK) Name() string { return "vk" }

func (v *VK) AuthorizeURL(state string) string {
	q := url.Values{}
	q.Set("client_id", v.ClientID)
	q.Set("redirect_uri", v.RedirectURL)
	q.Set("response_type", "code")
	q.Set("scope", "email")
	q.Set("v", vkAPIVer)
	q.Set("state", state)
	return vkAuthURL + "?" + q.Encode()
}

func (v *VK) Fetch(ctx context.Context, code string) (ExternalIdentity, error) {
	q := url.Values{}
	q.Set("client_id", v.ClientID)
	q.Set("client_secret", v.ClientSecret)
	q.Set("redirect_uri", v.RedirectURL)
	q.Set("code", code)

	var tokens struct {
		AccessToken string `json:"access_token"`
		UserID      int64  `json:"user_id"`
		Email       string `json:"email"`
	}
	if err := getJSON(ctx, v.HTTP, vkTokenURL+"?"+q.Encode(), &tokens); err != nil {
		return ExternalIdentity{}, fmt.Errorf("vk token exchange: %w", err)
	}

	var users struct {
		Response []struct {
			ScreenName string `json:"screen_name"`
			FirstName  string `json:"first_name"`
		} `json:"response"`
	}
	infoURL := vkUsersURL + "?fields=screen_name&v=" + vkAPIVer + "&access_token=" + url.QueryEscape(tokens.AccessToken)
	if err := getJSON(ctx, v.HTTP, infoURL, &users); err != nil {
		return ExternalIdentity{}, fmt.Errorf("vk users.get: %w", err)
	}

	username := ""
	if len(users.Response) > 0 {
		username = users.Response[0].ScreenName
		if username == "" {
			username = users.Response[0].FirstName
		}
	}
	return ExternalIdentity{
		Provider: v.Name(),
		SocialID: strconv.FormatInt(tokens.UserID, 10),
		Username: username,
		Email:    tokens.Email,
	}, nil
}
