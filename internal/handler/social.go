package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/samoilovartem/movies-auth/internal/service"
	"github.com/samoilovartem/movies-auth/internal/social"
)

// SocialHandler exposes federated login.  The providers only build
// redirect URLs and exchange callback codes; account creation and token
// issuance go through the session engine like any other login.
type SocialHandler struct {
	Providers *social.Registry
	Sessions  *service.SessionService
}

func NewSocialHandler(p *social.Registry, s *service.SessionService) *SocialHandler {
	return &SocialHandler{Providers: p, Sessions: s}
}

// Providers lists the configured provider names.
func (h *SocialHandler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"providers": h.Providers.Names()})
}

// Login redirects the client to the provider's consent screen.
func (h *SocialHandler) Login(c echo.Context) error {
	p, ok := h.Providers.Get(c.Param("provider"))
	if !ok {
		return fail(c, service.ErrProviderNotFound)
	}
	return c.Redirect(http.StatusTemporaryRedirect, p.AuthorizeURL(c.QueryParam("state")))
}

// Callback handles the provider redirect: exchange the code, normalize
// the identity, and run the social login flow.
func (h *SocialHandler) Callback(c echo.Context) error {
	p, ok := h.Providers.Get(c.Param("provider"))
	if !ok {
		return fail(c, service.ErrProviderNotFound)
	}
	code := c.QueryParam("code")
	if code == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "code required"})
	}

	identity, err := p.Fetch(c.Request().Context(), code)
	if err != nil {
		return fail(c, err)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	pair, err := h.Sessions.LoginSocial(ctx, identity, clientInfo(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, pair)
}
