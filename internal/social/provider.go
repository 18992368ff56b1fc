// Package social defines the identity-provider capability used for
// federated login and the concrete Google, Yandex and VK adapters.
// Providers normalize whatever the third party returns into an
// ExternalIdentity; everything past that point is the session engine's
// ordinary login path.
package social

import "context"

// ExternalIdentity is the normalized record a provider returns for an
// authenticated external user.
type ExternalIdentity struct {
	Provider string
	SocialID string
	Username string
	Email    string
}

// IdentityProvider abstracts a social login backend.  AuthorizeURL
// builds the redirect target for the provider's consent screen; Fetch
// exchanges the callback code for the external identity.
type IdentityProvider interface {
	Name() string
	AuthorizeURL(state string) string
	Fetch(ctx context.Context, code string) (ExternalIdentity, error)
}

// Registry holds the configured providers keyed by lowercase name.  It
// is built once at startup and passed to the handlers explicitly.
type Registry struct {
	providers map[string]IdentityProvider
}

// NewRegistry indexes the given providers by name.
func NewRegistry(providers ...IdentityProvider) *Registry {
	m := make(map[string]IdentityProvider, len(providers))
	for _, p := range providers {
		m[p.Name()] = p
	}
	return &Registry{providers: m}
}

// Get returns the provider with the given name.
func (r *Registry) Get(name string) (IdentityProvider, bool) {
	p, ok := r.providers[name]
	return p, ok
}

// Names lists the registered provider names.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	return names
}
