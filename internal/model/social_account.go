package model

// SocialAccount links a local user to an identity at an external
// provider (Google, Yandex, VK).  The pair (provider, social id) is
// unique; a provider identity maps to at most one local user.
type SocialAccount struct {
	ID       string // social_accounts.id
	UserID   string // social_accounts.user_id
	SocialID string // social_accounts.social_id
	Provider string // social_accounts.social_provider_name
}
