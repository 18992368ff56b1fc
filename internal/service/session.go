package service

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"time"

	"github.com/samoilovartem/movies-auth/internal/model"
	"github.com/samoilovartem/movies-auth/internal/queue"
	"github.com/samoilovartem/movies-auth/internal/repository"
	"github.com/samoilovartem/movies-auth/internal/token"
	"github.com/samoilovartem/movies-auth/internal/utils"
)

// Store interfaces consumed by the session engine.  The concrete
// repositories in internal/repository satisfy them; tests substitute
// in-memory fakes.

type UserStore interface {
	Create(ctx context.Context, username, email, passwordHash string) (model.User, error)
	GetByID(ctx context.Context, id string) (model.User, error)
	GetByUsername(ctx context.Context, username string) (model.User, error)
	FindByUsernameOrEmail(ctx context.Context, username, email string) (model.User, error)
	UpdateCredentials(ctx context.Context, id, username, passwordHash string) error
}

type RefreshTokenStore interface {
	Store(ctx context.Context, userID, tokenValue string, expiresAt time.Time) error
	Rotate(ctx context.Context, userID, oldValue, newValue string, expiresAt time.Time) error
	Consume(ctx context.Context, userID, tokenValue string) error
}

type RoleStore interface {
	Create(ctx context.Context, name, description string) (model.Role, error)
	GetByID(ctx context.Context, id string) (model.Role, error)
	List(ctx context.Context) ([]model.Role, error)
	Update(ctx context.Context, id, name, description string) error
	Delete(ctx context.Context, id string) error
	ListForUser(ctx context.Context, userID string) ([]model.Role, error)
	Assign(ctx context.Context, userID, roleID string) error
	Revoke(ctx context.Context, userID, roleID string) error
}

type AuthHistoryStore interface {
	Insert(ctx context.Context, ev model.AuthHistoryEvent) error
	ListByUser(ctx context.Context, userID string, page, perPage int) ([]model.AuthHistoryEvent, int, error)
}

// AccessRegistry tracks live access tokens.  *token.Registry satisfies it.
type AccessRegistry interface {
	Activate(ctx context.Context, accessToken string) error
	IsActive(ctx context.Context, accessToken string) (bool, error)
	Revoke(ctx context.Context, accessToken string) error
}

// EventPublisher sends an auth event to the message broker.  Publishing
// is best effort and never fails a flow.
type EventPublisher func(ctx context.Context, ev queue.AuthEvent) error

// ClientInfo carries request metadata recorded in the auth history.
type ClientInfo struct {
	Fingerprint string
	Device      string
}

// TokenPair is the result of every successful authentication flow.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// SessionService orchestrates signup, login, refresh, logout and
// modify-credentials.  All durable state lives in the stores; the
// service itself holds only immutable configuration and dependencies.
type SessionService struct {
	Users      UserStore
	Roles      RoleStore
	Tokens     RefreshTokenStore
	History    AuthHistoryStore
	Socials    SocialAccountStore
	Registry   AccessRegistry
	Codec      *token.Codec
	Publish    EventPublisher
	BcryptCost int
	RefreshTTL time.Duration
}

// NewSessionService wires the session engine.  publish may be nil to
// disable broker notifications (tests, local runs without RabbitMQ).
func NewSessionService(users UserStore, roles RoleStore, tokens RefreshTokenStore,
	history AuthHistoryStore, socials SocialAccountStore, registry AccessRegistry,
	codec *token.Codec, publish EventPublisher, bcryptCost, refreshTTLMin int) *SessionService {
	return &SessionService{
		Users:      users,
		Roles:      roles,
		Tokens:     tokens,
		History:    history,
		Socials:    socials,
		Registry:   registry,
		Codec:      codec,
		Publish:    publish,
		BcryptCost: bcryptCost,
		RefreshTTL: time.Duration(refreshTTLMin) * time.Minute,
	}
}

// Register creates a user and returns its first token pair.  Username
// and email uniqueness are verified in a single lookup; when both
// collide the username conflict wins.
func (s *SessionService) Register(ctx context.Context, username, password, email string, client ClientInfo) (TokenPair, error) {
	existing, err := s.Users.FindByUsernameOrEmail(ctx, username, email)
	if err == nil {
		if existing.Username == normalize(username) {
			return TokenPair{}, ErrLoginExists
		}
		return TokenPair{}, ErrEmailExists
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return TokenPair{}, err
	}

	hash, err := utils.HashPassword(password, s.BcryptCost)
	if err != nil {
		return TokenPair{}, err
	}
	user, err := s.Users.Create(ctx, username, email, hash)
	if err != nil {
		// Lost a race against a concurrent signup.
		switch {
		case errors.Is(err, repository.ErrLoginExists):
			return TokenPair{}, ErrLoginExists
		case errors.Is(err, repository.ErrEmailExists):
			return TokenPair{}, ErrEmailExists
		}
		return TokenPair{}, err
	}

	// A fresh user has no role assignments yet; the claims carry an
	// empty role set until a superuser grants one.
	return s.commit(ctx, user, nil, model.AuthEventSignup, client)
}

// Login verifies credentials and returns a new token pair minted from
// the user's current role set.
func (s *SessionService) Login(ctx context.Context, username, password string, client ClientInfo) (TokenPair, error) {
	user, err := s.Users.GetByUsername(ctx, username)
	if errors.Is(err, sql.ErrNoRows) {
		return TokenPair{}, ErrUserNotFound
	}
	if err != nil {
		return TokenPair{}, err
	}
	if !utils.VerifyPassword(user.PasswordHash, password) {
		return TokenPair{}, ErrWrongPassword
	}

	roles, err := s.Roles.ListForUser(ctx, user.ID)
	if err != nil {
		return TokenPair{}, err
	}
	return s.commit(ctx, user, roleNames(roles), model.AuthEventLogin, client)
}

// Refresh exchanges a live refresh token for a new pair.  Consumption
// of the old token and issuance of the replacement commit in a single
// transaction, so concurrent refreshes of the same token produce
// exactly one winner; every loser observes ErrInvalidRefreshToken.
func (s *SessionService) Refresh(ctx context.Context, userID, refreshToken string, client ClientInfo) (TokenPair, error) {
	user, err := s.Users.GetByID(ctx, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return TokenPair{}, ErrUserNotFound
	}
	if err != nil {
		return TokenPair{}, err
	}

	roles, err := s.Roles.ListForUser(ctx, user.ID)
	if err != nil {
		return TokenPair{}, err
	}
	names := roleNames(roles)

	access, err := s.Codec.Mint(user.ID, names, token.KindAccess)
	if err != nil {
		return TokenPair{}, err
	}
	next, err := s.Codec.Mint(user.ID, names, token.KindRefresh)
	if err != nil {
		return TokenPair{}, err
	}

	err = s.Tokens.Rotate(ctx, user.ID, refreshToken, next, time.Now().UTC().Add(s.RefreshTTL))
	if errors.Is(err, repository.ErrTokenNotFound) {
		return TokenPair{}, ErrInvalidRefreshToken
	}
	if err != nil {
		return TokenPair{}, err
	}

	s.record(ctx, user, model.AuthEventRefresh, client)
	if err := s.Registry.Activate(ctx, access); err != nil {
		return TokenPair{}, err
	}
	s.notify(ctx, user, model.AuthEventRefresh, client)
	return TokenPair{AccessToken: access, RefreshToken: next}, nil
}

// Logout consumes the refresh token and revokes the access token
// immediately instead of waiting for its TTL.  No new tokens are
// minted.
func (s *SessionService) Logout(ctx context.Context, userID, accessToken, refreshToken string) error {
	live, err := s.Registry.IsActive(ctx, accessToken)
	if err != nil {
		return err
	}
	if !live {
		return ErrAccessTokenExpired
	}

	if _, err := s.Users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrUserNotFound
		}
		return err
	}

	err = s.Tokens.Consume(ctx, userID, refreshToken)
	if errors.Is(err, repository.ErrTokenNotFound) {
		return ErrInvalidRefreshToken
	}
	if err != nil {
		return err
	}
	return s.Registry.Revoke(ctx, accessToken)
}

// Modify changes the user's username and/or password.  The password
// conflict check compares the plaintext candidate against the stored
// hash: when they coincide no rehash happens.  Nothing is persisted
// unless a field actually changed.
func (s *SessionService) Modify(ctx context.Context, userID, newUsername, newPassword string) error {
	user, err := s.Users.GetByID(ctx, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrUserNotFound
	}
	if err != nil {
		return err
	}

	username := user.Username
	changed := false

	if n := normalize(newUsername); n != "" && n != user.Username {
		other, err := s.Users.GetByUsername(ctx, n)
		if err == nil && other.ID != user.ID {
			return ErrLoginExists
		}
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return err
		}
		username = n
		changed = true
	}

	hash := user.PasswordHash
	if newPassword != "" && !utils.VerifyPassword(user.PasswordHash, newPassword) {
		hash, err = utils.HashPassword(newPassword, s.BcryptCost)
		if err != nil {
			return err
		}
		changed = true
	}

	if !changed {
		return nil
	}
	err = s.Users.UpdateCredentials(ctx, user.ID, username, hash)
	if errors.Is(err, repository.ErrLoginExists) {
		return ErrLoginExists
	}
	return err
}

// HistoryPage is one page of a user's auth history, newest first.
type HistoryPage struct {
	Total   int                      `json:"total"`
	Pages   int                      `json:"pages"`
	Page    int                      `json:"page"`
	PerPage int                      `json:"per_page"`
	Events  []model.AuthHistoryEvent `json:"events"`
}

// AuthHistory returns a page of the user's authentication events
// ordered by event time descending.
func (s *SessionService) AuthHistory(ctx context.Context, userID string, page, perPage int) (HistoryPage, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 3
	}
	events, total, err := s.History.ListByUser(ctx, userID, page, perPage)
	if err != nil {
		return HistoryPage{}, err
	}
	pages := total / perPage
	if total%perPage != 0 {
		pages++
	}
	return HistoryPage{Total: total, Pages: pages, Page: page, PerPage: perPage, Events: events}, nil
}

// UserRoles returns the user's current roles.
func (s *SessionService) UserRoles(ctx context.Context, userID string) ([]model.Role, error) {
	if _, err := s.Users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return s.Roles.ListForUser(ctx, userID)
}

// commit finalizes a successful authentication: mint the pair, persist
// the refresh token, append the history row, activate the access token.
// The durable writes happen before the registry write so a failed
// activation leaves the token merely inactive (fail-closed), never
// half-revoked.
func (s *SessionService) commit(ctx context.Context, user model.User, roles []string, eventType string, client ClientInfo) (TokenPair, error) {
	access, err := s.Codec.Mint(user.ID, roles, token.KindAccess)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := s.Codec.Mint(user.ID, roles, token.KindRefresh)
	if err != nil {
		return TokenPair{}, err
	}

	if err := s.Tokens.Store(ctx, user.ID, refresh, time.Now().UTC().Add(s.RefreshTTL)); err != nil {
		return TokenPair{}, err
	}
	s.record(ctx, user, eventType, client)
	if err := s.Registry.Activate(ctx, access); err != nil {
		return TokenPair{}, err
	}
	s.notify(ctx, user, eventType, client)
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// record appends the audit row.  A failed insert is logged but does not
// fail the flow; the audit trail is advisory, the token state is not.
func (s *SessionService) record(ctx context.Context, user model.User, eventType string, client ClientInfo) {
	ev := model.AuthHistoryEvent{
		UserID:      user.ID,
		EventType:   eventType,
		Fingerprint: client.Fingerprint,
		Device:      client.Device,
	}
	if err := s.History.Insert(ctx, ev); err != nil {
		log.Printf("auth history insert failed for user %s: %v", user.ID, err)
	}
}

// notify publishes the event to the broker, best effort.
func (s *SessionService) notify(ctx context.Context, user model.User, eventType string, client ClientInfo) {
	if s.Publish == nil {
		return
	}
	_ = s.Publish(ctx, queue.AuthEvent{
		UserID:      user.ID,
		Username:    user.Username,
		EventType:   eventType,
		Fingerprint: client.Fingerprint,
		Device:      client.Device,
		OccurredAt:  time.Now().UTC().Format(time.RFC3339),
	})
}

func roleNames(roles []model.Role) []string {
	names := make([]string, 0, len(roles))
	for _, r := range roles {
		names = append(names, r.Name)
	}
	return names
}

func normalize(s string) string {
	return utils.NormalizeLogin(s)
}
