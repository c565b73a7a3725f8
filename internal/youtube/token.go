package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"golang.org/x/oauth2"
)

// googleEndpoint is Google's OAuth 2.0 endpoint
var googleEndpoint = oauth2.Endpoint{
	AuthURL:   "https://accounts.google.com/o/oauth2/auth",
	TokenURL:  "https://oauth2.googleapis.com/token",
	AuthStyle: oauth2.AuthStyleInParams,
}

const tokenSettingKey = "youtube_token"

// SettingsStore is the key-value store tokens are persisted in
type SettingsStore interface {
	Get(key string) (string, error)
	Set(key, value string) error
}

// TokenStorage persists OAuth2 tokens in the settings store
type TokenStorage struct {
	store SettingsStore
}

// NewTokenStorage creates a new token storage instance
func NewTokenStorage(store SettingsStore) *TokenStorage {
	return &TokenStorage{store: store}
}

// SaveToken saves an OAuth2 token; nil clears it
func (s *TokenStorage) SaveToken(token *oauth2.Token) error {
	if token == nil {
		return s.store.Set(tokenSettingKey, "")
	}

	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("failed to marshal token: %w", err)
	}
	return s.store.Set(tokenSettingKey, string(data))
}

// LoadToken loads the saved token, nil when none is stored
func (s *TokenStorage) LoadToken() (*oauth2.Token, error) {
	value, err := s.store.Get(tokenSettingKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load token: %w", err)
	}
	if value == "" {
		return nil, nil
	}

	var token oauth2.Token
	if err := json.Unmarshal([]byte(value), &token); err != nil {
		return nil, fmt.Errorf("failed to unmarshal token: %w", err)
	}
	return &token, nil
}

// OAuthConfig holds the credentials used to build a token source
type OAuthConfig struct {
	ClientID     string
	ClientSecret string
	AccessToken  string
	RefreshToken string
	// TokenURL overrides Google's token endpoint
	TokenURL string
}

// NewTokenSource returns a token source for the configured credentials, or nil when
// no token is configured. With a refresh token and client credentials the token is
// renewed on expiry and the new token saved to storage; a bare access token is used as is.
func NewTokenSource(ctx context.Context, cfg OAuthConfig, storage *TokenStorage) (oauth2.TokenSource, error) {
	token := &oauth2.Token{
		AccessToken:  cfg.AccessToken,
		RefreshToken: cfg.RefreshToken,
		TokenType:    "Bearer",
	}

	// A stored token from an earlier refresh is newer than the configured one
	if storage != nil {
		saved, err := storage.LoadToken()
		if err != nil {
			return nil, err
		}
		if saved != nil && saved.RefreshToken == cfg.RefreshToken && saved.AccessToken != "" {
			token = saved
		}
	}

	canRefresh := cfg.RefreshToken != "" && cfg.ClientID != "" && cfg.ClientSecret != ""
	switch {
	case canRefresh:
		endpoint := googleEndpoint
		if cfg.TokenURL != "" {
			endpoint.TokenURL = cfg.TokenURL
		}
		oauthCfg := &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint:     endpoint,
			Scopes:       []string{"https://www.googleapis.com/auth/youtube.readonly"},
		}
		// An empty access token is refreshed on first use
		src := oauthCfg.TokenSource(ctx, token)
		if storage == nil {
			return src, nil
		}
		return &savingTokenSource{base: src, storage: storage, last: token.AccessToken}, nil
	case token.AccessToken != "":
		return oauth2.StaticTokenSource(token), nil
	default:
		return nil, nil
	}
}

// savingTokenSource writes refreshed tokens to storage
type savingTokenSource struct {
	base    oauth2.TokenSource
	storage *TokenStorage

	mu   sync.Mutex
	last string
}

// Token implements oauth2.TokenSource
func (s *savingTokenSource) Token() (*oauth2.Token, error) {
	token, err := s.base.Token()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if token.AccessToken != s.last {
		s.last = token.AccessToken
		if err := s.storage.SaveToken(token); err != nil {
			return nil, err
		}
	}
	return token, nil
}
