package app

// ─────────────────────────────────────────────────────────────
// Settings Handlers — domains, credits, API token
// ─────────────────────────────────────────────────────────────

import (
	"fmt"
	"os"

	"github.com/ahtisham02/hyperpitch-io-sub002/internal/api"
	"github.com/ahtisham02/hyperpitch-io-sub002/internal/secret"
)

func (a *App) ListCustomDomains() ([]string, error) {
	return a.settings.ListDomains()
}

func (a *App) AddCustomDomain(domain string) error {
	return a.settings.AddDomain(domain)
}

func (a *App) RemoveCustomDomain(domain string) error {
	return a.settings.RemoveDomain(domain)
}

// SetAPIToken stores the backend bearer token in the keychain and rebuilds
// the API client with it.
func (a *App) SetAPIToken(token string) error {
	if token == "" {
		return fmt.Errorf("token is empty")
	}
	if err := a.secrets.Set(secret.KeyAPIToken, []byte(token)); err != nil {
		return err
	}
	a.api = api.NewClient(envOr("HYPERPITCH_API_URL", defaultAPIBaseURL), token)
	return nil
}

// HasAPIToken reports whether a token is configured, without exposing it.
func (a *App) HasAPIToken() bool {
	token, _ := a.secrets.Get(secret.KeyAPIToken)
	return len(token) > 0 || os.Getenv("HYPERPITCH_API_TOKEN") != ""
}

// ClearAPIToken removes the stored token.
func (a *App) ClearAPIToken() error {
	return a.secrets.Delete(secret.KeyAPIToken)
}
