package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/ahtisham02/hyperpitch-io-sub002/internal/api"
	"github.com/ahtisham02/hyperpitch-io-sub002/internal/storage"
)

// ─────────────────────────────────────────────────────────────
// Settings Service — account preferences over the key-value store
// ─────────────────────────────────────────────────────────────

const (
	settingCustomDomains = "custom_domains"
	settingImportCredits = "import_credits"

	// DefaultImportCredits seeds a fresh install.
	DefaultImportCredits = 100
)

// EventPeopleImported fires after a successful prospect import with the
// number of credits left.
const EventPeopleImported = "people:imported"

// SettingsService manages custom domains and import credits.
type SettingsService struct {
	settings *storage.SettingsStore
	emitter  EventEmitter
}

// NewSettingsService creates a SettingsService.
func NewSettingsService(settings *storage.SettingsStore, emitter EventEmitter) *SettingsService {
	return &SettingsService{settings: settings, emitter: emitter}
}

// ── Custom domains ─────────────────────────────────────────

// ListDomains returns the saved custom domains in insertion order.
func (s *SettingsService) ListDomains() ([]string, error) {
	raw, found, err := s.settings.Get(settingCustomDomains)
	if err != nil {
		return nil, fmt.Errorf("load domains: %w", err)
	}
	if !found {
		return []string{}, nil
	}
	var domains []string
	if err := json.Unmarshal([]byte(raw), &domains); err != nil {
		return nil, fmt.Errorf("decode domains: %w", err)
	}
	return domains, nil
}

// AddDomain validates and stores a custom domain. Duplicates are rejected.
func (s *SettingsService) AddDomain(domain string) error {
	domain = normalizeDomain(domain)
	if err := validateDomain(domain); err != nil {
		return err
	}
	domains, err := s.ListDomains()
	if err != nil {
		return err
	}
	for _, d := range domains {
		if d == domain {
			return fmt.Errorf("domain %q already added", domain)
		}
	}
	return s.saveDomains(append(domains, domain))
}

// RemoveDomain deletes a domain; removing an unknown one is a no-op.
func (s *SettingsService) RemoveDomain(domain string) error {
	domain = normalizeDomain(domain)
	domains, err := s.ListDomains()
	if err != nil {
		return err
	}
	kept := domains[:0]
	for _, d := range domains {
		if d != domain {
			kept = append(kept, d)
		}
	}
	return s.saveDomains(kept)
}

func (s *SettingsService) saveDomains(domains []string) error {
	b, err := json.Marshal(domains)
	if err != nil {
		return fmt.Errorf("encode domains: %w", err)
	}
	return s.settings.Set(settingCustomDomains, string(b))
}

func normalizeDomain(d string) string {
	d = strings.TrimSpace(strings.ToLower(d))
	d = strings.TrimPrefix(d, "https://")
	d = strings.TrimPrefix(d, "http://")
	return strings.TrimSuffix(d, "/")
}

func validateDomain(d string) error {
	if d == "" {
		return fmt.Errorf("domain is empty")
	}
	if !strings.Contains(d, ".") || strings.ContainsAny(d, " /") {
		return fmt.Errorf("invalid domain %q", d)
	}
	return nil
}

// ── Import credits ─────────────────────────────────────────

// Credits returns the remaining import credits, seeding the default on
// first read.
func (s *SettingsService) Credits() (int, error) {
	raw, found, err := s.settings.Get(settingImportCredits)
	if err != nil {
		return 0, fmt.Errorf("load credits: %w", err)
	}
	if !found {
		if err := s.settings.Set(settingImportCredits, strconv.Itoa(DefaultImportCredits)); err != nil {
			return 0, fmt.Errorf("seed credits: %w", err)
		}
		return DefaultImportCredits, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("corrupt credits value %q: %w", raw, err)
	}
	return n, nil
}

// SetCredits overwrites the balance, e.g. after a purchase.
func (s *SettingsService) SetCredits(n int) error {
	if n < 0 {
		return fmt.Errorf("credits cannot be negative")
	}
	return s.settings.Set(settingImportCredits, strconv.Itoa(n))
}

// ImportPeople charges one credit per selected prospect and returns the
// remaining balance. Validation happens before anything is charged: an
// empty selection and an insufficient balance are both rejected with the
// balance untouched.
func (s *SettingsService) ImportPeople(ctx context.Context, selected []api.Person) (remaining int, err error) {
	if len(selected) == 0 {
		return 0, fmt.Errorf("import people: nothing selected")
	}
	credits, err := s.Credits()
	if err != nil {
		return 0, err
	}
	if credits < len(selected) {
		return credits, fmt.Errorf("import people: %d credits needed, %d available", len(selected), credits)
	}
	remaining = credits - len(selected)
	if err := s.SetCredits(remaining); err != nil {
		return credits, err
	}
	s.emitter.Emit(ctx, EventPeopleImported, remaining)
	return remaining, nil
}
