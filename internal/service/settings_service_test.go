package service_test

import (
	"context"
	"strings"
	"testing"

	"github.com/ahtisham02/hyperpitch-io-sub002/internal/api"
	"github.com/ahtisham02/hyperpitch-io-sub002/internal/service"
)

func TestDomainLifecycle(t *testing.T) {
	env := newTestEnv(t)

	domains, err := env.settings.ListDomains()
	if err != nil {
		t.Fatalf("ListDomains: %v", err)
	}
	if len(domains) != 0 {
		t.Fatalf("domains = %+v, want none on a fresh install", domains)
	}

	if err := env.settings.AddDomain("https://Launch.Example.com/"); err != nil {
		t.Fatalf("AddDomain: %v", err)
	}
	if err := env.settings.AddDomain("pitch.example.io"); err != nil {
		t.Fatalf("AddDomain: %v", err)
	}

	domains, err = env.settings.ListDomains()
	if err != nil {
		t.Fatalf("ListDomains: %v", err)
	}
	if len(domains) != 2 || domains[0] != "launch.example.com" {
		t.Fatalf("domains = %+v, want normalized insertion order", domains)
	}

	// Duplicates are rejected, scheme and case notwithstanding.
	if err := env.settings.AddDomain("LAUNCH.example.com"); err == nil {
		t.Fatal("duplicate domain should be rejected")
	}

	if err := env.settings.RemoveDomain("launch.example.com"); err != nil {
		t.Fatalf("RemoveDomain: %v", err)
	}
	domains, _ = env.settings.ListDomains()
	if len(domains) != 1 || domains[0] != "pitch.example.io" {
		t.Fatalf("domains = %+v", domains)
	}

	// Removing an unknown domain is a no-op.
	if err := env.settings.RemoveDomain("ghost.example.com"); err != nil {
		t.Fatalf("RemoveDomain unknown: %v", err)
	}
}

func TestAddDomainValidation(t *testing.T) {
	env := newTestEnv(t)
	for _, bad := range []string{"", "nodots", "has space.com", "a/b.com"} {
		if err := env.settings.AddDomain(bad); err == nil {
			t.Errorf("AddDomain(%q) should fail", bad)
		}
	}
}

func TestCreditsSeedAndSet(t *testing.T) {
	env := newTestEnv(t)

	n, err := env.settings.Credits()
	if err != nil {
		t.Fatalf("Credits: %v", err)
	}
	if n != service.DefaultImportCredits {
		t.Fatalf("credits = %d, want seeded default", n)
	}

	if err := env.settings.SetCredits(3); err != nil {
		t.Fatalf("SetCredits: %v", err)
	}
	if n, _ = env.settings.Credits(); n != 3 {
		t.Fatalf("credits = %d, want 3", n)
	}

	if err := env.settings.SetCredits(-1); err == nil {
		t.Fatal("negative balance should be rejected")
	}
}

func TestImportPeopleValidatesBeforeCharging(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if _, err := env.settings.ImportPeople(ctx, nil); err == nil ||
		!strings.Contains(err.Error(), "nothing selected") {
		t.Fatalf("empty selection: got %v", err)
	}

	if err := env.settings.SetCredits(2); err != nil {
		t.Fatalf("SetCredits: %v", err)
	}
	three := []api.Person{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	if _, err := env.settings.ImportPeople(ctx, three); err == nil {
		t.Fatal("insufficient credits should be rejected")
	}
	if n, _ := env.settings.Credits(); n != 2 {
		t.Fatalf("balance = %d after rejected import, want untouched", n)
	}

	remaining, err := env.settings.ImportPeople(ctx, three[:2])
	if err != nil {
		t.Fatalf("ImportPeople: %v", err)
	}
	if remaining != 0 {
		t.Fatalf("remaining = %d, want 0", remaining)
	}
	if env.emitter.Count(service.EventPeopleImported) != 1 {
		t.Fatal("successful import should emit")
	}
}
