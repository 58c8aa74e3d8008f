package app

// ─────────────────────────────────────────────────────────────
// People Handlers — prospect search and import
// ─────────────────────────────────────────────────────────────

import (
	"github.com/ahtisham02/hyperpitch-io-sub002/internal/api"
)

// SearchPeople queries the prospect database with the given filters.
func (a *App) SearchPeople(filters api.PersonFilters, page int) (*api.PeoplePage, error) {
	return a.api.SearchPeople(a.ctx, filters, page)
}

// ImportPeople charges credits for the selected prospects and returns the
// remaining balance. Validation runs before anything is charged.
func (a *App) ImportPeople(selected []api.Person) (int, error) {
	return a.settings.ImportPeople(a.ctx, selected)
}

// ImportCredits returns the remaining import credit balance.
func (a *App) ImportCredits() (int, error) {
	return a.settings.Credits()
}
