package api

import (
	"context"
	"net/url"
	"strconv"
	"strings"
)

// ─────────────────────────────────────────────────────────────
// People search — prospect lookup for campaign targeting
// ─────────────────────────────────────────────────────────────

// PersonFilters are the search criteria. List filters are sent
// comma-joined; seniority and intent levels are sent lowercased.
type PersonFilters struct {
	Name           string
	Titles         []string
	Locations      []string
	Departments    []string
	EmployeeRanges []string // range codes, e.g. "11-50"
	Seniorities    []string
	IntentLevels   []string
	TechnologyUIDs []string
}

// Person is one search hit.
type Person struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Title        string `json:"title"`
	Organization string `json:"organization"`
	Email        string `json:"email"`
	LinkedInURL  string `json:"linkedin_url"`
}

// Pagination mirrors the backend's paging envelope.
type Pagination struct {
	Page         int `json:"page"`
	PerPage      int `json:"per_page"`
	TotalEntries int `json:"total_entries"`
	TotalPages   int `json:"total_pages"`
}

// PeoplePage is one page of search results.
type PeoplePage struct {
	People     []Person   `json:"people"`
	Pagination Pagination `json:"pagination"`
}

// SearchPeople queries /search-people with the given filters and page.
func (c *Client) SearchPeople(ctx context.Context, f PersonFilters, page int) (*PeoplePage, error) {
	q := url.Values{}
	if f.Name != "" {
		q.Set("name", f.Name)
	}
	setJoined(q, "titles", f.Titles)
	setJoined(q, "locations", f.Locations)
	setJoined(q, "departments", f.Departments)
	setJoined(q, "employee_ranges", f.EmployeeRanges)
	setJoined(q, "seniorities", lowered(f.Seniorities))
	setJoined(q, "intent_levels", lowered(f.IntentLevels))
	setJoined(q, "technology_uids", f.TechnologyUIDs)
	if page < 1 {
		page = 1
	}
	q.Set("page", strconv.Itoa(page))

	var resp struct {
		Data PeoplePage `json:"data"`
	}
	if err := c.getJSON(ctx, "/search-people?"+q.Encode(), &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

func setJoined(q url.Values, key string, vals []string) {
	if len(vals) > 0 {
		q.Set(key, strings.Join(vals, ","))
	}
}

func lowered(vals []string) []string {
	if len(vals) == 0 {
		return nil
	}
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = strings.ToLower(v)
	}
	return out
}
