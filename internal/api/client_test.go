package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, "tok-123")
}

func TestBearerTokenOnEveryRequest(t *testing.T) {
	var got string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]any{"templates": []any{}})
	})

	if _, err := c.ListTemplates(context.Background()); err != nil {
		t.Fatalf("ListTemplates: %v", err)
	}
	if got != "Bearer tok-123" {
		t.Fatalf("Authorization = %q, want bearer token", got)
	}
}

func TestSearchPeopleEncodesFilters(t *testing.T) {
	var query map[string]string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search-people" {
			t.Errorf("path = %q", r.URL.Path)
		}
		query = map[string]string{}
		for k := range r.URL.Query() {
			query[k] = r.URL.Query().Get(k)
		}
		json.NewEncoder(w).Encode(map[string]any{"data": map[string]any{
			"people": []map[string]any{{"id": "p1", "name": "Ada"}},
			"pagination": map[string]any{
				"page": 2, "per_page": 25, "total_entries": 40, "total_pages": 2,
			},
		}})
	})

	page, err := c.SearchPeople(context.Background(), PersonFilters{
		Name:        "ada",
		Titles:      []string{"CTO", "VP Engineering"},
		Seniorities: []string{"Director", "VP"},
		Locations:   []string{"Berlin"},
	}, 2)
	if err != nil {
		t.Fatalf("SearchPeople: %v", err)
	}

	if query["titles"] != "CTO,VP Engineering" {
		t.Errorf("titles = %q, want comma-joined literal values", query["titles"])
	}
	if query["seniorities"] != "director,vp" {
		t.Errorf("seniorities = %q, want lowercased", query["seniorities"])
	}
	if query["locations"] != "Berlin" {
		t.Errorf("locations = %q", query["locations"])
	}
	if query["page"] != "2" {
		t.Errorf("page = %q, want 2", query["page"])
	}
	if _, sent := query["departments"]; sent {
		t.Error("empty filter must not be sent")
	}
	if len(page.People) != 1 || page.People[0].Name != "Ada" {
		t.Fatalf("people = %+v", page.People)
	}
	if page.Pagination.TotalPages != 2 {
		t.Fatalf("pagination = %+v", page.Pagination)
	}
}

func TestSearchPeopleZeroResults(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"data": map[string]any{
			"people":     []any{},
			"pagination": map[string]any{"page": 1, "total_entries": 0, "total_pages": 0},
		}})
	})

	page, err := c.SearchPeople(context.Background(), PersonFilters{Name: "nobody"}, 1)
	if err != nil {
		t.Fatalf("SearchPeople: %v", err)
	}
	if len(page.People) != 0 {
		t.Fatalf("people = %+v, want empty", page.People)
	}
}

func TestGenerateLandingPage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req LandingPageRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.ProductName != "Widget" {
			t.Errorf("product_name = %q", req.ProductName)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"success": true, "html_content": "<html>ok</html>",
		})
	})

	html, err := c.GenerateLandingPage(context.Background(), LandingPageRequest{ProductName: "Widget"})
	if err != nil {
		t.Fatalf("GenerateLandingPage: %v", err)
	}
	if html != "<html>ok</html>" {
		t.Fatalf("html = %q", html)
	}
}

func TestGenerateLandingPageFailureFlag(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"success": false, "error": "profile too sparse"})
	})

	_, err := c.GenerateLandingPage(context.Background(), LandingPageRequest{})
	if err == nil || !strings.Contains(err.Error(), "profile too sparse") {
		t.Fatalf("error = %v, want generation failure message", err)
	}
}

func TestSaveCampaignMultipartFields(t *testing.T) {
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	end := start.Add(48 * time.Hour)

	var fields map[string]string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
			http.Error(w, "bad form", http.StatusBadRequest)
			return
		}
		fields = map[string]string{}
		for k := range r.MultipartForm.Value {
			fields[k] = r.FormValue(k)
		}
		w.WriteHeader(http.StatusCreated)
	})

	if err := c.SaveCampaign(context.Background(), "spring-launch", start, end, []byte(`{"pages":[]}`)); err != nil {
		t.Fatalf("SaveCampaign: %v", err)
	}
	if fields["campaignName"] != "spring-launch" {
		t.Errorf("campaignName = %q", fields["campaignName"])
	}
	if fields["startTime"] != "2026-03-01T09:00:00Z" {
		t.Errorf("startTime = %q, want RFC3339", fields["startTime"])
	}
	if fields["endTime"] != "2026-03-03T09:00:00Z" {
		t.Errorf("endTime = %q, want RFC3339", fields["endTime"])
	}
	if fields["script"] != `{"pages":[]}` {
		t.Errorf("script = %q", fields["script"])
	}
}

func TestDeployReturnsURL(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req DeployRequest
		json.NewDecoder(r.Body).Decode(&req)
		if len(req.Files) != 1 || req.Files[0].Path != "index.html" {
			t.Errorf("files = %+v", req.Files)
		}
		json.NewEncoder(w).Encode(map[string]any{"success": true, "url": "https://sites.example/p/abc"})
	})

	url, err := c.Deploy(context.Background(), DeployRequest{
		Files:       []SiteFile{{Path: "index.html", Content: "<html></html>"}},
		ProjectName: "demo",
	})
	if err != nil {
		t.Fatalf("Deploy: %v", err)
	}
	if url != "https://sites.example/p/abc" {
		t.Fatalf("url = %q", url)
	}
}

func TestDeployFailure(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"success": false, "error": "quota exceeded"})
	})

	if _, err := c.Deploy(context.Background(), DeployRequest{}); err == nil ||
		!strings.Contains(err.Error(), "quota exceeded") {
		t.Fatalf("error = %v, want quota message", err)
	}
}

func TestTemplateLifecycle(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method + " " + r.URL.Path {
		case "POST /templates":
			var body map[string]string
			json.NewDecoder(r.Body).Decode(&body)
			json.NewEncoder(w).Encode(Template{ID: "t1", Name: body["name"], ScriptJSON: body["script"]})
		case "GET /templates":
			json.NewEncoder(w).Encode(map[string]any{"templates": []Template{{ID: "t1", Name: "hero"}}})
		case "GET /templates/t1":
			json.NewEncoder(w).Encode(Template{ID: "t1", Name: "hero"})
		case "POST /templates/t1/duplicate":
			json.NewEncoder(w).Encode(Template{ID: "t2", Name: "hero (copy)"})
		case "POST /templates/t1/share":
			json.NewEncoder(w).Encode(map[string]string{"url": "https://share.example/t1"})
		case "DELETE /templates/t1":
			w.WriteHeader(http.StatusNoContent)
		default:
			http.NotFound(w, r)
		}
	})
	ctx := context.Background()

	created, err := c.CreateTemplate(ctx, "hero", `{"sections":[]}`)
	if err != nil {
		t.Fatalf("CreateTemplate: %v", err)
	}
	if created.ID != "t1" || created.Name != "hero" {
		t.Fatalf("created = %+v", created)
	}

	list, err := c.ListTemplates(ctx)
	if err != nil {
		t.Fatalf("ListTemplates: %v", err)
	}
	if len(list) != 1 || list[0].ID != "t1" {
		t.Fatalf("list = %+v", list)
	}

	dup, err := c.DuplicateTemplate(ctx, "t1")
	if err != nil {
		t.Fatalf("DuplicateTemplate: %v", err)
	}
	if dup.ID != "t2" {
		t.Fatalf("dup = %+v", dup)
	}

	url, err := c.ShareTemplate(ctx, "t1")
	if err != nil {
		t.Fatalf("ShareTemplate: %v", err)
	}
	if url != "https://share.example/t1" {
		t.Fatalf("share url = %q", url)
	}

	if err := c.DeleteTemplate(ctx, "t1"); err != nil {
		t.Fatalf("DeleteTemplate: %v", err)
	}
}

func TestErrorMessageExtraction(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]string{"message": "name already taken"})
	})

	_, err := c.CreateTemplate(context.Background(), "dup", "{}")
	if err == nil || !strings.Contains(err.Error(), "name already taken") {
		t.Fatalf("error = %v, want server message extracted", err)
	}
}

func TestErrorFallsBackToStatusText(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>gateway</html>"))
	})

	_, err := c.ListTemplates(context.Background())
	if err == nil || !strings.Contains(err.Error(), "Bad Gateway") {
		t.Fatalf("error = %v, want status text fallback", err)
	}
}
