package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"kwestendorf/scopeworker/internal/orchestrator"
	"kwestendorf/scopeworker/internal/reticle"
	"kwestendorf/scopeworker/internal/scope"
	"kwestendorf/scopeworker/internal/source"
	"kwestendorf/scopeworker/internal/store"
	"kwestendorf/scopeworker/services/api"
	"kwestendorf/scopeworker/services/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// listingServer serves a tiny two-page product listing and lets the test
// swap in fresh content between refreshes.
type listingServer struct {
	mu       sync.Mutex
	pages    map[string]string
	requests int
}

func (ls *listingServer) handler(w http.ResponseWriter, r *http.Request) {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	ls.requests++

	page := r.URL.Query().Get("p")
	if page == "" {
		page = "1"
	}
	body, ok := ls.pages[page]
	if !ok {
		body = `<html><body><div class="items"></div></body></html>`
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(body))
}

func (ls *listingServer) setPages(pages map[string]string) {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	ls.pages = pages
}

func (ls *listingServer) requestCount() int {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	return ls.requests
}

const firstPage = `<html><body>
<div class="items">
	<div class="item">
		<span class="name">VX-Freedom 3-9x40 Duplex</span>
		<span class="price">$199.99</span>
		<a class="link" href="/vx-freedom-3-9x40">View</a>
	</div>
</div>
<li class="next"><a href="#">Next</a></li>
</body></html>`

const secondPage = `<html><body>
<div class="items">
	<div class="item">
		<span class="name">Mark 3HD 4-12x40 FireDot TMR</span>
		<span class="price">$649.99</span>
		<a class="link" href="/mark-3hd-4-12x40">View</a>
	</div>
</div>
<li class="next disabled"><a href="#">Next</a></li>
</body></html>`

func newIntegrationAdapter(baseURL string, provider source.SnapshotProvider) *source.Adapter {
	return source.NewAdapter(source.Config{
		Name:        "leupold",
		URL:         baseURL,
		BaseURL:     baseURL,
		FallbackURL: baseURL,
		Selectors: source.Selectors{
			Wait:  ".items",
			Item:  ".item",
			Title: ".name",
			Price: ".price",
			Link:  ".link",
			Next:  ".next",
		},
		Paginate:     true,
		MaxPages:     5,
		Manufacturer: "Leupold",
		KeyStrategy:  scope.SlugKey,
		Classifier:   reticle.NewLeupoldClassifier(),
		Fallback: map[string]scope.Record{
			"fallback-3-9x40": {MinZoom: 3, MaxZoom: 9, ObjectiveLens: 40, Model: "Fallback 3-9x40"},
		},
	}, provider)
}

// End-to-end: HTTP snapshot provider against a live test server, sqlite
// persistence, orchestrator merging, API serving.
func TestEndToEnd(t *testing.T) {
	ls := &listingServer{}
	ls.setPages(map[string]string{"1": firstPage, "2": secondPage})
	srv := httptest.NewServer(http.HandlerFunc(ls.handler))
	defer srv.Close()

	dbPath := filepath.Join(t.TempDir(), "scopes.db")
	st, err := store.NewSQLiteStore(dbPath)
	require.NoError(t, err)
	defer st.Close()

	provider := source.NewHTTPProvider()
	adapter := newIntegrationAdapter(srv.URL, provider)
	orch := orchestrator.New([]*source.Adapter{adapter}, st, cache.NewMemoryService(), nil, 0)
	apiServer := api.NewServer(":0", orch, reticle.LeupoldCatalog)

	get := func(path string) (*httptest.ResponseRecorder, map[string]scope.Record) {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		apiServer.Handler().ServeHTTP(rec, req)
		var records map[string]scope.Record
		if rec.Code == http.StatusOK {
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &records))
		}
		return rec, records
	}

	// The first read initializes the source: both pages scraped and merged
	rec, records := get("/api/scopes/leupold")
	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, records, 2)
	assert.Equal(t, "Duplex", records["vx-freedom-3-9x40-duplex"].Reticle.TypeName)
	assert.Equal(t, "FireDot TMR", records["mark-3hd-4-12x40-firedot-tmr"].Reticle.TypeName)
	assert.Equal(t, 2, ls.requestCount())

	// New content replaces the listing; a refresh merges it in without
	// dropping records that fell off the page
	ls.setPages(map[string]string{"1": `<html><body>
<div class="items">
	<div class="item">
		<span class="name">VX-5HD 2-10x42 Wind-Plex</span>
		<span class="price">$1099.99</span>
	</div>
</div>
</body></html>`})

	req := httptest.NewRequest(http.MethodPost, "/api/scopes/leupold/refresh", nil)
	rr := httptest.NewRecorder()
	apiServer.Handler().ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)

	_, records = get("/api/scopes/leupold")
	require.Len(t, records, 3)
	assert.Contains(t, records, "vx-5hd-2-10x42-wind-plex")
	assert.Contains(t, records, "vx-freedom-3-9x40-duplex")

	// A fresh orchestrator over the same database serves the persisted
	// dataset without touching the source again
	requestsBefore := ls.requestCount()
	restarted := orchestrator.New([]*source.Adapter{newIntegrationAdapter(srv.URL, provider)}, st, cache.NewMemoryService(), nil, 0)
	persisted, err := restarted.Records(context.Background(), "leupold")
	require.NoError(t, err)
	assert.Len(t, persisted, 3)
	assert.Equal(t, requestsBefore, ls.requestCount())
}
