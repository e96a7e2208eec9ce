package source

import (
	"context"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"kwestendorf/scopeworker/internal/reticle"
	"kwestendorf/scopeworker/internal/scope"
	"kwestendorf/scopeworker/logger"
	errs "kwestendorf/scopeworker/pkg/errors"
)

// Selectors contains the CSS selectors for the elements of one source's
// result pages.
type Selectors struct {
	// Wait is the content marker that must be present before extraction
	Wait string
	// Item selects one listing within a result page
	Item string
	// Title, Price, Link, Description select fields within an item
	Title       string
	Price       string
	Link        string
	Description string
	// Next selects the next-page affordance; pagination stops when it is
	// absent or carries the Disabled class
	Next     string
	Disabled string
}

// Config declaratively describes one source adapter.
type Config struct {
	Name        string
	URL         string
	BaseURL     string
	FallbackURL string
	// QueryParams are appended to every page URL
	QueryParams map[string]string
	Selectors   Selectors
	// Paginate follows the Next affordance with a "p" page parameter;
	// single-page sources leave it false
	Paginate  bool
	MaxPages  int
	PageDelay time.Duration
	// PageTimeout bounds each snapshot fetch
	PageTimeout time.Duration
	// TitleFilter drops unrelated listings before the record builder runs
	TitleFilter func(title string) bool
	// Manufacturer, KeyStrategy, Classifier parameterize the record builder
	Manufacturer string
	KeyStrategy  scope.KeyFunc
	Classifier   *reticle.Classifier
	// Fallback is the known-good record set substituted for failed or
	// empty runs
	Fallback map[string]scope.Record
}

// Outcome tags where a run's record set came from.
type Outcome string

const (
	OutcomeLive          Outcome = "live"
	OutcomeFallbackError Outcome = "fallback_error"
	OutcomeFallbackEmpty Outcome = "fallback_empty"
)

// Adapter drives a snapshot provider across one source's result pages and
// builds records from the discovered items. A run walks
// fetching(n) -> extracting(n) -> fetching(n+1) ... until the next-page
// affordance disappears; any unrecoverable fetch error aborts the whole run.
type Adapter struct {
	cfg      Config
	provider SnapshotProvider
	builder  *scope.Builder
	log      *logger.Logger
}

// NewAdapter creates an adapter for one configured source.
func NewAdapter(cfg Config, provider SnapshotProvider) *Adapter {
	if cfg.MaxPages <= 0 {
		cfg.MaxPages = 20
	}
	if cfg.PageTimeout <= 0 {
		cfg.PageTimeout = 30 * time.Second
	}
	if cfg.Selectors.Disabled == "" {
		cfg.Selectors.Disabled = "disabled"
	}
	return &Adapter{
		cfg:      cfg,
		provider: provider,
		builder: &scope.Builder{
			Source:       cfg.Name,
			BaseURL:      cfg.BaseURL,
			FallbackURL:  cfg.FallbackURL,
			Manufacturer: cfg.Manufacturer,
			Classifier:   cfg.Classifier,
			Key:          cfg.KeyStrategy,
		},
		log: logger.ForSource(cfg.Name),
	}
}

// Name returns the source name.
func (a *Adapter) Name() string {
	return a.cfg.Name
}

// Fallback returns a copy of the source's static fallback dataset.
func (a *Adapter) Fallback() map[string]scope.Record {
	out := make(map[string]scope.Record, len(a.cfg.Fallback))
	for k, v := range a.cfg.Fallback {
		out[k] = v
	}
	return out
}

// Collect runs the adapter and always returns a usable record set: the live
// result when the run succeeds with at least one record, the fallback
// dataset otherwise. A run never mixes live and fallback data.
func (a *Adapter) Collect(ctx context.Context) (map[string]scope.Record, Outcome) {
	records, err := a.run(ctx)
	if err != nil {
		a.log.Warn().Err(err).Msg("Run failed, using fallback dataset")
		return a.Fallback(), OutcomeFallbackError
	}
	if len(records) == 0 {
		a.log.Warn().Err(errs.NewEmptyResult(a.cfg.Name)).Msg("Using fallback dataset")
		return a.Fallback(), OutcomeFallbackEmpty
	}
	a.log.Info().Int("records", len(records)).Msg("Run completed")
	return records, OutcomeLive
}

// run walks the result pages in strictly increasing order and accumulates
// built records. Keys recurring across pages follow last-processed-wins.
func (a *Adapter) run(ctx context.Context) (map[string]scope.Record, error) {
	records := make(map[string]scope.Record)
	itemIndex := 0

	for page := 1; ; page++ {
		pageURL := a.pageURL(page)
		a.log.Debug().Int("page", page).Str("url", pageURL).Msg("Fetching page")

		doc, err := a.fetchPage(ctx, pageURL)
		if err != nil {
			return nil, err
		}

		found := a.extractItems(doc, records, &itemIndex)
		a.log.Debug().Int("page", page).Int("found", found).Msg("Extracted items")

		if !a.cfg.Paginate || !hasNextPage(doc, a.cfg.Selectors) || page >= a.cfg.MaxPages {
			break
		}

		// Politeness delay between pages
		if a.cfg.PageDelay > 0 {
			select {
			case <-ctx.Done():
				return nil, errs.NewSourceUnavailable(a.cfg.Name, "run cancelled", ctx.Err())
			case <-time.After(a.cfg.PageDelay):
			}
		}
	}

	return records, nil
}

// fetchPage fetches one snapshot within the page timeout and verifies the
// content marker on the parsed document.
func (a *Adapter) fetchPage(ctx context.Context, pageURL string) (*goquery.Document, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, a.cfg.PageTimeout)
	defer cancel()

	html, err := a.provider.Fetch(fetchCtx, pageURL, a.cfg.Selectors.Wait)
	if err != nil {
		return nil, errs.NewSourceUnavailable(a.cfg.Name, "page fetch failed", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, errs.NewSourceUnavailable(a.cfg.Name, "HTML parse failed", err)
	}

	if a.cfg.Selectors.Wait != "" && doc.Find(a.cfg.Selectors.Wait).Length() == 0 {
		return nil, errs.NewSourceUnavailable(a.cfg.Name, "content marker "+a.cfg.Selectors.Wait+" not present", nil)
	}

	return doc, nil
}

// extractItems runs the record builder over every item on a page and merges
// the results into records. Items failing the magnification gate are skipped
// silently; that is local recovery, not an error.
func (a *Adapter) extractItems(doc *goquery.Document, records map[string]scope.Record, itemIndex *int) int {
	found := 0
	doc.Find(a.cfg.Selectors.Item).Each(func(_ int, s *goquery.Selection) {
		title := strings.TrimSpace(s.Find(a.cfg.Selectors.Title).First().Text())
		if title == "" {
			return
		}
		if a.cfg.TitleFilter != nil && !a.cfg.TitleFilter(title) {
			return
		}

		item := scope.RawItem{
			Title: title,
			Index: *itemIndex,
		}
		*itemIndex++

		if a.cfg.Selectors.Price != "" {
			item.PriceText = strings.TrimSpace(s.Find(a.cfg.Selectors.Price).First().Text())
		}
		if a.cfg.Selectors.Description != "" {
			item.Description = strings.TrimSpace(s.Find(a.cfg.Selectors.Description).First().Text())
		}
		if a.cfg.Selectors.Link != "" {
			item.Link, _ = s.Find(a.cfg.Selectors.Link).First().Attr("href")
		}

		key, rec, ok := a.builder.Build(item)
		if !ok {
			a.log.Debug().
				Err(errs.NewExtraction(a.cfg.Name, "no magnification pattern in title")).
				Str("title", title).
				Msg("Skipping item")
			return
		}
		records[key] = rec
		found++
	})
	return found
}

// pageURL renders the URL for one result page: the configured query
// parameters plus, for paginating sources, the page number.
func (a *Adapter) pageURL(page int) string {
	if len(a.cfg.QueryParams) == 0 && !a.cfg.Paginate {
		return a.cfg.URL
	}

	values := url.Values{}
	for k, v := range a.cfg.QueryParams {
		values.Set(k, v)
	}
	if a.cfg.Paginate {
		values.Set("p", strconv.Itoa(page))
	}

	sep := "?"
	if strings.Contains(a.cfg.URL, "?") {
		sep = "&"
	}
	return a.cfg.URL + sep + values.Encode()
}

// hasNextPage reports whether the page advertises an enabled next-page
// affordance.
func hasNextPage(doc *goquery.Document, sel Selectors) bool {
	if sel.Next == "" {
		return false
	}
	next := doc.Find(sel.Next)
	return next.Length() > 0 && !next.HasClass(sel.Disabled)
}
