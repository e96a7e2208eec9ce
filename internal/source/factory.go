package source

import (
	"net/url"
	"strings"

	"kwestendorf/scopeworker/config"
	"kwestendorf/scopeworker/internal/reticle"
	"kwestendorf/scopeworker/internal/scope"
)

// CreateAdapters creates all the source adapters based on the configuration.
func CreateAdapters(cfg config.Config, provider SnapshotProvider) []*Adapter {
	configurations := []Config{
		{
			// Leupold catalog: server-rendered Magento listing, paginated
			Name:        "leupold",
			URL:         cfg.LeupoldURL,
			BaseURL:     origin(cfg.LeupoldURL),
			FallbackURL: cfg.LeupoldURL,
			QueryParams: map[string]string{
				"product_list_limit": "36",
				"product_list_order": "name",
				"stock_status":       "all",
			},
			Selectors: Selectors{
				Wait:        ".product-items",
				Item:        ".product-item",
				Title:       ".product-item-name",
				Price:       ".price",
				Link:        "a.product-item-link",
				Description: ".description",
				Next:        ".pages-item-next",
			},
			Paginate:     true,
			MaxPages:     cfg.MaxPages,
			PageDelay:    cfg.PageDelay,
			PageTimeout:  cfg.PageTimeout,
			Manufacturer: "Leupold",
			KeyStrategy:  scope.SlugKey,
			Classifier:   reticle.NewLeupoldClassifier(),
			Fallback:     leupoldFallback,
		},
		{
			// Amazon search results: single page, mixed listings that need
			// a scope/optic filter, positional keys against repeated titles
			Name:        "amazon",
			URL:         cfg.AmazonURL,
			BaseURL:     "https://www.amazon.com",
			FallbackURL: "https://www.amazon.com/s?k=rifle+scope",
			Selectors: Selectors{
				Wait:  `[data-component-type="s-search-result"]`,
				Item:  `[data-component-type="s-search-result"]`,
				Title: "h2 span",
				Price: ".a-price .a-offscreen, .a-price-whole",
				Link:  "h2 a",
			},
			Paginate:    false,
			MaxPages:    1,
			PageTimeout: cfg.PageTimeout,
			TitleFilter: func(title string) bool {
				t := strings.ToLower(title)
				return strings.Contains(t, "scope") || strings.Contains(t, "optic")
			},
			KeyStrategy: scope.IndexedSlugKey,
			Classifier:  reticle.NewBasicClassifier(),
			Fallback:    amazonFallback,
		},
	}

	adapters := make([]*Adapter, 0, len(configurations))
	for _, c := range configurations {
		adapters = append(adapters, NewAdapter(c, provider))
	}
	return adapters
}

// origin reduces a URL to its scheme://host base for resolving relative
// product links.
func origin(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return rawURL
	}
	return u.Scheme + "://" + u.Host
}
