package scope

import (
	"fmt"
	"strconv"
	"strings"

	"kwestendorf/scopeworker/helpers"
	"kwestendorf/scopeworker/internal/reticle"
)

// RawItem is one per-listing text/link tuple as discovered on a result page,
// before any validation.
type RawItem struct {
	Title       string
	Description string
	PriceText   string
	Link        string
	Index       int
}

// KeyFunc derives the unique store key for a built record.
type KeyFunc func(source, title string, index int) string

// SlugKey keys a record by its slugified title alone. Recurring titles
// across runs intentionally overwrite (last write wins).
func SlugKey(_ string, title string, _ int) string {
	return helpers.Slugify(title)
}

// IndexedSlugKey prefixes the source name and appends the item's positional
// index, for sources whose result pages repeat near-identical titles.
func IndexedSlugKey(source, title string, index int) string {
	return strings.ToLower(source) + "-" + helpers.Slugify(title) + "-" + strconv.Itoa(index)
}

// Builder assembles validated Records from raw per-item fields. Build is a
// pure transformation: it either returns one record with its derived key or
// reports that the candidate failed the magnification gate.
type Builder struct {
	Source      string
	BaseURL     string
	FallbackURL string
	// Manufacturer overrides brand inference for single-vendor catalogs
	// whose titles omit the brand entirely.
	Manufacturer string
	Classifier   *reticle.Classifier
	Key          KeyFunc
}

// Build runs the extractors and the classifier over one raw item. ok is
// false only when the title carries no magnification pattern; every other
// field degrades to its sentinel instead of rejecting the candidate.
func (b *Builder) Build(item RawItem) (key string, rec Record, ok bool) {
	title := strings.TrimSpace(item.Title)

	mag, ok := ExtractMagnification(title)
	if !ok {
		return "", Record{}, false
	}

	manufacturer := b.Manufacturer
	if manufacturer == "" {
		manufacturer = ExtractManufacturer(title)
	}
	series := ExtractSeries(title)

	description := strings.TrimSpace(item.Description)
	if description == "" {
		description = fmt.Sprintf("%s %s %s riflescope", manufacturer, series, formatMagnification(mag))
	}

	rec = Record{
		MinZoom:       mag.MinZoom,
		MaxZoom:       mag.MaxZoom,
		CurrentZoom:   mag.MinZoom,
		Model:         title,
		Description:   description,
		Manufacturer:  manufacturer,
		Price:         FormatPrice(item.PriceText),
		URL:           CanonicalURL(item.Link, b.BaseURL, b.FallbackURL),
		Series:        series,
		ObjectiveLens: mag.ObjectiveLens,
		Reticle:       b.Classifier.Classify(title, item.Description),
	}

	keyFn := b.Key
	if keyFn == nil {
		keyFn = SlugKey
	}
	return keyFn(b.Source, title, item.Index), rec, true
}

// formatMagnification renders a range as it appears in listings: "3-9x40",
// or "6x24" for fixed-power scopes.
func formatMagnification(m Magnification) string {
	min := strconv.FormatFloat(m.MinZoom, 'f', -1, 64)
	if m.MaxZoom == m.MinZoom {
		return fmt.Sprintf("%sx%d", min, m.ObjectiveLens)
	}
	max := strconv.FormatFloat(m.MaxZoom, 'f', -1, 64)
	return fmt.Sprintf("%s-%sx%d", min, max, m.ObjectiveLens)
}
