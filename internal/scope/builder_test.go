package scope

import (
	"testing"

	"kwestendorf/scopeworker/internal/reticle"

	"github.com/stretchr/testify/assert"
)

func leupoldBuilder() *Builder {
	return &Builder{
		Source:       "leupold",
		BaseURL:      "https://www.leupold.com",
		FallbackURL:  "https://www.leupold.com/shop/riflescopes",
		Manufacturer: "Leupold",
		Classifier:   reticle.NewLeupoldClassifier(),
		Key:          SlugKey,
	}
}

func amazonBuilder() *Builder {
	return &Builder{
		Source:      "amazon",
		BaseURL:     "https://www.amazon.com",
		FallbackURL: "https://www.amazon.com/s?k=rifle+scope",
		Classifier:  reticle.NewBasicClassifier(),
		Key:         IndexedSlugKey,
	}
}

func TestBuildLeupoldRecord(t *testing.T) {
	b := leupoldBuilder()

	key, rec, ok := b.Build(RawItem{
		Title:     "Leupold VX-Freedom 3-9x40 Duplex",
		PriceText: "$199.99",
		Link:      "/vx-freedom-3-9x40",
	})
	assert.True(t, ok)
	assert.Equal(t, "leupold-vx-freedom-3-9x40-duplex", key)
	assert.Equal(t, 3.0, rec.MinZoom)
	assert.Equal(t, 9.0, rec.MaxZoom)
	assert.Equal(t, 3.0, rec.CurrentZoom)
	assert.Equal(t, 40, rec.ObjectiveLens)
	assert.Equal(t, "Leupold", rec.Manufacturer)
	assert.Equal(t, "VX-Freedom", rec.Series)
	assert.Equal(t, "$199.99", rec.Price)
	assert.Equal(t, "https://www.leupold.com/vx-freedom-3-9x40", rec.URL)
	assert.Equal(t, "Duplex", rec.Reticle.TypeName)
	assert.True(t, rec.Valid())
}

func TestBuildUnbrandedRecord(t *testing.T) {
	b := amazonBuilder()

	key, rec, ok := b.Build(RawItem{
		Title: "Unbranded 6x24 Tactical Scope",
		Index: 7,
	})
	assert.True(t, ok)
	assert.Equal(t, "amazon-unbranded-6x24-tactical-scope-7", key)
	assert.Equal(t, 6.0, rec.MinZoom)
	assert.Equal(t, 6.0, rec.MaxZoom)
	assert.Equal(t, 24, rec.ObjectiveLens)
	// First token fallback for the manufacturer
	assert.Equal(t, "Unbranded", rec.Manufacturer)
	assert.Equal(t, "Tactical", rec.Series)
	// No keyword evidence at all still classifies
	assert.Equal(t, "Duplex", rec.Reticle.TypeName)
	assert.Equal(t, PriceNotAvailable, rec.Price)
	// Absent link collapses to the source's fallback search URL
	assert.Equal(t, "https://www.amazon.com/s?k=rifle+scope", rec.URL)
	assert.True(t, rec.Valid())
}

func TestBuildRejectsWithoutMagnification(t *testing.T) {
	b := leupoldBuilder()

	_, _, ok := b.Build(RawItem{
		Title:     "Scope Mounting Rings 30mm",
		PriceText: "$49.99",
		Link:      "/rings",
	})
	assert.False(t, ok)
}

// An implausibly low price nulls only the price; the record survives.
func TestBuildLowPriceKeepsRecord(t *testing.T) {
	b := amazonBuilder()

	_, rec, ok := b.Build(RawItem{
		Title:     "Vortex Diamondback 4-12x40",
		PriceText: "$5.00",
	})
	assert.True(t, ok)
	assert.Equal(t, PriceNotAvailable, rec.Price)
	assert.Equal(t, "Vortex", rec.Manufacturer)
}

func TestBuildSynthesizesDescription(t *testing.T) {
	b := leupoldBuilder()

	_, rec, ok := b.Build(RawItem{Title: "VX-Freedom 1.5-4x20 Pig-Plex"})
	assert.True(t, ok)
	assert.Equal(t, "Leupold VX-Freedom 1.5-4x20 riflescope", rec.Description)

	_, rec, ok = b.Build(RawItem{
		Title:       "VX-Freedom 1.5-4x20 Pig-Plex",
		Description: "Compact scope with specialized reticle for pig hunting",
	})
	assert.True(t, ok)
	assert.Equal(t, "Compact scope with specialized reticle for pig hunting", rec.Description)
}

func TestBuildDefaultKeyStrategy(t *testing.T) {
	b := leupoldBuilder()
	b.Key = nil

	key, _, ok := b.Build(RawItem{Title: "Mark 3HD 4-12x40 TMOA"})
	assert.True(t, ok)
	assert.Equal(t, "mark-3hd-4-12x40-tmoa", key)
}
