package scope

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractMagnification(t *testing.T) {
	testCases := []struct {
		title     string
		minZoom   float64
		maxZoom   float64
		objective int
		ok        bool
	}{
		{"Leupold VX-Freedom 3-9x40 Duplex", 3, 9, 40, true},
		{"Unbranded 6x24 Tactical Scope", 6, 6, 24, true},
		{"VX-Freedom 1.5-4x20 MOA-Ring", 1.5, 4, 20, true},
		{"Leupold VX-3i 3.5-10x40 CDS", 3.5, 10, 40, true},
		{"Vortex Diamondback Tactical 6-24X50 FFP", 6, 24, 50, true},
		{"Rifle Scope Mounting Rings 30mm", 0, 0, 0, false},
		{"Lens Covers for Riflescopes", 0, 0, 0, false},
		{"", 0, 0, 0, false},
	}

	for _, tc := range testCases {
		mag, ok := ExtractMagnification(tc.title)
		assert.Equal(t, tc.ok, ok, "title: %s", tc.title)
		if !tc.ok {
			continue
		}
		assert.Equal(t, tc.minZoom, mag.MinZoom, "title: %s", tc.title)
		assert.Equal(t, tc.maxZoom, mag.MaxZoom, "title: %s", tc.title)
		assert.Equal(t, tc.objective, mag.ObjectiveLens, "title: %s", tc.title)
	}
}

func TestExtractManufacturer(t *testing.T) {
	testCases := []struct {
		title    string
		expected string
	}{
		{"Leupold VX-Freedom 3-9x40 Duplex", "Leupold"},
		{"VORTEX Diamondback 4-12x40", "Vortex"},
		{"Primary Arms SLx 1-6x24", "Primary Arms"},
		{"sig sauer Whiskey3 3-9x40", "Sig Sauer"},
		{"Unbranded 6x24 Tactical Scope", "Unbranded"},
		{"", "Unknown"},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, ExtractManufacturer(tc.title), "title: %s", tc.title)
	}
}

func TestExtractSeries(t *testing.T) {
	testCases := []struct {
		title    string
		expected string
	}{
		{"Leupold VX-Freedom 3-9x40 Duplex", "VX-Freedom"},
		{"Mark 3HD 4-12x40 TMOA", "Mark 3HD"},
		{"Vortex Diamondback Tactical 6-24x50", "Diamondback"},
		{"Vortex Viper PST Gen II 5-25x50", "Viper"},
		{"Unbranded 6x24 Tactical Scope", "Tactical"},
		{"Plain 3-9x40 Scope", "Standard"},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, ExtractSeries(tc.title), "title: %s", tc.title)
	}
}

func TestFormatPrice(t *testing.T) {
	testCases := []struct {
		raw      string
		expected string
	}{
		{"$199.99", "$199.99"},
		{"199.99", "$199.99"},
		{"$20.00", "$20.00"}, // exactly at the plausibility floor
		{"$5.00", PriceNotAvailable},
		{"$19.99", PriceNotAvailable},
		{"no price here", PriceNotAvailable},
		{"", PriceNotAvailable},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, FormatPrice(tc.raw), "raw: %q", tc.raw)
	}
}

func TestCanonicalURL(t *testing.T) {
	base := "https://www.leupold.com"
	fallback := "https://www.leupold.com/shop/riflescopes"

	testCases := []struct {
		raw      string
		expected string
	}{
		{"/vx-freedom-3-9x40", "https://www.leupold.com/vx-freedom-3-9x40"},
		{"/vx-freedom-3-9x40?tab=specs", "https://www.leupold.com/vx-freedom-3-9x40"},
		{"https://www.leupold.com/mark-3hd?a=1&b=2", "https://www.leupold.com/mark-3hd"},
		{"javascript:void(0)", fallback},
		{"#", fallback},
		{"", fallback},
		{"   ", fallback},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, CanonicalURL(tc.raw, base, fallback), "raw: %q", tc.raw)
	}
}
