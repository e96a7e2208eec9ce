package reticle

import "sort"

// Descriptor is an immutable catalog entry describing one reticle pattern.
// Entries are created at process start from the static tables below and are
// never mutated.
type Descriptor struct {
	TypeName    string `json:"type"`
	Description string `json:"description"`
	VisualPath  string `json:"svgPath,omitempty"`
	ImageRef    string `json:"imageUrl,omitempty"`
}

// Catalog maps canonical reticle type names to their descriptors.
type Catalog map[string]Descriptor

// Get returns the descriptor for a type name.
func (c Catalog) Get(typeName string) (Descriptor, bool) {
	d, ok := c[typeName]
	return d, ok
}

// Baseline returns the catalog's default entry, used when classification
// finds no match. Every catalog carries a Duplex entry.
func (c Catalog) Baseline() Descriptor {
	return c["Duplex"]
}

// List returns all descriptors sorted by type name.
func (c Catalog) List() []Descriptor {
	out := make([]Descriptor, 0, len(c))
	for _, d := range c {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TypeName < out[j].TypeName })
	return out
}

// LeupoldCatalog covers the reticle line-up found on Leupold catalog pages.
var LeupoldCatalog = Catalog{
	"Duplex": {
		TypeName:    "Duplex",
		Description: "Classic crosshair design with thicker outer posts that taper to a fine center, perfect for low-light hunting conditions.",
		VisualPath:  "M50,0 V40 M50,60 V100 M0,50 H40 M60,50 H100",
	},
	"FireDot Duplex": {
		TypeName:    "FireDot Duplex",
		Description: "Illuminated center dot version of the Duplex reticle, ideal for low-light hunting situations.",
		VisualPath:  "M50,0 V40 M50,60 V100 M0,50 H40 M60,50 H100 M48,48 h4 v4 h-4 z",
	},
	"FireDot TMR": {
		TypeName:    "FireDot TMR",
		Description: "Illuminated Tactical Milling Reticle with center dot, combining precision ranging with low-light performance.",
		VisualPath:  "M50,0 V40 M50,60 V100 M0,50 H40 M60,50 H100 M48,48 h4 v4 h-4 z M35,50 h2 M45,50 h2 M55,50 h2 M65,50 h2",
	},
	"TMR": {
		TypeName:    "TMR",
		Description: "Tactical Milling Reticle designed for range estimation and holdover compensation.",
		VisualPath:  "M50,0 V40 M50,60 V100 M0,50 H40 M60,50 H100 M35,50 h2 M45,50 h2 M55,50 h2 M65,50 h2",
	},
	"Wind-Plex": {
		TypeName:    "Wind-Plex",
		Description: "Features wind drift dots and hash marks for windage compensation without elevation marks, perfect for use with CDS.",
		VisualPath:  "M50,0 V100 M0,50 H100 M35,50 h2 M45,50 h2 M55,50 h2 M65,50 h2",
	},
	"TMOA": {
		TypeName:    "TMOA",
		Description: "Tactical MOA reticle with 0.5 MOA heavy lines, 0.1 MOA fine lines, and 0.2 MOA center for precise long-range shooting.",
		VisualPath:  "M50,0 V100 M0,50 H100 M45,45 h10 v10 h-10 z M40,50 h2 M58,50 h2 M50,40 v2 M50,58 v2",
	},
	"PR1-MOA": {
		TypeName:    "PR1-MOA",
		Description: "Precision Ranging MOA reticle with fine hashmarks for precise ranging and holdovers.",
		VisualPath:  "M50,0 V100 M0,50 H100 M45,45 h10 v10 h-10 z M40,50 h1 M45,50 h1 M55,50 h1 M60,50 h1",
	},
	"HPR-1": {
		TypeName:    "HPR-1",
		Description: "High Precision Ranging reticle optimized for competition shooting with fine crosshairs.",
		VisualPath:  "M50,0 V100 M0,50 H100 M45,45 h10 v10 h-10 z",
	},
	"MilDot": {
		TypeName:    "MilDot",
		Description: "Military standard reticle with dots spaced at 1 mil intervals for range estimation.",
		VisualPath:  "M50,0 V100 M0,50 H100 M48,48 h4 v4 h-4 z M35,50 h4 v4 h-4 z M65,50 h4 v4 h-4 z",
	},
	"FireDot BDC": {
		TypeName:    "FireDot BDC",
		Description: "Illuminated Bullet Drop Compensation reticle for quick holdovers at known distances.",
		VisualPath:  "M50,0 V40 M50,60 V100 M0,50 H40 M60,50 H100 M48,48 h4 v4 h-4 z M50,70 h4 M50,80 h4 M50,90 h4",
	},
	"Boone and Crockett": {
		TypeName:    "Boone and Crockett",
		Description: "Specialized hunting reticle with bullet drop compensation out to 500 yards, ideal for big game hunting.",
		VisualPath:  "M50,0 V100 M0,50 H100 M45,45 h10 v10 h-10 z M40,60 h20 M40,70 h20 M40,80 h20",
	},
	"MOA-Ring": {
		TypeName:    "MOA-Ring",
		Description: "Features a circle reticle with MOA hash marks for precise ranging and holdovers, excellent for quick target acquisition.",
		VisualPath:  "M50,0 V100 M0,50 H100 M50,20 m-30,30 a30,30 0 1,0 60,0 a30,30 0 1,0 -60,0",
	},
	"UltimateSlam": {
		TypeName:    "UltimateSlam",
		Description: "Specialized for slug guns and muzzleloaders with ballistic circles for different ranges.",
		VisualPath:  "M50,0 V100 M0,50 H100 M50,30 m-20,20 a20,20 0 1,0 40,0 a20,20 0 1,0 -40,0 M50,20 m-30,30 a30,30 0 1,0 60,0 a30,30 0 1,0 -60,0",
	},
	"AR-Ballistic": {
		TypeName:    "AR-Ballistic",
		Description: "Specialized for 223Rem/5.56NATO with bullet drop compensation and wind drift holds at 300, 400, and 500 yards.",
		VisualPath:  "M50,0 V100 M0,50 H100 M40,60 h20 M35,70 h30 M30,80 h40",
	},
	"Pig-Plex": {
		TypeName:    "Pig-Plex",
		Description: "Specialized reticle designed for pig hunting with heavy posts and an illuminated center, optimized for quick target acquisition in brush.",
		VisualPath:  "M50,0 V35 M50,65 V100 M0,50 H35 M65,50 H100 M50,35 L65,50 L50,65 L35,50 Z",
	},
	"Hunt-Plex": {
		TypeName:    "Hunt-Plex",
		Description: "Modified duplex reticle optimized for hunting with additional reference points for improved accuracy at various ranges.",
		VisualPath:  "M50,0 V40 M50,60 V100 M0,50 H40 M60,50 H100 M45,45 h10 v10 h-10 z M40,55 h5 M55,55 h5",
	},
}

// BasicCatalog is a reduced catalog for marketplace listings, where titles
// rarely name a specific reticle variant.
var BasicCatalog = Catalog{
	"Duplex": {
		TypeName:    "Duplex",
		Description: "Classic crosshair design with thicker outer posts that taper to a fine center.",
		VisualPath:  "M50,0 V40 M50,60 V100 M0,50 H40 M60,50 H100",
	},
	"Mil-Dot": {
		TypeName:    "Mil-Dot",
		Description: "Military standard reticle with dots spaced at 1 mil intervals for range estimation.",
		VisualPath:  "M50,0 V100 M0,50 H100 M48,48 h4 v4 h-4 z M35,50 h4 v4 h-4 z M65,50 h4 v4 h-4 z",
	},
	"BDC": {
		TypeName:    "BDC",
		Description: "Bullet Drop Compensation reticle for quick holdovers at known distances.",
		VisualPath:  "M50,0 V40 M50,60 V100 M0,50 H40 M60,50 H100 M50,70 h4 M50,80 h4 M50,90 h4",
	},
	"Illuminated": {
		TypeName:    "Illuminated",
		Description: "Illuminated reticle for low-light conditions.",
		VisualPath:  "M50,0 V40 M50,60 V100 M0,50 H40 M60,50 H100 M48,48 h4 v4 h-4 z",
	},
}
