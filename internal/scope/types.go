package scope

import "kwestendorf/scopeworker/internal/reticle"

// Record is the canonical representation of one listed riflescope. A record
// models the scope "as listed": CurrentZoom always equals MinZoom at
// creation, it is the consumer's simulator that dials it afterwards.
//
// The JSON field names are the persisted wire format; numeric fields stay
// numeric and the reticle is always a nested object, never omitted.
type Record struct {
	MinZoom       float64            `json:"minZoom"`
	MaxZoom       float64            `json:"maxZoom"`
	CurrentZoom   float64            `json:"currentZoom"`
	Model         string             `json:"model"`
	Description   string             `json:"description"`
	Manufacturer  string             `json:"manufacturer"`
	Price         string             `json:"price"`
	URL           string             `json:"url"`
	Series        string             `json:"series"`
	ObjectiveLens int                `json:"objectiveLens"`
	Reticle       reticle.Descriptor `json:"reticle"`
}

// Valid reports whether the record satisfies its structural invariants.
func (r Record) Valid() bool {
	if r.MinZoom <= 0 || r.MaxZoom < r.MinZoom {
		return false
	}
	if r.CurrentZoom != r.MinZoom {
		return false
	}
	if r.ObjectiveLens <= 0 || r.Model == "" {
		return false
	}
	return r.Reticle.TypeName != ""
}
