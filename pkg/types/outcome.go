package types

import "fmt"

// Outcome is what one scenario observed.
type Outcome struct {
	Variant  Variant  `json:"variant"`
	Engine   string   `json:"engine"`
	Instance string   `json:"instance"`
	Columns  []string `json:"columns"`
	IDs      []int    `json:"ids"`
	Count    int      `json:"count"`
}

// Divergence kinds.
const (
	DivergenceCount   = "count"
	DivergenceRows    = "rows"
	DivergenceVariant = "variant"
)

// Divergence records one way an outcome disagrees with the expected result
// or with another variant.
type Divergence struct {
	Kind     string  `json:"kind"`
	Variant  Variant `json:"variant"`
	Other    Variant `json:"other,omitempty"`
	Expected string  `json:"expected"`
	Actual   string  `json:"actual"`
}

// String formats the divergence as one line.
func (d Divergence) String() string {
	switch d.Kind {
	case DivergenceVariant:
		return fmt.Sprintf("%s disagrees with %s: %s vs %s", d.Variant, d.Other, d.Actual, d.Expected)
	default:
		return fmt.Sprintf("%s %s: expected %s, got %s", d.Variant, d.Kind, d.Expected, d.Actual)
	}
}
