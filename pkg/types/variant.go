package types

import (
	"errors"
	"fmt"
	"strings"
)

// Variant selects how the root identifier reaches the recursive query.
type Variant string

const (
	// VariantBound prepares the query and binds the root as a parameter.
	VariantBound Variant = "bound"
	// VariantLiteral inlines the root into the query text before compilation.
	VariantLiteral Variant = "literal"
)

// ErrVariantUnknown is returned by ParseVariant for unrecognized names.
var ErrVariantUnknown = errors.New("unknown variant")

// AllVariants lists the variants in their default run order.
var AllVariants = []Variant{VariantBound, VariantLiteral}

// ParseVariant accepts "bound"/"prepared" and "literal"/"static", case-insensitive.
func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bound", "prepared":
		return VariantBound, nil
	case "literal", "static":
		return VariantLiteral, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrVariantUnknown, s)
	}
}

// Describe returns the label printed before the variant runs.
func (v Variant) Describe() string {
	switch v {
	case VariantBound:
		return "prepared statement"
	case VariantLiteral:
		return "statement"
	default:
		return string(v)
	}
}
