package instance

import (
	"fmt"
	"strings"
)

// Variant selects how many units of each item a solution may take.
type Variant int

const (
	// Bounded is the 0/1 knapsack: each item is taken at most once.
	Bounded Variant = iota

	// Unbounded allows any non-negative number of units of each item.
	Unbounded
)

// String returns "bounded" or "unbounded".
func (v Variant) String() string {
	switch v {
	case Bounded:
		return "bounded"
	case Unbounded:
		return "unbounded"
	default:
		return fmt.Sprintf("Variant(%d)", int(v))
	}
}

// ParseVariant resolves a variant name ("bounded", "0-1", "01", "unbounded").
func ParseVariant(name string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "bounded", "0-1", "01", "binary":
		return Bounded, nil
	case "unbounded":
		return Unbounded, nil
	default:
		return 0, fmt.Errorf("instance: unknown variant %q", name)
	}
}
