package overrides

import (
	"context"
	"fmt"
	"strings"
)

// Overrides is a per-user keyed parameter map that short-circuits engine
// heuristics. Known keys: "kph_<monster_id>", "supply_cost_multiplier".
type Overrides map[string]float64

// KPHFor returns the user's exact kills-per-hour override for a monster.
func (o Overrides) KPHFor(monsterID string) (float64, bool) {
	v, ok := o["kph_"+monsterID]
	return v, ok
}

// SupplyCostMultiplier returns the user's supply cost multiplier override.
func (o Overrides) SupplyCostMultiplier() (float64, bool) {
	v, ok := o["supply_cost_multiplier"]
	return v, ok
}

// Validate rejects override values that would corrupt a calculation. A kill
// rate override is used as a divisor, so it must be strictly positive.
func Validate(param string, value float64) error {
	switch {
	case strings.HasPrefix(param, "kph_"):
		if value <= 0 {
			return fmt.Errorf("override %s: kills per hour must be positive, got %v", param, value)
		}
	case param == "supply_cost_multiplier":
		if value < 0 {
			return fmt.Errorf("override %s: multiplier must be non-negative, got %v", param, value)
		}
	default:
		return fmt.Errorf("unknown override parameter %q", param)
	}
	return nil
}

// Reader fetches a user's overrides. An unknown user yields an empty map,
// not an error.
type Reader interface {
	Get(ctx context.Context, userID string) (Overrides, error)
}
