package slayer

import (
	"github.com/jmac122/OSRS-Dashboard/internal/model"
	"github.com/jmac122/OSRS-Dashboard/internal/overrides"
)

// adjustSupplyCost scales a monster's baseline hourly consumable cost by the
// user's efficiency. An override multiplier short-circuits the heuristic.
func adjustSupplyCost(baseCost float64, levels model.UserLevels, ov overrides.Overrides) float64 {
	if mult, ok := ov.SupplyCostMultiplier(); ok {
		return baseCost * mult
	}
	if baseCost <= 0 {
		return baseCost
	}

	// Higher combat burns fewer supplies, 0.7 to 1.3.
	efficiency := clamp(1-(float64(levels.Combat)-90)/200, 0.7, 1.3)
	return baseCost * efficiency
}
