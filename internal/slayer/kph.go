package slayer

import (
	"log"
	"math"
	"strings"

	"github.com/jmac122/OSRS-Dashboard/internal/model"
	"github.com/jmac122/OSRS-Dashboard/internal/overrides"
)

// estimateKPH converts monster stats and user levels into a kills-per-hour
// estimate. A user override short-circuits the heuristic and is returned
// verbatim. The estimated flag marks the fallback constant used when the
// catalog's base range is unusable.
func (e *Engine) estimateKPH(m model.Monster, levels model.UserLevels, ov overrides.Overrides) (kph float64, estimated bool) {
	if v, ok := ov.KPHFor(m.ID); ok {
		return v, false
	}

	base := m.BaseKPHRange.Mean()
	if base <= 0 {
		log.Printf("[slayer] %s: unusable base kph range %v, falling back to %.0f kph", m.ID, m.BaseKPHRange, e.Tuning.FallbackKPH)
		return e.Tuning.FallbackKPH, true
	}

	// Combat level efficiency factor, 0.6 to 1.1.
	combatEff := clamp(float64(levels.Combat)/math.Max(float64(m.CombatLevel), 80), 0.6, 1.1)

	// Small bonus for being well above the slayer requirement.
	slayerBonus := 1 + math.Min(0.1, float64(levels.Slayer-m.SlayerLevelReq)/200)

	weaknessBonus := weaknessBonusFor(m.Weakness, levels)

	adjusted := base * combatEff * slayerBonus * weaknessBonus

	// Clamp to 50%..150% of base.
	return clamp(adjusted, 0.5*base, 1.5*base), false
}

func weaknessBonusFor(weakness string, levels model.UserLevels) float64 {
	w := strings.ToLower(weakness)
	switch {
	case strings.Contains(w, "melee"), strings.Contains(w, "slash"), strings.Contains(w, "crush"):
		return 1 + (levels.MeleeAverage()-70)/300
	case strings.Contains(w, "ranged"):
		return 1 + (float64(levels.Ranged)-70)/300
	case strings.Contains(w, "magic"):
		return 1 + (float64(levels.Magic)-70)/300
	default:
		return 1.0
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
