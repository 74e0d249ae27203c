package catalog

import (
	"fmt"

	"github.com/jmac122/OSRS-Dashboard/internal/model"
)

// Malformed records are rejected here, at the catalog boundary, so that the
// engine never has to re-check shapes deep inside aggregation.

func ValidateMonster(m model.Monster) error {
	if m.Name == "" {
		return fmt.Errorf("monster %q: missing name", m.ID)
	}
	if m.SlayerLevelReq < 0 {
		return fmt.Errorf("monster %q: negative slayer level requirement", m.ID)
	}
	if !m.BaseKPHRange.Valid() {
		return fmt.Errorf("monster %q: invalid base kph range %v", m.ID, m.BaseKPHRange)
	}
	if m.BaseSupplyCostPerHour < 0 {
		return fmt.Errorf("monster %q: negative supply cost", m.ID)
	}
	tiers := map[string][]model.DropEntry{
		"always":    m.DropTable.Always,
		"common":    m.DropTable.Common,
		"rare":      m.DropTable.Rare,
		"very_rare": m.DropTable.VeryRare,
	}
	for tier, entries := range tiers {
		for i, e := range entries {
			if e.ItemID <= 0 {
				return fmt.Errorf("monster %q: %s drop %d: missing item id", m.ID, tier, i)
			}
			if e.Probability < 0 || e.Probability > 1 {
				return fmt.Errorf("monster %q: %s drop %d: probability %v outside [0,1]", m.ID, tier, i, e.Probability)
			}
			if !e.QuantityRange.Valid() {
				return fmt.Errorf("monster %q: %s drop %d: invalid quantity range %v", m.ID, tier, i, e.QuantityRange)
			}
		}
	}
	return nil
}

func ValidateMaster(m model.Master) error {
	if m.Name == "" {
		return fmt.Errorf("master %q: missing name", m.ID)
	}
	if m.CombatReq < 0 || m.SlayerReq < 0 {
		return fmt.Errorf("master %q: negative level requirement", m.ID)
	}
	if len(m.TaskAssignments) == 0 {
		return fmt.Errorf("master %q: empty task assignment table", m.ID)
	}
	for monsterID, weight := range m.TaskAssignments {
		if weight < 0 {
			return fmt.Errorf("master %q: negative assignment weight for %q", m.ID, monsterID)
		}
	}
	for monsterID, qty := range m.AvgTaskQuantity {
		if !qty.Valid() {
			return fmt.Errorf("master %q: invalid task quantity range for %q", m.ID, monsterID)
		}
	}
	return nil
}
