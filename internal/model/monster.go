package model

// Range is an inclusive [min, max] pair, serialized as a two-element
// array to match the catalog's wire format.
type Range [2]float64

func (r Range) Min() float64 { return r[0] }
func (r Range) Max() float64 { return r[1] }

// Mean is the midpoint of the range.
func (r Range) Mean() float64 { return (r[0] + r[1]) / 2 }

// Valid reports whether the range is ordered and non-negative.
func (r Range) Valid() bool { return r[0] >= 0 && r[0] <= r[1] }

// DropEntry is a single line of a monster's drop table.
type DropEntry struct {
	ItemID        int     `json:"item_id"`
	QuantityRange Range   `json:"quantity_range"`
	Probability   float64 `json:"probability"`
}

// DropTable groups drop entries by rarity tier.
type DropTable struct {
	Always   []DropEntry `json:"always,omitempty"`
	Common   []DropEntry `json:"common,omitempty"`
	Rare     []DropEntry `json:"rare,omitempty"`
	VeryRare []DropEntry `json:"very_rare,omitempty"`
}

// Tiers returns the tiers in a fixed order so iteration is deterministic.
func (dt DropTable) Tiers() [][]DropEntry {
	return [][]DropEntry{dt.Always, dt.Common, dt.Rare, dt.VeryRare}
}

// Entries returns every drop entry across all tiers.
func (dt DropTable) Entries() []DropEntry {
	var out []DropEntry
	for _, tier := range dt.Tiers() {
		out = append(out, tier...)
	}
	return out
}

// ItemIDs returns the distinct item ids referenced by the table.
func (dt DropTable) ItemIDs() []int {
	seen := map[int]bool{}
	var ids []int
	for _, e := range dt.Entries() {
		if !seen[e.ItemID] {
			seen[e.ItemID] = true
			ids = append(ids, e.ItemID)
		}
	}
	return ids
}

// Monster is a killable slayer target. GP values are never stored on the
// record; they are recomputed from live prices on every calculation.
type Monster struct {
	ID                    string    `json:"id"`
	Name                  string    `json:"name"`
	SlayerLevelReq        int       `json:"slayer_level_req"`
	CombatLevelReq        int       `json:"combat_level_req"`
	CombatLevel           int       `json:"combat_level"`
	HP                    int       `json:"monster_hp"`
	Weakness              string    `json:"weakness"`
	DropTable             DropTable `json:"drop_table"`
	BaseKPHRange          Range     `json:"base_kph_range"`
	BaseSupplyCostPerHour float64   `json:"common_supply_cost_per_hour_base"`
	RequiredItems         []int     `json:"required_items,omitempty"`
	Notes                 string    `json:"notes,omitempty"`
	WikiURL               string    `json:"wiki_url,omitempty"`
}
