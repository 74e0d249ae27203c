package slayer

import (
	"log"

	"github.com/jmac122/OSRS-Dashboard/internal/model"
	"github.com/jmac122/OSRS-Dashboard/internal/prices"
)

// expectedLoot converts a tiered drop table into an expected GP-per-kill
// scalar against a prefetched price book. Entries without a usable price are
// skipped (logged, contribute zero) and counted in missing; a price gap must
// never abort an aggregate. An empty table yields exactly 0.
func expectedLoot(table model.DropTable, book map[int]prices.Price) (value float64, missing int) {
	for _, tier := range table.Tiers() {
		for _, entry := range tier {
			price, ok := book[entry.ItemID]
			if !ok {
				log.Printf("[slayer] no price for item %d, skipping drop", entry.ItemID)
				missing++
				continue
			}
			avg, ok := price.Average()
			if !ok {
				log.Printf("[slayer] empty price sides for item %d, skipping drop", entry.ItemID)
				missing++
				continue
			}
			value += avg * entry.QuantityRange.Mean() * entry.Probability
		}
	}
	return value, missing
}
