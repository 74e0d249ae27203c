package prices

import "context"

// Price is one item's latest guide price. Either side may be absent when the
// exchange has no recent trade on it.
type Price struct {
	ItemID int    `json:"item_id"`
	High   *int64 `json:"high,omitempty"`
	Low    *int64 `json:"low,omitempty"`
}

// Average returns the mean of whichever sides are present, or false when the
// price is unusable.
func (p Price) Average() (float64, bool) {
	switch {
	case p.High != nil && p.Low != nil:
		return float64(*p.High+*p.Low) / 2, true
	case p.High != nil:
		return float64(*p.High), true
	case p.Low != nil:
		return float64(*p.Low), true
	default:
		return 0, false
	}
}

// Oracle is the engine's view of the price feed. Prices may be stale within
// the cache TTL and absent ids are simply missing from the returned map;
// callers degrade absent prices to zero-value contributions.
type Oracle interface {
	Price(ctx context.Context, itemID int) (Price, bool)
	Prices(ctx context.Context, itemIDs []int) map[int]Price
}
