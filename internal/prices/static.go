package prices

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

// StaticOracle serves a fixed price book. Used by the ops CLI for offline
// runs and by tests as a deterministic double.
type StaticOracle struct {
	book map[int]Price
}

func NewStaticOracle(book map[int]float64) *StaticOracle {
	s := &StaticOracle{book: make(map[int]Price, len(book))}
	for id, avg := range book {
		v := int64(avg)
		s.book[id] = Price{ItemID: id, High: &v, Low: &v}
	}
	return s
}

// LoadStaticOracle reads a fixture file of the form {"526": 5, "995": 1}.
func LoadStaticOracle(path string) (*StaticOracle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read price fixture %s: %w", path, err)
	}
	var raw map[string]float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse price fixture %s: %w", path, err)
	}
	book := make(map[int]float64, len(raw))
	for key, avg := range raw {
		id, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("price fixture %s: bad item id %q", path, key)
		}
		book[id] = avg
	}
	return NewStaticOracle(book), nil
}

func (s *StaticOracle) Price(_ context.Context, itemID int) (Price, bool) {
	p, ok := s.book[itemID]
	return p, ok
}

func (s *StaticOracle) Prices(_ context.Context, itemIDs []int) map[int]Price {
	out := make(map[int]Price, len(itemIDs))
	for _, id := range itemIDs {
		if p, ok := s.book[id]; ok {
			out[id] = p
		}
	}
	return out
}
