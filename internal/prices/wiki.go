package prices

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"context"

	gocache "github.com/patrickmn/go-cache"
)

// WikiClient fetches latest Grand Exchange prices from the wiki price API and
// memoizes them in a TTL cache. Safe for concurrent use.
type WikiClient struct {
	baseURL   string
	userAgent string
	http      *http.Client
	cache     *gocache.Cache
}

type WikiOption func(*WikiClient)

func WithUserAgent(ua string) WikiOption {
	return func(c *WikiClient) { c.userAgent = ua }
}

func WithTimeout(d time.Duration) WikiOption {
	return func(c *WikiClient) { c.http.Timeout = d }
}

func WithCacheTTL(ttl time.Duration) WikiOption {
	return func(c *WikiClient) { c.cache = gocache.New(ttl, 2*ttl) }
}

func NewWikiClient(baseURL string, opts ...WikiOption) *WikiClient {
	c := &WikiClient{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: "OSRS GP Tracker - Local Development App - Version 1.0",
		http:      &http.Client{Timeout: 10 * time.Second},
		cache:     gocache.New(5*time.Minute, 10*time.Minute),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Price returns the cached or freshly fetched price for one item.
func (c *WikiClient) Price(ctx context.Context, itemID int) (Price, bool) {
	got := c.Prices(ctx, []int{itemID})
	p, ok := got[itemID]
	return p, ok
}

// Prices resolves a batch of item ids, hitting the API once for whatever the
// cache is missing. A failed fetch degrades to absent entries; it never
// returns an error because per-item price failures must not abort a
// calculation.
func (c *WikiClient) Prices(ctx context.Context, itemIDs []int) map[int]Price {
	out := make(map[int]Price, len(itemIDs))
	var missing []int
	for _, id := range itemIDs {
		if v, hit := c.cache.Get(cacheKey(id)); hit {
			out[id] = v.(Price)
			continue
		}
		missing = append(missing, id)
	}
	if len(missing) == 0 {
		return out
	}

	fetched, err := c.fetchLatest(ctx, missing)
	if err != nil {
		log.Printf("[prices] fetch failed for %d item(s): %v", len(missing), err)
		return out
	}
	for id, p := range fetched {
		c.cache.SetDefault(cacheKey(id), p)
		out[id] = p
	}
	for _, id := range missing {
		if _, ok := fetched[id]; !ok {
			log.Printf("[prices] no price data for item %d", id)
		}
	}
	return out
}

type latestResponse struct {
	Data map[string]struct {
		High *int64 `json:"high"`
		Low  *int64 `json:"low"`
	} `json:"data"`
}

func (c *WikiClient) fetchLatest(ctx context.Context, itemIDs []int) (map[int]Price, error) {
	ids := make([]string, len(itemIDs))
	for i, id := range itemIDs {
		ids[i] = strconv.Itoa(id)
	}
	url := c.baseURL + "/latest?id=" + strings.Join(ids, ",")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating price request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("price API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("price API returned status %d", resp.StatusCode)
	}

	var body latestResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decoding price response: %w", err)
	}

	out := make(map[int]Price, len(body.Data))
	for key, entry := range body.Data {
		id, err := strconv.Atoi(key)
		if err != nil {
			continue
		}
		if entry.High == nil && entry.Low == nil {
			continue
		}
		out[id] = Price{ItemID: id, High: entry.High, Low: entry.Low}
	}
	return out, nil
}

func cacheKey(itemID int) string {
	return "item_" + strconv.Itoa(itemID)
}
