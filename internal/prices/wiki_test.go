package prices

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriceAverage(t *testing.T) {
	n := func(v int64) *int64 { return &v }

	tests := []struct {
		name  string
		price Price
		want  float64
		ok    bool
	}{
		{"both sides", Price{High: n(110), Low: n(90)}, 100, true},
		{"high only", Price{High: n(110)}, 110, true},
		{"low only", Price{Low: n(90)}, 90, true},
		{"no sides", Price{}, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.price.Average()
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWikiClient(t *testing.T) {
	ctx := context.Background()

	t.Run("batches ids into one request", func(t *testing.T) {
		var calls atomic.Int64
		var lastQuery string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			lastQuery = r.URL.RawQuery
			assert.Equal(t, "/latest", r.URL.Path)
			fmt.Fprint(w, `{"data":{"526":{"high":6,"low":4},"995":{"high":1,"low":1}}}`)
		}))
		defer srv.Close()

		c := NewWikiClient(srv.URL)
		got := c.Prices(ctx, []int{526, 995})

		assert.Equal(t, int64(1), calls.Load())
		assert.Equal(t, "id=526,995", lastQuery)
		require.Contains(t, got, 526)
		avg, ok := got[526].Average()
		require.True(t, ok)
		assert.Equal(t, 5.0, avg)
	})

	t.Run("serves repeat lookups from cache", func(t *testing.T) {
		var calls atomic.Int64
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			fmt.Fprint(w, `{"data":{"526":{"high":6,"low":4}}}`)
		}))
		defer srv.Close()

		c := NewWikiClient(srv.URL, WithCacheTTL(time.Minute))
		_, ok := c.Price(ctx, 526)
		require.True(t, ok)
		_, ok = c.Price(ctx, 526)
		require.True(t, ok)

		assert.Equal(t, int64(1), calls.Load())
	})

	t.Run("sends the configured user agent", func(t *testing.T) {
		var gotUA string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotUA = r.Header.Get("User-Agent")
			fmt.Fprint(w, `{"data":{}}`)
		}))
		defer srv.Close()

		c := NewWikiClient(srv.URL, WithUserAgent("test-agent/1.0"))
		c.Prices(ctx, []int{526})
		assert.Equal(t, "test-agent/1.0", gotUA)
	})

	t.Run("degrades to absent entries on server error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "down", http.StatusBadGateway)
		}))
		defer srv.Close()

		c := NewWikiClient(srv.URL)
		got := c.Prices(ctx, []int{526})
		assert.Empty(t, got)
	})

	t.Run("skips entries with no trade data", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"data":{"526":{"high":null,"low":null},"995":{"high":1,"low":1}}}`)
		}))
		defer srv.Close()

		c := NewWikiClient(srv.URL)
		got := c.Prices(ctx, []int{526, 995})
		assert.NotContains(t, got, 526)
		assert.Contains(t, got, 995)
	})
}

func TestStaticOracle(t *testing.T) {
	ctx := context.Background()
	s := NewStaticOracle(map[int]float64{526: 5})

	p, ok := s.Price(ctx, 526)
	require.True(t, ok)
	avg, ok := p.Average()
	require.True(t, ok)
	assert.Equal(t, 5.0, avg)

	_, ok = s.Price(ctx, 4151)
	assert.False(t, ok)

	got := s.Prices(ctx, []int{526, 4151})
	assert.Len(t, got, 1)
}
