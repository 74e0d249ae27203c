package overrides

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverridesKeys(t *testing.T) {
	ov := Overrides{
		"kph_gargoyles":          420,
		"supply_cost_multiplier": 0.8,
	}

	kph, ok := ov.KPHFor("gargoyles")
	require.True(t, ok)
	assert.Equal(t, 420.0, kph)

	_, ok = ov.KPHFor("abyssal_demons")
	assert.False(t, ok)

	mult, ok := ov.SupplyCostMultiplier()
	require.True(t, ok)
	assert.Equal(t, 0.8, mult)

	var empty Overrides
	_, ok = empty.KPHFor("gargoyles")
	assert.False(t, ok)
	_, ok = empty.SupplyCostMultiplier()
	assert.False(t, ok)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		param   string
		value   float64
		wantErr bool
	}{
		{"positive kph", "kph_gargoyles", 420, false},
		{"zero kph", "kph_gargoyles", 0, true},
		{"negative kph", "kph_gargoyles", -5, true},
		{"zero multiplier", "supply_cost_multiplier", 0, false},
		{"positive multiplier", "supply_cost_multiplier", 1.2, false},
		{"negative multiplier", "supply_cost_multiplier", -0.1, true},
		{"unknown param", "favourite_colour", 1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.param, tt.value)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMemoryRepo(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepo()

	t.Run("unknown user yields empty map", func(t *testing.T) {
		ov, err := repo.Get(ctx, "nobody")
		require.NoError(t, err)
		assert.Empty(t, ov)
	})

	t.Run("set then get round trips", func(t *testing.T) {
		require.NoError(t, repo.Set(ctx, "u1", "kph_gargoyles", 400))
		require.NoError(t, repo.Set(ctx, "u1", "kph_gargoyles", 425)) // overwrite
		require.NoError(t, repo.Set(ctx, "u2", "kph_gargoyles", 300))

		ov, err := repo.Get(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, Overrides{"kph_gargoyles": 425}, ov)
	})

	t.Run("delete removes one param", func(t *testing.T) {
		require.NoError(t, repo.Set(ctx, "u3", "kph_gargoyles", 400))
		require.NoError(t, repo.Set(ctx, "u3", "supply_cost_multiplier", 0.9))
		require.NoError(t, repo.Delete(ctx, "u3", "kph_gargoyles"))

		ov, err := repo.Get(ctx, "u3")
		require.NoError(t, err)
		assert.Equal(t, Overrides{"supply_cost_multiplier": 0.9}, ov)
	})

	t.Run("returned map is a copy", func(t *testing.T) {
		require.NoError(t, repo.Set(ctx, "u4", "kph_gargoyles", 400))
		ov, err := repo.Get(ctx, "u4")
		require.NoError(t, err)
		ov["kph_gargoyles"] = 999

		again, err := repo.Get(ctx, "u4")
		require.NoError(t, err)
		assert.Equal(t, 400.0, again["kph_gargoyles"])
	})
}

func TestSQLiteRepo(t *testing.T) {
	ctx := context.Background()
	repo, err := OpenSQLite(filepath.Join(t.TempDir(), "overrides.db"))
	require.NoError(t, err)
	defer repo.Close()

	ov, err := repo.Get(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, ov)

	require.NoError(t, repo.Set(ctx, "u1", "kph_gargoyles", 400))
	require.NoError(t, repo.Set(ctx, "u1", "kph_gargoyles", 425)) // upsert
	require.NoError(t, repo.Set(ctx, "u1", "supply_cost_multiplier", 0.8))
	require.NoError(t, repo.Set(ctx, "u2", "kph_gargoyles", 300))

	ov, err = repo.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, Overrides{"kph_gargoyles": 425, "supply_cost_multiplier": 0.8}, ov)

	require.NoError(t, repo.Delete(ctx, "u1", "supply_cost_multiplier"))
	ov, err = repo.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, Overrides{"kph_gargoyles": 425}, ov)

	ov, err = repo.Get(ctx, "u2")
	require.NoError(t, err)
	assert.Equal(t, Overrides{"kph_gargoyles": 300}, ov)
}
