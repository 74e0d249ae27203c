package slayer

import (
	"context"
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmac122/OSRS-Dashboard/internal/catalog"
	"github.com/jmac122/OSRS-Dashboard/internal/config"
	"github.com/jmac122/OSRS-Dashboard/internal/model"
	"github.com/jmac122/OSRS-Dashboard/internal/overrides"
	"github.com/jmac122/OSRS-Dashboard/internal/prices"
)

// fixtureEngine builds an engine over two targets with drops priced so the
// arithmetic stays easy to follow: alpha loots 10 gp/kill, beta 20 gp/kill,
// and neither costs supplies. With the 100 kph overrides below and 90-kill
// tasks, a task takes exactly 1.0h including overhead, so alpha's task rate
// is 900 gp/hr and beta's is 1800 gp/hr.
func fixtureEngine(t *testing.T) *Engine {
	t.Helper()

	repo := catalog.NewMemoryRepo()
	ctx := context.Background()

	err := repo.SeedMonsters(ctx, []model.Monster{
		{
			ID: "alpha", Name: "Alpha", SlayerLevelReq: 1, CombatLevelReq: 40,
			CombatLevel: 80, BaseKPHRange: model.Range{100, 100},
			DropTable: model.DropTable{Always: []model.DropEntry{
				{ItemID: 1, QuantityRange: model.Range{1, 1}, Probability: 1.0},
			}},
		},
		{
			ID: "beta", Name: "Beta", SlayerLevelReq: 90, CombatLevelReq: 110,
			CombatLevel: 120, BaseKPHRange: model.Range{100, 100},
			DropTable: model.DropTable{Always: []model.DropEntry{
				{ItemID: 2, QuantityRange: model.Range{1, 1}, Probability: 1.0},
			}},
		},
	})
	require.NoError(t, err)

	err = repo.SeedMasters(ctx, []model.Master{{
		ID: "turael", Name: "Turael", CombatReq: 40, SlayerReq: 0,
		TaskAssignments: map[string]float64{"alpha": 0.6, "beta": 0.4},
		AvgTaskQuantity: map[string]model.Range{
			"alpha": {90, 90},
			"beta":  {90, 90},
		},
	}})
	require.NoError(t, err)

	return &Engine{
		Catalog: repo,
		Prices:  prices.NewStaticOracle(map[int]float64{1: 10, 2: 20}),
		Tuning:  config.Default(),
	}
}

func fixtureOverrides() overrides.Overrides {
	return overrides.Overrides{
		"kph_alpha":              100,
		"kph_beta":               100,
		"supply_cost_multiplier": 0,
	}
}

func highLevels() model.UserLevels {
	return model.UserLevels{Slayer: 99, Combat: 126, Attack: 99, Strength: 99, Defence: 99, Ranged: 99, Magic: 99}
}

func TestComputeSpecific(t *testing.T) {
	e := fixtureEngine(t)
	ctx := context.Background()

	t.Run("computes rate, loot, cost and profit", func(t *testing.T) {
		result, err := e.ComputeSpecific(ctx, "alpha", highLevels(), fixtureOverrides())
		require.NoError(t, err)

		assert.Equal(t, "Alpha", result.MonsterName)
		assert.Equal(t, 100.0, result.KillsPerHour)
		assert.InDelta(t, 10.0, result.LootPerKill, 1e-9)
		assert.InDelta(t, 1000.0, result.HourlyRevenue, 1e-9)
		assert.InDelta(t, 0.0, result.SupplyCostPerHour, 1e-9)
		assert.InDelta(t, 1000.0, result.GPPerHour, 1e-9)
		assert.Equal(t, 1, result.Requirements.SlayerRequired)
		assert.Equal(t, 40, result.Requirements.CombatRequired)
	})

	t.Run("unknown monster id is a NotFoundError", func(t *testing.T) {
		_, err := e.ComputeSpecific(ctx, "nope", highLevels(), nil)
		var nfErr *NotFoundError
		require.ErrorAs(t, err, &nfErr)
		assert.Equal(t, "monster", nfErr.Kind)
	})

	t.Run("missing monster id is a ValidationError", func(t *testing.T) {
		_, err := e.ComputeSpecific(ctx, "", highLevels(), nil)
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
	})

	t.Run("insufficient slayer level refuses with required vs actual", func(t *testing.T) {
		levels := highLevels()
		levels.Slayer = 50
		_, err := e.ComputeSpecific(ctx, "beta", levels, nil)

		var reqErr *RequirementsNotMetError
		require.ErrorAs(t, err, &reqErr)
		assert.Equal(t, 90, reqErr.Requirements.SlayerRequired)
		assert.Equal(t, 50, reqErr.Requirements.UserSlayer)
	})
}

func TestComputeExpected(t *testing.T) {
	e := fixtureEngine(t)
	ctx := context.Background()

	t.Run("weights eligible tasks and renormalizes", func(t *testing.T) {
		result, err := e.ComputeExpected(ctx, "turael", highLevels(), fixtureOverrides(), false)
		require.NoError(t, err)

		// alpha: 90 kills at 100 kph + 0.1h overhead = 1.0h, 900 gp => 900 gp/hr
		// beta: same shape at 20 gp/kill => 1800 gp/hr
		want := (0.6*900 + 0.4*1800) / (0.6 + 0.4)
		assert.InDelta(t, want, result.GPPerHour, 1e-9)
		assert.Equal(t, 2, result.EligibleTasks)
		assert.InDelta(t, 1.0, result.TotalAssignmentProbability, 1e-9)
	})

	t.Run("excluded target renormalizes over remaining weight", func(t *testing.T) {
		levels := highLevels()
		levels.Slayer = 85 // below beta's 90

		result, err := e.ComputeExpected(ctx, "turael", levels, fixtureOverrides(), false)
		require.NoError(t, err)

		// Only alpha participates: not diluted to 0.6*900.
		assert.InDelta(t, 900.0, result.GPPerHour, 1e-9)
		assert.Equal(t, 1, result.EligibleTasks)
		assert.InDelta(t, 0.6, result.TotalAssignmentProbability, 1e-9)
	})

	t.Run("master requirements gate the whole calculation", func(t *testing.T) {
		levels := highLevels()
		levels.Combat = 30

		_, err := e.ComputeExpected(ctx, "turael", levels, nil, false)
		var reqErr *RequirementsNotMetError
		require.ErrorAs(t, err, &reqErr)
		assert.Equal(t, 40, reqErr.Requirements.CombatRequired)
		assert.Equal(t, 30, reqErr.Requirements.UserCombat)
	})

	t.Run("unknown master id is a NotFoundError", func(t *testing.T) {
		_, err := e.ComputeExpected(ctx, "ghost", highLevels(), nil, false)
		var nfErr *NotFoundError
		require.ErrorAs(t, err, &nfErr)
		assert.Equal(t, "slayer master", nfErr.Kind)
	})

	t.Run("identical inputs give identical results", func(t *testing.T) {
		first, err := e.ComputeExpected(ctx, "turael", highLevels(), fixtureOverrides(), true)
		require.NoError(t, err)
		second, err := e.ComputeExpected(ctx, "turael", highLevels(), fixtureOverrides(), true)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("breakdown details sort by weighted contribution", func(t *testing.T) {
		result, err := e.ComputeExpected(ctx, "turael", highLevels(), fixtureOverrides(), true)
		require.NoError(t, err)
		require.Len(t, result.TaskBreakdown, 2)

		// beta contributes 0.4*1800=720 vs alpha's 0.6*900=540
		assert.Equal(t, "Beta", result.TaskBreakdown[0].MonsterName)
		assert.GreaterOrEqual(t,
			result.TaskBreakdown[0].WeightedContribution,
			result.TaskBreakdown[1].WeightedContribution)
	})

	t.Run("missing quantity entry is flagged as estimated", func(t *testing.T) {
		repo := catalog.NewMemoryRepo()
		require.NoError(t, repo.SeedMonsters(ctx, []model.Monster{{
			ID: "alpha", Name: "Alpha", SlayerLevelReq: 1,
			CombatLevel: 80, BaseKPHRange: model.Range{100, 100},
			DropTable: model.DropTable{Always: []model.DropEntry{
				{ItemID: 1, QuantityRange: model.Range{1, 1}, Probability: 1.0},
			}},
		}}))
		require.NoError(t, repo.SeedMasters(ctx, []model.Master{{
			ID: "turael", Name: "Turael",
			TaskAssignments: map[string]float64{"alpha": 1.0},
			// no AvgTaskQuantity entry
		}}))
		bare := &Engine{Catalog: repo, Prices: e.Prices, Tuning: e.Tuning}

		result, err := bare.ComputeExpected(ctx, "turael", highLevels(), fixtureOverrides(), true)
		require.NoError(t, err)
		require.Len(t, result.TaskBreakdown, 1)
		assert.True(t, result.TaskBreakdown[0].QuantityEstimated)
		assert.InDelta(t, 125.0, result.TaskBreakdown[0].AvgTaskQuantity, 1e-9)
	})

	t.Run("zero kph override excludes the task instead of corrupting the aggregate", func(t *testing.T) {
		repo := catalog.NewMemoryRepo()
		require.NoError(t, repo.SeedMonsters(ctx, []model.Monster{{
			ID: "alpha", Name: "Alpha", SlayerLevelReq: 1,
			CombatLevel: 80, BaseKPHRange: model.Range{100, 100},
			BaseSupplyCostPerHour: 50000,
			DropTable: model.DropTable{Always: []model.DropEntry{
				{ItemID: 1, QuantityRange: model.Range{1, 1}, Probability: 1.0},
			}},
		}}))
		require.NoError(t, repo.SeedMasters(ctx, []model.Master{{
			ID: "turael", Name: "Turael",
			TaskAssignments: map[string]float64{"alpha": 1.0},
			AvgTaskQuantity: map[string]model.Range{"alpha": {90, 90}},
		}}))
		costly := &Engine{Catalog: repo, Prices: e.Prices, Tuning: e.Tuning}

		result, err := costly.ComputeExpected(ctx, "turael", highLevels(), overrides.Overrides{"kph_alpha": 0}, true)
		require.NoError(t, err)
		assert.False(t, math.IsNaN(result.GPPerHour))
		assert.Equal(t, 0.0, result.GPPerHour)
		assert.Equal(t, 0, result.EligibleTasks)
		assert.Empty(t, result.TaskBreakdown)

		// The result must stay encodable for the HTTP layer.
		_, err = json.Marshal(result)
		require.NoError(t, err)
	})

	t.Run("zero kph override renormalizes over the remaining tasks", func(t *testing.T) {
		ov := fixtureOverrides()
		ov["kph_alpha"] = 0

		result, err := e.ComputeExpected(ctx, "turael", highLevels(), ov, false)
		require.NoError(t, err)
		assert.InDelta(t, 1800.0, result.GPPerHour, 1e-9)
		assert.Equal(t, 1, result.EligibleTasks)
	})

	t.Run("no eligible tasks yields zero, not an error", func(t *testing.T) {
		levels := model.UserLevels{Slayer: 1, Combat: 126}
		result, err := e.ComputeExpected(ctx, "turael", levels, fixtureOverrides(), false)
		require.NoError(t, err)
		assert.Equal(t, 1, result.EligibleTasks) // alpha has req 1
		levels.Slayer = 0
		result, err = e.ComputeExpected(ctx, "turael", levels, fixtureOverrides(), false)
		require.NoError(t, err)
		assert.Equal(t, 0, result.EligibleTasks)
		assert.Equal(t, 0.0, result.GPPerHour)
		assert.Equal(t, 0.0, result.TotalAssignmentProbability)
	})
}
