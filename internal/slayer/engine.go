package slayer

import (
	"context"
	"fmt"
	"log"
	"runtime/debug"
	"sort"

	"github.com/jmac122/OSRS-Dashboard/internal/catalog"
	"github.com/jmac122/OSRS-Dashboard/internal/config"
	"github.com/jmac122/OSRS-Dashboard/internal/model"
	"github.com/jmac122/OSRS-Dashboard/internal/overrides"
	"github.com/jmac122/OSRS-Dashboard/internal/prices"
)

// Engine is the slayer profitability calculator. Every calculation is a pure
// function of its inputs plus the oracle's price cache, so an Engine is safe
// to share across concurrent requests.
type Engine struct {
	Catalog catalog.Repo
	Prices  prices.Oracle
	Tuning  config.Tuning
}

// recoverTo converts an unexpected panic into an InternalError so nothing
// escapes a mode's boundary.
func recoverTo(mode string, err *error) {
	if r := recover(); r != nil {
		log.Printf("[slayer] panic in %s calculation: %v\n%s", mode, r, debug.Stack())
		*err = &InternalError{Mode: mode, Err: fmt.Errorf("%v", r)}
	}
}

func (e *Engine) calcContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if e.Tuning.CalculationTimeout > 0 {
		return context.WithTimeout(ctx, e.Tuning.CalculationTimeout)
	}
	return context.WithCancel(ctx)
}

// ComputeSpecific estimates GP/hour for grinding a single monster.
func (e *Engine) ComputeSpecific(ctx context.Context, monsterID string, levels model.UserLevels, ov overrides.Overrides) (result *SpecificResult, err error) {
	defer recoverTo("specific", &err)

	if monsterID == "" {
		return nil, &ValidationError{Field: "monster_id", Reason: "required for specific mode"}
	}

	ctx, cancel := e.calcContext(ctx)
	defer cancel()

	monster, err := e.Catalog.Monster(ctx, monsterID)
	if err != nil {
		return nil, monsterLookupError(monsterID, err)
	}
	if err := checkMonsterRequirements(monster, levels); err != nil {
		return nil, err
	}

	kph, kphEstimated := e.estimateKPH(monster, levels, ov)
	book := e.Prices.Prices(ctx, monster.DropTable.ItemIDs())
	loot, missing := expectedLoot(monster.DropTable, book)
	cost := adjustSupplyCost(monster.BaseSupplyCostPerHour, levels, ov)

	revenue := kph * loot
	return &SpecificResult{
		GPPerHour:         revenue - cost,
		MonsterName:       monster.Name,
		KillsPerHour:      kph,
		LootPerKill:       loot,
		HourlyRevenue:     revenue,
		SupplyCostPerHour: cost,
		UserLevels:        ReportedLevels{Slayer: levels.Slayer, Combat: levels.Combat},
		Requirements: Requirements{
			SlayerRequired: monster.SlayerLevelReq,
			CombatRequired: monster.CombatLevelReq,
		},
		KPHEstimated:  kphEstimated,
		MissingPrices: missing,
	}, nil
}

// ComputeExpected estimates GP/hour across a master's whole assignment table,
// weighted by assignment likelihood and renormalized over the tasks the user
// is actually eligible for. includeBreakdown additionally reports the
// per-task records sorted by weighted contribution.
func (e *Engine) ComputeExpected(ctx context.Context, masterID string, levels model.UserLevels, ov overrides.Overrides, includeBreakdown bool) (result *ExpectedResult, err error) {
	defer recoverTo("expected", &err)

	if masterID == "" {
		return nil, &ValidationError{Field: "master_id", Reason: "required"}
	}

	ctx, cancel := e.calcContext(ctx)
	defer cancel()

	master, err := e.Catalog.Master(ctx, masterID)
	if err != nil {
		return nil, masterLookupError(masterID, err)
	}
	if err := checkMasterRequirements(master, levels); err != nil {
		return nil, err
	}

	tasks, missing, err := e.evaluateTasks(ctx, master, levels, ov, slayerEligible)
	if err != nil {
		return nil, err
	}

	var totalWeighted, totalWeight float64
	details := make([]TaskDetail, 0, len(tasks))
	for _, t := range tasks {
		totalWeighted += t.taskGPPerHour * t.weight
		totalWeight += t.weight
		if includeBreakdown {
			details = append(details, TaskDetail{
				MonsterName:           t.monster.Name,
				MonsterID:             t.monster.ID,
				AssignmentProbability: t.weight,
				EstimatedKPH:          t.kph,
				ExpectedLootPerKill:   t.loot,
				AvgTaskQuantity:       t.quantity,
				TaskTimeHours:         t.taskTimeHours,
				TaskGPPerHour:         t.taskGPPerHour,
				WeightedContribution:  t.taskGPPerHour * t.weight,
				KPHEstimated:          t.kphEstimated,
				QuantityEstimated:     t.quantityEstimated,
			})
		}
	}

	gpHr := 0.0
	if totalWeight > 0 {
		gpHr = totalWeighted / totalWeight
	}

	out := &ExpectedResult{
		GPPerHour:                  gpHr,
		MasterName:                 master.Name,
		TotalAssignmentProbability: totalWeight,
		EligibleTasks:              len(tasks),
		UserLevels:                 ReportedLevels{Slayer: levels.Slayer, Combat: levels.Combat},
		MissingPrices:              missing,
	}
	if includeBreakdown {
		sort.Slice(details, func(i, j int) bool {
			return details[i].WeightedContribution > details[j].WeightedContribution
		})
		out.TaskBreakdown = details
	}
	return out, nil
}

// taskEval is one eligible assignment fully evaluated. Both aggregation
// entry points are built from the same evaluations so they cannot disagree
// on per-task numbers.
type taskEval struct {
	monster  model.Monster
	weight   float64
	kph      float64
	loot     float64
	costHour float64 // adjusted supply cost per hour
	quantity float64 // mean kills per assignment

	// grindGPPerHour is the continuous rate ignoring task switching.
	grindGPPerHour float64
	// taskTimeHours and taskGPPerHour include the fixed per-task overhead.
	taskTimeHours float64
	taskGPPerHour float64
	// timePerTaskHours excludes overhead (pure kill time).
	timePerTaskHours float64

	kphEstimated      bool
	quantityEstimated bool
	missingPrices     int
}

// evaluateTasks walks a master's assignment table in deterministic order,
// applies the given per-target gate, prefetches every needed price in one
// batched oracle call, and evaluates each eligible task.
func (e *Engine) evaluateTasks(ctx context.Context, master model.Master, levels model.UserLevels, ov overrides.Overrides, eligible func(model.Monster, model.UserLevels) bool) ([]taskEval, int, error) {
	monsters, err := e.Catalog.Monsters(ctx)
	if err != nil {
		return nil, 0, &DataUnavailableError{Source: "monster catalog", Err: err}
	}

	ids := make([]string, 0, len(master.TaskAssignments))
	for id := range master.TaskAssignments {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var chosen []model.Monster
	for _, id := range ids {
		monster, ok := monsters[id]
		if !ok {
			log.Printf("[slayer] master %s assigns unknown monster %q, skipping", master.ID, id)
			continue
		}
		if !eligible(monster, levels) {
			continue
		}
		chosen = append(chosen, monster)
	}

	// One batched lookup per calculation instead of one per drop entry.
	book := e.Prices.Prices(ctx, distinctItemIDs(chosen))

	tasks := make([]taskEval, 0, len(chosen))
	totalMissing := 0
	for _, monster := range chosen {
		t, ok := e.evaluateTask(master, monster, levels, ov, book)
		if !ok {
			continue
		}
		totalMissing += t.missingPrices
		tasks = append(tasks, t)
	}
	return tasks, totalMissing, nil
}

// evaluateTask reports ok=false when the task has no usable kill rate; the
// rate is a divisor, so such a task is excluded rather than evaluated.
func (e *Engine) evaluateTask(master model.Master, monster model.Monster, levels model.UserLevels, ov overrides.Overrides, book map[int]prices.Price) (taskEval, bool) {
	t := taskEval{
		monster: monster,
		weight:  master.TaskAssignments[monster.ID],
	}
	t.kph, t.kphEstimated = e.estimateKPH(monster, levels, ov)
	if t.kph <= 0 {
		log.Printf("[slayer] %s: non-positive kill rate %v, excluding task", monster.ID, t.kph)
		return t, false
	}
	t.loot, t.missingPrices = expectedLoot(monster.DropTable, book)
	t.costHour = adjustSupplyCost(monster.BaseSupplyCostPerHour, levels, ov)
	t.quantity, t.quantityEstimated = e.taskQuantity(master, monster.ID)

	t.grindGPPerHour = t.kph*t.loot - t.costHour
	t.timePerTaskHours = t.quantity / t.kph
	t.taskTimeHours = t.timePerTaskHours + e.Tuning.TaskOverheadHours

	revenue := t.loot * t.quantity
	profit := revenue - t.costHour*t.taskTimeHours
	t.taskGPPerHour = profit / t.taskTimeHours
	return t, true
}

// taskQuantity returns the mean assignment size, flagged as estimated when
// the master's quantity table omits the monster.
func (e *Engine) taskQuantity(master model.Master, monsterID string) (float64, bool) {
	if r, ok := master.AvgTaskQuantity[monsterID]; ok {
		return r.Mean(), false
	}
	log.Printf("[slayer] master %s has no task quantity for %q, assuming [%v, %v]", master.ID, monsterID, e.Tuning.DefaultTaskQtyMin, e.Tuning.DefaultTaskQtyMax)
	return (e.Tuning.DefaultTaskQtyMin + e.Tuning.DefaultTaskQtyMax) / 2, true
}

func distinctItemIDs(monsters []model.Monster) []int {
	seen := map[int]bool{}
	var ids []int
	for _, m := range monsters {
		for _, id := range m.DropTable.ItemIDs() {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	sort.Ints(ids)
	return ids
}

func monsterLookupError(id string, err error) error {
	if err == catalog.ErrMonsterNotFound {
		return &NotFoundError{Kind: "monster", ID: id}
	}
	return &DataUnavailableError{Source: "monster catalog", Err: err}
}

func masterLookupError(id string, err error) error {
	if err == catalog.ErrMasterNotFound {
		return &NotFoundError{Kind: "slayer master", ID: id}
	}
	return &DataUnavailableError{Source: "master catalog", Err: err}
}
