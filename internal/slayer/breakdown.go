package slayer

import (
	"context"
	"fmt"
	"sort"

	"github.com/jmac122/OSRS-Dashboard/internal/model"
	"github.com/jmac122/OSRS-Dashboard/internal/overrides"
)

// ComputeBreakdown produces the detailed per-task report for a master:
// every eligible assignment with its normalized pick probability, continuous
// GP/hour, and per-task time and value.
//
// Unlike the aggregation gate, a task here must clear the monster's combat
// requirement as well as its slayer requirement. The headline
// expected_gp_per_hour uses the same probability-weighted task-time formula
// as ComputeExpected, so the two entry points agree whenever they see the
// same eligible set; avg_gp_per_task and tasks_per_hour are derived from the
// per-task rows.
func (e *Engine) ComputeBreakdown(ctx context.Context, masterID string, levels model.UserLevels, ov overrides.Overrides) (result *BreakdownResult, err error) {
	defer recoverTo("breakdown", &err)

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

	tasks, _, err := e.evaluateTasks(ctx, master, levels, ov, assignmentEligible)
	if err != nil {
		return nil, err
	}

	var totalWeight float64
	for _, t := range tasks {
		totalWeight += t.weight
	}

	assignments := make([]Assignment, 0, len(tasks))
	var expectedGPPerHour, avgGPPerTask, avgTimePerTask float64
	for _, t := range tasks {
		probability := 0.0
		if totalWeight > 0 {
			probability = t.weight / totalWeight
		}
		gpPerTask := t.grindGPPerHour * t.timePerTaskHours

		expectedGPPerHour += t.taskGPPerHour * probability
		avgGPPerTask += gpPerTask * probability
		avgTimePerTask += t.timePerTaskHours * probability

		assignments = append(assignments, Assignment{
			MonsterName:         t.monster.Name,
			MonsterID:           t.monster.ID,
			Weight:              t.weight,
			Probability:         probability,
			SlayerRequirement:   t.monster.SlayerLevelReq,
			CombatRequirement:   t.monster.CombatLevelReq,
			KillsPerHour:        t.kph,
			AvgLootValuePerKill: t.loot,
			SupplyCostPerHour:   t.costHour,
			GPPerHour:           t.grindGPPerHour,
			AvgTaskLength:       t.quantity,
			TimePerTaskHours:    t.timePerTaskHours,
			GPPerTask:           gpPerTask,
			Requirements:        fmt.Sprintf("%d Slayer, %d Combat", t.monster.SlayerLevelReq, t.monster.CombatLevelReq),
			KPHEstimated:        t.kphEstimated,
			QuantityEstimated:   t.quantityEstimated,
		})
	}

	sort.Slice(assignments, func(i, j int) bool {
		return assignments[i].GPPerHour > assignments[j].GPPerHour
	})

	tasksPerHour := 0.0
	if avgTimePerTask > 0 {
		tasksPerHour = 1 / avgTimePerTask
	}

	return &BreakdownResult{
		MasterName:  master.Name,
		MasterID:    master.ID,
		UserLevels:  levels,
		Assignments: assignments,
		Overall: BreakdownSummary{
			ExpectedGPPerHour:  expectedGPPerHour,
			AvgGPPerTask:       avgGPPerTask,
			TasksPerHour:       tasksPerHour,
			AvailableTasks:     len(assignments),
			TotalPossibleTasks: len(master.TaskAssignments),
		},
	}, nil
}
