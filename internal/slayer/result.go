package slayer

import "github.com/jmac122/OSRS-Dashboard/internal/model"

// ReportedLevels is the subset of user levels echoed back on results.
type ReportedLevels struct {
	Slayer int `json:"slayer"`
	Combat int `json:"combat"`
}

// SpecificResult is the outcome of a single-monster calculation.
type SpecificResult struct {
	GPPerHour         float64        `json:"gp_hr"`
	MonsterName       string         `json:"monster_name"`
	KillsPerHour      float64        `json:"kills_per_hour"`
	LootPerKill       float64        `json:"loot_per_kill"`
	HourlyRevenue     float64        `json:"hourly_revenue"`
	SupplyCostPerHour float64        `json:"supply_cost_per_hour"`
	UserLevels        ReportedLevels `json:"user_levels"`
	Requirements      Requirements   `json:"requirements"`

	// KPHEstimated marks a heuristic fallback rate rather than one derived
	// from catalog data or a user override.
	KPHEstimated  bool `json:"kph_estimated,omitempty"`
	MissingPrices int  `json:"missing_prices,omitempty"`
}

// TaskDetail is one eligible assignment's contribution to an expected-value
// calculation.
type TaskDetail struct {
	MonsterName           string  `json:"monster_name"`
	MonsterID             string  `json:"monster_id"`
	AssignmentProbability float64 `json:"assignment_probability"`
	EstimatedKPH          float64 `json:"estimated_kph"`
	ExpectedLootPerKill   float64 `json:"expected_loot_per_kill"`
	AvgTaskQuantity       float64 `json:"avg_task_quantity"`
	TaskTimeHours         float64 `json:"task_time_hours"`
	TaskGPPerHour         float64 `json:"task_gp_hr"`
	WeightedContribution  float64 `json:"weighted_contribution"`

	KPHEstimated      bool `json:"kph_estimated,omitempty"`
	QuantityEstimated bool `json:"quantity_estimated,omitempty"`
}

// ExpectedResult is the outcome of a weighted whole-master calculation.
// GPPerHour is renormalized over the eligible subset of assignments, not
// diluted by weight the user cannot be assigned.
type ExpectedResult struct {
	GPPerHour                  float64        `json:"gp_hr"`
	MasterName                 string         `json:"master_name"`
	TotalAssignmentProbability float64        `json:"total_assignment_probability"`
	EligibleTasks              int            `json:"eligible_tasks"`
	UserLevels                 ReportedLevels `json:"user_levels"`
	MissingPrices              int            `json:"missing_prices,omitempty"`

	// TaskBreakdown is populated when the caller asks for it, sorted
	// descending by weighted contribution.
	TaskBreakdown []TaskDetail `json:"task_breakdown,omitempty"`
}

// Assignment is one row of the detailed per-task report.
type Assignment struct {
	MonsterName         string  `json:"monster_name"`
	MonsterID           string  `json:"monster_id"`
	Weight              float64 `json:"weight"`
	Probability         float64 `json:"probability"`
	SlayerRequirement   int     `json:"slayer_requirement"`
	CombatRequirement   int     `json:"combat_requirement"`
	KillsPerHour        float64 `json:"kills_per_hour"`
	AvgLootValuePerKill float64 `json:"avg_loot_value_per_kill"`
	SupplyCostPerHour   float64 `json:"supply_cost_per_hour"`
	GPPerHour           float64 `json:"gp_per_hour"`
	AvgTaskLength       float64 `json:"avg_task_length"`
	TimePerTaskHours    float64 `json:"time_per_task_hours"`
	GPPerTask           float64 `json:"gp_per_task"`
	Requirements        string  `json:"requirements"`

	KPHEstimated      bool `json:"kph_estimated,omitempty"`
	QuantityEstimated bool `json:"quantity_estimated,omitempty"`
}

// BreakdownSummary aggregates the per-task report.
type BreakdownSummary struct {
	ExpectedGPPerHour  float64 `json:"expected_gp_per_hour"`
	AvgGPPerTask       float64 `json:"avg_gp_per_task"`
	TasksPerHour       float64 `json:"tasks_per_hour"`
	AvailableTasks     int     `json:"available_tasks"`
	TotalPossibleTasks int     `json:"total_possible_tasks"`
}

// BreakdownResult is the outcome of the detailed per-task report.
type BreakdownResult struct {
	MasterName  string           `json:"master_name"`
	MasterID    string           `json:"master_id"`
	UserLevels  model.UserLevels `json:"user_levels"`
	Assignments []Assignment     `json:"assignments"`
	Overall     BreakdownSummary `json:"overall"`
}
