package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/joho/godotenv"

	"github.com/jmac122/OSRS-Dashboard/internal/catalog"
	"github.com/jmac122/OSRS-Dashboard/internal/config"
	"github.com/jmac122/OSRS-Dashboard/internal/model"
	"github.com/jmac122/OSRS-Dashboard/internal/overrides"
	"github.com/jmac122/OSRS-Dashboard/internal/prices"
	"github.com/jmac122/OSRS-Dashboard/internal/slayer"
)

// Offline calculation runner: evaluates any mode against the seeded catalog
// and either live prices or a fixture file, and prints a readable report.

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "specific":
		err = cmdSpecific(os.Args[2:])
	case "expected":
		err = cmdExpected(os.Args[2:])
	case "breakdown":
		err = cmdBreakdown(os.Args[2:])
	default:
		printUsage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, os.Args[1], "failed:", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `usage: ops <command> [flags]

commands:
  specific   -monster <id> [levels] [-prices fixture.json]
  expected   -master <id> [levels] [-prices fixture.json]
  breakdown  -master <id> [levels] [-prices fixture.json]

level flags: -slayer -combat -attack -strength -defence -ranged -magic`)
}

type runFlags struct {
	fs       *flag.FlagSet
	pricePth *string
	levels   levelFlags
}

type levelFlags struct {
	slayer, combat, attack, strength, defence, ranged, magic *int
}

func newRunFlags(name string) runFlags {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	defaults := model.DefaultLevels()
	return runFlags{
		fs:       fs,
		pricePth: fs.String("prices", "", "price fixture file (omit for live wiki prices)"),
		levels: levelFlags{
			slayer:   fs.Int("slayer", defaults.Slayer, "slayer level"),
			combat:   fs.Int("combat", defaults.Combat, "combat level"),
			attack:   fs.Int("attack", defaults.Attack, "attack level"),
			strength: fs.Int("strength", defaults.Strength, "strength level"),
			defence:  fs.Int("defence", defaults.Defence, "defence level"),
			ranged:   fs.Int("ranged", defaults.Ranged, "ranged level"),
			magic:    fs.Int("magic", defaults.Magic, "magic level"),
		},
	}
}

func (rf runFlags) userLevels() model.UserLevels {
	return model.UserLevels{
		Slayer:   *rf.levels.slayer,
		Combat:   *rf.levels.combat,
		Attack:   *rf.levels.attack,
		Strength: *rf.levels.strength,
		Defence:  *rf.levels.defence,
		Ranged:   *rf.levels.ranged,
		Magic:    *rf.levels.magic,
	}
}

func buildEngine(fixturePath string) (*slayer.Engine, error) {
	_ = godotenv.Load()
	cfg := config.FromEnv()

	repo := catalog.NewMemoryRepo()
	if err := catalog.Seed(context.Background(), repo); err != nil {
		return nil, err
	}

	var oracle prices.Oracle
	if fixturePath != "" {
		fixture, err := prices.LoadStaticOracle(fixturePath)
		if err != nil {
			return nil, err
		}
		oracle = fixture
	} else {
		oracle = prices.NewWikiClient(cfg.PriceBaseURL,
			prices.WithUserAgent(cfg.UserAgent),
			prices.WithTimeout(cfg.PriceTimeout),
			prices.WithCacheTTL(cfg.PriceCacheTTL),
		)
	}

	return &slayer.Engine{Catalog: repo, Prices: oracle, Tuning: cfg}, nil
}

func cmdSpecific(args []string) error {
	rf := newRunFlags("specific")
	monster := rf.fs.String("monster", "", "monster id")
	if err := rf.fs.Parse(args); err != nil {
		return err
	}

	engine, err := buildEngine(*rf.pricePth)
	if err != nil {
		return err
	}

	result, err := engine.ComputeSpecific(context.Background(), *monster, rf.userLevels(), overrides.Overrides{})
	if err != nil {
		return err
	}

	fmt.Printf("%s\n", result.MonsterName)
	fmt.Printf("  gp/hr:        %s\n", gp(result.GPPerHour))
	fmt.Printf("  kills/hr:     %.1f\n", result.KillsPerHour)
	fmt.Printf("  loot/kill:    %s\n", gp(result.LootPerKill))
	fmt.Printf("  revenue/hr:   %s\n", gp(result.HourlyRevenue))
	fmt.Printf("  supplies/hr:  %s\n", gp(result.SupplyCostPerHour))
	if result.MissingPrices > 0 {
		fmt.Printf("  (skipped %d drop(s) with no price data)\n", result.MissingPrices)
	}
	return nil
}

func cmdExpected(args []string) error {
	rf := newRunFlags("expected")
	master := rf.fs.String("master", "", "slayer master id")
	if err := rf.fs.Parse(args); err != nil {
		return err
	}

	engine, err := buildEngine(*rf.pricePth)
	if err != nil {
		return err
	}

	result, err := engine.ComputeExpected(context.Background(), *master, rf.userLevels(), overrides.Overrides{}, true)
	if err != nil {
		return err
	}

	fmt.Printf("%s: expected %s gp/hr over %d eligible task(s) (weight %.3f)\n",
		result.MasterName, gp(result.GPPerHour), result.EligibleTasks, result.TotalAssignmentProbability)
	for _, t := range result.TaskBreakdown {
		fmt.Printf("  %-20s w=%.3f  %6.1f kph  %12s gp/task-hr\n",
			t.MonsterName, t.AssignmentProbability, t.EstimatedKPH, gp(t.TaskGPPerHour))
	}
	return nil
}

func cmdBreakdown(args []string) error {
	rf := newRunFlags("breakdown")
	master := rf.fs.String("master", "", "slayer master id")
	if err := rf.fs.Parse(args); err != nil {
		return err
	}

	engine, err := buildEngine(*rf.pricePth)
	if err != nil {
		return err
	}

	result, err := engine.ComputeBreakdown(context.Background(), *master, rf.userLevels(), overrides.Overrides{})
	if err != nil {
		return err
	}

	fmt.Printf("%s: %d of %d tasks available\n", result.MasterName, result.Overall.AvailableTasks, result.Overall.TotalPossibleTasks)
	for _, a := range result.Assignments {
		fmt.Printf("  %-20s p=%.3f  %12s gp/hr  %10s gp/task  (%s)\n",
			a.MonsterName, a.Probability, gp(a.GPPerHour), gp(a.GPPerTask), a.Requirements)
	}
	fmt.Printf("overall: %s gp/hr expected, %s gp/task avg, %.2f tasks/hr\n",
		gp(result.Overall.ExpectedGPPerHour), gp(result.Overall.AvgGPPerTask), result.Overall.TasksPerHour)
	return nil
}

func gp(v float64) string {
	return humanize.Comma(int64(v)) + " gp"
}
