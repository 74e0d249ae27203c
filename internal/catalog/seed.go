package catalog

import (
	"context"

	"github.com/jmac122/OSRS-Dashboard/internal/model"
)

// Seed populates a repo with the hand-curated slayer catalog so the server is
// usable before any wiki sync has run. Weights and drop rates mirror the
// curated dataset the sync pipeline produces.
func Seed(ctx context.Context, repo *MemoryRepo) error {
	if err := repo.SeedMonsters(ctx, SeedMonsters()); err != nil {
		return err
	}
	return repo.SeedMasters(ctx, SeedMasters())
}

func SeedMasters() []model.Master {
	return []model.Master{
		{
			ID:        "nieve",
			Name:      "Nieve",
			Location:  "Tree Gnome Stronghold",
			CombatReq: 85,
			SlayerReq: 0,
			WikiURL:   "https://oldschool.runescape.wiki/w/Nieve",
			TaskAssignments: map[string]float64{
				"gargoyles":        0.08,
				"abyssal_demons":   0.06,
				"greater_demons":   0.07,
				"alchemical_hydra": 0.02,
				"nechryael":        0.05,
				"bloodvelds":       0.06,
				"hellhounds":       0.07,
			},
			AvgTaskQuantity: map[string]model.Range{
				"gargoyles":        {110, 170},
				"abyssal_demons":   {130, 200},
				"greater_demons":   {120, 185},
				"alchemical_hydra": {95, 125},
				"nechryael":        {110, 170},
				"bloodvelds":       {130, 200},
				"hellhounds":       {120, 185},
			},
		},
		{
			ID:        "duradel",
			Name:      "Duradel",
			Location:  "Shilo Village",
			CombatReq: 100,
			SlayerReq: 50,
			WikiURL:   "https://oldschool.runescape.wiki/w/Duradel",
			TaskAssignments: map[string]float64{
				"gargoyles":        0.09,
				"abyssal_demons":   0.07,
				"greater_demons":   0.08,
				"alchemical_hydra": 0.03,
				"nechryael":        0.06,
				"bloodvelds":       0.07,
				"hellhounds":       0.08,
			},
			AvgTaskQuantity: map[string]model.Range{
				"gargoyles":        {120, 185},
				"abyssal_demons":   {140, 220},
				"greater_demons":   {130, 200},
				"alchemical_hydra": {95, 125},
				"nechryael":        {120, 185},
				"bloodvelds":       {140, 220},
				"hellhounds":       {130, 200},
			},
		},
	}
}

func SeedMonsters() []model.Monster {
	return []model.Monster{
		{
			ID:                    "gargoyles",
			Name:                  "Gargoyles",
			SlayerLevelReq:        75,
			CombatLevelReq:        80,
			CombatLevel:           111,
			HP:                    105,
			Weakness:              "Crush",
			BaseKPHRange:          model.Range{350, 400},
			BaseSupplyCostPerHour: 30000,
			RequiredItems:         []int{1596}, // rock hammer
			Notes:                 "Requires rock hammer to finish. High alchables.",
			WikiURL:               "https://oldschool.runescape.wiki/w/Gargoyle",
			DropTable: model.DropTable{
				Always: []model.DropEntry{
					{ItemID: 526, QuantityRange: model.Range{1, 1}, Probability: 1.0}, // bones
				},
				Common: []model.DropEntry{
					{ItemID: 995, QuantityRange: model.Range{50, 150}, Probability: 0.25},
					{ItemID: 1149, QuantityRange: model.Range{1, 1}, Probability: 0.15}, // rune full helm
					{ItemID: 1201, QuantityRange: model.Range{1, 1}, Probability: 0.12}, // rune kiteshield
				},
				Rare: []model.DropEntry{
					{ItemID: 1631, QuantityRange: model.Range{1, 1}, Probability: 1.0 / 512}, // granite maul
				},
			},
		},
		{
			ID:                    "abyssal_demons",
			Name:                  "Abyssal demons",
			SlayerLevelReq:        85,
			CombatLevelReq:        90,
			CombatLevel:           124,
			HP:                    150,
			Weakness:              "Slash",
			BaseKPHRange:          model.Range{400, 450},
			BaseSupplyCostPerHour: 40000,
			Notes:                 "Fast task with valuable whip drops.",
			WikiURL:               "https://oldschool.runescape.wiki/w/Abyssal_demon",
			DropTable: model.DropTable{
				Always: []model.DropEntry{
					{ItemID: 526, QuantityRange: model.Range{1, 1}, Probability: 1.0},
				},
				Common: []model.DropEntry{
					{ItemID: 995, QuantityRange: model.Range{100, 300}, Probability: 0.2},
				},
				Rare: []model.DropEntry{
					{ItemID: 4151, QuantityRange: model.Range{1, 1}, Probability: 1.0 / 512}, // abyssal whip
				},
			},
		},
		{
			ID:                    "alchemical_hydra",
			Name:                  "Alchemical Hydra",
			SlayerLevelReq:        95,
			CombatLevelReq:        100,
			CombatLevel:           426,
			HP:                    300,
			Weakness:              "Ranged",
			BaseKPHRange:          model.Range{25, 30},
			BaseSupplyCostPerHour: 120000,
			RequiredItems:         []int{22114}, // brimstone ring
			Notes:                 "Requires 95 Slayer. Multiple phases with prayer switches.",
			WikiURL:               "https://oldschool.runescape.wiki/w/Alchemical_Hydra",
			DropTable: model.DropTable{
				Always: []model.DropEntry{
					{ItemID: 526, QuantityRange: model.Range{1, 1}, Probability: 1.0},
				},
				Common: []model.DropEntry{
					{ItemID: 995, QuantityRange: model.Range{1000, 3000}, Probability: 0.2},
					{ItemID: 22100, QuantityRange: model.Range{1, 1}, Probability: 0.04}, // hydra leather
				},
				Rare: []model.DropEntry{
					{ItemID: 22109, QuantityRange: model.Range{1, 1}, Probability: 0.002}, // hydra claw
					{ItemID: 22103, QuantityRange: model.Range{1, 1}, Probability: 0.002}, // hydra tail
				},
			},
		},
		{
			ID:                    "greater_demons",
			Name:                  "Greater demons",
			SlayerLevelReq:        0,
			CombatLevelReq:        70,
			CombatLevel:           92,
			HP:                    87,
			Weakness:              "Melee",
			BaseKPHRange:          model.Range{250, 300},
			BaseSupplyCostPerHour: 25000,
			WikiURL:               "https://oldschool.runescape.wiki/w/Greater_demon",
			DropTable: model.DropTable{
				Always: []model.DropEntry{
					{ItemID: 592, QuantityRange: model.Range{1, 1}, Probability: 1.0}, // ashes
				},
				Common: []model.DropEntry{
					{ItemID: 995, QuantityRange: model.Range{500, 1500}, Probability: 0.2},
				},
			},
		},
		{
			ID:                    "hellhounds",
			Name:                  "Hellhounds",
			SlayerLevelReq:        0,
			CombatLevelReq:        75,
			CombatLevel:           122,
			HP:                    116,
			Weakness:              "Slash",
			BaseKPHRange:          model.Range{300, 350},
			BaseSupplyCostPerHour: 20000,
			WikiURL:               "https://oldschool.runescape.wiki/w/Hellhound",
			DropTable: model.DropTable{
				Always: []model.DropEntry{
					{ItemID: 532, QuantityRange: model.Range{1, 1}, Probability: 1.0}, // big bones
				},
				Common: []model.DropEntry{
					{ItemID: 995, QuantityRange: model.Range{200, 800}, Probability: 0.3},
				},
			},
		},
		{
			ID:                    "bloodvelds",
			Name:                  "Bloodvelds",
			SlayerLevelReq:        50,
			CombatLevelReq:        65,
			CombatLevel:           76,
			HP:                    120,
			Weakness:              "Crush",
			BaseKPHRange:          model.Range{350, 420},
			BaseSupplyCostPerHour: 15000,
			WikiURL:               "https://oldschool.runescape.wiki/w/Bloodveld",
			DropTable: model.DropTable{
				Always: []model.DropEntry{
					{ItemID: 532, QuantityRange: model.Range{1, 1}, Probability: 1.0},
				},
				Common: []model.DropEntry{
					{ItemID: 995, QuantityRange: model.Range{100, 500}, Probability: 0.2},
				},
			},
		},
		{
			ID:                    "nechryael",
			Name:                  "Nechryael",
			SlayerLevelReq:        80,
			CombatLevelReq:        85,
			CombatLevel:           115,
			HP:                    105,
			Weakness:              "Melee",
			BaseKPHRange:          model.Range{300, 360},
			BaseSupplyCostPerHour: 35000,
			WikiURL:               "https://oldschool.runescape.wiki/w/Nechryael",
			DropTable: model.DropTable{
				Always: []model.DropEntry{
					{ItemID: 526, QuantityRange: model.Range{1, 1}, Probability: 1.0},
				},
				Common: []model.DropEntry{
					{ItemID: 995, QuantityRange: model.Range{200, 900}, Probability: 0.25},
				},
			},
		},
	}
}
