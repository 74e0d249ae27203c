package slayer

import "github.com/jmac122/OSRS-Dashboard/internal/model"

// checkMasterRequirements gates the whole calculation before any per-target
// work happens.
func checkMasterRequirements(m model.Master, levels model.UserLevels) error {
	if levels.Combat < m.CombatReq || levels.Slayer < m.SlayerReq {
		return &RequirementsNotMetError{
			Subject: m.Name,
			Requirements: Requirements{
				SlayerRequired: m.SlayerReq,
				CombatRequired: m.CombatReq,
				UserSlayer:     levels.Slayer,
				UserCombat:     levels.Combat,
			},
		}
	}
	return nil
}

// slayerEligible is the aggregation-mode target gate: only the slayer
// requirement applies.
func slayerEligible(m model.Monster, levels model.UserLevels) bool {
	return levels.Slayer >= m.SlayerLevelReq
}

// assignmentEligible is the per-task report gate, which also applies the
// monster's combat requirement.
func assignmentEligible(m model.Monster, levels model.UserLevels) bool {
	return levels.Slayer >= m.SlayerLevelReq && levels.Combat >= m.CombatLevelReq
}

// checkMonsterRequirements is the single-target gate; failing it is an
// outright refusal rather than an exclusion.
func checkMonsterRequirements(m model.Monster, levels model.UserLevels) error {
	if levels.Slayer < m.SlayerLevelReq {
		return &RequirementsNotMetError{
			Subject: m.Name,
			Requirements: Requirements{
				SlayerRequired: m.SlayerLevelReq,
				UserSlayer:     levels.Slayer,
			},
		}
	}
	return nil
}
