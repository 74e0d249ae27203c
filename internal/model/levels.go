package model

// UserLevels carries the request-scoped skill levels a calculation runs
// against. The engine never persists them.
type UserLevels struct {
	Slayer   int `json:"slayer"`
	Combat   int `json:"combat"`
	Attack   int `json:"attack"`
	Strength int `json:"strength"`
	Defence  int `json:"defence"`
	Ranged   int `json:"ranged"`
	Magic    int `json:"magic"`
}

// DefaultLevels are the fallback levels used when a request omits them.
func DefaultLevels() UserLevels {
	return UserLevels{
		Slayer:   85,
		Combat:   100,
		Attack:   80,
		Strength: 80,
		Defence:  75,
		Ranged:   85,
		Magic:    80,
	}
}

// MeleeAverage is the mean of attack and strength, used for melee
// weakness bonuses.
func (u UserLevels) MeleeAverage() float64 {
	return float64(u.Attack+u.Strength) / 2
}
