package model

// Master is a slayer task dispenser. TaskAssignments maps monster id to a
// relative weight; weights are not required to sum to 1.
type Master struct {
	ID              string             `json:"id"`
	Name            string             `json:"name"`
	Location        string             `json:"location,omitempty"`
	CombatReq       int                `json:"combat_req"`
	SlayerReq       int                `json:"slayer_req"`
	TaskAssignments map[string]float64 `json:"task_assignments"`
	AvgTaskQuantity map[string]Range   `json:"avg_task_quantity"`
	WikiURL         string             `json:"wiki_url,omitempty"`
}
