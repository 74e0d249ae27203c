package slayer

import "fmt"

// Requirements pairs a gate's required levels with the user's actual levels
// so callers can always explain a refusal. Zero fields are omitted from JSON.
type Requirements struct {
	SlayerRequired int `json:"slayer_required,omitempty"`
	CombatRequired int `json:"combat_required,omitempty"`
	UserSlayer     int `json:"user_slayer,omitempty"`
	UserCombat     int `json:"user_combat,omitempty"`
}

// ValidationError reports a missing or malformed request parameter.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NotFoundError reports an unknown monster or slayer master id.
type NotFoundError struct {
	Kind string // "monster" or "slayer master"
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

// RequirementsNotMetError reports a failed level gate.
type RequirementsNotMetError struct {
	Subject      string // what the user failed to qualify for
	Requirements Requirements
}

func (e *RequirementsNotMetError) Error() string {
	return fmt.Sprintf("requirements not met for %s", e.Subject)
}

// DataUnavailableError reports a failed dependency fetch (catalog read,
// override lookup). Per-item price failures are absorbed inside the
// valuator and never surface as this.
type DataUnavailableError struct {
	Source string
	Err    error
}

func (e *DataUnavailableError) Error() string {
	return fmt.Sprintf("%s unavailable: %v", e.Source, e.Err)
}

func (e *DataUnavailableError) Unwrap() error { return e.Err }

// InternalError wraps an unexpected panic recovered at a mode's top level.
type InternalError struct {
	Mode string
	Err  error
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("internal error in %s calculation: %v", e.Mode, e.Err)
}

func (e *InternalError) Unwrap() error { return e.Err }
