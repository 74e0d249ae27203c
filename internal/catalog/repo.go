package catalog

import (
	"context"
	"errors"

	"github.com/jmac122/OSRS-Dashboard/internal/model"
)

var (
	ErrMonsterNotFound = errors.New("monster not found")
	ErrMasterNotFound  = errors.New("slayer master not found")
)

// Repo is the read-only catalog the engine calculates against. Records are
// validated on the way in (see Validate*), so consumers can trust the shapes.
type Repo interface {
	Monster(ctx context.Context, id string) (model.Monster, error)
	Master(ctx context.Context, id string) (model.Master, error)
	Monsters(ctx context.Context) (map[string]model.Monster, error)
	Masters(ctx context.Context) (map[string]model.Master, error)
}
