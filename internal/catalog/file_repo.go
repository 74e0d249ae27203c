package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmac122/OSRS-Dashboard/internal/model"
)

// FileRepo loads the catalog from a directory holding monsters.json and
// masters.json (each a map of id to record) and serves it read-only from
// memory. The files are what the ETL pipeline writes.
type FileRepo struct {
	mem *MemoryRepo
}

func NewFileRepo(dir string) (*FileRepo, error) {
	mem := NewMemoryRepo()
	ctx := context.Background()

	var monsterFile map[string]model.Monster
	if err := readJSON(filepath.Join(dir, "monsters.json"), &monsterFile); err != nil {
		return nil, err
	}
	monsters := make([]model.Monster, 0, len(monsterFile))
	for id, m := range monsterFile {
		m.ID = id
		monsters = append(monsters, m)
	}
	if err := mem.SeedMonsters(ctx, monsters); err != nil {
		return nil, fmt.Errorf("catalog dir %s: %w", dir, err)
	}

	var masterFile map[string]model.Master
	if err := readJSON(filepath.Join(dir, "masters.json"), &masterFile); err != nil {
		return nil, err
	}
	masters := make([]model.Master, 0, len(masterFile))
	for id, m := range masterFile {
		m.ID = id
		masters = append(masters, m)
	}
	if err := mem.SeedMasters(ctx, masters); err != nil {
		return nil, fmt.Errorf("catalog dir %s: %w", dir, err)
	}

	return &FileRepo{mem: mem}, nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read catalog file %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse catalog file %s: %w", path, err)
	}
	return nil
}

func (r *FileRepo) Monster(ctx context.Context, id string) (model.Monster, error) {
	return r.mem.Monster(ctx, id)
}

func (r *FileRepo) Master(ctx context.Context, id string) (model.Master, error) {
	return r.mem.Master(ctx, id)
}

func (r *FileRepo) Monsters(ctx context.Context) (map[string]model.Monster, error) {
	return r.mem.Monsters(ctx)
}

func (r *FileRepo) Masters(ctx context.Context) (map[string]model.Master, error) {
	return r.mem.Masters(ctx)
}
