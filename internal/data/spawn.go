package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// PoolEntry pre-warms one template's pool at startup.
type PoolEntry struct {
	Template        string `yaml:"template"`
	InitialPoolSize int    `yaml:"initial_pool_size"`
}

// SpawnEntry is one member of the weighted spawn population.
type SpawnEntry struct {
	Template string `yaml:"template"`
	Weight   int    `yaml:"weight"`
	Stats    Stats  `yaml:"stats"`
}

type poolListFile struct {
	Pools []PoolEntry `yaml:"pools"`
}

type spawnListFile struct {
	Spawns []SpawnEntry `yaml:"spawns"`
}

// LoadPoolList loads pool pre-warm entries in file order. Sizes are checked
// by the pool itself when it is registered.
func LoadPoolList(path string) ([]PoolEntry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pool_list: %w", err)
	}
	var f poolListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse pool_list: %w", err)
	}
	return f.Pools, nil
}

// LoadSpawnList loads spawn entries in file order.
func LoadSpawnList(path string) ([]SpawnEntry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read spawn_list: %w", err)
	}
	var f spawnListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse spawn_list: %w", err)
	}
	return f.Spawns, nil
}

// Resolve fills zero stats in e from the template's defaults.
func (e SpawnEntry) Resolve(tmpl *ActorTemplate) Stats {
	s := e.Stats
	if tmpl == nil {
		return s
	}
	if s.MaxHealth == 0 {
		s.MaxHealth = tmpl.Stats.MaxHealth
	}
	if s.MoveSpeed == 0 {
		s.MoveSpeed = tmpl.Stats.MoveSpeed
	}
	if s.Experience == 0 {
		s.Experience = tmpl.Stats.Experience
	}
	if s.Score == 0 {
		s.Score = tmpl.Stats.Score
	}
	if s.HitRadius == 0 {
		s.HitRadius = tmpl.Stats.HitRadius
	}
	return s
}
