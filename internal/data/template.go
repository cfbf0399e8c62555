package data

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Kind selects which registry a template's pool lives in.
type Kind string

const (
	KindEnemy  Kind = "enemy"
	KindBullet Kind = "bullet"
)

// Stats are the per-spawn numbers an enemy starts with.
type Stats struct {
	MaxHealth  float64 `yaml:"max_health"`
	MoveSpeed  float64 `yaml:"move_speed"` // units per second
	Experience int     `yaml:"experience"`
	Score      int     `yaml:"score"`
	HitRadius  float64 `yaml:"hit_radius"`
}

// ShapeSpec describes an attack area. Only the fields used by Kind matter.
type ShapeSpec struct {
	Kind   string  `yaml:"kind"` // circle, box, sector, capsule
	Radius float64 `yaml:"radius"`
	Width  float64 `yaml:"width"`
	Length float64 `yaml:"length"`
	Angle  float64 `yaml:"angle"`  // degrees, sector only
	Offset float64 `yaml:"offset"` // forward offset from the owner
}

// BulletSpec holds projectile tuning for bullet templates.
type BulletSpec struct {
	Speed    float64       `yaml:"speed"`
	Lifetime time.Duration `yaml:"lifetime"`
	Radius   float64       `yaml:"radius"`
}

// ActorTemplate is a reusable blueprint loaded from YAML.
type ActorTemplate struct {
	ID     string     `yaml:"id"`
	Name   string     `yaml:"name"`
	Kind   Kind       `yaml:"kind"`
	Stats  Stats      `yaml:"stats"`
	Attack ShapeSpec  `yaml:"attack"`
	Bullet BulletSpec `yaml:"bullet"`
}

type templateListFile struct {
	Templates []ActorTemplate `yaml:"templates"`
}

// TemplateTable holds templates indexed by ID, remembering file order.
type TemplateTable struct {
	templates map[string]*ActorTemplate
	order     []string
}

// LoadTemplateTable loads actor templates from a YAML file.
func LoadTemplateTable(path string) (*TemplateTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read template_list: %w", err)
	}
	return ParseTemplateTable(raw)
}

// ParseTemplateTable decodes a template list document.
func ParseTemplateTable(raw []byte) (*TemplateTable, error) {
	var f templateListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse template_list: %w", err)
	}
	t := &TemplateTable{templates: make(map[string]*ActorTemplate, len(f.Templates))}
	for i := range f.Templates {
		tmpl := &f.Templates[i]
		if tmpl.ID == "" {
			return nil, fmt.Errorf("template_list entry %d: %w", i, errMissingID)
		}
		switch tmpl.Kind {
		case KindEnemy, KindBullet:
		default:
			return nil, fmt.Errorf("template %s: %w %q", tmpl.ID, errUnknownKind, tmpl.Kind)
		}
		if _, dup := t.templates[tmpl.ID]; dup {
			return nil, fmt.Errorf("template %s: %w", tmpl.ID, errDuplicateID)
		}
		t.templates[tmpl.ID] = tmpl
		t.order = append(t.order, tmpl.ID)
	}
	return t, nil
}

// Get returns a template by ID, or nil if not found.
func (t *TemplateTable) Get(id string) *ActorTemplate {
	return t.templates[id]
}

// Count returns the number of loaded templates.
func (t *TemplateTable) Count() int {
	return len(t.templates)
}

// CountKind returns how many templates are of kind k.
func (t *TemplateTable) CountKind(k Kind) int {
	n := 0
	for _, tmpl := range t.templates {
		if tmpl.Kind == k {
			n++
		}
	}
	return n
}
