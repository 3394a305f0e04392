// Package catalog holds the authored skill and item prefabs and builds fresh
// entities from them.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/udisondev/tactica/internal/component"
)

// ErrUnknownPrefab is returned when a nid names no prefab.
var ErrUnknownPrefab = errors.New("unknown prefab")

// maxSubitemDepth bounds nested subitems so a cycle fails instead of
// recursing forever.
const maxSubitemDepth = 8

// Catalog indexes prefabs by nid. Later definitions replace earlier ones.
type Catalog struct {
	skills     map[string]Prefab
	skillOrder []string
	items      map[string]Prefab
	itemOrder  []string
}

// New creates an empty catalog.
func New() *Catalog {
	return &Catalog{
		skills: make(map[string]Prefab),
		items:  make(map[string]Prefab),
	}
}

// Parse decodes one YAML document.
func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	c := New()
	for _, p := range doc.Skills {
		if err := c.AddSkill(p); err != nil {
			return nil, err
		}
	}
	for _, p := range doc.Items {
		if err := c.AddItem(p); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// LoadFile reads and parses one catalog file.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// LoadDir parses every *.yaml file in dir concurrently and merges them in
// file name order.
func LoadDir(ctx context.Context, dir string) (*Catalog, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("listing catalog dir %s: %w", dir, err)
	}
	sort.Strings(paths)

	parts := make([]*Catalog, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			c, err := LoadFile(path)
			if err != nil {
				return err
			}
			parts[i] = c
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := New()
	for _, part := range parts {
		out.Merge(part)
	}
	slog.Info("catalog loaded",
		"dir", dir,
		"files", len(paths),
		"skills", len(out.skills),
		"items", len(out.items))
	return out, nil
}

// AddSkill registers a skill prefab.
func (c *Catalog) AddSkill(p Prefab) error {
	return add(c.skills, &c.skillOrder, component.ClassSkill, p)
}

// AddItem registers an item prefab.
func (c *Catalog) AddItem(p Prefab) error {
	return add(c.items, &c.itemOrder, component.ClassItem, p)
}

func add(m map[string]Prefab, order *[]string, class component.Class, p Prefab) error {
	if p.Nid == "" {
		return fmt.Errorf("%s prefab without nid", class)
	}
	if _, dup := m[p.Nid]; dup {
		slog.Warn("prefab redefined", "class", class, "nid", p.Nid)
	} else {
		*order = append(*order, p.Nid)
	}
	m[p.Nid] = p
	return nil
}

// Merge copies every prefab of other into c.
func (c *Catalog) Merge(other *Catalog) {
	if other == nil {
		return
	}
	for _, nid := range other.skillOrder {
		_ = c.AddSkill(other.skills[nid])
	}
	for _, nid := range other.itemOrder {
		_ = c.AddItem(other.items[nid])
	}
}

// Skill returns the skill prefab nid.
func (c *Catalog) Skill(nid string) (Prefab, bool) {
	p, ok := c.skills[nid]
	return p, ok
}

// Item returns the item prefab nid.
func (c *Catalog) Item(nid string) (Prefab, bool) {
	p, ok := c.items[nid]
	return p, ok
}

// SkillNids lists skill prefabs in definition order.
func (c *Catalog) SkillNids() []string { return append([]string(nil), c.skillOrder...) }

// ItemNids lists item prefabs in definition order.
func (c *Catalog) ItemNids() []string { return append([]string(nil), c.itemOrder...) }

// NewSkill builds a fresh skill from its prefab. Components are attached in
// authored order and their init hooks run.
func (c *Catalog) NewSkill(eng *component.Engine, nid string) (*component.Entity, error) {
	p, ok := c.skills[nid]
	if !ok {
		return nil, fmt.Errorf("%w: skill %s", ErrUnknownPrefab, nid)
	}
	return build(eng, component.NewSkill(p.Nid, p.DisplayName()), p), nil
}

// NewItem builds a fresh item and its subitems from the prefab.
func (c *Catalog) NewItem(eng *component.Engine, nid string) (*component.Entity, error) {
	return c.newItem(eng, nid, 0)
}

func (c *Catalog) newItem(eng *component.Engine, nid string, depth int) (*component.Entity, error) {
	if depth > maxSubitemDepth {
		return nil, fmt.Errorf("item %s: subitems nested too deep", nid)
	}
	p, ok := c.items[nid]
	if !ok {
		return nil, fmt.Errorf("%w: item %s", ErrUnknownPrefab, nid)
	}
	it := build(eng, component.NewItem(p.Nid, p.DisplayName()), p)
	for _, sub := range p.Subitems {
		child, err := c.newItem(eng, sub, depth+1)
		if err != nil {
			return nil, fmt.Errorf("item %s: %w", nid, err)
		}
		it.AddChild(child)
	}
	return it, nil
}

func build(eng *component.Engine, e *component.Entity, p Prefab) *component.Entity {
	for _, spec := range p.Components {
		eng.AttachNew(e, spec.Nid, spec.Value, nil)
	}
	return e
}

// Validate builds every prefab and collects the engine's pairing and
// shadowing warnings. Prefabs that cannot be built are reported as errors.
func (c *Catalog) Validate(eng *component.Engine) ([]component.Warning, error) {
	var warnings []component.Warning
	var errs []error
	for _, nid := range c.skillOrder {
		e, err := c.NewSkill(eng, nid)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		warnings = append(warnings, eng.Validate(e)...)
	}
	for _, nid := range c.itemOrder {
		e, err := c.NewItem(eng, nid)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		warnings = append(warnings, validateTree(eng, e)...)
	}
	return warnings, errors.Join(errs...)
}

func validateTree(eng *component.Engine, e *component.Entity) []component.Warning {
	out := eng.Validate(e)
	for _, child := range e.Children() {
		out = append(out, validateTree(eng, child)...)
	}
	return out
}

// Factory binds the catalog to an engine so components can build status
// skills by nid.
type Factory struct {
	cat *Catalog
	eng *component.Engine
}

var _ component.SkillFactory = (*Factory)(nil)

// Factory returns a skill factory over c.
func (c *Catalog) Factory(eng *component.Engine) *Factory {
	return &Factory{cat: c, eng: eng}
}

// NewSkill implements component.SkillFactory.
func (f *Factory) NewSkill(nid string) (*component.Entity, error) {
	return f.cat.NewSkill(f.eng, nid)
}

// NewItem builds an item prefab.
func (f *Factory) NewItem(nid string) (*component.Entity, error) {
	return f.cat.NewItem(f.eng, nid)
}
