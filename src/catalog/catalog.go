// Package catalog holds the configured search engines and the default
// engine selection.
package catalog

import (
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/apimgr/websearch/src/engine"
)

// Lookup and removal errors
var (
	ErrNotFound         = errors.New("engine not found")
	ErrEmptyCatalog     = errors.New("no engines configured")
	ErrIndexOutOfBounds = errors.New("engine index out of bounds")
)

// Catalog is the full set of configured engines plus the selected default.
// It is serialized as-is by the store; the file it came from is tracked by
// the store, not here.
type Catalog struct {
	DefaultEngine *string         `yaml:"default_engine,omitempty" json:"default_engine,omitempty"`
	Items         []engine.Engine `yaml:"engines,omitempty" json:"engines,omitempty"`
}

// New returns an empty catalog
func New() *Catalog {
	return &Catalog{}
}

// Push appends an engine. Duplicate names are accepted.
func (c *Catalog) Push(e engine.Engine) {
	c.Items = append(c.Items, e)
}

// RemoveWhereName removes every engine with the given name and returns how
// many were removed.
func (c *Catalog) RemoveWhereName(name string) (int, error) {
	return c.removeWhere(func(e engine.Engine) bool { return e.Name == name })
}

// RemoveWhereID removes every engine with the given identifier
func (c *Catalog) RemoveWhereID(id uuid.UUID) (int, error) {
	return c.removeWhere(func(e engine.Engine) bool { return e.ID == id })
}

func (c *Catalog) removeWhere(match func(engine.Engine) bool) (int, error) {
	if len(c.Items) == 0 {
		return 0, ErrEmptyCatalog
	}

	kept := c.Items[:0]
	for _, e := range c.Items {
		if !match(e) {
			kept = append(kept, e)
		}
	}
	removed := len(c.Items) - len(kept)
	clear(c.Items[len(kept):])
	c.Items = kept
	return removed, nil
}

// RemoveAt removes the engine at position index
func (c *Catalog) RemoveAt(index int) error {
	if index < 0 || index >= len(c.Items) {
		return ErrIndexOutOfBounds
	}
	c.Items = append(c.Items[:index], c.Items[index+1:]...)
	return nil
}

// Names returns engine names in catalog order
func (c *Catalog) Names() []string {
	return project(c.Items, func(e engine.Engine) string { return e.Name })
}

// Patterns returns the placeholder of every engine
func (c *Catalog) Patterns() []string {
	return project(c.Items, func(e engine.Engine) string { return e.Pattern })
}

// URLPatterns returns the URL template of every engine
func (c *Catalog) URLPatterns() []string {
	return project(c.Items, func(e engine.Engine) string { return e.URLPattern })
}

// Regexes returns the normalization regex of every engine
func (c *Catalog) Regexes() []string {
	return project(c.Items, func(e engine.Engine) string { return e.Regex })
}

// Replacements returns the normalization replacement of every engine
func (c *Catalog) Replacements() []string {
	return project(c.Items, func(e engine.Engine) string { return e.Replacement })
}

func project(items []engine.Engine, field func(engine.Engine) string) []string {
	out := make([]string, 0, len(items))
	for _, e := range items {
		out = append(out, field(e))
	}
	return out
}

// Contains reports whether an engine with the given name exists
func (c *Catalog) Contains(name string) bool {
	_, err := c.WhereName(name)
	return err == nil
}

// WhereName returns the first engine with the given name
func (c *Catalog) WhereName(name string) (engine.Engine, error) {
	for _, e := range c.Items {
		if e.Name == name {
			return e, nil
		}
	}
	return engine.Engine{}, ErrNotFound
}

// WhereNameFold returns the first engine with exactly the given name, or
// else the first whose name matches ignoring case.
func (c *Catalog) WhereNameFold(name string) (engine.Engine, error) {
	if e, err := c.WhereName(name); err == nil {
		return e, nil
	}
	for _, e := range c.Items {
		if strings.EqualFold(e.Name, name) {
			return e, nil
		}
	}
	return engine.Engine{}, ErrNotFound
}

// WhereID returns the engine with the given identifier
func (c *Catalog) WhereID(id uuid.UUID) (engine.Engine, error) {
	for _, e := range c.Items {
		if e.ID == id {
			return e, nil
		}
	}
	return engine.Engine{}, ErrNotFound
}

// Default returns the default engine. A default that is unset or names an
// engine that no longer exists reports false.
func (c *Catalog) Default() (engine.Engine, bool) {
	if c.DefaultEngine == nil {
		return engine.Engine{}, false
	}
	e, err := c.WhereName(*c.DefaultEngine)
	if err != nil {
		return engine.Engine{}, false
	}
	return e, true
}

// DefaultName returns the configured default name, which may dangle
func (c *Catalog) DefaultName() string {
	if c.DefaultEngine == nil {
		return ""
	}
	return *c.DefaultEngine
}

// SetDefault selects the default engine by name. The name must currently
// resolve; otherwise the catalog is left untouched.
func (c *Catalog) SetDefault(name string) error {
	if !c.Contains(name) {
		return ErrNotFound
	}
	c.DefaultEngine = &name
	return nil
}

// Engines returns a copy of the configured engines
func (c *Catalog) Engines() []engine.Engine {
	out := make([]engine.Engine, len(c.Items))
	copy(out, c.Items)
	return out
}

// Len returns the number of configured engines
func (c *Catalog) Len() int {
	return len(c.Items)
}

// IsEmpty reports whether no engines are configured
func (c *Catalog) IsEmpty() bool {
	return len(c.Items) == 0
}
