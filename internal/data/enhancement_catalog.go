package data

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"go.uber.org/multierr"

	"github.com/udisondev/buildcalc/internal/model"
)

// ErrUnknownEnhancement is returned when a build slots an enhancement ID
// that is not in the catalog.
var ErrUnknownEnhancement = errors.New("unknown enhancement")

// Boost is one attribute an enhancement improves.
// MezType narrows a Mez boost to one control type; MezNone boosts all.
type Boost struct {
	Attribute model.Attribute `yaml:"attribute"`
	MezType   model.MezType   `yaml:"mez_type,omitempty"`
	Value     float64         `yaml:"value"`
}

// Enhancement is a catalog entry.
type Enhancement struct {
	ID      string  `yaml:"id"`
	Name    string  `yaml:"name"`
	SetName string  `yaml:"set,omitempty"`
	Boosts  []Boost `yaml:"boosts"`
}

// EnhancementCatalog is an immutable ID → enhancement lookup.
type EnhancementCatalog struct {
	byID map[string]*Enhancement
}

// NewEnhancementCatalog validates entries and builds the catalog.
func NewEnhancementCatalog(entries []Enhancement) (*EnhancementCatalog, error) {
	c := &EnhancementCatalog{byID: make(map[string]*Enhancement, len(entries))}

	var errs error
	for i := range entries {
		e := entries[i]
		if e.ID == "" {
			errs = multierr.Append(errs, fmt.Errorf("enhancement #%d: empty id", i))
			continue
		}
		if _, dup := c.byID[e.ID]; dup {
			errs = multierr.Append(errs, fmt.Errorf("enhancement %q: duplicate id", e.ID))
			continue
		}
		for j, b := range e.Boosts {
			if b.Attribute == model.AttrNone || !b.Attribute.Valid() {
				errs = multierr.Append(errs, fmt.Errorf("enhancement %q boost #%d: invalid attribute", e.ID, j))
			}
			if math.IsNaN(b.Value) || math.IsInf(b.Value, 0) {
				errs = multierr.Append(errs, fmt.Errorf("enhancement %q boost #%d: non-finite value", e.ID, j))
			}
			if b.MezType != model.MezNone && b.Attribute != model.AttrMez {
				errs = multierr.Append(errs, fmt.Errorf("enhancement %q boost #%d: mez type on %s", e.ID, j, b.Attribute))
			}
		}
		e.Boosts = append([]Boost(nil), e.Boosts...)
		c.byID[e.ID] = &e
	}
	if errs != nil {
		return nil, errs
	}
	return c, nil
}

// Get returns the enhancement with the given ID.
func (c *EnhancementCatalog) Get(id string) (*Enhancement, error) {
	if c != nil {
		if e, ok := c.byID[id]; ok {
			return e, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownEnhancement, id)
}

// Len returns the number of catalog entries.
func (c *EnhancementCatalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.byID)
}

// All returns a copy of every entry, sorted by ID.
func (c *EnhancementCatalog) All() []Enhancement {
	if c == nil {
		return nil
	}
	out := make([]Enhancement, 0, len(c.byID))
	for _, e := range c.byID {
		cp := *e
		cp.Boosts = append([]Boost(nil), e.Boosts...)
		out = append(out, cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
