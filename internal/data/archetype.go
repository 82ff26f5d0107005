package data

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"go.uber.org/multierr"
)

// ErrUnknownArchetype is returned when a build names an archetype that is not
// in the loaded table. Caps are never defaulted.
var ErrUnknownArchetype = errors.New("unknown archetype")

// ArchetypeCaps holds the hard ceilings of one archetype.
//
// DamageCap, RechargeCap, RecoveryCap and RegenerationCap are limits on the
// bonus (4.00 = +400%). ResistanceCap and DefenseDisplayCap are fractions.
// HPCap and BaseHP are absolute hit points at level 50, PerceptionCap in feet.
type ArchetypeCaps struct {
	Name              string  `yaml:"name"`
	DisplayName       string  `yaml:"display_name"`
	Column            int     `yaml:"column"`
	DamageCap         float64 `yaml:"damage_cap"`
	ResistanceCap     float64 `yaml:"resistance_cap"`
	DefenseDisplayCap float64 `yaml:"defense_display_cap"`
	RechargeCap       float64 `yaml:"recharge_cap"`
	RecoveryCap       float64 `yaml:"recovery_cap"`
	RegenerationCap   float64 `yaml:"regeneration_cap"`
	HPCap             float64 `yaml:"hp_cap"`
	BaseHP            float64 `yaml:"base_hp"`
	PerceptionCap     float64 `yaml:"perception_cap"`
}

// Archetypes is an immutable archetype lookup table.
// Safe for concurrent reads.
type Archetypes struct {
	byName map[string]*ArchetypeCaps
	order  []*ArchetypeCaps
}

// NewArchetypes validates caps and builds a lookup table.
// Every violation is reported; use multierr.Errors to list them.
func NewArchetypes(caps []ArchetypeCaps) (*Archetypes, error) {
	a := &Archetypes{
		byName: make(map[string]*ArchetypeCaps, len(caps)),
		order:  make([]*ArchetypeCaps, 0, len(caps)),
	}

	var errs error
	for i := range caps {
		c := caps[i]
		key := strings.ToLower(c.Name)
		if key == "" {
			errs = multierr.Append(errs, fmt.Errorf("archetype #%d: empty name", i))
			continue
		}
		if _, dup := a.byName[key]; dup {
			errs = multierr.Append(errs, fmt.Errorf("archetype %q: duplicate", c.Name))
			continue
		}
		if c.Column < 0 || c.Column >= ModifierColumns {
			errs = multierr.Append(errs, fmt.Errorf("archetype %q: column %d outside 0..%d", c.Name, c.Column, ModifierColumns-1))
		}
		for _, f := range []struct {
			name string
			v    float64
		}{
			{"damage_cap", c.DamageCap},
			{"resistance_cap", c.ResistanceCap},
			{"recharge_cap", c.RechargeCap},
			{"hp_cap", c.HPCap},
		} {
			if math.IsNaN(f.v) || f.v <= 0 {
				errs = multierr.Append(errs, fmt.Errorf("archetype %q: %s must be positive, got %v", c.Name, f.name, f.v))
			}
		}
		if c.ResistanceCap > 1 {
			errs = multierr.Append(errs, fmt.Errorf("archetype %q: resistance_cap %v above 1", c.Name, c.ResistanceCap))
		}
		if c.DisplayName == "" {
			c.DisplayName = c.Name
		}
		a.byName[key] = &c
		a.order = append(a.order, &c)
	}
	if errs != nil {
		return nil, errs
	}
	return a, nil
}

// Get returns the caps for name (case-insensitive).
func (a *Archetypes) Get(name string) (*ArchetypeCaps, error) {
	if a != nil {
		if c, ok := a.byName[strings.ToLower(name)]; ok {
			return c, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownArchetype, name)
}

// All returns a copy of every archetype in load order.
func (a *Archetypes) All() []ArchetypeCaps {
	if a == nil {
		return nil
	}
	out := make([]ArchetypeCaps, len(a.order))
	for i, c := range a.order {
		out[i] = *c
	}
	return out
}

// Len returns the number of archetypes.
func (a *Archetypes) Len() int {
	if a == nil {
		return 0
	}
	return len(a.order)
}

// Standard caps shared by most archetypes.
const (
	StandardRechargeCap   = 4.00
	StandardResistanceCap = 0.75
	StandardRecoveryCap   = 4.00
	StandardPerceptionCap = 1153.0
	DefenseDisplayCap     = 2.25
)

// builtinArchetypeDefs are the playable archetypes at level 50.
var builtinArchetypeDefs = []ArchetypeCaps{
	{Name: "Class_Blaster", DisplayName: "Blaster", Column: 0, DamageCap: 4.00, ResistanceCap: StandardResistanceCap, HPCap: 1606.4, BaseHP: 1204.8, RegenerationCap: 19.0},
	{Name: "Class_Controller", DisplayName: "Controller", Column: 1, DamageCap: 3.00, ResistanceCap: StandardResistanceCap, HPCap: 1606.4, BaseHP: 1017.4, RegenerationCap: 19.0},
	{Name: "Class_Defender", DisplayName: "Defender", Column: 2, DamageCap: 3.00, ResistanceCap: StandardResistanceCap, HPCap: 1606.4, BaseHP: 1017.4, RegenerationCap: 19.0},
	{Name: "Class_Scrapper", DisplayName: "Scrapper", Column: 3, DamageCap: 4.00, ResistanceCap: StandardResistanceCap, HPCap: 2409.5, BaseHP: 1338.6, RegenerationCap: 29.0},
	{Name: "Class_Tanker", DisplayName: "Tanker", Column: 4, DamageCap: 3.00, ResistanceCap: 0.90, HPCap: 3534.0, BaseHP: 1874.2, RegenerationCap: 24.0},
	{Name: "Class_Peacebringer", DisplayName: "Peacebringer", Column: 5, DamageCap: 3.00, ResistanceCap: 0.85, HPCap: 2409.5, BaseHP: 1017.4, RegenerationCap: 19.0},
	{Name: "Class_Warshade", DisplayName: "Warshade", Column: 6, DamageCap: 3.00, ResistanceCap: 0.85, HPCap: 2409.5, BaseHP: 1017.4, RegenerationCap: 19.0},
	{Name: "Class_Brute", DisplayName: "Brute", Column: 7, DamageCap: 6.75, ResistanceCap: 0.90, HPCap: 3212.7, BaseHP: 1499.4, RegenerationCap: 24.0},
	{Name: "Class_Corruptor", DisplayName: "Corruptor", Column: 8, DamageCap: 4.00, ResistanceCap: StandardResistanceCap, HPCap: 1606.4, BaseHP: 1070.9, RegenerationCap: 19.0},
	{Name: "Class_Dominator", DisplayName: "Dominator", Column: 9, DamageCap: 3.00, ResistanceCap: StandardResistanceCap, HPCap: 1606.4, BaseHP: 1017.4, RegenerationCap: 19.0},
	{Name: "Class_Mastermind", DisplayName: "Mastermind", Column: 10, DamageCap: 3.00, ResistanceCap: StandardResistanceCap, HPCap: 1606.4, BaseHP: 803.2, RegenerationCap: 19.0},
	{Name: "Class_Stalker", DisplayName: "Stalker", Column: 11, DamageCap: 4.00, ResistanceCap: StandardResistanceCap, HPCap: 2088.3, BaseHP: 1204.8, RegenerationCap: 29.0},
	{Name: "Class_Arachnos_Soldier", DisplayName: "Arachnos Soldier", Column: 12, DamageCap: 3.00, ResistanceCap: StandardResistanceCap, HPCap: 2409.5, BaseHP: 1204.8, RegenerationCap: 19.0},
	{Name: "Class_Arachnos_Widow", DisplayName: "Arachnos Widow", Column: 13, DamageCap: 3.00, ResistanceCap: StandardResistanceCap, HPCap: 2409.5, BaseHP: 1204.8, RegenerationCap: 19.0},
	{Name: "Class_Sentinel", DisplayName: "Sentinel", Column: 14, DamageCap: 4.00, ResistanceCap: StandardResistanceCap, HPCap: 1874.2, BaseHP: 1204.8, RegenerationCap: 19.0},
}

func init() {
	for i := range builtinArchetypeDefs {
		d := &builtinArchetypeDefs[i]
		d.DefenseDisplayCap = DefenseDisplayCap
		d.RechargeCap = StandardRechargeCap
		d.RecoveryCap = StandardRecoveryCap
		d.PerceptionCap = StandardPerceptionCap
	}
}

// BuiltinArchetypes returns the compiled-in archetype table.
func BuiltinArchetypes() *Archetypes {
	a, err := NewArchetypes(builtinArchetypeDefs)
	if err != nil {
		panic("builtin archetype table is invalid: " + err.Error())
	}
	return a
}
