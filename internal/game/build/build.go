// Package build describes a character build and runs the statistics pass
// over it.
package build

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/udisondev/buildcalc/internal/data"
	"github.com/udisondev/buildcalc/internal/game/proc"
	"github.com/udisondev/buildcalc/internal/model"
)

// DefaultLevel is used when a build omits its level.
const DefaultLevel = 50

// ErrInvalidBuild wraps every build description error.
var ErrInvalidBuild = errors.New("invalid build")

// Effect is a model.Effect whose omitted fields take DefaultEffect's values
// when decoded from YAML.
type Effect model.Effect

func (e *Effect) UnmarshalYAML(n *yaml.Node) error {
	v := model.DefaultEffect(model.EffectNone)
	if err := n.Decode(&v); err != nil {
		return err
	}
	*e = Effect(v)
	return nil
}

// Power is one power taken in the build with its slotting.
type Power struct {
	Name         string          `yaml:"name"`
	Activation   proc.Activation `yaml:"activation"`
	BaseRecharge float64         `yaml:"base_recharge,omitempty"`
	CastTime     float64         `yaml:"cast_time,omitempty"`
	Area         proc.Area       `yaml:"area"`
	Radius       float64         `yaml:"radius,omitempty"`
	Arc          float64         `yaml:"arc,omitempty"`
	Duration     float64         `yaml:"duration,omitempty"`
	Temporary    bool            `yaml:"temporary,omitempty"`
	Uptime       float64         `yaml:"uptime,omitempty"`
	Enhancements []string        `yaml:"enhancements,omitempty"`
	Procs        []proc.Proc     `yaml:"procs,omitempty"`
	Effects      []Effect        `yaml:"effects,omitempty"`
}

// SetBonus is one set bonus power granted by the slotting. Its effects are
// subject to the Rule of 5 under the bonus name.
type SetBonus struct {
	Name    string   `yaml:"name"`
	Effects []Effect `yaml:"effects"`
}

// Build is a complete character description.
type Build struct {
	Name       string     `yaml:"name"`
	Archetype  string     `yaml:"archetype"`
	Level      int        `yaml:"level,omitempty"`
	Powers     []Power    `yaml:"powers"`
	SetBonuses []SetBonus `yaml:"set_bonuses,omitempty"`
}

// EffectiveLevel returns Level or DefaultLevel when unset.
func (b Build) EffectiveLevel() int {
	if b.Level == 0 {
		return DefaultLevel
	}
	return b.Level
}

// Validate reports every structural problem of the description at once.
func (b Build) Validate() error {
	var errs error
	if strings.TrimSpace(b.Archetype) == "" {
		errs = multierr.Append(errs, errors.New("archetype is required"))
	}
	if lvl := b.EffectiveLevel(); lvl < 1 || lvl > data.ModifierLevels {
		errs = multierr.Append(errs, fmt.Errorf("level %d outside 1..%d", lvl, data.ModifierLevels))
	}

	seen := make(map[string]struct{}, len(b.Powers))
	for i, pw := range b.Powers {
		if pw.Name == "" {
			errs = multierr.Append(errs, fmt.Errorf("power #%d has no name", i))
			continue
		}
		if _, dup := seen[pw.Name]; dup {
			errs = multierr.Append(errs, fmt.Errorf("power %q listed twice", pw.Name))
		}
		seen[pw.Name] = struct{}{}
		if pw.Uptime < 0 || pw.Uptime > 1 {
			errs = multierr.Append(errs, fmt.Errorf("power %q: uptime %v outside [0,1]", pw.Name, pw.Uptime))
		}
		if pw.BaseRecharge < 0 || pw.CastTime < 0 || pw.Duration < 0 {
			errs = multierr.Append(errs, fmt.Errorf("power %q: negative time", pw.Name))
		}
		if pw.Radius < 0 {
			errs = multierr.Append(errs, fmt.Errorf("power %q: negative radius %v", pw.Name, pw.Radius))
		}
		if pw.Arc < 0 || pw.Arc > 360 {
			errs = multierr.Append(errs, fmt.Errorf("power %q: arc %v outside [0,360]", pw.Name, pw.Arc))
		}
		for _, p := range pw.Procs {
			if err := p.Validate(); err != nil {
				errs = multierr.Append(errs, fmt.Errorf("power %q: %w", pw.Name, err))
			}
		}
	}
	for i, sb := range b.SetBonuses {
		if sb.Name == "" {
			errs = multierr.Append(errs, fmt.Errorf("set bonus #%d has no name", i))
		}
	}

	if errs != nil {
		return fmt.Errorf("%w %q: %w", ErrInvalidBuild, b.Name, errs)
	}
	return nil
}

// Parse decodes a build from YAML.
func Parse(raw []byte) (Build, error) {
	var b Build
	if err := yaml.Unmarshal(raw, &b); err != nil {
		return Build{}, fmt.Errorf("parsing build: %w", err)
	}
	return b, nil
}

// LoadFile reads a build file. An unnamed build takes the file path as name.
func LoadFile(path string) (Build, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Build{}, fmt.Errorf("reading build %s: %w", path, err)
	}
	b, err := Parse(raw)
	if err != nil {
		return Build{}, fmt.Errorf("%s: %w", path, err)
	}
	if b.Name == "" {
		b.Name = path
	}
	return b, nil
}
