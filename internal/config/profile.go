package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"posecraft/internal/mirror"
	"posecraft/internal/pose"
	"posecraft/internal/rig"
)

// RigProfile describes one rig's conventions: how side markers are spelled,
// which axis the rig mirrors across, which rotation rule its controllers
// follow, and the rotation order its host exports.
type RigProfile struct {
	Naming        NamingConfig `yaml:"naming"`
	Mirror        MirrorConfig `yaml:"mirror"`
	RotationOrder string       `yaml:"rotation_order"`
}

type NamingConfig struct {
	Left      string `yaml:"left"`
	Right     string `yaml:"right"`
	Separator string `yaml:"separator"`
}

type MirrorConfig struct {
	Axis string `yaml:"axis"`
	Rule string `yaml:"rule"`
}

func DefaultRigProfile() *RigProfile {
	return &RigProfile{
		Naming:        NamingConfig{Left: "_L", Right: "_R", Separator: "_"},
		Mirror:        MirrorConfig{Axis: "x", Rule: string(mirror.RuleAligned)},
		RotationOrder: pose.DefaultOrder.String(),
	}
}

func LoadRigProfile(path string) (*RigProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading rig profile: %w", err)
	}

	var profile RigProfile
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("loading rig profile: %w", err)
	}

	applyProfileDefaults(&profile)

	if err := validateRigProfile(&profile); err != nil {
		return nil, fmt.Errorf("loading rig profile: %w", err)
	}

	return &profile, nil
}

func applyProfileDefaults(p *RigProfile) {
	def := DefaultRigProfile()
	if p.Naming.Left == "" && p.Naming.Right == "" {
		p.Naming = def.Naming
	}
	if p.Naming.Separator == "" {
		p.Naming.Separator = def.Naming.Separator
	}
	if p.Mirror.Axis == "" {
		p.Mirror.Axis = def.Mirror.Axis
	}
	if p.Mirror.Rule == "" {
		p.Mirror.Rule = def.Mirror.Rule
	}
	if p.RotationOrder == "" {
		p.RotationOrder = def.RotationOrder
	}
}

func validateRigProfile(p *RigProfile) error {
	if !p.Convention().Valid() {
		return fmt.Errorf("naming needs distinct left and right tokens")
	}
	if !p.Axis().Valid() {
		return fmt.Errorf("unknown mirror axis: %s", p.Mirror.Axis)
	}
	if !p.Rule().Valid() {
		return fmt.Errorf("unknown rotation rule: %s", p.Mirror.Rule)
	}
	if _, err := pose.ParseEulerOrder(p.RotationOrder); err != nil {
		return err
	}
	return nil
}

func (p *RigProfile) Convention() rig.Convention {
	return rig.Convention{
		Left:      strings.TrimSpace(p.Naming.Left),
		Right:     strings.TrimSpace(p.Naming.Right),
		Separator: p.Naming.Separator,
	}
}

func (p *RigProfile) Axis() pose.Axis {
	return pose.Axis(p.Mirror.Axis)
}

func (p *RigProfile) Rule() mirror.RotationRule {
	return mirror.RotationRule(p.Mirror.Rule)
}

func (p *RigProfile) Order() pose.EulerOrder {
	order, err := pose.ParseEulerOrder(p.RotationOrder)
	if err != nil {
		return pose.DefaultOrder
	}
	return order
}
