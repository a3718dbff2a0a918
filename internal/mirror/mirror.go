package mirror

import (
	"fmt"

	"posecraft/internal/pose"
	"posecraft/internal/rig"
)

// RotationRule picks which rotation channels flip sign when a pose crosses
// the mirror plane.
type RotationRule string

const (
	// RuleAligned negates the rotation channel aligned with the mirror
	// axis, matching rigs whose controllers share the world orientation.
	RuleAligned RotationRule = "aligned"
	// RuleOrthogonal negates the two rotation channels orthogonal to the
	// mirror axis instead, matching Euler rigs where reflection reverses
	// the other two axes.
	RuleOrthogonal RotationRule = "orthogonal"
)

func (r RotationRule) Valid() bool {
	return r == RuleAligned || r == RuleOrthogonal
}

type Options struct {
	// Rule defaults to RuleAligned.
	Rule RotationRule
	// Keys restricts mirroring to these base keys. Empty means every
	// cleanly paired key. A listed key that is missing or not cleanly
	// paired fails the whole call.
	Keys []string
}

// PairingError reports a mirror request against a base key that is not
// cleanly paired.
type PairingError struct {
	Key    string
	Status rig.PairStatus
}

func (e *PairingError) Error() string {
	if e.Status == "" {
		return fmt.Sprintf("no controllers for base key %s", e.Key)
	}
	return fmt.Sprintf("base key %s is not mirrorable: status %s", e.Key, e.Status)
}

// Mirror produces a new pose where every cleanly paired controller carries
// its counterpart's values, sign-flipped per the axis and rule: the aligned
// position channel always negates, rotation follows the rule, scale and
// custom channels never negate. Controllers without a clean pairing, or
// whose counterpart is absent from the pose, pass through unchanged.
func Mirror(p *pose.Pose, pairing *rig.SidePairing, axis pose.Axis, opts Options) (*pose.Pose, error) {
	if !axis.Valid() {
		return nil, fmt.Errorf("invalid mirror axis %q", axis)
	}
	rule := opts.Rule
	if rule == "" {
		rule = RuleAligned
	}
	if !rule.Valid() {
		return nil, fmt.Errorf("invalid rotation rule %q", rule)
	}

	scope, err := buildScope(pairing, opts.Keys)
	if err != nil {
		return nil, err
	}

	out := &pose.Pose{}
	for _, e := range p.Entries {
		src, swap := counterpartState(p, pairing, scope, e)
		if !swap {
			out.Set(e.ID, e.State.Clone())
			continue
		}
		out.Set(e.ID, flipState(src, axis, rule))
	}
	return out, nil
}

func buildScope(pairing *rig.SidePairing, keys []string) (map[string]bool, error) {
	if len(keys) == 0 {
		return nil, nil
	}
	scope := make(map[string]bool, len(keys))
	for _, key := range keys {
		pair, ok := pairing.Pair(key)
		if !ok {
			return nil, &PairingError{Key: key}
		}
		if pair.Status != rig.PairOK {
			return nil, &PairingError{Key: key, Status: pair.Status}
		}
		scope[key] = true
	}
	return scope, nil
}

func counterpartState(p *pose.Pose, pairing *rig.SidePairing, scope map[string]bool, e pose.Entry) (pose.State, bool) {
	if e.ID.Side == rig.SideUnsided {
		return pose.State{}, false
	}
	if scope != nil && !scope[e.ID.Base] {
		return pose.State{}, false
	}
	other, ok := pairing.Counterpart(e.ID)
	if !ok {
		return pose.State{}, false
	}
	st, ok := p.Get(other.Name)
	if !ok {
		return pose.State{}, false
	}
	return st, true
}

func flipState(src pose.State, axis pose.Axis, rule RotationRule) pose.State {
	out := pose.State{Channels: make([]pose.Channel, 0, len(src.Channels))}
	for _, ch := range src.Channels {
		out.Channels = append(out.Channels, pose.Channel{
			Name:  ch.Name,
			Value: ch.Value * flipSign(ch.Name, axis, rule),
		})
	}
	return out
}

func flipSign(channel string, axis pose.Axis, rule RotationRule) float64 {
	group, chAxis, ok := pose.SplitChannel(channel)
	if !ok {
		return 1
	}
	switch group {
	case pose.GroupPosition:
		if chAxis == axis {
			return -1
		}
	case pose.GroupRotation:
		if rule == RuleOrthogonal {
			if chAxis != axis {
				return -1
			}
		} else if chAxis == axis {
			return -1
		}
	}
	return 1
}
