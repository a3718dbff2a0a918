package pose

import (
	"strings"

	"posecraft/internal/rig"
)

type Axis string

const (
	AxisX Axis = "x"
	AxisY Axis = "y"
	AxisZ Axis = "z"
)

func (a Axis) Valid() bool {
	return a == AxisX || a == AxisY || a == AxisZ
}

const (
	GroupPosition = "position"
	GroupRotation = "rotation"
	GroupScale    = "scale"
)

func PositionChannel(a Axis) string { return GroupPosition + "." + string(a) }
func RotationChannel(a Axis) string { return GroupRotation + "." + string(a) }
func ScaleChannel(a Axis) string    { return GroupScale + "." + string(a) }

// SplitChannel breaks a transform channel name into its group and axis.
// Custom parameter names do not follow the group.axis form and come back
// with ok false.
func SplitChannel(name string) (string, Axis, bool) {
	group, axis, found := strings.Cut(name, ".")
	if !found {
		return "", "", false
	}
	switch group {
	case GroupPosition, GroupRotation, GroupScale:
	default:
		return "", "", false
	}
	a := Axis(axis)
	if !a.Valid() {
		return "", "", false
	}
	return group, a, true
}

type Channel struct {
	Name  string
	Value float64
}

// State is one controller's animatable payload at one instant: an ordered
// list of channel values. Order is the order channels were first set.
type State struct {
	Channels []Channel
}

func (s *State) Set(name string, value float64) {
	for i := range s.Channels {
		if s.Channels[i].Name == name {
			s.Channels[i].Value = value
			return
		}
	}
	s.Channels = append(s.Channels, Channel{Name: name, Value: value})
}

func (s State) Get(name string) (float64, bool) {
	for _, ch := range s.Channels {
		if ch.Name == name {
			return ch.Value, true
		}
	}
	return 0, false
}

func (s State) Has(name string) bool {
	_, ok := s.Get(name)
	return ok
}

func (s State) Names() []string {
	names := make([]string, 0, len(s.Channels))
	for _, ch := range s.Channels {
		names = append(names, ch.Name)
	}
	return names
}

func (s State) Clone() State {
	if s.Channels == nil {
		return State{}
	}
	return State{Channels: append([]Channel{}, s.Channels...)}
}

// Entry binds a classified controller to its captured state.
type Entry struct {
	ID    rig.ControllerID
	State State
}

// Pose is an insertion-ordered set of controller entries, keyed by raw
// controller name. Iteration order is capture order and is the restore
// write order.
type Pose struct {
	Entries []Entry
}

func (p *Pose) Set(id rig.ControllerID, st State) {
	for i := range p.Entries {
		if p.Entries[i].ID.Name == id.Name {
			p.Entries[i] = Entry{ID: id, State: st}
			return
		}
	}
	p.Entries = append(p.Entries, Entry{ID: id, State: st})
}

func (p *Pose) Entry(name string) (Entry, bool) {
	for _, e := range p.Entries {
		if e.ID.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}

func (p *Pose) Get(name string) (State, bool) {
	e, ok := p.Entry(name)
	return e.State, ok
}

func (p *Pose) Names() []string {
	names := make([]string, 0, len(p.Entries))
	for _, e := range p.Entries {
		names = append(names, e.ID.Name)
	}
	return names
}

// IDs returns the classified controllers in pose order; a pose is
// self-describing enough to rebuild its side pairing.
func (p *Pose) IDs() []rig.ControllerID {
	ids := make([]rig.ControllerID, 0, len(p.Entries))
	for _, e := range p.Entries {
		ids = append(ids, e.ID)
	}
	return ids
}

func (p *Pose) Len() int {
	if p == nil {
		return 0
	}
	return len(p.Entries)
}

func (p *Pose) Clone() *Pose {
	out := &Pose{Entries: make([]Entry, 0, len(p.Entries))}
	for _, e := range p.Entries {
		out.Entries = append(out.Entries, Entry{ID: e.ID, State: e.State.Clone()})
	}
	return out
}
