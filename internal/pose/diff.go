package pose

// ChannelDelta is one channel's value in each of two compared states.
type ChannelDelta struct {
	Channel string
	A, B    float64
}

func (d ChannelDelta) Delta() float64 { return d.B - d.A }

// ControllerDiff describes how one controller differs between two poses.
// OnlyInA / OnlyInB list channels present in one state but not the other,
// surfacing channel-set drift instead of zero-filling it.
type ControllerDiff struct {
	Name    string
	Changed []ChannelDelta
	OnlyInA []string
	OnlyInB []string
}

type Diff struct {
	Controllers []ControllerDiff
	OnlyInA     []string
	OnlyInB     []string
}

// Equal reports whether the compared poses matched exactly.
func (d *Diff) Equal() bool {
	return len(d.Controllers) == 0 && len(d.OnlyInA) == 0 && len(d.OnlyInB) == 0
}

// Compare diffs two poses. Controllers present in both are compared channel
// by channel in a's order; controllers present in only one pose land in
// OnlyInA / OnlyInB. Controllers with no differences are omitted.
func Compare(a, b *Pose) *Diff {
	diff := &Diff{}

	for _, ea := range a.Entries {
		eb, ok := b.Entry(ea.ID.Name)
		if !ok {
			diff.OnlyInA = append(diff.OnlyInA, ea.ID.Name)
			continue
		}
		cd := compareStates(ea.ID.Name, ea.State, eb.State)
		if len(cd.Changed) > 0 || len(cd.OnlyInA) > 0 || len(cd.OnlyInB) > 0 {
			diff.Controllers = append(diff.Controllers, cd)
		}
	}

	for _, eb := range b.Entries {
		if _, ok := a.Entry(eb.ID.Name); !ok {
			diff.OnlyInB = append(diff.OnlyInB, eb.ID.Name)
		}
	}

	return diff
}

func compareStates(name string, a, b State) ControllerDiff {
	cd := ControllerDiff{Name: name}

	for _, ch := range a.Channels {
		bv, ok := b.Get(ch.Name)
		if !ok {
			cd.OnlyInA = append(cd.OnlyInA, ch.Name)
			continue
		}
		if ch.Value != bv {
			cd.Changed = append(cd.Changed, ChannelDelta{Channel: ch.Name, A: ch.Value, B: bv})
		}
	}

	for _, ch := range b.Channels {
		if !a.Has(ch.Name) {
			cd.OnlyInB = append(cd.OnlyInB, ch.Name)
		}
	}

	return cd
}
