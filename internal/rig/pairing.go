package rig

type PairStatus string

const (
	PairOK        PairStatus = "ok"
	PairUnpaired  PairStatus = "unpaired"
	PairAmbiguous PairStatus = "ambiguous"
)

type Pair struct {
	Base   string
	Status PairStatus
	Lefts  []ControllerID
	Rights []ControllerID
}

// Left returns the single left-side controller of an OK pair.
func (p Pair) Left() ControllerID {
	if len(p.Lefts) == 1 {
		return p.Lefts[0]
	}
	return ControllerID{}
}

func (p Pair) Right() ControllerID {
	if len(p.Rights) == 1 {
		return p.Rights[0]
	}
	return ControllerID{}
}

type SidePairing struct {
	order   []string
	pairs   map[string]*Pair
	unsided []ControllerID
}

// BuildPairing groups sided controllers by base key in first-seen order.
// Unsided controllers are kept aside; they never participate in pairs even
// when their raw name collides with a sided base key.
func BuildPairing(controllers []ControllerID) *SidePairing {
	sp := &SidePairing{pairs: make(map[string]*Pair)}

	for _, id := range controllers {
		if id.Side == SideUnsided {
			sp.unsided = append(sp.unsided, id)
			continue
		}
		pair, ok := sp.pairs[id.Base]
		if !ok {
			pair = &Pair{Base: id.Base}
			sp.pairs[id.Base] = pair
			sp.order = append(sp.order, id.Base)
		}
		if id.Side == SideLeft {
			pair.Lefts = append(pair.Lefts, id)
		} else {
			pair.Rights = append(pair.Rights, id)
		}
	}

	for _, base := range sp.order {
		pair := sp.pairs[base]
		switch {
		case len(pair.Lefts) > 1 || len(pair.Rights) > 1:
			pair.Status = PairAmbiguous
		case len(pair.Lefts) == 1 && len(pair.Rights) == 1:
			pair.Status = PairOK
		default:
			pair.Status = PairUnpaired
		}
	}

	return sp
}

func (sp *SidePairing) Pair(base string) (Pair, bool) {
	pair, ok := sp.pairs[base]
	if !ok {
		return Pair{}, false
	}
	return *pair, true
}

func (sp *SidePairing) Pairs() []Pair {
	pairs := make([]Pair, 0, len(sp.order))
	for _, base := range sp.order {
		pairs = append(pairs, *sp.pairs[base])
	}
	return pairs
}

func (sp *SidePairing) Unsided() []ControllerID {
	return append([]ControllerID{}, sp.unsided...)
}

// Counterpart returns the opposite-side controller for a name, when the
// name belongs to an OK pair.
func (sp *SidePairing) Counterpart(id ControllerID) (ControllerID, bool) {
	pair, ok := sp.pairs[id.Base]
	if !ok || pair.Status != PairOK {
		return ControllerID{}, false
	}
	switch id.Side {
	case SideLeft:
		return pair.Rights[0], true
	case SideRight:
		return pair.Lefts[0], true
	default:
		return ControllerID{}, false
	}
}
