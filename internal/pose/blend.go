package pose

// Lerp blends a toward b channel by channel: 0 returns a's values, 1
// returns b's. t is clamped to [0, 1]. Controllers and channels missing
// from b carry a's values through unchanged; controllers only in b are
// ignored, so the result always has a's shape.
func Lerp(a, b *Pose, t float64) *Pose {
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}

	out := &Pose{Entries: make([]Entry, 0, len(a.Entries))}
	for _, ea := range a.Entries {
		eb, ok := b.Entry(ea.ID.Name)
		if !ok {
			out.Entries = append(out.Entries, Entry{ID: ea.ID, State: ea.State.Clone()})
			continue
		}

		st := State{Channels: make([]Channel, 0, len(ea.State.Channels))}
		for _, ch := range ea.State.Channels {
			bv, ok := eb.State.Get(ch.Name)
			if !ok {
				st.Channels = append(st.Channels, ch)
				continue
			}
			st.Channels = append(st.Channels, Channel{
				Name:  ch.Name,
				Value: ch.Value + (bv-ch.Value)*t,
			})
		}
		out.Entries = append(out.Entries, Entry{ID: ea.ID, State: st})
	}
	return out
}
