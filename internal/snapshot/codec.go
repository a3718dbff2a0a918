package snapshot

import (
	"encoding/json"
	"fmt"

	"posecraft/internal/pose"
	"posecraft/internal/rig"
)

// Wire form for pose payloads shared by the sqlite and postgres backends.
// Entries and channels are arrays, so capture order survives the database
// round trip; float64 JSON encoding keeps channel values bit-exact.

type wireChannel struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

type wireController struct {
	Name     string        `json:"name"`
	Base     string        `json:"base"`
	Side     string        `json:"side"`
	Channels []wireChannel `json:"channels"`
}

type wirePose struct {
	Controllers []wireController `json:"controllers"`
}

func EncodePose(p *pose.Pose) ([]byte, error) {
	wp := wirePose{Controllers: make([]wireController, 0, p.Len())}
	for _, e := range p.Entries {
		wc := wireController{
			Name:     e.ID.Name,
			Base:     e.ID.Base,
			Side:     string(e.ID.Side),
			Channels: make([]wireChannel, 0, len(e.State.Channels)),
		}
		for _, ch := range e.State.Channels {
			wc.Channels = append(wc.Channels, wireChannel{Name: ch.Name, Value: ch.Value})
		}
		wp.Controllers = append(wp.Controllers, wc)
	}

	data, err := json.Marshal(wp)
	if err != nil {
		return nil, fmt.Errorf("encoding pose: %w", err)
	}
	return data, nil
}

func DecodePose(data []byte) (*pose.Pose, error) {
	var wp wirePose
	if err := json.Unmarshal(data, &wp); err != nil {
		return nil, fmt.Errorf("decoding pose: %w", err)
	}

	p := &pose.Pose{}
	for _, wc := range wp.Controllers {
		var st pose.State
		for _, ch := range wc.Channels {
			st.Channels = append(st.Channels, pose.Channel{Name: ch.Name, Value: ch.Value})
		}
		p.Set(rig.ControllerID{Name: wc.Name, Base: wc.Base, Side: rig.Side(wc.Side)}, st)
	}
	return p, nil
}
