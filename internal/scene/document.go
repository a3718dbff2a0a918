package scene

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"posecraft/internal/pose"
)

// Controller is one entry of a scene document. Transform values may come as
// ordered triples, as explicit channels, or both; on overlap the triple is
// authoritative.
type Controller struct {
	Name     string             `json:"name"`
	Position []float64          `json:"position,omitempty"`
	Rotation []float64          `json:"rotation,omitempty"`
	Scale    []float64          `json:"scale,omitempty"`
	Channels map[string]float64 `json:"channels,omitempty"`
}

// Document is a host-exported scene file: the selected controllers and their
// channel values at one frame. It implements Scene, so the CLI captures from
// and restores onto a file the same way an embedded caller works against a
// live host. Rotation triples are indexed by the declared rotation order;
// position and scale triples are always x, y, z.
type Document struct {
	SceneName     string         `json:"scene,omitempty"`
	Frame         int            `json:"frame,omitempty"`
	RotationOrder string         `json:"rotation_order,omitempty"`
	Meta          map[string]any `json:"meta,omitempty"`
	Controllers   []Controller   `json:"controllers"`
}

func LoadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading scene document: %w", err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing scene document: %w", err)
	}
	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("validating scene document: %w", err)
	}
	return &doc, nil
}

func (d *Document) Save(path string) error {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding scene document: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing scene document: %w", err)
	}
	return nil
}

func (d *Document) Validate() error {
	if d.RotationOrder != "" {
		if _, err := pose.ParseEulerOrder(d.RotationOrder); err != nil {
			return err
		}
	}
	seen := make(map[string]bool)
	for i, c := range d.Controllers {
		if c.Name == "" {
			return fmt.Errorf("controller %d: missing name", i)
		}
		if seen[c.Name] {
			return fmt.Errorf("controller %q: duplicate name", c.Name)
		}
		seen[c.Name] = true

		for _, triple := range []struct {
			field  string
			values []float64
		}{
			{"position", c.Position},
			{"rotation", c.Rotation},
			{"scale", c.Scale},
		} {
			if triple.values != nil && len(triple.values) != 3 {
				return fmt.Errorf("controller %q: %s needs 3 values, has %d", c.Name, triple.field, len(triple.values))
			}
		}
	}
	return nil
}

// Order returns the document's declared rotation order, defaulting to XYZ.
func (d *Document) Order() pose.EulerOrder {
	if d.RotationOrder == "" {
		return pose.DefaultOrder
	}
	order, err := pose.ParseEulerOrder(d.RotationOrder)
	if err != nil {
		return pose.DefaultOrder
	}
	return order
}

func (d *Document) Names(ctx context.Context) ([]string, error) {
	names := make([]string, 0, len(d.Controllers))
	for _, c := range d.Controllers {
		names = append(names, c.Name)
	}
	return names, nil
}

func (d *Document) State(ctx context.Context, name string) (pose.State, error) {
	c := d.find(name)
	if c == nil {
		return pose.State{}, ErrControllerNotFound
	}

	var st pose.State
	if c.Position != nil {
		st.Set(pose.PositionChannel(pose.AxisX), c.Position[0])
		st.Set(pose.PositionChannel(pose.AxisY), c.Position[1])
		st.Set(pose.PositionChannel(pose.AxisZ), c.Position[2])
	}
	if c.Rotation != nil {
		axes := d.Order().Axes()
		for i, axis := range axes {
			st.Set(pose.RotationChannel(axis), c.Rotation[i])
		}
	}
	if c.Scale != nil {
		st.Set(pose.ScaleChannel(pose.AxisX), c.Scale[0])
		st.Set(pose.ScaleChannel(pose.AxisY), c.Scale[1])
		st.Set(pose.ScaleChannel(pose.AxisZ), c.Scale[2])
	}
	for _, key := range sortedKeys(c.Channels) {
		if group, _, ok := pose.SplitChannel(key); ok && hasTriple(c, group) {
			continue
		}
		st.Set(key, c.Channels[key])
	}
	return st, nil
}

func (d *Document) SetState(ctx context.Context, name string, st pose.State) error {
	c := d.find(name)
	if c == nil {
		return ErrControllerNotFound
	}

	axes := d.Order().Axes()
	for _, ch := range st.Channels {
		group, axis, ok := pose.SplitChannel(ch.Name)
		if ok {
			switch {
			case group == pose.GroupPosition && c.Position != nil:
				c.Position[axisSlot(axis)] = ch.Value
				continue
			case group == pose.GroupRotation && c.Rotation != nil:
				c.Rotation[orderSlot(axes, axis)] = ch.Value
				continue
			case group == pose.GroupScale && c.Scale != nil:
				c.Scale[axisSlot(axis)] = ch.Value
				continue
			}
		}
		if c.Channels == nil {
			c.Channels = make(map[string]float64)
		}
		c.Channels[ch.Name] = ch.Value
	}
	return nil
}

func (d *Document) find(name string) *Controller {
	for i := range d.Controllers {
		if d.Controllers[i].Name == name {
			return &d.Controllers[i]
		}
	}
	return nil
}

func hasTriple(c *Controller, group string) bool {
	switch group {
	case pose.GroupPosition:
		return c.Position != nil
	case pose.GroupRotation:
		return c.Rotation != nil
	case pose.GroupScale:
		return c.Scale != nil
	}
	return false
}

func axisSlot(a pose.Axis) int {
	switch a {
	case pose.AxisX:
		return 0
	case pose.AxisY:
		return 1
	default:
		return 2
	}
}

func orderSlot(axes [3]pose.Axis, a pose.Axis) int {
	for i, axis := range axes {
		if axis == a {
			return i
		}
	}
	return 0
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
