package pose

import "fmt"

// EulerOrder names the axis order of an ordered rotation triple as exported
// by hosts that do not label rotation channels individually.
type EulerOrder int

const (
	OrderXYZ EulerOrder = iota + 1
	OrderXZY
	OrderYZX
	OrderYXZ
	OrderZXY
	OrderZYX
)

const DefaultOrder = OrderXYZ

var eulerAxes = map[EulerOrder][3]Axis{
	OrderXYZ: {AxisX, AxisY, AxisZ},
	OrderXZY: {AxisX, AxisZ, AxisY},
	OrderYZX: {AxisY, AxisZ, AxisX},
	OrderYXZ: {AxisY, AxisX, AxisZ},
	OrderZXY: {AxisZ, AxisX, AxisY},
	OrderZYX: {AxisZ, AxisY, AxisX},
}

func (o EulerOrder) Valid() bool {
	_, ok := eulerAxes[o]
	return ok
}

// Axes returns the actual axis addressed by each position of the triple.
func (o EulerOrder) Axes() [3]Axis {
	axes, ok := eulerAxes[o]
	if !ok {
		return eulerAxes[DefaultOrder]
	}
	return axes
}

func (o EulerOrder) String() string {
	axes, ok := eulerAxes[o]
	if !ok {
		return fmt.Sprintf("order(%d)", int(o))
	}
	return string(axes[0]) + string(axes[1]) + string(axes[2])
}

func ParseEulerOrder(s string) (EulerOrder, error) {
	for order, axes := range eulerAxes {
		if s == string(axes[0])+string(axes[1])+string(axes[2]) {
			return order, nil
		}
	}
	return 0, fmt.Errorf("unknown rotation order %q", s)
}
