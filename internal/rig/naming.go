package rig

import "strings"

type Side string

const (
	SideLeft    Side = "left"
	SideRight   Side = "right"
	SideUnsided Side = "unsided"
)

func (s Side) Opposite() Side {
	switch s {
	case SideLeft:
		return SideRight
	case SideRight:
		return SideLeft
	default:
		return SideUnsided
	}
}

type ControllerID struct {
	Name string
	Base string
	Side Side
}

type Convention struct {
	Left      string
	Right     string
	Separator string
}

func DefaultConvention() Convention {
	return Convention{Left: "_L", Right: "_R", Separator: "_"}
}

// Classify resolves a controller name into its side and side-independent
// base key. Names with no side token, or with more than one, come back
// Unsided with the raw name as base key.
func (c Convention) Classify(name string) ControllerID {
	lefts := c.tokenOffsets(name, c.Left)
	rights := c.tokenOffsets(name, c.Right)

	switch {
	case len(lefts) == 1 && len(rights) == 0:
		return ControllerID{Name: name, Base: c.stripToken(name, lefts[0], c.Left), Side: SideLeft}
	case len(rights) == 1 && len(lefts) == 0:
		return ControllerID{Name: name, Base: c.stripToken(name, rights[0], c.Right), Side: SideRight}
	default:
		return ControllerID{Name: name, Base: name, Side: SideUnsided}
	}
}

func (c Convention) Valid() bool {
	return c.Left != "" && c.Right != "" && c.Left != c.Right
}

// tokenOffsets finds offsets where token occurs as a bounded marker, not as
// substring of a longer word: each edge of the occurrence must sit on a name
// boundary, on the separator, or the token itself must carry the separator
// on that edge ("_L" matches "Arm_L" and "Arm_L_IK" but not "Arm_Lower").
func (c Convention) tokenOffsets(name, token string) []int {
	if token == "" {
		return nil
	}

	var offsets []int
	for i := 0; i+len(token) <= len(name); i++ {
		if name[i:i+len(token)] != token {
			continue
		}
		leftOK := i == 0 ||
			strings.HasPrefix(token, c.Separator) ||
			(c.Separator != "" && strings.HasSuffix(name[:i], c.Separator))
		rightOK := i+len(token) == len(name) ||
			strings.HasSuffix(token, c.Separator) ||
			(c.Separator != "" && strings.HasPrefix(name[i+len(token):], c.Separator))
		if leftOK && rightOK {
			offsets = append(offsets, i)
		}
	}
	return offsets
}

func (c Convention) stripToken(name string, offset int, token string) string {
	base := name[:offset] + name[offset+len(token):]
	if base == "" {
		return name
	}
	return base
}
