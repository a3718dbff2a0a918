package session

import (
	"context"
	"errors"
	"sort"
	"sync"

	"posecraft/internal/mirror"
	"posecraft/internal/pose"
	"posecraft/internal/rig"
)

var (
	ErrNotValidated = errors.New("setup has not been validated")
	ErrSetupBlocked = errors.New("setup has blocking naming issues")
	ErrNotCaptured  = errors.New("no pose captured")
)

type State string

const (
	StateIdle      State = "idle"
	StateValidated State = "validated"
	StateCaptured  State = "captured"
	StateMirrored  State = "mirrored"
	StateCompared  State = "compared"
	StateRestored  State = "restored"
)

// Session drives one pose-tool workflow: validate the controller set, then
// capture, then mirror/diff/restore as often as wanted. Validating a
// different controller set drops the captured pose. Safe for concurrent
// use; the MCP server shares one session across tool calls.
type Session struct {
	mu       sync.Mutex
	state    State
	ids      []rig.ControllerID
	report   *rig.Report
	captured *pose.Pose
}

func New() *Session {
	return &Session{state: StateIdle}
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Validate classifies nothing itself; it records already-classified
// controllers and their check report. It always succeeds: a blocking
// report gates Capture, not Validate. Re-validating the same set keeps any
// captured pose; a different set resets it.
func (s *Session) Validate(ids []rig.ControllerID) *rig.Report {
	s.mu.Lock()
	defer s.mu.Unlock()

	report := rig.Check(ids)
	if !sameControllerSet(s.ids, ids) {
		s.captured = nil
		s.state = StateValidated
	} else if s.state == StateIdle {
		s.state = StateValidated
	}
	s.ids = append([]rig.ControllerID{}, ids...)
	s.report = report
	return report
}

func (s *Session) Report() *rig.Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.report
}

func (s *Session) Capture(ctx context.Context, src pose.StateProvider) (*pose.Pose, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.report == nil {
		return nil, ErrNotValidated
	}
	if s.report.Blocking() {
		return nil, ErrSetupBlocked
	}

	p, err := pose.Capture(ctx, src, s.ids)
	if err != nil {
		return nil, err
	}
	s.captured = p
	s.state = StateCaptured
	return p.Clone(), nil
}

// Captured returns a copy of the current captured pose.
func (s *Session) Captured() (*pose.Pose, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.captured == nil {
		return nil, false
	}
	return s.captured.Clone(), true
}

func (s *Session) MirrorPose(axis pose.Axis, opts mirror.Options) (*pose.Pose, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.captured == nil {
		return nil, ErrNotCaptured
	}
	out, err := mirror.Mirror(s.captured, s.report.Pairing, axis, opts)
	if err != nil {
		return nil, err
	}
	s.state = StateMirrored
	return out, nil
}

func (s *Session) DiffAgainst(other *pose.Pose) (*pose.Diff, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.captured == nil {
		return nil, ErrNotCaptured
	}
	diff := pose.Compare(s.captured, other)
	s.state = StateCompared
	return diff, nil
}

func (s *Session) Restore(ctx context.Context, dst pose.StateWriter) (*pose.RestoreResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.captured == nil {
		return nil, ErrNotCaptured
	}
	res := pose.Restore(ctx, dst, s.captured)
	s.state = StateRestored
	return res, nil
}

func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateIdle
	s.ids = nil
	s.report = nil
	s.captured = nil
}

// sameControllerSet compares by raw name, order-insensitive.
func sameControllerSet(a, b []rig.ControllerID) bool {
	if len(a) != len(b) {
		return false
	}
	an := make([]string, 0, len(a))
	bn := make([]string, 0, len(b))
	for _, id := range a {
		an = append(an, id.Name)
	}
	for _, id := range b {
		bn = append(bn, id.Name)
	}
	sort.Strings(an)
	sort.Strings(bn)
	for i := range an {
		if an[i] != bn[i] {
			return false
		}
	}
	return true
}
