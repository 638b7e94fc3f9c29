// Package session implements the digit entry state machine and its stopwatch.
//
// A Session validates the digits typed so far against a fixed target,
// starts timing on the first correct digit and stops on the first wrong
// digit or on completion. It talks to the outside world only through the
// Display and Clock interfaces and must be driven from a single goroutine.
package session

import "time"

// Status messages published on terminal transitions.
const (
	StatusFailed  = "Try Again"
	StatusSuccess = "Well Done"
)

// State is the phase of an attempt.
type State int

// Session states.
const (
	Idle State = iota
	Running
	Success
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Success:
		return "success"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further edits are accepted until reset.
func (s State) Terminal() bool {
	return s == Success || s == Failed
}

// Cue is a visual style flag applied to the widget container.
type Cue int

// Visual cues. At most one is present at a time.
const (
	CueSuccess Cue = iota + 1
	CueFailure
)

func (c Cue) String() string {
	switch c {
	case CueSuccess:
		return "success"
	case CueFailure:
		return "failure"
	default:
		return "none"
	}
}

// Display is the presentation surface a Session writes to.
type Display interface {
	SetInput(text string)
	SetInputEnabled(enabled bool)
	SetTimer(text string)
	SetStatus(text string)
	AddCue(c Cue)
	RemoveCue(c Cue)
	Focus()
}

// FrameHandle identifies a scheduled frame callback. The zero value means
// nothing is scheduled.
type FrameHandle uint64

// Clock supplies monotonic time and per-frame callbacks.
type Clock interface {
	Now() time.Time
	ScheduleNextFrame(fn func()) FrameHandle
	Cancel(h FrameHandle)
}

// Session is a single typing attempt against a target digit sequence.
type Session struct {
	target   string
	rowWidth int
	display  Display
	clock    Clock

	state     State
	typed     string
	startedAt time.Time
	elapsed   time.Duration
	frame     FrameHandle
}

// New returns an idle session. rowWidth controls how the input text is
// laid out; it never affects validation.
func New(target string, rowWidth int, display Display, clock Clock) *Session {
	return &Session{
		target:   target,
		rowWidth: rowWidth,
		display:  display,
		clock:    clock,
	}
}

// State returns the current state.
func (s *Session) State() State { return s.state }

// Typed returns the normalized digits entered so far.
func (s *Session) Typed() string { return s.typed }

// Target returns the sequence being typed.
func (s *Session) Target() string { return s.target }

// Elapsed returns the time since the first correct digit, or the frozen
// value once the attempt has ended.
func (s *Session) Elapsed() time.Duration {
	if s.state == Running {
		return s.clock.Now().Sub(s.startedAt)
	}
	return s.elapsed
}

// SetRowWidth changes the input layout and re-renders the current digits.
func (s *Session) SetRowWidth(width int) {
	s.rowWidth = width
	s.display.SetInput(FormatRows(s.typed, s.rowWidth))
}

// OnInputChanged handles the full current text of the input field.
func (s *Session) OnInputChanged(raw string) {
	if s.state.Terminal() {
		s.display.SetInput(FormatRows(s.typed, s.rowWidth))
		return
	}

	digits := Normalize(raw, len(s.target))
	if formatted := FormatRows(digits, s.rowWidth); formatted != raw {
		s.display.SetInput(formatted)
	}
	s.typed = digits
	if digits == "" {
		return
	}

	if s.state == Idle && len(digits) == 1 && digits[0] == s.target[0] {
		s.start()
	}

	for i := 0; i < len(digits); i++ {
		if digits[i] != s.target[i] {
			s.finish(Failed, StatusFailed, CueFailure, CueSuccess)
			return
		}
	}
	if len(digits) == len(s.target) {
		s.finish(Success, StatusSuccess, CueSuccess, CueFailure)
	}
}

// Tick publishes the running time and schedules the next frame. It is a
// no-op unless the session is running, so late frames are harmless.
func (s *Session) Tick() {
	if s.state != Running {
		return
	}
	s.display.SetTimer(FormatElapsed(s.clock.Now().Sub(s.startedAt)))
	s.frame = s.clock.ScheduleNextFrame(s.Tick)
}

// Reset abandons the attempt and returns to Idle from any state.
func (s *Session) Reset() {
	s.stopTimer()
	s.state = Idle
	s.typed = ""
	s.startedAt = time.Time{}
	s.elapsed = 0
	s.display.SetInput("")
	s.display.SetInputEnabled(true)
	s.display.SetTimer(FormatElapsed(0))
	s.display.SetStatus("")
	s.display.RemoveCue(CueSuccess)
	s.display.RemoveCue(CueFailure)
	s.display.Focus()
}

func (s *Session) start() {
	s.state = Running
	s.startedAt = s.clock.Now()
	s.frame = s.clock.ScheduleNextFrame(s.Tick)
}

func (s *Session) finish(state State, status string, add, remove Cue) {
	if s.state == Running {
		s.elapsed = s.clock.Now().Sub(s.startedAt)
	}
	s.stopTimer()
	s.state = state
	s.display.SetTimer(FormatElapsed(s.elapsed))
	s.display.SetInputEnabled(false)
	s.display.SetStatus(status)
	s.display.RemoveCue(remove)
	s.display.AddCue(add)
}

func (s *Session) stopTimer() {
	if s.frame != 0 {
		s.clock.Cancel(s.frame)
		s.frame = 0
	}
}
