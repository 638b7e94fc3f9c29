package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/pitype/internal/session"
)

type frameMsg struct {
	handle session.FrameHandle
}

// frameScheduler turns session frame requests into Bubble Tea ticks. It is
// only touched from Update, so it needs no locking.
type frameScheduler struct {
	interval time.Duration
	now      func() time.Time
	last     session.FrameHandle
	pending  map[session.FrameHandle]func()
	queued   []session.FrameHandle
}

func newFrameScheduler(interval time.Duration, now func() time.Time) *frameScheduler {
	return &frameScheduler{
		interval: interval,
		now:      now,
		pending:  map[session.FrameHandle]func(){},
	}
}

// Now implements session.Clock.
func (f *frameScheduler) Now() time.Time {
	return f.now()
}

// ScheduleNextFrame implements session.Clock.
func (f *frameScheduler) ScheduleNextFrame(fn func()) session.FrameHandle {
	f.last++
	h := f.last
	f.pending[h] = fn
	f.queued = append(f.queued, h)
	return h
}

// Cancel implements session.Clock.
func (f *frameScheduler) Cancel(h session.FrameHandle) {
	delete(f.pending, h)
}

// fire runs the callback for h unless it was cancelled.
func (f *frameScheduler) fire(h session.FrameHandle) bool {
	fn, ok := f.pending[h]
	if !ok {
		return false
	}
	delete(f.pending, h)
	fn()
	return true
}

// commands drains frames scheduled since the last call into tick commands.
func (f *frameScheduler) commands() []tea.Cmd {
	if len(f.queued) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(f.queued))
	for _, h := range f.queued {
		if _, ok := f.pending[h]; !ok {
			continue
		}
		handle := h
		cmds = append(cmds, tea.Tick(f.interval, func(time.Time) tea.Msg {
			return frameMsg{handle: handle}
		}))
	}
	f.queued = f.queued[:0]
	return cmds
}
