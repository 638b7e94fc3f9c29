package session

import "time"

type fakeDisplay struct {
	input   string
	enabled bool
	timer   string
	status  string
	cues    map[Cue]bool
	focused int
	inputs  int
}

func newFakeDisplay() *fakeDisplay {
	return &fakeDisplay{enabled: true, timer: "00:00.00", cues: map[Cue]bool{}}
}

func (d *fakeDisplay) SetInput(text string) {
	d.input = text
	d.inputs++
}
func (d *fakeDisplay) SetInputEnabled(enabled bool) { d.enabled = enabled }
func (d *fakeDisplay) SetTimer(text string)         { d.timer = text }
func (d *fakeDisplay) SetStatus(text string)        { d.status = text }
func (d *fakeDisplay) AddCue(c Cue)                 { d.cues[c] = true }
func (d *fakeDisplay) RemoveCue(c Cue)              { delete(d.cues, c) }
func (d *fakeDisplay) Focus()                       { d.focused++ }

type fakeClock struct {
	now     time.Time
	next    FrameHandle
	pending map[FrameHandle]func()
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Unix(1000, 0), pending: map[FrameHandle]func(){}}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) ScheduleNextFrame(fn func()) FrameHandle {
	c.next++
	c.pending[c.next] = fn
	return c.next
}

func (c *fakeClock) Cancel(h FrameHandle) { delete(c.pending, h) }

func (c *fakeClock) advance(d time.Duration) { c.now = c.now.Add(d) }

// frame runs every callback scheduled before the call.
func (c *fakeClock) frame() {
	due := c.pending
	c.pending = map[FrameHandle]func(){}
	for _, fn := range due {
		fn()
	}
}
