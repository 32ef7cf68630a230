// Package input records host input into flags and accumulators that the
// frame loop samples once per frame.
package input

// Key is a held control.
type Key int

const (
	KeyForward Key = iota
	KeyBack
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyRollLeft
	KeyRollRight
	// KeyLight turns mouse motion into light movement while held.
	KeyLight

	keyCount
)

// Action is a discrete trigger.
type Action int

const (
	ActionCycleMode Action = iota
	ActionRelease
	ActionScreenshot

	actionCount
)

// Snapshot is a consistent view of input for one frame.
type Snapshot struct {
	Held [keyCount]bool
	// MouseDX and MouseDY are relative motion accumulated while the pointer
	// was locked.
	MouseDX, MouseDY float32
	// CursorX and CursorY are the last absolute cursor position.
	CursorX, CursorY int
	Clicks           int
	Actions          [actionCount]int
	PointerLocked    bool
}

// Down reports whether k was held when the snapshot was taken.
func (s *Snapshot) Down(k Key) bool { return s.Held[k] }

// Triggered reports whether a fired at least once during the frame.
func (s *Snapshot) Triggered(a Action) bool { return s.Actions[a] > 0 }

// Axis returns +1, -1 or 0 for a pair of opposing keys.
func (s *Snapshot) Axis(pos, neg Key) float32 {
	var v float32
	if s.Held[pos] {
		v++
	}
	if s.Held[neg] {
		v--
	}
	return v
}

// Recorder accumulates input between frames. It never touches scene state.
type Recorder struct {
	cur      Snapshot
	detached bool
}

// NewRecorder returns an attached recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Press marks k as held.
func (r *Recorder) Press(k Key) {
	if r.detached || k < 0 || k >= keyCount {
		return
	}
	r.cur.Held[k] = true
}

// Release marks k as released.
func (r *Recorder) Release(k Key) {
	if r.detached || k < 0 || k >= keyCount {
		return
	}
	r.cur.Held[k] = false
}

// Trigger counts one occurrence of a.
func (r *Recorder) Trigger(a Action) {
	if r.detached || a < 0 || a >= actionCount {
		return
	}
	r.cur.Actions[a]++
}

// Click counts one primary button press.
func (r *Recorder) Click() {
	if r.detached {
		return
	}
	r.cur.Clicks++
}

// Motion adds relative mouse movement. Motion is only kept while the
// pointer is locked.
func (r *Recorder) Motion(dx, dy float32) {
	if r.detached || !r.cur.PointerLocked {
		return
	}
	r.cur.MouseDX += dx
	r.cur.MouseDY += dy
}

// Cursor records the absolute cursor position.
func (r *Recorder) Cursor(x, y int) {
	if r.detached {
		return
	}
	r.cur.CursorX, r.cur.CursorY = x, y
}

// SetPointerLocked records the pointer lock state.
func (r *Recorder) SetPointerLocked(locked bool) {
	r.cur.PointerLocked = locked
}

// Snapshot returns the state recorded since the last call and resets the
// accumulators. Held keys, cursor position and pointer lock carry over.
func (r *Recorder) Snapshot() Snapshot {
	s := r.cur
	r.cur.MouseDX, r.cur.MouseDY = 0, 0
	r.cur.Clicks = 0
	r.cur.Actions = [actionCount]int{}
	return s
}

// Detach stops recording and clears held keys.
func (r *Recorder) Detach() {
	r.detached = true
	r.cur = Snapshot{}
}

// Attach resumes recording.
func (r *Recorder) Attach() {
	r.detached = false
}

// Detached reports whether the recorder ignores input.
func (r *Recorder) Detached() bool { return r.detached }
