package input

import "testing"

func TestSnapshotResetsAccumulators(t *testing.T) {
	r := NewRecorder()
	r.SetPointerLocked(true)
	r.Press(KeyForward)
	r.Motion(3, -1)
	r.Motion(2, 4)
	r.Click()
	r.Trigger(ActionCycleMode)
	r.Trigger(ActionCycleMode)

	s := r.Snapshot()
	if !s.Down(KeyForward) {
		t.Error("forward not held")
	}
	if s.MouseDX != 5 || s.MouseDY != 3 {
		t.Errorf("mouse delta = (%f, %f), want (5, 3)", s.MouseDX, s.MouseDY)
	}
	if s.Clicks != 1 || s.Actions[ActionCycleMode] != 2 {
		t.Errorf("clicks %d, cycle %d", s.Clicks, s.Actions[ActionCycleMode])
	}

	s = r.Snapshot()
	if s.MouseDX != 0 || s.Clicks != 0 || s.Triggered(ActionCycleMode) {
		t.Errorf("accumulators not reset: %+v", s)
	}
	if !s.Down(KeyForward) || !s.PointerLocked {
		t.Error("held state did not carry over")
	}
}

func TestMotionIgnoredWhenUnlocked(t *testing.T) {
	r := NewRecorder()
	r.Motion(10, 10)
	r.Cursor(40, 50)
	s := r.Snapshot()
	if s.MouseDX != 0 || s.MouseDY != 0 {
		t.Errorf("unlocked motion recorded: (%f, %f)", s.MouseDX, s.MouseDY)
	}
	if s.CursorX != 40 || s.CursorY != 50 {
		t.Errorf("cursor = (%d, %d)", s.CursorX, s.CursorY)
	}
}

func TestAxis(t *testing.T) {
	tests := []struct {
		name     string
		pos, neg bool
		want     float32
	}{
		{"none", false, false, 0},
		{"positive", true, false, 1},
		{"negative", false, true, -1},
		{"both", true, true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRecorder()
			if tt.pos {
				r.Press(KeyRight)
			}
			if tt.neg {
				r.Press(KeyLeft)
			}
			s := r.Snapshot()
			if got := s.Axis(KeyRight, KeyLeft); got != tt.want {
				t.Errorf("Axis = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestRelease(t *testing.T) {
	r := NewRecorder()
	r.Press(KeyLight)
	r.Release(KeyLight)
	if s := r.Snapshot(); s.Down(KeyLight) {
		t.Error("key still held after release")
	}
}

func TestDetach(t *testing.T) {
	r := NewRecorder()
	r.Press(KeyUp)
	r.Detach()
	r.Press(KeyDown)
	r.Click()
	r.Trigger(ActionScreenshot)

	s := r.Snapshot()
	if s.Down(KeyUp) || s.Down(KeyDown) || s.Clicks != 0 || s.Triggered(ActionScreenshot) {
		t.Errorf("detached recorder kept input: %+v", s)
	}

	r.Attach()
	r.Press(KeyDown)
	if s := r.Snapshot(); !s.Down(KeyDown) {
		t.Error("attached recorder ignored input")
	}
}

func TestOutOfRangeIgnored(t *testing.T) {
	r := NewRecorder()
	r.Press(Key(99))
	r.Trigger(Action(-1))
	s := r.Snapshot()
	if s != (Snapshot{}) {
		t.Errorf("out-of-range input recorded: %+v", s)
	}
}
