package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// EventType is a window-level event the game loop handles itself.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
)

// Event represents a processed window event.
type Event struct {
	Type   EventType
	Width  int
	Height int
}

// Bindings maps SDL scancodes to keys and actions.
type Bindings struct {
	Keys    map[sdl.Scancode]Key
	Actions map[sdl.Scancode]Action
}

// DefaultBindings returns the WASD layout.
func DefaultBindings() Bindings {
	return Bindings{
		Keys: map[sdl.Scancode]Key{
			sdl.SCANCODE_W: KeyForward,
			sdl.SCANCODE_S: KeyBack,
			sdl.SCANCODE_A: KeyLeft,
			sdl.SCANCODE_D: KeyRight,
			sdl.SCANCODE_R: KeyUp,
			sdl.SCANCODE_F: KeyDown,
			sdl.SCANCODE_Q: KeyRollLeft,
			sdl.SCANCODE_E: KeyRollRight,
			sdl.SCANCODE_L: KeyLight,
		},
		Actions: map[sdl.Scancode]Action{
			sdl.SCANCODE_TAB:    ActionCycleMode,
			sdl.SCANCODE_ESCAPE: ActionRelease,
			sdl.SCANCODE_F12:    ActionScreenshot,
		},
	}
}

// Input drains the SDL queue into a Recorder.
type Input struct {
	Recorder *Recorder
	bindings Bindings
	events   []Event
}

// New creates an input handler with default bindings.
func New() *Input {
	return &Input{
		Recorder: NewRecorder(),
		bindings: DefaultBindings(),
		events:   make([]Event, 0, 4),
	}
}

// Update polls SDL events, records them and collects window events.
// Returns true if the game should quit.
func (i *Input) Update() bool {
	i.events = i.events[:0]

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.events = append(i.events, Event{Type: EventQuit})
			return true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_RESIZED {
				i.events = append(i.events, Event{
					Type:   EventWindowResize,
					Width:  int(e.Data1),
					Height: int(e.Data2),
				})
			}

		case *sdl.KeyboardEvent:
			i.handleKey(e)

		case *sdl.MouseMotionEvent:
			i.Recorder.Cursor(int(e.X), int(e.Y))
			i.Recorder.Motion(float32(e.XRel), float32(e.YRel))

		case *sdl.MouseButtonEvent:
			if e.Type == sdl.MOUSEBUTTONDOWN && e.Button == sdl.BUTTON_LEFT {
				i.Recorder.Cursor(int(e.X), int(e.Y))
				i.Recorder.Click()
			}
		}
	}

	return false
}

func (i *Input) handleKey(e *sdl.KeyboardEvent) {
	code := e.Keysym.Scancode
	if k, ok := i.bindings.Keys[code]; ok {
		if e.Type == sdl.KEYDOWN {
			i.Recorder.Press(k)
		} else {
			i.Recorder.Release(k)
		}
		return
	}
	if a, ok := i.bindings.Actions[code]; ok && e.Type == sdl.KEYDOWN && e.Repeat == 0 {
		i.Recorder.Trigger(a)
	}
}

// Events returns the window events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}
