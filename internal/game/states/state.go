// Package states implements the application state machine.
package states

import "github.com/Faultbox/neowatch/internal/engine/input"

// State represents an application state (loading, globe).
type State interface {
	// Enter is called when entering this state.
	Enter() error

	// Exit is called when leaving this state.
	Exit() error

	// Update is called every frame with that frame's input.
	Update(in *input.Snapshot, dt float64) error

	// Render is called every frame to draw the state.
	Render() error
}

// Resizer is implemented by states that track the screen size.
type Resizer interface {
	Resize(width, height int)
}

// Host is what states need from the game loop.
type Host interface {
	// SetPointerLocked grabs or releases the mouse.
	SetPointerLocked(locked bool)
	// Quit ends the loop after the current frame.
	Quit()
	// Size returns the window size in screen coordinates.
	Size() (width, height int)
	// SetInputAttached starts or stops recording input listeners. A detached
	// recorder drops events and clears held keys.
	SetInputAttached(attached bool)
}

// Manager manages state transitions.
type Manager struct {
	current State
	next    State
}

// NewManager creates a new state manager.
func NewManager() *Manager {
	return &Manager{}
}

// Current returns the current state.
func (m *Manager) Current() State {
	return m.current
}

// Change schedules a state change for the start of the next update.
func (m *Manager) Change(next State) {
	m.next = next
}

// Update processes state changes and updates current state.
func (m *Manager) Update(in *input.Snapshot, dt float64) error {
	if m.next != nil {
		if m.current != nil {
			if err := m.current.Exit(); err != nil {
				return err
			}
		}
		m.current = m.next
		m.next = nil
		if err := m.current.Enter(); err != nil {
			return err
		}
	}

	if m.current != nil {
		return m.current.Update(in, dt)
	}
	return nil
}

// Render renders the current state.
func (m *Manager) Render() error {
	if m.current != nil {
		return m.current.Render()
	}
	return nil
}

// Resize forwards a screen size change to the current state.
func (m *Manager) Resize(width, height int) {
	if r, ok := m.current.(Resizer); ok {
		r.Resize(width, height)
	}
}

// Close exits the current state and drops any pending one.
func (m *Manager) Close() error {
	m.next = nil
	if m.current == nil {
		return nil
	}
	err := m.current.Exit()
	m.current = nil
	return err
}
