package texture

import (
	"image"
	"sync"
)

// Handle is a texture that resolves in the background and is uploaded on the
// GL thread. Until then Ready reports false and callers draw with vertex
// color.
type Handle struct {
	Name string

	mu      sync.Mutex
	pending *image.RGBA
	err     error
	done    bool

	id uint32 // GL thread only
}

// NewHandle returns an unresolved handle.
func NewHandle(name string) *Handle {
	return &Handle{Name: name}
}

func (h *Handle) resolve(img *image.RGBA, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.pending, h.err, h.done = img, err, true
}

// Resolved reports whether decoding finished, successfully or not.
func (h *Handle) Resolved() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.done
}

// Err returns the decode error, if any.
func (h *Handle) Err() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.err
}

// take hands the decoded image to the uploader exactly once.
func (h *Handle) take() *image.RGBA {
	h.mu.Lock()
	defer h.mu.Unlock()
	img := h.pending
	h.pending = nil
	return img
}

// Ready reports whether the texture is on the GPU.
func (h *Handle) Ready() bool {
	return h != nil && h.id != 0
}

// ID returns the GL texture name, or 0.
func (h *Handle) ID() uint32 { return h.id }
