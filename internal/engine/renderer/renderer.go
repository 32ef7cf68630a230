// Package renderer draws scene draw calls with the entity shader.
package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/neowatch/internal/engine/scene"
	"github.com/Faultbox/neowatch/internal/engine/shader"
	"github.com/Faultbox/neowatch/internal/engine/shader/shaders"
	"github.com/Faultbox/neowatch/internal/logger"
	"github.com/Faultbox/neowatch/pkg/math"
)

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
	FOV    float32 // vertical, degrees
	Near   float32
	Far    float32
}

var uniforms = []string{
	"uModel", "uNormalModel", "uPVM", "uLight",
	"uUseTexture", "uSampler", "uColor", "uBrightness", "uUnlit",
}

// poller is implemented by textures that upload lazily on the GL thread.
type poller interface {
	Poll() bool
}

// Stats counts the work of the last frame.
type Stats struct {
	DrawCalls int
	Textured  int
}

// Renderer implements scene.Drawer.
type Renderer struct {
	config  Config
	program *shader.Program
	log     *zap.Logger

	proj math.Matrix[float32]
	view math.Matrix[float32]
	pv   math.Matrix[float32]
	pvm  math.Matrix[float32]

	pass   scene.Pass
	inPass bool
	stats  Stats
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
		log:    logger.Named("renderer"),
		view:   math.Identity[float32](4),
		pv:     math.New[float32](4, 4),
		pvm:    math.New[float32](4, 4),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LEQUAL)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.Enable(gl.MULTISAMPLE)
	gl.ClearColor(0.01, 0.01, 0.03, 1.0)

	var err error
	r.program, err = shader.NewProgram(shaders.EntityVertexShader, shaders.EntityFragmentShader, uniforms...)
	if err != nil {
		return nil, fmt.Errorf("entity shader: %w", err)
	}
	if missing := r.program.Missing(); len(missing) > 0 {
		r.log.Debug("inactive uniforms", zap.Strings("names", missing))
	}

	r.Resize(cfg.Width, cfg.Height)
	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	if r.program != nil {
		r.program.Delete()
	}
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.proj = Perspective(r.config.FOV, float32(width)/float32(height), r.config.Near, r.config.Far)
	r.log.Debug("renderer resized", zap.Int("width", width), zap.Int("height", height))
}

// Size returns the viewport size.
func (r *Renderer) Size() (int, int) {
	return r.config.Width, r.config.Height
}

// Projection returns the current projection matrix.
func (r *Renderer) Projection() math.Matrix[float32] {
	return r.proj
}

// Begin clears the frame and loads the per-frame uniforms.
func (r *Renderer) Begin(view math.Matrix[float32], light [3]float32) {
	r.view.CopyFrom(view)
	math.MulTo(r.pv, r.proj, r.view)
	r.stats = Stats{}
	r.inPass = false

	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	r.program.Use()
	gl.Uniform3f(r.program.Uniform("uLight"), light[0], light[1], light[2])
	gl.Uniform1i(r.program.Uniform("uSampler"), 0)
}

// Clear clears the frame without drawing anything.
func (r *Renderer) Clear() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// ViewProjection returns projection·view for the frame in progress.
func (r *Renderer) ViewProjection() math.Matrix[float32] {
	return r.pv
}

// Draw issues one draw call.
func (r *Renderer) Draw(c *scene.DrawCall) {
	if c.Mesh == nil {
		return
	}
	r.setPass(c.Pass)

	math.MulTo(r.pvm, r.pv, c.Model)
	uniformMatrix(r.program.Uniform("uModel"), c.Model)
	uniformMatrix(r.program.Uniform("uNormalModel"), c.Normal)
	uniformMatrix(r.program.Uniform("uPVM"), r.pvm)

	if p, ok := c.Texture.(poller); ok {
		if p.Poll() {
			r.log.Debug("texture uploaded", zap.String("entity", c.Name))
		}
	}
	textured := c.UseTexture()
	if textured {
		c.Texture.Bind(0)
		r.stats.Textured++
	}
	gl.Uniform1i(r.program.Uniform("uUseTexture"), boolInt(textured))
	gl.Uniform4f(r.program.Uniform("uColor"), c.Color[0], c.Color[1], c.Color[2], c.Color[3])
	gl.Uniform1f(r.program.Uniform("uBrightness"), c.Brightness)

	c.Mesh.Draw()
	r.stats.DrawCalls++
}

// End restores default state.
func (r *Renderer) End() {
	r.apply(stateFor(scene.PassOpaque))
	r.inPass = false
}

// Stats returns the counters of the last frame.
func (r *Renderer) Stats() Stats {
	return r.stats
}

// ReadPixels reads the framebuffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	pixels := make([]byte, w*h*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, w, h
}

func (r *Renderer) setPass(p scene.Pass) {
	if r.inPass && r.pass == p {
		return
	}
	r.pass = p
	r.inPass = true
	r.apply(stateFor(p))
}

func (r *Renderer) apply(s passState) {
	if s.blend {
		gl.Enable(gl.BLEND)
		gl.BlendFunc(s.src, s.dst)
	} else {
		gl.Disable(gl.BLEND)
	}
	gl.DepthMask(s.depthWrite)
	gl.Uniform1i(r.program.Uniform("uUnlit"), boolInt(s.unlit))
}

// passState is the fixed-function state of a pass.
type passState struct {
	blend      bool
	src, dst   uint32
	depthWrite bool
	unlit      bool
}

func stateFor(p scene.Pass) passState {
	switch p {
	case scene.PassAdditive:
		return passState{blend: true, src: gl.ONE, dst: gl.ONE, unlit: true}
	case scene.PassSky:
		return passState{unlit: true}
	default:
		return passState{depthWrite: true}
	}
}

// Perspective builds a right-handed projection as a row-major matrix.
func Perspective(fovDeg, aspect, near, far float32) math.Matrix[float32] {
	p := mgl32.Perspective(mgl32.DegToRad(fovDeg), aspect, near, far)
	return FromMgl(p)
}

// FromMgl converts a column-major mgl32 matrix.
func FromMgl(m mgl32.Mat4) math.Matrix[float32] {
	out := math.New[float32](4, 4)
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			out.Set(i, j, m.At(i, j))
		}
	}
	return out
}

// uniformMatrix uploads a row-major 4×4 matrix.
func uniformMatrix(loc int32, m math.Matrix[float32]) {
	gl.UniformMatrix4fv(loc, 1, true, &m.Data()[0])
}

func boolInt(b bool) int32 {
	if b {
		return 1
	}
	return 0
}
