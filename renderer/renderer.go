package renderer

import (
	"fmt"
	"log"

	"github.com/richinsley/glcourse/graphics"
	"github.com/richinsley/glcourse/mesh"
	shader "github.com/richinsley/glcourse/shader"
)

// Renderer drives one scene: it owns the scene's mesh and program and draws
// them once per frame on the context's thread.
type Renderer struct {
	driver     graphics.Driver
	context    graphics.Context
	scene      *Scene
	mesh       *mesh.Mesh
	program    *shader.Program
	anim       *Animation
	width      int
	height     int
	recordMode bool
}

// NewRenderer binds a renderer to a context whose GL driver is loaded. In
// record mode frames are always width x height; otherwise they follow the
// framebuffer.
func NewRenderer(d graphics.Driver, ctx graphics.Context, width, height int, recordMode bool) *Renderer {
	return &Renderer{
		driver:     d,
		context:    ctx,
		anim:       NewAnimation(),
		width:      width,
		height:     height,
		recordMode: recordMode,
	}
}

// InitScene uploads the scene geometry and builds its program. custom, when
// non-nil, replaces the built-in program.
func (r *Renderer) InitScene(name string, custom *ProgramSource) error {
	scene, err := NewScene(name)
	if err != nil {
		return err
	}

	var src shader.Source
	var names map[string]string
	if custom != nil {
		src = shader.Source{Vertex: custom.Vertex, Fragment: custom.Fragment}
		names = custom.Names
	} else {
		src, err = shader.Builtin(scene.Program, r.context.IsGLES())
		if err != nil {
			return err
		}
	}

	m := mesh.New(r.driver)
	if err := scene.Geometry.Upload(m); err != nil {
		return fmt.Errorf("failed to create %s mesh: %w", scene.Name, err)
	}

	builder := shader.NewBuilder(r.driver,
		shader.WithUniforms(scene.Uniforms...),
		shader.WithNameMap(names))
	program, err := builder.Build(src.Vertex, src.Fragment)
	if err != nil {
		m.Destroy()
		return fmt.Errorf("failed to create shader program: %w", err)
	}

	if scene.Depth {
		r.driver.Enable(graphics.DepthTest)
	} else {
		r.driver.Disable(graphics.DepthTest)
	}

	r.releaseScene()
	r.scene = scene
	r.mesh = m
	r.program = program
	log.Printf("Successfully loaded scene: %s", scene.Name)
	return nil
}

func (r *Renderer) frameSize() (int, int) {
	if r.recordMode {
		return r.width, r.height
	}
	return r.context.GetFramebufferSize()
}

// RenderFrame draws the scene once and advances its animation.
func (r *Renderer) RenderFrame() error {
	if r.scene == nil {
		return fmt.Errorf("no scene loaded")
	}
	width, height := r.frameSize()

	d := r.driver
	d.Viewport(0, 0, int32(width), int32(height))
	d.ClearColor(0, 0, 0, 1)
	mask := graphics.ColorBufferBit
	if r.scene.Depth {
		mask |= graphics.DepthBufferBit
	}
	d.Clear(mask)

	if err := r.program.Use(); err != nil {
		return err
	}
	if r.scene.apply != nil {
		r.scene.apply(r.program, r.anim, width, height)
	}
	err := r.mesh.Render()
	d.UseProgram(0)
	if err != nil {
		return err
	}

	r.anim.Step()
	return nil
}

// Run draws frames until the context asks to close.
func (r *Renderer) Run() error {
	for !r.context.ShouldClose() {
		if err := r.RenderFrame(); err != nil {
			return err
		}
		r.context.EndFrame()
	}
	return nil
}

func (r *Renderer) releaseScene() {
	if r.program != nil {
		r.program.Delete()
		r.program = nil
	}
	if r.mesh != nil {
		r.mesh.Destroy()
		r.mesh = nil
	}
	r.scene = nil
}

// NextScene switches to the built-in scene after the current one, wrapping
// around. On failure the current scene stays loaded.
func (r *Renderer) NextScene() error {
	if r.scene == nil {
		return fmt.Errorf("no scene loaded")
	}
	next := sceneOrder[0]
	for i, name := range sceneOrder {
		if name == r.scene.Name {
			next = sceneOrder[(i+1)%len(sceneOrder)]
			break
		}
	}
	return r.InitScene(next, nil)
}

// Shutdown releases the scene's GPU objects and the context.
func (r *Renderer) Shutdown() {
	r.releaseScene()
	r.context.Shutdown()
}
