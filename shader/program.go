package shader

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/richinsley/glcourse/graphics"
)

// State tracks a program through a build attempt.
type State int

const (
	StateCreated State = iota
	StateVertexCompiled
	StateFragmentCompiled
	StateLinked
	StateValidated
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateVertexCompiled:
		return "vertex compiled"
	case StateFragmentCompiled:
		return "fragment compiled"
	case StateLinked:
		return "linked"
	case StateValidated:
		return "validated"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// Program is a linked and validated GPU program plus its resolved uniform
// locations. Only a program in StateValidated may be used for drawing.
type Program struct {
	driver    graphics.Driver
	handle    uint32
	state     State
	names     map[string]string
	locations map[string]int32
}

func (p *Program) Handle() uint32 { return p.handle }
func (p *Program) State() State   { return p.state }

// Usable reports whether the program completed its build.
func (p *Program) Usable() bool { return p != nil && p.state == StateValidated && p.handle != 0 }

// Uniform returns the location of the named uniform, or -1 when the driver
// does not know it or the program is not usable.
func (p *Program) Uniform(name string) int32 {
	if !p.Usable() {
		return -1
	}
	if loc, ok := p.locations[name]; ok {
		return loc
	}
	loc := p.driver.GetUniformLocation(p.handle, p.mapped(name))
	p.locations[name] = loc
	return loc
}

func (p *Program) mapped(name string) string {
	if m, ok := p.names[name]; ok && m != "" {
		return m
	}
	return name
}

// Use makes the program current.
func (p *Program) Use() error {
	if !p.Usable() {
		return ErrUnusable
	}
	p.driver.UseProgram(p.handle)
	return nil
}

// SetMatrix4 uploads m to the named uniform of the current program. Unknown
// uniforms are skipped.
func (p *Program) SetMatrix4(name string, m mgl32.Mat4) {
	if loc := p.Uniform(name); loc != -1 {
		p.driver.UniformMatrix4fv(loc, [16]float32(m))
	}
}

// Delete releases the program object. It is safe to call more than once.
func (p *Program) Delete() {
	if p.handle != 0 {
		p.driver.DeleteProgram(p.handle)
		p.handle = 0
	}
	p.state = StateFailed
	p.locations = map[string]int32{}
}
