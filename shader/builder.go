// Package shader compiles vertex and fragment sources into linked, validated
// GPU programs and resolves their uniform locations.
package shader

import (
	"fmt"
	"log"

	"github.com/richinsley/glcourse/graphics"
)

// MaxLogLength bounds the compiler and linker diagnostics that are kept.
const MaxLogLength = 1024

// Builder turns source text into Programs. A build is all or nothing: when
// any stage fails, every object created for it is released.
type Builder struct {
	driver   graphics.Driver
	logger   *log.Logger
	uniforms []string
	names    map[string]string
}

type Option func(*Builder)

// WithLogger sends build diagnostics to l instead of the standard logger.
func WithLogger(l *log.Logger) Option {
	return func(b *Builder) { b.logger = l }
}

// WithUniforms names the uniforms to resolve once a build succeeds.
func WithUniforms(names ...string) Option {
	return func(b *Builder) { b.uniforms = append(b.uniforms, names...) }
}

// WithNameMap maps uniform names as written by the caller to the names the
// driver sees, for sources that went through translation.
func WithNameMap(names map[string]string) Option {
	return func(b *Builder) { b.names = names }
}

func NewBuilder(driver graphics.Driver, opts ...Option) *Builder {
	b := &Builder{driver: driver, logger: log.Default()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// CompileStage compiles source as the given stage and attaches it to program.
// stage must be graphics.VertexShader or graphics.FragmentShader. On failure
// the diagnostic is logged, the shader is deleted and a *CompileError is
// returned; nothing is attached.
func (b *Builder) CompileStage(program uint32, source string, stage graphics.Enum) (uint32, error) {
	if stage != graphics.VertexShader && stage != graphics.FragmentShader {
		return 0, fmt.Errorf("%w: %s", ErrUnknownStage, stage)
	}

	d := b.driver
	shader := d.CreateShader(stage)
	if shader == 0 {
		b.logger.Printf("Error creating the %s shader", stage)
		return 0, &CompileError{Stage: stage, Log: "driver returned no shader object"}
	}
	d.ShaderSource(shader, source)
	d.CompileShader(shader)

	if d.GetShaderiv(shader, graphics.CompileStatus) == 0 {
		logText := d.GetShaderInfoLog(shader, MaxLogLength)
		b.logger.Printf("Error compiling the %s shader: %s", stage, logText)
		d.DeleteShader(shader)
		return 0, &CompileError{Stage: stage, Log: logText}
	}

	d.AttachShader(program, shader)
	return shader, nil
}

// Build compiles, links and validates a program. The returned Program is
// never nil; when err is non-nil it is in StateFailed and holds no driver
// objects.
func (b *Builder) Build(vertexSource, fragmentSource string) (*Program, error) {
	d := b.driver
	p := &Program{
		driver:    d,
		state:     StateCreated,
		names:     b.names,
		locations: map[string]int32{},
	}

	p.handle = d.CreateProgram()
	if p.handle == 0 {
		b.logger.Println("Error creating shader program!")
		p.state = StateFailed
		return p, ErrProgramCreation
	}

	var attached []uint32
	fail := func(err error) (*Program, error) {
		for _, s := range attached {
			d.DetachShader(p.handle, s)
			d.DeleteShader(s)
		}
		d.DeleteProgram(p.handle)
		p.handle = 0
		p.state = StateFailed
		return p, err
	}

	vs, err := b.CompileStage(p.handle, vertexSource, graphics.VertexShader)
	if err != nil {
		return fail(err)
	}
	attached = append(attached, vs)
	p.state = StateVertexCompiled

	fs, err := b.CompileStage(p.handle, fragmentSource, graphics.FragmentShader)
	if err != nil {
		return fail(err)
	}
	attached = append(attached, fs)
	p.state = StateFragmentCompiled

	d.LinkProgram(p.handle)
	if d.GetProgramiv(p.handle, graphics.LinkStatus) == 0 {
		logText := d.GetProgramInfoLog(p.handle, MaxLogLength)
		b.logger.Printf("Error linking program: %s", logText)
		return fail(&LinkError{Log: logText})
	}
	p.state = StateLinked

	d.ValidateProgram(p.handle)
	if d.GetProgramiv(p.handle, graphics.ValidateStatus) == 0 {
		logText := d.GetProgramInfoLog(p.handle, MaxLogLength)
		b.logger.Printf("Error validating program: %s", logText)
		return fail(&ValidationError{Log: logText})
	}
	p.state = StateValidated

	// the linked program keeps its own copy of the stages
	for _, s := range attached {
		d.DetachShader(p.handle, s)
		d.DeleteShader(s)
	}

	for _, name := range b.uniforms {
		p.Uniform(name)
	}
	return p, nil
}
