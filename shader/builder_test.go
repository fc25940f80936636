package shader

import (
	"bytes"
	"errors"
	"log"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/richinsley/glcourse/graphics"
	"github.com/richinsley/glcourse/graphics/graphicstest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBuilder(d graphics.Driver, opts ...Option) (*Builder, *bytes.Buffer) {
	var buf bytes.Buffer
	opts = append([]Option{WithLogger(log.New(&buf, "", 0))}, opts...)
	return NewBuilder(d, opts...), &buf
}

func pyramidSource(t *testing.T) Source {
	src, err := Builtin(Pyramid, false)
	require.NoError(t, err)
	return src
}

func TestBuildValidated(t *testing.T) {
	d := graphicstest.NewDriver()
	d.Locations = map[string]int32{"model": 0, "projection": 1}
	b, logs := newTestBuilder(d, WithUniforms("model", "projection"))
	src := pyramidSource(t)

	p, err := b.Build(src.Vertex, src.Fragment)
	require.NoError(t, err)
	assert.Equal(t, StateValidated, p.State())
	assert.True(t, p.Usable())
	assert.NotZero(t, p.Handle())
	assert.Empty(t, logs.String())

	assert.Equal(t, int32(0), p.Uniform("model"))
	assert.Equal(t, int32(1), p.Uniform("projection"))
	assert.Equal(t, int32(-1), p.Uniform("missing"))

	// stages are released once linked; only the program remains
	assert.Zero(t, d.Live("shader"))
	assert.Equal(t, 1, d.Live("program"))

	sources := d.Named("ShaderSource")
	require.Len(t, sources, 2)
	assert.Equal(t, src.Vertex, sources[0].Args[1])
	assert.Equal(t, src.Fragment, sources[1].Args[1])

	stages := d.Named("CreateShader")
	assert.Equal(t, graphics.VertexShader, stages[0].Args[0])
	assert.Equal(t, graphics.FragmentShader, stages[1].Args[0])
}

func TestUniformLocationsCached(t *testing.T) {
	d := graphicstest.NewDriver()
	d.Locations = map[string]int32{"model": 3}
	b, _ := newTestBuilder(d, WithUniforms("model"))

	p, err := b.Build("v", "f")
	require.NoError(t, err)
	require.Len(t, d.Named("GetUniformLocation"), 1)

	assert.Equal(t, int32(3), p.Uniform("model"))
	assert.Equal(t, int32(-1), p.Uniform("nope"))
	assert.Equal(t, int32(-1), p.Uniform("nope"))
	assert.Len(t, d.Named("GetUniformLocation"), 2)
}

func TestBuildVertexCompileError(t *testing.T) {
	d := graphicstest.NewDriver()
	d.CompileLogs[graphics.VertexShader] = "0:3(1): error: syntax error, unexpected '}'"
	b, logs := newTestBuilder(d)

	p, err := b.Build("broken", "f")
	require.Error(t, err)

	var ce *CompileError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, graphics.VertexShader, ce.Stage)
	assert.NotEmpty(t, ce.Log)
	assert.Contains(t, logs.String(), "vertex shader")
	assert.Contains(t, logs.String(), "syntax error")

	assert.Equal(t, StateFailed, p.State())
	assert.False(t, p.Usable())
	assert.Zero(t, p.Handle())
	assert.Zero(t, d.Live("shader"))
	assert.Zero(t, d.Live("program"))
	assert.Empty(t, d.Named("AttachShader"))
	assert.Empty(t, d.Named("LinkProgram"))
}

func TestBuildFragmentCompileErrorReleasesVertex(t *testing.T) {
	d := graphicstest.NewDriver()
	d.CompileLogs[graphics.FragmentShader] = "undeclared identifier"
	b, _ := newTestBuilder(d)

	p, err := b.Build("v", "f")
	var ce *CompileError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, graphics.FragmentShader, ce.Stage)
	assert.Equal(t, StateFailed, p.State())
	assert.Len(t, d.Named("DetachShader"), 1)
	assert.Zero(t, d.Live("shader"))
	assert.Zero(t, d.Live("program"))
}

func TestBuildLinkError(t *testing.T) {
	d := graphicstest.NewDriver()
	d.LinkLog = "error: fragment shader input vCol has no matching output"
	b, logs := newTestBuilder(d)

	p, err := b.Build("v", "f")
	var le *LinkError
	require.True(t, errors.As(err, &le))
	assert.Contains(t, le.Log, "vCol")
	assert.Contains(t, logs.String(), "Error linking program")
	assert.Equal(t, StateFailed, p.State())
	assert.Empty(t, d.Named("ValidateProgram"))
	assert.Zero(t, d.Live("shader"))
	assert.Zero(t, d.Live("program"))

	infoLogs := d.Named("GetProgramInfoLog")
	require.Len(t, infoLogs, 1)
	assert.Equal(t, int32(MaxLogLength), infoLogs[0].Args[1])
}

func TestBuildValidationError(t *testing.T) {
	d := graphicstest.NewDriver()
	d.ValidateLog = "no vertex array object bound"
	b, logs := newTestBuilder(d)

	p, err := b.Build("v", "f")
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "no vertex array object bound", ve.Log)
	assert.Contains(t, logs.String(), "Error validating program")
	assert.Equal(t, StateFailed, p.State())
	assert.Zero(t, d.Live("program"))

	infoLogs := d.Named("GetProgramInfoLog")
	require.Len(t, infoLogs, 1)
	assert.Equal(t, int32(MaxLogLength), infoLogs[0].Args[1])
}

func TestBuildProgramCreationError(t *testing.T) {
	d := graphicstest.NewDriver()
	d.FailCreateProgram = true
	b, logs := newTestBuilder(d)

	p, err := b.Build("v", "f")
	assert.ErrorIs(t, err, ErrProgramCreation)
	assert.Equal(t, StateFailed, p.State())
	assert.Contains(t, logs.String(), "Error creating shader program")
	assert.Empty(t, d.Named("CreateShader"))
}

func TestCompileLogTruncated(t *testing.T) {
	d := graphicstest.NewDriver()
	d.CompileLogs[graphics.VertexShader] = strings.Repeat("x", 4*MaxLogLength)
	b, _ := newTestBuilder(d)

	_, err := b.Build("v", "f")
	var ce *CompileError
	require.True(t, errors.As(err, &ce))
	assert.Less(t, len(ce.Log), MaxLogLength)
	assert.Equal(t, []any{uint32(2), int32(MaxLogLength)}, d.Named("GetShaderInfoLog")[0].Args)
}

func TestCompileStageAttaches(t *testing.T) {
	d := graphicstest.NewDriver()
	b, _ := newTestBuilder(d)
	prog := d.CreateProgram()

	s, err := b.CompileStage(prog, "v", graphics.VertexShader)
	require.NoError(t, err)
	assert.Equal(t, []any{prog, s}, d.Named("AttachShader")[0].Args)
}

func TestCompileStageRejectsUnknownStage(t *testing.T) {
	d := graphicstest.NewDriver()
	b, _ := newTestBuilder(d)
	prog := d.CreateProgram()
	d.Reset()

	s, err := b.CompileStage(prog, "v", graphics.ArrayBuffer)
	assert.ErrorIs(t, err, ErrUnknownStage)
	assert.Zero(t, s)
	assert.Empty(t, d.Calls)
}

func TestCompileStageNoShaderObject(t *testing.T) {
	d := graphicstest.NewDriver()
	d.FailCreateShader = map[graphics.Enum]bool{graphics.FragmentShader: true}
	b, logs := newTestBuilder(d)

	p, err := b.Build("v", "f")
	var ce *CompileError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, graphics.FragmentShader, ce.Stage)
	assert.Contains(t, ce.Log, "no shader object")
	assert.Contains(t, logs.String(), "Error creating the fragment shader")
	assert.Equal(t, StateFailed, p.State())
	assert.Len(t, d.Named("ShaderSource"), 1)
	assert.Zero(t, d.Live("shader"))
	assert.Zero(t, d.Live("program"))
}

func TestFailedProgramRefusesUse(t *testing.T) {
	d := graphicstest.NewDriver()
	d.LinkLog = "bad"
	d.Locations = map[string]int32{"model": 0}
	b, _ := newTestBuilder(d)

	p, _ := b.Build("v", "f")
	d.Reset()
	assert.ErrorIs(t, p.Use(), ErrUnusable)
	assert.Equal(t, int32(-1), p.Uniform("model"))
	p.SetMatrix4("model", mgl32.Ident4())
	assert.Empty(t, d.Calls)
}

func TestSettersSkipMissingUniforms(t *testing.T) {
	d := graphicstest.NewDriver()
	d.Locations = map[string]int32{"model": 4}
	b, _ := newTestBuilder(d, WithUniforms("model", "projection"))

	p, err := b.Build("v", "f")
	require.NoError(t, err)
	require.NoError(t, p.Use())
	d.Reset()

	p.SetMatrix4("projection", mgl32.Ident4())
	assert.Empty(t, d.Named("UniformMatrix4fv"))

	m := mgl32.Translate3D(1, 2, 3)
	p.SetMatrix4("model", m)
	assert.Equal(t, [16]float32(m), d.Uniforms[4])
}

func TestNameMapResolvesTranslatedNames(t *testing.T) {
	d := graphicstest.NewDriver()
	d.Locations = map[string]int32{"_umodel": 2}
	b, _ := newTestBuilder(d, WithUniforms("model"), WithNameMap(map[string]string{"model": "_umodel"}))

	p, err := b.Build("v", "f")
	require.NoError(t, err)
	assert.Equal(t, int32(2), p.Uniform("model"))
}

func TestDeleteIdempotent(t *testing.T) {
	d := graphicstest.NewDriver()
	b, _ := newTestBuilder(d)
	p, err := b.Build("v", "f")
	require.NoError(t, err)

	p.Delete()
	p.Delete()
	assert.Len(t, d.Named("DeleteProgram"), 1)
	assert.False(t, p.Usable())
	assert.Zero(t, d.Live("program"))
}

func TestBuiltinSources(t *testing.T) {
	for _, name := range []string{Triangle, Model, Pyramid} {
		gl, err := Builtin(name, false)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(gl.Vertex, "#version 330"))

		es, err := Builtin(name, true)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(es.Fragment, "#version 300 es"))
	}
	_, err := Builtin("cube", false)
	assert.Error(t, err)
}
