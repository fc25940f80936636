package renderer

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/richinsley/glcourse/graphics"
	"github.com/richinsley/glcourse/graphics/graphicstest"
	"github.com/richinsley/glcourse/mesh"
	shader "github.com/richinsley/glcourse/shader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRenderer(frames int) (*Renderer, *graphicstest.Driver, *graphicstest.Context) {
	d := graphicstest.NewDriver()
	d.Locations = map[string]int32{"model": 0, "projection": 1}
	ctx := graphicstest.NewContext(800, 600, frames)
	return NewRenderer(d, ctx, 800, 600, false), d, ctx
}

func TestRunPyramid(t *testing.T) {
	r, d, ctx := newTestRenderer(3)
	require.NoError(t, r.InitScene("pyramid", nil))
	assert.True(t, d.Enabled[graphics.DepthTest])

	require.NoError(t, r.Run())
	assert.Equal(t, 3, ctx.Ended)

	draws := d.Named("DrawElements")
	require.Len(t, draws, 3)
	for _, c := range draws {
		assert.Equal(t, []any{graphics.Triangles, int32(12), graphics.UnsignedInt, 0}, c.Args)
	}
	assert.Equal(t, graphics.ColorBufferBit|graphics.DepthBufferBit, d.Named("Clear")[0].Args[0])
	assert.Equal(t, []any{int32(0), int32(0), int32(800), int32(600)}, d.Named("Viewport")[0].Args)

	want := mgl32.Perspective(mgl32.DegToRad(45), 800.0/600.0, 0.1, 100)
	assert.Equal(t, [16]float32(want), d.Uniforms[1])
	assert.Len(t, d.Named("UniformMatrix4fv"), 6)
}

func TestRunTriangleSetsNoUniforms(t *testing.T) {
	r, d, _ := newTestRenderer(2)
	require.NoError(t, r.InitScene("triangle", nil))
	require.NoError(t, r.Run())

	assert.False(t, d.Enabled[graphics.DepthTest])
	assert.Empty(t, d.Named("UniformMatrix4fv"))
	draws := d.Named("DrawElements")
	require.Len(t, draws, 2)
	assert.Equal(t, int32(3), draws[0].Args[1])
	assert.Equal(t, graphics.ColorBufferBit, d.Named("Clear")[0].Args[0])
}

func TestUniformSceneMovesModel(t *testing.T) {
	r, d, _ := newTestRenderer(2)
	require.NoError(t, r.InitScene("uniform", nil))
	require.NoError(t, r.Run())

	sets := d.Named("UniformMatrix4fv")
	require.Len(t, sets, 2)
	first := sets[0].Args[1].([16]float32)
	second := sets[1].Args[1].([16]float32)
	// the first frame draws before any step: no translation, size 0.4
	assert.InDelta(t, 0, first[12], 1e-6)
	assert.InDelta(t, 0.4, first[0], 1e-6)
	assert.InDelta(t, offsetStep, second[12], 1e-6)
}

func TestInitSceneBuildFailureReleasesMesh(t *testing.T) {
	r, d, _ := newTestRenderer(1)
	d.CompileLogs[graphics.VertexShader] = "syntax error"

	err := r.InitScene("pyramid", nil)
	var ce *shader.CompileError
	require.True(t, errors.As(err, &ce))
	assert.Zero(t, d.Live("vao"))
	assert.Zero(t, d.Live("buffer"))
	assert.Zero(t, d.Live("program"))

	assert.Error(t, r.RenderFrame())
	assert.Empty(t, d.Named("DrawElements"))
}

func TestInitSceneUnknown(t *testing.T) {
	r, d, _ := newTestRenderer(1)
	assert.Error(t, r.InitScene("cube", nil))
	assert.Empty(t, d.Calls)
}

func TestInitSceneCustomProgram(t *testing.T) {
	r, d, _ := newTestRenderer(1)
	d.Locations = map[string]int32{"_umodel": 5}
	custom := &ProgramSource{
		Vertex:   "#version 330\n// custom vertex",
		Fragment: "#version 330\n// custom fragment",
		Names:    map[string]string{"model": "_umodel"},
	}
	require.NoError(t, r.InitScene("uniform", custom))
	require.NoError(t, r.Run())

	sources := d.Named("ShaderSource")
	require.Len(t, sources, 2)
	assert.Equal(t, custom.Vertex, sources[0].Args[1])
	assert.Contains(t, d.Uniforms, int32(5))
}

func TestInitSceneUsesGLESSources(t *testing.T) {
	r, d, ctx := newTestRenderer(1)
	ctx.GLES = true
	require.NoError(t, r.InitScene("triangle", nil))

	want, err := shader.Builtin(shader.Triangle, true)
	require.NoError(t, err)
	assert.Equal(t, want.Vertex, d.Named("ShaderSource")[0].Args[1])
}

func TestSceneSwitchReleasesPrevious(t *testing.T) {
	r, d, _ := newTestRenderer(1)
	require.NoError(t, r.InitScene("triangle", nil))
	require.NoError(t, r.InitScene("pyramid", nil))
	assert.Equal(t, 1, d.Live("vao"))
	assert.Equal(t, 2, d.Live("buffer"))
	assert.Equal(t, 1, d.Live("program"))
}

func TestShutdownReleasesEverything(t *testing.T) {
	r, d, ctx := newTestRenderer(1)
	require.NoError(t, r.InitScene("pyramid", nil))
	r.Shutdown()

	assert.True(t, ctx.Closed)
	assert.Zero(t, d.Live("vao"))
	assert.Zero(t, d.Live("buffer"))
	assert.Zero(t, d.Live("program"))
}

type frameSink struct {
	size   int
	frames [][]byte
	err    error
}

func (s *frameSink) FrameSize() int { return s.size }

func (s *frameSink) WriteFrame(p []byte) error {
	if s.err != nil {
		return s.err
	}
	s.frames = append(s.frames, append([]byte(nil), p...))
	return nil
}

func TestRunOffscreen(t *testing.T) {
	d := graphicstest.NewDriver()
	d.Frame = []byte{1, 2, 3, 4}
	ctx := graphicstest.NewContext(1920, 1080, 0)
	r := NewRenderer(d, ctx, 4, 2, true)
	require.NoError(t, r.InitScene("pyramid", nil))

	sink := &frameSink{size: 4 * 2 * 4}
	require.NoError(t, r.RunOffscreen(sink, 5))
	require.Len(t, sink.frames, 5)
	assert.Len(t, sink.frames[0], 4*2*4)
	assert.Equal(t, []byte{1, 2, 3, 4}, sink.frames[0][:4])
	assert.Equal(t, 5, ctx.Ended)
	assert.Equal(t, []any{int32(0), int32(0), int32(4), int32(2)}, d.Named("ReadPixels")[0].Args)
	assert.Equal(t, []any{int32(0), int32(0), int32(4), int32(2)}, d.Named("Viewport")[0].Args)
}

func TestRunOffscreenWriterError(t *testing.T) {
	r, _, _ := newTestRenderer(0)
	require.NoError(t, r.InitScene("triangle", nil))
	sink := &frameSink{size: 800 * 600 * 4, err: errors.New("pipe closed")}
	assert.ErrorContains(t, r.RunOffscreen(sink, 3), "pipe closed")
}

func TestRunOffscreenFrameSizeMismatch(t *testing.T) {
	d := graphicstest.NewDriver()
	r := NewRenderer(d, graphicstest.NewContext(0, 0, 0), 4, 2, true)
	require.NoError(t, r.InitScene("triangle", nil))
	d.Reset()

	sink := &frameSink{size: 16}
	assert.ErrorContains(t, r.RunOffscreen(sink, 3), "4x2")
	assert.Empty(t, d.Calls)
	assert.Empty(t, sink.frames)
}

func TestNextSceneCycles(t *testing.T) {
	r, d, _ := newTestRenderer(1)
	require.NoError(t, r.InitScene("triangle", nil))

	require.NoError(t, r.NextScene())
	assert.Equal(t, "uniform", r.scene.Name)
	require.NoError(t, r.NextScene())
	assert.Equal(t, "pyramid", r.scene.Name)
	assert.True(t, d.Enabled[graphics.DepthTest])
	require.NoError(t, r.NextScene())
	assert.Equal(t, "triangle", r.scene.Name)
	assert.False(t, d.Enabled[graphics.DepthTest])

	assert.Equal(t, 1, d.Live("vao"))
	assert.Equal(t, 1, d.Live("program"))
}

func TestNextSceneKeepsCurrentOnFailure(t *testing.T) {
	r, d, _ := newTestRenderer(1)
	require.NoError(t, r.InitScene("triangle", nil))
	d.LinkLog = "bad"

	assert.Error(t, r.NextScene())
	assert.Equal(t, "triangle", r.scene.Name)
	assert.True(t, r.program.Usable())
}

func TestNextSceneWithoutScene(t *testing.T) {
	r, _, _ := newTestRenderer(1)
	assert.Error(t, r.NextScene())
}

func TestRenderFrameUnbindsProgramOnDrawError(t *testing.T) {
	r, d, _ := newTestRenderer(1)
	require.NoError(t, r.InitScene("triangle", nil))
	r.mesh.Destroy()

	assert.ErrorIs(t, r.RenderFrame(), mesh.ErrNotCreated)
	assert.Zero(t, d.Program)
}

func TestScenesMatchGeometry(t *testing.T) {
	s, err := NewScene("pyramid")
	require.NoError(t, err)
	assert.Equal(t, mesh.Pyramid(), s.Geometry)
	assert.Equal(t, []string{"model", "projection"}, s.Uniforms)
}
