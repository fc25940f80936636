package graphics

import "fmt"

// Enum carries a GL enumerant. The values match the GL headers so a driver
// backed by real bindings can pass them through unchanged.
type Enum uint32

const (
	Triangles    Enum = 0x0004
	UnsignedInt  Enum = 0x1405
	UnsignedByte Enum = 0x1401
	Float        Enum = 0x1406
	RGBA         Enum = 0x1908

	ArrayBuffer        Enum = 0x8892
	ElementArrayBuffer Enum = 0x8893
	StaticDraw         Enum = 0x88E4

	FragmentShader Enum = 0x8B30
	VertexShader   Enum = 0x8B31
	CompileStatus  Enum = 0x8B81
	LinkStatus     Enum = 0x8B82
	ValidateStatus Enum = 0x8B83

	DepthBufferBit Enum = 0x0100
	ColorBufferBit Enum = 0x4000
	DepthTest      Enum = 0x0B71
)

// Driver is the slice of the GL API used to manage meshes and shader
// programs and to drive a frame. Every method must be called on the thread
// that owns the current context.
type Driver interface {
	GenVertexArray() uint32
	BindVertexArray(vao uint32)
	DeleteVertexArray(vao uint32)

	GenBuffer() uint32
	BindBuffer(target Enum, buffer uint32)
	BufferDataFloat32(target Enum, data []float32, usage Enum)
	BufferDataUint32(target Enum, data []uint32, usage Enum)
	DeleteBuffer(buffer uint32)

	VertexAttribPointer(index uint32, size int32, xtype Enum, normalized bool, stride int32, offset int)
	EnableVertexAttribArray(index uint32)
	DrawElements(mode Enum, count int32, xtype Enum, offset int)

	CreateProgram() uint32
	DeleteProgram(program uint32)
	CreateShader(xtype Enum) uint32
	ShaderSource(shader uint32, source string)
	CompileShader(shader uint32)
	GetShaderiv(shader uint32, pname Enum) int32
	// GetShaderInfoLog returns at most bufSize-1 bytes of the shader log.
	GetShaderInfoLog(shader uint32, bufSize int32) string
	AttachShader(program, shader uint32)
	DetachShader(program, shader uint32)
	DeleteShader(shader uint32)
	LinkProgram(program uint32)
	ValidateProgram(program uint32)
	GetProgramiv(program uint32, pname Enum) int32
	// GetProgramInfoLog returns at most bufSize-1 bytes of the program log.
	GetProgramInfoLog(program uint32, bufSize int32) string
	GetUniformLocation(program uint32, name string) int32
	UseProgram(program uint32)
	UniformMatrix4fv(location int32, m [16]float32)

	Viewport(x, y, width, height int32)
	ClearColor(r, g, b, a float32)
	Clear(mask Enum)
	Enable(capability Enum)
	Disable(capability Enum)
	// ReadPixels reads an RGBA8 rectangle of the current framebuffer into dst.
	ReadPixels(x, y, width, height int32, dst []byte)
}

// String names the shader stages for diagnostics.
func (e Enum) String() string {
	switch e {
	case VertexShader:
		return "vertex"
	case FragmentShader:
		return "fragment"
	}
	return fmt.Sprintf("Enum(0x%04X)", uint32(e))
}
