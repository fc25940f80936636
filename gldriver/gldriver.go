// Package gldriver implements graphics.Driver on top of the go-gl OpenGL 4.1
// core bindings.
package gldriver

import (
	"fmt"
	"log"
	"sync"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/richinsley/glcourse/graphics"
)

// Ensures gl.Init() is called only once per process.
var glInitOnce sync.Once
var glInitErr error

// Driver forwards to the GL function pointers loaded by Init.
type Driver struct{}

// Init loads the OpenGL function pointers. A context must be current on the
// calling thread.
func Init() (*Driver, error) {
	glInitOnce.Do(func() {
		glInitErr = gl.Init()
		if glInitErr == nil {
			log.Printf("OpenGL version %s", gl.GoStr(gl.GetString(gl.VERSION)))
		}
	})
	if glInitErr != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", glInitErr)
	}
	return &Driver{}, nil
}

func (Driver) GenVertexArray() uint32 {
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	return vao
}

func (Driver) BindVertexArray(vao uint32) { gl.BindVertexArray(vao) }

func (Driver) DeleteVertexArray(vao uint32) { gl.DeleteVertexArrays(1, &vao) }

func (Driver) GenBuffer() uint32 {
	var buf uint32
	gl.GenBuffers(1, &buf)
	return buf
}

func (Driver) BindBuffer(target graphics.Enum, buffer uint32) {
	gl.BindBuffer(uint32(target), buffer)
}

func (Driver) BufferDataFloat32(target graphics.Enum, data []float32, usage graphics.Enum) {
	if len(data) == 0 {
		gl.BufferData(uint32(target), 0, nil, uint32(usage))
		return
	}
	gl.BufferData(uint32(target), len(data)*4, gl.Ptr(data), uint32(usage))
}

func (Driver) BufferDataUint32(target graphics.Enum, data []uint32, usage graphics.Enum) {
	if len(data) == 0 {
		gl.BufferData(uint32(target), 0, nil, uint32(usage))
		return
	}
	gl.BufferData(uint32(target), len(data)*4, gl.Ptr(data), uint32(usage))
}

func (Driver) DeleteBuffer(buffer uint32) { gl.DeleteBuffers(1, &buffer) }

func (Driver) VertexAttribPointer(index uint32, size int32, xtype graphics.Enum, normalized bool, stride int32, offset int) {
	gl.VertexAttribPointer(index, size, uint32(xtype), normalized, stride, gl.PtrOffset(offset))
}

func (Driver) EnableVertexAttribArray(index uint32) { gl.EnableVertexAttribArray(index) }

func (Driver) DrawElements(mode graphics.Enum, count int32, xtype graphics.Enum, offset int) {
	gl.DrawElements(uint32(mode), count, uint32(xtype), gl.PtrOffset(offset))
}

func (Driver) CreateProgram() uint32 { return gl.CreateProgram() }

func (Driver) DeleteProgram(program uint32) { gl.DeleteProgram(program) }

func (Driver) CreateShader(xtype graphics.Enum) uint32 { return gl.CreateShader(uint32(xtype)) }

func (Driver) ShaderSource(shader uint32, source string) {
	length := int32(len(source))
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, &length)
	free()
}

func (Driver) CompileShader(shader uint32) { gl.CompileShader(shader) }

func (Driver) GetShaderiv(shader uint32, pname graphics.Enum) int32 {
	var v int32
	gl.GetShaderiv(shader, uint32(pname), &v)
	return v
}

func (Driver) GetShaderInfoLog(shader uint32, bufSize int32) string {
	if bufSize <= 0 {
		return ""
	}
	buf := make([]uint8, bufSize)
	var n int32
	gl.GetShaderInfoLog(shader, bufSize, &n, &buf[0])
	return string(buf[:n])
}

func (Driver) AttachShader(program, shader uint32) { gl.AttachShader(program, shader) }

func (Driver) DetachShader(program, shader uint32) { gl.DetachShader(program, shader) }

func (Driver) DeleteShader(shader uint32) { gl.DeleteShader(shader) }

func (Driver) LinkProgram(program uint32) { gl.LinkProgram(program) }

func (Driver) ValidateProgram(program uint32) { gl.ValidateProgram(program) }

func (Driver) GetProgramiv(program uint32, pname graphics.Enum) int32 {
	var v int32
	gl.GetProgramiv(program, uint32(pname), &v)
	return v
}

func (Driver) GetProgramInfoLog(program uint32, bufSize int32) string {
	if bufSize <= 0 {
		return ""
	}
	buf := make([]uint8, bufSize)
	var n int32
	gl.GetProgramInfoLog(program, bufSize, &n, &buf[0])
	return string(buf[:n])
}

func (Driver) GetUniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (Driver) UseProgram(program uint32) { gl.UseProgram(program) }

func (Driver) UniformMatrix4fv(location int32, m [16]float32) {
	gl.UniformMatrix4fv(location, 1, false, &m[0])
}

func (Driver) Viewport(x, y, width, height int32) { gl.Viewport(x, y, width, height) }

func (Driver) ClearColor(r, g, b, a float32) { gl.ClearColor(r, g, b, a) }

func (Driver) Clear(mask graphics.Enum) { gl.Clear(uint32(mask)) }

func (Driver) Enable(capability graphics.Enum) { gl.Enable(uint32(capability)) }

func (Driver) Disable(capability graphics.Enum) { gl.Disable(uint32(capability)) }

func (Driver) ReadPixels(x, y, width, height int32, dst []byte) {
	if len(dst) < int(width*height*4) {
		return
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(x, y, width, height, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(dst))
}

var _ graphics.Driver = Driver{}
