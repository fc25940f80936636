// Package graphicstest provides in-memory stand-ins for graphics.Driver and
// graphics.Context so that mesh, shader and renderer code can be exercised
// without a GPU.
package graphicstest

import (
	"fmt"

	"github.com/richinsley/glcourse/graphics"
)

// Call is one recorded driver invocation.
type Call struct {
	Name string
	Args []any
}

func (c Call) String() string { return fmt.Sprintf("%s%v", c.Name, c.Args) }

// Driver records every call and keeps just enough GL state to answer the
// queries the callers make. The exported fields script failures.
type Driver struct {
	// CompileLogs makes compilation of the given stage fail with the log text.
	CompileLogs map[graphics.Enum]string
	// LinkLog, when non-empty, makes LinkProgram fail with this log.
	LinkLog string
	// ValidateLog, when non-empty, makes ValidateProgram fail with this log.
	ValidateLog string
	// FailCreateProgram makes CreateProgram return 0.
	FailCreateProgram bool
	// FailCreateShader makes CreateShader return 0 for the given stage.
	FailCreateShader map[graphics.Enum]bool
	// FailGenBuffer makes GenBuffer return 0 after this many successful calls
	// when positive.
	FailGenBuffer int
	// Locations lists the active uniforms of every linked program.
	Locations map[string]int32
	// Frame is copied into ReadPixels destinations.
	Frame []byte

	Calls []Call

	next        uint32
	genBuffers  int
	shaderStage map[uint32]graphics.Enum
	shaderOK    map[uint32]bool
	programOK   map[uint32]bool
	validOK     map[uint32]bool
	live        map[uint32]string

	BoundVAO     uint32
	BoundArray   uint32
	BoundElement uint32
	Program      uint32
	Uniforms     map[int32]any
	Enabled      map[graphics.Enum]bool
}

// NewDriver returns a driver with no scripted failures.
func NewDriver() *Driver {
	return &Driver{
		CompileLogs: map[graphics.Enum]string{},
		Locations:   map[string]int32{},
		shaderStage: map[uint32]graphics.Enum{},
		shaderOK:    map[uint32]bool{},
		programOK:   map[uint32]bool{},
		validOK:     map[uint32]bool{},
		live:        map[uint32]string{},
		Uniforms:    map[int32]any{},
		Enabled:     map[graphics.Enum]bool{},
	}
}

func (d *Driver) record(name string, args ...any) {
	d.Calls = append(d.Calls, Call{Name: name, Args: args})
}

func (d *Driver) alloc(kind string) uint32 {
	d.next++
	d.live[d.next] = kind
	return d.next
}

func (d *Driver) free(kind string, h uint32) {
	if d.live[h] == kind {
		delete(d.live, h)
	}
}

// Live returns how many objects of the kind ("vao", "buffer", "shader",
// "program") are still allocated.
func (d *Driver) Live(kind string) int {
	n := 0
	for _, k := range d.live {
		if k == kind {
			n++
		}
	}
	return n
}

// Named returns the recorded calls with the given name.
func (d *Driver) Named(name string) []Call {
	var out []Call
	for _, c := range d.Calls {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// Names returns the sequence of recorded call names.
func (d *Driver) Names() []string {
	out := make([]string, len(d.Calls))
	for i, c := range d.Calls {
		out[i] = c.Name
	}
	return out
}

// Reset forgets recorded calls but keeps object state.
func (d *Driver) Reset() { d.Calls = nil }

func (d *Driver) GenVertexArray() uint32 {
	h := d.alloc("vao")
	d.record("GenVertexArray", h)
	return h
}

func (d *Driver) BindVertexArray(vao uint32) {
	d.BoundVAO = vao
	d.record("BindVertexArray", vao)
}

func (d *Driver) DeleteVertexArray(vao uint32) {
	d.free("vao", vao)
	d.record("DeleteVertexArray", vao)
}

func (d *Driver) GenBuffer() uint32 {
	if d.FailGenBuffer > 0 && d.genBuffers >= d.FailGenBuffer {
		d.record("GenBuffer", uint32(0))
		return 0
	}
	d.genBuffers++
	h := d.alloc("buffer")
	d.record("GenBuffer", h)
	return h
}

func (d *Driver) BindBuffer(target graphics.Enum, buffer uint32) {
	switch target {
	case graphics.ArrayBuffer:
		d.BoundArray = buffer
	case graphics.ElementArrayBuffer:
		d.BoundElement = buffer
	}
	d.record("BindBuffer", target, buffer)
}

func (d *Driver) BufferDataFloat32(target graphics.Enum, data []float32, usage graphics.Enum) {
	d.record("BufferDataFloat32", target, append([]float32(nil), data...), usage)
}

func (d *Driver) BufferDataUint32(target graphics.Enum, data []uint32, usage graphics.Enum) {
	d.record("BufferDataUint32", target, append([]uint32(nil), data...), usage)
}

func (d *Driver) DeleteBuffer(buffer uint32) {
	d.free("buffer", buffer)
	d.record("DeleteBuffer", buffer)
}

func (d *Driver) VertexAttribPointer(index uint32, size int32, xtype graphics.Enum, normalized bool, stride int32, offset int) {
	d.record("VertexAttribPointer", index, size, xtype, normalized, stride, offset)
}

func (d *Driver) EnableVertexAttribArray(index uint32) {
	d.record("EnableVertexAttribArray", index)
}

func (d *Driver) DrawElements(mode graphics.Enum, count int32, xtype graphics.Enum, offset int) {
	d.record("DrawElements", mode, count, xtype, offset)
}

func (d *Driver) CreateProgram() uint32 {
	if d.FailCreateProgram {
		d.record("CreateProgram", uint32(0))
		return 0
	}
	h := d.alloc("program")
	d.record("CreateProgram", h)
	return h
}

func (d *Driver) DeleteProgram(program uint32) {
	d.free("program", program)
	d.record("DeleteProgram", program)
}

func (d *Driver) CreateShader(xtype graphics.Enum) uint32 {
	if d.FailCreateShader[xtype] {
		d.record("CreateShader", xtype, uint32(0))
		return 0
	}
	h := d.alloc("shader")
	d.shaderStage[h] = xtype
	d.record("CreateShader", xtype, h)
	return h
}

func (d *Driver) ShaderSource(shader uint32, source string) {
	d.record("ShaderSource", shader, source)
}

func (d *Driver) CompileShader(shader uint32) {
	_, fail := d.CompileLogs[d.shaderStage[shader]]
	d.shaderOK[shader] = !fail
	d.record("CompileShader", shader)
}

func (d *Driver) GetShaderiv(shader uint32, pname graphics.Enum) int32 {
	d.record("GetShaderiv", shader, pname)
	if pname == graphics.CompileStatus && d.shaderOK[shader] {
		return 1
	}
	return 0
}

func (d *Driver) GetShaderInfoLog(shader uint32, bufSize int32) string {
	d.record("GetShaderInfoLog", shader, bufSize)
	return clip(d.CompileLogs[d.shaderStage[shader]], bufSize)
}

func (d *Driver) AttachShader(program, shader uint32) {
	d.record("AttachShader", program, shader)
}

func (d *Driver) DetachShader(program, shader uint32) {
	d.record("DetachShader", program, shader)
}

func (d *Driver) DeleteShader(shader uint32) {
	d.free("shader", shader)
	d.record("DeleteShader", shader)
}

func (d *Driver) LinkProgram(program uint32) {
	d.programOK[program] = d.LinkLog == ""
	d.record("LinkProgram", program)
}

func (d *Driver) ValidateProgram(program uint32) {
	d.validOK[program] = d.ValidateLog == ""
	d.record("ValidateProgram", program)
}

func (d *Driver) GetProgramiv(program uint32, pname graphics.Enum) int32 {
	d.record("GetProgramiv", program, pname)
	switch {
	case pname == graphics.LinkStatus && d.programOK[program]:
		return 1
	case pname == graphics.ValidateStatus && d.validOK[program]:
		return 1
	}
	return 0
}

func (d *Driver) GetProgramInfoLog(program uint32, bufSize int32) string {
	d.record("GetProgramInfoLog", program, bufSize)
	if !d.programOK[program] {
		return clip(d.LinkLog, bufSize)
	}
	return clip(d.ValidateLog, bufSize)
}

func (d *Driver) GetUniformLocation(program uint32, name string) int32 {
	d.record("GetUniformLocation", program, name)
	if loc, ok := d.Locations[name]; ok && d.programOK[program] {
		return loc
	}
	return -1
}

func (d *Driver) UseProgram(program uint32) {
	d.Program = program
	d.record("UseProgram", program)
}

func (d *Driver) UniformMatrix4fv(location int32, m [16]float32) {
	d.Uniforms[location] = m
	d.record("UniformMatrix4fv", location, m)
}

func (d *Driver) Viewport(x, y, width, height int32) {
	d.record("Viewport", x, y, width, height)
}

func (d *Driver) ClearColor(r, g, b, a float32) {
	d.record("ClearColor", r, g, b, a)
}

func (d *Driver) Clear(mask graphics.Enum) {
	d.record("Clear", mask)
}

func (d *Driver) Enable(capability graphics.Enum) {
	d.Enabled[capability] = true
	d.record("Enable", capability)
}

func (d *Driver) Disable(capability graphics.Enum) {
	d.Enabled[capability] = false
	d.record("Disable", capability)
}

func (d *Driver) ReadPixels(x, y, width, height int32, dst []byte) {
	copy(dst, d.Frame)
	d.record("ReadPixels", x, y, width, height)
}

// clip mimics GL's info log contract: bufSize includes the terminator.
func clip(s string, bufSize int32) string {
	if bufSize <= 0 {
		return ""
	}
	if int32(len(s)) > bufSize-1 {
		return s[:bufSize-1]
	}
	return s
}

var _ graphics.Driver = (*Driver)(nil)
