// Package mesh owns GPU-resident indexed geometry: one vertex array, one
// vertex buffer and one index buffer, created together and released together.
package mesh

import (
	"errors"
	"fmt"

	"github.com/richinsley/glcourse/graphics"
)

// ComponentsPerVertex is the number of floats per vertex in attribute slot 0.
const ComponentsPerVertex = 3

var (
	// ErrInvalidGeometry reports vertex or index data that does not satisfy
	// the layout contract.
	ErrInvalidGeometry = errors.New("mesh: invalid geometry")
	// ErrNotCreated is returned when drawing a mesh that holds no buffers.
	ErrNotCreated = errors.New("mesh: not created")
	// ErrAlreadyCreated is returned by Create on a populated mesh.
	ErrAlreadyCreated = errors.New("mesh: already created")
	// ErrAllocation is returned when the driver hands back a zero handle.
	ErrAllocation = errors.New("mesh: buffer allocation failed")
)

// Mesh is a single indexed triangle list. The zero handles mean
// "unallocated"; all three are allocated together or not at all, and
// indexCount is non-zero exactly when they are.
type Mesh struct {
	driver graphics.Driver

	vao        uint32
	vbo        uint32
	ibo        uint32
	indexCount int32
}

// New returns an empty mesh bound to the driver.
func New(driver graphics.Driver) *Mesh {
	return &Mesh{driver: driver}
}

// Create uploads vertexCount positions (three floats each, tightly packed)
// and indexCount 32-bit indices as static data. No bindings remain active when
// it returns.
func (m *Mesh) Create(vertices []float32, indices []uint32, vertexCount, indexCount int) error {
	if m.Created() {
		return ErrAlreadyCreated
	}
	if err := checkGeometry(vertices, indices, vertexCount, indexCount); err != nil {
		return err
	}

	d := m.driver
	m.vao = d.GenVertexArray()
	if m.vao == 0 {
		return fmt.Errorf("%w: vertex array", ErrAllocation)
	}
	d.BindVertexArray(m.vao)

	m.ibo = d.GenBuffer()
	if m.ibo == 0 {
		m.abort()
		return fmt.Errorf("%w: index buffer", ErrAllocation)
	}
	d.BindBuffer(graphics.ElementArrayBuffer, m.ibo)
	d.BufferDataUint32(graphics.ElementArrayBuffer, indices[:indexCount], graphics.StaticDraw)

	m.vbo = d.GenBuffer()
	if m.vbo == 0 {
		m.abort()
		return fmt.Errorf("%w: vertex buffer", ErrAllocation)
	}
	d.BindBuffer(graphics.ArrayBuffer, m.vbo)
	d.BufferDataFloat32(graphics.ArrayBuffer, vertices[:vertexCount*ComponentsPerVertex], graphics.StaticDraw)

	d.VertexAttribPointer(0, ComponentsPerVertex, graphics.Float, false, 0, 0)
	d.EnableVertexAttribArray(0)

	// unbind; the index buffer binding stays recorded in the vertex array
	d.BindBuffer(graphics.ArrayBuffer, 0)
	d.BindVertexArray(0)
	d.BindBuffer(graphics.ElementArrayBuffer, 0)

	m.indexCount = int32(indexCount)
	return nil
}

// abort releases whatever a failed Create managed to allocate.
func (m *Mesh) abort() {
	m.driver.BindBuffer(graphics.ArrayBuffer, 0)
	m.driver.BindVertexArray(0)
	m.driver.BindBuffer(graphics.ElementArrayBuffer, 0)
	m.Destroy()
}

func checkGeometry(vertices []float32, indices []uint32, vertexCount, indexCount int) error {
	switch {
	case vertexCount <= 0:
		return fmt.Errorf("%w: vertex count %d", ErrInvalidGeometry, vertexCount)
	case indexCount <= 0:
		return fmt.Errorf("%w: index count %d", ErrInvalidGeometry, indexCount)
	case vertexCount > len(vertices)/ComponentsPerVertex:
		return fmt.Errorf("%w: %d floats cannot hold %d vertices", ErrInvalidGeometry, len(vertices), vertexCount)
	case len(indices) != indexCount:
		return fmt.Errorf("%w: %d indices supplied, %d declared", ErrInvalidGeometry, len(indices), indexCount)
	}
	for i, idx := range indices {
		if int(idx) >= vertexCount {
			return fmt.Errorf("%w: index %d at position %d out of range for %d vertices", ErrInvalidGeometry, idx, i, vertexCount)
		}
	}
	return nil
}

// Render draws the whole index buffer as a triangle list.
func (m *Mesh) Render() error {
	if !m.Created() {
		return ErrNotCreated
	}
	d := m.driver
	d.BindVertexArray(m.vao)
	d.BindBuffer(graphics.ElementArrayBuffer, m.ibo)
	d.DrawElements(graphics.Triangles, m.indexCount, graphics.UnsignedInt, 0)
	d.BindBuffer(graphics.ElementArrayBuffer, 0)
	d.BindVertexArray(0)
	return nil
}

// Destroy frees the index buffer, the vertex buffer and the vertex array, in
// that order, skipping handles that were never allocated. It is safe to call
// any number of times.
func (m *Mesh) Destroy() {
	if m.ibo != 0 {
		m.driver.DeleteBuffer(m.ibo)
		m.ibo = 0
	}
	if m.vbo != 0 {
		m.driver.DeleteBuffer(m.vbo)
		m.vbo = 0
	}
	if m.vao != 0 {
		m.driver.DeleteVertexArray(m.vao)
		m.vao = 0
	}
	m.indexCount = 0
}

// Close releases the mesh so owners can `defer m.Close()`.
func (m *Mesh) Close() error {
	m.Destroy()
	return nil
}

// Created reports whether the mesh currently owns GPU buffers.
func (m *Mesh) Created() bool { return m.indexCount > 0 }

// IndexCount is the number of indices drawn by Render.
func (m *Mesh) IndexCount() int { return int(m.indexCount) }
