package mesh

// Geometry is CPU-side vertex and index data ready for Create.
type Geometry struct {
	Vertices []float32
	Indices  []uint32
}

// VertexCount is the number of whole vertices in Vertices.
func (g Geometry) VertexCount() int { return len(g.Vertices) / ComponentsPerVertex }

// IndexCount is the number of indices.
func (g Geometry) IndexCount() int { return len(g.Indices) }

// Triangle spans the whole clip space: bottom left, bottom right, top.
func Triangle() Geometry {
	return Geometry{
		Vertices: []float32{
			-1.0, -1.0, 0.0,
			1.0, -1.0, 0.0,
			0.0, 1.0, 0.0,
		},
		Indices: []uint32{0, 1, 2},
	}
}

// Pyramid is a tetrahedron: three base corners and an apex, four faces.
func Pyramid() Geometry {
	return Geometry{
		Vertices: []float32{
			-1.0, -1.0, 0.0,
			0.0, -1.0, 1.0,
			1.0, -1.0, 0.0,
			0.0, 1.0, 0.0,
		},
		Indices: []uint32{
			0, 3, 1,
			1, 3, 2,
			2, 3, 0,
			0, 1, 2,
		},
	}
}

// Upload creates a mesh from the geometry.
func (g Geometry) Upload(m *Mesh) error {
	return m.Create(g.Vertices, g.Indices, g.VertexCount(), g.IndexCount())
}
