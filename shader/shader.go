package shader

import "fmt"

// ────────────────────────────────── Desktop GL ──────────────────────────────────

const triangleVertexSourceGL = `#version 330
layout (location = 0) in vec3 pos;
void main() {
    gl_Position = vec4(0.4 * pos.x, 0.4 * pos.y, pos.z, 1.0);
}
`

const modelVertexSourceGL = `#version 330
layout (location = 0) in vec3 pos;
uniform mat4 model;
void main() {
    gl_Position = model * vec4(pos, 1.0);
}
`

const pyramidVertexSourceGL = `#version 330
layout (location = 0) in vec3 pos;
out vec4 vCol;
uniform mat4 model;
uniform mat4 projection;
void main() {
    gl_Position = projection * model * vec4(pos, 1.0);
    vCol = vec4(clamp(pos, 0.0, 1.0), 1.0);
}
`

const redFragmentSourceGL = `#version 330
out vec4 colour;
void main() {
    colour = vec4(1.0, 0.0, 0.0, 1.0);
}
`

const vertexColourFragmentSourceGL = `#version 330
in vec4 vCol;
out vec4 colour;
void main() {
    colour = vCol;
}
`

// ──────────────────────────────────── GLES ──────────────────────────────────────

const triangleVertexSourceGLES = `#version 300 es
layout (location = 0) in vec3 pos;
void main() {
    gl_Position = vec4(0.4 * pos.x, 0.4 * pos.y, pos.z, 1.0);
}
`

const modelVertexSourceGLES = `#version 300 es
layout (location = 0) in vec3 pos;
uniform mat4 model;
void main() {
    gl_Position = model * vec4(pos, 1.0);
}
`

const pyramidVertexSourceGLES = `#version 300 es
layout (location = 0) in vec3 pos;
out vec4 vCol;
uniform mat4 model;
uniform mat4 projection;
void main() {
    gl_Position = projection * model * vec4(pos, 1.0);
    vCol = vec4(clamp(pos, 0.0, 1.0), 1.0);
}
`

const redFragmentSourceGLES = `#version 300 es
precision mediump float;
out vec4 colour;
void main() {
    colour = vec4(1.0, 0.0, 0.0, 1.0);
}
`

const vertexColourFragmentSourceGLES = `#version 300 es
precision mediump float;
in vec4 vCol;
out vec4 colour;
void main() {
    colour = vCol;
}
`

// ────────────────────────────────── Public API ─────────────────────────────────

// Source is a vertex/fragment pair.
type Source struct {
	Vertex   string
	Fragment string
}

// Names of the built-in programs.
const (
	Triangle = "triangle"
	Model    = "model"
	Pyramid  = "pyramid"
)

// Builtin returns the named program source for desktop GL or GLES.
func Builtin(name string, isGLES bool) (Source, error) {
	switch name {
	case Triangle:
		if isGLES {
			return Source{triangleVertexSourceGLES, redFragmentSourceGLES}, nil
		}
		return Source{triangleVertexSourceGL, redFragmentSourceGL}, nil
	case Model:
		if isGLES {
			return Source{modelVertexSourceGLES, redFragmentSourceGLES}, nil
		}
		return Source{modelVertexSourceGL, redFragmentSourceGL}, nil
	case Pyramid:
		if isGLES {
			return Source{pyramidVertexSourceGLES, vertexColourFragmentSourceGLES}, nil
		}
		return Source{pyramidVertexSourceGL, vertexColourFragmentSourceGL}, nil
	}
	return Source{}, fmt.Errorf("shader: no built-in program named %q", name)
}
