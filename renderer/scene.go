package renderer

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/richinsley/glcourse/mesh"
	options "github.com/richinsley/glcourse/options"
	shader "github.com/richinsley/glcourse/shader"
)

// Scene describes what one tutorial program draws.
type Scene struct {
	Name     string
	Program  string
	Geometry mesh.Geometry
	Uniforms []string
	Depth    bool

	// apply sets the per-frame uniforms on the current program.
	apply func(p *shader.Program, a *Animation, width, height int)
}

// ProgramSource replaces a scene's built-in program, e.g. with translated
// user shaders. Names maps uniform names to the names the driver sees.
type ProgramSource struct {
	Vertex   string
	Fragment string
	Names    map[string]string
}

// sceneOrder is the order NextScene steps through.
var sceneOrder = []string{options.SceneTriangle, options.SceneUniform, options.ScenePyramid}

func NewScene(name string) (*Scene, error) {
	switch name {
	case options.SceneTriangle:
		return &Scene{
			Name:     name,
			Program:  shader.Triangle,
			Geometry: mesh.Triangle(),
		}, nil
	case options.SceneUniform:
		return &Scene{
			Name:     name,
			Program:  shader.Model,
			Geometry: mesh.Triangle(),
			Uniforms: []string{"model"},
			apply: func(p *shader.Program, a *Animation, width, height int) {
				model := mgl32.Translate3D(a.Offset, 0, 0).
					Mul4(mgl32.HomogRotate3DZ(mgl32.DegToRad(a.Angle))).
					Mul4(mgl32.Scale3D(a.Size, a.Size, 1))
				p.SetMatrix4("model", model)
			},
		}, nil
	case options.ScenePyramid:
		return &Scene{
			Name:     name,
			Program:  shader.Pyramid,
			Geometry: mesh.Pyramid(),
			Uniforms: []string{"model", "projection"},
			Depth:    true,
			apply: func(p *shader.Program, a *Animation, width, height int) {
				p.SetMatrix4("projection", projection(width, height))
				model := mgl32.Translate3D(a.Offset, 0, -2.5).
					Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(a.Angle))).
					Mul4(mgl32.Scale3D(0.4, 0.4, 1))
				p.SetMatrix4("model", model)
			},
		}, nil
	}
	return nil, fmt.Errorf("unknown scene %q", name)
}

func projection(width, height int) mgl32.Mat4 {
	aspect := float32(1)
	if height > 0 {
		aspect = float32(width) / float32(height)
	}
	return mgl32.Perspective(mgl32.DegToRad(45), aspect, 0.1, 100)
}
