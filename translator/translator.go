// Package translator retargets WebGL2 (GLSL ES 3.00) shader sources to the
// dialect of the active context.
package translator

import (
	"context"
	"fmt"

	gst "github.com/richinsley/goshadertranslator"
)

// Translated holds both stages rewritten for the target dialect, and the
// driver-visible name of every variable keyed by its name in the input.
type Translated struct {
	Vertex   string
	Fragment string
	Names    map[string]string
}

type Translator struct {
	t *gst.ShaderTranslator
}

// New starts the translator runtime.
func New(ctx context.Context) (*Translator, error) {
	t, err := gst.NewShaderTranslator(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to start shader translator: %w", err)
	}
	return &Translator{t: t}, nil
}

// Translate converts a vertex/fragment pair written against WebGL2.
func (tr *Translator) Translate(vertex, fragment string, isGLES bool) (*Translated, error) {
	format := gst.OutputFormatGLSL330
	if isGLES {
		format = gst.OutputFormatESSL
	}
	vs, err := tr.t.TranslateShader(vertex, "vertex", gst.ShaderSpecWebGL2, format)
	if err != nil {
		return nil, fmt.Errorf("vertex shader translation failed: %w", err)
	}
	fs, err := tr.t.TranslateShader(fragment, "fragment", gst.ShaderSpecWebGL2, format)
	if err != nil {
		return nil, fmt.Errorf("fragment shader translation failed: %w", err)
	}
	return &Translated{
		Vertex:   vs.Code,
		Fragment: fs.Code,
		Names:    mergeNames(vs.Variables, fs.Variables),
	}, nil
}

// Close releases the translator runtime.
func (tr *Translator) Close() error {
	return tr.t.Close()
}

// mergeNames flattens the per-stage variable tables. Uniforms shared by both
// stages map to the same name, so later stages simply overwrite.
func mergeNames(stages ...map[string]gst.ShaderVariable) map[string]string {
	names := make(map[string]string)
	for _, vars := range stages {
		for name, v := range vars {
			if v.MappedName != "" {
				names[name] = v.MappedName
			}
		}
	}
	return names
}
