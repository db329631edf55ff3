package rendering

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Info describes the driver behind the current context.
type Info struct {
	Vendor      string `json:"vendor"`
	Renderer    string `json:"renderer"`
	Version     string `json:"version"`
	GLSLVersion string `json:"glsl_version"`
	DebugOutput bool   `json:"debug_output"`
}

// Init loads the GL function pointers for the context that is current on
// this thread.
func Init() (Info, error) {
	err := gl.Init()
	if err != nil {
		return Info{}, fmt.Errorf("could not initialise OpenGL context: %w", err)
	}

	return Info{
		Vendor:      gl.GoStr(gl.GetString(gl.VENDOR)),
		Renderer:    gl.GoStr(gl.GetString(gl.RENDERER)),
		Version:     gl.GoStr(gl.GetString(gl.VERSION)),
		GLSLVersion: gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION)),
	}, nil
}
