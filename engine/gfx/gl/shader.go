package glbackend

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/hubastard/imbridge/engine/core"
)

// cString returns src terminated for the GL string helpers.
func cString(src string) string {
	if strings.HasSuffix(src, "\x00") {
		return src
	}
	return src + "\x00"
}

func shaderType(stage core.ShaderStage) uint32 {
	if stage == core.StageFragment {
		return gl.FRAGMENT_SHADER
	}
	return gl.VERTEX_SHADER
}

func makeShader(src string, stage core.ShaderStage) (uint32, error) {
	sh := gl.CreateShader(shaderType(stage))
	csrc, free := gl.Strs(cString(src))
	defer free()
	gl.ShaderSource(sh, 1, csrc, nil)
	gl.CompileShader(sh)

	var status int32
	gl.GetShaderiv(sh, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(sh, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen)+1)
		gl.GetShaderInfoLog(sh, logLen, nil, gl.Str(log))
		gl.DeleteShader(sh)
		return 0, fmt.Errorf("gl: shader compile error: %s", strings.TrimRight(log, "\x00"))
	}
	return sh, nil
}

// linkProgram links vs and fs with every vertex attribute bound to its
// core.Attrib location, so layouts map onto any program the same way.
func linkProgram(vs, fs uint32) (uint32, error) {
	prog := gl.CreateProgram()
	gl.AttachShader(prog, vs)
	gl.AttachShader(prog, fs)
	for a := core.Attrib(0); a < core.AttribCount; a++ {
		gl.BindAttribLocation(prog, uint32(a), gl.Str(cString(a.Name())))
	}
	gl.LinkProgram(prog)
	gl.DetachShader(prog, vs)
	gl.DetachShader(prog, fs)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen)+1)
		gl.GetProgramInfoLog(prog, logLen, nil, gl.Str(log))
		gl.DeleteProgram(prog)
		return 0, fmt.Errorf("gl: program link error: %s", strings.TrimRight(log, "\x00"))
	}
	return prog, nil
}

func uniformLocation(prog uint32, name string) int32 {
	return gl.GetUniformLocation(prog, gl.Str(cString(name)))
}
