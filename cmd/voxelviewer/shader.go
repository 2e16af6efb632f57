package main

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

const vertexSrc = `#version 410 core
layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aNormal;
layout (location = 2) in vec4 aColor;

uniform mat4 uView;
uniform mat4 uProj;

out vec3 vNormal;
out vec4 vColor;

void main() {
	gl_Position = uProj * uView * vec4(aPos, 1.0);
	vNormal = aNormal;
	vColor = aColor;
}
`

const fragmentSrc = `#version 410 core
in vec3 vNormal;
in vec4 vColor;
out vec4 fragColor;

void main() {
	vec3 light = normalize(vec3(0.4, 0.6, 1.0));
	float diffuse = max(dot(normalize(vNormal), light), 0.2);
	fragColor = vec4(vColor.rgb * diffuse, vColor.a);
}
`

// shaderProgram is a minimal vertex+fragment program, grounded on the
// teacher's internal/graphics/Shader but with inline sources (no asset
// files to load for this thin reference host) and a mgl32-typed matrix
// setter.
type shaderProgram struct {
	id uint32
}

func newShader() (*shaderProgram, error) {
	program, err := compileProgram(vertexSrc, fragmentSrc)
	if err != nil {
		return nil, err
	}
	return &shaderProgram{id: program}, nil
}

func (s *shaderProgram) use() { gl.UseProgram(s.id) }

func (s *shaderProgram) setMat4(name string, m mgl32.Mat4) {
	loc := gl.GetUniformLocation(s.id, gl.Str(name+"\x00"))
	gl.UniformMatrix4fv(loc, 1, false, &m[0])
}

func (s *shaderProgram) delete() { gl.DeleteProgram(s.id) }

func compileProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	vertexShader, err := compileShader(vertexSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fragmentShader, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		return 0, fmt.Errorf("failed to link program: %v", log)
	}
	gl.DeleteShader(vertexShader)
	gl.DeleteShader(fragmentShader)
	return program, nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		return 0, fmt.Errorf("failed to compile shader: %v", log)
	}
	return shader, nil
}
