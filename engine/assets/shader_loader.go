// Package assets reads shaders and textures for the GL host.
package assets

import (
	"fmt"
	"io/fs"
	"os"
	"path"
)

// Root is the asset tree. Hosts run from the repository root by default.
var Root fs.FS = os.DirFS("assets")

// Program is a vertex/fragment shader pair, each NUL terminated for gl.Strs.
type Program struct {
	Vertex, Fragment string
}

// LoadProgram reads shaders/<name>.vert and shaders/<name>.frag.
func LoadProgram(name string) (Program, error) {
	vs, err := loadShader(name + ".vert")
	if err != nil {
		return Program{}, err
	}
	fs, err := loadShader(name + ".frag")
	if err != nil {
		return Program{}, err
	}
	return Program{Vertex: vs, Fragment: fs}, nil
}

func loadShader(file string) (string, error) {
	b, err := fs.ReadFile(Root, path.Join("shaders", file))
	if err != nil {
		return "", fmt.Errorf("load shader %q: %w", file, err)
	}
	if len(b) == 0 || b[len(b)-1] != 0 {
		b = append(b, 0)
	}
	return string(b), nil
}
