// Package formats provides parsers for triangle mesh file formats.
package formats

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Faultbox/mesh2pov/pkg/mesh"
)

// ErrUnsupportedFormat is returned for input files that are neither
// .obj nor .stl.
var ErrUnsupportedFormat = errors.New("unsupported mesh format")

// Model is the format-independent result of loading a mesh file.
type Model struct {
	Mesh     *mesh.Mesh
	Source   string        // input file path
	Warnings []LineWarning // per-line OBJ warnings (empty for STL)
}

// Load reads a mesh file, dispatching on the file extension.
func Load(path string) (*Model, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".obj":
		obj, err := LoadOBJ(path)
		if err != nil {
			return nil, err
		}
		return &Model{Mesh: obj.Mesh, Source: path, Warnings: obj.Warnings}, nil
	case ".stl":
		stl, err := LoadSTL(path)
		if err != nil {
			return nil, err
		}
		return &Model{Mesh: stl.Mesh, Source: path}, nil
	default:
		return nil, fmt.Errorf("%w: %q (supported: .obj, .stl)", ErrUnsupportedFormat, filepath.Ext(path))
	}
}
