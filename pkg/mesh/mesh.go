// Package mesh loads triangulated 3D models from a line-oriented text
// format. Each line starts with a directive: "v" for a vertex position,
// "vn" for a normal, "vt" for a texture coordinate, and "f" for a face
// whose corners reference earlier v/vt/vn entries by 1-based index.
// Unknown directives are ignored.
package mesh

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mkarpov/tinysr/pkg/geometry"
)

// Sentinel errors naming the directive that failed to parse. ParseError
// unwraps to one of these.
var (
	ErrVertex  = errors.New("unable to parse vertex")
	ErrNormal  = errors.New("unable to parse normal")
	ErrTexture = errors.New("unable to parse texture")
	ErrFace    = errors.New("unable to parse face")
)

// ParseError reports a malformed line in a mesh source.
type ParseError struct {
	Kind   error // one of ErrVertex, ErrNormal, ErrTexture, ErrFace
	Line   int   // 1-based line number
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at line %d: %s", e.Kind, e.Line, e.Reason)
}

func (e *ParseError) Unwrap() error { return e.Kind }

// Face is one polygon of a mesh. The attribute slices hold resolved
// copies of the referenced data, not indices. Vertices has one entry per
// corner; Normals and Textures either match that length or are empty,
// never partially filled.
type Face struct {
	Vertices []geometry.Vec3
	Textures []geometry.TexCoord
	Normals  []geometry.Vec3
}

// Mesh is an ordered collection of faces. It is read-only after loading.
type Mesh struct {
	Faces []Face
}

// LoadFile reads and parses the mesh at path.
func LoadFile(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read mesh file: %w", err)
	}
	defer f.Close()

	return Load(f)
}

// Load parses a mesh from r. Lines are split at the first space into a
// directive and a remainder; lines without a space are skipped. Normals
// are normalized as they are read. On failure no partial mesh is
// returned, and the error carries the 1-based line number.
func Load(r io.Reader) (*Mesh, error) {
	var (
		vertices []geometry.Vec3
		normals  []geometry.Vec3
		textures []geometry.TexCoord
		faces    []Face
	)

	scanner := bufio.NewScanner(r)
	for line := 1; scanner.Scan(); line++ {
		directive, rest, found := strings.Cut(scanner.Text(), " ")
		if !found {
			continue
		}

		switch directive {
		case "v":
			v, err := parseVec3(rest)
			if err != nil {
				return nil, &ParseError{Kind: ErrVertex, Line: line, Reason: err.Error()}
			}
			vertices = append(vertices, v)
		case "vn":
			n, err := parseVec3(rest)
			if err != nil {
				return nil, &ParseError{Kind: ErrNormal, Line: line, Reason: err.Error()}
			}
			normals = append(normals, n.Normalize())
		case "vt":
			uv, err := parseTexCoord(rest)
			if err != nil {
				return nil, &ParseError{Kind: ErrTexture, Line: line, Reason: err.Error()}
			}
			textures = append(textures, uv)
		case "f":
			face, err := parseFace(rest, vertices, textures, normals)
			if err != nil {
				return nil, &ParseError{Kind: ErrFace, Line: line, Reason: err.Error()}
			}
			faces = append(faces, face)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("unable to read mesh: %w", err)
	}

	return &Mesh{Faces: faces}, nil
}

func parseReal(fields []string, i int, name string) (float64, error) {
	if i >= len(fields) {
		return 0, fmt.Errorf("missing coordinate %s", name)
	}
	val, err := strconv.ParseFloat(fields[i], 64)
	if err != nil {
		return 0, fmt.Errorf("invalid coordinate %s format: %v", name, err)
	}
	return val, nil
}

func parseVec3(s string) (geometry.Vec3, error) {
	fields := strings.Fields(s)

	x, err := parseReal(fields, 0, "x")
	if err != nil {
		return geometry.Vec3{}, err
	}
	y, err := parseReal(fields, 1, "y")
	if err != nil {
		return geometry.Vec3{}, err
	}
	z, err := parseReal(fields, 2, "z")
	if err != nil {
		return geometry.Vec3{}, err
	}

	return geometry.Vec3{X: x, Y: y, Z: z}, nil
}

func parseTexCoord(s string) (geometry.TexCoord, error) {
	fields := strings.Fields(s)

	u, err := parseReal(fields, 0, "u")
	if err != nil {
		return geometry.TexCoord{}, err
	}
	v, err := parseReal(fields, 1, "v")
	if err != nil {
		return geometry.TexCoord{}, err
	}

	return geometry.TexCoord{U: u, V: v}, nil
}

func parseIndex(field, name string) (int, error) {
	idx, err := strconv.ParseUint(field, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %s index format: %v", name, err)
	}
	return int(idx), nil
}

// parseOptionalIndex reads the i-th slash-separated field of a corner
// descriptor. Missing and empty fields mean "absent" and resolve to 0.
func parseOptionalIndex(fields []string, i int, name string) (int, error) {
	if i >= len(fields) || fields[i] == "" {
		return 0, nil
	}
	return parseIndex(fields[i], name)
}

// parseFace resolves the corner descriptors of an "f" line against the
// vertex, texture, and normal data collected so far. Corners look like
// "5", "5/2", "5/2/3", or "5//3". A texture or normal count that does not
// match the corner count clears that attribute for the whole face.
func parseFace(s string, vertices []geometry.Vec3, textures []geometry.TexCoord, normals []geometry.Vec3) (Face, error) {
	var face Face

	for _, corner := range strings.Fields(s) {
		indices := strings.Split(corner, "/")

		vi, err := parseIndex(indices[0], "vertex")
		if err != nil {
			return Face{}, err
		}
		if vi == 0 || vi > len(vertices) {
			return Face{}, fmt.Errorf("face index out of bounds: %d", vi)
		}
		face.Vertices = append(face.Vertices, vertices[vi-1])

		ti, err := parseOptionalIndex(indices, 1, "texture")
		if err != nil {
			return Face{}, err
		}
		if ti > len(textures) {
			return Face{}, fmt.Errorf("texture index out of bounds: %d", ti)
		}
		if ti > 0 {
			face.Textures = append(face.Textures, textures[ti-1])
		}

		ni, err := parseOptionalIndex(indices, 2, "normal")
		if err != nil {
			return Face{}, err
		}
		if ni > len(normals) {
			return Face{}, fmt.Errorf("normal index out of bounds: %d", ni)
		}
		if ni > 0 {
			face.Normals = append(face.Normals, normals[ni-1])
		}
	}

	if len(face.Textures) != len(face.Vertices) {
		face.Textures = nil
	}
	if len(face.Normals) != len(face.Vertices) {
		face.Normals = nil
	}

	return face, nil
}
