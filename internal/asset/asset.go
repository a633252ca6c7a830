// Package asset carries the visualization side of the vehicle: geometric
// primitives attached to bodies, triangle meshes loaded from Wavefront OBJ
// files, and a POV-Ray style mesh export sink. Nothing here feeds back into
// the simulation.
package asset

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/groundsim/vehicle/internal/physics"
)

// Shape is a primitive attached to a body for rendering.
type Shape interface {
	shapeName() string
}

// Cylinder is used for spindles, links and axle tubes.
type Cylinder struct {
	Radius float64
	Length float64
}

func (Cylinder) shapeName() string { return "cylinder" }

// Sphere marks point bodies such as uprights.
type Sphere struct {
	Radius float64
}

func (Sphere) shapeName() string { return "sphere" }

// Box renders the chassis envelope.
type Box struct {
	Size mgl64.Vec3
}

func (Box) shapeName() string { return "box" }

// TriangleMesh is a loaded render mesh.
type TriangleMesh struct {
	Name     string
	Vertices []mgl64.Vec3
	// vertex indices, three per face
	Faces [][3]int
}

// Registry maps bodies to their attached shapes and meshes. Attachment is
// append-only; a body may carry several shapes.
type Registry struct {
	shapes map[physics.BodyID][]Shape
	meshes map[physics.BodyID]*TriangleMesh
}

func NewRegistry() *Registry {
	return &Registry{
		shapes: make(map[physics.BodyID][]Shape),
		meshes: make(map[physics.BodyID]*TriangleMesh),
	}
}

// Attach adds a primitive to a body.
func (r *Registry) Attach(body physics.BodyID, s Shape) {
	r.shapes[body] = append(r.shapes[body], s)
}

// AttachMesh binds a loaded mesh to a body, replacing any previous mesh.
func (r *Registry) AttachMesh(body physics.BodyID, m *TriangleMesh) {
	r.meshes[body] = m
}

// Shapes returns the primitives attached to a body.
func (r *Registry) Shapes(body physics.BodyID) []Shape { return r.shapes[body] }

// Mesh returns the mesh attached to a body, or nil.
func (r *Registry) Mesh(body physics.BodyID) *TriangleMesh { return r.meshes[body] }

// LoadMesh reads a Wavefront OBJ file, keeping vertex positions and
// triangular faces and ignoring everything else. A failure is reported to
// the caller so vehicle construction can continue without the mesh.
func LoadMesh(path, name string) (*TriangleMesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("asset: open mesh %s: %w", path, err)
	}
	defer f.Close()

	mesh := &TriangleMesh{Name: name}
	sc := bufio.NewScanner(f)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				return nil, fmt.Errorf("asset: %s:%d: short vertex line", path, lineNo)
			}
			var v mgl64.Vec3
			for i := 0; i < 3; i++ {
				v[i], err = strconv.ParseFloat(fields[i+1], 64)
				if err != nil {
					return nil, fmt.Errorf("asset: %s:%d: %w", path, lineNo, err)
				}
			}
			mesh.Vertices = append(mesh.Vertices, v)
		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("asset: %s:%d: short face line", path, lineNo)
			}
			var face [3]int
			for i := 0; i < 3; i++ {
				// faces may carry texture/normal refs after a slash
				idxStr, _, _ := strings.Cut(fields[i+1], "/")
				idx, err := strconv.Atoi(idxStr)
				if err != nil {
					return nil, fmt.Errorf("asset: %s:%d: %w", path, lineNo, err)
				}
				// OBJ indices are one-based
				face[i] = idx - 1
			}
			mesh.Faces = append(mesh.Faces, face)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("asset: read mesh %s: %w", path, err)
	}
	if len(mesh.Vertices) == 0 {
		return nil, fmt.Errorf("asset: mesh %s has no vertices", path)
	}
	return mesh, nil
}

// ExportMeshPovray writes the mesh as a POV-Ray mesh2 macro named after the
// mesh, into outDir. Purely a side-effect sink.
func ExportMeshPovray(mesh *TriangleMesh, outDir string) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("asset: %w", err)
	}
	path := filepath.Join(outDir, mesh.Name+".inc")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("asset: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "#macro %s()\nmesh2 {\n", mesh.Name)
	fmt.Fprintf(w, "vertex_vectors {\n%d,\n", len(mesh.Vertices))
	for _, v := range mesh.Vertices {
		fmt.Fprintf(w, "<%g, %g, %g>,\n", v.X(), v.Y(), v.Z())
	}
	fmt.Fprint(w, "}\n")
	fmt.Fprintf(w, "face_indices {\n%d,\n", len(mesh.Faces))
	for _, fc := range mesh.Faces {
		fmt.Fprintf(w, "<%d, %d, %d>,\n", fc[0], fc[1], fc[2])
	}
	fmt.Fprint(w, "}\n}\n#end\n")

	if err := w.Flush(); err != nil {
		return fmt.Errorf("asset: write %s: %w", path, err)
	}
	return nil
}
