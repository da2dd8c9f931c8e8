package scene

import (
	"errors"
	"fmt"
	gomath "math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/softquake/sm64bridge/pkg/math"
)

// Loader errors.
var (
	ErrUnknownParent   = errors.New("object references unknown parent")
	ErrBadVertexIndex  = errors.New("triangle references vertex out of range")
	ErrBadMaterialSlot = errors.New("triangle references material out of range")
)

// fileObject is the YAML shape of one scene object.
type fileObject struct {
	Name     string `yaml:"name"`
	Parent   string `yaml:"parent"`
	AreaRoot bool   `yaml:"area_root"`
	Terrain  string `yaml:"terrain"`

	Translate []float32 `yaml:"translate"`
	RotateDeg []float32 `yaml:"rotate_deg"` // XYZ euler, degrees
	Scale     []float32 `yaml:"scale"`

	Mesh *fileMesh `yaml:"mesh"`
}

type fileMesh struct {
	Vertices  [][]float32    `yaml:"vertices"`
	Triangles []fileTriangle `yaml:"triangles"`
	Materials []fileMaterial `yaml:"materials"`
}

type fileTriangle struct {
	Verts    [3]int `yaml:"verts"`
	Material int    `yaml:"material"`
}

type fileMaterial struct {
	Name      string `yaml:"name"`
	Collision string `yaml:"collision"`
}

type fileScene struct {
	Objects []fileObject `yaml:"objects"`
}

// LoadFile reads a YAML scene description. The format mirrors the minimum
// the extractor needs from a real host scene: hierarchy, per-object TRS
// transforms, triangulated meshes, and annotations.
func LoadFile(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading scene from %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a YAML scene description.
func Parse(data []byte) (*Scene, error) {
	var fs fileScene
	if err := yaml.Unmarshal(data, &fs); err != nil {
		return nil, fmt.Errorf("parsing scene: %w", err)
	}

	s := &Scene{}
	byName := make(map[string]*Object, len(fs.Objects))

	for _, fo := range fs.Objects {
		obj := &Object{
			Name:      fo.Name,
			Transform: localTransform(fo),
			AreaRoot:  fo.AreaRoot,
			Terrain:   fo.Terrain,
		}
		if fo.Mesh != nil {
			mesh, err := buildMesh(fo.Name, fo.Mesh)
			if err != nil {
				return nil, err
			}
			obj.Mesh = mesh
		}
		s.Objects = append(s.Objects, obj)
		byName[obj.Name] = obj
	}

	// Second pass: resolve parents and compose world transforms.
	for i, fo := range fs.Objects {
		if fo.Parent == "" {
			continue
		}
		parent, ok := byName[fo.Parent]
		if !ok {
			return nil, fmt.Errorf("object %q: %w: %q", fo.Name, ErrUnknownParent, fo.Parent)
		}
		s.Objects[i].Parent = parent
	}
	locals := make(map[*Object]math.Mat4, len(s.Objects))
	for _, obj := range s.Objects {
		locals[obj] = obj.Transform
	}
	for _, obj := range s.Objects {
		obj.Transform = worldTransform(obj, locals)
	}

	return s, nil
}

func buildMesh(objName string, fm *fileMesh) (*Mesh, error) {
	mesh := &Mesh{}
	for _, v := range fm.Vertices {
		var p math.Vec3
		if len(v) > 0 {
			p.X = v[0]
		}
		if len(v) > 1 {
			p.Y = v[1]
		}
		if len(v) > 2 {
			p.Z = v[2]
		}
		mesh.Vertices = append(mesh.Vertices, p)
	}
	for _, m := range fm.Materials {
		mesh.Materials = append(mesh.Materials, Material{Name: m.Name, CollisionType: m.Collision})
	}
	for _, ft := range fm.Triangles {
		for _, vi := range ft.Verts {
			if vi < 0 || vi >= len(mesh.Vertices) {
				return nil, fmt.Errorf("object %q: %w: %d", objName, ErrBadVertexIndex, vi)
			}
		}
		if ft.Material < 0 || (ft.Material > 0 && ft.Material >= len(mesh.Materials)) {
			return nil, fmt.Errorf("object %q: %w: %d", objName, ErrBadMaterialSlot, ft.Material)
		}
		mesh.Triangles = append(mesh.Triangles, Triangle{Verts: ft.Verts, MaterialIndex: ft.Material})
	}
	return mesh, nil
}

// localTransform composes the object's TRS transform (applied scale
// first, then rotation, then translation).
func localTransform(fo fileObject) math.Mat4 {
	m := math.Identity()
	if len(fo.Scale) == 3 {
		m = math.Scale(fo.Scale[0], fo.Scale[1], fo.Scale[2]).Mul(m)
	}
	if len(fo.RotateDeg) == 3 {
		m = math.RotateX(radians(fo.RotateDeg[0])).Mul(m)
		m = math.RotateY(radians(fo.RotateDeg[1])).Mul(m)
		m = math.RotateZ(radians(fo.RotateDeg[2])).Mul(m)
	}
	if len(fo.Translate) == 3 {
		m = math.Translate(fo.Translate[0], fo.Translate[1], fo.Translate[2]).Mul(m)
	}
	return m
}

// worldTransform walks the parent chain composing local transforms.
func worldTransform(obj *Object, locals map[*Object]math.Mat4) math.Mat4 {
	m := locals[obj]
	for p := obj.Parent; p != nil; p = p.Parent {
		m = locals[p].Mul(m)
	}
	return m
}

func radians(deg float32) float32 {
	return deg * (gomath.Pi / 180.0)
}
