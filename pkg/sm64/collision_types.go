package sm64

import "fmt"

// TerrainType selects the footstep/particle set for a whole area.
type TerrainType uint16

// Terrain type constants.
const (
	TerrainGrass  TerrainType = 0x0000
	TerrainStone  TerrainType = 0x0001
	TerrainSnow   TerrainType = 0x0002
	TerrainSand   TerrainType = 0x0003
	TerrainSpooky TerrainType = 0x0004
	TerrainWater  TerrainType = 0x0005
	TerrainSlide  TerrainType = 0x0006
)

// String returns a human-readable terrain name.
func (t TerrainType) String() string {
	switch t {
	case TerrainGrass:
		return "Grass"
	case TerrainStone:
		return "Stone"
	case TerrainSnow:
		return "Snow"
	case TerrainSand:
		return "Sand"
	case TerrainSpooky:
		return "Spooky"
	case TerrainWater:
		return "Water"
	case TerrainSlide:
		return "Slide"
	default:
		return fmt.Sprintf("Unknown(%d)", uint16(t))
	}
}

// SurfaceType classifies a single collision triangle.
type SurfaceType int16

// Surface type constants.
const (
	SurfaceDefault          SurfaceType = 0x0000 // Environment default
	SurfaceBurning          SurfaceType = 0x0001 // Lava, or frostbite in snow levels
	SurfaceHangable         SurfaceType = 0x0005 // Ceiling Mario can climb on
	SurfaceSlow             SurfaceType = 0x0009 // Slows Mario down
	SurfaceVerySlippery     SurfaceType = 0x0013 // Mostly used for slides
	SurfaceSlippery         SurfaceType = 0x0014
	SurfaceNotSlippery      SurfaceType = 0x0015 // Non-slippery, climbable
	SurfaceShallowQuicksand SurfaceType = 0x0021 // Depth of 10 units
	SurfaceDeepQuicksand    SurfaceType = 0x0022 // Lethal, slow, depth of 160 units
	SurfaceInstantQuicksand SurfaceType = 0x0023 // Lethal, instant
	SurfaceIce              SurfaceType = 0x002E
	SurfaceHard             SurfaceType = 0x0030 // Always has fall damage
	SurfaceHardSlippery     SurfaceType = 0x0035
	SurfaceHardVerySlippery SurfaceType = 0x0036
	SurfaceHardNotSlippery  SurfaceType = 0x0037
	SurfaceVerticalWind     SurfaceType = 0x0038 // Death at bottom with vertical wind
)

// terrainNames maps the annotation strings carried by scene area roots.
var terrainNames = map[string]TerrainType{
	"TERRAIN_GRASS":  TerrainGrass,
	"TERRAIN_STONE":  TerrainStone,
	"TERRAIN_SNOW":   TerrainSnow,
	"TERRAIN_SAND":   TerrainSand,
	"TERRAIN_SPOOKY": TerrainSpooky,
	"TERRAIN_WATER":  TerrainWater,
	"TERRAIN_SLIDE":  TerrainSlide,
}

// surfaceNames maps the annotation strings carried by scene materials.
var surfaceNames = map[string]SurfaceType{
	"SURFACE_DEFAULT":            SurfaceDefault,
	"SURFACE_BURNING":            SurfaceBurning,
	"SURFACE_HANGABLE":           SurfaceHangable,
	"SURFACE_SLOW":               SurfaceSlow,
	"SURFACE_VERY_SLIPPERY":      SurfaceVerySlippery,
	"SURFACE_SLIPPERY":           SurfaceSlippery,
	"SURFACE_NOT_SLIPPERY":       SurfaceNotSlippery,
	"SURFACE_SHALLOW_QUICKSAND":  SurfaceShallowQuicksand,
	"SURFACE_DEEP_QUICKSAND":     SurfaceDeepQuicksand,
	"SURFACE_INSTANT_QUICKSAND":  SurfaceInstantQuicksand,
	"SURFACE_ICE":                SurfaceIce,
	"SURFACE_HARD":               SurfaceHard,
	"SURFACE_HARD_SLIPPERY":      SurfaceHardSlippery,
	"SURFACE_HARD_VERY_SLIPPERY": SurfaceHardVerySlippery,
	"SURFACE_HARD_NOT_SLIPPERY":  SurfaceHardNotSlippery,
	"SURFACE_VERTICAL_WIND":      SurfaceVerticalWind,
}

// TerrainByName resolves an area-root terrain annotation string.
func TerrainByName(name string) (TerrainType, bool) {
	t, ok := terrainNames[name]
	return t, ok
}

// SurfaceByName resolves a material collision annotation string.
func SurfaceByName(name string) (SurfaceType, bool) {
	s, ok := surfaceNames[name]
	return s, ok
}
