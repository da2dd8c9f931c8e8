// surfdump is a CLI utility for inspecting collision extracted from
// scene files, without loading the engine.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/softquake/sm64bridge/internal/collision"
	"github.com/softquake/sm64bridge/internal/scene"
	"github.com/softquake/sm64bridge/pkg/math"
	"github.com/softquake/sm64bridge/pkg/sm64"
)

var flagScale = flag.Float64("scale", sm64.DefaultScale, "Engine units per host unit")

func main() {
	flag.Parse()
	args := flag.Args()

	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	command := args[0]
	args = args[1:]

	switch command {
	case "info":
		cmdInfo(args)
	case "dump":
		cmdDump(args)
	case "encode":
		cmdEncode(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`surfdump - collision surface inspection utility

Usage:
  surfdump [-scale N] <command> [options]

Commands:
  info <scene.yaml>                 Show extraction summary
  dump <scene.yaml>                 Print every extracted surface
  encode <scene.yaml> <out.bin>     Write the encoded surface block

Examples:
  surfdump info level.yaml
  surfdump -scale 100 dump level.yaml
  surfdump encode level.yaml surfaces.bin`)
}

func extract(path string) collision.Result {
	scn, err := scene.LoadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return collision.Extract(scn, math.Vec3{}, float32(*flagScale))
}

func cmdInfo(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: surfdump info <scene.yaml>")
		os.Exit(1)
	}

	res := extract(args[0])

	byTerrain := make(map[sm64.TerrainType]int)
	byType := make(map[sm64.SurfaceType]int)
	for _, s := range res.Surfaces {
		byTerrain[sm64.TerrainType(s.Terrain)]++
		byType[sm64.SurfaceType(s.Type)]++
	}

	fmt.Printf("Scene:     %s\n", args[0])
	fmt.Printf("Scale:     %g\n", *flagScale)
	fmt.Printf("Surfaces:  %d\n", len(res.Surfaces))
	fmt.Printf("Dropped:   %d\n", res.Dropped)
	fmt.Printf("Encoded:   %d bytes\n", len(res.Surfaces)*sm64.SurfaceSize)
	fmt.Println()

	fmt.Println("By terrain:")
	for terrain, n := range byTerrain {
		fmt.Printf("  %-8s %d\n", terrain, n)
	}
	fmt.Println("By surface type:")
	for typ, n := range byType {
		fmt.Printf("  0x%04X   %d\n", uint16(typ), n)
	}
}

func cmdDump(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: surfdump dump <scene.yaml>")
		os.Exit(1)
	}

	res := extract(args[0])

	for i, s := range res.Surfaces {
		fmt.Printf("%5d  type=0x%04X terrain=%s  (%6d %6d %6d) (%6d %6d %6d) (%6d %6d %6d)\n",
			i, uint16(s.Type), sm64.TerrainType(s.Terrain),
			s.V0X, s.V0Y, s.V0Z,
			s.V1X, s.V1Y, s.V1Z,
			s.V2X, s.V2Y, s.V2Z)
	}
	if res.Dropped > 0 {
		fmt.Printf("%d triangle(s) outside the coordinate range were dropped\n", res.Dropped)
	}
}

func cmdEncode(args []string) {
	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: surfdump encode <scene.yaml> <out.bin>")
		os.Exit(1)
	}

	res := extract(args[0])
	data := sm64.EncodeSurfaces(res.Surfaces)

	if err := os.WriteFile(args[1], data, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %d surfaces (%d bytes) to %s\n", len(res.Surfaces), len(data), args[1])
}
