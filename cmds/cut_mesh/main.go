package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/fracmesh/tet-cut/tetcut"
	"github.com/unixpickle/essentials"
	"github.com/unixpickle/model3d/model3d"
	"gopkg.in/gcfg.v1"
)

// MeshFile is the JSON tet-soup input format: vertex positions plus a flat
// index list with four entries per tetrahedron.
type MeshFile struct {
	Vertices [][3]float64 `json:"vertices"`
	Indices  []int        `json:"indices"`
}

// MaterialConfig mirrors the INI sections of the -materials file.
type MaterialConfig struct {
	Interior        tetcut.SpringMaterial
	Surface         tetcut.SpringMaterial
	InteriorContact tetcut.ContactMaterial
	SurfaceContact  tetcut.ContactMaterial
}

func main() {
	var meshPath string
	var materialsPath string
	var summaryPath string
	var gridX, gridY, gridZ int
	var cellSize float64
	var density float64
	var kMu, kLambda, kDamp float64
	var tolerance float64
	var verbose bool
	flag.StringVar(&meshPath, "mesh", "", "JSON tetrahedral mesh to cut (default: generated grid)")
	flag.StringVar(&materialsPath, "materials", "", "INI file with cut material parameters")
	flag.StringVar(&summaryPath, "summary", "", "optional JSON summary output path")
	flag.IntVar(&gridX, "grid-x", 2, "grid cells along the x-axis")
	flag.IntVar(&gridY, "grid-y", 2, "grid cells along the y-axis")
	flag.IntVar(&gridZ, "grid-z", 2, "grid cells along the z-axis")
	flag.Float64Var(&cellSize, "cell-size", 1.0, "grid cell size")
	flag.Float64Var(&density, "density", 1000.0, "particle density")
	flag.Float64Var(&kMu, "mu", 1e3, "first Lame parameter")
	flag.Float64Var(&kLambda, "lambda", 1e3, "second Lame parameter")
	flag.Float64Var(&kDamp, "damping", 0.0, "element damping")
	flag.Float64Var(&tolerance, "tolerance", 1e-8, "geometric tolerance of the triangle test")
	flag.BoolVar(&verbose, "verbose", false, "log every edge intersection and split")
	flag.Parse()

	args := flag.Args()
	if len(args) != 2 {
		fmt.Fprintln(os.Stderr, "Usage: cut_mesh [flags] <blade.stl> <output.bin>")
		fmt.Fprintln(os.Stderr)
		flag.PrintDefaults()
		os.Exit(1)
	}
	bladePath, outputPath := args[0], args[1]

	log.Println("Building soft body...")
	body := tetcut.NewSoftBody()
	if meshPath == "" {
		body.AddSoftGrid(tetcut.GridOptions{
			DimX: gridX, DimY: gridY, DimZ: gridZ,
			CellX: cellSize, CellY: cellSize, CellZ: cellSize,
			Density: density, Mu: kMu, Lambda: kLambda, Damping: kDamp,
		})
	} else {
		f, err := os.Open(meshPath)
		essentials.Must(err)
		var mesh MeshFile
		err = json.NewDecoder(f).Decode(&mesh)
		f.Close()
		essentials.Must(err)
		verts := make([]model3d.Coord3D, len(mesh.Vertices))
		for i, v := range mesh.Vertices {
			verts[i] = model3d.XYZ(v[0], v[1], v[2])
		}
		body.AddSoftMesh(model3d.Origin, model3d.Origin, 1.0, verts, mesh.Indices,
			density, kMu, kLambda, kDamp)
	}
	log.Printf(" => %d particles, %d tets, %d boundary triangles",
		len(body.Positions), len(body.Tets), len(body.Tris))

	log.Println("Reading blade...")
	blade, err := tetcut.Load(bladePath, model3d.ReadSTL)
	essentials.Must(err)

	params := tetcut.DefaultCutParams()
	params.Tolerance = tolerance
	params.Verbose = verbose
	if materialsPath != "" {
		var config MaterialConfig
		essentials.Must(gcfg.ReadFileInto(&config, materialsPath))
		params.Interior = config.Interior
		params.Surface = config.Surface
		params.InteriorContact = config.InteriorContact
		params.SurfaceContact = config.SurfaceContact
	}

	log.Println("Cutting...")
	result, err := tetcut.Cut(body, blade, params)
	essentials.Must(err)
	log.Printf(" => %d cut edges, %d split tets, %d partial tets",
		result.Stats.CutEdges, result.Stats.SplitTets, result.Stats.PartialTets)
	log.Printf(" => %d springs, %d cut triangles, %d duplicated particles",
		len(result.Springs), len(result.Triangles), len(result.DuplicateOf))
	if result.Stats.DegenerateTriangles > 0 {
		log.Printf(" => %d degenerate cut triangles", result.Stats.DegenerateTriangles)
	}

	log.Println("Writing output...")
	essentials.Must(tetcut.Save(outputPath, result, tetcut.WriteCutResult))

	if summaryPath != "" {
		surface := 0
		for _, s := range result.Springs {
			if s.Surface {
				surface++
			}
		}
		summary := map[string]interface{}{
			"particles":  len(body.Positions),
			"tets":       len(body.Tets),
			"tris":       len(body.Tris),
			"duplicates": len(result.DuplicateOf),
			"springs":    len(result.Springs),
			"surface":    surface,
			"triangles":  len(result.Triangles),
			"stats":      result.Stats,
		}
		f, err := os.Create(summaryPath)
		essentials.Must(err)
		enc := json.NewEncoder(f)
		enc.SetIndent("", "  ")
		essentials.Must(enc.Encode(summary))
		essentials.Must(f.Close())
	}
}
