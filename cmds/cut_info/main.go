package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/fracmesh/tet-cut/tetcut"
	"github.com/unixpickle/essentials"
)

func main() {
	flag.Parse()
	if len(flag.Args()) != 1 {
		fmt.Fprintln(os.Stderr, "Usage: cut_info <result.bin>")
		os.Exit(1)
	}

	result, err := tetcut.Load(flag.Args()[0], tetcut.ReadCutResult)
	essentials.Must(err)

	interior := 0
	for _, s := range result.Springs {
		if !s.Surface {
			interior++
		}
	}
	above, below, virtual := 0, 0, 0
	for _, t := range result.Triangles {
		if t.Above {
			above++
		} else {
			below++
		}
		if t.VirtualOnly {
			virtual++
		}
	}

	fmt.Println("Vertex offset:       ", result.VertexOffset)
	fmt.Println("Duplicated vertices: ", len(result.DuplicateOf))
	fmt.Println("Edge intersections:  ", len(result.Intersections))
	fmt.Printf("Cut springs:          %d (%d interior, %d surface)\n",
		len(result.Springs), interior, len(result.Springs)-interior)
	fmt.Printf("Cut triangles:        %d (%d above, %d below, %d virtual-only)\n",
		len(result.Triangles), above, below, virtual)
	fmt.Println("Remaining edges:     ", len(result.Edges))
	fmt.Printf("Stats:                %+v\n", result.Stats)
}
