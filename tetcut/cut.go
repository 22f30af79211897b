package tetcut

import (
	"log"

	"github.com/pkg/errors"
	"github.com/unixpickle/essentials"
	"github.com/unixpickle/model3d/model3d"
)

// ErrAlreadyCut is returned when a cutting pass is invoked on a body that
// already carries cut data. Duplicate bookkeeping assumes a pristine mesh,
// so a second pass would silently corrupt it; the caller must rebuild the
// body instead.
var ErrAlreadyCut = errors.New("soft body has already been cut")

// A CutSpring is a cohesive connector between the two intersection vertices
// an edge cut produced, one on each side of the cut. Verts holds
// intersection-vertex indices, above side first; the absolute vertex id is
// CutResult.VertexOffset plus the index.
type CutSpring struct {
	Verts   [2]int
	Normal  model3d.Coord3D
	Surface bool
	SpringMaterial
	Contact ContactMaterial
}

// A CutTriangle is part of the newly exposed cut surfaces: retriangulated
// boundary faces of split tetrahedra plus the interface polygons at the cut
// itself. VirtualOnly marks triangles whose three vertices are all newly
// created, i.e. the triangle touches no original mesh vertex.
type CutTriangle struct {
	Verts       [3]int
	Above       bool
	VirtualOnly bool
}

// CutStats summarizes the diagnostics of one pass. Partially cut tetrahedra
// and degenerate triangles are accepted limitations, reported here rather
// than as errors.
type CutStats struct {
	CandidateEdges      int
	CutEdges            int
	SplitTets           int
	PartialTets         int
	DegenerateTriangles int
	BoundaryTrisRemoved int
	UnresolvedEdges     int
}

// A CutResult holds everything a cutting pass produced beyond the in-place
// mutation of the body: the duplicate-vertex map, the edge intersections
// that define the cut vertices, the cohesive springs, the exposed cut
// triangles, and the surviving edges of the final mesh.
type CutResult struct {
	// VertexOffset is the first intersection-vertex id; ids below it are
	// body particles (originals followed by duplicates).
	VertexOffset int

	// DuplicateOf maps each duplicated particle id to its origin, so
	// downstream code can keep auxiliary per-particle attributes in sync.
	DuplicateOf map[int]int

	Intersections []EdgeIntersection
	Springs       []CutSpring
	Triangles     []CutTriangle

	// Edges lists the canonical edges of the final mesh that were not cut,
	// for downstream knife-contact generation.
	Edges []Edge

	Stats CutStats
}

// An Engine runs a cutting pass over a soft body. Implementations share the
// same input/output contract, so a natively accelerated engine can be
// substituted for the reference one transparently.
type Engine interface {
	Cut(body *SoftBody, blade []*model3d.Triangle, params CutParams) (*CutResult, error)
}

// Cutter is the reference cutting engine.
//
// The pass runs once, as a mesh-preparation step: it finds the edges the
// blade intersects, duplicates their endpoints, splits every tetrahedron
// with at least three intersected edges into an above and a below copy,
// retriangulates the boundary faces and cut interfaces of split tetrahedra,
// and emits cohesive springs across the cut. Iteration orders are fixed, so
// identical inputs produce identical outputs.
type Cutter struct{}

// Cut implements Engine.
func (c Cutter) Cut(body *SoftBody, blade []*model3d.Triangle, params CutParams) (*CutResult, error) {
	if body.cut {
		return nil, ErrAlreadyCut
	}
	if len(blade) == 0 {
		return nil, errors.New("cutting surface has no triangles")
	}

	top := NewTopology(body.Tets, body.Tris)
	reg := newRegistry(body.Positions, body.Velocities, body.Masses)
	bladeMin, bladeMax := triangleBounds(blade)

	edges := make([]Edge, 0, top.NumEdges())
	top.IterateEdges(func(e Edge) {
		edges = append(edges, e)
	})

	// Phase one: intersection discovery. Per-edge tests are independent, so
	// they run concurrently; results are applied sequentially in edge order
	// below to keep vertex and spring numbering deterministic.
	type edgeHit struct {
		hit       bool
		candidate bool
		t         float64
		tri       *model3d.Triangle
	}
	hits := make([]edgeHit, len(edges))
	essentials.ConcurrentMap(0, len(edges), func(i int) {
		e := edges[i]
		p0 := body.Positions[e[0]]
		p1 := body.Positions[e[1]]
		if !segmentInBounds(p0, p1, bladeMin, bladeMax) {
			return
		}
		hits[i].candidate = true
		for _, tri := range blade {
			// The first blade triangle hit wins; an edge crossing the
			// surface more than once is treated as a single crossing.
			if t, ok := segmentTriangleHit(p0, p1, tri, params.Tolerance); ok {
				hits[i] = edgeHit{hit: true, candidate: true, t: t, tri: tri}
				break
			}
		}
	})

	var stats CutStats
	intersectionsPerTet := map[int]int{}
	above := map[int]bool{}
	cutNormals := map[Edge]model3d.Coord3D{}
	var affected []Edge
	var springs []CutSpring

	for i, e := range edges {
		h := hits[i]
		if h.candidate {
			stats.CandidateEdges++
		}
		if !h.hit {
			continue
		}
		if params.Verbose {
			log.Printf("edge (%d,%d) intersects at t=%f", e[0], e[1], h.t)
		}
		stats.CutEdges++
		affected = append(affected, e)

		d0 := reg.duplicateOf(e[0])
		d1 := reg.duplicateOf(e[1])
		for _, ti := range top.TetsOnEdge(e) {
			intersectionsPerTet[ti]++
		}

		normal := triangleNormal(h.tri)
		cutNormals[NewEdge(e[0], d1)] = normal
		cutNormals[NewEdge(d0, e[1])] = normal

		p0 := body.Positions[e[0]]
		p1 := body.Positions[e[1]]
		point := p0.Scale(1 - h.t).Add(p1.Scale(h.t))

		// Each side of the cut gets its own intersection vertex, registered
		// with the mesh-side endpoint first so t keeps its meaning.
		var li, ri int
		if pointAbove(p0, h.tri) {
			above[e[0]] = true
			above[d0] = true
			li = reg.registerIntersection(e[0], d1, h.t, point)
			ri = reg.registerIntersection(d0, e[1], h.t, point)
		} else {
			above[e[1]] = true
			above[d1] = true
			li = reg.registerIntersection(e[1], d0, 1-h.t, point)
			ri = reg.registerIntersection(d1, e[0], 1-h.t, point)
		}

		surface := top.IsBoundaryEdge(e)
		material := params.Interior
		contact := params.InteriorContact
		if surface {
			material = params.Surface
			contact = params.SurfaceContact
		}
		springs = append(springs, CutSpring{
			Verts:          [2]int{li, ri},
			Normal:         normal.Normalize(),
			Surface:        surface,
			SpringMaterial: material,
			Contact:        contact,
		})
	}

	// Phase two: split every tetrahedron with at least three intersected
	// edges. The duplicate and intersection tables are read-only from here.
	offset := reg.numVertices()
	processed := map[int]bool{}
	removedTris := map[[3]int]bool{}
	boundaryNormals := map[[3]int]model3d.Coord3D{}
	var cutTris []CutTriangle
	var firstErr error

	emitPoly := func(poly *polygon, ref model3d.Coord3D, aboveSide bool) {
		degenerate, err := triangulatePolygon(poly, ref, params.Tolerance,
			func(ids [3]int, _ [3]model3d.Coord3D) {
				virtual := ids[0] >= offset && ids[1] >= offset && ids[2] >= offset
				cutTris = append(cutTris, CutTriangle{
					Verts:       ids,
					Above:       aboveSide,
					VirtualOnly: virtual,
				})
			})
		stats.DegenerateTriangles += degenerate
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	addPolygons := func(tet [4]int, aboveSide bool) {
		var cutPoly polygon
		var refNormal model3d.Coord3D
		for _, face := range TetFaces(tet) {
			var poly polygon
			for i := 0; i < 3; i++ {
				a, b := face[i], face[(i+1)%3]
				eid := NewEdge(a, b)
				if n, ok := cutNormals[eid]; ok {
					refNormal = n
				}
				aboveA := above[a]
				aboveB := above[b]
				if !aboveSide {
					aboveA, aboveB = !aboveA, !aboveB
				}
				switch {
				case !aboveA && !aboveB:
				case aboveA && aboveB:
					poly.add(a, reg.position(a))
					poly.add(b, reg.position(b))
				default:
					vid, isCut := reg.lookupIntersection(eid)
					if !isCut {
						// A mixed edge with no recorded intersection; keep
						// both endpoints and carry on.
						stats.UnresolvedEdges++
						if params.Verbose {
							log.Printf("no intersection information for edge (%d,%d)", a, b)
						}
						poly.add(a, reg.position(a))
						poly.add(b, reg.position(b))
						continue
					}
					point := reg.intersections[vid].Point
					if aboveA {
						poly.add(a, reg.position(a))
						poly.add(offset+vid, point)
					} else {
						poly.add(offset+vid, point)
						poly.add(b, reg.position(b))
					}
					cutPoly.add(offset+vid, point)
				}
			}
			if n, ok := boundaryNormals[face]; ok {
				emitPoly(&poly, n, aboveSide)
			}
		}
		if !aboveSide {
			refNormal = refNormal.Scale(-1)
		}
		emitPoly(&cutPoly, refNormal, aboveSide)
	}

	for _, e := range affected {
		for _, ti := range top.TetsOnEdge(e) {
			if processed[ti] {
				continue
			}
			processed[ti] = true
			if intersectionsPerTet[ti] < 3 {
				// A partial cut is left unresolved.
				stats.PartialTets++
				continue
			}

			tet := body.Tets[ti]
			var tetAbove, tetBelow [4]int
			for vi, v := range tet {
				if above[v] {
					tetAbove[vi] = v
					tetBelow[vi] = reg.dupOf[v]
				} else if dup, ok := reg.dupOf[v]; ok {
					tetAbove[vi] = dup
					tetBelow[vi] = v
				} else {
					// The vertex lies on no intersected edge, so it was
					// never classified; keep it on both sides.
					tetAbove[vi] = v
					tetBelow[vi] = v
				}
			}

			// Boundary faces of the split tetrahedron no longer exist in
			// their original form. Remove them and remember their pre-cut
			// normals as retriangulation references.
			origFaces := TetFaces(tet)
			aboveFaces := TetFaces(tetAbove)
			belowFaces := TetFaces(tetBelow)
			for fi := range origFaces {
				triID, ok := top.BoundaryTriangle(origFaces[fi])
				if !ok {
					continue
				}
				removedTris[canonicalFace(origFaces[fi])] = true
				tri := body.Tris[triID]
				n := rawNormal(body.Positions[tri[0]], body.Positions[tri[1]], body.Positions[tri[2]])
				boundaryNormals[aboveFaces[fi]] = n
				boundaryNormals[belowFaces[fi]] = n
			}

			if params.Verbose {
				log.Printf("split tet %d: above %v, below %v", ti, tetAbove, tetBelow)
			}
			body.Tets[ti] = tetAbove
			belowID := body.copyTet(ti, tetBelow)
			processed[belowID] = true
			stats.SplitTets++

			addPolygons(tetAbove, true)
			addPolygons(tetBelow, false)
		}
	}
	if firstErr != nil {
		return nil, firstErr
	}

	// Merge the registry's appended vertices into the body and mark the
	// duplicates contact-exempt. Bodies built as struct literals may carry a
	// nil exemption map.
	if body.ContactExempt == nil {
		body.ContactExempt = map[int]bool{}
	}
	body.Positions = append(body.Positions, reg.dupPositions...)
	body.Velocities = append(body.Velocities, reg.dupVelocities...)
	body.Masses = append(body.Masses, reg.dupMasses...)
	duplicateOf := make(map[int]int, len(reg.origOf))
	for dup, orig := range reg.origOf {
		duplicateOf[dup] = orig
		body.ContactExempt[dup] = true
	}

	// Drop the boundary triangles that were retriangulated.
	stats.BoundaryTrisRemoved = len(removedTris)
	kept := make([][3]int, 0, len(body.Tris))
	for _, tri := range body.Tris {
		if !removedTris[canonicalFace(tri)] {
			kept = append(kept, tri)
		}
	}
	body.Tris = kept

	// Uncut edges of the final mesh. Cut edges show up as mixed
	// original/duplicate pairs here, which are exactly the registered
	// intersection keys.
	finalTop := NewTopology(body.Tets, body.Tris)
	remaining := make([]Edge, 0, finalTop.NumEdges())
	finalTop.IterateEdges(func(e Edge) {
		if _, ok := reg.lookupIntersection(e); !ok {
			remaining = append(remaining, e)
		}
	})

	if len(reg.intersections) > 0 {
		body.cut = true
	}
	if params.Verbose {
		log.Printf("cut summary: %d cut edges, %d split tets, %d partial tets, "+
			"%d springs, %d cut triangles, %d duplicates",
			stats.CutEdges, stats.SplitTets, stats.PartialTets,
			len(springs), len(cutTris), len(duplicateOf))
	}

	return &CutResult{
		VertexOffset:  offset,
		DuplicateOf:   duplicateOf,
		Intersections: reg.intersections,
		Springs:       springs,
		Triangles:     cutTris,
		Edges:         remaining,
		Stats:         stats,
	}, nil
}

// Cut runs the reference engine over the body.
func Cut(body *SoftBody, blade []*model3d.Triangle, params CutParams) (*CutResult, error) {
	return Cutter{}.Cut(body, blade, params)
}
