package tetcut

import (
	"github.com/pkg/errors"
	"github.com/unixpickle/model3d/model3d"
)

// ErrPolygonArity is returned when a cut polygon ends up with a vertex count
// that the tetrahedral face structure cannot produce. It indicates a caller
// bug, not bad input data.
var ErrPolygonArity = errors.New("cut polygon must have 3 or 4 vertices")

// A polygon is the small ordered loop of vertices collected while walking
// the edges of a cut tetrahedron's face. Face structure bounds its size at
// four vertices, so it is a fixed-capacity list rather than a map. Adding an
// id that is already present keeps the first occurrence.
type polygon struct {
	ids    [4]int
	points [4]model3d.Coord3D
	size   int
	total  int
}

func (p *polygon) add(id int, point model3d.Coord3D) {
	for i := 0; i < p.size; i++ {
		if p.ids[i] == id {
			return
		}
	}
	p.total++
	if p.size == len(p.ids) {
		// Overflow is reported by triangulatePolygon.
		return
	}
	p.ids[p.size] = id
	p.points[p.size] = point
	p.size++
}

// triangulatePolygon turns a 3- or 4-vertex polygon into one or two
// triangles whose windings agree with ref, and passes each to emit. An empty
// polygon emits nothing. A 4-vertex polygon is split along the diagonal
// whose two triangles are both non-reflex, so a bow-tie pair is never
// produced.
//
// Triangles whose unnormalized normal has magnitude at most tol are emitted
// as-is and tallied in the returned degenerate count; they are an accepted
// limitation of the pass, not an error.
func triangulatePolygon(p *polygon, ref model3d.Coord3D, tol float64,
	emit func(ids [3]int, points [3]model3d.Coord3D)) (degenerate int, err error) {
	if p.total == 0 {
		return 0, nil
	}
	if p.total != 3 && p.total != 4 {
		return 0, errors.Wrapf(ErrPolygonArity, "got %d vertices", p.total)
	}
	emitOriented := func(i0, i1, i2 int) {
		ids := [3]int{p.ids[i0], p.ids[i1], p.ids[i2]}
		pts := [3]model3d.Coord3D{p.points[i0], p.points[i1], p.points[i2]}
		normal := rawNormal(pts[0], pts[1], pts[2])
		if normal.Norm() <= tol {
			degenerate++
		}
		if normal.Dot(ref) <= 0 {
			ids[0], ids[2] = ids[2], ids[0]
			pts[0], pts[2] = pts[2], pts[0]
		}
		emit(ids, pts)
	}
	if p.size == 3 {
		emitOriented(0, 1, 2)
		return degenerate, nil
	}

	// Three candidate diagonal splits of the quad:
	//   1. (0, 1, 2) and (0, 2, 3)
	//   2. (0, 1, 2) and (0, 1, 3)
	//   3. (0, 1, 3) and (0, 2, 3)
	v1 := p.points[1].Sub(p.points[0])
	v2 := p.points[2].Sub(p.points[0])
	v3 := p.points[3].Sub(p.points[0])
	if v2.Cross(v3).Dot(v1.Cross(v2)) > 0 {
		emitOriented(0, 1, 2)
		emitOriented(0, 2, 3)
	} else if v1.Cross(v2).Dot(v3.Cross(v1)) > 0 {
		emitOriented(0, 1, 2)
		emitOriented(0, 1, 3)
	} else {
		emitOriented(0, 1, 3)
		emitOriented(0, 2, 3)
	}
	return degenerate, nil
}
