package tetcut

import "github.com/unixpickle/model3d/model3d"

// An EdgeIntersection records where the cutting surface crossed an edge.
//
// Edge keeps the endpoints in their registered order, with the vertex on the
// mesh side of the cut first. T is the parametric coordinate along that
// orientation, so the intersection point is at (1-T)*Edge[0] + T*Edge[1].
// It must not be re-derived from the canonical edge ordering.
type EdgeIntersection struct {
	Edge  [2]int
	T     float64
	Point model3d.Coord3D
}

// A registry tracks which vertices were duplicated and which edges were
// intersected during a single cutting pass. It owns two append-only arrays,
// the duplicated vertices and the registered intersections, plus the lookup
// maps into them. Duplication is idempotent per vertex: asking twice for the
// same vertex never creates a second duplicate.
type registry struct {
	positions  []model3d.Coord3D
	velocities []model3d.Coord3D
	masses     []float64

	dupPositions  []model3d.Coord3D
	dupVelocities []model3d.Coord3D
	dupMasses     []float64
	dupOf         map[int]int
	origOf        map[int]int

	intersections []EdgeIntersection
	byEdge        map[Edge]int
}

func newRegistry(positions, velocities []model3d.Coord3D, masses []float64) *registry {
	return &registry{
		positions:  positions,
		velocities: velocities,
		masses:     masses,
		dupOf:      map[int]int{},
		origOf:     map[int]int{},
		byEdge:     map[Edge]int{},
	}
}

// duplicateOf returns the duplicate id for an original vertex, creating the
// duplicate on first use. The duplicate copies the origin's position,
// velocity and mass and receives the next free vertex id.
func (r *registry) duplicateOf(v int) int {
	if dup, ok := r.dupOf[v]; ok {
		return dup
	}
	dup := len(r.positions) + len(r.dupPositions)
	r.dupPositions = append(r.dupPositions, r.positions[v])
	r.dupVelocities = append(r.dupVelocities, r.velocities[v])
	r.dupMasses = append(r.dupMasses, r.masses[v])
	r.dupOf[v] = dup
	r.origOf[dup] = v
	return dup
}

// position resolves a vertex id to a position, handling both original and
// duplicated ids.
func (r *registry) position(v int) model3d.Coord3D {
	if v < len(r.positions) {
		return r.positions[v]
	}
	return r.dupPositions[v-len(r.positions)]
}

// numVertices is the total vertex count including duplicates. Intersection
// vertex ids are assigned starting at this value once discovery is done.
func (r *registry) numVertices() int {
	return len(r.positions) + len(r.dupPositions)
}

// registerIntersection records an intersection of the edge (i, j) at
// parameter t with world-space point p, and returns its stable index.
// The (i, j) order is preserved so t keeps its meaning.
func (r *registry) registerIntersection(i, j int, t float64, p model3d.Coord3D) int {
	vid := len(r.intersections)
	r.intersections = append(r.intersections, EdgeIntersection{
		Edge:  [2]int{i, j},
		T:     t,
		Point: p,
	})
	r.byEdge[NewEdge(i, j)] = vid
	return vid
}

// lookupIntersection finds the intersection registered for a canonical edge.
func (r *registry) lookupIntersection(e Edge) (int, bool) {
	vid, ok := r.byEdge[e]
	return vid, ok
}
