package tetcut

import (
	"golang.org/x/exp/slices"
)

// An Edge is an unordered pair of vertex ids, normalized so that the lower
// id comes first. It is the hash key for all adjacency maps.
type Edge [2]int

// NewEdge builds the canonical edge for the pair (i, j).
func NewEdge(i, j int) Edge {
	if j < i {
		i, j = j, i
	}
	return Edge{i, j}
}

func edgeLess(a, b Edge) bool {
	if a[0] != b[0] {
		return a[0] < b[0]
	}
	return a[1] < b[1]
}

// tetEdges lists the six canonical edges of a tetrahedron.
func tetEdges(tet [4]int) [6]Edge {
	return [6]Edge{
		NewEdge(tet[0], tet[1]),
		NewEdge(tet[0], tet[2]),
		NewEdge(tet[0], tet[3]),
		NewEdge(tet[1], tet[2]),
		NewEdge(tet[1], tet[3]),
		NewEdge(tet[2], tet[3]),
	}
}

// TetFaces lists the four triangular faces of a tetrahedron in a fixed
// winding convention, the same one the soft-body builders use for open
// faces. Because the convention only depends on vertex positions within the
// tetrahedron, corresponding faces of the above and below variants of a
// split tetrahedron line up index by index.
func TetFaces(tet [4]int) [4][3]int {
	i, j, k, l := tet[0], tet[1], tet[2], tet[3]
	return [4][3]int{
		{i, k, j},
		{j, k, l},
		{i, j, l},
		{i, l, k},
	}
}

// canonicalFace sorts a face's vertex ids so that any winding of the same
// three vertices maps to the same key.
func canonicalFace(f [3]int) [3]int {
	if f[1] < f[0] {
		f[0], f[1] = f[1], f[0]
	}
	if f[2] < f[1] {
		f[1], f[2] = f[2], f[1]
	}
	if f[1] < f[0] {
		f[0], f[1] = f[1], f[0]
	}
	return f
}

func sortFaces(faces [][3]int) {
	slices.SortFunc(faces, func(a, b [3]int) bool {
		if a[0] != b[0] {
			return a[0] < b[0]
		}
		if a[1] != b[1] {
			return a[1] < b[1]
		}
		return a[2] < b[2]
	})
}

// Topology holds edge adjacency for a tetrahedral mesh with a boundary
// triangle set. It is built in a single pass over the tetrahedra and is not
// updated afterwards; the cutting pass builds it once before mutating the
// mesh.
type Topology struct {
	edgeTets map[Edge][]int
	edgeTris map[Edge][]int
	triIndex map[[3]int]int
	edges    []Edge
}

// NewTopology indexes the edges of the given tetrahedra and boundary
// triangles.
func NewTopology(tets [][4]int, tris [][3]int) *Topology {
	top := &Topology{
		edgeTets: map[Edge][]int{},
		edgeTris: map[Edge][]int{},
		triIndex: map[[3]int]int{},
	}
	for ti, tet := range tets {
		for _, e := range tetEdges(tet) {
			if _, ok := top.edgeTets[e]; !ok {
				top.edges = append(top.edges, e)
			}
			top.edgeTets[e] = append(top.edgeTets[e], ti)
		}
	}
	for ti, tri := range tris {
		top.triIndex[canonicalFace(tri)] = ti
		for i := 0; i < 3; i++ {
			e := NewEdge(tri[i], tri[(i+1)%3])
			top.edgeTris[e] = append(top.edgeTris[e], ti)
		}
	}
	slices.SortFunc(top.edges, edgeLess)
	return top
}

// TetsOnEdge returns the ids of the tetrahedra incident to e. The returned
// slice is owned by the topology and must not be modified.
func (t *Topology) TetsOnEdge(e Edge) []int {
	return t.edgeTets[e]
}

// IsBoundaryEdge reports whether e is incident to exactly one boundary
// triangle, i.e. lies on the rim of the boundary surface.
func (t *Topology) IsBoundaryEdge(e Edge) bool {
	return len(t.edgeTris[e]) == 1
}

// IterateEdges calls f once for every unique edge, in ascending id order.
// The order is deterministic, so repeated passes over the same mesh visit
// edges identically.
func (t *Topology) IterateEdges(f func(Edge)) {
	for _, e := range t.edges {
		f(e)
	}
}

// IterateBoundaryEdges is like IterateEdges but only visits boundary edges.
func (t *Topology) IterateBoundaryEdges(f func(Edge)) {
	for _, e := range t.edges {
		if t.IsBoundaryEdge(e) {
			f(e)
		}
	}
}

// BoundaryTriangle looks up the boundary triangle spanning the given face,
// regardless of winding.
func (t *Topology) BoundaryTriangle(face [3]int) (int, bool) {
	ti, ok := t.triIndex[canonicalFace(face)]
	return ti, ok
}

// NumEdges returns the number of unique edges in the mesh.
func (t *Topology) NumEdges() int {
	return len(t.edges)
}
