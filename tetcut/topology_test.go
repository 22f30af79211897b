package tetcut

import (
	"reflect"
	"testing"
)

func TestTetFacesConvention(t *testing.T) {
	tet := [4]int{7, 3, 9, 5}
	faces := TetFaces(tet)

	// Every vertex appears in exactly three faces.
	counts := map[int]int{}
	for _, f := range faces {
		for _, v := range f {
			counts[v]++
		}
	}
	for _, v := range tet {
		if counts[v] != 3 {
			t.Errorf("vertex %d appears in %d faces", v, counts[v])
		}
	}

	// The convention is positional: substituting vertices produces faces
	// that line up index by index.
	sub := [4]int{70, 30, 90, 50}
	subFaces := TetFaces(sub)
	for i, f := range faces {
		for j, v := range f {
			if subFaces[i][j] != v*10 {
				t.Fatalf("face %d does not follow vertex substitution", i)
			}
		}
	}
}

func TestTopologySingleTet(t *testing.T) {
	tets := [][4]int{{0, 1, 2, 3}}
	var tris [][3]int
	for _, f := range TetFaces(tets[0]) {
		tris = append(tris, f)
	}
	top := NewTopology(tets, tris)

	if top.NumEdges() != 6 {
		t.Fatalf("expected 6 edges but got %d", top.NumEdges())
	}
	top.IterateEdges(func(e Edge) {
		if len(top.TetsOnEdge(e)) != 1 {
			t.Errorf("edge %v should touch exactly one tet", e)
		}
		// Every edge of a closed tet surface lies on two faces, so none of
		// them is a boundary edge.
		if top.IsBoundaryEdge(e) {
			t.Errorf("edge %v should not be a boundary edge", e)
		}
	})

	for _, f := range TetFaces(tets[0]) {
		if _, ok := top.BoundaryTriangle(f); !ok {
			t.Errorf("face %v should be a boundary triangle", f)
		}
		reversed := [3]int{f[2], f[1], f[0]}
		if _, ok := top.BoundaryTriangle(reversed); !ok {
			t.Errorf("lookup of %v should ignore winding", reversed)
		}
	}
	if _, ok := top.BoundaryTriangle([3]int{0, 1, 9}); ok {
		t.Error("unexpected boundary triangle")
	}
}

func TestTopologyOpenSheetBoundary(t *testing.T) {
	// A single registered triangle leaves all three of its edges on the
	// boundary rim.
	tets := [][4]int{{0, 1, 2, 3}}
	tris := [][3]int{{0, 2, 1}}
	top := NewTopology(tets, tris)

	var boundary []Edge
	top.IterateBoundaryEdges(func(e Edge) {
		boundary = append(boundary, e)
	})
	want := []Edge{{0, 1}, {0, 2}, {1, 2}}
	if !reflect.DeepEqual(boundary, want) {
		t.Errorf("expected boundary edges %v but got %v", want, boundary)
	}

	// The sequence is restartable.
	var again []Edge
	top.IterateBoundaryEdges(func(e Edge) {
		again = append(again, e)
	})
	if !reflect.DeepEqual(boundary, again) {
		t.Error("restarted iteration should yield the same edges")
	}
}

func TestTopologySharedFace(t *testing.T) {
	tets := [][4]int{{0, 1, 2, 3}, {0, 2, 1, 4}}
	top := NewTopology(tets, nil)

	shared := []Edge{NewEdge(0, 1), NewEdge(0, 2), NewEdge(1, 2)}
	for _, e := range shared {
		if got := top.TetsOnEdge(e); !reflect.DeepEqual(got, []int{0, 1}) {
			t.Errorf("edge %v should touch tets [0 1] but got %v", e, got)
		}
	}
	if got := top.TetsOnEdge(NewEdge(0, 3)); !reflect.DeepEqual(got, []int{0}) {
		t.Errorf("edge (0,3) should touch tet 0 only, got %v", got)
	}
	if got := top.TetsOnEdge(NewEdge(3, 4)); len(got) != 0 {
		t.Errorf("edge (3,4) does not exist, got %v", got)
	}
}

func TestNewEdgeCanonical(t *testing.T) {
	if NewEdge(5, 2) != NewEdge(2, 5) {
		t.Error("edge ordering should be normalized")
	}
	if NewEdge(2, 5) != (Edge{2, 5}) {
		t.Error("lower id should come first")
	}
}
