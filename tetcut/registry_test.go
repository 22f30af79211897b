package tetcut

import (
	"testing"

	"github.com/unixpickle/model3d/model3d"
)

func TestRegistryDuplicateIdempotence(t *testing.T) {
	positions := []model3d.Coord3D{
		model3d.XYZ(0, 0, 0),
		model3d.XYZ(1, 0, 0),
		model3d.XYZ(0, 1, 0),
	}
	velocities := []model3d.Coord3D{
		model3d.XYZ(0, 0, 1),
		model3d.XYZ(0, 0, 2),
		model3d.XYZ(0, 0, 3),
	}
	masses := []float64{1, 2, 3}
	reg := newRegistry(positions, velocities, masses)

	d1 := reg.duplicateOf(1)
	if d1 != 3 {
		t.Fatalf("first duplicate should get id 3 but got %d", d1)
	}
	for i := 0; i < 5; i++ {
		if got := reg.duplicateOf(1); got != d1 {
			t.Fatalf("repeated duplication returned %d, want %d", got, d1)
		}
	}
	if reg.numVertices() != 4 {
		t.Fatalf("only one duplicate should exist, have %d vertices", reg.numVertices())
	}

	d0 := reg.duplicateOf(0)
	if d0 != 4 {
		t.Fatalf("second duplicate should get id 4 but got %d", d0)
	}

	// Duplicates inherit state from their origin.
	if reg.position(d1) != positions[1] {
		t.Error("duplicate should copy its origin's position")
	}
	if reg.dupVelocities[0] != velocities[1] || reg.dupMasses[0] != masses[1] {
		t.Error("duplicate should copy velocity and mass")
	}
	if reg.origOf[d1] != 1 || reg.origOf[d0] != 0 {
		t.Error("reverse map should point back at the origins")
	}
}

func TestRegistryIntersections(t *testing.T) {
	positions := []model3d.Coord3D{model3d.XYZ(0, 0, 0), model3d.XYZ(1, 0, 0)}
	velocities := make([]model3d.Coord3D, 2)
	masses := []float64{1, 1}
	reg := newRegistry(positions, velocities, masses)

	p := model3d.XYZ(0.25, 0, 0)
	vid := reg.registerIntersection(1, 0, 0.75, p)
	if vid != 0 {
		t.Fatalf("first intersection should get index 0 but got %d", vid)
	}

	// The registered endpoint order and parameter survive as-is.
	in := reg.intersections[vid]
	if in.Edge != [2]int{1, 0} || in.T != 0.75 || in.Point != p {
		t.Errorf("intersection record was altered: %+v", in)
	}

	// Lookup goes through the canonical edge.
	if got, ok := reg.lookupIntersection(NewEdge(0, 1)); !ok || got != vid {
		t.Errorf("lookup failed: %d %v", got, ok)
	}
	if _, ok := reg.lookupIntersection(NewEdge(0, 9)); ok {
		t.Error("unexpected intersection")
	}
}
