package tetcut

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/unixpickle/model3d/model3d"
)

func collectTriangles(p *polygon, ref model3d.Coord3D, t *testing.T) [][3]model3d.Coord3D {
	var out [][3]model3d.Coord3D
	_, err := triangulatePolygon(p, ref, 1e-8, func(_ [3]int, pts [3]model3d.Coord3D) {
		out = append(out, pts)
	})
	if err != nil {
		t.Fatal(err)
	}
	return out
}

func TestTriangulateWinding(t *testing.T) {
	var p polygon
	p.add(0, model3d.XYZ(0, 0, 0))
	p.add(1, model3d.XYZ(1, 0, 0))
	p.add(2, model3d.XYZ(0, 1, 0))

	up := model3d.Z(1)
	for _, ref := range []model3d.Coord3D{up, up.Scale(-1)} {
		tris := collectTriangles(&p, ref, t)
		if len(tris) != 1 {
			t.Fatalf("expected 1 triangle but got %d", len(tris))
		}
		n := rawNormal(tris[0][0], tris[0][1], tris[0][2])
		if n.Dot(ref) <= 0 {
			t.Errorf("triangle normal %v disagrees with reference %v", n, ref)
		}
	}
}

func TestTriangulateQuad(t *testing.T) {
	// A unit square, deliberately in an order that walks the perimeter.
	var p polygon
	p.add(0, model3d.XYZ(0, 0, 0))
	p.add(1, model3d.XYZ(1, 0, 0))
	p.add(2, model3d.XYZ(1, 1, 0))
	p.add(3, model3d.XYZ(0, 1, 0))

	ref := model3d.Z(1)
	tris := collectTriangles(&p, ref, t)
	if len(tris) != 2 {
		t.Fatalf("expected 2 triangles but got %d", len(tris))
	}
	area := 0.0
	for _, tri := range tris {
		n := rawNormal(tri[0], tri[1], tri[2])
		if n.Dot(ref) <= 0 {
			t.Errorf("triangle normal %v disagrees with reference", n)
		}
		area += n.Norm() / 2
	}
	// Both diagonal choices cover the square exactly once; a bow-tie pair
	// would cover less.
	if math.Abs(area-1.0) > 1e-9 {
		t.Errorf("expected total area 1 but got %f", area)
	}
}

func TestTriangulateNonConvexQuad(t *testing.T) {
	// A dart shape: the diagonal through the reflex vertex would produce a
	// self-intersecting pair.
	var p polygon
	p.add(0, model3d.XYZ(0, 0, 0))
	p.add(1, model3d.XYZ(2, 1, 0))
	p.add(2, model3d.XYZ(0.5, 0.5, 0))
	p.add(3, model3d.XYZ(1, 2, 0))

	ref := model3d.Z(1)
	tris := collectTriangles(&p, ref, t)
	if len(tris) != 2 {
		t.Fatalf("expected 2 triangles but got %d", len(tris))
	}
	total := 0.0
	for _, tri := range tris {
		total += rawNormal(tri[0], tri[1], tri[2]).Norm() / 2
	}
	// The non-reflex split tiles the dart exactly; area is a proxy for no
	// overlap.
	want := 0.5
	if math.Abs(total-want) > 1e-9 {
		t.Errorf("expected area %f but got %f", want, total)
	}
}

func TestTriangulateArity(t *testing.T) {
	var p polygon
	for i := 0; i < 5; i++ {
		p.add(i, model3d.XYZ(float64(i), 0, 0))
	}
	_, err := triangulatePolygon(&p, model3d.Z(1), 1e-8, func([3]int, [3]model3d.Coord3D) {
		t.Fatal("no triangles should be emitted")
	})
	if !errors.Is(err, ErrPolygonArity) {
		t.Errorf("expected ErrPolygonArity but got %v", err)
	}

	var two polygon
	two.add(0, model3d.XYZ(0, 0, 0))
	two.add(1, model3d.XYZ(1, 0, 0))
	if _, err := triangulatePolygon(&two, model3d.Z(1), 1e-8, nil); !errors.Is(err, ErrPolygonArity) {
		t.Errorf("expected ErrPolygonArity for 2 vertices but got %v", err)
	}

	var empty polygon
	if _, err := triangulatePolygon(&empty, model3d.Z(1), 1e-8, nil); err != nil {
		t.Errorf("empty polygon should be a no-op but got %v", err)
	}
}

func TestPolygonDedup(t *testing.T) {
	var p polygon
	p.add(4, model3d.XYZ(0, 0, 0))
	p.add(5, model3d.XYZ(1, 0, 0))
	p.add(4, model3d.XYZ(9, 9, 9))
	p.add(6, model3d.XYZ(0, 1, 0))
	if p.size != 3 || p.total != 3 {
		t.Fatalf("re-adding an id should keep the first occurrence, got size %d", p.size)
	}
	if p.points[0] != model3d.XYZ(0, 0, 0) {
		t.Error("first occurrence's point should win")
	}
}

func TestTriangulateDegenerate(t *testing.T) {
	var p polygon
	p.add(0, model3d.XYZ(0, 0, 0))
	p.add(1, model3d.XYZ(1, 0, 0))
	p.add(2, model3d.XYZ(2, 0, 0))
	count := 0
	degenerate, err := triangulatePolygon(&p, model3d.Z(1), 1e-8, func([3]int, [3]model3d.Coord3D) {
		count++
	})
	if err != nil {
		t.Fatal(err)
	}
	// Collinear input is emitted as-is but tallied.
	if count != 1 || degenerate != 1 {
		t.Errorf("expected 1 emitted, 1 degenerate; got %d, %d", count, degenerate)
	}
}

func TestTriangulateSliver(t *testing.T) {
	// A sliver with a tiny but nonzero area still counts as degenerate when
	// it falls within the tolerance.
	var p polygon
	p.add(0, model3d.XYZ(0, 0, 0))
	p.add(1, model3d.XYZ(1, 0, 0))
	p.add(2, model3d.XYZ(2, 1e-12, 0))

	degenerate, err := triangulatePolygon(&p, model3d.Z(1), 1e-8, func([3]int, [3]model3d.Coord3D) {})
	if err != nil {
		t.Fatal(err)
	}
	if degenerate != 1 {
		t.Errorf("expected the sliver to be tallied, got %d", degenerate)
	}

	// The same sliver is healthy under a tighter tolerance.
	degenerate, err = triangulatePolygon(&p, model3d.Z(1), 1e-15, func([3]int, [3]model3d.Coord3D) {})
	if err != nil {
		t.Fatal(err)
	}
	if degenerate != 0 {
		t.Errorf("expected no degenerate triangles, got %d", degenerate)
	}
}
