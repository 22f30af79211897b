package tetcut

import "github.com/unixpickle/model3d/model3d"

// segmentTriangleHit intersects the segment from p0 to p1 with a triangle
// using the Möller-Trumbore algorithm. On a hit it returns the parameter t
// such that the intersection point is p0.Add(p1.Sub(p0).Scale(t)).
//
// Near-parallel segments (|det| <= tol) and intersections whose barycentric
// coordinates fall outside [-tol, 1+tol] report no hit, so the test is total
// and never needs to signal a numeric failure.
func segmentTriangleHit(p0, p1 model3d.Coord3D, tri *model3d.Triangle, tol float64) (float64, bool) {
	edge1 := tri[1].Sub(tri[0])
	edge2 := tri[2].Sub(tri[0])
	dir := p1.Sub(p0)
	h := dir.Cross(edge2)
	a := edge1.Dot(h)
	if a > -tol && a < tol {
		// Segment is parallel to the triangle plane.
		return 0, false
	}
	f := 1.0 / a
	s := p0.Sub(tri[0])
	u := f * s.Dot(h)
	if u < -tol || u > 1.0+tol {
		return 0, false
	}
	q := s.Cross(edge1)
	v := f * dir.Dot(q)
	if v < -tol || u+v > 1.0+tol {
		return 0, false
	}
	t := f * edge2.Dot(q)
	if t < -tol || t > 1.0+tol {
		return 0, false
	}
	return t, true
}

// pointAbove reports which side of tri's plane the point lies on, using the
// sign of the volume spanned by the triangle's edge basis and the point.
//
// The triangle orientation here is the same one triangleNormal uses, so
// above/below labels stay consistent with emitted cut-spring normals.
func pointAbove(point model3d.Coord3D, tri *model3d.Triangle) bool {
	return triangleNormal(tri).Dot(point.Sub(tri[0])) > 0
}

// triangleNormal is the unnormalized normal of tri in its given winding.
func triangleNormal(tri *model3d.Triangle) model3d.Coord3D {
	return tri[1].Sub(tri[0]).Cross(tri[2].Sub(tri[0]))
}

func rawNormal(p0, p1, p2 model3d.Coord3D) model3d.Coord3D {
	return p1.Sub(p0).Cross(p2.Sub(p0))
}

// segmentInBounds checks whether the axis-aligned bounding box of the
// segment from p0 to p1 overlaps the box spanned by min and max.
func segmentInBounds(p0, p1, min, max model3d.Coord3D) bool {
	lo := p0.Min(p1)
	hi := p0.Max(p1)
	return hi.X >= min.X && max.X >= lo.X &&
		hi.Y >= min.Y && max.Y >= lo.Y &&
		hi.Z >= min.Z && max.Z >= lo.Z
}

// triangleBounds computes the joint bounding box of a set of triangles.
func triangleBounds(tris []*model3d.Triangle) (min, max model3d.Coord3D) {
	min = tris[0].Min()
	max = tris[0].Max()
	for _, t := range tris[1:] {
		min = min.Min(t.Min())
		max = max.Max(t.Max())
	}
	return
}
