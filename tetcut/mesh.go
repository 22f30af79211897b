package tetcut

import (
	"log"

	"github.com/unixpickle/model3d/model3d"
)

// A SoftBody is a tetrahedral FEM solid: per-particle state, tetrahedral
// elements with their rest poses and material parameters, and the boundary
// triangle set.
//
// A cutting pass mutates the body in place: it appends duplicated particles,
// overwrites and appends tetrahedra, and removes boundary triangles that
// were retriangulated. Everything else about the body is plain data.
type SoftBody struct {
	Positions  []model3d.Coord3D
	Velocities []model3d.Coord3D
	Masses     []float64

	Tets       [][4]int
	TetPoses   []model3d.Matrix3
	TetMu      []float64
	TetLambda  []float64
	TetDamping []float64

	Tris [][3]int

	// ContactExempt marks particles excluded from general contact
	// generation. Duplicated particles start exempt because they coincide
	// with their twins until the cut springs break.
	ContactExempt map[int]bool

	cut bool
}

// NewSoftBody returns an empty soft body.
func NewSoftBody() *SoftBody {
	return &SoftBody{ContactExempt: map[int]bool{}}
}

// AddParticle appends a particle and returns its id.
func (b *SoftBody) AddParticle(pos, vel model3d.Coord3D, mass float64) int {
	id := len(b.Positions)
	b.Positions = append(b.Positions, pos)
	b.Velocities = append(b.Velocities, vel)
	b.Masses = append(b.Masses, mass)
	return id
}

// AddTetrahedron appends a tetrahedral element between four particles with
// the given Lame parameters and damping, and returns its signed rest
// volume. The rest pose is the inverse of the edge basis at the particles'
// current positions. Elements with non-positive volume are inverted and are
// not added.
func (b *SoftBody) AddTetrahedron(i, j, k, l int, mu, lambda, damping float64) float64 {
	p := b.Positions[i]
	basis := model3d.NewMatrix3Columns(
		b.Positions[j].Sub(p),
		b.Positions[k].Sub(p),
		b.Positions[l].Sub(p),
	)
	volume := basis.Det() / 6.0
	if volume <= 0 {
		log.Printf("inverted tetrahedral element (%d, %d, %d, %d)", i, j, k, l)
		return volume
	}
	b.Tets = append(b.Tets, [4]int{i, j, k, l})
	b.TetPoses = append(b.TetPoses, *basis.Inverse())
	b.TetMu = append(b.TetMu, mu)
	b.TetLambda = append(b.TetLambda, lambda)
	b.TetDamping = append(b.TetDamping, damping)
	return volume
}

// AddTriangle appends a boundary triangle between three particles.
func (b *SoftBody) AddTriangle(i, j, k int) {
	b.Tris = append(b.Tris, [3]int{i, j, k})
}

// TetVolume computes the current volume of the tetrahedron with the given
// id from its particle positions.
func (b *SoftBody) TetVolume(id int) float64 {
	tet := b.Tets[id]
	p := b.Positions[tet[0]]
	return model3d.NewMatrix3Columns(
		b.Positions[tet[1]].Sub(p),
		b.Positions[tet[2]].Sub(p),
		b.Positions[tet[3]].Sub(p),
	).Det() / 6.0
}

// copyTet appends a new tetrahedron with the given vertices and the rest
// pose and material parameters copied from the tetrahedron id. The original
// element's identity is preserved across a split this way: the original
// slot keeps the rest pose, and the appended slot receives a copy.
func (b *SoftBody) copyTet(id int, verts [4]int) int {
	newID := len(b.Tets)
	b.Tets = append(b.Tets, verts)
	b.TetPoses = append(b.TetPoses, b.TetPoses[id])
	b.TetMu = append(b.TetMu, b.TetMu[id])
	b.TetLambda = append(b.TetLambda, b.TetLambda[id])
	b.TetDamping = append(b.TetDamping, b.TetDamping[id])
	return newID
}
