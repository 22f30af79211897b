package tetcut

import "github.com/unixpickle/model3d/model3d"

// GridOptions configures AddSoftGrid.
type GridOptions struct {
	Pos model3d.Coord3D
	Vel model3d.Coord3D

	// Rot, when non-nil, rotates the grid around its origin.
	Rot *model3d.Matrix3

	DimX, DimY, DimZ    int
	CellX, CellY, CellZ float64

	Density float64
	Mu      float64
	Lambda  float64
	Damping float64

	// Pinned particles get zero mass (kinematic).
	FixLeft, FixRight, FixTop, FixBottom bool
}

// AddSoftGrid creates a rectangular tetrahedral FEM grid. Each hexahedral
// cell is decomposed into five tetrahedra, with mirrored decompositions in
// a checkerboard pattern so neighboring cells share diagonals. Faces that
// appear in exactly one tetrahedron become boundary triangles.
func (b *SoftBody) AddSoftGrid(opts GridOptions) {
	startVertex := len(b.Positions)
	mass := opts.CellX * opts.CellY * opts.CellZ * opts.Density

	for z := 0; z <= opts.DimZ; z++ {
		for y := 0; y <= opts.DimY; y++ {
			for x := 0; x <= opts.DimX; x++ {
				v := model3d.XYZ(float64(x)*opts.CellX, float64(y)*opts.CellY, float64(z)*opts.CellZ)
				m := mass
				if opts.FixLeft && x == 0 {
					m = 0
				}
				if opts.FixRight && x == opts.DimX {
					m = 0
				}
				if opts.FixTop && y == opts.DimY {
					m = 0
				}
				if opts.FixBottom && y == 0 {
					m = 0
				}
				if opts.Rot != nil {
					v = opts.Rot.MulColumn(v)
				}
				b.AddParticle(v.Add(opts.Pos), opts.Vel, m)
			}
		}
	}

	// Interior faces appear twice and cancel; the survivors are the
	// boundary surface.
	openFaces := map[[3]int][3]int{}
	addFace := func(i, j, k int) {
		key := canonicalFace([3]int{i, j, k})
		if _, ok := openFaces[key]; ok {
			delete(openFaces, key)
		} else {
			openFaces[key] = [3]int{i, j, k}
		}
	}
	addTet := func(i, j, k, l int) {
		b.AddTetrahedron(i, j, k, l, opts.Mu, opts.Lambda, opts.Damping)
		addFace(i, k, j)
		addFace(j, k, l)
		addFace(i, j, l)
		addFace(i, l, k)
	}
	gridIndex := func(x, y, z int) int {
		return startVertex + (opts.DimX+1)*(opts.DimY+1)*z + (opts.DimX+1)*y + x
	}

	for z := 0; z < opts.DimZ; z++ {
		for y := 0; y < opts.DimY; y++ {
			for x := 0; x < opts.DimX; x++ {
				v0 := gridIndex(x, y, z)
				v1 := gridIndex(x+1, y, z)
				v2 := gridIndex(x+1, y, z+1)
				v3 := gridIndex(x, y, z+1)
				v4 := gridIndex(x, y+1, z)
				v5 := gridIndex(x+1, y+1, z)
				v6 := gridIndex(x+1, y+1, z+1)
				v7 := gridIndex(x, y+1, z+1)

				if (x&1)^(y&1)^(z&1) != 0 {
					addTet(v0, v1, v4, v3)
					addTet(v2, v3, v6, v1)
					addTet(v5, v4, v1, v6)
					addTet(v7, v6, v3, v4)
					addTet(v4, v1, v6, v3)
				} else {
					addTet(v1, v2, v5, v0)
					addTet(v3, v0, v7, v2)
					addTet(v4, v7, v0, v5)
					addTet(v6, v5, v2, v7)
					addTet(v5, v2, v7, v0)
				}
			}
		}
	}

	// Iterate faces in a deterministic order for reproducible meshes.
	keys := make([][3]int, 0, len(openFaces))
	for key := range openFaces {
		keys = append(keys, key)
	}
	sortFaces(keys)
	for _, key := range keys {
		f := openFaces[key]
		b.AddTriangle(f[0], f[1], f[2])
	}
}

// AddSoftMesh creates a soft body from a tetrahedral mesh given as a flat
// index list, four entries per element. Each particle receives a quarter of
// the density-weighted volume of every tetrahedron it belongs to, and open
// faces become boundary triangles.
func (b *SoftBody) AddSoftMesh(pos, vel model3d.Coord3D, scale float64,
	vertices []model3d.Coord3D, indices []int,
	density, mu, lambda, damping float64) {
	startVertex := len(b.Positions)

	for _, v := range vertices {
		b.AddParticle(v.Scale(scale).Add(pos), vel, 0)
	}

	openFaces := map[[3]int][3]int{}
	addFace := func(i, j, k int) {
		key := canonicalFace([3]int{i, j, k})
		if _, ok := openFaces[key]; ok {
			delete(openFaces, key)
		} else {
			openFaces[key] = [3]int{i, j, k}
		}
	}

	for t := 0; t < len(indices)/4; t++ {
		v0 := startVertex + indices[t*4]
		v1 := startVertex + indices[t*4+1]
		v2 := startVertex + indices[t*4+2]
		v3 := startVertex + indices[t*4+3]
		volume := b.AddTetrahedron(v0, v1, v2, v3, mu, lambda, damping)
		if volume <= 0 {
			continue
		}
		share := density * volume / 4.0
		b.Masses[v0] += share
		b.Masses[v1] += share
		b.Masses[v2] += share
		b.Masses[v3] += share

		addFace(v0, v2, v1)
		addFace(v1, v2, v3)
		addFace(v0, v1, v3)
		addFace(v0, v3, v2)
	}

	keys := make([][3]int, 0, len(openFaces))
	for key := range openFaces {
		keys = append(keys, key)
	}
	sortFaces(keys)
	for _, key := range keys {
		f := openFaces[key]
		b.AddTriangle(f[0], f[1], f[2])
	}
}
