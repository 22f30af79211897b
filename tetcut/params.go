package tetcut

// A SpringMaterial parameterizes the cohesive springs of one cut class.
type SpringMaterial struct {
	Stiffness  float64
	Damping    float64
	RestLength float64
	Softness   float64
}

// A ContactMaterial parameterizes knife contact for one cut class.
type ContactMaterial struct {
	Ke float64
	Kd float64
	Kf float64
	Mu float64
}

// CutParams configures a cutting pass. Interior parameters apply to springs
// on edges inside the solid, Surface parameters to springs on edges that lie
// on the rim of the boundary surface.
type CutParams struct {
	Interior        SpringMaterial
	Surface         SpringMaterial
	InteriorContact ContactMaterial
	SurfaceContact  ContactMaterial

	// Tolerance is the slack allowed in the segment/triangle test, both for
	// the parallelism determinant and the barycentric range.
	Tolerance float64

	// Verbose logs every edge intersection and tetrahedron split.
	Verbose bool
}

// DefaultCutParams returns the stock material parameters for both spring
// classes.
func DefaultCutParams() CutParams {
	return CutParams{
		Interior:        SpringMaterial{Stiffness: 100, Damping: 10, RestLength: 0, Softness: 0.1},
		Surface:         SpringMaterial{Stiffness: 100, Damping: 10, RestLength: 0, Softness: 0.1},
		InteriorContact: ContactMaterial{Ke: 1e3, Kd: 10, Kf: 0.1, Mu: 0.5},
		SurfaceContact:  ContactMaterial{Ke: 1e3, Kd: 10, Kf: 0.1, Mu: 0.5},
		Tolerance:       1e-8,
	}
}
