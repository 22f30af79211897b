package tetcut

import (
	"bytes"
	"log"
	"os"
	"strings"
	"testing"

	"github.com/unixpickle/model3d/model3d"
)

func TestAddTetrahedronInverted(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	body := NewSoftBody()
	body.AddParticle(model3d.XYZ(0, 0, 0), model3d.Origin, 1.0)
	body.AddParticle(model3d.XYZ(1, 0, 0), model3d.Origin, 1.0)
	body.AddParticle(model3d.XYZ(0, 1, 0), model3d.Origin, 1.0)
	body.AddParticle(model3d.XYZ(0, 0, 1), model3d.Origin, 1.0)

	// Swapping two vertices flips the orientation.
	volume := body.AddTetrahedron(0, 2, 1, 3, 1e3, 1e3, 0)
	if volume >= 0 {
		t.Fatalf("expected a negative volume but got %f", volume)
	}
	if len(body.Tets) != 0 {
		t.Fatal("inverted element should not be added")
	}
	if !strings.Contains(buf.String(), "inverted tetrahedral element") {
		t.Errorf("expected a rejection diagnostic, got %q", buf.String())
	}

	buf.Reset()
	if v := body.AddTetrahedron(0, 1, 2, 3, 1e3, 1e3, 0); v <= 0 {
		t.Fatalf("expected a positive volume but got %f", v)
	}
	if len(body.Tets) != 1 {
		t.Fatal("well-oriented element should be added")
	}
	if buf.Len() != 0 {
		t.Errorf("unexpected diagnostic: %q", buf.String())
	}
}
