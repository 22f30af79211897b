package tetcut

import (
	"encoding/binary"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/unixpickle/model3d/model3d"
	"golang.org/x/exp/slices"
)

// WriteCutResult serializes r in a little-endian binary format.
func WriteCutResult(w io.Writer, r *CutResult) error {
	counts := []int64{
		int64(r.VertexOffset),
		int64(len(r.DuplicateOf)),
		int64(len(r.Intersections)),
		int64(len(r.Springs)),
		int64(len(r.Triangles)),
		int64(len(r.Edges)),
	}
	if err := binary.Write(w, binary.LittleEndian, counts); err != nil {
		return errors.Wrap(err, "write cut result")
	}

	dups := make([]int64, 0, len(r.DuplicateOf)*2)
	keys := make([]int, 0, len(r.DuplicateOf))
	for dup := range r.DuplicateOf {
		keys = append(keys, dup)
	}
	slices.Sort(keys)
	for _, dup := range keys {
		dups = append(dups, int64(dup), int64(r.DuplicateOf[dup]))
	}
	if err := binary.Write(w, binary.LittleEndian, dups); err != nil {
		return errors.Wrap(err, "write cut result")
	}

	for _, in := range r.Intersections {
		ints := []int64{int64(in.Edge[0]), int64(in.Edge[1])}
		floats := []float64{in.T, in.Point.X, in.Point.Y, in.Point.Z}
		if err := writeRecord(w, ints, floats); err != nil {
			return errors.Wrap(err, "write cut result")
		}
	}
	for _, s := range r.Springs {
		surface := int64(0)
		if s.Surface {
			surface = 1
		}
		ints := []int64{int64(s.Verts[0]), int64(s.Verts[1]), surface}
		floats := []float64{
			s.Normal.X, s.Normal.Y, s.Normal.Z,
			s.Stiffness, s.Damping, s.RestLength, s.Softness,
			s.Contact.Ke, s.Contact.Kd, s.Contact.Kf, s.Contact.Mu,
		}
		if err := writeRecord(w, ints, floats); err != nil {
			return errors.Wrap(err, "write cut result")
		}
	}
	for _, tri := range r.Triangles {
		flags := int64(0)
		if tri.Above {
			flags |= 1
		}
		if tri.VirtualOnly {
			flags |= 2
		}
		ints := []int64{int64(tri.Verts[0]), int64(tri.Verts[1]), int64(tri.Verts[2]), flags}
		if err := writeRecord(w, ints, nil); err != nil {
			return errors.Wrap(err, "write cut result")
		}
	}
	edges := make([]int64, 0, len(r.Edges)*2)
	for _, e := range r.Edges {
		edges = append(edges, int64(e[0]), int64(e[1]))
	}
	if err := binary.Write(w, binary.LittleEndian, edges); err != nil {
		return errors.Wrap(err, "write cut result")
	}

	stats := []int64{
		int64(r.Stats.CandidateEdges),
		int64(r.Stats.CutEdges),
		int64(r.Stats.SplitTets),
		int64(r.Stats.PartialTets),
		int64(r.Stats.DegenerateTriangles),
		int64(r.Stats.BoundaryTrisRemoved),
		int64(r.Stats.UnresolvedEdges),
	}
	if err := binary.Write(w, binary.LittleEndian, stats); err != nil {
		return errors.Wrap(err, "write cut result")
	}
	return nil
}

// maxRecordCount bounds the per-section record counts in a serialized cut
// result, so a corrupt header cannot trigger an enormous allocation.
const maxRecordCount = 1 << 32

// ReadCutResult reads the output written by WriteCutResult.
func ReadCutResult(r io.Reader) (*CutResult, error) {
	var counts [6]int64
	if err := binary.Read(r, binary.LittleEndian, &counts); err != nil {
		return nil, errors.Wrap(err, "read cut result")
	}
	for _, c := range counts {
		if c < 0 || c > maxRecordCount {
			return nil, errors.Errorf("read cut result: invalid record count %d", c)
		}
	}
	res := &CutResult{
		VertexOffset: int(counts[0]),
		DuplicateOf:  make(map[int]int, counts[1]),
	}

	dups := make([]int64, counts[1]*2)
	if err := binary.Read(r, binary.LittleEndian, dups); err != nil {
		return nil, errors.Wrap(err, "read cut result")
	}
	for i := 0; i < len(dups); i += 2 {
		res.DuplicateOf[int(dups[i])] = int(dups[i+1])
	}

	for i := int64(0); i < counts[2]; i++ {
		ints := make([]int64, 2)
		floats := make([]float64, 4)
		if err := readRecord(r, ints, floats); err != nil {
			return nil, errors.Wrap(err, "read cut result")
		}
		res.Intersections = append(res.Intersections, EdgeIntersection{
			Edge:  [2]int{int(ints[0]), int(ints[1])},
			T:     floats[0],
			Point: model3d.XYZ(floats[1], floats[2], floats[3]),
		})
	}
	for i := int64(0); i < counts[3]; i++ {
		ints := make([]int64, 3)
		floats := make([]float64, 11)
		if err := readRecord(r, ints, floats); err != nil {
			return nil, errors.Wrap(err, "read cut result")
		}
		res.Springs = append(res.Springs, CutSpring{
			Verts:   [2]int{int(ints[0]), int(ints[1])},
			Surface: ints[2] != 0,
			Normal:  model3d.XYZ(floats[0], floats[1], floats[2]),
			SpringMaterial: SpringMaterial{
				Stiffness:  floats[3],
				Damping:    floats[4],
				RestLength: floats[5],
				Softness:   floats[6],
			},
			Contact: ContactMaterial{Ke: floats[7], Kd: floats[8], Kf: floats[9], Mu: floats[10]},
		})
	}
	for i := int64(0); i < counts[4]; i++ {
		ints := make([]int64, 4)
		if err := readRecord(r, ints, nil); err != nil {
			return nil, errors.Wrap(err, "read cut result")
		}
		res.Triangles = append(res.Triangles, CutTriangle{
			Verts:       [3]int{int(ints[0]), int(ints[1]), int(ints[2])},
			Above:       ints[3]&1 != 0,
			VirtualOnly: ints[3]&2 != 0,
		})
	}

	edges := make([]int64, counts[5]*2)
	if err := binary.Read(r, binary.LittleEndian, edges); err != nil {
		return nil, errors.Wrap(err, "read cut result")
	}
	for i := 0; i < len(edges); i += 2 {
		res.Edges = append(res.Edges, Edge{int(edges[i]), int(edges[i+1])})
	}

	var stats [7]int64
	if err := binary.Read(r, binary.LittleEndian, &stats); err != nil {
		return nil, errors.Wrap(err, "read cut result")
	}
	res.Stats = CutStats{
		CandidateEdges:      int(stats[0]),
		CutEdges:            int(stats[1]),
		SplitTets:           int(stats[2]),
		PartialTets:         int(stats[3]),
		DegenerateTriangles: int(stats[4]),
		BoundaryTrisRemoved: int(stats[5]),
		UnresolvedEdges:     int(stats[6]),
	}
	return res, nil
}

func writeRecord(w io.Writer, ints []int64, floats []float64) error {
	if len(ints) > 0 {
		if err := binary.Write(w, binary.LittleEndian, ints); err != nil {
			return err
		}
	}
	if len(floats) > 0 {
		if err := binary.Write(w, binary.LittleEndian, floats); err != nil {
			return err
		}
	}
	return nil
}

func readRecord(r io.Reader, ints []int64, floats []float64) error {
	if len(ints) > 0 {
		if err := binary.Read(r, binary.LittleEndian, ints); err != nil {
			return err
		}
	}
	if len(floats) > 0 {
		if err := binary.Read(r, binary.LittleEndian, floats); err != nil {
			return err
		}
	}
	return nil
}

// Save writes a value to a file using the given writer function.
func Save[T any](path string, value T, fn func(io.Writer, T) error) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "save")
	}
	if err := fn(f, value); err != nil {
		f.Close()
		return err
	}
	return errors.Wrap(f.Close(), "save")
}

// Load reads a value from a file using the given reader function.
func Load[T any](path string, fn func(io.Reader) (T, error)) (T, error) {
	f, err := os.Open(path)
	if err != nil {
		var zero T
		return zero, errors.Wrap(err, "load")
	}
	defer f.Close()
	return fn(f)
}
