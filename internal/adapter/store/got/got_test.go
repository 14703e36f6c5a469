package got

import (
	"compress/gzip"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mqquiroz/pyTMD/internal/tidemodel"
)

// writeConstituentFile builds a gzipped 3x3 grid over lon [0,2] and
// lat [50,52]. All nodes carry the given amplitude (model units) and
// phase, except node (0,0) which is filled.
func writeConstituentFile(t *testing.T, path string, amp, phase float64) {
	t.Helper()

	var b strings.Builder
	writeBlock := func(field string, v float64, fillFirst bool) {
		fmt.Fprintf(&b, "test tide model %s\n", field)
		fmt.Fprintf(&b, "constituent grid\n")
		fmt.Fprintf(&b, "   3   3\n")
		fmt.Fprintf(&b, "  50.0000  52.0000 lat limits\n")
		fmt.Fprintf(&b, "   0.0000   2.0000 lon limits\n")
		fmt.Fprintf(&b, " 99999. fill value\n")
		for j := 0; j < 3; j++ {
			row := make([]string, 3)
			for i := 0; i < 3; i++ {
				val := v
				if fillFirst && i == 0 && j == 0 {
					val = 99999.0
				}
				row[i] = fmt.Sprintf("%9.3f", val)
			}
			fmt.Fprintf(&b, "%s\n", strings.Join(row, ""))
		}
	}
	writeBlock("amplitude", amp, true)
	writeBlock("phase", phase, true)

	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	zw := gzip.NewWriter(f)
	if _, err := zw.Write([]byte(b.String())); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
}

func openTestSource(t *testing.T, scale float64) *Source {
	t.Helper()
	dir := t.TempDir()
	writeConstituentFile(t, filepath.Join(dir, "m2.d.gz"), 120.0, 30.0)
	writeConstituentFile(t, filepath.Join(dir, "s2.d.gz"), 40.0, 300.0)

	desc := tidemodel.Descriptor{
		Name:         "test-got",
		Format:       tidemodel.FormatGOT,
		CRS:          tidemodel.CRSGeographic,
		Directory:    ".",
		ModelFiles:   []string{"m2.d.gz", "s2.d.gz"},
		Constituents: []string{"m2", "s2"},
		Scale:        scale,
	}
	s, err := Open(desc, dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return s
}

func TestExtract_ScaledValues(t *testing.T) {
	s := openTestSource(t, 1.0/100.0)
	c, err := s.Extract([]float64{51.0}, []float64{1.0})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if !c.PointValid(0) {
		t.Fatal("interior point should be valid")
	}

	// 120 model units at 1/100 scale is 1.2 m.
	if math.Abs(c.Amplitude[0][0]-1.2) > 1e-9 {
		t.Errorf("m2 amplitude: got %.6f, want 1.2", c.Amplitude[0][0])
	}
	if math.Abs(c.Phase[0][0]-30.0) > 1e-9 {
		t.Errorf("m2 phase: got %.6f, want 30", c.Phase[0][0])
	}
	if math.Abs(c.Amplitude[0][1]-0.4) > 1e-9 {
		t.Errorf("s2 amplitude: got %.6f, want 0.4", c.Amplitude[0][1])
	}
	if math.Abs(c.Phase[0][1]-300.0) > 1e-9 {
		t.Errorf("s2 phase: got %.6f, want 300", c.Phase[0][1])
	}
}

func TestExtract_FilledNode(t *testing.T) {
	s := openTestSource(t, 1.0/100.0)
	// (50, 0) is the filled node itself; the surrounding corners still
	// cover it, so it stays valid. A point outside the domain does not.
	c, err := s.Extract([]float64{55.0}, []float64{1.0})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if c.PointValid(0) {
		t.Error("point outside the grid should be invalid")
	}
}

func TestExtract_LongitudeWrap(t *testing.T) {
	s := openTestSource(t, 1.0/100.0)
	a, err := s.Extract([]float64{51.0}, []float64{1.0})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	b, err := s.Extract([]float64{51.0}, []float64{1.0 - 360.0})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if a.Amplitude[0][0] != b.Amplitude[0][0] {
		t.Error("wrapped longitude should sample the same cell")
	}
}

func TestOpen_MissingFile(t *testing.T) {
	desc := tidemodel.Descriptor{
		Name:         "test-got",
		Format:       tidemodel.FormatGOT,
		Directory:    ".",
		ModelFiles:   []string{"absent.d.gz"},
		Constituents: []string{"m2"},
		Scale:        1.0 / 100.0,
	}
	if _, err := Open(desc, t.TempDir()); err == nil {
		t.Error("expected error for a missing constituent file")
	}
}

func TestOpen_NotGzip(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "m2.d.gz"), []byte("plain text"), 0o644); err != nil {
		t.Fatal(err)
	}
	desc := tidemodel.Descriptor{
		Name:         "test-got",
		Format:       tidemodel.FormatGOT,
		Directory:    ".",
		ModelFiles:   []string{"m2.d.gz"},
		Constituents: []string{"m2"},
		Scale:        1.0 / 100.0,
	}
	if _, err := Open(desc, dir); err == nil {
		t.Error("expected error for a non gzip file")
	}
}
