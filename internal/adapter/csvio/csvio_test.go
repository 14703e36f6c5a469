package csvio

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestReadPoints_ThreeColumns(t *testing.T) {
	in := "57754.500000,41.50,141.00\n57754.541667,41.50,141.00\n"
	points, err := ReadPoints(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadPoints: %v", err)
	}
	if len(points) != 2 {
		t.Fatalf("got %d points, want 2", len(points))
	}
	if points[0].MJD != 57754.5 || points[0].Lat != 41.5 || points[0].Lon != 141.0 {
		t.Errorf("first point: %+v", points[0])
	}
	if points[0].Height != 0 {
		t.Errorf("missing height column should default to 0, got %v", points[0].Height)
	}
}

func TestReadPoints_FourColumns(t *testing.T) {
	in := "57754.5, 41.5, 141.0, 12.75\n"
	points, err := ReadPoints(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadPoints: %v", err)
	}
	if points[0].Height != 12.75 {
		t.Errorf("height: got %v, want 12.75", points[0].Height)
	}
}

func TestReadPoints_SkipsBlankLines(t *testing.T) {
	in := "57754.5,41.5,141.0\n\n57755.5,41.5,141.0\n"
	points, err := ReadPoints(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadPoints: %v", err)
	}
	if len(points) != 2 {
		t.Errorf("got %d points, want 2", len(points))
	}
}

func TestReadPoints_Errors(t *testing.T) {
	cases := []string{
		"57754.5,41.5\n",
		"not-a-number,41.5,141.0\n",
		"57754.5,bad,141.0\n",
		"57754.5,41.5,bad\n",
		"57754.5,41.5,141.0,bad\n",
	}
	for _, in := range cases {
		if _, err := ReadPoints(strings.NewReader(in)); err == nil {
			t.Errorf("expected error for %q", in)
		}
	}
}

func TestWriteResults_Format(t *testing.T) {
	points := []Point{
		{MJD: 57754.5, Lat: 41.5, Lon: 141.0},
		{MJD: 57754.541667, Lat: -12.345, Lon: 7.891},
	}
	var sb strings.Builder
	if err := WriteResults(&sb, points, []float64{0.314159, -9999.0}); err != nil {
		t.Fatalf("WriteResults: %v", err)
	}
	want := "57754.500000,41.50,141.00,0.31\n57754.541667,-12.35,7.89,-9999.00\n"
	if sb.String() != want {
		t.Errorf("output:\n%q\nwant:\n%q", sb.String(), want)
	}
}

func TestWriteResults_LengthMismatch(t *testing.T) {
	var sb strings.Builder
	err := WriteResults(&sb, []Point{{MJD: 1}}, []float64{1, 2})
	if err == nil {
		t.Error("expected error for length mismatch")
	}
}

func TestWriteResultsFile_SetsMode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not meaningful on windows")
	}
	path := filepath.Join(t.TempDir(), "out.csv")
	points := []Point{{MJD: 57754.5, Lat: 41.5, Lon: 141.0}}
	if err := WriteResultsFile(path, points, []float64{0.5}, 0o775); err != nil {
		t.Fatalf("WriteResultsFile: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o775 {
		t.Errorf("mode: got %o, want 775", info.Mode().Perm())
	}
}

func TestRoundTrip_OrderPreserved(t *testing.T) {
	in := "3.0,1.0,2.0\n1.0,3.0,4.0\n2.0,5.0,6.0\n"
	points, err := ReadPoints(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadPoints: %v", err)
	}
	var sb strings.Builder
	if err := WriteResults(&sb, points, []float64{10, 20, 30}); err != nil {
		t.Fatalf("WriteResults: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
	if !strings.HasPrefix(lines[0], "3.000000") ||
		!strings.HasPrefix(lines[1], "1.000000") ||
		!strings.HasPrefix(lines[2], "2.000000") {
		t.Errorf("input order not preserved:\n%s", sb.String())
	}
}
