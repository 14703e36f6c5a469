package atlasnc

import (
	"compress/gzip"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/fhs/go-netcdf/netcdf"

	"github.com/mqquiroz/pyTMD/internal/tidemodel"
)

var (
	testLon = []float64{10.0, 11.0, 12.0}
	testLat = []float64{40.0, 41.0, 42.0}
)

// writeGridFile builds a 3x3 bathymetry grid with one land node.
func writeGridFile(t *testing.T, path string) {
	t.Helper()
	ds, err := netcdf.CreateFile(path, netcdf.CLOBBER)
	if err != nil {
		t.Fatalf("CreateFile: %v", err)
	}
	defer ds.Close()

	nx, err := ds.AddDim("nx", uint64(len(testLon)))
	if err != nil {
		t.Fatal(err)
	}
	ny, err := ds.AddDim("ny", uint64(len(testLat)))
	if err != nil {
		t.Fatal(err)
	}
	vLon, err := ds.AddVar("lon_z", netcdf.DOUBLE, []netcdf.Dim{nx})
	if err != nil {
		t.Fatal(err)
	}
	vLat, err := ds.AddVar("lat_z", netcdf.DOUBLE, []netcdf.Dim{ny})
	if err != nil {
		t.Fatal(err)
	}
	vHz, err := ds.AddVar("hz", netcdf.DOUBLE, []netcdf.Dim{ny, nx})
	if err != nil {
		t.Fatal(err)
	}
	if err := ds.EndDef(); err != nil {
		t.Fatal(err)
	}

	if err := vLon.WriteFloat64s(testLon); err != nil {
		t.Fatal(err)
	}
	if err := vLat.WriteFloat64s(testLat); err != nil {
		t.Fatal(err)
	}
	hz := make([]float64, len(testLat)*len(testLon))
	for i := range hz {
		hz[i] = 100.0
	}
	hz[0] = 0.0 // land at (40, 10)
	if err := vHz.WriteFloat64s(hz); err != nil {
		t.Fatal(err)
	}
}

// writeConstituentFile builds a uniform complex elevation in mm.
func writeConstituentFile(t *testing.T, path string, re, im float64) {
	t.Helper()
	ds, err := netcdf.CreateFile(path, netcdf.CLOBBER)
	if err != nil {
		t.Fatalf("CreateFile: %v", err)
	}
	defer ds.Close()

	nx, err := ds.AddDim("nx", uint64(len(testLon)))
	if err != nil {
		t.Fatal(err)
	}
	ny, err := ds.AddDim("ny", uint64(len(testLat)))
	if err != nil {
		t.Fatal(err)
	}
	vLon, err := ds.AddVar("lon_z", netcdf.DOUBLE, []netcdf.Dim{nx})
	if err != nil {
		t.Fatal(err)
	}
	vLat, err := ds.AddVar("lat_z", netcdf.DOUBLE, []netcdf.Dim{ny})
	if err != nil {
		t.Fatal(err)
	}
	vRe, err := ds.AddVar("hRe", netcdf.DOUBLE, []netcdf.Dim{ny, nx})
	if err != nil {
		t.Fatal(err)
	}
	vIm, err := ds.AddVar("hIm", netcdf.DOUBLE, []netcdf.Dim{ny, nx})
	if err != nil {
		t.Fatal(err)
	}
	if err := ds.EndDef(); err != nil {
		t.Fatal(err)
	}

	if err := vLon.WriteFloat64s(testLon); err != nil {
		t.Fatal(err)
	}
	if err := vLat.WriteFloat64s(testLat); err != nil {
		t.Fatal(err)
	}
	n := len(testLat) * len(testLon)
	reVals := make([]float64, n)
	imVals := make([]float64, n)
	for i := 0; i < n; i++ {
		reVals[i] = re
		imVals[i] = im
	}
	if err := vRe.WriteFloat64s(reVals); err != nil {
		t.Fatal(err)
	}
	if err := vIm.WriteFloat64s(imVals); err != nil {
		t.Fatal(err)
	}
}

func gzipFile(t *testing.T, src, dst string) {
	t.Helper()
	data, err := os.ReadFile(src)
	if err != nil {
		t.Fatal(err)
	}
	f, err := os.Create(dst)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	zw := gzip.NewWriter(f)
	if _, err := zw.Write(data); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
}

func openTestSource(t *testing.T) *Source {
	t.Helper()
	dir := t.TempDir()

	gridPlain := filepath.Join(dir, "grid_test.nc")
	writeGridFile(t, gridPlain)
	gzipFile(t, gridPlain, filepath.Join(dir, "grid_test.nc.gz"))

	// m2 = 500-500i mm.
	writeConstituentFile(t, filepath.Join(dir, "h_m2_test.nc"), 500.0, -500.0)

	desc := tidemodel.Descriptor{
		Name:         "test-atlas",
		Format:       tidemodel.FormatNetCDF,
		CRS:          tidemodel.CRSGeographic,
		Directory:    ".",
		GridFile:     "grid_test.nc.gz",
		ModelFiles:   []string{"h_m2_test.nc"},
		Constituents: []string{"m2"},
		Scale:        1.0 / 1000.0,
	}
	s, err := Open(desc, dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return s
}

func TestExtract_ScaledComplex(t *testing.T) {
	s := openTestSource(t)
	c, err := s.Extract([]float64{41.0}, []float64{11.0})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if !c.PointValid(0) {
		t.Fatal("interior point should be valid")
	}

	// 500-500i mm is 0.5-0.5i m: amplitude sqrt(0.5), phase 45.
	if math.Abs(c.Amplitude[0][0]-math.Sqrt(0.5)) > 1e-9 {
		t.Errorf("amplitude: got %.9f, want %.9f", c.Amplitude[0][0], math.Sqrt(0.5))
	}
	if math.Abs(c.Phase[0][0]-45.0) > 1e-9 {
		t.Errorf("phase: got %.6f, want 45", c.Phase[0][0])
	}
	if math.Abs(c.Depth[0]-100.0) > 1e-9 {
		t.Errorf("depth: got %.4f, want 100", c.Depth[0])
	}
}

func TestExtract_OutsideDomainInvalid(t *testing.T) {
	s := openTestSource(t)
	c, err := s.Extract([]float64{50.0}, []float64{11.0})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if c.PointValid(0) {
		t.Error("point outside the grid should be invalid, not an error")
	}
}

func TestExtract_LandMaskApplied(t *testing.T) {
	s := openTestSource(t)
	// The exact land node: its only covering corner is masked at that
	// node, but the surrounding cell still holds valid corners, so
	// sampling inside the first cell stays valid.
	c, err := s.Extract([]float64{40.5}, []float64{10.5})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if !c.PointValid(0) {
		t.Error("cell with three valid corners should remain valid")
	}
}

func TestOpen_MissingGrid(t *testing.T) {
	desc := tidemodel.Descriptor{
		Name:         "test-atlas",
		Format:       tidemodel.FormatNetCDF,
		Directory:    ".",
		GridFile:     "absent.nc",
		ModelFiles:   []string{"absent_m2.nc"},
		Constituents: []string{"m2"},
		Scale:        1.0 / 1000.0,
	}
	if _, err := Open(desc, t.TempDir()); err == nil {
		t.Error("expected error for missing grid file")
	}
}
