// Package atlasnc reads the TPXO9 atlas NetCDF distribution: a grid
// file with bathymetry and one file per constituent holding the real
// and imaginary elevation components in millimeters.
package atlasnc

import (
	"compress/gzip"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/fhs/go-netcdf/netcdf"

	"github.com/mqquiroz/pyTMD/internal/adapter/interp"
	"github.com/mqquiroz/pyTMD/internal/adapter/store"
	"github.com/mqquiroz/pyTMD/internal/domain"
	"github.com/mqquiroz/pyTMD/internal/tidemodel"
)

// Source extracts harmonic constants from a TPXO atlas NetCDF model.
type Source struct {
	names []string
	grids []*interp.MaskedGrid
	depth *interp.MaskedGrid
}

// Open reads the grid file and every constituent file. Values are
// scaled to meters with the descriptor's scale factor.
func Open(desc tidemodel.Descriptor, dataDir string) (*Source, error) {
	depth, err := readDepthGrid(desc.GridPath(dataDir))
	if err != nil {
		return nil, fmt.Errorf("reading grid file: %w", err)
	}

	scale := desc.Scale
	if scale == 0 {
		scale = 1.0
	}
	s := &Source{
		names: append([]string{}, desc.Constituents...),
		grids: make([]*interp.MaskedGrid, len(desc.ModelFiles)),
		depth: depth,
	}
	for i, path := range desc.ModelPaths(dataDir) {
		g, err := readConstituent(path, scale, depth)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", desc.Constituents[i], err)
		}
		s.grids[i] = g
	}
	return s, nil
}

// Constituents lists the constituent names in file order.
func (s *Source) Constituents() []string {
	return s.names
}

// Extract samples every constituent at the given points.
func (s *Source) Extract(lat, lon []float64) (*store.Constants, error) {
	if len(lat) != len(lon) {
		return nil, fmt.Errorf("%d latitudes for %d longitudes", len(lat), len(lon))
	}
	c := store.NewConstants(s.names, len(lat))
	c.Depth = make([]float64, len(lat))
	for i := range lat {
		x := normalizeLon360(lon[i])
		if d, ok := s.depth.Sample(x, lat[i]); ok {
			c.Depth[i] = real(d)
		}
		for k, g := range s.grids {
			z, ok := g.Sample(x, lat[i])
			if !ok {
				continue
			}
			c.Amplitude[i][k] = math.Hypot(real(z), imag(z))
			ph := domain.Rad2Deg(math.Atan2(-imag(z), real(z)))
			if ph < 0 {
				ph += 360.0
			}
			c.Phase[i][k] = ph
			c.Valid[i][k] = true
		}
	}
	return c, nil
}

// normalizeLon360 maps arbitrary degree longitudes into the [0, 360)
// range the atlas grids are published on.
func normalizeLon360(lon float64) float64 {
	lon = math.Mod(lon, 360.0)
	if lon < 0 {
		lon += 360.0
	}
	return lon
}

// openDataset opens a NetCDF file, transparently decompressing .gz
// distributions to a temporary file first.
func openDataset(path string) (netcdf.Dataset, func(), error) {
	if !strings.HasSuffix(path, ".gz") {
		ds, err := netcdf.OpenFile(path, netcdf.NOWRITE)
		if err != nil {
			return 0, nil, err
		}
		return ds, func() { _ = ds.Close() }, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return 0, nil, err
	}
	defer f.Close()
	zr, err := gzip.NewReader(f)
	if err != nil {
		return 0, nil, fmt.Errorf("not a gzip file: %w", err)
	}
	defer zr.Close()

	tmp, err := os.CreateTemp("", "atlas-*.nc")
	if err != nil {
		return 0, nil, err
	}
	if _, err := io.Copy(tmp, zr); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return 0, nil, fmt.Errorf("decompressing %s: %w", filepath.Base(path), err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return 0, nil, err
	}

	ds, err := netcdf.OpenFile(tmp.Name(), netcdf.NOWRITE)
	if err != nil {
		os.Remove(tmp.Name())
		return 0, nil, err
	}
	cleanup := func() {
		_ = ds.Close()
		_ = os.Remove(tmp.Name())
	}
	return ds, cleanup, nil
}

// readAxis reads the first matching 1D coordinate variable.
func readAxis(ds netcdf.Dataset, candidates []string) ([]float64, error) {
	for _, name := range candidates {
		v, err := ds.Var(name)
		if err != nil {
			continue
		}
		data, err := readFloat64Var(v)
		if err == nil {
			return data, nil
		}
	}
	return nil, fmt.Errorf("coordinate variable not found (tried %v)", candidates)
}

var (
	lonCandidates = []string{"lon_z", "lon", "longitude", "x"}
	latCandidates = []string{"lat_z", "lat", "latitude", "y"}
)

// readDepthGrid loads the bathymetry grid; zero depth marks land.
func readDepthGrid(path string) (*interp.MaskedGrid, error) {
	ds, cleanup, err := openDataset(path)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	lon, err := readAxis(ds, lonCandidates)
	if err != nil {
		return nil, err
	}
	lat, err := readAxis(ds, latCandidates)
	if err != nil {
		return nil, err
	}

	var hz [][]float64
	for _, name := range []string{"hz", "depth", "bathymetry"} {
		v, err := ds.Var(name)
		if err != nil {
			continue
		}
		hz, err = read2DOriented(v, len(lat), len(lon))
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", name, err)
		}
		break
	}
	if hz == nil {
		return nil, fmt.Errorf("bathymetry variable not found")
	}

	g := &interp.MaskedGrid{
		X:     lon,
		Y:     lat,
		Re:    hz,
		Im:    make([][]float64, len(lat)),
		Valid: make([][]bool, len(lat)),
	}
	for j := range g.Valid {
		g.Im[j] = make([]float64, len(lon))
		g.Valid[j] = make([]bool, len(lon))
		for i := range g.Valid[j] {
			g.Valid[j][i] = hz[j][i] > 0
		}
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// readConstituent loads one constituent's complex elevation. The grid
// file's land mask is intersected with the file's own fill values.
func readConstituent(path string, scale float64, depth *interp.MaskedGrid) (*interp.MaskedGrid, error) {
	ds, cleanup, err := openDataset(path)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	lon, err := readAxis(ds, lonCandidates)
	if err != nil {
		return nil, err
	}
	lat, err := readAxis(ds, latCandidates)
	if err != nil {
		return nil, err
	}
	if len(lon) != len(depth.X) || len(lat) != len(depth.Y) {
		return nil, fmt.Errorf("constituent grid %dx%d does not match bathymetry %dx%d",
			len(lat), len(lon), len(depth.Y), len(depth.X))
	}

	reVar, err := findVar(ds, []string{"hRe", "hre", "Re", "real"})
	if err != nil {
		return nil, err
	}
	imVar, err := findVar(ds, []string{"hIm", "him", "Im", "imag"})
	if err != nil {
		return nil, err
	}
	reVals, err := read2DOriented(reVar, len(lat), len(lon))
	if err != nil {
		return nil, fmt.Errorf("reading real component: %w", err)
	}
	imVals, err := read2DOriented(imVar, len(lat), len(lon))
	if err != nil {
		return nil, fmt.Errorf("reading imaginary component: %w", err)
	}
	reFill, reHasFill := getFillValue(reVar)
	imFill, imHasFill := getFillValue(imVar)

	g := &interp.MaskedGrid{
		X:     lon,
		Y:     lat,
		Re:    make([][]float64, len(lat)),
		Im:    make([][]float64, len(lat)),
		Valid: make([][]bool, len(lat)),
	}
	for j := range g.Re {
		g.Re[j] = make([]float64, len(lon))
		g.Im[j] = make([]float64, len(lon))
		g.Valid[j] = make([]bool, len(lon))
		for i := range g.Re[j] {
			re := reVals[j][i]
			im := imVals[j][i]
			if !depth.Valid[j][i] {
				continue
			}
			if (reHasFill && re == reFill) || (imHasFill && im == imFill) {
				continue
			}
			g.Re[j][i] = scale * re
			g.Im[j][i] = scale * im
			g.Valid[j][i] = true
		}
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

func findVar(ds netcdf.Dataset, candidates []string) (netcdf.Var, error) {
	for _, name := range candidates {
		if v, err := ds.Var(name); err == nil {
			return v, nil
		}
	}
	return netcdf.Var{}, fmt.Errorf("variable not found (tried %v)", candidates)
}

// getFillValue returns the _FillValue or missing_value attribute if
// present as float64.
func getFillValue(v netcdf.Var) (float64, bool) {
	for _, name := range []string{"_FillValue", "missing_value"} {
		a := v.Attr(name)
		if a == (netcdf.Attr{}) {
			continue
		}
		if n, err := a.Len(); err == nil && n > 0 {
			buf64 := make([]float64, 1)
			if err := a.ReadFloat64s(buf64); err == nil {
				return buf64[0], true
			}
			buf32 := make([]float32, 1)
			if err := a.ReadFloat32s(buf32); err == nil {
				return float64(buf32[0]), true
			}
			bufi := make([]int32, 1)
			if err := a.ReadInt32s(bufi); err == nil {
				return float64(bufi[0]), true
			}
		}
	}
	return 0, false
}

// readFloat64Var reads a 1D float64 array from a NetCDF variable.
func readFloat64Var(v netcdf.Var) ([]float64, error) {
	dims, err := v.Dims()
	if err != nil {
		return nil, fmt.Errorf("failed to get dimensions: %w", err)
	}
	if len(dims) != 1 {
		return nil, fmt.Errorf("expected 1D variable, got %dD", len(dims))
	}
	length, err := dims[0].Len()
	if err != nil {
		return nil, err
	}
	return readFloats(v, int(length))
}

// read2DOriented reads a 2D variable as [lat][lon], transposing when
// the file stores [lon][lat].
func read2DOriented(v netcdf.Var, nLat, nLon int) ([][]float64, error) {
	dims, err := v.Dims()
	if err != nil {
		return nil, fmt.Errorf("failed to get dimensions: %w", err)
	}
	if len(dims) != 2 {
		return nil, fmt.Errorf("expected 2D data, got %dD", len(dims))
	}
	d0, err := dims[0].Len()
	if err != nil {
		return nil, err
	}
	d1, err := dims[1].Len()
	if err != nil {
		return nil, err
	}

	flat, err := readFloats(v, int(d0*d1))
	if err != nil {
		return nil, err
	}
	rows := make([][]float64, d0)
	for i := range rows {
		rows[i] = flat[i*int(d1) : (i+1)*int(d1)]
	}

	switch {
	case int(d0) == nLat && int(d1) == nLon:
		return rows, nil
	case int(d0) == nLon && int(d1) == nLat:
		return transpose2D(rows), nil
	default:
		return nil, fmt.Errorf("dimension mismatch: data is [%d, %d], expected [%d, %d] or [%d, %d]",
			d0, d1, nLat, nLon, nLon, nLat)
	}
}

// readFloats reads n values from a variable of any supported numeric
// type into float64.
func readFloats(v netcdf.Var, n int) ([]float64, error) {
	t, err := v.Type()
	if err != nil {
		return nil, fmt.Errorf("failed to get var type: %w", err)
	}
	switch t {
	case netcdf.DOUBLE:
		data := make([]float64, n)
		if err := v.ReadFloat64s(data); err != nil {
			return nil, err
		}
		return data, nil
	case netcdf.FLOAT:
		tmp := make([]float32, n)
		if err := v.ReadFloat32s(tmp); err != nil {
			return nil, err
		}
		out := make([]float64, n)
		for i, val := range tmp {
			out[i] = float64(val)
		}
		return out, nil
	case netcdf.INT:
		tmp := make([]int32, n)
		if err := v.ReadInt32s(tmp); err != nil {
			return nil, err
		}
		out := make([]float64, n)
		for i, val := range tmp {
			out[i] = float64(val)
		}
		return out, nil
	case netcdf.SHORT:
		tmp := make([]int16, n)
		if err := v.ReadInt16s(tmp); err != nil {
			return nil, err
		}
		out := make([]float64, n)
		for i, val := range tmp {
			out[i] = float64(val)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported var type: %v", t)
	}
}

// transpose2D transposes a 2D array.
func transpose2D(data [][]float64) [][]float64 {
	if len(data) == 0 {
		return data
	}
	nRows := len(data)
	nCols := len(data[0])
	out := make([][]float64, nCols)
	for i := 0; i < nCols; i++ {
		out[i] = make([]float64, nRows)
		for j := 0; j < nRows; j++ {
			out[i][j] = data[j][i]
		}
	}
	return out
}
