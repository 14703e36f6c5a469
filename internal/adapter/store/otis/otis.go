// Package otis reads the OSU/ESR gridded binary tide solutions. The
// files are big-endian Fortran sequential records: a bathymetry grid
// file with a land mask, and an elevation file holding interleaved
// complex amplitudes per constituent.
package otis

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/mqquiroz/pyTMD/internal/adapter/interp"
	"github.com/mqquiroz/pyTMD/internal/adapter/store"
	"github.com/mqquiroz/pyTMD/internal/domain"
	"github.com/mqquiroz/pyTMD/internal/tidemodel"
)

// ErrUnsupportedCRS marks models published on a projected grid. Sampling
// them would need a coordinate transform this reader does not perform.
var ErrUnsupportedCRS = errors.New("model grid is not geographic")

// ErrUnexpectedLayout marks files whose record structure does not match
// the plain gridded layout, such as the compacted atlas variants.
var ErrUnexpectedLayout = errors.New("unexpected file layout")

// Source extracts harmonic constants from an OTIS format model.
type Source struct {
	names []string
	grids []*interp.MaskedGrid
	depth *interp.MaskedGrid
}

// Open reads the model's grid and elevation files. Models tagged with a
// projected CRS are rejected with ErrUnsupportedCRS.
func Open(desc tidemodel.Descriptor, dataDir string) (*Source, error) {
	if desc.CRS != tidemodel.CRSGeographic {
		return nil, fmt.Errorf("%w: %s uses %s", ErrUnsupportedCRS, desc.Name, desc.CRS)
	}

	depth, err := readGrid(desc.GridPath(dataDir))
	if err != nil {
		return nil, fmt.Errorf("reading grid file: %w", err)
	}
	names, grids, err := readElevation(desc.ModelPath(dataDir), depth)
	if err != nil {
		return nil, fmt.Errorf("reading elevation file: %w", err)
	}
	padSeam(depth)
	for _, g := range grids {
		padSeam(g)
	}
	return &Source{names: names, grids: grids, depth: depth}, nil
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
		x := wrapLon(lon[i], s.depth.X)
		if d, ok := s.depth.Sample(x, lat[i]); ok {
			c.Depth[i] = real(d)
		}
		for k, g := range s.grids {
			z, ok := g.Sample(x, lat[i])
			if !ok {
				continue
			}
			c.Amplitude[i][k] = math.Hypot(real(z), imag(z))
			// Phase lag convention: the imaginary part is negated.
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

// padSeam appends a wraparound column to grids whose cell centers cover
// a full circle of longitude, so points in the half cell straddling the
// seam interpolate between the last and first columns instead of
// falling out of range.
func padSeam(g *interp.MaskedGrid) {
	n := len(g.X)
	d := g.X[1] - g.X[0]
	if math.Abs(g.X[n-1]-g.X[0]+d-360.0) > 1e-3 {
		return
	}
	g.X = append(g.X, g.X[0]+360.0)
	for j := range g.Re {
		g.Re[j] = append(g.Re[j], g.Re[j][0])
		g.Im[j] = append(g.Im[j], g.Im[j][0])
		g.Valid[j] = append(g.Valid[j], g.Valid[j][0])
	}
}

// wrapLon shifts a longitude by whole turns into the grid's axis range.
func wrapLon(lon float64, x []float64) float64 {
	for lon < x[0] {
		lon += 360.0
	}
	for lon > x[len(x)-1] {
		lon -= 360.0
	}
	return lon
}

// record reads one Fortran sequential record: a big-endian int32 byte
// count, the payload, and the repeated byte count.
func record(r io.Reader) ([]byte, error) {
	var n int32
	if err := binary.Read(r, binary.BigEndian, &n); err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, fmt.Errorf("negative record length %d", n)
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}
	var tail int32
	if err := binary.Read(r, binary.BigEndian, &tail); err != nil {
		return nil, err
	}
	if tail != n {
		return nil, fmt.Errorf("record length mismatch: %d opened, %d closed", n, tail)
	}
	return buf, nil
}

// cellCenters builds the n cell-center coordinates spanning [lo, hi].
func cellCenters(lo, hi float64, n int) []float64 {
	d := (hi - lo) / float64(n)
	c := make([]float64, n)
	for i := range c {
		c[i] = lo + d*(float64(i)+0.5)
	}
	return c
}

// readGrid parses the bathymetry grid file. The returned grid holds the
// water depth in its real part with land cells masked.
func readGrid(path string) (*interp.MaskedGrid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	header, err := record(f)
	if err != nil {
		return nil, fmt.Errorf("grid header: %w", err)
	}
	// A plain gridded header is exactly nx, ny, four float limits, the
	// time step and the open boundary count. The compacted atlas files
	// frame their headers differently.
	if len(header) != 32 {
		return nil, fmt.Errorf("%w: grid header is %d bytes, want 32", ErrUnexpectedLayout, len(header))
	}
	nx := int(int32(binary.BigEndian.Uint32(header[0:])))
	ny := int(int32(binary.BigEndian.Uint32(header[4:])))
	ylim0 := float64(math.Float32frombits(binary.BigEndian.Uint32(header[8:])))
	ylim1 := float64(math.Float32frombits(binary.BigEndian.Uint32(header[12:])))
	xlim0 := float64(math.Float32frombits(binary.BigEndian.Uint32(header[16:])))
	xlim1 := float64(math.Float32frombits(binary.BigEndian.Uint32(header[20:])))
	if nx < 2 || ny < 2 {
		return nil, fmt.Errorf("implausible grid size %dx%d", nx, ny)
	}

	// Open boundary index record, unused here.
	if _, err := record(f); err != nil {
		return nil, fmt.Errorf("grid open boundary record: %w", err)
	}

	hz, err := record(f)
	if err != nil {
		return nil, fmt.Errorf("grid depth record: %w", err)
	}
	if len(hz) != 4*nx*ny {
		return nil, fmt.Errorf("depth record holds %d bytes, want %d", len(hz), 4*nx*ny)
	}
	mz, err := record(f)
	if err != nil {
		return nil, fmt.Errorf("grid mask record: %w", err)
	}
	if len(mz) != 4*nx*ny {
		return nil, fmt.Errorf("mask record holds %d bytes, want %d", len(mz), 4*nx*ny)
	}

	g := &interp.MaskedGrid{
		X:     cellCenters(xlim0, xlim1, nx),
		Y:     cellCenters(ylim0, ylim1, ny),
		Re:    make([][]float64, ny),
		Im:    make([][]float64, ny),
		Valid: make([][]bool, ny),
	}
	for j := 0; j < ny; j++ {
		g.Re[j] = make([]float64, nx)
		g.Im[j] = make([]float64, nx)
		g.Valid[j] = make([]bool, nx)
		for i := 0; i < nx; i++ {
			off := 4 * (j*nx + i)
			g.Re[j][i] = float64(math.Float32frombits(binary.BigEndian.Uint32(hz[off:])))
			g.Valid[j][i] = int32(binary.BigEndian.Uint32(mz[off:])) != 0
		}
	}
	return g, nil
}

// readElevation parses the multi-constituent elevation file. The land
// mask of the grid file is applied to every constituent.
func readElevation(path string, depth *interp.MaskedGrid) ([]string, []*interp.MaskedGrid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	header, err := record(f)
	if err != nil {
		return nil, nil, fmt.Errorf("elevation header: %w", err)
	}
	if len(header) < 28 {
		return nil, nil, fmt.Errorf("%w: elevation header is %d bytes", ErrUnexpectedLayout, len(header))
	}
	nx := int(int32(binary.BigEndian.Uint32(header[0:])))
	ny := int(int32(binary.BigEndian.Uint32(header[4:])))
	nc := int(int32(binary.BigEndian.Uint32(header[8:])))
	ylim0 := float64(math.Float32frombits(binary.BigEndian.Uint32(header[12:])))
	ylim1 := float64(math.Float32frombits(binary.BigEndian.Uint32(header[16:])))
	xlim0 := float64(math.Float32frombits(binary.BigEndian.Uint32(header[20:])))
	xlim1 := float64(math.Float32frombits(binary.BigEndian.Uint32(header[24:])))
	if nx < 2 || ny < 2 || nc < 1 {
		return nil, nil, fmt.Errorf("implausible elevation layout %dx%d with %d constituents", nx, ny, nc)
	}
	if len(header) != 28+4*nc {
		return nil, nil, fmt.Errorf("%w: elevation header is %d bytes for %d constituents, want %d",
			ErrUnexpectedLayout, len(header), nc, 28+4*nc)
	}

	// Constituent names are 4-byte space padded fields.
	names := make([]string, nc)
	for k := 0; k < nc; k++ {
		names[k] = strings.TrimSpace(string(header[28+4*k : 32+4*k]))
	}

	if len(depth.X) != nx || len(depth.Y) != ny {
		return nil, nil, fmt.Errorf("elevation grid %dx%d does not match bathymetry %dx%d",
			nx, ny, len(depth.X), len(depth.Y))
	}
	x := cellCenters(xlim0, xlim1, nx)
	y := cellCenters(ylim0, ylim1, ny)

	grids := make([]*interp.MaskedGrid, nc)
	for k := 0; k < nc; k++ {
		data, err := record(f)
		if err != nil {
			return nil, nil, fmt.Errorf("constituent %s record: %w", names[k], err)
		}
		if len(data) != 8*nx*ny {
			return nil, nil, fmt.Errorf("constituent %s holds %d bytes, want %d", names[k], len(data), 8*nx*ny)
		}
		g := &interp.MaskedGrid{
			X:     x,
			Y:     y,
			Re:    make([][]float64, ny),
			Im:    make([][]float64, ny),
			Valid: make([][]bool, ny),
		}
		for j := 0; j < ny; j++ {
			g.Re[j] = make([]float64, nx)
			g.Im[j] = make([]float64, nx)
			g.Valid[j] = make([]bool, nx)
			for i := 0; i < nx; i++ {
				off := 8 * (j*nx + i)
				g.Re[j][i] = float64(math.Float32frombits(binary.BigEndian.Uint32(data[off:])))
				g.Im[j][i] = float64(math.Float32frombits(binary.BigEndian.Uint32(data[off+4:])))
				g.Valid[j][i] = depth.Valid[j][i]
			}
		}
		grids[k] = g
	}
	return names, grids, nil
}
