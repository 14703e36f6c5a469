// Package got reads the GSFC Global Ocean Tide grids: one gzipped ASCII
// file per constituent, each holding an amplitude block and a Greenwich
// phase lag block behind six-line headers.
package got

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/mqquiroz/pyTMD/internal/adapter/interp"
	"github.com/mqquiroz/pyTMD/internal/adapter/store"
	"github.com/mqquiroz/pyTMD/internal/domain"
	"github.com/mqquiroz/pyTMD/internal/tidemodel"
)

// Source extracts harmonic constants from a GOT class model.
type Source struct {
	names []string
	grids []*interp.MaskedGrid
}

// Open reads every constituent file of the model. Values are scaled to
// meters with the descriptor's scale factor.
func Open(desc tidemodel.Descriptor, dataDir string) (*Source, error) {
	paths := desc.ModelPaths(dataDir)
	if len(paths) == 0 {
		return nil, fmt.Errorf("model %s lists no constituent files", desc.Name)
	}
	scale := desc.Scale
	if scale == 0 {
		scale = 1.0
	}

	s := &Source{
		names: append([]string{}, desc.Constituents...),
		grids: make([]*interp.MaskedGrid, len(paths)),
	}
	for i, path := range paths {
		g, err := readConstituent(path, scale)
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
	for i := range lat {
		for k, g := range s.grids {
			x := lon[i]
			for x < g.X[0] {
				x += 360.0
			}
			for x > g.X[len(g.X)-1] {
				x -= 360.0
			}
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

// block is one header plus grid section of a GOT file.
type block struct {
	nlat, nlon int
	lat, lon   []float64
	fill       float64
	values     [][]float64
}

// readConstituent parses the amplitude and phase blocks of one file and
// folds them into a masked complex grid with the phase lag sign applied.
func readConstituent(path string, scale float64) (*interp.MaskedGrid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	zr, err := gzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("not a gzip file: %w", err)
	}
	defer zr.Close()

	sc := bufio.NewScanner(zr)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	amp, err := readBlock(sc)
	if err != nil {
		return nil, fmt.Errorf("amplitude block: %w", err)
	}
	ph, err := readBlock(sc)
	if err != nil {
		return nil, fmt.Errorf("phase block: %w", err)
	}
	if ph.nlat != amp.nlat || ph.nlon != amp.nlon {
		return nil, fmt.Errorf("phase grid %dx%d does not match amplitude %dx%d",
			ph.nlat, ph.nlon, amp.nlat, amp.nlon)
	}

	g := &interp.MaskedGrid{
		X:     amp.lon,
		Y:     amp.lat,
		Re:    make([][]float64, amp.nlat),
		Im:    make([][]float64, amp.nlat),
		Valid: make([][]bool, amp.nlat),
	}
	for j := 0; j < amp.nlat; j++ {
		g.Re[j] = make([]float64, amp.nlon)
		g.Im[j] = make([]float64, amp.nlon)
		g.Valid[j] = make([]bool, amp.nlon)
		for i := 0; i < amp.nlon; i++ {
			a := amp.values[j][i]
			p := ph.values[j][i]
			if a == amp.fill || p == ph.fill {
				continue
			}
			rad := domain.Deg2Rad(p)
			g.Re[j][i] = scale * a * math.Cos(rad)
			g.Im[j][i] = -scale * a * math.Sin(rad)
			g.Valid[j][i] = true
		}
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// readBlock parses one six-line header and the wrapped grid values that
// follow it. Header lines: two titles, grid size, latitude limits,
// longitude limits, fill value.
func readBlock(sc *bufio.Scanner) (*block, error) {
	header := make([]string, 0, 6)
	for len(header) < 6 {
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return nil, err
			}
			return nil, fmt.Errorf("truncated header: %d of 6 lines", len(header))
		}
		header = append(header, sc.Text())
	}

	dims := strings.Fields(header[2])
	if len(dims) < 2 {
		return nil, fmt.Errorf("malformed grid size line %q", header[2])
	}
	nlat, err := strconv.Atoi(dims[0])
	if err != nil {
		return nil, fmt.Errorf("grid size: %w", err)
	}
	nlon, err := strconv.Atoi(dims[1])
	if err != nil {
		return nil, fmt.Errorf("grid size: %w", err)
	}
	if nlat < 2 || nlon < 2 {
		return nil, fmt.Errorf("implausible grid size %dx%d", nlat, nlon)
	}

	ylim, err := parseLimits(header[3])
	if err != nil {
		return nil, fmt.Errorf("latitude limits: %w", err)
	}
	xlim, err := parseLimits(header[4])
	if err != nil {
		return nil, fmt.Errorf("longitude limits: %w", err)
	}
	fillFields := strings.Fields(header[5])
	if len(fillFields) == 0 {
		return nil, fmt.Errorf("missing fill value line")
	}
	fill, err := strconv.ParseFloat(fillFields[0], 64)
	if err != nil {
		return nil, fmt.Errorf("fill value: %w", err)
	}

	b := &block{
		nlat: nlat,
		nlon: nlon,
		lat:  nodeAxis(ylim[0], ylim[1], nlat),
		lon:  nodeAxis(xlim[0], xlim[1], nlon),
		fill: fill,
	}
	b.values = make([][]float64, nlat)
	for j := range b.values {
		b.values[j] = make([]float64, nlon)
	}

	total := nlat * nlon
	read := 0
	for read < total {
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return nil, err
			}
			return nil, fmt.Errorf("truncated grid: %d of %d values", read, total)
		}
		for _, field := range strings.Fields(sc.Text()) {
			if read >= total {
				return nil, fmt.Errorf("grid holds more than %d values", total)
			}
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("value %d: %w", read, err)
			}
			b.values[read/nlon][read%nlon] = v
			read++
		}
	}
	return b, nil
}

// nodeAxis builds n node coordinates spanning [lo, hi] inclusive.
func nodeAxis(lo, hi float64, n int) []float64 {
	d := (hi - lo) / float64(n-1)
	c := make([]float64, n)
	for i := range c {
		c[i] = lo + d*float64(i)
	}
	return c
}

func parseLimits(line string) ([2]float64, error) {
	fields := strings.Fields(line)
	vals := make([]float64, 0, 2)
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			continue
		}
		vals = append(vals, v)
		if len(vals) == 2 {
			break
		}
	}
	if len(vals) != 2 {
		return [2]float64{}, fmt.Errorf("no numeric limits in %q", line)
	}
	return [2]float64{vals[0], vals[1]}, nil
}
