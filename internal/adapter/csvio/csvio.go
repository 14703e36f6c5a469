// Package csvio reads observation point files and writes prediction
// results in the fixed four-column comma separated layout.
package csvio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Point is one observation: an epoch as a Modified Julian Day and a
// geographic position. Height above the ellipsoid is carried through
// when the input supplies it.
type Point struct {
	MJD    float64
	Lat    float64
	Lon    float64
	Height float64
}

// ReadPoints parses a CSV of MJD, latitude, longitude and an optional
// fourth height column. Input order is preserved.
func ReadPoints(r io.Reader) ([]Point, error) {
	var points []Point
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		fields := strings.Split(text, ",")
		if len(fields) < 3 {
			return nil, fmt.Errorf("line %d: %d columns, want at least 3", line, len(fields))
		}
		var p Point
		var err error
		if p.MJD, err = strconv.ParseFloat(strings.TrimSpace(fields[0]), 64); err != nil {
			return nil, fmt.Errorf("line %d: time: %w", line, err)
		}
		if p.Lat, err = strconv.ParseFloat(strings.TrimSpace(fields[1]), 64); err != nil {
			return nil, fmt.Errorf("line %d: latitude: %w", line, err)
		}
		if p.Lon, err = strconv.ParseFloat(strings.TrimSpace(fields[2]), 64); err != nil {
			return nil, fmt.Errorf("line %d: longitude: %w", line, err)
		}
		if len(fields) > 3 {
			if p.Height, err = strconv.ParseFloat(strings.TrimSpace(fields[3]), 64); err != nil {
				return nil, fmt.Errorf("line %d: height: %w", line, err)
			}
		}
		points = append(points, p)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return points, nil
}

// ReadPointsFile reads observation points from a file.
func ReadPointsFile(path string) ([]Point, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	points, err := ReadPoints(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return points, nil
}

// WriteResults writes one line per point: time to six decimals, then
// latitude, longitude and elevation to two.
func WriteResults(w io.Writer, points []Point, elevation []float64) error {
	if len(points) != len(elevation) {
		return fmt.Errorf("%d elevations for %d points", len(elevation), len(points))
	}
	bw := bufio.NewWriter(w)
	for i, p := range points {
		if _, err := fmt.Fprintf(bw, "%.6f,%.2f,%.2f,%.2f\n", p.MJD, p.Lat, p.Lon, elevation[i]); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteResultsFile writes results to a file and sets its permission
// bits to mode.
func WriteResultsFile(path string, points []Point, elevation []float64, mode os.FileMode) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteResults(f, points, elevation); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Chmod(path, mode)
}
