// Package deltat supplies the difference between terrestrial dynamical
// time and universal time, read from the historical merged deltat.data
// table of dated TT minus UT1 offsets.
package deltat

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"
)

// unixEpochMJD is 1970-01-01 as a Modified Julian Day.
const unixEpochMJD = 40587.0

// Table interpolates TT minus UT1 offsets over time.
type Table struct {
	mjd   []float64
	value []float64 // seconds
}

// Load reads a deltat.data style table: one "year month day seconds"
// line per entry. Blank lines and malformed lines are skipped.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t := &Table{}
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) < 4 {
			continue
		}
		year, err1 := strconv.Atoi(fields[0])
		month, err2 := strconv.Atoi(fields[1])
		day, err3 := strconv.Atoi(fields[2])
		sec, err4 := strconv.ParseFloat(fields[3], 64)
		if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
			continue
		}
		t.mjd = append(t.mjd, dateToMJD(year, month, day))
		t.value = append(t.value, sec)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(t.mjd) < 2 {
		return nil, fmt.Errorf("delta time table %s holds %d entries, need at least 2", path, len(t.mjd))
	}
	if !sort.Float64sAreSorted(t.mjd) {
		return nil, fmt.Errorf("delta time table %s is not in date order", path)
	}
	return t, nil
}

func dateToMJD(year, month, day int) float64 {
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return unixEpochMJD + float64(d.Unix())/86400.0
}

// DeltaTime returns the interpolated offset in seconds for each epoch.
// Epochs outside the table are clamped to its first or last entry.
func (t *Table) DeltaTime(mjd []float64) []float64 {
	out := make([]float64, len(mjd))
	last := len(t.mjd) - 1
	for i, m := range mjd {
		switch {
		case m <= t.mjd[0]:
			out[i] = t.value[0]
		case m >= t.mjd[last]:
			out[i] = t.value[last]
		default:
			k := sort.SearchFloat64s(t.mjd, m)
			if t.mjd[k] == m {
				out[i] = t.value[k]
				continue
			}
			frac := (m - t.mjd[k-1]) / (t.mjd[k] - t.mjd[k-1])
			out[i] = t.value[k-1] + frac*(t.value[k]-t.value[k-1])
		}
	}
	return out
}

// Span reports the first and last epoch the table covers.
func (t *Table) Span() (first, last float64) {
	return t.mjd[0], t.mjd[len(t.mjd)-1]
}
