package interp

import "sort"

// cellIndex locates the interval [c[i], c[i+1]] containing v on a
// strictly increasing axis, or -1 when v is outside the axis.
func cellIndex(c []float64, v float64) int {
	if v < c[0] || v > c[len(c)-1] {
		return -1
	}
	i := sort.SearchFloat64s(c, v)
	if i > 0 {
		i--
	}
	if i > len(c)-2 {
		i = len(c) - 2
	}
	return i
}

// bilinearWeights returns the corner weights of the cell
// [x0,x1]x[y0,y1] at (x, y), ordered (x0,y0), (x1,y0), (x0,y1),
// (x1,y1). The weights sum to 1 for any point inside the cell.
func bilinearWeights(x0, x1, y0, y1, x, y float64) [4]float64 {
	t := (x - x0) / (x1 - x0)
	u := (y - y0) / (y1 - y0)
	return [4]float64{
		(1 - t) * (1 - u),
		t * (1 - u),
		(1 - t) * u,
		t * u,
	}
}
