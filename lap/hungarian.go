package lap

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Hungarian solves linear assignment by successive shortest augmenting
// paths over dual potentials.  Unlike the square LAPJV core it works on the
// rectangular matrix directly and understands unassignable cells natively:
// only finite arcs are ever relaxed, and every row carries a private escape
// arc priced above the sum of all finite costs, so an augmenting path always
// exists and an expensive early match can still be displaced by a cheaper
// later row.  Rows that end on their escape arc stay unmatched in the
// result, keeping the matching at maximum feasible size and minimum cost.
type Hungarian struct{}

// Name returns the backend identifier
func (s *Hungarian) Name() string {
	return "hungarian"
}

// Available reports whether the backend can be used
func (s *Hungarian) Available() bool {
	return true
}

// Solve returns a minimum cost matching of maximum feasible size
func (s *Hungarian) Solve(costs *mat.Dense) ([]int, []int, error) {

	nRows, nCols := costs.Dims()

	// an escape arc costs more than the sum of all finite costs, so one is
	// taken only when leaving its row unmatched is unavoidable or cheaper
	// rows can take over its column
	escape := 1.0

	for i := 0; i < nRows; i++ {
		for j := 0; j < nCols; j++ {
			if v := costs.At(i, j); isFinite(v) {
				escape += v
			}
		}
	}

	// columns nCols..nCols+nRows-1 are the private escape columns, column
	// nCols+i is reachable from row i alone
	n := nCols + nRows

	arc := func(i, j int) float64 {

		if j < nCols {
			return costs.At(i, j)
		}

		if j == nCols+i {
			return escape
		}

		return math.NaN()
	}

	rowTo := make([]int, nRows)
	colTo := make([]int, n)

	for i := range rowTo {
		rowTo[i] = -1
	}

	for j := range colTo {
		colTo[j] = -1
	}

	// u and v are the row and column potentials keeping reduced costs
	// non negative between augmentations
	u := make([]float64, nRows)
	v := make([]float64, n)

	dist := make([]float64, n)
	pred := make([]int, n)
	done := make([]bool, n)

	for startRow := 0; startRow < nRows; startRow++ {
		augmentRow(arc, startRow, rowTo, colTo, u, v, dist, pred, done)
	}

	rows := []int{}
	cols := []int{}

	for i := 0; i < nRows; i++ {
		if rowTo[i] >= 0 && rowTo[i] < nCols {
			rows = append(rows, i)
			cols = append(cols, rowTo[i])
		}
	}

	return rows, cols, nil
}

// augmentRow grows the matching by one pair using the cheapest augmenting
// path from startRow, reading costs through arc
func augmentRow(arc func(i, j int) float64, startRow int, rowTo, colTo []int,
	u, v, dist []float64, pred []int, done []bool) {

	nCols := len(colTo)

	for j := 0; j < nCols; j++ {
		dist[j] = math.Inf(1)
		pred[j] = -1
		done[j] = false
	}

	// relax arcs leaving the start row
	for j := 0; j < nCols; j++ {

		w := arc(startRow, j)

		if !isFinite(w) {
			continue
		}

		if d := w - u[startRow] - v[j]; d < dist[j] {
			dist[j] = d
			pred[j] = startRow
		}
	}

	endCol := -1

	for {
		// pick the unfinished column with the smallest distance
		j := -1
		minD := math.Inf(1)

		for k := 0; k < nCols; k++ {
			if !done[k] && dist[k] < minD {
				minD = dist[k]
				j = k
			}
		}

		// cannot happen while escape arcs exist, guards a stuck search
		if j < 0 {
			return
		}

		done[j] = true

		if colTo[j] < 0 {
			endCol = j
			break
		}

		// relax arcs leaving the row currently matched to column j
		i := colTo[j]

		for k := 0; k < nCols; k++ {

			if done[k] {
				continue
			}

			w := arc(i, k)

			if !isFinite(w) {
				continue
			}

			if d := dist[j] + w - u[i] - v[k]; d < dist[k] {
				dist[k] = d
				pred[k] = i
			}
		}
	}

	// update potentials so every arc on the path becomes tight
	d := dist[endCol]
	u[startRow] += d

	for j := 0; j < nCols; j++ {
		if done[j] && j != endCol {
			u[colTo[j]] += d - dist[j]
			v[j] -= d - dist[j]
		}
	}

	// flip matched and unmatched arcs along the path
	for j := endCol; ; {

		i := pred[j]
		colTo[j] = i
		j, rowTo[i] = rowTo[i], j

		if i == startRow {
			break
		}
	}
}
