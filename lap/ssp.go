package lap

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// maxScaled bounds scaled integer costs to the range where float64 to int64
// truncation is exact
const maxScaled = 1 << 53

// SSP is an integer only successive shortest path backend.  Float costs are
// scaled to integers using the exponent from scaleExponent and only finite
// arcs are submitted, so relative cost ordering is preserved while bounding
// overflow risk.  Like other integer assignment codes it requires a perfect
// matching over the submitted arcs; when one does not exist it reports a non
// optimal solve, which makes Config fall back to the default backend on the
// original unscaled matrix.
type SSP struct{}

// Name returns the backend identifier
func (s *SSP) Name() string {
	return "ssp"
}

// Available reports whether the backend can be used
func (s *SSP) Available() bool {
	return true
}

// Solve returns a minimum cost perfect matching over the scaled integer
// arcs, or errNotOptimal when no perfect matching exists
func (s *SSP) Solve(costs *mat.Dense) ([]int, []int, error) {

	nRows, nCols := costs.Dims()

	if nRows == 0 || nCols == 0 {
		return []int{}, []int{}, nil
	}

	factor := math.Pow(10, math.Abs(float64(scaleExponent(costs))))

	// scale and truncate the finite arcs
	arcs := make([][]int64, nRows)
	ok := make([][]bool, nRows)

	for i := 0; i < nRows; i++ {

		arcs[i] = make([]int64, nCols)
		ok[i] = make([]bool, nCols)

		for j := 0; j < nCols; j++ {

			v := costs.At(i, j)

			if !isFinite(v) {
				continue
			}

			scaled := v * factor

			if scaled > maxScaled {
				return nil, nil, fmt.Errorf("scaled cost %v overflows: %w",
					scaled, errNotOptimal)
			}

			arcs[i][j] = int64(scaled)
			ok[i][j] = true
		}
	}

	rowTo := make([]int, nRows)
	colTo := make([]int, nCols)

	for i := range rowTo {
		rowTo[i] = -1
	}

	for j := range colTo {
		colTo[j] = -1
	}

	u := make([]int64, nRows)
	v := make([]int64, nCols)

	for startRow := 0; startRow < nRows; startRow++ {
		if !augmentRowInt(arcs, ok, startRow, rowTo, colTo, u, v) {
			return nil, nil, fmt.Errorf("row %d has no augmenting path: %w",
				startRow, errNotOptimal)
		}
	}

	rows := make([]int, 0, nRows)
	cols := make([]int, 0, nRows)

	for i := 0; i < nRows; i++ {
		rows = append(rows, i)
		cols = append(cols, rowTo[i])
	}

	return rows, cols, nil
}

// augmentRowInt is the integer arc variant of augmentRow, reporting whether
// an augmenting path from startRow was found
func augmentRowInt(arcs [][]int64, ok [][]bool, startRow int,
	rowTo, colTo []int, u, v []int64) bool {

	nCols := len(colTo)

	const unreached = int64(math.MaxInt64)

	dist := make([]int64, nCols)
	pred := make([]int, nCols)
	done := make([]bool, nCols)

	for j := 0; j < nCols; j++ {
		dist[j] = unreached
		pred[j] = -1
	}

	for j := 0; j < nCols; j++ {
		if ok[startRow][j] {
			if d := arcs[startRow][j] - u[startRow] - v[j]; d < dist[j] {
				dist[j] = d
				pred[j] = startRow
			}
		}
	}

	endCol := -1

	for {
		j := -1
		minD := unreached

		for k := 0; k < nCols; k++ {
			if !done[k] && dist[k] < minD {
				minD = dist[k]
				j = k
			}
		}

		if j < 0 {
			return false
		}

		done[j] = true

		if colTo[j] < 0 {
			endCol = j
			break
		}

		i := colTo[j]

		for k := 0; k < nCols; k++ {

			if done[k] || !ok[i][k] {
				continue
			}

			if d := dist[j] + arcs[i][k] - u[i] - v[k]; d < dist[k] {
				dist[k] = d
				pred[k] = i
			}
		}
	}

	d := dist[endCol]
	u[startRow] += d

	for j := 0; j < nCols; j++ {
		if done[j] && j != endCol {
			u[colTo[j]] += d - dist[j]
			v[j] -= d - dist[j]
		}
	}

	for j := endCol; ; {

		i := pred[j]
		colTo[j] = i
		j, rowTo[i] = rowTo[i], j

		if i == startRow {
			break
		}
	}

	return true
}
