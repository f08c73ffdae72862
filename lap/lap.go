/*
Package lap provides pluggable minimum cost linear assignment solvers over
dense cost matrices.  Cells holding NaN or Inf mark row/column pairs that may
never be matched, matrices may be rectangular or empty in either dimension,
and entire rows or columns may be unassignable.  All backends are normalized
to the same observable contract regardless of whether their native algorithm
understands non finite costs.
*/
package lap

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/mat"
)

var (
	// ErrNoSolvers is returned when a Config is built without a single
	// available backend
	ErrNoSolvers = errors.New("no assignment solvers are available")
	// ErrUnknownSolver is returned when solving with a name that was never
	// registered
	ErrUnknownSolver = errors.New("unknown assignment solver")
	// ErrSolverUnavailable is returned when a registered backend cannot be
	// used in this process
	ErrSolverUnavailable = errors.New("assignment solver is unavailable")
	// errNotOptimal is reported by backends that cannot guarantee an optimal
	// solution for the given matrix and triggers a re-solve with the
	// default backend
	errNotOptimal = errors.New("solver did not reach an optimal solution")
)

// Solver solves minimum cost bipartite matching over a dense cost matrix.
type Solver interface {
	// Name returns the identifier the backend is registered under
	Name() string
	// Available reports whether the backend can be used in this process
	Available() bool
	// Solve returns the row and column indices of a minimum cost matching
	// of maximum feasible size.  Pairs whose cost is not finite never
	// appear in the result.
	Solve(costs *mat.Dense) (rows, cols []int, err error)
}

// Config holds the solver registry and the process wide default backend.
// It is built once at initialization and read only afterwards.
type Config struct {
	solvers   map[string]Solver
	available []string
	def       string
}

// NewConfig builds a Config from the given solvers in preference order. The
// default backend is the first available one.  Returns ErrNoSolvers when
// none of the given backends are available.
func NewConfig(solvers ...Solver) (*Config, error) {

	c := &Config{
		solvers: make(map[string]Solver),
	}

	for _, s := range solvers {

		name := strings.ToLower(s.Name())

		if _, ok := c.solvers[name]; ok {
			return nil, fmt.Errorf("duplicate solver name %q", name)
		}

		c.solvers[name] = s

		if s.Available() {
			c.available = append(c.available, name)
		}
	}

	if len(c.available) == 0 {
		return nil, ErrNoSolvers
	}

	c.def = c.available[0]

	return c, nil
}

// NewDefaultConfig builds a Config with the standard backends in preference
// order lapjv, hungarian, ssp.
func NewDefaultConfig() (*Config, error) {
	return NewConfig(&LAPJV{}, &Hungarian{}, &SSP{})
}

// Default returns the name of the default backend.
func (c *Config) Default() string {
	return c.def
}

// Available returns the names of the usable backends in preference order.
func (c *Config) Available() []string {
	names := make([]string, len(c.available))
	copy(names, c.available)
	return names
}

// Solve runs the named backend over the cost matrix.  An empty name selects
// the default backend, names are case insensitive.  A backend that fails to
// reach an optimal solution is silently replaced by re-solving the original
// matrix with the default backend, provided the default is a different
// backend.
func (c *Config) Solve(costs *mat.Dense, name string) (rows, cols []int, err error) {

	if name == "" {
		name = c.def
	}

	name = strings.ToLower(name)

	s, ok := c.solvers[name]

	if !ok {
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownSolver, name)
	}

	if !s.Available() {
		return nil, nil, fmt.Errorf("%w: %q", ErrSolverUnavailable, name)
	}

	// gonum matrices cannot be empty, a nil matrix stands in for a frame
	// without objects or hypotheses
	if costs == nil {
		return []int{}, []int{}, nil
	}

	rows, cols, err = s.Solve(costs)

	if errors.Is(err, errNotOptimal) && name != c.def {
		return c.Solve(costs, c.def)
	}

	return rows, cols, err
}

// isFinite reports whether v is neither NaN nor an infinity
func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// replaceNonFinite returns a copy of the matrix with every non finite cell
// substituted by a sentinel cost of twice the largest finite cost plus one,
// or one when the matrix holds no finite cost at all.  The sentinel keeps
// unassignable pairs out of the optimum unless a square solver is forced to
// take them, and prevents finite only backends from hanging on rows or
// columns that are entirely unassignable.  The input is returned unchanged
// when every cell is already finite.
func replaceNonFinite(costs *mat.Dense) *mat.Dense {

	r, c := costs.Dims()

	maxFinite := 0.0
	hasFinite := false
	hasInvalid := false

	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {

			v := costs.At(i, j)

			if !isFinite(v) {
				hasInvalid = true
				continue
			}

			if !hasFinite || v > maxFinite {
				maxFinite = v
			}

			hasFinite = true
		}
	}

	if !hasInvalid {
		return costs
	}

	sentinel := 1.0

	if hasFinite {
		sentinel = 2*maxFinite + 1
	}

	out := mat.NewDense(r, c, nil)

	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {

			v := costs.At(i, j)

			if isFinite(v) {
				out.Set(i, j, v)
			} else {
				out.Set(i, j, sentinel)
			}
		}
	}

	return out
}

// scaleExponent computes the power of ten exponent used to convert float
// costs to integers for integer only backends.  The exponent is derived
// from the smallest nonzero difference between distinct finite cost values
// on a log10 scale, clamped to at most 8 decimal digits and never positive,
// so relative cost ordering survives truncation without scaling costs up.
func scaleExponent(costs *mat.Dense) int {

	r, c := costs.Dims()

	var vals []float64

	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if v := costs.At(i, j); isFinite(v) {
				vals = append(vals, v)
			}
		}
	}

	sort.Float64s(vals)

	// collapse to distinct values
	unique := vals[:0]

	for i, v := range vals {
		if i == 0 || v != vals[i-1] {
			unique = append(unique, v)
		}
	}

	minDiff := 1.0

	switch {
	case len(unique) == 1:
		minDiff = unique[0]
	case len(unique) > 1:
		minDiff = unique[1] - unique[0]
		for i := 2; i < len(unique); i++ {
			if d := unique[i] - unique[i-1]; d < minDiff {
				minDiff = d
			}
		}
	}

	e := 0

	if minDiff != 0.0 {
		e = int(math.Log10(math.Abs(minDiff)))
		if e < 0 {
			e--
		}
	}

	if e < -8 {
		e = -8
	}

	if e > 0 {
		e = 0
	}

	return e
}
