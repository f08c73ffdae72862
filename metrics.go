package motmetrics

import (
	"errors"
	"fmt"
)

// ErrCycle is returned when the metric dependency graph contains a cycle
var ErrCycle = errors.New("metric dependency cycle")

// MetricFunc computes one metric over the event log.  deps holds the
// already computed value of every declared dependency, in declared order.
// Values are float64 scalars or map[string]float64 per object aggregates.
type MetricFunc func(events EventLog, deps []any) any

// metric is one registered computation node
type metric struct {
	name string
	deps []string
	fn   MetricFunc
}

// Registry holds named metric computations and their dependency graph.  It
// is built once and immutable during evaluation; the memoization cache is
// scoped to a single Evaluate call so results never leak across event logs.
type Registry struct {
	metrics map[string]*metric
	// registration order, used when no explicit metric list is requested
	order []string
}

// NewRegistry returns an empty metric registry
func NewRegistry() *Registry {

	return &Registry{
		metrics: make(map[string]*metric),
	}
}

// Register adds a named computation with its declared dependency names.
// Dependencies may be registered in any order as long as every name exists
// by the time Evaluate references it.
func (r *Registry) Register(name string, deps []string, fn MetricFunc) error {

	if fn == nil {
		return fmt.Errorf("no function given for metric %q", name)
	}

	if _, ok := r.metrics[name]; ok {
		return fmt.Errorf("metric %q is already registered", name)
	}

	r.metrics[name] = &metric{
		name: name,
		deps: append([]string(nil), deps...),
		fn:   fn,
	}

	r.order = append(r.order, name)

	return nil
}

// Names returns all registered metric names in registration order
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Evaluate computes the requested metrics over the event log and returns a
// mapping from each requested name to its value.  A nil names slice
// requests every registered metric.  Shared dependencies are computed once
// per call through memoization.
func (r *Registry) Evaluate(events EventLog, names []string) (map[string]any, error) {

	if names == nil {
		names = r.order
	}

	// resolve the dependency closure and reject cycles before computing
	if err := r.check(names); err != nil {
		return nil, err
	}

	cache := make(map[string]any)
	out := make(map[string]any, len(names))

	for _, name := range names {
		out[name] = r.compute(events, name, cache)
	}

	return out, nil
}

// check walks the dependency closure of the requested names, failing on the
// first unregistered dependency or cycle
func (r *Registry) check(names []string) error {

	const (
		white = iota
		grey
		black
	)

	state := make(map[string]int)

	var visit func(name, requester string) error

	visit = func(name, requester string) error {

		m, ok := r.metrics[name]

		if !ok {
			return fmt.Errorf("cannot find metric %q required by %q",
				name, requester)
		}

		switch state[name] {
		case grey:
			return fmt.Errorf("%w involving metric %q", ErrCycle, name)
		case black:
			return nil
		}

		state[name] = grey

		for _, dep := range m.deps {
			if err := visit(dep, name); err != nil {
				return err
			}
		}

		state[name] = black

		return nil
	}

	for _, name := range names {
		if err := visit(name, "evaluate"); err != nil {
			return err
		}
	}

	return nil
}

// compute evaluates one node recursively, caching each value under its name
// for the remainder of the call
func (r *Registry) compute(events EventLog, name string, cache map[string]any) any {

	if v, ok := cache[name]; ok {
		return v
	}

	m := r.metrics[name]

	vals := make([]any, len(m.deps))

	for i, dep := range m.deps {
		vals[i] = r.compute(events, dep, cache)
	}

	v := m.fn(events, vals)
	cache[name] = v

	return v
}
