package postgres

import "github.com/strettonotes/strettonotes/internal/observability"

// observe wraps a logical DB op with latency/error metrics when a Prom
// registry is wired in. Repos constructed with nil metrics (tests) skip it.
func observe(p *observability.Prom, op string, fn func() error) error {
	if p == nil {
		return fn()
	}

	return p.ObserveDB(op, fn)
}
