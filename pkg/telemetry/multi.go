package telemetry

import "github.com/vango-dev/navkit/pkg/router"

// Multi returns an observer that forwards every pass to each non-nil
// observer in order.
func Multi(observers ...router.Observer) router.Observer {
	list := make([]router.Observer, 0, len(observers))
	for _, o := range observers {
		if o != nil {
			list = append(list, o)
		}
	}
	return multi(list)
}

type multi []router.Observer

func (m multi) ObservePass(p router.Pass) {
	for _, o := range m {
		o.ObservePass(p)
	}
}
