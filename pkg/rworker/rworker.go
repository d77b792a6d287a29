package rworker

import "golang.org/x/sync/errgroup"

// Fork runs fn on a goroutine of g when g is below its limit and inline
// otherwise. A task blocked on a full group while holding a slot would never
// be joined in a recursive fork-join, so Fork never waits for a slot.
func Fork(g *errgroup.Group, fn func() error) error {
	if g.TryGo(fn) {
		return nil
	}
	return fn()
}
