package transport

import "github.com/1siamBot/colonysim/engine/core"

// Tick advances every transport one step toward its destination, enforcing
// the "occupied" invariant that at most one transport may move into a
// given tile in a single tick, then hands arrived transports (empty Path)
// to deliver. A transport whose delivery attempt fails (destination
// momentarily full or gone) asks reroute for a path back from its
// destination to its source; on success it swaps src and dest and rides
// that path instead, effectively returning the shipment to where it came
// from. If no return route exists either, it just waits at its
// destination and retries both next tick.
func Tick(store *core.EntityStore[Transport], deliver func(t *Transport) bool, reroute func(t *Transport) ([]core.Pos, bool)) {
	occupied := map[core.Pos]bool{}
	store.Retain(func(t *Transport) bool {
		if len(t.Path) == 0 {
			if deliver(t) {
				return false
			}
			if path, ok := reroute(t); ok {
				t.Src, t.Dest = t.Dest, t.Src
				t.Path = path
			}
			return true
		}
		next := t.Path[len(t.Path)-1]
		if occupied[next] {
			return true
		}
		occupied[next] = true
		t.Path = t.Path[:len(t.Path)-1]
		return true
	})
}
