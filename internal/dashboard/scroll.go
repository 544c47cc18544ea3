package dashboard

import "sort"

// Viewport is the scrollable surface the dashboard keeps steady across
// refreshes.
type Viewport interface {
	ScrollOffset() int
	SetScrollOffset(offset int)
}

// ScrollPositionGuard captures an offset before a refresh and restores it
// on the first commit after every fetch of that refresh has resolved.
type ScrollPositionGuard struct {
	next   uint64
	guards map[uint64]*scrollCapture
}

type scrollCapture struct {
	offset  int
	pending int
}

// Capture records the current offset and returns a ticket for it. A nil
// viewport yields ticket 0, which is ignored everywhere.
func (g *ScrollPositionGuard) Capture(v Viewport) uint64 {
	if v == nil {
		return 0
	}
	if g.guards == nil {
		g.guards = make(map[uint64]*scrollCapture)
	}
	g.next++
	g.guards[g.next] = &scrollCapture{offset: v.ScrollOffset()}
	return g.next
}

// Attach holds the ticket open until a matching Resolve.
func (g *ScrollPositionGuard) Attach(ticket uint64) {
	if c, ok := g.guards[ticket]; ok {
		c.pending++
	}
}

func (g *ScrollPositionGuard) Resolve(ticket uint64) {
	if c, ok := g.guards[ticket]; ok && c.pending > 0 {
		c.pending--
	}
}

// Restore applies every settled capture, oldest first, so the most recent
// capture wins.
func (g *ScrollPositionGuard) Restore(v Viewport) {
	if v == nil || len(g.guards) == 0 {
		return
	}
	ready := make([]uint64, 0, len(g.guards))
	for ticket, c := range g.guards {
		if c.pending == 0 {
			ready = append(ready, ticket)
		}
	}
	sort.Slice(ready, func(i, j int) bool { return ready[i] < ready[j] })
	for _, ticket := range ready {
		v.SetScrollOffset(g.guards[ticket].offset)
		delete(g.guards, ticket)
	}
}

// Pending reports how many captures are waiting to be restored.
func (g *ScrollPositionGuard) Pending() int { return len(g.guards) }
