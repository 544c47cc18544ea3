package dashboard

import "time"

// DefaultInterval is the background refresh period.
const DefaultInterval = 10 * time.Second

// Timer asks the view layer to deliver Tick(Epoch) after the given delay.
type Timer struct {
	Epoch uint64
	After time.Duration
}

// PollingScheduler owns the one live timer and the per-category in-flight
// counts. Rearm starts a new epoch; ticks from older epochs are ignored and
// not re-armed, which is how the previous timer is torn down.
type PollingScheduler struct {
	interval time.Duration
	epoch    uint64
	inFlight map[Category]int
}

func NewPollingScheduler(interval time.Duration) *PollingScheduler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &PollingScheduler{interval: interval, inFlight: make(map[Category]int)}
}

func (p *PollingScheduler) Interval() time.Duration { return p.interval }
func (p *PollingScheduler) Epoch() uint64           { return p.epoch }

func (p *PollingScheduler) Rearm() Timer {
	p.epoch++
	return Timer{Epoch: p.epoch, After: p.interval}
}

// Accept reports whether epoch belongs to the live timer.
func (p *PollingScheduler) Accept(epoch uint64) bool {
	return epoch != 0 && epoch == p.epoch
}

// Next re-arms the live timer for another period.
func (p *PollingScheduler) Next() Timer {
	return Timer{Epoch: p.epoch, After: p.interval}
}

// TryAcquire claims c for a background refresh; it fails while an earlier
// request of the same category is outstanding.
func (p *PollingScheduler) TryAcquire(c Category) bool {
	if p.inFlight[c] > 0 {
		return false
	}
	p.inFlight[c]++
	return true
}

// Acquire claims c unconditionally; user intents always issue.
func (p *PollingScheduler) Acquire(c Category) {
	p.inFlight[c]++
}

func (p *PollingScheduler) Release(c Category) {
	if p.inFlight[c] > 0 {
		p.inFlight[c]--
	}
}

func (p *PollingScheduler) InFlight(c Category) int { return p.inFlight[c] }
