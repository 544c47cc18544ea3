package dashboard

import "time"

// HistoryCapacity bounds the trend buffer.
const HistoryCapacity = 20

// HistoryEntry is one committed status reading.
type HistoryEntry struct {
	Time     string
	At       time.Time
	PM25     float64
	PM10     float64
	NO2      float64
	CO       float64
	SectorID int
	Sector   string
}

// MetricsHistoryBuffer is a FIFO of the most recent readings, in the
// order their fetches resolved.
type MetricsHistoryBuffer struct {
	entries  []HistoryEntry
	capacity int
}

func NewMetricsHistoryBuffer(capacity int) *MetricsHistoryBuffer {
	if capacity <= 0 {
		capacity = HistoryCapacity
	}
	return &MetricsHistoryBuffer{capacity: capacity}
}

func (b *MetricsHistoryBuffer) Append(e HistoryEntry) {
	b.entries = append(b.entries, e)
	if over := len(b.entries) - b.capacity; over > 0 {
		b.entries = append(b.entries[:0:0], b.entries[over:]...)
	}
}

func (b *MetricsHistoryBuffer) Len() int { return len(b.entries) }

// Entries returns a copy, oldest first.
func (b *MetricsHistoryBuffer) Entries() []HistoryEntry {
	return append([]HistoryEntry(nil), b.entries...)
}

// Direction of a pollutant between the two newest entries.
type Direction int

const (
	DirectionUnknown Direction = iota
	DirectionRising
	DirectionFalling
)

func (d Direction) Arrow() string {
	switch d {
	case DirectionRising:
		return "↑"
	case DirectionFalling:
		return "↓"
	default:
		return "·"
	}
}

// Trend compares the latest and previous entries; equal values count as rising.
func Trend(entries []HistoryEntry, value func(HistoryEntry) float64) Direction {
	if len(entries) < 2 {
		return DirectionUnknown
	}
	if value(entries[len(entries)-1]) >= value(entries[len(entries)-2]) {
		return DirectionRising
	}
	return DirectionFalling
}
