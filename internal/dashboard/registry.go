package dashboard

import "github.com/jask/airwatch/internal/airquality"

// SectorRegistryCache keeps the latest full sector list. Lists are replaced
// wholesale; responses issued before the last applied one are rejected.
type SectorRegistryCache struct {
	sectors []airquality.Sector
	loaded  bool
	applied uint64
	seen    map[int]struct{}
}

// Accept reports whether a response with issue sequence seq is not older
// than the last applied one. Only Replace moves the applied mark, so a
// failed response never shadows an older success.
func (c *SectorRegistryCache) Accept(seq uint64) bool {
	return seq >= c.applied
}

// Replace swaps in the list fetched by request seq.
func (c *SectorRegistryCache) Replace(seq uint64, sectors []airquality.Sector) {
	c.applied = max(c.applied, seq)
	if c.seen == nil {
		c.seen = make(map[int]struct{})
	}
	c.sectors = append([]airquality.Sector(nil), sectors...)
	for _, s := range sectors {
		c.seen[s.ID] = struct{}{}
	}
	c.loaded = true
}

func (c *SectorRegistryCache) Loaded() bool { return c.loaded }

// Sectors returns a copy of the cached list.
func (c *SectorRegistryCache) Sectors() []airquality.Sector {
	return append([]airquality.Sector(nil), c.sectors...)
}

// Known reports whether id is, or once was, in a loaded list.
func (c *SectorRegistryCache) Known(id int) bool {
	_, ok := c.seen[id]
	return ok
}

func (c *SectorRegistryCache) Lookup(id int) (airquality.Sector, bool) {
	for _, s := range c.sectors {
		if s.ID == id {
			return s, true
		}
	}
	return airquality.Sector{}, false
}

// Neighbor returns the id delta rows away from id, wrapping around. An id not
// in the list resolves to the first row.
func (c *SectorRegistryCache) Neighbor(id, delta int) (int, bool) {
	n := len(c.sectors)
	if n == 0 {
		return 0, false
	}
	idx := -1
	for i, s := range c.sectors {
		if s.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return c.sectors[0].ID, true
	}
	next := ((idx+delta)%n + n) % n
	return c.sectors[next].ID, true
}
