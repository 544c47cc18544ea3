// Package atlas maps sector ids to places: a display name, coordinates and
// a typical pollution profile used to seed the development backend.
package atlas

import (
	"fmt"
	"math"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// Place describes one monitored sector.
type Place struct {
	ID           int     `toml:"id"`
	Name         string  `toml:"name"`
	Lat          float64 `toml:"lat"`
	Lon          float64 `toml:"lon"`
	BasePM25     float64 `toml:"base_pm25"`
	TrafficIndex float64 `toml:"traffic_index"`
	WindSpeed    float64 `toml:"wind_speed"`
}

// Coordinates formats the location as degrees with hemisphere letters.
func (p Place) Coordinates() string {
	ns, ew := "N", "E"
	if p.Lat < 0 {
		ns = "S"
	}
	if p.Lon < 0 {
		ew = "W"
	}
	return fmt.Sprintf("%.4f°%s %.4f°%s", math.Abs(p.Lat), ns, math.Abs(p.Lon), ew)
}

// atlasFile is the top-level TOML structure.
type atlasFile struct {
	Sector []Place `toml:"sector"`
}

const defaultAtlasTOML = `# Sector atlas
# One [[sector]] block per monitored area.

[[sector]]
id = 1
name = "Delhi - Connaught Place"
lat = 28.6139
lon = 77.2090
base_pm25 = 285
traffic_index = 0.85
wind_speed = 1.2

[[sector]]
id = 2
name = "Noida"
lat = 28.5355
lon = 77.3910
base_pm25 = 230
traffic_index = 0.7
wind_speed = 1.8

[[sector]]
id = 3
name = "Gurgaon"
lat = 28.4595
lon = 77.0266
base_pm25 = 210
traffic_index = 0.75
wind_speed = 2.1

[[sector]]
id = 4
name = "North Delhi"
lat = 28.7041
lon = 77.1025
base_pm25 = 260
traffic_index = 0.6
wind_speed = 1.5

[[sector]]
id = 5
name = "South Delhi"
lat = 28.5245
lon = 77.1855
base_pm25 = 190
traffic_index = 0.55
wind_speed = 2.4

[[sector]]
id = 6
name = "Mumbai"
lat = 19.0760
lon = 72.8777
base_pm25 = 140
traffic_index = 0.65
wind_speed = 3.6

[[sector]]
id = 7
name = "Bangalore"
lat = 12.9716
lon = 77.5946
base_pm25 = 95
traffic_index = 0.5
wind_speed = 3.1

[[sector]]
id = 8
name = "Kolkata"
lat = 22.5726
lon = 88.3639
base_pm25 = 170
traffic_index = 0.45
wind_speed = 2.6
`

// Atlas is an immutable id-indexed set of places.
type Atlas struct {
	places []Place
	byID   map[int]Place
}

// Default returns the built-in atlas.
func Default() *Atlas {
	a, err := Parse([]byte(defaultAtlasTOML))
	if err != nil {
		panic(fmt.Sprintf("built-in atlas: %v", err))
	}
	return a
}

// Load reads an atlas file, or returns the built-in one when path is empty.
func Load(path string) (*Atlas, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read atlas: %w", err)
	}
	return Parse(data)
}

// Parse decodes TOML bytes into an atlas.
func Parse(data []byte) (*Atlas, error) {
	var f atlasFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse atlas: %w", err)
	}
	if len(f.Sector) == 0 {
		return nil, fmt.Errorf("no sectors defined in atlas")
	}
	a := &Atlas{byID: make(map[int]Place, len(f.Sector))}
	for i, p := range f.Sector {
		if p.ID <= 0 {
			return nil, fmt.Errorf("sector[%d]: id must be positive", i)
		}
		if strings.TrimSpace(p.Name) == "" {
			return nil, fmt.Errorf("sector[%d] id %d: name is required", i, p.ID)
		}
		if _, dup := a.byID[p.ID]; dup {
			return nil, fmt.Errorf("sector[%d]: duplicate id %d", i, p.ID)
		}
		a.byID[p.ID] = p
		a.places = append(a.places, p)
	}
	sort.Slice(a.places, func(i, j int) bool { return a.places[i].ID < a.places[j].ID })
	return a, nil
}

func (a *Atlas) Lookup(id int) (Place, bool) {
	if a == nil {
		return Place{}, false
	}
	p, ok := a.byID[id]
	return p, ok
}

// Places returns every place ordered by id.
func (a *Atlas) Places() []Place {
	if a == nil {
		return nil
	}
	return append([]Place(nil), a.places...)
}

func (a *Atlas) Len() int {
	if a == nil {
		return 0
	}
	return len(a.places)
}
