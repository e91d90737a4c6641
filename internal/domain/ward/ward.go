// Package ward models the administrative geography: zones aggregate wards,
// each ward owns a polygon boundary, and the resolver maps reported
// coordinates onto it.
package ward

import "fmt"

// Ward is the smallest administrative geography and the scope of a
// WARD_ENGINEER.
type Ward struct {
	id       uint
	name     string
	zoneID   uint
	boundary Polygon
	active   bool
}

func NewWard(name string, zoneID uint, boundary Polygon) (*Ward, error) {
	if len(name) == 0 {
		return nil, fmt.Errorf("ward name is required")
	}
	if zoneID == 0 {
		return nil, fmt.Errorf("zone ID is required")
	}
	if len(boundary) < 3 {
		return nil, fmt.Errorf("ward boundary needs at least 3 vertices")
	}

	return &Ward{
		name:     name,
		zoneID:   zoneID,
		boundary: boundary,
		active:   true,
	}, nil
}

func ReconstructWard(id uint, name string, zoneID uint, boundary Polygon, active bool) (*Ward, error) {
	if id == 0 {
		return nil, fmt.Errorf("ward ID cannot be zero")
	}
	return &Ward{
		id:       id,
		name:     name,
		zoneID:   zoneID,
		boundary: boundary,
		active:   active,
	}, nil
}

func (w *Ward) ID() uint           { return w.id }
func (w *Ward) Name() string       { return w.name }
func (w *Ward) ZoneID() uint       { return w.zoneID }
func (w *Ward) Boundary() Polygon  { return w.boundary }
func (w *Ward) IsActive() bool     { return w.active }

// Contains reports whether the coordinate lies inside the ward boundary.
func (w *Ward) Contains(lat, lon float64) bool {
	return w.boundary.Contains(lat, lon)
}

// Zone aggregates wards and is the scope of a ZONE_OFFICER.
type Zone struct {
	id   uint
	name string
}

func ReconstructZone(id uint, name string) (*Zone, error) {
	if id == 0 {
		return nil, fmt.Errorf("zone ID cannot be zero")
	}
	return &Zone{id: id, name: name}, nil
}

func (z *Zone) ID() uint     { return z.id }
func (z *Zone) Name() string { return z.name }
