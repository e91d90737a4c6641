package ward

import (
	"encoding/json"
	"fmt"
)

// Point is a WGS84 coordinate.
type Point struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
}

// Polygon is a closed ring of vertices describing a ward boundary. The ring
// is implicitly closed; the last vertex does not repeat the first.
type Polygon []Point

// ParsePolygon decodes a polygon from its JSON representation.
func ParsePolygon(data []byte) (Polygon, error) {
	var p Polygon
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse polygon: %w", err)
	}
	if len(p) < 3 {
		return nil, fmt.Errorf("polygon needs at least 3 vertices, got %d", len(p))
	}
	return p, nil
}

// MarshalJSON encodes the polygon for storage.
func (p Polygon) Marshal() ([]byte, error) {
	return json.Marshal([]Point(p))
}

// Contains reports whether the point (lat, lon) lies inside the polygon,
// using the even-odd ray casting rule. Points on an edge may land on either
// side; ward boundaries follow streets and an ~11m rounding is applied by
// the resolver anyway.
func (p Polygon) Contains(lat, lon float64) bool {
	if len(p) < 3 {
		return false
	}

	inside := false
	j := len(p) - 1
	for i := 0; i < len(p); i++ {
		yi, xi := p[i].Latitude, p[i].Longitude
		yj, xj := p[j].Latitude, p[j].Longitude

		if (yi > lat) != (yj > lat) &&
			lon < (xj-xi)*(lat-yi)/(yj-yi)+xi {
			inside = !inside
		}
		j = i
	}
	return inside
}
