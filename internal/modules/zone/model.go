// README: Service zone model with typed geometry.
package zone

import (
	"encoding/json"

	"ghaseel/internal/types"
)

type GeometryType string

const (
	GeometryCenter  GeometryType = "center"
	GeometryPolygon GeometryType = "polygon"
)

// Geometry is a zone's coverage shape: a center with a radius, or a closed
// polygon. The zero value is invalid and contains nothing, so a zone whose
// stored geometry failed to parse is simply never matched.
type Geometry struct {
	Type     GeometryType
	Center   types.Point
	RadiusKm float64
	Polygon  []types.Point
}

type Zone struct {
	ID       types.ID
	NameEn   string
	NameAr   string
	Notes    string
	Geometry Geometry
}

// geometryDoc is the stored JSON shape of a zone geometry.
type geometryDoc struct {
	Type        string       `json:"type"`
	Lat         float64      `json:"lat"`
	Lng         float64      `json:"lng"`
	RadiusKm    float64      `json:"radius_km"`
	Coordinates [][2]float64 `json:"coordinates"` // [lat, lng] pairs
}

// ParseGeometry decodes a stored geometry document. Parsing happens once, at
// the store boundary; anything malformed yields the invalid zero Geometry
// rather than an error, so resolution can continue across remaining zones.
func ParseGeometry(raw []byte) Geometry {
	var doc geometryDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return Geometry{}
	}
	switch GeometryType(doc.Type) {
	case GeometryCenter:
		if doc.RadiusKm <= 0 {
			return Geometry{}
		}
		return Geometry{
			Type:     GeometryCenter,
			Center:   types.Point{Lat: doc.Lat, Lng: doc.Lng},
			RadiusKm: doc.RadiusKm,
		}
	case GeometryPolygon:
		if len(doc.Coordinates) < 3 {
			return Geometry{}
		}
		pts := make([]types.Point, len(doc.Coordinates))
		for i, c := range doc.Coordinates {
			pts[i] = types.Point{Lat: c[0], Lng: c[1]}
		}
		return Geometry{Type: GeometryPolygon, Polygon: pts}
	default:
		return Geometry{}
	}
}

func (g Geometry) Valid() bool {
	return g.Type == GeometryCenter || g.Type == GeometryPolygon
}

// CenterPoint returns a representative center for the zone, used for
// distance-fee computation. Polygon zones use the vertex centroid.
func (g Geometry) CenterPoint() (types.Point, bool) {
	switch g.Type {
	case GeometryCenter:
		return g.Center, true
	case GeometryPolygon:
		var lat, lng float64
		for _, p := range g.Polygon {
			lat += p.Lat
			lng += p.Lng
		}
		n := float64(len(g.Polygon))
		return types.Point{Lat: lat / n, Lng: lng / n}, true
	default:
		return types.Point{}, false
	}
}

// Contains reports whether the point falls inside the zone's coverage.
// Points exactly on a polygon edge may classify either way.
func (g Geometry) Contains(p types.Point) bool {
	switch g.Type {
	case GeometryCenter:
		return HaversineKm(p, g.Center) <= g.RadiusKm
	case GeometryPolygon:
		return pointInPolygon(p, g.Polygon)
	default:
		return false
	}
}
