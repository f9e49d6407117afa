// Package zone — geometry.go contains pure geographic computation helpers.
package zone

import (
	"math"

	"ghaseel/internal/types"
)

const earthRadiusKm = 6371.0

// HaversineKm returns the great-circle distance in kilometres between two
// points specified in decimal degrees.
func HaversineKm(a, b types.Point) float64 {
	dLat := degreesToRadians(b.Lat - a.Lat)
	dLng := degreesToRadians(b.Lng - a.Lng)

	rLat1 := degreesToRadians(a.Lat)
	rLat2 := degreesToRadians(b.Lat)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rLat1)*math.Cos(rLat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// pointInPolygon is the standard ray cast: a horizontal ray from p crosses
// the boundary an odd number of times iff p is inside. Vertices are treated
// as (lat, lng); the polygon closes itself from the last vertex to the first.
func pointInPolygon(p types.Point, poly []types.Point) bool {
	if len(poly) < 3 {
		return false
	}
	inside := false
	j := len(poly) - 1
	for i := 0; i < len(poly); i++ {
		pi, pj := poly[i], poly[j]
		if (pi.Lng > p.Lng) != (pj.Lng > p.Lng) &&
			p.Lat < (pj.Lat-pi.Lat)*(p.Lng-pi.Lng)/(pj.Lng-pi.Lng)+pi.Lat {
			inside = !inside
		}
		j = i
	}
	return inside
}
