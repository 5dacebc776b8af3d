// Package geo provides the spherical-earth distance math used by spatial
// clustering. Meters-level accuracy over cluster-scale distances is
// sufficient here; this is not a geodesy library.
package geo

import (
	"math"

	"github.com/coresick/lifeline/internal/model"
)

// earthRadiusMeters is the mean earth radius of the spherical approximation.
const earthRadiusMeters = 6371000.0

// DistanceMeters returns the haversine great-circle distance between two
// coordinates in meters.
func DistanceMeters(a, b model.Coordinate) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusMeters * math.Asin(math.Min(1, math.Sqrt(h)))
}

// Centroid returns the arithmetic mean of the coordinates, or nil for an
// empty input. Adequate for cluster-scale extents where the curvature error
// is negligible.
func Centroid(coords []model.Coordinate) *model.Coordinate {
	if len(coords) == 0 {
		return nil
	}
	var sumLat, sumLon float64
	for _, c := range coords {
		sumLat += c.Lat
		sumLon += c.Lon
	}
	return &model.Coordinate{
		Lat: sumLat / float64(len(coords)),
		Lon: sumLon / float64(len(coords)),
	}
}
