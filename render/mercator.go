package render

import "math"

// Web Mercator (EPSG:3857) constants.
const (
	Equator    = 40075016.685578 // Earth's equator in meters
	EpsgNumber = 3857
	TileSize   = 256
)

// WebMercator represents coordinates in Web Mercator projection
type WebMercator struct {
	X float64 // meters east
	Y float64 // meters north
}

// Wgs84 represents WGS84 lat/lon coordinates
type Wgs84 struct {
	Lat float64
	Lon float64
}

// ToWebMercator converts WGS84 to Web Mercator
func (w Wgs84) ToWebMercator() WebMercator {
	x := w.Lon / 360.0 * Equator
	latRad := w.Lat * math.Pi / 180.0
	y := math.Log(math.Tan(math.Pi/4+latRad/2)) / (2 * math.Pi) * Equator
	return WebMercator{X: x, Y: y}
}

// ResolutionAtZoom returns projected meters per pixel at given zoom level
func ResolutionAtZoom(zoom int) float64 {
	return Equator / float64(int(TileSize)<<zoom)
}

// GroundToProjected scales a ground distance at lat to Web Mercator meters.
func GroundToProjected(meters, lat float64) float64 {
	return meters / math.Cos(lat*math.Pi/180.0)
}
