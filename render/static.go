package render

import (
	"fmt"
	"net/url"
	"strconv"

	"terrawatch/models"
)

// StaticImageRenderer draws a single exported satellite image centered on the
// zone. The overlay is positioned in image pixels.
type StaticImageRenderer struct {
	width, height int
}

func NewStaticImageRenderer(width, height int) *StaticImageRenderer {
	return &StaticImageRenderer{width: width, height: height}
}

func (r *StaticImageRenderer) Kind() Kind { return KindStatic }

func (r *StaticImageRenderer) Render(zone models.Zone, triggered bool) (Frame, error) {
	if r.width <= 0 || r.height <= 0 {
		return Frame{}, fmt.Errorf("invalid image size %dx%d", r.width, r.height)
	}
	minX, minY, maxX, maxY := r.BBox(zone)

	q := url.Values{}
	q.Set("bbox", fmt.Sprintf("%s,%s,%s,%s", ftoa(minX), ftoa(minY), ftoa(maxX), ftoa(maxY)))
	q.Set("bboxSR", strconv.Itoa(EpsgNumber))
	q.Set("imageSR", strconv.Itoa(EpsgNumber))
	q.Set("size", fmt.Sprintf("%d,%d", r.width, r.height))
	q.Set("format", "jpg")
	q.Set("f", "image")

	f := Frame{
		Kind:     KindStatic,
		Lat:      zone.Lat,
		Lon:      zone.Lon,
		Zoom:     zone.Zoom,
		Width:    r.width,
		Height:   r.height,
		ImageURL: EsriImageryExport + "?" + q.Encode(),
	}
	if triggered {
		o := changeOverlay(zone)
		o.X = float64(r.width) / 2
		o.Y = float64(r.height) / 2
		o.RadiusPx = GroundToProjected(o.RadiusM, zone.Lat) / ResolutionAtZoom(zone.Zoom)
		f.Overlay = o
	}
	return f, nil
}

// BBox returns the Web Mercator extent (minX, minY, maxX, maxY) of the image.
func (r *StaticImageRenderer) BBox(zone models.Zone) (minX, minY, maxX, maxY float64) {
	c := Wgs84{Lat: zone.Lat, Lon: zone.Lon}.ToWebMercator()
	res := ResolutionAtZoom(zone.Zoom)
	halfW := float64(r.width) / 2 * res
	halfH := float64(r.height) / 2 * res
	return c.X - halfW, c.Y - halfH, c.X + halfW, c.Y + halfH
}

func ftoa(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }
