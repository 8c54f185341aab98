package render

import "terrawatch/models"

// MapRenderer draws an interactive map with satellite and street layers.
type MapRenderer struct {
	width, height int
}

func NewMapRenderer(width, height int) *MapRenderer {
	return &MapRenderer{width: width, height: height}
}

func (r *MapRenderer) Kind() Kind { return KindMap }

func (r *MapRenderer) Render(zone models.Zone, triggered bool) (Frame, error) {
	f := Frame{
		Kind:   KindMap,
		Lat:    zone.Lat,
		Lon:    zone.Lon,
		Zoom:   zone.Zoom,
		Width:  r.width,
		Height: r.height,
		Layers: []Layer{
			{Name: "Satellite", URL: EsriImageryTiles, Attribution: "Esri Satellite Imagery"},
			{Name: "OpenStreetMap", URL: OSMTiles, Attribution: "&copy; OpenStreetMap contributors"},
		},
	}
	if triggered {
		f.Overlay = changeOverlay(zone)
	}
	return f, nil
}
