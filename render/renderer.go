// Package render describes what the dashboard draws for a zone: an interactive
// tiled map or a static satellite image, plus the change overlay once an
// analysis has been triggered.
package render

import (
	"errors"
	"fmt"
	"strings"

	"terrawatch/models"
)

type Kind string

const (
	KindMap    Kind = "map"
	KindStatic Kind = "static"
)

var ErrUnknownKind = errors.New("unknown renderer kind")

const (
	// EsriImageryTiles is the Esri World Imagery XYZ template used by the map.
	EsriImageryTiles = "https://server.arcgisonline.com/ArcGIS/rest/services/World_Imagery/MapServer/tile/{z}/{y}/{x}"
	// EsriImageryExport is the MapServer export endpoint used for static images.
	EsriImageryExport = "https://server.arcgisonline.com/ArcGIS/rest/services/World_Imagery/MapServer/export"
	OSMTiles          = "https://tile.openstreetmap.org/{z}/{x}/{y}.png"
)

// Change overlay drawn at the zone center after a trigger.
const (
	OverlayRadiusM     = 2000
	OverlayFillOpacity = 0.3
	OverlayColor       = "red"
	OverlayPopup       = "Detected change zone"
)

// Layer is a base map layer.
type Layer struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	Attribution string `json:"attribution"`
}

// Overlay marks the detected change. X, Y and RadiusPx are only set for
// static images, in image pixels.
type Overlay struct {
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	RadiusM     float64 `json:"radiusM"`
	Color       string  `json:"color"`
	FillOpacity float64 `json:"fillOpacity"`
	Popup       string  `json:"popup"`

	X        float64 `json:"x,omitempty"`
	Y        float64 `json:"y,omitempty"`
	RadiusPx float64 `json:"radiusPx,omitempty"`
}

// Frame is the renderer output for one render pass.
type Frame struct {
	Kind   Kind    `json:"kind"`
	Lat    float64 `json:"lat"`
	Lon    float64 `json:"lon"`
	Zoom   int     `json:"zoom"`
	Width  int     `json:"width"`
	Height int     `json:"height"`

	Layers   []Layer  `json:"layers,omitempty"`   // map only
	ImageURL string   `json:"imageUrl,omitempty"` // static only
	Overlay  *Overlay `json:"overlay,omitempty"`
}

// Renderer turns a zone and the trigger state into a Frame.
type Renderer interface {
	Kind() Kind
	Render(zone models.Zone, triggered bool) (Frame, error)
}

// Default display size, in pixels.
const (
	DefaultWidth  = 700
	DefaultHeight = 500
)

// New returns the renderer registered under kind.
func New(kind string) (Renderer, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(kind))) {
	case KindMap, "":
		return NewMapRenderer(DefaultWidth, DefaultHeight), nil
	case KindStatic:
		return NewStaticImageRenderer(DefaultWidth, DefaultHeight), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}

func changeOverlay(zone models.Zone) *Overlay {
	return &Overlay{
		Lat:         zone.Lat,
		Lon:         zone.Lon,
		RadiusM:     OverlayRadiusM,
		Color:       OverlayColor,
		FillOpacity: OverlayFillOpacity,
		Popup:       OverlayPopup,
	}
}
