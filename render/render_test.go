package render

import (
	"math"
	"net/url"
	"strings"
	"testing"

	"terrawatch/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	dubai    = models.Zone{Name: "Dubai", Lat: 25.2048, Lon: 55.2708, Zoom: 12}
	amazonie = models.Zone{Name: "Amazonie", Lat: -3.465, Lon: -62.215, Zoom: 10}
)

func TestNew(t *testing.T) {
	r, err := New("map")
	require.NoError(t, err)
	assert.Equal(t, KindMap, r.Kind())

	r, err = New("")
	require.NoError(t, err)
	assert.Equal(t, KindMap, r.Kind())

	r, err = New(" Static ")
	require.NoError(t, err)
	assert.Equal(t, KindStatic, r.Kind())

	_, err = New("html")
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestRenderers_OverlayOnlyWhenTriggered(t *testing.T) {
	for _, r := range []Renderer{NewMapRenderer(700, 500), NewStaticImageRenderer(700, 500)} {
		t.Run(string(r.Kind()), func(t *testing.T) {
			idle, err := r.Render(dubai, false)
			require.NoError(t, err)
			assert.Nil(t, idle.Overlay)
			assert.Equal(t, dubai.Lat, idle.Lat)
			assert.Equal(t, dubai.Lon, idle.Lon)
			assert.Equal(t, dubai.Zoom, idle.Zoom)

			reported, err := r.Render(dubai, true)
			require.NoError(t, err)
			require.NotNil(t, reported.Overlay)
			assert.Equal(t, dubai.Lat, reported.Overlay.Lat)
			assert.Equal(t, dubai.Lon, reported.Overlay.Lon)
			assert.Equal(t, float64(2000), reported.Overlay.RadiusM)
			assert.Equal(t, 0.3, reported.Overlay.FillOpacity)
			assert.Equal(t, "red", reported.Overlay.Color)
		})
	}
}

func TestMapRenderer_Layers(t *testing.T) {
	f, err := NewMapRenderer(700, 500).Render(amazonie, false)
	require.NoError(t, err)

	require.Len(t, f.Layers, 2)
	assert.Equal(t, EsriImageryTiles, f.Layers[0].URL)
	assert.Equal(t, "Esri Satellite Imagery", f.Layers[0].Attribution)
	assert.Equal(t, "OpenStreetMap", f.Layers[1].Name)
	assert.Empty(t, f.ImageURL)
}

func TestStaticImageRenderer_BBoxCenteredOnZone(t *testing.T) {
	r := NewStaticImageRenderer(700, 500)
	minX, minY, maxX, maxY := r.BBox(dubai)

	center := Wgs84{Lat: dubai.Lat, Lon: dubai.Lon}.ToWebMercator()
	assert.InDelta(t, center.X, (minX+maxX)/2, 1e-6)
	assert.InDelta(t, center.Y, (minY+maxY)/2, 1e-6)

	res := ResolutionAtZoom(dubai.Zoom)
	assert.InDelta(t, 700*res, maxX-minX, 1e-6)
	assert.InDelta(t, 500*res, maxY-minY, 1e-6)
}

func TestStaticImageRenderer_ImageURL(t *testing.T) {
	f, err := NewStaticImageRenderer(700, 500).Render(dubai, true)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(f.ImageURL, EsriImageryExport+"?"))
	assert.Empty(t, f.Layers)

	u, err := url.Parse(f.ImageURL)
	require.NoError(t, err)
	q := u.Query()
	assert.Equal(t, "700,500", q.Get("size"))
	assert.Equal(t, "3857", q.Get("bboxSR"))
	assert.Equal(t, "image", q.Get("f"))
	assert.Len(t, strings.Split(q.Get("bbox"), ","), 4)

	require.NotNil(t, f.Overlay)
	assert.Equal(t, 350.0, f.Overlay.X)
	assert.Equal(t, 250.0, f.Overlay.Y)
	// 2 km on the ground at Dubai's latitude, zoom 12: about 58 px.
	assert.InDelta(t, 2000/math.Cos(dubai.Lat*math.Pi/180)/ResolutionAtZoom(12), f.Overlay.RadiusPx, 1e-9)
	assert.InDelta(t, 57.8, f.Overlay.RadiusPx, 0.1)
}

func TestStaticImageRenderer_InvalidSize(t *testing.T) {
	_, err := NewStaticImageRenderer(0, 500).Render(dubai, false)
	assert.Error(t, err)
}

func TestMercator_ToWebMercator(t *testing.T) {
	origin := Wgs84{}.ToWebMercator()
	assert.InDelta(t, 0, origin.X, 1e-9)
	assert.InDelta(t, 0, origin.Y, 1e-9)

	antimeridian := Wgs84{Lat: 0, Lon: 180}.ToWebMercator()
	assert.InDelta(t, Equator/2, antimeridian.X, 1e-6)

	north := Wgs84{Lat: 25.2048, Lon: 55.2708}.ToWebMercator()
	assert.Greater(t, north.Y, 0.0)
}

func TestResolutionAtZoom(t *testing.T) {
	assert.Equal(t, 40075016.685578/256, ResolutionAtZoom(0))
	assert.Equal(t, 40075016.685578/(256*4096), ResolutionAtZoom(12))
	assert.InDelta(t, 156543.03, ResolutionAtZoom(0), 0.01)
}

func TestChart(t *testing.T) {
	series := models.PlaceholderReport().Coverage
	pts := Chart(series, 300, 150, 10)
	require.Len(t, pts, 5)

	assert.Equal(t, 10.0, pts[0].X)
	assert.Equal(t, 290.0, pts[4].X)
	// 100% is the top of the box, 75% the bottom.
	assert.Equal(t, 10.0, pts[0].Y)
	assert.Equal(t, 140.0, pts[4].Y)
	assert.Equal(t, "100%", pts[0].Label)
	assert.Equal(t, 2024, pts[4].Year)

	assert.Equal(t, "10.0,10.0 80.0,51.6 150.0,88.0 220.0,124.4 290.0,140.0", Polyline(pts))
	assert.Nil(t, Chart(nil, 300, 150, 10))
}

func TestChart_SinglePoint(t *testing.T) {
	pts := Chart([]models.CoveragePoint{{Year: 2020, Pct: 50}}, 100, 100, 0)
	require.Len(t, pts, 1)
	assert.Equal(t, 50.0, pts[0].X)
	assert.Equal(t, 0.0, pts[0].Y)
}
