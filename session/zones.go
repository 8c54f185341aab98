package session

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"terrawatch/models"

	"gopkg.in/yaml.v3"
)

//go:embed zones.yaml
var defaultZonesYAML []byte

// ErrUnknownZone is matched by every *UnknownZoneError.
var ErrUnknownZone = errors.New("unknown zone")

// UnknownZoneError means the selector and the zone table drifted apart.
type UnknownZoneError struct {
	Name string
}

func (e *UnknownZoneError) Error() string {
	return fmt.Sprintf("unknown zone %q", e.Name)
}

func (e *UnknownZoneError) Is(target error) bool { return target == ErrUnknownZone }

// maxZoom matches the deepest Esri World Imagery level.
const maxZoom = 23

// ZoneTable is the immutable set of selectable zones.
type ZoneTable struct {
	zones  []models.Zone
	byName map[string]models.Zone
}

// LoadZoneTable parses a YAML list of zones and validates it.
func LoadZoneTable(data []byte) (*ZoneTable, error) {
	var zones []models.Zone
	if err := yaml.Unmarshal(data, &zones); err != nil {
		return nil, fmt.Errorf("parse zone table: %w", err)
	}
	return NewZoneTable(zones)
}

// NewZoneTable validates zones and keeps their order.
func NewZoneTable(zones []models.Zone) (*ZoneTable, error) {
	if len(zones) == 0 {
		return nil, errors.New("zone table is empty")
	}
	t := &ZoneTable{
		zones:  make([]models.Zone, 0, len(zones)),
		byName: make(map[string]models.Zone, len(zones)),
	}
	for i, z := range zones {
		if strings.TrimSpace(z.Name) == "" {
			return nil, fmt.Errorf("zone #%d: empty name", i)
		}
		if _, dup := t.byName[z.Name]; dup {
			return nil, fmt.Errorf("zone %q: duplicate name", z.Name)
		}
		if z.Lat < -90 || z.Lat > 90 || z.Lon < -180 || z.Lon > 180 {
			return nil, fmt.Errorf("zone %q: coordinate (%g, %g) out of range", z.Name, z.Lat, z.Lon)
		}
		if z.Zoom < 0 || z.Zoom > maxZoom {
			return nil, fmt.Errorf("zone %q: zoom %d out of range [0, %d]", z.Name, z.Zoom, maxZoom)
		}
		t.zones = append(t.zones, z)
		t.byName[z.Name] = z
	}
	return t, nil
}

// DefaultZoneTable returns the embedded zone table. It panics if the embedded
// file is invalid, which can only happen at build time.
func DefaultZoneTable() *ZoneTable {
	t, err := LoadZoneTable(defaultZonesYAML)
	if err != nil {
		panic(err)
	}
	return t
}

// Lookup returns the zone named name.
func (t *ZoneTable) Lookup(name string) (models.Zone, error) {
	z, ok := t.byName[name]
	if !ok {
		return models.Zone{}, &UnknownZoneError{Name: name}
	}
	return z, nil
}

// Zones returns the table in selector order.
func (t *ZoneTable) Zones() []models.Zone {
	out := make([]models.Zone, len(t.zones))
	copy(out, t.zones)
	return out
}

func (t *ZoneTable) Names() []string {
	out := make([]string, len(t.zones))
	for i, z := range t.zones {
		out[i] = z.Name
	}
	return out
}

// First is the zone preselected on the first render.
func (t *ZoneTable) First() models.Zone { return t.zones[0] }
