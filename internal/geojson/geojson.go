package geojson

import (
	"bytes"
	"encoding/json"
	"math"

	"github.com/paulmach/orb"
	orbjson "github.com/paulmach/orb/geojson"
	"github.com/shenikar/accident_hotspots/internal/models"
)

// Типы геометрии зон в ответе
const (
	ShapePoint   = "point"
	ShapePolygon = "polygon"
)

func init() {
	// orb кодирует вложенные объекты через этот маршалер, поэтому экранирование
	// отключается сразу для всей коллекции, включая свойства
	orbjson.CustomJSONMarshaler = unescapedJSON{}
}

// unescapedJSON кодирует JSON без экранирования <, > и &
type unescapedJSON struct{}

func (unescapedJSON) Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Accidents переводит записи в коллекцию точек
func Accidents(records []models.AccidentRecord) *orbjson.FeatureCollection {
	fc := orbjson.NewFeatureCollection()
	fc.Features = make([]*orbjson.Feature, 0, len(records))
	for i := range records {
		r := &records[i]
		f := orbjson.NewFeature(orb.Point{r.Longitude, r.Latitude})
		f.Properties = orbjson.Properties{
			"id":       r.ID,
			"dt":       optional(r.DateTimeString()),
			"category": optional(r.Category),
			"severity": optional(r.Severity),
			"region":   optional(r.Region),
			"light":    optional(r.Light),
			"address":  optional(r.Address),
			"tags":     raw(r.Tags),
			"weather":  raw(r.Weather),
			"nearby":   raw(r.Nearby),
		}
		fc.Append(f)
	}
	return fc
}

// Hotspots переводит зоны в коллекцию; shape задает геометрию: центр зоны или контур ячейки
func Hotspots(zones []models.HotspotZone, shape string) *orbjson.FeatureCollection {
	fc := orbjson.NewFeatureCollection()
	fc.Features = make([]*orbjson.Feature, 0, len(zones))
	for _, z := range zones {
		bounds := z.Cell.Bounds()

		var geometry orb.Geometry = orb.Point{z.CenterLon, z.CenterLat}
		if shape == ShapePolygon {
			geometry = bounds.Bound().ToPolygon()
		}

		f := orbjson.NewFeature(geometry)
		f.Properties = orbjson.Properties{
			"count":              z.Cell.Count,
			"severe_count":       z.Cell.SevereCount,
			"risk_level":         z.RiskLevel,
			"density_per_1000m2": round(z.DensityPer1000m2, 4),
			"area_m2":            round(z.AreaM2, 2),
			"geodesic_area_m2":   round(z.GeodesicAreaM2, 2),
			"center":             [2]float64{z.CenterLon, z.CenterLat},
			"radius":             z.RadiusMeters,
			"bbox":               bounds,
		}
		fc.Append(f)
	}
	return fc
}

// Marshal кодирует коллекцию без экранирования HTML-символов в строках
func Marshal(fc *orbjson.FeatureCollection) ([]byte, error) {
	return fc.MarshalJSON()
}

// round округляет половину от нуля, как принято в отчетах
func round(v float64, places int) float64 {
	p := math.Pow10(places)
	return math.Round(v*p) / p
}

// optional возвращает nil для пустой строки, чтобы в ответе был null
func optional(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func raw(m json.RawMessage) any {
	if len(m) == 0 {
		return nil
	}
	return m
}
