package geojson

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/paulmach/orb"
	"github.com/shenikar/accident_hotspots/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccidents(t *testing.T) {
	records := []models.AccidentRecord{
		{
			ID:        7,
			DateTime:  time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
			Latitude:  55.75,
			Longitude: 37.61,
			Severity:  "Легкий",
			Tags:      json.RawMessage(`["a","b"]`),
		},
		{ID: 8, Latitude: 55.76, Longitude: 37.62},
	}

	body, err := json.Marshal(Accidents(records))
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"type": "FeatureCollection",
		"features": [
			{
				"type": "Feature",
				"geometry": {"type": "Point", "coordinates": [37.61, 55.75]},
				"properties": {
					"id": 7, "dt": "2024-05-01 10:00:00", "category": null, "severity": "Легкий",
					"region": null, "light": null, "address": null,
					"tags": ["a","b"], "weather": null, "nearby": null
				}
			},
			{
				"type": "Feature",
				"geometry": {"type": "Point", "coordinates": [37.62, 55.76]},
				"properties": {
					"id": 8, "dt": null, "category": null, "severity": null,
					"region": null, "light": null, "address": null,
					"tags": null, "weather": null, "nearby": null
				}
			}
		]
	}`, string(body))
}

func TestAccidents_EmptyCollection(t *testing.T) {
	body, err := json.Marshal(Accidents(nil))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"FeatureCollection","features":[]}`, string(body))
}

func TestHotspots_Shapes(t *testing.T) {
	zones := []models.HotspotZone{{
		Cell:             models.GridCell{MinLat: 55.7, MaxLat: 55.8, MinLon: 37.5, MaxLon: 37.6, Count: 12, SevereCount: 3},
		RiskLevel:        "high",
		DensityPer1000m2: 0.381971863,
		AreaM2:           7853.981634,
		RadiusMeters:     50,
		GeodesicAreaM2:   12345.6789,
		CenterLat:        55.75,
		CenterLon:        37.55,
	}}

	fc := Hotspots(zones, ShapePoint)
	require.Len(t, fc.Features, 1)
	assert.Equal(t, orb.Point{37.55, 55.75}, fc.Features[0].Geometry)

	props := fc.Features[0].Properties
	assert.Equal(t, 0.382, props["density_per_1000m2"])
	assert.Equal(t, 7853.98, props["area_m2"])
	assert.Equal(t, 12345.68, props["geodesic_area_m2"])
	assert.Equal(t, [2]float64{37.55, 55.75}, props["center"])
	assert.Equal(t, models.BBox{MinLon: 37.5, MinLat: 55.7, MaxLon: 37.6, MaxLat: 55.8}, props["bbox"])

	fc = Hotspots(zones, ShapePolygon)
	polygon, ok := fc.Features[0].Geometry.(orb.Polygon)
	require.True(t, ok)
	require.Len(t, polygon, 1)
	ring := polygon[0]
	require.Len(t, ring, 5)
	assert.Equal(t, ring[0], ring[4])
	assert.Equal(t, orb.Point{37.5, 55.7}, ring[0])
	assert.Equal(t, orb.Point{37.6, 55.8}, ring[2])

	body, err := Marshal(fc)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"geometry":{"type":"Polygon","coordinates":[[[37.5,55.7],[37.6,55.7],[37.6,55.8],[37.5,55.8],[37.5,55.7]]]}`)
	assert.Contains(t, string(body), `"bbox":{"minLon":37.5,"minLat":55.7,"maxLon":37.6,"maxLat":55.8}`)
}

func TestMarshal_KeepsHTMLCharacters(t *testing.T) {
	fc := Accidents([]models.AccidentRecord{{ID: 1, Address: "ул. <Тверская> & Co", Tags: json.RawMessage(`{"a":"<b>"}`)}})

	body, err := Marshal(fc)
	require.NoError(t, err)

	assert.Contains(t, string(body), `"address":"ул. <Тверская> & Co"`)
	assert.Contains(t, string(body), `"tags":{"a":"<b>"}`)
	assert.NotContains(t, string(body), "\n")
}
