package models

import (
	"strconv"

	"github.com/paulmach/orb"
)

// BBox - прямоугольная область запроса (minLon, minLat, maxLon, maxLat)
type BBox struct {
	MinLon float64 `json:"minLon"`
	MinLat float64 `json:"minLat"`
	MaxLon float64 `json:"maxLon"`
	MaxLat float64 `json:"maxLat"`
}

// Bound возвращает bbox в виде orb.Bound; точки в orb идут как [lon, lat]
func (b BBox) Bound() orb.Bound {
	return orb.Bound{
		Min: orb.Point{b.MinLon, b.MinLat},
		Max: orb.Point{b.MaxLon, b.MaxLat},
	}
}

// Contains проверяет попадание точки в bbox, границы включительно
func (b BBox) Contains(lat, lon float64) bool {
	return b.Bound().Contains(orb.Point{lon, lat})
}

// CenterLat возвращает широту центра bbox
func (b BBox) CenterLat() float64 {
	return (b.MinLat + b.MaxLat) / 2
}

// CenterLon возвращает долготу центра bbox
func (b BBox) CenterLon() float64 {
	return (b.MinLon + b.MaxLon) / 2
}

// Width - протяженность по долготе в градусах
func (b BBox) Width() float64 {
	return b.MaxLon - b.MinLon
}

// Height - протяженность по широте в градусах
func (b BBox) Height() float64 {
	return b.MaxLat - b.MinLat
}

// String возвращает нормализованную запись "minLon,minLat,maxLon,maxLat"
func (b BBox) String() string {
	return formatCoord(b.MinLon) + "," + formatCoord(b.MinLat) + "," +
		formatCoord(b.MaxLon) + "," + formatCoord(b.MaxLat)
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
