package engine

import (
	"math"

	"github.com/golang/geo/s2"
	"github.com/shenikar/accident_hotspots/internal/models"
)

// Уровни опасности зоны
const (
	RiskLevelLow    = "low"
	RiskLevelMedium = "medium"
	RiskLevelHigh   = "high"
)

// EarthRadiusMeters - средний радиус Земли
const EarthRadiusMeters = 6371008.8

// RiskConfig - пороги плотности (ДТП на 1000 м²) для уровней опасности
type RiskConfig struct {
	Low    float64
	Medium float64
	High   float64
	// LowVisibilityMaxCell - при ячейке крупнее этого размера уровень low не показывается
	LowVisibilityMaxCell float64
}

// DefaultRiskConfig возвращает стандартные пороги
func DefaultRiskConfig() RiskConfig {
	return RiskConfig{Low: 0.1, Medium: 0.2, High: 0.3, LowVisibilityMaxCell: 500}
}

// Density - число ДТП на 1000 м² круга диаметром в размер ячейки
func Density(count int, cellSizeMeters float64) float64 {
	radius := cellSizeMeters / 2
	return float64(count) / (math.Pi * radius * radius) * 1000
}

// Classify возвращает уровень опасности; false - плотность ниже нижнего порога
func (c RiskConfig) Classify(density float64) (string, bool) {
	switch {
	case density >= c.High:
		return RiskLevelHigh, true
	case density >= c.Medium:
		return RiskLevelMedium, true
	case density >= c.Low:
		return RiskLevelLow, true
	default:
		return "", false
	}
}

// Zones переводит ячейки в зоны опасности с плотностью и геометрией
func Zones(cells []models.GridCell, cellSizeMeters float64, cfg RiskConfig) []models.HotspotZone {
	radius := cellSizeMeters / 2
	area := math.Pi * radius * radius
	hideLow := cellSizeMeters > cfg.LowVisibilityMaxCell

	zones := make([]models.HotspotZone, 0, len(cells))
	for _, cell := range cells {
		density := Density(cell.Count, cellSizeMeters)
		level, ok := cfg.Classify(density)
		if !ok || (hideLow && level == RiskLevelLow) {
			continue
		}

		zones = append(zones, models.HotspotZone{
			Cell:             cell,
			RiskLevel:        level,
			DensityPer1000m2: density,
			AreaM2:           area,
			RadiusMeters:     radius,
			GeodesicAreaM2:   GeodesicAreaM2(cell.Bounds()),
			CenterLat:        (cell.MinLat + cell.MaxLat) / 2,
			CenterLon:        (cell.MinLon + cell.MaxLon) / 2,
		})
	}
	return zones
}

// GeodesicAreaM2 - площадь прямоугольника на сфере в м², справочное значение
func GeodesicAreaM2(b models.BBox) float64 {
	rect := s2.RectFromLatLng(s2.LatLngFromDegrees(b.MinLat, b.MinLon)).
		AddPoint(s2.LatLngFromDegrees(b.MaxLat, b.MaxLon))
	return rect.Area() * EarthRadiusMeters * EarthRadiusMeters
}
