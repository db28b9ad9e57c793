package models

// GridCell - ячейка сетки агрегации, живет только в рамках одного запроса
type GridCell struct {
	MinLat      float64
	MaxLat      float64
	MinLon      float64
	MaxLon      float64
	Count       int
	SevereCount int
}

// Bounds возвращает границы ячейки в виде bbox
func (c GridCell) Bounds() BBox {
	return BBox{MinLon: c.MinLon, MinLat: c.MinLat, MaxLon: c.MaxLon, MaxLat: c.MaxLat}
}

// HotspotZone - ячейка с рассчитанной плотностью и уровнем опасности
type HotspotZone struct {
	Cell             GridCell
	RiskLevel        string
	DensityPer1000m2 float64
	AreaM2           float64
	RadiusMeters     float64
	GeodesicAreaM2   float64
	CenterLat        float64
	CenterLon        float64
}
