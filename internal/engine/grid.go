package engine

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/shenikar/accident_hotspots/internal/models"
)

// MetersPerDegree - длина градуса широты, плоское приближение
const MetersPerDegree = 111000.0

// MaxGridCells - верхняя граница числа ячеек сетки на один запрос
const MaxGridCells = 1_000_000

var (
	ErrTooManyCells   = errors.New("grid: too many cells")
	ErrDegenerateBBox = errors.New("grid: degenerate bbox")
	ErrInvalidCell    = errors.New("grid: cell size must be positive")
)

// Grid - плотная сетка ячеек поверх bbox, строки по широте
type Grid struct {
	bbox     models.BBox
	latStep  float64
	lonStep  float64
	latCells int
	lonCells int
	cells    []models.GridCell
}

// GridSteps переводит размер ячейки в метрах в шаги по широте и долготе
func GridSteps(bbox models.BBox, cellSizeMeters float64) (latStep, lonStep float64) {
	latStep = cellSizeMeters / MetersPerDegree
	lonStep = cellSizeMeters / (MetersPerDegree * math.Cos(bbox.CenterLat()*math.Pi/180))
	return latStep, lonStep
}

// CellCount возвращает размеры сетки без ее построения; используется для валидации запроса
func CellCount(bbox models.BBox, cellSizeMeters float64) (latCells, lonCells int) {
	latStep, lonStep := GridSteps(bbox, cellSizeMeters)
	return int(math.Ceil(bbox.Height() / latStep)), int(math.Ceil(bbox.Width() / lonStep))
}

// NewGrid размечает bbox на ячейки; последняя строка и столбец обрезаются по краю bbox
func NewGrid(bbox models.BBox, cellSizeMeters float64) (*Grid, error) {
	if !(cellSizeMeters > 0) {
		return nil, ErrInvalidCell
	}
	if !(bbox.Height() > 0) || !(bbox.Width() > 0) {
		return nil, ErrDegenerateBBox
	}

	latStep, lonStep := GridSteps(bbox, cellSizeMeters)
	latCells, lonCells := CellCount(bbox, cellSizeMeters)
	if latCells <= 0 || lonCells <= 0 || float64(latCells)*float64(lonCells) > MaxGridCells {
		return nil, fmt.Errorf("%w: %dx%d", ErrTooManyCells, latCells, lonCells)
	}

	g := &Grid{
		bbox:     bbox,
		latStep:  latStep,
		lonStep:  lonStep,
		latCells: latCells,
		lonCells: lonCells,
		cells:    make([]models.GridCell, latCells*lonCells),
	}

	for i := 0; i < latCells; i++ {
		minLat := bbox.MinLat + float64(i)*latStep
		maxLat := math.Min(minLat+latStep, bbox.MaxLat)
		for j := 0; j < lonCells; j++ {
			minLon := bbox.MinLon + float64(j)*lonStep
			g.cells[i*lonCells+j] = models.GridCell{
				MinLat: minLat,
				MaxLat: maxLat,
				MinLon: minLon,
				MaxLon: math.Min(minLon+lonStep, bbox.MaxLon),
			}
		}
	}

	return g, nil
}

// Dimensions возвращает число строк и столбцов
func (g *Grid) Dimensions() (latCells, lonCells int) {
	return g.latCells, g.lonCells
}

// Add учитывает запись в ячейке; точки вне bbox игнорируются.
// Точка на верхней границе попадает в последнюю строку или столбец.
func (g *Grid) Add(rec *models.AccidentRecord, severe bool) bool {
	if !g.bbox.Contains(rec.Latitude, rec.Longitude) {
		return false
	}

	i := int(math.Floor((rec.Latitude - g.bbox.MinLat) / g.latStep))
	j := int(math.Floor((rec.Longitude - g.bbox.MinLon) / g.lonStep))
	i = min(max(i, 0), g.latCells-1)
	j = min(max(j, 0), g.lonCells-1)

	cell := &g.cells[i*g.lonCells+j]
	cell.Count++
	if severe {
		cell.SevereCount++
	}
	return true
}

// Cells возвращает ячейки с count >= threshold построчно
func (g *Grid) Cells(threshold int) []models.GridCell {
	var result []models.GridCell
	for _, cell := range g.cells {
		if cell.Count > 0 && cell.Count >= threshold {
			result = append(result, cell)
		}
	}
	return result
}

// AggregateQuery - параметры построения сетки очагов
type AggregateQuery struct {
	BBox           models.BBox
	Since          *time.Time // записи старше отбрасываются; записи без времени учитываются
	CellSizeMeters float64
	CountThreshold int
	SevereSet      map[string]struct{}
}

// AggregateStats - статистика прохода агрегации
type AggregateStats struct {
	Processed     int
	InWindow      int
	InBBox        int
	CellsWithData int
	MaxCount      int
	LatCells      int
	LonCells      int
}

// Aggregate строит сетку за один проход по записям и возвращает ячейки, прошедшие порог
func Aggregate(records []models.AccidentRecord, q AggregateQuery) ([]models.GridCell, AggregateStats, error) {
	var stats AggregateStats

	grid, err := NewGrid(q.BBox, q.CellSizeMeters)
	if err != nil {
		return nil, stats, err
	}
	stats.LatCells, stats.LonCells = grid.Dimensions()

	for i := range records {
		rec := &records[i]
		stats.Processed++

		if q.Since != nil && rec.HasDateTime() && rec.DateTime.Before(*q.Since) {
			continue
		}
		stats.InWindow++

		_, severe := q.SevereSet[rec.Severity]
		if grid.Add(rec, severe) {
			stats.InBBox++
		}
	}

	for _, cell := range grid.cells {
		if cell.Count == 0 {
			continue
		}
		stats.CellsWithData++
		stats.MaxCount = max(stats.MaxCount, cell.Count)
	}

	return grid.Cells(q.CountThreshold), stats, nil
}

// SevereSet собирает множество тяжелых категорий
func SevereSet(categories []string) map[string]struct{} {
	set := make(map[string]struct{}, len(categories))
	for _, c := range categories {
		set[c] = struct{}{}
	}
	return set
}
