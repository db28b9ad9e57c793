package engine

import (
	"math"
	"testing"
	"time"

	"github.com/shenikar/accident_hotspots/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(id int64, lat, lon float64, severity string, dt string) models.AccidentRecord {
	r := models.AccidentRecord{ID: id, Latitude: lat, Longitude: lon, Severity: severity}
	if dt != "" {
		t, err := time.Parse(models.DateTimeLayout, dt)
		if err != nil {
			panic(err)
		}
		r.DateTime = t
	}
	return r
}

func date(s string) *time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return &t
}

var testBBox = models.BBox{MinLon: 37.5, MinLat: 55.7, MaxLon: 37.7, MaxLat: 55.8}

func TestFilter_BBoxContainment(t *testing.T) {
	records := []models.AccidentRecord{
		rec(1, 55.75, 37.6, "", ""),
		rec(2, 55.9, 37.6, "", ""), // севернее bbox
		rec(3, 55.7, 37.5, "", ""), // угол bbox
		rec(4, 55.75, 37.71, "", ""),
	}

	got := Filter(records, FilterQuery{BBox: testBBox, Limit: 100})

	require.Len(t, got, 2)
	assert.Equal(t, int64(1), got[0].ID)
	assert.Equal(t, int64(3), got[1].ID)
	for _, r := range got {
		assert.True(t, testBBox.Contains(r.Latitude, r.Longitude))
	}
}

func TestFilter_Limit(t *testing.T) {
	var records []models.AccidentRecord
	for i := 1; i <= 10; i++ {
		records = append(records, rec(int64(i), 55.75, 37.6, "", ""))
	}

	got := Filter(records, FilterQuery{BBox: testBBox, Limit: 3})

	require.Len(t, got, 3)
	// Порядок загрузки сохраняется
	assert.Equal(t, []int64{1, 2, 3}, []int64{got[0].ID, got[1].ID, got[2].ID})
}

func TestFilter_DateRangeInclusive(t *testing.T) {
	records := []models.AccidentRecord{
		rec(1, 55.75, 37.6, "", "2024-03-01 00:00:00"),
		rec(2, 55.75, 37.6, "", "2024-03-31 23:59:59"),
		rec(3, 55.75, 37.6, "", "2024-02-29 23:59:59"),
		rec(4, 55.75, 37.6, "", "2024-04-01 00:00:00"),
		rec(5, 55.75, 37.6, "", ""), // без времени
	}

	got := Filter(records, FilterQuery{BBox: testBBox, From: date("2024-03-01"), To: date("2024-03-31")})

	ids := make([]int64, 0, len(got))
	for _, r := range got {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []int64{1, 2, 5}, ids)
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, 1, ClampLimit(0, 1, 10000))
	assert.Equal(t, 1, ClampLimit(-5, 1, 10000))
	assert.Equal(t, 10000, ClampLimit(50000, 1, 10000))
	assert.Equal(t, 500, ClampLimit(500, 1, 10000))
}

func TestNewGrid_CoversBBox(t *testing.T) {
	g, err := NewGrid(testBBox, 1000)
	require.NoError(t, err)

	latCells, lonCells := g.Dimensions()
	latStep, lonStep := GridSteps(testBBox, 1000)
	assert.Equal(t, int(math.Ceil(0.1/latStep)), latCells)
	assert.Equal(t, int(math.Ceil(0.2/lonStep)), lonCells)

	// Ячейки покрывают bbox без выхода за его границы
	last := g.cells[len(g.cells)-1]
	assert.InDelta(t, testBBox.MaxLat, last.MaxLat, 1e-12)
	assert.InDelta(t, testBBox.MaxLon, last.MaxLon, 1e-12)
	for _, c := range g.cells {
		assert.LessOrEqual(t, c.MaxLat, testBBox.MaxLat)
		assert.LessOrEqual(t, c.MaxLon, testBBox.MaxLon)
		assert.Less(t, c.MinLat, c.MaxLat)
		assert.Less(t, c.MinLon, c.MaxLon)
	}
}

func TestNewGrid_Rejects(t *testing.T) {
	_, err := NewGrid(models.BBox{MinLon: 37, MinLat: 55, MaxLon: 37, MaxLat: 55}, 1000)
	assert.ErrorIs(t, err, ErrDegenerateBBox)

	_, err = NewGrid(testBBox, 0)
	assert.ErrorIs(t, err, ErrInvalidCell)

	_, err = NewGrid(models.BBox{MinLon: 37, MinLat: 55, MaxLon: 38, MaxLat: 56}, 1)
	assert.ErrorIs(t, err, ErrTooManyCells)
}

func TestAggregate_EveryPointInExactlyOneCell(t *testing.T) {
	records := []models.AccidentRecord{
		rec(1, testBBox.MinLat, testBBox.MinLon, "", ""),
		rec(2, testBBox.MaxLat, testBBox.MaxLon, "", ""), // верхний угол
		rec(3, 55.75, 37.6, "", ""),
		rec(4, 55.7999999, 37.6999999, "", ""),
		rec(5, 56.5, 37.6, "", ""), // вне bbox
	}

	cells, stats, err := Aggregate(records, AggregateQuery{BBox: testBBox, CellSizeMeters: 1000, CountThreshold: 1})
	require.NoError(t, err)

	total := 0
	for _, c := range cells {
		total += c.Count
	}
	assert.Equal(t, 4, total)
	assert.Equal(t, 4, stats.InBBox)
	assert.Equal(t, 5, stats.Processed)
}

func TestAggregate_ThresholdMonotonic(t *testing.T) {
	var records []models.AccidentRecord
	for i := 0; i < 40; i++ {
		records = append(records, rec(int64(i+1), 55.7+float64(i%8)*0.01, 37.5+float64(i%5)*0.03, "", ""))
	}

	prev := math.MaxInt
	for threshold := 1; threshold <= 6; threshold++ {
		cells, _, err := Aggregate(records, AggregateQuery{BBox: testBBox, CellSizeMeters: 500, CountThreshold: threshold})
		require.NoError(t, err)
		assert.LessOrEqual(t, len(cells), prev)
		for _, c := range cells {
			assert.GreaterOrEqual(t, c.Count, threshold)
		}
		prev = len(cells)
	}
}

func TestAggregate_TimeWindowAndSeverity(t *testing.T) {
	records := []models.AccidentRecord{
		rec(1, 55.75, 37.6, "Тяжелый", "2024-05-10 12:00:00"),
		rec(2, 55.75, 37.6, "Легкий", "2024-05-11 12:00:00"),
		rec(3, 55.75, 37.6, "Смертельный", ""),
		rec(4, 55.75, 37.6, "Тяжелый", "2024-01-01 12:00:00"), // вне окна
	}
	since := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	cells, stats, err := Aggregate(records, AggregateQuery{
		BBox:           testBBox,
		Since:          &since,
		CellSizeMeters: 1000,
		CountThreshold: 1,
		SevereSet:      SevereSet([]string{"Тяжелый", "Смертельный"}),
	})
	require.NoError(t, err)

	require.Len(t, cells, 1)
	assert.Equal(t, 3, cells[0].Count)
	assert.Equal(t, 2, cells[0].SevereCount)
	assert.Equal(t, 3, stats.InWindow)
	assert.Equal(t, 3, stats.MaxCount)
}

func TestDensity(t *testing.T) {
	// 5 ДТП в ячейке 800 м
	assert.InDelta(t, 0.00995, Density(5, 800), 1e-5)
	assert.InDelta(t, 1000.0/(math.Pi*2500), Density(1, 100), 1e-12)
}

func TestClassify(t *testing.T) {
	cfg := DefaultRiskConfig()

	tests := []struct {
		density float64
		level   string
		ok      bool
	}{
		{0.05, "", false},
		{0.1, RiskLevelLow, true},
		{0.15, RiskLevelLow, true},
		{0.2, RiskLevelMedium, true},
		{0.25, RiskLevelMedium, true},
		{0.3, RiskLevelHigh, true},
		{0.35, RiskLevelHigh, true},
	}
	for _, tt := range tests {
		level, ok := cfg.Classify(tt.density)
		assert.Equal(t, tt.ok, ok, "density %v", tt.density)
		assert.Equal(t, tt.level, level, "density %v", tt.density)
	}
}

func TestZones_LowLevelSuppressedOnCoarseGrid(t *testing.T) {
	cfg := DefaultRiskConfig()
	// В ячейке 100 м: density = count * 0.1273
	cells := []models.GridCell{
		{MinLat: 55.7, MaxLat: 55.701, MinLon: 37.5, MaxLon: 37.501, Count: 1}, // 0.127 - low
		{MinLat: 55.7, MaxLat: 55.701, MinLon: 37.6, MaxLon: 37.601, Count: 2}, // 0.255 - medium
		{MinLat: 55.7, MaxLat: 55.701, MinLon: 37.7, MaxLon: 37.701, Count: 3}, // 0.382 - high
	}

	zones := Zones(cells, 100, cfg)
	require.Len(t, zones, 3)
	assert.Equal(t, RiskLevelLow, zones[0].RiskLevel)
	assert.Equal(t, RiskLevelMedium, zones[1].RiskLevel)
	assert.Equal(t, RiskLevelHigh, zones[2].RiskLevel)
	assert.InDelta(t, 50.0, zones[0].RadiusMeters, 1e-9)
	assert.InDelta(t, math.Pi*2500, zones[0].AreaM2, 1e-9)
	assert.InDelta(t, 55.7005, zones[0].CenterLat, 1e-9)
	assert.Greater(t, zones[0].GeodesicAreaM2, 0.0)

	cfg.LowVisibilityMaxCell = 50
	zones = Zones(cells, 100, cfg)
	require.Len(t, zones, 2)
	assert.Equal(t, RiskLevelMedium, zones[0].RiskLevel)
}

func TestHotspots_EndToEnd(t *testing.T) {
	bbox := models.BBox{MinLon: 37.6, MinLat: 55.75, MaxLon: 37.61, MaxLat: 55.76}
	records := []models.AccidentRecord{
		rec(1, 55.7501, 37.6001, "Тяжелый", ""),
		rec(2, 55.7502, 37.6002, "Легкий", ""),
		rec(3, 55.7503, 37.6003, "Легкий", ""),
	}

	cells, _, err := Aggregate(records, AggregateQuery{
		BBox:           bbox,
		CellSizeMeters: 100,
		CountThreshold: 3,
		SevereSet:      SevereSet([]string{"Тяжелый", "Смертельный"}),
	})
	require.NoError(t, err)
	require.Len(t, cells, 1)
	assert.Equal(t, 3, cells[0].Count)
	assert.Equal(t, 1, cells[0].SevereCount)

	// 3 / (π·50²) · 1000 ≈ 0.382
	zones := Zones(cells, 100, DefaultRiskConfig())
	require.Len(t, zones, 1)
	assert.Equal(t, RiskLevelHigh, zones[0].RiskLevel)
	assert.InDelta(t, 0.382, zones[0].DensityPer1000m2, 1e-3)
}

func TestGeodesicAreaM2(t *testing.T) {
	// Ячейка около 1 км x 1 км на широте Москвы
	latStep, lonStep := GridSteps(testBBox, 1000)
	area := GeodesicAreaM2(models.BBox{MinLon: 37.6, MinLat: 55.75, MaxLon: 37.6 + lonStep, MaxLat: 55.75 + latStep})
	assert.InDelta(t, 1_000_000, area, 20_000)
}

func TestFilter_EndToEndScenario(t *testing.T) {
	records := []models.AccidentRecord{
		rec(1, 55.7, 37.5, "", ""),
		rec(2, 55.7, 37.5, "", ""),
		rec(3, 55.9, 37.9, "", ""),
	}
	bbox := models.BBox{MinLon: 37.4, MinLat: 55.6, MaxLon: 37.6, MaxLat: 55.8}

	got := Filter(records, FilterQuery{BBox: bbox, Limit: 1000})

	require.Len(t, got, 2)
	assert.Equal(t, int64(1), got[0].ID)
	assert.Equal(t, int64(2), got[1].ID)
}
