package engine

import (
	"time"

	"github.com/shenikar/accident_hotspots/internal/models"
)

// FilterQuery - параметры выборки точек по bbox и датам
type FilterQuery struct {
	BBox  models.BBox
	From  *time.Time // дата начала, включительно с 00:00:00
	To    *time.Time // дата окончания, включительно до 23:59:59
	Limit int        // <= 0 - без ограничения
}

// Filter возвращает записи внутри bbox в порядке загрузки, не более Limit штук.
// Записи без времени проходят временной фильтр.
func Filter(records []models.AccidentRecord, q FilterQuery) []models.AccidentRecord {
	var from, to time.Time
	if q.From != nil {
		from = startOfDay(*q.From)
	}
	if q.To != nil {
		to = startOfDay(*q.To).Add(24*time.Hour - time.Second)
	}

	capacity := q.Limit
	if capacity <= 0 || capacity > len(records) {
		capacity = len(records)
	}
	result := make([]models.AccidentRecord, 0, min(capacity, 1024))

	for i := range records {
		rec := &records[i]
		if !q.BBox.Contains(rec.Latitude, rec.Longitude) {
			continue
		}
		if rec.HasDateTime() {
			if q.From != nil && rec.DateTime.Before(from) {
				continue
			}
			if q.To != nil && rec.DateTime.After(to) {
				continue
			}
		}

		result = append(result, *rec)
		if q.Limit > 0 && len(result) >= q.Limit {
			break
		}
	}

	return result
}

// ClampLimit приводит лимит к диапазону [lo, hi]
func ClampLimit(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
