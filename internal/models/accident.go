package models

import (
	"encoding/json"
	"time"
)

// DateTimeLayout - каноническое представление времени ДТП
const DateTimeLayout = "2006-01-02 15:04:05"

// AccidentRecord - нормализованная запись о ДТП, неизменяемая после загрузки датасета
type AccidentRecord struct {
	ID        int64
	DateTime  time.Time // нулевое значение - время отсутствует
	Latitude  float64
	Longitude float64
	Severity  string
	Category  string
	Region    string
	Light     string
	Address   string
	Tags      json.RawMessage
	Weather   json.RawMessage
	Nearby    json.RawMessage
}

// HasDateTime сообщает, известно ли время ДТП
func (r *AccidentRecord) HasDateTime() bool {
	return !r.DateTime.IsZero()
}

// DateTimeString возвращает время в формате YYYY-MM-DD HH:MM:SS или пустую строку
func (r *AccidentRecord) DateTimeString() string {
	if r.DateTime.IsZero() {
		return ""
	}
	return r.DateTime.Format(DateTimeLayout)
}

// WallClock переносит локальное "настенное" время в UTC без сдвига,
// чтобы все сравнения дат шли в одной шкале
func WallClock(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}
