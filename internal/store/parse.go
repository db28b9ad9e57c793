package store

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shenikar/accident_hotspots/internal/models"
)

// Ограничения длины строковых полей, в символах
const (
	maxSeverityLen = 50
	maxCategoryLen = 100
	maxRegionLen   = 100
	maxLightLen    = 100
	maxAddressLen  = 255
)

// Форматы времени, встречающиеся в выгрузках
var dateTimeLayouts = []string{
	models.DateTimeLayout,
	"2006-01-02T15:04:05",
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"2006-01-02",
	"02.01.2006 15:04:05",
	"02.01.2006 15:04",
	"02.01.2006",
}

type rawFeature struct {
	Geometry struct {
		Coordinates []json.RawMessage `json:"coordinates"`
	} `json:"geometry"`
	Properties map[string]json.RawMessage `json:"properties"`
}

// parseLine разбирает одну строку NDJSON.
// skip - пустая строка, ok - запись принята.
func parseLine(line []byte, env Envelope) (rec models.AccidentRecord, ok, skip bool) {
	line = bytes.TrimSpace(line)
	if len(line) == 0 {
		return rec, false, true
	}

	var feat rawFeature
	if err := json.Unmarshal(line, &feat); err != nil {
		return rec, false, false
	}

	coords := feat.Geometry.Coordinates
	if len(coords) < 2 {
		return rec, false, false
	}
	lon, okLon := parseNumber(coords[0])
	lat, okLat := parseNumber(coords[1])
	if !okLon || !okLat {
		return rec, false, false
	}
	if !env.Contains(lat, lon) {
		return rec, false, false
	}

	props := feat.Properties
	id, okID := parseID(props["id"])
	if !okID || id == 0 {
		return rec, false, false
	}

	rec = models.AccidentRecord{
		ID:        id,
		Latitude:  lat,
		Longitude: lon,
		DateTime:  parseDateTime(props["datetime"]),
		Severity:  truncate(parseString(props["severity"]), maxSeverityLen),
		Category:  truncate(parseString(props["category"]), maxCategoryLen),
		Region:    truncate(parseString(props["region"]), maxRegionLen),
		Light:     truncate(parseString(props["light"]), maxLightLen),
		Address:   truncate(parseString(props["address"]), maxAddressLen),
		Tags:      canonicalJSON(props["tags"]),
		Weather:   canonicalJSON(props["weather"]),
		Nearby:    canonicalJSON(props["nearby"]),
	}
	return rec, true, false
}

// parseNumber принимает JSON-число или строку с числом
func parseNumber(raw json.RawMessage) (float64, bool) {
	if len(raw) == 0 {
		return 0, false
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, false
		}
		f, err = strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return 0, false
		}
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// parseID принимает целое, целочисленное дробное или строку с числом
func parseID(raw json.RawMessage) (int64, bool) {
	if len(raw) == 0 {
		return 0, false
	}
	var n int64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n, true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		s = strings.TrimSpace(s)
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n, true
		}
		raw = json.RawMessage(s)
	}
	f, ok := parseNumber(raw)
	// float64(MaxInt64) округляется до 2^63, поэтому граница исключается
	if !ok || f != math.Trunc(f) || math.Abs(f) >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

// parseString возвращает строковое значение; числа берутся в исходной записи, остальное отбрасывается
func parseString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

// parseDateTime приводит время к шкале "настенных" часов; нераспознанное значение - отсутствие времени
func parseDateTime(raw json.RawMessage) time.Time {
	s := strings.TrimSpace(parseString(raw))
	if s == "" {
		return time.Time{}
	}
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return models.WallClock(t).Truncate(time.Second)
		}
	}
	return time.Time{}
}

// truncate обрезает строку по числу символов, а не байт
func truncate(s string, limit int) string {
	if len(s) <= limit || utf8.RuneCountInString(s) <= limit {
		return s
	}
	n := 0
	for i := range s {
		if n == limit {
			return s[:i]
		}
		n++
	}
	return s
}

// canonicalJSON пересобирает объект или массив в компактный вид. Скаляры и null отбрасываются.
func canonicalJSON(raw json.RawMessage) json.RawMessage {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || (raw[0] != '{' && raw[0] != '[') {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil
	}
	return json.RawMessage(bytes.TrimRight(buf.Bytes(), "\n"))
}
