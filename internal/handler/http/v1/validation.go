package v1

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shenikar/accident_hotspots/internal/models"
)

const dateLayout = "2006-01-02"

var errInvalidBBox = errors.New("invalid bbox format, expected minLon,minLat,maxLon,maxLat")

// ParseBBox разбирает строку "minLon,minLat,maxLon,maxLat"; диапазоны проверяет сервис
func ParseBBox(raw string) (models.BBox, error) {
	parts := strings.Split(raw, ",")
	if len(parts) != 4 {
		return models.BBox{}, errInvalidBBox
	}

	var values [4]float64
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return models.BBox{}, fmt.Errorf("%w: component %d is not a number", errInvalidBBox, i+1)
		}
		values[i] = v
	}

	return models.BBox{
		MinLon: values[0],
		MinLat: values[1],
		MaxLon: values[2],
		MaxLat: values[3],
	}, nil
}

// parseDate разбирает дату YYYY-MM-DD; пустая строка - дата не задана
func parseDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
