package store

import (
	"bytes"
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"
	"unicode/utf8"

	"github.com/shenikar/accident_hotspots/internal/metrics"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var moscow = Envelope{MinLat: 55, MaxLat: 56, MinLon: 37, MaxLon: 38}

func writeDataset(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dataset.ndjson")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o600))
	return path
}

func newTestStore(t *testing.T, path string) *Store {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах
	return New(Config{Path: path, Envelope: moscow}, logger, metrics.NewMetricsForTesting())
}

func TestLoad_AcceptsAndRejects(t *testing.T) {
	path := writeDataset(t,
		`{"geometry":{"coordinates":[37.6,55.7]},"properties":{"id":1,"datetime":"2024-05-01 10:00:00","severity":"Легкий"}}`,
		`{"geometry":{"coordinates":["37.61","55.71"]},"properties":{"id":"2","datetime":"2024-05-02T08:30:00"}}`,
		`{"geometry":{"coordinates":[30.3,59.9]},"properties":{"id":3}}`, // вне области
		`{"geometry":{"coordinates":[37.6,55.7]},"properties":{"id":0}}`,
		`{"geometry":{"coordinates":[37.6]},"properties":{"id":4}}`,
		`not json`,
		``,
		`{"geometry":{"coordinates":[37.62,55.72]},"properties":{"id":5.0,"datetime":"мусор"}}`,
	)
	s := newTestStore(t, path)

	records, stats, err := s.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, stats.Accepted)
	assert.Equal(t, 4, stats.Rejected)
	assert.False(t, stats.FromCache)
	require.Len(t, records, 3)

	assert.Equal(t, int64(1), records[0].ID)
	assert.Equal(t, "2024-05-01 10:00:00", records[0].DateTimeString())
	assert.Equal(t, "Легкий", records[0].Severity)

	assert.Equal(t, int64(2), records[1].ID)
	assert.InDelta(t, 55.71, records[1].Latitude, 1e-9)
	assert.Equal(t, "2024-05-02 08:30:00", records[1].DateTimeString())

	assert.Equal(t, int64(5), records[2].ID)
	assert.False(t, records[2].HasDateTime())
}

func TestLoad_IsIdempotent(t *testing.T) {
	path := writeDataset(t,
		`{"geometry":{"coordinates":[37.6,55.7]},"properties":{"id":1}}`,
	)
	s := newTestStore(t, path)
	ctx := context.Background()

	first, _, err := s.Load(ctx)
	require.NoError(t, err)

	// Повторная загрузка не должна обращаться к файлу
	require.NoError(t, os.Remove(path))

	second, stats, err := s.Load(ctx)
	require.NoError(t, err)
	assert.True(t, stats.FromCache)
	assert.Equal(t, first, second)

	loaded, ok := s.Stats()
	require.True(t, ok)
	assert.Equal(t, 1, loaded.Accepted)
}

func TestLoad_ResetRereadsFile(t *testing.T) {
	path := writeDataset(t,
		`{"geometry":{"coordinates":[37.6,55.7]},"properties":{"id":1}}`,
	)
	s := newTestStore(t, path)
	ctx := context.Background()

	_, _, err := s.Load(ctx)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte(
		`{"geometry":{"coordinates":[37.6,55.7]},"properties":{"id":1}}`+"\n"+
			`{"geometry":{"coordinates":[37.7,55.8]},"properties":{"id":2}}`+"\n"), 0o600))

	s.Reset()
	_, ok := s.Stats()
	assert.False(t, ok)

	records, stats, err := s.Load(ctx)
	require.NoError(t, err)
	assert.False(t, stats.FromCache)
	assert.Len(t, records, 2)
}

func TestLoad_MissingFile(t *testing.T) {
	s := newTestStore(t, filepath.Join(t.TempDir(), "missing.ndjson"))

	records, _, err := s.Load(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDatasetUnavailable))
	assert.Nil(t, records)

	_, ok := s.Stats()
	assert.False(t, ok)
}

func TestLoad_ConcurrentCallersShareOneParse(t *testing.T) {
	lines := make([]string, 0, 500)
	for i := 1; i <= 500; i++ {
		lines = append(lines, `{"geometry":{"coordinates":[37.6,55.7]},"properties":{"id":`+strconv.Itoa(i)+`}}`)
	}
	s := newTestStore(t, writeDataset(t, lines...))

	const callers = 16
	results := make([]int, callers)
	fresh := make([]bool, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			records, stats, err := s.Load(context.Background())
			assert.NoError(t, err)
			results[i] = len(records)
			fresh[i] = !stats.FromCache
		}(i)
	}
	wg.Wait()

	parses := 0
	for i := 0; i < callers; i++ {
		assert.Equal(t, 500, results[i])
		if fresh[i] {
			parses++
		}
	}
	assert.Equal(t, 1, parses)
}

func TestLoad_CanceledBeforeStart(t *testing.T) {
	s := newTestStore(t, writeDataset(t, `{"geometry":{"coordinates":[37.6,55.7]},"properties":{"id":1}}`))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := s.Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParseLine_Normalization(t *testing.T) {
	address := strings.Repeat("ж", 300)
	line := `{"geometry":{"coordinates":[37.5,55.5]},"properties":{"id":"77","address":"` + address + `",` +
		`"tags":{"b":1.50,"a":"<x>"},"weather":"ясно","nearby":[1,2,3],"category":42}}`

	rec, ok, skip := parseLine([]byte(line), moscow)
	require.True(t, ok)
	require.False(t, skip)

	assert.Equal(t, int64(77), rec.ID)
	assert.Equal(t, 255, utf8.RuneCountInString(rec.Address))
	assert.True(t, utf8.ValidString(rec.Address))
	assert.Equal(t, `{"a":"<x>","b":1.50}`, string(rec.Tags))
	assert.Nil(t, rec.Weather)
	assert.Equal(t, `[1,2,3]`, string(rec.Nearby))
	assert.Equal(t, "42", rec.Category)
}

func TestParseLine_EnvelopeIsInclusive(t *testing.T) {
	_, ok, _ := parseLine([]byte(`{"geometry":{"coordinates":[38,56]},"properties":{"id":1}}`), moscow)
	assert.True(t, ok)

	_, ok, _ = parseLine([]byte(`{"geometry":{"coordinates":[38.0001,56]},"properties":{"id":1}}`), moscow)
	assert.False(t, ok)

	_, ok, _ = parseLine([]byte(`{"geometry":{"coordinates":["NaN","55.5"]},"properties":{"id":1}}`), moscow)
	assert.False(t, ok)
}

func TestParseDateTime_Layouts(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`"2024-01-31 23:59:59"`, "2024-01-31 23:59:59"},
		{`"2024-01-31T23:59:59+03:00"`, "2024-01-31 23:59:59"},
		{`"2024-01-31"`, "2024-01-31 00:00:00"},
		{`"31.01.2024 12:30"`, "2024-01-31 12:30:00"},
		{`"вчера"`, ""},
		{`null`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := parseDateTime([]byte(tt.in))
			if tt.want == "" {
				assert.True(t, got.IsZero())
				return
			}
			assert.Equal(t, tt.want, got.Format("2006-01-02 15:04:05"))
		})
	}
}

func TestParseID(t *testing.T) {
	tests := []struct {
		in   string
		want int64
		ok   bool
	}{
		{`42`, 42, true},
		{`42.0`, 42, true},
		{`"17"`, 17, true},
		{`"9223372036854775807"`, math.MaxInt64, true},
		{`42.5`, 0, false},
		{`"abc"`, 0, false},
		{`9.223372036854775807e18`, 0, false},
		{`"9.223372036854775807e18"`, 0, false},
		{`-9.3e18`, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := parseID([]byte(tt.in))
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "абв", truncate("абвгд", 3))
	assert.Equal(t, "", truncate("", 3))
}
