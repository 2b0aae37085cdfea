package domain

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBandFor(t *testing.T) {
	tests := []struct {
		magnitude float64
		band      Band
		color     string
		rgba      string
	}{
		{9.1, BandHighest, "red", "rgba(244, 67, 54, 0.8)"},
		{7, BandHighest, "red", "rgba(244, 67, 54, 0.8)"},
		{6.99, BandHigh, "orange", "rgba(255, 152, 0, 0.8)"},
		{5, BandHigh, "orange", "rgba(255, 152, 0, 0.8)"},
		{4.99, BandModerate, "yellow", "rgba(255, 235, 59, 0.8)"},
		{3, BandModerate, "yellow", "rgba(255, 235, 59, 0.8)"},
		{2.99, BandLow, "green", "rgba(76, 175, 80, 0.8)"},
		{0, BandLow, "green", "rgba(76, 175, 80, 0.8)"},
		{-1.5, BandLow, "green", "rgba(76, 175, 80, 0.8)"},
	}

	for _, tt := range tests {
		t.Run(tt.band.String(), func(t *testing.T) {
			assert.Equal(t, tt.band, BandFor(tt.magnitude))
			assert.Equal(t, tt.color, MagnitudeColor(tt.magnitude))
			assert.Equal(t, tt.rgba, MagnitudeColorRGBA(tt.magnitude))
		})
	}
}

func TestColorEncodingsAgree(t *testing.T) {
	rgbaByColor := map[string]string{}
	for m := -3.0; m <= 10.0; m += 0.05 {
		color := MagnitudeColor(m)
		rgba := MagnitudeColorRGBA(m)
		if prev, ok := rgbaByColor[color]; ok {
			assert.Equal(t, prev, rgba, "magnitude %.2f", m)
		}
		rgbaByColor[color] = rgba
	}
	assert.Len(t, rgbaByColor, 4)
}

func TestBandFor_NaN(t *testing.T) {
	assert.Equal(t, BandLow, BandFor(math.NaN()))
}

func TestMarkerRadius(t *testing.T) {
	tests := []struct {
		name      string
		magnitude float64
		want      float64
	}{
		{"zero", 0, 4},
		{"negative", -10, 4},
		{"two", 2, 6},
		{"boundary", 4.0 / 3.0, 4},
		{"large", 7.5, 22.5},
		{"NaN", math.NaN(), 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, MarkerRadius(tt.magnitude), 1e-9)
		})
	}
}

func TestFormatTime(t *testing.T) {
	ms := time.Date(2024, time.April, 26, 15, 10, 42, 0, time.UTC).UnixMilli()

	assert.Equal(t, "Apr 26, 2024 15:10", FormatTime(ms))
	assert.Equal(t, "Apr 26, 2024 15:10:42", FormatTimeDetailed(ms))
}

func TestFormatTimeIn(t *testing.T) {
	ms := time.Date(2024, time.January, 5, 3, 4, 5, 0, time.UTC).UnixMilli()
	zone := time.FixedZone("UTC-8", -8*60*60)

	assert.Equal(t, "Jan 04, 2024 19:04", FormatTimeIn(ms, zone))
	assert.Equal(t, "Jan 04, 2024 19:04:05", FormatTimeDetailedIn(ms, zone))
	assert.Equal(t, "Jan 05, 2024 03:04", FormatTimeIn(ms, nil))
}

func TestDecorate(t *testing.T) {
	q := Earthquake{ID: "a", Place: "Santiago", Magnitude: 5.5, Time: 0}

	m := Decorate(q, nil)

	assert.Equal(t, q, m.Earthquake)
	assert.Equal(t, "high", m.Band)
	assert.Equal(t, "orange", m.Color)
	assert.Equal(t, "rgba(255, 152, 0, 0.8)", m.ColorRGBA)
	assert.InDelta(t, 16.5, m.Radius, 1e-9)
	assert.Equal(t, "Jan 01, 1970 00:00", m.TimeFormatted)
	assert.Equal(t, "Jan 01, 1970 00:00:00", m.TimeDetailed)

	assert.Len(t, DecorateAll([]Earthquake{q, q}, nil), 2)
}
