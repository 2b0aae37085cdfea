package domain

import (
	"math"
	"time"
)

// Band is a categorical magnitude tier used for colour-coding.
type Band int

const (
	BandLow Band = iota
	BandModerate
	BandHigh
	BandHighest
)

// Lower bounds (inclusive) for the upper three bands.
const (
	moderateThreshold = 3.0
	highThreshold     = 5.0
	highestThreshold  = 7.0
)

type bandStyle struct {
	name string
	rgba string
}

// bandStyles is indexed by Band so both colour encodings share one lookup.
var bandStyles = [...]bandStyle{
	BandLow:      {name: "green", rgba: "rgba(76, 175, 80, 0.8)"},
	BandModerate: {name: "yellow", rgba: "rgba(255, 235, 59, 0.8)"},
	BandHigh:     {name: "orange", rgba: "rgba(255, 152, 0, 0.8)"},
	BandHighest:  {name: "red", rgba: "rgba(244, 67, 54, 0.8)"},
}

func (b Band) String() string {
	switch b {
	case BandLow:
		return "low"
	case BandModerate:
		return "moderate"
	case BandHigh:
		return "high"
	case BandHighest:
		return "highest"
	default:
		return "unknown"
	}
}

// Color returns the symbolic colour name of the band.
func (b Band) Color() string {
	return b.style().name
}

// RGBA returns the translucent CSS colour of the band.
func (b Band) RGBA() string {
	return b.style().rgba
}

func (b Band) style() bandStyle {
	if b < BandLow || b > BandHighest {
		return bandStyles[BandLow]
	}
	return bandStyles[b]
}

// BandFor maps a magnitude to its severity band. Anything below 3, including
// NaN, lands in BandLow.
func BandFor(magnitude float64) Band {
	switch {
	case magnitude >= highestThreshold:
		return BandHighest
	case magnitude >= highThreshold:
		return BandHigh
	case magnitude >= moderateThreshold:
		return BandModerate
	default:
		return BandLow
	}
}

// MagnitudeColor returns the symbolic colour for a magnitude:
// red, orange, yellow or green.
func MagnitudeColor(magnitude float64) string {
	return BandFor(magnitude).Color()
}

// MagnitudeColorRGBA returns the translucent colour for a magnitude.
func MagnitudeColorRGBA(magnitude float64) string {
	return BandFor(magnitude).RGBA()
}

// minMarkerRadius keeps zero and negative magnitudes visible on a map.
const minMarkerRadius = 4.0

// MarkerRadius returns max(4, 3*magnitude).
func MarkerRadius(magnitude float64) float64 {
	r := magnitude * 3
	if math.IsNaN(r) || r < minMarkerRadius {
		return minMarkerRadius
	}
	return r
}

// Display layouts for event times.
const (
	TimeLayout         = "Jan 02, 2006 15:04"
	TimeLayoutDetailed = "Jan 02, 2006 15:04:05"
)

// FormatTime renders an epoch-millisecond timestamp in UTC without seconds.
func FormatTime(ms int64) string {
	return FormatTimeIn(ms, time.UTC)
}

// FormatTimeDetailed renders an epoch-millisecond timestamp in UTC with seconds.
func FormatTimeDetailed(ms int64) string {
	return FormatTimeDetailedIn(ms, time.UTC)
}

// FormatTimeIn is FormatTime in the given location. A nil location means UTC.
func FormatTimeIn(ms int64, loc *time.Location) string {
	return eventTime(ms, loc).Format(TimeLayout)
}

// FormatTimeDetailedIn is FormatTimeDetailed in the given location.
func FormatTimeDetailedIn(ms int64, loc *time.Location) string {
	return eventTime(ms, loc).Format(TimeLayoutDetailed)
}

func eventTime(ms int64, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.UnixMilli(ms).In(loc)
}

// Marker is an earthquake decorated with the attributes a map or list needs.
type Marker struct {
	Earthquake
	Band          string  `json:"band"`
	Color         string  `json:"color"`
	ColorRGBA     string  `json:"colorRgba"`
	Radius        float64 `json:"radius"`
	TimeFormatted string  `json:"timeFormatted"`
	TimeDetailed  string  `json:"timeDetailed"`
}

// Decorate derives display attributes for q, formatting times in loc.
func Decorate(q Earthquake, loc *time.Location) Marker {
	band := BandFor(q.Magnitude)
	return Marker{
		Earthquake:    q,
		Band:          band.String(),
		Color:         band.Color(),
		ColorRGBA:     band.RGBA(),
		Radius:        MarkerRadius(q.Magnitude),
		TimeFormatted: FormatTimeIn(q.Time, loc),
		TimeDetailed:  FormatTimeDetailedIn(q.Time, loc),
	}
}

// DecorateAll decorates every record in order.
func DecorateAll(quakes []Earthquake, loc *time.Location) []Marker {
	out := make([]Marker, len(quakes))
	for i, q := range quakes {
		out[i] = Decorate(q, loc)
	}
	return out
}
