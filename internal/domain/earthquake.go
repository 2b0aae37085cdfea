package domain

import "strings"

// Earthquake is one normalized record from the feed. Records are replaced
// wholesale on every successful fetch and never mutated in place.
type Earthquake struct {
	ID        string  `json:"id"`
	Place     string  `json:"place"`
	Magnitude float64 `json:"magnitude"`
	Time      int64   `json:"time"`  // epoch milliseconds
	Depth     float64 `json:"depth"` // kilometers
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
}

// Default filter bounds. The range covers every magnitude USGS publishes.
const (
	DefaultMagnitudeMin = -2.0
	DefaultMagnitudeMax = 10.0
)

// Preferences is the user-adjustable filter configuration. The JSON form is
// the persisted format and must stay flat.
type Preferences struct {
	MagnitudeMin float64 `json:"magnitudeMin"`
	MagnitudeMax float64 `json:"magnitudeMax"`
	LocationText string  `json:"locationText"`
}

// DefaultPreferences returns the filter set used when nothing is persisted.
func DefaultPreferences() Preferences {
	return Preferences{
		MagnitudeMin: DefaultMagnitudeMin,
		MagnitudeMax: DefaultMagnitudeMax,
	}
}

// FilterUpdate is a partial Preferences. Nil fields leave the current value
// unchanged.
type FilterUpdate struct {
	MagnitudeMin *float64 `json:"magnitudeMin,omitempty"`
	MagnitudeMax *float64 `json:"magnitudeMax,omitempty"`
	LocationText *string  `json:"locationText,omitempty"`
}

// Merge returns p with every non-nil field of u applied.
func (p Preferences) Merge(u FilterUpdate) Preferences {
	if u.MagnitudeMin != nil {
		p.MagnitudeMin = *u.MagnitudeMin
	}
	if u.MagnitudeMax != nil {
		p.MagnitudeMax = *u.MagnitudeMax
	}
	if u.LocationText != nil {
		p.LocationText = *u.LocationText
	}
	return p
}

// Match reports whether q passes the filter: magnitude inside [min, max]
// inclusive and, when LocationText is set, a case-insensitive substring match
// on the place. An inverted range matches nothing.
func (p Preferences) Match(q Earthquake) bool {
	if !(q.Magnitude >= p.MagnitudeMin && q.Magnitude <= p.MagnitudeMax) {
		return false
	}
	if p.LocationText == "" {
		return true
	}
	return strings.Contains(strings.ToLower(q.Place), strings.ToLower(p.LocationText))
}

// Filter returns the records of quakes that match p, preserving order.
func (p Preferences) Filter(quakes []Earthquake) []Earthquake {
	out := make([]Earthquake, 0, len(quakes))
	for _, q := range quakes {
		if p.Match(q) {
			out = append(out, q)
		}
	}
	return out
}
