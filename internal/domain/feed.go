package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
)

// UnknownPlace replaces a missing or empty place description.
const UnknownPlace = "Unknown location"

// ErrMalformedFeed is returned when the document parses as JSON but does not
// have the GeoJSON shape the feed promises.
var ErrMalformedFeed = errors.New("malformed feed")

// USGS GeoJSON summary feed types. Optional fields are pointers so that
// absent and null values can be told apart from zero.

type featureCollection struct {
	Features []feature `json:"features"`
}

type feature struct {
	ID         string      `json:"id"`
	Properties *properties `json:"properties"`
	Geometry   *geometry   `json:"geometry"`
}

type properties struct {
	Place *string  `json:"place"`
	Mag   *float64 `json:"mag"`
	Time  *float64 `json:"time"` // epoch ms; decoded as float so 1.7e12 is accepted
}

type geometry struct {
	Coordinates []*float64 `json:"coordinates"` // [lon, lat, depth]
}

// ParseFeed decodes a GeoJSON feature collection into earthquake records,
// filling defaults for absent optional fields. Any feature missing a required
// field fails the whole document so that callers never see a partial set.
func ParseFeed(r io.Reader) ([]Earthquake, error) {
	var doc featureCollection
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode feed: %w", err)
	}
	if doc.Features == nil {
		return nil, fmt.Errorf("%w: missing features", ErrMalformedFeed)
	}

	quakes := make([]Earthquake, 0, len(doc.Features))
	for i, f := range doc.Features {
		q, err := normalizeFeature(f)
		if err != nil {
			return nil, fmt.Errorf("%w: feature %d (%q): %w", ErrMalformedFeed, i, f.ID, err)
		}
		quakes = append(quakes, q)
	}
	return quakes, nil
}

// normalizeFeature applies the per-field defaults: place falls back to
// UnknownPlace, magnitude and depth to 0.
func normalizeFeature(f feature) (Earthquake, error) {
	if f.Properties == nil {
		return Earthquake{}, errors.New("missing properties")
	}
	if f.Properties.Time == nil {
		return Earthquake{}, errors.New("missing properties.time")
	}
	// float64(math.MaxInt64) rounds up to 2^63, so the upper bound is exclusive.
	ms := *f.Properties.Time
	if ms < math.MinInt64 || ms >= math.MaxInt64 {
		return Earthquake{}, fmt.Errorf("properties.time %g out of range", ms)
	}
	if f.Geometry == nil {
		return Earthquake{}, errors.New("missing geometry")
	}
	coords := f.Geometry.Coordinates
	if len(coords) < 2 || coords[0] == nil || coords[1] == nil {
		return Earthquake{}, errors.New("geometry.coordinates needs longitude and latitude")
	}

	q := Earthquake{
		ID:        f.ID,
		Place:     UnknownPlace,
		Time:      int64(ms),
		Longitude: *coords[0],
		Latitude:  *coords[1],
	}
	if p := f.Properties.Place; p != nil && *p != "" {
		q.Place = *p
	}
	if m := f.Properties.Mag; m != nil {
		q.Magnitude = *m
	}
	if len(coords) > 2 && coords[2] != nil {
		q.Depth = *coords[2]
	}
	return q, nil
}
