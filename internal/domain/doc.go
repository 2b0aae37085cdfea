// Package domain models the USGS earthquake summary feed and the filter and
// display rules applied to it.
//
// # Data Source
//
// The feed is the USGS "all earthquakes, past week" GeoJSON summary at
// https://earthquake.usgs.gov/earthquakes/feed/v1.0/summary/all_week.geojson.
// It is a FeatureCollection; each feature carries:
//
//	id                       unique event id, e.g. "us7000abcd"
//	properties.place         human-readable place, may be null
//	properties.mag           magnitude, may be null
//	properties.time          origin time in epoch milliseconds
//	geometry.coordinates     [longitude, latitude, depth-km]
//
// # Defaults
//
// Defaults are applied once, in [ParseFeed], so downstream code never sees
// holes: a null or empty place becomes [UnknownPlace], a null magnitude or a
// missing depth becomes 0. A feature without a time or without both
// coordinates makes the whole document malformed.
//
// # Filtering
//
// [Preferences.Match] keeps a record when its magnitude lies in the inclusive
// range [MagnitudeMin, MagnitudeMax] and, if LocationText is non-empty, the
// place contains it case-insensitively. Min greater than max is not an error;
// it simply matches nothing.
//
// # Severity Bands
//
// Magnitude maps to four bands with inclusive lower bounds:
//
//	>= 7  highest   red      rgba(244, 67, 54, 0.8)
//	>= 5  high      orange   rgba(255, 152, 0, 0.8)
//	>= 3  moderate  yellow   rgba(255, 235, 59, 0.8)
//	 < 3  low       green    rgba(76, 175, 80, 0.8)
//
// Both colour encodings are read from the same [Band], so they cannot
// disagree. Map markers use radius max(4, 3*magnitude).
package domain
