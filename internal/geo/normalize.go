package geo

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/twpayne/go-polyline"
)

// Polyline is a Google encoded polyline with 5 decimal digits of precision.
type Polyline string

// Polyline6 is an encoded polyline with 6 decimal digits of precision, as
// produced by OSRM and Valhalla with geometries=polyline6.
type Polyline6 string

// Delimited is a "lat,lon|lat,lon|..." string.
type Delimited string

var polyline6Codec = polyline.Codec{Dim: 2, Scale: 1e6}

// Normalize converts any supported route geometry into a canonical ordered
// sequence of points. Supported inputs:
//
//   - []Point
//   - []orb.Point, orb.LineString, orb.MultiLineString ([lon, lat] order)
//   - [][2]float64, [][]float64 ([lat, lon] order)
//   - Polyline, Polyline6, Delimited
//   - string: a delimited string when it only contains digits, signs, dots,
//     commas, pipes and whitespace, otherwise a precision-5 encoded polyline
//   - json.RawMessage or []byte holding a JSON string, a JSON array of
//     {"lat","lon"} objects or [lat, lon] pairs, or a GeoJSON geometry
//
// Invalid coordinates and consecutive duplicates are dropped. Fewer than two
// usable points yields nil, which callers treat as "cannot score this route".
func Normalize(input any) []Point {
	return clean(decode(input))
}

func decode(input any) []Point {
	switch v := input.(type) {
	case nil:
		return nil
	case []Point:
		return v
	case []orb.Point:
		return fromOrbPoints(v)
	case orb.LineString:
		return fromOrbPoints(v)
	case orb.MultiLineString:
		var out []Point
		for _, ls := range v {
			out = append(out, fromOrbPoints(ls)...)
		}

		return out
	case [][2]float64:
		out := make([]Point, 0, len(v))
		for _, pair := range v {
			out = append(out, Point{Lat: pair[0], Lon: pair[1]})
		}

		return out
	case [][]float64:
		return fromLatLonPairs(v)
	case Polyline:
		return decodePolyline(string(v), false)
	case Polyline6:
		return decodePolyline(string(v), true)
	case Delimited:
		return parseDelimited(string(v))
	case string:
		return decodeString(v)
	case json.RawMessage:
		return decodeJSON(v)
	case []byte:
		return decodeJSON(v)
	default:
		return nil
	}
}

func decodeString(s string) []Point {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	if looksDelimited(s) {
		return parseDelimited(s)
	}

	return decodePolyline(s, false)
}

// looksDelimited reports whether s can only be a delimited coordinate list.
// Encoded polylines use characters 63..126, which never include digits or
// commas, so the two encodings cannot be confused.
func looksDelimited(s string) bool {
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case strings.ContainsRune(".,-+| \t\r\n", r):
		default:
			return false
		}
	}

	return strings.ContainsRune(s, ',')
}

func parseDelimited(s string) []Point {
	parts := strings.Split(s, "|")
	out := make([]Point, 0, len(parts))

	for _, part := range parts {
		fields := strings.Split(strings.TrimSpace(part), ",")
		if len(fields) != 2 {
			continue
		}

		lat, err := strconv.ParseFloat(strings.TrimSpace(fields[0]), 64)
		if err != nil {
			continue
		}
		lon, err := strconv.ParseFloat(strings.TrimSpace(fields[1]), 64)
		if err != nil {
			continue
		}

		out = append(out, Point{Lat: lat, Lon: lon})
	}

	return out
}

func decodePolyline(s string, precision6 bool) []Point {
	var (
		coords [][]float64
		err    error
	)

	if precision6 {
		coords, _, err = polyline6Codec.DecodeCoords([]byte(s))
	} else {
		coords, _, err = polyline.DecodeCoords([]byte(s))
	}
	if err != nil {
		return nil
	}

	return fromLatLonPairs(coords)
}

func decodeJSON(raw []byte) []Point {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}

	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil
		}

		return decodeString(s)
	case '[':
		return decodeJSONArray(raw)
	case '{':
		geometry, err := geojson.UnmarshalGeometry(raw)
		if err != nil || geometry == nil {
			return nil
		}

		return decode(geometry.Geometry())
	default:
		return nil
	}
}

type jsonPoint struct {
	Lat       *float64 `json:"lat"`
	Lon       *float64 `json:"lon"`
	Lng       *float64 `json:"lng"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

func (p jsonPoint) point() (Point, bool) {
	lat := firstNonNil(p.Lat, p.Latitude)
	lon := firstNonNil(p.Lon, p.Lng, p.Longitude)
	if lat == nil || lon == nil {
		return Point{}, false
	}

	return Point{Lat: *lat, Lon: *lon}, true
}

func firstNonNil(values ...*float64) *float64 {
	for _, v := range values {
		if v != nil {
			return v
		}
	}

	return nil
}

func decodeJSONArray(raw []byte) []Point {
	var pairs [][]float64
	if err := json.Unmarshal(raw, &pairs); err == nil {
		return fromLatLonPairs(pairs)
	}

	var objects []jsonPoint
	if err := json.Unmarshal(raw, &objects); err != nil {
		return nil
	}

	out := make([]Point, 0, len(objects))
	for _, obj := range objects {
		if p, ok := obj.point(); ok {
			out = append(out, p)
		}
	}

	return out
}

func fromOrbPoints(points []orb.Point) []Point {
	out := make([]Point, 0, len(points))
	for _, p := range points {
		out = append(out, FromOrb(p))
	}

	return out
}

func fromLatLonPairs(pairs [][]float64) []Point {
	out := make([]Point, 0, len(pairs))
	for _, pair := range pairs {
		if len(pair) < 2 {
			continue
		}
		out = append(out, Point{Lat: pair[0], Lon: pair[1]})
	}

	return out
}

func clean(points []Point) []Point {
	out := make([]Point, 0, len(points))
	for _, p := range points {
		if !p.Valid() {
			continue
		}
		if n := len(out); n > 0 && out[n-1] == p {
			continue
		}
		out = append(out, p)
	}

	if len(out) < 2 {
		return nil
	}

	return out
}
