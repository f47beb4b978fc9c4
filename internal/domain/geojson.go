package domain

import "encoding/json"

// Feature is a single region polygon from the boundary dataset. Geometry is
// carried as raw JSON: the service never interprets coordinates, it only
// attaches metric properties and passes the shape through to the map layer.
type Feature struct {
	Type       string         `json:"type"`
	Geometry   json.RawMessage `json:"geometry"`
	Properties map[string]any  `json:"properties"`
}

// FeatureCollection is a GeoJSON feature collection.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// BoundaryNameKey is the property under which the boundary dataset stores a
// region's name.
const BoundaryNameKey = "ST_NM"

// BoundaryName returns the region name recorded on the feature, or "" when
// the property is absent or not a string.
func (f Feature) BoundaryName() string {
	v, ok := f.Properties[BoundaryNameKey]
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}
