package plume

import "encoding/json"

// GeometryType represents the GeoJSON geometry type
type GeometryType string

const (
	GeometryPoint      GeometryType = "Point"
	GeometryLineString GeometryType = "LineString"
	GeometryPolygon    GeometryType = "Polygon"
)

// Geometry represents a GeoJSON geometry object
type Geometry struct {
	Type        GeometryType    `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
}

// Feature represents a GeoJSON feature with geometry and properties
type Feature struct {
	Type       string                 `json:"type"`
	Geometry   *Geometry              `json:"geometry"`
	Properties map[string]interface{} `json:"properties"`
	ID         string                 `json:"id,omitempty"`
}

// FeatureCollection represents a GeoJSON FeatureCollection
type FeatureCollection struct {
	Type     string     `json:"type"`
	Features []*Feature `json:"features"`
}

// NewFeatureCollection creates a new empty FeatureCollection
func NewFeatureCollection() *FeatureCollection {
	return &FeatureCollection{
		Type:     "FeatureCollection",
		Features: make([]*Feature, 0),
	}
}

// AddFeature appends a feature to the collection
func (fc *FeatureCollection) AddFeature(f *Feature) {
	fc.Features = append(fc.Features, f)
}

// NewFeature creates a Feature with the given geometry and properties
func NewFeature(geom *Geometry, props map[string]interface{}) *Feature {
	if props == nil {
		props = make(map[string]interface{})
	}
	return &Feature{
		Type:       "Feature",
		Geometry:   geom,
		Properties: props,
	}
}

// PathToLineString converts a Path to a GeoJSON LineString geometry.
// Coordinates are in world space (x, y). Closed rings keep their repeated
// end point; consumers distinguish rings by first == last.
func PathToLineString(path Path) *Geometry {
	coords := make([][2]float64, len(path))
	for i, p := range path {
		coords[i] = [2]float64{p.X, p.Y}
	}

	coordsJSON, _ := json.Marshal(coords)
	return &Geometry{
		Type:        GeometryLineString,
		Coordinates: coordsJSON,
	}
}

// PathToPolygon converts a closed Path to a GeoJSON Polygon geometry with a
// single outer ring. The ring is closed if it is not already.
func PathToPolygon(path Path) *Geometry {
	coords := make([][2]float64, len(path))
	for i, p := range path {
		coords[i] = [2]float64{p.X, p.Y}
	}

	if len(coords) > 0 {
		first := coords[0]
		last := coords[len(coords)-1]
		if first[0] != last[0] || first[1] != last[1] {
			coords = append(coords, first)
		}
	}

	rings := [][][2]float64{coords}
	coordsJSON, _ := json.Marshal(rings)
	return &Geometry{
		Type:        GeometryPolygon,
		Coordinates: coordsJSON,
	}
}

// LineStringPath decodes a LineString geometry back into a Path. Returns
// nil for nil, non-LineString or malformed geometries.
func LineStringPath(geom *Geometry) Path {
	if geom == nil || geom.Type != GeometryLineString {
		return nil
	}
	var coords [][2]float64
	if err := json.Unmarshal(geom.Coordinates, &coords); err != nil {
		return nil
	}
	path := make(Path, len(coords))
	for i, c := range coords {
		path[i] = Point{X: c[0], Y: c[1]}
	}
	return path
}
