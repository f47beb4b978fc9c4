package geo

import (
	"github.com/paypulse/backend/internal/domain"
	"github.com/paypulse/backend/pkg/utils"
)

// Extrusion range for the 3D map: every region's column height lands in
// [HeightMin, HeightMin+HeightSpan] regardless of the metric's scale.
const (
	HeightMin  = 200000.0
	HeightSpan = 700000.0
)

// Fill color applied to every region polygon (RGBA).
const (
	FillR = 66
	FillG = 135
	FillB = 245
	FillA = 180
)

// BuildFeatureCollection attaches a metric value, an extrusion height and a
// fill color to every boundary feature. Regions missing from rows get value 0.
// Heights rescale linearly over the row set's [min, max]; an all-equal or
// empty set collapses every height to HeightMin. The boundary collection is
// never mutated.
func BuildFeatureCollection(rows []domain.MetricRow, boundary *domain.FeatureCollection) *domain.FeatureCollection {
	vals := make(map[string]float64, len(rows))
	for _, r := range rows {
		vals[ToBoundaryName(r.State)] = r.Value
	}

	vmin, vmax := 0.0, 1.0
	first := true
	for _, v := range vals {
		if first {
			vmin, vmax = v, v
			first = false
			continue
		}
		if v < vmin {
			vmin = v
		}
		if v > vmax {
			vmax = v
		}
	}

	out := &domain.FeatureCollection{
		Type:     "FeatureCollection",
		Features: make([]domain.Feature, 0, len(boundary.Features)),
	}
	for _, f := range boundary.Features {
		v := vals[f.BoundaryName()]
		norm := utils.Rescale(v, vmin, vmax)

		props := make(map[string]any, len(f.Properties)+6)
		for k, pv := range f.Properties {
			props[k] = pv
		}
		props["metric_value"] = v
		props["height"] = HeightMin + norm*HeightSpan
		props["fill_r"] = FillR
		props["fill_g"] = FillG
		props["fill_b"] = FillB
		props["fill_a"] = FillA

		out.Features = append(out.Features, domain.Feature{
			Type:       f.Type,
			Geometry:   f.Geometry,
			Properties: props,
		})
	}
	return out
}
