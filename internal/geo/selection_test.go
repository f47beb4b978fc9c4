package geo

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveClickedRegion(t *testing.T) {
	tests := []struct {
		name  string
		event string
		want  string
	}{
		{
			"selection with objects list",
			`{"selection":{"objects":[{"object":{"properties":{"ST_NM":"Odisha"}}}]}}`,
			"Orissa",
		},
		{
			"body without selection wrapper",
			`{"objects":[{"properties":{"ST_NM":"Jammu & Kashmir"}}]}`,
			"Jammu And Kashmir",
		},
		{
			"objects keyed by layer id",
			`{"selection":{"objects":{"region-layer":[{"properties":{"state":"Kerala"}}]}}}`,
			"Kerala",
		},
		{
			"layer value carrying a single object",
			`{"selection":{"objects":{"region-layer":{"properties":{"name":"Punjab"}}}}}`,
			"Punjab",
		},
		{
			"single object entry",
			`{"selection":{"object":{"properties":{"ST_NM":"Puducherry"}}}}`,
			"Pondicherry",
		},
		{
			"boundary key outranks state alias",
			`{"selection":{"object":{"properties":{"ST_NM":"Delhi","state":"Kerala"}}}}`,
			"Nct Of Delhi",
		},
		{
			"empty boundary key falls through to state",
			`{"selection":{"object":{"properties":{"ST_NM":"","state":"Goa"}}}}`,
			"Goa",
		},
		{
			"state alias falls through to name",
			`{"selection":{"object":{"properties":{"state":"","name":"Bihar"}}}}`,
			"Bihar",
		},
		{
			"clicked name trimmed before mapping",
			`{"selection":{"object":{"properties":{"ST_NM":"  Odisha  "}}}}`,
			"Orissa",
		},
		{
			"unmapped boundary name passes through",
			`{"selection":{"object":{"properties":{"ST_NM":"Tamil Nadu"}}}}`,
			"Tamil Nadu",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ResolveClickedRegion(json.RawMessage(tc.event))
			assert.True(t, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestResolveClickedRegionNoSelection(t *testing.T) {
	tests := []struct {
		name  string
		event string
	}{
		{"empty object", `{}`},
		{"null event", `null`},
		{"array event", `[1,2]`},
		{"scalar event", `"click"`},
		{"invalid json", `{"selection":`},
		{"null selection", `{"selection":null}`},
		{"scalar selection", `{"selection":"x"}`},
		{"selection without entries", `{"selection":{"row":3}}`},
		{"empty objects list", `{"selection":{"objects":[]}}`},
		{"null objects", `{"selection":{"objects":null}}`},
		{"scalar objects", `{"selection":{"objects":7}}`},
		{"layer map with empty list", `{"selection":{"objects":{"layer":[]}}}`},
		{"layer map with scalars", `{"selection":{"objects":{"layer":"x"}}}`},
		{"scalar first entry", `{"selection":{"objects":["Kerala"]}}`},
		{"null single object", `{"selection":{"object":null}}`},
		{"entry without properties", `{"selection":{"objects":[{"object":{}}]}}`},
		{"null properties", `{"selection":{"object":{"properties":null}}}`},
		{"scalar properties", `{"selection":{"object":{"properties":"Kerala"}}}`},
		{"no recognized alias", `{"selection":{"object":{"properties":{"region":"Kerala"}}}}`},
		{"all aliases empty", `{"selection":{"object":{"properties":{"ST_NM":"","state":"","name":""}}}}`},
		{"whitespace only name", `{"selection":{"object":{"properties":{"ST_NM":"   "}}}}`},
		{"non-string name wins the alias chain", `{"selection":{"object":{"properties":{"ST_NM":123,"state":"Goa"}}}}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ResolveClickedRegion(json.RawMessage(tc.event))
			assert.False(t, ok)
			assert.Empty(t, got)
		})
	}
}

// TestResolveClickedRegionLayerOrder pins the pick to the lowest layer key so
// repeated clicks with the same payload resolve identically.
func TestResolveClickedRegionLayerOrder(t *testing.T) {
	event := `{"selection":{"objects":{
		"b-layer":[{"properties":{"ST_NM":"Kerala"}}],
		"a-layer":[{"properties":{"ST_NM":"Odisha"}}]
	}}}`

	got, ok := ResolveClickedRegion(json.RawMessage(event))
	assert.True(t, ok)
	assert.Equal(t, "Orissa", got)
}
