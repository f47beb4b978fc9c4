package geo

import "strings"

// canonicalToBoundary maps state names as stored in the database to the
// ST_NM labels used by the boundary dataset. The table covers the known
// mismatches only; every other name is identical on both sides.
var canonicalToBoundary = map[string]string{
	"Andaman And Nicobar":                  "Andaman & Nicobar Islands",
	"Dadra And Nagar Haveli And Daman Diu": "Dadra and Nagar Haveli and Daman and Diu",
	"Nct Of Delhi":                         "Delhi",
	"Jammu And Kashmir":                    "Jammu & Kashmir",
	"Pondicherry":                          "Puducherry",
	"Orissa":                               "Odisha",
}

var boundaryToCanonical = invert(canonicalToBoundary)

func invert(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[v] = k
	}
	return out
}

// ToBoundaryName converts a database state name to its boundary label.
// Unknown names pass through trimmed, never an error.
func ToBoundaryName(name string) string {
	name = strings.TrimSpace(name)
	if mapped, ok := canonicalToBoundary[name]; ok {
		return mapped
	}
	return name
}

// ToCanonicalName converts a boundary label back to the database state name.
// Unknown labels pass through trimmed, never an error.
func ToCanonicalName(name string) string {
	name = strings.TrimSpace(name)
	if mapped, ok := boundaryToCanonical[name]; ok {
		return mapped
	}
	return name
}
