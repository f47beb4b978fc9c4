package geo

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/paypulse/backend/internal/domain"
)

// nameAliases lists the property keys that may carry the clicked region's
// name, in priority order.
var nameAliases = [...]string{domain.BoundaryNameKey, "state", "name"}

// ResolveClickedRegion extracts the canonical region name from a map click
// payload. The payload's shape varies across renderer versions (selection
// wrapper or bare body, objects as a list or keyed by layer, the picked
// feature sometimes wrapped one level deeper), so every branch decodes one
// expected variant and anything else falls through to ("", false). Malformed
// input is never an error.
func ResolveClickedRegion(event json.RawMessage) (string, bool) {
	sel, ok := selectionBody(event)
	if !ok {
		return "", false
	}
	obj, ok := firstSelectedObject(sel)
	if !ok {
		return "", false
	}
	if inner, found := obj["object"]; found {
		var m map[string]json.RawMessage
		if err := json.Unmarshal(inner, &m); err != nil || m == nil {
			return "", false
		}
		obj = m
	}

	rawProps, found := obj["properties"]
	if !found {
		return "", false
	}
	var props map[string]json.RawMessage
	if err := json.Unmarshal(rawProps, &props); err != nil || props == nil {
		return "", false
	}

	var picked json.RawMessage
	for _, key := range nameAliases {
		if v, found := props[key]; found && nonEmptyValue(v) {
			picked = v
			break
		}
	}
	if picked == nil {
		return "", false
	}
	var name string
	if err := json.Unmarshal(picked, &name); err != nil {
		return "", false
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return "", false
	}
	return ToCanonicalName(name), true
}

// selectionBody returns the object holding the picked entries: the value
// under "selection" when that key exists, otherwise the event itself.
func selectionBody(event json.RawMessage) (map[string]json.RawMessage, bool) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(event, &top); err != nil || top == nil {
		return nil, false
	}
	raw, found := top["selection"]
	if !found {
		return top, true
	}
	var sel map[string]json.RawMessage
	if err := json.Unmarshal(raw, &sel); err != nil || sel == nil {
		return nil, false
	}
	return sel, true
}

// firstSelectedObject picks the first entry out of the selection and decodes
// it as an object.
func firstSelectedObject(sel map[string]json.RawMessage) (map[string]json.RawMessage, bool) {
	objs, ok := selectedObjects(sel)
	if !ok || len(objs) == 0 {
		return nil, false
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(objs[0], &obj); err != nil || obj == nil {
		return nil, false
	}
	return obj, true
}

// selectedObjects normalizes the three entry shapes to a flat list:
// "objects" as a list, "objects" keyed by layer id (each value a list or a
// single object), or a lone "object". A present "objects" key wins even when
// it yields nothing.
func selectedObjects(sel map[string]json.RawMessage) ([]json.RawMessage, bool) {
	if raw, found := sel["objects"]; found {
		var list []json.RawMessage
		if err := json.Unmarshal(raw, &list); err == nil {
			return list, true
		}
		var byLayer map[string]json.RawMessage
		if err := json.Unmarshal(raw, &byLayer); err != nil {
			return nil, false
		}
		keys := make([]string, 0, len(byLayer))
		for k := range byLayer {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			v := byLayer[k]
			var vlist []json.RawMessage
			if err := json.Unmarshal(v, &vlist); err == nil {
				if len(vlist) > 0 {
					return vlist, true
				}
				continue
			}
			var vobj map[string]json.RawMessage
			if err := json.Unmarshal(v, &vobj); err == nil && vobj != nil {
				return []json.RawMessage{v}, true
			}
		}
		return nil, false
	}
	if raw, found := sel["object"]; found {
		return []json.RawMessage{raw}, true
	}
	return nil, false
}

// nonEmptyValue reports whether a property value carries content: null,
// false, 0, "", [] and {} all read as empty and let the next alias try.
func nonEmptyValue(raw json.RawMessage) bool {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return false
	}
	switch t := v.(type) {
	case bool:
		return t
	case float64:
		return t != 0
	case string:
		return t != ""
	case []any:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	case nil:
		return false
	default:
		return true
	}
}
