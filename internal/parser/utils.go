package parser

import "github.com/zclconf/go-cty/cty"

// attrValue reads a named attribute from an object or map value. Returns
// false when the attribute is absent, null, or unknown.
func attrValue(v cty.Value, name string) (cty.Value, bool) {
	if v.IsNull() || !v.IsKnown() {
		return cty.NilVal, false
	}

	ty := v.Type()
	switch {
	case ty.IsObjectType():
		if !ty.HasAttribute(name) {
			return cty.NilVal, false
		}
		av := v.GetAttr(name)
		if av.IsNull() || !av.IsKnown() {
			return cty.NilVal, false
		}
		return av, true
	case ty.IsMapType():
		av, ok := v.AsValueMap()[name]
		if !ok || av.IsNull() || !av.IsKnown() {
			return cty.NilVal, false
		}
		return av, true
	}
	return cty.NilVal, false
}

// attrString reads a named string attribute, returning "" when the
// attribute is absent or not a string.
func attrString(v cty.Value, name string) string {
	av, ok := attrValue(v, name)
	if !ok || av.Type() != cty.String {
		return ""
	}
	return av.AsString()
}

// attrBool reads a named bool attribute, returning false when the attribute
// is absent or not a bool.
func attrBool(v cty.Value, name string) bool {
	av, ok := attrValue(v, name)
	if !ok || av.Type() != cty.Bool {
		return false
	}
	return av.True()
}

// GetStringFromMap safely extracts a string value from a decoded JSON map.
// Returns empty string if the key is not found or the value is not a string.
func GetStringFromMap(data map[string]interface{}, key string) string {
	if val, ok := data[key]; ok {
		if str, ok := val.(string); ok {
			return str
		}
	}
	return ""
}

// GetBoolFromMap safely extracts a bool value from a decoded JSON map.
func GetBoolFromMap(data map[string]interface{}, key string) bool {
	if val, ok := data[key]; ok {
		if b, ok := val.(bool); ok {
			return b
		}
	}
	return false
}

// GetMapFromMap safely extracts a nested object from a decoded JSON map.
func GetMapFromMap(data map[string]interface{}, key string) (map[string]interface{}, bool) {
	if val, ok := data[key]; ok {
		if m, ok := val.(map[string]interface{}); ok {
			return m, true
		}
	}
	return nil, false
}
