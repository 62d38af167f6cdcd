package archive

// Attribute keys and annotation type tags shared by the annotation models.
const (
	// TypeAttr is the attrs.json key carrying the annotation type tag.
	TypeAttr = "annotation_type"

	// TypePoints tags an archive of plain point annotations.
	TypePoints = "points"
	// TypeSpheres tags an archive of sphere annotations.
	TypeSpheres = "spheres"
	// TypePaths tags an archive of path annotations.
	TypePaths = "paths"

	// RadiiAttr carries the per-sphere radii of a sphere archive.
	RadiiAttr = "radii"
	// PathIDsAttr carries the per-point path ids of a path archive.
	PathIDsAttr = "path_ids"
)

// TypeTag returns the array's annotation type tag, or "" when untagged.
func (a *Array) TypeTag() string {
	if a.Attrs == nil {
		return ""
	}
	tag, _ := a.Attrs[TypeAttr].(string)
	return tag
}

// ValidateType checks the array's annotation type tag against expected.
func (a *Array) ValidateType(expected string) error {
	if tag := a.TypeTag(); tag != expected {
		return &ErrAnnotationType{Expected: expected, Found: tag}
	}
	return nil
}

// FloatsAttr reads a float slice attribute. JSON codecs decode numeric
// arrays as []any of float64; this converts them back.
func FloatsAttr(attrs map[string]any, key string) ([]float64, bool) {
	raw, ok := attrs[key]
	if !ok {
		return nil, false
	}
	switch v := raw.(type) {
	case []float64:
		out := make([]float64, len(v))
		copy(out, v)
		return out, true
	case []any:
		out := make([]float64, len(v))
		for i, e := range v {
			f, ok := e.(float64)
			if !ok {
				return nil, false
			}
			out[i] = f
		}
		return out, true
	default:
		return nil, false
	}
}

// IntsAttr reads an integer slice attribute, accepting the float64 values
// JSON decoding produces as long as they are integral.
func IntsAttr(attrs map[string]any, key string) ([]int64, bool) {
	raw, ok := attrs[key]
	if !ok {
		return nil, false
	}
	switch v := raw.(type) {
	case []int64:
		out := make([]int64, len(v))
		copy(out, v)
		return out, true
	case []any:
		out := make([]int64, len(v))
		for i, e := range v {
			switch n := e.(type) {
			case float64:
				if n != float64(int64(n)) {
					return nil, false
				}
				out[i] = int64(n)
			case int64:
				out[i] = n
			default:
				return nil, false
			}
		}
		return out, true
	default:
		return nil, false
	}
}
