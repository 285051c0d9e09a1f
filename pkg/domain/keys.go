package domain

// marshalKey and unmarshalKey back the text encoding of the small enums in this
// package. Index 0 of keys is reserved for the zero value and never encoded.
func marshalKey[T ~int](keys []string, field string, v T) ([]byte, error) {
	if int(v) <= 0 || int(v) >= len(keys) {
		return nil, invalid(field, int(v), "out of range")
	}
	return []byte(keys[v]), nil
}

func unmarshalKey[T ~int](keys []string, field string, text []byte, dst *T) error {
	for i := 1; i < len(keys); i++ {
		if keys[i] == string(text) {
			*dst = T(i)
			return nil
		}
	}
	return invalid(field, string(text), "unknown value")
}
