package sliceutil

// Clone returns a copy of src; empty input yields nil.
func Clone[T any](src []T) []T {
	if len(src) == 0 {
		return nil
	}
	dst := make([]T, len(src))
	copy(dst, src)
	return dst
}
