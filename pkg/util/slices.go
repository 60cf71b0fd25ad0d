package util

// Filter returns a new slice with the elements of s matching p. The input is
// left untouched.
func Filter[T any](s []T, p func(T) bool) []T {
	out := make([]T, 0, len(s))
	for _, e := range s {
		if p(e) {
			out = append(out, e)
		}
	}
	return out
}
