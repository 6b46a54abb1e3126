package ml

// boundaryMarker wraps names before windowing so edge n-grams carry start-of-
// name and end-of-name context. Normalized names are limited to a..z, so the
// marker can never collide with name content.
const boundaryMarker = "_"

// DefaultNGram is the fixed n-gram order for trained models.
const DefaultNGram = 3

// NGrams returns every contiguous length-n substring of s after wrapping it
// with a single boundary marker on each side, left to right. Returns nil when
// the marked string is shorter than n. Duplicates are kept; they become
// repeated counts at the vectorizer stage.
func NGrams(s string, n int) []string {
	if n <= 0 {
		return nil
	}
	marked := []rune(boundaryMarker + s + boundaryMarker)
	if len(marked) < n {
		return nil
	}
	grams := make([]string, 0, len(marked)-n+1)
	for i := 0; i+n <= len(marked); i++ {
		grams = append(grams, string(marked[i:i+n]))
	}
	return grams
}
