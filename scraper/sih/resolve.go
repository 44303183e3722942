package sih

// firstMatch tries each strategy in order and returns the first value that
// try reports as found, together with the strategy that produced it.
func firstMatch[S, T any](strategies []S, try func(S) (T, bool)) (T, S, bool) {
	for _, s := range strategies {
		if v, ok := try(s); ok {
			return v, s, true
		}
	}
	var zeroT T
	var zeroS S
	return zeroT, zeroS, false
}
