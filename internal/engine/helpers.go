package engine

// pairKey orders two ids so (a,b) and (b,a) map to the same key.
func pairKey(a, b string) [2]string {
	if b < a {
		a, b = b, a
	}
	return [2]string{a, b}
}
