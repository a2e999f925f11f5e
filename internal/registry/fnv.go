package registry

// 32-bit FNV-1a. The format identifier carried across the ring is the
// FNV-1a hash of the registered literal, so the function is fixed here
// rather than taken from hash/fnv: identifiers must stay stable across
// builds and match precomputed values.
const (
	offset32 = 0x811C9DC5
	prime32  = 0x01000193
)

// Hash returns the FNV-1a hash of s.
func Hash(s string) uint32 {
	return HashAdd(offset32, s)
}

// HashAdd folds s into a running FNV-1a state h. It lets callers hash a
// level prefix and a format literal as one logical string without
// concatenating them first.
func HashAdd(h uint32, s string) uint32 {
	for i := 0; i < len(s); i++ {
		h = (h ^ uint32(s[i])) * prime32
	}
	return h
}
