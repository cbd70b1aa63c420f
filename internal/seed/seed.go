// Package seed provides the deterministic hashing and pseudo-random
// generation used for per-session participant and provider selection.
// The same seed string always produces the same sequence, so selection
// is reproducible across runs and process restarts.
package seed

// Hash returns a 32-bit FNV-1a hash of text.
func Hash(text string) uint32 {
	hash := uint32(2166136261)
	for _, r := range text {
		hash ^= uint32(r)
		hash *= 16777619
	}
	return hash
}

// Rand is a small deterministic generator (mulberry32) advancing a
// 32-bit state seeded from a string.
type Rand struct {
	state uint32
}

// New creates a Rand seeded from the hash of the given string.
func New(s string) *Rand {
	return &Rand{state: Hash(s)}
}

// Float64 returns the next value in [0, 1).
func (r *Rand) Float64() float64 {
	r.state += 0x6d2b79f5
	x := r.state
	x = (x ^ (x >> 15)) * (x | 1)
	x ^= x + (x^(x>>7))*(x|61)
	return float64(x^(x>>14)) / 4294967296
}

// Intn returns a value in [0, n) drawn from the generator.
func (r *Rand) Intn(n int) int {
	return int(r.Float64() * float64(n))
}

// Shuffle returns a copy of items shuffled with a Fisher-Yates pass
// driven by a generator seeded from s.
func Shuffle[T any](items []T, s string) []T {
	rng := New(s)
	out := make([]T, len(items))
	copy(out, items)
	for i := len(out) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}
