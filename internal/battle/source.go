package battle

// Source is the randomness the engine draws from. *rand.Rand satisfies it,
// so a seeded rand.New(rand.NewSource(seed)) makes battles reproducible.
type Source interface {
	// Float64 returns a uniform sample in [0, 1).
	Float64() float64
	// Intn returns a uniform sample in [0, n).
	Intn(n int) int
}
