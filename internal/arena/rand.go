package arena

import "math/rand"

// Thin wrappers around math/rand's package-level (mutex-guarded, therefore
// goroutine-safe) functions, kept in one place so call sites read as intent
// ("pick a random alive player") rather than raw math/rand calls scattered
// through the engine.

func randIntn(n int) int { return rand.Intn(n) }

func randFloat64() float64 { return rand.Float64() }

func randShuffle(n int, swap func(i, j int)) { rand.Shuffle(n, swap) }
