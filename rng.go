package pbls

import "math/rand"

// newRNG returns a deterministic, engine-owned random source seeded from
// seed. The original local_search seeds a process-wide RNG once via
// srand(m_config.seed()); this engine instead owns its RNG explicitly so
// that two engines never interfere with each other's random streams.
func newRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewSource(int64(seed)))
}
