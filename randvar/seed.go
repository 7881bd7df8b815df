package randvar

// SweepStream is the observation slot reserved for the sequential phases
// of a sweep (parameter and weight updates). Observation indices are >= 0,
// so the stream never collides with a worker's.
const SweepStream = -1

// DeriveSeed maps (base seed, sweep, observation) to the seed of an
// independent random stream. The mapping is a fixed splitmix64 finalizer
// chain and is documented stable: traces recorded with one version replay
// identically on another.
func DeriveSeed(base uint64, sweep, i int) uint64 {
	x := splitmix64(base)
	x = splitmix64(x ^ uint64(int64(sweep)))
	x = splitmix64(x ^ uint64(int64(i)))
	return x
}

// splitmix64 is the finalizer from Vigna's SplitMix64 generator.
func splitmix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}
