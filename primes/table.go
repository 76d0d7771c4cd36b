package primes

// defaultTable is the built-in table of twin-prime pairs (lo, hi) with
// hi-lo == 2, for lo up to 881 — 35 pairs. The core never computes
// primality at runtime; this table is the sole data source for it.
var defaultTable = [][2]int{
	{3, 5}, {5, 7}, {11, 13}, {17, 19}, {29, 31},
	{41, 43}, {59, 61}, {71, 73}, {101, 103}, {107, 109},
	{137, 139}, {149, 151}, {179, 181}, {191, 193}, {197, 199},
	{227, 229}, {239, 241}, {269, 271}, {281, 283}, {311, 313},
	{347, 349}, {419, 421}, {431, 433}, {461, 463}, {521, 523},
	{569, 571}, {599, 601}, {617, 619}, {641, 643}, {659, 661},
	{809, 811}, {821, 823}, {827, 829}, {857, 859}, {881, 883},
}

// DefaultTable returns a copy of the built-in twin-prime pair table. A copy
// is returned so callers cannot mutate the package-level table.
func DefaultTable() [][2]int {
	out := make([][2]int, len(defaultTable))
	copy(out, defaultTable)
	return out
}
