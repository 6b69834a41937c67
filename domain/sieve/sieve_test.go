package sieve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isPrime verifies primality independently of the sieve, by trial division.
func isPrime(n int) bool {
	if n < 2 {
		return false
	}
	for d := 2; d*d <= n; d++ {
		if n%d == 0 {
			return false
		}
	}
	return true
}

func sumOf(primes []int) int64 {
	var sum int64
	for _, p := range primes {
		sum += int64(p)
	}
	return sum
}

func TestUpto_Boundaries(t *testing.T) {
	tests := []struct {
		name     string
		maxPrime int
		want     []int
	}{
		{"negative ten", -10, []int{}},
		{"negative one", -1, []int{}},
		{"zero", 0, []int{}},
		{"one", 1, []int{}},
		{"two", 2, []int{2}},
		{"three", 3, []int{2, 3}},
		{"five", 5, []int{2, 3, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			primes, err := Upto(tt.maxPrime)
			require.NoError(t, err)
			assert.Equal(t, tt.want, primes)
		})
	}
}

func TestUpto_150(t *testing.T) {
	want := []int{
		2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41, 43, 47, 53, 59,
		61, 67, 71, 73, 79, 83, 89, 97, 101, 103, 107, 109, 113, 127,
		131, 137, 139, 149,
	}

	primes, err := Upto(150)
	require.NoError(t, err)
	assert.Equal(t, want, primes)
}

func TestBetween_InvalidRange(t *testing.T) {
	_, err := Between(1, 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidRange)

	var rangeErr *RangeError
	require.ErrorAs(t, err, &rangeErr)
	assert.Equal(t, 1, rangeErr.MinPrime())
	assert.Equal(t, 0, rangeErr.MaxPrime())
}

func TestBetween_InvalidRange_OnlyWhenInverted(t *testing.T) {
	// Degenerate but ordered ranges never error.
	for _, bounds := range [][2]int{{-5, -5}, {0, 0}, {1, 1}, {4, 4}, {100, 100}} {
		_, err := Between(bounds[0], bounds[1])
		assert.NoError(t, err, "bounds %v", bounds)
	}

	_, err := Between(100, 99)
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestBetween_SmallRanges(t *testing.T) {
	tests := []struct {
		minPrime int
		maxPrime int
		want     []int
	}{
		{-1, 0, []int{}},
		{-1, 1, []int{}},
		{-1, 2, []int{2}},
		{-1, 3, []int{2, 3}},
		{1, 1, []int{}},
		{1, 2, []int{2}},
		{1, 3, []int{2, 3}},
		{2, 2, []int{2}},
		{2, 3, []int{2, 3}},
		{2, 4, []int{2, 3}},
		{2, 5, []int{2, 3, 5}},
		{4, 4, []int{}},
		{8, 10, []int{}},
		{24, 28, []int{}},
	}

	for _, tt := range tests {
		primes, err := Between(tt.minPrime, tt.maxPrime)
		require.NoError(t, err)
		assert.Equal(t, tt.want, primes, "range [%d, %d]", tt.minPrime, tt.maxPrime)
	}
}

func TestBetween_KnownRanges(t *testing.T) {
	// Expected counts and sums verified with Wolfram Alpha.
	tests := []struct {
		minPrime  int
		maxPrime  int
		wantCount int
		wantSum   int64
	}{
		{0, 150, 35, 2276},
		{12345, 67890, 5287, 208424627},
		{23456, 78901, 5130, 260049018},
	}

	for _, tt := range tests {
		primes, err := Between(tt.minPrime, tt.maxPrime)
		require.NoError(t, err)
		assert.Len(t, primes, tt.wantCount, "range [%d, %d]", tt.minPrime, tt.maxPrime)
		assert.Equal(t, tt.wantSum, sumOf(primes), "range [%d, %d]", tt.minPrime, tt.maxPrime)
	}
}

func TestBetween_ResultsAreVerifiablyPrime(t *testing.T) {
	primes, err := Between(12345, 13500)
	require.NoError(t, err)
	require.NotEmpty(t, primes)

	for _, p := range primes {
		assert.True(t, isPrime(p), "%d reported as prime", p)
		assert.GreaterOrEqual(t, p, 12345)
		assert.LessOrEqual(t, p, 13500)
	}
}

func TestBetween_StrictlyAscending(t *testing.T) {
	primes, err := Between(0, 10000)
	require.NoError(t, err)

	for i := 1; i < len(primes); i++ {
		assert.Greater(t, primes[i], primes[i-1])
	}
}

func TestBetween_Complete(t *testing.T) {
	// No prime in the range may be missing.
	primes, err := Between(500, 1000)
	require.NoError(t, err)

	found := make(map[int]bool, len(primes))
	for _, p := range primes {
		found[p] = true
	}
	for n := 500; n <= 1000; n++ {
		assert.Equal(t, isPrime(n), found[n], "candidate %d", n)
	}
}

func TestUpto_MatchesTrialDivision(t *testing.T) {
	primes, err := Upto(20000)
	require.NoError(t, err)

	found := make(map[int]bool, len(primes))
	for _, p := range primes {
		found[p] = true
	}
	for n := 0; n <= 20000; n++ {
		assert.Equal(t, isPrime(n), found[n], "candidate %d", n)
	}
}

func TestUpto_MatchesBetweenFromZero(t *testing.T) {
	for _, n := range []int{-3, 0, 1, 2, 10, 97, 150, 1000, 7919} {
		fromUpto, err := Upto(n)
		require.NoError(t, err)

		fromBetween, err := Between(0, max(0, n))
		if n < 0 {
			// Upto(-3) uses the range [-3, -3].
			fromBetween, err = Between(n, n)
		}
		require.NoError(t, err)
		assert.Equal(t, fromBetween, fromUpto, "n = %d", n)
	}
}

func TestBetween_BootstrapPastFactor(t *testing.T) {
	// minPrime far above sqrt(maxPrime) forces the recursive bootstrap to
	// supply every elimination prime.
	primes, err := Between(1000000, 1000100)
	require.NoError(t, err)
	assert.Equal(t, []int{1000003, 1000033, 1000037, 1000039, 1000081, 1000099}, primes)
}

func TestBetween_MinPrimeInsideFactor(t *testing.T) {
	// minPrime below sqrt(maxPrime): bootstrap covers only [2, minPrime).
	primes, err := Between(10, 10000)
	require.NoError(t, err)
	assert.Len(t, primes, 1225)
	assert.Equal(t, 11, primes[0])
	assert.Equal(t, 9973, primes[len(primes)-1])
}

func TestBetween_SquarefreeElimination(t *testing.T) {
	// 25, 49, 121, and friends are classic Atkin false positives.
	primes, err := Between(0, 200)
	require.NoError(t, err)

	for _, composite := range []int{25, 49, 121, 125, 169, 175} {
		assert.NotContains(t, primes, composite)
	}
}

func TestIsqrt(t *testing.T) {
	tests := []struct {
		n    int
		want int
	}{
		{0, 0}, {1, 1}, {2, 1}, {3, 1}, {4, 2}, {8, 2}, {9, 3},
		{15, 3}, {16, 4}, {99, 9}, {100, 10}, {10000, 100},
		{999999, 999}, {1000000, 1000},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, isqrt(tt.n), "isqrt(%d)", tt.n)
	}
}
