package sieve

import (
	"math"
	"slices"
)

// Upto returns all primes <= maxPrime in ascending order.
// Values below 2 yield an empty result.
func Upto(maxPrime int) ([]int, error) {
	r := UptoRange(maxPrime)
	return r.Primes(), nil
}

// Between returns all primes in [minPrime, maxPrime] in ascending order.
// It fails with a RangeError when minPrime > maxPrime; every other input
// is valid and produces a (possibly empty) result.
func Between(minPrime, maxPrime int) ([]int, error) {
	r, err := NewRange(minPrime, maxPrime)
	if err != nil {
		return nil, err
	}
	return r.Primes(), nil
}

// sieveRange runs the segmented Atkin sieve. Bounds are assumed ordered;
// callers validate via NewRange first.
func sieveRange(minPrime, maxPrime int) []int {
	if maxPrime < 2 {
		return []int{}
	}
	if minPrime < 2 {
		minPrime = 2
	}

	// flags[i] tracks the candidate minPrime + i.
	flags := make([]bool, maxPrime-minPrime+1)

	// 2 and 3 are never produced by the quadratic forms.
	if minPrime == 2 {
		flags[0] = true
	}
	if minPrime <= 3 && maxPrime >= 3 {
		flags[3-minPrime] = true
	}

	factor := isqrt(maxPrime) + 1

	markQuadraticForms(flags, minPrime, maxPrime, factor)
	missing := missingPrimes(minPrime, factor)
	eliminateSquareMultiples(flags, missing, minPrime, maxPrime, factor)

	return collect(flags, minPrime)
}

// markQuadraticForms toggles the flag of every in-range candidate once per
// (x, y) solution of the Atkin quadratic form matching its residue mod 12.
// A candidate ends up true iff its solution count is odd. The three forms
// are derived from each other incrementally so each (x, y) step costs a
// few additions instead of fresh multiplications.
func markQuadraticForms(flags []bool, minPrime, maxPrime, factor int) {
	for x := 1; x < factor; x++ {
		xSquared := x * x

		for y := 1; y < factor; y++ {
			ySquared := y * y

			// n = 3x^2 + y^2
			n := 3*xSquared + ySquared
			if n >= minPrime && n <= maxPrime && n%12 == 7 {
				flags[n-minPrime] = !flags[n-minPrime]
			}

			// n = 3x^2 - y^2, positive residue only when x > y
			n -= 2 * ySquared
			if x > y && n >= minPrime && n <= maxPrime && n%12 == 11 {
				flags[n-minPrime] = !flags[n-minPrime]
			}

			// n = 4x^2 + y^2
			n += xSquared + 2*ySquared
			if n >= minPrime && n <= maxPrime && (n%12 == 1 || n%12 == 5) {
				flags[n-minPrime] = !flags[n-minPrime]
			}
		}
	}
}

// missingPrimes bootstraps the primes below factor that the local flag
// array cannot answer for because the range starts too high. It recurses
// into a full sieve over a strictly smaller range, so the recursion depth
// shrinks with the square root at every level and terminates structurally
// (Upto(1) and below return immediately).
func missingPrimes(minPrime, factor int) []int {
	if minPrime <= factor {
		// The local flags cover [minPrime, ...]; only [2, minPrime) is missing.
		return sieveRange(0, minPrime-1)
	}
	return sieveRange(0, factor)
}

// eliminateSquareMultiples clears every multiple of p^2 for each prime p
// with 5 <= p < factor, removing the non-squarefree false positives left
// by the quadratic form scan. Primality of p is answered from the
// bootstrapped primes when they cover p, and from the local flags
// otherwise.
func eliminateSquareMultiples(flags []bool, missing []int, minPrime, maxPrime, factor int) {
	for x := 5; x < factor; x++ {
		prime := false
		if len(missing) > 0 && x <= missing[len(missing)-1] {
			_, prime = slices.BinarySearch(missing, x)
		} else if i := x - minPrime; i >= 0 && i < len(flags) {
			prime = flags[i]
		}
		if !prime {
			continue
		}

		square := x * x

		// Smallest multiple of square >= minPrime, by remainder arithmetic.
		start := square
		if minPrime > square {
			if rem := minPrime % square; rem != 0 {
				start = minPrime + (square - rem)
			} else {
				start = minPrime
			}
		}

		for n := start; n <= maxPrime; n += square {
			flags[n-minPrime] = false
		}
	}
}

// collect converts the flag array into the ascending prime list.
func collect(flags []bool, minPrime int) []int {
	primes := []int{}
	for i, flagged := range flags {
		if flagged {
			primes = append(primes, minPrime+i)
		}
	}
	return primes
}

// isqrt returns floor(sqrt(n)) for n >= 0, correcting the float result at
// the boundary where math.Sqrt rounds the wrong way.
func isqrt(n int) int {
	s := int(math.Sqrt(float64(n)))
	for s > 0 && s*s > n {
		s--
	}
	for (s+1)*(s+1) <= n {
		s++
	}
	return s
}
