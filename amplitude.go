package qunit

import "math/cmplx"

// Amplitude precision. Two amplitudes are considered equal when their
// squared-norm difference falls below ampEpsilon2; a single amplitude is
// considered zero when its squared norm falls below the same bound.
const ampEpsilon = 1e-12
const ampEpsilon2 = ampEpsilon * ampEpsilon

// zeroCmplx and oneCmplx spell out the values gate code reaches for most
// often, avoiding repeated complex128 literals at call sites.
var (
	zeroCmplx = complex(0, 0)
	oneCmplx  = complex(1, 0)
	iCmplx    = complex(0, 1)
)

// ampIsZero reports whether c's squared norm is within ampEpsilon2 of zero,
// mirroring Qrack's IS_AMP_0 macro (qunit.cpp:30).
func ampIsZero(c complex128) bool {
	return cmplx.Abs(c)*cmplx.Abs(c) <= ampEpsilon2
}

// ampsEqual reports whether a and b agree to within ampEpsilon2, used for
// the global-phase-insensitive comparisons the separator and SumSqrDiff
// need.
func ampsEqual(a, b complex128) bool {
	return ampIsZero(a - b)
}

// normSqr returns |c|^2 without the sqrt that cmplx.Abs pays for.
func normSqr(c complex128) float64 {
	re, im := real(c), imag(c)
	return re*re + im*im
}

// clampProb clamps a probability into [0,1], guarding against the small
// negative or over-1 results floating-point accumulation can produce.
func clampProb(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// polar builds a complex128 of the given magnitude and phase in radians.
func polar(magnitude, phase float64) complex128 {
	return cmplx.Rect(magnitude, phase)
}

// globalPhaseEqual reports whether vector a and vector b are equal up to a
// single global phase factor, to within ampEpsilon2 per element. Used by
// SumSqrDiff-style comparisons and by tests that check reconstructed state
// against a reference amplitude vector.
func globalPhaseEqual(a, b []complex128) bool {
	if len(a) != len(b) {
		return false
	}
	var phase complex128
	found := false
	for i := range a {
		if !ampIsZero(a[i]) {
			phase = b[i] / a[i]
			found = true
			break
		}
		if !ampIsZero(b[i]) {
			return false
		}
	}
	if !found {
		return true
	}
	if mag := cmplx.Abs(phase); mag*mag > 1+1e-6 || mag*mag < 1-1e-6 {
		return false
	}
	for i := range a {
		if !ampsEqual(a[i]*phase, b[i]) {
			return false
		}
	}
	return true
}

// sumSqrDiff computes sum |a_i - b_i|^2 over two equal-length amplitude
// vectors, the quantity exposed to callers as Register.SumSqrDiff.
func sumSqrDiff(a, b []complex128) float64 {
	total := 0.0
	for i := range a {
		d := a[i] - b[i]
		total += normSqr(d)
	}
	return total
}
