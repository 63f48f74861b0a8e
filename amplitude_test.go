package qunit

import (
	"math"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestNormSqr(t *testing.T) {
	Convey("Given a complex amplitude", t, func() {
		Convey("Its squared norm is the sum of squared real and imaginary parts", func() {
			So(normSqr(complex(0.6, 0.8)), ShouldAlmostEqual, 1.0, 1e-12)
			So(normSqr(complex(0, 0)), ShouldAlmostEqual, 0, 1e-12)
		})
	})
}

func TestAmpIsZero(t *testing.T) {
	Convey("Given amplitudes near and far from zero", t, func() {
		Convey("Only the ones within tolerance report as zero", func() {
			So(ampIsZero(complex(0, 0)), ShouldBeTrue)
			So(ampIsZero(complex(1e-20, 0)), ShouldBeTrue)
			So(ampIsZero(complex(0.1, 0)), ShouldBeFalse)
		})
	})
}

func TestClampProb(t *testing.T) {
	Convey("Given probabilities that have drifted outside [0,1]", t, func() {
		Convey("clampProb pulls them back in", func() {
			So(clampProb(-0.001), ShouldEqual, 0)
			So(clampProb(1.001), ShouldEqual, 1)
			So(clampProb(0.5), ShouldEqual, 0.5)
		})
	})
}

func TestGlobalPhaseEqual(t *testing.T) {
	Convey("Given two amplitude vectors differing by a global phase", t, func() {
		invSqrt2 := 1 / math.Sqrt2
		a := []complex128{complex(invSqrt2, 0), complex(invSqrt2, 0)}
		phase := complex(0, 1)
		b := []complex128{phase * complex(invSqrt2, 0), phase * complex(invSqrt2, 0)}

		Convey("They compare equal up to that phase", func() {
			So(globalPhaseEqual(a, b), ShouldBeTrue)
		})

		Convey("A vector with a genuinely different distribution does not", func() {
			c := []complex128{complex(1, 0), complex(0, 0)}
			So(globalPhaseEqual(a, c), ShouldBeFalse)
		})

		Convey("Vectors of different length never compare equal", func() {
			So(globalPhaseEqual(a, []complex128{complex(1, 0)}), ShouldBeFalse)
		})
	})
}

func TestSumSqrDiff(t *testing.T) {
	Convey("Given two identical amplitude vectors", t, func() {
		a := []complex128{complex(1, 0), complex(0, 0)}
		b := []complex128{complex(1, 0), complex(0, 0)}

		Convey("Their sum-of-squared-differences is zero", func() {
			So(sumSqrDiff(a, b), ShouldAlmostEqual, 0, 1e-12)
		})

		Convey("A flipped bit produces a difference of 2", func() {
			c := []complex128{complex(0, 0), complex(1, 0)}
			So(sumSqrDiff(a, c), ShouldAlmostEqual, 2, 1e-12)
		})
	})
}
