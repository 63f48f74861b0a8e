package qunit_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestForceMWithoutApplyDoesNotCollapse(t *testing.T) {
	Convey("Given a qubit in superposition", t, func() {
		reg := newDenseRegister(1)
		reg.H(0)

		Convey("ForceM with doApply false reports a result but leaves the state untouched", func() {
			reg.ForceM(0, true, true, false)
			So(reg.Prob(0), ShouldAlmostEqual, 0.5, 1e-9)
		})

		Convey("ForceM with doApply true commits the forced outcome", func() {
			result := reg.ForceM(0, true, true, true)
			So(result, ShouldBeTrue)
			So(reg.Prob(0), ShouldAlmostEqual, 1, 1e-9)
		})
	})
}

func TestProbParityOnIndependentQubits(t *testing.T) {
	Convey("Given two definite qubits, one excited", t, func() {
		reg := newDenseRegister(2)
		reg.X(0)

		Convey("The parity of both bits is certainly odd", func() {
			So(reg.ProbParity(0b11), ShouldAlmostEqual, 1, 1e-9)
		})
	})

	Convey("Given two qubits both excited", t, func() {
		reg := newDenseRegister(2)
		reg.X(0)
		reg.X(1)

		Convey("The parity of both bits is certainly even", func() {
			So(reg.ProbParity(0b11), ShouldAlmostEqual, 0, 1e-9)
		})
	})
}

func TestMultiShotMeasureMaskHistogram(t *testing.T) {
	Convey("Given a qubit driven to certainly-|1>", t, func() {
		reg := newDenseRegister(1)
		reg.X(0)

		Convey("Every sampled shot reports the same outcome", func() {
			hist := reg.MultiShotMeasureMask([]int{0}, 16)
			So(len(hist), ShouldEqual, 1)
			count, ok := hist[1]
			So(ok, ShouldBeTrue)
			So(count, ShouldEqual, 16)
		})
	})
}

func TestMAllReadsOutTheFullPermutation(t *testing.T) {
	Convey("Given a 3-qubit register with the first and third qubits excited", t, func() {
		reg := newDenseRegister(3)
		reg.X(0)
		reg.X(2)

		Convey("MAll reports the matching little-endian permutation", func() {
			So(reg.MAll(), ShouldEqual, uint64(0b101))
		})
	})
}

func TestForceMRegForcesEveryBitInARange(t *testing.T) {
	Convey("Given a 3-qubit register in the ground state", t, func() {
		reg := newDenseRegister(3)

		Convey("Forcing the range to 0b101 commits exactly that permutation", func() {
			out := reg.ForceMReg(0, 3, 0b101, true, true)
			So(out, ShouldEqual, uint64(0b101))
			So(reg.Prob(0), ShouldAlmostEqual, 1, 1e-9)
			So(reg.Prob(1), ShouldAlmostEqual, 0, 1e-9)
			So(reg.Prob(2), ShouldAlmostEqual, 1, 1e-9)
		})
	})
}

func TestForceMParityOnEntangledQubits(t *testing.T) {
	Convey("Given a Bell pair", t, func() {
		reg := newDenseRegister(2)
		reg.H(0)
		reg.MCInvert([]int{0}, complex(1, 0), complex(1, 0), 1)

		Convey("Forcing the pair's parity to even leaves both qubits equal", func() {
			reg.ForceMParity(0b11, false, true)
			So(reg.M(0), ShouldEqual, reg.M(1))
		})
	})
}

func TestExpectationBitsAllWeightsByPosition(t *testing.T) {
	Convey("Given a 2-qubit register holding 0b10", t, func() {
		reg := newDenseRegister(2)
		reg.X(1)

		Convey("ExpectationBitsAll reports 2", func() {
			So(reg.ExpectationBitsAll([]int{0, 1}), ShouldAlmostEqual, 2, 1e-9)
		})
	})
}

func TestGetProbs(t *testing.T) {
	Convey("Given a 2-qubit register with the second qubit excited", t, func() {
		reg := newDenseRegister(2)
		reg.X(1)

		Convey("GetProbs reports both marginal probabilities in order", func() {
			probs := reg.GetProbs()
			So(len(probs), ShouldEqual, 2)
			So(probs[0], ShouldAlmostEqual, 0, 1e-9)
			So(probs[1], ShouldAlmostEqual, 1, 1e-9)
		})
	})
}
