package qunit_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestComposeAppendsASeparateRegisterWithoutEntangling(t *testing.T) {
	Convey("Given two independently prepared single-qubit registers", t, func() {
		a := newDenseRegister(1)
		b := newDenseRegister(1)
		a.X(0)

		Convey("Composing b onto a yields a 2-qubit register with both original states intact", func() {
			offset := a.Compose(b)
			So(offset, ShouldEqual, 1)
			So(a.QubitCount(), ShouldEqual, 2)
			So(a.Prob(0), ShouldAlmostEqual, 1, 1e-9)
			So(a.Prob(1), ShouldAlmostEqual, 0, 1e-9)
		})
	})
}

func TestSetAndGetQuantumState(t *testing.T) {
	Convey("Given a 1-qubit register with a caller-supplied superposition", t, func() {
		reg := newDenseRegister(1)
		invSqrt2 := complex(0.70710678118, 0)
		reg.SetQuantumState([]complex128{invSqrt2, invSqrt2})

		Convey("GetQuantumState reports back the same vector", func() {
			out := reg.GetQuantumState()
			So(len(out), ShouldEqual, 2)
			So(real(out[0]), ShouldAlmostEqual, 0.70710678118, 1e-6)
			So(real(out[1]), ShouldAlmostEqual, 0.70710678118, 1e-6)
		})

		Convey("Prob agrees with the supplied amplitudes", func() {
			So(reg.Prob(0), ShouldAlmostEqual, 0.5, 1e-6)
		})
	})
}

func TestGetAndSetAmplitude(t *testing.T) {
	Convey("Given a 2-qubit register in the ground state", t, func() {
		reg := newDenseRegister(2)

		Convey("GetAmplitude reports 1 at permutation 0 and 0 elsewhere", func() {
			So(real(reg.GetAmplitude(0)), ShouldAlmostEqual, 1, 1e-9)
			So(real(reg.GetAmplitude(1)), ShouldAlmostEqual, 0, 1e-9)
		})

		Convey("SetAmplitude can move the excitation to another permutation", func() {
			reg.SetAmplitude(0, complex(0, 0))
			reg.SetAmplitude(3, complex(1, 0))
			So(reg.Prob(0), ShouldAlmostEqual, 1, 1e-9)
			So(reg.Prob(1), ShouldAlmostEqual, 1, 1e-9)
		})
	})
}

func TestFinishAndIsFinished(t *testing.T) {
	Convey("Given a register with an attached engine", t, func() {
		reg := newDenseRegister(1)
		reg.X(0)

		Convey("IsFinished reports true and Finish does not panic", func() {
			So(reg.IsFinished(), ShouldBeTrue)
			So(func() { reg.Finish() }, ShouldNotPanic)
		})
	})
}

func TestUpdateRunningNormAndNormalizeStateDoNotPanic(t *testing.T) {
	Convey("Given a register with no attached engine yet", t, func() {
		reg := newDenseRegister(1)

		Convey("Both forwarding calls are no-ops rather than panics", func() {
			So(func() { reg.UpdateRunningNorm() }, ShouldNotPanic)
			So(func() { reg.NormalizeState() }, ShouldNotPanic)
		})
	})

	Convey("Given a register with an attached engine", t, func() {
		reg := newDenseRegister(1)
		reg.X(0)

		Convey("Both forwarding calls reach the engine without panicking", func() {
			So(func() { reg.UpdateRunningNorm() }, ShouldNotPanic)
			So(func() { reg.NormalizeState() }, ShouldNotPanic)
		})
	})
}

func TestSumSqrDiffOnTwoRegisters(t *testing.T) {
	Convey("Given two registers prepared identically", t, func() {
		a := newDenseRegister(1)
		b := newDenseRegister(1)
		a.H(0)
		b.H(0)

		Convey("SumSqrDiff reports a near-zero difference", func() {
			So(a.SumSqrDiff(b), ShouldAlmostEqual, 0, 1e-9)
		})
	})

	Convey("Given two registers prepared differently", t, func() {
		a := newDenseRegister(1)
		b := newDenseRegister(1)
		b.X(0)

		Convey("SumSqrDiff reports a nonzero difference", func() {
			So(a.SumSqrDiff(b), ShouldBeGreaterThan, 0.5)
		})
	})
}

func TestSetPermutationResetsToAClassicalState(t *testing.T) {
	Convey("Given a register driven into a Bell pair", t, func() {
		reg := newDenseRegister(2)
		reg.H(0)
		reg.MCInvert([]int{0}, complex(1, 0), complex(1, 0), 1)

		Convey("SetPermutation discards all entanglement and buffers", func() {
			reg.SetPermutation(0b10)
			So(reg.Prob(0), ShouldAlmostEqual, 0, 1e-9)
			So(reg.Prob(1), ShouldAlmostEqual, 1, 1e-9)
		})
	})
}
