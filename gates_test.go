package qunit_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestSwap(t *testing.T) {
	Convey("Given two qubits in opposite classical states", t, func() {
		reg := newDenseRegister(2)
		reg.X(0)

		Convey("Swap exchanges their states", func() {
			reg.Swap(0, 1)
			So(reg.Prob(0), ShouldAlmostEqual, 0, 1e-9)
			So(reg.Prob(1), ShouldAlmostEqual, 1, 1e-9)
		})
	})
}

func TestSGateIsPhaseOnly(t *testing.T) {
	Convey("Given a qubit in the ground state", t, func() {
		reg := newDenseRegister(1)

		Convey("S never changes its measurement probability", func() {
			reg.S(0)
			So(reg.Prob(0), ShouldAlmostEqual, 0, 1e-9)
		})
	})

	Convey("Given a qubit in superposition", t, func() {
		reg := newDenseRegister(1)
		reg.H(0)

		Convey("S followed by its inverse IS is the identity on probability", func() {
			reg.S(0)
			reg.IS(0)
			So(reg.Prob(0), ShouldAlmostEqual, 0.5, 1e-9)
		})
	})
}

func TestMCMtrxShortCircuitsOnKnownFalseControl(t *testing.T) {
	Convey("Given a control qubit known to be |0> and a target in superposition", t, func() {
		reg := newDenseRegister(2)
		reg.H(1)

		Convey("A controlled-X on the target never fires", func() {
			reg.MCInvert([]int{0}, complex(1, 0), complex(1, 0), 1)
			So(reg.Prob(1), ShouldAlmostEqual, 0.5, 1e-9)
		})
	})
}

func TestAntiControlFiresOnZero(t *testing.T) {
	Convey("Given an anti-controlled X gated on a |0> control", t, func() {
		reg := newDenseRegister(2)

		Convey("It fires, flipping the target", func() {
			reg.MACInvert([]int{0}, complex(1, 0), complex(1, 0), 1)
			So(reg.Prob(1), ShouldAlmostEqual, 1, 1e-9)
		})
	})
}

func TestPhaseParitySingleBitReducesToPhase(t *testing.T) {
	Convey("Given a single qubit in superposition", t, func() {
		reg := newDenseRegister(1)
		reg.H(0)

		Convey("PhaseParity on its own mask never changes measurement probability", func() {
			reg.PhaseParity(1.3, 0b1)
			So(reg.Prob(0), ShouldAlmostEqual, 0.5, 1e-9)
		})
	})
}

func TestPhaseParityOnEntangledQubitsPreservesProbabilities(t *testing.T) {
	Convey("Given a Bell pair", t, func() {
		reg := newDenseRegister(2)
		reg.H(0)
		reg.MCInvert([]int{0}, complex(1, 0), complex(1, 0), 1)

		Convey("Applying a Z-mask phase across both qubits leaves every marginal probability unchanged", func() {
			reg.PhaseParity(0.7, 0b11)
			So(reg.Prob(0), ShouldAlmostEqual, 0.5, 1e-9)
			So(reg.Prob(1), ShouldAlmostEqual, 0.5, 1e-9)
		})

		Convey("Running it and its inverse back to back returns exactly to the starting amplitudes", func() {
			before := reg.GetQuantumState()
			reg.PhaseParity(0.7, 0b11)
			reg.PhaseParity(-0.7, 0b11)
			after := reg.GetQuantumState()
			for i := range before {
				So(real(after[i]), ShouldAlmostEqual, real(before[i]), 1e-9)
				So(imag(after[i]), ShouldAlmostEqual, imag(before[i]), 1e-9)
			}
		})
	})
}

func TestISwapIsSelfCancelingWithItsInverse(t *testing.T) {
	Convey("Given two qubits, one excited", t, func() {
		reg := newDenseRegister(2)
		reg.X(0)

		Convey("ISwap followed by IISwap returns to the original state", func() {
			reg.ISwap(0, 1)
			reg.IISwap(0, 1)
			So(reg.Prob(0), ShouldAlmostEqual, 1, 1e-9)
			So(reg.Prob(1), ShouldAlmostEqual, 0, 1e-9)
		})
	})
}
