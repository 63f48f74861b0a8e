package qunit_test

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/quantronium/qunit"
	"github.com/quantronium/qunit/internal/denseengine"
)

func newDenseRegister(n int) *qunit.Register {
	factory := func(qubitCount int, perm uint64) qunit.Engine {
		return denseengine.New(qubitCount, perm)
	}
	return qunit.NewRegisterWithSeed(n, factory, nil, 42)
}

func TestNewRegister(t *testing.T) {
	Convey("Given a freshly allocated 3-qubit register", t, func() {
		reg := newDenseRegister(3)

		Convey("It starts in the all-zero computational basis state", func() {
			So(reg.QubitCount(), ShouldEqual, 3)
			for i := 0; i < 3; i++ {
				So(reg.Prob(i), ShouldAlmostEqual, 0, 1e-9)
			}
		})

		Convey("Its metrics start at zero", func() {
			snap := reg.Metrics()
			spew.Dump(snap)
			So(snap.GateCount, ShouldEqual, 0)
		})
	})
}

func TestXGateFlipsProbability(t *testing.T) {
	Convey("Given a single ground-state qubit", t, func() {
		reg := newDenseRegister(1)

		Convey("X drives it to certainly-|1>", func() {
			reg.X(0)
			So(reg.Prob(0), ShouldAlmostEqual, 1, 1e-9)
		})

		Convey("X twice returns it to certainly-|0>", func() {
			reg.X(0)
			reg.X(0)
			So(reg.Prob(0), ShouldAlmostEqual, 0, 1e-9)
		})
	})
}

func TestHadamardProducesEvenSuperposition(t *testing.T) {
	Convey("Given a single ground-state qubit", t, func() {
		reg := newDenseRegister(1)

		Convey("H leaves it at 50/50", func() {
			reg.H(0)
			So(reg.Prob(0), ShouldAlmostEqual, 0.5, 1e-9)
		})

		Convey("H twice is the identity", func() {
			reg.H(0)
			reg.H(0)
			So(reg.Prob(0), ShouldAlmostEqual, 0, 1e-9)
		})
	})
}

func TestBellPairIsPerfectlyCorrelated(t *testing.T) {
	Convey("Given a two-qubit register driven into a Bell pair", t, func() {
		reg := newDenseRegister(2)
		reg.H(0)
		reg.MCInvert([]int{0}, complex(1, 0), complex(1, 0), 1)

		Convey("Each qubit is individually 50/50", func() {
			So(reg.Prob(0), ShouldAlmostEqual, 0.5, 1e-9)
			So(reg.Prob(1), ShouldAlmostEqual, 0.5, 1e-9)
		})

		Convey("Measuring one qubit collapses the other to match", func() {
			first := reg.M(0)
			second := reg.M(1)
			So(first, ShouldEqual, second)
		})
	})
}

func TestSeparableQubitsNeverEntangleTheEngine(t *testing.T) {
	Convey("Given two qubits that are never jointly gated", t, func() {
		reg := newDenseRegister(2)
		reg.H(0)
		reg.X(1)

		Convey("Each stays separable from the other", func() {
			So(reg.Prob(0), ShouldAlmostEqual, 0.5, 1e-9)
			So(reg.Prob(1), ShouldAlmostEqual, 1, 1e-9)
		})

		Convey("A full-state snapshot still matches the product of both", func() {
			amps := reg.GetQuantumState()
			So(len(amps), ShouldEqual, 4)
		})
	})
}

func TestCloneIsIndependent(t *testing.T) {
	Convey("Given a register in superposition", t, func() {
		reg := newDenseRegister(1)
		reg.H(0)

		Convey("Mutating the clone never affects the original", func() {
			clone := reg.Clone()
			clone.X(0)

			So(reg.Prob(0), ShouldAlmostEqual, 0.5, 1e-9)
			So(clone.Prob(0), ShouldAlmostEqual, 0.5, 1e-9)
		})
	})
}

func TestDisposeRemovesRange(t *testing.T) {
	Convey("Given a 3-qubit register with the last qubit excited", t, func() {
		reg := newDenseRegister(3)
		reg.X(2)

		Convey("Disposing the known classical qubit shrinks the register", func() {
			perm := uint64(1)
			reg.Dispose(2, 1, &perm)
			So(reg.QubitCount(), ShouldEqual, 2)
		})
	})
}

func TestDecomposeSplitsARegister(t *testing.T) {
	Convey("Given two independently prepared qubits", t, func() {
		reg := newDenseRegister(2)
		reg.X(1)

		Convey("Decomposing the second one out yields a standalone 1-qubit register", func() {
			split := reg.Decompose(1, 1)
			So(reg.QubitCount(), ShouldEqual, 1)
			So(split.QubitCount(), ShouldEqual, 1)
			So(split.Prob(0), ShouldAlmostEqual, 1, 1e-9)
		})
	})
}
