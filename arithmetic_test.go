package qunit_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestIncDec(t *testing.T) {
	Convey("Given a 3-qubit register set to the classical permutation 3", t, func() {
		reg := newDenseRegister(3)
		reg.SetPermutation(3)

		Convey("INC by 1 advances it to 4", func() {
			reg.INC(1, 0, 3)
			So(reg.MAll(), ShouldEqual, uint64(4))
		})

		Convey("INC wraps modulo 2^length", func() {
			reg.SetPermutation(7)
			reg.INC(1, 0, 3)
			So(reg.MAll(), ShouldEqual, uint64(0))
		})

		Convey("DEC by 1 retreats it to 2", func() {
			reg.DEC(1, 0, 3)
			So(reg.MAll(), ShouldEqual, uint64(2))
		})

		Convey("INC followed by DEC of the same amount is the identity", func() {
			reg.INC(5, 0, 3)
			reg.DEC(5, 0, 3)
			So(reg.MAll(), ShouldEqual, uint64(3))
		})
	})
}

func TestCINC(t *testing.T) {
	Convey("Given a 4-qubit register with a control qubit and a 3-qubit target range", t, func() {
		reg := newDenseRegister(4)
		reg.SetPermutation(0)

		Convey("CINC does nothing when the control is |0>", func() {
			reg.CINC(1, 1, 3, []int{0})
			So(reg.MAll(), ShouldEqual, uint64(0))
		})

		Convey("CINC fires when the control is |1>", func() {
			reg.X(0)
			reg.CINC(1, 1, 3, []int{0})
			result := reg.MAll()
			So(result&1, ShouldEqual, uint64(1))
			So(result>>1, ShouldEqual, uint64(1))
		})
	})
}

func TestIndexedLDA(t *testing.T) {
	Convey("Given a 2-qubit index register and a 2-qubit value register", t, func() {
		reg := newDenseRegister(4)
		reg.SetPermutation(2) // index = 2 (10), value = 0

		table := []byte{10, 20, 30, 40}

		Convey("IndexedLDA loads the table entry named by the index", func() {
			loaded := reg.IndexedLDA(0, 2, 2, 2, table)
			So(loaded, ShouldEqual, uint64(30)&0x3)
		})
	})
}

func TestPhaseFlipIfLess(t *testing.T) {
	Convey("Given a 2-qubit register holding permutation 1", t, func() {
		reg := newDenseRegister(2)
		reg.SetPermutation(1)

		Convey("PhaseFlipIfLess does not disturb measurement probabilities", func() {
			reg.PhaseFlipIfLess(3, 0, 2)
			So(reg.Prob(0), ShouldAlmostEqual, 1, 1e-9)
			So(reg.Prob(1), ShouldAlmostEqual, 0, 1e-9)
		})
	})
}
