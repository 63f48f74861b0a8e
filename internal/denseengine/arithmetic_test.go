package denseengine

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestINC(t *testing.T) {
	Convey("Given a 3-qubit engine at permutation 3", t, func() {
		e := New(3, 3)

		Convey("INC by 1 advances it to 4", func() {
			e.INC(1, 0, 3)
			So(e.ProbAll(4), ShouldAlmostEqual, 1, 1e-9)
		})

		Convey("INC wraps modulo 2^length", func() {
			e2 := New(3, 7)
			e2.INC(1, 0, 3)
			So(e2.ProbAll(0), ShouldAlmostEqual, 1, 1e-9)
		})
	})
}

func TestCINC(t *testing.T) {
	Convey("Given a 4-qubit engine with the control bit set", t, func() {
		e := New(4, 0b0001)

		Convey("CINC fires and advances the target range", func() {
			e.CINC(1, 1, 3, []int{0})
			So(e.ProbAll(0b0011), ShouldAlmostEqual, 1, 1e-9)
		})
	})

	Convey("Given a 4-qubit engine with the control bit clear", t, func() {
		e := New(4, 0)

		Convey("CINC leaves the state untouched", func() {
			e.CINC(1, 1, 3, []int{0})
			So(e.ProbAll(0), ShouldAlmostEqual, 1, 1e-9)
		})
	})
}

func TestMULAndDIV(t *testing.T) {
	Convey("Given a 3-qubit operand register holding 3 and a zeroed carry range", t, func() {
		e := New(6, 3)

		Convey("MUL by 2 leaves 6 in the low bits with no overflow", func() {
			e.MUL(2, 0, 3, 3)
			lo := extractBits(representativeIndex(e.amps), 0, 3)
			So(lo, ShouldEqual, uint64(6))
		})
	})

	Convey("Given a 3-qubit operand/carry pair encoding the value 6 split as 6 and 0", t, func() {
		e := New(6, 6)

		Convey("DIV by 2 recovers 3 with no remainder carried", func() {
			e.DIV(2, 0, 3, 3)
			lo := extractBits(representativeIndex(e.amps), 0, 3)
			So(lo, ShouldEqual, uint64(3))
		})
	})
}

func TestMULModNOut(t *testing.T) {
	Convey("Given an input register holding 4 and modulus 7", t, func() {
		e := New(6, 4)

		Convey("3*4 mod 7 lands in the output register as 5", func() {
			e.MULModNOut(3, 7, 0, 3, 3)
			out := extractBits(representativeIndex(e.amps), 3, 3)
			So(out, ShouldEqual, uint64(5))
		})
	})
}

func TestIMULModNOutInvertsMULModNOut(t *testing.T) {
	Convey("Given a value run through MULModNOut", t, func() {
		e := New(6, 4)
		e.MULModNOut(3, 7, 0, 3, 3)

		Convey("IMULModNOut on the same factor and modulus recovers the input", func() {
			e.IMULModNOut(3, 7, 3, 0, 3)
			recovered := extractBits(representativeIndex(e.amps), 0, 3)
			So(recovered, ShouldEqual, uint64(4))
		})
	})
}

func TestIndexedLDA(t *testing.T) {
	Convey("Given a 2-qubit index register holding 2 and a zeroed 3-bit value register", t, func() {
		e := New(5, 2)
		table := []byte{1, 2, 5, 7}

		Convey("IndexedLDA XORs in the table entry and reports it", func() {
			loaded := e.IndexedLDA(0, 2, 2, 3, table)
			So(loaded, ShouldEqual, uint64(5))
			v := extractBits(representativeIndex(e.amps), 2, 3)
			So(v, ShouldEqual, uint64(5))
		})
	})
}

func TestHashAppliesAPermutationTable(t *testing.T) {
	Convey("Given a 2-qubit register holding 1 and a reversing lookup table", t, func() {
		e := New(2, 1)
		table := []byte{3, 2, 1, 0}

		Convey("Hash remaps it to the table's entry", func() {
			e.Hash(0, 2, table)
			So(e.ProbAll(2), ShouldAlmostEqual, 1, 1e-9)
		})
	})
}

func TestPhaseFlipIfLess(t *testing.T) {
	Convey("Given a register holding a permutation below the threshold", t, func() {
		e := New(2, 1)

		Convey("PhaseFlipIfLess negates the amplitude without changing probabilities", func() {
			before := e.GetAmplitude(1)
			e.PhaseFlipIfLess(3, 0, 2)
			after := e.GetAmplitude(1)
			So(after, ShouldEqual, -before)
			So(e.ProbAll(1), ShouldAlmostEqual, 1, 1e-9)
		})
	})
}
