package qunit

// This file is the register's integer-arithmetic surface, grounded on
// qunit.cpp's INC/MUL/DIV/IndexedLDA family. The original takes a
// classical fast path whenever a whole operand register is already a
// known permutation (CheckBitsPermutation), computing the result directly
// with no engine call at all. That fast path is dropped here: every
// arithmetic op always entangles its full operand range and delegates —
// always correct, just forgoing the classical shortcut when every operand
// bit happens to already be resolved. Logged in DESIGN.md.

// entangleArithmeticRange brings every qubit named across ranges into one
// engine, in logical order, and returns that engine together with the
// local mapped start of each supplied range. Each range is a (start,
// length) pair; length 0 is used for a single flag/carry qubit named by
// start.
func (r *Register) entangleArithmeticRange(ranges ...[2]int) (Engine, []int) {
	var qubits []int
	for _, rg := range ranges {
		start, length := rg[0], rg[1]
		if length == 0 {
			qubits = append(qubits, start)
			continue
		}
		for i := 0; i < length; i++ {
			qubits = append(qubits, start+i)
		}
	}
	for _, q := range qubits {
		r.revertBasis1Qb(q)
	}
	unit := r.entangleInCurrentBasis(qubits)
	r.orderContiguous(unit)

	starts := make([]int, len(ranges))
	for i, rg := range ranges {
		starts[i] = r.shard(rg[0]).mapped
	}
	for _, q := range qubits {
		r.shard(q).makeDirty()
	}
	return unit, starts
}

func mappedControls(r *Register, controls []int) []int {
	out := make([]int, len(controls))
	for i, c := range controls {
		out[i] = r.shard(c).mapped
	}
	return out
}

// INC adds toMod to the length-qubit register at start, mod 2^length.
func (r *Register) INC(toMod uint64, start, length int) {
	unit, starts := r.entangleArithmeticRange([2]int{start, length})
	unit.INC(toMod, starts[0], length)
}

// DEC subtracts toMod from the length-qubit register at start, mod
// 2^length, implemented as INC by the two's-complement value per
// qunit.cpp's INCDECC and INCx pairing of INC/DEC through negation.
func (r *Register) DEC(toMod uint64, start, length int) {
	mask := uint64(1)<<uint(length) - 1
	r.INC((mask+1-toMod&mask)&mask, start, length)
}

// CINC is INC, controlled: firing only when every qubit in controls is |1>.
// Grounded on qunit.cpp's CINC, simplified to always entangle the control
// set into the arithmetic range's engine rather than first trimming
// classically-resolved controls — always correct, merely forgoing the
// buffer-absorption-style short-circuit trimControls gives ordinary gates.
func (r *Register) CINC(toMod uint64, start, length int, controls []int) {
	if len(controls) == 0 {
		r.INC(toMod, start, length)
		return
	}
	for _, c := range controls {
		r.revertBasis1Qb(c)
	}
	qubits := append([]int{}, controls...)
	for i := 0; i < length; i++ {
		qubits = append(qubits, start+i)
	}
	unit := r.entangleInCurrentBasis(qubits)
	r.orderContiguous(unit)
	for _, q := range qubits {
		r.shard(q).makeDirty()
	}
	unit.CINC(toMod, r.shard(start).mapped, length, mappedControls(r, controls))
}

// INCC is INC with an explicit carry qubit, per qunit.cpp's INCC: the
// carry's current value is folded into toAdd before entangling.
func (r *Register) INCC(toAdd uint64, start, length, carry int) {
	if r.M(carry) {
		r.X(carry)
		toAdd++
	}
	unit, starts := r.entangleArithmeticRange([2]int{start, length}, [2]int{carry, 0})
	unit.INCC(toAdd, starts[0], length, starts[1])
}

// DECC is INCC's subtraction counterpart.
func (r *Register) DECC(toSub uint64, start, length, carry int) {
	mask := uint64(1)<<uint(length) - 1
	if r.M(carry) {
		r.X(carry)
	} else {
		toSub++
	}
	invToSub := (mask + 1 - toSub&mask) & mask
	unit, starts := r.entangleArithmeticRange([2]int{start, length}, [2]int{carry, 0})
	unit.INCC(invToSub, starts[0], length, starts[1])
}

// MUL multiplies the length-qubit register at inOutStart by toMul in
// place, storing the overflow into the length-qubit register at
// carryStart.
func (r *Register) MUL(toMul uint64, inOutStart, carryStart, length int) {
	unit, starts := r.entangleArithmeticRange([2]int{inOutStart, length}, [2]int{carryStart, length})
	unit.MUL(toMul, starts[0], starts[1], length)
}

// DIV is MUL's inverse.
func (r *Register) DIV(toDiv uint64, inOutStart, carryStart, length int) {
	unit, starts := r.entangleArithmeticRange([2]int{inOutStart, length}, [2]int{carryStart, length})
	unit.DIV(toDiv, starts[0], starts[1], length)
}

// MULModNOut, IMULModNOut, and POWModNOut compute their named function
// out-of-place into the length-qubit register at outStart, leaving the
// length-qubit operand register at inStart untouched.
func (r *Register) MULModNOut(toMod, modN uint64, inStart, outStart, length int) {
	unit, starts := r.entangleArithmeticRange([2]int{inStart, length}, [2]int{outStart, length})
	unit.MULModNOut(toMod, modN, starts[0], starts[1], length)
}

func (r *Register) IMULModNOut(toMod, modN uint64, inStart, outStart, length int) {
	unit, starts := r.entangleArithmeticRange([2]int{inStart, length}, [2]int{outStart, length})
	unit.IMULModNOut(toMod, modN, starts[0], starts[1], length)
}

func (r *Register) POWModNOut(toMod, modN uint64, inStart, outStart, length int) {
	unit, starts := r.entangleArithmeticRange([2]int{inStart, length}, [2]int{outStart, length})
	unit.POWModNOut(toMod, modN, starts[0], starts[1], length)
}

// CMUL, CDIV, CMULModNOut, CIMULModNOut, and CPOWModNOut are the
// controlled forms, firing only when every qubit in controls is |1>.
func (r *Register) CMUL(toMod uint64, start, carryStart, length int, controls []int) {
	if len(controls) == 0 {
		r.MUL(toMod, start, carryStart, length)
		return
	}
	for _, c := range controls {
		r.revertBasis1Qb(c)
	}
	qubits := append(append([]int{}, controls...), rangeQubits(start, length)...)
	qubits = append(qubits, rangeQubits(carryStart, length)...)
	unit := r.entangleInCurrentBasis(qubits)
	r.orderContiguous(unit)
	for _, q := range qubits {
		r.shard(q).makeDirty()
	}
	unit.CMUL(toMod, r.shard(start).mapped, r.shard(carryStart).mapped, length, mappedControls(r, controls))
}

func (r *Register) CDIV(toMod uint64, start, carryStart, length int, controls []int) {
	if len(controls) == 0 {
		r.DIV(toMod, start, carryStart, length)
		return
	}
	for _, c := range controls {
		r.revertBasis1Qb(c)
	}
	qubits := append(append([]int{}, controls...), rangeQubits(start, length)...)
	qubits = append(qubits, rangeQubits(carryStart, length)...)
	unit := r.entangleInCurrentBasis(qubits)
	r.orderContiguous(unit)
	unit.CDIV(toMod, r.shard(start).mapped, r.shard(carryStart).mapped, length, mappedControls(r, controls))
}

func (r *Register) CMULModNOut(toMod, modN uint64, inStart, outStart, length int, controls []int) {
	if len(controls) == 0 {
		r.MULModNOut(toMod, modN, inStart, outStart, length)
		return
	}
	for _, c := range controls {
		r.revertBasis1Qb(c)
	}
	qubits := append(append([]int{}, controls...), rangeQubits(inStart, length)...)
	qubits = append(qubits, rangeQubits(outStart, length)...)
	unit := r.entangleInCurrentBasis(qubits)
	r.orderContiguous(unit)
	unit.CMULModNOut(toMod, modN, r.shard(inStart).mapped, r.shard(outStart).mapped, length, mappedControls(r, controls))
}

func (r *Register) CIMULModNOut(toMod, modN uint64, inStart, outStart, length int, controls []int) {
	if len(controls) == 0 {
		r.IMULModNOut(toMod, modN, inStart, outStart, length)
		return
	}
	for _, c := range controls {
		r.revertBasis1Qb(c)
	}
	qubits := append(append([]int{}, controls...), rangeQubits(inStart, length)...)
	qubits = append(qubits, rangeQubits(outStart, length)...)
	unit := r.entangleInCurrentBasis(qubits)
	r.orderContiguous(unit)
	unit.CIMULModNOut(toMod, modN, r.shard(inStart).mapped, r.shard(outStart).mapped, length, mappedControls(r, controls))
}

func (r *Register) CPOWModNOut(toMod, modN uint64, inStart, outStart, length int, controls []int) {
	if len(controls) == 0 {
		r.POWModNOut(toMod, modN, inStart, outStart, length)
		return
	}
	for _, c := range controls {
		r.revertBasis1Qb(c)
	}
	qubits := append(append([]int{}, controls...), rangeQubits(inStart, length)...)
	qubits = append(qubits, rangeQubits(outStart, length)...)
	unit := r.entangleInCurrentBasis(qubits)
	r.orderContiguous(unit)
	unit.CPOWModNOut(toMod, modN, r.shard(inStart).mapped, r.shard(outStart).mapped, length, mappedControls(r, controls))
}

// IndexedLDA loads values[index] into the valueLength-qubit register at
// valueStart, where index is the indexLength-qubit register at
// indexStart, and returns the loaded classical permutation.
func (r *Register) IndexedLDA(indexStart, indexLength, valueStart, valueLength int, values []byte) uint64 {
	unit, starts := r.entangleArithmeticRange([2]int{indexStart, indexLength}, [2]int{valueStart, valueLength})
	return unit.IndexedLDA(starts[0], indexLength, starts[1], valueLength, values)
}

// IndexedADC and IndexedSBC add/subtract the table lookup into the value
// register through an explicit carry qubit.
func (r *Register) IndexedADC(indexStart, indexLength, valueStart, valueLength, carry int, values []byte) uint64 {
	unit, starts := r.entangleArithmeticRange(
		[2]int{indexStart, indexLength}, [2]int{valueStart, valueLength}, [2]int{carry, 0})
	return unit.IndexedADC(starts[0], indexLength, starts[1], valueLength, starts[2], values)
}

func (r *Register) IndexedSBC(indexStart, indexLength, valueStart, valueLength, carry int, values []byte) uint64 {
	unit, starts := r.entangleArithmeticRange(
		[2]int{indexStart, indexLength}, [2]int{valueStart, valueLength}, [2]int{carry, 0})
	return unit.IndexedSBC(starts[0], indexLength, starts[1], valueLength, starts[2], values)
}

// Hash applies the reversible permutation named by values to the
// length-qubit register at start.
func (r *Register) Hash(start, length int, values []byte) {
	unit, starts := r.entangleArithmeticRange([2]int{start, length})
	unit.Hash(starts[0], length, values)
}

// PhaseFlipIfLess multiplies the joint state by -1 wherever the
// length-qubit register at start holds a permutation less than
// greaterPerm.
func (r *Register) PhaseFlipIfLess(greaterPerm uint64, start, length int) {
	unit, starts := r.entangleArithmeticRange([2]int{start, length})
	unit.PhaseFlipIfLess(greaterPerm, starts[0], length)
}

// CPhaseFlipIfLess is PhaseFlipIfLess, active only when flagIndex is |1>.
func (r *Register) CPhaseFlipIfLess(greaterPerm uint64, start, length, flagIndex int) {
	r.revertBasis1Qb(flagIndex)
	flag := r.shard(flagIndex)
	if flag.cachedOne() {
		r.PhaseFlipIfLess(greaterPerm, start, length)
		return
	}
	if flag.cachedZero() {
		return
	}
	unit, starts := r.entangleArithmeticRange([2]int{start, length}, [2]int{flagIndex, 0})
	unit.CPhaseFlipIfLess(greaterPerm, starts[0], length, starts[1])
}

func rangeQubits(start, length int) []int {
	out := make([]int, length)
	for i := range out {
		out[i] = start + i
	}
	return out
}
