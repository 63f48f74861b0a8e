package qunit

import "math"

// This file is the gate front-end: every public gate dispatches through
// trimControls, then the detached fast path, then buffer absorption
// (phase/invert controlled gates only), and only then materializes a real
// engine call.

// Mtrx applies an arbitrary single-qubit unitary to target, re-expressed
// into target's current basis label via transformX2x2/transformY2x2 when
// it is not PauliZ so the engine never needs an eager revert just to take
// a gate.
func (r *Register) Mtrx(m [4]complex128, target int) {
	shard := r.shard(target)
	if shard.unit != nil {
		switch shard.basis {
		case PauliZ:
			shard.unit.Mtrx(m, shard.mapped)
		case PauliX:
			shard.unit.Mtrx(transformX2x2(m), shard.mapped)
		default:
			shard.unit.Mtrx(transformY2x2(m), shard.mapped)
		}
	}
	amp0, amp1 := shard.amp0, shard.amp1
	shard.amp0 = m[0]*amp0 + m[1]*amp1
	shard.amp1 = m[2]*amp0 + m[3]*amp1
	r.maybeReactiveSeparate(target)
}

// Phase applies diag(topLeft, bottomRight) to target. A global phase
// (topLeft == bottomRight) is elided outright: this package does not track
// global phase.
func (r *Register) Phase(topLeft, bottomRight complex128, target int) {
	if ampsEqual(topLeft, bottomRight) {
		return
	}
	r.applyAnalyticPhase(r.shard(target), topLeft, bottomRight)
	r.maybeReactiveSeparate(target)
}

// Invert applies [[0, topRight], [bottomLeft, 0]] to target.
func (r *Register) Invert(topRight, bottomLeft complex128, target int) {
	r.applyAnalyticInvert(r.shard(target), topRight, bottomLeft)
	r.maybeReactiveSeparate(target)
}

// X, Y, Z are the fixed Pauli gates. Each forces target to PauliZ first:
// applying the literal swap/phase primitives below is only correct once
// the cached amplitudes are known to represent Z-eigenbasis coefficients
// (a deliberate scope reduction from qunit.cpp's unconditional XBase/
// YBase/ZBase, documented in DESIGN.md).
func (r *Register) X(target int) {
	r.revertBasis1Qb(target)
	xBase(r.shard(target))
	r.maybeReactiveSeparate(target)
}

func (r *Register) Y(target int) {
	r.revertBasis1Qb(target)
	yBase(r.shard(target))
	r.maybeReactiveSeparate(target)
}

func (r *Register) Z(target int) {
	r.revertBasis1Qb(target)
	zBase(r.shard(target))
	r.maybeReactiveSeparate(target)
}

// S, IS, T, and IT are fixed phase gates. Each forces target to PauliZ
// first, same as X/Y/Z above, so an attached engine receives the phase as a
// plain Phase call rather than as transformPhase's re-expressed matrix.
func (r *Register) S(target int) {
	r.revertBasis1Qb(target)
	r.Phase(oneCmplx, iCmplx, target)
}

func (r *Register) IS(target int) {
	r.revertBasis1Qb(target)
	r.Phase(oneCmplx, -iCmplx, target)
}

func (r *Register) T(target int) {
	r.revertBasis1Qb(target)
	r.Phase(oneCmplx, polar(1, math.Pi/4), target)
}

func (r *Register) IT(target int) {
	r.revertBasis1Qb(target)
	r.Phase(oneCmplx, polar(1, -math.Pi/4), target)
}

// trimControls classifies each control against cache alone, dropping any
// control already known to be trivially satisfied and short-circuiting the
// whole gate if any control is known to never fire.
func (r *Register) trimControls(controls []int, anti bool) (remaining []int, shortCircuit bool) {
	for _, c := range controls {
		r.revertBasis1Qb(c)
		shard := r.shard(c)
		switch {
		case shard.cachedZero():
			if anti {
				continue
			}
			return nil, true
		case shard.cachedOne():
			if anti {
				return nil, true
			}
			continue
		default:
			remaining = append(remaining, c)
		}
	}
	return remaining, false
}

// MCPhase applies diag(topLeft, bottomRight) to target, conditioned on
// every control in controls being |1>.
func (r *Register) MCPhase(controls []int, topLeft, bottomRight complex128, target int) {
	r.controlledPhase(controls, topLeft, bottomRight, target, false)
}

// MACPhase is MCPhase's anti-control counterpart (fires on every control
// being |0>).
func (r *Register) MACPhase(controls []int, topLeft, bottomRight complex128, target int) {
	r.controlledPhase(controls, topLeft, bottomRight, target, true)
}

func (r *Register) controlledPhase(controls []int, topLeft, bottomRight complex128, target int, anti bool) {
	if ampsEqual(topLeft, bottomRight) {
		return
	}

	remaining, shortCircuit := r.trimControls(controls, anti)
	if shortCircuit {
		return
	}
	if len(remaining) == 0 {
		r.applyAnalyticPhase(r.shard(target), topLeft, bottomRight)
		return
	}

	targetShard := r.shard(target)
	if len(remaining) == 1 {
		control := r.shard(remaining[0])
		if !sameUnit(control, targetShard) {
			r.metrics.recordBufferAbsorption()
			if anti {
				addAntiPhase(r, control, targetShard, topLeft, bottomRight)
			} else {
				addPhase(r, control, targetShard, topLeft, bottomRight)
			}
			return
		}
	}

	r.materializeControlledPhase(remaining, topLeft, bottomRight, target, anti)
}

// materializeControlledPhase brings every named control and the target into
// one engine and issues the real controlled gate there.
func (r *Register) materializeControlledPhase(controls []int, topLeft, bottomRight complex128, target int, anti bool) {
	qubits := append(append([]int{}, controls...), target)
	unit := r.entangleInCurrentBasis(qubits)

	mapped := make([]int, len(controls))
	for i, c := range controls {
		mapped[i] = r.shard(c).mapped
	}
	targetMapped := r.shard(target).mapped

	if anti {
		unit.MACPhase(mapped, topLeft, bottomRight, targetMapped)
	} else {
		unit.MCPhase(mapped, topLeft, bottomRight, targetMapped)
	}
	r.shard(target).makeDirty()
	r.maybeReactiveSeparate(target)
}

// MCInvert and MACInvert are MCPhase/MACPhase's anti-diagonal counterparts.
func (r *Register) MCInvert(controls []int, topRight, bottomLeft complex128, target int) {
	r.controlledInvert(controls, topRight, bottomLeft, target, false)
}

func (r *Register) MACInvert(controls []int, topRight, bottomLeft complex128, target int) {
	r.controlledInvert(controls, topRight, bottomLeft, target, true)
}

func (r *Register) controlledInvert(controls []int, topRight, bottomLeft complex128, target int, anti bool) {
	remaining, shortCircuit := r.trimControls(controls, anti)
	if shortCircuit {
		return
	}
	if len(remaining) == 0 {
		r.applyAnalyticInvert(r.shard(target), topRight, bottomLeft)
		return
	}

	targetShard := r.shard(target)
	if len(remaining) == 1 {
		control := r.shard(remaining[0])
		if !sameUnit(control, targetShard) {
			r.metrics.recordBufferAbsorption()
			if anti {
				addAntiInversion(r, control, targetShard, topRight, bottomLeft)
			} else {
				addInversion(r, control, targetShard, topRight, bottomLeft)
			}
			return
		}
	}

	qubits := append(append([]int{}, remaining...), target)
	unit := r.entangleInCurrentBasis(qubits)
	mapped := make([]int, len(remaining))
	for i, c := range remaining {
		mapped[i] = r.shard(c).mapped
	}
	targetMapped := r.shard(target).mapped
	if anti {
		unit.MACInvert(mapped, topRight, bottomLeft, targetMapped)
	} else {
		unit.MCInvert(mapped, topRight, bottomLeft, targetMapped)
	}
	targetShard.makeDirty()
	r.maybeReactiveSeparate(target)
}

// MCMtrx and MACMtrx apply an arbitrary controlled unitary. Unlike the
// phase/invert forms, a general single-control case is not absorbed into
// the deferred-phase buffer (phaseRecord only represents diagonal or
// anti-diagonal conditional gates); it always materializes.
func (r *Register) MCMtrx(controls []int, m [4]complex128, target int) {
	r.controlledMtrx(controls, m, target, false)
}

func (r *Register) MACMtrx(controls []int, m [4]complex128, target int) {
	r.controlledMtrx(controls, m, target, true)
}

func (r *Register) controlledMtrx(controls []int, m [4]complex128, target int, anti bool) {
	remaining, shortCircuit := r.trimControls(controls, anti)
	if shortCircuit {
		return
	}
	if len(remaining) == 0 {
		r.Mtrx(m, target)
		return
	}

	qubits := append(append([]int{}, remaining...), target)
	unit := r.entangleInCurrentBasis(qubits)
	mapped := make([]int, len(remaining))
	for i, c := range remaining {
		mapped[i] = r.shard(c).mapped
	}
	targetShard := r.shard(target)
	transformed := m
	switch targetShard.basis {
	case PauliX:
		transformed = transformX2x2(m)
	case PauliY:
		transformed = transformY2x2(m)
	}
	if anti {
		unit.MACMtrx(mapped, transformed, targetShard.mapped)
	} else {
		unit.MCMtrx(mapped, transformed, targetShard.mapped)
	}
	targetShard.makeDirty()
	r.maybeReactiveSeparate(target)
}

// UniformlyControlled applies a distinct 2x2 unitary per control
// permutation. It always materializes: the per-permutation structure has
// no useful diagonal/anti-diagonal buffered form in general.
func (r *Register) UniformlyControlled(controls []int, mtrxs [][4]complex128, target int) {
	qubits := append(append([]int{}, controls...), target)
	unit := r.entangleInCurrentBasis(qubits)
	mapped := make([]int, len(controls))
	for i, c := range controls {
		mapped[i] = r.shard(c).mapped
	}
	r.revertBasis1Qb(target)
	unit.UniformlyControlled(mapped, mtrxs, r.shard(target).mapped)
	r.shard(target).makeDirty()
}

// cnot, mcPhase, mcInvert, and cz are the package-internal convenience
// wrappers the separator's maximally-disentangling probe drives directly
// by logical index.
func (r *Register) cnot(control, target int) {
	r.MCInvert([]int{control}, oneCmplx, oneCmplx, target)
}

func (r *Register) mcPhase(controls []int, topLeft, bottomRight complex128, target int) {
	r.MCPhase(controls, topLeft, bottomRight, target)
}

func (r *Register) mcInvert(controls []int, topRight, bottomLeft complex128, target int) {
	r.MCInvert(controls, topRight, bottomLeft, target)
}

func (r *Register) cz(control, target int) {
	r.MCPhase([]int{control}, oneCmplx, -oneCmplx, target)
}

// Swap exchanges two logical qubits. If they share an engine, the exchange
// is pushed down to the engine and the shards' mapped offsets are swapped
// to match; otherwise, since an unentangled pair of qubits can always be
// exchanged by simply relabeling which shard sits at which logical
// position, no engine call is needed at all.
func (r *Register) Swap(q1, q2 int) {
	if q1 == q2 {
		return
	}
	s1, s2 := r.shard(q1), r.shard(q2)
	if sameUnit(s1, s2) {
		s1.unit.Swap(s1.mapped, s2.mapped)
	}
	r.shards.swap(q1, q2)
}

func (r *Register) iSwapLike(q1, q2 int, inverse bool) {
	if q1 == q2 {
		return
	}
	s1, s2 := r.shard(q1), r.shard(q2)
	r.revertBasis1Qb(q1)
	r.revertBasis1Qb(q2)
	unit := r.entangleInCurrentBasis([]int{q1, q2})
	if inverse {
		unit.IISwap(s1.mapped, s2.mapped)
	} else {
		unit.ISwap(s1.mapped, s2.mapped)
	}
	s1.makeDirty()
	s2.makeDirty()
}

func (r *Register) ISwap(q1, q2 int)  { r.iSwapLike(q1, q2, false) }
func (r *Register) IISwap(q1, q2 int) { r.iSwapLike(q1, q2, true) }

func (r *Register) sqrtSwapLike(q1, q2 int, inverse bool) {
	if q1 == q2 {
		return
	}
	s1, s2 := r.shard(q1), r.shard(q2)
	r.revertBasis1Qb(q1)
	r.revertBasis1Qb(q2)
	unit := r.entangleInCurrentBasis([]int{q1, q2})
	if inverse {
		unit.ISqrtSwap(s1.mapped, s2.mapped)
	} else {
		unit.SqrtSwap(s1.mapped, s2.mapped)
	}
	s1.makeDirty()
	s2.makeDirty()
}

func (r *Register) SqrtSwap(q1, q2 int)  { r.sqrtSwapLike(q1, q2, false) }
func (r *Register) ISqrtSwap(q1, q2 int) { r.sqrtSwapLike(q1, q2, true) }

func (r *Register) FSim(theta, phi float64, q1, q2 int) {
	if q1 == q2 {
		return
	}
	s1, s2 := r.shard(q1), r.shard(q2)
	r.revertBasis1Qb(q1)
	r.revertBasis1Qb(q2)
	unit := r.entangleInCurrentBasis([]int{q1, q2})
	unit.FSim(theta, phi, s1.mapped, s2.mapped)
	s1.makeDirty()
	s2.makeDirty()
}

// controlledSwapLike implements the cSwap/antiCSwap/cSqrtSwap family: a
// controlled exchange of q1 and q2, gated on controls. These are always
// materialized — the deferred-phase buffer has no 2-qubit-target form.
func (r *Register) controlledSwapLike(controls []int, q1, q2 int, anti bool, op func(unit Engine, m1, m2 int)) {
	remaining, shortCircuit := r.trimControls(controls, anti)
	if shortCircuit {
		return
	}
	if len(remaining) == 0 {
		r.Swap(q1, q2)
		return
	}
	r.revertBasis1Qb(q1)
	r.revertBasis1Qb(q2)
	qubits := append(append([]int{}, remaining...), q1, q2)
	unit := r.entangleInCurrentBasis(qubits)
	s1, s2 := r.shard(q1), r.shard(q2)
	op(unit, s1.mapped, s2.mapped)
	s1.makeDirty()
	s2.makeDirty()
}

// CSwap, AntiCSwap, CSqrtSwap, AntiCSqrtSwap, CISqrtSwap, and
// AntiCISqrtSwap are the controlled exchange gates.
func (r *Register) CSwap(controls []int, q1, q2 int) {
	r.controlledSwapLike(controls, q1, q2, false, func(u Engine, m1, m2 int) { u.Swap(m1, m2) })
}

func (r *Register) AntiCSwap(controls []int, q1, q2 int) {
	r.controlledSwapLike(controls, q1, q2, true, func(u Engine, m1, m2 int) { u.Swap(m1, m2) })
}

func (r *Register) CSqrtSwap(controls []int, q1, q2 int) {
	r.controlledSwapLike(controls, q1, q2, false, func(u Engine, m1, m2 int) { u.SqrtSwap(m1, m2) })
}

func (r *Register) AntiCSqrtSwap(controls []int, q1, q2 int) {
	r.controlledSwapLike(controls, q1, q2, true, func(u Engine, m1, m2 int) { u.SqrtSwap(m1, m2) })
}

func (r *Register) CISqrtSwap(controls []int, q1, q2 int) {
	r.controlledSwapLike(controls, q1, q2, false, func(u Engine, m1, m2 int) { u.ISqrtSwap(m1, m2) })
}

func (r *Register) AntiCISqrtSwap(controls []int, q1, q2 int) {
	r.controlledSwapLike(controls, q1, q2, true, func(u Engine, m1, m2 int) { u.ISqrtSwap(m1, m2) })
}

// PhaseParity applies exp(i*radians/2*Z_mask) where Z_mask is the tensor
// product of Z over the qubits named by mask, reducing to a single-qubit
// Phase when mask names exactly one bit.
func (r *Register) PhaseParity(radians float64, mask uint64) {
	if mask == 0 {
		return
	}
	phaseFac := polar(1, radians/2)

	if mask&(mask-1) == 0 {
		r.Phase(oneCmplx/phaseFac, phaseFac, lowestSetBit(mask))
		return
	}

	var qubits []int
	for m := mask; m != 0; m &= m - 1 {
		qubits = append(qubits, lowestSetBit(m))
	}

	flip := false
	var entangled []int
	for _, q := range qubits {
		r.revertBasis1Qb(q)
		shard := r.shard(q)
		switch {
		case shard.unsafeCachedZero():
			continue
		case shard.unsafeCachedOne():
			flip = !flip
		default:
			entangled = append(entangled, q)
		}
	}

	if len(entangled) == 0 {
		if flip {
			r.Phase(phaseFac, phaseFac, qubits[0])
		} else {
			r.Phase(oneCmplx/phaseFac, oneCmplx/phaseFac, qubits[0])
		}
		return
	}
	if len(entangled) == 1 {
		if flip {
			r.Phase(phaseFac, oneCmplx/phaseFac, entangled[0])
		} else {
			r.Phase(oneCmplx/phaseFac, phaseFac, entangled[0])
		}
		return
	}

	unit := r.entangleInCurrentBasis(entangled)
	for _, s := range r.shards.all() {
		if s.unit == unit {
			s.makeDirty()
		}
	}
	mapped := make([]int, len(entangled))
	for i, q := range entangled {
		mapped[i] = r.shard(q).mapped
	}
	rad := radians
	if flip {
		rad = -rad
	}
	applyZMaskPhase(unit, mapped, rad)
}

// applyZMaskPhase applies exp(i*rad/2*Z_mask) to the engine qubits named by
// mapped, where Z_mask is the tensor product of Z across them. No engine
// backend exposes this as a primitive, so it is built from a CNOT ladder
// that XORs the parity of every qubit but the last into the last, a Phase
// gate conditioned on that accumulated parity bit, and the same ladder run
// in reverse to restore it.
func applyZMaskPhase(unit Engine, mapped []int, rad float64) {
	last := mapped[len(mapped)-1]
	for _, m := range mapped[:len(mapped)-1] {
		unit.MCInvert([]int{m}, oneCmplx, oneCmplx, last)
	}
	half := polar(1, rad/2)
	unit.Phase(half, oneCmplx/half, last)
	for i := len(mapped) - 2; i >= 0; i-- {
		unit.MCInvert([]int{mapped[i]}, oneCmplx, oneCmplx, last)
	}
}

func lowestSetBit(mask uint64) int {
	n := 0
	for mask&1 == 0 {
		mask >>= 1
		n++
	}
	return n
}
