package qunit

import (
	"math"
	"math/cmplx"
)

var invSqrt2 = 1 / math.Sqrt2

// hadamardMatrix is the single-qubit Hadamard, the only basis-changing
// unitary this package ever defers rather than applying immediately
//.
var hadamardMatrix = [4]complex128{
	complex(invSqrt2, 0), complex(invSqrt2, 0),
	complex(invSqrt2, 0), complex(-invSqrt2, 0),
}

// basisExclusivity, controlExclusivity, and antiExclusivity select which
// slice of a shard's deferred-phase buffer revertBasis2Qb drains, mirroring
// Qrack's ONLY_INVERT/ONLY_PHASE, ONLY_CONTROLS/ONLY_TARGETS, and
// ONLY_CTRL/ONLY_ANTI exclusivity flags (qunit.cpp RevertBasis2Qb call
// sites).
type basisExclusivity int

const (
	invertAndPhase basisExclusivity = iota
	onlyInvert
	onlyPhase
)

type controlExclusivity int

const (
	controlsAndTargets controlExclusivity = iota
	onlyControls
	onlyTargets
)

type antiExclusivity int

const (
	ctrlAndAnti antiExclusivity = iota
	onlyCtrl
	onlyAnti
)

func roleIsControlSide(role bufferRole) bool {
	return role == roleControl || role == roleAntiControl
}

func roleIsAnti(role bufferRole) bool {
	return role == roleAntiControl || role == roleAntiTarget
}

// revertBasis1Qb returns shard q to PauliZ. H keeps amp0/amp1 eagerly
// correct on every call it makes (see H below), so by the time anything
// calls revertBasis1Qb the cache already holds the true computational-basis
// state; the only debt left to pay is the engine, if one is attached,
// which has not been told about the Hadamard yet. PauliY is set only by
// newBasisSnappedShard, on a detached shard whose cache already holds the
// PauliZ coefficients, so for such a shard this revert is a pure relabel.
func (r *Register) revertBasis1Qb(q int) {
	shard := r.shard(q)
	switch shard.basis {
	case PauliZ:
		return
	case PauliY:
		shard.basis = PauliX
		fallthrough
	default: // PauliX
		if shard.unit != nil {
			shard.unit.Mtrx(hadamardMatrix, shard.mapped)
		}
		shard.basis = PauliZ
	}
}

// newBasisSnappedShard builds a detached single-qubit shard from amp0/amp1
// directly, recognizing the four Hadamard/Y eigenstates up to global phase
// and, when one matches, tagging the shard with the corresponding PauliX/
// PauliY label and replacing the pair with the exact eigenstate (same
// extracted global phase, amplitude magnitude snapped to invSqrt2) rather
// than whatever floating-point noise the caller's vector carried. Mirrors
// which four patterns qunit.cpp:111's QUnit::SetQuantumState single-qubit
// branch recognizes, but — unlike that branch — always leaves amp0/amp1
// holding the pair's true PauliZ coefficients: this package's revertBasis1Qb
// no longer re-derives them from a collapsed single amplitude (see the
// basis.go design note on H), so collapsing one side to zero the way
// qunit.cpp does would leave a detached shard whose cache reads back wrong
// the moment anything reverts or attaches it.
func newBasisSnappedShard(amp0, amp1 complex128) *Shard {
	shard := &Shard{
		amp0: amp0, amp1: amp1, basis: PauliZ,
		targetOf: make(map[*Shard]*phaseRecord), antiTargetOf: make(map[*Shard]*phaseRecord),
		controls: make(map[*Shard]*phaseRecord), antiControls: make(map[*Shard]*phaseRecord),
	}

	root2 := complex(invSqrt2, 0)
	switch {
	case ampIsZero(amp0 - amp1):
		shard.basis = PauliX
		phase := amp0 / complex(cmplx.Abs(amp0), 0)
		shard.amp0, shard.amp1 = phase*root2, phase*root2
	case ampIsZero(amp0 + amp1):
		shard.basis = PauliX
		phase := amp0 / complex(cmplx.Abs(amp0), 0)
		shard.amp0, shard.amp1 = phase*root2, -phase*root2
	case ampIsZero(iCmplx*amp0 - amp1):
		shard.basis = PauliY
		phase := amp0 / complex(cmplx.Abs(amp0), 0)
		shard.amp0, shard.amp1 = phase*root2, iCmplx*phase*root2
	case ampIsZero(iCmplx*amp0 + amp1):
		shard.basis = PauliY
		phase := amp0 / complex(cmplx.Abs(amp0), 0)
		shard.amp0, shard.amp1 = phase*root2, -iCmplx*phase*root2
	}

	return shard
}

// flushSingleRecord materializes one buffered control/anti-control record
// between control and target, removing it from both shards' maps. If
// control's classical value is already known from cache alone, the
// conditional gate collapses to an unconditional (or no-op) action on
// target with no engine interaction at all; otherwise control and target
// are entangled into one engine and the real controlled gate is issued
// there.
func flushSingleRecordImpl(r *Register, control, target *Shard, role bufferRole) {
	rec, ok := control.mapForRole(role)[target]
	if !ok {
		return
	}
	mirror := mirrorRole(role)
	delete(control.mapForRole(role), target)
	delete(target.mapForRole(mirror), control)

	anti := role == roleAntiControl

	if control.cachedZero() || control.cachedOne() {
		fires := control.cachedOne() != anti
		if fires {
			if rec.isInvert {
				r.applyAnalyticInvert(target, rec.cmplxDiff, rec.cmplxSame)
			} else {
				r.applyAnalyticPhase(target, rec.cmplxSame, rec.cmplxDiff)
			}
		}
		return
	}

	unit := r.entangleShards(control, target)
	controls := []int{control.mapped}
	if rec.isInvert {
		if anti {
			unit.MACInvert(controls, rec.cmplxDiff, rec.cmplxSame, target.mapped)
		} else {
			unit.MCInvert(controls, rec.cmplxDiff, rec.cmplxSame, target.mapped)
		}
	} else {
		if anti {
			unit.MACPhase(controls, rec.cmplxSame, rec.cmplxDiff, target.mapped)
		} else {
			unit.MCPhase(controls, rec.cmplxSame, rec.cmplxDiff, target.mapped)
		}
	}
	target.makeDirty()
}

// revertBasis2Qb drains shard q's deferred-phase buffer, selectively, per
// the exclusivity flags, materializing each surviving record via
// flushSingleRecordImpl. exceptControls/exceptTargets name
// partner shards to leave untouched (nil means "no exceptions"); if
// dumpSkipped is set, an excepted record is discarded outright instead of
// left in place. skipOptimize suppresses the optimizeControls/Targets pass
// that normally follows a drain.
func (r *Register) revertBasis2Qb(q int, excl basisExclusivity, ctrlExcl controlExclusivity, antiExcl antiExclusivity, exceptControls, exceptTargets map[*Shard]bool, dumpSkipped, skipOptimize bool) {
	shard := r.shard(q)

	for _, role := range [...]bufferRole{roleControl, roleAntiControl, roleTarget, roleAntiTarget} {
		if ctrlExcl == onlyControls && !roleIsControlSide(role) {
			continue
		}
		if ctrlExcl == onlyTargets && roleIsControlSide(role) {
			continue
		}
		if antiExcl == onlyCtrl && roleIsAnti(role) {
			continue
		}
		if antiExcl == onlyAnti && !roleIsAnti(role) {
			continue
		}

		except := exceptControls
		if !roleIsControlSide(role) {
			except = exceptTargets
		}

		for partner, rec := range shard.mapForRole(role) {
			if except != nil && except[partner] {
				if dumpSkipped {
					delete(shard.mapForRole(role), partner)
					delete(partner.mapForRole(mirrorRole(role)), shard)
				}
				continue
			}
			if excl == onlyInvert && !rec.isInvert {
				continue
			}
			if excl == onlyPhase && rec.isInvert {
				continue
			}

			if roleIsControlSide(role) {
				flushSingleRecordImpl(r, shard, partner, role)
			} else {
				flushSingleRecordImpl(r, partner, shard, mirrorRole(role))
			}
		}
	}

	if skipOptimize {
		return
	}
	optimizeControls(r, shard)
	optimizeAntiControls(r, shard)
	optimizeTargets(shard)
	optimizeAntiTargets(shard)
}

// commuteH prepares shard q's deferred-phase buffer for a basis flip. The
// original algebraically rewrites each buffered record into its
// post-Hadamard equivalent in place. This drains the buffer through
// revertBasis2Qb instead: always correct (every optimization this package
// performs is required to be a rigorous no-op on the full joint state, so
// skipping one is always a legal, merely less optimal, implementation of
// it), at the cost of losing H's ability to commute through a buffer
// without ever touching an engine. Logged in DESIGN.md.
func (r *Register) commuteH(q int) {
	if !r.shard(q).hasQueuedPhase() {
		return
	}
	r.revertBasis2Qb(q, invertAndPhase, controlsAndTargets, ctrlAndAnti, nil, nil, false, false)
}

// H toggles shard target between PauliZ and PauliX, rotating the cached
// amplitudes by the Hadamard formula on every call so amp0/amp1 always hold
// the qubit's true post-gate state. Going to PauliX, the one thing
// deferred is the engine: if attached, it is left exactly as it was until
// something forces the shard back to Z. Going back to PauliZ, that debt is
// paid by pushing the matching Mtrx to the engine via revertBasis1Qb —
// which, since the cache is already correct, touches nothing but the
// engine and the label.
func (r *Register) H(target int) {
	shard := r.shard(target)
	r.commuteH(target)

	amp0, amp1 := shard.amp0, shard.amp1
	shard.amp0 = complex(invSqrt2, 0) * (amp0 + amp1)
	shard.amp1 = complex(invSqrt2, 0) * (amp0 - amp1)

	if shard.basis != PauliZ {
		r.revertBasis1Qb(target)
		return
	}
	shard.basis = PauliX
}

// xBase, yBase, and zBase apply the literal Pauli gate to a shard already
// known to be in PauliZ (callers in gates.go call revertBasis1Qb first),
// mirroring qunit.cpp's XBase/YBase/ZBase but made safe to call regardless
// of the shard's basis label by that precondition rather than by the
// original's implicit one.
func xBase(shard *Shard) {
	if shard.unit != nil {
		shard.unit.Invert(oneCmplx, oneCmplx, shard.mapped)
	}
	shard.amp0, shard.amp1 = shard.amp1, shard.amp0
}

func yBase(shard *Shard) {
	if shard.unit != nil {
		shard.unit.Invert(-iCmplx, iCmplx, shard.mapped)
	}
	amp0 := shard.amp0
	shard.amp0 = -iCmplx * shard.amp1
	shard.amp1 = iCmplx * amp0
}

func zBase(shard *Shard) {
	if shard.unit != nil {
		shard.unit.Phase(oneCmplx, -oneCmplx, shard.mapped)
	}
	shard.amp1 = -shard.amp1
}

// transformX2x2 re-expresses a Z-frame 2x2 unitary in the X frame, used by
// the gate front-end when a controlled gate's target shard is cached in
// PauliX and the control side cannot be resolved classically, so the
// matrix must be pushed to the engine without first paying for a revert
//.
func transformX2x2(m [4]complex128) [4]complex128 {
	half := complex(0.5, 0)
	return [4]complex128{
		half * (m[0] + m[1] + m[2] + m[3]),
		half * (m[0] - m[1] + m[2] - m[3]),
		half * (m[0] + m[1] - m[2] - m[3]),
		half * (m[0] - m[1] - m[2] + m[3]),
	}
}

func transformXInvert(topRight, bottomLeft complex128) [4]complex128 {
	half := complex(0.5, 0)
	m0 := half * (topRight + bottomLeft)
	m1 := half * (bottomLeft - topRight)
	return [4]complex128{m0, m1, -m1, -m0}
}

func transformY2x2(m [4]complex128) [4]complex128 {
	half := complex(0.5, 0)
	return [4]complex128{
		half * (m[0] + iCmplx*(m[1]-m[2]) + m[3]),
		half * (m[0] - iCmplx*(m[1]+m[2]) - m[3]),
		half * (m[0] + iCmplx*(m[1]+m[2]) - m[3]),
		half * (m[0] - iCmplx*(m[1]-m[2]) + m[3]),
	}
}

func transformYInvert(topRight, bottomLeft complex128) [4]complex128 {
	half := complex(0.5, 0)
	m0 := iCmplx * half * (topRight - bottomLeft)
	m1 := iCmplx * half * (-topRight - bottomLeft)
	return [4]complex128{m0, m1, -m1, -m0}
}

func transformPhase(topLeft, bottomRight complex128) [4]complex128 {
	half := complex(0.5, 0)
	m0 := half * (topLeft + bottomRight)
	m1 := half * (topLeft - bottomRight)
	return [4]complex128{m0, m1, m1, m0}
}
