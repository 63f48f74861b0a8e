package qunit

import "math"

// This file is the measurement and probability surface. It is the main
// consumer of the separator: a collapsed qubit is, by
// construction, classically known, and is always pushed straight back out
// into its own detached shard rather than left attached to a unit it no
// longer shares any correlation with.

// Prob returns the probability that qubit q would be measured as |1>,
// without collapsing anything. A dirty probability cache forces one engine round trip; the
// result is cached back, and a probability that lands on exactly 0 or 1 is
// used to separate q immediately.
func (r *Register) Prob(q int) float64 {
	r.revertBasis1Qb(q)
	r.revertBasis2Qb(q, onlyInvert, onlyTargets, ctrlAndAnti, nil, nil, false, false)
	shard := r.shard(q)

	if shard.unit != nil && shard.unit.QubitCount() == 1 {
		r.refreshShardCache(q)
		return clampProb(normSqr(shard.amp1))
	}
	if !shard.probDirty {
		return clampProb(normSqr(shard.amp1))
	}

	shard.probDirty = false
	prob := shard.unit.Prob(shard.mapped)
	shard.amp1 = complex(math.Sqrt(clampProb(prob)), 0)
	shard.amp0 = complex(math.Sqrt(clampProb(1-prob)), 0)

	if ampIsZero(shard.amp1) {
		r.separateBit(false, q)
	} else if ampIsZero(shard.amp0) {
		r.separateBit(true, q)
	}

	return prob
}

// GetProbs returns the marginal |1> probability of every logical qubit.
func (r *Register) GetProbs() []float64 {
	out := make([]float64, r.shards.len())
	for i := range out {
		out[i] = r.Prob(i)
	}
	return out
}

// ProbAll returns the probability of the full joint permutation perm. This
// forces a complete entangle, same as GetQuantumState — an analytic query
// over every qubit at once has no cheaper general answer under partial
// separability, so this is not expected to be called on a hot path.
func (r *Register) ProbAll(perm uint64) float64 {
	amps := r.snapshotAmplitudes()
	if int(perm) >= len(amps) {
		return 0
	}
	return normSqr(amps[perm])
}

// separateBit finalizes a measurement outcome: it disposes qubit q's
// mapped bit out of its engine (asserting the now-known classical
// permutation so the engine does not have to renormalize against a
// measurement of its own), detaches the shard, and renumbers every sibling
// still attached to the same engine.
func (r *Register) separateBit(result bool, q int) {
	shard := r.shard(q)
	unit := shard.unit
	mapped := shard.mapped
	if unit == nil {
		return
	}

	perm := uint64(0)
	if result {
		perm = 1
	}
	_ = unit.Dispose(mapped, 1, &perm)

	shard.unit = nil
	shard.mapped = 0
	shard.basis = PauliZ
	shard.probDirty = false
	shard.phaseDirty = false
	if result {
		shard.amp0, shard.amp1 = zeroCmplx, oneCmplx
	} else {
		shard.amp0, shard.amp1 = oneCmplx, zeroCmplx
	}

	for _, s := range r.shards.all() {
		if s.unit == unit && s.mapped > mapped {
			s.mapped--
		}
	}

	if unit.QubitCount() == 1 {
		for i, s := range r.shards.all() {
			if s.unit == unit {
				r.refreshShardCache(i)
				break
			}
		}
	}
}

// ForceM resolves qubit q's measurement outcome. If doForce, the result is
// res regardless of the state (used to implement post-selection and to
// replay a previously-sampled outcome); otherwise it is sampled from the
// register's own random source. If doApply, the collapse is committed —
// every sibling sharing q's engine is marked dirty and q is separated out.
// If !doApply, the outcome is reported without disturbing any state at
// all.
func (r *Register) ForceM(q int, res, doForce, doApply bool) bool {
	if doApply {
		r.revertBasis1Qb(q)
		r.revertBasis2Qb(q, onlyInvert, onlyTargets, ctrlAndAnti, nil, nil, false, false)
	} else {
		r.revertBasis1Qb(q)
	}

	shard := r.shard(q)

	var result bool
	if shard.unit == nil {
		prob := clampProb(normSqr(shard.amp1))
		switch {
		case doForce:
			result = res
		case prob >= 1:
			result = true
		case prob <= 0:
			result = false
		default:
			result = r.rand01() < prob
		}
	} else {
		result = shard.unit.ForceM(shard.mapped, res, doForce, doApply)
	}

	if !doApply {
		return result
	}

	shard.probDirty = false
	shard.phaseDirty = false
	if result {
		shard.amp0, shard.amp1 = zeroCmplx, oneCmplx
	} else {
		shard.amp0, shard.amp1 = oneCmplx, zeroCmplx
	}

	if shard.unit == nil {
		return result
	}
	if shard.unit.QubitCount() == 1 {
		shard.unit = nil
		shard.mapped = 0
		return result
	}

	unit := shard.unit
	for _, s := range r.shards.all() {
		if s != shard && s.unit == unit {
			s.makeDirty()
		}
	}
	r.separateBit(result, q)

	return result
}

// M measures qubit q and commits the collapse.
func (r *Register) M(q int) bool {
	return r.ForceM(q, false, false, true)
}

// MAll measures every qubit and returns the resulting permutation.
// Grounded on qunit.cpp's MAll, simplified to measure one qubit at a time
// through ForceM rather than batching by shared engine first — always
// correct, just forgoes one engine round trip per shared unit.
func (r *Register) MAll() uint64 {
	var result uint64
	for i := 0; i < r.shards.len(); i++ {
		if r.ForceM(i, false, false, true) {
			result |= 1 << uint(i)
		}
	}
	return result
}

// ForceMReg measures length qubits starting at start, forcing the outcome
// to result's bits when doForce.
func (r *Register) ForceMReg(start, length int, result uint64, doForce, doApply bool) uint64 {
	var out uint64
	for i := 0; i < length; i++ {
		bit := (result>>uint(i))&1 != 0
		if r.ForceM(start+i, bit, doForce, doApply) {
			out |= 1 << uint(i)
		}
	}
	return out
}

// ProbParity returns the probability that the parity of the bits named by
// mask is odd, without collapsing anything.
func (r *Register) ProbParity(mask uint64) float64 {
	if mask == 0 {
		return 0
	}
	if mask&(mask-1) == 0 {
		return r.Prob(lowestSetBit(mask))
	}

	oddChance := 0.0
	entangled := map[Engine]uint64{}

	for m := mask; m != 0; m &= m - 1 {
		q := lowestSetBit(m)
		r.revertBasis1Qb(q)
		shard := r.shard(q)
		if shard.unit == nil {
			p := normSqr(shard.amp1)
			oddChance = oddChance*(1-p) + (1-oddChance)*p
			continue
		}
		entangled[shard.unit] |= 1 << uint(shard.mapped)
	}

	for unit, mapped := range entangled {
		p := unit.ProbParity(mapped)
		oddChance = oddChance*(1-p) + (1-oddChance)*p
	}

	return oddChance
}

// ForceMParity forces (or samples) the parity of mask's bits to result and
// returns the realized parity, projecting the engine holding those bits
// onto that parity.
func (r *Register) ForceMParity(mask uint64, result, doForce bool) bool {
	if mask == 0 {
		return false
	}
	if mask&(mask-1) == 0 {
		return r.ForceM(lowestSetBit(mask), result, doForce, true)
	}

	var bits []int
	for m := mask; m != 0; m &= m - 1 {
		bits = append(bits, lowestSetBit(m))
	}

	unit := r.entangleInCurrentBasis(bits)
	for _, s := range r.shards.all() {
		if s.unit == unit {
			s.makeDirty()
		}
	}
	var mapped uint64
	for _, q := range bits {
		mapped |= 1 << uint(r.shard(q).mapped)
	}
	return unit.ForceMParity(mapped, result, doForce)
}

// ExpectationBitsAll returns the expectation value of the little-endian
// permutation formed by bits, weighted by their positional value.
func (r *Register) ExpectationBitsAll(bits []int) float64 {
	for _, b := range bits {
		r.revertBasis1Qb(b)
	}
	unit := r.entangleInCurrentBasis(append([]int{}, bits...))
	mapped := make([]int, len(bits))
	for i, b := range bits {
		mapped[i] = r.shard(b).mapped
	}
	return unit.ExpectationBitsAll(mapped)
}

// MultiShotMeasureMask draws shots independent samples of the bits named
// by mask without collapsing the register, used by callers that want a
// measurement histogram without paying for shots separate full
// measurements.
func (r *Register) MultiShotMeasureMask(mask []int, shots int) map[uint64]int {
	for _, b := range mask {
		r.revertBasis1Qb(b)
	}
	unit := r.entangleInCurrentBasis(append([]int{}, mask...))
	mapped := make([]int, len(mask))
	for i, b := range mask {
		mapped[i] = r.shard(b).mapped
	}
	return unit.MultiShotMeasureMask(mapped, shots)
}
