package qunit

import "math"

// measureYMatrix rotates the PauliY eigenbasis onto the computational basis
// ((|i+>,|i->) -> (|0>,|1>)); undoYMatrix is its inverse, applied to put the
// engine back exactly as probeY found it. Used only to read a Y-axis Bloch
// component via Engine.Prob without leaving any trace on the joint state.
var measureYMatrix = [4]complex128{
	complex(invSqrt2, 0), complex(0, -invSqrt2),
	complex(invSqrt2, 0), complex(0, invSqrt2),
}
var undoYMatrix = [4]complex128{
	complex(invSqrt2, 0), complex(invSqrt2, 0),
	complex(0, invSqrt2), complex(0, -invSqrt2),
}

// blochVector reads shard q's Bloch-sphere coordinates without collapsing
// or otherwise disturbing the joint state: z comes straight from Prob, x
// and y are read by rotating into the X/Y eigenbasis, probing, and rotating
// back).
func (r *Register) blochVector(q int) (x, y, z float64) {
	shard := r.shard(q)
	if shard.unit == nil {
		// Detached shards are already known to be separable; trySeparate1
		// never reaches this branch (it returns true first). Kept for
		// robustness: bring the cache to PauliZ analytically, no engine
		// involved, and read the Bloch z-component directly.
		r.revertBasis1Qb(q)
		return 0, 0, 1 - 2*normSqr(shard.amp1)
	}

	z = 1 - 2*shard.unit.Prob(shard.mapped)

	shard.unit.Mtrx(hadamardMatrix, shard.mapped)
	x = 1 - 2*shard.unit.Prob(shard.mapped)
	shard.unit.Mtrx(hadamardMatrix, shard.mapped)

	shard.unit.Mtrx(measureYMatrix, shard.mapped)
	y = 1 - 2*shard.unit.Prob(shard.mapped)
	shard.unit.Mtrx(undoYMatrix, shard.mapped)

	return x, y, z
}

// trySeparate1 attempts to split logical qubit q off of whatever engine it
// currently shares into its own single-qubit engine, leaving every other
// shard's state untouched. It always
// records an attempt in the register's metrics, win or lose.
func (r *Register) trySeparate1(q int) bool {
	shard := r.shard(q)
	r.metrics.recordSeparateAttempt(false) // upgraded to success below on a hit

	if shard.unit == nil {
		return true
	}
	if shard.unit.QubitCount() == 1 {
		r.refreshShardCache(q)
		shard.unit = nil
		shard.mapped = 0
		return true
	}

	if probe, ok := shard.unit.(Separable); ok {
		if newUnit, sep := probe.TrySeparate1(shard.mapped); sep {
			r.installSeparatedShard(q, newUnit)
			r.metrics.recordSeparateAttempt(true)
			return true
		}
	}

	x, y, z := r.blochVector(q)
	radius := math.Sqrt(x*x + y*y + z*z)
	threshold := r.config.SeparabilityThreshold
	if probe, ok := shard.unit.(StabilizerProbe); ok && probe.IsClifford() {
		// A Clifford-restricted engine's Bloch read carries no approximation
		// noise, so the heuristic threshold can be tightened to a pure
		// floating-point epsilon instead of the configured tolerance.
		threshold = stabilizerExactEpsilon
	}
	if math.Abs(1-radius) > threshold {
		return false
	}

	newUnit := r.newEngine(1, 0)
	ok, err := shard.unit.TryDecompose(shard.mapped, newUnit, threshold)
	if err != nil || !ok {
		return false
	}

	r.installSeparatedShard(q, newUnit)
	r.metrics.recordSeparateAttempt(true)
	return true
}

// installSeparatedShard finishes a successful split: it renumbers every
// remaining shard of the old engine whose mapped index came after the
// departing qubit, attaches q to its new single-qubit engine, and refreshes
// q's cache so that subsequent detached-fast-path checks can trust it
// without a further engine round trip.
func (r *Register) installSeparatedShard(q int, newUnit Engine) {
	shard := r.shard(q)
	oldUnit := shard.unit
	oldMapped := shard.mapped

	for _, s := range r.shards.all() {
		if s.unit == oldUnit && s.mapped > oldMapped {
			s.mapped--
		}
	}

	shard.unit = newUnit
	shard.mapped = 0
	shard.basis = PauliZ
	shard.makeDirty()
	r.refreshShardCache(q)

	if oldUnit.QubitCount() == 1 {
		for i, s := range r.shards.all() {
			if s.unit == oldUnit {
				r.refreshShardCache(i)
				break
			}
		}
	}
}

// refreshShardCache populates a newly-or-still single-qubit-engine shard's
// amp0/amp1 directly from the engine and clears its dirty flags. Only valid
// while shard.unit.QubitCount() == 1, which is exactly when a cache is
// meaningful again.
func (r *Register) refreshShardCache(q int) {
	shard := r.shard(q)
	if shard.unit == nil || shard.unit.QubitCount() != 1 {
		return
	}
	shard.amp0 = shard.unit.GetAmplitude(0)
	shard.amp1 = shard.unit.GetAmplitude(1)
	shard.basis = PauliZ
	shard.probDirty = false
	shard.phaseDirty = false
}

// trySeparate2 attempts to confirm that q1 and q2, taken together, hold no
// entanglement with the rest of their shared engine — or with each other —
// by first trying each bit individually and, failing that, running a
// maximally-disentangling CNOT/MCPhase/MCInvert/CZ probe that kicks any
// single bit of mutual entanglement entropy into (at most) a deferred
// 2-qubit buffer rather than leaving it smeared across the joint state.
func (r *Register) trySeparate2(q1, q2 int) bool {
	sep1 := r.trySeparate1(q1)
	sep2 := r.trySeparate1(q2)

	shard1, shard2 := r.shard(q1), r.shard(q2)
	if sep1 || sep2 || shard1.unit != shard2.unit {
		return sep1 && sep2
	}

	if r.freezeBasis2Qb {
		return false
	}

	if probe, ok := shard1.unit.(Separable); ok {
		if !probe.TrySeparate2(shard1.mapped, shard2.mapped) {
			return false
		}
	}

	r.cnot(q1, q2)
	if shard1.unit == nil || shard2.unit == nil {
		r.cnot(q1, q2)
		return shard1.unit == nil && shard2.unit == nil
	}

	controls := []int{q1}
	r.mcPhase(controls, -iCmplx, iCmplx, q2)
	if shard1.unit == nil || shard2.unit == nil {
		return shard1.unit == nil && shard2.unit == nil
	}

	r.mcInvert(controls, -iCmplx, -iCmplx, q2)
	r.cz(q1, q2)

	return shard1.unit == nil && shard2.unit == nil
}
