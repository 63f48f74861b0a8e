package qunit

// This file covers the structural operations: growing and shrinking the
// register, cloning it, and the whole-state accessors that bypass the
// gate front-end entirely.

// Allocate appends n fresh ground-state qubits to the register and returns
// the logical index of the first one.
func (r *Register) Allocate(n int) int {
	start := r.shards.len()
	for i := 0; i < n; i++ {
		r.shards.insert(start+i, newGroundShard())
	}
	return start
}

// Compose appends other's qubits onto the end of this register as a
// disjoint product state — no entanglement is introduced, so every
// appended shard stays exactly as separable as it was in other. Returns
// the logical index other's qubit 0 now occupies.
func (r *Register) Compose(other *Register) int {
	start := r.shards.len()
	for _, s := range other.shards.all() {
		r.shards.insert(r.shards.len(), s)
	}
	r.metrics.recordCompose()
	return start
}

// Decompose splits the contiguous logical range [start, start+length) out
// of the register into a freshly returned Register, removing those qubits
// from r. It is only valid to call when that range holds no buffered
// record referencing a shard outside the range and no engine spans qubits
// both inside and outside it — i.e. after the caller has confirmed
// separability; callers typically reach this
// through TrySeparate rather than directly.
func (r *Register) Decompose(start, length int) *Register {
	out := &Register{
		shards:    newShardMap(0),
		config:    r.config.clone(),
		metrics:   newMetrics(),
		newEngine: r.newEngine,
		rng:       r.rng,
	}
	for i := 0; i < length; i++ {
		s := r.shards.erase(start)
		s.clearAllBuffers()
		out.shards.insert(i, s)
	}
	r.metrics.recordDecompose()
	return out
}

// Dispose discards the contiguous logical range [start, start+length)
// outright, without needing it to be separable first: any engine spanning
// qubits inside and outside the range has those qubits removed via
// Engine.Dispose, collapsing to whatever classical or mixed remainder that
// implies for the engine's bookkeeping. perm, if non-nil, asserts the
// disposed range's known classical permutation, letting the engine skip
// renormalizing against a measurement it doesn't need to perform.
func (r *Register) Dispose(start, length int, perm *uint64) {
	units := map[Engine][]int{}
	for i := start; i < start+length; i++ {
		s := r.shard(i)
		if s.unit != nil {
			units[s.unit] = append(units[s.unit], s.mapped)
		}
	}
	for unit, mapped := range units {
		lo, hi := mapped[0], mapped[0]
		for _, m := range mapped {
			if m < lo {
				lo = m
			}
			if m > hi {
				hi = m
			}
		}
		count := hi - lo + 1
		_ = unit.Dispose(lo, count, perm)
		for i := 0; i < start; i++ {
			s := r.shard(i)
			if s.unit == unit && s.mapped > hi {
				s.mapped -= count
			}
		}
		for i := start + length; i < r.shards.len(); i++ {
			s := r.shard(i)
			if s.unit == unit && s.mapped > hi {
				s.mapped -= count
			}
		}
	}

	for i := 0; i < length; i++ {
		s := r.shards.erase(start)
		s.clearAllBuffers()
	}
}

// Clone returns a deep, fully independent copy of the register: every
// shard's engine is cloned too, so
// mutating the copy never touches the original.
func (r *Register) Clone() *Register {
	out := &Register{
		shards:    newShardMap(0),
		config:    r.config.clone(),
		metrics:   newMetrics(),
		newEngine: r.newEngine,
		rng:       r.rng,
	}

	engineClones := map[Engine]Engine{}
	shardClones := map[*Shard]*Shard{}

	for _, s := range r.shards.all() {
		cs := &Shard{
			amp0: s.amp0, amp1: s.amp1, basis: s.basis,
			probDirty: s.probDirty, phaseDirty: s.phaseDirty,
			targetOf:     make(map[*Shard]*phaseRecord),
			antiTargetOf: make(map[*Shard]*phaseRecord),
			controls:     make(map[*Shard]*phaseRecord),
			antiControls: make(map[*Shard]*phaseRecord),
		}
		if s.unit != nil {
			if ce, ok := engineClones[s.unit]; ok {
				cs.unit = ce
			} else {
				ce = s.unit.Clone()
				engineClones[s.unit] = ce
				cs.unit = ce
			}
			cs.mapped = s.mapped
		}
		shardClones[s] = cs
		out.shards.insert(out.shards.len(), cs)
	}

	// Deferred-phase records reference partner shards by identity; rebuild
	// every map against the cloned shards rather than copying the pointers,
	// so the two mirrored sides of every record stay consistent in the copy.
	for orig, cs := range shardClones {
		for partner, rec := range orig.targetOf {
			cs.targetOf[shardClones[partner]] = &phaseRecord{rec.cmplxDiff, rec.cmplxSame, rec.isInvert}
		}
		for partner, rec := range orig.antiTargetOf {
			cs.antiTargetOf[shardClones[partner]] = &phaseRecord{rec.cmplxDiff, rec.cmplxSame, rec.isInvert}
		}
		for partner, rec := range orig.controls {
			cs.controls[shardClones[partner]] = &phaseRecord{rec.cmplxDiff, rec.cmplxSame, rec.isInvert}
		}
		for partner, rec := range orig.antiControls {
			cs.antiControls[shardClones[partner]] = &phaseRecord{rec.cmplxDiff, rec.cmplxSame, rec.isInvert}
		}
	}

	return out
}

// SumSqrDiff returns the sum of squared differences between this register
// and other's full joint state vectors, used by tests to compare a
// separability-tracked register against a monolithic reference engine
//. Both registers are first brought to a common
// footing: every shard is forced into one engine each (the cheapest way to
// get a directly comparable dense description without assuming either
// side's internal engine layout matches).
func (r *Register) SumSqrDiff(other *Register) float64 {
	a := r.snapshotAmplitudes()
	b := other.snapshotAmplitudes()
	return sumSqrDiff(a, b)
}

// snapshotAmplitudes reverts every shard to PauliZ, applies every buffered
// record, entangles the entire register into one engine (purely for the
// read) and returns its full state vector. Used by SumSqrDiff, ProbAll,
// GetQuantumState, GetAmplitude and SetAmplitude — gate dispatch never
// forces a full entangle.
func (r *Register) snapshotAmplitudes() []complex128 {
	n := r.shards.len()
	if n == 0 {
		return nil
	}
	qubits := make([]int, n)
	for i := range qubits {
		qubits[i] = i
		r.revertBasis1Qb(i)
	}
	for i := range qubits {
		r.revertBasis2Qb(i, invertAndPhase, controlsAndTargets, ctrlAndAnti, nil, nil, false, false)
	}
	unit := r.entangleInCurrentBasis(qubits)
	r.orderContiguous(unit)
	out := make([]complex128, 1<<uint(n))
	unit.GetQuantumState(out)
	return out
}

// Finish blocks until every engine backing the register has settled any
// asynchronous work it deferred.
func (r *Register) Finish() {
	seen := map[Engine]bool{}
	for _, s := range r.shards.all() {
		if s.unit != nil && !seen[s.unit] {
			seen[s.unit] = true
			s.unit.Finish()
		}
	}
}

// IsFinished reports whether every backing engine has already settled.
func (r *Register) IsFinished() bool {
	seen := map[Engine]bool{}
	for _, s := range r.shards.all() {
		if s.unit != nil && !seen[s.unit] {
			seen[s.unit] = true
			if !s.unit.IsFinished() {
				return false
			}
		}
	}
	return true
}

// UpdateRunningNorm and NormalizeState forward to every distinct backing
// engine; detached shards have no engine and are left as they are.
func (r *Register) UpdateRunningNorm() {
	seen := map[Engine]bool{}
	for _, s := range r.shards.all() {
		if s.unit != nil && !seen[s.unit] {
			seen[s.unit] = true
			s.unit.UpdateRunningNorm()
		}
	}
}

func (r *Register) NormalizeState() {
	seen := map[Engine]bool{}
	for _, s := range r.shards.all() {
		if s.unit != nil && !seen[s.unit] {
			seen[s.unit] = true
			s.unit.NormalizeState()
		}
	}
}

// SetPermutation resets the register to the classical computational-basis
// state named by perm: every shard becomes a fresh, detached, ground-or-
// excited single-qubit shard, and all buffers are dropped.
func (r *Register) SetPermutation(perm uint64) {
	n := r.shards.len()
	for i := 0; i < n; i++ {
		bit := (perm>>uint(i))&1 != 0
		r.shards.erase(i)
		r.shards.insert(i, newShardFromBit(bit))
	}
}

// SetQuantumState replaces the register's entire state with amps, a dense
// vector of length 2^QubitCount() in little-endian qubit order. A single
// qubit is the one case the detached/basis bookkeeping this package exists
// for can represent more cheaply than an engine: newBasisSnappedShard snaps
// the pair straight to a cached X or Y label when it recognizes one of the
// four Hadamard/Y eigenstates, leaving the shard detached. Anything wider
// is forced into a single shared engine — the bookkeeping cannot, in
// general, represent an arbitrary caller-supplied joint vector any more
// cheaply.
func (r *Register) SetQuantumState(amps []complex128) {
	n := r.shards.len()
	if n == 0 {
		return
	}
	if n == 1 {
		r.shards.erase(0)
		r.shards.insert(0, newBasisSnappedShard(amps[0], amps[1]))
		return
	}
	unit := r.newEngine(n, 0)
	unit.SetQuantumState(amps)
	for i := 0; i < n; i++ {
		r.shards.erase(i)
		r.shards.insert(i, &Shard{
			unit: unit, mapped: i, basis: PauliZ,
			targetOf: make(map[*Shard]*phaseRecord), antiTargetOf: make(map[*Shard]*phaseRecord),
			controls: make(map[*Shard]*phaseRecord), antiControls: make(map[*Shard]*phaseRecord),
		})
	}
}

// GetQuantumState returns the register's full joint state vector. Like
// SetQuantumState, this forces a complete entangle; it exists for tests
// and interop, not for use on the hot path.
func (r *Register) GetQuantumState() []complex128 {
	return r.snapshotAmplitudes()
}

// GetAmplitude and SetAmplitude read or write a single joint-permutation
// amplitude, forcing the same full entangle as GetQuantumState/
// SetQuantumState.
func (r *Register) GetAmplitude(perm uint64) complex128 {
	amps := r.snapshotAmplitudes()
	if int(perm) >= len(amps) {
		return zeroCmplx
	}
	return amps[perm]
}

func (r *Register) SetAmplitude(perm uint64, amp complex128) {
	amps := r.snapshotAmplitudes()
	if int(perm) >= len(amps) {
		return
	}
	amps[perm] = amp
	r.SetQuantumState(amps)
}
