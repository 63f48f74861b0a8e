package qunit

// PauliBasis names which single-qubit eigenbasis a detached shard's cached
// amplitudes are expressed in.
type PauliBasis int

const (
	PauliZ PauliBasis = iota
	PauliX
	PauliY
)

func (b PauliBasis) String() string {
	switch b {
	case PauliX:
		return "X"
	case PauliY:
		return "Y"
	default:
		return "Z"
	}
}

// Shard is the per-qubit record this package tracks separability with. A
// shard is either detached (unit == nil, amp0/amp1 hold its state up to
// global phase in basis) or attached to a shared Engine at local index
// mapped.
type Shard struct {
	unit   Engine
	mapped int

	amp0, amp1 complex128
	basis      PauliBasis

	probDirty  bool
	phaseDirty bool

	// Deferred-phase buffer maps. Keys are partner
	// shard identities; values are the pending record. These are
	// identity-based (weak) references to the partner shard, not
	// ownership — the shared Engine handle is the only owned resource a
	// shard carries.
	targetOf     map[*Shard]*phaseRecord
	antiTargetOf map[*Shard]*phaseRecord
	controls     map[*Shard]*phaseRecord
	antiControls map[*Shard]*phaseRecord
}

// newGroundShard returns a freshly allocated shard in the reset state
// |0>, detached, basis Z.
func newGroundShard() *Shard {
	return &Shard{
		amp0:         oneCmplx,
		amp1:         zeroCmplx,
		basis:        PauliZ,
		targetOf:     make(map[*Shard]*phaseRecord),
		antiTargetOf: make(map[*Shard]*phaseRecord),
		controls:     make(map[*Shard]*phaseRecord),
		antiControls: make(map[*Shard]*phaseRecord),
	}
}

// newShardFromBit returns a detached shard holding the computational basis
// state |bitState>, used by Register.allocate and SetPermutation.
func newShardFromBit(bitState bool) *Shard {
	s := newGroundShard()
	if bitState {
		s.amp0, s.amp1 = zeroCmplx, oneCmplx
	}
	return s
}

// isDetached reports whether the shard currently owns its own 2-amplitude
// state rather than pointing into a joint subsystem.
func (s *Shard) isDetached() bool {
	return s.unit == nil
}

// qubitCount returns how many qubits the shard's engine currently spans, or
// 1 if the shard is detached — mirroring Qrack's QEngineShard::GetQubitCount.
func (s *Shard) qubitCount() int {
	if s.unit == nil {
		return 1
	}
	return s.unit.QubitCount()
}

// isInvertTarget reports whether this shard is the target of any pending
// invert-type deferred record, used by TrimControls-style probes to decide
// whether a 1-qubit buffer flush is required before trusting cached
// amplitudes.
func (s *Shard) isInvertTarget() bool {
	for _, r := range s.targetOf {
		if r.isInvert {
			return true
		}
	}
	for _, r := range s.antiTargetOf {
		if r.isInvert {
			return true
		}
	}
	return false
}

// hasQueuedPhase reports whether any of the four deferred-phase maps are
// non-empty, mirroring Qrack's QUEUED_PHASE macro (qunit.cpp:33).
func (s *Shard) hasQueuedPhase() bool {
	return len(s.targetOf) != 0 || len(s.controls) != 0 ||
		len(s.antiTargetOf) != 0 || len(s.antiControls) != 0
}

// isDirty reports whether probDirty or phaseDirty is set, mirroring
// Qrack's DIRTY macro (qunit.cpp:29).
func (s *Shard) isDirty() bool {
	return s.probDirty || s.phaseDirty
}

// makeDirty marks both probability and phase caches untrustworthy, the
// action taken on every sibling of a measured shard.
func (s *Shard) makeDirty() {
	s.probDirty = true
	s.phaseDirty = true
}

// cachedZero/cachedOne/cachedPlus report whether the shard is known, from
// cache alone (no engine query), to be the named eigenstate — mirroring
// Qrack's CACHED_ZERO/CACHED_ONE/CACHED_PLUS macros (qunit.cpp:38-40).
func (s *Shard) cachedZ() bool {
	return s.basis == PauliZ && !s.isDirty() && !s.hasQueuedPhase()
}

func (s *Shard) cachedX() bool {
	return s.basis == PauliX && !s.isDirty() && !s.hasQueuedPhase()
}

func (s *Shard) cachedZero() bool {
	return s.cachedZ() && ampIsZero(s.amp1)
}

func (s *Shard) cachedOne() bool {
	return s.cachedZ() && ampIsZero(s.amp0)
}

func (s *Shard) cachedPlus() bool {
	return s.cachedX() && ampIsZero(s.amp1)
}

// unsafeCachedZero/One report the same, but tolerate a dirty phase (not
// probability) cache — used only where the caller has already established
// it does not care about phase, mirroring Qrack's UNSAFE_CACHED_* macros
// (qunit.cpp:46-49).
func (s *Shard) unsafeCachedZero() bool {
	return !s.probDirty && s.basis == PauliZ && ampIsZero(s.amp1)
}

func (s *Shard) unsafeCachedOne() bool {
	return !s.probDirty && s.basis == PauliZ && ampIsZero(s.amp0)
}

// sameUnit reports whether two shards are currently attached to the same
// engine instance (and both attached at all).
func sameUnit(a, b *Shard) bool {
	return a.unit != nil && a.unit == b.unit
}

// dropPartnerRecords removes every deferred-phase record that references
// partner from s's four maps, used when partner detaches or is otherwise
// removed, so no record is ever left pointing at a stale shard.
func (s *Shard) dropPartnerRecords(partner *Shard) {
	delete(s.targetOf, partner)
	delete(s.antiTargetOf, partner)
	delete(s.controls, partner)
	delete(s.antiControls, partner)
}

// clearAllBuffers removes every deferred-phase record s participates in,
// on both sides, used when s is about to be measured or separated and its
// pending buffers have already been flushed or are about to be discarded.
func (s *Shard) clearAllBuffers() {
	for partner := range s.targetOf {
		partner.dropPartnerRecords(s)
	}
	for partner := range s.antiTargetOf {
		partner.dropPartnerRecords(s)
	}
	for partner := range s.controls {
		partner.dropPartnerRecords(s)
	}
	for partner := range s.antiControls {
		partner.dropPartnerRecords(s)
	}
	s.targetOf = make(map[*Shard]*phaseRecord)
	s.antiTargetOf = make(map[*Shard]*phaseRecord)
	s.controls = make(map[*Shard]*phaseRecord)
	s.antiControls = make(map[*Shard]*phaseRecord)
}
