package qunit

// phaseRecord is a deferred two-qubit phase/invert record: a promise that,
// when the control partner's state is resolved, target must receive
// diag(cmplxSame, cmplxDiff) — or, if isInvert, the corresponding
// anti-diagonal invert-then-phase — conditioned on the control firing.
// "Firing" means control == 1 for a plain control record and control == 0
// for an anti-control record; a non-firing control leaves the target
// untouched.
//
// cmplxSame is the target's amp0 multiplier and cmplxDiff its amp1
// multiplier on the firing branch, matching exactly what a buffered
// single-control Phase/Invert call would apply if materialized.
type phaseRecord struct {
	cmplxDiff complex128
	cmplxSame complex128
	isInvert  bool
}

// isIdentity reports whether the record has no observable effect and can be
// discarded outright.
func (r *phaseRecord) isIdentity() bool {
	return !r.isInvert && ampsEqual(r.cmplxDiff, oneCmplx) && ampsEqual(r.cmplxSame, oneCmplx)
}

// compose folds an incoming record of the same kind into an existing one by
// complex-multiplying like fields. Composing across different isInvert
// kinds is not supported by this in-place form; callers must materialize
// the mismatched pair first (see addControlRecord below).
func (r *phaseRecord) compose(diff, same complex128) {
	r.cmplxDiff *= diff
	r.cmplxSame *= same
}

// bufferRole identifies which of a shard's four maps a record lives in.
type bufferRole int

const (
	roleControl bufferRole = iota
	roleAntiControl
	roleTarget
	roleAntiTarget
)

func (s *Shard) mapForRole(role bufferRole) map[*Shard]*phaseRecord {
	switch role {
	case roleControl:
		return s.controls
	case roleAntiControl:
		return s.antiControls
	case roleTarget:
		return s.targetOf
	default:
		return s.antiTargetOf
	}
}

func mirrorRole(role bufferRole) bufferRole {
	switch role {
	case roleControl:
		return roleTarget
	case roleAntiControl:
		return roleAntiTarget
	case roleTarget:
		return roleControl
	default:
		return roleAntiControl
	}
}

// addControlRecord is the shared implementation behind addPhase,
// addAntiPhase, addInversion, and addAntiInversion. control is the shard
// acting as (anti-)control; target receives the buffered gate. It keeps
// control.<role>[target] and target.<mirror>[control] as byte-identical
// mirrors of each other at all times.
func addControlRecord(r *Register, control, target *Shard, diff, same complex128, isInvert, anti bool) {
	role := roleControl
	if anti {
		role = roleAntiControl
	}
	mirror := mirrorRole(role)

	existing, hasExisting := control.mapForRole(role)[target]
	if hasExisting && existing.isInvert == isInvert {
		existing.compose(diff, same)
		if existing.isIdentity() {
			delete(control.mapForRole(role), target)
			delete(target.mapForRole(mirror), control)
		}
		return
	}

	if hasExisting {
		// Kind mismatch (phase vs. invert): materialize the old record
		// before installing the new one fresh, rather than attempting a
		// cross-kind algebraic merge.
		flushSingleRecordImpl(r, control, target, role)
	}

	rec := &phaseRecord{cmplxDiff: diff, cmplxSame: same, isInvert: isInvert}
	if rec.isIdentity() {
		return
	}
	control.mapForRole(role)[target] = rec
	target.mapForRole(mirror)[control] = rec
}

// addPhase buffers a controlled-Phase(topLeft, bottomRight) gate: control is
// a normal control. Phase's own (topLeft, bottomRight) naming is the
// opposite order from phaseRecord's (cmplxDiff, cmplxSame) fields, so the
// swap happens once, here, rather than at every call site.
func addPhase(r *Register, control, target *Shard, topLeft, bottomRight complex128) {
	addControlRecord(r, control, target, bottomRight, topLeft, false, false)
}

// addAntiPhase buffers a controlled-Phase gate with an anti-control.
func addAntiPhase(r *Register, control, target *Shard, topLeft, bottomRight complex128) {
	addControlRecord(r, control, target, bottomRight, topLeft, false, true)
}

// addInversion buffers a controlled-invert (controlled-X-like) gate.
func addInversion(r *Register, control, target *Shard, topRight, bottomLeft complex128) {
	addControlRecord(r, control, target, topRight, bottomLeft, true, false)
}

// addAntiInversion buffers a controlled-invert gate with an anti-control.
func addAntiInversion(r *Register, control, target *Shard, topRight, bottomLeft complex128) {
	addControlRecord(r, control, target, topRight, bottomLeft, true, true)
}

// combineGates merges a target's matching control and anti-control entries
// against the same partner into a single-qubit phase on the target when
// the two branches agree: if target.targetOf[partner] and
// target.antiTargetOf[partner] hold identical (diff, same, isInvert), the
// composite gate does not actually depend on partner's state at all, and
// collapses to an unconditional phase/invert applied directly to target.
// Both buffered records are removed first, to avoid reentrant flushing.
func combineGates(target *Shard) (unconditional *phaseRecord, ok bool) {
	for partner, normal := range target.targetOf {
		anti, hasAnti := target.antiTargetOf[partner]
		if !hasAnti || anti.isInvert != normal.isInvert {
			continue
		}
		if !ampsEqual(normal.cmplxDiff, anti.cmplxDiff) || !ampsEqual(normal.cmplxSame, anti.cmplxSame) {
			continue
		}
		rec := &phaseRecord{cmplxDiff: normal.cmplxDiff, cmplxSame: normal.cmplxSame, isInvert: normal.isInvert}
		delete(target.targetOf, partner)
		delete(target.antiTargetOf, partner)
		delete(partner.controls, target)
		delete(partner.antiControls, target)
		return rec, true
	}
	return nil, false
}

// optimizeControls extracts, from shard's control-role buffers, any record
// whose firing and non-firing diagonal entries agree (cmplxSame ==
// cmplxDiff): such a record's 2-qubit matrix, in (shard, target) order, is
// diag(1,1,d,d) — it depends only on shard's own bit, so it is exactly a
// single-qubit Phase(1, d) applied to shard, independent of target. The
// record is removed from both sides and the equivalent phase is applied to
// shard directly.
func optimizeControls(r *Register, shard *Shard) {
	for target, rec := range shard.controls {
		if rec.isInvert || !ampsEqual(rec.cmplxDiff, rec.cmplxSame) {
			continue
		}
		delete(shard.controls, target)
		delete(target.targetOf, shard)
		r.applyAnalyticPhase(shard, oneCmplx, rec.cmplxDiff)
	}
}

// optimizeAntiControls is the anti-control mirror of optimizeControls: a
// record with cmplxSame == cmplxDiff = d in shard.antiControls[target] has
// matrix diag(d,d,1,1) in (shard, target) order, i.e. Phase(d, 1) applied
// to shard.
func optimizeAntiControls(r *Register, shard *Shard) {
	for target, rec := range shard.antiControls {
		if rec.isInvert || !ampsEqual(rec.cmplxDiff, rec.cmplxSame) {
			continue
		}
		delete(shard.antiControls, target)
		delete(target.antiTargetOf, shard)
		r.applyAnalyticPhase(shard, rec.cmplxDiff, oneCmplx)
	}
}

// optimizeTargets and optimizeAntiTargets prune any target-role record that
// has decayed to the identity (both diagonal entries 1, non-invert); this
// can happen after a partial flush leaves a record that algebraically
// cancelled but was not caught by addControlRecord's identity check because
// the cancellation only becomes visible once both branches of a pair are
// considered together (combineGates handles that case; this handles the
// residual single-record case).
func optimizeTargets(shard *Shard) {
	for partner, rec := range shard.targetOf {
		if rec.isIdentity() {
			delete(shard.targetOf, partner)
			delete(partner.controls, shard)
		}
	}
}

func optimizeAntiTargets(shard *Shard) {
	for partner, rec := range shard.antiTargetOf {
		if rec.isIdentity() {
			delete(shard.antiTargetOf, partner)
			delete(partner.antiControls, shard)
		}
	}
}
