package qunit

// Engine is the capability set the core invokes on a joint subsystem. It is
// a capability set rather than a class hierarchy: implementations dispatch
// however they like (dense state vector, decision diagram, stabilizer
// tableau); the core only ever calls through this interface.
type Engine interface {
	// QubitCount returns the number of qubits this engine currently owns.
	QubitCount() int

	// Compose fuses other's qubits onto the end of this engine's qubit
	// range and returns the index at which other's qubit 0 now lives.
	// Ownership of other is consumed; the core must not use it again.
	Compose(other Engine) (offset int, err error)

	// Decompose splits the contiguous range [start, start+out.QubitCount())
	// out of this engine into out in place, removing those qubits from
	// this engine.
	Decompose(start int, out Engine) error

	// Dispose discards the contiguous range [start, start+length) from this
	// engine without caring what state it collapses to, optionally
	// supplying a known classical permutation for the disposed range.
	Dispose(start, length int, perm *uint64) error

	// TryDecompose attempts Decompose but returns false (no-op) instead of
	// an inconsistent engine state when the range is not separable to
	// within tol.
	TryDecompose(start int, out Engine, tol float64) (bool, error)

	// Swap exchanges the local indices a and b in place.
	Swap(a, b int)

	// Mtrx applies an arbitrary single-qubit unitary (row-major 2x2) to
	// local qubit q.
	Mtrx(mtrx [4]complex128, q int)

	// Phase applies diag(topLeft, bottomRight) to local qubit q.
	Phase(topLeft, bottomRight complex128, q int)

	// Invert applies the anti-diagonal matrix [[0,topRight],[bottomLeft,0]]
	// to local qubit q.
	Invert(topRight, bottomLeft complex128, q int)

	// MCMtrx applies mtrx to target, controlled on controls all being |1>.
	MCMtrx(controls []int, mtrx [4]complex128, target int)
	// MCPhase is the diagonal specialization of MCMtrx.
	MCPhase(controls []int, topLeft, bottomRight complex128, target int)
	// MCInvert is the anti-diagonal specialization of MCMtrx.
	MCInvert(controls []int, topRight, bottomLeft complex128, target int)
	// MACMtrx, MACPhase, MACInvert are the anti-control (fire on |0>)
	// counterparts.
	MACMtrx(controls []int, mtrx [4]complex128, target int)
	MACPhase(controls []int, topLeft, bottomRight complex128, target int)
	MACInvert(controls []int, topRight, bottomLeft complex128, target int)

	// UniformlyControlled applies a distinct 2x2 unitary per control
	// permutation to target.
	UniformlyControlled(controls []int, mtrxs [][4]complex128, target int)

	ISwap(a, b int)
	IISwap(a, b int)
	SqrtSwap(a, b int)
	ISqrtSwap(a, b int)
	FSim(theta, phi float64, a, b int)

	// Prob returns the probability of measuring local qubit q as |1>.
	Prob(q int) float64
	// ProbAll returns the probability of the full local permutation perm.
	ProbAll(perm uint64) float64
	// ProbParity returns the probability that the parity of the bits in
	// mask is odd.
	ProbParity(mask uint64) float64
	// ForceMParity forces (or samples, if !doForce) the parity of mask to
	// result, collapsing the state, and returns the realized parity.
	ForceMParity(mask uint64, result, doForce bool) bool
	// MultiShotMeasureMask draws shots samples of the bits in mask and
	// returns a histogram keyed by the local permutation of those bits.
	MultiShotMeasureMask(mask []int, shots int) map[uint64]int
	// ExpectationBitsAll returns the expectation value of the permutation
	// formed by bits, weighted by their positional value.
	ExpectationBitsAll(bits []int) float64

	// ForceM forces (or samples) qubit q to res (if doForce), applying the
	// collapse only if doApply, and returns the realized outcome.
	ForceM(q int, res, doForce, doApply bool) bool

	SetPermutation(perm uint64, phase complex128)
	SetQuantumState(amps []complex128)
	GetQuantumState(out []complex128)
	GetAmplitude(perm uint64) complex128
	SetAmplitude(perm uint64, amp complex128)

	UpdateRunningNorm()
	NormalizeState()
	Finish()
	IsFinished() bool
	Clone() Engine
	SumSqrDiff(other Engine) float64

	// The remaining methods form the register's integer-arithmetic surface,
	// operating on a little-endian local-qubit range exactly as the other
	// methods operate on a single local qubit or control set.

	// INC adds toMod to the length-qubit register starting at start, modulo
	// 2^length, with no carry or sign handling.
	INC(toMod uint64, start, length int)
	// CINC is INC, firing only when every qubit in controls is |1>.
	CINC(toMod uint64, start, length int, controls []int)
	// INCC is INC with an explicit incoming/outgoing carry qubit. The
	// register's DECC forwards here too, with toAdd already negated.
	INCC(toAdd uint64, start, length, carry int)
	// MUL multiplies the length-qubit register at inOutStart by toMul,
	// storing the low bits in place and the overflow into the length-qubit
	// register at carryStart.
	MUL(toMul uint64, inOutStart, carryStart, length int)
	// DIV is MUL's inverse: divides the (inOutStart,carryStart) double-wide
	// register by toDiv.
	DIV(toDiv uint64, inOutStart, carryStart, length int)
	// MULModNOut computes (toMod * in) mod modN out-of-place into outStart.
	MULModNOut(toMod, modN uint64, inStart, outStart, length int)
	// IMULModNOut is MULModNOut's modular-inverse counterpart.
	IMULModNOut(toMod, modN uint64, inStart, outStart, length int)
	// POWModNOut computes toMod^in mod modN out-of-place into outStart.
	POWModNOut(toMod, modN uint64, inStart, outStart, length int)

	// CMUL, CDIV, CMULModNOut, CIMULModNOut, and CPOWModNOut are the
	// controlled forms of the above, firing only when every control is |1>.
	CMUL(toMod uint64, start, carryStart, length int, controls []int)
	CDIV(toMod uint64, start, carryStart, length int, controls []int)
	CMULModNOut(toMod, modN uint64, inStart, outStart, length int, controls []int)
	CIMULModNOut(toMod, modN uint64, inStart, outStart, length int, controls []int)
	CPOWModNOut(toMod, modN uint64, inStart, outStart, length int, controls []int)

	// IndexedLDA loads values[index] into the valueLength-qubit register at
	// valueStart, where index is the indexLength-qubit register at
	// indexStart, and returns the loaded value's classical permutation.
	IndexedLDA(indexStart, indexLength, valueStart, valueLength int, values []byte) uint64
	// IndexedADC/IndexedSBC add/subtract the indexed table lookup into the
	// value register, through carry, mirroring a classical ADC/SBC
	// instruction against a lookup table (used to build reversible
	// arithmetic circuits such as modular exponentiation tables).
	IndexedADC(indexStart, indexLength, valueStart, valueLength, carry int, values []byte) uint64
	IndexedSBC(indexStart, indexLength, valueStart, valueLength, carry int, values []byte) uint64

	// Hash applies the reversible permutation named by values to the
	// length-qubit register at start.
	Hash(start, length int, values []byte)

	// PhaseFlipIfLess multiplies the joint state by -1 wherever the
	// length-qubit register at start holds a permutation less than
	// greaterPerm.
	PhaseFlipIfLess(greaterPerm uint64, start, length int)
	// CPhaseFlipIfLess is PhaseFlipIfLess, active only when flag is |1>.
	CPhaseFlipIfLess(greaterPerm uint64, start, length, flag int)
}

// Separable is an optional capability: engines that can report or exploit
// separability more cheaply than the generic Bloch-vector probe (e.g.
// stabilizer tableaux) implement it. The separator checks for it with a
// type assertion before falling back to the generic path.
type Separable interface {
	// TrySeparate1 attempts to split local qubit q out of the engine into
	// its own single-qubit engine, returning it on success.
	TrySeparate1(q int) (Engine, bool)
	// TrySeparate2 attempts to verify that qubits a and b, taken together,
	// are separable from the rest of the engine (it does not need to
	// perform the split itself — the core re-derives it via Decompose).
	TrySeparate2(a, b int) bool
}

// StabilizerProbe is an optional capability reporting whether an engine is
// currently restricted to the stabilizer (Clifford) group or is a binary
// decision diagram, both of which admit cheap exact separability checks
// that the generic Bloch-vector probe in the separator would otherwise
// approximate.
type StabilizerProbe interface {
	IsClifford() bool
	IsBinaryDecisionTree() bool
}
