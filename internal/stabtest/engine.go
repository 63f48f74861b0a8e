// Package stabtest is a test-only qunit.Engine backend restricted to the
// Clifford group (Pauli gates, Hadamard, S, CNOT/CZ) plus measurement,
// tracked with an Aaronson-Gottesman stabilizer tableau instead of a dense
// amplitude vector. It exists so tests can exercise the separator's
// StabilizerProbe short-circuit and entangle/compose/decompose paths on
// register sizes a dense engine could not hold, without pulling in a real
// third-party stabilizer library (the retrieved reference pack carries
// none). Any gate outside the supported set panics — this backend is for
// tests that deliberately stay inside the Clifford subspace, not general use.
//
// TrySeparate1/TrySeparate2 recognize separability syntactically: they
// trust the tableau's current generators and never run Gaussian elimination
// to discover a hidden product structure. That can miss real separations a
// full implementation would catch, but it never reports a false positive,
// and every test built against this backend constructs its circuits so the
// generators stay in product form whenever the qubits actually are
// separable. A random-outcome measurement clears the measured column from
// every other stabilizer generator, so a qubit measured out of an entangled
// pair is recognized as separable.
package stabtest

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/quantronium/qunit"
)

// Engine is a CHP-style stabilizer tableau for n qubits. Rows [0,n) are
// destabilizer generators, rows [n,2n) are stabilizer generators; row 2n is
// scratch space used by the deterministic-measurement algorithm. x, z, and r
// are indexed [row][col] and [row] respectively.
type Engine struct {
	n    int
	x, z [][]bool
	r    []bool
}

// New returns an Engine for n qubits initialized to |perm>, i.e. stabilized
// by (-1)^perm_q * Z_q on every qubit q.
func New(n int, perm uint64) *Engine {
	e := &Engine{n: n}
	e.allocRows(2*n + 1)
	for i := 0; i < n; i++ {
		e.x[i][i] = true
		e.z[n+i][i] = true
		e.r[n+i] = perm&(uint64(1)<<uint(i)) != 0
	}
	return e
}

func (e *Engine) allocRows(rows int) {
	e.x = make([][]bool, rows)
	e.z = make([][]bool, rows)
	e.r = make([]bool, rows)
	for i := range e.x {
		e.x[i] = make([]bool, e.n)
		e.z[i] = make([]bool, e.n)
	}
}

func (e *Engine) QubitCount() int { return e.n }

func unsupported(name string) {
	panic(fmt.Sprintf("stabtest: %s is outside the supported Clifford/measurement subset", name))
}

// --- Clifford gate updates, following Aaronson & Gottesman's tableau rules ---

func (e *Engine) hadamard(q int) {
	for i := range e.x {
		if e.x[i][q] && e.z[i][q] {
			e.r[i] = !e.r[i]
		}
		e.x[i][q], e.z[i][q] = e.z[i][q], e.x[i][q]
	}
}

func (e *Engine) phaseS(q int) {
	for i := range e.x {
		if e.x[i][q] && e.z[i][q] {
			e.r[i] = !e.r[i]
		}
		e.z[i][q] = e.z[i][q] != e.x[i][q]
	}
}

func (e *Engine) pauliX(q int) {
	for i := range e.x {
		if e.z[i][q] {
			e.r[i] = !e.r[i]
		}
	}
}

func (e *Engine) pauliZ(q int) {
	for i := range e.x {
		if e.x[i][q] {
			e.r[i] = !e.r[i]
		}
	}
}

func (e *Engine) pauliY(q int) {
	for i := range e.x {
		if e.x[i][q] != e.z[i][q] {
			e.r[i] = !e.r[i]
		}
	}
}

func (e *Engine) cnot(control, target int) {
	for i := range e.x {
		if e.x[i][control] && e.z[i][target] && (e.x[i][target] == e.z[i][control]) {
			e.r[i] = !e.r[i]
		}
		e.x[i][target] = e.x[i][target] != e.x[i][control]
		e.z[i][control] = e.z[i][control] != e.z[i][target]
	}
}

func (e *Engine) cz(control, target int) {
	e.hadamard(target)
	e.cnot(control, target)
	e.hadamard(target)
}

func (e *Engine) swapQubits(a, b int) {
	for i := range e.x {
		e.x[i][a], e.x[i][b] = e.x[i][b], e.x[i][a]
		e.z[i][a], e.z[i][b] = e.z[i][b], e.z[i][a]
	}
}

// rowsum sets row h to h*i (Pauli group multiplication), tracking phase.
func (e *Engine) rowsum(h, i int) {
	g := 0
	for j := 0; j < e.n; j++ {
		g += gFunc(e.x[i][j], e.z[i][j], e.x[h][j], e.z[h][j])
	}
	sum := g
	if e.r[h] {
		sum += 2
	}
	if e.r[i] {
		sum += 2
	}
	e.r[h] = ((sum%4)+4)%4 == 2
	for j := 0; j < e.n; j++ {
		e.x[h][j] = e.x[h][j] != e.x[i][j]
		e.z[h][j] = e.z[h][j] != e.z[i][j]
	}
}

func gFunc(x1, z1, x2, z2 bool) int {
	if !x1 && !z1 {
		return 0
	}
	if x1 && z1 {
		if z2 {
			if x2 {
				return 0
			}
			return 1
		}
		if x2 {
			return -1
		}
		return 0
	}
	if x1 && !z1 {
		if z2 {
			if x2 {
				return 1
			}
			return -1
		}
		return 0
	}
	if x2 {
		if z2 {
			return -1
		}
		return 1
	}
	return 0
}

// measure performs a projective Z-basis measurement of qubit q, forcing the
// outcome to res when doForce is true and the branch is genuinely random.
// It returns the realized outcome.
func (e *Engine) measure(q int, res, doForce bool) bool {
	p := -1
	for i := e.n; i < 2*e.n; i++ {
		if e.x[i][q] {
			p = i
			break
		}
	}
	if p >= 0 {
		outcome := res
		if !doForce {
			outcome = rand.Intn(2) == 1
		}
		for i := range e.x {
			if i != p && e.x[i][q] {
				e.rowsum(i, p)
			}
		}
		destab := p - e.n
		copy(e.x[destab], e.x[p])
		copy(e.z[destab], e.z[p])
		e.r[destab] = e.r[p]
		for j := range e.x[p] {
			e.x[p][j] = false
			e.z[p][j] = j == q
		}
		e.r[p] = outcome
		// Clear column q from every other stabilizer generator, pairing each
		// stabilizer rowsum with the matching destabilizer update so the
		// tableau stays symplectic; the measured qubit's rows end up isolated.
		for i := e.n; i < 2*e.n; i++ {
			if i != p && e.z[i][q] {
				e.rowsum(i, p)
				e.rowsum(destab, i-e.n)
			}
		}
		return outcome
	}

	scratch := 2 * e.n
	for j := range e.x[scratch] {
		e.x[scratch][j] = false
		e.z[scratch][j] = false
	}
	e.r[scratch] = false
	for i := 0; i < e.n; i++ {
		if e.x[i][q] {
			e.rowsum(scratch, e.n+i)
		}
	}
	return e.r[scratch]
}

// deterministic reports whether measuring q would be deterministic, without
// mutating the tableau.
func (e *Engine) deterministic(q int) bool {
	for i := e.n; i < 2*e.n; i++ {
		if e.x[i][q] {
			return false
		}
	}
	return true
}

// --- qunit.Engine surface: gates ---

func (e *Engine) Mtrx(m [4]complex128, q int) {
	switch {
	case isIdentity(m):
	case isPauliX(m):
		e.pauliX(q)
	case isPauliY(m):
		e.pauliY(q)
	case isPauliZ(m):
		e.pauliZ(q)
	case isHadamard(m):
		e.hadamard(q)
	case isS(m):
		e.phaseS(q)
	default:
		unsupported("Mtrx (non-Clifford single-qubit unitary)")
	}
}

func (e *Engine) Phase(topLeft, bottomRight complex128, q int) {
	e.Mtrx([4]complex128{topLeft, 0, 0, bottomRight}, q)
}

func (e *Engine) Invert(topRight, bottomLeft complex128, q int) {
	e.Mtrx([4]complex128{0, topRight, bottomLeft, 0}, q)
}

func (e *Engine) MCMtrx(controls []int, m [4]complex128, target int) {
	if len(controls) != 1 {
		unsupported("MCMtrx with other than one control")
	}
	switch {
	case isPauliX(m):
		e.cnot(controls[0], target)
	case isPauliZ(m):
		e.cz(controls[0], target)
	default:
		unsupported("MCMtrx (non-Clifford controlled unitary)")
	}
}

func (e *Engine) MCPhase(controls []int, topLeft, bottomRight complex128, target int) {
	e.MCMtrx(controls, [4]complex128{topLeft, 0, 0, bottomRight}, target)
}

func (e *Engine) MCInvert(controls []int, topRight, bottomLeft complex128, target int) {
	e.MCMtrx(controls, [4]complex128{0, topRight, bottomLeft, 0}, target)
}

func (e *Engine) MACMtrx(controls []int, m [4]complex128, target int) {
	for _, c := range controls {
		e.pauliX(c)
	}
	e.MCMtrx(controls, m, target)
	for _, c := range controls {
		e.pauliX(c)
	}
}

func (e *Engine) MACPhase(controls []int, topLeft, bottomRight complex128, target int) {
	e.MACMtrx(controls, [4]complex128{topLeft, 0, 0, bottomRight}, target)
}

func (e *Engine) MACInvert(controls []int, topRight, bottomLeft complex128, target int) {
	e.MACMtrx(controls, [4]complex128{0, topRight, bottomLeft, 0}, target)
}

func (e *Engine) UniformlyControlled([]int, [][4]complex128, int) {
	unsupported("UniformlyControlled")
}

func (e *Engine) Swap(a, b int)               { e.swapQubits(a, b) }
func (e *Engine) ISwap(int, int)              { unsupported("ISwap") }
func (e *Engine) IISwap(int, int)             { unsupported("IISwap") }
func (e *Engine) SqrtSwap(int, int)           { unsupported("SqrtSwap") }
func (e *Engine) ISqrtSwap(int, int)          { unsupported("ISqrtSwap") }
func (e *Engine) FSim(_, _ float64, _, _ int) { unsupported("FSim") }

// --- probability and measurement ---

func (e *Engine) Prob(q int) float64 {
	if !e.deterministic(q) {
		return 0.5
	}
	cp := e.Clone().(*Engine)
	if cp.measure(q, false, false) {
		return 1
	}
	return 0
}

// probMarginal returns the probability that every qubit named in bits holds
// the bit of perm at its own position, conditioning sequentially and
// multiplying branch probabilities (each exactly 0, 0.5, or 1 for a
// stabilizer state). It mutates only its own clone.
func (e *Engine) probMarginal(bits []int, perm uint64) float64 {
	cp := e.Clone().(*Engine)
	prob := 1.0
	for _, q := range bits {
		want := perm&(uint64(1)<<uint(q)) != 0
		switch cp.Prob(q) {
		case 0:
			if want {
				return 0
			}
		case 1:
			if !want {
				return 0
			}
		default:
			prob *= 0.5
		}
		cp.measure(q, want, true)
	}
	return prob
}

func (e *Engine) ProbAll(perm uint64) float64 {
	bits := make([]int, e.n)
	for i := range bits {
		bits[i] = i
	}
	return e.probMarginal(bits, perm)
}

func (e *Engine) ProbParity(mask uint64) float64 {
	var bits []int
	for q := 0; q < e.n; q++ {
		if mask&(uint64(1)<<uint(q)) != 0 {
			bits = append(bits, q)
		}
	}
	if len(bits) == 0 {
		return 0
	}
	var total float64
	for v := uint64(0); v < uint64(1)<<uint(len(bits)); v++ {
		if parity(v) != 1 {
			continue
		}
		var perm uint64
		for k, q := range bits {
			if v&(uint64(1)<<uint(k)) != 0 {
				perm |= uint64(1) << uint(q)
			}
		}
		total += e.probMarginal(bits, perm)
	}
	return total
}

func parity(x uint64) int {
	p := 0
	for x != 0 {
		p ^= int(x & 1)
		x >>= 1
	}
	return p
}

func (e *Engine) ForceMParity(mask uint64, result, doForce bool) bool {
	var bits []int
	for q := 0; q < e.n; q++ {
		if mask&(uint64(1)<<uint(q)) != 0 {
			bits = append(bits, q)
		}
	}
	if len(bits) == 0 {
		return false
	}
	want := result
	if !doForce {
		want = rand.Float64() < e.ProbParity(mask)
	}
	var parityNow bool
	for _, q := range bits[:len(bits)-1] {
		if e.measure(q, false, false) {
			parityNow = !parityNow
		}
	}
	last := bits[len(bits)-1]
	e.measure(last, parityNow != want, true)
	return want
}

func (e *Engine) MultiShotMeasureMask(mask []int, shots int) map[uint64]int {
	out := make(map[uint64]int, shots)
	for s := 0; s < shots; s++ {
		cp := e.Clone().(*Engine)
		var v uint64
		for k, q := range mask {
			if cp.measure(q, false, false) {
				v |= uint64(1) << uint(k)
			}
		}
		out[v]++
	}
	return out
}

func (e *Engine) ExpectationBitsAll(bits []int) float64 {
	cp := e.Clone().(*Engine)
	var exp float64
	for k, q := range bits {
		if cp.measure(q, false, false) {
			exp += math.Pow(2, float64(k))
		}
	}
	return exp
}

func (e *Engine) ForceM(q int, res, doForce, doApply bool) bool {
	if !doApply {
		cp := e.Clone().(*Engine)
		return cp.measure(q, res, doForce)
	}
	return e.measure(q, res, doForce)
}

// --- direct state access ---

func (e *Engine) SetPermutation(perm uint64, _ complex128) {
	*e = *New(e.n, perm)
}

func (e *Engine) SetQuantumState([]complex128)    { unsupported("SetQuantumState") }
func (e *Engine) GetQuantumState([]complex128)    { unsupported("GetQuantumState") }
func (e *Engine) SetAmplitude(uint64, complex128) { unsupported("SetAmplitude") }

func (e *Engine) GetAmplitude(perm uint64) complex128 {
	p := e.ProbAll(perm)
	if p == 0 {
		return 0
	}
	// Only the magnitude is recoverable this way; relative phase beyond the
	// tableau's sign bits is out of scope for this test backend.
	return complex(math.Sqrt(p), 0)
}

func (e *Engine) UpdateRunningNorm() {}
func (e *Engine) NormalizeState()    {}
func (e *Engine) Finish()            {}
func (e *Engine) IsFinished() bool   { return true }

func (e *Engine) Clone() qunit.Engine {
	cp := &Engine{n: e.n}
	cp.allocRows(len(e.x))
	cp.r = append([]bool(nil), e.r...)
	for i := range e.x {
		copy(cp.x[i], e.x[i])
		copy(cp.z[i], e.z[i])
	}
	return cp
}

func (e *Engine) SumSqrDiff(other qunit.Engine) float64 {
	o, ok := other.(*Engine)
	if !ok || o.n != e.n {
		return 1
	}
	for i := range e.x {
		for j := range e.x[i] {
			if e.x[i][j] != o.x[i][j] || e.z[i][j] != o.z[i][j] {
				return 1
			}
		}
		if e.r[i] != o.r[i] {
			return 1
		}
	}
	return 0
}

// --- structural ---

// Compose appends other's tableau as an independent product factor: every
// row gets zero-padded into the columns it did not previously own.
func (e *Engine) Compose(other qunit.Engine) (int, error) {
	o, ok := other.(*Engine)
	if !ok {
		return 0, fmt.Errorf("stabtest: Compose requires another *Engine, got %T", other)
	}
	offset := e.n
	newN := e.n + o.n
	merged := &Engine{n: newN}
	merged.allocRows(2*newN + 1)

	for i := 0; i < e.n; i++ {
		copy(merged.x[i][:e.n], e.x[i])
		merged.r[i] = e.r[i]
	}
	for i := 0; i < o.n; i++ {
		copy(merged.x[e.n+i][e.n:], o.x[i])
		copy(merged.z[e.n+i][e.n:], o.z[i])
		merged.r[e.n+i] = o.r[i]
	}
	for i := 0; i < e.n; i++ {
		copy(merged.x[newN+i][:e.n], e.x[e.n+i])
		copy(merged.z[newN+i][:e.n], e.z[e.n+i])
		merged.r[newN+i] = e.r[e.n+i]
	}
	for i := 0; i < o.n; i++ {
		copy(merged.x[newN+e.n+i][e.n:], o.x[o.n+i])
		copy(merged.z[newN+e.n+i][e.n:], o.z[o.n+i])
		merged.r[newN+e.n+i] = o.r[o.n+i]
	}
	for i := 0; i < e.n; i++ {
		copy(merged.z[i][:e.n], e.z[i])
	}

	*e = *merged
	return offset, nil
}

// isolatedRows returns the indices of every tableau row with any support on
// column q, which must be exactly two (one destabilizer-side, one
// stabilizer-side) for q to be cleanly separable by this backend's
// syntactic check.
func (e *Engine) isolatedRows(q int) (destabRow, stabRow int, ok bool) {
	destabRow, stabRow = -1, -1
	for i := range e.x[:2*e.n] {
		if !e.x[i][q] && !e.z[i][q] {
			continue
		}
		for j := 0; j < e.n; j++ {
			if j == q {
				continue
			}
			if e.x[i][j] || e.z[i][j] {
				return 0, 0, false
			}
		}
		if i < e.n {
			if destabRow != -1 {
				return 0, 0, false
			}
			destabRow = i
		} else {
			if stabRow != -1 {
				return 0, 0, false
			}
			stabRow = i
		}
	}
	return destabRow, stabRow, destabRow != -1 && stabRow != -1
}

// removeQubit deletes column q and its destabilizer/stabilizer row pair,
// assuming isolatedRows(q) already confirmed they carry no support
// elsewhere. It returns the single-qubit Engine q factored out as.
func (e *Engine) removeQubit(q int) *Engine {
	destabRow, stabRow, ok := e.isolatedRows(q)
	if !ok {
		panic("stabtest: removeQubit called on a non-isolated qubit")
	}
	single := &Engine{n: 1}
	single.allocRows(3)
	single.x[0][0], single.z[0][0], single.r[0] = e.x[destabRow][q], e.z[destabRow][q], e.r[destabRow]
	single.x[1][0], single.z[1][0], single.r[1] = e.x[stabRow][q], e.z[stabRow][q], e.r[stabRow]

	newN := e.n - 1
	shrunk := &Engine{n: newN}
	shrunk.allocRows(2*newN + 1)
	di, si := 0, 0
	for i := 0; i < e.n; i++ {
		if i == destabRow {
			continue
		}
		copyRowSkipCol(shrunk.x[di], e.x[i], q)
		copyRowSkipCol(shrunk.z[di], e.z[i], q)
		shrunk.r[di] = e.r[i]
		di++
	}
	for i := e.n; i < 2*e.n; i++ {
		if i == stabRow {
			continue
		}
		copyRowSkipCol(shrunk.x[newN+si], e.x[i], q)
		copyRowSkipCol(shrunk.z[newN+si], e.z[i], q)
		shrunk.r[newN+si] = e.r[i]
		si++
	}
	*e = *shrunk
	return single
}

func copyRowSkipCol(dst, src []bool, skip int) {
	d := 0
	for s, v := range src {
		if s == skip {
			continue
		}
		dst[d] = v
		d++
	}
}

func (e *Engine) Decompose(start int, out qunit.Engine) error {
	o, ok := out.(*Engine)
	if !ok {
		return fmt.Errorf("stabtest: Decompose requires a *Engine target, got %T", out)
	}
	if o.n != 1 {
		return fmt.Errorf("stabtest: Decompose only supports single-qubit targets")
	}
	if _, _, isolated := e.isolatedRows(start); !isolated {
		return fmt.Errorf("stabtest: qubit %d is not syntactically separable", start)
	}
	single := e.removeQubit(start)
	*o = *single
	return nil
}

func (e *Engine) TryDecompose(start int, out qunit.Engine, tol float64) (bool, error) {
	if _, _, isolated := e.isolatedRows(start); !isolated {
		return false, nil
	}
	if err := e.Decompose(start, out); err != nil {
		return false, err
	}
	return true, nil
}

// Dispose discards the single qubit at start. Unlike Decompose, it does not
// require separability: if the qubit is entangled with the rest, it forces
// a measurement (the classical outcome, if not supplied, is sampled from
// its marginal) and projects it out.
func (e *Engine) Dispose(start, length int, perm *uint64) error {
	if length != 1 {
		return fmt.Errorf("stabtest: Dispose only supports single-qubit ranges")
	}
	if _, _, isolated := e.isolatedRows(start); isolated {
		e.removeQubit(start)
		return nil
	}
	var want bool
	if perm != nil {
		want = *perm != 0
	} else {
		want = rand.Float64() < e.Prob(start)
	}
	e.measure(start, want, true)
	e.removeQubit(start)
	return nil
}

// --- optional capability surface ---

func (e *Engine) IsClifford() bool           { return true }
func (e *Engine) IsBinaryDecisionTree() bool { return false }

func (e *Engine) TrySeparate1(q int) (qunit.Engine, bool) {
	if _, _, isolated := e.isolatedRows(q); !isolated {
		return nil, false
	}
	cp := e.Clone().(*Engine)
	single := cp.removeQubit(q)
	*e = *cp
	return single, true
}

func (e *Engine) TrySeparate2(a, b int) bool {
	_, _, isoA := e.isolatedRows(a)
	if isoA {
		return true
	}
	_, _, isoB := e.isolatedRows(b)
	return isoB
}

// --- the arithmetic surface is entirely outside the Clifford group ---

func (e *Engine) INC(uint64, int, int)                             { unsupported("INC") }
func (e *Engine) CINC(uint64, int, int, []int)                      { unsupported("CINC") }
func (e *Engine) INCC(uint64, int, int, int)                        { unsupported("INCC") }
func (e *Engine) MUL(uint64, int, int, int)                         { unsupported("MUL") }
func (e *Engine) DIV(uint64, int, int, int)                         { unsupported("DIV") }
func (e *Engine) MULModNOut(uint64, uint64, int, int, int)          { unsupported("MULModNOut") }
func (e *Engine) IMULModNOut(uint64, uint64, int, int, int)         { unsupported("IMULModNOut") }
func (e *Engine) POWModNOut(uint64, uint64, int, int, int)          { unsupported("POWModNOut") }
func (e *Engine) CMUL(uint64, int, int, int, []int)                 { unsupported("CMUL") }
func (e *Engine) CDIV(uint64, int, int, int, []int)                 { unsupported("CDIV") }
func (e *Engine) CMULModNOut(uint64, uint64, int, int, int, []int)  { unsupported("CMULModNOut") }
func (e *Engine) CIMULModNOut(uint64, uint64, int, int, int, []int) { unsupported("CIMULModNOut") }
func (e *Engine) CPOWModNOut(uint64, uint64, int, int, int, []int)  { unsupported("CPOWModNOut") }
func (e *Engine) IndexedLDA(int, int, int, int, []byte) uint64 {
	unsupported("IndexedLDA")
	return 0
}
func (e *Engine) IndexedADC(int, int, int, int, int, []byte) uint64 {
	unsupported("IndexedADC")
	return 0
}
func (e *Engine) IndexedSBC(int, int, int, int, int, []byte) uint64 {
	unsupported("IndexedSBC")
	return 0
}
func (e *Engine) Hash(int, int, []byte)                  { unsupported("Hash") }
func (e *Engine) PhaseFlipIfLess(uint64, int, int)        { unsupported("PhaseFlipIfLess") }
func (e *Engine) CPhaseFlipIfLess(uint64, int, int, int)  { unsupported("CPhaseFlipIfLess") }

func isIdentity(m [4]complex128) bool {
	return approx(m[0], 1) && approx(m[1], 0) && approx(m[2], 0) && approx(m[3], 1)
}
func isPauliX(m [4]complex128) bool {
	return approx(m[0], 0) && approx(m[1], 1) && approx(m[2], 1) && approx(m[3], 0)
}
func isPauliY(m [4]complex128) bool {
	return approx(m[0], 0) && approx(m[1], complex(0, -1)) && approx(m[2], complex(0, 1)) && approx(m[3], 0)
}
func isPauliZ(m [4]complex128) bool {
	return approx(m[0], 1) && approx(m[1], 0) && approx(m[2], 0) && approx(m[3], -1)
}
func isHadamard(m [4]complex128) bool {
	h := complex(1/math.Sqrt2, 0)
	return approx(m[0], h) && approx(m[1], h) && approx(m[2], h) && approx(m[3], -h)
}
func isS(m [4]complex128) bool {
	return approx(m[0], 1) && approx(m[1], 0) && approx(m[2], 0) && approx(m[3], complex(0, 1))
}

func approx(a, b complex128) bool {
	d := a - b
	return real(d)*real(d)+imag(d)*imag(d) < 1e-12
}
