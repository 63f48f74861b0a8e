// Package denseengine is the reference qunit.Engine backend: a dense
// []complex128 state vector, one amplitude per full permutation of the
// engine's local qubits. Every mutating call is queued and executed on a
// single dedicated goroutine per engine, mirroring the qpool Q/Worker
// handoff this module grew out of (see worker.go's job channel and
// Worker.start) but scaled down to one worker per simulated device rather
// than a shared pool — Finish/IsFinished expose whether that worker has
// drained its queue.
package denseengine

import (
	"fmt"
	"math"
	"math/cmplx"
	"math/rand"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/quantronium/qunit"
)

// Engine is a dense state-vector simulator for n qubits, addressed
// little-endian: qubit q corresponds to bit q of the permutation index.
type Engine struct {
	mu      sync.RWMutex
	amps    []complex128
	n       int
	jobs    chan func()
	pending int64
}

// New returns an Engine initialized to the classical permutation perm with
// global phase 1.
func New(n int, perm uint64) *Engine {
	e := &Engine{
		n:    n,
		amps: make([]complex128, uint64(1)<<uint(n)),
		jobs: make(chan func(), 64),
	}
	if n > 0 {
		e.amps[perm] = 1
	} else {
		e.amps[0] = 1
	}
	go e.loop()
	return e
}

func (e *Engine) loop() {
	for job := range e.jobs {
		job()
		atomic.AddInt64(&e.pending, -1)
	}
}

// enqueue runs fn on the engine's worker goroutine, asynchronously with
// respect to the caller. Callers that need the result must Finish first.
func (e *Engine) enqueue(fn func()) {
	atomic.AddInt64(&e.pending, 1)
	e.jobs <- fn
}

// Finish blocks until every queued mutation has been applied.
func (e *Engine) Finish() {
	for atomic.LoadInt64(&e.pending) != 0 {
		runtime.Gosched()
	}
}

// IsFinished reports whether the worker's queue is currently drained. It is
// a point-in-time read: nothing stops a concurrent enqueue from making it
// stale immediately after it returns.
func (e *Engine) IsFinished() bool {
	return atomic.LoadInt64(&e.pending) == 0
}

func (e *Engine) QubitCount() int { return e.n }

func (e *Engine) dim() uint64 { return uint64(1) << uint(e.n) }

// --- structural ---

func (e *Engine) Compose(other qunit.Engine) (int, error) {
	o, ok := other.(*Engine)
	if !ok {
		return 0, fmt.Errorf("denseengine: Compose requires another *Engine, got %T", other)
	}
	e.Finish()
	o.Finish()
	offset := e.n
	newN := e.n + o.n
	newAmps := make([]complex128, uint64(1)<<uint(newN))
	for j := uint64(0); j < o.dim(); j++ {
		oa := o.amps[j]
		if oa == 0 {
			continue
		}
		base := j << uint(e.n)
		for i := uint64(0); i < e.dim(); i++ {
			newAmps[base|i] = e.amps[i] * oa
		}
	}
	e.amps = newAmps
	e.n = newN
	return offset, nil
}

// factorRange attempts to write the engine's state as a tensor product of
// the contiguous local range [start, start+length) and everything else,
// returning the range's amplitude vector and the remainder's amplitude
// vector. ok is false if no consistent factorization exists to within a
// small numerical tolerance.
func (e *Engine) factorRange(start, length int) (rangeAmps, remAmps []complex128, ok bool) {
	mask := uint64(1)<<uint(length) - 1
	remBits := e.n - length
	rangeAmps = make([]complex128, uint64(1)<<uint(length))
	remAmps = make([]complex128, uint64(1)<<uint(remBits))

	// Find any index with a nonzero amplitude; its range-bits slice, once
	// normalized, is a candidate for the range's own amplitude vector.
	pivot := -1
	for i := uint64(0); i < e.dim(); i++ {
		if e.amps[i] != 0 {
			pivot = int(extractBits(i, start, length))
			break
		}
	}
	if pivot < 0 {
		return nil, nil, false
	}

	// Build the remainder vector by holding the range bits fixed at pivot.
	var remNorm float64
	for i := uint64(0); i < e.dim(); i++ {
		if int(extractBits(i, start, length)) != pivot {
			continue
		}
		r := removeBits(i, start, length)
		remAmps[r] = e.amps[i]
		remNorm += real(e.amps[i])*real(e.amps[i]) + imag(e.amps[i])*imag(e.amps[i])
	}
	if remNorm < 1e-18 {
		return nil, nil, false
	}
	scale := complex(1/math.Sqrt(remNorm), 0)
	for i := range remAmps {
		remAmps[i] *= scale
	}

	// rangeAmps[v] is recovered from any remainder index with nonzero
	// amplitude, divided by that remainder amplitude.
	remPivot := -1
	for i, a := range remAmps {
		if a != 0 {
			remPivot = i
			break
		}
	}
	if remPivot < 0 {
		return nil, nil, false
	}
	for v := uint64(0); v <= mask; v++ {
		full := insertBits(uint64(remPivot), start, length, v)
		rangeAmps[v] = e.amps[full] / remAmps[remPivot]
	}

	// Verify the factorization reconstructs the original state.
	var errSum float64
	for i := uint64(0); i < e.dim(); i++ {
		v := extractBits(i, start, length)
		r := removeBits(i, start, length)
		want := rangeAmps[v] * remAmps[r]
		d := e.amps[i] - want
		errSum += real(d)*real(d) + imag(d)*imag(d)
	}
	if errSum > 1e-8 {
		return nil, nil, false
	}
	return rangeAmps, remAmps, true
}

func (e *Engine) Decompose(start int, out qunit.Engine) error {
	o, ok := out.(*Engine)
	if !ok {
		return fmt.Errorf("denseengine: Decompose requires a *Engine target, got %T", out)
	}
	e.Finish()
	rangeAmps, remAmps, factorOK := e.factorRange(start, o.n)
	if !factorOK {
		return fmt.Errorf("denseengine: range at %d is not separable", start)
	}
	o.amps = rangeAmps
	e.amps = remAmps
	e.n -= o.n
	return nil
}

func (e *Engine) TryDecompose(start int, out qunit.Engine, tol float64) (bool, error) {
	o, ok := out.(*Engine)
	if !ok {
		return false, fmt.Errorf("denseengine: TryDecompose requires a *Engine target, got %T", out)
	}
	e.Finish()
	rangeAmps, remAmps, factorOK := e.factorRange(start, o.n)
	if !factorOK {
		return false, nil
	}
	_ = tol // factorRange already checks reconstruction to a fixed internal tolerance
	o.amps = rangeAmps
	e.amps = remAmps
	e.n -= o.n
	return true, nil
}

func (e *Engine) Dispose(start, length int, perm *uint64) error {
	e.Finish()
	rangeAmps, remAmps, ok := e.factorRange(start, length)
	if ok {
		e.amps = remAmps
		e.n -= length
		return nil
	}
	// The range is entangled with the rest: discard it by sampling a
	// classical outcome for it (or using the caller-supplied one) and
	// projecting, mirroring a measurement the caller has chosen not to
	// observe the result of.
	var chosen uint64
	if perm != nil {
		chosen = *perm
	} else {
		weights := make([]float64, uint64(1)<<uint(length))
		for i := uint64(0); i < e.dim(); i++ {
			v := extractBits(i, start, length)
			a := e.amps[i]
			weights[v] += real(a)*real(a) + imag(a)*imag(a)
		}
		chosen = weightedSample(weights)
	}
	newAmps := make([]complex128, uint64(1)<<uint(e.n-length))
	var norm float64
	for i := uint64(0); i < e.dim(); i++ {
		if extractBits(i, start, length) != chosen {
			continue
		}
		r := removeBits(i, start, length)
		newAmps[r] = e.amps[i]
		norm += real(e.amps[i])*real(e.amps[i]) + imag(e.amps[i])*imag(e.amps[i])
	}
	if norm > 1e-18 {
		scale := complex(1/math.Sqrt(norm), 0)
		for i := range newAmps {
			newAmps[i] *= scale
		}
	}
	e.amps = newAmps
	e.n -= length
	return nil
}

func (e *Engine) Clone() qunit.Engine {
	e.Finish()
	cp := &Engine{n: e.n, amps: append([]complex128(nil), e.amps...), jobs: make(chan func(), 64)}
	go cp.loop()
	return cp
}

func (e *Engine) SumSqrDiff(other qunit.Engine) float64 {
	o, ok := other.(*Engine)
	if !ok {
		return 1
	}
	e.Finish()
	o.Finish()
	if e.n != o.n {
		return 1
	}
	var sum float64
	for i := range e.amps {
		d := e.amps[i] - o.amps[i]
		sum += real(d)*real(d) + imag(d)*imag(d)
	}
	return sum
}

// --- single- and two-qubit gates ---

func (e *Engine) Swap(a, b int) {
	e.enqueue(func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		ba, bb := uint64(1)<<uint(a), uint64(1)<<uint(b)
		for i := uint64(0); i < e.dim(); i++ {
			if i&ba != 0 || i&bb == 0 {
				continue
			}
			j := (i &^ bb) | ba
			e.amps[i], e.amps[j] = e.amps[j], e.amps[i]
		}
	})
}

func (e *Engine) Mtrx(m [4]complex128, q int) {
	e.enqueue(func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		e.applyMtrxLocked(m, q, nil, false)
	})
}

func (e *Engine) Phase(topLeft, bottomRight complex128, q int) {
	e.Mtrx([4]complex128{topLeft, 0, 0, bottomRight}, q)
}

func (e *Engine) Invert(topRight, bottomLeft complex128, q int) {
	e.Mtrx([4]complex128{0, topRight, bottomLeft, 0}, q)
}

func (e *Engine) MCMtrx(controls []int, m [4]complex128, target int) {
	e.enqueue(func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		e.applyMtrxLocked(m, target, controls, false)
	})
}

func (e *Engine) MCPhase(controls []int, topLeft, bottomRight complex128, target int) {
	e.MCMtrx(controls, [4]complex128{topLeft, 0, 0, bottomRight}, target)
}

func (e *Engine) MCInvert(controls []int, topRight, bottomLeft complex128, target int) {
	e.MCMtrx(controls, [4]complex128{0, topRight, bottomLeft, 0}, target)
}

func (e *Engine) MACMtrx(controls []int, m [4]complex128, target int) {
	e.enqueue(func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		e.applyMtrxLocked(m, target, controls, true)
	})
}

func (e *Engine) MACPhase(controls []int, topLeft, bottomRight complex128, target int) {
	e.MACMtrx(controls, [4]complex128{topLeft, 0, 0, bottomRight}, target)
}

func (e *Engine) MACInvert(controls []int, topRight, bottomLeft complex128, target int) {
	e.MACMtrx(controls, [4]complex128{0, topRight, bottomLeft, 0}, target)
}

// applyMtrxLocked applies m to target. If controls is non-empty, the gate
// only fires on indices where every control bit matches anti (false: all
// |1>, true: all |0>).
func (e *Engine) applyMtrxLocked(m [4]complex128, target int, controls []int, anti bool) {
	tb := uint64(1) << uint(target)
	cmask := uint64(0)
	for _, c := range controls {
		cmask |= uint64(1) << uint(c)
	}
	for i := uint64(0); i < e.dim(); i++ {
		if i&tb != 0 {
			continue
		}
		if !controlsMatch(i, cmask, anti) {
			continue
		}
		j := i | tb
		a0, a1 := e.amps[i], e.amps[j]
		e.amps[i] = m[0]*a0 + m[1]*a1
		e.amps[j] = m[2]*a0 + m[3]*a1
	}
}

func controlsMatch(i, cmask uint64, anti bool) bool {
	if cmask == 0 {
		return true
	}
	if anti {
		return i&cmask == 0
	}
	return i&cmask == cmask
}

func (e *Engine) UniformlyControlled(controls []int, mtrxs [][4]complex128, target int) {
	e.enqueue(func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		tb := uint64(1) << uint(target)
		for i := uint64(0); i < e.dim(); i++ {
			if i&tb != 0 {
				continue
			}
			var p uint64
			for k, c := range controls {
				if i&(uint64(1)<<uint(c)) != 0 {
					p |= 1 << uint(k)
				}
			}
			m := mtrxs[p]
			j := i | tb
			a0, a1 := e.amps[i], e.amps[j]
			e.amps[i] = m[0]*a0 + m[1]*a1
			e.amps[j] = m[2]*a0 + m[3]*a1
		}
	})
}

// twoQubitSubspace applies a 2x2 matrix to the {|01>,|10>} subspace of a and
// b, leaving |00> and |11> alone except for an optional phase on |11>.
func (e *Engine) twoQubitSubspace(a, b int, block [4]complex128, elevenPhase complex128) {
	e.enqueue(func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		ba, bb := uint64(1)<<uint(a), uint64(1)<<uint(b)
		for i := uint64(0); i < e.dim(); i++ {
			hasA, hasB := i&ba != 0, i&bb != 0
			if hasA && hasB {
				if elevenPhase != 0 {
					e.amps[i] *= elevenPhase
				}
				continue
			}
			if hasA || hasB {
				continue
			}
			i01 := i | bb
			i10 := i | ba
			a01, a10 := e.amps[i01], e.amps[i10]
			e.amps[i01] = block[0]*a01 + block[1]*a10
			e.amps[i10] = block[2]*a01 + block[3]*a10
		}
	})
}

func (e *Engine) ISwap(a, b int) {
	e.twoQubitSubspace(a, b, [4]complex128{0, 1i, 1i, 0}, 0)
}

func (e *Engine) IISwap(a, b int) {
	e.twoQubitSubspace(a, b, [4]complex128{0, -1i, -1i, 0}, 0)
}

func (e *Engine) SqrtSwap(a, b int) {
	h := complex(0.5, 0.5)
	e.twoQubitSubspace(a, b, [4]complex128{h, complex(0.5, -0.5), complex(0.5, -0.5), h}, 0)
}

func (e *Engine) ISqrtSwap(a, b int) {
	h := complex(0.5, -0.5)
	e.twoQubitSubspace(a, b, [4]complex128{h, complex(0.5, 0.5), complex(0.5, 0.5), h}, 0)
}

func (e *Engine) FSim(theta, phi float64, a, b int) {
	c := complex(math.Cos(theta), 0)
	s := complex(0, -math.Sin(theta))
	e.twoQubitSubspace(a, b, [4]complex128{c, s, s, c}, cmplx.Exp(complex(0, phi)))
}

// --- probability and measurement ---

func (e *Engine) Prob(q int) float64 {
	e.Finish()
	e.mu.RLock()
	defer e.mu.RUnlock()
	bit := uint64(1) << uint(q)
	var p float64
	for i, a := range e.amps {
		if uint64(i)&bit != 0 {
			p += real(a)*real(a) + imag(a)*imag(a)
		}
	}
	return p
}

func (e *Engine) ProbAll(perm uint64) float64 {
	e.Finish()
	e.mu.RLock()
	defer e.mu.RUnlock()
	a := e.amps[perm]
	return real(a)*real(a) + imag(a)*imag(a)
}

func (e *Engine) ProbParity(mask uint64) float64 {
	e.Finish()
	e.mu.RLock()
	defer e.mu.RUnlock()
	var p float64
	for i, a := range e.amps {
		if parity(uint64(i)&mask) == 1 {
			p += real(a)*real(a) + imag(a)*imag(a)
		}
	}
	return p
}

func (e *Engine) ForceMParity(mask uint64, result, doForce bool) bool {
	e.Finish()
	p1 := e.ProbParity(mask)
	var want bool
	if doForce {
		want = result
	} else {
		want = rand.Float64() < p1
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	var norm float64
	for i := range e.amps {
		if (parity(uint64(i)&mask) == 1) != want {
			e.amps[i] = 0
			continue
		}
		a := e.amps[i]
		norm += real(a)*real(a) + imag(a)*imag(a)
	}
	if norm > 1e-18 {
		scale := complex(1/math.Sqrt(norm), 0)
		for i := range e.amps {
			e.amps[i] *= scale
		}
	}
	return want
}

func (e *Engine) MultiShotMeasureMask(mask []int, shots int) map[uint64]int {
	e.Finish()
	e.mu.RLock()
	weights := map[uint64]float64{}
	for i, a := range e.amps {
		v := uint64(0)
		for k, q := range mask {
			if uint64(i)&(uint64(1)<<uint(q)) != 0 {
				v |= 1 << uint(k)
			}
		}
		weights[v] += real(a)*real(a) + imag(a)*imag(a)
	}
	e.mu.RUnlock()

	keys := make([]uint64, 0, len(weights))
	vals := make([]float64, 0, len(weights))
	for k, w := range weights {
		keys = append(keys, k)
		vals = append(vals, w)
	}
	out := make(map[uint64]int, len(weights))
	for s := 0; s < shots; s++ {
		idx := weightedSample(vals)
		out[keys[idx]]++
	}
	return out
}

func (e *Engine) ExpectationBitsAll(bits []int) float64 {
	e.Finish()
	e.mu.RLock()
	defer e.mu.RUnlock()
	var exp float64
	for i, a := range e.amps {
		p := real(a)*real(a) + imag(a)*imag(a)
		if p == 0 {
			continue
		}
		var v float64
		for k, q := range bits {
			if uint64(i)&(uint64(1)<<uint(q)) != 0 {
				v += math.Pow(2, float64(k))
			}
		}
		exp += p * v
	}
	return exp
}

func (e *Engine) ForceM(q int, res, doForce, doApply bool) bool {
	e.Finish()
	p1 := e.Prob(q)
	var result bool
	switch {
	case doForce:
		result = res
	case p1 >= 1:
		result = true
	case p1 <= 0:
		result = false
	default:
		result = rand.Float64() < p1
	}
	if !doApply {
		return result
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	bit := uint64(1) << uint(q)
	var norm float64
	for i := range e.amps {
		has := uint64(i)&bit != 0
		if has != result {
			e.amps[i] = 0
			continue
		}
		a := e.amps[i]
		norm += real(a)*real(a) + imag(a)*imag(a)
	}
	if norm > 1e-18 {
		scale := complex(1/math.Sqrt(norm), 0)
		for i := range e.amps {
			e.amps[i] *= scale
		}
	}
	return result
}

// --- direct state access ---

func (e *Engine) SetPermutation(perm uint64, phase complex128) {
	e.enqueue(func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		for i := range e.amps {
			e.amps[i] = 0
		}
		e.amps[perm] = phase
	})
}

func (e *Engine) SetQuantumState(amps []complex128) {
	e.enqueue(func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		copy(e.amps, amps)
	})
}

func (e *Engine) GetQuantumState(out []complex128) {
	e.Finish()
	e.mu.RLock()
	defer e.mu.RUnlock()
	copy(out, e.amps)
}

func (e *Engine) GetAmplitude(perm uint64) complex128 {
	e.Finish()
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.amps[perm]
}

func (e *Engine) SetAmplitude(perm uint64, amp complex128) {
	e.enqueue(func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		e.amps[perm] = amp
	})
}

func (e *Engine) UpdateRunningNorm() {
	// The dense backend always reads norm directly off the live vector; there
	// is no lazily-tracked running total to refresh.
	e.Finish()
}

func (e *Engine) NormalizeState() {
	e.enqueue(func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		var norm float64
		for _, a := range e.amps {
			norm += real(a)*real(a) + imag(a)*imag(a)
		}
		if norm < 1e-18 {
			return
		}
		scale := complex(1/math.Sqrt(norm), 0)
		for i := range e.amps {
			e.amps[i] *= scale
		}
	})
}
