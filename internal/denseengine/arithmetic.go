package denseengine

import (
	"math/big"
	"math/bits"
)

// permuteLocked rebuilds amps under a bijection on the full local
// permutation index. f must be a bijection on [0, dim) for the result to
// remain a valid unit vector.
func (e *Engine) permuteLocked(f func(uint64) uint64) {
	newAmps := make([]complex128, len(e.amps))
	for i := range e.amps {
		newAmps[f(uint64(i))] = e.amps[i]
	}
	e.amps = newAmps
}

func maskOf(length int) uint64 {
	if length >= 64 {
		return ^uint64(0)
	}
	return uint64(1)<<uint(length) - 1
}

func (e *Engine) INC(toMod uint64, start, length int) {
	mask := maskOf(length)
	e.enqueue(func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		e.permuteLocked(func(i uint64) uint64 {
			v := extractBits(i, start, length)
			return replaceBits(i, start, length, (v+toMod)&mask)
		})
	})
}

func (e *Engine) CINC(toMod uint64, start, length int, controls []int) {
	mask := maskOf(length)
	cmask := cmaskOf(controls)
	e.enqueue(func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		e.permuteLocked(func(i uint64) uint64 {
			if !controlsMatch(i, cmask, false) {
				return i
			}
			v := extractBits(i, start, length)
			return replaceBits(i, start, length, (v+toMod)&mask)
		})
	})
}

func cmaskOf(controls []int) uint64 {
	var cmask uint64
	for _, c := range controls {
		cmask |= uint64(1) << uint(c)
	}
	return cmask
}

// INCC is INC against a (length+1)-bit field formed by the value register
// and a single external carry qubit: toAdd is folded in together with the
// carry qubit's current value, and the single overflow bit is written back
// to the carry qubit.
func (e *Engine) INCC(toAdd uint64, start, length, carry int) {
	mask := maskOf(length)
	e.enqueue(func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		e.permuteLocked(func(i uint64) uint64 {
			v := extractBits(i, start, length)
			c := extractBits(i, carry, 1)
			sum := v + (toAdd & mask) + c
			i2 := replaceBits(i, start, length, sum&mask)
			return replaceBits(i2, carry, 1, (sum>>uint(length))&1)
		})
	})
}

func (e *Engine) MUL(toMul uint64, inOutStart, carryStart, length int) {
	mask := maskOf(length)
	e.enqueue(func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		e.permuteLocked(func(i uint64) uint64 {
			v := extractBits(i, inOutStart, length)
			_, lo := bits.Mul64(v, toMul)
			i2 := replaceBits(i, inOutStart, length, lo&mask)
			return replaceBits(i2, carryStart, length, (lo>>uint(length))&mask)
		})
	})
}

func (e *Engine) DIV(toDiv uint64, inOutStart, carryStart, length int) {
	mask := maskOf(length)
	e.enqueue(func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		e.permuteLocked(func(i uint64) uint64 {
			if toDiv == 0 {
				return i
			}
			lo := extractBits(i, inOutStart, length)
			hi := extractBits(i, carryStart, length)
			combined := hi<<uint(length) | lo
			v := (combined / toDiv) & mask
			i2 := replaceBits(i, inOutStart, length, v)
			return replaceBits(i2, carryStart, length, 0)
		})
	})
}

func (e *Engine) MULModNOut(toMod, modN uint64, inStart, outStart, length int) {
	e.enqueue(func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		e.permuteLocked(func(i uint64) uint64 {
			v := extractBits(i, inStart, length)
			r := mulMod(v, toMod, modN)
			return replaceBits(i, outStart, length, r)
		})
	})
}

func (e *Engine) IMULModNOut(toMod, modN uint64, inStart, outStart, length int) {
	inv := modInverse(toMod, modN)
	e.enqueue(func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		e.permuteLocked(func(i uint64) uint64 {
			v := extractBits(i, inStart, length)
			r := mulMod(v, inv, modN)
			return replaceBits(i, outStart, length, r)
		})
	})
}

func (e *Engine) POWModNOut(toMod, modN uint64, inStart, outStart, length int) {
	e.enqueue(func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		e.permuteLocked(func(i uint64) uint64 {
			v := extractBits(i, inStart, length)
			r := powMod(toMod, v, modN)
			return replaceBits(i, outStart, length, r)
		})
	})
}

func mulMod(a, b, modN uint64) uint64 {
	if modN == 0 {
		return 0
	}
	ba, bb, bm := new(big.Int).SetUint64(a), new(big.Int).SetUint64(b), new(big.Int).SetUint64(modN)
	return ba.Mul(ba, bb).Mod(ba, bm).Uint64()
}

func modInverse(a, modN uint64) uint64 {
	if modN == 0 {
		return 0
	}
	ba, bm := new(big.Int).SetUint64(a), new(big.Int).SetUint64(modN)
	inv := new(big.Int).ModInverse(ba, bm)
	if inv == nil {
		return 0
	}
	return inv.Uint64()
}

func powMod(base, exp, modN uint64) uint64 {
	if modN == 0 {
		return 0
	}
	bb, be, bm := new(big.Int).SetUint64(base), new(big.Int).SetUint64(exp), new(big.Int).SetUint64(modN)
	return new(big.Int).Exp(bb, be, bm).Uint64()
}

func (e *Engine) controlledRangeOp(controls []int, start, carryStart, length int, f func(uint64) uint64) func(uint64) uint64 {
	cmask := cmaskOf(controls)
	return func(i uint64) uint64 {
		if !controlsMatch(i, cmask, false) {
			return i
		}
		return f(i)
	}
}

func (e *Engine) CMUL(toMod uint64, start, carryStart, length int, controls []int) {
	mask := maskOf(length)
	e.enqueue(func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		e.permuteLocked(e.controlledRangeOp(controls, start, carryStart, length, func(i uint64) uint64 {
			v := extractBits(i, start, length)
			_, lo := bits.Mul64(v, toMod)
			i2 := replaceBits(i, start, length, lo&mask)
			return replaceBits(i2, carryStart, length, (lo>>uint(length))&mask)
		}))
	})
}

func (e *Engine) CDIV(toMod uint64, start, carryStart, length int, controls []int) {
	mask := maskOf(length)
	e.enqueue(func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		e.permuteLocked(e.controlledRangeOp(controls, start, carryStart, length, func(i uint64) uint64 {
			if toMod == 0 {
				return i
			}
			lo := extractBits(i, start, length)
			hi := extractBits(i, carryStart, length)
			combined := hi<<uint(length) | lo
			v := (combined / toMod) & mask
			i2 := replaceBits(i, start, length, v)
			return replaceBits(i2, carryStart, length, 0)
		}))
	})
}

func (e *Engine) CMULModNOut(toMod, modN uint64, inStart, outStart, length int, controls []int) {
	e.enqueue(func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		e.permuteLocked(e.controlledRangeOp(controls, inStart, outStart, length, func(i uint64) uint64 {
			v := extractBits(i, inStart, length)
			return replaceBits(i, outStart, length, mulMod(v, toMod, modN))
		}))
	})
}

func (e *Engine) CIMULModNOut(toMod, modN uint64, inStart, outStart, length int, controls []int) {
	inv := modInverse(toMod, modN)
	e.enqueue(func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		e.permuteLocked(e.controlledRangeOp(controls, inStart, outStart, length, func(i uint64) uint64 {
			v := extractBits(i, inStart, length)
			return replaceBits(i, outStart, length, mulMod(v, inv, modN))
		}))
	})
}

func (e *Engine) CPOWModNOut(toMod, modN uint64, inStart, outStart, length int, controls []int) {
	e.enqueue(func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		e.permuteLocked(e.controlledRangeOp(controls, inStart, outStart, length, func(i uint64) uint64 {
			v := extractBits(i, inStart, length)
			return replaceBits(i, outStart, length, powMod(toMod, v, modN))
		}))
	})
}

// IndexedLDA XORs values[index] into the value register for every branch of
// the superposition, and returns the classical value loaded along the
// branch the pre-call state was concentrated on (meaningful when the index
// register held a definite permutation, which is how the register layer
// always calls this).
func (e *Engine) IndexedLDA(indexStart, indexLength, valueStart, valueLength int, values []byte) uint64 {
	e.Finish()
	e.mu.RLock()
	repIndex := representativeIndex(e.amps)
	e.mu.RUnlock()
	idx := extractBits(repIndex, indexStart, indexLength)
	mask := maskOf(valueLength)
	loaded := uint64(0)
	if int(idx) < len(values) {
		loaded = uint64(values[idx]) & mask
	}
	e.enqueue(func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		e.permuteLocked(func(i uint64) uint64 {
			idx := extractBits(i, indexStart, indexLength)
			var v byte
			if int(idx) < len(values) {
				v = values[idx]
			}
			cur := extractBits(i, valueStart, valueLength)
			return replaceBits(i, valueStart, valueLength, cur^(uint64(v)&mask))
		})
	})
	return loaded
}

func (e *Engine) indexedCarryOp(indexStart, indexLength, valueStart, valueLength, carry int, values []byte, sub bool) uint64 {
	e.Finish()
	e.mu.RLock()
	repIndex := representativeIndex(e.amps)
	e.mu.RUnlock()
	idx := extractBits(repIndex, indexStart, indexLength)
	loaded := uint64(0)
	if int(idx) < len(values) {
		loaded = uint64(values[idx])
	}
	mask := maskOf(valueLength)
	e.enqueue(func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		e.permuteLocked(func(i uint64) uint64 {
			idx := extractBits(i, indexStart, indexLength)
			var add uint64
			if int(idx) < len(values) {
				add = uint64(values[idx])
			}
			if sub {
				add = (mask + 1 - add&mask) & mask
			}
			v := extractBits(i, valueStart, valueLength)
			c := extractBits(i, carry, 1)
			sum := v + add + c
			i2 := replaceBits(i, valueStart, valueLength, sum&mask)
			return replaceBits(i2, carry, 1, (sum>>uint(valueLength))&1)
		})
	})
	return loaded
}

func (e *Engine) IndexedADC(indexStart, indexLength, valueStart, valueLength, carry int, values []byte) uint64 {
	return e.indexedCarryOp(indexStart, indexLength, valueStart, valueLength, carry, values, false)
}

func (e *Engine) IndexedSBC(indexStart, indexLength, valueStart, valueLength, carry int, values []byte) uint64 {
	return e.indexedCarryOp(indexStart, indexLength, valueStart, valueLength, carry, values, true)
}

// representativeIndex returns the first basis index with a nonzero
// amplitude, used where a classical value must be reported back to the
// caller for an operation that is otherwise a pure permutation.
func representativeIndex(amps []complex128) uint64 {
	for i, a := range amps {
		if a != 0 {
			return uint64(i)
		}
	}
	return 0
}

// Hash applies values as a lookup table over the length-qubit register at
// start, mapping each classical value v to values[v]. It is a reversible
// permutation only when values is itself a permutation of [0, 2^length);
// the register layer only ever builds such tables.
func (e *Engine) Hash(start, length int, values []byte) {
	e.enqueue(func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		e.permuteLocked(func(i uint64) uint64 {
			v := extractBits(i, start, length)
			if int(v) >= len(values) {
				return i
			}
			return replaceBits(i, start, length, uint64(values[v]))
		})
	})
}

func (e *Engine) PhaseFlipIfLess(greaterPerm uint64, start, length int) {
	e.enqueue(func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		for i := range e.amps {
			if extractBits(uint64(i), start, length) < greaterPerm {
				e.amps[i] = -e.amps[i]
			}
		}
	})
}

func (e *Engine) CPhaseFlipIfLess(greaterPerm uint64, start, length, flag int) {
	e.enqueue(func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		flagBit := uint64(1) << uint(flag)
		for i := range e.amps {
			if uint64(i)&flagBit == 0 {
				continue
			}
			if extractBits(uint64(i), start, length) < greaterPerm {
				e.amps[i] = -e.amps[i]
			}
		}
	})
}
