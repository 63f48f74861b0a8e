package qunit

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/theapemachine/errnie"
)

// EngineFactory builds a fresh Engine of the given qubit count, initialized
// to the computational-basis permutation perm. The entangler and separator
// call this whenever they need a new joint subsystem.
type EngineFactory func(qubitCount int, perm uint64) Engine

// Register is the core of this module: a separability-tracking layer over
// one or more Engine instances. It owns an ordered shard
// map and dispatches every public gate, measurement, and arithmetic
// operation through the gate front-end, basis manager, entangler, and
// separator defined in the rest of this package.
//
// A single struct gathers configuration, metrics, and the mutable core
// state, constructed once via a New-style function and used for the
// lifetime of a simulation.
type Register struct {
	mu sync.Mutex

	shards *shardMap

	config  *Config
	metrics *Metrics

	newEngine EngineFactory

	rng *rand.Rand

	// freezeBasis2Qb is a re-entrancy guard during buffer application
	//: set while RevertBasis2Qb is draining a
	// buffer so that a nested flush triggered by the same call does not
	// recurse into TrySeparate.
	freezeBasis2Qb bool
}

// NewRegister allocates n qubits in the ground state |0...0>, using
// newEngine to construct joint subsystems on demand. cfg may be nil, in
// which case NewConfig() defaults are used.
func NewRegister(n int, newEngine EngineFactory, cfg *Config) *Register {
	if cfg == nil {
		cfg = NewConfig()
	}

	r := &Register{
		shards:    newShardMap(n),
		config:    cfg,
		metrics:   newMetrics(),
		newEngine: newEngine,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	errnie.Info("NewRegister - qubits %d, separabilityThreshold %v", n, cfg.SeparabilityThreshold)

	return r
}

// NewRegisterWithSeed is identical to NewRegister but seeds the internal
// random generator deterministically. That generator draws the outcomes the
// register samples itself (measuring a detached qubit); outcomes sampled
// inside an engine (measuring an attached qubit, ForceMParity,
// MultiShotMeasureMask, Dispose without perm) come from that engine's own
// random source and are not governed by seed.
func NewRegisterWithSeed(n int, newEngine EngineFactory, cfg *Config, seed int64) *Register {
	r := NewRegister(n, newEngine, cfg)
	r.rng = rand.New(rand.NewSource(seed))
	return r
}

// QubitCount returns how many logical qubits the register currently holds.
func (r *Register) QubitCount() int {
	return r.shards.len()
}

// Config returns the register's tuning parameters, mutable in place to
// change separability threshold, reactive-separate policy, etc. at runtime.
func (r *Register) Config() *Config {
	return r.config
}

// Metrics returns a point-in-time snapshot of the register's counters.
func (r *Register) Metrics() Metrics {
	return r.metrics.Snapshot()
}

// checkQubit returns ErrQubitOutOfRange, wrapped with the offending index,
// if q does not name a current logical qubit.
func (r *Register) checkQubit(q int) error {
	if q < 0 || q >= r.shards.len() {
		return fmt.Errorf("qubit %d: %w", q, ErrQubitOutOfRange)
	}
	return nil
}

// shard returns the shard at logical position q without bounds checking;
// callers must have validated q via checkQubit or know it is in range by
// construction (e.g. iterating 0..QubitCount()).
func (r *Register) shard(q int) *Shard {
	return r.shards.at(q)
}

// rand01 draws a uniform [0,1) float from the register's own generator, the
// single point through which every random draw in the core passes.
func (r *Register) rand01() float64 {
	return r.rng.Float64()
}

// applyAnalyticPhase applies diag(topLeft, bottomRight) directly to shard,
// bypassing the gate front-end's control handling, in whichever basis it is
// currently labeled: the matrix is re-expressed via transformPhase before
// it is forwarded to the engine when that basis is not PauliZ. Used by
// Phase and controlledPhase (gates.go), by flushSingleRecordImpl (basis.go)
// and by the phase-buffer optimizer (phasebuffer.go) once a gate is known
// to be unconditional.
func (r *Register) applyAnalyticPhase(shard *Shard, topLeft, bottomRight complex128) {
	if shard.unit != nil {
		if shard.basis == PauliZ {
			shard.unit.Phase(topLeft, bottomRight, shard.mapped)
		} else {
			shard.unit.Mtrx(transformPhase(topLeft, bottomRight), shard.mapped)
		}
	}
	shard.amp0 *= topLeft
	shard.amp1 *= bottomRight
}

// applyAnalyticInvert is applyAnalyticPhase's anti-diagonal counterpart: it
// applies [[0, topRight], [bottomLeft, 0]] to shard, re-expressed via
// transformXInvert/transformYInvert off PauliZ.
func (r *Register) applyAnalyticInvert(shard *Shard, topRight, bottomLeft complex128) {
	if shard.unit != nil {
		switch shard.basis {
		case PauliZ:
			shard.unit.Invert(topRight, bottomLeft, shard.mapped)
		case PauliX:
			shard.unit.Mtrx(transformXInvert(topRight, bottomLeft), shard.mapped)
		default:
			shard.unit.Mtrx(transformYInvert(topRight, bottomLeft), shard.mapped)
		}
	}
	shard.amp0, shard.amp1 = topRight*shard.amp1, bottomLeft*shard.amp0
}

// maybeReactiveSeparate runs the separator on q right after a gate touches
// it, when Config.ReactiveSeparate is enabled: many gates leave a qubit product with the rest of the
// register immediately, and checking eagerly avoids carrying it inside a
// large joint engine until something finally asks.
func (r *Register) maybeReactiveSeparate(q int) {
	if r.config.ReactiveSeparate {
		r.trySeparate1(q)
	}
}
