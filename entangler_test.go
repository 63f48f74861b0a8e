package qunit

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

type stubEngine struct {
	n      int
	amp    [2]complex128
	merged []*stubEngine
	swaps  [][2]int
}

func newStubEngine(n int, perm uint64) Engine {
	return &stubEngine{n: n, amp: [2]complex128{oneCmplx, zeroCmplx}}
}

func (s *stubEngine) Mtrx([4]complex128, int)                                  {}
func (s *stubEngine) Phase(complex128, complex128, int)                        {}
func (s *stubEngine) Invert(complex128, complex128, int)                       {}
func (s *stubEngine) MCMtrx([]int, [4]complex128, int)                         {}
func (s *stubEngine) MCPhase([]int, complex128, complex128, int)               {}
func (s *stubEngine) MCInvert([]int, complex128, complex128, int)              {}
func (s *stubEngine) MACMtrx([]int, [4]complex128, int)                        {}
func (s *stubEngine) MACPhase([]int, complex128, complex128, int)              {}
func (s *stubEngine) MACInvert([]int, complex128, complex128, int)             {}
func (s *stubEngine) UniformlyControlled([]int, [][4]complex128, int)          {}
func (s *stubEngine) Swap(a, b int)                                            { s.swaps = append(s.swaps, [2]int{a, b}) }
func (s *stubEngine) ISwap(int, int)                                           {}
func (s *stubEngine) IISwap(int, int)                                          {}
func (s *stubEngine) SqrtSwap(int, int)                                        {}
func (s *stubEngine) ISqrtSwap(int, int)                                       {}
func (s *stubEngine) FSim(float64, float64, int, int)                          {}
func (s *stubEngine) Prob(int) float64                                        { return 0 }
func (s *stubEngine) ProbAll(uint64) float64                                  { return 0 }
func (s *stubEngine) ProbParity(uint64) float64                               { return 0 }
func (s *stubEngine) ForceMParity(uint64, bool, bool) bool                    { return false }
func (s *stubEngine) MultiShotMeasureMask([]int, int) map[uint64]int          { return nil }
func (s *stubEngine) ExpectationBitsAll([]int) float64                       { return 0 }
func (s *stubEngine) ForceM(int, bool, bool, bool) bool                      { return false }
func (s *stubEngine) SetPermutation(uint64, complex128)                      {}
func (s *stubEngine) SetQuantumState([]complex128)                           {}
func (s *stubEngine) GetQuantumState([]complex128)                           {}
func (s *stubEngine) SetAmplitude(i uint64, amp complex128)                  { s.amp[i] = amp }
func (s *stubEngine) GetAmplitude(i uint64) complex128                       { return s.amp[i] }
func (s *stubEngine) UpdateRunningNorm()                                     {}
func (s *stubEngine) NormalizeState()                                        {}
func (s *stubEngine) Finish()                                                {}
func (s *stubEngine) IsFinished() bool                                       { return true }
func (s *stubEngine) Clone() Engine                                          { c := *s; return &c }
func (s *stubEngine) SumSqrDiff(Engine) float64                              { return 0 }
func (s *stubEngine) QubitCount() int                                        { return s.n }
func (s *stubEngine) Compose(other Engine) (int, error) {
	offset := s.n
	o := other.(*stubEngine)
	s.merged = append(s.merged, o)
	s.n += o.n
	return offset, nil
}
func (s *stubEngine) Decompose(int, Engine) error                { return nil }
func (s *stubEngine) TryDecompose(int, Engine, float64) (bool, error) { return false, nil }
func (s *stubEngine) Dispose(int, int, *uint64) error             { return nil }
func (s *stubEngine) INC(uint64, int, int)                                    {}
func (s *stubEngine) CINC(uint64, int, int, []int)                            {}
func (s *stubEngine) INCC(uint64, int, int, int)                              {}
func (s *stubEngine) MUL(uint64, int, int, int)                               {}
func (s *stubEngine) DIV(uint64, int, int, int)                               {}
func (s *stubEngine) MULModNOut(uint64, uint64, int, int, int)                {}
func (s *stubEngine) IMULModNOut(uint64, uint64, int, int, int)               {}
func (s *stubEngine) POWModNOut(uint64, uint64, int, int, int)                {}
func (s *stubEngine) CMUL(uint64, int, int, int, []int)                       {}
func (s *stubEngine) CDIV(uint64, int, int, int, []int)                       {}
func (s *stubEngine) CMULModNOut(uint64, uint64, int, int, int, []int)        {}
func (s *stubEngine) CIMULModNOut(uint64, uint64, int, int, int, []int)       {}
func (s *stubEngine) CPOWModNOut(uint64, uint64, int, int, int, []int)        {}
func (s *stubEngine) IndexedLDA(int, int, int, int, []byte) uint64           { return 0 }
func (s *stubEngine) IndexedADC(int, int, int, int, int, []byte) uint64      { return 0 }
func (s *stubEngine) IndexedSBC(int, int, int, int, int, []byte) uint64      { return 0 }
func (s *stubEngine) Hash(int, int, []byte)                                   {}
func (s *stubEngine) PhaseFlipIfLess(uint64, int, int)                        {}
func (s *stubEngine) CPhaseFlipIfLess(uint64, int, int, int)                  {}

func newStubRegister(n int) *Register {
	return NewRegister(n, newStubEngine, nil)
}

func TestAttachShardMaterializesAOneQubitEngine(t *testing.T) {
	Convey("Given a freshly allocated detached shard", t, func() {
		r := newStubRegister(1)

		Convey("attachShard gives it an engine at local index 0", func() {
			r.attachShard(0)
			shard := r.shard(0)
			So(shard.isDetached(), ShouldBeFalse)
			So(shard.mapped, ShouldEqual, 0)
		})
	})
}

func TestEntangleInCurrentBasisMergesDistinctEngines(t *testing.T) {
	Convey("Given two separately attached shards", t, func() {
		r := newStubRegister(2)
		r.attachShard(0)
		r.attachShard(1)
		firstUnit := r.shard(0).unit

		Convey("Entangling them composes the second engine onto the first", func() {
			unit := r.entangleInCurrentBasis([]int{0, 1})
			So(unit, ShouldEqual, firstUnit)
			So(r.shard(0).unit, ShouldEqual, unit)
			So(r.shard(1).unit, ShouldEqual, unit)
			So(r.shard(1).mapped, ShouldEqual, 1)
		})
	})
}

func TestEntangleInCurrentBasisIsANoOpWhenAlreadyShared(t *testing.T) {
	Convey("Given two shards already sharing an engine", t, func() {
		r := newStubRegister(2)
		r.entangleInCurrentBasis([]int{0, 1})
		before := r.metrics.Snapshot().EntangleCount

		Convey("Entangling them again records another attempt without crashing", func() {
			r.entangleInCurrentBasis([]int{0, 1})
			after := r.metrics.Snapshot().EntangleCount
			So(after, ShouldEqual, before+1)
		})
	})
}

func TestOrderContiguousSwapsOutOfOrderShards(t *testing.T) {
	Convey("Given three shards sharing an engine in reverse mapped order", t, func() {
		r := newStubRegister(3)
		unit := r.entangleInCurrentBasis([]int{0, 1, 2})
		r.shard(0).mapped, r.shard(2).mapped = r.shard(2).mapped, r.shard(0).mapped

		Convey("orderContiguous restores mapped order to match logical order", func() {
			r.orderContiguous(unit)
			So(r.shard(0).mapped, ShouldEqual, 0)
			So(r.shard(1).mapped, ShouldEqual, 1)
			So(r.shard(2).mapped, ShouldEqual, 2)
		})
	})
}

func TestOrderContiguousIgnoresANilEngine(t *testing.T) {
	Convey("Given a register with no attached shards", t, func() {
		r := newStubRegister(1)

		Convey("orderContiguous(nil) does not panic", func() {
			So(func() { r.orderContiguous(nil) }, ShouldNotPanic)
		})
	})
}
