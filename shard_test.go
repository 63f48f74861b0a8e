package qunit

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestNewGroundShard(t *testing.T) {
	Convey("Given a freshly allocated ground shard", t, func() {
		s := newGroundShard()

		Convey("It is detached, basis Z, and cached zero", func() {
			So(s.isDetached(), ShouldBeTrue)
			So(s.qubitCount(), ShouldEqual, 1)
			So(s.basis, ShouldEqual, PauliZ)
			So(s.cachedZero(), ShouldBeTrue)
			So(s.cachedOne(), ShouldBeFalse)
		})

		Convey("It carries no queued phase or dirty cache", func() {
			So(s.hasQueuedPhase(), ShouldBeFalse)
			So(s.isDirty(), ShouldBeFalse)
		})
	})
}

func TestNewShardFromBit(t *testing.T) {
	Convey("Given a shard constructed from a definite classical bit", t, func() {
		Convey("bitState false yields cachedZero", func() {
			s := newShardFromBit(false)
			So(s.cachedZero(), ShouldBeTrue)
		})

		Convey("bitState true yields cachedOne", func() {
			s := newShardFromBit(true)
			So(s.cachedOne(), ShouldBeTrue)
		})
	})
}

func TestShardDirtyTracking(t *testing.T) {
	Convey("Given a shard marked dirty", t, func() {
		s := newGroundShard()
		s.makeDirty()

		Convey("isDirty is true and cachedZero no longer trusts the cache", func() {
			So(s.isDirty(), ShouldBeTrue)
			So(s.cachedZero(), ShouldBeFalse)
		})

		Convey("unsafeCachedZero still trusts probability alone", func() {
			s2 := newGroundShard()
			s2.phaseDirty = true
			So(s2.unsafeCachedZero(), ShouldBeTrue)
		})
	})
}

func TestSameUnit(t *testing.T) {
	Convey("Given two detached shards", t, func() {
		a, b := newGroundShard(), newGroundShard()

		Convey("sameUnit is false since neither is attached", func() {
			So(sameUnit(a, b), ShouldBeFalse)
		})
	})
}

func TestShardBufferBookkeeping(t *testing.T) {
	Convey("Given two shards linked by a deferred-phase record", t, func() {
		control, target := newGroundShard(), newGroundShard()
		rec := &phaseRecord{}
		control.targetOf[target] = rec
		target.controls[control] = rec

		Convey("dropPartnerRecords on one side removes only that side's entry", func() {
			control.dropPartnerRecords(target)
			_, stillThere := control.targetOf[target]
			So(stillThere, ShouldBeFalse)
		})

		Convey("clearAllBuffers removes the link from both shards", func() {
			control.clearAllBuffers()
			So(len(control.targetOf), ShouldEqual, 0)
			_, stillThere := target.controls[control]
			So(stillThere, ShouldBeFalse)
		})
	})
}

func TestPauliBasisString(t *testing.T) {
	Convey("Given each PauliBasis value", t, func() {
		Convey("String renders X, Y, and Z respectively", func() {
			So(PauliX.String(), ShouldEqual, "X")
			So(PauliY.String(), ShouldEqual, "Y")
			So(PauliZ.String(), ShouldEqual, "Z")
		})
	})
}
