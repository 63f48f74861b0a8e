package qunit_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/quantronium/qunit"
)

func TestReactiveSeparateRecoversProductStates(t *testing.T) {
	Convey("Given a Bell pair that is then disentangled by measurement", t, func() {
		reg := newDenseRegister(2)
		reg.H(0)
		reg.MCInvert([]int{0}, complex(1, 0), complex(1, 0), 1)

		Convey("Measuring one qubit leaves the separator able to detach the other", func() {
			reg.M(0)
			before := reg.Metrics().SeparateAttemptCount

			reg.Z(1)

			after := reg.Metrics()
			So(after.SeparateAttemptCount, ShouldBeGreaterThanOrEqualTo, before)
		})
	})
}

func TestReactiveSeparateDisabled(t *testing.T) {
	Convey("Given a register with reactive separation turned off", t, func() {
		cfg := qunit.NewConfig()
		cfg.ReactiveSeparate = false
		factory := func(qubitCount int, perm uint64) qunit.Engine {
			return nil
		}
		_ = factory // the engine factory is never invoked when no gate entangles anything
		reg := qunit.NewRegisterWithSeed(1, func(n int, perm uint64) qunit.Engine {
			panic("unexpected engine construction")
		}, cfg, 7)

		Convey("A single-qubit gate never needs to construct an engine at all", func() {
			reg.X(0)
			So(reg.Prob(0), ShouldAlmostEqual, 1, 1e-9)
		})
	})
}

func TestSeparabilityThresholdIsConfigurable(t *testing.T) {
	Convey("Given a register with a widened separability threshold", t, func() {
		reg := newDenseRegister(2)
		reg.Config().SeparabilityThreshold = 0.5

		Convey("The configured value is reflected back exactly", func() {
			So(reg.Config().SeparabilityThreshold, ShouldEqual, 0.5)
		})
	})
}
