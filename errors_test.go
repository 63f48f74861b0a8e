package qunit

import (
	"errors"
	"fmt"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestSentinelErrorsAreDistinct(t *testing.T) {
	Convey("Given the package's sentinel errors", t, func() {
		Convey("None of them compare equal to one another", func() {
			So(ErrUnsupportedOperation, ShouldNotEqual, ErrOutOfMemory)
			So(ErrOutOfMemory, ShouldNotEqual, ErrQubitOutOfRange)
			So(ErrQubitOutOfRange, ShouldNotEqual, ErrUnsupportedOperation)
		})
	})
}

func TestSentinelErrorsSurviveWrapping(t *testing.T) {
	Convey("Given ErrQubitOutOfRange wrapped at a call site", t, func() {
		wrapped := fmt.Errorf("qubit 7: %w", ErrQubitOutOfRange)

		Convey("errors.Is still recognizes it", func() {
			So(errors.Is(wrapped, ErrQubitOutOfRange), ShouldBeTrue)
			So(errors.Is(wrapped, ErrOutOfMemory), ShouldBeFalse)
		})
	})
}

func TestCheckQubitReturnsWrappedSentinel(t *testing.T) {
	Convey("Given a 2-qubit register", t, func() {
		r := newStubRegister(2)

		Convey("An in-range index passes with no error", func() {
			So(r.checkQubit(1), ShouldBeNil)
		})

		Convey("An out-of-range index wraps ErrQubitOutOfRange", func() {
			err := r.checkQubit(2)
			So(err, ShouldNotBeNil)
			So(errors.Is(err, ErrQubitOutOfRange), ShouldBeTrue)
		})
	})
}
