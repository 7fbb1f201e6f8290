package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

var errSentinel = New("sentinel")

type codedError struct{ code string }

func (e *codedError) Error() string { return e.code }

func TestWrapKeepsIdentity(t *testing.T) {
	wrapped := Wrapf(Wrap(errSentinel, "inner"), "outer %d", 1)

	assert.True(t, Is(wrapped, errSentinel))
	assert.Equal(t, "outer 1: inner: sentinel", wrapped.Error())
	assert.Equal(t, "sentinel", WithStack(errSentinel).Error())
}

func TestWrapNil(t *testing.T) {
	assert.NoError(t, Wrap(nil, "ignored"))
	assert.NoError(t, Wrapf(nil, "ignored %s", "x"))
	assert.NoError(t, WithStack(nil))
}

func TestAs(t *testing.T) {
	err := Wrap(&codedError{code: "E1"}, "context")

	var target *codedError
	assert.True(t, As(err, &target))
	assert.Equal(t, "E1", target.code)
}

func TestStackTrace(t *testing.T) {
	err := Errorf("failed %s", "here")

	assert.Equal(t, "failed here", err.Error())
	assert.Contains(t, fmt.Sprintf("%+v", err), "TestStackTrace")
}
