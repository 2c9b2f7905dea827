package clock

import (
	"testing"
	"time"
)

func TestMockAfterFuncFiresOnAdvance(t *testing.T) {
	c := NewMock(t)
	fired := false
	c.AfterFunc(5*time.Second, func() { fired = true })

	c.Advance(4 * time.Second)
	if fired {
		t.Fatal("callback fired before its deadline")
	}

	c.Advance(2 * time.Second)
	if !fired {
		t.Fatal("callback did not fire after its deadline elapsed")
	}
}

func TestMockAfterFuncCancelPreventsFiring(t *testing.T) {
	c := NewMock(t)
	fired := false
	handle := c.AfterFunc(1*time.Second, func() { fired = true })
	handle.Cancel()

	c.Advance(2 * time.Second)
	if fired {
		t.Fatal("cancelled callback must not fire")
	}
}
