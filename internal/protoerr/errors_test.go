package protoerr

import (
	"errors"
	"testing"
)

func TestKindAndUnwrap(t *testing.T) {
	cause := errors.New("boom")
	cases := []struct {
		err  error
		kind Kind
	}{
		{Protocol(cause), KindProtocol},
		{State(cause), KindState},
		{Usage(cause), KindUsage},
	}
	for _, c := range cases {
		var pe *Error
		if !errors.As(c.err, &pe) {
			t.Fatalf("errors.As failed for %v", c.err)
		}
		if pe.Kind() != c.kind {
			t.Errorf("Kind() = %v, want %v", pe.Kind(), c.kind)
		}
		if !errors.Is(c.err, cause) {
			t.Errorf("errors.Is(%v, cause) = false", c.err)
		}
	}
}
