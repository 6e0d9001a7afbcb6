package faults

import (
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"syscall"
	"testing"
)

// loopErr builds cyclic cause chains for the termination tests.
type loopErr struct {
	msg  string
	next error
}

func (e *loopErr) Error() string { return e.msg }
func (e *loopErr) Unwrap() error { return e.next }

func TestClassify(t *testing.T) {
	t.Run("plain error is a server fault", func(t *testing.T) {
		if got := Classify(errors.New("nil pointer dereference")); got != ServerFault {
			t.Errorf("Classify() = %v, want %v", got, ServerFault)
		}
	})

	t.Run("nil error is a server fault", func(t *testing.T) {
		if got := Classify(nil); got != ServerFault {
			t.Errorf("Classify(nil) = %v, want %v", got, ServerFault)
		}
	})

	t.Run("direct disconnect sentinels", func(t *testing.T) {
		for _, err := range []error{
			io.EOF,
			io.ErrUnexpectedEOF,
			net.ErrClosed,
			http.ErrAbortHandler,
			error(syscall.EPIPE),
			error(syscall.ECONNRESET),
		} {
			if got := Classify(err); got != Disconnected {
				t.Errorf("Classify(%v) = %v, want %v", err, got, Disconnected)
			}
		}
	})

	t.Run("disconnect two levels deep in the chain", func(t *testing.T) {
		err := fmt.Errorf("copy response: %w", fmt.Errorf("flush: %w", io.EOF))
		if got := Classify(err); got != Disconnected {
			t.Errorf("Classify() = %v, want %v", got, Disconnected)
		}
	})

	t.Run("wrapped syscall errno", func(t *testing.T) {
		// net.OpError unwraps to its Err field, the shape net/http produces
		// for a reset connection.
		opErr := &net.OpError{Op: "write", Net: "tcp", Err: syscall.ECONNRESET}
		wrapped := fmt.Errorf("write response: %w", opErr)
		if got := Classify(wrapped); got != Disconnected {
			t.Errorf("Classify() = %v, want %v", got, Disconnected)
		}
	})

	t.Run("message fallback", func(t *testing.T) {
		err := errors.New("write tcp 127.0.0.1:8080->127.0.0.1:47712: write: broken pipe")
		if got := Classify(err); got != Disconnected {
			t.Errorf("Classify() = %v, want %v", got, Disconnected)
		}
	})

	t.Run("terminates on a cyclic cause chain", func(t *testing.T) {
		a := &loopErr{msg: "a"}
		b := &loopErr{msg: "b", next: a}
		a.next = b

		if got := Classify(a); got != ServerFault {
			t.Errorf("Classify() = %v, want %v", got, ServerFault)
		}
	})

	t.Run("self referencing chain", func(t *testing.T) {
		e := &loopErr{msg: "self"}
		e.next = e

		if got := Classify(e); got != ServerFault {
			t.Errorf("Classify() = %v, want %v", got, ServerFault)
		}
	})
}

func TestClassificationString(t *testing.T) {
	if Disconnected.String() != "disconnected" {
		t.Errorf("Disconnected.String() = %q", Disconnected.String())
	}
	if ServerFault.String() != "server_fault" {
		t.Errorf("ServerFault.String() = %q", ServerFault.String())
	}
}
