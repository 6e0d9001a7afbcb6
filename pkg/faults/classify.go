package faults

import (
	"errors"
	"io"
	"net"
	"net/http"
	"strings"
	"syscall"
)

// Classification is the severity bucket for an intercepted error.
type Classification int

const (
	// ServerFault is any uncaught error that is not a disconnect. High
	// severity, always logged with a correlation identifier.
	ServerFault Classification = iota

	// Disconnected means the remote peer closed the connection before the
	// response completed. Expected noise, logged at debug level, never
	// rendered.
	Disconnected
)

// String returns the label used in logs and metrics.
func (c Classification) String() string {
	switch c {
	case Disconnected:
		return "disconnected"
	case ServerFault:
		return "server_fault"
	default:
		return "unknown"
	}
}

// maxChainDepth bounds the cause-chain walk so a pathological or cyclic
// chain cannot loop forever.
const maxChainDepth = 32

// Classify walks the cause chain from err to its root and reports whether
// the error represents a client disconnect or a genuine server fault.
//
// The walk is iterative and depth-capped rather than recursive, so it
// terminates even on chains that cycle through Unwrap.
func Classify(err error) Classification {
	for cause, depth := err, 0; cause != nil && depth < maxChainDepth; depth++ {
		if isDisconnect(cause) {
			return Disconnected
		}
		cause = errors.Unwrap(cause)
	}
	if err != nil && hasDisconnectMessage(err.Error()) {
		return Disconnected
	}
	return ServerFault
}

// isDisconnect checks a single element of the cause chain, without
// unwrapping, against the known peer-closed-early conditions.
func isDisconnect(err error) bool {
	switch err {
	case io.EOF, io.ErrUnexpectedEOF, net.ErrClosed, http.ErrAbortHandler:
		return true
	}
	if errno, ok := err.(syscall.Errno); ok {
		return errno == syscall.EPIPE || errno == syscall.ECONNRESET
	}
	return false
}

// hasDisconnectMessage is the string-level fallback for errors that wrap a
// socket failure without preserving the sentinel in their chain (stdlib
// net/http produces several of these).
func hasDisconnectMessage(msg string) bool {
	msg = strings.ToLower(msg)
	for _, s := range []string{
		"broken pipe",
		"connection reset by peer",
		"use of closed network connection",
		"client disconnected",
	} {
		if strings.Contains(msg, s) {
			return true
		}
	}
	return false
}
