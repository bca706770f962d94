// Package test holds the small set of assertion helpers shared by this
// module's own test files. It is internal because the shape of these
// helpers is tied to this module's own error type, not something other
// packages should depend on.
package test

import (
	"fmt"
	"runtime"
	"strings"
	"testing"

	"github.com/ava12/peg/errors"
)

// callerOutsidePackage walks up the call stack past this file's own frames
// and returns the file:line of the first caller outside it - the test
// function that actually made the failing assertion, not Assert/Expect/etc.
// themselves.
func callerOutsidePackage() (file string, line int) {
	_, here, _, _ := runtime.Caller(0)
	for depth := 2; ; depth++ {
		_, f, l, ok := runtime.Caller(depth)
		if !ok || f != here {
			return f, l
		}
	}
}

func fatalf(t *testing.T, format string, params ...any) {
	message := format
	if len(params) > 0 {
		message = fmt.Sprintf(format, params...)
	}
	file, line := callerOutsidePackage()
	t.Fatalf("%s at %s:%d", message, file, line)
}

// Assert fails the test with message (printf-formatted against params) if
// cond is false.
func Assert(t *testing.T, cond bool, message string, params ...any) {
	if !cond {
		fatalf(t, message, params...)
	}
}

// Expect fails the test reporting expected vs. got if cond is false.
func Expect(t *testing.T, cond bool, expected, got any) {
	if !cond {
		fatalf(t, "expecting %v, got %v", expected, got)
	}
}

func ExpectBool(t *testing.T, expected, got bool) {
	Expect(t, expected == got, expected, got)
}

func ExpectInt(t *testing.T, expected, got int) {
	Expect(t, expected == got, expected, got)
}

// ExpectNoError fails the test if e is non-nil.
func ExpectNoError(t *testing.T, e error) {
	if e != nil {
		fatalf(t, "expecting no error, got %v", e)
	}
}

// ExpectErrorCode fails the test unless e is an *errors.Error carrying the
// expected code.
func ExpectErrorCode(t *testing.T, expected int, e error) {
	if ee, ok := e.(*errors.Error); ok && ee.Code == expected {
		return
	}
	fatalf(t, "expecting error code %d, got %v", expected, e)
}

// ExpectErrorContains fails the test unless e's message contains substr.
func ExpectErrorContains(t *testing.T, substr string, e error) {
	if e != nil && strings.Contains(e.Error(), substr) {
		return
	}
	fatalf(t, "expecting error containing %q, got %v", substr, e)
}
