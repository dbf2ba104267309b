// Package testutil provides go-cmp based assertions shared by the package tests.
//
// Every assertion takes optional trailing arguments. cmp.Option values are
// passed to cmp.Diff; the rest form a message, either a single value or a
// format string followed by its arguments.
package testutil

import (
	"fmt"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// AssertEqual reports the cmp.Diff between want and got.
func AssertEqual(t testing.TB, got, want interface{}, msgAndArgs ...interface{}) {
	t.Helper()
	opts, msg := splitArgs(msgAndArgs)
	if diff := cmp.Diff(want, got, opts...); diff != "" {
		fail(t, msg, "mismatch (-want +got):\n%s", diff)
	}
}

// AssertApprox fails unless got is within tol of want.
func AssertApprox(t testing.TB, got, want, tol float64, msgAndArgs ...interface{}) {
	t.Helper()
	if math.IsNaN(got) || math.Abs(got-want) > tol {
		_, msg := splitArgs(msgAndArgs)
		fail(t, msg, "got %v; want %v ± %v", got, want, tol)
	}
}

// AssertNoError fails if err is not nil.
func AssertNoError(t testing.TB, err error, msgAndArgs ...interface{}) {
	t.Helper()
	if err != nil {
		_, msg := splitArgs(msgAndArgs)
		fail(t, msg, "unexpected error: %v", err)
	}
}

// RequireNoError is AssertNoError that stops the test.
func RequireNoError(t testing.TB, err error, msgAndArgs ...interface{}) {
	t.Helper()
	if err != nil {
		_, msg := splitArgs(msgAndArgs)
		if msg != "" {
			t.Fatalf("%s: unexpected error: %v", msg, err)
			return
		}
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails if err is nil.
func AssertError(t testing.TB, err error, msgAndArgs ...interface{}) {
	t.Helper()
	if err == nil {
		_, msg := splitArgs(msgAndArgs)
		fail(t, msg, "expected error but got nil")
	}
}

// AssertContains fails if substr is not in got.
func AssertContains(t testing.TB, got, substr string, msgAndArgs ...interface{}) {
	t.Helper()
	if !strings.Contains(got, substr) {
		_, msg := splitArgs(msgAndArgs)
		fail(t, msg, "%q does not contain %q", got, substr)
	}
}

// AssertNotContains fails if substr is in got.
func AssertNotContains(t testing.TB, got, substr string, msgAndArgs ...interface{}) {
	t.Helper()
	if strings.Contains(got, substr) {
		_, msg := splitArgs(msgAndArgs)
		fail(t, msg, "%q should not contain %q", got, substr)
	}
}

// AssertTrue fails if condition is false.
func AssertTrue(t testing.TB, condition bool, msgAndArgs ...interface{}) {
	t.Helper()
	if !condition {
		_, msg := splitArgs(msgAndArgs)
		fail(t, msg, "expected true but got false")
	}
}

// AssertFalse fails if condition is true.
func AssertFalse(t testing.TB, condition bool, msgAndArgs ...interface{}) {
	t.Helper()
	if condition {
		_, msg := splitArgs(msgAndArgs)
		fail(t, msg, "expected false but got true")
	}
}

// AssertNil fails unless got is nil or a typed nil such as (*int)(nil).
func AssertNil(t testing.TB, got interface{}, msgAndArgs ...interface{}) {
	t.Helper()
	if !isNil(got) {
		_, msg := splitArgs(msgAndArgs)
		fail(t, msg, "expected nil but got %v", got)
	}
}

// AssertNotNil fails if got is nil or a typed nil.
func AssertNotNil(t testing.TB, got interface{}, msgAndArgs ...interface{}) {
	t.Helper()
	if isNil(got) {
		_, msg := splitArgs(msgAndArgs)
		fail(t, msg, "expected non-nil value but got nil")
	}
}

func fail(t testing.TB, msg, format string, args ...interface{}) {
	t.Helper()
	text := fmt.Sprintf(format, args...)
	if msg != "" {
		text = msg + ": " + text
	}
	t.Error(text)
}

func isNil(v interface{}) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func:
		return rv.IsNil()
	}
	return false
}

// splitArgs separates cmp options from the message arguments.
func splitArgs(args []interface{}) (cmp.Options, string) {
	var (
		opts cmp.Options
		rest []interface{}
	)
	for _, a := range args {
		if o, ok := a.(cmp.Option); ok {
			opts = append(opts, o)
			continue
		}
		rest = append(rest, a)
	}
	return opts, formatMessage(rest...)
}

// formatMessage turns message arguments into a string.
func formatMessage(msgAndArgs ...interface{}) string {
	switch {
	case len(msgAndArgs) == 0:
		return ""
	case len(msgAndArgs) == 1:
		return fmt.Sprint(msgAndArgs[0])
	}
	if format, ok := msgAndArgs[0].(string); ok {
		return fmt.Sprintf(format, msgAndArgs[1:]...)
	}
	return fmt.Sprint(msgAndArgs[0])
}
