package testutil

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp/cmpopts"
)

// recorder captures failures instead of failing the enclosing test.
type recorder struct {
	testing.TB
	errors []string
	fatal  bool
}

func (r *recorder) Helper() {}

func (r *recorder) Error(args ...interface{}) {
	r.errors = append(r.errors, fmt.Sprint(args...))
}

func (r *recorder) Errorf(format string, args ...interface{}) {
	r.errors = append(r.errors, fmt.Sprintf(format, args...))
}

func (r *recorder) Fatalf(format string, args ...interface{}) {
	r.Errorf(format, args...)
	r.fatal = true
}

func TestAssertions_Pass(t *testing.T) {
	r := &recorder{}
	AssertEqual(r, []int{1, 2, 3}, []int{1, 2, 3})
	AssertEqual(r, nil, nil)
	AssertEqual(r, 42, 42, "value should be %d", 42)
	AssertApprox(r, 0.1+0.2, 0.3, 1e-12)
	AssertNoError(r, nil)
	RequireNoError(r, nil)
	AssertError(r, errors.New("boom"))
	AssertContains(r, "hello world", "world")
	AssertContains(r, "test", "")
	AssertNotContains(r, "hello world", "foo")
	AssertTrue(r, len("hello") == 5)
	AssertFalse(r, 1 == 2)
	var p *int
	AssertNil(r, p)
	AssertNil(r, nil)
	x := 42
	AssertNotNil(r, &x)
	AssertNotNil(r, []int{})

	AssertEqual(t, len(r.errors), 0, "unexpected failures: %v", r.errors)
}

func TestAssertions_Fail(t *testing.T) {
	var nilMap map[string]int
	tests := []struct {
		name   string
		assert func(r *recorder)
		want   string
	}{
		{"equal", func(r *recorder) { AssertEqual(r, 1, 2) }, "mismatch (-want +got)"},
		{"equal with message", func(r *recorder) { AssertEqual(r, "a", "b", "game %s", "g1") }, "game g1: mismatch"},
		{"approx", func(r *recorder) { AssertApprox(r, 0.5, 0.6, 0.01) }, "want 0.6"},
		{"no error", func(r *recorder) { AssertNoError(r, errors.New("boom"), "load") }, "load: unexpected error: boom"},
		{"error", func(r *recorder) { AssertError(r, nil) }, "expected error"},
		{"contains", func(r *recorder) { AssertContains(r, "abc", "z") }, `"abc" does not contain "z"`},
		{"not contains", func(r *recorder) { AssertNotContains(r, "abc", "b") }, "should not contain"},
		{"true", func(r *recorder) { AssertTrue(r, false) }, "expected true"},
		{"false", func(r *recorder) { AssertFalse(r, true) }, "expected false"},
		{"nil", func(r *recorder) { AssertNil(r, 3) }, "expected nil but got 3"},
		{"not nil", func(r *recorder) { AssertNotNil(r, nilMap) }, "expected non-nil"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &recorder{}
			tt.assert(r)
			AssertEqual(t, len(r.errors), 1)
			if len(r.errors) == 1 {
				AssertContains(t, r.errors[0], tt.want)
			}
		})
	}
}

func TestRequireNoError_IsFatal(t *testing.T) {
	r := &recorder{}
	RequireNoError(r, errors.New("boom"))
	AssertTrue(t, r.fatal)
	AssertContains(t, r.errors[0], "boom")
}

func TestAssertEqual_CmpOptions(t *testing.T) {
	r := &recorder{}
	AssertEqual(r, []float64{0.3000000001}, []float64{0.3}, cmpopts.EquateApprox(0, 1e-6), "approx")
	AssertEqual(r, []int{}, []int(nil), cmpopts.EquateEmpty())
	AssertEqual(t, len(r.errors), 0, "unexpected failures: %v", r.errors)
}

func TestFormatMessage(t *testing.T) {
	tests := []struct {
		name string
		args []interface{}
		want string
	}{
		{"no args", nil, ""},
		{"single string", []interface{}{"hello"}, "hello"},
		{"single int", []interface{}{42}, "42"},
		{"format string", []interface{}{"hello %s", "world"}, "hello world"},
		{"format multiple", []interface{}{"%s %d %s", "test", 42, "end"}, "test 42 end"},
		{"non-string first", []interface{}{7, "x"}, "7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatMessage(tt.args...); got != tt.want {
				t.Errorf("formatMessage(%v) = %q, want %q", tt.args, got, tt.want)
			}
		})
	}
}
