// Package ensure holds the GOT/WANT helpers shared by the tests of every
// tabkit package.
package ensure

import (
	"strings"
	"testing"
)

// Error fails the test when err does not match the expectation. With no stubs
// or a single empty stub, err must be nil. Otherwise err must be non-nil and
// its message must contain every non-empty stub.
func Error(tb testing.TB, err error, contains ...string) {
	tb.Helper()
	if len(contains) == 0 || (len(contains) == 1 && contains[0] == "") {
		if err != nil {
			tb.Fatalf("GOT: %v; WANT: %v", err, contains)
		}
	} else if err == nil {
		tb.Errorf("GOT: %v; WANT: %v", err, contains)
	} else {
		for _, stub := range contains {
			if stub != "" && !strings.Contains(err.Error(), stub) {
				tb.Errorf("GOT: %v; WANT: %q", err, stub)
			}
		}
	}
}

// Strings compares two string slices element by element, reporting extras on
// either side.
func Strings(tb testing.TB, got, want []string) {
	tb.Helper()

	la, lb := len(got), len(want)

	max := la
	if max < lb {
		max = lb
	}

	for i := 0; i < max; i++ {
		if i < la && i < lb {
			if got, want := got[i], want[i]; got != want {
				tb.Errorf("%d: GOT: %q; WANT: %q", i, got, want)
			}
		} else if i < la {
			tb.Errorf("%d: GOT: extra item: %q", i, got[i])
		} else /* i < lb */ {
			tb.Errorf("%d: WANT: extra item: %q", i, want[i])
		}
	}
}

// Rows compares two grids of strings row by row.
func Rows(tb testing.TB, got, want [][]string) {
	tb.Helper()

	la, lb := len(got), len(want)

	max := la
	if max < lb {
		max = lb
	}

	for i := 0; i < max; i++ {
		if i < la && i < lb {
			Strings(tb, got[i], want[i])
		} else if i < la {
			tb.Errorf("%d: GOT: extra row: %v", i, got[i])
		} else /* i < lb */ {
			tb.Errorf("%d: WANT: extra row: %v", i, want[i])
		}
	}
}

// Int fails the test when got differs from want.
func Int(tb testing.TB, got, want int) {
	tb.Helper()
	if got != want {
		tb.Errorf("GOT: %v; WANT: %v", got, want)
	}
}
