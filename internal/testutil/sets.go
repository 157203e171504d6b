package testutil

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// Strings converts a slice of Stringers, such as moves or coordinates,
// into their string forms.
func Strings[T fmt.Stringer](items []T) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.String()
	}
	return out
}

// AssertSameSet compares two string slices ignoring order and reports
// the difference.
func AssertSameSet(t *testing.T, got, want []string, msgAndArgs ...interface{}) {
	t.Helper()
	less := func(a, b string) bool { return a < b }
	if diff := cmp.Diff(want, got, cmpopts.SortSlices(less), cmpopts.EquateEmpty()); diff != "" {
		msg := formatMessage(msgAndArgs...)
		if msg != "" {
			t.Errorf("%s: set mismatch (-want +got):\n%s", msg, diff)
		} else {
			t.Errorf("set mismatch (-want +got):\n%s", diff)
		}
	}
}
