package text

import (
	"strings"

	"github.com/muesli/reflow/truncate"
	"golang.org/x/text/cases"
)

const Ellipsis = "…"

// Fold returns the case folded form of s, suitable for caseless comparison.
// A Caser keeps state, so a fresh one is built per call.
func Fold(s string) string {
	return cases.Fold().String(s)
}

// ContainsFold reports whether needle is a caseless substring of haystack.
// An empty needle matches everything.
func ContainsFold(haystack, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(Fold(haystack), Fold(needle))
}

// AnyContainsFold reports whether any of the fields contains needle.
func AnyContainsFold(fields []string, needle string) bool {
	if needle == "" {
		return true
	}
	for _, f := range fields {
		if ContainsFold(f, needle) {
			return true
		}
	}
	return false
}

func TruncateWithTail(txt string, width uint, ellipsis string) string {
	return truncate.StringWithTail(txt, width, ellipsis)
}
