package droid

import (
	"regexp"
	"testing"
)

func TestNowFormat(t *testing.T) {
	pattern := regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}$`)

	got := Now()
	if !pattern.MatchString(got) {
		t.Errorf("Now() = %q, want YYYY-MM-DD HH:MM:SS", got)
	}
}

func TestNowMonotonicallyNonDecreasing(t *testing.T) {
	// The layout sorts lexicographically, so string comparison is enough.
	prev := Now()
	for i := 0; i < 100; i++ {
		cur := Now()
		if cur < prev {
			t.Fatalf("clock went backwards: %q then %q", prev, cur)
		}
		prev = cur
	}
}
