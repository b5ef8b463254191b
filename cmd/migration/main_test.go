package main

import "testing"

func TestParseSteps(t *testing.T) {
	if got, err := parseSteps(nil); err != nil || got != 1 {
		t.Fatalf("expected default 1 step, got %d err=%v", got, err)
	}
	if got, err := parseSteps([]string{" 3 "}); err != nil || got != 3 {
		t.Fatalf("expected 3 steps, got %d err=%v", got, err)
	}
	for _, raw := range []string{"0", "-2", "x"} {
		if _, err := parseSteps([]string{raw}); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}

func TestParseVersionAndTarget(t *testing.T) {
	if got, err := parseVersion("20250901000003"); err != nil || got != 20250901000003 {
		t.Fatalf("unexpected version %d err=%v", got, err)
	}
	if _, err := parseVersion("-1"); err == nil {
		t.Fatalf("expected error for negative version")
	}
	if got, err := parseTarget("20250901000001"); err != nil || got != 20250901000001 {
		t.Fatalf("unexpected target %d err=%v", got, err)
	}
	if _, err := parseTarget("latest"); err == nil {
		t.Fatalf("expected error for non numeric target")
	}
}
