package spread

import "testing"

func TestParse(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in     string
		ok     bool
		team   string
		line   float64
		reason string
	}{
		{in: "Minnesota Covers +3.5", ok: true, team: "Minnesota Vikings", line: 3.5},
		{in: "Detroit Cover -3.5", ok: true, team: "Detroit Lions", line: -3.5},
		{in: "  green bay   COVERS 7 ", ok: true, team: "Green Bay Packers", line: 7},
		{in: "NY Jets covers -10", ok: true, team: "New York Jets", line: -10},
		{in: "Springfield Atoms covers +1", ok: true, team: "Springfield Atoms", line: 1},
		{in: "", reason: ReasonEmpty},
		{in: "Minnesota +3.5", reason: ReasonTooShort},
		{in: "Minnesota wins by +3.5", reason: ReasonNoKeyword},
		{in: "Minnesota Covers three", reason: ReasonBadLine},
		{in: "Minnesota Covers 3.", reason: ReasonBadLine},
		{in: "Minnesota Covers .5", reason: ReasonBadLine},
		{in: "Minnesota Covers 1e2", reason: ReasonBadLine},
		{in: "Minnesota Covers +-3", reason: ReasonBadLine},
	}

	for _, tc := range cases {
		got := Parse(tc.in)
		if got.OK != tc.ok {
			t.Fatalf("Parse(%q): expected ok=%v, got %+v", tc.in, tc.ok, got)
		}
		if !tc.ok {
			if got.Reason != tc.reason {
				t.Fatalf("Parse(%q): expected reason %q, got %q", tc.in, tc.reason, got.Reason)
			}
			continue
		}
		if got.Pick.Team != tc.team || got.Pick.Line != tc.line {
			t.Fatalf("Parse(%q): expected %s %v, got %+v", tc.in, tc.team, tc.line, got.Pick)
		}
	}
}

func TestCovered_PushBoundary(t *testing.T) {
	t.Parallel()

	// Home 24, away 20. Home laying -4 is exactly a push.
	if Covered(Pick{Team: "Dallas", Line: -4}, "Dallas", "Philadelphia", 24, 20) {
		t.Fatalf("push must not count as covered")
	}
	if got := Evaluate(Pick{Team: "Dallas", Line: -4}, "Dallas", "Philadelphia", 24, 20); got != OutcomePush {
		t.Fatalf("expected push, got %s", got)
	}
	if !Covered(Pick{Team: "Dallas", Line: -3.5}, "Dallas", "Philadelphia", 24, 20) {
		t.Fatalf("expected -3.5 to cover a 4 point win")
	}
	if Covered(Pick{Team: "Philadelphia", Line: 3.5}, "Dallas", "Philadelphia", 24, 20) {
		t.Fatalf("expected +3.5 underdog to miss a 4 point loss")
	}
	if !Covered(Pick{Team: "Philadelphia", Line: 4.5}, "Dallas", "Philadelphia", 24, 20) {
		t.Fatalf("expected +4.5 underdog to cover a 4 point loss")
	}
}

func TestCovered_ScenarioUnderdog(t *testing.T) {
	t.Parallel()

	res := Parse("Minnesota Covers +3.5")
	if !res.OK {
		t.Fatalf("parse failed: %s", res.Reason)
	}
	// Minnesota away 20, Detroit home 23: lose by 3, +3.5 covers.
	if !Covered(res.Pick, "Detroit Lions", "Minnesota Vikings", 23, 20) {
		t.Fatalf("expected Minnesota +3.5 to cover a 3 point loss")
	}
}

func TestCovered_TeamNotInGame(t *testing.T) {
	t.Parallel()

	if got := Evaluate(Pick{Team: "Chicago", Line: 10}, "Dallas", "Philadelphia", 0, 0); got != OutcomeUnknown {
		t.Fatalf("expected unknown outcome, got %s", got)
	}
}

func TestCoveringTeam(t *testing.T) {
	t.Parallel()

	line := Pick{Team: "Kansas City", Line: -6.5}
	if got := CoveringTeam(line, "Kansas City", "Denver", 27, 20); got != "Kansas City Chiefs" {
		t.Fatalf("expected favorite to cover, got %q", got)
	}
	if got := CoveringTeam(line, "Kansas City", "Denver", 24, 20); got != "Denver Broncos" {
		t.Fatalf("expected underdog to cover, got %q", got)
	}
	if got := CoveringTeam(Pick{Team: "Denver", Line: 3}, "Kansas City", "Denver", 23, 20); got != "" {
		t.Fatalf("expected push to have no covering team, got %q", got)
	}
}

func TestPickString(t *testing.T) {
	t.Parallel()

	if got := (Pick{Team: "Detroit Lions", Line: -3.5}).String(); got != "Detroit Lions covers -3.5" {
		t.Fatalf("unexpected %q", got)
	}
	if got := FormatLine(7); got != "+7" {
		t.Fatalf("unexpected %q", got)
	}
}
