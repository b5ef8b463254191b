package result

import "testing"

func TestComputeCumulative_NoHistory(t *testing.T) {
	t.Parallel()

	got := ComputeCumulative(nil, WeeklyDelta{UserID: "u1", Week: 1, StraightWins: 9, DriveByWins: 1, SpreadWins: 2, Survivor: SurvivorPending})
	want := WeeklyResult{UserID: "u1", Week: 1, ThisWeekScore: 9, OverallScore: 9, TotalDriveBys: 1, TotalPointSpreads: 2}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestComputeCumulative_AddsPrevious(t *testing.T) {
	t.Parallel()

	prev := &WeeklyResult{UserID: "u1", Week: 2, ThisWeekScore: 7, OverallScore: 30, TotalDriveBys: 3, TotalPointSpreads: 5}
	got := ComputeCumulative(prev, WeeklyDelta{UserID: "u1", Week: 3, StraightWins: 10, DriveByWins: 1, SpreadWins: 1, Survivor: SurvivorWin})

	want := WeeklyResult{
		UserID:            "u1",
		Week:              3,
		ThisWeekScore:     10,
		PrevWeekScore:     7,
		OverallScore:      40,
		TotalDriveBys:     4,
		TotalPointSpreads: 6,
		SurvivorResult:    SurvivorWin,
	}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestComputeCumulative_RerunIsStable(t *testing.T) {
	t.Parallel()

	prev := &WeeklyResult{UserID: "u1", Week: 1, ThisWeekScore: 8, OverallScore: 8}
	delta := WeeklyDelta{UserID: "u1", Week: 2, StraightWins: 6}

	first := ComputeCumulative(prev, delta)
	second := ComputeCumulative(prev, delta)
	if first != second {
		t.Fatalf("expected identical results, got %+v and %+v", first, second)
	}
	if first.OverallScore != 14 {
		t.Fatalf("expected overall 14, got %d", first.OverallScore)
	}
}
