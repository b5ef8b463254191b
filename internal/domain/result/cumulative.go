package result

// ComputeCumulative folds one week's delta onto the user's most recent
// earlier result. previous must come from a week strictly before delta.Week;
// nil means the user has no history.
func ComputeCumulative(previous *WeeklyResult, delta WeeklyDelta) WeeklyResult {
	out := WeeklyResult{
		UserID:            delta.UserID,
		Week:              delta.Week,
		ThisWeekScore:     delta.StraightWins,
		OverallScore:      delta.StraightWins,
		TotalDriveBys:     delta.DriveByWins,
		TotalPointSpreads: delta.SpreadWins,
	}
	if delta.Survivor.Terminal() {
		out.SurvivorResult = delta.Survivor
	}
	if previous == nil {
		return out
	}

	out.PrevWeekScore = previous.ThisWeekScore
	out.OverallScore += previous.OverallScore
	out.TotalDriveBys += previous.TotalDriveBys
	out.TotalPointSpreads += previous.TotalPointSpreads
	return out
}
