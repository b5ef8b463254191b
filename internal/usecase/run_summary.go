package usecase

import (
	"fmt"

	"github.com/valyala/bytebufferpool"
)

// Summary renders a one-line operator report of the run.
func (r ProcessWeekResult) Summary() string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	fmt.Fprintf(buf, "season=%d type=%d week=%d", r.Season, r.SeasonType, r.Week)
	if r.DryRun {
		_, _ = buf.WriteString(" dry_run")
	}
	fmt.Fprintf(buf, " events=%d matched=%d/%d unmatched=%d not_started=%d",
		r.EventsFetched, r.GamesMatched, r.GamesScheduled, r.UnmatchedEvents, r.GamesNotStarted)
	fmt.Fprintf(buf, " game_results=%d users=%d weekly_results=%d survivor=%d eliminated=%d skipped_picks=%d",
		r.GameResultsWritten, r.UsersScored, r.WeeklyResultsWritten, r.SurvivorResolved, r.SurvivorEliminated, r.SkippedPicks)
	fmt.Fprintf(buf, " failures=%d duration_ms=%d", r.Failures, r.DurationMs)
	return buf.String()
}
