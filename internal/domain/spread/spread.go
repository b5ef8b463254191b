// Package spread parses point-spread picks and decides whether a pick covered.
//
// A line is always attached to the team named with it: "Minnesota Covers +3.5"
// means Minnesota's score plus 3.5 must beat the opponent's score.
package spread

import (
	"strconv"
	"strings"

	"github.com/riskibarqy/pickem-league/internal/domain/team"
)

type Pick struct {
	Team string
	Line float64
}

type ParseResult struct {
	Pick   Pick
	OK     bool
	Reason string
}

const (
	ReasonEmpty       = "empty"
	ReasonTooShort    = "expected <team> cover|covers <line>"
	ReasonNoKeyword   = "missing cover keyword"
	ReasonBadLine     = "line is not a signed decimal"
	ReasonMissingTeam = "missing team"
)

// Parse reads "<team> cover|covers <signed decimal>". The keyword is
// case-insensitive and the team is normalized. Text that does not fit the
// grammar yields OK=false with a Reason, never an error.
func Parse(text string) ParseResult {
	tokens := strings.Fields(text)
	if len(tokens) == 0 {
		return ParseResult{Reason: ReasonEmpty}
	}
	if len(tokens) < 3 {
		return ParseResult{Reason: ReasonTooShort}
	}

	n := len(tokens)
	if !isCoverKeyword(tokens[n-2]) {
		return ParseResult{Reason: ReasonNoKeyword}
	}
	line, ok := parseLine(tokens[n-1])
	if !ok {
		return ParseResult{Reason: ReasonBadLine}
	}
	name := team.Normalize(strings.Join(tokens[:n-2], " "))
	if name == "" {
		return ParseResult{Reason: ReasonMissingTeam}
	}
	return ParseResult{Pick: Pick{Team: name, Line: line}, OK: true}
}

func isCoverKeyword(tok string) bool {
	return strings.EqualFold(tok, "cover") || strings.EqualFold(tok, "covers")
}

// parseLine accepts [+-]digits[.digits]. Forms such as "3.", ".5", "1e2"
// or "Inf" are rejected even though strconv would take some of them.
func parseLine(tok string) (float64, bool) {
	body := tok
	if body != "" && (body[0] == '+' || body[0] == '-') {
		body = body[1:]
	}
	intPart, fracPart, hasDot := strings.Cut(body, ".")
	if !allDigits(intPart) || (hasDot && !allDigits(fracPart)) {
		return 0, false
	}
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func (p Pick) String() string {
	return p.Team + " covers " + FormatLine(p.Line)
}

// FormatLine renders a line with an explicit sign, e.g. +3.5 or -7.
func FormatLine(line float64) string {
	s := strconv.FormatFloat(line, 'f', -1, 64)
	if line >= 0 {
		return "+" + s
	}
	return s
}

type Outcome int

const (
	// OutcomeUnknown means the picked team is not in the game.
	OutcomeUnknown Outcome = iota
	OutcomeCovered
	OutcomeNotCovered
	OutcomePush
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCovered:
		return "covered"
	case OutcomeNotCovered:
		return "not_covered"
	case OutcomePush:
		return "push"
	default:
		return "unknown"
	}
}

// Evaluate compares the picked side's score plus its line with the
// opponent's score.
func Evaluate(p Pick, homeTeam, awayTeam string, homeScore, awayScore int) Outcome {
	var own, opp int
	switch {
	case team.Same(p.Team, homeTeam):
		own, opp = homeScore, awayScore
	case team.Same(p.Team, awayTeam):
		own, opp = awayScore, homeScore
	default:
		return OutcomeUnknown
	}

	adjusted := float64(own) + p.Line
	switch {
	case adjusted > float64(opp):
		return OutcomeCovered
	case adjusted < float64(opp):
		return OutcomeNotCovered
	default:
		return OutcomePush
	}
}

// Covered is true only when the picked team beats the spread outright.
// A push is not covered.
func Covered(p Pick, homeTeam, awayTeam string, homeScore, awayScore int) bool {
	return Evaluate(p, homeTeam, awayTeam, homeScore, awayScore) == OutcomeCovered
}

// CoveringTeam names the side that beat the posted line, or "" on a push
// or when the line's team is not in the game.
func CoveringTeam(line Pick, homeTeam, awayTeam string, homeScore, awayScore int) string {
	switch Evaluate(line, homeTeam, awayTeam, homeScore, awayScore) {
	case OutcomeCovered:
		return team.Normalize(line.Team)
	case OutcomeNotCovered:
		if team.Same(line.Team, homeTeam) {
			return team.Normalize(awayTeam)
		}
		return team.Normalize(homeTeam)
	default:
		return ""
	}
}
