package espn

import "github.com/bytedance/sonic"

// scoreboardEnvelope keeps events raw so that one event with an unexpected
// shape is dropped on its own instead of failing the whole week.
type scoreboardEnvelope struct {
	Events []sonic.NoCopyRawMessage `json:"events"`
}

// scoreboardEvent mirrors the subset of an ESPN scoreboard event that
// scoring needs. Every field is optional upstream.

type scoreboardEvent struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	ShortName    string        `json:"shortName"`
	Date         string        `json:"date"`
	Competitions []competition `json:"competitions"`
}

type competition struct {
	ID          string       `json:"id"`
	Status      eventStatus  `json:"status"`
	Competitors []competitor `json:"competitors"`
}

type eventStatus struct {
	Type statusType `json:"type"`
}

type statusType struct {
	Name      string `json:"name"`
	State     string `json:"state"`
	Completed bool   `json:"completed"`
}

type competitor struct {
	HomeAway string         `json:"homeAway"`
	Winner   bool           `json:"winner"`
	Score    any            `json:"score"`
	Team     competitorTeam `json:"team"`
}

type competitorTeam struct {
	ID               string `json:"id"`
	DisplayName      string `json:"displayName"`
	ShortDisplayName string `json:"shortDisplayName"`
	Name             string `json:"name"`
	Location         string `json:"location"`
	Abbreviation     string `json:"abbreviation"`
}
