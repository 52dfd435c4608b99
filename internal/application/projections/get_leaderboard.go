package projections

import "academy/internal/domain/game"

// LeaderboardRow is one academy team's standing in the public showcase.
type LeaderboardRow struct {
	Rank       int
	TeamName   string
	GameID     string
	GameName   string
	Wins       int
	Losses     int
	PrizeMoney int // USD, season to date
}

// showcaseStandings is the static standings table rendered on the landing
// page. Curated by staff, not derived from match data.
var showcaseStandings = []LeaderboardRow{
	{Rank: 1, TeamName: "Academy Crimson", GameID: "valorant", Wins: 18, Losses: 3, PrizeMoney: 42000},
	{Rank: 2, TeamName: "Academy Onyx", GameID: "cs2", Wins: 15, Losses: 5, PrizeMoney: 31000},
	{Rank: 3, TeamName: "Academy Aurora", GameID: "league-of-legends", Wins: 14, Losses: 7, PrizeMoney: 24500},
	{Rank: 4, TeamName: "Academy Drift", GameID: "rocket-league", Wins: 12, Losses: 6, PrizeMoney: 12000},
	{Rank: 5, TeamName: "Academy Keystone", GameID: "dota2", Wins: 9, Losses: 8, PrizeMoney: 9800},
}

// GetLeaderboard returns the curated team standings with game names resolved
// from the catalog.
func GetLeaderboard() []LeaderboardRow {
	out := make([]LeaderboardRow, len(showcaseStandings))
	copy(out, showcaseStandings)
	for i := range out {
		if g, err := game.GetByID(out[i].GameID); err == nil {
			out[i].GameName = g.Name
		}
	}
	return out
}
