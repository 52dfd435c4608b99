package game

import (
	"errors"
	"strings"
)

// Category constants for the competitive titles the academy trains.
const (
	CategoryTacticalShooter = "tactical_shooter"
	CategoryMOBA            = "moba"
	CategoryBattleRoyale    = "battle_royale"
	CategorySportsAction    = "sports_action"
)

// Difficulty tier constants.
const (
	DifficultyHigh    = "high"
	DifficultyExtreme = "extreme"
)

// Domain errors
var (
	ErrUnknownGame = errors.New("unknown game")
)

// EarningsRange describes the typical pro earnings band for a title, in USD.
type EarningsRange struct {
	Min      int
	Max      int
	Currency string
}

// Game describes one competitive title open for pro applications.
// Games are defined at build time and never mutated.
type Game struct {
	ID            string
	Name          string
	Category      string
	Difficulty    string
	Requirements  []string
	Opportunities []string
	Earnings      EarningsRange
	Icon          string
}

// Validate checks if the Game has valid data.
// PRE: Game struct is initialized
// POST: Returns error if validation fails, nil otherwise
func (g *Game) Validate() error {
	if strings.TrimSpace(g.ID) == "" {
		return errors.New("game id cannot be empty")
	}
	if strings.TrimSpace(g.Name) == "" {
		return errors.New("game name cannot be empty")
	}
	if len(g.Requirements) == 0 {
		return errors.New("game must have at least one requirement")
	}
	if g.Earnings.Min < 0 || g.Earnings.Max < g.Earnings.Min {
		return errors.New("earnings range must be non-negative and ordered")
	}
	return nil
}

// List returns all games in display order.
// Pure and synchronous; the returned slice is a copy so callers cannot
// mutate the catalog.
func List() []Game {
	out := make([]Game, len(catalog))
	copy(out, catalog)
	return out
}

// GetByID returns the game with the given ID.
// PRE: id is non-empty
// POST: Returns the game, or ErrUnknownGame if no game matches
func GetByID(id string) (Game, error) {
	for _, g := range catalog {
		if g.ID == id {
			return g, nil
		}
	}
	return Game{}, ErrUnknownGame
}
