package game

// catalog is the fixed set of titles open for pro applications.
// Order is display order.
var catalog = []Game{
	{
		ID:         "valorant",
		Name:       "VALORANT",
		Category:   CategoryTacticalShooter,
		Difficulty: DifficultyHigh,
		Requirements: []string{
			"Immortal 1 rank or higher on the current act",
			"Minimum 1,500 hours of ranked play",
			"Consistent top-fragging stats over the last 3 acts",
			"Experience with structured team scrims",
		},
		Opportunities: []string{
			"VCT Challengers league placement",
			"Academy team contracts with partnered orgs",
			"Content and streaming partnerships",
		},
		Earnings: EarningsRange{Min: 30000, Max: 250000, Currency: "USD"},
		Icon:     "crosshair",
	},
	{
		ID:         "league-of-legends",
		Name:       "League of Legends",
		Category:   CategoryMOBA,
		Difficulty: DifficultyExtreme,
		Requirements: []string{
			"Grandmaster or Challenger on the current ranked ladder",
			"Minimum 2,000 hours across the last two seasons",
			"Proven role mastery on at least two positions",
			"Tournament experience (clash or amateur circuit)",
		},
		Opportunities: []string{
			"ERL and academy league tryouts",
			"Positional coaching placements",
			"Bootcamp invitations with partnered teams",
		},
		Earnings: EarningsRange{Min: 40000, Max: 400000, Currency: "USD"},
		Icon:     "rift",
	},
	{
		ID:         "cs2",
		Name:       "Counter-Strike 2",
		Category:   CategoryTacticalShooter,
		Difficulty: DifficultyExtreme,
		Requirements: []string{
			"FACEIT level 10 or 3,000+ premier rating",
			"Minimum 3,000 hours of competitive play",
			"LAN or online tournament experience",
			"Demo review portfolio covering the last 6 months",
		},
		Opportunities: []string{
			"Tier-2 team tryouts",
			"Qualifier slots for partnered events",
			"Analyst and IGL development tracks",
		},
		Earnings: EarningsRange{Min: 35000, Max: 500000, Currency: "USD"},
		Icon:     "defuse",
	},
	{
		ID:         "dota2",
		Name:       "Dota 2",
		Category:   CategoryMOBA,
		Difficulty: DifficultyExtreme,
		Requirements: []string{
			"Immortal rank (top 1,000 preferred)",
			"Minimum 4,000 lifetime hours",
			"Open qualifier or amateur league experience",
			"Flexible hero pool across two roles",
		},
		Opportunities: []string{
			"Open qualifier team placements",
			"Regional league roster slots",
			"International bootcamp invitations",
		},
		Earnings: EarningsRange{Min: 30000, Max: 600000, Currency: "USD"},
		Icon:     "aegis",
	},
	{
		ID:         "fortnite",
		Name:       "Fortnite",
		Category:   CategoryBattleRoyale,
		Difficulty: DifficultyHigh,
		Requirements: []string{
			"Champion division in arena or FNCS qualification history",
			"Minimum 1,200 hours of competitive play",
			"Consistent earnings or placements in cash cups",
			"Creative warm-up and aim routine documentation",
		},
		Opportunities: []string{
			"FNCS roster placements",
			"Duo and trio partnerships with signed players",
			"Creator-code content opportunities",
		},
		Earnings: EarningsRange{Min: 25000, Max: 300000, Currency: "USD"},
		Icon:     "storm",
	},
	{
		ID:         "rocket-league",
		Name:       "Rocket League",
		Category:   CategorySportsAction,
		Difficulty: DifficultyHigh,
		Requirements: []string{
			"Supersonic Legend rank in the current season",
			"Minimum 1,500 hours of play",
			"RLCS open qualifier experience",
			"Replay portfolio demonstrating rotation discipline",
		},
		Opportunities: []string{
			"RLCS open circuit team slots",
			"Academy roster placements",
			"Freestyle and content partnerships",
		},
		Earnings: EarningsRange{Min: 20000, Max: 200000, Currency: "USD"},
		Icon:     "octane",
	},
}
