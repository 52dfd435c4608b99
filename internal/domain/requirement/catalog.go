package requirement

// supplementaryGroups are shown for every game, after the game-specific group.
// None of them is critical: only the game-specific group gates progression.
var supplementaryGroups = []Group{
	{
		ID:       "experience",
		Title:    "Competitive Experience",
		Severity: SeverityImportant,
		Items: []string{
			"Previous participation in organized tournaments or leagues",
			"Experience playing in a fixed roster for 3+ months",
			"Familiarity with VOD review and structured practice",
		},
		VerificationMethod: "Tournament records and references in the proof document",
	},
	{
		ID:       "commitment",
		Title:    "Training Commitment",
		Severity: SeverityImportant,
		Items: []string{
			"Availability for at least 25 hours of structured training per week",
			"Willingness to follow an assigned training schedule",
			"Participation in mandatory weekly team reviews",
		},
		VerificationMethod: "Declared in the application form; reviewed at interview",
	},
	{
		ID:       "professional-standards",
		Title:    "Professional Standards",
		Severity: SeverityStandard,
		Items: []string{
			"No active competitive bans on any platform",
			"Agreement to the academy code of conduct",
			"Professional communication in all team settings",
		},
		VerificationMethod: "Platform account check by moderators",
	},
	{
		ID:       "technical",
		Title:    "Technical Setup",
		Severity: SeverityStandard,
		Items: []string{
			"Stable internet connection (ping under 40ms to regional servers)",
			"Hardware capable of stable 144+ FPS in the selected title",
			"Working microphone and voice comms setup",
		},
		VerificationMethod: "Self-declared; verified during technical assessment",
	},
}

// documents is the fixed legal document catalog. The media release is
// optional reading; everything else must be read before proceeding.
var documents = []LegalDocument{
	{
		ID:          "code-of-conduct",
		Title:       "Code of Conduct",
		Description: "Behavioral standards for all academy players",
		Body: "# Code of Conduct\n\nAll academy players commit to fair play, " +
			"respectful communication, and zero tolerance for cheating or account sharing.\n",
		PageCount: 4,
		Required:  true,
	},
	{
		ID:          "player-agreement",
		Title:       "Player Agreement",
		Description: "Terms of the academy training contract",
		Body: "# Player Agreement\n\nThis agreement covers training obligations, " +
			"revenue sharing on tournament winnings, and termination conditions.\n",
		PageCount: 12,
		Required:  true,
	},
	{
		ID:          "privacy-policy",
		Title:       "Privacy Policy",
		Description: "How applicant and player data is processed",
		Body: "# Privacy Policy\n\nApplication documents are stored for the duration " +
			"of the review and deleted on request after a decision is made.\n",
		PageCount: 6,
		Required:  true,
	},
	{
		ID:          "media-release",
		Title:       "Media Release",
		Description: "Optional consent for streams, photos and promotional content",
		Body: "# Media Release\n\nOptional consent allowing the academy to use match " +
			"footage and photos in promotional material.\n",
		PageCount: 2,
		Required:  false,
	},
}
