package questionbank

func init() {
	if err := validateQuestions(seedQuestions); err != nil {
		panic(err)
	}
	b = buildBank(seedQuestions)
}

func choice(id, prompt string, opts ...Option) Question {
	s, _ := SectorOf(id)
	return Question{ID: id, Prompt: prompt, Kind: KindChoice, Sector: s, Options: opts}
}

func scale(id, prompt string) Question {
	s, _ := SectorOf(id)
	return Question{ID: id, Prompt: prompt, Kind: KindScalar, Sector: s, Min: 1, Max: 5}
}

var seedQuestions = []Question{
	// Strength: identifies the archetype.
	choice("s1", "When a project fails, your instinct is:",
		Option{"Analyze the data to find the bug", "Analytical"},
		Option{"Rally the team to keep morale high", "Leader"},
		Option{"Brainstorm a completely new solution", "Creative"},
		Option{"Create a checklist to fix it step-by-step", "Operational"},
	),
	scale("s2", "I can explain complex ideas simply to people who don't understand them."),
	choice("s3", "In a hackathon team, you function best as:",
		Option{"The Architect (Planning & Structure)", "Operational"},
		Option{"The Pitcher (Presentation & Selling)", "Leader"},
		Option{"The Hacker (Execution & Building)", "Analytical"},
		Option{"The Designer (UX & Vision)", "Creative"},
	),
	scale("s4", "I lose track of time when I am solving a difficult problem."),
	choice("s5", "Which output makes you proudest?",
		Option{"A perfectly optimized algorithm", "Analytical"},
		Option{"A team that works smoothly together", "Leader"},
		Option{"A beautiful, unique user interface", "Creative"},
		Option{"A completed project delivered on time", "Operational"},
	),

	// Weakness: identifies the blocker.
	choice("w1", "What stops you from starting a new skill?",
		Option{"I don't know where to start", "Clarity Gap"},
		Option{"I'm afraid I'll be bad at it", "Confidence Gap"},
		Option{"I get bored too quickly", "Consistency Gap"},
		Option{"I don't have enough time", "Discipline Gap"},
	),
	scale("w2", "I tend to procrastinate until the deadline is very close."),
	choice("w3", "When you make a mistake, you usually:",
		Option{"Hide it and try to fix it silently", "Fear"},
		Option{"Overthink it for days", "Anxiety"},
		Option{"Blame the situation", "Deflection"},
		Option{"Ask for help immediately", "Growth"},
	),
	scale("w4", "Public speaking or presenting my work makes me anxious."),
	choice("w5", "Your biggest academic struggle is:",
		Option{"Understanding abstract concepts", "Logic"},
		Option{"Memorizing theory", "Memory"},
		Option{"Applying theory to practicals", "Application"},
		Option{"Staying interested in the syllabus", "Engagement"},
	),

	// Opportunity: identifies the path.
	choice("o1", "If you could intern anywhere tomorrow, you'd pick:",
		Option{"A Tech Giant (Google/Microsoft)", "Corporate"},
		Option{"A Fast-paced Startup", "Startup"},
		Option{"A Creative Studio", "Design"},
		Option{"A Research Lab", "R&D"},
	),
	scale("o2", "I actively read news about tech trends and market shifts."),
	choice("o3", "How do you view your current degree?",
		Option{"It's exactly what I want to do", "Aligned"},
		Option{"It's a foundation, but I'll pivot", "Pivot"},
		Option{"It's just a backup plan", "Backup"},
		Option{"I have no idea why I'm here", "Lost"},
	),
	scale("o4", "I am willing to learn a skill completely outside my field."),
	choice("o5", "The 'Dream Job' for you offers:",
		Option{"High Stability & Pay", "Security"},
		Option{"Freedom & Creativity", "Freedom"},
		Option{"Power & Influence", "Power"},
		Option{"Impact & Solving Problems", "Impact"},
	),

	// Threat: identifies the risk.
	scale("t1", "I feel like my peers are moving much faster than I am."),
	choice("t2", "What is your biggest career fear?",
		Option{"Being replaced by AI/Automation", "AI Obsolescence"},
		Option{"Choosing the wrong career path", "Direction Error"},
		Option{"Burning out before I hit 30", "Burnout"},
		Option{"Not making enough money", "Financial Instability"},
	),
	scale("t3", "I feel pressure from family/society to follow a specific path."),
	choice("t4", "How prepared are you for a job interview right now?",
		Option{"I'd crush it", "High"},
		Option{"I'd survive", "Med"},
		Option{"I'd freeze up", "Low"},
		Option{"I have nothing to show", "Zero"},
	),
	choice("t5", "The biggest barrier to your success is:",
		Option{"Lack of Guidance/Mentors", "Guidance"},
		Option{"Lack of Financial Resources", "Money"},
		Option{"Lack of Motivation", "Drive"},
		Option{"Distractions (Phone/Games/Socials)", "Focus"},
	),
}
