package oracle

import (
	"fmt"
	"strings"

	"github.com/abhisek/karmaloop/internal/store"
)

const systemPromptBase = `You are the Oracle, the advisory AI inside KarmaLoop, a career self-assessment terminal for students and early-career developers. You speak in a calm, slightly futuristic terminal voice but your advice is practical and specific. Never invent job offers, salaries or people. Keep replies to 2-4 sentences.`

func buildSystemPrompt(p *store.ProfileRecord) string {
	var b strings.Builder
	b.WriteString(systemPromptBase)

	if p == nil {
		b.WriteString("\n\nThe user has not completed a neural scan yet. Encourage them to run one from the dashboard.")
		return b.String()
	}

	b.WriteString("\n\nUser SWOT profile:\n")
	b.WriteString(fmt.Sprintf("- Strength (archetype): %s\n", p.Strength))
	b.WriteString(fmt.Sprintf("- Weakness (blocker): %s\n", p.Weakness))
	b.WriteString(fmt.Sprintf("- Opportunity (path): %s\n", p.Opportunity))
	b.WriteString(fmt.Sprintf("- Threat: %s\n", p.Threat))
	b.WriteString(fmt.Sprintf("- XP: %d\n", p.XPEarned))
	b.WriteString("\nGround your advice in this profile.")
	return b.String()
}
