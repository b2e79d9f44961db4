// Package insight builds the per-sector detail view of a profile: the
// dashboard quadrant labels, an analysis write-up and recommended resources.
package insight

import (
	"fmt"
	"strings"

	"github.com/abhisek/karmaloop/internal/questionbank"
	"github.com/abhisek/karmaloop/internal/store"
)

// ResourceKind classifies a recommended resource.
type ResourceKind string

const (
	ResourceVideo  ResourceKind = "video"
	ResourceJob    ResourceKind = "job"
	ResourceMentor ResourceKind = "mentor"
)

// Resource is one recommendation card.
type Resource struct {
	Kind     ResourceKind
	Title    string
	Subtitle string // company or mentor role
	Location string // jobs only
	Icon     string // mentors only
	Action   string
}

// Paragraph is a labelled block of the analysis.
type Paragraph struct {
	Label string
	Text  string
}

// Content is the detail view for one sector.
type Content struct {
	Sector     questionbank.Sector
	Heading    string // e.g. "STRENGTH ANALYSIS // NEURAL ARTIST"
	Title      string // the sector's pick
	Paragraphs []Paragraph
	Resources  []Resource
}

// Quadrant is the dashboard tile for one sector.
type Quadrant struct {
	Sector  questionbank.Sector
	Title   string
	Subtext string
	Action  string
}

// Pick returns the profile's value for a sector.
func Pick(p store.ProfileRecord, s questionbank.Sector) string {
	switch s {
	case questionbank.SectorStrength:
		return p.Strength
	case questionbank.SectorWeakness:
		return p.Weakness
	case questionbank.SectorOpportunity:
		return p.Opportunity
	case questionbank.SectorThreat:
		return p.Threat
	default:
		return ""
	}
}

// Quadrants returns the four dashboard tiles in scan order.
func Quadrants(p store.ProfileRecord) []Quadrant {
	return []Quadrant{
		{questionbank.SectorStrength, p.Strength, "Primary Operating Mode", "UPGRADE PROTOCOLS"},
		{questionbank.SectorWeakness, p.Weakness, "System Vulnerability Detected", "PATCH BUG"},
		{questionbank.SectorOpportunity, p.Opportunity, "Optimal Market Fit", "ACCESS DATA"},
		{questionbank.SectorThreat, p.Threat, "External Risk Factor", "ACTIVATE SHIELD"},
	}
}

// ParseSector accepts a sector name or its first letter.
func ParseSector(s string) (questionbank.Sector, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "s", "strength":
		return questionbank.SectorStrength, nil
	case "w", "weakness":
		return questionbank.SectorWeakness, nil
	case "o", "opportunity":
		return questionbank.SectorOpportunity, nil
	case "t", "threat":
		return questionbank.SectorThreat, nil
	default:
		return "", fmt.Errorf("unknown sector %q (want strength, weakness, opportunity or threat)", s)
	}
}

// For builds the detail content of sector s for profile p.
func For(p store.ProfileRecord, s questionbank.Sector) (Content, error) {
	pick := Pick(p, s)
	var c Content
	switch s {
	case questionbank.SectorStrength:
		c = strengthContent(pick)
	case questionbank.SectorWeakness:
		c = weaknessContent(pick)
	case questionbank.SectorOpportunity:
		c = opportunityContent(pick)
	case questionbank.SectorThreat:
		c = threatContent(pick)
	default:
		return Content{}, fmt.Errorf("unknown sector %q", s)
	}
	c.Sector = s
	c.Title = pick
	c.Heading = fmt.Sprintf("%s ANALYSIS // %s", questionbank.SectorDisplayName(s), pick)
	return c, nil
}

// Text renders the paragraphs as plain text, one block per paragraph.
func (c Content) Text() string {
	blocks := make([]string, len(c.Paragraphs))
	for i, p := range c.Paragraphs {
		blocks[i] = p.Label + ": " + p.Text
	}
	return strings.Join(blocks, "\n\n")
}

func video(title string) Resource {
	return Resource{Kind: ResourceVideo, Title: title, Subtitle: "YOUTUBE", Action: "Watch Now"}
}

func strengthContent(archetype string) Content {
	return Content{
		Paragraphs: []Paragraph{
			{"NEURAL SCAN COMPLETE", fmt.Sprintf("Your cognitive architecture is heavily optimized for %s.", archetype)},
			{"ANALYSIS", "You possess a rare ability to deconstruct complex chaotic systems into linear, executable logic. " +
				"This trait is found in only 4% of the developer population. Your code isn't just functional; it's structural art. " +
				"You see patterns where others see noise."},
			{"OPTIMIZATION PROTOCOL", "To maximize this trait, you must move beyond syntax. Stop writing code; start designing systems. " +
				"Focus on Scalability, Microservices Architecture, and High-Level System Design. " +
				"Your brain is a blueprint engine. Feed it bigger problems."},
		},
		Resources: []Resource{
			video("Advanced System Design Patterns"),
			video("Mastering Data Structures"),
			video("The Art of Scalable Code"),
		},
	}
}

func weaknessContent(blocker string) Content {
	return Content{
		Paragraphs: []Paragraph{
			{"SYSTEM ALERT", fmt.Sprintf("Critical vulnerability detected in sector '%s'.", blocker)},
			{"DIAGNOSTIC", "While your technical core is operating at peak efficiency, your external interface layer is lagging. " +
				"You are likely under-selling your value by 40-60%. " +
				"In the current market, \"Quiet Competence\" is often mistaken for \"Lack of Initiative\"."},
			{"PATCH REQUIRED", "This is not a personality flaw; it is a missing skill module. " +
				"You need to treat 'Communication' as an API. Learn to document your wins, speak in meetings, " +
				"and articulate your architectural decisions. If you don't broadcast your signal, no one will tune in."},
		},
		Resources: []Resource{
			video("Public Speaking for Introverts"),
			video("Building Confidence in 5 Mins"),
			video("Imposter Syndrome Guide"),
		},
	}
}

func opportunityContent(path string) Content {
	return Content{
		Paragraphs: []Paragraph{
			{"MARKET SCAN", fmt.Sprintf("The algorithm has identified a high-probability trajectory: %s.", path)},
			{"DATA MATCH", "Your skill matrix aligns 85% with the current demands of the Tier-1 Tech Ecosystem (Pune, Bangalore, Remote). " +
				"The market is shifting away from generic coding towards 'Specialized Problem Solving'. " +
				"You are positioned perfectly to ride this wave."},
			{"EXECUTION STRATEGY", "Do not apply for 'Junior' roles. Your profile signals 'Mid-Level Potential'. " +
				"Target companies building high-scale products (FinTech, AI, Cloud Infra). " +
				"Update your portfolio to showcase solutions, not just projects."},
		},
		Resources: []Resource{
			{Kind: ResourceJob, Title: "Jr. React Developer", Subtitle: "NeuralNet AI", Location: "Remote", Action: "Apply Now"},
			{Kind: ResourceJob, Title: "Growth Hacker", Subtitle: "FinTech Flow", Location: "Pune", Action: "Apply Now"},
			{Kind: ResourceJob, Title: "Product Intern", Subtitle: "Stratos", Location: "Mumbai", Action: "Apply Now"},
		},
	}
}

func threatContent(risk string) Content {
	return Content{
		Paragraphs: []Paragraph{
			{"RISK FACTOR", fmt.Sprintf("'%s' identified in long-term projection.", risk)},
			{"FORECAST", "The era of 'Routine Coding' is ending. By 2026, AI agents will handle 90% of boilerplate generation. " +
				"If your value proposition is solely \"I write code,\" you are at risk of obsolescence."},
			{"MITIGATION", "You must pivot up the value chain. Move from 'Builder' to 'Architect'. " +
				"Focus on the human-centric skills that AI cannot replicate: Empathy, Complex Decision Making, and Leadership. " +
				"Become the one who directs the AI, not the one replaced by it."},
		},
		Resources: []Resource{
			{Kind: ResourceMentor, Title: "Dr. Arjun V.", Subtitle: "Career Psychologist", Icon: "🧠", Action: "Request Chat"},
			{Kind: ResourceMentor, Title: "Sarah J.", Subtitle: "Industry Veteran", Icon: "🚀", Action: "Book Session"},
		},
	}
}
