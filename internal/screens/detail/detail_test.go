package detail

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"

	"github.com/abhisek/karmaloop/internal/questionbank"
	"github.com/abhisek/karmaloop/internal/router"
	"github.com/abhisek/karmaloop/internal/screens/screentest"
	"github.com/abhisek/karmaloop/internal/store"
)

var profile = store.ProfileRecord{
	Strength:    "NEURAL ARTIST",
	Weakness:    "Public Speaking Anxiety",
	Opportunity: "AI Product Management",
	Threat:      "Automation of Entry-Level Coding",
	XPEarned:    500,
}

func TestCyclesSectors(t *testing.T) {
	d := New(profile, questionbank.SectorStrength)
	assert.Contains(t, d.View(100, 60), "STRENGTH ANALYSIS // NEURAL ARTIST")

	d.Update(screentest.Key(tea.KeyRight))
	assert.Equal(t, questionbank.SectorWeakness, d.Sector())

	d.Update(screentest.Key(tea.KeyLeft))
	d.Update(screentest.Key(tea.KeyLeft))
	assert.Equal(t, questionbank.SectorThreat, d.Sector())
}

func TestEscPops(t *testing.T) {
	d := New(profile, questionbank.SectorThreat)
	_, cmd := d.Update(screentest.Key(tea.KeyEscape))
	_, ok := screentest.Run(cmd).(router.PopScreenMsg)
	assert.True(t, ok)
}
