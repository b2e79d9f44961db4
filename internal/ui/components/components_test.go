package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/karmaloop/internal/progression"
	"github.com/abhisek/karmaloop/internal/questionbank"
)

func key(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func text(s string) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: rune(s[0]), Text: s}
}

func TestChoiceListNavigation(t *testing.T) {
	c := NewChoiceList([]questionbank.Option{
		{Label: "Analyze it", Tag: "Analytical"},
		{Label: "Rally the team", Tag: "Leader"},
		{Label: "Try something new", Tag: "Creative"},
	})

	c = c.Update(key(tea.KeyUp))
	if c.Selected != 0 {
		t.Errorf("up at top moved selection to %d", c.Selected)
	}
	c = c.Update(key(tea.KeyDown))
	c = c.Update(key(tea.KeyDown))
	c = c.Update(key(tea.KeyDown))
	if c.Selected != 2 {
		t.Errorf("selected = %d, want 2", c.Selected)
	}
	c = c.Update(key(tea.KeyEnter))
	if !c.Chosen || c.Value() != "Creative" {
		t.Errorf("chosen=%v value=%q", c.Chosen, c.Value())
	}

	// Confirmed lists ignore further input.
	c = c.Update(key(tea.KeyUp))
	if c.Selected != 2 {
		t.Error("chosen list should not move")
	}
}

func TestChoiceListDigitShortcut(t *testing.T) {
	c := NewChoiceList([]questionbank.Option{{Label: "A", Tag: "a"}, {Label: "B", Tag: "b"}})
	c = c.Update(text("5"))
	if c.Chosen {
		t.Error("out of range digit should be ignored")
	}
	c = c.Update(text("2"))
	if !c.Chosen || c.Value() != "b" {
		t.Errorf("chosen=%v value=%q", c.Chosen, c.Value())
	}
}

func TestSliderDefaultsAndBounds(t *testing.T) {
	s := NewSlider(1, 5, questionbank.ScalarDisplayDefault)
	if s.Answer() != "3" {
		t.Errorf("default answer = %q, want 3", s.Answer())
	}
	for i := 0; i < 10; i++ {
		s = s.Update(key(tea.KeyRight))
	}
	if s.Value != 5 {
		t.Errorf("value = %d, want clamped 5", s.Value)
	}
	s = s.Update(text("2"))
	if s.Value != 2 {
		t.Errorf("value = %d, want 2", s.Value)
	}
	s = s.Update(text("9"))
	if s.Value != 2 {
		t.Errorf("out of range digit changed value to %d", s.Value)
	}
	s = s.Update(key(tea.KeyEnter))
	if !s.Chosen {
		t.Error("enter should confirm")
	}
	if NewSlider(1, 5, 42).Value != 5 {
		t.Error("initial value should be clamped")
	}
}

func TestMenuSkipsDisabled(t *testing.T) {
	fired := ""
	m := NewMenu([]MenuItem{
		{Label: "LOCKED", Disabled: true},
		{Label: "SCAN", Action: func() tea.Cmd { fired = "scan"; return nil }},
		{Label: "ORACLE", Disabled: true},
		{Label: "EXIT", Action: func() tea.Cmd { fired = "exit"; return nil }},
	})
	if m.Current() != "SCAN" {
		t.Fatalf("initial selection = %q, want SCAN", m.Current())
	}
	m, _ = m.Update(key(tea.KeyDown))
	if m.Current() != "EXIT" {
		t.Errorf("selection after down = %q, want EXIT", m.Current())
	}
	m, _ = m.Update(key(tea.KeyEnter))
	if fired != "exit" {
		t.Errorf("fired = %q, want exit", fired)
	}
}

func TestBadgeDeckShowsLockedGlyph(t *testing.T) {
	ledger := progression.Derive(nil)
	out := BadgeDeck(ledger.Badges, 80)
	if !strings.Contains(out, progression.LockedTitle) {
		t.Error("locked badges should render the LOCKED title")
	}
	if strings.Contains(out, "NEURAL PIONEER") {
		t.Error("locked badge leaked its title")
	}
}

func TestMeterLit(t *testing.T) {
	cases := []struct {
		value, max, want int
	}{
		{0, 15, 0},
		{5, 15, 10},
		{15, 15, 30},
		{900, 600, 30},
		{700, 0, 30},
		{-1, 10, 0},
	}
	for _, c := range cases {
		if got := (Meter{Value: c.value, Max: c.max}).Lit(30); got != c.want {
			t.Errorf("Lit(%d/%d) = %d, want %d", c.value, c.max, got, c.want)
		}
	}
}

func TestMeterView(t *testing.T) {
	out := Meter{Label: "LVL 2", Value: 3, Max: 15, Width: 40, Readout: true}.View()
	if !strings.Contains(out, "LVL 2") || !strings.Contains(out, "03/15") {
		t.Fatalf("missing label or readout: %q", out)
	}
	if strings.Count(out, "▰")+strings.Count(out, "▱") < 4 {
		t.Fatalf("bar too short: %q", out)
	}
}

func TestMenuFocusAndEdges(t *testing.T) {
	m := NewMenu([]MenuItem{{Label: "SCAN"}, {Label: "ORACLE", Disabled: true}, {Label: "EXIT"}})

	m.Focus("ORACLE")
	if m.Current() != "SCAN" {
		t.Errorf("focus on disabled moved cursor to %q", m.Current())
	}
	m.Focus("EXIT")
	m, _ = m.Update(key(tea.KeyDown))
	if m.Current() != "EXIT" {
		t.Errorf("cursor ran past the end: %q", m.Current())
	}
	m, _ = m.Update(key(tea.KeyUp))
	if m.Current() != "SCAN" {
		t.Errorf("up should skip disabled item, got %q", m.Current())
	}
	if !strings.Contains(m.View(30), "▸ SCAN") {
		t.Errorf("selected item not marked:\n%s", m.View(30))
	}
}

func TestButtonNeedsFocus(t *testing.T) {
	pressed := 0
	b := NewButton("REWRITE IDENTITY", func() tea.Cmd { pressed++; return nil })

	b, _ = b.Update(key(tea.KeyEnter))
	if pressed != 0 {
		t.Fatal("unfocused button fired")
	}
	b.Focused = true
	b, _ = b.Update(key(tea.KeyEnter))
	b, _ = b.Update(key(tea.KeySpace))
	if pressed != 2 {
		t.Errorf("pressed = %d, want 2", pressed)
	}
	if !strings.Contains(b.View(), "REWRITE IDENTITY") {
		t.Error("label missing from view")
	}
}

func TestContentWidthClamps(t *testing.T) {
	for _, c := range []struct{ in, want int }{{10, 20}, {60, 54}, {200, 72}} {
		if got := ContentWidth(c.in); got != c.want {
			t.Errorf("ContentWidth(%d) = %d, want %d", c.in, got, c.want)
		}
	}
}
