package questionbank

import (
	"strings"
	"testing"
)

func TestLen(t *testing.T) {
	if Len() != 20 {
		t.Errorf("got %d questions, want 20", Len())
	}
}

func TestScanOrder(t *testing.T) {
	want := []string{
		"s1", "s2", "s3", "s4", "s5",
		"w1", "w2", "w3", "w4", "w5",
		"o1", "o2", "o3", "o4", "o5",
		"t1", "t2", "t3", "t4", "t5",
	}
	all := All()
	for i, id := range want {
		if all[i].ID != id {
			t.Errorf("position %d: got %q, want %q", i, all[i].ID, id)
		}
		if IndexOf(id) != i {
			t.Errorf("IndexOf(%q) = %d, want %d", id, IndexOf(id), i)
		}
	}
}

func TestBySector(t *testing.T) {
	for _, s := range AllSectors() {
		qs := BySector(s)
		if len(qs) != 5 {
			t.Errorf("BySector(%q): got %d, want 5", s, len(qs))
		}
		for _, q := range qs {
			if q.Sector != s {
				t.Errorf("question %q in %q has sector %q", q.ID, s, q.Sector)
			}
		}
	}
}

func TestByID(t *testing.T) {
	q, err := ByID("t2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Kind != KindChoice || !q.HasTag("AI Obsolescence") {
		t.Errorf("t2 = %+v, want a choice carrying AI Obsolescence", q)
	}

	if _, err := ByID("x9"); err == nil {
		t.Fatal("expected error for unknown id")
	}
	if IndexOf("x9") != -1 {
		t.Error("IndexOf unknown id should be -1")
	}
}

func TestAt_OutOfRange(t *testing.T) {
	for _, i := range []int{-1, 20} {
		if _, err := At(i); err == nil {
			t.Errorf("At(%d): expected error", i)
		}
	}
}

func TestScalarRanges(t *testing.T) {
	for _, q := range All() {
		if q.Kind != KindScalar {
			continue
		}
		if q.Min != 1 || q.Max != 5 {
			t.Errorf("%s range = [%d,%d], want [1,5]", q.ID, q.Min, q.Max)
		}
	}
}

// The scalar control starts at 3 no matter the range. Kept as a literal so
// a range change does not silently move the starting point.
func TestScalarDisplayDefault(t *testing.T) {
	if ScalarDisplayDefault != 3 {
		t.Errorf("ScalarDisplayDefault = %d, want 3", ScalarDisplayDefault)
	}
}

func TestSectorOf(t *testing.T) {
	tests := []struct {
		id   string
		want Sector
		ok   bool
	}{
		{"s1", SectorStrength, true},
		{"w5", SectorWeakness, true},
		{"o3", SectorOpportunity, true},
		{"t2", SectorThreat, true},
		{"x1", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := SectorOf(tt.id)
		if got != tt.want || ok != tt.ok {
			t.Errorf("SectorOf(%q) = (%q, %v), want (%q, %v)", tt.id, got, ok, tt.want, tt.ok)
		}
	}
}

func TestValidateQuestions_Errors(t *testing.T) {
	bad := []Question{
		{ID: "s1", Prompt: "a", Kind: KindChoice, Sector: SectorStrength, Options: []Option{{"x", "A"}, {"y", "A"}}},
		{ID: "s1", Prompt: "b", Kind: KindScalar, Sector: SectorStrength, Min: 5, Max: 1},
		{ID: "q1", Prompt: " ", Kind: KindChoice, Sector: SectorThreat},
		{ID: "w1", Prompt: "c", Kind: KindScalar, Sector: SectorThreat, Min: 1, Max: 5},
	}
	err := validateQuestions(bad)
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{
		"duplicate question ID",
		"repeats tag",
		"empty range",
		"no sector prefix",
		"empty prompt",
		"needs at least 2 options",
		"prefix implies weakness",
	} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error missing %q:\n%v", want, err)
		}
	}
}

func TestValidateQuestions_Seed(t *testing.T) {
	if err := validateQuestions(seedQuestions); err != nil {
		t.Fatalf("seed catalog invalid: %v", err)
	}
}
