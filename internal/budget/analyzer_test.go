package budget

import (
	"reflect"
	"strings"
	"testing"
)

func TestAnalyze_Buckets(t *testing.T) {
	text := strings.Join([]string{
		"Community yoga in the park - free entry",
		"Jazz night, tickets $25",
		"Some unrelated line about the weather",
	}, "\n")

	r := Analyze(text, "50")

	if r.FreeCount != 1 {
		t.Errorf("Expected 1 free line, got %d", r.FreeCount)
	}
	if r.PaidCount != 1 {
		t.Errorf("Expected 1 paid line, got %d", r.PaidCount)
	}
	if r.MaxBudget != "50" {
		t.Errorf("Expected echoed budget '50', got '%s'", r.MaxBudget)
	}
	if r.Disclaimer != Disclaimer {
		t.Errorf("Expected static disclaimer, got '%s'", r.Disclaimer)
	}
}

func TestAnalyze_Deterministic(t *testing.T) {
	text := "Free comedy night\nTickets from $30\nNothing here"

	first := Analyze(text, "100")
	second := Analyze(text, "100")

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Analyze is not deterministic: %+v vs %+v", first, second)
	}
}

func TestAnalyze_SampleCap(t *testing.T) {
	lines := make([]string, 8)
	for i := range lines {
		lines[i] = "free admission to gallery " + string(rune('a'+i))
	}

	r := Analyze(strings.Join(lines, "\n"), "100")

	if r.FreeCount != 8 {
		t.Errorf("Expected free count 8, got %d", r.FreeCount)
	}
	if len(r.FreeSamples) != 5 {
		t.Errorf("Expected exactly 5 free samples, got %d", len(r.FreeSamples))
	}
	for i, sample := range r.FreeSamples {
		if sample != lines[i] {
			t.Errorf("Sample %d: expected '%s', got '%s'", i, lines[i], sample)
		}
	}
	if r.PaidCount != 0 {
		t.Errorf("Expected paid count 0, got %d", r.PaidCount)
	}
}

func TestAnalyze_FreePrecedesPaid(t *testing.T) {
	r := Analyze("free entry but $5 donation", "100")

	if r.FreeCount != 1 {
		t.Errorf("Expected line in free bucket, got free=%d", r.FreeCount)
	}
	if r.PaidCount != 0 {
		t.Errorf("Line must not land in both buckets, got paid=%d", r.PaidCount)
	}
}

func TestAnalyze_CaseInsensitiveAndTrimmed(t *testing.T) {
	r := Analyze("   FREE ADMISSION to the museum   ", "100")

	if r.FreeCount != 1 {
		t.Fatalf("Expected case-insensitive match, got free=%d", r.FreeCount)
	}
	if r.FreeSamples[0] != "FREE ADMISSION to the museum" {
		t.Errorf("Expected trimmed verbatim sample, got '%s'", r.FreeSamples[0])
	}
}

func TestAnalyze_UnmatchedLinesIgnored(t *testing.T) {
	r := Analyze("a line about nothing in particular\nanother plain line", "100")

	if r.FreeCount != 0 || r.PaidCount != 0 {
		t.Errorf("Expected no matches, got free=%d paid=%d", r.FreeCount, r.PaidCount)
	}
}
