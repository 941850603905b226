package service

import (
	"testing"

	"applauncher-backend/models"

	"github.com/stretchr/testify/assert"
)

func TestExtractDelimited(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		want   string
		wantOK bool
	}{
		{"delimited", "Uitleg vooraf <<< Korte tekst. >>> en daarna", "Korte tekst.", true},
		{"fenced", "```text\n<<<Binnen een blok>>>\n```", "Binnen een blok", true},
		{"multiline", "<<<regel een\nregel twee>>>", "regel een\nregel twee", true},
		{"no markers", "```\nAlleen tekst\n```", "Alleen tekst", false},
		{"stray marker", "tekst >>> zonder begin", "tekst  zonder begin", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractDelimited(tt.raw)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestNormalizeEmphasis(t *testing.T) {
	in := "**Wat krijgt u?**\nU krijgt **extra** geld.\n  **Kop met spaties**  "
	want := "**Wat krijgt u?**\nU krijgt extra geld.\n  **Kop met spaties**  "
	assert.Equal(t, want, NormalizeEmphasis(in))
}

func TestLegalCitations(t *testing.T) {
	text := "Volgens artikel 4:84 van de Awb en Art. 12.3 van de regeling, niet artikelen 5."
	assert.Equal(t, []string{"artikel 4:84", "Art. 12.3"}, LegalCitations(text))
}

func TestMissingPreserved(t *testing.T) {
	original := "De Awb en de Wmo gelden."
	output := "De Awb geldt."
	assert.Equal(t, []string{"Wmo"}, MissingPreserved(original, output, []string{"Awb", "Wmo", "Jeugdwet"}))
}

func TestSystemPrompt(t *testing.T) {
	gen := SystemPrompt(StepGeneration, models.LevelB1, []string{"Awb"})
	assert.Contains(t, gen, "niveau (B1)")
	assert.Contains(t, gen, "Betreffende -> Over")
	assert.Contains(t, gen, "(C1→B1)")
	assert.Contains(t, gen, "'Awb'")
	assert.Contains(t, gen, "<<< en >>>")

	sel := SystemPrompt(StepSelection, models.LevelB2, nil)
	assert.Contains(t, sel, "B2-taalniveau")
	assert.Contains(t, sel, "Verstrekken -> Geven, aanbieden")
	assert.Contains(t, sel, "behouden blijven: geen.")
}

func TestProfileFallsBackToDefault(t *testing.T) {
	assert.Equal(t, Profile(models.LevelB1), Profile("C2"))
}

func TestSelectionUserPrompt(t *testing.T) {
	prompt := SelectionUserPrompt("origineel", []models.Candidate{
		{Temperature: 1.0, Text: "<<<eerste>>>"},
		{Temperature: 0.6, Text: "tweede"},
	}, nil)
	assert.Contains(t, prompt, "Originele Paragraaf:\n---\norigineel\n---")
	assert.Contains(t, prompt, "Variant 1 (gegenereerd met temperature=1):\neerste\n---")
	assert.Contains(t, prompt, "Variant 2 (gegenereerd met temperature=0.6):\ntweede\n---")
	assert.Contains(t, prompt, "mocht niet gewijzigd worden: geen.")
}
