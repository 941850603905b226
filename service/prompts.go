package service

import (
	"fmt"
	"regexp"
	"strings"

	"applauncher-backend/models"
)

// LevelProfile describes how to write for one reading level.
type LevelProfile struct {
	Description string
	Guidelines  []string
	Examples    []Substitution
	// SourceLevel is the level the substitution examples start from.
	SourceLevel string
}

// Substitution is an example of a difficult word and its simpler form.
type Substitution struct {
	From string
	To   string
}

var levelProfiles = map[models.Level]LevelProfile{
	models.LevelB1: {
		Description: "Het B1-niveau kenmerkt zich door duidelijk en eenvoudig taalgebruik, " +
			"geschikt voor een breed publiek met basisvaardigheden in de taal.",
		Guidelines: []string{
			"Gebruik korte zinnen en vermijd lange, complexe zinsconstructies.",
			"Vervang moeilijke woorden door meer gangbare alternatieven.",
			"Leg technische termen en (ambtelijk) jargon uit in eenvoudige bewoordingen.",
			"Gebruik actieve zinsconstructies waar mogelijk.",
			"Vermijd passieve zinnen en ingewikkelde grammaticale constructies.",
			"Gebruik concrete voorbeelden om abstracte concepten te verduidelijken.",
		},
		Examples: []Substitution{
			{"Betreffende", "Over"},
			{"Creëren", "Maken"},
			{"Prioriteit", "Wat eerst moet, voorrang"},
			{"Relevant", "Belangrijk (voor dit onderwerp)"},
			{"Verstrekken", "Geven"},
		},
		SourceLevel: "C1",
	},
	models.LevelB2: {
		Description: "Het B2-niveau kenmerkt zich door helder en gedetailleerd taalgebruik, " +
			"geschikt voor een publiek met gevorderde taalvaardigheden. " +
			"De tekst moet toegankelijk zijn zonder overmatig gebruik van complexe termen, " +
			"gericht op lezers die bekend zijn met de basisprincipes van de taal en in staat zijn om zowel " +
			"praktische als theoretische onderwerpen te begrijpen.",
		Guidelines: []string{
			"Gebruik korte tot middelmatige zinnen en vermijd extreme complexiteit, maar behoud enige diepgang in de formulering.",
			"Vervang zeer complexe woorden door alternatieven die nauwkeurig zijn maar minder specialistisch.",
			"Leg technische termen en ambtelijk jargon duidelijk uit, waarbij je enige mate van detail behoudt om de nauwkeurigheid te waarborgen.",
			"Gebruik actieve zinsconstructies waar mogelijk, maar passieve zinnen kunnen gebruikt worden als dit de tekst logischer maakt.",
			"Beperk ingewikkelde grammaticale constructies, maar behoud een zekere variatie in de zinsopbouw.",
			"Gebruik passende en concrete voorbeelden om abstracte of lastigere concepten uit te leggen, zodat de lezer een context heeft om de informatie te begrijpen.",
		},
		Examples: []Substitution{
			{"Betreffende", "Met betrekking tot, Over"},
			{"Creëren", "Maken, ontwikkelen"},
			{"Prioriteit", "Belangrijkste punt, voorrang"},
			{"Relevant", "Van toepassing, belangrijk"},
			{"Verstrekken", "Geven, aanbieden"},
		},
		SourceLevel: "C2",
	},
}

// Profile returns the profile for level, falling back to the default level.
func Profile(level models.Level) LevelProfile {
	if p, ok := levelProfiles[level]; ok {
		return p
	}
	return levelProfiles[models.DefaultLevel]
}

// PromptStep selects which of the two simplifier prompts to build.
type PromptStep int

const (
	StepGeneration PromptStep = iota
	StepSelection
)

const (
	openMarker  = "<<<"
	closeMarker = ">>>"
)

// SystemPrompt renders the system prompt for step at level.
func SystemPrompt(step PromptStep, level models.Level, preserved []string) string {
	p := Profile(level)
	var b strings.Builder

	switch step {
	case StepSelection:
		fmt.Fprintf(&b, "Je taak is om de beste of gecombineerde versie te selecteren uit eerdere herschrijvingen (in %s-taalniveau).\n", level)
	default:
		fmt.Fprintf(&b, "Je taak is om de volgende tekst te analyseren en te herschrijven naar het gewenste niveau (%s).\n", level)
	}
	b.WriteString(p.Description)
	b.WriteString("\nRichtlijnen:\n")
	for _, g := range p.Guidelines {
		b.WriteString("- ")
		b.WriteString(g)
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "Voorbeelden van vereenvoudiging (%s→%s):\n", p.SourceLevel, level)
	for _, ex := range p.Examples {
		fmt.Fprintf(&b, "- %s -> %s\n", ex.From, ex.To)
	}
	fmt.Fprintf(&b, "BELANGRIJK: De volgende woorden moeten exact behouden blijven: %s.\n", quoteList(preserved))
	b.WriteString("Een regel die helemaal tussen dubbele sterretjes staat (**zo**) is een kop: vereenvoudig de kop en behoud de sterretjes. ")
	b.WriteString("Bij nadruk midden in een zin vereenvoudig je de tekst en laat je de sterretjes weg.\n")

	switch step {
	case StepSelection:
		fmt.Fprintf(&b, "Plaats alleen het definitieve herschreven resultaat tussen %s en %s (geen extra uitleg).", openMarker, closeMarker)
	default:
		fmt.Fprintf(&b, "Plaats alleen de herschreven tekst tussen %s en %s. Neem korte, niet-te-vereenvoudigen tekst ook zo over.", openMarker, closeMarker)
	}
	return b.String()
}

// SelectionUserPrompt presents the original chunk and the usable candidates.
func SelectionUserPrompt(original string, candidates []models.Candidate, preserved []string) string {
	var b strings.Builder
	b.WriteString("Originele Paragraaf:\n---\n")
	b.WriteString(original)
	b.WriteString("\n---\nGegenereerde Varianten:\n")
	for i, c := range candidates {
		fmt.Fprintf(&b, "Variant %d (gegenereerd met temperature=%g):\n%s\n---\n", i+1, c.Temperature, StripMarkers(c.Text))
	}
	words := "geen"
	if len(preserved) > 0 {
		words = strings.Join(preserved, ", ")
	}
	fmt.Fprintf(&b, "Kies de beste of combineer tot de definitieve versie tussen %s en %s. De lijst behouden woorden mocht niet gewijzigd worden: %s.", openMarker, closeMarker, words)
	return b.String()
}

func quoteList(words []string) string {
	if len(words) == 0 {
		return "geen"
	}
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = "'" + w + "'"
	}
	return strings.Join(quoted, ", ")
}

var (
	leadingFence  = regexp.MustCompile("^```[a-zA-Z]*\\n?")
	trailingFence = regexp.MustCompile("\\n?```$")
	delimited     = regexp.MustCompile(`(?s)<<<(.*?)>>>`)
	headingLine   = regexp.MustCompile(`^\s*\*\*[^*]+\*\*\s*$`)
	inlineBold    = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	lawArticle    = regexp.MustCompile(`\b(?:[Aa]rtikel|[Aa]rt\.)\s*\d+(?:[.:]\w+)*\b`)
)

// StripFences removes a Markdown code fence around s.
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	s = leadingFence.ReplaceAllString(s, "")
	s = trailingFence.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// ExtractDelimited returns the text between the first pair of sentinel
// markers. Without markers it returns the fence-stripped response with any
// stray markers removed, and ok is false.
func ExtractDelimited(raw string) (text string, ok bool) {
	s := StripFences(raw)
	if m := delimited.FindStringSubmatch(s); m != nil {
		return strings.TrimSpace(m[1]), true
	}
	return strings.TrimSpace(StripMarkers(s)), false
}

// StripMarkers removes every sentinel marker from s.
func StripMarkers(s string) string {
	s = strings.ReplaceAll(s, openMarker, "")
	return strings.ReplaceAll(s, closeMarker, "")
}

// NormalizeEmphasis keeps ** on heading lines and drops it from inline emphasis.
func NormalizeEmphasis(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if headingLine.MatchString(line) {
			continue
		}
		lines[i] = inlineBold.ReplaceAllString(line, "$1")
	}
	return strings.Join(lines, "\n")
}

// LegalCitations returns article references such as "artikel 4:84" found in text.
func LegalCitations(text string) []string {
	return lawArticle.FindAllString(text, -1)
}

// MissingPreserved lists the preserved words present in original but absent
// from output.
func MissingPreserved(original, output string, preserved []string) []string {
	var missing []string
	for _, w := range preserved {
		if strings.Contains(original, w) && !strings.Contains(output, w) {
			missing = append(missing, w)
		}
	}
	return missing
}
