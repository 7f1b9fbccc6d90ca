package classify

import "strings"

// ImpactLabel is one of the three fixed media-sector impact values.
type ImpactLabel string

const (
	DirectImpact   ImpactLabel = "Direct Impact on Media Sector"
	IndirectImpact ImpactLabel = "Indirect / Contextual Impact"
	NoImpact       ImpactLabel = "No Direct Impact"
)

// Themes are not mutually exclusive, so rule order encodes precedence:
// anything touching the media sector itself wins over contextual themes.
var (
	directMarkers = []string{
		"Media Freedom", "Vyombo vya Habari", "Journalist Safety",
		"Media Economy", "Ukiukaji", "Malalamiko",
	}
	indirectMarkers = []string{
		"Political Coverage", "Public Sentiment", "Social", "Human Rights",
	}
)

// Impact derives the media-sector impact category from the article's themes.
func Impact(allThemes []string) ImpactLabel {
	joined := strings.Join(allThemes, ", ")
	for _, marker := range directMarkers {
		if strings.Contains(joined, marker) {
			return DirectImpact
		}
	}
	for _, marker := range indirectMarkers {
		if strings.Contains(joined, marker) {
			return IndirectImpact
		}
	}
	return NoImpact
}
