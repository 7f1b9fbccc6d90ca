// Package sentiment derives a coarse polarity label from article text.
package sentiment

import (
	"strings"
	"unicode"
)

// Label is one of the three fixed sentiment values persisted to the sheet.
type Label string

const (
	Positive Label = "Positive"
	Neutral  Label = "Neutral"
	Negative Label = "Negative"
)

// Classification thresholds on the polarity score.
const (
	positiveThreshold = 0.1
	negativeThreshold = -0.1
)

// valence assigns a polarity weight in [-1, 1] to opinionated words, Swahili
// and English mixed since the monitored feeds publish in both.
var valence = map[string]float64{
	// positive
	"mafanikio": 0.8, "ushindi": 0.8, "pongezi": 0.7, "maendeleo": 0.6,
	"faida": 0.6, "amani": 0.6, "furaha": 0.7, "bora": 0.5, "nzuri": 0.5,
	"vizuri": 0.5, "imara": 0.4, "kuimarika": 0.5, "kupanda": 0.3,
	"msaada": 0.4, "ushirikiano": 0.4, "uwazi": 0.4, "haki": 0.3,
	"good": 0.5, "great": 0.7, "success": 0.8, "win": 0.6, "growth": 0.5,
	"improve": 0.5, "improved": 0.5, "peace": 0.6, "support": 0.4,
	"progress": 0.5, "positive": 0.6, "strong": 0.4, "best": 0.7,

	// negative
	"vurugu": -0.8, "mauaji": -0.9, "kifo": -0.8, "vifo": -0.8,
	"kukamatwa": -0.6, "kushambuliwa": -0.8, "vitisho": -0.7, "hofu": -0.6,
	"hasara": -0.6, "mgogoro": -0.6, "migogoro": -0.6, "rushwa": -0.7,
	"kashfa": -0.7, "uchochezi": -0.6, "ukandamizaji": -0.8, "mbaya": -0.5,
	"vibaya": -0.5, "kufungwa": -0.5, "kufungiwa": -0.5, "kupigwa": -0.7,
	"kutekwa": -0.8, "kuanguka": -0.4, "kushuka": -0.3, "matatizo": -0.4,
	"bad": -0.5, "crisis": -0.7, "attack": -0.7, "attacked": -0.7,
	"dead": -0.8, "death": -0.8, "killed": -0.9, "corruption": -0.7,
	"violence": -0.8, "threat": -0.6, "threats": -0.6, "arrested": -0.6,
	"banned": -0.6, "loss": -0.5, "failure": -0.6, "negative": -0.5,
	"fear": -0.6, "worst": -0.7,
}

// negators flip the polarity of the word that follows them.
var negators = map[string]bool{
	"si": true, "hakuna": true, "hapana": true, "bila": true,
	"not": true, "no": true, "never": true, "without": true,
}

// Score computes a polarity score in [-1, 1]. Words carry the valence from
// the lexicon, averaged over every scored word; text with no opinionated
// words scores 0.
func Score(text string) float64 {
	words := fields(strings.ToLower(text))
	var sum float64
	var scored int
	negate := false
	for _, w := range words {
		if negators[w] {
			negate = true
			continue
		}
		v, ok := valence[w]
		if !ok {
			negate = false
			continue
		}
		if negate {
			v = -v
			negate = false
		}
		sum += v
		scored++
	}
	if scored == 0 {
		return 0
	}
	score := sum / float64(scored)
	if score > 1 {
		return 1
	}
	if score < -1 {
		return -1
	}
	return score
}

// Classify maps text to a sentiment label via the fixed thresholds.
func Classify(text string) Label {
	score := Score(text)
	switch {
	case score > positiveThreshold:
		return Positive
	case score < negativeThreshold:
		return Negative
	default:
		return Neutral
	}
}

func fields(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}
