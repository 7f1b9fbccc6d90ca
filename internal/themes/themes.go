// Package themes holds the fixed media-policy theme lexicon and keyword matching.
package themes

import (
	"regexp"
	"strings"
)

// Canonical theme labels. The Swahili part is what editors see in the sheet,
// the English part in parentheses is what the impact rules and the AI
// classifier key on.
const (
	MediaFreedom     = "📰 Uhuru wa Vyombo vya Habari (Media Freedom)"
	JournalistSafety = "🧑🏽💻 Usalama wa Waandishi wa Habari (Journalist Safety)"
	MediaEconomy     = "💰 Uchumi wa Vyombo vya Habari (Media Economy)"
	Violations       = "⚖️ Ukiukaji na Malalamiko (Press Violations & Complaints)"
	PoliticalBias    = "🗳️ Upendeleo wa Kisiasa (Media Bias and Political Coverage)"
	PublicSentiment  = "💬 Hisia za Umma (Public Sentiment & Perception)"
	SocialIssues     = "🌍 Masuala ya Kijamii Yanayogusa Sekta ya Habari (Social & Human Rights Issues)"
	Analytics        = "🧠 Maneno ya Kiufundi na Uchanganuzi wa Data (Analytics & AI Monitoring)"
)

// keywords maps each theme to its trigger phrases. A phrase matches only as
// whole words, never as a substring of a longer word.
var keywords = map[string][]string{
	MediaFreedom: {
		"uhuru wa vyombo vya habari", "uhuru wa habari", "uhuru wa kujieleza",
		"sheria ya habari", "kanuni za vyombo vya habari", "udhibiti wa vyombo vya habari",
		"tume ya vyombo vya habari", "leseni ya chombo cha habari", "kuzuiwa kwa habari",
		"kufungiwa gazeti", "kufutwa leseni", "kutopewa habari", "sensa ya habari",
		"taarifa kwa umma", "uwazi wa serikali",
	},
	JournalistSafety: {
		"mwandishi wa habari", "kushambuliwa kwa mwandishi", "kukamatwa kwa mwandishi",
		"kuhojiwa na polisi", "kutekwa", "kutoweka", "vitisho dhidi ya waandishi",
		"unyanyasaji kwa waandishi", "kesi ya mwandishi", "kupigwa", "kunyimwa ulinzi",
		"kujeruhiwa kazini", "kukamatwa bila sababu", "waandishi wa habari wanawake",
		"mashambulizi mtandaoni",
	},
	MediaEconomy: {
		"biashara ya vyombo vya habari", "mapato ya matangazo", "changamoto za kiuchumi",
		"kupunguza wafanyakazi", "mishahara midogo", "kudorora kwa matangazo",
		"kampuni za habari", "gharama za uzalishaji", "usimamizi wa vyombo",
		"kufungwa kwa redio", "kufungwa kwa gazeti", "kushuka kwa mapato",
		"mmiliki wa chombo cha habari", "vyombo binafsi", "vyombo vya serikali",
	},
	Violations: {
		"malalamiko", "tume ya maadili", "makosa ya kimaadili", "taarifa za uongo",
		"habari za uzushi", "kuchafua jina", "uchochezi", "upotoshaji", "kashfa",
		"kukejeli", "kutukana", "upendeleo wa vyombo", "mahojiano yenye upendeleo",
		"habari zenye ubaguzi", "chuki mtandaoni", "maoni ya wachambuzi",
		"kampeni za chuki", "lugha ya matusi", "taarifa zisizo sahihi", "propaganda",
	},
	PoliticalBias: {
		"upendeleo wa kisiasa", "vyombo vya ccm", "vyombo vya chadema", "vyombo vya act wazalendo",
		"vyombo vya upinzani", "kampeni za uchaguzi", "habari za uchaguzi", "wagombea",
		"kura", "uchaguzi mkuu", "tume ya uchaguzi", "kampeni ya chama", "mgombea urais",
		"habari za chama", "chama tawala", "vyama vya siasa", "taarifa za kampeni",
		"mahojiano ya kisiasa", "makala ya kisiasa", "mjadala wa kisiasa",
	},
	PublicSentiment: {
		"maoni ya wananchi", "mitazamo ya jamii", "hisia za wananchi", "mjadala mtandaoni",
		"hasira za wananchi", "pongezi kwa serikali", "ukosoaji wa serikali", "ukosoaji wa vyombo vya habari",
		"uaminifu wa vyombo", "maoni ya wasikilizaji", "maoni ya watazamaji",
		"mijadala ya twitter", "mijadala ya facebook", "mjadala wa x space",
		"mitazamo ya vijana", "mitazamo ya wanawake", "mitazamo ya wanahabari",
		"mada za mtandaoni", "gumzo mtandaoni", "kampeni za hashtag",
	},
	SocialIssues: {
		"haki za binadamu", "haki ya kupata habari", "uwajibikaji wa serikali",
		"demokrasia", "uwazi na uwajibikaji", "uhuru wa kujieleza", "uongozi bora",
		"ukandamizaji", "rushwa", "haki za wanawake", "haki za watoto",
		"ajira kwa vijana", "elimu ya habari", "usawa wa kijinsia", "unyanyasaji wa kijinsia",
		"vyombo vya kijamii", "ushawishi wa mitandao", "taarifa za kidijitali",
		"habari za mitandaoni", "usalama wa mtandao",
	},
	Analytics: {
		"ufuatiliaji wa habari", "kuchambua maudhui", "uchambuzi wa hisia", "ai katika habari",
		"data za kijamii", "mfumo wa uchambuzi", "dashibodi ya habari", "ukusanyaji wa taarifa",
		"takwimu za habari", "ripoti ya habari", "mwenendo wa vyombo", "mitazamo chanya",
		"mitazamo hasi", "ufahamu wa umma", "kuenea kwa habari", "ufuatiliaji wa matukio",
		"mwenendo wa mitandao", "ufuatiliaji wa habari za uchaguzi", "ripoti ya kila wiki",
		"taarifa za kila mwezi", "ulinganifu wa maudhui", "ushawishi wa watumiaji",
		"vyombo vya habari mtandaoni", "blogu za habari", "tovuti za habari",
	},
}

// AINames maps the short English theme names the AI model answers with back to
// canonical labels. Order follows the numbered list in the classification prompt.
var AINames = []struct {
	Name  string
	Label string
}{
	{"Media Freedom", MediaFreedom},
	{"Journalist Safety", JournalistSafety},
	{"Media Economy", MediaEconomy},
	{"Violations & Complaints", Violations},
	{"Political Bias", PoliticalBias},
	{"Public Sentiment", PublicSentiment},
	{"Social & Human Rights Issues", SocialIssues},
	{"Analytics & AI Monitoring", Analytics},
}

// Lexicon matches text against the theme keyword table.
type Lexicon struct {
	patterns map[string][]*regexp.Regexp
	order    []string
}

// NewLexicon compiles the keyword table into word-bounded patterns.
func NewLexicon() *Lexicon {
	lex := &Lexicon{patterns: make(map[string][]*regexp.Regexp, len(keywords))}
	for _, entry := range AINames {
		label := entry.Label
		phrases := keywords[label]
		compiled := make([]*regexp.Regexp, 0, len(phrases))
		for _, kw := range phrases {
			compiled = append(compiled, regexp.MustCompile(`\b`+regexp.QuoteMeta(kw)+`\b`))
		}
		lex.patterns[label] = compiled
		lex.order = append(lex.order, label)
	}
	return lex
}

// Match returns every theme that has at least one trigger phrase present in
// text as a whole word. Matching is case-insensitive and independent per
// theme; the first matching phrase short-circuits the rest of that theme's
// list.
func (l *Lexicon) Match(text string) []string {
	lower := strings.ToLower(text)
	var detected []string
	for _, label := range l.order {
		for _, re := range l.patterns[label] {
			if re.MatchString(lower) {
				detected = append(detected, label)
				break
			}
		}
	}
	return detected
}

// Labels returns the canonical theme labels in prompt order.
func (l *Lexicon) Labels() []string {
	out := make([]string, len(l.order))
	copy(out, l.order)
	return out
}

// Resolve maps a raw AI answer fragment to a canonical label. Matching is
// tolerant: case-insensitive and happy with either the short English name or
// any substring of the full label.
func Resolve(name string) (string, bool) {
	cleaned := strings.TrimSpace(name)
	if cleaned == "" {
		return "", false
	}
	for _, entry := range AINames {
		if strings.EqualFold(cleaned, entry.Name) {
			return entry.Label, true
		}
	}
	lower := strings.ToLower(cleaned)
	for _, entry := range AINames {
		if strings.Contains(strings.ToLower(entry.Name), lower) ||
			strings.Contains(strings.ToLower(entry.Label), lower) {
			return entry.Label, true
		}
	}
	return "", false
}
