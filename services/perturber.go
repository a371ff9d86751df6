package services

import (
	"math/rand"
	"regexp"
	"strings"
	"unicode"
)

// Words and their potential replacements.
var synonyms = map[string][]string{
	"buy":   {"grab", "get"},
	"today": {"right now", "today only"},
}

// Splits text into alternating word / non-word tokens.
var tokenRe = regexp.MustCompile(`\w+|\W+`)

// Perturber performs a light, probabilistic rewrite of outgoing captions so
// downstream consumers see fewer exact duplicates.
type Perturber struct {
	level    float64
	hashtags string
	rng      *rand.Rand // nil means the shared unseeded source
}

func NewPerturber(level float64, hashtags string) *Perturber {
	return &Perturber{level: level, hashtags: hashtags}
}

func (p *Perturber) random() float64 {
	if p.rng != nil {
		return p.rng.Float64()
	}
	return rand.Float64()
}

func (p *Perturber) intn(n int) int {
	if p.rng != nil {
		return p.rng.Intn(n)
	}
	return rand.Intn(n)
}

// Perturb rewrites text with probability level; otherwise it is returned
// unchanged. Known words are swapped for a synonym with p=0.5 each, keeping a
// leading capital, and the extra hashtags are appended with p=0.3.
func (p *Perturber) Perturb(text string) string {
	if text == "" || p.random() > p.level {
		return text
	}

	tokens := tokenRe.FindAllString(text, -1)
	var out strings.Builder
	for _, tok := range tokens {
		group, ok := synonyms[strings.ToLower(tok)]
		if ok && p.random() < 0.5 {
			repl := group[p.intn(len(group))]
			if startsUpper(tok) {
				repl = capitalize(repl)
			}
			out.WriteString(repl)
		} else {
			out.WriteString(tok)
		}
	}

	if p.hashtags != "" && p.random() < 0.3 {
		out.WriteString(" " + p.hashtags)
	}

	return out.String()
}

func startsUpper(s string) bool {
	for _, r := range s {
		return unicode.IsUpper(r)
	}
	return false
}

func capitalize(s string) string {
	for i, r := range s {
		return string(unicode.ToUpper(r)) + s[i+len(string(r)):]
	}
	return s
}
