// Package randomizer perturbs outgoing message bodies so that consecutive
// sends of the same template are never byte-identical.
package randomizer

import (
	"math/rand/v2"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Rand is the randomness source. *math/rand/v2.Rand satisfies it.
type Rand interface {
	IntN(n int) int
	Float64() float64
	Perm(n int) []int
}

// SharedRand draws from the math/rand/v2 top-level generator, which is safe
// for concurrent use. It also satisfies scheduler.Rand.
type SharedRand struct{}

func (SharedRand) IntN(n int) int   { return rand.IntN(n) }
func (SharedRand) Float64() float64 { return rand.Float64() }
func (SharedRand) Perm(n int) []int { return rand.Perm(n) }

// FallbackName replaces name placeholders when the lead has no name.
const FallbackName = "Anda"

const (
	homoglyphRatio = 0.05
	zeroWidthCount = 2
)

var (
	placeholderPattern = regexp.MustCompile(`(?i)\{(name|prospect_name|nama)\}`)
	spintaxPattern     = regexp.MustCompile(`\{([^}]+)\}`)
	multiSpacePattern  = regexp.MustCompile(` {2,}`)
)

var zeroWidthChars = []string{
	"\u200B", // zero-width space
	"\u200C", // zero-width non-joiner
	"\u200D", // zero-width joiner
	"\uFEFF", // zero-width no-break space
}

type punctuationJitter struct {
	mark        string
	probability float64
}

var punctuationJitters = []punctuationJitter{
	{mark: "!", probability: 0.10},
	{mark: "?", probability: 0.10},
	{mark: ".", probability: 0.10},
	{mark: ",", probability: 0.05},
}

type Randomizer struct {
	rng Rand
}

func New(rng Rand) *Randomizer {
	return &Randomizer{rng: rng}
}

// Randomize personalizes template for recipientName and applies the anti-ban
// transforms. Output differs between calls with the same input.
func (r *Randomizer) Randomize(template, recipientName string) string {
	if template == "" {
		return template
	}

	result := r.substitutePlaceholders(template, recipientName)
	result = r.expandSpintax(result)
	result = r.applyHomoglyphs(result)
	result = r.insertZeroWidth(result)
	result = r.jitterPunctuation(result)

	return result
}

func (r *Randomizer) substitutePlaceholders(text, name string) string {
	if name == "" {
		name = FallbackName
	}
	return placeholderPattern.ReplaceAllLiteralString(text, name)
}

// expandSpintax resolves {a|b|c} groups. A group without a pipe is an
// unresolved placeholder and stays as written.
func (r *Randomizer) expandSpintax(text string) string {
	return spintaxPattern.ReplaceAllStringFunc(text, func(group string) string {
		body := group[1 : len(group)-1]
		if !strings.Contains(body, "|") {
			return group
		}
		options := strings.Split(body, "|")
		return options[r.rng.IntN(len(options))]
	})
}

func (r *Randomizer) applyHomoglyphs(text string) string {
	runes := []rune(text)

	var letters []int
	for i, ch := range runes {
		if isASCIILetter(ch) {
			letters = append(letters, i)
		}
	}
	if len(letters) == 0 {
		return text
	}

	count := int(float64(len(letters)) * homoglyphRatio)
	if count == 0 {
		count = 1
	}

	for _, idx := range r.rng.Perm(len(letters))[:count] {
		pos := letters[idx]
		candidates := homoglyphsFor(runes[pos])
		if len(candidates) == 0 {
			continue
		}
		runes[pos] = candidates[r.rng.IntN(len(candidates))]
	}

	return string(runes)
}

// insertZeroWidth prefixes up to two distinct words (never the first one)
// with a zero-width character.
func (r *Randomizer) insertZeroWidth(text string) string {
	words := strings.Split(text, " ")
	if len(words) < 2 {
		return text
	}

	positions := len(words) - 1
	count := min(zeroWidthCount, positions)

	for _, offset := range r.rng.Perm(positions)[:count] {
		pos := offset + 1
		words[pos] = zeroWidthChars[r.rng.IntN(len(zeroWidthChars))] + words[pos]
	}

	return strings.Join(words, " ")
}

func (r *Randomizer) jitterPunctuation(text string) string {
	result := text
	for _, j := range punctuationJitters {
		if r.rng.Float64() < j.probability {
			result = strings.ReplaceAll(result, j.mark, j.mark+" ")
		}
	}

	result = multiSpacePattern.ReplaceAllString(result, " ")
	return strings.TrimSpace(result)
}

func isASCIILetter(ch rune) bool {
	return ch < utf8.RuneSelf && (ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z')
}
