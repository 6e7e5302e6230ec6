package coerce

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// matchCandidate is one target variant the string matcher considers: an enum
// member's name, or a union's string-literal value.
type matchCandidate struct {
	name string
	idx  int
}

// matchMode distinguishes the two tie policies spec §4.5 specifies for tier
// 5: enums fail on a tie, string literals return the first match found.
type matchMode int

const (
	matchEnum matchMode = iota
	matchStringLiteral
)

// matchResult is a successful string-match: which candidate matched, and the
// flags spec §4.5's cascade emits for the tier that found it.
type matchResult struct {
	index int
	flags []CoercionFlag
}

// matchString runs spec §4.5's five-tier cascade of text against candidates,
// stopping at the first tier that succeeds. mode controls the tier-5 tie
// policy.
func matchString(text string, candidates []matchCandidate, mode matchMode) (*matchResult, error) {
	if err := ambiguityPrecondition(text, candidates); err != nil {
		return nil, err
	}

	if r := tierExact(text, candidates); r != nil {
		return r, nil
	}

	if r, ambiguous := tierTransformed(text, candidates, stripPunctuation, flag(FlagStrippedPunctuation)); r != nil || ambiguous {
		if ambiguous {
			return nil, errAmbiguous()
		}

		return r, nil
	}

	if r, ambiguous := tierTransformed(text, candidates, lowerStripped, flag(FlagStrippedPunctuation)); r != nil || ambiguous {
		if ambiguous {
			return nil, errAmbiguous()
		}

		return r, nil
	}

	if r, ambiguous := tierTransformed(text, candidates, foldDiacritics, flag(FlagStrippedPunctuation)); r != nil || ambiguous {
		if ambiguous {
			return nil, errAmbiguous()
		}

		return r, nil
	}

	return tierSubstring(text, candidates, mode)
}

func errAmbiguous() error {
	return newParseError("", ErrAmbiguousMatch, "multiple candidates matched equally")
}

// ambiguityPrecondition scans the untransformed text for every candidate's
// literal occurrence; if two or more are present (non-overlapping), the match
// fails regardless of which tier would otherwise have succeeded (spec §4.5:
// catches "TWO or THREE" even though tier 1 finds "TWO").
func ambiguityPrecondition(text string, candidates []matchCandidate) error {
	present := 0

	for _, c := range candidates {
		if strings.Contains(text, c.name) {
			present++
		}
	}

	if present >= 2 {
		return errAmbiguous()
	}

	return nil
}

func tierExact(text string, candidates []matchCandidate) *matchResult {
	var matched []int

	for _, c := range candidates {
		if c.name == text {
			matched = append(matched, c.idx)
		}
	}

	if len(matched) == 1 {
		return &matchResult{index: matched[0]}
	}

	return nil
}

// tierTransformed runs one of tiers 2-4: apply transform to both text and
// every candidate name, then look for a unique exact match. Returns
// ambiguous=true if ties should fail the whole match rather than fall
// through to the next tier (spec §4.5: "Tiers 1-4 ties: fail").
func tierTransformed(text string, candidates []matchCandidate, transform func(string) string, extraFlag CoercionFlag) (*matchResult, bool) {
	tt := transform(text)

	var matched []int

	for _, c := range candidates {
		if transform(c.name) == tt {
			matched = append(matched, c.idx)
		}
	}

	switch len(matched) {
	case 0:
		return nil, false
	case 1:
		return &matchResult{index: matched[0], flags: []CoercionFlag{extraFlag}}, false
	default:
		return nil, true
	}
}

// tierSubstring implements tier 5: a greedy left-to-right, non-overlapping
// substring scan of tier-3-normalized text against each tier-3-normalized
// candidate name, preferring longer matches and -- on a length tie --
// earlier starts (spec §4.5's overlap resolution).
func tierSubstring(text string, candidates []matchCandidate, mode matchMode) (*matchResult, error) {
	nt := lowerStripped(text)

	var occs []substrOccurrence

	for _, c := range candidates {
		nc := lowerStripped(c.name)
		if nc == "" {
			continue
		}

		start := 0

		for {
			i := strings.Index(nt[start:], nc)
			if i < 0 {
				break
			}

			abs := start + i
			occs = append(occs, substrOccurrence{start: abs, end: abs + len(nc), candIdx: c.idx})
			start = abs + len(nc)
		}
	}

	if len(occs) == 0 {
		return nil, newParseError("", ErrUnexpectedType, "no candidate found in text: "+text)
	}

	sort.Slice(occs, func(i, j int) bool {
		if occs[i].start != occs[j].start {
			return occs[i].start < occs[j].start
		}

		return occs[i].end-occs[i].start > occs[j].end-occs[j].start
	})

	var chosen []substrOccurrence

	for _, o := range occs {
		if n := len(chosen); n > 0 && o.start < chosen[n-1].end {
			if last := chosen[n-1]; o.end-o.start > last.end-last.start {
				chosen[n-1] = o // overlap: the longer occurrence wins
			}

			continue
		}

		chosen = append(chosen, o)
	}

	counts := make(map[int]int)
	firstSeen := make(map[int]int)

	for i, o := range chosen {
		counts[o.candIdx]++

		if _, ok := firstSeen[o.candIdx]; !ok {
			firstSeen[o.candIdx] = i
		}
	}

	best := -1
	bestCount := -1

	for idx, n := range counts {
		if n > bestCount || (n == bestCount && firstSeen[idx] < firstSeen[best]) {
			best = idx
			bestCount = n
		}
	}

	distinctVariants := len(counts)

	flags := []CoercionFlag{flag(FlagSubstringMatch)}
	if distinctVariants > 1 {
		flags = append(flags, FlagStrMatchOneFromManyN(distinctVariants))
	}

	if distinctVariants > 1 {
		tiedForBest := 0

		for _, n := range counts {
			if n == bestCount {
				tiedForBest++
			}
		}

		if tiedForBest > 1 {
			switch mode {
			case matchEnum:
				return nil, errAmbiguous()
			case matchStringLiteral:
				// First variant found, by earliest occurrence, wins (spec
				// §4.5/§9: intentional divergence from the enum tie policy).
				best = firstVariantByOccurrence(chosen, counts, bestCount)
				flags = append(flags, flag(FlagFirstMatch))
			}
		}
	}

	return &matchResult{index: best, flags: flags}, nil
}

// substrOccurrence is one non-overlapping candidate match found by
// tierSubstring's left-to-right scan.
type substrOccurrence struct {
	start, end int
	candIdx    int
}

func firstVariantByOccurrence(chosen []substrOccurrence, counts map[int]int, bestCount int) int {
	for _, o := range chosen {
		if counts[o.candIdx] == bestCount {
			return o.candIdx
		}
	}

	return chosen[0].candIdx
}

func stripPunctuation(s string) string {
	var b strings.Builder

	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' {
			b.WriteRune(r)
		}
	}

	return b.String()
}

func lowerStripped(s string) string {
	return strings.ToLower(stripPunctuation(s))
}

// foldDiacritics applies tier 4's Unicode NFKD normalization plus the
// specific diacritic folds spec §4.5 names (ß->ss, æ->ae, ø->o) on top of
// tier 3's lowercase+strip.
func foldDiacritics(s string) string {
	folded := strings.NewReplacer(
		"ß", "ss",
		"æ", "ae",
		"Æ", "AE",
		"ø", "o",
		"Ø", "O",
	).Replace(s)

	decomposed := norm.NFKD.String(folded)

	var b strings.Builder

	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue // combining diacritical mark, dropped by NFKD fold
		}

		b.WriteRune(r)
	}

	return lowerStripped(b.String())
}
