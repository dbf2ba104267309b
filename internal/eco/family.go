package eco

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	apostrophes    = strings.NewReplacer("’", "'", "`", "'", "´", "'")
	possessive     = regexp.MustCompile(`'s\b`)
	nonAlnumRun    = regexp.MustCompile(`[^A-Za-z0-9]+`)
	familyUnknowns = map[string]bool{"#N/A": true, "N/A": true}
)

// stripMarks decomposes text and removes combining marks, so "Grünfeld"
// becomes "Grunfeld".
func stripMarks(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// normaliseCell applies NFKC normalisation and trims surrounding space.
func normaliseCell(s string) string {
	return strings.TrimSpace(norm.NFKC.String(s))
}

// FamilyKey turns a family name into a slug such as "kings-indian-defense".
// An empty or "#N/A" hint yields "".
func FamilyKey(hint string) string {
	hint = strings.TrimSpace(hint)
	if hint == "" || familyUnknowns[strings.ToUpper(hint)] {
		return ""
	}
	s := stripMarks(hint)
	s = apostrophes.Replace(s)
	s = possessive.ReplaceAllString(s, "s")
	s = nonAlnumRun.ReplaceAllString(s, "-")
	s = strings.Trim(strings.ToLower(s), "-")
	s = strings.ReplaceAll(s, "-s-", "s-")
	s = strings.ReplaceAll(s, "-gambit-gambit", "-gambit")
	return s
}

type familyRule struct {
	pattern *regexp.Regexp
	family  string
}

// Name patterns, checked in order against the lowercased opening name.
var familyRules = []familyRule{
	{regexp.MustCompile(`\bsicilian\b`), "sicilian-defense"},
	{regexp.MustCompile(`\bfrench\b`), "french-defense"},
	{regexp.MustCompile(`\bcaro[-\s]?kann\b`), "caro-kann-defense"},
	{regexp.MustCompile(`\bscandinavian\b|\bcenter\s+counter\b`), "scandinavian-defense"},
	{regexp.MustCompile(`\bitalian\b|\bgiuoco\b`), "italian-game"},
	{regexp.MustCompile(`\bruy\s*lopez\b|\bespanola?\b`), "ruy-lopez"},
	{regexp.MustCompile(`\bvienna\b`), "vienna-game"},
	{regexp.MustCompile(`\bscotch\b`), "scotch-game"},
	{regexp.MustCompile(`\btwo\s+knights\b`), "two-knights-defense"},
	{regexp.MustCompile(`\bfour\s+knights\b`), "four-knights-game"},
	{regexp.MustCompile(`\bphilidor\b`), "philidor-defense"},
	{regexp.MustCompile(`\bpetrov\b|\brussian\b`), "petrov-defense"},
	{regexp.MustCompile(`\bpirc\b|\bmodern\b`), "pirc-modern"},
	{regexp.MustCompile(`\balekhine?'?s?\b`), "alekhine-defense"},
	{regexp.MustCompile(`\bdutch\b`), "dutch-defense"},
	{regexp.MustCompile(`\bbenoni\b`), "benoni-defense"},
	{regexp.MustCompile(`\bbenko\b|\bvolga\b`), "benko-gambit"},
	{regexp.MustCompile(`\bgrunfeld\b`), "grunfeld-defense"},
	{regexp.MustCompile(`\bnimzo[-\s]?indian\b`), "nimzo-indian-defense"},
	{regexp.MustCompile(`\bbogo[-\s]?indian\b`), "bogo-indian-defense"},
	{regexp.MustCompile(`\bqueen'?s?\s+indian\b`), "queens-indian-defense"},
	{regexp.MustCompile(`\bking'?s?[-\s]?indian\b`), "kings-indian-defense"},
	{regexp.MustCompile(`\bslav\b`), "slav-defense"},
	{regexp.MustCompile(`\bqueen'?s?\s+gambit\b`), "queens-gambit"},
	{regexp.MustCompile(`\bcatalan\b`), "catalan-opening"},
	{regexp.MustCompile(`\benglish\b`), "english-opening"},
	{regexp.MustCompile(`\breti\b`), "reti-opening"},
	{regexp.MustCompile(`\bbird'?s?\b`), "birds-opening"},
	{regexp.MustCompile(`\blondon\b`), "london-system"},
	{regexp.MustCompile(`\bcolle\b`), "colle-system"},
	{regexp.MustCompile(`\btrompowsky\b`), "trompowsky-attack"},
	{regexp.MustCompile(`\bveresov\b|\bjobava\b`), "veresov-opening"},
	{regexp.MustCompile(`\bking'?s?\s+gambit\b`), "kings-gambit"},
	{regexp.MustCompile(`\bcenter\s+game\b`), "center-game"},
}

type ecoBand struct {
	pattern    *regexp.Regexp
	family     string
	confidence float64
}

// ECO code ranges used when the name gives no family.
var ecoBands = []ecoBand{
	{regexp.MustCompile(`^B[2-9]\d`), "sicilian-defense", 0.90},
	{regexp.MustCompile(`^C[01]\d`), "french-defense", 0.90},
	{regexp.MustCompile(`^B1\d`), "caro-kann-defense", 0.85},
	{regexp.MustCompile(`^B0[6-9]`), "pirc-modern", 0.80},
	{regexp.MustCompile(`^B0[0-5]`), "open-games", 0.80},
	{regexp.MustCompile(`^A[89]\d`), "dutch-defense", 0.90},
	{regexp.MustCompile(`^A5[6-9]|^A7\d`), "benoni-defense", 0.85},
	{regexp.MustCompile(`^D[0346]\d`), "queens-gambit", 0.85},
	{regexp.MustCompile(`^D1\d`), "slav-defense", 0.85},
	{regexp.MustCompile(`^D[25]\d`), "queens-gambit", 0.80},
	{regexp.MustCompile(`^E0\d`), "catalan-opening", 0.80},
	{regexp.MustCompile(`^E2\d`), "nimzo-indian-defense", 0.85},
	{regexp.MustCompile(`^E3\d`), "queens-indian-defense", 0.85},
	{regexp.MustCompile(`^E6\d`), "kings-indian-defense", 0.85},
	{regexp.MustCompile(`^D[789]\d`), "grunfeld-defense", 0.85},
}

// CanonicalFamily infers a family from an opening name, falling back to the
// ECO code. The confidence is 0 when nothing matched.
func CanonicalFamily(name, ecoCode string) (string, float64) {
	n := strings.ToLower(stripMarks(name))
	n = apostrophes.Replace(n)
	for _, rule := range familyRules {
		if rule.pattern.MatchString(n) {
			return rule.family, 0.99
		}
	}

	code := strings.ToUpper(strings.TrimSpace(ecoCode))
	for _, band := range ecoBands {
		if band.pattern.MatchString(code) {
			return band.family, band.confidence
		}
	}
	return "", 0
}

// familyFor picks the family of an entry that was loaded without one.
func familyFor(name, ecoCode string) string {
	if fam, _ := CanonicalFamily(name, ecoCode); fam != "" {
		return fam
	}
	return FamilyKey(familyPart(name))
}

// familyPart returns the leading part of an opening name, before the first
// ':' or ','. "Sicilian Defense: Najdorf Variation" gives "Sicilian Defense".
func familyPart(name string) string {
	if i := strings.IndexAny(name, ":,"); i >= 0 {
		return name[:i]
	}
	return name
}

// AcceptanceStatus classifies a gambit name as accepted, declined or neutral.
func AcceptanceStatus(name string) Acceptance {
	n := strings.ToLower(name)
	switch {
	case strings.Contains(n, "accepted"):
		return Accepted
	case strings.Contains(n, "declined"):
		return Declined
	default:
		return Neutral
	}
}
