// Package names reconciles parliamentarian names across data feeds.
// Hansard, vote records, and lobbying registrations rarely agree on how to
// spell a member: "Hon. Jean Chrétien (Saint-Maurice)", "CHRÉTIEN, Jean,
// P.C." and "Jean Chretien" all refer to the same person. [Normalize]
// reduces each variant to a canonical form, and [Match] decides whether
// two variants refer to the same person.
package names

import (
	"strings"

	"github.com/antzucaro/matchr"
)

// honorifics are leading title tokens dropped during normalization.
// "m" and "mme" appear in French-language feeds.
var honorifics = map[string]bool{
	"hon":   true,
	"right": true,
	"mr":    true,
	"mrs":   true,
	"ms":    true,
	"dr":    true,
	"m":     true,
	"mme":   true,
	"sen":   true,
}

// postNominals are trailing designation tokens dropped during
// normalization (Privy Council, King's/Queen's Counsel, Member of
// Parliament).
var postNominals = map[string]bool{
	"pc": true,
	"qc": true,
	"kc": true,
	"mp": true,
}

// accentFolder folds the accented characters that occur in Canadian
// parliamentarian names to their ASCII base.
var accentFolder = strings.NewReplacer(
	"à", "a", "â", "a", "ä", "a",
	"é", "e", "è", "e", "ê", "e", "ë", "e",
	"î", "i", "ï", "i",
	"ô", "o", "ö", "o",
	"û", "u", "ù", "u", "ü", "u",
	"ç", "c",
	"œ", "oe",
)

var punct = strings.NewReplacer(
	".", "",
	"'", "",
	"’", "",
	"-", " ",
)

// Normalize returns the canonical form used to compare parliamentarian
// names: lowercase, accents folded, punctuation dropped, honorifics,
// post-nominals and a trailing riding in parentheses removed. Inverted
// "Surname, Given" forms are re-ordered.
//
//	Normalize("Hon. Jean Chrétien (Saint-Maurice)") // "jean chretien"
//	Normalize("CHRÉTIEN, Jean, P.C.")               // "jean chretien"
func Normalize(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = accentFolder.Replace(s)

	// Drop a trailing riding: "John Smith (Winnipeg North)".
	if i := strings.IndexByte(s, '('); i >= 0 {
		s = s[:i]
	}

	s = punct.Replace(s)

	// Re-order "surname, given" and drop post-nominal segments.
	if segs := strings.Split(s, ","); len(segs) > 1 {
		kept := segs[:0]
		for _, seg := range segs {
			seg = strings.TrimSpace(seg)
			if seg == "" || postNominals[strings.ReplaceAll(seg, " ", "")] {
				continue
			}
			kept = append(kept, seg)
		}
		if len(kept) == 2 {
			kept[0], kept[1] = kept[1], kept[0]
		}
		s = strings.Join(kept, " ")
	}

	var words []string
	for _, w := range strings.Fields(s) {
		if len(words) == 0 && honorifics[w] {
			continue
		}
		if postNominals[w] {
			continue
		}
		words = append(words, w)
	}
	return strings.Join(words, " ")
}

// Similarity returns the Jaro-Winkler similarity of two names in [0, 1],
// computed over their normalized forms.
func Similarity(a, b string) float64 {
	return matchr.JaroWinkler(Normalize(a), Normalize(b), false)
}

// matchThreshold is the Jaro-Winkler score at or above which two
// normalized names are considered the same person. Tuned on the member
// roster, where variants are typos and transliterations rather than
// genuinely distinct names.
const matchThreshold = 0.92

// Match reports whether two names likely refer to the same
// parliamentarian. Identical normalized forms and first-initial variants
// ("J. Smith" vs "John Smith") match outright; anything else falls to the
// similarity threshold.
func Match(a, b string) bool {
	na, nb := Normalize(a), Normalize(b)
	if na == "" || nb == "" {
		return false
	}
	if na == nb {
		return true
	}
	if initialsMatch(na, nb) {
		return true
	}
	return matchr.JaroWinkler(na, nb, false) >= matchThreshold
}

// initialsMatch handles "j smith" vs "john smith": identical surnames,
// with each leading word either equal or an initial of its counterpart.
func initialsMatch(a, b string) bool {
	aw, bw := strings.Fields(a), strings.Fields(b)
	if len(aw) != len(bw) || len(aw) < 2 {
		return false
	}
	if aw[len(aw)-1] != bw[len(bw)-1] {
		return false
	}

	for i := 0; i < len(aw)-1; i++ {
		if aw[i] == bw[i] {
			continue
		}
		if len(aw[i]) == 1 && strings.HasPrefix(bw[i], aw[i]) {
			continue
		}
		if len(bw[i]) == 1 && strings.HasPrefix(aw[i], bw[i]) {
			continue
		}
		return false
	}
	return true
}
