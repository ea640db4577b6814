package usecase

import (
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/playoffpool/playoff-pool/internal/domain/gamestat"
)

// StatRecord is the canonical, provider-agnostic shape every fetcher
// produces and the importer consumes. Player identity fields are all
// optional; the resolver chain works with whatever is present.
type StatRecord struct {
	ExternalPlayerID string
	PlayerName       string
	TeamCode         string
	Position         string

	GameKey    string
	Round      string
	SeasonType string
	Week       *int
	KickoffAt  time.Time

	Line gamestat.StatLine
}

var nameSuffixes = map[string]struct{}{
	"jr": {}, "sr": {}, "ii": {}, "iii": {}, "iv": {}, "v": {},
}

var diacriticStripper = transform.Chain(
	norm.NFKD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// NormalizeName folds a display name into the form used for matching:
// diacritics stripped, non-alphanumerics collapsed, lowercased, and
// generational suffixes dropped. "Amon-Ra St. Brown Jr." and
// "amonra st brown" normalize identically.
func NormalizeName(name string) string {
	folded, _, err := transform.String(diacriticStripper, name)
	if err != nil {
		folded = name
	}

	var b strings.Builder
	b.Grow(len(folded))
	lastSpace := true
	for _, r := range folded {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(unicode.ToLower(r))
			lastSpace = false
		case !lastSpace:
			b.WriteByte(' ')
			lastSpace = true
		}
	}

	kept := make([]string, 0, 4)
	for _, token := range strings.Fields(b.String()) {
		if _, ok := nameSuffixes[token]; ok {
			continue
		}
		kept = append(kept, token)
	}

	return strings.Join(kept, "")
}
