package game

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var weekLabelPattern = regexp.MustCompile(`(?i)week\s*(\d+)`)

func parseWeekLabel(label string) (int, bool) {
	match := weekLabelPattern.FindStringSubmatch(label)
	if match == nil {
		return 0, false
	}
	week, err := strconv.Atoi(match[1])
	if err != nil {
		return 0, false
	}

	return week, true
}

func playoffIndex(label string) int {
	for i, round := range playoffOrder {
		if label == string(round) {
			return i
		}
	}

	return -1
}

// SortRoundLabels orders a mixed set of week and playoff labels
// chronologically: numbered weeks first, then playoff rounds, then
// anything unrecognized alphabetically. Duplicates are removed.
func SortRoundLabels(labels []string) []string {
	seen := make(map[string]struct{}, len(labels))
	unique := make([]string, 0, len(labels))
	for _, label := range labels {
		if _, ok := seen[label]; ok {
			continue
		}
		seen[label] = struct{}{}
		unique = append(unique, label)
	}

	sort.SliceStable(unique, func(i, j int) bool {
		a, b := unique[i], unique[j]
		weekA, isWeekA := parseWeekLabel(a)
		weekB, isWeekB := parseWeekLabel(b)

		if isWeekA && isWeekB {
			return weekA < weekB
		}
		if isWeekA != isWeekB {
			return isWeekA
		}

		playoffA := playoffIndex(a)
		playoffB := playoffIndex(b)
		if playoffA != -1 || playoffB != -1 {
			if playoffA == -1 {
				return false
			}
			if playoffB == -1 {
				return true
			}
			return playoffA < playoffB
		}

		return a < b
	})

	return unique
}

// FormatRoundLabelShort compresses a round label for tight UI columns:
// "Week 3" becomes "WK3", playoff rounds keep their first three letters.
func FormatRoundLabelShort(label string) string {
	if week, ok := parseWeekLabel(label); ok {
		return fmt.Sprintf("WK%d", week)
	}
	if len(label) > 3 {
		label = label[:3]
	}

	return strings.ToUpper(label)
}

// RoundLabel names a game for display: the week number during the regular
// season, the playoff round otherwise.
func RoundLabel(g Game) string {
	if g.SeasonType == SeasonRegular && g.Week != nil {
		return fmt.Sprintf("Week %d", *g.Week)
	}

	return string(g.Round)
}
