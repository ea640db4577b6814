// Package csvfeed turns commissioner-prepared CSV files into canonical
// stat records. The header vocabulary is fixed snake_case column names
// mapping 1:1 onto record fields; quoting follows RFC 4180, so fields
// may embed commas and newlines.
package csvfeed

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/playoffpool/playoff-pool/internal/domain/gamestat"
	"github.com/playoffpool/playoff-pool/internal/usecase"
)

// Parse reads one CSV document. The first non-empty row is the header;
// unknown columns are ignored so sheets can carry extra notes. Rows
// are returned as-is, with enum and game-key validation left to the
// importer so one policy covers every feed.
func Parse(r io.Reader) ([]usecase.StatRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: parse csv: %v", usecase.ErrInvalidInput, err)
	}
	rows = dropBlankRows(rows)
	if len(rows) <= 1 {
		return nil, fmt.Errorf("%w: csv has no data rows", usecase.ErrInvalidInput)
	}

	header := make([]string, len(rows[0]))
	for i, name := range rows[0] {
		header[i] = strings.ToLower(strings.TrimSpace(name))
	}

	records := make([]usecase.StatRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		fields := make(map[string]string, len(header))
		for i, key := range header {
			if i < len(row) {
				fields[key] = strings.TrimSpace(row[i])
			}
		}
		records = append(records, recordFromFields(fields))
	}

	return records, nil
}

func dropBlankRows(rows [][]string) [][]string {
	kept := rows[:0]
	for _, row := range rows {
		for _, value := range row {
			if strings.TrimSpace(value) != "" {
				kept = append(kept, row)
				break
			}
		}
	}
	return kept
}

func recordFromFields(fields map[string]string) usecase.StatRecord {
	rec := usecase.StatRecord{
		ExternalPlayerID: fields["external_player_id"],
		PlayerName:       fields["player_name"],
		TeamCode:         fields["team_abbr"],
		Position:         fields["position"],
		GameKey:          fields["game_key"],
		Round:            fields["round"],
		SeasonType:       fields["season_type"],
		Line: gamestat.StatLine{
			PassingYards:   number(fields["passing_yards"]),
			PassingTDs:     number(fields["passing_tds"]),
			PassingTwoPt:   number(fields["passing_two_pt"]),
			RushingYards:   number(fields["rushing_yards"]),
			RushingTDs:     number(fields["rushing_tds"]),
			RushingTwoPt:   number(fields["rushing_two_pt"]),
			ReceivingYards: number(fields["receiving_yards"]),
			ReceivingTDs:   number(fields["receiving_tds"]),
			ReceivingTwoPt: number(fields["receiving_two_pt"]),
			Receptions:     number(fields["receptions"]),

			FGMade0to39:  number(fields["fg0_39"]),
			FGMade40to49: number(fields["fg40_49"]),
			FGMade50to59: number(fields["fg50_59"]),
			FGMade60Plus: number(fields["fg60_plus"]),
			XPMade:       number(fields["xp_made"]),

			DefInterceptions:    number(fields["interceptions"]),
			Sacks:               number(fields["sacks"]),
			Safeties:            number(fields["safeties"]),
			DefFumbleRecoveries: number(fields["fumble_recoveries"]),
			DefSpecialTeamsTDs:  number(fields["return_tds"]),
			FumbleReturn2PtKick: number(fields["fum2pk"]),
			FumbleReturn2Pt:     number(fields["fum2pt"]),
			IntReturn2PtKick:    number(fields["int2pk"]),
			IntReturn2Pt:        number(fields["int2pt"]),
		},
	}

	if value := fields["week"]; value != "" {
		if week, err := strconv.Atoi(value); err == nil {
			rec.Week = &week
		}
	}
	if value := fields["kickoff_at"]; value != "" {
		if kickoff, err := time.Parse(time.RFC3339, value); err == nil {
			rec.KickoffAt = kickoff
		}
	}

	return rec
}

func number(value string) int {
	if value == "" {
		return 0
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return int(parsed)
}
