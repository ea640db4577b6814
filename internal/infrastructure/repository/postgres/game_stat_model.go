package postgres

import (
	"database/sql"
	"time"
)

type gameStatTableModel struct {
	ID       string `db:"id"`
	PlayerID string `db:"player_id"`
	GameID   string `db:"game_id"`

	PassingYards   int `db:"passing_yards"`
	PassingTDs     int `db:"passing_tds"`
	PassingTwoPt   int `db:"passing_two_pt"`
	RushingYards   int `db:"rushing_yards"`
	RushingTDs     int `db:"rushing_tds"`
	RushingTwoPt   int `db:"rushing_two_pt"`
	ReceivingYards int `db:"receiving_yards"`
	ReceivingTDs   int `db:"receiving_tds"`
	ReceivingTwoPt int `db:"receiving_two_pt"`
	Receptions     int `db:"receptions"`

	FGMade0to39  int `db:"fg_made_0_39"`
	FGMade40to49 int `db:"fg_made_40_49"`
	FGMade50to59 int `db:"fg_made_50_59"`
	FGMade60Plus int `db:"fg_made_60_plus"`
	XPMade       int `db:"xp_made"`

	DefInterceptions    int `db:"def_interceptions"`
	Sacks               int `db:"sacks"`
	Safeties            int `db:"safeties"`
	DefFumbleRecoveries int `db:"def_fumble_recoveries"`
	DefSpecialTeamsTDs  int `db:"def_special_teams_tds"`
	FumbleReturn2PtKick int `db:"fumble_return_2pt_kick"`
	FumbleReturn2Pt     int `db:"fumble_return_2pt"`
	IntReturn2PtKick    int `db:"int_return_2pt_kick"`
	IntReturn2Pt        int `db:"int_return_2pt"`

	ManualOverridePoints sql.NullFloat64 `db:"manual_override_points"`
	CreatedAt            time.Time       `db:"created_at"`
	UpdatedAt            time.Time       `db:"updated_at"`
}

type gameStatInsertModel struct {
	ID       string `db:"id"`
	PlayerID string `db:"player_id"`
	GameID   string `db:"game_id"`

	PassingYards   int `db:"passing_yards"`
	PassingTDs     int `db:"passing_tds"`
	PassingTwoPt   int `db:"passing_two_pt"`
	RushingYards   int `db:"rushing_yards"`
	RushingTDs     int `db:"rushing_tds"`
	RushingTwoPt   int `db:"rushing_two_pt"`
	ReceivingYards int `db:"receiving_yards"`
	ReceivingTDs   int `db:"receiving_tds"`
	ReceivingTwoPt int `db:"receiving_two_pt"`
	Receptions     int `db:"receptions"`

	FGMade0to39  int `db:"fg_made_0_39"`
	FGMade40to49 int `db:"fg_made_40_49"`
	FGMade50to59 int `db:"fg_made_50_59"`
	FGMade60Plus int `db:"fg_made_60_plus"`
	XPMade       int `db:"xp_made"`

	DefInterceptions    int `db:"def_interceptions"`
	Sacks               int `db:"sacks"`
	Safeties            int `db:"safeties"`
	DefFumbleRecoveries int `db:"def_fumble_recoveries"`
	DefSpecialTeamsTDs  int `db:"def_special_teams_tds"`
	FumbleReturn2PtKick int `db:"fumble_return_2pt_kick"`
	FumbleReturn2Pt     int `db:"fumble_return_2pt"`
	IntReturn2PtKick    int `db:"int_return_2pt_kick"`
	IntReturn2Pt        int `db:"int_return_2pt"`

	ManualOverridePoints *float64 `db:"manual_override_points"`
}
