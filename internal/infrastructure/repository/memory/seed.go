package memory

import (
	"github.com/playoffpool/playoff-pool/internal/domain/entry"
	"github.com/playoffpool/playoff-pool/internal/domain/player"
	"github.com/playoffpool/playoff-pool/internal/domain/team"
)

func intPtr(v int) *int { return &v }

func SeedTeams() []team.Team {
	return []team.Team{
		{ID: "t-kc", Name: "Kansas City Chiefs", Abbreviation: "KC", Conference: team.ConferenceAFC, Seed: intPtr(1), MadePlayoffs: true},
		{ID: "t-buf", Name: "Buffalo Bills", Abbreviation: "BUF", Conference: team.ConferenceAFC, Seed: intPtr(2), MadePlayoffs: true},
		{ID: "t-bal", Name: "Baltimore Ravens", Abbreviation: "BAL", Conference: team.ConferenceAFC, Seed: intPtr(3), MadePlayoffs: true},
		{ID: "t-pit", Name: "Pittsburgh Steelers", Abbreviation: "PIT", Conference: team.ConferenceAFC, Seed: intPtr(6), MadePlayoffs: true},
		{ID: "t-det", Name: "Detroit Lions", Abbreviation: "DET", Conference: team.ConferenceNFC, Seed: intPtr(1), MadePlayoffs: true},
		{ID: "t-phi", Name: "Philadelphia Eagles", Abbreviation: "PHI", Conference: team.ConferenceNFC, Seed: intPtr(2), MadePlayoffs: true},
		{ID: "t-sf", Name: "San Francisco 49ers", Abbreviation: "SF", Conference: team.ConferenceNFC, Seed: intPtr(5), MadePlayoffs: true},
		{ID: "t-dal", Name: "Dallas Cowboys", Abbreviation: "DAL", Conference: team.ConferenceNFC, Seed: intPtr(7), MadePlayoffs: true},
	}
}

func SeedPlayers() []player.Player {
	return []player.Player{
		{ID: "p-qb-01", Name: "Patrick Mahomes", Position: player.PositionQuarterback, TeamID: "t-kc", IsActive: true, ExternalID: "4046"},
		{ID: "p-qb-02", Name: "Josh Allen", Position: player.PositionQuarterback, TeamID: "t-buf", IsActive: true, ExternalID: "4984"},
		{ID: "p-qb-03", Name: "Lamar Jackson", Position: player.PositionQuarterback, TeamID: "t-bal", IsActive: true, ExternalID: "4881"},
		{ID: "p-qb-04", Name: "Jalen Hurts", Position: player.PositionQuarterback, TeamID: "t-phi", IsActive: true, ExternalID: "6904"},
		{ID: "p-qb-05", Name: "Jared Goff", Position: player.PositionQuarterback, TeamID: "t-det", IsActive: true, ExternalID: "3046"},
		{ID: "p-rb-01", Name: "Saquon Barkley", Position: player.PositionRunningBack, TeamID: "t-phi", IsActive: true, ExternalID: "4866"},
		{ID: "p-rb-02", Name: "Jahmyr Gibbs", Position: player.PositionRunningBack, TeamID: "t-det", IsActive: true, ExternalID: "9221"},
		{ID: "p-rb-03", Name: "James Cook", Position: player.PositionRunningBack, TeamID: "t-buf", IsActive: true, ExternalID: "8138"},
		{ID: "p-rb-04", Name: "Isiah Pacheco", Position: player.PositionRunningBack, TeamID: "t-kc", IsActive: true, ExternalID: "8205"},
		{ID: "p-wr-01", Name: "Amon-Ra St. Brown", Position: player.PositionWideReceiver, TeamID: "t-det", IsActive: true, ExternalID: "7547"},
		{ID: "p-wr-02", Name: "A.J. Brown", Position: player.PositionWideReceiver, TeamID: "t-phi", IsActive: true, ExternalID: "5859"},
		{ID: "p-wr-03", Name: "CeeDee Lamb", Position: player.PositionWideReceiver, TeamID: "t-dal", IsActive: true, ExternalID: "6786"},
		{ID: "p-wr-04", Name: "Zay Flowers", Position: player.PositionWideReceiver, TeamID: "t-bal", IsActive: true, ExternalID: "9226"},
		{ID: "p-te-01", Name: "Travis Kelce", Position: player.PositionTightEnd, TeamID: "t-kc", IsActive: true, ExternalID: "1466"},
		{ID: "p-te-02", Name: "George Kittle", Position: player.PositionTightEnd, TeamID: "t-sf", IsActive: true, ExternalID: "4217"},
		{ID: "p-k-01", Name: "Harrison Butker", Position: player.PositionKicker, TeamID: "t-kc", IsActive: true, ExternalID: "3678"},
		{ID: "p-k-02", Name: "Jake Elliott", Position: player.PositionKicker, TeamID: "t-phi", IsActive: true, ExternalID: "4195"},
		{ID: "p-dst-01", Name: "Pittsburgh Steelers", Position: player.PositionDefense, TeamID: "t-pit", IsActive: true, ExternalID: "PIT"},
		{ID: "p-dst-02", Name: "Baltimore Ravens", Position: player.PositionDefense, TeamID: "t-bal", IsActive: true, ExternalID: "BAL"},
		{ID: "p-dst-03", Name: "San Francisco 49ers", Position: player.PositionDefense, TeamID: "t-sf", IsActive: true, ExternalID: "SF"},
	}
}

func SeedEntries() []entry.Entry {
	return []entry.Entry{
		{ID: "e-001", TeamName: "Gridiron Gurus", ParticipantName: "Alex Morgan", Email: "alex@example.com", Paid: true},
		{ID: "e-002", TeamName: "Fourth and Long", ParticipantName: "Sam Rivera", Email: "sam@example.com", Paid: true},
	}
}

func SeedRosters() []entry.RosterAssignment {
	return []entry.RosterAssignment{
		{EntryID: "e-001", PlayerID: "p-qb-01", Slot: entry.SlotQB1},
		{EntryID: "e-001", PlayerID: "p-qb-02", Slot: entry.SlotQB2},
		{EntryID: "e-001", PlayerID: "p-qb-04", Slot: entry.SlotQB3},
		{EntryID: "e-001", PlayerID: "p-qb-05", Slot: entry.SlotQB4},
		{EntryID: "e-001", PlayerID: "p-rb-01", Slot: entry.SlotRB1},
		{EntryID: "e-001", PlayerID: "p-rb-02", Slot: entry.SlotRB2},
		{EntryID: "e-001", PlayerID: "p-rb-04", Slot: entry.SlotRB3},
		{EntryID: "e-001", PlayerID: "p-wr-01", Slot: entry.SlotWR1},
		{EntryID: "e-001", PlayerID: "p-wr-02", Slot: entry.SlotWR2},
		{EntryID: "e-001", PlayerID: "p-wr-03", Slot: entry.SlotWR3},
		{EntryID: "e-001", PlayerID: "p-rb-03", Slot: entry.SlotFlex},
		{EntryID: "e-001", PlayerID: "p-te-01", Slot: entry.SlotTE},
		{EntryID: "e-001", PlayerID: "p-k-01", Slot: entry.SlotK},
		{EntryID: "e-001", PlayerID: "p-dst-01", Slot: entry.SlotDST},

		{EntryID: "e-002", PlayerID: "p-qb-03", Slot: entry.SlotQB1},
		{EntryID: "e-002", PlayerID: "p-qb-05", Slot: entry.SlotQB2},
		{EntryID: "e-002", PlayerID: "p-qb-01", Slot: entry.SlotQB3},
		{EntryID: "e-002", PlayerID: "p-qb-04", Slot: entry.SlotQB4},
		{EntryID: "e-002", PlayerID: "p-rb-02", Slot: entry.SlotRB1},
		{EntryID: "e-002", PlayerID: "p-rb-03", Slot: entry.SlotRB2},
		{EntryID: "e-002", PlayerID: "p-rb-01", Slot: entry.SlotRB3},
		{EntryID: "e-002", PlayerID: "p-wr-04", Slot: entry.SlotWR1},
		{EntryID: "e-002", PlayerID: "p-wr-03", Slot: entry.SlotWR2},
		{EntryID: "e-002", PlayerID: "p-wr-01", Slot: entry.SlotWR3},
		{EntryID: "e-002", PlayerID: "p-wr-02", Slot: entry.SlotFlex},
		{EntryID: "e-002", PlayerID: "p-te-02", Slot: entry.SlotTE},
		{EntryID: "e-002", PlayerID: "p-k-02", Slot: entry.SlotK},
		{EntryID: "e-002", PlayerID: "p-dst-03", Slot: entry.SlotDST},
	}
}
