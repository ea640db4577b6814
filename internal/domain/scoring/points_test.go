package scoring

import (
	"testing"

	"github.com/playoffpool/playoff-pool/internal/domain/gamestat"
)

func floatPtr(v float64) *float64 { return &v }

func TestComputeTotals(t *testing.T) {
	tests := []struct {
		name string
		line gamestat.StatLine
		want float64
	}{
		{
			name: "zero line scores zero",
			line: gamestat.StatLine{},
			want: 0,
		},
		{
			name: "passing yards just below bucket",
			line: gamestat.StatLine{PassingYards: 19},
			want: 0,
		},
		{
			name: "passing yards at bucket boundary",
			line: gamestat.StatLine{PassingYards: 20},
			want: 1,
		},
		{
			name: "receiving yards just below bucket",
			line: gamestat.StatLine{ReceivingYards: 39},
			want: 3,
		},
		{
			name: "receiving yards at bucket boundary",
			line: gamestat.StatLine{ReceivingYards: 40},
			want: 4,
		},
		{
			name: "negative rushing yards floor to the next bucket down",
			line: gamestat.StatLine{RushingYards: -15},
			want: -2,
		},
		{
			name: "negative yards on a bucket boundary",
			line: gamestat.StatLine{RushingYards: -10},
			want: -1,
		},
		{
			name: "quarterback day",
			line: gamestat.StatLine{PassingYards: 305, PassingTDs: 3},
			want: 33,
		},
		{
			name: "rushing line with two point conversion",
			line: gamestat.StatLine{RushingYards: 112, RushingTDs: 1, RushingTwoPt: 1},
			want: 11 + 6 + 2,
		},
		{
			name: "receptions count a point each",
			line: gamestat.StatLine{Receptions: 7, ReceivingYards: 85, ReceivingTDs: 1},
			want: 7 + 8 + 6,
		},
		{
			name: "kicker buckets",
			line: gamestat.StatLine{FGMade0to39: 2, FGMade40to49: 1, FGMade50to59: 1, FGMade60Plus: 1, XPMade: 3},
			want: 6 + 4 + 5 + 6 + 3,
		},
		{
			name: "defense line",
			line: gamestat.StatLine{
				DefFumbleRecoveries: 1,
				DefSpecialTeamsTDs:  1,
				DefInterceptions:    2,
				Sacks:               4,
				Safeties:            1,
				IntReturn2Pt:        1,
			},
			want: 2 + 9 + 4 + 4 + 2 + 2,
		},
		{
			name: "override replaces computation",
			line: gamestat.StatLine{PassingYards: 305, PassingTDs: 3, OverridePoints: floatPtr(10.5)},
			want: 10.5,
		},
		{
			name: "override to zero wins over stats",
			line: gamestat.StatLine{RushingYards: 150, OverridePoints: floatPtr(0)},
			want: 0,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Compute(tc.line)
			if got.TotalPoints != tc.want {
				t.Fatalf("TotalPoints = %v, want %v", got.TotalPoints, tc.want)
			}
		})
	}
}

func TestComputeBreakdownItems(t *testing.T) {
	got := Compute(gamestat.StatLine{PassingYards: 305, PassingTDs: 3})

	if len(got.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(got.Items))
	}
	if got.Items[0].Label != "Passing Yards" || got.Items[0].Points != 15 || got.Items[0].Stat != 305 {
		t.Fatalf("unexpected first item: %+v", got.Items[0])
	}
	if got.Items[0].Unit != "yds" {
		t.Fatalf("unit = %q, want yds", got.Items[0].Unit)
	}
	if got.Items[1].Label != "Passing TD" || got.Items[1].Points != 18 || got.Items[1].Stat != 3 {
		t.Fatalf("unexpected second item: %+v", got.Items[1])
	}
	if got.IsManualOverride {
		t.Fatalf("IsManualOverride = true, want false")
	}
}

func TestComputeOmitsZeroItems(t *testing.T) {
	got := Compute(gamestat.StatLine{PassingYards: 19, Receptions: 2})

	if len(got.Items) != 1 {
		t.Fatalf("items = %d, want 1: %+v", len(got.Items), got.Items)
	}
	if got.Items[0].Label != "Receptions" {
		t.Fatalf("label = %q, want Receptions", got.Items[0].Label)
	}
}

func TestComputeZeroLineEmptyBreakdown(t *testing.T) {
	got := Compute(gamestat.StatLine{})

	if got.TotalPoints != 0 {
		t.Fatalf("TotalPoints = %v, want 0", got.TotalPoints)
	}
	if len(got.Items) != 0 {
		t.Fatalf("items = %d, want 0", len(got.Items))
	}
}

func TestComputeManualOverrideItem(t *testing.T) {
	got := Compute(gamestat.StatLine{PassingYards: 400, OverridePoints: floatPtr(7)})

	if !got.IsManualOverride {
		t.Fatalf("IsManualOverride = false, want true")
	}
	if len(got.Items) != 1 || got.Items[0].Label != "Manual Override" {
		t.Fatalf("unexpected items: %+v", got.Items)
	}
	if got.TotalPoints != 7 {
		t.Fatalf("TotalPoints = %v, want 7", got.TotalPoints)
	}
}

func TestPlayerTotal(t *testing.T) {
	lines := []gamestat.StatLine{
		{PassingYards: 305, PassingTDs: 3},
		{PassingYards: 150, OverridePoints: floatPtr(5)},
	}

	if got := PlayerTotal(nil, lines); got != 38 {
		t.Fatalf("PlayerTotal = %v, want 38", got)
	}
	if got := PlayerTotal(floatPtr(99), lines); got != 99 {
		t.Fatalf("PlayerTotal with season override = %v, want 99", got)
	}
	if got := PlayerTotal(floatPtr(0), lines); got != 0 {
		t.Fatalf("PlayerTotal with zero season override = %v, want 0", got)
	}
}
