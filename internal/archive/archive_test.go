package archive

import (
	"testing"

	"github.com/corsair-league/armada/internal/model"
)

func TestGameDocRoundTrip(t *testing.T) {
	summary := model.GameSummary{
		ID:         model.NewGameID(),
		HomeTeamID: model.NewTeamID(),
		AwayTeamID: model.NewTeamID(),
		HomeScore:  88,
		AwayScore:  81,
		Location:   model.NewPlanetID(),
		PlayedAt:   12345,
	}

	doc := toGameDoc(summary)
	got := doc.summary()

	if got.ID != summary.ID {
		t.Fatalf("expected ID to round-trip, got %v want %v", got.ID, summary.ID)
	}
	if got.HomeTeamID != summary.HomeTeamID {
		t.Fatalf("expected HomeTeamID to round-trip")
	}
	if got.AwayTeamID != summary.AwayTeamID {
		t.Fatalf("expected AwayTeamID to round-trip")
	}
	if got.Location != summary.Location {
		t.Fatalf("expected Location to round-trip")
	}
	if got.HomeScore != summary.HomeScore || got.AwayScore != summary.AwayScore {
		t.Fatalf("expected scores to round-trip")
	}
	if got.PlayedAt != summary.PlayedAt {
		t.Fatalf("expected PlayedAt to round-trip")
	}
}

func TestParseUUIDReturnsZeroOnMalformedInput(t *testing.T) {
	if got := parseUUID("not-a-uuid"); got.String() != "00000000-0000-0000-0000-000000000000" {
		t.Fatalf("expected zero UUID for malformed input, got %s", got.String())
	}
}
