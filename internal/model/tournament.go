package model

import "github.com/corsair-league/armada/internal/clock"

// TournamentParticipant snapshots a registered team as it stood at
// registration time, so later roster changes don't retroactively alter
// an in-progress bracket.
type TournamentParticipant struct {
	TeamID TeamID
	Name   string
	Seed   float64 // reputation at registration time, used for seeding
}

// RegistrationWindow bounds when teams may register/confirm.
type RegistrationWindow struct {
	RegistrationOpensAt  clock.Tick
	RegistrationClosesAt clock.Tick
	ConfirmationClosesAt clock.Tick
	StartsAt             clock.Tick
}

// Tournament is a bracketed single-elimination competition organized
// by one team on one planet.
type Tournament struct {
	ID         TournamentID
	Name       string
	Organizer  TeamID
	Planet     PlanetID
	Window     RegistrationWindow

	MaxParticipants int
	Participants    map[TeamID]TournamentParticipant

	// Bracket holds one slice of game ids per round; round 0 is the
	// first round. Byes are not used: every entry is a real game id.
	Bracket [][]GameID
}

func NewTournament(organizer TeamID, planet PlanetID, window RegistrationWindow, maxParticipants int) *Tournament {
	return &Tournament{
		ID:              NewTournamentID(),
		Organizer:       organizer,
		Planet:          planet,
		Window:          window,
		MaxParticipants: maxParticipants,
		Participants:    map[TeamID]TournamentParticipant{},
	}
}

// State derives the tournament's lifecycle state from wall-clock
// comparisons against its window, per the glossary definition.
func (t *Tournament) State(now clock.Tick) TournamentState {
	switch {
	case now.Before(t.Window.RegistrationOpensAt):
		return TournamentStateNone
	case now.Before(t.Window.RegistrationClosesAt):
		return TournamentStateRegistration
	case now.Before(t.Window.ConfirmationClosesAt):
		return TournamentStateConfirmation
	case now.Before(t.Window.StartsAt):
		return TournamentStateSyncing
	case t.isComplete():
		return TournamentStateEnded
	default:
		return TournamentStateStarted
	}
}

func (t *Tournament) isComplete() bool {
	if len(t.Bracket) == 0 {
		return false
	}
	final := t.Bracket[len(t.Bracket)-1]
	return len(final) == 1 && !final[0].IsZero()
}

// IsFull reports whether the tournament has reached MaxParticipants.
func (t *Tournament) IsFull() bool { return len(t.Participants) >= t.MaxParticipants }

// Register adds team as a pending participant snapshot.
func (t *Tournament) Register(team TeamID, name string, reputation float64) {
	t.Participants[team] = TournamentParticipant{TeamID: team, Name: name, Seed: reputation}
}

// Unregister removes team from the participant list (used on
// withdrawal or auto-cancellation of an unconfirmed slot).
func (t *Tournament) Unregister(team TeamID) {
	delete(t.Participants, team)
}
